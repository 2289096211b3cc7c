package elb

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiffZones(t *testing.T) {
	tests := []struct {
		name           string
		current        []string
		desired        []string
		expectedAdd    []string
		expectedRemove []string
	}{
		{
			name:           "overlap",
			current:        []string{"us-east-1a", "us-east-1b"},
			desired:        []string{"us-east-1b", "us-east-1c"},
			expectedAdd:    []string{"us-east-1c"},
			expectedRemove: []string{"us-east-1a"},
		},
		{
			name:    "identical",
			current: []string{"us-east-1a", "us-east-1b"},
			desired: []string{"us-east-1b", "us-east-1a"},
		},
		{
			name:        "all new",
			current:     nil,
			desired:     []string{"us-west-2a", "us-west-2b"},
			expectedAdd: []string{"us-west-2a", "us-west-2b"},
		},
		{
			name:           "all removed",
			current:        []string{"us-west-2a", "us-west-2b"},
			desired:        nil,
			expectedRemove: []string{"us-west-2a", "us-west-2b"},
		},
		{
			name:        "duplicates count once",
			current:     []string{"us-east-1a", "us-east-1a"},
			desired:     []string{"us-east-1a", "us-east-1b", "us-east-1b"},
			expectedAdd: []string{"us-east-1b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff := DiffZones(tt.current, tt.desired)
			assert.Equal(t, tt.expectedAdd, diff.ToAdd)
			assert.Equal(t, tt.expectedRemove, diff.ToRemove)
		})
	}
}

func TestDiffZonesSorted(t *testing.T) {
	diff := DiffZones(
		[]string{"us-east-1e", "us-east-1c", "us-east-1a"},
		[]string{"us-east-1d", "us-east-1b"},
	)
	assert.True(t, sort.StringsAreSorted(diff.ToAdd))
	assert.True(t, sort.StringsAreSorted(diff.ToRemove))
	assert.Equal(t, []string{"us-east-1b", "us-east-1d"}, diff.ToAdd)
	assert.Equal(t, []string{"us-east-1a", "us-east-1c", "us-east-1e"}, diff.ToRemove)
}

// Applying the diff to the current set must yield exactly the desired
// set, and the two operation lists must not overlap the sets they
// move away from.
func TestDiffZonesSetAlgebra(t *testing.T) {
	current := []string{"a", "b", "c"}
	desired := []string{"b", "d", "e"}
	diff := DiffZones(current, desired)

	currentSet := map[string]bool{}
	for _, z := range current {
		currentSet[z] = true
	}
	desiredSet := map[string]bool{}
	for _, z := range desired {
		desiredSet[z] = true
	}

	for _, z := range diff.ToAdd {
		assert.False(t, currentSet[z], "ToAdd must not contain current zones")
	}
	for _, z := range diff.ToRemove {
		assert.False(t, desiredSet[z], "ToRemove must not contain desired zones")
	}

	result := map[string]bool{}
	for _, z := range current {
		result[z] = true
	}
	for _, z := range diff.ToAdd {
		result[z] = true
	}
	for _, z := range diff.ToRemove {
		delete(result, z)
	}
	assert.Equal(t, desiredSet, result)
}

func TestDiffZonesIdempotent(t *testing.T) {
	zones := []string{"us-east-1a", "us-east-1b"}
	diff := DiffZones(zones, zones)
	assert.True(t, diff.Empty())
	assert.Empty(t, diff.ToAdd)
	assert.Empty(t, diff.ToRemove)
}
