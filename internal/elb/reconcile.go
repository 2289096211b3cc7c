package elb

import "sort"

// ZoneDiff is the minimal set of zone changes moving a load
// balancer's current membership to a desired membership.
type ZoneDiff struct {
	ToAdd    []string
	ToRemove []string
}

// Empty reports whether no zone changes are required.
func (d ZoneDiff) Empty() bool {
	return len(d.ToAdd) == 0 && len(d.ToRemove) == 0
}

// DiffZones computes desired minus current as ToAdd and current minus
// desired as ToRemove. Both lists come back sorted so repeated runs
// over the same state produce identical operation logs. Duplicate
// entries in either input count once. The diff never touches the
// cloud API; the orchestrator issues the calls it recommends.
func DiffZones(current, desired []string) ZoneDiff {
	currentSet := make(map[string]bool, len(current))
	for _, z := range current {
		currentSet[z] = true
	}
	desiredSet := make(map[string]bool, len(desired))
	for _, z := range desired {
		desiredSet[z] = true
	}

	var diff ZoneDiff
	for z := range desiredSet {
		if !currentSet[z] {
			diff.ToAdd = append(diff.ToAdd, z)
		}
	}
	for z := range currentSet {
		if !desiredSet[z] {
			diff.ToRemove = append(diff.ToRemove, z)
		}
	}

	sort.Strings(diff.ToAdd)
	sort.Strings(diff.ToRemove)
	return diff
}
