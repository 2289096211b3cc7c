package name

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		app      string
		stack    StackChoice
		detail   string
		expected string
	}{
		{"app only", "helloworld", NoStack(), "", "helloworld"},
		{"app and stack", "helloworld", ExistingStack("test"), "", "helloworld-test"},
		{"app stack detail", "helloworld", ExistingStack("test"), "canary", "helloworld-test-canary"},
		{"app and detail", "helloworld", NoStack(), "canary", "helloworld-canary"},
		{"new stack", "helloworld", NewStack("staging"), "", "helloworld-staging"},
		{"hyphenated detail", "api", ExistingStack("prod"), "east-1", "api-prod-east-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(tt.app, tt.stack, tt.detail)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestBuildDeterministic(t *testing.T) {
	first, err := Build("helloworld", ExistingStack("test"), "canary")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Build("helloworld", ExistingStack("test"), "canary")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestBuildLengthBoundary(t *testing.T) {
	// app(20) + "-" + stack(4) + "-" + detail(6) = 32 characters
	app := strings.Repeat("a", 20)
	atLimit, err := Build(app, ExistingStack("prod"), strings.Repeat("d", 6))
	require.NoError(t, err)
	assert.Len(t, atLimit, MaxLength)

	_, err = Build(app, ExistingStack("prod"), strings.Repeat("d", 7))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum length")
}

func TestCheckStrictName(t *testing.T) {
	assert.True(t, CheckStrictName("helloworld"))
	assert.True(t, CheckStrictName("app2"))
	assert.False(t, CheckStrictName(""))
	assert.False(t, CheckStrictName("hello-world"))
	assert.False(t, CheckStrictName("hello world"))
	assert.False(t, CheckStrictName("hello_world"))
}

func TestCheckName(t *testing.T) {
	assert.True(t, CheckName(""))
	assert.True(t, CheckName("prod"))
	assert.False(t, CheckName("pr-od"))
	assert.False(t, CheckName("pr od"))
}

func TestCheckDetail(t *testing.T) {
	assert.True(t, CheckDetail(""))
	assert.True(t, CheckDetail("canary"))
	assert.True(t, CheckDetail("east-1-blue"))
	assert.False(t, CheckDetail("east 1"))
	assert.False(t, CheckDetail("east.1"))
}

func TestUsesReservedFormat(t *testing.T) {
	assert.True(t, UsesReservedFormat("0"))
	assert.True(t, UsesReservedFormat("123"))
	assert.True(t, UsesReservedFormat("v000"))
	assert.True(t, UsesReservedFormat("v123"))
	assert.False(t, UsesReservedFormat("v1234"))
	assert.False(t, UsesReservedFormat("v12"))
	assert.False(t, UsesReservedFormat("prod"))
	assert.False(t, UsesReservedFormat("canary1"))
}

func TestStackChoice(t *testing.T) {
	assert.Equal(t, "", NoStack().Name())
	assert.False(t, NoStack().IsNew())
	assert.Equal(t, "prod", ExistingStack("prod").Name())
	assert.False(t, ExistingStack("prod").IsNew())
	assert.Equal(t, "staging", NewStack("staging").Name())
	assert.True(t, NewStack("staging").IsNew())
}
