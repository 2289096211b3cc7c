// Package name builds and validates the composite resource names used
// across the platform: an application name, an optional environment
// stack, and an optional free-text detail, joined by a fixed separator.
package name

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// Separator joins the app, stack and detail name components.
	Separator = "-"

	// MaxLength is the longest composed resource name accepted. It is
	// the classic ELB name cap and is shared with the other
	// named-resource conventions (clusters, auto scaling groups).
	MaxLength = 32
)

var (
	strictPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	detailPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

	// Reserved token shapes: all-digit ordinals and the vNNN push
	// suffix. Other resource kinds encode version information with
	// these, so user-supplied components must never look like them.
	reservedDigits = regexp.MustCompile(`^[0-9]+$`)
	reservedPush   = regexp.MustCompile(`^v[0-9]{3}$`)
)

// StackChoice selects the environment stack for a resource name. It is
// either an existing stack, a stack typed in by the operator, or no
// stack at all; both variants cannot be set at once by construction.
type StackChoice struct {
	name  string
	isNew bool
}

// ExistingStack selects a stack that already exists.
func ExistingStack(s string) StackChoice {
	return StackChoice{name: s}
}

// NewStack selects a stack the operator typed in.
func NewStack(s string) StackChoice {
	return StackChoice{name: s, isNew: true}
}

// NoStack selects no stack component.
func NoStack() StackChoice {
	return StackChoice{}
}

// Name returns the stack name component, empty when no stack is chosen.
func (c StackChoice) Name() string { return c.name }

// IsNew reports whether the stack was typed in rather than selected.
func (c StackChoice) IsNew() bool { return c.isNew }

// Build composes a resource name from its components. Empty components
// are skipped; the result is deterministic for the same inputs. It
// fails when the composed name exceeds MaxLength.
func Build(appName string, stack StackChoice, detail string) (string, error) {
	parts := []string{appName}
	if stack.Name() != "" {
		parts = append(parts, stack.Name())
	}
	if detail != "" {
		parts = append(parts, detail)
	}
	composed := strings.Join(parts, Separator)
	if len(composed) > MaxLength {
		return "", fmt.Errorf("name %q exceeds the maximum length of %d characters", composed, MaxLength)
	}
	return composed, nil
}

// CheckStrictName reports whether s is a valid mandatory name
// component: non-empty, letters and digits only.
func CheckStrictName(s string) bool {
	return strictPattern.MatchString(s)
}

// CheckName reports whether s is a valid optional name component:
// empty, or letters and digits only.
func CheckName(s string) bool {
	return s == "" || strictPattern.MatchString(s)
}

// CheckDetail reports whether s is a valid detail component: empty, or
// letters, digits and hyphens.
func CheckDetail(s string) bool {
	return s == "" || detailPattern.MatchString(s)
}

// UsesReservedFormat reports whether s matches a token shape the
// platform reserves for other resource kinds. Accepting such a
// component would make composed names ambiguous to downstream parsers.
func UsesReservedFormat(s string) bool {
	return reservedDigits.MatchString(s) || reservedPush.MatchString(s)
}
