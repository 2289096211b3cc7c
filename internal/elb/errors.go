package elb

import (
	"fmt"
	"strings"
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError carries every field-level failure detected for a
// command. Validation never short-circuits: the operator sees all
// failures at once and can correct the whole form in one pass.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// ok reports whether no failures were collected.
func (e *ValidationError) ok() bool {
	return len(e.Fields) == 0
}

// NotFoundError indicates the named load balancer does not exist.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("load balancer %q not found", e.Name)
}

// CreateError wraps an upstream create failure. It retains the
// original command so the operator can correct and resubmit the same
// input.
type CreateError struct {
	Command *CreateCommand
	Cause   error
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("failed to create load balancer for app %q: %v", e.Command.AppName, e.Cause)
}

func (e *CreateError) Unwrap() error { return e.Cause }

// UpdateError wraps an upstream failure while changing an existing
// load balancer. Attempted names the change so the operator knows
// what to re-invoke.
type UpdateError struct {
	Name      string
	Attempted string
	Cause     error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("failed to %s on load balancer %q: %v", e.Attempted, e.Name, e.Cause)
}

func (e *UpdateError) Unwrap() error { return e.Cause }

// DeleteError wraps an upstream delete failure. The load balancer is
// assumed to still exist.
type DeleteError struct {
	Name  string
	Cause error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("failed to delete load balancer %q: %v", e.Name, e.Cause)
}

func (e *DeleteError) Unwrap() error { return e.Cause }

// PartialFailure indicates an operation where some sub-operations
// succeeded and others failed. Nothing is rolled back; the outcomes
// record what was applied so the operator can re-invoke what was not.
type PartialFailure struct {
	Name     string
	Outcomes []Outcome
}

func (e *PartialFailure) Error() string {
	var failed []string
	for _, o := range e.Outcomes {
		if o.Err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", o.Op, o.Err))
		}
	}
	return fmt.Sprintf("load balancer %q partially updated: %s", e.Name, strings.Join(failed, "; "))
}
