package elb

import "strings"

// Outcome reports one sub-operation of a larger operation: whether it
// was needed, whether it was applied, and how it failed if it did.
type Outcome struct {
	Op      string // e.g. "add zones", "health check"
	Changed bool   // false when nothing needed doing
	Detail  string // zones touched, target applied, or similar
	Err     error
}

// Result is the presentation-facing shape of a completed operation.
// FieldErrors is populated only for validation failures; Outcomes
// only for multi-part updates.
type Result struct {
	Success      bool
	ResourceName string
	Message      string
	FieldErrors  []FieldError
	Outcomes     []Outcome
}

func validationResult(ve *ValidationError) *Result {
	return &Result{
		Success:     false,
		Message:     "validation failed",
		FieldErrors: ve.Fields,
	}
}

// summarize builds the multi-part outcome message, naming each
// sub-operation's result independently.
func summarize(outcomes []Outcome) string {
	parts := make([]string, 0, len(outcomes))
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			parts = append(parts, o.Op+" failed: "+o.Err.Error())
		case !o.Changed:
			parts = append(parts, o.Op+": no changes required")
		case o.Detail != "":
			parts = append(parts, o.Op+": "+o.Detail)
		default:
			parts = append(parts, o.Op+" applied")
		}
	}
	return strings.Join(parts, ". ")
}

func anyFailed(outcomes []Outcome) bool {
	for _, o := range outcomes {
		if o.Err != nil {
			return true
		}
	}
	return false
}

func anySucceeded(outcomes []Outcome) bool {
	for _, o := range outcomes {
		if o.Err == nil {
			return true
		}
	}
	return false
}
