package ui

import (
	"fmt"

	"github.com/repos-devops/asgard/internal/elb"
)

// PrintResult renders an operation result: overall status, field
// errors for validation failures, and per-suboperation outcomes for
// multi-part updates.
func PrintResult(res *elb.Result) {
	if res.Success {
		fmt.Println(OKStyle.Render("✓ ") + res.Message)
	} else {
		fmt.Println(FailedStyle.Render("✗ ") + res.Message)
	}

	if len(res.FieldErrors) > 0 {
		fmt.Println()
		for _, fe := range res.FieldErrors {
			fmt.Printf("  %s %s\n", FailedStyle.Render(fe.Field+":"), fe.Message)
		}
	}

	if len(res.Outcomes) > 0 {
		fmt.Println()
		for _, o := range res.Outcomes {
			switch {
			case o.Err != nil:
				fmt.Printf("  %s %s: %v\n", FailedStyle.Render("✗"), o.Op, o.Err)
			case !o.Changed:
				fmt.Printf("  %s %s: no changes required\n", MutedStyle.Render("-"), o.Op)
			case o.Detail != "":
				fmt.Printf("  %s %s: %s\n", OKStyle.Render("✓"), o.Op, o.Detail)
			default:
				fmt.Printf("  %s %s\n", OKStyle.Render("✓"), o.Op)
			}
		}
	}
}
