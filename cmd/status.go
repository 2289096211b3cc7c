package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repos-devops/asgard/internal/aws"
	"github.com/repos-devops/asgard/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current profile, region and authentication status",
	Long: `Display the active AWS profile and region and verify that the
configured credentials work.

Examples:
  asgard status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("Current Status")
	fmt.Println(ui.MutedStyle.Render("─────────────────────────────────"))
	fmt.Println()

	profileLabel := GetProfile()
	if profileLabel == "" {
		profileLabel = "(default)"
	}
	regionLabel := GetRegion()
	if regionLabel == "" {
		regionLabel = "(default)"
	}

	fmt.Printf("Profile:  %s\n", ui.HeaderStyle.Render(profileLabel))
	fmt.Printf("Region:   %s\n", ui.HeaderStyle.Render(regionLabel))
	fmt.Println()

	identity, err := aws.GetCallerIdentity(cmd.Context(), GetProfile(), GetRegion())
	if err != nil {
		fmt.Println("Auth:     " + ui.FailedStyle.Render("✗ not authenticated"))
		fmt.Printf("          %v\n", err)
		return nil
	}

	fmt.Println("Auth:     " + ui.OKStyle.Render("✓ authenticated"))
	fmt.Printf("Account:  %s\n", identity.Account)
	fmt.Printf("Identity: %s\n", identity.Arn)
	return nil
}
