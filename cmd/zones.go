package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repos-devops/asgard/internal/ui"
)

var zonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "List available availability zones",
	Long: `List the availability zones offered in the configured region. These
are the zones a load balancer can be attached to.

Examples:
  asgard zones
  asgard zones -r us-west-2`,
	RunE: runZones,
}

func init() {
	rootCmd.AddCommand(zonesCmd)
}

func runZones(cmd *cobra.Command, args []string) error {
	client, err := newAWSClient(cmd.Context())
	if err != nil {
		return err
	}

	zones, err := client.AvailableZones(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list availability zones: %w", err)
	}

	if len(zones) == 0 {
		fmt.Println("No availability zones found")
		return nil
	}

	ui.PrintZoneTable(zones)
	return nil
}
