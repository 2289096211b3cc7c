package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repos-devops/asgard/internal/config"
	"github.com/repos-devops/asgard/pkg/name"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage saved settings and the application registry",
}

var configRegisterAppCmd = &cobra.Command{
	Use:   "register-app <app>",
	Short: "Register an application so it may own load balancers",
	Long: `Add an application to the local registry. Only registered
applications can have load balancers created for them.

Examples:
  asgard config register-app helloworld`,
	Args: cobra.ExactArgs(1),
	RunE: runRegisterApp,
}

var configAppsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List registered applications",
	RunE:  runListApps,
}

var configSetProfileCmd = &cobra.Command{
	Use:   "set-profile <profile>",
	Short: "Save the default AWS profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetProfile(args[0]); err != nil {
			return err
		}
		fmt.Printf("Default profile set to %q\n", args[0])
		return nil
	},
}

var configSetRegionCmd = &cobra.Command{
	Use:   "set-region <region>",
	Short: "Save the default AWS region",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetRegion(args[0]); err != nil {
			return err
		}
		fmt.Printf("Default region set to %q\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configRegisterAppCmd)
	configCmd.AddCommand(configAppsCmd)
	configCmd.AddCommand(configSetProfileCmd)
	configCmd.AddCommand(configSetRegionCmd)
}

func runRegisterApp(cmd *cobra.Command, args []string) error {
	appName := args[0]
	if !name.CheckStrictName(appName) {
		return fmt.Errorf("application name %q must contain only letters and numbers", appName)
	}
	if name.UsesReservedFormat(appName) {
		return fmt.Errorf("application name %q uses a reserved format", appName)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	cfg.RegisterApp(appName)
	if err := config.SaveConfig(cfg); err != nil {
		return err
	}

	fmt.Printf("Application %q registered\n", appName)
	return nil
}

func runListApps(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if len(cfg.Applications) == 0 {
		fmt.Println("No applications registered. Add one with:")
		fmt.Println("  asgard config register-app <app>")
		return nil
	}

	for _, app := range cfg.Applications {
		fmt.Println(app)
	}
	return nil
}
