package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/repos-devops/asgard/internal/config"
	"github.com/repos-devops/asgard/pkg/logger"
)

var (
	// Global flags
	profile string
	region  string
	verbose bool

	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "asgard",
	Short: "Asgard - manage classic load balancers",
	Long: `Asgard manages classic Elastic Load Balancers under the platform
naming convention: every load balancer belongs to a registered
application, optionally qualified by an environment stack and a
free-text detail (app[-stack][-detail]).

Load Balancer Commands:
  asgard elb ls                  # List load balancers
  asgard elb describe my-app     # Listeners, health check, attached ASGs
  asgard elb create --app myapp --stack prod ...
  asgard elb update my-app-prod --zones us-east-1a,us-east-1b ...
  asgard elb delete my-app-prod

Supporting Commands:
  asgard zones                   # Available availability zones
  asgard config register-app a   # Allow an application to own an ELB
  asgard status                  # Current profile, region and identity`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "AWS profile to use")
	rootCmd.PersistentFlags().StringVarP(&region, "region", "r", "", "AWS region to use")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// Bind flags to viper
	_ = viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
	_ = viper.BindPFlag("region", rootCmd.PersistentFlags().Lookup("region"))
}

func initConfig() {
	// Read from environment variables
	viper.SetEnvPrefix("ASGARD")
	viper.AutomaticEnv()

	// Priority for profile: --profile flag > ~/.asgard/config.yaml > AWS_PROFILE env
	if profile == "" {
		if saved := config.GetSavedProfile(); saved != "" {
			profile = saved
		} else {
			profile = os.Getenv("AWS_PROFILE")
		}
	}

	// Same priority for region
	if region == "" {
		if saved := config.GetSavedRegion(); saved != "" {
			region = saved
		} else {
			region = os.Getenv("AWS_REGION")
			if region == "" {
				region = os.Getenv("AWS_DEFAULT_REGION")
			}
		}
	}

	level := "warn"
	if verbose {
		level = "debug"
	}
	log, _ = logger.New(logger.Config{Level: level, Format: "text", Output: os.Stderr})
	if log == nil {
		log = logger.Discard()
	}
}

// GetProfile returns the AWS profile
func GetProfile() string {
	return profile
}

// GetRegion returns the AWS region
func GetRegion() string {
	return region
}
