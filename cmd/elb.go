package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/repos-devops/asgard/internal/aws"
	"github.com/repos-devops/asgard/internal/config"
	"github.com/repos-devops/asgard/internal/elb"
	"github.com/repos-devops/asgard/internal/ui"
	pkgtypes "github.com/repos-devops/asgard/pkg/types"
)

var elbCmd = &cobra.Command{
	Use:   "elb",
	Short: "Manage classic load balancers",
	Long:  `Create, inspect, update and delete classic Elastic Load Balancers.`,
}

var elbLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all load balancers",
	Long: `List all classic load balancers with their DNS name, zones and age.

Examples:
  asgard elb ls              # List all load balancers
  asgard elb ls -p prod      # List using the production profile`,
	RunE: runELBList,
}

var elbDescribeCmd = &cobra.Command{
	Use:   "describe [name]",
	Short: "Show detailed load balancer information",
	Long: `Show a load balancer's listeners, health check, zones and the auto
scaling groups routing traffic through it. If no name is provided, an
interactive selector is shown.

Examples:
  asgard elb describe                    # Interactive selector
  asgard elb describe helloworld-test    # Describe a specific LB`,
	RunE: runELBDescribe,
}

// Create flags
var (
	createApp      string
	createStack    string
	createNewStack string
	createDetail   string
	createZones    []string

	createProtocol     string
	createLBPort       int
	createInstancePort int

	createProtocol2     string
	createLBPort2       int
	createInstancePort2 int
)

var elbCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a load balancer",
	Long: `Create a classic load balancer named after a registered application,
an optional stack and an optional detail. The name is composed as
app[-stack][-detail] and cannot be changed afterwards; to rename,
delete and recreate.

Examples:
  asgard elb create --app helloworld --stack test \
    --zones us-east-1a,us-east-1b \
    --protocol HTTP --lb-port 80 --instance-port 7001

  asgard elb create --app api --new-stack staging --detail canary \
    --zones us-east-1a \
    --protocol HTTP --lb-port 80 --instance-port 7001 \
    --protocol2 HTTPS --lb-port2 443 --instance-port2 7002 \
    --hc-target HTTP:7001/healthcheck`,
	RunE: runELBCreate,
}

var elbUpdateCmd = &cobra.Command{
	Use:   "update <name>",
	Short: "Reconcile a load balancer's zones and health check",
	Long: `Bring a load balancer's availability zones to the desired set and
replace its health check. Zone adds, zone removes and the health check
update are attempted independently; the outcome of each is reported
separately and nothing is rolled back.

Examples:
  asgard elb update helloworld-test --zones us-east-1b,us-east-1c \
    --hc-target HTTP:7001/healthcheck`,
	Args: cobra.ExactArgs(1),
	RunE: runELBUpdate,
}

var elbDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a load balancer",
	Args:  cobra.ExactArgs(1),
	RunE:  runELBDelete,
}

var listenerCmd = &cobra.Command{
	Use:   "listener",
	Short: "Manage load balancer listeners",
}

var (
	listenerProtocol     string
	listenerLBPort       int
	listenerInstancePort int
)

var listenerAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a listener to a load balancer",
	Long: `Add a protocol/port mapping to a load balancer. A port already in
use must be removed first; listeners are never changed in place.

Examples:
  asgard elb listener add helloworld-test --protocol HTTPS --lb-port 443 --instance-port 7002`,
	Args: cobra.ExactArgs(1),
	RunE: runListenerAdd,
}

var listenerRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a listener from a load balancer",
	Long: `Remove the listener bound to a load balancer port.

Examples:
  asgard elb listener remove helloworld-test --lb-port 443`,
	Args: cobra.ExactArgs(1),
	RunE: runListenerRemove,
}

// Update flags
var updateZones []string

// Health check flags, shared by create and update
var (
	hcTarget    string
	hcInterval  int
	hcTimeout   int
	hcUnhealthy int
	hcHealthy   int
)

func init() {
	rootCmd.AddCommand(elbCmd)

	elbCmd.AddCommand(elbLsCmd)
	elbCmd.AddCommand(elbDescribeCmd)
	elbCmd.AddCommand(elbCreateCmd)
	elbCmd.AddCommand(elbUpdateCmd)
	elbCmd.AddCommand(elbDeleteCmd)
	elbCmd.AddCommand(listenerCmd)

	listenerCmd.AddCommand(listenerAddCmd)
	listenerCmd.AddCommand(listenerRemoveCmd)

	createFlags := elbCreateCmd.Flags()
	createFlags.StringVar(&createApp, "app", "", "Registered application that owns the load balancer")
	createFlags.StringVar(&createStack, "stack", "", "Existing environment stack, e.g. prod")
	createFlags.StringVar(&createNewStack, "new-stack", "", "New stack name (mutually exclusive with --stack)")
	createFlags.StringVar(&createDetail, "detail", "", "Free-text name qualifier, hyphens allowed")
	createFlags.StringSliceVar(&createZones, "zones", nil, "Availability zones to attach")
	createFlags.StringVar(&createProtocol, "protocol", "", "Primary listener protocol")
	createFlags.IntVar(&createLBPort, "lb-port", 0, "Primary listener load balancer port")
	createFlags.IntVar(&createInstancePort, "instance-port", 0, "Primary listener instance port")
	createFlags.StringVar(&createProtocol2, "protocol2", "", "Secondary listener protocol (optional)")
	createFlags.IntVar(&createLBPort2, "lb-port2", 0, "Secondary listener load balancer port")
	createFlags.IntVar(&createInstancePort2, "instance-port2", 0, "Secondary listener instance port")
	addHealthCheckFlags(elbCreateCmd)

	elbUpdateCmd.Flags().StringSliceVar(&updateZones, "zones", nil, "Desired availability zone set")
	_ = elbUpdateCmd.MarkFlagRequired("zones")
	addHealthCheckFlags(elbUpdateCmd)

	listenerAddCmd.Flags().StringVar(&listenerProtocol, "protocol", "", "Listener protocol")
	listenerAddCmd.Flags().IntVar(&listenerLBPort, "lb-port", 0, "Load balancer port")
	listenerAddCmd.Flags().IntVar(&listenerInstancePort, "instance-port", 0, "Instance port")

	listenerRemoveCmd.Flags().IntVar(&listenerLBPort, "lb-port", 0, "Load balancer port to remove")
	_ = listenerRemoveCmd.MarkFlagRequired("lb-port")
}

func addHealthCheckFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&hcTarget, "hc-target", "HTTP:7001/healthcheck", "Health check target, protocol:port[/path]")
	cmd.Flags().IntVar(&hcInterval, "hc-interval", 10, "Seconds between health checks")
	cmd.Flags().IntVar(&hcTimeout, "hc-timeout", 5, "Seconds before a health check times out")
	cmd.Flags().IntVar(&hcUnhealthy, "hc-unhealthy", 2, "Failures before an instance is unhealthy")
	cmd.Flags().IntVar(&hcHealthy, "hc-healthy", 10, "Successes before an instance is healthy")
}

func newAWSClient(ctx context.Context) (*aws.Client, error) {
	client, err := aws.NewClient(ctx,
		aws.WithProfile(GetProfile()),
		aws.WithRegion(GetRegion()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS client: %w", err)
	}
	return client, nil
}

func newOrchestrator(ctx context.Context) (*elb.Orchestrator, error) {
	client, err := newAWSClient(ctx)
	if err != nil {
		return nil, err
	}
	return elb.NewOrchestrator(client, config.Registry{}, log), nil
}

func healthCheckFromFlags() pkgtypes.HealthCheck {
	return pkgtypes.HealthCheck{
		Target:             hcTarget,
		Interval:           hcInterval,
		Timeout:            hcTimeout,
		UnhealthyThreshold: hcUnhealthy,
		HealthyThreshold:   hcHealthy,
	}
}

func runELBList(cmd *cobra.Command, args []string) error {
	client, err := newAWSClient(cmd.Context())
	if err != nil {
		return err
	}

	lbs, err := client.ListLoadBalancers(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list load balancers: %w", err)
	}

	if len(lbs) == 0 {
		fmt.Println("No load balancers found")
		return nil
	}

	ui.PrintLBTable(lbs)
	return nil
}

// resolveLBName returns the name from args, or prompts with the
// interactive selector.
func resolveLBName(ctx context.Context, client *aws.Client, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	lbs, err := client.ListLoadBalancers(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list load balancers: %w", err)
	}

	selected, err := ui.SelectLoadBalancer(lbs)
	if err != nil {
		return "", err
	}
	return selected.Name, nil
}

func runELBDescribe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client, err := newAWSClient(ctx)
	if err != nil {
		return err
	}

	lbName, err := resolveLBName(ctx, client, args)
	if err != nil {
		return err
	}

	lb, err := client.Describe(ctx, lbName)
	if err != nil {
		return fmt.Errorf("failed to describe load balancer: %w", err)
	}

	fmt.Println()
	fmt.Printf("Load Balancer: %s\n", lb.Name)
	fmt.Printf("  Scheme:    %s\n", lb.Scheme)
	fmt.Printf("  DNS:       %s\n", lb.DNSName)
	fmt.Printf("  VPC:       %s\n", lb.VPCID)
	fmt.Printf("  Zones:     %s\n", strings.Join(lb.Zones, ", "))
	fmt.Printf("  Created:   %s\n", lb.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Println()

	if len(lb.Listeners) > 0 {
		fmt.Println("Listeners:")
		ui.PrintListenerTable(lb.Listeners)
		fmt.Println()
	}

	ui.PrintHealthCheck(lb.HealthCheck)
	fmt.Println()

	groups, err := client.GroupsForLoadBalancer(ctx, lbName)
	if err != nil {
		return fmt.Errorf("failed to look up attached auto scaling groups: %w", err)
	}

	if len(groups) > 0 {
		fmt.Println("Attached Auto Scaling Groups:")
		ui.PrintASGTable(groups)
	} else {
		fmt.Println("No auto scaling groups attached")
	}

	return nil
}

func runELBCreate(cmd *cobra.Command, args []string) error {
	o, err := newOrchestrator(cmd.Context())
	if err != nil {
		return err
	}

	create := &elb.CreateCommand{
		AppName:     createApp,
		Stack:       createStack,
		NewStack:    createNewStack,
		Detail:      createDetail,
		Zones:       createZones,
		Listener1:   listenerInputFromFlags(cmd, "lb-port", "instance-port", &createProtocol, &createLBPort, &createInstancePort),
		Listener2:   listenerInputFromFlags(cmd, "lb-port2", "instance-port2", &createProtocol2, &createLBPort2, &createInstancePort2),
		HealthCheck: healthCheckFromFlags(),
	}

	res, err := o.Create(cmd.Context(), create)
	ui.PrintResult(res)
	if err != nil {
		return err
	}

	fmt.Printf("\nInspect it with: asgard elb describe %s\n", res.ResourceName)
	return nil
}

// listenerInputFromFlags builds a ListenerInput, leaving ports nil
// when their flags were not supplied so partial input is detectable.
func listenerInputFromFlags(cmd *cobra.Command, lbPortFlag, instancePortFlag string, protocol *string, lbPort, instancePort *int) elb.ListenerInput {
	in := elb.ListenerInput{Protocol: *protocol}
	if cmd.Flags().Changed(lbPortFlag) {
		in.LoadBalancerPort = lbPort
	}
	if cmd.Flags().Changed(instancePortFlag) {
		in.InstancePort = instancePort
	}
	return in
}

func runELBUpdate(cmd *cobra.Command, args []string) error {
	o, err := newOrchestrator(cmd.Context())
	if err != nil {
		return err
	}

	res, err := o.Update(cmd.Context(), args[0], updateZones, healthCheckFromFlags())
	ui.PrintResult(res)
	return err
}

func runELBDelete(cmd *cobra.Command, args []string) error {
	o, err := newOrchestrator(cmd.Context())
	if err != nil {
		return err
	}

	res, err := o.Delete(cmd.Context(), args[0])
	ui.PrintResult(res)
	if err != nil {
		// The resource is assumed to still exist; point back at it.
		fmt.Printf("\nInspect it with: asgard elb describe %s\n", args[0])
	}
	return err
}

func runListenerAdd(cmd *cobra.Command, args []string) error {
	o, err := newOrchestrator(cmd.Context())
	if err != nil {
		return err
	}

	in := listenerInputFromFlags(cmd, "lb-port", "instance-port", &listenerProtocol, &listenerLBPort, &listenerInstancePort)
	res, err := o.AddListener(cmd.Context(), args[0], in)
	ui.PrintResult(res)
	return err
}

func runListenerRemove(cmd *cobra.Command, args []string) error {
	o, err := newOrchestrator(cmd.Context())
	if err != nil {
		return err
	}

	res, err := o.RemoveListener(cmd.Context(), args[0], listenerLBPort)
	ui.PrintResult(res)
	return err
}
