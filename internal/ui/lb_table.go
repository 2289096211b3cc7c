package ui

import (
	"fmt"
	"strconv"
	"strings"

	pkgtypes "github.com/repos-devops/asgard/pkg/types"
)

// PrintLBTable prints load balancers in a styled box table
func PrintLBTable(lbs []pkgtypes.LoadBalancer) {
	headers := []string{"Name", "DNS Name", "Zones", "Created"}
	widths := []int{32, 46, 26, 16}

	rows := make([][]Cell, 0, len(lbs))
	for _, lb := range lbs {
		created := ""
		if !lb.CreatedAt.IsZero() {
			created = lb.CreatedAt.Format("2006-01-02 15:04")
		}
		rows = append(rows, []Cell{
			{lb.Name, NameStyle},
			{lb.DNSName, ValueStyle},
			{strings.Join(lb.Zones, ", "), ValueStyle},
			{created, MutedStyle},
		})
	}

	PrintTable(headers, widths, rows)
	fmt.Printf("  %d load balancers\n", len(lbs))
}

// PrintListenerTable prints a load balancer's listeners
func PrintListenerTable(listeners []pkgtypes.Listener) {
	headers := []string{"Protocol", "LB Port", "Instance Port"}
	widths := []int{10, 9, 14}

	rows := make([][]Cell, 0, len(listeners))
	for _, l := range listeners {
		rows = append(rows, []Cell{
			{l.Protocol, NameStyle},
			{strconv.Itoa(l.LoadBalancerPort), ValueStyle},
			{strconv.Itoa(l.InstancePort), ValueStyle},
		})
	}

	PrintTable(headers, widths, rows)
}

// PrintZoneTable prints availability zones with their state
func PrintZoneTable(zones []pkgtypes.Zone) {
	headers := []string{"Zone", "State"}
	widths := []int{20, 12}

	rows := make([][]Cell, 0, len(zones))
	for _, z := range zones {
		style := MutedStyle
		if z.State == "available" {
			style = OKStyle
		}
		rows = append(rows, []Cell{
			{z.Name, NameStyle},
			{z.State, style},
		})
	}

	PrintTable(headers, widths, rows)
	fmt.Printf("  %d zones\n", len(zones))
}

// PrintASGTable prints the auto scaling groups attached to a load
// balancer
func PrintASGTable(groups []pkgtypes.AutoScalingGroup) {
	headers := []string{"Auto Scaling Group", "Min", "Max", "Desired"}
	widths := []int{32, 5, 5, 8}

	rows := make([][]Cell, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []Cell{
			{g.Name, NameStyle},
			{strconv.Itoa(g.MinSize), ValueStyle},
			{strconv.Itoa(g.MaxSize), ValueStyle},
			{strconv.Itoa(g.DesiredCapacity), ValueStyle},
		})
	}

	PrintTable(headers, widths, rows)
}

// PrintHealthCheck prints a load balancer's health check settings
func PrintHealthCheck(hc pkgtypes.HealthCheck) {
	fmt.Println("Health Check:")
	fmt.Printf("  Target:               %s\n", hc.Target)
	fmt.Printf("  Interval:             %d\n", hc.Interval)
	fmt.Printf("  Timeout:              %d\n", hc.Timeout)
	fmt.Printf("  Unhealthy Threshold:  %d\n", hc.UnhealthyThreshold)
	fmt.Printf("  Healthy Threshold:    %d\n", hc.HealthyThreshold)
}
