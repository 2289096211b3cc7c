package types

import "time"

// LoadBalancer represents a classic Elastic Load Balancer.
type LoadBalancer struct {
	Name        string
	DNSName     string
	Scheme      string // internet-facing, internal
	VPCID       string
	Zones       []string
	Listeners   []Listener
	HealthCheck HealthCheck
	CreatedAt   time.Time
}

// Listener maps traffic on a load balancer port to an instance port.
// A load balancer holds at most one listener per load balancer port.
type Listener struct {
	Protocol         string
	LoadBalancerPort int
	InstancePort     int
}

// HealthCheck holds the health check configuration of a load balancer.
// Exactly one health check is attached to a load balancer; updates
// replace it wholesale.
type HealthCheck struct {
	Target             string // protocol:port[/path], e.g. HTTP:7001/healthcheck
	Interval           int
	Timeout            int
	UnhealthyThreshold int
	HealthyThreshold   int
}

// Zone is an availability zone offered by the current region.
type Zone struct {
	Name  string
	State string
}

// AutoScalingGroup is the read-only view of an auto scaling group,
// used to show which groups route traffic through a load balancer.
type AutoScalingGroup struct {
	Name              string
	MinSize           int
	MaxSize           int
	DesiredCapacity   int
	LoadBalancerNames []string
}
