package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	elb "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing"
	elbtypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing/types"

	"github.com/repos-devops/asgard/pkg/provider"
	pkgtypes "github.com/repos-devops/asgard/pkg/types"
)

// ListLoadBalancers returns all classic load balancers in the region.
func (c *Client) ListLoadBalancers(ctx context.Context) ([]pkgtypes.LoadBalancer, error) {
	var lbs []pkgtypes.LoadBalancer
	var marker *string

	for {
		output, err := c.ELB.DescribeLoadBalancers(ctx, &elb.DescribeLoadBalancersInput{
			Marker: marker,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to describe load balancers: %w", err)
		}

		for _, d := range output.LoadBalancerDescriptions {
			lbs = append(lbs, toLoadBalancer(d))
		}

		if output.NextMarker == nil || *output.NextMarker == "" {
			break
		}
		marker = output.NextMarker
	}

	return lbs, nil
}

// Describe returns the named load balancer, or provider.ErrNotFound.
func (c *Client) Describe(ctx context.Context, name string) (*pkgtypes.LoadBalancer, error) {
	output, err := c.ELB.DescribeLoadBalancers(ctx, &elb.DescribeLoadBalancersInput{
		LoadBalancerNames: []string{name},
	})
	if err != nil {
		var notFound *elbtypes.AccessPointNotFoundException
		if errors.As(err, &notFound) {
			return nil, provider.ErrNotFound
		}
		return nil, fmt.Errorf("failed to describe load balancer %q: %w", name, err)
	}

	if len(output.LoadBalancerDescriptions) == 0 {
		return nil, provider.ErrNotFound
	}

	lb := toLoadBalancer(output.LoadBalancerDescriptions[0])
	return &lb, nil
}

// Create provisions a classic load balancer.
func (c *Client) Create(ctx context.Context, name string, zones []string, listeners []pkgtypes.Listener) error {
	_, err := c.ELB.CreateLoadBalancer(ctx, &elb.CreateLoadBalancerInput{
		LoadBalancerName:  aws.String(name),
		AvailabilityZones: zones,
		Listeners:         toSDKListeners(listeners),
	})
	if err != nil {
		return fmt.Errorf("failed to create load balancer %q: %w", name, err)
	}
	return nil
}

// Delete removes the load balancer. The cloud API treats deleting an
// absent load balancer as success, and so does this call.
func (c *Client) Delete(ctx context.Context, name string) error {
	_, err := c.ELB.DeleteLoadBalancer(ctx, &elb.DeleteLoadBalancerInput{
		LoadBalancerName: aws.String(name),
	})
	if err != nil {
		return fmt.Errorf("failed to delete load balancer %q: %w", name, err)
	}
	return nil
}

// AddZones attaches availability zones to the load balancer.
func (c *Client) AddZones(ctx context.Context, name string, zones []string) error {
	_, err := c.ELB.EnableAvailabilityZonesForLoadBalancer(ctx, &elb.EnableAvailabilityZonesForLoadBalancerInput{
		LoadBalancerName:  aws.String(name),
		AvailabilityZones: zones,
	})
	if err != nil {
		return fmt.Errorf("failed to add zones to load balancer %q: %w", name, err)
	}
	return nil
}

// RemoveZones detaches availability zones from the load balancer.
func (c *Client) RemoveZones(ctx context.Context, name string, zones []string) error {
	_, err := c.ELB.DisableAvailabilityZonesForLoadBalancer(ctx, &elb.DisableAvailabilityZonesForLoadBalancerInput{
		LoadBalancerName:  aws.String(name),
		AvailabilityZones: zones,
	})
	if err != nil {
		return fmt.Errorf("failed to remove zones from load balancer %q: %w", name, err)
	}
	return nil
}

// AddListeners creates listeners on the load balancer.
func (c *Client) AddListeners(ctx context.Context, name string, listeners []pkgtypes.Listener) error {
	_, err := c.ELB.CreateLoadBalancerListeners(ctx, &elb.CreateLoadBalancerListenersInput{
		LoadBalancerName: aws.String(name),
		Listeners:        toSDKListeners(listeners),
	})
	if err != nil {
		return fmt.Errorf("failed to add listeners to load balancer %q: %w", name, err)
	}
	return nil
}

// RemoveListeners deletes the listeners bound to the given ports.
func (c *Client) RemoveListeners(ctx context.Context, name string, ports []int) error {
	sdkPorts := make([]int32, len(ports))
	for i, p := range ports {
		sdkPorts[i] = int32(p)
	}

	_, err := c.ELB.DeleteLoadBalancerListeners(ctx, &elb.DeleteLoadBalancerListenersInput{
		LoadBalancerName:  aws.String(name),
		LoadBalancerPorts: sdkPorts,
	})
	if err != nil {
		return fmt.Errorf("failed to remove listeners from load balancer %q: %w", name, err)
	}
	return nil
}

// SetHealthCheck replaces the load balancer's health check.
func (c *Client) SetHealthCheck(ctx context.Context, name string, hc pkgtypes.HealthCheck) error {
	_, err := c.ELB.ConfigureHealthCheck(ctx, &elb.ConfigureHealthCheckInput{
		LoadBalancerName: aws.String(name),
		HealthCheck: &elbtypes.HealthCheck{
			Target:             aws.String(hc.Target),
			Interval:           aws.Int32(int32(hc.Interval)),
			Timeout:            aws.Int32(int32(hc.Timeout)),
			UnhealthyThreshold: aws.Int32(int32(hc.UnhealthyThreshold)),
			HealthyThreshold:   aws.Int32(int32(hc.HealthyThreshold)),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to configure health check on load balancer %q: %w", name, err)
	}
	return nil
}

// toLoadBalancer converts an ELB description to our LoadBalancer type
func toLoadBalancer(d elbtypes.LoadBalancerDescription) pkgtypes.LoadBalancer {
	result := pkgtypes.LoadBalancer{
		Name:    deref(d.LoadBalancerName),
		DNSName: deref(d.DNSName),
		Scheme:  deref(d.Scheme),
		VPCID:   deref(d.VPCId),
		Zones:   d.AvailabilityZones,
	}

	if d.CreatedTime != nil {
		result.CreatedAt = *d.CreatedTime
	}

	for _, ld := range d.ListenerDescriptions {
		if ld.Listener == nil {
			continue
		}
		result.Listeners = append(result.Listeners, pkgtypes.Listener{
			Protocol:         deref(ld.Listener.Protocol),
			LoadBalancerPort: int(ld.Listener.LoadBalancerPort),
			InstancePort:     int(derefInt32(ld.Listener.InstancePort)),
		})
	}

	if d.HealthCheck != nil {
		result.HealthCheck = pkgtypes.HealthCheck{
			Target:             deref(d.HealthCheck.Target),
			Interval:           int(derefInt32(d.HealthCheck.Interval)),
			Timeout:            int(derefInt32(d.HealthCheck.Timeout)),
			UnhealthyThreshold: int(derefInt32(d.HealthCheck.UnhealthyThreshold)),
			HealthyThreshold:   int(derefInt32(d.HealthCheck.HealthyThreshold)),
		}
	}

	return result
}

// toSDKListeners converts listener values to the SDK's listener type
func toSDKListeners(listeners []pkgtypes.Listener) []elbtypes.Listener {
	sdk := make([]elbtypes.Listener, len(listeners))
	for i, l := range listeners {
		sdk[i] = elbtypes.Listener{
			Protocol:         aws.String(l.Protocol),
			LoadBalancerPort: int32(l.LoadBalancerPort),
			InstancePort:     aws.Int32(int32(l.InstancePort)),
		}
	}
	return sdk
}
