package elb

import (
	"context"
	"fmt"

	"github.com/repos-devops/asgard/pkg/name"
	"github.com/repos-devops/asgard/pkg/provider"
	"github.com/repos-devops/asgard/pkg/types"
)

const (
	minPort = 0
	maxPort = 65535

	minHealthCheckValue = 0
	maxHealthCheckValue = 1000
)

// ListenerInput is the raw listener fields as supplied by the
// operator. Ports are pointers so that an absent port can be told
// apart from port zero.
type ListenerInput struct {
	Protocol         string
	LoadBalancerPort *int
	InstancePort     *int
}

// set reports whether any listener field was supplied.
func (in ListenerInput) set() bool {
	return in.Protocol != "" || in.LoadBalancerPort != nil || in.InstancePort != nil
}

// Listener converts validated input into a listener value.
func (in ListenerInput) Listener() types.Listener {
	l := types.Listener{Protocol: in.Protocol}
	if in.LoadBalancerPort != nil {
		l.LoadBalancerPort = *in.LoadBalancerPort
	}
	if in.InstancePort != nil {
		l.InstancePort = *in.InstancePort
	}
	return l
}

// CreateCommand is the operator input for creating a load balancer.
// Stack and NewStack mirror the two form fields: one for choosing an
// existing stack, one for typing a new one. Supplying both is a
// validation error.
type CreateCommand struct {
	AppName  string
	Stack    string
	NewStack string
	Detail   string

	Zones []string

	Listener1 ListenerInput
	Listener2 ListenerInput

	HealthCheck types.HealthCheck
}

// StackChoice folds the two stack fields into their tagged form. It
// assumes Validate has already rejected input with both fields set;
// when both are present the existing stack wins.
func (c *CreateCommand) StackChoice() name.StackChoice {
	switch {
	case c.Stack != "":
		return name.ExistingStack(c.Stack)
	case c.NewStack != "":
		return name.NewStack(c.NewStack)
	default:
		return name.NoStack()
	}
}

// ResourceName composes the load balancer name from the command's
// naming components.
func (c *CreateCommand) ResourceName() (string, error) {
	return name.Build(c.AppName, c.StackChoice(), c.Detail)
}

// Listeners returns the listener values the command describes: the
// mandatory primary and, when supplied, the secondary.
func (c *CreateCommand) Listeners() []types.Listener {
	listeners := []types.Listener{c.Listener1.Listener()}
	if c.Listener2.set() {
		listeners = append(listeners, c.Listener2.Listener())
	}
	return listeners
}

// Validate checks the whole command and collects every field-level
// failure. The registry collaborator is passed in explicitly; nothing
// here reads ambient request state. A nil return means the command is
// valid.
func (c *CreateCommand) Validate(ctx context.Context, registry provider.AppRegistry) *ValidationError {
	ve := &ValidationError{}

	c.validateNaming(ctx, registry, ve)
	validateListener("listener1", c.Listener1, true, ve)
	validateListener("listener2", c.Listener2, false, ve)
	validateHealthCheck(c.HealthCheck, ve)

	if len(c.Zones) == 0 {
		ve.add("zones", "select at least one availability zone")
	}

	if ve.ok() {
		return nil
	}
	return ve
}

func (c *CreateCommand) validateNaming(ctx context.Context, registry provider.AppRegistry, ve *ValidationError) {
	if !name.CheckStrictName(c.AppName) {
		ve.add("appName", "application name must contain only letters and numbers")
	} else if registry != nil {
		registered, err := registry.IsRegisteredForLoadBalancer(ctx, c.AppName)
		if err != nil {
			ve.add("appName", fmt.Sprintf("unable to resolve application: %v", err))
		} else if !registered {
			ve.add("appName", fmt.Sprintf("application %q is not registered to own a load balancer", c.AppName))
		}
	}

	if c.Stack != "" && c.NewStack != "" {
		ve.add("stack.matchesNewStack", "choose an existing stack or enter a new one, not both")
	}
	if !name.CheckName(c.Stack) {
		ve.add("stack", "stack must contain only letters and numbers")
	}
	if !name.CheckName(c.NewStack) {
		ve.add("newStack", "new stack must contain only letters and numbers")
	}
	if !name.CheckDetail(c.Detail) {
		ve.add("detail", "detail must contain only letters, numbers and hyphens")
	}

	components := []struct {
		field string
		value string
	}{
		{"appName", c.AppName},
		{"stack", c.Stack},
		{"newStack", c.NewStack},
		{"detail", c.Detail},
	}
	for _, comp := range components {
		if comp.value != "" && name.UsesReservedFormat(comp.value) {
			ve.add(comp.field, fmt.Sprintf("%q is a reserved format and cannot be used in a name", comp.value))
		}
	}

	if ve.ok() {
		if _, err := c.ResourceName(); err != nil {
			ve.add("appName", err.Error())
		}
	}
}

// validateListener checks one listener's fields. A required listener
// must be fully supplied; an optional listener may be wholly absent,
// but partial input is an error.
func validateListener(field string, in ListenerInput, required bool, ve *ValidationError) {
	if !required && !in.set() {
		return
	}

	if in.Protocol == "" {
		ve.add(field+".protocol", "enter a protocol")
	}
	if in.LoadBalancerPort == nil || in.InstancePort == nil {
		ve.add(field, "enter port numbers for both the load balancer and the instance")
		return
	}
	if *in.LoadBalancerPort < minPort || *in.LoadBalancerPort > maxPort {
		ve.add(field+".loadBalancerPort", fmt.Sprintf("port must be between %d and %d", minPort, maxPort))
	}
	if *in.InstancePort < minPort || *in.InstancePort > maxPort {
		ve.add(field+".instancePort", fmt.Sprintf("port must be between %d and %d", minPort, maxPort))
	}
}

// validateHealthCheck range-checks every health check field. Interval
// versus timeout ordering is deliberately not enforced.
func validateHealthCheck(hc types.HealthCheck, ve *ValidationError) {
	if hc.Target == "" {
		ve.add("healthCheck.target", "enter a health check target, e.g. HTTP:7001/healthcheck")
	}
	fields := []struct {
		field string
		value int
	}{
		{"healthCheck.interval", hc.Interval},
		{"healthCheck.timeout", hc.Timeout},
		{"healthCheck.unhealthyThreshold", hc.UnhealthyThreshold},
		{"healthCheck.healthyThreshold", hc.HealthyThreshold},
	}
	for _, f := range fields {
		if f.value < minHealthCheckValue || f.value > maxHealthCheckValue {
			ve.add(f.field, fmt.Sprintf("value must be between %d and %d", minHealthCheckValue, maxHealthCheckValue))
		}
	}
}

// ValidateListenerInput checks a standalone listener for the
// add-listener operation.
func ValidateListenerInput(in ListenerInput) *ValidationError {
	ve := &ValidationError{}
	validateListener("listener", in, true, ve)
	if ve.ok() {
		return nil
	}
	return ve
}

// ValidatePort checks a load balancer port for the remove-listener
// operation.
func ValidatePort(port int) *ValidationError {
	ve := &ValidationError{}
	if port < minPort || port > maxPort {
		ve.add("loadBalancerPort", fmt.Sprintf("port must be between %d and %d", minPort, maxPort))
	}
	if ve.ok() {
		return nil
	}
	return ve
}

// ValidateHealthCheck checks a standalone health check for the update
// operation.
func ValidateHealthCheck(hc types.HealthCheck) *ValidationError {
	ve := &ValidationError{}
	validateHealthCheck(hc, ve)
	if ve.ok() {
		return nil
	}
	return ve
}
