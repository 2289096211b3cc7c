// Package elb coordinates load balancer operations: it validates
// operator commands, reconciles zone membership and health check
// configuration against desired state, and reports per-operation
// outcomes without retrying or rolling back.
package elb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/repos-devops/asgard/pkg/logger"
	"github.com/repos-devops/asgard/pkg/provider"
	"github.com/repos-devops/asgard/pkg/types"
)

// Orchestrator drives the cloud load balancing API on behalf of
// operator commands. It holds no state between calls; the load
// balancer's true state lives in the cloud.
type Orchestrator struct {
	cloud    provider.CloudLB
	registry provider.AppRegistry
	log      *logger.Logger
}

// NewOrchestrator wires the orchestrator to its collaborators. A nil
// log discards operation logs.
func NewOrchestrator(cloud provider.CloudLB, registry provider.AppRegistry, log *logger.Logger) *Orchestrator {
	if log == nil {
		log = logger.Discard()
	}
	return &Orchestrator{cloud: cloud, registry: registry, log: log}
}

// Create validates the command, provisions the load balancer, then
// applies its health check. Validation failures are collected and
// returned before any cloud call. If the create succeeds but the
// health check cannot be applied, the result still names the new
// resource so the operator can finish the job by hand.
func (o *Orchestrator) Create(ctx context.Context, cmd *CreateCommand) (*Result, error) {
	if ve := cmd.Validate(ctx, o.registry); ve != nil {
		return validationResult(ve), ve
	}

	lbName, err := cmd.ResourceName()
	if err != nil {
		// Validate already checked the composed length; reaching here
		// means the command mutated since validation.
		ve := &ValidationError{}
		ve.add("appName", err.Error())
		return validationResult(ve), ve
	}

	listeners := cmd.Listeners()
	o.log.WithComponent("elb").WithField("name", lbName).
		Debugf("creating load balancer with zones %v and %d listeners", cmd.Zones, len(listeners))

	if err := o.cloud.Create(ctx, lbName, cmd.Zones, listeners); err != nil {
		cerr := &CreateError{Command: cmd, Cause: err}
		return &Result{
			Success: false,
			Message: cerr.Error(),
		}, cerr
	}

	if err := o.cloud.SetHealthCheck(ctx, lbName, cmd.HealthCheck); err != nil {
		pf := &PartialFailure{
			Name: lbName,
			Outcomes: []Outcome{
				{Op: "create load balancer", Changed: true, Detail: lbName},
				{Op: "health check", Err: err},
			},
		}
		return &Result{
			Success:      false,
			ResourceName: lbName,
			Message:      fmt.Sprintf("load balancer %q was created, but its health check could not be applied: %v", lbName, err),
			Outcomes:     pf.Outcomes,
		}, pf
	}

	o.log.WithComponent("elb").WithField("name", lbName).Info("load balancer created")
	return &Result{
		Success:      true,
		ResourceName: lbName,
		Message:      fmt.Sprintf("load balancer %q created", lbName),
	}, nil
}

// Update reconciles the load balancer's zones against desiredZones
// and replaces its health check. The sub-operations are independent:
// each is attempted regardless of the others' outcomes and each is
// reported separately. There is no rollback.
func (o *Orchestrator) Update(ctx context.Context, lbName string, desiredZones []string, hc types.HealthCheck) (*Result, error) {
	current, err := o.cloud.Describe(ctx, lbName)
	if err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			nf := &NotFoundError{Name: lbName}
			return &Result{Success: false, ResourceName: lbName, Message: nf.Error()}, nf
		}
		uerr := &UpdateError{Name: lbName, Attempted: "describe current state", Cause: err}
		return &Result{Success: false, ResourceName: lbName, Message: uerr.Error()}, uerr
	}

	log := o.log.WithComponent("elb").WithField("name", lbName)

	diff := DiffZones(current.Zones, desiredZones)
	outcomes := make([]Outcome, 0, 3)

	addOutcome := Outcome{Op: "add zones"}
	if len(diff.ToAdd) > 0 {
		addOutcome.Changed = true
		addOutcome.Detail = strings.Join(diff.ToAdd, ", ")
		if err := o.cloud.AddZones(ctx, lbName, diff.ToAdd); err != nil {
			addOutcome.Err = err
			log.Warnf("adding zones %v failed: %v", diff.ToAdd, err)
		} else {
			log.Infof("added zones %v", diff.ToAdd)
		}
	}
	outcomes = append(outcomes, addOutcome)

	// A remove failure must not stop the add from being attempted,
	// and vice versa; order here is add first, remove second.
	removeOutcome := Outcome{Op: "remove zones"}
	if len(diff.ToRemove) > 0 {
		removeOutcome.Changed = true
		removeOutcome.Detail = strings.Join(diff.ToRemove, ", ")
		if err := o.cloud.RemoveZones(ctx, lbName, diff.ToRemove); err != nil {
			removeOutcome.Err = err
			log.Warnf("removing zones %v failed: %v", diff.ToRemove, err)
		} else {
			log.Infof("removed zones %v", diff.ToRemove)
		}
	}
	outcomes = append(outcomes, removeOutcome)

	hcOutcome := Outcome{Op: "health check", Changed: true, Detail: hc.Target}
	if ve := ValidateHealthCheck(hc); ve != nil {
		hcOutcome.Err = ve
	} else if err := o.cloud.SetHealthCheck(ctx, lbName, hc); err != nil {
		hcOutcome.Err = err
		log.Warnf("health check update failed: %v", err)
	} else {
		log.Infof("health check set to %q", hc.Target)
	}
	outcomes = append(outcomes, hcOutcome)

	result := &Result{
		ResourceName: lbName,
		Message:      summarize(outcomes),
		Outcomes:     outcomes,
	}

	switch {
	case !anyFailed(outcomes):
		result.Success = true
		return result, nil
	case anySucceeded(outcomes):
		return result, &PartialFailure{Name: lbName, Outcomes: outcomes}
	default:
		return result, &UpdateError{
			Name:      lbName,
			Attempted: "update zones and health check",
			Cause:     errors.New(summarize(outcomes)),
		}
	}
}

// Delete removes the load balancer. On failure the resource is
// assumed to still exist.
func (o *Orchestrator) Delete(ctx context.Context, lbName string) (*Result, error) {
	if err := o.cloud.Delete(ctx, lbName); err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			nf := &NotFoundError{Name: lbName}
			return &Result{Success: false, ResourceName: lbName, Message: nf.Error()}, nf
		}
		derr := &DeleteError{Name: lbName, Cause: err}
		return &Result{Success: false, ResourceName: lbName, Message: derr.Error()}, derr
	}

	o.log.WithComponent("elb").WithField("name", lbName).Info("load balancer deleted")
	return &Result{
		Success:      true,
		ResourceName: lbName,
		Message:      fmt.Sprintf("load balancer %q deleted", lbName),
	}, nil
}

// AddListener validates the listener and creates it on the load
// balancer.
func (o *Orchestrator) AddListener(ctx context.Context, lbName string, in ListenerInput) (*Result, error) {
	if ve := ValidateListenerInput(in); ve != nil {
		return validationResult(ve), ve
	}

	l := in.Listener()
	if err := o.cloud.AddListeners(ctx, lbName, []types.Listener{l}); err != nil {
		uerr := &UpdateError{
			Name:      lbName,
			Attempted: fmt.Sprintf("add listener %s:%d -> %d", l.Protocol, l.LoadBalancerPort, l.InstancePort),
			Cause:     err,
		}
		return &Result{Success: false, ResourceName: lbName, Message: uerr.Error()}, uerr
	}

	o.log.WithComponent("elb").WithField("name", lbName).
		Infof("listener %s:%d -> %d added", l.Protocol, l.LoadBalancerPort, l.InstancePort)
	return &Result{
		Success:      true,
		ResourceName: lbName,
		Message:      fmt.Sprintf("listener on port %d added to %q", l.LoadBalancerPort, lbName),
	}, nil
}

// RemoveListener validates the port and deletes the listener bound to
// it.
func (o *Orchestrator) RemoveListener(ctx context.Context, lbName string, port int) (*Result, error) {
	if ve := ValidatePort(port); ve != nil {
		return validationResult(ve), ve
	}

	if err := o.cloud.RemoveListeners(ctx, lbName, []int{port}); err != nil {
		uerr := &UpdateError{
			Name:      lbName,
			Attempted: fmt.Sprintf("remove listener on port %d", port),
			Cause:     err,
		}
		return &Result{Success: false, ResourceName: lbName, Message: uerr.Error()}, uerr
	}

	o.log.WithComponent("elb").WithField("name", lbName).Infof("listener on port %d removed", port)
	return &Result{
		Success:      true,
		ResourceName: lbName,
		Message:      fmt.Sprintf("listener on port %d removed from %q", port, lbName),
	}, nil
}
