// Package provider defines the collaborator contracts the load
// balancer orchestrator depends on. Implementations live under
// internal/aws and internal/config; tests substitute fakes.
package provider

import (
	"context"
	"errors"

	"github.com/repos-devops/asgard/pkg/types"
)

// Common errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrNotConfigured = errors.New("provider not configured")
)

// CloudLB defines the cloud load balancing API surface this tool
// drives. Every call is synchronous; timeouts and cancellation belong
// to the implementation and the supplied context.
type CloudLB interface {
	// Create provisions a load balancer with its initial zones and
	// listeners.
	Create(ctx context.Context, name string, zones []string, listeners []types.Listener) error

	// Describe returns the load balancer, or ErrNotFound.
	Describe(ctx context.Context, name string) (*types.LoadBalancer, error)

	// Delete removes the load balancer.
	Delete(ctx context.Context, name string) error

	// AddZones attaches availability zones.
	AddZones(ctx context.Context, name string, zones []string) error

	// RemoveZones detaches availability zones.
	RemoveZones(ctx context.Context, name string, zones []string) error

	// AddListeners creates listeners on the load balancer.
	AddListeners(ctx context.Context, name string, listeners []types.Listener) error

	// RemoveListeners deletes the listeners on the given ports.
	RemoveListeners(ctx context.Context, name string, ports []int) error

	// SetHealthCheck replaces the load balancer's health check.
	SetHealthCheck(ctx context.Context, name string, hc types.HealthCheck) error
}

// AppRegistry resolves whether an application is registered and may
// own a load balancer.
type AppRegistry interface {
	IsRegisteredForLoadBalancer(ctx context.Context, appName string) (bool, error)
}

// ZoneCatalog enumerates the availability zones offered in the
// current region.
type ZoneCatalog interface {
	AvailableZones(ctx context.Context) ([]types.Zone, error)
}

// ASGLookup is the read-only view of auto scaling group attachment.
// The orchestrator never mutates attachment; describe output surfaces
// which groups route traffic through a load balancer.
type ASGLookup interface {
	GroupsForLoadBalancer(ctx context.Context, lbName string) ([]types.AutoScalingGroup, error)
}
