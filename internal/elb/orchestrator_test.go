package elb

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repos-devops/asgard/pkg/provider"
	"github.com/repos-devops/asgard/pkg/types"
)

// fakeRegistry is an in-memory application registry.
type fakeRegistry struct {
	apps map[string]bool
}

func registeredApps(apps ...string) *fakeRegistry {
	r := &fakeRegistry{apps: make(map[string]bool)}
	for _, a := range apps {
		r.apps[a] = true
	}
	return r
}

func (r *fakeRegistry) IsRegisteredForLoadBalancer(_ context.Context, appName string) (bool, error) {
	return r.apps[appName], nil
}

// fakeCloud records calls and fails the operations listed in failOn.
type fakeCloud struct {
	lbs    map[string]*types.LoadBalancer
	failOn map[string]error
	calls  []string
}

func newFakeCloud() *fakeCloud {
	return &fakeCloud{
		lbs:    make(map[string]*types.LoadBalancer),
		failOn: make(map[string]error),
	}
}

func (c *fakeCloud) fail(op string, err error) { c.failOn[op] = err }

func (c *fakeCloud) do(op string) error {
	c.calls = append(c.calls, op)
	return c.failOn[op]
}

func (c *fakeCloud) Create(_ context.Context, name string, zones []string, listeners []types.Listener) error {
	if err := c.do("create"); err != nil {
		return err
	}
	c.lbs[name] = &types.LoadBalancer{Name: name, Zones: zones, Listeners: listeners}
	return nil
}

func (c *fakeCloud) Describe(_ context.Context, name string) (*types.LoadBalancer, error) {
	if err := c.do("describe"); err != nil {
		return nil, err
	}
	lb, ok := c.lbs[name]
	if !ok {
		return nil, provider.ErrNotFound
	}
	return lb, nil
}

func (c *fakeCloud) Delete(_ context.Context, name string) error {
	if err := c.do("delete"); err != nil {
		return err
	}
	delete(c.lbs, name)
	return nil
}

func (c *fakeCloud) AddZones(_ context.Context, name string, zones []string) error {
	if err := c.do("addZones"); err != nil {
		return err
	}
	if lb, ok := c.lbs[name]; ok {
		lb.Zones = append(lb.Zones, zones...)
	}
	return nil
}

func (c *fakeCloud) RemoveZones(_ context.Context, name string, zones []string) error {
	if err := c.do("removeZones"); err != nil {
		return err
	}
	lb, ok := c.lbs[name]
	if !ok {
		return nil
	}
	remove := make(map[string]bool, len(zones))
	for _, z := range zones {
		remove[z] = true
	}
	var kept []string
	for _, z := range lb.Zones {
		if !remove[z] {
			kept = append(kept, z)
		}
	}
	lb.Zones = kept
	return nil
}

func (c *fakeCloud) AddListeners(_ context.Context, name string, listeners []types.Listener) error {
	if err := c.do("addListeners"); err != nil {
		return err
	}
	if lb, ok := c.lbs[name]; ok {
		lb.Listeners = append(lb.Listeners, listeners...)
	}
	return nil
}

func (c *fakeCloud) RemoveListeners(_ context.Context, name string, ports []int) error {
	return c.do("removeListeners")
}

func (c *fakeCloud) SetHealthCheck(_ context.Context, name string, hc types.HealthCheck) error {
	if err := c.do("setHealthCheck"); err != nil {
		return err
	}
	if lb, ok := c.lbs[name]; ok {
		lb.HealthCheck = hc
	}
	return nil
}

func newTestOrchestrator(cloud *fakeCloud, apps ...string) *Orchestrator {
	return NewOrchestrator(cloud, registeredApps(apps...), nil)
}

func TestCreateSuccess(t *testing.T) {
	cloud := newFakeCloud()
	o := newTestOrchestrator(cloud, "helloworld")

	res, err := o.Create(context.Background(), validCreateCommand())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "helloworld-test", res.ResourceName)

	lb := cloud.lbs["helloworld-test"]
	require.NotNil(t, lb)
	assert.Equal(t, []string{"us-east-1a"}, lb.Zones)
	assert.Equal(t, "HTTP:7001/healthcheck", lb.HealthCheck.Target)
	assert.Equal(t, []string{"create", "setHealthCheck"}, cloud.calls)
}

func TestCreateValidationFailureMakesNoCloudCalls(t *testing.T) {
	cloud := newFakeCloud()
	o := newTestOrchestrator(cloud, "helloworld")

	cmd := validCreateCommand()
	cmd.NewStack = "other"
	res, err := o.Create(context.Background(), cmd)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.FieldErrors)
	assert.Empty(t, cloud.calls, "validation failures must precede any cloud call")
}

func TestCreateUpstreamFailure(t *testing.T) {
	cloud := newFakeCloud()
	cloud.fail("create", errors.New("limit exceeded"))
	o := newTestOrchestrator(cloud, "helloworld")

	cmd := validCreateCommand()
	res, err := o.Create(context.Background(), cmd)

	var cerr *CreateError
	require.ErrorAs(t, err, &cerr)
	assert.Same(t, cmd, cerr.Command, "the original command must be retained for resubmission")
	assert.False(t, res.Success)
	assert.Equal(t, []string{"create"}, cloud.calls, "no health check call after a failed create")
}

func TestCreateHealthCheckFailureReportsPartialSuccess(t *testing.T) {
	cloud := newFakeCloud()
	cloud.fail("setHealthCheck", errors.New("throttled"))
	o := newTestOrchestrator(cloud, "helloworld")

	res, err := o.Create(context.Background(), validCreateCommand())

	var pf *PartialFailure
	require.ErrorAs(t, err, &pf)
	assert.False(t, res.Success)
	assert.Equal(t, "helloworld-test", res.ResourceName, "the operator must be directed to the created resource")
	assert.Contains(t, res.Message, "created")
	assert.NotNil(t, cloud.lbs["helloworld-test"], "the load balancer exists despite the failure")
}

func TestUpdateReconcilesZones(t *testing.T) {
	cloud := newFakeCloud()
	cloud.lbs["api-prod"] = &types.LoadBalancer{
		Name:  "api-prod",
		Zones: []string{"us-east-1a", "us-east-1b"},
	}
	o := newTestOrchestrator(cloud)

	res, err := o.Update(context.Background(), "api-prod",
		[]string{"us-east-1b", "us-east-1c"}, validHealthCheck())
	require.NoError(t, err)
	assert.True(t, res.Success)

	lb := cloud.lbs["api-prod"]
	assert.ElementsMatch(t, []string{"us-east-1b", "us-east-1c"}, lb.Zones)
	assert.Equal(t, "HTTP:7001/healthcheck", lb.HealthCheck.Target)
	assert.Equal(t, []string{"describe", "addZones", "removeZones", "setHealthCheck"}, cloud.calls)
}

func TestUpdateNoZoneChanges(t *testing.T) {
	cloud := newFakeCloud()
	cloud.lbs["api-prod"] = &types.LoadBalancer{
		Name:  "api-prod",
		Zones: []string{"us-east-1a"},
	}
	o := newTestOrchestrator(cloud)

	res, err := o.Update(context.Background(), "api-prod", []string{"us-east-1a"}, validHealthCheck())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Contains(t, res.Message, "no changes required")
	assert.NotContains(t, cloud.calls, "addZones")
	assert.NotContains(t, cloud.calls, "removeZones")
	assert.Contains(t, cloud.calls, "setHealthCheck")
}

func TestUpdateZoneAddAppliedWhenHealthCheckInvalid(t *testing.T) {
	cloud := newFakeCloud()
	cloud.lbs["api-prod"] = &types.LoadBalancer{
		Name:  "api-prod",
		Zones: []string{"us-east-1a"},
	}
	o := newTestOrchestrator(cloud)

	res, err := o.Update(context.Background(), "api-prod",
		[]string{"us-east-1a", "us-east-1b"}, types.HealthCheck{})

	var pf *PartialFailure
	require.ErrorAs(t, err, &pf)
	assert.False(t, res.Success)

	// The zone add is confirmed applied; only the health check failed.
	require.Len(t, res.Outcomes, 3)
	assert.Equal(t, "add zones", res.Outcomes[0].Op)
	assert.NoError(t, res.Outcomes[0].Err)
	assert.True(t, res.Outcomes[0].Changed)
	assert.Equal(t, "health check", res.Outcomes[2].Op)
	assert.Error(t, res.Outcomes[2].Err)

	assert.ElementsMatch(t, []string{"us-east-1a", "us-east-1b"}, cloud.lbs["api-prod"].Zones)
	assert.NotContains(t, cloud.calls, "setHealthCheck", "an invalid health check is never sent upstream")
}

func TestUpdateRemoveFailureDoesNotBlockAdd(t *testing.T) {
	cloud := newFakeCloud()
	cloud.lbs["api-prod"] = &types.LoadBalancer{
		Name:  "api-prod",
		Zones: []string{"us-east-1a"},
	}
	cloud.fail("removeZones", errors.New("zone busy"))
	o := newTestOrchestrator(cloud)

	res, err := o.Update(context.Background(), "api-prod", []string{"us-east-1b"}, validHealthCheck())

	var pf *PartialFailure
	require.ErrorAs(t, err, &pf)
	assert.Contains(t, cloud.calls, "addZones")
	assert.Contains(t, cloud.calls, "removeZones")
	assert.Contains(t, cloud.calls, "setHealthCheck")

	require.Len(t, res.Outcomes, 3)
	assert.NoError(t, res.Outcomes[0].Err)
	assert.Error(t, res.Outcomes[1].Err)
	assert.NoError(t, res.Outcomes[2].Err)
}

func TestUpdateNotFound(t *testing.T) {
	o := newTestOrchestrator(newFakeCloud())

	res, err := o.Update(context.Background(), "missing", []string{"us-east-1a"}, validHealthCheck())

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "missing", nf.Name)
	assert.False(t, res.Success)
}

func TestDeleteSuccess(t *testing.T) {
	cloud := newFakeCloud()
	cloud.lbs["api-prod"] = &types.LoadBalancer{Name: "api-prod"}
	o := newTestOrchestrator(cloud)

	res, err := o.Delete(context.Background(), "api-prod")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.NotContains(t, cloud.lbs, "api-prod")
}

func TestDeleteFailure(t *testing.T) {
	cloud := newFakeCloud()
	cloud.lbs["api-prod"] = &types.LoadBalancer{Name: "api-prod"}
	cloud.fail("delete", errors.New("in use"))
	o := newTestOrchestrator(cloud)

	res, err := o.Delete(context.Background(), "api-prod")

	var derr *DeleteError
	require.ErrorAs(t, err, &derr)
	assert.False(t, res.Success)
	assert.Equal(t, "api-prod", res.ResourceName)
	assert.Contains(t, cloud.lbs, "api-prod", "the resource is assumed to still exist")
}

func TestAddListener(t *testing.T) {
	cloud := newFakeCloud()
	cloud.lbs["api-prod"] = &types.LoadBalancer{Name: "api-prod"}
	o := newTestOrchestrator(cloud)

	res, err := o.AddListener(context.Background(), "api-prod", ListenerInput{
		Protocol:         "HTTPS",
		LoadBalancerPort: intPtr(443),
		InstancePort:     intPtr(7002),
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	require.Len(t, cloud.lbs["api-prod"].Listeners, 1)
	assert.Equal(t, 443, cloud.lbs["api-prod"].Listeners[0].LoadBalancerPort)
}

func TestAddListenerValidation(t *testing.T) {
	cloud := newFakeCloud()
	o := newTestOrchestrator(cloud)

	res, err := o.AddListener(context.Background(), "api-prod", ListenerInput{Protocol: "HTTP"})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.False(t, res.Success)
	assert.Empty(t, cloud.calls)
}

func TestRemoveListener(t *testing.T) {
	cloud := newFakeCloud()
	o := newTestOrchestrator(cloud)

	res, err := o.RemoveListener(context.Background(), "api-prod", 443)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, []string{"removeListeners"}, cloud.calls)

	_, err = o.RemoveListener(context.Background(), "api-prod", 70000)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestRemoveListenerUpstreamFailure(t *testing.T) {
	cloud := newFakeCloud()
	cloud.fail("removeListeners", errors.New("listener not found"))
	o := newTestOrchestrator(cloud)

	res, err := o.RemoveListener(context.Background(), "api-prod", 443)

	var uerr *UpdateError
	require.ErrorAs(t, err, &uerr)
	assert.Contains(t, uerr.Attempted, "443")
	assert.False(t, res.Success)
}
