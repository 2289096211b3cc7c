package elb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repos-devops/asgard/pkg/types"
)

func intPtr(i int) *int { return &i }

func validHealthCheck() types.HealthCheck {
	return types.HealthCheck{
		Target:             "HTTP:7001/healthcheck",
		Interval:           10,
		Timeout:            5,
		UnhealthyThreshold: 2,
		HealthyThreshold:   10,
	}
}

func validCreateCommand() *CreateCommand {
	return &CreateCommand{
		AppName: "helloworld",
		Stack:   "test",
		Zones:   []string{"us-east-1a"},
		Listener1: ListenerInput{
			Protocol:         "HTTP",
			LoadBalancerPort: intPtr(80),
			InstancePort:     intPtr(7001),
		},
		HealthCheck: validHealthCheck(),
	}
}

// fieldNames extracts the failed field names for assertion.
func fieldNames(ve *ValidationError) []string {
	var fields []string
	for _, f := range ve.Fields {
		fields = append(fields, f.Field)
	}
	return fields
}

func TestValidateCreateCommandValid(t *testing.T) {
	cmd := validCreateCommand()
	ve := cmd.Validate(context.Background(), registeredApps("helloworld"))
	assert.Nil(t, ve)
}

func TestValidateStackMatchesNewStack(t *testing.T) {
	cmd := validCreateCommand()
	cmd.NewStack = "other"
	ve := cmd.Validate(context.Background(), registeredApps("helloworld"))
	require.NotNil(t, ve)
	assert.Contains(t, fieldNames(ve), "stack.matchesNewStack")
}

func TestValidateUnregisteredApp(t *testing.T) {
	cmd := validCreateCommand()
	ve := cmd.Validate(context.Background(), registeredApps("otherapp"))
	require.NotNil(t, ve)
	assert.Contains(t, fieldNames(ve), "appName")
}

func TestValidateReservedFormats(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateCommand)
		field  string
	}{
		{"numeric stack", func(c *CreateCommand) { c.Stack = "123" }, "stack"},
		{"push-format new stack", func(c *CreateCommand) { c.Stack = ""; c.NewStack = "v000" }, "newStack"},
		{"numeric detail", func(c *CreateCommand) { c.Detail = "456" }, "detail"},
		{"push-format detail", func(c *CreateCommand) { c.Detail = "v123" }, "detail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := validCreateCommand()
			tt.mutate(cmd)
			ve := cmd.Validate(context.Background(), registeredApps("helloworld"))
			require.NotNil(t, ve)
			assert.Contains(t, fieldNames(ve), tt.field)
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cmd := &CreateCommand{
		AppName: "bad name",
		Stack:   "pr-od",
		Detail:  "x y",
		Listener1: ListenerInput{
			Protocol:         "",
			LoadBalancerPort: intPtr(99999),
			InstancePort:     intPtr(-1),
		},
		HealthCheck: types.HealthCheck{},
	}
	ve := cmd.Validate(context.Background(), registeredApps())
	require.NotNil(t, ve)

	fields := fieldNames(ve)
	assert.Contains(t, fields, "appName")
	assert.Contains(t, fields, "stack")
	assert.Contains(t, fields, "detail")
	assert.Contains(t, fields, "listener1.protocol")
	assert.Contains(t, fields, "listener1.loadBalancerPort")
	assert.Contains(t, fields, "listener1.instancePort")
	assert.Contains(t, fields, "healthCheck.target")
	assert.Contains(t, fields, "zones")
}

func TestValidateListenerPortBoundaries(t *testing.T) {
	cmd := validCreateCommand()
	cmd.Listener1.LoadBalancerPort = intPtr(0)
	cmd.Listener1.InstancePort = intPtr(65535)
	assert.Nil(t, cmd.Validate(context.Background(), registeredApps("helloworld")))

	cmd.Listener1.LoadBalancerPort = intPtr(65536)
	ve := cmd.Validate(context.Background(), registeredApps("helloworld"))
	require.NotNil(t, ve)
	assert.Contains(t, fieldNames(ve), "listener1.loadBalancerPort")
}

func TestValidatePartialSecondaryListener(t *testing.T) {
	cmd := validCreateCommand()
	cmd.Listener2 = ListenerInput{Protocol: "HTTPS"}
	ve := cmd.Validate(context.Background(), registeredApps("helloworld"))
	require.NotNil(t, ve)

	require.Len(t, ve.Fields, 1)
	assert.Equal(t, "listener2", ve.Fields[0].Field)
	assert.Contains(t, ve.Fields[0].Message, "port numbers")
}

func TestValidateCompleteSecondaryListener(t *testing.T) {
	cmd := validCreateCommand()
	cmd.Listener2 = ListenerInput{
		Protocol:         "HTTPS",
		LoadBalancerPort: intPtr(443),
		InstancePort:     intPtr(7002),
	}
	assert.Nil(t, cmd.Validate(context.Background(), registeredApps("helloworld")))
	assert.Len(t, cmd.Listeners(), 2)
}

func TestValidateHealthCheckRanges(t *testing.T) {
	hc := validHealthCheck()
	hc.Interval = 1000
	assert.Nil(t, ValidateHealthCheck(hc))

	hc.Interval = 1001
	ve := ValidateHealthCheck(hc)
	require.NotNil(t, ve)
	assert.Contains(t, fieldNames(ve), "healthCheck.interval")

	hc = validHealthCheck()
	hc.Timeout = -1
	ve = ValidateHealthCheck(hc)
	require.NotNil(t, ve)
	assert.Contains(t, fieldNames(ve), "healthCheck.timeout")
}

func TestValidateHealthCheckNoCrossFieldRules(t *testing.T) {
	// Timeout longer than interval is accepted; ordering between the
	// two is not enforced.
	hc := validHealthCheck()
	hc.Interval = 5
	hc.Timeout = 60
	assert.Nil(t, ValidateHealthCheck(hc))
}

func TestValidatePort(t *testing.T) {
	assert.Nil(t, ValidatePort(0))
	assert.Nil(t, ValidatePort(65535))
	assert.NotNil(t, ValidatePort(-1))
	assert.NotNil(t, ValidatePort(65536))
}

func TestResourceName(t *testing.T) {
	cmd := validCreateCommand()
	got, err := cmd.ResourceName()
	require.NoError(t, err)
	assert.Equal(t, "helloworld-test", got)

	cmd.Stack = ""
	got, err = cmd.ResourceName()
	require.NoError(t, err)
	assert.Equal(t, "helloworld", got)
}
