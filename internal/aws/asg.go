package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/autoscaling"

	pkgtypes "github.com/repos-devops/asgard/pkg/types"
)

// GroupsForLoadBalancer returns the auto scaling groups that route
// traffic through the named classic load balancer. This is a
// read-only lookup; attachment is managed elsewhere.
func (c *Client) GroupsForLoadBalancer(ctx context.Context, lbName string) ([]pkgtypes.AutoScalingGroup, error) {
	var groups []pkgtypes.AutoScalingGroup
	var nextToken *string

	for {
		output, err := c.ASG.DescribeAutoScalingGroups(ctx, &autoscaling.DescribeAutoScalingGroupsInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to describe auto scaling groups: %w", err)
		}

		for _, g := range output.AutoScalingGroups {
			for _, attached := range g.LoadBalancerNames {
				if attached == lbName {
					groups = append(groups, pkgtypes.AutoScalingGroup{
						Name:              deref(g.AutoScalingGroupName),
						MinSize:           int(derefInt32(g.MinSize)),
						MaxSize:           int(derefInt32(g.MaxSize)),
						DesiredCapacity:   int(derefInt32(g.DesiredCapacity)),
						LoadBalancerNames: g.LoadBalancerNames,
					})
					break
				}
			}
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return groups, nil
}
