package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/ec2"

	pkgtypes "github.com/repos-devops/asgard/pkg/types"
)

// AvailableZones returns the availability zones offered in the
// configured region.
func (c *Client) AvailableZones(ctx context.Context) ([]pkgtypes.Zone, error) {
	output, err := c.EC2.DescribeAvailabilityZones(ctx, &ec2.DescribeAvailabilityZonesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to describe availability zones: %w", err)
	}

	var zones []pkgtypes.Zone
	for _, az := range output.AvailabilityZones {
		zones = append(zones, pkgtypes.Zone{
			Name:  deref(az.ZoneName),
			State: string(az.State),
		})
	}

	return zones, nil
}
