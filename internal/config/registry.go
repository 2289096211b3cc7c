package config

import (
	"context"

	"github.com/repos-devops/asgard/pkg/provider"
)

var _ provider.AppRegistry = Registry{}

// Registry implements the application registry over the local config
// file. Each lookup re-reads the file so registrations made by a
// concurrent invocation are picked up.
type Registry struct{}

// IsRegisteredForLoadBalancer reports whether appName may own a load
// balancer.
func (Registry) IsRegisteredForLoadBalancer(_ context.Context, appName string) (bool, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return false, err
	}
	return cfg.IsRegisteredApp(appName), nil
}
