package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRegisteredApp(t *testing.T) {
	cfg := &Config{Applications: []string{"helloworld", "api"}}

	assert.True(t, cfg.IsRegisteredApp("helloworld"))
	assert.True(t, cfg.IsRegisteredApp("HelloWorld"))
	assert.True(t, cfg.IsRegisteredApp("api"))
	assert.False(t, cfg.IsRegisteredApp("unknown"))
	assert.False(t, cfg.IsRegisteredApp(""))
}

func TestRegisterApp(t *testing.T) {
	cfg := &Config{}

	cfg.RegisterApp("Zebra")
	cfg.RegisterApp("api")
	assert.Equal(t, []string{"api", "zebra"}, cfg.Applications)

	// Re-registering is a no-op, case-insensitively.
	cfg.RegisterApp("API")
	assert.Equal(t, []string{"api", "zebra"}, cfg.Applications)
}
