package config

import (
	"time"

	"github.com/ekisa-team/loanrisk/internal/model"
)

const (
	defaultHost         = "0.0.0.0"
	defaultHTTPPort     = 5000
	defaultGRPCPort     = 50051
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultLogFile      = "logs/loanrisk.log"
)

// DefaultHTTPPort returns the default HTTP port.
func DefaultHTTPPort() int {
	return defaultHTTPPort
}

// DefaultGRPCPort returns the default gRPC port.
func DefaultGRPCPort() int {
	return defaultGRPCPort
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	return "config.yaml"
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{Version: "1"}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills every zero field with its default value.
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = defaultHost
	}
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = defaultHTTPPort
	}
	if c.Server.GRPCPort == 0 {
		c.Server.GRPCPort = defaultGRPCPort
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = Duration(defaultReadTimeout)
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = Duration(defaultWriteTimeout)
	}
	if c.Storage.ModelsDir == "" {
		c.Storage.ModelsDir = model.DefaultModelsDir
	}
	if c.Log.File == "" {
		c.Log.File = defaultLogFile
	}
}
