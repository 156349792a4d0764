package config

import (
	"fmt"
	"time"
)

// Config holds the main configuration for the application.
type Config struct {
	Version string        `json:"version"           yaml:"version"`
	Server  ServerConfig  `json:"server,omitempty"  yaml:"server,omitempty"`
	Storage StorageConfig `json:"storage,omitempty" yaml:"storage,omitempty"`
	Log     LogConfig     `json:"log,omitempty"     yaml:"log,omitempty"`
}

// ServerConfig holds the listener configuration.
type ServerConfig struct {
	Host         string   `json:"host,omitempty"          yaml:"host,omitempty"`
	HTTPPort     int      `json:"http_port,omitempty"     yaml:"http_port,omitempty"`
	GRPCPort     int      `json:"grpc_port,omitempty"     yaml:"grpc_port,omitempty"`
	ReadTimeout  Duration `json:"read_timeout,omitempty"  yaml:"read_timeout,omitempty"`
	WriteTimeout Duration `json:"write_timeout,omitempty" yaml:"write_timeout,omitempty"`
}

// StorageConfig holds where model artifacts are read from.
type StorageConfig struct {
	ModelsDir string `json:"models_dir,omitempty" yaml:"models_dir,omitempty"`
}

// LogConfig holds the log file settings.
type LogConfig struct {
	File   string `json:"file,omitempty"    yaml:"file,omitempty"`
	ToFile bool   `json:"to_file,omitempty" yaml:"to_file,omitempty"`
}

// HTTPAddr returns the host:port the HTTP server listens on.
func (s ServerConfig) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.HTTPPort)
}

// GRPCAddr returns the host:port the gRPC server listens on.
func (s ServerConfig) GRPCAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.GRPCPort)
}

// Duration is a time.Duration written as a Go duration string ("10s").
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
