package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ekisa-team/loanrisk/internal/envvar"
	"github.com/ekisa-team/loanrisk/internal/xfs"
)

// ApplyEnv overrides cfg with the LOANRISK_* environment variables and
// expands a leading tilde in the models directory.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv(envvar.LoanriskServerHTTPPort); v != "" {
		port, err := parsePort(envvar.LoanriskServerHTTPPort, v)
		if err != nil {
			return err
		}
		cfg.Server.HTTPPort = port
	}

	if v := os.Getenv(envvar.LoanriskServerGRPCPort); v != "" {
		port, err := parsePort(envvar.LoanriskServerGRPCPort, v)
		if err != nil {
			return err
		}
		cfg.Server.GRPCPort = port
	}

	if v := os.Getenv(envvar.LoanriskModelsPath); v != "" {
		cfg.Storage.ModelsDir = v
	}
	cfg.Storage.ModelsDir = xfs.ExpandTilde(cfg.Storage.ModelsDir)

	return nil
}

func parsePort(name, value string) (int, error) {
	port, err := strconv.Atoi(value)
	if err != nil || port < 1 || port > 65535 {
		return 0, fmt.Errorf("config: invalid %s %q", name, value)
	}
	return port, nil
}
