package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/ekisa-team/loanrisk/internal/classifier/canonical"
	"github.com/ekisa-team/loanrisk/internal/config"
	"github.com/ekisa-team/loanrisk/internal/env"
	"github.com/ekisa-team/loanrisk/internal/logger"
	"github.com/ekisa-team/loanrisk/internal/metrics"
	"github.com/ekisa-team/loanrisk/internal/model"
	grpcserver "github.com/ekisa-team/loanrisk/internal/server/grpc"
	httpserver "github.com/ekisa-team/loanrisk/internal/server/http"
	"github.com/ekisa-team/loanrisk/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var (
		flagHTTPPort   = flag.Int("http-port", config.DefaultHTTPPort(), "HTTP port to listen on")
		flagGRPCPort   = flag.Int("grpc-port", config.DefaultGRPCPort(), "GRPC port to listen on")
		flagConfigPath = flag.String("config", config.DefaultConfigPath(), "Path to config file")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	cfg, found, err := config.LoadOrDefault(*flagConfigPath)
	if err != nil {
		slog.Error("Failed to load config", "path", *flagConfigPath, "error", err)
		os.Exit(1)
	}

	slog.SetDefault(
		logger.New(env.FromEnv(),
			logger.WithLogToFile(cfg.Log.ToFile),
			logger.WithLogFile(cfg.Log.File),
		),
	)

	if err := config.ApplyEnv(cfg); err != nil {
		slog.Error("Invalid environment", "error", err)
		os.Exit(1)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "http-port":
			cfg.Server.HTTPPort = *flagHTTPPort
		case "grpc-port":
			cfg.Server.GRPCPort = *flagGRPCPort
		}
	})

	if found {
		slog.Info("Config loaded successfully", "config", *flagConfigPath)
	} else {
		slog.Info("Config file not found, using defaults", "config", *flagConfigPath)
	}

	registry, err := model.LoadRegistry(cfg.Storage.ModelsDir, model.DefaultArtifacts, canonical.Decoders())
	if err != nil {
		slog.Error("Failed to load models", "dir", cfg.Storage.ModelsDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Models loaded", "dir", cfg.Storage.ModelsDir, "count", registry.Len(), "models", registry.Keys())

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc := service.NewPrediction(
		model.NewDispatcher(registry),
		metrics.New(promRegistry),
		model.DefaultArtifacts,
	)

	if found {
		// baseline is the file content at startup, before env and flag
		// overrides; the callback waits until it is set.
		var (
			watcher  *config.Watcher
			baseline *config.Config
		)
		ready := make(chan struct{})

		watcher, err = config.NewWatcher(*flagConfigPath, func(_ *config.Config, err error) {
			<-ready
			if err != nil {
				slog.Error("Failed to reload config", "error", err)
				return
			}
			slog.Warn("Config changed; restart to apply",
				"config", *flagConfigPath,
				"changes", watcher.ChangeCount(),
				"fields", config.Diff(baseline, watcher.Snapshot()),
			)
		})
		if err != nil {
			slog.Warn("Failed to create config watcher", "error", err)
		} else {
			baseline = watcher.Snapshot()
			close(ready)
			defer watcher.Close()
		}
	}

	if err := run(cfg, svc, promRegistry); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, svc *service.Prediction, gatherer prometheus.Gatherer) error {
	httpListener, err := net.Listen("tcp", cfg.Server.HTTPAddr())
	if err != nil {
		return err
	}

	grpcListener, err := net.Listen("tcp", cfg.Server.GRPCAddr())
	if err != nil {
		httpListener.Close()
		return err
	}

	httpSrv := httpserver.NewServer(httpserver.Config{
		Addr:         cfg.Server.HTTPAddr(),
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
	}, httpserver.NewHandler(svc, gatherer))
	grpcSrv := grpcserver.NewServer(svc)

	errCh := make(chan error, 2)
	go func() { errCh <- httpSrv.Serve(httpListener) }()
	go func() { errCh <- grpcSrv.Serve(grpcListener) }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down")
	case err := <-errCh:
		if err != nil {
			slog.Error("Listener stopped", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	grpcSrv.GracefulStop()
	return httpSrv.Shutdown(shutdownCtx)
}
