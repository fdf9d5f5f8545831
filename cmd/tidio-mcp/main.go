package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amoylab/tidio-mcp/internal/common/cnst"
	"github.com/amoylab/tidio-mcp/internal/common/config"
	"github.com/amoylab/tidio-mcp/internal/core"
	"github.com/amoylab/tidio-mcp/internal/tidio"
	"github.com/amoylab/tidio-mcp/internal/tools"
	pkglogger "github.com/amoylab/tidio-mcp/pkg/logger"
	"github.com/amoylab/tidio-mcp/pkg/metrics"
	"github.com/amoylab/tidio-mcp/pkg/trace"
	"github.com/amoylab/tidio-mcp/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

var (
	configPath string

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of tidio-mcp",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", cnst.CommandName, version.Get())
		},
	}

	testCmd = &cobra.Command{
		Use:   "test",
		Short: "Test the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return testConfig(configPath)
		},
	}

	rootCmd = &cobra.Command{
		Use:          cnst.CommandName,
		Short:        "Tidio MCP server",
		Long:         `tidio-mcp exposes the Tidio customer support API (contacts, messages, operators, tickets) as MCP tools over stdio`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "conf", "c", cnst.TidioMCPYaml, "path to configuration file, like /etc/tidio-mcp/tidio-mcp.yaml")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(testCmd)
}

func testConfig(path string) error {
	cfg, cfgPath, err := config.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfgPath == "" {
		return fmt.Errorf("configuration file %s not found", path)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("configuration file %s is invalid:\n%w", cfgPath, err)
	}
	fmt.Printf("configuration file %s is valid\n", cfgPath)
	return nil
}

func run() error {
	cfg, cfgPath, loadErr := config.LoadConfigOrDefaults(configPath)

	logger, err := pkglogger.NewLogger(&cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	switch {
	case loadErr != nil:
		logger.Warn("failed to load configuration, using defaults", zap.String("path", cfgPath), zap.Error(loadErr))
	case cfgPath == "":
		logger.Warn("configuration file not found, using defaults", zap.String("conf", configPath))
	default:
		logger.Info("loaded configuration", zap.String("path", cfgPath))
	}
	if err := config.Validate(cfg); err != nil {
		logger.Warn("configuration has problems", zap.Error(err))
	}
	if cfg.Tidio.UsesPlaceholderCredentials() {
		logger.Warn("Tidio credentials are not configured, upstream calls will be rejected")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := trace.InitTracing(ctx, &cfg.Tracing, logger)
	if err != nil {
		logger.Warn("failed to initialize tracing, continuing without it", zap.Error(err))
		shutdownTracing = func(context.Context) error { return nil }
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("failed to shutdown tracing", zap.Error(err))
		}
	}()

	m := metrics.New(cfg.Metrics)
	if cfg.Metrics.Enabled {
		ms := metrics.NewServer(logger, cfg.Metrics.Addr, m)
		ms.Start()
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := ms.Shutdown(sctx); err != nil {
				logger.Warn("failed to shutdown metrics listener", zap.Error(err))
			}
		}()
	}

	client := tidio.New(cfg.Tidio, tidio.WithLogger(logger), tidio.WithMetrics(m))
	dispatcher, err := tools.NewDispatcher(client, tools.WithLogger(logger), tools.WithMetrics(m))
	if err != nil {
		return fmt.Errorf("failed to register tools: %w", err)
	}

	srv := core.NewServer(logger, dispatcher, m, cfg.Server)
	logger.Info("starting tidio-mcp", zap.String("version", version.Get()))
	if err := srv.ServeStdio(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
