package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/neox5/jetdqm/internal/app"
	"github.com/neox5/jetdqm/internal/config"
	"github.com/neox5/jetdqm/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "jetdqm",
		Usage:   "Jet DQM analyzer configuration registry",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to overlay configuration file (built-in registry only if empty)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Before: setupLogging,
		Commands: []*cli.Command{
			dumpCommand(),
			sequencesCommand(),
			validateCommand(),
			diffCommand(),
			lineageCommand(),
			matchCommand(),
			{
				Name:   "serve",
				Usage:  "export registry metrics and reload the overlay on change",
				Action: serve,
			},
		},
	}
}

// setupLogging installs the default logger. Logs go to stderr so command
// output on stdout stays machine readable.
func setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	logLevel := slog.LevelInfo
	if cmd.Bool("debug") {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return ctx, nil
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	configPath := cmd.String("config")

	slog.Debug("--- Configuration Loading ---", "config", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	slog.Info("starting jetdqm", "version", version.String(), "config", configPath)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	slog.Debug("--- Application Initialization ---")
	application, err := app.New(cfg, configPath, slog.Default())
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	// Setup graceful shutdown
	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if application.Monitor != nil {
		application.Monitor.Run(shutdownCtx)
		defer application.Monitor.Wait()
	}

	if application.Watcher != nil {
		application.Watcher.Run(shutdownCtx)
		defer application.Watcher.Wait()
	}

	// Start exporters
	slog.Debug("--- Exporter Initialization ---")
	var wg sync.WaitGroup
	errChan := make(chan error, 2)

	if application.PrometheusExporter != nil {
		wg.Go(func() {
			if err := application.PrometheusExporter.Start(shutdownCtx); err != nil {
				errChan <- fmt.Errorf("prometheus exporter: %w", err)
			}
		})
	}

	if application.OTELExporter != nil {
		wg.Go(func() {
			if err := application.OTELExporter.Start(shutdownCtx); err != nil {
				errChan <- fmt.Errorf("otel exporter: %w", err)
			}
		})
	}

	slog.Debug("--- Application Running ---",
		"analyzers", cfg.Registry.Len(),
		"sequences", len(cfg.Registry.SequenceNames()))

	// Wait for shutdown or error
	select {
	case err := <-errChan:
		slog.Error("exporter error", "error", err)
		stop()
	case <-shutdownCtx.Done():
	}

	slog.Debug("--- Shutdown Initiated ---")

	// Exporters return once shutdownCtx is cancelled
	wg.Wait()

	slog.Info("shutdown complete")
	return nil
}
