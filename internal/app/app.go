package app

import (
	"fmt"
	"log/slog"

	"github.com/neox5/jetdqm/internal/config"
	"github.com/neox5/jetdqm/internal/exporter"
	"github.com/neox5/jetdqm/internal/metric"
	"github.com/neox5/jetdqm/internal/monitor"
	"github.com/neox5/jetdqm/internal/watch"
)

// App holds initialized serving components.
type App struct {
	Config             *config.Config
	Live               *metric.Live
	PrometheusExporter *exporter.PrometheusExporter
	OTELExporter       *exporter.OTELExporter
	Monitor            *monitor.Monitor
	Watcher            *watch.Watcher
}

// New initializes the serving components from a resolved configuration.
// configPath is watched for changes when watching is enabled; an empty
// path disables the watcher.
func New(cfg *config.Config, configPath string, logger *slog.Logger) (*App, error) {
	live := metric.NewLive(cfg.Registry)

	app := &App{
		Config: cfg,
		Live:   live,
	}

	// Create Prometheus exporter if enabled
	if cfg.Export.Prometheus != nil && cfg.Export.Prometheus.Enabled {
		app.PrometheusExporter = exporter.NewPrometheusExporter(
			cfg.Export.Prometheus,
			live,
			cfg.Settings.InternalMetrics,
		)
	}

	// Create OTEL exporter if enabled
	if cfg.Export.OTEL != nil && cfg.Export.OTEL.Enabled {
		otelExporter, err := exporter.NewOTELExporter(cfg.Export.OTEL, live)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTEL exporter: %w", err)
		}
		app.OTELExporter = otelExporter
	}

	if cfg.Settings.Monitor.Enabled {
		mon, err := monitor.New(cfg.Settings.Monitor.Interval, live, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create monitor: %w", err)
		}
		app.Monitor = mon
	}

	if cfg.Settings.Watch && configPath != "" {
		w, err := watch.New(configPath, live)
		if err != nil {
			return nil, fmt.Errorf("failed to create config watcher: %w", err)
		}
		app.Watcher = w
	}

	return app, nil
}
