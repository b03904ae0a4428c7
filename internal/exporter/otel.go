package exporter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neox5/jetdqm/internal/config"
	"github.com/neox5/jetdqm/internal/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTELExporter pushes registry metrics to an OTEL collector.
type OTELExporter struct {
	config        *config.OTELExportConfig
	meterProvider *sdkmetric.MeterProvider
}

// NewOTELExporter creates a new OTEL exporter.
func NewOTELExporter(cfg *config.OTELExportConfig, source metric.Source) (*OTELExporter, error) {
	res, err := createOTELResource(cfg.Resource)
	if err != nil {
		return nil, err
	}

	meterProvider, err := createMeterProvider(cfg, res)
	if err != nil {
		return nil, err
	}

	meter := meterProvider.Meter("jetdqm")
	if _, err := registerOTELInstruments(meter, source); err != nil {
		return nil, fmt.Errorf("failed to register instruments: %w", err)
	}

	return &OTELExporter{
		config:        cfg,
		meterProvider: meterProvider,
	}, nil
}

// Start begins periodic metric export. Blocks until ctx is cancelled,
// then flushes and shuts down the provider.
func (e *OTELExporter) Start(ctx context.Context) error {
	slog.Info("starting otel exporter",
		"transport", e.config.Transport,
		"endpoint", e.config.GetEndpoint(),
		"interval", e.config.Interval,
	)

	// Periodic reader handles push automatically
	<-ctx.Done()
	return e.Stop()
}

// Stop gracefully stops the exporter.
func (e *OTELExporter) Stop() error {
	slog.Info("shutting down otel exporter")

	ctx, cancel := context.WithTimeout(context.Background(), e.config.Timeout)
	defer cancel()

	return e.meterProvider.Shutdown(ctx)
}
