package exporter

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/neox5/jetdqm/internal/config"
	"github.com/neox5/jetdqm/internal/metric"
	"github.com/neox5/jetdqm/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusExporter serves registry metrics for scraping next to the
// registry snapshot endpoints.
type PrometheusExporter struct {
	server *server.Server
}

// NewPrometheusExporter creates the scrape endpoint over live.
// internalMetricsEnabled adds the promhttp handler metrics.
func NewPrometheusExporter(
	cfg *config.PrometheusExportConfig,
	live *metric.Live,
	internalMetricsEnabled bool,
) *PrometheusExporter {
	handler := createMetricsHandler(createPrometheusRegistry(live), internalMetricsEnabled)

	return &PrometheusExporter{
		server: server.New(cfg.Port, cfg.Path, handler, live),
	}
}

// Start serves until ctx is cancelled.
func (e *PrometheusExporter) Start(ctx context.Context) error {
	return e.server.Start(ctx)
}

// createPrometheusRegistry creates a registry holding only the source
// collector, without the Go and process collectors.
func createPrometheusRegistry(source metric.Source) *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(newCollector(source))
	return promRegistry
}

// createMetricsHandler creates the HTTP handler for scrapes.
func createMetricsHandler(promRegistry *prometheus.Registry, internalMetricsEnabled bool) http.Handler {
	var handler http.Handler = promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorLog:          slog.NewLogLogger(slog.Default().Handler(), slog.LevelError),
	})

	if internalMetricsEnabled {
		handler = promhttp.InstrumentMetricHandler(promRegistry, handler)
		slog.Info("enabled prometheus internal metrics",
			"metrics", []string{
				"promhttp_metric_handler_requests_total",
				"promhttp_metric_handler_requests_in_flight",
			})
	}

	return scrapeLogger(handler)
}

// statusWriter records the status code written by the wrapped handler.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// scrapeLogger logs every scrape at debug level.
func scrapeLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		slog.Debug("prometheus scrape",
			"remote", r.RemoteAddr,
			"status", sw.status,
			"duration", time.Since(start))
	})
}
