package config

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/neox5/jetdqm/internal/version"
)

const (
	DefaultPrometheusPort = 9090
	DefaultPrometheusPath = "/metrics"

	DefaultOTELInterval = 10 * time.Second
	DefaultOTELTimeout  = 5 * time.Second
	DefaultOTELHost     = "localhost"
	DefaultServiceName  = "jetdqm"
)

// Transport selects the OTLP wire protocol.
type Transport string

const (
	TransportGRPC Transport = "grpc"
	TransportHTTP Transport = "http"
)

// DefaultPort returns the conventional collector port of the transport.
func (t Transport) DefaultPort() int {
	if t == TransportHTTP {
		return 4318
	}
	return 4317
}

// ExportConfig defines how registry metrics are exposed. Exactly one of
// the exporters is enabled after resolution.
type ExportConfig struct {
	Prometheus *PrometheusExportConfig
	OTEL       *OTELExportConfig
}

// PrometheusExportConfig defines the scrape endpoint.
type PrometheusExportConfig struct {
	Enabled bool
	Port    int
	Path    string
}

// OTELExportConfig defines OTLP push settings.
type OTELExportConfig struct {
	Enabled   bool
	Transport Transport
	Host      string
	Port      int
	Insecure  bool
	Interval  time.Duration
	Timeout   time.Duration
	Resource  map[string]string
	Headers   map[string]string
}

// Validate applies defaults and checks that exactly one exporter is on.
func (e *ExportConfig) Validate() error {
	if e.Prometheus == nil && e.OTEL == nil {
		e.Prometheus = &PrometheusExportConfig{Enabled: true}
	}

	promEnabled := e.Prometheus != nil && e.Prometheus.Enabled
	otelEnabled := e.OTEL != nil && e.OTEL.Enabled

	switch {
	case !promEnabled && !otelEnabled:
		return errors.New("at least one exporter must be enabled")
	case promEnabled && otelEnabled:
		return errors.New("only one exporter can be enabled at a time (prometheus or otel)")
	case promEnabled:
		return e.Prometheus.Validate()
	default:
		return e.OTEL.Validate()
	}
}

// Validate applies defaults and validates the scrape endpoint.
func (c *PrometheusExportConfig) Validate() error {
	if c.Port == 0 {
		c.Port = DefaultPrometheusPort
	}
	if c.Path == "" {
		c.Path = DefaultPrometheusPath
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid prometheus port: %d", c.Port)
	}
	if c.Path[0] != '/' {
		return fmt.Errorf("invalid prometheus path: %q (must start with /)", c.Path)
	}
	return nil
}

// Validate applies defaults and validates OTLP settings.
func (c *OTELExportConfig) Validate() error {
	if c.Transport == "" {
		c.Transport = TransportGRPC
	}
	if c.Transport != TransportGRPC && c.Transport != TransportHTTP {
		return fmt.Errorf("invalid transport: %s (must be grpc or http)", c.Transport)
	}

	if c.Host == "" {
		c.Host = DefaultOTELHost
	}
	if c.Port == 0 {
		c.Port = c.Transport.DefaultPort()
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid otel port: %d", c.Port)
	}

	if c.Interval == 0 {
		c.Interval = DefaultOTELInterval
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultOTELTimeout
	}
	if c.Interval < 0 || c.Timeout < 0 {
		return fmt.Errorf("invalid otel interval %s or timeout %s", c.Interval, c.Timeout)
	}

	resource := map[string]string{
		"service.name":    DefaultServiceName,
		"service.version": version.String(),
	}
	maps.Copy(resource, c.Resource)
	c.Resource = resource

	return nil
}

// GetEndpoint returns the collector address as host:port.
func (c *OTELExportConfig) GetEndpoint() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// resolveExport converts raw export config and applies defaults.
func resolveExport(raw *RawExportConfig) (ExportConfig, error) {
	var export ExportConfig

	if p := raw.Prometheus; p != nil {
		export.Prometheus = &PrometheusExportConfig{
			Enabled: p.Enabled,
			Port:    p.Port,
			Path:    p.Path,
		}
	}

	if o := raw.OTEL; o != nil {
		export.OTEL = &OTELExportConfig{
			Enabled:   o.Enabled,
			Transport: Transport(o.Transport),
			Host:      o.Host,
			Port:      o.Port,
			Insecure:  true,
			Interval:  o.Interval,
			Timeout:   o.Timeout,
			Resource:  maps.Clone(o.Resource),
			Headers:   maps.Clone(o.Headers),
		}
		if o.Insecure != nil {
			export.OTEL.Insecure = *o.Insecure
		}
	}

	if err := export.Validate(); err != nil {
		return ExportConfig{}, fmt.Errorf("invalid export config: %w", err)
	}

	return export, nil
}
