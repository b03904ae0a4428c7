package exporter

import (
	"log/slog"

	"github.com/neox5/jetdqm/internal/metric"
	"github.com/prometheus/client_golang/prometheus"
)

// collector implements prometheus.Collector over a metric source.
// The series are read from the source on every scrape so a reloaded
// registry shows up without re-registering.
type collector struct {
	source metric.Source
	descs  map[string]*prometheus.Desc
	types  map[string]prometheus.ValueType
}

// newCollector creates a collector for every known metric family.
func newCollector(source metric.Source) *collector {
	c := &collector{
		source: source,
		descs:  make(map[string]*prometheus.Desc),
		types:  make(map[string]prometheus.ValueType),
	}

	for _, f := range metric.Families() {
		var valueType prometheus.ValueType
		switch f.Type {
		case metric.MetricTypeCounter:
			valueType = prometheus.CounterValue
		case metric.MetricTypeGauge:
			valueType = prometheus.GaugeValue
		}

		c.descs[f.PrometheusName] = prometheus.NewDesc(
			f.PrometheusName,
			f.Description,
			f.Labels,
			nil, // No constant labels
		)
		c.types[f.PrometheusName] = valueType

		slog.Info("registered prometheus metric",
			"name", f.PrometheusName,
			"type", f.Type,
			"labels", f.Labels)
	}

	return c
}

// Describe sends metric descriptors to the channel.
func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range c.descs {
		ch <- d
	}
}

// Collect reads the current series and sends metrics to the channel.
func (c *collector) Collect(ch chan<- prometheus.Metric) {
	for _, m := range c.source.Metrics() {
		desc, ok := c.descs[m.Family.PrometheusName]
		if !ok {
			continue
		}

		metric, err := prometheus.NewConstMetric(
			desc,
			c.types[m.Family.PrometheusName],
			m.Value,
			m.LabelValues()...,
		)
		if err != nil {
			slog.Debug("skipping metric", "name", m.Family.PrometheusName, "error", err)
			continue
		}

		ch <- metric
	}
}
