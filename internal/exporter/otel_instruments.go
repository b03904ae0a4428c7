package exporter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neox5/jetdqm/internal/metric"
	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

// registerOTELInstruments creates one observable instrument per metric
// family and registers the observation callback.
func registerOTELInstruments(meter otelmetric.Meter, source metric.Source) (map[string]otelmetric.Float64Observable, error) {
	instruments := make(map[string]otelmetric.Float64Observable)

	for _, f := range metric.Families() {
		switch f.Type {
		case metric.MetricTypeCounter:
			counter, err := meter.Float64ObservableCounter(
				f.OTELName,
				otelmetric.WithDescription(f.Description),
			)
			if err != nil {
				return nil, fmt.Errorf("failed to create counter %q: %w", f.OTELName, err)
			}
			instruments[f.OTELName] = counter

		case metric.MetricTypeGauge:
			gauge, err := meter.Float64ObservableGauge(
				f.OTELName,
				otelmetric.WithDescription(f.Description),
			)
			if err != nil {
				return nil, fmt.Errorf("failed to create gauge %q: %w", f.OTELName, err)
			}
			instruments[f.OTELName] = gauge
		}

		slog.Info("registered otel metric",
			"name", f.OTELName,
			"type", f.Type,
			"attributes", f.Labels)
	}

	if err := registerOTELCallback(meter, source, instruments); err != nil {
		return nil, err
	}

	return instruments, nil
}

// registerOTELCallback registers the observation callback for all instruments.
func registerOTELCallback(
	meter otelmetric.Meter,
	source metric.Source,
	instruments map[string]otelmetric.Float64Observable,
) error {
	observables := make([]otelmetric.Observable, 0, len(instruments))
	for _, inst := range instruments {
		observables = append(observables, inst)
	}

	_, err := meter.RegisterCallback(
		func(ctx context.Context, observer otelmetric.Observer) error {
			metrics := source.Metrics()
			slog.Debug("otel push", "metrics", len(metrics))

			for _, m := range metrics {
				inst, ok := instruments[m.Family.OTELName]
				if !ok {
					continue
				}
				observer.ObserveFloat64(inst, m.Value,
					otelmetric.WithAttributes(otelAttributes(m)...))
			}
			return nil
		},
		observables...,
	)
	if err != nil {
		return fmt.Errorf("failed to register callback: %w", err)
	}

	return nil
}

// otelAttributes converts series attributes in label order.
func otelAttributes(m metric.Descriptor) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(m.Family.Labels))
	for _, name := range m.Family.Labels {
		attrs = append(attrs, attribute.String(name, m.Attributes[name]))
	}
	return attrs
}
