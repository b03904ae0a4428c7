package metric

import (
	"sync/atomic"

	"github.com/neox5/jetdqm/internal/jetdqm"
)

// Source provides the series to export on each collection.
type Source interface {
	Metrics() []Descriptor
}

// Live serves the series of the current analyzer registry and counts
// reloads. It is safe for concurrent use.
type Live struct {
	current  atomic.Pointer[Registry]
	registry atomic.Pointer[jetdqm.Registry]
	reloaded atomic.Uint64
	failed   atomic.Uint64
}

// NewLive creates a live source for reg.
func NewLive(reg *jetdqm.Registry) *Live {
	l := &Live{}
	l.current.Store(New(reg))
	l.registry.Store(reg)
	return l
}

// Store replaces the served registry after a successful reload.
func (l *Live) Store(reg *jetdqm.Registry) {
	l.current.Store(New(reg))
	l.registry.Store(reg)
	l.reloaded.Add(1)
}

// Failed records a reload that was rejected.
func (l *Live) Failed() {
	l.failed.Add(1)
}

// Reloads returns the accepted and rejected reload counts.
func (l *Live) Reloads() (success, failure uint64) {
	return l.reloaded.Load(), l.failed.Load()
}

// Registry returns the analyzer registry currently served.
func (l *Live) Registry() *jetdqm.Registry {
	return l.registry.Load()
}

// Metrics returns the current series plus reload counters.
func (l *Live) Metrics() []Descriptor {
	current := l.current.Load().Metrics()

	metrics := make([]Descriptor, 0, len(current)+2)
	metrics = append(metrics, current...)
	metrics = append(metrics,
		Descriptor{
			Family:     ConfigReloads,
			Attributes: map[string]string{"result": "success"},
			Value:      float64(l.reloaded.Load()),
		},
		Descriptor{
			Family:     ConfigReloads,
			Attributes: map[string]string{"result": "failure"},
			Value:      float64(l.failed.Load()),
		},
	)
	return metrics
}
