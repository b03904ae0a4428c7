package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/neox5/jetdqm/internal/jetdqm"
	"github.com/shirou/gopsutil/v4/process"
)

// RegistrySource returns the analyzer registry currently served.
type RegistrySource interface {
	Registry() *jetdqm.Registry
}

// Monitor periodically logs process resource usage alongside the size of
// the served analyzer registry.
type Monitor struct {
	interval time.Duration
	logger   *slog.Logger
	source   RegistrySource
	wg       sync.WaitGroup
	proc     *process.Process
}

// New creates a monitor with the given collection interval.
func New(interval time.Duration, source RegistrySource, logger *slog.Logger) (*Monitor, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("invalid monitor interval: %s", interval)
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("failed to get process handle: %w", err)
	}

	return &Monitor{
		interval: interval,
		logger:   logger,
		source:   source,
		proc:     proc,
	}, nil
}

// Run starts the monitoring loop in a background goroutine.
// The loop exits when ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	m.wg.Go(func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		// Immediate first collection
		m.collect(ctx)

		for {
			select {
			case <-ctx.Done():
				m.logger.Info("monitor shutdown complete")
				return
			case <-ticker.C:
				m.collect(ctx)
			}
		}
	})
}

// Wait blocks until the monitor goroutine exits.
func (m *Monitor) Wait() {
	m.wg.Wait()
}

// sample is one resource reading.
type sample struct {
	cpu         float64
	utilization float64
	cores       int
	goroutines  int
	mem         runtime.MemStats
	analyzers   int
	sequences   int
}

func (m *Monitor) read() sample {
	var s sample

	cpu, err := m.proc.CPUPercent()
	if err != nil {
		m.logger.Warn("failed to get CPU percent", "error", err)
	}
	s.cpu = cpu
	s.cores = runtime.GOMAXPROCS(-1)
	if s.cores > 0 {
		s.utilization = cpu / float64(s.cores*100)
	}

	runtime.ReadMemStats(&s.mem)
	s.goroutines = runtime.NumGoroutine()

	if m.source != nil {
		if reg := m.source.Registry(); reg != nil {
			s.analyzers = reg.Len()
			s.sequences = len(reg.SequenceNames())
		}
	}
	return s
}

// saturation classifies CPU utilization.
func saturation(utilization float64) string {
	switch {
	case utilization > 0.95:
		return "saturated"
	case utilization > 0.80:
		return "high"
	default:
		return "normal"
	}
}

// collect reads current usage and logs it.
func (m *Monitor) collect(ctx context.Context) {
	s := m.read()
	sat := saturation(s.utilization)

	mb := func(b uint64) float64 {
		return float64(b) / (1024 * 1024)
	}

	m.logger.LogAttrs(
		ctx,
		slog.LevelInfo,
		"resource",
		slog.String("cpu", fmt.Sprintf("%.4f%%", s.cpu)),
		slog.String("util", fmt.Sprintf("%.4f%%", s.utilization*100)),
		slog.Int("cores", s.cores),
		slog.Int("gor", s.goroutines),
		slog.String("mem", fmt.Sprintf("alloc:%.2fMB sys:%.2fMB", mb(s.mem.HeapAlloc), mb(s.mem.HeapSys))),
		slog.Uint64("gc", uint64(s.mem.NumGC)),
		slog.Int("analyzers", s.analyzers),
		slog.Int("sequences", s.sequences),
		slog.String("sat", sat),
	)

	if sat == "saturated" {
		m.logger.Warn("cpu saturation detected",
			"cpu", s.cpu,
			"util_pct", s.utilization*100,
		)
	}
}
