package memory

import (
	"context"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"micrometa/internal/logging"
	"micrometa/internal/metrics"
)

// Config holds the watermarks for image-loading backpressure.
type Config struct {
	// LimitBytes overrides the runtime soft limit (0 = use GOMEMLIMIT).
	LimitBytes int64

	// ResumeWaterMark is the usage fraction below which paused loads resume.
	ResumeWaterMark float64

	// PauseWaterMark is the usage fraction at which new loads pause.
	PauseWaterMark float64

	// CheckInterval is how often heap usage is sampled.
	CheckInterval time.Duration
}

// DefaultConfig samples every second and pauses at 85% of the limit.
func DefaultConfig() Config {
	return Config{
		ResumeWaterMark: 0.7,
		PauseWaterMark:  0.85,
		CheckInterval:   time.Second,
	}
}

// Monitor samples heap usage and pauses image loads while it is critical.
// With no limit configured it never pauses.
type Monitor struct {
	config Config
	limit  int64

	mu      sync.RWMutex
	alloc   uint64
	paused  bool
	resumed chan struct{}

	stop      chan struct{}
	stopOnce  sync.Once
	readStats func(*runtime.MemStats)
}

// NewMonitor creates a stopped monitor.
func NewMonitor(config Config) *Monitor {
	limit := config.LimitBytes
	if limit == 0 {
		if l := debug.SetMemoryLimit(-1); l > 0 && l < 1<<62 {
			limit = l
		}
	}
	if limit == 0 {
		logging.Debug("Memory monitor: no limit configured, backpressure disabled")
	} else {
		logging.Debug("Memory monitor limit: %s", FormatBytes(limit))
	}

	return &Monitor{
		config:    config,
		limit:     limit,
		resumed:   make(chan struct{}),
		stop:      make(chan struct{}),
		readStats: runtime.ReadMemStats,
	}
}

// Enabled reports whether a limit is known.
func (m *Monitor) Enabled() bool { return m.limit > 0 }

// Start samples once and then every CheckInterval until Stop.
func (m *Monitor) Start() {
	if !m.Enabled() || m.config.CheckInterval <= 0 {
		return
	}
	m.sample()

	go func() {
		ticker := time.NewTicker(m.config.CheckInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.sample()
			case <-m.stop:
				return
			}
		}
	}()
}

// Stop ends sampling and releases every waiter. Safe to call twice.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *Monitor) sample() {
	var stats runtime.MemStats
	m.readStats(&stats)
	m.update(stats.Alloc)
}

func (m *Monitor) update(alloc uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.alloc = alloc
	if m.limit <= 0 {
		return
	}
	usage := float64(alloc) / float64(m.limit)
	metrics.MemoryUsageRatio.Set(usage)

	switch {
	case usage >= m.config.PauseWaterMark && !m.paused:
		logging.Warn("Memory critical (%.1f%% of limit), pausing image loads", usage*100)
		m.paused = true
		metrics.MemoryPaused.Set(1)
		metrics.MemoryGCPauses.Inc()
		go runtime.GC()
	case usage < m.config.ResumeWaterMark && m.paused:
		logging.Info("Memory recovered (%.1f%% of limit), resuming image loads", usage*100)
		m.paused = false
		metrics.MemoryPaused.Set(0)
		close(m.resumed)
		m.resumed = make(chan struct{})
	}
}

// WaitIfPaused blocks while loads are paused. It returns false if ctx is
// done or the monitor is stopped first.
func (m *Monitor) WaitIfPaused(ctx context.Context) bool {
	m.mu.RLock()
	if !m.paused {
		m.mu.RUnlock()
		return true
	}
	resumed := m.resumed
	m.mu.RUnlock()

	select {
	case <-resumed:
		return true
	case <-ctx.Done():
		return false
	case <-m.stop:
		return false
	}
}

// IsPaused reports whether loads are currently paused.
func (m *Monitor) IsPaused() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.paused
}

// Usage returns the last sampled heap usage as a fraction of the limit.
func (m *Monitor) Usage() float64 {
	if m.limit <= 0 {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return float64(m.alloc) / float64(m.limit)
}

// Limit returns the byte limit in use (0 when disabled).
func (m *Monitor) Limit() int64 { return m.limit }
