package threading

import (
	"log"
	"time"

	"gridcaster/internal/config"
	"gridcaster/internal/threading/core"
	"gridcaster/internal/threading/monitoring"
)

// ThreadingComponents holds the worker pool and the performance monitor
type ThreadingComponents struct {
	// WorkerPool is nil unless graphics.parallel_columns is set.
	WorkerPool         *core.WorkerPool
	PerformanceMonitor *monitoring.PerformanceMonitor
}

// NewThreadingComponents creates and starts the components the config asks for
func NewThreadingComponents(cfg *config.Config) *ThreadingComponents {
	tc := &ThreadingComponents{
		PerformanceMonitor: monitoring.NewPerformanceMonitor(),
	}
	tc.PerformanceMonitor.SetAlertThresholds(
		cfg.Performance.MinFPS,
		time.Duration(cfg.Performance.AlertIntervalSeconds*float64(time.Second)),
	)
	tc.PerformanceMonitor.EnableDetailedLogging(cfg.Performance.DetailedAverages)
	if cfg.Graphics.ParallelColumns {
		tc.WorkerPool = core.CreateDefaultWorkerPool()
	}
	return tc
}

// Shutdown stops the worker pool and logs the session's totals before the
// monitor is reset. It returns the logged statistics.
func (tc *ThreadingComponents) Shutdown() map[string]interface{} {
	if tc.WorkerPool != nil {
		tc.WorkerPool.Stop()
	}
	if tc.PerformanceMonitor == nil {
		return nil
	}
	stats := tc.PerformanceMonitor.GetDetailedStats()
	log.Printf("Session: %v frames, %.2f ms average frame, %v blocked moves, %.0fs uptime",
		stats["frame_count"], stats["avg_frame_time_ms"], stats["blocked_moves"], stats["uptime_seconds"])
	tc.PerformanceMonitor.Reset()
	return stats
}

// GetPerformanceMetrics returns current performance metrics
func (tc *ThreadingComponents) GetPerformanceMetrics() monitoring.FrameMetrics {
	return tc.PerformanceMonitor.GetCurrentMetrics()
}
