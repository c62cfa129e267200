package monitoring

import (
	"log"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// PerformanceMonitor tracks frame and render pass timings. Timers may be
// started and stopped from any goroutine.
type PerformanceMonitor struct {
	// Frame metrics
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds

	// Rendering metrics
	columnPassTime atomic.Uint64
	spritePassTime atomic.Uint64
	movementTime   atomic.Uint64

	// Movement metrics
	blockedMoves atomic.Uint64

	// Statistics
	mutex          sync.RWMutex
	avgFrameTime   float64 // exponential moving average, nanoseconds
	avgColumnTime  float64
	startTime      time.Time
	lastAlertCheck time.Time

	// Configuration
	enableDetailed bool
	minFPS         float64
	maxMemoryMB    float64
	alertInterval  time.Duration
}

// smoothing is the weight of the newest sample in the moving averages.
const smoothing = 0.1

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime:      time.Now(),
		enableDetailed: true,
		minFPS:         30,
		maxMemoryMB:    500,
		alertInterval:  5 * time.Second,
	}
}

// SetAlertThresholds configures CheckPerformanceAlerts and how often LogAlerts reports.
func (pm *PerformanceMonitor) SetAlertThresholds(minFPS float64, interval time.Duration) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	pm.minFPS = minFPS
	pm.alertInterval = interval
}

// FrameTimer helps measure frame timing
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	frameTime := time.Since(ft.startTime)
	ft.monitor.frameTime.Store(uint64(frameTime.Nanoseconds()))
	count := ft.monitor.frameCount.Add(1)

	if ft.monitor.enableDetailed {
		ft.monitor.mutex.Lock()
		if count == 1 {
			ft.monitor.avgFrameTime = float64(frameTime.Nanoseconds())
		} else {
			ft.monitor.avgFrameTime += smoothing * (float64(frameTime.Nanoseconds()) - ft.monitor.avgFrameTime)
		}
		ft.monitor.mutex.Unlock()
	}
}

// PassTimer measures one render pass.
type PassTimer struct {
	monitor   *PerformanceMonitor
	target    *atomic.Uint64
	startTime time.Time
}

// StartColumnPass begins timing the wall and floor column pass
func (pm *PerformanceMonitor) StartColumnPass() *PassTimer {
	return &PassTimer{monitor: pm, target: &pm.columnPassTime, startTime: time.Now()}
}

// StartSpritePass begins timing the sprite pass
func (pm *PerformanceMonitor) StartSpritePass() *PassTimer {
	return &PassTimer{monitor: pm, target: &pm.spritePassTime, startTime: time.Now()}
}

// End completes the pass timing
func (pt *PassTimer) End() {
	elapsed := time.Since(pt.startTime)
	pt.target.Store(uint64(elapsed.Nanoseconds()))

	if pt.target == &pt.monitor.columnPassTime && pt.monitor.enableDetailed {
		pt.monitor.mutex.Lock()
		pt.monitor.avgColumnTime += smoothing * (float64(elapsed.Nanoseconds()) - pt.monitor.avgColumnTime)
		pt.monitor.mutex.Unlock()
	}
}

// RecordBlockedMove counts a movement step that a wall stopped on either axis.
func (pm *PerformanceMonitor) RecordBlockedMove() {
	pm.blockedMoves.Add(1)
}

// FrameMetrics is a snapshot of the latest timings.
type FrameMetrics struct {
	FramesPerSecond float64
	FrameTime       time.Duration
	ColumnPassTime  time.Duration
	SpritePassTime  time.Duration
	MovementTime    time.Duration
	BlockedMoves    uint64
	MemoryUsageMB   uint64
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() FrameMetrics {
	pm.mutex.RLock()
	avg := pm.avgFrameTime
	pm.mutex.RUnlock()

	fps := 0.0
	if avg > 0 {
		fps = float64(time.Second) / avg
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return FrameMetrics{
		FramesPerSecond: fps,
		FrameTime:       time.Duration(pm.frameTime.Load()),
		ColumnPassTime:  time.Duration(pm.columnPassTime.Load()),
		SpritePassTime:  time.Duration(pm.spritePassTime.Load()),
		MovementTime:    time.Duration(pm.movementTime.Load()),
		BlockedMoves:    pm.blockedMoves.Load(),
		MemoryUsageMB:   memStats.Alloc / 1024 / 1024,
	}
}

// GetDetailedStats returns detailed performance statistics
func (pm *PerformanceMonitor) GetDetailedStats() map[string]interface{} {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return map[string]interface{}{
		"uptime_seconds":          time.Since(pm.startTime).Seconds(),
		"frame_count":             pm.frameCount.Load(),
		"avg_frame_time_ms":       pm.avgFrameTime / 1e6,
		"avg_column_pass_time_ms": pm.avgColumnTime / 1e6,
		"sprite_pass_time_ms":     float64(pm.spritePassTime.Load()) / 1e6,
		"blocked_moves":           pm.blockedMoves.Load(),
		"memory_alloc_mb":         memStats.Alloc / 1024 / 1024,
		"gc_cycles":               memStats.NumGC,
		"cpu_cores":               runtime.NumCPU(),
		"goroutines":              runtime.NumGoroutine(),
	}
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckPerformanceAlerts checks for performance issues and returns alerts
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)
	currentTime := time.Now()

	pm.mutex.RLock()
	avg, minFPS, maxMem := pm.avgFrameTime, pm.minFPS, pm.maxMemoryMB
	pm.mutex.RUnlock()

	if avg > 0 {
		fps := float64(time.Second) / avg
		if fps < minFPS {
			alerts = append(alerts, PerformanceAlert{
				Type:      "low_fps",
				Message:   "Frame rate is below target",
				Value:     fps,
				Threshold: minFPS,
				Timestamp: currentTime,
			})
		}
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	memoryMB := float64(memStats.Alloc) / 1024 / 1024
	if memoryMB > maxMem {
		alerts = append(alerts, PerformanceAlert{
			Type:      "high_memory",
			Message:   "Memory usage is above limit",
			Value:     memoryMB,
			Threshold: maxMem,
			Timestamp: currentTime,
		})
	}

	return alerts
}

// LogAlerts logs any current alerts, at most once per alert interval. It
// returns the alerts it logged.
func (pm *PerformanceMonitor) LogAlerts(now time.Time) []PerformanceAlert {
	pm.mutex.Lock()
	if pm.alertInterval <= 0 || now.Sub(pm.lastAlertCheck) < pm.alertInterval {
		pm.mutex.Unlock()
		return nil
	}
	pm.lastAlertCheck = now
	pm.mutex.Unlock()

	alerts := pm.CheckPerformanceAlerts()
	for _, a := range alerts {
		log.Printf("performance alert %s: %s (%.1f, threshold %.1f)", a.Type, a.Message, a.Value, a.Threshold)
	}
	return alerts
}

// EnableDetailedLogging enables/disables the moving averages
func (pm *PerformanceMonitor) EnableDetailedLogging(enabled bool) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	pm.enableDetailed = enabled
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.columnPassTime.Store(0)
	pm.spritePassTime.Store(0)
	pm.movementTime.Store(0)
	pm.blockedMoves.Store(0)

	pm.mutex.Lock()
	pm.avgFrameTime = 0
	pm.avgColumnTime = 0
	pm.startTime = time.Now()
	pm.lastAlertCheck = time.Time{}
	pm.mutex.Unlock()
}

// ProfiledFunction wraps a function with performance timing
func (pm *PerformanceMonitor) ProfiledFunction(name string, fn func()) time.Duration {
	start := time.Now()
	fn()
	duration := time.Since(start)

	switch name {
	case "columns":
		pm.columnPassTime.Store(uint64(duration.Nanoseconds()))
	case "sprites":
		pm.spritePassTime.Store(uint64(duration.Nanoseconds()))
	case "movement":
		pm.movementTime.Store(uint64(duration.Nanoseconds()))
	}

	return duration
}
