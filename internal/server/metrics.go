package server

import (
	"runtime"
	"sync/atomic"
	"time"
)

// Metrics tracks push connections and frame delivery.
type Metrics struct {
	activeConnections int64
	totalConnections  int64

	framesPublished int64
	lastVersion     int64
	lastFrameTime   int64 // Unix timestamp
	messagesSent    int64

	broadcastErrors int64

	startTime time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{
		startTime: time.Now(),
	}
}

func (m *Metrics) IncrementConnections() {
	atomic.AddInt64(&m.activeConnections, 1)
	atomic.AddInt64(&m.totalConnections, 1)
}

func (m *Metrics) DecrementConnections() {
	atomic.AddInt64(&m.activeConnections, -1)
}

func (m *Metrics) RecordFrame(version int) {
	atomic.AddInt64(&m.framesPublished, 1)
	atomic.StoreInt64(&m.lastVersion, int64(version))
	atomic.StoreInt64(&m.lastFrameTime, time.Now().Unix())
}

func (m *Metrics) IncrementMessagesSent() {
	atomic.AddInt64(&m.messagesSent, 1)
}

func (m *Metrics) IncrementBroadcastErrors() {
	atomic.AddInt64(&m.broadcastErrors, 1)
}

type MetricsSnapshot struct {
	ActiveConnections int64 `json:"active_connections"`
	TotalConnections  int64 `json:"total_connections"`

	FramesPublished int64  `json:"frames_published"`
	LastVersion     int64  `json:"last_version"`
	LastFrameTime   string `json:"last_frame_time"`
	MessagesSent    int64  `json:"messages_sent"`

	BroadcastErrors int64 `json:"broadcast_errors"`

	UptimeSeconds int64  `json:"uptime_seconds"`
	MemoryUsageMB uint64 `json:"memory_usage_mb"`
	NumGoroutines int    `json:"num_goroutines"`
}

// Snapshot returns a point-in-time view of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	lastFrame := atomic.LoadInt64(&m.lastFrameTime)
	lastFrameStr := "never"
	if lastFrame > 0 {
		lastFrameStr = time.Unix(lastFrame, 0).UTC().Format(time.RFC3339)
	}

	return MetricsSnapshot{
		ActiveConnections: atomic.LoadInt64(&m.activeConnections),
		TotalConnections:  atomic.LoadInt64(&m.totalConnections),
		FramesPublished:   atomic.LoadInt64(&m.framesPublished),
		LastVersion:       atomic.LoadInt64(&m.lastVersion),
		LastFrameTime:     lastFrameStr,
		MessagesSent:      atomic.LoadInt64(&m.messagesSent),
		BroadcastErrors:   atomic.LoadInt64(&m.broadcastErrors),
		UptimeSeconds:     int64(time.Since(m.startTime).Seconds()),
		MemoryUsageMB:     memStats.Alloc / 1024 / 1024,
		NumGoroutines:     runtime.NumGoroutine(),
	}
}
