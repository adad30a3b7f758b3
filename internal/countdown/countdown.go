// Package countdown derives the phone-a-friend timer from the wall clock.
//
// Nothing here accumulates: every call recomputes from the remote start
// timestamp, so a display that connects mid-call shows the same remaining
// time as one that watched the timer start.
package countdown

import (
	"fmt"
	"math"
	"time"
)

type Phase string

const (
	PhaseNotStarted Phase = "not-started"
	PhaseRunning    Phase = "running"
	PhaseExpiring   Phase = "expiring"
	PhaseExpired    Phase = "expired"
)

// ExpiringThreshold is the remaining seconds at or below which a running
// countdown is flagged as expiring.
const ExpiringThreshold = 10

// Interval is the re-evaluation cadence while a countdown runs.
const Interval = time.Second

type Countdown struct {
	Remaining  int     `json:"remaining"`
	Duration   int     `json:"duration"`
	HasStarted bool    `json:"hasStarted"`
	HasExpired bool    `json:"hasExpired"`
	IsExpiring bool    `json:"isExpiring"`
	Progress   float64 `json:"progress"`
	Display    string  `json:"display"`
	Phase      Phase   `json:"phase"`
}

// Derive computes the countdown for a timer started at startedAt (unix ms,
// nil when not started) lasting durationSeconds, as seen at now (unix ms).
// A non-positive duration is treated as one second.
func Derive(startedAt *int64, durationSeconds int, now int64) Countdown {
	if durationSeconds <= 0 {
		durationSeconds = 1
	}
	c := Countdown{
		Remaining: durationSeconds,
		Duration:  durationSeconds,
		Progress:  1,
		Phase:     PhaseNotStarted,
	}
	if startedAt != nil {
		elapsed := int(math.Floor(float64(now-*startedAt) / 1000))
		c.HasStarted = true
		c.Remaining = clamp(durationSeconds-elapsed, 0, durationSeconds)
		c.HasExpired = c.Remaining == 0
		c.IsExpiring = c.Remaining > 0 && c.Remaining <= ExpiringThreshold
		c.Progress = float64(c.Remaining) / float64(durationSeconds)
		switch {
		case c.HasExpired:
			c.Phase = PhaseExpired
		case c.IsExpiring:
			c.Phase = PhaseExpiring
		default:
			c.Phase = PhaseRunning
		}
	}
	c.Display = Format(c.Remaining)
	return c
}

// Ticking reports whether the countdown still needs periodic re-evaluation.
func (c Countdown) Ticking() bool {
	return c.HasStarted && !c.HasExpired
}

// Format renders seconds as zero-padded MM:SS.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
