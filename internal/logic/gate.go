package logic

import "time"

// LogSecond is the second at which the minute record is taken.
const LogSecond = 59

// MinuteGate fires the once-per-minute record. The loop polls far faster
// than once a second, so second 59 is observed many times in a row; the
// latch makes the action happen once per visit.
type MinuteGate struct {
	latched       bool
	startTime     time.Time
	lastHeartbeat time.Time
	counts        Counts
}

// HeartbeatData contains information for a heartbeat log entry.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    Counts
}

// NewMinuteGate creates a gate. The startTime is used for heartbeat uptime.
func NewMinuteGate(startTime time.Time) *MinuteGate {
	return &MinuteGate{
		startTime:     startTime,
		lastHeartbeat: startTime,
	}
}

// Observe takes the current RTC second and reports whether the minute action
// should run now. Any second other than LogSecond rearms the gate.
func (g *MinuteGate) Observe(second int) bool {
	if second != LogSecond {
		g.latched = false
		return false
	}
	if g.latched {
		return false
	}
	g.latched = true
	return true
}

// Latched reports whether the action already ran for the current second 59.
func (g *MinuteGate) Latched() bool {
	return g.latched
}

// Record counts one emitted log line.
func (g *MinuteGate) Record(over bool) {
	g.counts.Records++
	if over {
		g.counts.Alarms++
	}
}

// Counts returns a copy of the record counters.
func (g *MinuteGate) Counts() Counts {
	return g.counts
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since the
// last heartbeat (or startup). Returns nil if the interval has not elapsed,
// or if interval is <= 0 (disabled).
func (g *MinuteGate) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}
	if now.Sub(g.lastHeartbeat) < interval {
		return nil
	}

	g.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(g.startTime),
		Counts:    g.counts,
	}
}
