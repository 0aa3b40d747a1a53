package logic

import (
	"testing"
	"time"
)

func TestNewMinuteGate(t *testing.T) {
	start := time.Date(2026, 1, 3, 11, 51, 1, 0, time.UTC)
	g := NewMinuteGate(start)
	if g.Latched() {
		t.Error("new gate should not be latched")
	}
	if !g.startTime.Equal(start) {
		t.Errorf("expected startTime %v, got %v", start, g.startTime)
	}
	if !g.lastHeartbeat.Equal(start) {
		t.Errorf("expected lastHeartbeat %v, got %v", start, g.lastHeartbeat)
	}
}

func TestGateRearmsOnEveryOtherSecond(t *testing.T) {
	g := NewMinuteGate(time.Time{})
	for s := 0; s < 60; s++ {
		if s == LogSecond {
			continue
		}
		if g.Observe(s) {
			t.Errorf("second %d: gate fired", s)
		}
		if g.Latched() {
			t.Errorf("second %d: gate should be clear", s)
		}
	}
}

func TestGateFiresOncePerSustainedSecond59(t *testing.T) {
	g := NewMinuteGate(time.Time{})

	fired := 0
	// The loop polls second 59 many times before the RTC rolls over.
	for i := 0; i < 25; i++ {
		if g.Observe(59) {
			fired++
		}
	}
	if fired != 1 {
		t.Fatalf("expected exactly 1 fire across 25 polls, got %d", fired)
	}
	if !g.Latched() {
		t.Error("gate should stay latched while second is 59")
	}
}

func TestGateFiresOncePerMinute(t *testing.T) {
	g := NewMinuteGate(time.Time{})

	fired := 0
	for minute := 0; minute < 3; minute++ {
		for _, s := range []int{57, 58, 59, 59, 59, 0, 1} {
			if g.Observe(s) {
				fired++
			}
		}
	}
	if fired != 3 {
		t.Errorf("expected 3 fires over 3 minutes, got %d", fired)
	}
}

func TestGateSkippedSecond(t *testing.T) {
	// A menu session can block the loop across the whole of second 59.
	g := NewMinuteGate(time.Time{})
	for _, s := range []int{57, 58, 0, 1} {
		if g.Observe(s) {
			t.Errorf("second %d: gate fired", s)
		}
	}
}

func TestGateRecordCounts(t *testing.T) {
	g := NewMinuteGate(time.Time{})
	g.Record(false)
	g.Record(true)
	g.Record(true)

	c := g.Counts()
	if c.Records != 3 {
		t.Errorf("expected 3 records, got %d", c.Records)
	}
	if c.Alarms != 2 {
		t.Errorf("expected 2 alarms, got %d", c.Alarms)
	}
}

func TestCheckHeartbeat(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := NewMinuteGate(start)
	g.Record(true)

	if hb := g.CheckHeartbeat(start.Add(14*time.Minute), 15*time.Minute); hb != nil {
		t.Error("heartbeat fired before interval")
	}

	hb := g.CheckHeartbeat(start.Add(15*time.Minute), 15*time.Minute)
	if hb == nil {
		t.Fatal("expected heartbeat at interval")
	}
	if hb.Uptime != 15*time.Minute {
		t.Errorf("expected uptime 15m, got %v", hb.Uptime)
	}
	if hb.Counts.Alarms != 1 {
		t.Errorf("expected 1 alarm in heartbeat counts, got %d", hb.Counts.Alarms)
	}

	if hb := g.CheckHeartbeat(start.Add(20*time.Minute), 15*time.Minute); hb != nil {
		t.Error("heartbeat fired again before next interval")
	}
	if hb := g.CheckHeartbeat(start.Add(30*time.Minute), 15*time.Minute); hb == nil {
		t.Error("expected second heartbeat")
	}
}

func TestCheckHeartbeatDisabled(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := NewMinuteGate(start)
	if hb := g.CheckHeartbeat(start.Add(24*time.Hour), 0); hb != nil {
		t.Error("heartbeat should be disabled for interval 0")
	}
}
