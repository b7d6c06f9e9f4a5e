package timeutil

import (
	"testing"
	"time"
)

func TestRealClock(t *testing.T) {
	clock := RealClock{}

	before := time.Now()
	now := clock.Now()
	if now.Before(before) {
		t.Errorf("Now() = %v, before %v", now, before)
	}
	if clock.Since(before) < 0 {
		t.Error("Since returned a negative duration")
	}
}

func TestMockClock(t *testing.T) {
	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)

	if !clock.Now().Equal(start) {
		t.Fatalf("Now() = %v, want %v", clock.Now(), start)
	}
	if d := clock.Since(start); d != 0 {
		t.Fatalf("Since(start) = %v, want 0 on a frozen clock", d)
	}

	clock.Advance(90 * time.Second)
	if d := clock.Since(start); d != 90*time.Second {
		t.Fatalf("Since(start) = %v after Advance, want 90s", d)
	}
	if !clock.Now().Equal(start.Add(90 * time.Second)) {
		t.Fatalf("Now() = %v after Advance", clock.Now())
	}
}
