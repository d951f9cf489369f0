package examclient

import (
	"testing"
	"time"
)

// manualTicks swaps the timer's tick source for a channel the test
// drives by hand.
func manualTicks(t *Timer) chan time.Time {
	ch := make(chan time.Time)
	t.newTicks = func() (<-chan time.Time, func()) { return ch, func() {} }
	return ch
}

func TestTimerExpiresExactlyOnce(t *testing.T) {
	expirations := 0
	var lastRemaining int

	tm := NewTimer(func(r int) { lastRemaining = r }, func() { expirations++ })
	tm.remaining = 3600
	tm.running = true

	for i := 0; i < 3600; i++ {
		tm.Tick()
	}

	if expirations != 1 {
		t.Fatalf("expirations = %d, want 1", expirations)
	}
	if lastRemaining != 0 {
		t.Errorf("last remaining = %d, want 0", lastRemaining)
	}

	// Further ticks are dead.
	for i := 0; i < 10; i++ {
		if tm.Tick() {
			t.Fatal("tick after expiry reported live timer")
		}
	}
	if expirations != 1 {
		t.Errorf("expirations after extra ticks = %d, want 1", expirations)
	}
}

func TestTimerTickCountsDown(t *testing.T) {
	tm := NewTimer(nil, nil)
	tm.remaining = 5
	tm.running = true

	tm.Tick()
	tm.Tick()
	if got := tm.Remaining(); got != 3 {
		t.Errorf("remaining = %d, want 3", got)
	}
}

func TestTimerStartDrivenByTickSource(t *testing.T) {
	expired := make(chan struct{})
	tm := NewTimer(nil, func() { close(expired) })
	ticks := manualTicks(tm)

	tm.Start(2)
	ticks <- time.Time{}
	ticks <- time.Time{}

	select {
	case <-expired:
	case <-time.After(time.Second):
		t.Fatal("onExpire did not fire")
	}
}

func TestTimerStopIsIdempotent(t *testing.T) {
	tm := NewTimer(nil, func() { t.Error("expired after stop") })
	manualTicks(tm)

	tm.Start(10)
	tm.Stop()
	tm.Stop()

	if tm.Tick() {
		t.Error("tick after stop reported live timer")
	}
}
