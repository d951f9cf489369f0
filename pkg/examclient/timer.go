package examclient

import (
	"sync"
	"time"
)

// Timer is a once-per-second countdown. When it reaches zero it fires
// onExpire exactly once and stops ticking. The server stays the
// authority on elapsed time; this clock only drives the UI and the
// auto-submit.
type Timer struct {
	mu        sync.Mutex
	remaining int
	running   bool
	expired   bool
	stopCh    chan struct{}

	onTick   func(remaining int)
	onExpire func()

	// newTicks supplies the tick channel; tests swap it for a
	// hand-driven one.
	newTicks func() (<-chan time.Time, func())
}

// NewTimer creates a timer. Both callbacks are optional.
func NewTimer(onTick func(remaining int), onExpire func()) *Timer {
	return &Timer{
		onTick:   onTick,
		onExpire: onExpire,
		newTicks: func() (<-chan time.Time, func()) {
			tk := time.NewTicker(time.Second)
			return tk.C, tk.Stop
		},
	}
}

// Start begins counting down from durationSeconds. Starting an
// already-running timer restarts it.
func (t *Timer) Start(durationSeconds int) {
	t.mu.Lock()
	if t.running {
		close(t.stopCh)
	}
	t.remaining = durationSeconds
	t.expired = false
	t.running = true
	t.stopCh = make(chan struct{})
	stop := t.stopCh
	t.mu.Unlock()

	go t.run(stop)
}

func (t *Timer) run(stop chan struct{}) {
	ticks, cancel := t.newTicks()
	defer cancel()
	for {
		select {
		case <-stop:
			return
		case <-ticks:
			if !t.Tick() {
				return
			}
		}
	}
}

// Tick advances the countdown by one second and reports whether the
// timer is still live. Exposed so tests can drive time directly.
func (t *Timer) Tick() bool {
	t.mu.Lock()
	if !t.running || t.expired {
		t.mu.Unlock()
		return false
	}
	if t.remaining > 0 {
		t.remaining--
	}
	remaining := t.remaining
	expired := remaining == 0
	if expired {
		t.expired = true
		t.running = false
	}
	onTick, onExpire := t.onTick, t.onExpire
	t.mu.Unlock()

	if onTick != nil {
		onTick(remaining)
	}
	if expired {
		if onExpire != nil {
			onExpire()
		}
		return false
	}
	return true
}

// Stop cancels the countdown. Safe to call repeatedly and after expiry.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		close(t.stopCh)
		t.running = false
	}
}

// Remaining returns the seconds left.
func (t *Timer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}
