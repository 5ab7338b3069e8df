package app

import (
	"sync"
	"time"
)

// DefaultUrgentSeconds is the remaining time at or below which the countdown is urgent.
const DefaultUrgentSeconds = 10

// TimerState is the lifecycle of a per-question countdown.
type TimerState int

const (
	TimerIdle TimerState = iota
	TimerRunning
	TimerExpired
	TimerStopped
)

func (s TimerState) String() string {
	switch s {
	case TimerRunning:
		return "running"
	case TimerExpired:
		return "expired"
	case TimerStopped:
		return "stopped"
	default:
		return "idle"
	}
}

// TimerConfig sets the countdown length, urgency threshold and tick interval.
type TimerConfig struct {
	Seconds  int
	Urgent   int
	Interval time.Duration
}

func (c TimerConfig) withDefaults() TimerConfig {
	if c.Seconds <= 0 {
		c.Seconds = DefaultQuestionSeconds
	}
	if c.Urgent < 0 {
		c.Urgent = 0
	}
	if c.Urgent == 0 {
		c.Urgent = DefaultUrgentSeconds
	}
	if c.Interval <= 0 {
		c.Interval = time.Second
	}
	return c
}

// Timer is a restartable countdown. All state is guarded by guard, which the
// owner shares so that ticks are serialized with its own mutations. onTick
// and onExpire run with guard held.
type Timer struct {
	guard    sync.Locker
	sched    Scheduler
	cfg      TimerConfig
	onTick   func(remaining int)
	onExpire func()

	remaining int
	state     TimerState
	token     uint64
	cancel    func()
}

// NewTimer builds an idle timer. onTick and onExpire may be nil.
func NewTimer(sched Scheduler, cfg TimerConfig, guard sync.Locker, onTick func(int), onExpire func()) *Timer {
	if guard == nil {
		guard = &sync.Mutex{}
	}
	cfg = cfg.withDefaults()
	return &Timer{
		guard:     guard,
		sched:     sched,
		cfg:       cfg,
		onTick:    onTick,
		onExpire:  onExpire,
		remaining: cfg.Seconds,
	}
}

// Start (re)starts the countdown from the full duration, stopping any
// previous run first.
func (t *Timer) Start() {
	t.guard.Lock()
	defer t.guard.Unlock()
	t.startLocked()
}

// Stop cancels pending ticks. It is idempotent and no callback fires after it returns.
func (t *Timer) Stop() {
	t.guard.Lock()
	defer t.guard.Unlock()
	t.stopLocked()
}

func (t *Timer) Remaining() int {
	t.guard.Lock()
	defer t.guard.Unlock()
	return t.remaining
}

func (t *Timer) State() TimerState {
	t.guard.Lock()
	defer t.guard.Unlock()
	return t.state
}

// Urgent reports whether the countdown is at or below the urgency threshold.
func (t *Timer) Urgent() bool {
	t.guard.Lock()
	defer t.guard.Unlock()
	return t.urgentLocked()
}

// Seconds returns the configured countdown length.
func (t *Timer) Seconds() int { return t.cfg.Seconds }

func (t *Timer) urgentLocked() bool {
	return t.remaining <= t.cfg.Urgent
}

func (t *Timer) startLocked() {
	t.stopLocked()
	t.remaining = t.cfg.Seconds
	t.state = TimerRunning
	t.token++
	token := t.token
	t.cancel = t.sched.Every(t.cfg.Interval, func() { t.fire(token) })
}

func (t *Timer) stopLocked() {
	t.cancelLocked()
	t.token++
	if t.state != TimerIdle {
		t.state = TimerStopped
	}
}

func (t *Timer) cancelLocked() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

func (t *Timer) fire(token uint64) {
	t.guard.Lock()
	defer t.guard.Unlock()

	// A stale token means Stop or Start ran after this tick was scheduled.
	if token != t.token || t.state != TimerRunning {
		return
	}

	t.remaining--
	if t.remaining <= 0 {
		t.remaining = 0
		t.state = TimerExpired
		t.cancelLocked()
		t.token++
		if t.onExpire != nil {
			t.onExpire()
		}
		return
	}
	if t.onTick != nil {
		t.onTick(t.remaining)
	}
}
