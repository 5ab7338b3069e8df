package app

import (
	"sort"
	"sync"
	"time"
)

// Scheduler runs fn repeatedly every interval until the returned cancel func
// is called. Cancel must not wait for an in-flight fn to return.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (cancel func())
}

// TickerScheduler schedules callbacks on a time.Ticker.
type TickerScheduler struct{}

func (TickerScheduler) Every(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	var once sync.Once

	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()

	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

// ManualScheduler fires callbacks only when Tick is called. It is meant for
// tests and scripted demos where time must be deterministic.
type ManualScheduler struct {
	mu    sync.Mutex
	next  int
	tasks map[int]func()
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{tasks: make(map[int]func())}
}

func (m *ManualScheduler) Every(_ time.Duration, fn func()) func() {
	m.mu.Lock()
	id := m.next
	m.next++
	m.tasks[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.tasks, id)
		m.mu.Unlock()
	}
}

// Tick fires every scheduled callback n times. Callbacks registered during a
// round fire from the next round on; callbacks cancelled during a round may
// still fire once in that round, like a tick already in flight.
func (m *ManualScheduler) Tick(n int) {
	for i := 0; i < n; i++ {
		m.mu.Lock()
		ids := make([]int, 0, len(m.tasks))
		for id := range m.tasks {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		fns := make([]func(), 0, len(ids))
		for _, id := range ids {
			fns = append(fns, m.tasks[id])
		}
		m.mu.Unlock()

		for _, fn := range fns {
			fn()
		}
	}
}

// Pending returns the number of scheduled callbacks.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}
