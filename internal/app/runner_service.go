package app

import (
	"log"
	"time"

	"quiz-runner/internal/domain"
	"github.com/google/uuid"
)

// AttemptRepository abstracts where live attempts are registered (in-memory, Redis, etc).
type AttemptRepository interface {
	Put(id string, c *Controller)
	Get(id string) (*Controller, bool)
	Delete(id string)
}

// RunnerService opens and closes attempts, one Controller per player connection.
type RunnerService struct {
	attempts AttemptRepository
	source   QuestionSource
	sched    Scheduler
	timer    TimerConfig
	now      func() time.Time
	newID    func() string
}

func NewRunnerService(attempts AttemptRepository, source QuestionSource, sched Scheduler, timer TimerConfig) *RunnerService {
	return &RunnerService{
		attempts: attempts,
		source:   source,
		sched:    sched,
		timer:    timer,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// NewRunnerServiceWithClock is test-only for deterministic timestamps.
func NewRunnerServiceWithClock(attempts AttemptRepository, source QuestionSource, sched Scheduler, timer TimerConfig, now func() time.Time) *RunnerService {
	s := NewRunnerService(attempts, source, sched, timer)
	s.now = now
	return s
}

// Open registers a new idle attempt and returns its controller.
func (s *RunnerService) Open() *Controller {
	id := s.newID()
	c := NewController(s.source, s.sched, ControllerOptions{
		AttemptID: id,
		Timer:     s.timer,
		Now:       s.now,
	})
	s.attempts.Put(id, c)
	log.Printf("attempt opened: %s", id)
	return c
}

// Attempt looks up a live attempt.
func (s *RunnerService) Attempt(id string) (*Controller, error) {
	c, ok := s.attempts.Get(id)
	if !ok {
		return nil, domain.ErrAttemptNotFound
	}
	return c, nil
}

// Close stops the attempt's timer and drops it from the registry.
func (s *RunnerService) Close(id string) {
	c, ok := s.attempts.Get(id)
	if !ok {
		return
	}
	c.Close()
	s.attempts.Delete(id)
	log.Printf("attempt closed: %s", id)
}
