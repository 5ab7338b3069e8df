package redis

import (
	"context"
	"sync"
	"time"

	"quiz-runner/internal/app"
	"github.com/redis/go-redis/v9"
)

// AttemptStore is a Redis-aware implementation of app.AttemptRepository.
// Notes:
//   - Controllers live in a local map; their timers and subscribers are
//     process-bound.
//   - Redis only carries a liveness marker per attempt so operators can count
//     live attempts across instances. Attempt state itself is never persisted.
type AttemptStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	attempts map[string]*app.Controller
}

func NewAttemptStore(client *redis.Client, ttl time.Duration) *AttemptStore {
	return &AttemptStore{
		client:   client,
		ttl:      ttl,
		attempts: make(map[string]*app.Controller),
	}
}

func (s *AttemptStore) Put(id string, c *app.Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[id] = c
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(id), "1", s.ttl).Err()
}

func (s *AttemptStore) Get(id string) (*app.Controller, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.attempts[id]
	return c, ok
}

func (s *AttemptStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.attempts[id]; !ok {
		return
	}
	delete(s.attempts, id)
	_ = s.client.Del(context.Background(), s.key(id)).Err()
}

func (s *AttemptStore) key(id string) string {
	return "quiz:attempt:" + id
}
