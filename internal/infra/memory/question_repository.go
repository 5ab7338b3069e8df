package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"quiz-runner/internal/domain"
	"golang.org/x/sync/singleflight"
)

// SetLoader fetches question sets from a backing store (static data, YAML file, Postgres).
type SetLoader interface {
	LoadSet(ctx context.Context, key domain.SetKey) (domain.QuestionSet, error)
}

// QuestionRepository caches question sets with TTL to avoid repeated loads.
type QuestionRepository struct {
	loader SetLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[domain.SetKey]cachedSet
}

type cachedSet struct {
	set       domain.QuestionSet
	expiresAt time.Time
}

func NewQuestionRepository(loader SetLoader, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[domain.SetKey]cachedSet),
	}
}

func (r *QuestionRepository) GetSet(ctx context.Context, key domain.SetKey) (domain.QuestionSet, error) {
	if set, ok := r.lookup(key); ok {
		return set, nil
	}

	result, err, _ := r.sf.Do(key.String(), func() (interface{}, error) {
		if set, ok := r.lookup(key); ok {
			return set, nil
		}

		set, err := r.loader.LoadSet(ctx, key)
		if err != nil {
			return domain.QuestionSet{}, err
		}

		r.mu.Lock()
		r.cache[key] = cachedSet{
			set:       set,
			expiresAt: r.clock().Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return set, nil
	})
	if err != nil {
		return domain.QuestionSet{}, err
	}
	return result.(domain.QuestionSet), nil
}

func (r *QuestionRepository) lookup(key domain.SetKey) (domain.QuestionSet, bool) {
	now := r.clock()
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.cache[key]
	if !ok || !entry.expiresAt.After(now) {
		return domain.QuestionSet{}, false
	}
	return entry.set, true
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
