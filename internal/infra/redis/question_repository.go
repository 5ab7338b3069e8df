package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"quiz-runner/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// SetLoader fetches question sets from a backing store (static data, YAML file, Postgres).
type SetLoader interface {
	LoadSet(ctx context.Context, key domain.SetKey) (domain.QuestionSet, error)
}

// QuestionRepository caches question sets in Redis and falls back to a loader on cache miss.
// Sets are stored as JSON: SET quiz:bank:{category}:{difficulty} {json} EX ttl
type QuestionRepository struct {
	client *redis.Client
	loader SetLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewQuestionRepository(client *redis.Client, loader SetLoader, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *QuestionRepository) GetSet(ctx context.Context, key domain.SetKey) (domain.QuestionSet, error) {
	if set, ok := r.cached(ctx, key); ok {
		return set, nil
	}

	result, err, _ := r.sf.Do(key.String(), func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if set, ok := r.cached(ctx, key); ok {
			return set, nil
		}

		set, err := r.loader.LoadSet(ctx, key)
		if err != nil {
			return domain.QuestionSet{}, err
		}

		data, err := json.Marshal(set)
		if err != nil {
			return domain.QuestionSet{}, fmt.Errorf("marshal question set: %w", err)
		}
		if err := r.client.Set(ctx, r.setKey(key), data, r.ttlWithJitter()).Err(); err != nil {
			log.Printf("cache question set %s: %v", key, err)
		}
		return set, nil
	})
	if err != nil {
		return domain.QuestionSet{}, err
	}
	return result.(domain.QuestionSet), nil
}

// Invalidate drops the cached copy of a set, e.g. after re-seeding.
func (r *QuestionRepository) Invalidate(ctx context.Context, key domain.SetKey) error {
	return r.client.Del(ctx, r.setKey(key)).Err()
}

func (r *QuestionRepository) cached(ctx context.Context, key domain.SetKey) (domain.QuestionSet, bool) {
	raw, err := r.client.Get(ctx, r.setKey(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("read cached question set %s: %v", key, err)
		}
		return domain.QuestionSet{}, false
	}
	var set domain.QuestionSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return domain.QuestionSet{}, false
	}
	return set, true
}

func (r *QuestionRepository) setKey(key domain.SetKey) string {
	return "quiz:bank:" + key.Category + ":" + key.Difficulty
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
