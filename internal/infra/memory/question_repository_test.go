package memory

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"quiz-runner/internal/domain"
)

func TestQuestionRepositoryCaches(t *testing.T) {
	loader := &countingLoader{SetLoader: NewStaticSetLoader([]domain.QuestionSet{sampleSet()})}
	repo := NewQuestionRepository(loader, time.Minute)
	key := domain.SetKey{Category: "math", Difficulty: "easy"}

	if _, err := repo.GetSet(context.Background(), key); err != nil {
		t.Fatalf("get set: %v", err)
	}
	if loader.calls.Load() != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls.Load())
	}

	if _, err := repo.GetSet(context.Background(), key); err != nil {
		t.Fatalf("get set 2: %v", err)
	}
	if loader.calls.Load() != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls.Load())
	}
}

func TestQuestionRepositoryReloadsAfterExpiry(t *testing.T) {
	loader := &countingLoader{SetLoader: NewStaticSetLoader([]domain.QuestionSet{sampleSet()})}
	repo := NewQuestionRepository(loader, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.clock = func() time.Time { return now }
	key := domain.SetKey{Category: "math", Difficulty: "easy"}

	_, _ = repo.GetSet(context.Background(), key)
	now = now.Add(2 * time.Minute)
	_, _ = repo.GetSet(context.Background(), key)

	if loader.calls.Load() != 2 {
		t.Fatalf("expected reload after ttl, loader calls %d", loader.calls.Load())
	}
}

func TestQuestionRepositoryDoesNotCacheMisses(t *testing.T) {
	loader := &countingLoader{SetLoader: NewStaticSetLoader(nil)}
	repo := NewQuestionRepository(loader, time.Minute)
	key := domain.SetKey{Category: "history", Difficulty: "hard"}

	for i := 0; i < 2; i++ {
		if _, err := repo.GetSet(context.Background(), key); !errors.Is(err, domain.ErrSetNotFound) {
			t.Fatalf("expected ErrSetNotFound, got %v", err)
		}
	}
	if loader.calls.Load() != 2 {
		t.Fatalf("expected misses to reach loader, calls %d", loader.calls.Load())
	}
}

type countingLoader struct {
	SetLoader
	calls atomic.Int32
}

func (l *countingLoader) LoadSet(ctx context.Context, key domain.SetKey) (domain.QuestionSet, error) {
	l.calls.Add(1)
	return l.SetLoader.LoadSet(ctx, key)
}

func sampleSet() domain.QuestionSet {
	return domain.QuestionSet{
		Category:   "math",
		Difficulty: "easy",
		Questions: []domain.Question{
			{Prompt: "What is 2 + 2?", Options: []string{"3", "4"}, Correct: 1},
		},
	}
}
