package app

import (
	"context"
	"errors"
	"fmt"

	"quiz-runner/internal/domain"
)

// QuestionRepository loads question sets (from cache/backing store).
type QuestionRepository interface {
	GetSet(ctx context.Context, key domain.SetKey) (domain.QuestionSet, error)
}

// SetLister is implemented by stores that can enumerate their question sets.
type SetLister interface {
	ListSets(ctx context.Context) ([]domain.SetKey, error)
}

// DefaultSetKey is the set served when a requested pair does not exist.
var DefaultSetKey = domain.SetKey{Category: "programming", Difficulty: "easy"}

// QuestionBank resolves question sets with a fallback to a default set.
type QuestionBank struct {
	repo     QuestionRepository
	fallback domain.SetKey
	lister   SetLister
}

// NewQuestionBank wraps repo. A zero fallback means DefaultSetKey. lister may be nil.
func NewQuestionBank(repo QuestionRepository, fallback domain.SetKey, lister SetLister) *QuestionBank {
	if fallback.Category == "" {
		fallback.Category = DefaultSetKey.Category
	}
	if fallback.Difficulty == "" {
		fallback.Difficulty = DefaultSetKey.Difficulty
	}
	return &QuestionBank{repo: repo, fallback: fallback, lister: lister}
}

// GetQuestions returns the set for key, or the default set when key is absent.
// A missing or empty default set is reported as domain.ErrNoQuestions.
func (b *QuestionBank) GetQuestions(ctx context.Context, key domain.SetKey) (domain.QuestionSet, error) {
	set, err := b.repo.GetSet(ctx, key)
	if errors.Is(err, domain.ErrSetNotFound) && key != b.fallback {
		set, err = b.repo.GetSet(ctx, b.fallback)
	}
	if errors.Is(err, domain.ErrSetNotFound) {
		return domain.QuestionSet{}, domain.ErrNoQuestions
	}
	if err != nil {
		return domain.QuestionSet{}, fmt.Errorf("get questions %s: %w", key, err)
	}
	if len(set.Questions) == 0 {
		return domain.QuestionSet{}, domain.ErrNoQuestions
	}
	return set, nil
}

// Fallback returns the key of the default set.
func (b *QuestionBank) Fallback() domain.SetKey { return b.fallback }

// Catalog lists the available sets, or nil when the store cannot enumerate them.
func (b *QuestionBank) Catalog(ctx context.Context) ([]domain.SetKey, error) {
	if b.lister == nil {
		return nil, nil
	}
	return b.lister.ListSets(ctx)
}
