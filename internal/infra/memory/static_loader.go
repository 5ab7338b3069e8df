package memory

import (
	"context"
	"fmt"
	"os"
	"sort"

	"quiz-runner/internal/domain"
	"gopkg.in/yaml.v3"
)

// StaticSetLoader is a loader backed by an in-memory map (built-in bank, YAML files, tests).
type StaticSetLoader struct {
	sets map[domain.SetKey]domain.QuestionSet
}

func NewStaticSetLoader(sets []domain.QuestionSet) *StaticSetLoader {
	m := make(map[domain.SetKey]domain.QuestionSet, len(sets))
	for _, set := range sets {
		m[set.Key()] = set
	}
	return &StaticSetLoader{sets: m}
}

func (l *StaticSetLoader) LoadSet(_ context.Context, key domain.SetKey) (domain.QuestionSet, error) {
	if set, ok := l.sets[key]; ok {
		return set, nil
	}
	return domain.QuestionSet{}, domain.ErrSetNotFound
}

// ListSets returns the keys sorted by category, then difficulty.
func (l *StaticSetLoader) ListSets(_ context.Context) ([]domain.SetKey, error) {
	keys := make([]domain.SetKey, 0, len(l.sets))
	for key := range l.sets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Category != keys[j].Category {
			return keys[i].Category < keys[j].Category
		}
		return keys[i].Difficulty < keys[j].Difficulty
	})
	return keys, nil
}

// Sets returns every set held by the loader in ListSets order.
func (l *StaticSetLoader) Sets() []domain.QuestionSet {
	keys, _ := l.ListSets(context.Background())
	out := make([]domain.QuestionSet, 0, len(keys))
	for _, key := range keys {
		out = append(out, l.sets[key])
	}
	return out
}

// bankFile is the YAML layout of a question bank: category -> difficulty -> questions.
type bankFile map[string]map[string][]domain.Question

// ParseBank decodes and validates a YAML question bank.
func ParseBank(data []byte) ([]domain.QuestionSet, error) {
	var file bankFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse bank: %w", err)
	}
	sets := make([]domain.QuestionSet, 0)
	for category, levels := range file {
		for difficulty, questions := range levels {
			set := domain.QuestionSet{Category: category, Difficulty: difficulty, Questions: questions}
			if err := set.Validate(); err != nil {
				return nil, err
			}
			sets = append(sets, set)
		}
	}
	return sets, nil
}

// LoadBankFile reads a YAML question bank from path.
func LoadBankFile(path string) (*StaticSetLoader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sets, err := ParseBank(data)
	if err != nil {
		return nil, err
	}
	return NewStaticSetLoader(sets), nil
}
