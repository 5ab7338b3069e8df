package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"quiz-runner/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// SetLoader loads question set JSONB from Postgres.
type SetLoader struct {
	pool *pgxpool.Pool
}

func NewSetLoader(pool *pgxpool.Pool) *SetLoader {
	return &SetLoader{pool: pool}
}

func (l *SetLoader) LoadSet(ctx context.Context, key domain.SetKey) (domain.QuestionSet, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx,
		`SELECT data FROM question_sets WHERE category=$1 AND difficulty=$2`,
		key.Category, key.Difficulty,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.QuestionSet{}, domain.ErrSetNotFound
	}
	if err != nil {
		return domain.QuestionSet{}, fmt.Errorf("load question set: %w", err)
	}

	var questions []domain.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return domain.QuestionSet{}, fmt.Errorf("unmarshal question set: %w", err)
	}
	set := domain.QuestionSet{Category: key.Category, Difficulty: key.Difficulty, Questions: questions}
	if err := set.Validate(); err != nil {
		return domain.QuestionSet{}, err
	}
	return set, nil
}

func (l *SetLoader) ListSets(ctx context.Context) ([]domain.SetKey, error) {
	rows, err := l.pool.Query(ctx, `SELECT category, difficulty FROM question_sets ORDER BY category, difficulty`)
	if err != nil {
		return nil, fmt.Errorf("list question sets: %w", err)
	}
	defer rows.Close()

	var keys []domain.SetKey
	for rows.Next() {
		var key domain.SetKey
		if err := rows.Scan(&key.Category, &key.Difficulty); err != nil {
			return nil, fmt.Errorf("scan question set key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
