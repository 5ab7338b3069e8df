package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"quiz-runner/internal/domain"
	pgmigrations "quiz-runner/internal/infra/postgres/migrations"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

type questionSetRow struct {
	bun.BaseModel `bun:"table:question_sets"`

	Category   string            `bun:"category,pk"`
	Difficulty string            `bun:"difficulty,pk"`
	Data       []domain.Question `bun:"data,type:jsonb"`
	UpdatedAt  time.Time         `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// OpenBun opens a bun DB over pgdriver for dsn.
func OpenBun(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// Migrate applies all pending migrations.
func Migrate(ctx context.Context, db *bun.DB) (*migrate.MigrationGroup, error) {
	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return nil, fmt.Errorf("init migrations: %w", err)
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return group, nil
}

// Seed upserts question sets, replacing the questions of existing pairs.
func Seed(ctx context.Context, db *bun.DB, sets []domain.QuestionSet) (int, error) {
	if len(sets) == 0 {
		return 0, nil
	}
	rows := make([]questionSetRow, 0, len(sets))
	now := time.Now()
	for _, set := range sets {
		if err := set.Validate(); err != nil {
			return 0, err
		}
		rows = append(rows, questionSetRow{
			Category:   set.Category,
			Difficulty: set.Difficulty,
			Data:       set.Questions,
			UpdatedAt:  now,
		})
	}

	_, err := db.NewInsert().
		Model(&rows).
		On("CONFLICT (category, difficulty) DO UPDATE").
		Set("data = EXCLUDED.data").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed question sets: %w", err)
	}
	return len(rows), nil
}
