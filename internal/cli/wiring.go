package cli

import (
	"context"
	"fmt"
	"time"

	"quiz-runner/internal/app"
	"quiz-runner/internal/config"
	"quiz-runner/internal/domain"
	"quiz-runner/internal/infra/memory"
	pgloader "quiz-runner/internal/infra/postgres"
	redisinfra "quiz-runner/internal/infra/redis"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
)

type setSource interface {
	memory.SetLoader
	app.SetLister
}

// backend holds the connections opened for a command.
type backend struct {
	bank        *app.QuestionBank
	redisClient *redis.Client
	pool        *pgxpool.Pool
}

func (b *backend) Close() {
	if b.pool != nil {
		b.pool.Close()
	}
	if b.redisClient != nil {
		_ = b.redisClient.Close()
	}
}

// openBackend builds the question bank from config: Postgres, a YAML bank file
// or the built-in sets as the source, cached in Redis or in process.
func openBackend(ctx context.Context, cfg config.Config) (*backend, error) {
	b := &backend{}

	var source setSource
	switch {
	case cfg.Postgres.URL != "":
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		b.pool = pool
		source = pgloader.NewSetLoader(pool)
	case cfg.Quiz.BankFile != "":
		loader, err := memory.LoadBankFile(cfg.Quiz.BankFile)
		if err != nil {
			return nil, err
		}
		source = loader
	default:
		source = memory.NewStaticSetLoader(memory.BuiltinSets())
	}

	if cfg.Redis.Addr != "" {
		b.redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	var repo app.QuestionRepository
	if b.redisClient != nil {
		repo = redisinfra.NewQuestionRepository(b.redisClient, source, quizTTL)
	} else {
		repo = memory.NewQuestionRepository(source, quizTTL)
	}

	fallback := domain.SetKey{Category: cfg.Quiz.DefaultCategory, Difficulty: cfg.Quiz.DefaultDifficulty}
	b.bank = app.NewQuestionBank(repo, fallback, source)
	return b, nil
}

func timerConfig(cfg config.Config) app.TimerConfig {
	return app.TimerConfig{
		Seconds:  cfg.Quiz.QuestionSeconds,
		Urgent:   cfg.Quiz.UrgentSeconds,
		Interval: config.TTLDuration(cfg.Quiz.Tick, time.Second),
	}
}
