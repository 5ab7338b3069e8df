package cli

import (
	"fmt"
	"log"

	"quiz-runner/internal/config"
	"quiz-runner/internal/domain"
	"quiz-runner/internal/infra/memory"
	pgloader "quiz-runner/internal/infra/postgres"
	"github.com/spf13/cobra"
)

// NewSeedCmd loads question sets into Postgres from a YAML bank or the built-in sets.
func NewSeedCmd(configPath *string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert question sets into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Postgres.URL == "" {
				return fmt.Errorf("postgres url not configured")
			}

			sets := memory.BuiltinSets()
			if file != "" {
				loader, err := memory.LoadBankFile(file)
				if err != nil {
					return err
				}
				sets = loader.Sets()
			}

			db := pgloader.OpenBun(cfg.Postgres.URL)
			defer db.Close()

			if _, err := pgloader.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			n, err := pgloader.Seed(cmd.Context(), db, sets)
			if err != nil {
				return err
			}
			log.Printf("seeded %d question sets: %s", n, setNames(sets))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML question bank (defaults to the built-in sets)")
	return cmd
}

func setNames(sets []domain.QuestionSet) []string {
	names := make([]string, 0, len(sets))
	for _, s := range sets {
		names = append(names, s.Key().String())
	}
	return names
}
