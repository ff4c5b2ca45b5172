package seeder

import (
	"context"
	"fmt"

	"skill-verify/internal/database"

	"go.uber.org/zap"
)

type Runner struct {
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}
	return nil
}

// Run executes the default seeder set. Order matters: questions reference
// the skill taxonomy.
func Run(ctx context.Context, db database.DB, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := Runner{Seeders: []Seeder{SkillsSeeder{}, QuestionsSeeder{}}}
	if err := r.Run(ctx, db); err != nil {
		return err
	}
	logger.Info("database seeding complete")
	return nil
}
