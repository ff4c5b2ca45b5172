package seeder

import (
	"context"

	"skill-verify/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
