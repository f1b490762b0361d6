package seeder

import (
	"context"
	"fmt"
	"log"
	"time"

	"jobboard/internal/database"
)

// Runner applies seeders in order and stops at the first failure. Every
// seeder is idempotent, so a rerun after a partial failure is safe.
type Runner struct {
	Seeders []Seeder
	Logger  *log.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}

	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		start := time.Now()
		if err := CheckSchema(ctx, db, s.Requires()); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		logger.Printf("[Seeder] %s done duration=%s", s.Name(), time.Since(start))
	}
	return nil
}
