// Package seeder loads demo data: an employer with a company and open jobs
// across every experience level, plus a job seeker with work history.
package seeder

import (
	"context"

	"jobboard/internal/database"
)

type Seeder interface {
	Name() string
	// Requires lists the tables and columns Run writes. The runner checks
	// them before Run.
	Requires() []Table
	Run(ctx context.Context, db database.DB) error
}

const (
	DemoPassword      = "password123"
	DemoEmployerEmail = "employer@demo.jobboard.dev"
	DemoSeekerEmail   = "seeker@demo.jobboard.dev"
	DemoCompanyName   = "Demo Labs"
)
