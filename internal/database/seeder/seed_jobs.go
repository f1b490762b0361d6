package seeder

import (
	"context"
	"fmt"

	"jobboard/internal/database"
)

type JobsSeeder struct{}

func (JobsSeeder) Name() string { return "jobs" }

type demoJob struct {
	Title        string
	Description  string
	Requirements []string
	SalaryMin    int
	SalaryMax    int
	Location     string
	Type         string
	Level        string
}

var demoJobs = []demoJob{
	{
		Title:        "Junior Frontend Developer",
		Description:  "Ship UI features with mentorship from senior engineers.",
		Requirements: []string{"javascript", "react", "css"},
		SalaryMin:    45000, SalaryMax: 60000,
		Location: "Remote", Type: "FULL_TIME", Level: "ENTRY",
	},
	{
		Title:        "Backend Engineer (Go)",
		Description:  "Own HTTP services backed by PostgreSQL and Redis.",
		Requirements: []string{"go", "postgresql", "redis"},
		SalaryMin:    80000, SalaryMax: 110000,
		Location: "Berlin", Type: "FULL_TIME", Level: "MID",
	},
	{
		Title:        "Senior Platform Engineer",
		Description:  "Run our container platform and CI pipelines.",
		Requirements: []string{"go", "docker", "kubernetes", "aws"},
		SalaryMin:    110000, SalaryMax: 140000,
		Location: "Remote", Type: "FULL_TIME", Level: "SENIOR",
	},
	{
		Title:        "Engineering Lead",
		Description:  "Lead a team of six across backend and data.",
		Requirements: []string{"go", "postgresql", "leadership"},
		SalaryMin:    140000, SalaryMax: 170000,
		Location: "London", Type: "FULL_TIME", Level: "LEAD",
	},
	{
		Title:        "Data Engineering Intern",
		Description:  "Build ETL jobs over our event stream.",
		Requirements: []string{"python", "sql"},
		Location:     "Remote", Type: "INTERNSHIP", Level: "ENTRY",
	},
	{
		Title:        "DevOps Contractor",
		Description:  "Three month engagement to harden our deploys.",
		Requirements: []string{"docker", "terraform", "aws"},
		SalaryMin:    90000, SalaryMax: 120000,
		Location: "Remote", Type: "CONTRACT", Level: "SENIOR",
	},
}

func (JobsSeeder) Requires() []Table {
	return []Table{{Name: "jobs", Columns: []Column{
		uuidCol("company_id"),
		uuidCol("created_by"),
		textCol("title"),
		col("description"),
		textArray("requirements"),
		col("salary_min"),
		col("salary_max"),
		col("location"),
		textCol("job_type"),
		textCol("experience_level"),
	}}}
}

func (JobsSeeder) Run(ctx context.Context, db database.DB) error {

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, j := range demoJobs {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO jobs (company_id, created_by, title, description, requirements, salary_min, salary_max, location, job_type, experience_level)
			 SELECT c.id, c.owner_id, $2, $3, $4, $5, $6, $7, $8, $9 FROM companies c
			 WHERE c.name = $1 AND c.owner_id IS NOT NULL
			   AND NOT EXISTS (SELECT 1 FROM jobs j WHERE j.company_id = c.id AND j.title = $2)`,
			DemoCompanyName,
			j.Title,
			j.Description,
			j.Requirements,
			nullableInt(j.SalaryMin),
			nullableInt(j.SalaryMax),
			j.Location,
			j.Type,
			j.Level,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func nullableInt(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}
