package seeder

import (
	"context"
	"fmt"

	"jobboard/internal/database"
)

type CompanySeeder struct{}

func (CompanySeeder) Name() string { return "company" }

func (CompanySeeder) Requires() []Table {
	return []Table{
		{Name: "companies", Columns: []Column{
			uuidCol("id"), textCol("name"), col("description"), col("website"), col("location"),
			col("industry"), col("size"), uuidCol("owner_id"),
		}},
		{Name: "employers", Columns: []Column{uuidCol("user_id"), uuidCol("company_id"), col("role_title")}},
	}
}

func (CompanySeeder) Run(ctx context.Context, db database.DB) error {

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if _, err := tx.Exec(
		ctx,
		`INSERT INTO companies (name, description, website, location, industry, size, owner_id)
		 SELECT $1, $2, $3, $4, $5, $6, u.id FROM users u WHERE u.email = $7
		 ON CONFLICT DO NOTHING`,
		DemoCompanyName,
		"Builds hiring tools for small teams.",
		"https://demo.jobboard.dev",
		"Remote",
		"Software",
		"11-50",
		DemoEmployerEmail,
	); err != nil {
		return err
	}

	if _, err := tx.Exec(
		ctx,
		`INSERT INTO employers (user_id, company_id, role_title)
		 SELECT u.id, c.id, 'Owner' FROM users u JOIN companies c ON c.owner_id = u.id
		 WHERE u.email = $1
		 ON CONFLICT (user_id, company_id) DO NOTHING`,
		DemoEmployerEmail,
	); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
