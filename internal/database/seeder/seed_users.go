package seeder

import (
	"context"
	"fmt"

	"jobboard/internal/database"

	"golang.org/x/crypto/bcrypt"
)

type UsersSeeder struct{}

func (UsersSeeder) Name() string { return "users" }

func (UsersSeeder) Requires() []Table {
	return []Table{
		{Name: "users", Columns: []Column{
			uuidCol("id"), textCol("email"), textCol("password_hash"), col("name"), textCol("role"), textArray("skills"),
		}},
		{Name: "work_experiences", Columns: []Column{
			uuidCol("user_id"), col("title"), col("company"),
			textCol("start_date"), textCol("end_date"), col("currently_working"), textArray("skills_used"),
		}},
	}
}

func (UsersSeeder) Run(ctx context.Context, db database.DB) error {

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	users := []struct {
		Email  string
		Name   string
		Role   string
		Skills []string
	}{
		{Email: DemoEmployerEmail, Name: "Erin Employer", Role: "EMPLOYER", Skills: []string{}},
		{Email: DemoSeekerEmail, Name: "Sam Seeker", Role: "JOB_SEEKER", Skills: []string{"go", "postgresql", "docker", "redis"}},
	}
	for _, u := range users {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO users (email, password_hash, name, role, skills) VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (email) DO NOTHING`,
			u.Email, string(hash), u.Name, u.Role, u.Skills,
		); err != nil {
			return err
		}
	}

	history := []struct {
		Title            string
		Company          string
		StartDate        string
		EndDate          *string
		CurrentlyWorking bool
		Skills           []string
	}{
		{Title: "Junior Developer", Company: "Startup Co", StartDate: "2018-01", EndDate: strPtr("2020-06"), Skills: []string{"javascript", "postgresql"}},
		{Title: "Backend Engineer", Company: "Scale Inc", StartDate: "2020-07", CurrentlyWorking: true, Skills: []string{"go", "docker", "redis"}},
	}
	for _, w := range history {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO work_experiences (user_id, title, company, start_date, end_date, currently_working, skills_used)
			 SELECT u.id, $2, $3, $4, $5, $6, $7 FROM users u
			 WHERE u.email = $1
			   AND NOT EXISTS (
			     SELECT 1 FROM work_experiences w WHERE w.user_id = u.id AND w.title = $2 AND w.company = $3
			   )`,
			DemoSeekerEmail, w.Title, w.Company, w.StartDate, w.EndDate, w.CurrentlyWorking, w.Skills,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func strPtr(s string) *string { return &s }
