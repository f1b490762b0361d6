package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

type PostgresWorkExperienceRepository struct {
	db database.DB
}

func NewPostgresWorkExperienceRepository(db database.DB) *PostgresWorkExperienceRepository {
	return &PostgresWorkExperienceRepository{db: db}
}

func (r *PostgresWorkExperienceRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]user.WorkExperience, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, title, company, location, start_date, end_date, currently_working, description, skills_used
		 FROM work_experiences
		 WHERE user_id = $1
		 ORDER BY start_date DESC, created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.WorkExperience, 0)
	for rows.Next() {
		var w user.WorkExperience
		if err := rows.Scan(&w.ID, &w.UserID, &w.Title, &w.Company, &w.Location, &w.StartDate, &w.EndDate,
			&w.CurrentlyWorking, &w.Description, &w.SkillsUsed); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresWorkExperienceRepository) Create(ctx context.Context, w user.WorkExperience) (uuid.UUID, error) {
	id := w.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO work_experiences (id, user_id, title, company, location, start_date, end_date, currently_working, description, skills_used)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id, w.UserID, w.Title, w.Company, w.Location, w.StartDate, w.EndDate, w.CurrentlyWorking, w.Description, nonNil(w.SkillsUsed),
	)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *PostgresWorkExperienceRepository) Update(ctx context.Context, w user.WorkExperience) error {
	_, err := r.db.Exec(ctx,
		`UPDATE work_experiences
		 SET title = $3, company = $4, location = $5, start_date = $6, end_date = $7,
		     currently_working = $8, description = $9, skills_used = $10, updated_at = now()
		 WHERE id = $1 AND user_id = $2`,
		w.ID, w.UserID, w.Title, w.Company, w.Location, w.StartDate, w.EndDate, w.CurrentlyWorking, w.Description, nonNil(w.SkillsUsed),
	)
	return err
}

func (r *PostgresWorkExperienceRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM work_experiences WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
