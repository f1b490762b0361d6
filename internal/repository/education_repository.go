package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

type PostgresEducationRepository struct {
	db database.DB
}

func NewPostgresEducationRepository(db database.DB) *PostgresEducationRepository {
	return &PostgresEducationRepository{db: db}
}

func (r *PostgresEducationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]user.Education, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, institution, degree, field_of_study, start_year, end_year, is_present, description
		 FROM educations
		 WHERE user_id = $1
		 ORDER BY start_year DESC NULLS LAST, created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.Education, 0)
	for rows.Next() {
		var e user.Education
		if err := rows.Scan(&e.ID, &e.UserID, &e.Institution, &e.Degree, &e.FieldOfStudy, &e.StartYear, &e.EndYear,
			&e.IsPresent, &e.Description); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresEducationRepository) Create(ctx context.Context, e user.Education) (uuid.UUID, error) {
	id := e.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO educations (id, user_id, institution, degree, field_of_study, start_year, end_year, is_present, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id, e.UserID, e.Institution, e.Degree, e.FieldOfStudy, e.StartYear, e.EndYear, e.IsPresent, e.Description,
	)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *PostgresEducationRepository) Update(ctx context.Context, e user.Education) error {
	_, err := r.db.Exec(ctx,
		`UPDATE educations
		 SET institution = $3, degree = $4, field_of_study = $5, start_year = $6, end_year = $7,
		     is_present = $8, description = $9, updated_at = now()
		 WHERE id = $1 AND user_id = $2`,
		e.ID, e.UserID, e.Institution, e.Degree, e.FieldOfStudy, e.StartYear, e.EndYear, e.IsPresent, e.Description,
	)
	return err
}

func (r *PostgresEducationRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM educations WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}
