package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/application"

	"github.com/google/uuid"
)

const applicationColumns = `a.id, a.user_id, a.job_id, a.status, a.cover_letter, a.resume_url, a.created_at, a.updated_at,
	j.title, c.id, c.name, u.name, u.email, u.skills`

const applicationJoins = ` FROM applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN companies c ON c.id = j.company_id
	JOIN users u ON u.id = a.user_id`

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) Exists(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM applications WHERE user_id = $1 AND job_id = $2)`, userID, jobID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) (application.Application, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = application.StatusPending
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO applications (id, user_id, job_id, status, cover_letter, resume_url)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.UserID, a.JobID, string(a.Status), a.CoverLetter, a.ResumeURL,
	)
	if err != nil {
		if database.UniqueConstraint(err) == "applications_user_id_job_id_key" {
			return application.Application{}, application.ErrDuplicate
		}
		return application.Application{}, err
	}
	return r.GetByID(ctx, a.ID)
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	a, err := scanApplication(r.db.QueryRow(ctx, `SELECT `+applicationColumns+applicationJoins+` WHERE a.id = $1`, id))
	if database.IsNoRows(err) {
		return application.Application{}, application.ErrNotFound
	}
	return a, err
}

func (r *PostgresApplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]application.Application, error) {
	return r.query(ctx, `SELECT `+applicationColumns+applicationJoins+` WHERE a.user_id = $1 ORDER BY a.created_at DESC`, userID)
}

func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error) {
	return r.query(ctx, `SELECT `+applicationColumns+applicationJoins+` WHERE a.job_id = $1 ORDER BY a.created_at ASC`, jobID)
}

func (r *PostgresApplicationRepository) CountByStatus(ctx context.Context, userID uuid.UUID) (application.Stats, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(1) FROM applications WHERE user_id = $1 GROUP BY status`, userID)
	if err != nil {
		return application.Stats{}, err
	}
	defer rows.Close()

	var st application.Stats
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return application.Stats{}, err
		}
		st.Add(application.Status(status), n)
	}
	if err := rows.Err(); err != nil {
		return application.Stats{}, err
	}
	return st, nil
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) error {
	n, err := r.db.Exec(ctx, `UPDATE applications SET status = $2, updated_at = now() WHERE id = $1`, id, string(status))
	if err != nil {
		return err
	}
	if n == 0 {
		return application.ErrNotFound
	}
	return nil
}

func (r *PostgresApplicationRepository) query(ctx context.Context, q string, args ...any) ([]application.Application, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanApplication(row database.Row) (application.Application, error) {
	var a application.Application
	var status string
	if err := row.Scan(&a.ID, &a.UserID, &a.JobID, &status, &a.CoverLetter, &a.ResumeURL, &a.CreatedAt, &a.UpdatedAt,
		&a.JobTitle, &a.CompanyID, &a.CompanyName, &a.ApplicantName, &a.ApplicantEmail, &a.ApplicantSkills); err != nil {
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	return a, nil
}
