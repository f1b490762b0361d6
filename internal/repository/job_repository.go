package repository

import (
	"context"
	"strings"

	"jobboard/internal/database"
	"jobboard/internal/domain/experience"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/matching"

	"github.com/google/uuid"
)

const (
	defaultJobListLimit = 20
	maxJobListLimit     = 100
)

const jobColumns = `j.id, j.company_id, c.name, j.created_by, j.title, j.description, j.requirements,
	j.salary_min, j.salary_max, j.location, j.job_type, j.experience_level, j.is_active, j.created_at, j.updated_at`

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) (job.Job, error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, company_id, created_by, title, description, requirements, salary_min, salary_max,
		                   location, job_type, experience_level, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, true)`,
		j.ID, j.CompanyID, j.CreatedBy, j.Title, j.Description, nonNil(j.Requirements), j.SalaryMin, j.SalaryMax,
		j.Location, string(j.Type), string(j.Level),
	)
	if err != nil {
		return job.Job{}, err
	}
	return r.GetByID(ctx, j.ID)
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs j JOIN companies c ON c.id = j.company_id WHERE j.id = $1`,
		id,
	)
	j, err := scanJob(row)
	if database.IsNoRows(err) {
		return job.Job{}, job.ErrNotFound
	}
	return j, err
}

func (r *PostgresJobRepository) Update(ctx context.Context, j job.Job) (job.Job, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE jobs
		 SET title = $2, description = $3, requirements = $4, salary_min = $5, salary_max = $6,
		     location = $7, job_type = $8, experience_level = $9, is_active = $10, updated_at = now()
		 WHERE id = $1`,
		j.ID, j.Title, j.Description, nonNil(j.Requirements), j.SalaryMin, j.SalaryMax,
		j.Location, string(j.Type), string(j.Level), j.IsActive,
	)
	if err != nil {
		return job.Job{}, err
	}
	if n == 0 {
		return job.Job{}, job.ErrNotFound
	}
	return r.GetByID(ctx, j.ID)
}

func (r *PostgresJobRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `UPDATE jobs SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepository) List(ctx context.Context, f job.Filter) ([]job.Job, error) {
	var w whereBuilder
	if !f.IncludeDead {
		w.add("j.is_active = true")
	}
	if f.CompanyID != uuid.Nil {
		w.add("j.company_id = ?", f.CompanyID)
	}
	if s := strings.TrimSpace(f.CompanyName); s != "" {
		w.add("c.name ILIKE ?", likePattern(s))
	}
	if s := strings.TrimSpace(f.Location); s != "" {
		w.add("j.location ILIKE ?", likePattern(s))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		p := likePattern(s)
		w.add("(j.title ILIKE ? OR j.description ILIKE ? OR c.name ILIKE ?)", p, p, p)
	}
	if f.Type != "" {
		w.add("j.job_type = ?", string(f.Type))
	}
	if f.Level != "" {
		w.add("j.experience_level = ?", string(f.Level))
	}
	if skills := matching.NormalizeSkills(f.AnySkill); len(skills) > 0 {
		w.add("EXISTS (SELECT 1 FROM unnest(j.requirements) AS req WHERE lower(btrim(req)) = ANY(?::text[]))", skills)
	}

	base := `SELECT ` + jobColumns + ` FROM jobs j JOIN companies c ON c.id = j.company_id` + w.clause() +
		` ORDER BY j.created_at DESC, j.id ASC`
	if f.Unbounded {
		return r.queryJobs(ctx, base, w.args...)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultJobListLimit
	}
	if limit > maxJobListLimit {
		limit = maxJobListLimit
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	return r.queryJobs(ctx, base+` LIMIT `+w.arg(limit)+` OFFSET `+w.arg(offset), w.args...)
}

func (r *PostgresJobRepository) SaveForUser(ctx context.Context, userID, jobID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO saved_jobs (user_id, job_id) VALUES ($1, $2) ON CONFLICT (user_id, job_id) DO NOTHING`,
		userID, jobID,
	)
	if database.IsForeignKeyViolation(err) {
		return job.ErrNotFound
	}
	return err
}

func (r *PostgresJobRepository) UnsaveForUser(ctx context.Context, userID, jobID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`, userID, jobID)
	return err
}

func (r *PostgresJobRepository) ListSaved(ctx context.Context, userID uuid.UUID) ([]job.Job, error) {
	return r.queryJobs(ctx,
		`SELECT `+jobColumns+`
		 FROM saved_jobs s
		 JOIN jobs j ON j.id = s.job_id
		 JOIN companies c ON c.id = j.company_id
		 WHERE s.user_id = $1
		 ORDER BY s.created_at DESC`,
		userID,
	)
}

func (r *PostgresJobRepository) queryJobs(ctx context.Context, q string, args ...any) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanJob(row database.Row) (job.Job, error) {
	var j job.Job
	var jobType, level string
	if err := row.Scan(&j.ID, &j.CompanyID, &j.CompanyName, &j.CreatedBy, &j.Title, &j.Description, &j.Requirements,
		&j.SalaryMin, &j.SalaryMax, &j.Location, &jobType, &level, &j.IsActive, &j.CreatedAt, &j.UpdatedAt); err != nil {
		return job.Job{}, err
	}
	j.Type = job.Type(jobType)
	j.Level = experience.Level(level)
	if j.Requirements == nil {
		j.Requirements = []string{}
	}
	return j, nil
}
