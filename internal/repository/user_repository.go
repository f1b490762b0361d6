package repository

import (
	"context"
	"strings"

	"jobboard/internal/database"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

const userColumns = `id, email, COALESCE(password_hash, ''), name, role, skills, bio, location, phone,
	avatar_url, resume_url, google_id, created_at, updated_at`

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, u user.User) error {
	var hash *string
	if u.PasswordHash != "" {
		hash = &u.PasswordHash
	}
	role := u.Role
	if role == "" {
		role = user.RoleJobSeeker
	}
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, name, role, skills, avatar_url, google_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Email, hash, u.Name, string(role), skills, u.AvatarURL, u.GoogleID,
	)
	if err != nil && database.UniqueConstraint(err) == "users_email_key" {
		return user.ErrEmailAlreadyExists
	}
	return err
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email)))
}

func (r *PostgresUserRepository) GetUserByGoogleID(ctx context.Context, googleID string) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE google_id = $1`, googleID))
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, strings.ToLower(email))
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) LinkGoogleID(ctx context.Context, id uuid.UUID, googleID string) error {
	n, err := r.db.Exec(ctx, `UPDATE users SET google_id = $1, updated_at = now() WHERE id = $2`, googleID, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, in user.ProfileUpdate) error {
	n, err := r.db.Exec(ctx,
		`UPDATE users SET
			name = COALESCE($2, name),
			skills = COALESCE($3, skills),
			bio = COALESCE($4, bio),
			location = COALESCE($5, location),
			phone = COALESCE($6, phone),
			avatar_url = COALESCE($7, avatar_url),
			resume_url = COALESCE($8, resume_url),
			updated_at = now()
		 WHERE id = $1`,
		id, in.Name, in.Skills, in.Bio, in.Location, in.Phone, in.AvatarURL, in.ResumeURL,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) SetRole(ctx context.Context, id uuid.UUID, role user.Role) error {
	n, err := r.db.Exec(ctx, `UPDATE users SET role = $1, updated_at = now() WHERE id = $2`, string(role), id)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	var role string
	if err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &role, &u.Skills, &u.Bio, &u.Location, &u.Phone,
		&u.AvatarURL, &u.ResumeURL, &u.GoogleID, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		if database.IsNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.Role = user.Role(role)
	if u.Skills == nil {
		u.Skills = []string{}
	}
	return u, nil
}
