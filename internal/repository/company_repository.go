package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/company"

	"github.com/google/uuid"
)

const companyColumns = `c.id, c.name, c.description, c.website, c.location, c.industry, c.size, c.logo_url,
	c.owner_id, c.created_at, c.updated_at`

type PostgresCompanyRepository struct {
	db database.DB
}

func NewPostgresCompanyRepository(db database.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

func (r *PostgresCompanyRepository) Create(ctx context.Context, c company.Company) (company.Company, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO companies (id, name, description, website, location, industry, size, logo_url, owner_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.Name, c.Description, c.Website, c.Location, c.Industry, c.Size, c.LogoURL, c.OwnerID,
	)
	if err != nil {
		return company.Company{}, mapCompanyConstraint(err)
	}
	return r.GetByID(ctx, c.ID)
}

func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (company.Company, error) {
	return scanCompany(r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies c WHERE c.id = $1`, id))
}

func (r *PostgresCompanyRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) (company.Company, error) {
	return scanCompany(r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies c WHERE c.owner_id = $1`, ownerID))
}

// GetByEmployerUser returns the company the user owns or, failing that, the
// earliest company that lists them as an employer.
func (r *PostgresCompanyRepository) GetByEmployerUser(ctx context.Context, userID uuid.UUID) (company.Company, error) {
	return scanCompany(r.db.QueryRow(ctx,
		`SELECT `+companyColumns+`
		 FROM companies c
		 LEFT JOIN employers e ON e.company_id = c.id AND e.user_id = $1
		 WHERE c.owner_id = $1 OR e.user_id = $1
		 ORDER BY (c.owner_id = $1) DESC NULLS LAST, e.created_at ASC
		 LIMIT 1`,
		userID,
	))
}

func (r *PostgresCompanyRepository) Update(ctx context.Context, c company.Company) (company.Company, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE companies
		 SET name = $2, description = $3, website = $4, location = $5, industry = $6, size = $7, logo_url = $8, updated_at = now()
		 WHERE id = $1`,
		c.ID, c.Name, c.Description, c.Website, c.Location, c.Industry, c.Size, c.LogoURL,
	)
	if err != nil {
		return company.Company{}, mapCompanyConstraint(err)
	}
	if n == 0 {
		return company.Company{}, company.ErrNotFound
	}
	return r.GetByID(ctx, c.ID)
}

func (r *PostgresCompanyRepository) AddEmployer(ctx context.Context, e company.Employer) (company.Employer, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO employers (id, user_id, company_id, role_title)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		e.ID, e.UserID, e.CompanyID, e.RoleTitle,
	)
	if err := row.Scan(&e.CreatedAt); err != nil {
		if database.IsUniqueViolation(err) {
			return company.Employer{}, company.ErrEmployerExists
		}
		if database.IsForeignKeyViolation(err) {
			return company.Employer{}, company.ErrNotFound
		}
		return company.Employer{}, err
	}
	return e, nil
}

func (r *PostgresCompanyRepository) RemoveEmployer(ctx context.Context, companyID, userID uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM employers WHERE company_id = $1 AND user_id = $2`, companyID, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return company.ErrEmployerNotFound
	}
	return nil
}

func (r *PostgresCompanyRepository) IsEmployer(ctx context.Context, companyID, userID uuid.UUID) (bool, error) {
	var ok bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM employers WHERE company_id = $1 AND user_id = $2)
		     OR EXISTS(SELECT 1 FROM companies WHERE id = $1 AND owner_id = $2)`,
		companyID, userID,
	)
	if err := row.Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *PostgresCompanyRepository) ListEmployers(ctx context.Context, companyID uuid.UUID) ([]company.Employer, error) {
	rows, err := r.db.Query(ctx,
		`SELECT e.id, e.user_id, e.company_id, e.role_title, u.name, u.email, e.created_at
		 FROM employers e
		 JOIN users u ON u.id = e.user_id
		 WHERE e.company_id = $1
		 ORDER BY e.created_at ASC`,
		companyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]company.Employer, 0)
	for rows.Next() {
		var e company.Employer
		if err := rows.Scan(&e.ID, &e.UserID, &e.CompanyID, &e.RoleTitle, &e.UserName, &e.UserEmail, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanCompany(row database.Row) (company.Company, error) {
	var c company.Company
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Website, &c.Location, &c.Industry, &c.Size, &c.LogoURL,
		&c.OwnerID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if database.IsNoRows(err) {
			return company.Company{}, company.ErrNotFound
		}
		return company.Company{}, err
	}
	return c, nil
}

func mapCompanyConstraint(err error) error {
	switch database.UniqueConstraint(err) {
	case "companies_name_key":
		return company.ErrNameTaken
	case "companies_owner_id_key":
		return company.ErrOwnerHasCompany
	}
	return err
}
