package company

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound         = errors.New("company not found")
	ErrNameTaken        = errors.New("company name already taken")
	ErrOwnerHasCompany  = errors.New("user already owns a company")
	ErrEmployerExists   = errors.New("employer already exists")
	ErrEmployerNotFound = errors.New("employer not found")
)

type Company struct {
	ID          uuid.UUID
	Name        string
	Description string
	Website     string
	Location    string
	Industry    string
	Size        string
	LogoURL     string
	OwnerID     *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Employer links a user to a company they may manage. At most one record
// exists per (user, company).
type Employer struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CompanyID uuid.UUID
	RoleTitle string
	UserName  string
	UserEmail string
	CreatedAt time.Time
}

type Repository interface {
	Create(ctx context.Context, c Company) (Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (Company, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (Company, error)
	GetByEmployerUser(ctx context.Context, userID uuid.UUID) (Company, error)
	Update(ctx context.Context, c Company) (Company, error)

	AddEmployer(ctx context.Context, e Employer) (Employer, error)
	RemoveEmployer(ctx context.Context, companyID, userID uuid.UUID) error
	IsEmployer(ctx context.Context, companyID, userID uuid.UUID) (bool, error)
	ListEmployers(ctx context.Context, companyID uuid.UUID) ([]Employer, error)
}
