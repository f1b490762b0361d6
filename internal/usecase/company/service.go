package company

import (
	"context"
	"errors"
	"log"
	"strings"

	"jobboard/internal/domain/company"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrNotFound         = errors.New("company not found")
	ErrForbidden        = errors.New("forbidden")
	ErrNameTaken        = errors.New("company name already taken")
	ErrAlreadyOwner     = errors.New("user already owns a company")
	ErrEmployerExists   = errors.New("user is already an employer of this company")
	ErrEmployerNotFound = errors.New("employer not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInternal         = errors.New("internal error")
)

const ownerRoleTitle = "Owner"

type Input struct {
	Name        string
	Description string
	Website     string
	Location    string
	Industry    string
	Size        string
	LogoURL     string
}

type Service struct {
	companies company.Repository
	users     user.Repository
	logger    *log.Logger
}

func NewService(companies company.Repository, users user.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{companies: companies, users: users, logger: logger}
}

// Create registers a company owned by ownerID. The owner also gets an
// employer record and the EMPLOYER role.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, in Input) (company.Company, error) {
	in = trimInput(in)
	if in.Name == "" {
		return company.Company{}, ErrInvalidInput
	}

	if _, err := s.companies.GetByOwner(ctx, ownerID); err == nil {
		return company.Company{}, ErrAlreadyOwner
	} else if !errors.Is(err, company.ErrNotFound) {
		return company.Company{}, ErrInternal
	}

	owner := ownerID
	c, err := s.companies.Create(ctx, company.Company{
		Name:        in.Name,
		Description: in.Description,
		Website:     in.Website,
		Location:    in.Location,
		Industry:    in.Industry,
		Size:        in.Size,
		LogoURL:     in.LogoURL,
		OwnerID:     &owner,
	})
	if err != nil {
		return company.Company{}, mapRepoError(err)
	}

	if _, err := s.companies.AddEmployer(ctx, company.Employer{UserID: ownerID, CompanyID: c.ID, RoleTitle: ownerRoleTitle}); err != nil && !errors.Is(err, company.ErrEmployerExists) {
		s.logger.Printf("[Company] owner employer record failed company_id=%s err=%v", c.ID, err)
		return company.Company{}, ErrInternal
	}
	if err := s.users.SetRole(ctx, ownerID, user.RoleEmployer); err != nil {
		s.logger.Printf("[Company] set owner role failed user_id=%s err=%v", ownerID, err)
		return company.Company{}, ErrInternal
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (company.Company, error) {
	c, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return company.Company{}, mapRepoError(err)
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, actorID, id uuid.UUID, in Input) (company.Company, error) {
	in = trimInput(in)
	if in.Name == "" {
		return company.Company{}, ErrInvalidInput
	}

	c, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return company.Company{}, mapRepoError(err)
	}
	if err := s.requireEmployer(ctx, id, actorID); err != nil {
		return company.Company{}, err
	}

	c.Name = in.Name
	c.Description = in.Description
	c.Website = in.Website
	c.Location = in.Location
	c.Industry = in.Industry
	c.Size = in.Size
	c.LogoURL = in.LogoURL

	updated, err := s.companies.Update(ctx, c)
	if err != nil {
		return company.Company{}, mapRepoError(err)
	}
	return updated, nil
}

func (s *Service) ListEmployers(ctx context.Context, actorID, companyID uuid.UUID) ([]company.Employer, error) {
	if _, err := s.companies.GetByID(ctx, companyID); err != nil {
		return nil, mapRepoError(err)
	}
	if err := s.requireEmployer(ctx, companyID, actorID); err != nil {
		return nil, err
	}
	out, err := s.companies.ListEmployers(ctx, companyID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// AddEmployer grants an existing user, looked up by email, management rights
// over the company. Only the owner may do this.
func (s *Service) AddEmployer(ctx context.Context, actorID, companyID uuid.UUID, email, roleTitle string) (company.Employer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return company.Employer{}, ErrInvalidInput
	}

	if err := s.requireOwner(ctx, companyID, actorID); err != nil {
		return company.Employer{}, err
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return company.Employer{}, ErrUserNotFound
		}
		return company.Employer{}, ErrInternal
	}

	e, err := s.companies.AddEmployer(ctx, company.Employer{
		UserID:    u.ID,
		CompanyID: companyID,
		RoleTitle: strings.TrimSpace(roleTitle),
	})
	if err != nil {
		return company.Employer{}, mapRepoError(err)
	}
	if err := s.users.SetRole(ctx, u.ID, user.RoleEmployer); err != nil {
		return company.Employer{}, ErrInternal
	}

	e.UserName = u.Name
	e.UserEmail = u.Email
	return e, nil
}

func (s *Service) RemoveEmployer(ctx context.Context, actorID, companyID, userID uuid.UUID) error {
	if err := s.requireOwner(ctx, companyID, actorID); err != nil {
		return err
	}
	if userID == actorID {
		return ErrInvalidInput
	}
	if err := s.companies.RemoveEmployer(ctx, companyID, userID); err != nil {
		return mapRepoError(err)
	}
	return nil
}

func (s *Service) requireOwner(ctx context.Context, companyID, actorID uuid.UUID) error {
	c, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return mapRepoError(err)
	}
	if c.OwnerID == nil || *c.OwnerID != actorID {
		return ErrForbidden
	}
	return nil
}

func (s *Service) requireEmployer(ctx context.Context, companyID, actorID uuid.UUID) error {
	ok, err := s.companies.IsEmployer(ctx, companyID, actorID)
	if err != nil {
		return ErrInternal
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

func mapRepoError(err error) error {
	switch {
	case errors.Is(err, company.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, company.ErrNameTaken):
		return ErrNameTaken
	case errors.Is(err, company.ErrOwnerHasCompany):
		return ErrAlreadyOwner
	case errors.Is(err, company.ErrEmployerExists):
		return ErrEmployerExists
	case errors.Is(err, company.ErrEmployerNotFound):
		return ErrEmployerNotFound
	default:
		return ErrInternal
	}
}

func trimInput(in Input) Input {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Website = strings.TrimSpace(in.Website)
	in.Location = strings.TrimSpace(in.Location)
	in.Industry = strings.TrimSpace(in.Industry)
	in.Size = strings.TrimSpace(in.Size)
	in.LogoURL = strings.TrimSpace(in.LogoURL)
	return in
}
