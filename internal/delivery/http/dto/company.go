package dto

import (
	"time"

	"jobboard/internal/domain/company"
	ucompany "jobboard/internal/usecase/company"

	"github.com/google/uuid"
)

type CompanyResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Website     string     `json:"website"`
	Location    string     `json:"location"`
	Industry    string     `json:"industry"`
	Size        string     `json:"size"`
	LogoURL     string     `json:"logoUrl"`
	OwnerID     *uuid.UUID `json:"ownerId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func NewCompanyResponse(c company.Company) CompanyResponse {
	return CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Website:     c.Website,
		Location:    c.Location,
		Industry:    c.Industry,
		Size:        c.Size,
		LogoURL:     c.LogoURL,
		OwnerID:     c.OwnerID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type CompanyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Website     string `json:"website"`
	Location    string `json:"location"`
	Industry    string `json:"industry"`
	Size        string `json:"size"`
	LogoURL     string `json:"logoUrl"`
}

func (r CompanyRequest) Input() ucompany.Input {
	return ucompany.Input{
		Name:        r.Name,
		Description: r.Description,
		Website:     r.Website,
		Location:    r.Location,
		Industry:    r.Industry,
		Size:        r.Size,
		LogoURL:     r.LogoURL,
	}
}

type EmployerResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	CompanyID uuid.UUID `json:"companyId"`
	RoleTitle string    `json:"roleTitle"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewEmployerResponse(e company.Employer) EmployerResponse {
	return EmployerResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		CompanyID: e.CompanyID,
		RoleTitle: e.RoleTitle,
		Name:      e.UserName,
		Email:     e.UserEmail,
		CreatedAt: e.CreatedAt,
	}
}

type AddEmployerRequest struct {
	Email     string `json:"email"`
	RoleTitle string `json:"roleTitle"`
}
