package dto

import (
	"time"

	"jobboard/internal/domain/experience"
	"jobboard/internal/domain/job"
	ucjob "jobboard/internal/usecase/job"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID              uuid.UUID        `json:"id"`
	CompanyID       uuid.UUID        `json:"companyId"`
	CompanyName     string           `json:"companyName"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Requirements    []string         `json:"requirements"`
	SalaryMin       *int             `json:"salaryMin"`
	SalaryMax       *int             `json:"salaryMax"`
	Location        string           `json:"location"`
	Type            job.Type         `json:"type"`
	ExperienceLevel experience.Level `json:"experienceLevel"`
	IsActive        bool             `json:"isActive"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

func NewJobResponse(j job.Job) JobResponse {
	reqs := j.Requirements
	if reqs == nil {
		reqs = []string{}
	}
	return JobResponse{
		ID:              j.ID,
		CompanyID:       j.CompanyID,
		CompanyName:     j.CompanyName,
		Title:           j.Title,
		Description:     j.Description,
		Requirements:    reqs,
		SalaryMin:       j.SalaryMin,
		SalaryMax:       j.SalaryMax,
		Location:        j.Location,
		Type:            j.Type,
		ExperienceLevel: j.Level,
		IsActive:        j.IsActive,
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}
}

func NewJobResponses(items []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(items))
	for _, j := range items {
		out = append(out, NewJobResponse(j))
	}
	return out
}

type JobRequest struct {
	CompanyID       uuid.UUID `json:"companyId"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Requirements    []string  `json:"requirements"`
	SalaryMin       *int      `json:"salaryMin"`
	SalaryMax       *int      `json:"salaryMax"`
	Location        string    `json:"location"`
	Type            string    `json:"type"`
	ExperienceLevel string    `json:"experienceLevel"`
}

func (r JobRequest) Input() ucjob.Input {
	return ucjob.Input{
		CompanyID:    r.CompanyID,
		Title:        r.Title,
		Description:  r.Description,
		Requirements: r.Requirements,
		SalaryMin:    r.SalaryMin,
		SalaryMax:    r.SalaryMax,
		Location:     r.Location,
		Type:         r.Type,
		Level:        r.ExperienceLevel,
	}
}
