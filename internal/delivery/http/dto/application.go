package dto

import (
	"time"

	"jobboard/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicantResponse struct {
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Skills []string `json:"skills"`
}

type ApplicationResponse struct {
	ID          uuid.UUID          `json:"id"`
	UserID      uuid.UUID          `json:"userId"`
	JobID       uuid.UUID          `json:"jobId"`
	Status      application.Status `json:"status"`
	CoverLetter string             `json:"coverLetter"`
	ResumeURL   string             `json:"resumeUrl"`
	JobTitle    string             `json:"jobTitle"`
	CompanyName string             `json:"companyName"`
	Applicant   *ApplicantResponse `json:"applicant,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	out := ApplicationResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		JobID:       a.JobID,
		Status:      a.Status,
		CoverLetter: a.CoverLetter,
		ResumeURL:   a.ResumeURL,
		JobTitle:    a.JobTitle,
		CompanyName: a.CompanyName,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if a.ApplicantEmail != "" {
		skills := a.ApplicantSkills
		if skills == nil {
			skills = []string{}
		}
		out.Applicant = &ApplicantResponse{Name: a.ApplicantName, Email: a.ApplicantEmail, Skills: skills}
	}
	return out
}

func NewApplicationResponses(items []application.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for _, a := range items {
		out = append(out, NewApplicationResponse(a))
	}
	return out
}

type ApplyRequest struct {
	CoverLetter string `json:"coverLetter"`
	ResumeURL   string `json:"resumeUrl"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}
