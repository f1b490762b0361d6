package user

import (
	"time"

	"jobboard/internal/domain/experience"

	"github.com/google/uuid"
)

type Role string

const (
	RoleJobSeeker Role = "JOB_SEEKER"
	RoleEmployer  Role = "EMPLOYER"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	Skills       []string
	Bio          string
	Location     string
	Phone        string
	AvatarURL    string
	ResumeURL    string
	GoogleID     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// WorkExperience dates are "YYYY-MM" strings as submitted by the client.
type WorkExperience struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Title            string
	Company          string
	Location         string
	StartDate        string
	EndDate          *string
	CurrentlyWorking bool
	Description      string
	SkillsUsed       []string
}

type Education struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Institution  string
	Degree       string
	FieldOfStudy string
	StartYear    *int
	EndYear      *int
	IsPresent    bool
	Description  string
}

func (w WorkExperience) Period() experience.Period {
	p := experience.Period{StartDate: w.StartDate, CurrentlyWorking: w.CurrentlyWorking}
	if w.EndDate != nil {
		p.EndDate = *w.EndDate
	}
	return p
}

// Periods maps work history rows onto the spans experience is derived from.
func Periods(rows []WorkExperience) []experience.Period {
	out := make([]experience.Period, 0, len(rows))
	for _, w := range rows {
		out = append(out, w.Period())
	}
	return out
}
