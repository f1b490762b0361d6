package dto

import (
	"strings"
	"time"

	"jobboard/internal/domain/experience"
	"jobboard/internal/domain/user"
	"jobboard/internal/usecase/profile"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      user.Role `json:"role"`
	Skills    []string  `json:"skills"`
	Bio       string    `json:"bio"`
	Location  string    `json:"location"`
	Phone     string    `json:"phone"`
	AvatarURL string    `json:"avatarUrl"`
	ResumeURL string    `json:"resumeUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewUserResponse(u user.User) UserResponse {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Skills:    skills,
		Bio:       u.Bio,
		Location:  u.Location,
		Phone:     u.Phone,
		AvatarURL: u.AvatarURL,
		ResumeURL: u.ResumeURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// WorkExperience is used for both directions. An empty or unknown id on
// input creates a new row.
type WorkExperience struct {
	ID               string   `json:"id,omitempty"`
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	StartDate        string   `json:"startDate"`
	EndDate          *string  `json:"endDate"`
	CurrentlyWorking bool     `json:"currentlyWorking"`
	Description      string   `json:"description"`
	SkillsUsed       []string `json:"skillsUsed"`
}

type Education struct {
	ID           string `json:"id,omitempty"`
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	StartYear    Year   `json:"startYear"`
	EndYear      Year   `json:"endYear"`
	IsPresent    bool   `json:"isPresent"`
	Description  string `json:"description"`
}

type ProfileResponse struct {
	UserResponse
	WorkExperience  []WorkExperience `json:"workExperience"`
	Education       []Education      `json:"education"`
	Company         *CompanyResponse `json:"company"`
	ExperienceLevel experience.Level `json:"experienceLevel"`
	TotalYears      float64          `json:"totalYears"`
}

func NewProfileResponse(p profile.Profile) ProfileResponse {
	out := ProfileResponse{
		UserResponse:    NewUserResponse(p.User),
		WorkExperience:  make([]WorkExperience, 0, len(p.WorkExperience)),
		Education:       make([]Education, 0, len(p.Education)),
		ExperienceLevel: p.ExperienceLevel,
		TotalYears:      p.TotalYears,
	}
	for _, w := range p.WorkExperience {
		skills := w.SkillsUsed
		if skills == nil {
			skills = []string{}
		}
		out.WorkExperience = append(out.WorkExperience, WorkExperience{
			ID:               w.ID.String(),
			Title:            w.Title,
			Company:          w.Company,
			Location:         w.Location,
			StartDate:        w.StartDate,
			EndDate:          w.EndDate,
			CurrentlyWorking: w.CurrentlyWorking,
			Description:      w.Description,
			SkillsUsed:       skills,
		})
	}
	for _, e := range p.Education {
		out.Education = append(out.Education, Education{
			ID:           e.ID.String(),
			Institution:  e.Institution,
			Degree:       e.Degree,
			FieldOfStudy: e.FieldOfStudy,
			StartYear:    YearOf(e.StartYear),
			EndYear:      YearOf(e.EndYear),
			IsPresent:    e.IsPresent,
			Description:  e.Description,
		})
	}
	if p.Company != nil {
		c := NewCompanyResponse(*p.Company)
		out.Company = &c
	}
	return out
}

type UpdateProfileRequest struct {
	Name      *string  `json:"name"`
	Skills    []string `json:"skills"`
	Bio       *string  `json:"bio"`
	Location  *string  `json:"location"`
	Phone     *string  `json:"phone"`
	AvatarURL *string  `json:"avatarUrl"`
	ResumeURL *string  `json:"resumeUrl"`

	WorkExperience []WorkExperience `json:"workExperience"`
	Education      []Education      `json:"education"`
}

func (r UpdateProfileRequest) Input() profile.UpdateInput {
	in := profile.UpdateInput{
		Name:      r.Name,
		Skills:    r.Skills,
		Bio:       r.Bio,
		Location:  r.Location,
		Phone:     r.Phone,
		AvatarURL: r.AvatarURL,
		ResumeURL: r.ResumeURL,
	}
	if r.WorkExperience != nil {
		in.WorkExperience = make([]user.WorkExperience, 0, len(r.WorkExperience))
		for _, w := range r.WorkExperience {
			in.WorkExperience = append(in.WorkExperience, user.WorkExperience{
				ID:               parseOptionalID(w.ID),
				Title:            w.Title,
				Company:          w.Company,
				Location:         w.Location,
				StartDate:        w.StartDate,
				EndDate:          w.EndDate,
				CurrentlyWorking: w.CurrentlyWorking,
				Description:      w.Description,
				SkillsUsed:       w.SkillsUsed,
			})
		}
	}
	if r.Education != nil {
		in.Education = make([]user.Education, 0, len(r.Education))
		for _, e := range r.Education {
			in.Education = append(in.Education, user.Education{
				ID:           parseOptionalID(e.ID),
				Institution:  e.Institution,
				Degree:       e.Degree,
				FieldOfStudy: e.FieldOfStudy,
				StartYear:    e.StartYear.Value,
				EndYear:      e.EndYear.Value,
				IsPresent:    e.IsPresent,
				Description:  e.Description,
			})
		}
	}
	return in
}

func parseOptionalID(s string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil
	}
	return id
}
