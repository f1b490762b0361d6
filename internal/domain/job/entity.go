package job

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobboard/internal/domain/experience"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job not found")

type Type string

const (
	TypeFullTime   Type = "FULL_TIME"
	TypePartTime   Type = "PART_TIME"
	TypeContract   Type = "CONTRACT"
	TypeInternship Type = "INTERNSHIP"
)

func ParseType(s string) (Type, bool) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case TypeFullTime, TypePartTime, TypeContract, TypeInternship:
		return t, true
	}
	return t, false
}

type Job struct {
	ID           uuid.UUID
	CompanyID    uuid.UUID
	CompanyName  string
	CreatedBy    uuid.UUID
	Title        string
	Description  string
	Requirements []string
	SalaryMin    *int
	SalaryMax    *int
	Location     string
	Type         Type
	Level        experience.Level
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Filter narrows job listings. Zero values mean "no constraint".
type Filter struct {
	CompanyID   uuid.UUID
	CompanyName string
	Search      string
	Location    string
	Type        Type
	Level       experience.Level
	// AnySkill keeps jobs whose requirements overlap at least one of these
	// skills, compared case-insensitively.
	AnySkill    []string
	IncludeDead bool
	// Unbounded returns every matching job and ignores Limit and Offset.
	Unbounded bool
	Limit     int
	Offset    int
}

type Repository interface {
	Create(ctx context.Context, j Job) (Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	Update(ctx context.Context, j Job) (Job, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f Filter) ([]Job, error)

	SaveForUser(ctx context.Context, userID, jobID uuid.UUID) error
	UnsaveForUser(ctx context.Context, userID, jobID uuid.UUID) error
	ListSaved(ctx context.Context, userID uuid.UUID) ([]Job, error)
}
