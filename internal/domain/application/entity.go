package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("application not found")
	ErrDuplicate = errors.New("application already exists")
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
)

func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusAccepted, StatusRejected:
		return st, true
	}
	return st, false
}

type Application struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	JobID       uuid.UUID
	Status      Status
	CoverLetter string
	ResumeURL   string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	JobTitle        string
	CompanyID       uuid.UUID
	CompanyName     string
	ApplicantName   string
	ApplicantEmail  string
	ApplicantSkills []string
}

type Stats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

func (s *Stats) Add(status Status, n int) {
	s.Total += n
	switch status {
	case StatusPending:
		s.Pending += n
	case StatusAccepted:
		s.Accepted += n
	case StatusRejected:
		s.Rejected += n
	}
}

type Repository interface {
	Exists(ctx context.Context, userID, jobID uuid.UUID) (bool, error)
	Create(ctx context.Context, a Application) (Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]Application, error)
	CountByStatus(ctx context.Context, userID uuid.UUID) (Stats, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}
