package application

import (
	"context"
	"errors"
	"log"
	"strings"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/company"
	"jobboard/internal/domain/job"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("application not found")
	ErrJobNotFound  = errors.New("job not found")
	ErrJobClosed    = errors.New("job is not accepting applications")
	ErrDuplicate    = errors.New("already applied to this job")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

const (
	EventApplicationReceived      = "application_received"
	EventApplicationStatusChanged = "application_status_changed"
)

type Notifier interface {
	SendToUser(userID uuid.UUID, eventType string, payload any)
}

type ApplyInput struct {
	CoverLetter string
	ResumeURL   string
}

type Service struct {
	apps      application.Repository
	jobs      job.Repository
	companies company.Repository
	notifier  Notifier
	logger    *log.Logger
}

func NewService(apps application.Repository, jobs job.Repository, companies company.Repository, notifier Notifier, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{apps: apps, jobs: jobs, companies: companies, notifier: notifier, logger: logger}
}

// Apply records an application after checking that none exists for the
// pair. The check and the insert are separate statements; a concurrent
// duplicate is rejected by the unique index and reported the same way.
func (s *Service) Apply(ctx context.Context, userID, jobID uuid.UUID, in ApplyInput) (application.Application, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return application.Application{}, ErrJobNotFound
		}
		return application.Application{}, ErrInternal
	}
	if !j.IsActive {
		return application.Application{}, ErrJobClosed
	}

	exists, err := s.apps.Exists(ctx, userID, jobID)
	if err != nil {
		return application.Application{}, ErrInternal
	}
	if exists {
		return application.Application{}, ErrDuplicate
	}

	a, err := s.apps.Create(ctx, application.Application{
		UserID:      userID,
		JobID:       jobID,
		Status:      application.StatusPending,
		CoverLetter: strings.TrimSpace(in.CoverLetter),
		ResumeURL:   strings.TrimSpace(in.ResumeURL),
	})
	if err != nil {
		if errors.Is(err, application.ErrDuplicate) {
			return application.Application{}, ErrDuplicate
		}
		s.logger.Printf("[Applications] create failed user_id=%s job_id=%s err=%v", userID, jobID, err)
		return application.Application{}, ErrInternal
	}

	s.notifyEmployers(ctx, j, a)
	return a, nil
}

func (s *Service) ListMine(ctx context.Context, userID uuid.UUID) ([]application.Application, error) {
	out, err := s.apps.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (s *Service) Stats(ctx context.Context, userID uuid.UUID) (application.Stats, error) {
	st, err := s.apps.CountByStatus(ctx, userID)
	if err != nil {
		return application.Stats{}, ErrInternal
	}
	return st, nil
}

func (s *Service) ListForJob(ctx context.Context, actorID, jobID uuid.UUID) ([]application.Application, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, ErrInternal
	}
	if err := s.requireEmployer(ctx, j.CompanyID, actorID); err != nil {
		return nil, err
	}

	out, err := s.apps.ListByJob(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (s *Service) UpdateStatus(ctx context.Context, actorID, id uuid.UUID, status string) (application.Application, error) {
	st, ok := application.ParseStatus(status)
	if !ok {
		return application.Application{}, ErrInvalidInput
	}

	a, err := s.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}
	if err := s.requireEmployer(ctx, a.CompanyID, actorID); err != nil {
		return application.Application{}, err
	}

	if err := s.apps.UpdateStatus(ctx, id, st); err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}
	previous := a.Status
	a.Status = st

	if s.notifier != nil && previous != st {
		s.notifier.SendToUser(a.UserID, EventApplicationStatusChanged, map[string]any{
			"applicationId": a.ID,
			"jobId":         a.JobID,
			"jobTitle":      a.JobTitle,
			"companyName":   a.CompanyName,
			"status":        a.Status,
		})
	}
	return a, nil
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

func (s *Service) notifyEmployers(ctx context.Context, j job.Job, a application.Application) {
	if s.notifier == nil {
		return
	}
	employers, err := s.companies.ListEmployers(ctx, j.CompanyID)
	if err != nil {
		s.logger.Printf("[Applications] list employers failed company_id=%s err=%v", j.CompanyID, err)
		return
	}

	payload := map[string]any{
		"applicationId": a.ID,
		"jobId":         j.ID,
		"jobTitle":      j.Title,
		"applicantName": a.ApplicantName,
	}
	for _, e := range employers {
		s.notifier.SendToUser(e.UserID, EventApplicationReceived, payload)
	}
}
