package job

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"jobboard/internal/domain/company"
	"jobboard/internal/domain/experience"
	"jobboard/internal/domain/job"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("job not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

const (
	defaultListLimit = 20
	maxListLimit     = 50

	EventJobPosted = "job_posted"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type Notifier interface {
	Broadcast(eventType string, payload any)
}

type ListParams struct {
	Search    string
	Location  string
	Type      string
	Level     string
	CompanyID uuid.UUID
	Limit     int
	Offset    int
}

type Input struct {
	CompanyID    uuid.UUID
	Title        string
	Description  string
	Requirements []string
	SalaryMin    *int
	SalaryMax    *int
	Location     string
	Type         string
	Level        string
}

type Service struct {
	jobs      job.Repository
	companies company.Repository
	cache     Cache
	notifier  Notifier
	logger    *log.Logger
}

func NewService(jobs job.Repository, companies company.Repository, cache Cache, notifier Notifier, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{jobs: jobs, companies: companies, cache: cache, notifier: notifier, logger: logger}
}

// DetailCacheKey is the redis key of a single job.
func DetailCacheKey(id uuid.UUID) string {
	return "job:detail:" + id.String()
}

func (s *Service) List(ctx context.Context, p ListParams) ([]job.Job, error) {
	f := job.Filter{
		CompanyID: p.CompanyID,
		Search:    strings.TrimSpace(p.Search),
		Location:  strings.TrimSpace(p.Location),
		Limit:     clampLimit(p.Limit),
		Offset:    p.Offset,
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if strings.TrimSpace(p.Type) != "" {
		t, ok := job.ParseType(p.Type)
		if !ok {
			return nil, ErrInvalidInput
		}
		f.Type = t
	}
	if strings.TrimSpace(p.Level) != "" {
		l, ok := experience.ParseLevel(p.Level)
		if !ok {
			return nil, ErrInvalidInput
		}
		f.Level = l
	}

	out, err := s.jobs.List(ctx, f)
	if err != nil {
		s.logger.Printf("[Jobs] list failed err=%v", err)
		return nil, ErrInternal
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (job.Job, error) {
	key := DetailCacheKey(id)
	if s.cache != nil {
		var cached job.Job
		if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, ErrInternal
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, j, 0); err != nil {
			s.logger.Printf("[Jobs] cache set failed key=%s err=%v", key, err)
		}
	}
	return j, nil
}

func (s *Service) Create(ctx context.Context, actorID uuid.UUID, in Input) (job.Job, error) {
	j, err := buildJob(in)
	if err != nil {
		return job.Job{}, err
	}
	if err := s.requireEmployer(ctx, in.CompanyID, actorID); err != nil {
		return job.Job{}, err
	}

	j.CreatedBy = actorID
	created, err := s.jobs.Create(ctx, j)
	if err != nil {
		s.logger.Printf("[Jobs] create failed company_id=%s err=%v", in.CompanyID, err)
		return job.Job{}, ErrInternal
	}

	if s.notifier != nil {
		s.notifier.Broadcast(EventJobPosted, map[string]any{
			"jobId":       created.ID,
			"title":       created.Title,
			"companyId":   created.CompanyID,
			"companyName": created.CompanyName,
		})
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, actorID, id uuid.UUID, in Input) (job.Job, error) {
	current, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, ErrInternal
	}
	if err := s.requireEmployer(ctx, current.CompanyID, actorID); err != nil {
		return job.Job{}, err
	}

	in.CompanyID = current.CompanyID
	next, err := buildJob(in)
	if err != nil {
		return job.Job{}, err
	}
	next.ID = current.ID
	next.CreatedBy = current.CreatedBy
	next.IsActive = current.IsActive

	updated, err := s.jobs.Update(ctx, next)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, ErrInternal
	}
	s.evict(ctx, id)
	return updated, nil
}

// Delete deactivates the job; applications keep pointing at it.
func (s *Service) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	current, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	if err := s.requireEmployer(ctx, current.CompanyID, actorID); err != nil {
		return err
	}
	if err := s.jobs.Deactivate(ctx, id); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	s.evict(ctx, id)
	return nil
}

func (s *Service) Save(ctx context.Context, userID, jobID uuid.UUID) error {
	if err := s.jobs.SaveForUser(ctx, userID, jobID); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	return nil
}

func (s *Service) Unsave(ctx context.Context, userID, jobID uuid.UUID) error {
	if err := s.jobs.UnsaveForUser(ctx, userID, jobID); err != nil {
		return ErrInternal
	}
	return nil
}

func (s *Service) ListSaved(ctx context.Context, userID uuid.UUID) ([]job.Job, error) {
	out, err := s.jobs.ListSaved(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
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

func (s *Service) evict(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, DetailCacheKey(id)); err != nil {
		s.logger.Printf("[Jobs] cache evict failed job_id=%s err=%v", id, err)
	}
}

func buildJob(in Input) (job.Job, error) {
	j := job.Job{
		CompanyID:    in.CompanyID,
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		Requirements: cleanRequirements(in.Requirements),
		SalaryMin:    in.SalaryMin,
		SalaryMax:    in.SalaryMax,
		Location:     strings.TrimSpace(in.Location),
		IsActive:     true,
	}
	if in.CompanyID == uuid.Nil || j.Title == "" {
		return job.Job{}, ErrInvalidInput
	}

	t, ok := job.ParseType(in.Type)
	if !ok {
		return job.Job{}, ErrInvalidInput
	}
	l, ok := experience.ParseLevel(in.Level)
	if !ok {
		return job.Job{}, ErrInvalidInput
	}
	j.Type, j.Level = t, l

	if j.SalaryMin != nil && *j.SalaryMin < 0 || j.SalaryMax != nil && *j.SalaryMax < 0 {
		return job.Job{}, ErrInvalidInput
	}
	if j.SalaryMin != nil && j.SalaryMax != nil && *j.SalaryMin > *j.SalaryMax {
		return job.Job{}, ErrInvalidInput
	}
	return j, nil
}

func cleanRequirements(in []string) []string {
	out := make([]string, 0, len(in))
	for _, r := range in {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

func clampLimit(n int) int {
	if n <= 0 {
		return defaultListLimit
	}
	if n > maxListLimit {
		return maxListLimit
	}
	return n
}
