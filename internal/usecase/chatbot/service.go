// Package chatbot answers free-text questions from job seekers. Known
// questions are routed to fixed handlers; anything else goes to a language
// model primed with the product documentation.
package chatbot

import (
	"context"
	"errors"
	"log"
	"time"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/experience"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrJobNotFound  = errors.New("job not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

const (
	ReplyStats        = "stats"
	ReplyApplications = "applications"
	ReplyJobList      = "jobList"
	ReplyText         = "text"
)

// Completer produces a single model completion.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Reply is the tagged result of a chatbot message. Only the field matching
// Type is set.
type Reply struct {
	Type         string
	Stats        *application.Stats
	Applications []application.Application
	Jobs         []MatchedJob
	Text         string
}

type MatchedJob struct {
	Job   job.Job `json:"job"`
	Score int     `json:"score"`
}

// Signals is what the matcher knows about a user without asking them.
type Signals struct {
	Skills          []string
	ExperienceLevel experience.Level
}

type Deps struct {
	Users        user.Repository
	Experiences  user.WorkExperienceRepository
	Jobs         job.Repository
	Applications application.Repository
	LLM          Completer
	Cache        Cache
	Docs         string
	Logger       *log.Logger
}

type Service struct {
	users        user.Repository
	experiences  user.WorkExperienceRepository
	jobs         job.Repository
	applications application.Repository
	llm          Completer
	cache        Cache
	systemPrompt string
	logger       *log.Logger
	now          func() time.Time
	rules        []rule
}

func NewService(d Deps) *Service {
	logger := d.Logger
	if logger == nil {
		logger = log.Default()
	}
	s := &Service{
		users:        d.Users,
		experiences:  d.Experiences,
		jobs:         d.Jobs,
		applications: d.Applications,
		llm:          d.LLM,
		cache:        d.Cache,
		systemPrompt: SystemPrompt(d.Docs),
		logger:       logger,
		now:          time.Now,
	}
	s.rules = s.defaultRules()
	return s
}

// DeriveSignals loads the user's stored skills and buckets their summed work
// history into an experience level.
func (s *Service) DeriveSignals(ctx context.Context, userID uuid.UUID) (Signals, error) {
	u, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Signals{}, ErrUserNotFound
		}
		return Signals{}, ErrInternal
	}

	rows, err := s.experiences.ListByUser(ctx, userID)
	if err != nil {
		return Signals{}, ErrInternal
	}

	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	years := experience.TotalYears(user.Periods(rows), s.now())
	return Signals{Skills: skills, ExperienceLevel: experience.LevelFor(years)}, nil
}

func (s *Service) JobDetails(ctx context.Context, jobID uuid.UUID) (job.Job, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, ErrInternal
	}
	return j, nil
}

func (s *Service) UserApplications(ctx context.Context, userID uuid.UUID) ([]application.Application, error) {
	out, err := s.applications.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (s *Service) ApplicationStats(ctx context.Context, userID uuid.UUID) (application.Stats, error) {
	st, err := s.applications.CountByStatus(ctx, userID)
	if err != nil {
		return application.Stats{}, ErrInternal
	}
	return st, nil
}
