package profile

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"jobboard/internal/domain/company"
	"jobboard/internal/domain/experience"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// Cache drops derived per-user data after a profile change.
type Cache interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

type Profile struct {
	User            user.User
	WorkExperience  []user.WorkExperience
	Education       []user.Education
	Company         *company.Company
	ExperienceLevel experience.Level
	TotalYears      float64
}

// UpdateInput is a partial profile update. Nil relation slices leave the
// stored rows untouched; an empty non-nil slice removes them all.
type UpdateInput struct {
	Name      *string
	Skills    []string
	Bio       *string
	Location  *string
	Phone     *string
	AvatarURL *string
	ResumeURL *string

	WorkExperience []user.WorkExperience
	Education      []user.Education
}

type Service struct {
	users       user.Repository
	experiences user.WorkExperienceRepository
	educations  user.EducationRepository
	companies   company.Repository
	cache       Cache
	logger      *log.Logger
	now         func() time.Time
}

func NewService(
	users user.Repository,
	experiences user.WorkExperienceRepository,
	educations user.EducationRepository,
	companies company.Repository,
	cache Cache,
	logger *log.Logger,
) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		users:       users,
		experiences: experiences,
		educations:  educations,
		companies:   companies,
		cache:       cache,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (Profile, error) {
	var (
		p    Profile
		comp company.Company
		hasC bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.users.GetUserByID(gctx, userID)
		if err != nil {
			return err
		}
		p.User = u
		return nil
	})
	g.Go(func() error {
		rows, err := s.experiences.ListByUser(gctx, userID)
		if err != nil {
			return err
		}
		p.WorkExperience = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.educations.ListByUser(gctx, userID)
		if err != nil {
			return err
		}
		p.Education = rows
		return nil
	})
	g.Go(func() error {
		c, err := s.companies.GetByEmployerUser(gctx, userID)
		if err != nil {
			if errors.Is(err, company.ErrNotFound) {
				return nil
			}
			return err
		}
		comp, hasC = c, true
		return nil
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Profile{}, ErrNotFound
		}
		s.logger.Printf("[Profile] load failed user_id=%s err=%v", userID, err)
		return Profile{}, ErrInternal
	}

	if hasC {
		p.Company = &comp
	}
	p.User.PasswordHash = ""
	p.TotalYears = experience.TotalYears(user.Periods(p.WorkExperience), s.now())
	p.ExperienceLevel = experience.LevelFor(p.TotalYears)
	return p, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateInput) (Profile, error) {
	upd, err := normalizeUpdate(in)
	if err != nil {
		return Profile{}, err
	}
	if err := validateRelations(in); err != nil {
		return Profile{}, err
	}

	if err := s.users.UpdateProfile(ctx, userID, upd); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, ErrInternal
	}

	if in.WorkExperience != nil {
		err := syncRelations[user.WorkExperience](ctx, s.experiences, userID, in.WorkExperience,
			func(w user.WorkExperience) uuid.UUID { return w.ID },
			func(w user.WorkExperience, id uuid.UUID) user.WorkExperience {
				w.ID, w.UserID = id, userID
				return w
			},
		)
		if err != nil {
			s.logger.Printf("[Profile] work experience sync failed user_id=%s err=%v", userID, err)
			return Profile{}, ErrInternal
		}
	}

	if in.Education != nil {
		err := syncRelations[user.Education](ctx, s.educations, userID, in.Education,
			func(e user.Education) uuid.UUID { return e.ID },
			func(e user.Education, id uuid.UUID) user.Education {
				e.ID, e.UserID = id, userID
				return e
			},
		)
		if err != nil {
			s.logger.Printf("[Profile] education sync failed user_id=%s err=%v", userID, err)
			return Profile{}, ErrInternal
		}
	}

	if s.cache != nil {
		if err := s.cache.DeleteByPattern(ctx, MatchCachePattern(userID)); err != nil {
			s.logger.Printf("[Profile] match cache invalidation failed user_id=%s err=%v", userID, err)
		}
	}

	return s.GetProfile(ctx, userID)
}

// MatchCachePattern covers every cached match result of the user.
func MatchCachePattern(userID uuid.UUID) string {
	return "match:" + userID.String() + ":*"
}

func normalizeUpdate(in UpdateInput) (user.ProfileUpdate, error) {
	upd := user.ProfileUpdate{
		Bio:       trimPtr(in.Bio),
		Location:  trimPtr(in.Location),
		Phone:     trimPtr(in.Phone),
		AvatarURL: trimPtr(in.AvatarURL),
		ResumeURL: trimPtr(in.ResumeURL),
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return user.ProfileUpdate{}, ErrInvalidInput
		}
		upd.Name = &name
	}
	if in.Skills != nil {
		upd.Skills = cleanSkills(in.Skills)
	}
	return upd, nil
}

func validateRelations(in UpdateInput) error {
	for _, w := range in.WorkExperience {
		if strings.TrimSpace(w.Title) == "" || strings.TrimSpace(w.Company) == "" {
			return ErrInvalidInput
		}
	}
	for _, e := range in.Education {
		if strings.TrimSpace(e.Institution) == "" {
			return ErrInvalidInput
		}
		if e.StartYear != nil && e.EndYear != nil && *e.EndYear < *e.StartYear {
			return ErrInvalidInput
		}
	}
	return nil
}

// cleanSkills trims and drops blanks and case-insensitive repeats while
// keeping the first spelling the user chose.
func cleanSkills(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}
