package profile

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"jobboard/internal/domain/company"
	"jobboard/internal/domain/experience"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

type fakeUsers struct {
	u       user.User
	updates []user.ProfileUpdate
}

func (f *fakeUsers) CreateUser(context.Context, user.User) error { return nil }
func (f *fakeUsers) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	if id != f.u.ID {
		return user.User{}, user.ErrNotFound
	}
	return f.u, nil
}
func (f *fakeUsers) GetUserByEmail(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrNotFound
}
func (f *fakeUsers) GetUserByGoogleID(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrNotFound
}
func (f *fakeUsers) ExistsByEmail(context.Context, string) (bool, error)   { return false, nil }
func (f *fakeUsers) LinkGoogleID(context.Context, uuid.UUID, string) error { return nil }
func (f *fakeUsers) SetRole(context.Context, uuid.UUID, user.Role) error   { return nil }
func (f *fakeUsers) UpdateProfile(_ context.Context, id uuid.UUID, in user.ProfileUpdate) error {
	if id != f.u.ID {
		return user.ErrNotFound
	}
	f.updates = append(f.updates, in)
	if in.Name != nil {
		f.u.Name = *in.Name
	}
	if in.Skills != nil {
		f.u.Skills = in.Skills
	}
	return nil
}

type fakeEducationStore struct {
	rows map[uuid.UUID]user.Education
}

func (f *fakeEducationStore) ListByUser(_ context.Context, userID uuid.UUID) ([]user.Education, error) {
	out := []user.Education{}
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *fakeEducationStore) Create(_ context.Context, e user.Education) (uuid.UUID, error) {
	e.ID = uuid.New()
	f.rows[e.ID] = e
	return e.ID, nil
}
func (f *fakeEducationStore) Update(_ context.Context, e user.Education) error {
	f.rows[e.ID] = e
	return nil
}
func (f *fakeEducationStore) Delete(_ context.Context, _, id uuid.UUID) error {
	delete(f.rows, id)
	return nil
}

type fakeCompanies struct {
	company.Repository
}

func (fakeCompanies) GetByEmployerUser(context.Context, uuid.UUID) (company.Company, error) {
	return company.Company{}, company.ErrNotFound
}

type fakeCache struct {
	patterns []string
}

func (f *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	f.patterns = append(f.patterns, pattern)
	return nil
}

func newTestService(u user.User) (*Service, *fakeUsers, *fakeExperienceStore, *fakeEducationStore, *fakeCache) {
	users := &fakeUsers{u: u}
	exps := newFakeExperienceStore()
	edus := &fakeEducationStore{rows: map[uuid.UUID]user.Education{}}
	cache := &fakeCache{}
	s := NewService(users, exps, edus, fakeCompanies{}, cache, log.New(io.Discard, "", 0))
	s.now = func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) }
	return s, users, exps, edus, cache
}

func TestGetProfile_DerivesLevel(t *testing.T) {
	id := uuid.New()
	s, _, exps, _, _ := newTestService(user.User{ID: id, Name: "Dev", PasswordHash: "secret"})
	exps.rows[uuid.New()] = user.WorkExperience{UserID: id, StartDate: "2019-03", CurrentlyWorking: true}

	p, err := s.GetProfile(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.ExperienceLevel != experience.LevelSenior {
		t.Fatalf("expected SENIOR, got %s (%.2f years)", p.ExperienceLevel, p.TotalYears)
	}
	if p.User.PasswordHash != "" {
		t.Fatalf("password hash leaked")
	}
	if p.Company != nil {
		t.Fatalf("expected no company")
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	s, _, _, _, _ := newTestService(user.User{ID: uuid.New()})
	if _, err := s.GetProfile(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateProfile_SyncsAndInvalidates(t *testing.T) {
	id := uuid.New()
	s, users, exps, edus, cache := newTestService(user.User{ID: id, Name: "Dev"})

	name := "  New Name "
	start, end := 2015, 2019
	p, err := s.UpdateProfile(context.Background(), id, UpdateInput{
		Name:   &name,
		Skills: []string{"Go", " go ", "", "SQL"},
		WorkExperience: []user.WorkExperience{
			{Title: "Engineer", Company: "Acme", StartDate: "2020-01", CurrentlyWorking: true},
		},
		Education: []user.Education{
			{Institution: "State University", StartYear: &start, EndYear: &end},
		},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if p.User.Name != "New Name" {
		t.Fatalf("name not trimmed/applied: %q", p.User.Name)
	}
	if got := users.updates[0].Skills; len(got) != 2 || got[0] != "Go" || got[1] != "SQL" {
		t.Fatalf("skills not cleaned: %v", got)
	}
	if len(exps.rows) != 1 || len(edus.rows) != 1 {
		t.Fatalf("relations not synced: exps=%d edus=%d", len(exps.rows), len(edus.rows))
	}
	if len(cache.patterns) != 1 || cache.patterns[0] != "match:"+id.String()+":*" {
		t.Fatalf("match cache not invalidated: %v", cache.patterns)
	}
}

func TestUpdateProfile_NilRelationsUntouched(t *testing.T) {
	id := uuid.New()
	s, _, exps, _, _ := newTestService(user.User{ID: id, Name: "Dev"})
	exps.rows[uuid.New()] = user.WorkExperience{UserID: id, Title: "Kept", Company: "Acme"}

	bio := "hello"
	if _, err := s.UpdateProfile(context.Background(), id, UpdateInput{Bio: &bio}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(exps.rows) != 1 {
		t.Fatalf("work experience must be untouched when not submitted")
	}
}

func TestUpdateProfile_Invalid(t *testing.T) {
	id := uuid.New()
	s, _, _, _, _ := newTestService(user.User{ID: id})
	blank := " "
	start, end := 2020, 2018

	cases := []UpdateInput{
		{Name: &blank},
		{WorkExperience: []user.WorkExperience{{Title: "", Company: "Acme"}}},
		{Education: []user.Education{{Institution: "U", StartYear: &start, EndYear: &end}}},
	}
	for i, in := range cases {
		if _, err := s.UpdateProfile(context.Background(), id, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}
