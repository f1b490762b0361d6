package job

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"jobboard/internal/domain/company"
	"jobboard/internal/domain/experience"
	"jobboard/internal/domain/job"

	"github.com/google/uuid"
)

type fakeJobRepo struct {
	job.Repository
	jobs    map[uuid.UUID]job.Job
	gets    int
	filters []job.Filter
}

func (f *fakeJobRepo) Create(_ context.Context, j job.Job) (job.Job, error) {
	j.ID = uuid.New()
	f.jobs[j.ID] = j
	return j, nil
}

func (f *fakeJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	f.gets++
	j, ok := f.jobs[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

func (f *fakeJobRepo) Update(_ context.Context, j job.Job) (job.Job, error) {
	f.jobs[j.ID] = j
	return j, nil
}

func (f *fakeJobRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	j := f.jobs[id]
	j.IsActive = false
	f.jobs[id] = j
	return nil
}

func (f *fakeJobRepo) List(_ context.Context, flt job.Filter) ([]job.Job, error) {
	f.filters = append(f.filters, flt)
	return []job.Job{}, nil
}

type fakeCompanies struct {
	company.Repository
	employers map[uuid.UUID]uuid.UUID
}

func (f fakeCompanies) IsEmployer(_ context.Context, companyID, userID uuid.UUID) (bool, error) {
	return f.employers[userID] == companyID, nil
}

type memCache struct {
	data    map[string][]byte
	deleted []string
}

func (m *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = b
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	m.deleted = append(m.deleted, key)
	return nil
}

type recordingNotifier struct {
	events []string
}

func (r *recordingNotifier) Broadcast(eventType string, _ any) {
	r.events = append(r.events, eventType)
}

type fixture struct {
	svc       *Service
	jobs      *fakeJobRepo
	cache     *memCache
	notifier  *recordingNotifier
	companyID uuid.UUID
	employer  uuid.UUID
}

func newFixture() fixture {
	f := fixture{
		jobs:      &fakeJobRepo{jobs: map[uuid.UUID]job.Job{}},
		cache:     &memCache{data: map[string][]byte{}},
		notifier:  &recordingNotifier{},
		companyID: uuid.New(),
		employer:  uuid.New(),
	}
	companies := fakeCompanies{employers: map[uuid.UUID]uuid.UUID{f.employer: f.companyID}}
	f.svc = NewService(f.jobs, companies, f.cache, f.notifier, log.New(io.Discard, "", 0))
	return f
}

func intPtr(v int) *int { return &v }

func (f fixture) validInput() Input {
	return Input{
		CompanyID:    f.companyID,
		Title:        "Backend Engineer",
		Requirements: []string{"Go", " ", "SQL"},
		SalaryMin:    intPtr(100),
		SalaryMax:    intPtr(200),
		Type:         "full_time",
		Level:        "mid",
	}
}

func TestCreate_RequiresEmployerAndBroadcasts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, uuid.New(), f.validInput()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	j, err := f.svc.Create(ctx, f.employer, f.validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if j.Type != job.TypeFullTime || j.Level != experience.LevelMid || len(j.Requirements) != 2 || !j.IsActive {
		t.Fatalf("unexpected job: %+v", j)
	}
	if j.CreatedBy != f.employer {
		t.Fatalf("creator not recorded")
	}
	if len(f.notifier.events) != 1 || f.notifier.events[0] != EventJobPosted {
		t.Fatalf("expected job_posted broadcast, got %v", f.notifier.events)
	}
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	bad := []func(*Input){
		func(in *Input) { in.Title = " " },
		func(in *Input) { in.Type = "GIG" },
		func(in *Input) { in.Level = "PRINCIPAL" },
		func(in *Input) { in.SalaryMin, in.SalaryMax = intPtr(300), intPtr(200) },
		func(in *Input) { in.SalaryMin = intPtr(-1) },
	}
	for i, mutate := range bad {
		in := f.validInput()
		mutate(&in)
		if _, err := f.svc.Create(ctx, f.employer, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestGet_UsesCacheAndEvictsOnUpdate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.employer, f.validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := f.svc.Get(ctx, created.ID); err != nil {
			t.Fatalf("get: %v", err)
		}
	}
	if f.jobs.gets != 1 {
		t.Fatalf("expected a single repository read, got %d", f.jobs.gets)
	}

	in := f.validInput()
	in.Title = "Staff Engineer"
	if _, err := f.svc.Update(ctx, f.employer, created.ID, in); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, ok := f.cache.data[DetailCacheKey(created.ID)]; ok {
		t.Fatalf("detail cache not evicted")
	}
	got, err := f.svc.Get(ctx, created.ID)
	if err != nil || got.Title != "Staff Engineer" {
		t.Fatalf("expected fresh read, got %q %v", got.Title, err)
	}

	if _, err := f.svc.Get(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete_Deactivates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, _ := f.svc.Create(ctx, f.employer, f.validInput())
	if err := f.svc.Delete(ctx, uuid.New(), created.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := f.svc.Delete(ctx, f.employer, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if f.jobs.jobs[created.ID].IsActive {
		t.Fatalf("job still active")
	}
}

func TestList_ClampsAndValidates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.svc.List(ctx, ListParams{Limit: 500, Offset: -3, Level: "senior"}); err != nil {
		t.Fatalf("list: %v", err)
	}
	got := f.jobs.filters[0]
	if got.Limit != maxListLimit || got.Offset != 0 || got.Level != experience.LevelSenior {
		t.Fatalf("unexpected filter: %+v", got)
	}
	if _, err := f.svc.List(ctx, ListParams{Type: "nope"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
