package application

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/company"
	"jobboard/internal/domain/job"

	"github.com/google/uuid"
)

type fakeAppRepo struct {
	apps map[uuid.UUID]application.Application
	// skipExists simulates a concurrent insert landing between check and create.
	skipExists bool
}

func (f *fakeAppRepo) Exists(_ context.Context, userID, jobID uuid.UUID) (bool, error) {
	if f.skipExists {
		return false, nil
	}
	for _, a := range f.apps {
		if a.UserID == userID && a.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAppRepo) Create(_ context.Context, a application.Application) (application.Application, error) {
	for _, existing := range f.apps {
		if existing.UserID == a.UserID && existing.JobID == a.JobID {
			return application.Application{}, application.ErrDuplicate
		}
	}
	a.ID = uuid.New()
	f.apps[a.ID] = a
	return a, nil
}

func (f *fakeAppRepo) GetByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	a, ok := f.apps[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	return a, nil
}

func (f *fakeAppRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]application.Application, error) {
	out := []application.Application{}
	for _, a := range f.apps {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppRepo) ListByJob(_ context.Context, jobID uuid.UUID) ([]application.Application, error) {
	out := []application.Application{}
	for _, a := range f.apps {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppRepo) CountByStatus(_ context.Context, userID uuid.UUID) (application.Stats, error) {
	var st application.Stats
	for _, a := range f.apps {
		if a.UserID == userID {
			st.Add(a.Status, 1)
		}
	}
	return st, nil
}

func (f *fakeAppRepo) UpdateStatus(_ context.Context, id uuid.UUID, status application.Status) error {
	a, ok := f.apps[id]
	if !ok {
		return application.ErrNotFound
	}
	a.Status = status
	f.apps[id] = a
	return nil
}

type fakeJobRepo struct {
	job.Repository
	jobs map[uuid.UUID]job.Job
}

func (f fakeJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

type fakeCompanies struct {
	company.Repository
	employer  uuid.UUID
	companyID uuid.UUID
}

func (f fakeCompanies) IsEmployer(_ context.Context, companyID, userID uuid.UUID) (bool, error) {
	return companyID == f.companyID && userID == f.employer, nil
}

func (f fakeCompanies) ListEmployers(_ context.Context, companyID uuid.UUID) ([]company.Employer, error) {
	return []company.Employer{{UserID: f.employer, CompanyID: companyID}}, nil
}

type sent struct {
	to        uuid.UUID
	eventType string
}

type recordingNotifier struct {
	sent []sent
}

func (r *recordingNotifier) SendToUser(userID uuid.UUID, eventType string, _ any) {
	r.sent = append(r.sent, sent{to: userID, eventType: eventType})
}

type fixture struct {
	svc      *Service
	apps     *fakeAppRepo
	notifier *recordingNotifier
	job      job.Job
	closed   job.Job
	employer uuid.UUID
}

func newFixture() fixture {
	companyID := uuid.New()
	f := fixture{
		apps:     &fakeAppRepo{apps: map[uuid.UUID]application.Application{}},
		notifier: &recordingNotifier{},
		job:      job.Job{ID: uuid.New(), CompanyID: companyID, Title: "Engineer", IsActive: true},
		closed:   job.Job{ID: uuid.New(), CompanyID: companyID, Title: "Old", IsActive: false},
		employer: uuid.New(),
	}
	jobs := fakeJobRepo{jobs: map[uuid.UUID]job.Job{f.job.ID: f.job, f.closed.ID: f.closed}}
	companies := fakeCompanies{employer: f.employer, companyID: companyID}
	f.svc = NewService(f.apps, jobs, companies, f.notifier, log.New(io.Discard, "", 0))
	return f
}

func TestApply_DuplicateIsConflict(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	applicant := uuid.New()

	a, err := f.svc.Apply(ctx, applicant, f.job.ID, ApplyInput{CoverLetter: " hi "})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if a.Status != application.StatusPending || a.CoverLetter != "hi" {
		t.Fatalf("unexpected application: %+v", a)
	}

	if _, err := f.svc.Apply(ctx, applicant, f.job.ID, ApplyInput{}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if len(f.apps.apps) != 1 {
		t.Fatalf("duplicate must not create a row, have %d", len(f.apps.apps))
	}
}

func TestApply_RaceCaughtByUniqueIndex(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	applicant := uuid.New()

	if _, err := f.svc.Apply(ctx, applicant, f.job.ID, ApplyInput{}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	f.apps.skipExists = true
	if _, err := f.svc.Apply(ctx, applicant, f.job.ID, ApplyInput{}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate from insert, got %v", err)
	}
}

func TestApply_JobChecks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.svc.Apply(ctx, uuid.New(), uuid.New(), ApplyInput{}); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
	if _, err := f.svc.Apply(ctx, uuid.New(), f.closed.ID, ApplyInput{}); !errors.Is(err, ErrJobClosed) {
		t.Fatalf("expected ErrJobClosed, got %v", err)
	}
}

func TestApply_NotifiesEmployers(t *testing.T) {
	f := newFixture()
	if _, err := f.svc.Apply(context.Background(), uuid.New(), f.job.ID, ApplyInput{}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(f.notifier.sent) != 1 || f.notifier.sent[0].to != f.employer || f.notifier.sent[0].eventType != EventApplicationReceived {
		t.Fatalf("unexpected notifications: %+v", f.notifier.sent)
	}
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	applicant := uuid.New()

	a, err := f.svc.Apply(ctx, applicant, f.job.ID, ApplyInput{})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	// The fake does not join company data in; mirror what the repository returns.
	stored := f.apps.apps[a.ID]
	stored.CompanyID = f.job.CompanyID
	f.apps.apps[a.ID] = stored
	f.notifier.sent = nil

	if _, err := f.svc.UpdateStatus(ctx, applicant, a.ID, "ACCEPTED"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("applicant must not change status, got %v", err)
	}
	if _, err := f.svc.UpdateStatus(ctx, f.employer, a.ID, "hired"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	updated, err := f.svc.UpdateStatus(ctx, f.employer, a.ID, "accepted")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != application.StatusAccepted {
		t.Fatalf("status not updated: %s", updated.Status)
	}
	if len(f.notifier.sent) != 1 || f.notifier.sent[0].to != applicant || f.notifier.sent[0].eventType != EventApplicationStatusChanged {
		t.Fatalf("applicant not notified: %+v", f.notifier.sent)
	}

	st, err := f.svc.Stats(ctx, applicant)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Total != 1 || st.Accepted != 1 || st.Pending != 0 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}

func TestListForJob_EmployerOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	if _, err := f.svc.Apply(ctx, uuid.New(), f.job.ID, ApplyInput{}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if _, err := f.svc.ListForJob(ctx, uuid.New(), f.job.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	out, err := f.svc.ListForJob(ctx, f.employer, f.job.ID)
	if err != nil || len(out) != 1 {
		t.Fatalf("expected 1 application, got %d %v", len(out), err)
	}
}
