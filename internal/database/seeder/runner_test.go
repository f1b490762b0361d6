package seeder

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"jobboard/internal/database"
)

type stubDB struct{ database.DB }

type recordingSeeder struct {
	name     string
	err      error
	requires []Table
	calls    *[]string
}

func (s recordingSeeder) Name() string { return s.name }

func (s recordingSeeder) Requires() []Table { return s.requires }

func (s recordingSeeder) Run(context.Context, database.DB) error {
	*s.calls = append(*s.calls, s.name)
	return s.err
}

func TestRunner_StopsAtFirstFailure(t *testing.T) {
	var calls []string
	boom := errors.New("boom")
	r := Runner{
		Seeders: []Seeder{
			recordingSeeder{name: "users", calls: &calls},
			nil,
			recordingSeeder{name: "company", err: boom, calls: &calls},
			recordingSeeder{name: "jobs", calls: &calls},
		},
		Logger: log.New(io.Discard, "", 0),
	}

	err := r.Run(context.Background(), stubDB{})
	if !errors.Is(err, boom) || !strings.Contains(err.Error(), "seed company") {
		t.Fatalf("unexpected error %v", err)
	}
	if strings.Join(calls, ",") != "users,company" {
		t.Fatalf("unexpected call order %v", calls)
	}
}

func TestRunner_NilDB(t *testing.T) {
	if err := (Runner{}).Run(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil db")
	}
}

func TestDefaults_Order(t *testing.T) {
	var names []string
	for _, s := range Defaults() {
		names = append(names, s.Name())
	}
	if strings.Join(names, ",") != "users,company,jobs" {
		t.Fatalf("seeders must run users before company before jobs, got %v", names)
	}
}

func TestDemoJobs_CoverEveryLevel(t *testing.T) {
	seen := map[string]bool{}
	for _, j := range demoJobs {
		seen[j.Level] = true
		if j.SalaryMin > j.SalaryMax {
			t.Fatalf("%s: salary range inverted", j.Title)
		}
	}
	for _, l := range []string{"ENTRY", "MID", "SENIOR", "LEAD"} {
		if !seen[l] {
			t.Fatalf("no demo job at level %s", l)
		}
	}
}

// catalogDB answers information_schema lookups from an in-memory catalog of
// table -> column -> udt_name.
type catalogDB struct {
	database.DB
	tables map[string]map[string]string
}

func (c catalogDB) Query(_ context.Context, _ string, args ...any) (database.Rows, error) {
	table, _ := args[0].(string)
	var out [][2]string
	for name, udt := range c.tables[table] {
		out = append(out, [2]string{name, udt})
	}
	return &catalogRows{rows: out, i: -1}, nil
}

type catalogRows struct {
	rows [][2]string
	i    int
}

func (r *catalogRows) Close()     {}
func (r *catalogRows) Err() error { return nil }
func (r *catalogRows) Next() bool {
	r.i++
	return r.i < len(r.rows)
}

func (r *catalogRows) Scan(dest ...any) error {
	*dest[0].(*string) = r.rows[r.i][0]
	*dest[1].(*string) = r.rows[r.i][1]
	return nil
}

func migratedCatalog() catalogDB {
	return catalogDB{tables: map[string]map[string]string{
		"users": {
			"id": "uuid", "email": "text", "password_hash": "text", "name": "text", "role": "text", "skills": "_text",
		},
		"work_experiences": {
			"id": "uuid", "user_id": "uuid", "title": "text", "company": "text", "start_date": "text",
			"end_date": "text", "currently_working": "bool", "skills_used": "_text",
		},
		"companies": {
			"id": "uuid", "name": "text", "description": "text", "website": "text", "location": "text",
			"industry": "text", "size": "text", "owner_id": "uuid",
		},
		"employers": {"id": "uuid", "user_id": "uuid", "company_id": "uuid", "role_title": "text"},
		"jobs": {
			"id": "uuid", "company_id": "uuid", "created_by": "uuid", "title": "text", "description": "text",
			"requirements": "_text", "salary_min": "int4", "salary_max": "int4", "location": "text",
			"job_type": "text", "experience_level": "text", "is_active": "bool",
		},
	}}
}

func TestCheckSchema_DefaultsMatchMigratedSchema(t *testing.T) {
	db := migratedCatalog()
	for _, s := range Defaults() {
		if err := CheckSchema(context.Background(), db, s.Requires()); err != nil {
			t.Fatalf("%s: %v", s.Name(), err)
		}
	}
}

func TestCheckSchema_Mismatches(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(catalogDB)
		want   string
	}{
		{"skills not an array", func(c catalogDB) { c.tables["users"]["skills"] = "varchar" }, "users.skills is varchar, want _text"},
		{"requirements missing", func(c catalogDB) { delete(c.tables["jobs"], "requirements") }, "missing column jobs.requirements"},
		{"start_date as date", func(c catalogDB) { c.tables["work_experiences"]["start_date"] = "date" }, "work_experiences.start_date is date"},
	}
	for _, tc := range cases {
		db := migratedCatalog()
		tc.mutate(db)
		var err error
		for _, s := range Defaults() {
			if err = CheckSchema(context.Background(), db, s.Requires()); err != nil {
				break
			}
		}
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: got %v, want %q", tc.name, err, tc.want)
		}
	}
}

func TestRunner_ChecksSchemaBeforeRun(t *testing.T) {
	var calls []string
	db := migratedCatalog()
	db.tables["users"]["skills"] = "text"

	r := Runner{
		Seeders: []Seeder{recordingSeeder{
			name:     "users",
			requires: []Table{{Name: "users", Columns: []Column{textArray("skills")}}},
			calls:    &calls,
		}},
		Logger: log.New(io.Discard, "", 0),
	}
	err := r.Run(context.Background(), db)
	if err == nil || !strings.Contains(err.Error(), "seed users: schema mismatch") {
		t.Fatalf("unexpected error %v", err)
	}
	if len(calls) != 0 {
		t.Fatalf("seeder must not run against a mismatched schema")
	}
}
