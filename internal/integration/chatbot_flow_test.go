package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/database/seeder"

	"github.com/gofiber/fiber/v3"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type jobItem struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Requirements    []string `json:"requirements"`
	ExperienceLevel string   `json:"experienceLevel"`
}

type chatReply struct {
	Type  string `json:"type"`
	Stats *struct {
		Total   int `json:"total"`
		Pending int `json:"pending"`
	} `json:"stats"`
	Applications []struct {
		JobID    string `json:"jobId"`
		JobTitle string `json:"jobTitle"`
	} `json:"applications"`
	Jobs []struct {
		Job   jobItem `json:"job"`
		Score int     `json:"score"`
	} `json:"jobs"`
	Text string `json:"text"`
}

func TestIntegration_SeekerChatbotFlow(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	cfg := testConfig(t)

	c, err := app.NewContainer(ctx, cfg, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	defer func() { _ = c.Close() }()

	if err := (seeder.Runner{Seeders: seeder.Defaults(), Logger: log.New(io.Discard, "", 0)}).Run(ctx, c.DB); err != nil {
		t.Fatalf("seed: %v", err)
	}
	defer cleanupApplications(ctx, c.DB)
	cleanupApplications(ctx, c.DB)

	fapp := app.New(c).Fiber
	token := login(t, fapp, seeder.DemoSeekerEmail, seeder.DemoPassword)

	var me struct {
		ExperienceLevel string   `json:"experienceLevel"`
		Skills          []string `json:"skills"`
	}
	call(t, fapp, http.MethodGet, "/api/v1/users/me", "", token, http.StatusOK, &me)
	if me.ExperienceLevel == "" || len(me.Skills) == 0 {
		t.Fatalf("seeded seeker has no derived signals: %+v", me)
	}

	// Recommendations are pinned to the level derived from work history.
	var rec chatReply
	call(t, fapp, http.MethodPost, "/api/v1/chatbot/message", `{"message":"recommend me some jobs"}`, token, http.StatusOK, &rec)
	if rec.Type != "jobList" || len(rec.Jobs) == 0 {
		t.Fatalf("expected job list, got %+v", rec)
	}
	for i, m := range rec.Jobs {
		if m.Job.ExperienceLevel != me.ExperienceLevel {
			t.Fatalf("recommendation %s has level %s", m.Job.Title, m.Job.ExperienceLevel)
		}
		if i > 0 && m.Score > rec.Jobs[i-1].Score {
			t.Fatalf("recommendations not sorted by score")
		}
	}

	var jobs []jobItem
	call(t, fapp, http.MethodGet, "/api/v1/jobs?search=backend%20engineer%20(go)", "", "", http.StatusOK, &jobs)
	if len(jobs) == 0 {
		t.Fatalf("seeded job not found")
	}
	target := jobs[0]

	call(t, fapp, http.MethodPost, "/api/v1/jobs/"+target.ID+"/apply", `{"coverLetter":"hello"}`, token, http.StatusCreated, nil)
	call(t, fapp, http.MethodPost, "/api/v1/jobs/"+target.ID+"/apply", `{"coverLetter":"again"}`, token, http.StatusConflict, nil)

	var stats chatReply
	call(t, fapp, http.MethodPost, "/api/v1/chatbot/message", `{"message":"How many applications have I sent?"}`, token, http.StatusOK, &stats)
	if stats.Type != "stats" || stats.Stats == nil || stats.Stats.Total != 1 || stats.Stats.Pending != 1 {
		t.Fatalf("unexpected stats reply %+v", stats)
	}

	var mine chatReply
	call(t, fapp, http.MethodPost, "/api/v1/chatbot/message", `{"message":"show my applications"}`, token, http.StatusOK, &mine)
	if mine.Type != "applications" || len(mine.Applications) != 1 || mine.Applications[0].JobID != target.ID {
		t.Fatalf("unexpected applications reply %+v", mine)
	}

	var atCompany chatReply
	call(t, fapp, http.MethodPost, "/api/v1/chatbot/message", `{"message":"any jobs at demo labs?"}`, token, http.StatusOK, &atCompany)
	if atCompany.Type != "jobList" || len(atCompany.Jobs) == 0 {
		t.Fatalf("expected company jobs, got %+v", atCompany)
	}

	var fallback chatReply
	call(t, fapp, http.MethodPost, "/api/v1/chatbot/message", `{"message":"what is the meaning of life"}`, token, http.StatusOK, &fallback)
	if fallback.Type != "text" || fallback.Text == "" {
		t.Fatalf("expected a text fallback without a model, got %+v", fallback)
	}
}

func testConfig(t *testing.T) config.Config {
	t.Helper()

	host := stringsOrDefault(os.Getenv("JOBBOARD_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("JOBBOARD_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("JOBBOARD_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("JOBBOARD_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("JOBBOARD_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("JOBBOARD_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set JOBBOARD_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}

	return config.Config{
		App: config.AppConfig{AppName: "jobboard", Environment: "test", HTTPPort: "0", FrontendURL: "http://localhost:5173"},
		Database: config.DatabaseConfig{
			DBHost:         host,
			DBPort:         port,
			DBName:         name,
			DBUser:         user,
			DBPassword:     pass,
			DBSSLMode:      stringsOrDefault(ssl, "disable"),
			ConnectTimeout: 5 * time.Second,
		},
		JWT: config.JWTConfig{
			AccessSecret:     "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessExpiresIn:  15 * time.Minute,
			RefreshExpiresIn: time.Hour,
		},
		Redis: config.RedisConfig{
			Host: stringsOrDefault(os.Getenv("JOBBOARD_TEST_REDIS_HOST"), "127.0.0.1"),
			Port: stringsOrDefault(os.Getenv("JOBBOARD_TEST_REDIS_PORT"), "6379"),
			TTL:  time.Minute,
		},
		Migrations: config.MigrationsConfig{Dir: resolveMigrationsDir(t)},
	}
}

func resolveMigrationsDir(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("resolve migrations dir: runtime.Caller failed")
	}

	// this file: internal/integration/chatbot_flow_test.go
	root := filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
	migDir := filepath.Join(root, "migrations")

	files, _ := filepath.Glob(filepath.Join(migDir, "V*__*.sql"))
	if len(files) == 0 {
		t.Fatalf("resolve migrations dir: no migration files found in %s", migDir)
	}
	return migDir
}

func cleanupApplications(ctx context.Context, db database.DB) {
	_, _ = db.Exec(ctx, `DELETE FROM applications WHERE user_id = (SELECT id FROM users WHERE email = $1)`, seeder.DemoSeekerEmail)
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	var data struct {
		AccessToken string `json:"accessToken"`
	}
	call(t, app, http.MethodPost, "/api/v1/auth/login", string(body), "", http.StatusOK, &data)
	if data.AccessToken == "" {
		t.Fatalf("login: empty access token")
	}
	return data.AccessToken
}

func call(t *testing.T, app *fiber.App, method, path, body, token string, wantStatus int, out any) {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, fiber.TestConfig{Timeout: 30 * time.Second})
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: status %d, want %d: %s", method, path, resp.StatusCode, wantStatus, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return
	}

	var env semanticResponse
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("%s %s: decode envelope: %v", method, path, err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("%s %s: decode data: %v", method, path, err)
	}
}

func stringsOrDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
