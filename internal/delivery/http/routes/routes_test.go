package routes

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	v1 "jobboard/internal/delivery/http/routes/v1"
	"jobboard/internal/domain/job"
	"jobboard/internal/pkg/jwt"
	ucjob "jobboard/internal/usecase/job"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type stubJobs struct{}

func (stubJobs) List(context.Context, ucjob.ListParams) ([]job.Job, error) { return nil, nil }
func (stubJobs) Get(context.Context, uuid.UUID) (job.Job, error)           { return job.Job{}, ucjob.ErrNotFound }
func (stubJobs) Create(context.Context, uuid.UUID, ucjob.Input) (job.Job, error) {
	return job.Job{}, nil
}
func (stubJobs) Update(context.Context, uuid.UUID, uuid.UUID, ucjob.Input) (job.Job, error) {
	return job.Job{}, nil
}
func (stubJobs) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func TestRegistry_PublicAndProtectedRoutes(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	jwtSvc := jwt.NewHMACService("a", "r", time.Hour, time.Hour)

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())

	NewRegistry(handler.NewHealthHandler(okPinger{}, nil), nil, v1.Handlers{
		Users:          handler.NewUserHandler(nil, nil),
		Jobs:           handler.NewJobHandler(stubJobs{}),
		Applications:   handler.NewApplicationHandler(nil),
		Chatbot:        handler.NewChatbotHandler(nil),
		AuthMiddleware: middleware.NewAuthMiddleware(jwtSvc).Middleware(),
	}).Register(app)

	cases := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/health", fiber.StatusOK},
		{http.MethodGet, "/api/v1/jobs", fiber.StatusOK},
		{http.MethodGet, "/api/v1/jobs/" + uuid.NewString(), fiber.StatusNotFound},
		{http.MethodPost, "/api/v1/jobs", fiber.StatusUnauthorized},
		{http.MethodPost, "/api/v1/jobs/" + uuid.NewString() + "/apply", fiber.StatusUnauthorized},
		{http.MethodGet, "/api/v1/applications/me", fiber.StatusUnauthorized},
		{http.MethodGet, "/api/v1/users/me", fiber.StatusUnauthorized},
		{http.MethodPost, "/api/v1/chatbot/message", fiber.StatusUnauthorized},
		{http.MethodGet, "/api/v1/nothing-here", fiber.StatusNotFound},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(tc.method, tc.path, nil))
		if err != nil {
			t.Fatalf("%s %s: %v", tc.method, tc.path, err)
		}
		if resp.StatusCode != tc.status {
			t.Fatalf("%s %s: status %d, want %d", tc.method, tc.path, resp.StatusCode, tc.status)
		}
	}
}
