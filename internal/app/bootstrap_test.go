package app

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobboard/internal/config"
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
)

type upPinger struct{}

func (upPinger) Ping(context.Context) error { return nil }

func TestListenAddr(t *testing.T) {
	cases := map[string]string{"8080": ":8080", " :9000 ": ":9000"}
	for in, want := range cases {
		got, err := ListenAddr(in)
		if err != nil || got != want {
			t.Fatalf("ListenAddr(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ListenAddr(" "); err == nil {
		t.Fatalf("expected error for empty port")
	}
}

func TestNew_GlobalMiddleware(t *testing.T) {
	c := &Container{
		Config: config.Config{App: config.AppConfig{AppName: "jobboard", FrontendURL: "http://localhost:5173"}},
		Logger: log.New(io.Discard, "", 0),
		Health: handler.NewHealthHandler(upPinger{}, nil),
	}
	a := New(c)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := a.Fiber.Test(req)
	if err != nil {
		t.Fatalf("test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health status %d", resp.StatusCode)
	}
	if resp.Header.Get(middleware.HeaderRequestID) == "" {
		t.Fatalf("request id header missing")
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("unexpected allow-origin %q", got)
	}

	resp, _ = a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unwired routes must not exist, got %d", resp.StatusCode)
	}
}
