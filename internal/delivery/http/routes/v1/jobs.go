package v1

import (
	"jobboard/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

// RegisterJobs mounts /jobs and /applications. Application routes share the
// /jobs prefix for apply and per-job listings.
func RegisterJobs(r fiber.Router, jobHandler *handler.JobHandler, applicationHandler *handler.ApplicationHandler, auth fiber.Handler) {
	if r == nil {
		return
	}

	jobs := r.Group("/jobs")
	if jobHandler != nil {
		jobHandler.RegisterRoutes(jobs, auth)
	}
	if applicationHandler != nil {
		applicationHandler.RegisterJobRoutes(jobs, auth)
		applicationHandler.RegisterRoutes(r.Group("/applications"), auth)
	}
}
