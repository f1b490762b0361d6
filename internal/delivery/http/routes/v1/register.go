package v1

import (
	"jobboard/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

// Handlers is everything mounted under /api/v1. Auth guards the protected
// routes; a nil handler leaves its routes unmounted.
type Handlers struct {
	Auth         *handler.AuthHandler
	Users        *handler.UserHandler
	Companies    *handler.CompanyHandler
	Jobs         *handler.JobHandler
	Applications *handler.ApplicationHandler
	Chatbot      *handler.ChatbotHandler

	AuthMiddleware fiber.Handler
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}

	RegisterUsers(r, h.Users, h.AuthMiddleware)
	RegisterCompanies(r, h.Companies, h.AuthMiddleware)
	RegisterJobs(r, h.Jobs, h.Applications, h.AuthMiddleware)
	RegisterChatbot(r, h.Chatbot, h.AuthMiddleware)
}
