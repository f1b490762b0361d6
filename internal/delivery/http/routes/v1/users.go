package v1

import (
	"jobboard/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterUsers(r fiber.Router, userHandler *handler.UserHandler, auth fiber.Handler) {
	if r == nil || userHandler == nil {
		return
	}

	userHandler.RegisterRoutes(r.Group("/users", auth))
}

func RegisterCompanies(r fiber.Router, companyHandler *handler.CompanyHandler, auth fiber.Handler) {
	if r == nil || companyHandler == nil {
		return
	}

	companyHandler.RegisterRoutes(r.Group("/companies"), auth)
}
