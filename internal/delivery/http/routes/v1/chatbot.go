package v1

import (
	"jobboard/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterChatbot(r fiber.Router, chatbotHandler *handler.ChatbotHandler, auth fiber.Handler) {
	if r == nil || chatbotHandler == nil {
		return
	}

	chatbotHandler.RegisterRoutes(r.Group("/chatbot", auth))
}
