package ws

import (
	"log"
	"net/http"
	"strings"

	"jobboard/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub    *Hub
	jwt    jwt.Service
	logger *log.Logger

	upgrader websocket.Upgrader
}

// NewHandler accepts upgrades from the listed origins; an empty list allows
// any origin.
func NewHandler(hub *Hub, jwtSvc jwt.Service, allowedOrigins []string, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			allowed[o] = struct{}{}
		}
	}

	return &Handler{
		hub:    hub,
		jwt:    jwtSvc,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowed) == 0 {
					return true
				}
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := allowed[strings.TrimRight(origin, "/")]
				return ok
			},
		},
	}
}

func (h *Handler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/ws", h.HandleWS)
}

// HandleWS authenticates the access token from the "token" query parameter
// (browsers cannot set headers on websocket requests) and upgrades.
func (h *Handler) HandleWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}

	userID, ok := h.authenticate(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Printf("WS upgrade error | user_id=%s error=%v", userID, err)
			return
		}

		client := NewClient(h.hub, conn, userID)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})

	return fiberHandler(c)
}

func (h *Handler) authenticate(c fiber.Ctx) (uuid.UUID, bool) {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		parts := strings.SplitN(strings.TrimSpace(c.Get("Authorization")), " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			token = strings.TrimSpace(parts[1])
		}
	}
	if token == "" {
		return uuid.Nil, false
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil || claims.TokenType != jwt.TokenTypeAccess {
		return uuid.Nil, false
	}
	return claims.UserID, true
}
