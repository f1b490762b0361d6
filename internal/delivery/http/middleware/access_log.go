package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"
	CtxRequestIDKey = "request_id"
)

type AccessLogMiddleware struct {
	logger *log.Logger
}

func NewAccessLogMiddleware(logger *log.Logger) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &AccessLogMiddleware{logger: logger}
}

// Middleware assigns a request id (or keeps the caller's), echoes it in the
// response and logs one line per request.
func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)
		c.Locals(CtxRequestIDKey, rid)

		err := c.Next()

		uid := "-"
		if id, ok := c.Locals(CtxUserIDKey).(uuid.UUID); ok {
			uid = id.String()
		}

		m.logger.Printf(
			"HTTP access | rid=%s ip=%s method=%s path=%s status=%d latency=%s user_id=%s resp_bytes=%d ua=%q",
			rid, c.IP(), c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start), uid,
			len(c.Response().Body()), c.Get("User-Agent"),
		)

		return err
	}
}

// RequestID returns the id assigned by the access log middleware.
func RequestID(c fiber.Ctx) string {
	if rid, ok := c.Locals(CtxRequestIDKey).(string); ok {
		return rid
	}
	return ""
}
