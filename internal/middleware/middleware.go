package middleware

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// RequestIDKey is the fiber.Ctx local holding the request ID.
const RequestIDKey = "requestid"

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		RequestID() fiber.Handler
		Recover() fiber.Handler
		AccessLogger(out io.Writer) fiber.Handler
	}

	middleware struct {
		allowOrigins string
	}
)

func NewMiddleware(allowOrigins string) Middleware {
	if strings.TrimSpace(allowOrigins) == "" {
		allowOrigins = "*"
	}
	return &middleware{allowOrigins: allowOrigins}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	methods := []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete}
	return cors.New(cors.Config{
		AllowOrigins: m.allowOrigins,
		AllowMethods: strings.Join(methods, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
	})
}

func (m *middleware) RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  uuid.NewString,
		ContextKey: RequestIDKey,
	})
}

func (m *middleware) Recover() fiber.Handler {
	return recover.New()
}

func (m *middleware) AccessLogger(out io.Writer) fiber.Handler {
	return logger.New(logger.Config{
		Format:     "${time} | ${locals:requestid} | ${status} | ${latency} | ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     out,
	})
}
