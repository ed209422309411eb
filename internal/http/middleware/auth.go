package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"storeapi/internal/auth"
)

// SessionLocalKey is the key under which the validated session is stored
// in Fiber's context locals.
const SessionLocalKey = "session"

// Auth validates the request's Bearer token and stores the resulting
// session in context locals. Requests without a valid token are rejected
// with 401 before reaching any handler.
func Auth(tokens *auth.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		sess, err := tokens.Validate(strings.TrimPrefix(header, prefix))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(SessionLocalKey, *sess)
		return c.Next()
	}
}

// SessionFromCtx extracts the session stored by Auth. The zero session is
// returned when the middleware did not run.
func SessionFromCtx(c *fiber.Ctx) auth.Session {
	if v := c.Locals(SessionLocalKey); v != nil {
		if s, ok := v.(auth.Session); ok {
			return s
		}
	}
	return auth.Session{}
}
