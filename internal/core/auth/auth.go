package auth

import (
	"strings"

	"ecodeli/internal/core/apierror"

	"github.com/gofiber/fiber/v2"
)

// Headers set by the API gateway after it has authenticated the session.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
	HeaderUserName = "X-User-Name"
)

const principalKey = "principal"

// Principal is the authenticated caller.
type Principal struct {
	ID   string
	Role string
	Name string
}

// New returns a middleware that reads the gateway identity headers.
// Requests without a user id or role are rejected with 401.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := Principal{
			ID:   strings.TrimSpace(c.Get(HeaderUserID)),
			Role: strings.ToUpper(strings.TrimSpace(c.Get(HeaderUserRole))),
			Name: strings.TrimSpace(c.Get(HeaderUserName)),
		}
		if p.ID == "" || p.Role == "" {
			return apierror.Send(c, fiber.StatusUnauthorized, apierror.Body{
				Code:    apierror.CodeUnauthorized,
				Message: "Authentication required",
			})
		}
		c.Locals(principalKey, p)
		return c.Next()
	}
}

// RequireRole returns a middleware that only lets the given roles through.
// It must run after New.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[strings.ToUpper(r)] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		p, ok := FromContext(c)
		if !ok {
			return apierror.Send(c, fiber.StatusUnauthorized, apierror.Body{
				Code:    apierror.CodeUnauthorized,
				Message: "Authentication required",
			})
		}
		if _, ok := allowed[p.Role]; !ok {
			return apierror.Send(c, fiber.StatusForbidden, apierror.Body{
				Code:    apierror.CodeForbidden,
				Message: "You are not allowed to perform this action",
			})
		}
		return c.Next()
	}
}

// FromContext returns the principal stored by New.
func FromContext(c *fiber.Ctx) (Principal, bool) {
	p, ok := c.Locals(principalKey).(Principal)
	return p, ok
}
