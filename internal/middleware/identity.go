package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/locavor/account-service/internal/apperr"
)

// HeaderKeycloakID carries the caller's identity, pre-validated upstream.
// This service only checks that it parses as a UUID; provenance is the
// gateway's problem.
const HeaderKeycloakID = "X-Keycloak-Id"

const localsKeycloakID = "keycloakID"

// Identity extracts the trusted identity header into request locals.
func Identity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(HeaderKeycloakID)
		id, err := uuid.Parse(raw)
		if err != nil {
			return apperr.BadRequest("invalid keycloak id %q", raw)
		}
		c.Locals(localsKeycloakID, id)
		return c.Next()
	}
}

// KeycloakID returns the identity stored by Identity. Only valid on routes
// behind that middleware.
func KeycloakID(c *fiber.Ctx) uuid.UUID {
	return c.Locals(localsKeycloakID).(uuid.UUID)
}
