package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/service"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/utils"
)

// Locals keys set by SessionToken.
const (
	LocalRole      = "user_role"
	LocalSessionID = "session_id"
)

// SessionVerifier turns a bearer token into the actor it was issued for.
type SessionVerifier interface {
	Verify(token string) (service.Actor, error)
}

// SessionToken reads an optional bearer token. Requests without one continue
// as guests; a token that is present but invalid is rejected.
func SessionToken(verifier SessionVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if authorization == "" {
			return c.Next()
		}

		const bearer = "bearer "
		if len(authorization) < len(bearer) || !strings.EqualFold(authorization[:len(bearer)], bearer) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		actor, err := verifier.Verify(authorization[len(bearer):])
		if err != nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid session token")
		}

		c.Locals(LocalRole, actor.Role)
		c.Locals(LocalSessionID, actor.SessionID)
		return c.Next()
	}
}

// ActorFromContext returns the caller established by SessionToken; guests get
// an actor without a role.
func ActorFromContext(c *fiber.Ctx) service.Actor {
	actor := service.Actor{}
	if role, ok := c.Locals(LocalRole).(string); ok {
		actor.Role = role
	}
	if id, ok := c.Locals(LocalSessionID).(string); ok {
		actor.SessionID = id
	}
	return actor
}
