package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/hollyoak/plateful/internal/models"
)

const (
	authCookieName    = "plateful_auth"
	contextSessionKey = "session_state"
)

type sessionStatus int

// A request's session is resolved exactly once, by ResolveSession.
// Until then it is unknown; afterwards it is either absent or carries
// the authenticated user. Handlers read the resolved value and never
// re-derive it from the cookie.
const (
	sessionUnknown sessionStatus = iota
	sessionAbsent
	sessionPresent
)

type sessionState struct {
	status sessionStatus
	user   *models.User
}

func currentSession(c *fiber.Ctx) sessionState {
	state, ok := c.Locals(contextSessionKey).(sessionState)
	if !ok {
		return sessionState{status: sessionUnknown}
	}
	return state
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	state := currentSession(c)
	if state.status != sessionPresent || state.user == nil {
		return nil, false
	}
	return state.user, true
}

// ResolveSession authenticates the request cookie and stores the
// resulting session state in request locals for the rest of the chain.
func (handler *Handler) ResolveSession(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		c.Locals(contextSessionKey, sessionState{status: sessionAbsent})
		return c.Next()
	}
	c.Locals(contextSessionKey, sessionState{status: sessionPresent, user: user})
	return c.Next()
}
