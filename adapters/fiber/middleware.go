package fiber

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/ddalisay/tanod/core"
)

// Context locals keys for the authenticated identity.
const (
	LocalsUser    = "tanod_user"
	LocalsSession = "tanod_session"
)

// RequireAuth gates a route behind session verification. On success the
// user and session are attached to the request locals and the chain
// continues; otherwise the request is rejected.
//
// Every unauthenticated reason produces the same generic 401 body so a
// caller cannot probe which tokens exist; the reason is still logged
// internally.
func (a *Adapter) RequireAuth(c fiber.Ctx) error {
	result, err := a.auth.CurrentUser(a.extractToken(c))
	if err != nil {
		a.log.Error("session verification failed",
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	if !result.Authenticated {
		a.log.Debug("rejected unauthenticated request",
			zap.String("path", c.Path()),
			zap.String("reason", string(result.Reason)))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthorized",
		})
	}

	c.Locals(LocalsUser, result.User)
	c.Locals(LocalsSession, result.Session)

	return c.Next()
}

// UserFromCtx returns the user attached by RequireAuth, or nil on an
// unprotected route.
func UserFromCtx(c fiber.Ctx) *core.User {
	user, _ := c.Locals(LocalsUser).(*core.User)
	return user
}

// SessionFromCtx returns the session attached by RequireAuth, or nil.
func SessionFromCtx(c fiber.Ctx) *core.Session {
	session, _ := c.Locals(LocalsSession).(*core.Session)
	return session
}

// extractToken pulls the credential carrier off the request. The
// Authorization header (Bearer scheme) wins; the auth cookie is the
// fallback.
func (a *Adapter) extractToken(c fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}

	return c.Cookies(a.cookie)
}
