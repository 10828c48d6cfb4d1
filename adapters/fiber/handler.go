package fiber

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/ddalisay/tanod/core"
)

func (a *Adapter) login(c fiber.Ctx) error {
	var creds core.Credentials
	if err := c.Bind().Body(&creds); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	result, err := a.auth.Login(creds)
	if err != nil {
		return a.renderError(c, err)
	}

	a.setAuthCookie(c, result.Token, result.Session.ExpiresAt)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user":      result.User,
		"token":     result.Token,
		"expiresAt": result.Session.ExpiresAt,
	})
}

func (a *Adapter) logout(c fiber.Ctx) error {
	if err := a.auth.Logout(a.extractToken(c)); err != nil {
		return a.renderError(c, err)
	}

	a.clearAuthCookie(c)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "signed out",
	})
}

// whoami runs behind RequireAuth; it only echoes what the middleware
// attached.
func (a *Adapter) whoami(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(core.SessionData{
		User:    UserFromCtx(c),
		Session: SessionFromCtx(c),
	})
}

func (a *Adapter) setAuthCookie(c fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     a.cookie,
		Value:    token,
		Expires:  expires,
		Path:     "/",
		HTTPOnly: true,
		Secure:   a.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (a *Adapter) clearAuthCookie(c fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     a.cookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		Path:     "/",
		HTTPOnly: true,
		Secure:   a.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// renderError maps core errors to HTTP responses.
func (a *Adapter) renderError(c fiber.Ctx, err error) error {
	var validationErr *core.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationErr.Error(),
			"field": validationErr.Field,
			"rule":  validationErr.Rule,
		})
	}

	if errors.Is(err, core.ErrInvalidCredentials) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": core.ErrInvalidCredentials.Error(),
		})
	}

	// Store failures and anything unexpected are server errors. The
	// detail stays in the log, not the response.
	a.log.Error("auth request failed", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
	})
}
