// Package fiber adapts the tanod auth core to a gofiber/v3 application.
package fiber

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/ddalisay/tanod/core"
)

// DefaultCookieName is the fallback credential carrier cookie.
const DefaultCookieName = "tanod_session"

// Options tune the adapter. The zero value is usable.
type Options struct {
	// CookieName is the cookie used as the fallback credential carrier
	// and set on login. Empty means DefaultCookieName.
	CookieName string

	// CookieSecure marks the auth cookie Secure. Enable behind TLS.
	CookieSecure bool

	// Logger receives internal rejection reasons at debug level and
	// store failures at error level. Nil means no logging.
	Logger *zap.Logger
}

// Adapter registers the auth routes on a Fiber app and exposes the
// route-protection middleware.
type Adapter struct {
	app    *fiber.App
	auth   core.AuthHandler
	cookie string
	secure bool
	log    *zap.Logger
}

var _ core.HTTPAdapter = (*Adapter)(nil)

func New(app *fiber.App, opts ...Options) *Adapter {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.CookieName == "" {
		o.CookieName = DefaultCookieName
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}

	return &Adapter{
		app:    app,
		cookie: o.CookieName,
		secure: o.CookieSecure,
		log:    o.Logger,
	}
}

// RegisterRoutes mounts the auth endpoints under basePath.
func (a *Adapter) RegisterRoutes(handler core.AuthHandler, basePath string) error {
	a.auth = handler

	api := a.app.Group(basePath)

	// Public routes
	api.Post("/login", a.login)
	api.Post("/logout", a.logout)

	// Protected routes
	api.Get("/session", a.whoami, a.RequireAuth)

	a.log.Info("auth routes registered", zap.String("basePath", basePath))
	return nil
}
