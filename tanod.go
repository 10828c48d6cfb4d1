// Package tanod is a session-based authentication library: credential
// validation, opaque-token session issuance and verification, and route
// protection, behind pluggable storage and transport adapters.
package tanod

import (
	"time"

	"go.uber.org/zap"

	"github.com/ddalisay/tanod/core"
	"github.com/ddalisay/tanod/pkg/crypto"
	"github.com/ddalisay/tanod/pkg/store"
)

// interfaces
type (
	UserRepository = core.UserRepository
	SessionStore   = core.SessionStore
	Cache          = core.Cache

	HTTPAdapter = core.HTTPAdapter
	AuthHandler = core.AuthHandler
	TokenSource = core.TokenSource

	PasswordHandler = crypto.PasswordHandler
)

// structs
type (
	CacheConfig   = core.CacheConfig
	SessionConfig = core.SessionConfig
)

type (
	Credentials = core.Credentials
	User        = core.User
	Session     = core.Session
	AuthResult  = core.AuthResult
	LoginResult = core.LoginResult
	SessionData = core.SessionData
	CacheStats  = core.CacheStats
)

const (
	defaultBasePath = "/api/auth"
)

// Constructors & helpers (convenience re-exports)
var (
	NewInMemoryCache     = core.NewInMemoryCache
	NewMemoryStore       = store.NewMemory
	NewArgon2            = crypto.NewArgon2
	DefaultSessionConfig = core.DefaultSessionConfig
)

var (
	ErrInvalidCredentials = core.ErrInvalidCredentials
)

var (
	ErrNoToken         = core.ErrNoToken
	ErrSessionNotFound = core.ErrSessionNotFound
	ErrSessionExpired  = core.ErrSessionExpired
	ErrCacheNotFound   = core.ErrCacheNotFound
)

var (
	ErrUserRepositoryRequired = core.ErrUserRepositoryRequired
)

const (
	ReasonNoToken = core.ReasonNoToken
	ReasonExpired = core.ReasonExpired
	ReasonInvalid = core.ReasonInvalid
)

// Options configures a Tanod instance.
type Options struct {
	// Users is the repository supplying user records. Required.
	Users core.UserRepository

	// Sessions is the session store. Nil selects the in-memory store.
	Sessions core.SessionStore

	// CacheAdapter fronts the store with a read-through cache. Nil
	// selects the in-memory cache unless DisableCache is set.
	CacheAdapter core.Cache
	DisableCache bool

	// SessionTTL is the lifetime of issued sessions. Zero means 24h.
	SessionTTL time.Duration

	// MinPasswordLen is the validator's password floor. Zero means 8.
	MinPasswordLen int

	// Tokens overrides the session token source. Nil means crypto/rand.
	Tokens core.TokenSource

	// HTTP registers the auth routes when non-nil.
	HTTP core.HTTPAdapter

	// BasePath for registered routes. Empty means "/api/auth".
	BasePath string

	// Logger for facade-level events. Nil means no logging.
	Logger *zap.Logger
}

// Tanod bundles the wired auth core.
type Tanod struct {
	Auth     *core.AuthService
	Sessions *core.SessionManager
	BasePath string
}

// New wires the auth core from the given options and, when an HTTP
// adapter is supplied, mounts the routes.
func New(opts Options) (*Tanod, error) {
	if opts.Users == nil {
		return nil, ErrUserRepositoryRequired
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	sessions := opts.Sessions
	if sessions == nil {
		sessions = store.NewMemory()
	}

	cache := opts.CacheAdapter
	if cache == nil && !opts.DisableCache {
		cache = core.NewInMemoryCache(core.CacheConfig{
			TTL:     5 * time.Minute,
			MaxSize: 500,
		})
	}

	sessionConfig := core.SessionConfig{
		TTL:    opts.SessionTTL,
		Tokens: opts.Tokens,
	}

	basePath := opts.BasePath
	if basePath == "" {
		basePath = defaultBasePath
	}

	sessionManager := core.NewSessionManager(sessionConfig, sessions, cache)
	auth := core.NewAuthService(opts.Users, sessionManager, opts.MinPasswordLen)

	t := &Tanod{
		Auth:     auth,
		Sessions: sessionManager,
		BasePath: basePath,
	}

	if opts.HTTP != nil {
		if err := opts.HTTP.RegisterRoutes(auth, basePath); err != nil {
			return nil, err
		}
		log.Info("tanod initialized",
			zap.String("basePath", basePath),
			zap.Duration("sessionTTL", sessionManager.TTL()))
	}

	return t, nil
}
