// Package pgx backs the tanod ports with Postgres via pgxpool.
//
// Expected schema:
//
//	CREATE TABLE users (
//	    id            text PRIMARY KEY,
//	    email         text UNIQUE NOT NULL,
//	    name          text NOT NULL DEFAULT '',
//	    password_hash text NOT NULL
//	);
//
//	CREATE TABLE sessions (
//	    token_hash text PRIMARY KEY,
//	    id         text UNIQUE NOT NULL,
//	    user_id    text NOT NULL REFERENCES users(id) ON DELETE CASCADE,
//	    issued_at  timestamptz NOT NULL,
//	    expires_at timestamptz NOT NULL
//	);
package pgx

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ddalisay/tanod/core"
	"github.com/ddalisay/tanod/pkg/crypto"
)

// Adapter implements core.UserRepository and core.SessionStore over a
// pgx connection pool. Password comparison happens here, behind the
// repository port, so the core never sees a hash.
type Adapter struct {
	pool      *pgxpool.Pool
	passwords crypto.PasswordHandler
}

var (
	_ core.UserRepository = (*Adapter)(nil)
	_ core.SessionStore   = (*Adapter)(nil)
)

func New(pool *pgxpool.Pool, passwords ...crypto.PasswordHandler) *Adapter {
	a := &Adapter{pool: pool}
	if len(passwords) > 0 && passwords[0] != nil {
		a.passwords = passwords[0]
	} else {
		a.passwords = crypto.NewArgon2()
	}
	return a
}
