package pgx

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ddalisay/tanod/core"
)

func (a *Adapter) Put(tokenHash string, session *core.Session) error {
	ctx := context.Background()
	q := `INSERT INTO sessions (token_hash, id, user_id, issued_at, expires_at)
	      VALUES ($1, $2, $3, $4, $5)`

	_, err := a.pool.Exec(ctx, q,
		tokenHash, session.ID, session.UserID, session.IssuedAt, session.ExpiresAt)
	return err
}

func (a *Adapter) Get(tokenHash string) (*core.Session, error) {
	ctx := context.Background()
	q := `SELECT token_hash, id, user_id, issued_at, expires_at FROM sessions WHERE token_hash = $1`

	session := &core.Session{}
	err := a.pool.QueryRow(ctx, q, tokenHash).Scan(
		&session.TokenHash, &session.ID, &session.UserID, &session.IssuedAt, &session.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrSessionNotFound
		}
		return nil, err
	}

	return session, nil
}

// Delete removes the session if present. Deleting an absent hash is a
// no-op, matching the port contract.
func (a *Adapter) Delete(tokenHash string) error {
	ctx := context.Background()
	_, err := a.pool.Exec(ctx, `DELETE FROM sessions WHERE token_hash = $1`, tokenHash)
	return err
}

// DeleteExpired reclaims space held by sessions that expired before
// now. Correctness never depends on it; verification expires lazily.
func (a *Adapter) DeleteExpired(now time.Time) (int, error) {
	ctx := context.Background()
	tag, err := a.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
