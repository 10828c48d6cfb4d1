package pgx

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/ddalisay/tanod/core"
)

// FindByCredentials looks up a user by email and verifies the password
// against the stored argon2id hash. An unknown email and a wrong
// password both come back as (nil, nil); the caller cannot tell them
// apart.
func (a *Adapter) FindByCredentials(email, password string) (*core.User, error) {
	ctx := context.Background()
	q := `SELECT id, email, name, password_hash FROM users WHERE email = $1`

	user := &core.User{}
	var passwordHash string
	err := a.pool.QueryRow(ctx, q, email).Scan(&user.ID, &user.Email, &user.Name, &passwordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	valid, err := a.passwords.Verify(password, passwordHash)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, nil
	}

	return user, nil
}

func (a *Adapter) FindByID(id string) (*core.User, error) {
	ctx := context.Background()
	q := `SELECT id, email, name FROM users WHERE id = $1`

	user := &core.User{}
	err := a.pool.QueryRow(ctx, q, id).Scan(&user.ID, &user.Email, &user.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}
