package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/safooraa838/FitSync/internal/identity"
	"github.com/safooraa838/FitSync/internal/models"
)

// Lookup finds the credential registered for email. The match is exact.
func (d *Database) Lookup(ctx context.Context, email string) (models.Credential, bool, error) {
	type result struct {
		cred  models.Credential
		found bool
	}
	r, err := withDBContextResult(d, ctx, func(ctx context.Context) (result, error) {
		var (
			c   models.Credential
			pic sql.NullString
		)
		err := d.DB.QueryRowContext(ctx,
			"SELECT id, name, email, profile_picture, password_hash FROM users WHERE email = ?", email).
			Scan(&c.ID, &c.Name, &c.Email, &pic, &c.PasswordHash)
		if errors.Is(err, sql.ErrNoRows) {
			return result{}, nil
		}
		if err != nil {
			return result{}, wrapErr(EntityUser, "lookup", "", err)
		}
		if pic.Valid {
			c.ProfilePicture = &pic.String
		}
		return result{cred: c, found: true}, nil
	})
	return r.cred, r.found, err
}

// Create inserts a credential. It returns identity.ErrEmailTaken when the
// email is already registered.
func (d *Database) Create(ctx context.Context, cred models.Credential) error {
	return d.WithTx(ctx, func(tx *sql.Tx) error {
		return insertUser(ctx, tx, cred)
	})
}

func insertUser(ctx context.Context, tx *sql.Tx, cred models.Credential) error {
	exists, err := userExists(ctx, tx, cred.Email)
	if err != nil {
		return wrapErr(EntityUser, "create", cred.ID, err)
	}
	if exists {
		return identity.ErrEmailTaken
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO users (id, name, email, profile_picture, password_hash) VALUES (?, ?, ?, ?, ?)",
		cred.ID, cred.Name, cred.Email, toNullableArg(cred.ProfilePicture), cred.PasswordHash)
	return wrapErr(EntityUser, "create", cred.ID, err)
}

func userExists(ctx context.Context, tx *sql.Tx, email string) (bool, error) {
	var n int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM users WHERE email = ?", email).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}
