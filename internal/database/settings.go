package database

import (
	"context"
	"database/sql"
	"errors"
)

// GetSetting returns the value stored under key. A missing key reports false.
func (d *Database) GetSetting(ctx context.Context, key string) (string, bool, error) {
	type result struct {
		value string
		found bool
	}
	r, err := withDBContextResult(d, ctx, func(ctx context.Context) (result, error) {
		var value sql.NullString
		err := d.DB.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
		if errors.Is(err, sql.ErrNoRows) {
			return result{}, nil
		}
		if err != nil {
			return result{}, wrapErr(EntitySetting, "get", key, err)
		}
		return result{value: value.String, found: value.Valid}, nil
	})
	return r.value, r.found, err
}

func (d *Database) SetSetting(ctx context.Context, key, value string) error {
	return d.withDBContext(ctx, func(ctx context.Context) error {
		_, err := d.DB.ExecContext(ctx,
			"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
			key, value)
		return wrapErr(EntitySetting, "set", key, err)
	})
}

func (d *Database) DeleteSetting(ctx context.Context, key string) error {
	return d.withDBContext(ctx, func(ctx context.Context) error {
		_, err := d.DB.ExecContext(ctx, "DELETE FROM settings WHERE key = ?", key)
		return wrapErr(EntitySetting, "delete", key, err)
	})
}
