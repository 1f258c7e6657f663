package database

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/safooraa838/FitSync/internal/config"
	"github.com/safooraa838/FitSync/internal/identity"
)

// Sessions stores the single session record as JSON in the settings table.
type Sessions struct {
	db  *Database
	key string
}

// Sessions returns the session storage kept under config.SessionKey.
func (d *Database) Sessions() *Sessions {
	return &Sessions{db: d, key: config.SessionKey}
}

// LoadSession decodes the stored record. It returns ErrNoSession when there
// is none.
func (d *Database) LoadSession(ctx context.Context, key string) (identity.SessionRecord, error) {
	raw, found, err := d.GetSetting(ctx, key)
	if err != nil {
		return identity.SessionRecord{}, wrapErr(EntitySession, "load", "", err)
	}
	if !found || raw == "" {
		return identity.SessionRecord{}, ErrNoSession
	}
	var rec identity.SessionRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return identity.SessionRecord{}, wrapErr(EntitySession, "decode", "", errors.Join(ErrCorruptSession, err))
	}
	return rec, nil
}

func (s *Sessions) Load(ctx context.Context) (identity.SessionRecord, bool, error) {
	rec, err := s.db.LoadSession(ctx, s.key)
	if errors.Is(err, ErrNoSession) {
		return identity.SessionRecord{}, false, nil
	}
	if errors.Is(err, ErrCorruptSession) {
		// An unreadable record is treated as logged out and dropped.
		_ = s.db.DeleteSetting(ctx, s.key)
		return identity.SessionRecord{}, false, nil
	}
	if err != nil {
		return identity.SessionRecord{}, false, err
	}
	return rec, true, nil
}

func (s *Sessions) Save(ctx context.Context, rec identity.SessionRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return wrapErr(EntitySession, "encode", rec.Principal.ID, err)
	}
	return wrapErr(EntitySession, "save", rec.Principal.ID, s.db.SetSetting(ctx, s.key, string(raw)))
}

func (s *Sessions) Clear(ctx context.Context) error {
	return wrapErr(EntitySession, "clear", "", s.db.DeleteSetting(ctx, s.key))
}
