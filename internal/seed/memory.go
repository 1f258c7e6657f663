package seed

import (
	"context"
	"fmt"
	"sync"

	"github.com/safooraa838/FitSync/internal/identity"
	"github.com/safooraa838/FitSync/internal/models"
	"github.com/safooraa838/FitSync/internal/util"
)

// Memory serves fixtures as both the credential directory and the entity
// source. Passwords are hashed on construction.
type Memory struct {
	mu    sync.RWMutex
	creds map[string]models.Credential
	fx    Fixtures
}

// NewMemory hashes every fixture password with the given bcrypt cost.
func NewMemory(fx Fixtures, cost int) (*Memory, error) {
	m := &Memory{creds: make(map[string]models.Credential, len(fx.Users)), fx: fx}
	for _, u := range fx.Users {
		hash, err := util.HashPassword(u.Password, cost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", u.Email, err)
		}
		m.creds[u.Email] = models.Credential{Principal: u.Principal.Clone(), PasswordHash: hash}
	}
	return m, nil
}

// Lookup matches email exactly.
func (m *Memory) Lookup(ctx context.Context, email string) (models.Credential, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.creds[email]
	if !ok {
		return models.Credential{}, false, nil
	}
	c.Principal = c.Principal.Clone()
	return c, true, nil
}

func (m *Memory) Create(ctx context.Context, cred models.Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.creds[cred.Email]; ok {
		return identity.ErrEmailTaken
	}
	cred.Principal = cred.Principal.Clone()
	m.creds[cred.Email] = cred
	return nil
}

func (m *Memory) Workouts(ctx context.Context, userID string) ([]models.Workout, error) {
	var out []models.Workout
	for _, w := range m.fx.Workouts {
		if w.UserID == userID {
			out = append(out, w.Clone())
		}
	}
	return out, nil
}

func (m *Memory) Meals(ctx context.Context, userID string) ([]models.Meal, error) {
	var out []models.Meal
	for _, meal := range m.fx.Meals {
		if meal.UserID == userID {
			out = append(out, meal.Clone())
		}
	}
	return out, nil
}

func (m *Memory) Goals(ctx context.Context, userID string) ([]models.Goal, error) {
	var out []models.Goal
	for _, g := range m.fx.Goals {
		if g.UserID == userID {
			out = append(out, g.Clone())
		}
	}
	return out, nil
}
