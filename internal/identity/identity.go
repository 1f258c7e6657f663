// Package identity owns the signed-in principal and its durable session.
// Other stores learn about session changes only through Observer.
package identity

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/safooraa838/FitSync/internal/backend"
	"github.com/safooraa838/FitSync/internal/config"
	"github.com/safooraa838/FitSync/internal/ids"
	"github.com/safooraa838/FitSync/internal/metrics"
	"github.com/safooraa838/FitSync/internal/models"
	"github.com/safooraa838/FitSync/internal/util"
	"github.com/sirupsen/logrus"
)

// ErrEmailTaken is returned by Directory.Create when the email already has
// a credential.
var ErrEmailTaken = errors.New("email already registered")

// Directory is the credential set principals authenticate against.
type Directory interface {
	Lookup(ctx context.Context, email string) (models.Credential, bool, error)
	Create(ctx context.Context, cred models.Credential) error
}

// SessionRecord is what survives a restart.
type SessionRecord struct {
	Principal       models.Principal `json:"user"`
	AuthenticatedAt time.Time        `json:"authenticatedAt"`
}

// SessionStorage persists the single active session record.
type SessionStorage interface {
	Load(ctx context.Context) (SessionRecord, bool, error)
	Save(ctx context.Context, rec SessionRecord) error
	Clear(ctx context.Context) error
}

//go:generate mockgen -destination=mock_observer_test.go -package=identity -self_package=github.com/safooraa838/FitSync/internal/identity github.com/safooraa838/FitSync/internal/identity Observer,Directory

// Observer is notified after every session change. p is nil on logout.
type Observer interface {
	OnSessionChanged(ctx context.Context, p *models.Principal)
}

// Store is the single source of truth for who is signed in.
type Store struct {
	dir      Directory
	sessions SessionStorage
	gw       backend.Gateway
	ids      ids.Generator
	log      logrus.FieldLogger
	cost     int
	ttl      time.Duration
	now      func() time.Time

	// transition serialises establish, persist and broadcast so observers
	// see sessions in the order they were persisted.
	transition sync.Mutex

	mu        sync.RWMutex
	current   *SessionRecord
	observers []Observer
}

// Option configures a Store.
type Option func(*Store)

func WithIDs(g ids.Generator) Option { return func(s *Store) { s.ids = g } }
func WithLogger(l logrus.FieldLogger) Option { return func(s *Store) { s.log = l } }
func WithBcryptCost(cost int) Option { return func(s *Store) { s.cost = cost } }
func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }
func WithSessionTTL(ttl time.Duration) Option { return func(s *Store) { s.ttl = ttl } }

// NewStore wires a Store. Nothing is restored until Restore is called.
func NewStore(dir Directory, sessions SessionStorage, gw backend.Gateway, opts ...Option) *Store {
	s := &Store{
		dir:      dir,
		sessions: sessions,
		gw:       gw,
		ids:      ids.UUID{},
		log:      util.DiscardLogger(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("component", "identity")
	return s
}

// Subscribe registers o for session changes. Register observers before
// Restore so none miss the initial session.
func (s *Store) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Current returns a copy of the signed-in principal.
func (s *Store) Current() (models.Principal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.Principal{}, false
	}
	return s.current.Principal.Clone(), true
}

// IsAuthenticated reports whether a principal is active.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

// Login authenticates by exact email and password. Wrong credentials yield
// false with no side effects; the error is reserved for infrastructure
// failures. The call cannot be abandoned once started.
func (s *Store) Login(ctx context.Context, email, password string) (bool, error) {
	ctx = context.WithoutCancel(ctx)
	if err := s.gw.RoundTrip(ctx, "login"); err != nil {
		return false, fmt.Errorf("login round trip: %w", err)
	}
	cred, found, err := s.dir.Lookup(ctx, email)
	if err != nil {
		return false, fmt.Errorf("lookup credential: %w", err)
	}
	ok := false
	if found {
		ok, err = util.CheckPassword(cred.PasswordHash, password)
		if err != nil {
			return false, err
		}
	}
	metrics.RecordAuth("login", ok)
	if !ok {
		s.log.WithField("email", email).Info("login rejected")
		return false, nil
	}
	s.establish(ctx, cred.Principal, "login")
	return true, nil
}

// Register creates a credential for a new email and signs it in. An email
// that is already registered yields false.
func (s *Store) Register(ctx context.Context, name, email, password string) (bool, error) {
	ctx = context.WithoutCancel(ctx)
	if err := s.gw.RoundTrip(ctx, "register"); err != nil {
		return false, fmt.Errorf("register round trip: %w", err)
	}
	_, exists, err := s.dir.Lookup(ctx, email)
	if err != nil {
		return false, fmt.Errorf("lookup credential: %w", err)
	}
	if exists {
		metrics.RecordAuth("register", false)
		s.log.WithField("email", email).Info("register rejected: email taken")
		return false, nil
	}
	hash, err := util.HashPassword(password, s.cost)
	if err != nil {
		return false, err
	}
	p := models.Principal{ID: s.ids.New(config.PrefixUser), Name: name, Email: email}
	if err := s.dir.Create(ctx, models.Credential{Principal: p, PasswordHash: hash}); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			metrics.RecordAuth("register", false)
			return false, nil
		}
		return false, fmt.Errorf("create credential: %w", err)
	}
	metrics.RecordAuth("register", true)
	s.establish(ctx, p, "register")
	return true, nil
}

// Logout ends the session. It always succeeds; a failure to delete the
// durable record is logged.
func (s *Store) Logout(ctx context.Context) {
	s.transition.Lock()
	defer s.transition.Unlock()

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	util.LogError(s.log, "clear session record", s.sessions.Clear(ctx))
	s.broadcast(ctx, nil, "logout")
}

// UpdateProfile merges patch into the current principal and re-persists it.
// Without a session it does nothing. Observers are not notified because the
// principal's identity does not change.
func (s *Store) UpdateProfile(ctx context.Context, patch models.ProfilePatch) {
	s.transition.Lock()
	defer s.transition.Unlock()

	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return
	}
	rec := *s.current
	patch.Apply(&rec.Principal)
	rec.Principal = rec.Principal.Clone()
	s.current = &rec
	s.mu.Unlock()

	util.LogError(s.log, "save session record", s.sessions.Save(ctx, rec))
}

// Restore reactivates a persisted session without re-authentication. When a
// session TTL is configured, an older record is discarded instead.
func (s *Store) Restore(ctx context.Context) (bool, error) {
	rec, ok, err := s.sessions.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load session record: %w", err)
	}
	if !ok {
		return false, nil
	}
	if s.ttl > 0 && s.now().Sub(rec.AuthenticatedAt) > s.ttl {
		s.log.WithField("user_id", rec.Principal.ID).Info("session record expired")
		util.LogError(s.log, "clear expired session record", s.sessions.Clear(ctx))
		return false, nil
	}

	s.transition.Lock()
	defer s.transition.Unlock()
	s.mu.Lock()
	s.current = &rec
	s.mu.Unlock()
	p := rec.Principal.Clone()
	s.broadcast(ctx, &p, "restore")
	return true, nil
}

func (s *Store) establish(ctx context.Context, p models.Principal, reason string) {
	s.transition.Lock()
	defer s.transition.Unlock()

	rec := SessionRecord{Principal: p.Clone(), AuthenticatedAt: s.now()}
	s.mu.Lock()
	s.current = &rec
	s.mu.Unlock()

	util.LogError(s.log, "save session record", s.sessions.Save(ctx, rec))
	s.log.WithFields(logrus.Fields{"user_id": p.ID, "reason": reason}).Info("session established")
	out := p.Clone()
	s.broadcast(ctx, &out, reason)
}

// broadcast must be called with transition held.
func (s *Store) broadcast(ctx context.Context, p *models.Principal, reason string) {
	s.mu.RLock()
	observers := append([]Observer(nil), s.observers...)
	s.mu.RUnlock()

	metrics.RecordSessionChange(reason)
	for _, o := range observers {
		var arg *models.Principal
		if p != nil {
			c := p.Clone()
			arg = &c
		}
		o.OnSessionChanged(ctx, arg)
	}
}
