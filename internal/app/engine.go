// Package app wires the identity store and the three domain stores into one
// engine.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/safooraa838/FitSync/internal/backend"
	"github.com/safooraa838/FitSync/internal/identity"
	"github.com/safooraa838/FitSync/internal/ids"
	"github.com/safooraa838/FitSync/internal/store"
	"github.com/safooraa838/FitSync/internal/util"
	"github.com/sirupsen/logrus"
)

// Deps are the collaborators the engine is built from.
type Deps struct {
	Directory identity.Directory
	Sessions  identity.SessionStorage
	Source    store.Source
	Gateway   backend.Gateway

	IDs        ids.Generator
	Log        logrus.FieldLogger
	Location   *time.Location
	BcryptCost int
	SessionTTL time.Duration
}

// Engine owns one identity store and the stores scoped to it.
type Engine struct {
	Identity  *identity.Store
	Workouts  *store.Workouts
	Nutrition *store.Nutrition
	Goals     *store.Goals

	log logrus.FieldLogger
	loc *time.Location
}

// New builds the stores and subscribes them to session changes. Call
// Start to restore a persisted session.
func New(d Deps) (*Engine, error) {
	if d.Directory == nil || d.Sessions == nil || d.Gateway == nil {
		return nil, fmt.Errorf("engine: directory, sessions and gateway are required")
	}
	if d.IDs == nil {
		d.IDs = ids.UUID{}
	}
	if d.Log == nil {
		d.Log = util.DiscardLogger()
	}
	if d.Location == nil {
		d.Location = time.UTC
	}

	idOpts := []identity.Option{
		identity.WithIDs(d.IDs),
		identity.WithLogger(d.Log),
		identity.WithSessionTTL(d.SessionTTL),
	}
	if d.BcryptCost > 0 {
		idOpts = append(idOpts, identity.WithBcryptCost(d.BcryptCost))
	}
	storeOpts := []store.Option{
		store.WithIDs(d.IDs),
		store.WithLogger(d.Log),
		store.WithLocation(d.Location),
	}

	e := &Engine{
		Identity:  identity.NewStore(d.Directory, d.Sessions, d.Gateway, idOpts...),
		Workouts:  store.NewWorkouts(d.Source, d.Gateway, storeOpts...),
		Nutrition: store.NewNutrition(d.Source, d.Gateway, storeOpts...),
		Goals:     store.NewGoals(d.Source, d.Gateway, storeOpts...),
		log:       d.Log.WithField("component", "engine"),
		loc:       d.Location,
	}
	e.Identity.Subscribe(e.Workouts)
	e.Identity.Subscribe(e.Nutrition)
	e.Identity.Subscribe(e.Goals)
	return e, nil
}

// Start restores the persisted session, if any, and reports whether one
// became active.
func (e *Engine) Start(ctx context.Context) (bool, error) {
	ok, err := e.Identity.Restore(ctx)
	if err != nil {
		return false, err
	}
	if ok {
		p, _ := e.Identity.Current()
		e.log.WithField("user_id", p.ID).Info("session restored")
	}
	return ok, nil
}

// Location is the zone calendar days are compared in.
func (e *Engine) Location() *time.Location {
	return e.loc
}
