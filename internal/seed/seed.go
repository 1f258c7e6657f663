// Package seed loads the credential and entity fixtures the application
// starts from and serves them from memory.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/safooraa838/FitSync/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// User is a fixture account with its plain-text password.
type User struct {
	models.Principal `yaml:",inline"`
	Password         string `yaml:"password"`
}

// Fixtures is the full seed data set.
type Fixtures struct {
	Users    []User           `yaml:"users"`
	Workouts []models.Workout `yaml:"workouts"`
	Meals    []models.Meal    `yaml:"meals"`
	Goals    []models.Goal    `yaml:"goals"`
}

// Parse decodes YAML fixtures. Meal totals are summed from their items and
// goal progress is derived, whatever the file says.
func Parse(data []byte) (Fixtures, error) {
	var fx Fixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return Fixtures{}, fmt.Errorf("decode fixtures: %w", err)
	}
	seen := make(map[string]bool, len(fx.Users))
	for _, u := range fx.Users {
		if u.ID == "" || u.Email == "" {
			return Fixtures{}, fmt.Errorf("fixture user missing id or email: %+v", u.Principal)
		}
		if seen[u.Email] {
			return Fixtures{}, fmt.Errorf("duplicate fixture email %q", u.Email)
		}
		seen[u.Email] = true
	}
	for i := range fx.Meals {
		fx.Meals[i].Recompute()
	}
	for i := range fx.Goals {
		fx.Goals[i].Derive()
	}
	return fx, nil
}

// Default returns the fixtures compiled into the binary.
func Default() (Fixtures, error) {
	return Parse(defaultFixtures)
}

// Load reads fixtures from path, or the built-in set when path is empty.
func Load(path string) (Fixtures, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixtures{}, fmt.Errorf("read fixtures: %w", err)
	}
	return Parse(data)
}

// ShiftTo moves every workout and meal date by whole days so the newest of
// them falls on anchor's calendar day. Goal windows move by the same amount.
func (fx *Fixtures) ShiftTo(anchor time.Time) {
	var newest time.Time
	for _, w := range fx.Workouts {
		if w.Date.After(newest) {
			newest = w.Date
		}
	}
	for _, m := range fx.Meals {
		if m.Date.After(newest) {
			newest = m.Date
		}
	}
	if newest.IsZero() {
		return
	}
	ny, nm, nd := newest.Date()
	ay, am, ad := anchor.In(newest.Location()).Date()
	from := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	to := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	days := int(to.Sub(from).Hours() / 24)
	if days == 0 {
		return
	}
	for i := range fx.Workouts {
		fx.Workouts[i].Date = fx.Workouts[i].Date.AddDate(0, 0, days)
	}
	for i := range fx.Meals {
		fx.Meals[i].Date = fx.Meals[i].Date.AddDate(0, 0, days)
	}
	for i := range fx.Goals {
		fx.Goals[i].StartDate = fx.Goals[i].StartDate.AddDate(0, 0, days)
		fx.Goals[i].EndDate = fx.Goals[i].EndDate.AddDate(0, 0, days)
	}
}
