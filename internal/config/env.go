package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds runtime settings read from the environment. ShiftSeed moves
// the fixture dates so the newest entry falls on today.
type Config struct {
	DataDir     string        `env:"FITSYNC_DATA_DIR"`
	SeedFile    string        `env:"FITSYNC_SEED_FILE"`
	ShiftSeed   bool          `env:"FITSYNC_SHIFT_SEED" envDefault:"true"`
	ReportDir   string        `env:"FITSYNC_REPORT_DIR"`
	LogLevel    string        `env:"FITSYNC_LOG_LEVEL" envDefault:"info"`
	AuthLatency time.Duration `env:"FITSYNC_AUTH_LATENCY" envDefault:"800ms"`
	BcryptCost  int           `env:"FITSYNC_BCRYPT_COST" envDefault:"10"`
	// SessionTTL expires a restored session once it is older than this.
	// Zero keeps sessions forever.
	SessionTTL time.Duration `env:"FITSYNC_SESSION_TTL" envDefault:"0s"`
	TimeZone   string        `env:"FITSYNC_TIMEZONE" envDefault:"UTC"`
}

// Location resolves TimeZone, the zone calendar days are compared in.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// Load reads optional dotenv files and then parses the environment.
// Missing dotenv files are ignored.
func Load(dotenvFiles ...string) (Config, error) {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.AuthLatency < 0 {
		return Config{}, fmt.Errorf("FITSYNC_AUTH_LATENCY must not be negative")
	}
	if cfg.SessionTTL < 0 {
		return Config{}, fmt.Errorf("FITSYNC_SESSION_TTL must not be negative")
	}
	return cfg, nil
}
