package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/safooraa838/FitSync/internal/app"
	"github.com/safooraa838/FitSync/internal/backend"
	"github.com/safooraa838/FitSync/internal/config"
	"github.com/safooraa838/FitSync/internal/database"
	"github.com/safooraa838/FitSync/internal/metrics"
	"github.com/safooraa838/FitSync/internal/seed"
	"github.com/safooraa838/FitSync/internal/tui"
	"github.com/safooraa838/FitSync/internal/util"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

const maxLoginAttempts = 3

var errTooManyAttempts = errors.New("too many failed sign-in attempts")

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Printf("Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}
	dataDir, reportDir := resolveDirs(cfg)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	logFile, err := os.OpenFile(filepath.Join(dataDir, config.LogFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	log := util.NewLogger(cfg.LogLevel, logFile)

	engine, db, err := bootstrap(ctx, cfg, dataDir, log, time.Now())
	if err != nil {
		return err
	}
	defer db.Close()

	restored, err := engine.Start(ctx)
	if err != nil {
		return err
	}
	if !restored {
		if err := authenticate(ctx, engine, os.Stdin, os.Stderr, promptPassword); err != nil {
			return err
		}
	}

	p := tea.NewProgram(tui.NewMainModel(ctx, engine, reportDir), tea.WithAltScreen())
	_, err = p.Run()
	logMetrics(log)
	return err
}

// bootstrap opens the database under dataDir, imports the seed fixtures and
// builds the engine. With cfg.ShiftSeed the fixtures are first moved so the
// newest entry falls on now's calendar day.
func bootstrap(ctx context.Context, cfg config.Config, dataDir string, log logrus.FieldLogger, now time.Time) (*app.Engine, *database.Database, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}
	fx, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return nil, nil, err
	}
	if cfg.ShiftSeed {
		fx.ShiftTo(now.In(loc))
	}

	db, err := database.Open(ctx, filepath.Join(dataDir, config.DBFileName))
	if err != nil {
		return nil, nil, err
	}
	stats, err := db.ImportFixtures(ctx, fx, cfg.BcryptCost)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	log.WithFields(logrus.Fields{
		"users":    stats.Users,
		"workouts": stats.Workouts,
		"meals":    stats.Meals,
		"goals":    stats.Goals,
		"redated":  stats.Redated,
	}).Info("seed imported")

	engine, err := app.New(app.Deps{
		Directory:  db,
		Sessions:   db.Sessions(),
		Source:     db,
		Gateway:    backend.NewSimulator(cfg.AuthLatency, log),
		Log:        log,
		Location:   loc,
		BcryptCost: cfg.BcryptCost,
		SessionTTL: cfg.SessionTTL,
	})
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return engine, db, nil
}

// resolveDirs applies the per-user defaults for unset directories.
func resolveDirs(cfg config.Config) (dataDir, reportDir string) {
	dataDir, reportDir = cfg.DataDir, cfg.ReportDir
	if dataDir == "" {
		dataDir = util.DataDir(config.AppName)
	}
	if reportDir == "" {
		reportDir = util.ReportsDir(config.AppName)
	}
	return dataDir, reportDir
}

// authenticate prompts until a login or registration succeeds. Entering
// "new" as the email registers an account instead.
func authenticate(ctx context.Context, e *app.Engine, in io.Reader, out io.Writer, readPassword func(prompt string, out io.Writer) (string, error)) error {
	r := bufio.NewReader(in)
	for attempt := 0; attempt < maxLoginAttempts; attempt++ {
		email, err := promptLine(r, out, "Email (or 'new' to register): ")
		if err != nil {
			return err
		}
		if email == "new" {
			return register(ctx, e, r, out, readPassword)
		}
		pass, err := readPassword("Password: ", out)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "Signing in...")
		ok, err := e.Identity.Login(ctx, email, pass)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		fmt.Fprintln(out, "Invalid email or password.")
	}
	return errTooManyAttempts
}

func register(ctx context.Context, e *app.Engine, r *bufio.Reader, out io.Writer, readPassword func(string, io.Writer) (string, error)) error {
	name, err := promptLine(r, out, "Name: ")
	if err != nil {
		return err
	}
	email, err := promptLine(r, out, "Email: ")
	if err != nil {
		return err
	}
	pass, err := readPassword("Password: ", out)
	if err != nil {
		return err
	}
	if name == "" || email == "" || pass == "" {
		return errors.New("name, email and password are required")
	}
	fmt.Fprintln(out, "Creating account...")
	ok, err := e.Identity.Register(ctx, name, email, pass)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("an account for %s already exists", email)
	}
	return nil
}

func promptLine(r *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(prompt string, out io.Writer) (string, error) {
	fmt.Fprint(out, prompt)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	return trimLineEnding(string(pass)), err
}

// trimLineEnding drops a trailing newline and carriage return only, so
// passwords keep their surrounding spaces.
func trimLineEnding(s string) string {
	return strings.TrimRight(s, "\r\n")
}

func logMetrics(log logrus.FieldLogger) {
	families, err := metrics.Registry.Gather()
	if err != nil {
		util.LogError(log, "gather metrics", err)
		return
	}
	for _, mf := range families {
		var total float64
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				total += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				total += m.GetGauge().GetValue()
			}
		}
		log.WithField("metric", mf.GetName()).WithField("value", total).Debug("metrics at exit")
	}
}
