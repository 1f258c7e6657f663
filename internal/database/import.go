package database

import (
	"context"
	"database/sql"

	"github.com/safooraa838/FitSync/internal/models"
	"github.com/safooraa838/FitSync/internal/seed"
	"github.com/safooraa838/FitSync/internal/util"
)

// ImportStats counts what ImportFixtures inserted.
type ImportStats struct {
	Users    int
	Workouts int
	Meals    int
	Goals    int
	// Redated counts existing entities whose dates were moved to match the
	// fixtures.
	Redated int
}

// ImportFixtures copies seed fixtures into the database in one transaction.
// Users whose email is already registered are skipped. Entities whose id
// already exists keep their content but take the fixture dates, so shifted
// fixtures move the stored ones along. Importing the same fixtures twice
// changes nothing.
func (d *Database) ImportFixtures(ctx context.Context, fx seed.Fixtures, bcryptCost int) (ImportStats, error) {
	var stats ImportStats
	err := d.WithTx(ctx, func(tx *sql.Tx) error {
		for _, u := range fx.Users {
			exists, err := userExists(ctx, tx, u.Email)
			if err != nil {
				return wrapErr(EntityUser, "import", u.ID, err)
			}
			if exists {
				continue
			}
			hash, err := util.HashPassword(u.Password, bcryptCost)
			if err != nil {
				return wrapErr(EntityUser, "import", u.ID, err)
			}
			if err := insertUser(ctx, tx, models.Credential{Principal: u.Principal, PasswordHash: hash}); err != nil {
				return err
			}
			stats.Users++
		}
		for _, w := range fx.Workouts {
			n, err := insertWorkout(ctx, tx, w)
			if err != nil {
				return err
			}
			stats.Workouts += n
			if n == 0 {
				moved, err := redateWorkout(ctx, tx, w)
				if err != nil {
					return err
				}
				stats.Redated += moved
			}
		}
		for _, m := range fx.Meals {
			n, err := insertMeal(ctx, tx, m)
			if err != nil {
				return err
			}
			stats.Meals += n
			if n == 0 {
				moved, err := redateMeal(ctx, tx, m)
				if err != nil {
					return err
				}
				stats.Redated += moved
			}
		}
		for _, g := range fx.Goals {
			n, err := insertGoal(ctx, tx, g)
			if err != nil {
				return err
			}
			stats.Goals += n
			if n == 0 {
				moved, err := redateGoal(ctx, tx, g)
				if err != nil {
					return err
				}
				stats.Redated += moved
			}
		}
		return nil
	})
	if err != nil {
		return ImportStats{}, err
	}
	return stats, nil
}
