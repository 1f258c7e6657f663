package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/safooraa838/FitSync/internal/models"
)

const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s sql.NullString) (time.Time, error) {
	if !s.Valid || s.String == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(timeLayout, s.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s.String, err)
	}
	return t, nil
}

func fromNullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// Workouts returns the stored workouts of userID ordered by date.
func (d *Database) Workouts(ctx context.Context, userID string) ([]models.Workout, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) ([]models.Workout, error) {
		rows, err := d.DB.QueryContext(ctx, `
			SELECT id, user_id, date, name, type, duration, calories_burned, exercises, notes
			FROM workouts
			WHERE user_id = ?
			ORDER BY date ASC, id ASC`, userID)
		if err != nil {
			return nil, wrapErr(EntityWorkout, "list", "", err)
		}
		defer rows.Close()

		var workouts []models.Workout
		for rows.Next() {
			var (
				w         models.Workout
				date      sql.NullString
				exercises sql.NullString
				notes     sql.NullString
			)
			if err := rows.Scan(&w.ID, &w.UserID, &date, &w.Name, &w.Type, &w.Duration, &w.CaloriesBurned, &exercises, &notes); err != nil {
				return nil, wrapErr(EntityWorkout, "scan", "", err)
			}
			if w.Date, err = parseTime(date); err != nil {
				return nil, wrapErr(EntityWorkout, "scan", w.ID, err)
			}
			if exercises.Valid && exercises.String != "" {
				if err := json.Unmarshal([]byte(exercises.String), &w.Exercises); err != nil {
					return nil, wrapErr(EntityWorkout, "decode exercises", w.ID, err)
				}
			}
			w.Notes = fromNullString(notes)
			workouts = append(workouts, w)
		}
		return workouts, wrapErr(EntityWorkout, "list", "", rows.Err())
	})
}

// Meals returns the stored meals of userID ordered by date.
func (d *Database) Meals(ctx context.Context, userID string) ([]models.Meal, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) ([]models.Meal, error) {
		rows, err := d.DB.QueryContext(ctx, `
			SELECT id, user_id, date, type, items, total_calories, total_protein, total_carbs, total_fat, notes
			FROM meals
			WHERE user_id = ?
			ORDER BY date ASC, id ASC`, userID)
		if err != nil {
			return nil, wrapErr(EntityMeal, "list", "", err)
		}
		defer rows.Close()

		var meals []models.Meal
		for rows.Next() {
			var (
				m     models.Meal
				date  sql.NullString
				items sql.NullString
				notes sql.NullString
			)
			if err := rows.Scan(&m.ID, &m.UserID, &date, &m.Type, &items,
				&m.TotalCalories, &m.TotalProtein, &m.TotalCarbs, &m.TotalFat, &notes); err != nil {
				return nil, wrapErr(EntityMeal, "scan", "", err)
			}
			if m.Date, err = parseTime(date); err != nil {
				return nil, wrapErr(EntityMeal, "scan", m.ID, err)
			}
			if items.Valid && items.String != "" {
				if err := json.Unmarshal([]byte(items.String), &m.Items); err != nil {
					return nil, wrapErr(EntityMeal, "decode items", m.ID, err)
				}
			}
			m.Notes = fromNullString(notes)
			meals = append(meals, m)
		}
		return meals, wrapErr(EntityMeal, "list", "", rows.Err())
	})
}

// Goals returns the stored goals of userID with progress derived.
func (d *Database) Goals(ctx context.Context, userID string) ([]models.Goal, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) ([]models.Goal, error) {
		rows, err := d.DB.QueryContext(ctx, `
			SELECT id, user_id, title, description, category, target, unit, start_date, end_date, current_value
			FROM goals
			WHERE user_id = ?
			ORDER BY id ASC`, userID)
		if err != nil {
			return nil, wrapErr(EntityGoal, "list", "", err)
		}
		defer rows.Close()

		var goals []models.Goal
		for rows.Next() {
			var (
				g           models.Goal
				description sql.NullString
				unit        sql.NullString
				start, end  sql.NullString
			)
			if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &description, &g.Category, &g.Target,
				&unit, &start, &end, &g.CurrentValue); err != nil {
				return nil, wrapErr(EntityGoal, "scan", "", err)
			}
			if g.StartDate, err = parseTime(start); err != nil {
				return nil, wrapErr(EntityGoal, "scan", g.ID, err)
			}
			if g.EndDate, err = parseTime(end); err != nil {
				return nil, wrapErr(EntityGoal, "scan", g.ID, err)
			}
			g.Description = fromNullString(description)
			g.Unit = unit.String
			g.Derive()
			goals = append(goals, g)
		}
		return goals, wrapErr(EntityGoal, "list", "", rows.Err())
	})
}

func insertWorkout(ctx context.Context, tx *sql.Tx, w models.Workout) (int, error) {
	exercises, err := json.Marshal(w.Exercises)
	if err != nil {
		return 0, wrapErr(EntityWorkout, "encode exercises", w.ID, err)
	}
	res, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO workouts (id, user_id, date, name, type, duration, calories_burned, exercises, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.UserID, formatTime(w.Date), w.Name, w.Type, w.Duration, w.CaloriesBurned,
		string(exercises), toNullableArg(w.Notes))
	return rowsInserted(res, wrapErr(EntityWorkout, "insert", w.ID, err))
}

func insertMeal(ctx context.Context, tx *sql.Tx, m models.Meal) (int, error) {
	items, err := json.Marshal(m.Items)
	if err != nil {
		return 0, wrapErr(EntityMeal, "encode items", m.ID, err)
	}
	res, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO meals (id, user_id, date, type, items, total_calories, total_protein, total_carbs, total_fat, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.UserID, formatTime(m.Date), string(m.Type), string(items),
		m.TotalCalories, m.TotalProtein, m.TotalCarbs, m.TotalFat, toNullableArg(m.Notes))
	return rowsInserted(res, wrapErr(EntityMeal, "insert", m.ID, err))
}

func insertGoal(ctx context.Context, tx *sql.Tx, g models.Goal) (int, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO goals (id, user_id, title, description, category, target, unit, start_date, end_date, current_value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.UserID, g.Title, toNullableArg(g.Description), string(g.Category), g.Target,
		nullableString(g.Unit), formatTime(g.StartDate), formatTime(g.EndDate), g.CurrentValue)
	return rowsInserted(res, wrapErr(EntityGoal, "insert", g.ID, err))
}

// redateWorkout moves an existing workout to w.Date. It reports how many rows
// changed.
func redateWorkout(ctx context.Context, tx *sql.Tx, w models.Workout) (int, error) {
	d := formatTime(w.Date)
	res, err := tx.ExecContext(ctx, `UPDATE workouts SET date = ? WHERE id = ? AND date <> ?`, d, w.ID, d)
	return rowsInserted(res, wrapErr(EntityWorkout, "redate", w.ID, err))
}

func redateMeal(ctx context.Context, tx *sql.Tx, m models.Meal) (int, error) {
	d := formatTime(m.Date)
	res, err := tx.ExecContext(ctx, `UPDATE meals SET date = ? WHERE id = ? AND date <> ?`, d, m.ID, d)
	return rowsInserted(res, wrapErr(EntityMeal, "redate", m.ID, err))
}

func redateGoal(ctx context.Context, tx *sql.Tx, g models.Goal) (int, error) {
	start, end := formatTime(g.StartDate), formatTime(g.EndDate)
	res, err := tx.ExecContext(ctx, `
		UPDATE goals SET start_date = ?, end_date = ?
		WHERE id = ? AND (start_date <> ? OR end_date <> ?)`,
		start, end, g.ID, start, end)
	return rowsInserted(res, wrapErr(EntityGoal, "redate", g.ID, err))
}

// rowsInserted reports how many rows a statement actually wrote.
func rowsInserted(res sql.Result, err error) (int, error) {
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
