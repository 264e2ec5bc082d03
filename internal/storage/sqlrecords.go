package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/julianstephens/daypad/internal/constants"
	"github.com/julianstephens/daypad/internal/models"
)

// SQLRecords implements the record and preference parts of Provider over
// any sqlx database whose schema comes from the embedded migrations.
// Timestamps travel as RFC3339 strings so TEXT (sqlite) and TIMESTAMPTZ
// (postgres) columns both round-trip.
type SQLRecords struct {
	DB *sqlx.DB
}

type dayRow struct {
	Date  string `db:"date"`
	Notes string `db:"notes"`
}

type todoRow struct {
	Date          string `db:"date"`
	ID            string `db:"id"`
	Position      int    `db:"position"`
	Text          string `db:"text"`
	Completed     bool   `db:"completed"`
	Notes         string `db:"notes"`
	CreatedAt     string `db:"created_at"`
	MoveToNextDay bool   `db:"move_to_next_day"`
}

const insertTodo = `
	INSERT INTO todos (date, id, position, text, completed, notes, created_at, move_to_next_day)
	VALUES (:date, :id, :position, :text, :completed, :notes, :created_at, :move_to_next_day)`

func (r SQLRecords) ready() error {
	if r.DB == nil {
		return ErrNotInitialized
	}
	return nil
}

func (r SQLRecords) LoadRecord(ctx context.Context, date string) (models.DayRecord, error) {
	if err := r.ready(); err != nil {
		return models.DayRecord{}, err
	}
	rec := models.EmptyDayRecord(date)

	var day dayRow
	err := r.DB.GetContext(ctx, &day, r.DB.Rebind("SELECT date, notes FROM days WHERE date = ?"), date)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, nil
	}
	if err != nil {
		return models.DayRecord{}, fmt.Errorf("query day %s: %w", date, err)
	}
	rec.Notes = day.Notes

	var rows []todoRow
	err = r.DB.SelectContext(ctx, &rows, r.DB.Rebind(`
		SELECT date, id, position, text, completed, notes, created_at, move_to_next_day
		FROM todos WHERE date = ? ORDER BY position`), date)
	if err != nil {
		return models.DayRecord{}, fmt.Errorf("query todos for %s: %w", date, err)
	}

	for _, row := range rows {
		createdAt, err := time.Parse(time.RFC3339Nano, row.CreatedAt)
		if err != nil {
			return models.DayRecord{}, fmt.Errorf("parse created_at for task %s: %w", row.ID, err)
		}
		rec.Todos = append(rec.Todos, models.TaskItem{
			ID:            row.ID,
			Text:          row.Text,
			Completed:     row.Completed,
			Notes:         row.Notes,
			CreatedAt:     createdAt,
			MoveToNextDay: row.MoveToNextDay,
		})
	}
	return rec, nil
}

// SaveRecord replaces the day and all of its todos in one transaction.
func (r SQLRecords) SaveRecord(ctx context.Context, rec models.DayRecord) error {
	if err := r.ready(); err != nil {
		return err
	}

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO days (date, notes, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (date) DO UPDATE SET notes = excluded.notes, updated_at = excluded.updated_at`),
		rec.Date, rec.Notes, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("upsert day %s: %w", rec.Date, err)
	}

	if _, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM todos WHERE date = ?"), rec.Date); err != nil {
		return fmt.Errorf("clear todos for %s: %w", rec.Date, err)
	}

	for i, t := range rec.Todos {
		row := todoRow{
			Date:          rec.Date,
			ID:            t.ID,
			Position:      i,
			Text:          t.Text,
			Completed:     t.Completed,
			Notes:         t.Notes,
			CreatedAt:     t.CreatedAt.UTC().Format(time.RFC3339Nano),
			MoveToNextDay: t.MoveToNextDay,
		}
		if _, err := tx.NamedExecContext(ctx, insertTodo, row); err != nil {
			return fmt.Errorf("insert task %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit day %s: %w", rec.Date, err)
	}
	return nil
}

func (r SQLRecords) ListDates(ctx context.Context) ([]string, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	var dates []string
	if err := r.DB.SelectContext(ctx, &dates, "SELECT date FROM days ORDER BY date"); err != nil {
		return nil, fmt.Errorf("list dates: %w", err)
	}
	return dates, nil
}

func (r SQLRecords) GetPreferences(ctx context.Context) (models.Preferences, error) {
	if err := r.ready(); err != nil {
		return models.Preferences{}, err
	}

	rows, err := r.DB.QueryxContext(ctx, "SELECT key, value FROM preferences")
	if err != nil {
		return models.Preferences{}, fmt.Errorf("query preferences: %w", err)
	}
	defer rows.Close()

	prefs := models.DefaultPreferences()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Preferences{}, err
		}
		switch key {
		case constants.PrefZoom:
			z, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return models.Preferences{}, fmt.Errorf("parsing %s: %w", constants.PrefZoom, err)
			}
			prefs.Zoom = z
		case constants.PrefTheme:
			prefs.Theme = value
		}
	}
	if err := rows.Err(); err != nil {
		return models.Preferences{}, err
	}
	return prefs.Normalize(), nil
}

func (r SQLRecords) SavePreferences(ctx context.Context, prefs models.Preferences) error {
	if err := r.ready(); err != nil {
		return err
	}
	prefs = prefs.Normalize()

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	upsert := tx.Rebind(`
		INSERT INTO preferences (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`)
	values := map[string]string{
		constants.PrefZoom:  strconv.FormatFloat(prefs.Zoom, 'f', 1, 64),
		constants.PrefTheme: prefs.Theme,
	}
	for k, v := range values {
		if _, err := tx.ExecContext(ctx, upsert, k, v); err != nil {
			return fmt.Errorf("save preference %s: %w", k, err)
		}
	}
	return tx.Commit()
}
