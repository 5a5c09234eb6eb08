package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/planner/internal/domain"
)

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// nullableDate converts a Date to a value suitable for SQLite storage: NULL
// for the zero Date, otherwise YYYY-MM-DD.
func nullableDate(d domain.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.String()
}

func parseNullableDate(s sql.NullString, column string) (domain.Date, error) {
	if !s.Valid || s.String == "" {
		return domain.Date{}, nil
	}
	d, err := domain.ParseDate(s.String)
	if err != nil {
		return domain.Date{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return d, nil
}

// nullableID stores 0 as NULL.
func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

// timestampLayout is fixed-width so stored timestamps sort lexically.
const timestampLayout = "2006-01-02T15:04:05.000000Z07:00"

func formatTimestamp(ts domain.Timestamp) string {
	return ts.UTC().Format(timestampLayout)
}

func parseTimestamp(s, column string) (domain.Timestamp, error) {
	ts, err := domain.ParseTimestamp(s)
	if err != nil {
		return domain.Timestamp{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return ts, nil
}

// notFound maps sql.ErrNoRows to domain.ErrNotFound.
func notFound(err error, what string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", what, id, domain.ErrNotFound)
	}
	return fmt.Errorf("scanning %s: %w", what, err)
}

// requireAffected reports ErrNotFound when an UPDATE or DELETE matched no row.
func requireAffected(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking %s rows: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", what, id, domain.ErrNotFound)
	}
	return nil
}
