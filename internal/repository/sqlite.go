package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/mr1hm/go-hazard-tools/internal/models"
)

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating to database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS hazards (
			id TEXT PRIMARY KEY,
			hazard_type TEXT NOT NULL,
			severity INTEGER,
			location TEXT NOT NULL,
			status TEXT NOT NULL,
			description TEXT,
			images TEXT,
			created_at TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_hazards_location ON hazards(location);
		CREATE INDEX IF NOT EXISTS idx_hazards_type ON hazards(hazard_type);
		CREATE INDEX IF NOT EXISTS idx_hazards_status ON hazards(status);
  	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

const hazardColumns = "id, hazard_type, severity, location, status, description, images, created_at"

func (s *SQLiteDB) Add(ctx context.Context, h *models.Hazard) error {
	var images any
	if len(h.Images) > 0 {
		b, err := json.Marshal(h.Images)
		if err != nil {
			return fmt.Errorf("error encoding images: %w", err)
		}
		images = string(b)
	}

	var severity any
	if h.Severity != nil {
		severity = *h.Severity
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO hazards (`+hazardColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.HazardType, severity, h.Location, h.Status,
		nullIfEmpty(h.Description), images, nullIfEmpty(h.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("error inserting hazard: %w", err)
	}
	return nil
}

func (s *SQLiteDB) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM hazards WHERE id = ?", id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("error checking hazard existence: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteDB) GetByID(ctx context.Context, id string) (*models.Hazard, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+hazardColumns+" FROM hazards WHERE id = ? LIMIT 1", id)

	h, err := scanHazard(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching hazard: %w", err)
	}
	return h, nil
}

func (s *SQLiteDB) ListByLocation(ctx context.Context, location string, limit int) ([]models.Hazard, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+hazardColumns+" FROM hazards WHERE location = ? LIMIT ?", location, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing hazards: %w", err)
	}
	defer rows.Close()
	return collectHazards(rows)
}

func (s *SQLiteDB) TopSevereByLocation(ctx context.Context, location string, limit int) ([]models.Hazard, error) {
	// A NULL severity sorts as the default assumed everywhere else. created_at
	// is ISO-8601-ish text, which orders chronologically as a string.
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+hazardColumns+` FROM hazards
		WHERE location = ?
		ORDER BY COALESCE(severity, ?) DESC, created_at DESC
		LIMIT ?`, location, models.DefaultSeverity, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing severe hazards: %w", err)
	}
	defer rows.Close()
	return collectHazards(rows)
}

func (s *SQLiteDB) Locations(ctx context.Context, filter string) ([]string, error) {
	query := "SELECT location FROM hazards"
	args := []any{}
	if filter != "" {
		query += " WHERE instr(lower(location), lower(?)) > 0"
		args = append(args, filter)
	}
	return s.projectColumn(ctx, query, args...)
}

func (s *SQLiteDB) HazardTypes(ctx context.Context, location string) ([]string, error) {
	query := "SELECT hazard_type FROM hazards"
	args := []any{}
	if location != "" {
		query += " WHERE location = ?"
		args = append(args, location)
	}
	return s.projectColumn(ctx, query, args...)
}

func (s *SQLiteDB) Statuses(ctx context.Context, location string) ([]string, error) {
	query := "SELECT status FROM hazards"
	args := []any{}
	if location != "" {
		query += " WHERE location = ?"
		args = append(args, location)
	}
	return s.projectColumn(ctx, query, args...)
}

func (s *SQLiteDB) projectColumn(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error projecting column: %w", err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("error scanning column value: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHazard(row rowScanner) (*models.Hazard, error) {
	var (
		h           models.Hazard
		severity    sql.NullInt64
		description sql.NullString
		images      sql.NullString
		createdAt   sql.NullString
	)
	err := row.Scan(&h.ID, &h.HazardType, &severity, &h.Location, &h.Status,
		&description, &images, &createdAt)
	if err != nil {
		return nil, err
	}

	if severity.Valid {
		v := int(severity.Int64)
		h.Severity = &v
	}
	h.Description = description.String
	h.CreatedAt = createdAt.String
	if images.Valid && images.String != "" {
		if err := json.Unmarshal([]byte(images.String), &h.Images); err != nil {
			return nil, fmt.Errorf("error decoding images: %w", err)
		}
	}
	return &h, nil
}

func collectHazards(rows *sql.Rows) ([]models.Hazard, error) {
	var hazards []models.Hazard
	for rows.Next() {
		h, err := scanHazard(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning hazard: %w", err)
		}
		hazards = append(hazards, *h)
	}
	return hazards, rows.Err()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
