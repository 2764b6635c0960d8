package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Scan is one recorded set of 54 samples and the notation classified from it.
type Scan struct {
	ScanID    string
	CreatedAt time.Time
	Source    *string // file the samples were imported from, if any
	Samples   string  // flat scan file text
	Notation  string
	Valid     bool
	Solvable  bool
	Cause     *string
	Notes     *string

	// CorrectedNotation is set when the notation was edited by hand.
	CorrectedNotation *string
}

// ScanRepository provides CRUD operations for scans.
type ScanRepository struct {
	db *DB
}

// NewScanRepository creates a new scan repository.
func NewScanRepository(db *DB) *ScanRepository {
	return &ScanRepository{db: db}
}

// Create stores s and returns its new ID. ScanID and CreatedAt are assigned
// here; values already on s are ignored.
func (r *ScanRepository) Create(s Scan) (string, error) {
	id := uuid.New().String()
	createdAt := time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO scans (scan_id, created_at, source, samples, notation, valid, solvable, cause, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, createdAt.Format(time.RFC3339Nano), s.Source, s.Samples, s.Notation, s.Valid, s.Solvable, s.Cause, s.Notes)

	if err != nil {
		return "", fmt.Errorf("failed to create scan: %w", err)
	}

	return id, nil
}

// SetCorrected records a hand-edited notation for a scan.
func (r *ScanRepository) SetCorrected(scanID, notation string) error {
	res, err := r.db.Exec("UPDATE scans SET corrected_notation = ? WHERE scan_id = ?", notation, scanID)
	if err != nil {
		return fmt.Errorf("failed to update scan: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("scan %s not found", scanID)
	}
	return nil
}

const scanColumns = `scan_id, created_at, source, samples, notation, valid, solvable, cause, notes, corrected_notation`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScan(row rowScanner) (*Scan, error) {
	var s Scan
	var createdAtStr string
	err := row.Scan(
		&s.ScanID, &createdAtStr, &s.Source, &s.Samples, &s.Notation,
		&s.Valid, &s.Solvable, &s.Cause, &s.Notes, &s.CorrectedNotation,
	)
	if err != nil {
		return nil, err
	}
	s.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAtStr)
	return &s, nil
}

// Get retrieves a scan by ID. It returns nil, nil when no scan matches.
func (r *ScanRepository) Get(scanID string) (*Scan, error) {
	s, err := scanScan(r.db.QueryRow(`SELECT `+scanColumns+` FROM scans WHERE scan_id = ?`, scanID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan: %w", err)
	}
	return s, nil
}

// GetLast retrieves the most recent scan.
func (r *ScanRepository) GetLast() (*Scan, error) {
	s, err := scanScan(r.db.QueryRow(`SELECT ` + scanColumns + ` FROM scans ORDER BY created_at DESC, rowid DESC LIMIT 1`))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last scan: %w", err)
	}
	return s, nil
}

// List retrieves recent scans, newest first.
func (r *ScanRepository) List(limit int) ([]Scan, error) {
	rows, err := r.db.Query(`
		SELECT `+scanColumns+`
		FROM scans
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	defer rows.Close()

	var scans []Scan
	for rows.Next() {
		s, err := scanScan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		scans = append(scans, *s)
	}
	return scans, rows.Err()
}

// Delete deletes a scan and its fixes.
func (r *ScanRepository) Delete(scanID string) error {
	_, err := r.db.Exec("DELETE FROM scans WHERE scan_id = ?", scanID)
	if err != nil {
		return fmt.Errorf("failed to delete scan: %w", err)
	}
	return nil
}
