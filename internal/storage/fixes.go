package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Fix is the outcome of one repair attempt on a scan.
type Fix struct {
	FixID         string
	ScanID        string
	CreatedAt     time.Time
	InputNotation string
	Notation      string

	// Score is nil when no solvable notation was found.
	Score      *float64
	InputScore *float64

	State           string
	Depth           int
	Swaps           string // "i-j" pairs separated by spaces
	DepthsCompleted int
	Exhaustive      bool
	Evaluated       int
	Found           bool
	DurationMs      int64
}

// FixRepository stores repair outcomes.
type FixRepository struct {
	db *DB
}

// NewFixRepository creates a new fix repository.
func NewFixRepository(db *DB) *FixRepository {
	return &FixRepository{db: db}
}

// Create stores f and returns its new ID.
func (r *FixRepository) Create(f Fix) (string, error) {
	id := uuid.New().String()
	createdAt := time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO fixes (
			fix_id, scan_id, created_at, input_notation, notation, score, input_score,
			state, depth, swaps, depths_completed, exhaustive, evaluated, found, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, f.ScanID, createdAt.Format(time.RFC3339Nano), f.InputNotation, f.Notation, f.Score, f.InputScore,
		f.State, f.Depth, f.Swaps, f.DepthsCompleted, f.Exhaustive, f.Evaluated, f.Found, f.DurationMs)

	if err != nil {
		return "", fmt.Errorf("failed to create fix: %w", err)
	}
	return id, nil
}

// ListForScan returns the fixes recorded for a scan, oldest first.
func (r *FixRepository) ListForScan(scanID string) ([]Fix, error) {
	rows, err := r.db.Query(`
		SELECT fix_id, scan_id, created_at, input_notation, notation, score, input_score,
			state, depth, swaps, depths_completed, exhaustive, evaluated, found, duration_ms
		FROM fixes
		WHERE scan_id = ?
		ORDER BY created_at, rowid
	`, scanID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fixes: %w", err)
	}
	defer rows.Close()

	var fixes []Fix
	for rows.Next() {
		var f Fix
		var createdAtStr string
		var score, inputScore sql.NullFloat64

		err := rows.Scan(
			&f.FixID, &f.ScanID, &createdAtStr, &f.InputNotation, &f.Notation, &score, &inputScore,
			&f.State, &f.Depth, &f.Swaps, &f.DepthsCompleted, &f.Exhaustive, &f.Evaluated, &f.Found, &f.DurationMs,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fix: %w", err)
		}

		f.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAtStr)
		if score.Valid {
			f.Score = &score.Float64
		}
		if inputScore.Valid {
			f.InputScore = &inputScore.Float64
		}
		fixes = append(fixes, f)
	}
	return fixes, rows.Err()
}

// Stats summarises the repair history.
type Stats struct {
	Scans     int
	Fixes     int
	Found     int
	MeanDepth float64
}

// GetStats returns aggregate counts over all scans and fixes.
func (r *FixRepository) GetStats() (Stats, error) {
	var s Stats
	var meanDepth sql.NullFloat64
	err := r.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM scans),
			COUNT(*),
			COALESCE(SUM(found), 0),
			AVG(CASE WHEN found = 1 AND depth >= 0 THEN depth END)
		FROM fixes
	`).Scan(&s.Scans, &s.Fixes, &s.Found, &meanDepth)
	if err != nil {
		return s, fmt.Errorf("failed to get stats: %w", err)
	}
	s.MeanDepth = meanDepth.Float64
	return s, nil
}
