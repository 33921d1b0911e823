package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is a finished simulation session.
type Run struct {
	ID            string // UUID, assigned by SaveRun when empty
	SceneID       string
	AxisMode      string
	Ticks         uint64
	Bodies        int
	PeakColliding int
	CreatedAt     time.Time
}

// SceneStats aggregates every run of a scene.
type SceneStats struct {
	SceneID       string
	Runs          int
	TotalTicks    int64
	PeakColliding int
	AvgBodies     float64
	LastRun       time.Time
}

// SaveRun records a finished run and returns its id.
func (s *Store) SaveRun(run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.AxisMode == "" {
		run.AxisMode = "first"
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, scene_id, axis_mode, ticks, bodies, peak_colliding)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.SceneID, run.AxisMode, int64(run.Ticks), run.Bodies, run.PeakColliding,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return run.ID, nil
}

// RecentRuns retrieves the most recent runs, newest first. An empty sceneID
// matches every scene.
func (s *Store) RecentRuns(sceneID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT run_id, scene_id, axis_mode, ticks, bodies, peak_colliding, created_at
		 FROM runs
		 WHERE ? = '' OR scene_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		sceneID, sceneID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ticks int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SceneID, &r.AxisMode, &ticks, &r.Bodies, &r.PeakColliding, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Ticks = uint64(ticks)
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RunByID retrieves a single run. Returns nil when no run has the id.
func (s *Store) RunByID(id string) (*Run, error) {
	var r Run
	var ticks int64
	var createdAt any

	err := s.db.QueryRow(
		`SELECT run_id, scene_id, axis_mode, ticks, bodies, peak_colliding, created_at
		 FROM runs WHERE run_id = ?`,
		id,
	).Scan(&r.ID, &r.SceneID, &r.AxisMode, &ticks, &r.Bodies, &r.PeakColliding, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}

	r.Ticks = uint64(ticks)
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// SceneStats retrieves aggregated statistics for a specific scene.
func (s *Store) SceneStats(sceneID string) (*SceneStats, error) {
	stats := &SceneStats{SceneID: sceneID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(ticks), 0), COALESCE(MAX(peak_colliding), 0), COALESCE(AVG(bodies), 0)
		 FROM runs WHERE scene_id = ?`,
		sceneID,
	).Scan(&stats.Runs, &stats.TotalTicks, &stats.PeakColliding, &stats.AvgBodies)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scene stats: %w", err)
	}

	var lastRun any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE scene_id = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		sceneID,
	).Scan(&lastRun)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last run: %w", err)
	}
	if err == nil {
		stats.LastRun = parseTime(lastRun)
	}

	return stats, nil
}

// ClearRuns deletes all runs of the given scene.
func (s *Store) ClearRuns(sceneID string) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE scene_id = ?", sceneID); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
