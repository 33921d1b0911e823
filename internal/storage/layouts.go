package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Point is a 2D value as stored in a layout.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// BodySpec is one body of a saved layout. Points are local to Position.
type BodySpec struct {
	Points   []Point `yaml:"points"`
	Position Point   `yaml:"position"`
	Speed    Point   `yaml:"speed"`
}

// Layout is a named set of bodies that can be restored into a scene.
type Layout struct {
	Name      string
	Bodies    []BodySpec
	CreatedAt time.Time
}

// SaveLayout stores a layout, replacing any layout with the same name.
func (s *Store) SaveLayout(l Layout) error {
	if l.Name == "" {
		return fmt.Errorf("storage: layout name must not be empty")
	}

	data, err := yaml.Marshal(l.Bodies)
	if err != nil {
		return fmt.Errorf("storage: cannot encode layout %q: %w", l.Name, err)
	}

	_, err = s.db.Exec(
		`INSERT INTO layouts (name, bodies) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET bodies = excluded.bodies, created_at = CURRENT_TIMESTAMP`,
		l.Name, string(data),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save layout %q: %w", l.Name, err)
	}
	return nil
}

// LoadLayout retrieves a layout by name. Returns ErrLayoutNotFound when absent.
func (s *Store) LoadLayout(name string) (*Layout, error) {
	var data string
	var createdAt any

	err := s.db.QueryRow(
		"SELECT bodies, created_at FROM layouts WHERE name = ?",
		name,
	).Scan(&data, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %q", ErrLayoutNotFound, name)
		}
		return nil, fmt.Errorf("storage: cannot query layout %q: %w", name, err)
	}

	l := &Layout{Name: name, CreatedAt: parseTime(createdAt)}
	if err := yaml.Unmarshal([]byte(data), &l.Bodies); err != nil {
		return nil, fmt.Errorf("storage: cannot decode layout %q: %w", name, err)
	}
	return l, nil
}

// LayoutInfo summarises a saved layout without its bodies.
type LayoutInfo struct {
	Name      string
	Bodies    int
	CreatedAt time.Time
}

// ListLayouts returns every saved layout sorted by name.
func (s *Store) ListLayouts() ([]LayoutInfo, error) {
	rows, err := s.db.Query("SELECT name, bodies, created_at FROM layouts ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query layouts: %w", err)
	}
	defer rows.Close()

	var infos []LayoutInfo
	for rows.Next() {
		var info LayoutInfo
		var data string
		var createdAt any
		if err := rows.Scan(&info.Name, &data, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		var bodies []BodySpec
		if err := yaml.Unmarshal([]byte(data), &bodies); err == nil {
			info.Bodies = len(bodies)
		}
		info.CreatedAt = parseTime(createdAt)
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return infos, nil
}

// DeleteLayout removes a layout by name. Returns ErrLayoutNotFound when absent.
func (s *Store) DeleteLayout(name string) error {
	res, err := s.db.Exec("DELETE FROM layouts WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("storage: cannot delete layout %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete layout %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrLayoutNotFound, name)
	}
	return nil
}
