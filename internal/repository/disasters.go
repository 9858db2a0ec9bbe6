package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/shambhavi-kumar59/safenet/internal/geo"
	"github.com/shambhavi-kumar59/safenet/internal/models"
)

const disasterColumns = `id, source, type, status, title, magnitude, longitude, latitude, radius_km, timestamp, created_at`

func (s *SQLiteDB) AddDisaster(ctx context.Context, d *models.Disaster) error {
	if d.Status == "" {
		d.Status = models.DisasterStatusActive
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO disasters (`+disasterColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Source, string(d.Type), string(d.Status), d.Title, d.Magnitude,
		d.Epicenter.Longitude, d.Epicenter.Latitude, d.RadiusKm,
		d.Timestamp.UnixMilli(), d.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("error inserting disaster %s: %w", d.ID, err)
	}
	return nil
}

func (s *SQLiteDB) GetDisaster(ctx context.Context, id string) (*models.Disaster, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+disasterColumns+` FROM disasters WHERE id = ?`, id)
	d, err := scanDisaster(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("disaster %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error querying disaster %s: %w", id, err)
	}
	return d, nil
}

func (s *SQLiteDB) DisasterExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM disasters WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking disaster %s: %w", id, err)
	}
	return exists, nil
}

// ListActiveDisastersNear returns active disasters whose epicenter lies within
// opts.MaxDistanceKm of opts.Center, closest first.
func (s *SQLiteDB) ListActiveDisastersNear(ctx context.Context, opts DisasterFilter) ([]models.Disaster, error) {
	query := `SELECT ` + disasterColumns + ` FROM disasters WHERE status = ?`
	args := []any{string(models.DisasterStatusActive)}

	if opts.MaxDistanceKm > 0 {
		min, max := geo.BoundingBox(opts.Center, opts.MaxDistanceKm)
		query += ` AND longitude BETWEEN ? AND ? AND latitude BETWEEN ? AND ?`
		args = append(args, min.Longitude, max.Longitude, min.Latitude, max.Latitude)
	}
	if opts.Type != nil {
		query += ` AND type = ?`
		args = append(args, string(*opts.Type))
	}
	query += ` ORDER BY timestamp DESC, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying disasters: %w", err)
	}
	defer rows.Close()

	var disasters []models.Disaster
	for rows.Next() {
		d, err := scanDisaster(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning disaster: %w", err)
		}
		if opts.MaxDistanceKm > 0 && geo.Distance(opts.Center, d.Epicenter) > opts.MaxDistanceKm {
			continue
		}
		disasters = append(disasters, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating disasters: %w", err)
	}

	slices.SortStableFunc(disasters, func(a, b models.Disaster) int {
		da, db := geo.Distance(opts.Center, a.Epicenter), geo.Distance(opts.Center, b.Epicenter)
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})
	return disasters, nil
}

func scanDisaster(row rowScanner) (*models.Disaster, error) {
	var (
		d         models.Disaster
		typ       string
		status    string
		magnitude sql.NullFloat64
		radius    sql.NullFloat64
		timestamp sql.NullInt64
		createdAt sql.NullInt64
	)
	err := row.Scan(&d.ID, &d.Source, &typ, &status, &d.Title, &magnitude,
		&d.Epicenter.Longitude, &d.Epicenter.Latitude, &radius, &timestamp, &createdAt)
	if err != nil {
		return nil, err
	}

	d.Type = models.DisasterType(typ)
	d.Status = models.DisasterStatus(status)
	d.Magnitude = magnitude.Float64
	d.RadiusKm = radius.Float64
	d.Timestamp = fromMillis(timestamp)
	d.CreatedAt = fromMillis(createdAt)
	return &d, nil
}
