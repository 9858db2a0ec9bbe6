package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shambhavi-kumar59/safenet/internal/geo"
	"github.com/shambhavi-kumar59/safenet/internal/models"
)

const routeColumns = `id, disaster_type, start_name, start_lon, start_lat, safe_name, safe_lon, safe_lat,
	waypoints, capacity, current_users, status, last_updated`

// AddRoute stores r, assigning a new ID when r.ID is empty.
func (s *SQLiteDB) AddRoute(ctx context.Context, r *models.Route) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = models.RouteStatusOpen
	}

	waypoints := r.Waypoints
	if waypoints == nil {
		waypoints = []models.Waypoint{}
	}
	wp, err := json.Marshal(waypoints)
	if err != nil {
		return fmt.Errorf("error encoding waypoints: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO routes (`+routeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, string(r.DisasterType),
		r.Start.Name, r.Start.Longitude, r.Start.Latitude,
		r.Safe.Name, r.Safe.Longitude, r.Safe.Latitude,
		string(wp), r.Capacity, r.CurrentUsers, string(r.Status), toMillis(r.LastUpdated),
	)
	if err != nil {
		return fmt.Errorf("error inserting route %s: %w", r.ID, err)
	}
	return nil
}

func (s *SQLiteDB) GetRoute(ctx context.Context, id string) (*models.Route, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+routeColumns+` FROM routes WHERE id = ?`, id)
	r, err := scanRoute(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("route %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error querying route %s: %w", id, err)
	}
	return r, nil
}

// ListRoutesNear returns routes matching opts ordered by the distance from
// opts.Center to their start. A non-positive MaxDistanceKm disables the
// distance limit.
func (s *SQLiteDB) ListRoutesNear(ctx context.Context, opts RouteFilter) ([]models.Route, error) {
	var (
		where []string
		args  []any
	)
	if opts.MaxDistanceKm > 0 {
		min, max := geo.BoundingBox(opts.Center, opts.MaxDistanceKm)
		where = append(where, "start_lon BETWEEN ? AND ?", "start_lat BETWEEN ? AND ?")
		args = append(args, min.Longitude, max.Longitude, min.Latitude, max.Latitude)
	}
	if opts.Type != nil {
		where = append(where, "disaster_type = ?")
		args = append(args, string(*opts.Type))
	}
	if opts.Status != nil {
		where = append(where, "status = ?")
		args = append(args, string(*opts.Status))
	}

	query := `SELECT ` + routeColumns + ` FROM routes`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying routes: %w", err)
	}
	defer rows.Close()

	type candidate struct {
		route models.Route
		km    float64
	}
	var candidates []candidate
	for rows.Next() {
		r, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning route: %w", err)
		}
		km := geo.Distance(opts.Center, r.Start.Coordinate)
		if opts.MaxDistanceKm > 0 && km > opts.MaxDistanceKm {
			continue
		}
		candidates = append(candidates, candidate{route: *r, km: km})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating routes: %w", err)
	}

	slices.SortStableFunc(candidates, func(a, b candidate) int {
		switch {
		case a.km < b.km:
			return -1
		case a.km > b.km:
			return 1
		}
		return 0
	})
	if opts.Limit > 0 && len(candidates) > opts.Limit {
		candidates = candidates[:opts.Limit]
	}

	routes := make([]models.Route, len(candidates))
	for i, c := range candidates {
		routes[i] = c.route
	}
	return routes, nil
}

// UpdateRouteStatus sets the route status, stamps it as updated at `at` and
// records the change in the route's status history.
func (s *SQLiteDB) UpdateRouteStatus(ctx context.Context, id string, status models.RouteStatus, reportedBy string, at time.Time) (*models.Route, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE routes SET status = ?, last_updated = ? WHERE id = ?`,
		string(status), toMillis(at), id)
	if err != nil {
		return nil, fmt.Errorf("error updating route %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("error reading rows affected: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("route %s: %w", id, ErrNotFound)
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO route_status_updates (id, route_id, status, reported_by, created_at)
		VALUES (?, ?, ?, ?, ?)`, uuid.NewString(), id, string(status), reportedBy, toMillis(at))
	if err != nil {
		return nil, fmt.Errorf("error recording status update for %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing status update: %w", err)
	}

	return s.GetRoute(ctx, id)
}

// ListStatusUpdates returns the status history of a route, oldest first.
func (s *SQLiteDB) ListStatusUpdates(ctx context.Context, routeID string) ([]models.StatusUpdate, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, route_id, status, reported_by, created_at
		FROM route_status_updates WHERE route_id = ? ORDER BY created_at, rowid`, routeID)
	if err != nil {
		return nil, fmt.Errorf("error querying status updates: %w", err)
	}
	defer rows.Close()

	var updates []models.StatusUpdate
	for rows.Next() {
		var (
			u          models.StatusUpdate
			status     string
			reportedBy sql.NullString
			createdAt  sql.NullInt64
		)
		if err := rows.Scan(&u.ID, &u.RouteID, &status, &reportedBy, &createdAt); err != nil {
			return nil, fmt.Errorf("error scanning status update: %w", err)
		}
		u.Status = models.RouteStatus(status)
		u.ReportedBy = reportedBy.String
		u.Timestamp = fromMillis(createdAt)
		updates = append(updates, u)
	}
	return updates, rows.Err()
}

func scanRoute(row rowScanner) (*models.Route, error) {
	var (
		r           models.Route
		disaster    string
		status      string
		waypoints   string
		lastUpdated sql.NullInt64
	)
	err := row.Scan(
		&r.ID, &disaster,
		&r.Start.Name, &r.Start.Longitude, &r.Start.Latitude,
		&r.Safe.Name, &r.Safe.Longitude, &r.Safe.Latitude,
		&waypoints, &r.Capacity, &r.CurrentUsers, &status, &lastUpdated,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(waypoints), &r.Waypoints); err != nil {
		return nil, fmt.Errorf("error decoding waypoints for route %s: %w", r.ID, err)
	}
	r.DisasterType = models.DisasterType(disaster)
	r.Status = models.RouteStatus(status)
	r.LastUpdated = fromMillis(lastUpdated)
	return &r, nil
}
