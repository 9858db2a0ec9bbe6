package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shambhavi-kumar59/safenet/internal/models"
)

var ErrNotFound = errors.New("not found")

// RouteFilter selects routes whose start lies within MaxDistanceKm of Center.
type RouteFilter struct {
	Center        models.Coordinate
	MaxDistanceKm float64
	Type          *models.DisasterType
	Status        *models.RouteStatus
	Limit         int
}

type DisasterFilter struct {
	Center        models.Coordinate
	MaxDistanceKm float64
	Type          *models.DisasterType
}

type RouteRepository interface {
	AddRoute(ctx context.Context, r *models.Route) error
	GetRoute(ctx context.Context, id string) (*models.Route, error)
	ListRoutesNear(ctx context.Context, opts RouteFilter) ([]models.Route, error)
	UpdateRouteStatus(ctx context.Context, id string, status models.RouteStatus, reportedBy string, at time.Time) (*models.Route, error)
	ListStatusUpdates(ctx context.Context, routeID string) ([]models.StatusUpdate, error)
}

type DisasterRepository interface {
	AddDisaster(ctx context.Context, d *models.Disaster) error
	GetDisaster(ctx context.Context, id string) (*models.Disaster, error)
	DisasterExists(ctx context.Context, id string) (bool, error)
	ListActiveDisastersNear(ctx context.Context, opts DisasterFilter) ([]models.Disaster, error)
}
