package api

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/shambhavi-kumar59/safenet/internal/models"
)

var validate = validator.New()

// Pointers distinguish a missing coordinate from a legitimate zero.

type RoutesQuery struct {
	Lng          *float64 `form:"lng" validate:"required,min=-180,max=180"`
	Lat          *float64 `form:"lat" validate:"required,min=-90,max=90"`
	DisasterType string   `form:"disaster_type" validate:"required,oneof=earthquake flood wildfire hurricane tornado"`
	Format       string   `form:"format" validate:"omitempty,oneof=json geojson"`
}

func (q RoutesQuery) Location() models.Coordinate {
	return models.Coordinate{Longitude: *q.Lng, Latitude: *q.Lat}
}

type ZonesQuery struct {
	Lng      *float64 `form:"lng" validate:"required,min=-180,max=180"`
	Lat      *float64 `form:"lat" validate:"required,min=-90,max=90"`
	RadiusKm float64  `form:"radius_km" validate:"required,gt=0,max=1000"`
}

type PointRequest struct {
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Name      string   `json:"name" validate:"required,max=200"`
}

func (p PointRequest) NamedPoint() models.NamedPoint {
	return models.NamedPoint{
		Coordinate: models.Coordinate{Longitude: *p.Longitude, Latitude: *p.Latitude},
		Name:       p.Name,
	}
}

type WaypointRequest struct {
	Longitude    *float64 `json:"longitude" validate:"required,min=-180,max=180"`
	Latitude     *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Name         string   `json:"name" validate:"max=200"`
	Instructions string   `json:"instructions" validate:"max=1000"`
}

type CreateRouteRequest struct {
	DisasterType string            `json:"disaster_type" validate:"required,oneof=earthquake flood wildfire hurricane tornado"`
	Start        PointRequest      `json:"start_location"`
	Safe         PointRequest      `json:"safe_location"`
	Waypoints    []WaypointRequest `json:"waypoints" validate:"omitempty,max=500,dive"`
	Capacity     int               `json:"capacity" validate:"required,min=1"`
	CurrentUsers int               `json:"current_users" validate:"min=0"`
	Status       string            `json:"status" validate:"omitempty,oneof=open closed congested"`
}

func (r CreateRouteRequest) Route() models.Route {
	route := models.Route{
		DisasterType: models.DisasterType(r.DisasterType),
		Start:        r.Start.NamedPoint(),
		Safe:         r.Safe.NamedPoint(),
		Waypoints:    make([]models.Waypoint, 0, len(r.Waypoints)),
		Capacity:     r.Capacity,
		CurrentUsers: r.CurrentUsers,
		Status:       models.RouteStatus(r.Status),
	}
	for _, wp := range r.Waypoints {
		route.Waypoints = append(route.Waypoints, models.Waypoint{
			Coordinate:   models.Coordinate{Longitude: *wp.Longitude, Latitude: *wp.Latitude},
			Name:         wp.Name,
			Instructions: wp.Instructions,
		})
	}
	return route
}

// CreateDisasterRequest lets an operator declare an incident no public feed
// reports, such as a tornado.
type CreateDisasterRequest struct {
	Type      string   `json:"type" validate:"required,oneof=earthquake flood wildfire hurricane tornado"`
	Title     string   `json:"title" validate:"required,max=300"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	RadiusKm  float64  `json:"radius_km" validate:"omitempty,gt=0,max=1000"`
	Magnitude float64  `json:"magnitude" validate:"min=0"`
}

func (r CreateDisasterRequest) Disaster(id string, now time.Time) models.Disaster {
	return models.Disaster{
		ID:        id,
		Source:    "operator",
		Type:      models.DisasterType(r.Type),
		Status:    models.DisasterStatusActive,
		Title:     r.Title,
		Magnitude: r.Magnitude,
		Epicenter: models.Coordinate{Longitude: *r.Longitude, Latitude: *r.Latitude},
		RadiusKm:  r.RadiusKm,
		Timestamp: now,
		CreatedAt: now,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open closed congested"`
	UserID string `json:"user_id" validate:"max=200"`
}
