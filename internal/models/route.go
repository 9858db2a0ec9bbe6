package models

import (
	"slices"
	"time"
)

type RouteStatus string

const (
	RouteStatusOpen      RouteStatus = "open"
	RouteStatusClosed    RouteStatus = "closed"
	RouteStatusCongested RouteStatus = "congested"
)

func (s RouteStatus) Valid() bool {
	switch s {
	case RouteStatusOpen, RouteStatusClosed, RouteStatusCongested:
		return true
	}
	return false
}

// Route is a predefined evacuation path from a start point to a safe location.
type Route struct {
	ID           string       `json:"id"`
	DisasterType DisasterType `json:"disaster_type"`
	Start        NamedPoint   `json:"start_location"`
	Safe         NamedPoint   `json:"safe_location"`
	Waypoints    []Waypoint   `json:"waypoints"`
	Capacity     int          `json:"capacity"`
	CurrentUsers int          `json:"current_users"` // 0 is treated as 1
	Status       RouteStatus  `json:"status"`
	LastUpdated  time.Time    `json:"last_updated"` // zero when never reported
}

// Path returns the ordered coordinates start, waypoints..., safe.
func (r Route) Path() []Coordinate {
	path := make([]Coordinate, 0, len(r.Waypoints)+2)
	path = append(path, r.Start.Coordinate)
	for _, wp := range r.Waypoints {
		path = append(path, wp.Coordinate)
	}
	return append(path, r.Safe.Coordinate)
}

// Clone returns a copy that shares no mutable state with r.
func (r Route) Clone() Route {
	r.Waypoints = slices.Clone(r.Waypoints)
	return r
}

// ScoredRoute is a Route enriched with the metrics used to rank it.
type ScoredRoute struct {
	Route
	DistanceToStartKm    float64  `json:"distance_to_start_km"`
	RouteLengthKm        float64  `json:"route_length_km"`
	EstimatedTimeMinutes int      `json:"estimated_time_minutes"`
	CongestionScore      float64  `json:"congestion_score"`
	FreshnessScore       float64  `json:"freshness_score"`
	OverallScore         float64  `json:"overall_score"`
	SafetyInstructions   []string `json:"safety_instructions"`
}

type StatusUpdate struct {
	ID         string      `json:"id"`
	RouteID    string      `json:"route_id"`
	Status     RouteStatus `json:"status"`
	ReportedBy string      `json:"reported_by,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

// HazardZones holds two closed polygon rings around an epicenter.
type HazardZones struct {
	Epicenter Coordinate   `json:"epicenter"`
	RadiusKm  float64      `json:"radius_km"`
	Danger    []Coordinate `json:"danger_zone"`
	Warning   []Coordinate `json:"warning_zone"`
}
