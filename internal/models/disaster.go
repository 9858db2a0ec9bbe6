package models

import (
	"strings"
	"time"
)

type DisasterType string

const (
	DisasterTypeEarthquake DisasterType = "earthquake"
	DisasterTypeFlood      DisasterType = "flood"
	DisasterTypeWildfire   DisasterType = "wildfire"
	DisasterTypeHurricane  DisasterType = "hurricane"
	DisasterTypeTornado    DisasterType = "tornado"
	DisasterTypeUnknown    DisasterType = "unknown"
)

// ParseDisasterType maps a case-insensitive name to a supported category.
// Unsupported names return DisasterTypeUnknown and false.
func ParseDisasterType(s string) (DisasterType, bool) {
	switch t := DisasterType(strings.ToLower(strings.TrimSpace(s))); t {
	case DisasterTypeEarthquake, DisasterTypeFlood, DisasterTypeWildfire, DisasterTypeHurricane, DisasterTypeTornado:
		return t, true
	default:
		return DisasterTypeUnknown, false
	}
}

type DisasterStatus string

const (
	DisasterStatusActive   DisasterStatus = "active"
	DisasterStatusResolved DisasterStatus = "resolved"
)

type Disaster struct {
	ID        string         `json:"id"`     // Unique ID from source (e.g., "gdacs_12345")
	Source    string         `json:"source"` // "usgs", "gdacs", "operator"
	Type      DisasterType   `json:"type"`
	Status    DisasterStatus `json:"status"`
	Title     string         `json:"title"`
	Magnitude float64        `json:"magnitude,omitempty"`
	Epicenter Coordinate     `json:"epicenter"`
	RadiusKm  float64        `json:"radius_km,omitempty"` // 0 means use the configured default
	Timestamp time.Time      `json:"timestamp"`           // when the event occurred
	CreatedAt time.Time      `json:"created_at"`          // when we ingested it
}
