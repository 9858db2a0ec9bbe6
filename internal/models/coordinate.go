package models

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Coordinate is a WGS-84 position in [longitude, latitude] order.
type Coordinate struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

func (c Coordinate) Validate() error {
	if math.IsNaN(c.Longitude) || math.IsNaN(c.Latitude) {
		return fmt.Errorf("%w: not a number", ErrInvalidCoordinate)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidCoordinate, c.Longitude)
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidCoordinate, c.Latitude)
	}
	return nil
}

// Pair returns the coordinate as a GeoJSON position.
func (c Coordinate) Pair() []float64 {
	return []float64{c.Longitude, c.Latitude}
}

type NamedPoint struct {
	Coordinate
	Name string `json:"name"`
}

type Waypoint struct {
	Coordinate
	Name         string `json:"name"`
	Instructions string `json:"instructions"`
}
