// Package zones builds hazard-zone polygons around a disaster epicenter.
package zones

import (
	"errors"
	"fmt"
	"math"

	"github.com/shambhavi-kumar59/safenet/internal/geo"
	"github.com/shambhavi-kumar59/safenet/internal/models"
)

const (
	// Steps is the number of distinct vertices on each ring.
	Steps = 64

	// WarningFactor scales the danger radius to the warning radius.
	WarningFactor = 1.5
)

var ErrInvalidRadius = errors.New("radius must be a positive number of kilometers")

// Generate returns the danger ring at radiusKm and the warning ring at
// WarningFactor times radiusKm, both centered on epicenter.
func Generate(epicenter models.Coordinate, radiusKm float64) (models.HazardZones, error) {
	if math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) || radiusKm <= 0 {
		return models.HazardZones{}, fmt.Errorf("%w: got %v", ErrInvalidRadius, radiusKm)
	}

	return models.HazardZones{
		Epicenter: epicenter,
		RadiusKm:  radiusKm,
		Danger:    Circle(epicenter, radiusKm, Steps),
		Warning:   Circle(epicenter, radiusKm*WarningFactor, Steps),
	}, nil
}

// Circle approximates a circle with a closed ring of steps+1 coordinates.
// Vertices start due north and proceed counter-clockwise, the GeoJSON
// exterior ring orientation.
func Circle(center models.Coordinate, radiusKm float64, steps int) []models.Coordinate {
	ring := make([]models.Coordinate, 0, steps+1)
	for i := 0; i < steps; i++ {
		bearing := float64(i) * -360 / float64(steps)
		ring = append(ring, geo.Destination(center, bearing, radiusKm))
	}
	return append(ring, ring[0])
}
