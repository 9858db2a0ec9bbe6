package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shambhavi-kumar59/safenet/internal/models"
)

func pt(lon, lat float64) models.Coordinate {
	return models.Coordinate{Longitude: lon, Latitude: lat}
}

func TestDistance_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		a, b models.Coordinate
		want float64
		tol  float64
	}{
		{"same point", pt(139.6503, 35.6762), pt(139.6503, 35.6762), 0, 0},
		{"one hundredth degree latitude", pt(0, 0), pt(0, 0.01), 1.1119, 0.001},
		{"one degree longitude at equator", pt(0, 0), pt(1, 0), 111.195, 0.01},
		{"london to paris", pt(-0.1278, 51.5074), pt(2.3522, 48.8566), 343.5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Distance(tt.a, tt.b), tt.tol)
		})
	}
}

func TestDistance_Symmetric(t *testing.T) {
	points := []models.Coordinate{
		pt(0, 0), pt(-122.4194, 37.7749), pt(151.2093, -33.8688), pt(179.9, 89.9), pt(-180, -90),
	}
	for _, a := range points {
		for _, b := range points {
			assert.Equal(t, Distance(a, b), Distance(b, a))
		}
		assert.Zero(t, Distance(a, a))
	}
}

func TestPolylineLength(t *testing.T) {
	assert.Zero(t, PolylineLength(nil))
	assert.Zero(t, PolylineLength([]models.Coordinate{pt(10, 10)}))
	assert.Zero(t, PolylineLength([]models.Coordinate{pt(10, 10), pt(10, 10)}))

	path := []models.Coordinate{pt(0, 0), pt(0, 0.01), pt(0.01, 0.01)}
	want := Distance(path[0], path[1]) + Distance(path[1], path[2])
	assert.InDelta(t, want, PolylineLength(path), 1e-12)
}

func TestDestination_RoundTrip(t *testing.T) {
	origin := pt(10, 10)
	for _, bearing := range []float64{0, 45, 90, 180, 270, -90} {
		dest := Destination(origin, bearing, 5)
		assert.InDelta(t, 5, Distance(origin, dest), 1e-6, "bearing %v", bearing)
	}

	north := Destination(origin, 0, 100)
	assert.InDelta(t, origin.Longitude, north.Longitude, 1e-9)
	assert.Greater(t, north.Latitude, origin.Latitude)
}

func TestDestination_WrapsAntimeridian(t *testing.T) {
	dest := Destination(pt(179.99, 0), 90, 10)
	assert.Less(t, dest.Longitude, 0.0)
	assert.GreaterOrEqual(t, dest.Longitude, -180.0)
	assert.InDelta(t, 10, Distance(pt(179.99, 0), dest), 1e-6)
}

func TestBoundingBox_ContainsCircle(t *testing.T) {
	center := pt(-73.9857, 40.7484)
	min, max := BoundingBox(center, 5)
	for bearing := 0.0; bearing < 360; bearing += 15 {
		p := Destination(center, bearing, 5)
		assert.True(t, p.Longitude >= min.Longitude && p.Longitude <= max.Longitude, "lon %v", p.Longitude)
		assert.True(t, p.Latitude >= min.Latitude && p.Latitude <= max.Latitude, "lat %v", p.Latitude)
	}

	min, max = BoundingBox(pt(0, 89.99), 50)
	assert.Equal(t, -180.0, min.Longitude)
	assert.Equal(t, 180.0, max.Longitude)
	assert.False(t, math.IsNaN(min.Latitude))
}
