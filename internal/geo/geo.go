// Package geo implements great-circle geometry on a spherical Earth.
package geo

import (
	"math"

	"github.com/shambhavi-kumar59/safenet/internal/models"
)

// EarthRadiusKm is the mean Earth radius used by every calculation in this package.
const EarthRadiusKm = 6371.0

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }

func toDegrees(rad float64) float64 { return rad * 180 / math.Pi }

// Distance returns the haversine distance between a and b in kilometers.
func Distance(a, b models.Coordinate) float64 {
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := lat2 - lat1
	dLon := toRadians(b.Longitude - a.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// PolylineLength sums Distance over consecutive points.
// Fewer than two points have zero length.
func PolylineLength(points []models.Coordinate) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1], points[i])
	}
	return total
}

// Destination returns the point reached by travelling distanceKm from origin
// along the great circle with the given initial bearing (degrees clockwise
// from north). The resulting longitude is wrapped into [-180, 180].
func Destination(origin models.Coordinate, bearingDeg, distanceKm float64) models.Coordinate {
	lat1 := toRadians(origin.Latitude)
	lon1 := toRadians(origin.Longitude)
	theta := toRadians(bearingDeg)
	delta := distanceKm / EarthRadiusKm

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(delta) + math.Cos(lat1)*math.Sin(delta)*math.Cos(theta))
	lon2 := lon1 + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(lat1),
		math.Cos(delta)-math.Sin(lat1)*math.Sin(lat2),
	)

	return models.Coordinate{
		Longitude: wrapLongitude(toDegrees(lon2)),
		Latitude:  toDegrees(lat2),
	}
}

func wrapLongitude(lon float64) float64 {
	if lon >= -180 && lon <= 180 {
		return lon
	}
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

// bboxPadDeg widens prefilter boxes so rounding never drops a boundary point.
const bboxPadDeg = 1e-6

// BoundingBox returns the min/max corners of a box that contains every point
// within radiusKm of center. Used as a coarse prefilter before Distance.
func BoundingBox(center models.Coordinate, radiusKm float64) (min, max models.Coordinate) {
	delta := radiusKm / EarthRadiusKm
	minLat := math.Max(center.Latitude-toDegrees(delta)-bboxPadDeg, -90)
	maxLat := math.Min(center.Latitude+toDegrees(delta)+bboxPadDeg, 90)

	full := func() (models.Coordinate, models.Coordinate) {
		return models.Coordinate{Longitude: -180, Latitude: minLat}, models.Coordinate{Longitude: 180, Latitude: maxLat}
	}
	if minLat == -90 || maxLat == 90 {
		return full()
	}

	ratio := math.Sin(delta) / math.Cos(toRadians(center.Latitude))
	if ratio >= 1 {
		return full()
	}
	dLon := toDegrees(math.Asin(ratio)) + bboxPadDeg
	minLon := center.Longitude - dLon
	maxLon := center.Longitude + dLon
	if minLon < -180 || maxLon > 180 {
		return full()
	}
	return models.Coordinate{Longitude: minLon, Latitude: minLat}, models.Coordinate{Longitude: maxLon, Latitude: maxLat}
}
