package zones

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/shambhavi-kumar59/safenet/internal/models"
)

// FeatureCollection renders the danger and warning rings as polygons plus
// the epicenter as a point, in that order.
func FeatureCollection(z models.HazardZones) *geojson.FeatureCollection {
	return &geojson.FeatureCollection{
		Features: []*geojson.Feature{
			{
				ID:       "danger",
				Geometry: ring(z.Danger),
				Properties: map[string]any{
					"zone":      "danger",
					"radius_km": z.RadiusKm,
				},
			},
			{
				ID:       "warning",
				Geometry: ring(z.Warning),
				Properties: map[string]any{
					"zone":      "warning",
					"radius_km": z.RadiusKm * WarningFactor,
				},
			},
			{
				ID:       "epicenter",
				Geometry: geom.NewPointFlat(geom.XY, z.Epicenter.Pair()),
				Properties: map[string]any{
					"zone": "epicenter",
				},
			},
		},
	}
}

func ring(points []models.Coordinate) *geom.Polygon {
	flat := make([]float64, 0, 2*len(points))
	for _, p := range points {
		flat = append(flat, p.Longitude, p.Latitude)
	}
	return geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)})
}
