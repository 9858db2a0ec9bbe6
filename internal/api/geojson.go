package api

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/shambhavi-kumar59/safenet/internal/models"
)

func flatCoords(points []models.Coordinate) []float64 {
	flat := make([]float64, 0, 2*len(points))
	for _, p := range points {
		flat = append(flat, p.Longitude, p.Latitude)
	}
	return flat
}

// routesToGeoJSON renders ranked routes as line strings, best first.
func routesToGeoJSON(routes []models.ScoredRoute) *geojson.FeatureCollection {
	features := make([]*geojson.Feature, 0, len(routes))

	for i, r := range routes {
		line := geom.NewLineStringFlat(geom.XY, flatCoords(r.Path()))
		features = append(features, &geojson.Feature{
			ID:       r.ID,
			Geometry: line,
			Properties: map[string]any{
				"rank":                   i + 1,
				"disaster_type":          string(r.DisasterType),
				"status":                 string(r.Status),
				"start_name":             r.Start.Name,
				"safe_name":              r.Safe.Name,
				"distance_to_start_km":   r.DistanceToStartKm,
				"route_length_km":        r.RouteLengthKm,
				"estimated_time_minutes": r.EstimatedTimeMinutes,
				"congestion_score":       r.CongestionScore,
				"freshness_score":        r.FreshnessScore,
				"overall_score":          r.OverallScore,
				"safety_instructions":    r.SafetyInstructions,
			},
		})
	}

	return &geojson.FeatureCollection{Features: features}
}
