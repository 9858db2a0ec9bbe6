package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shambhavi-kumar59/safenet/internal/models"
)

type usgsResponse struct {
	Features []usgsFeature `json:"features"`
}

type usgsFeature struct {
	ID         string         `json:"id"`
	Properties usgsProperties `json:"properties"`
	Geometry   usgsGeometry   `json:"geometry"`
}
type usgsProperties struct {
	Mag   float64 `json:"mag"`
	Place string  `json:"place"`
	Time  int64   `json:"time"` // unix millis
	Title string  `json:"title"`
}
type usgsGeometry struct {
	Coordinates []float64 `json:"coordinates"` // [lon, lat, depth]
}

func (m *Manager) pollUSGS(ctx context.Context, url string) ([]*models.Disaster, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	return parseUSGS(resp.Body, time.Now())
}

func parseUSGS(r io.Reader, now time.Time) ([]*models.Disaster, error) {
	var data usgsResponse
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("error decoding resp.Body: %w", err)
	}

	disasters := make([]*models.Disaster, 0, len(data.Features))
	for _, f := range data.Features {
		if len(f.Geometry.Coordinates) < 2 {
			continue
		}
		epicenter := models.Coordinate{
			Longitude: f.Geometry.Coordinates[0],
			Latitude:  f.Geometry.Coordinates[1],
		}
		if epicenter.Validate() != nil {
			continue
		}

		title := f.Properties.Title
		if title == "" {
			title = f.Properties.Place
		}
		disasters = append(disasters, &models.Disaster{
			ID:        "usgs_" + f.ID,
			Source:    "usgs",
			Type:      models.DisasterTypeEarthquake,
			Status:    models.DisasterStatusActive,
			Title:     title,
			Magnitude: f.Properties.Mag,
			Epicenter: epicenter,
			Timestamp: time.UnixMilli(f.Properties.Time).UTC(),
			CreatedAt: now,
		})
	}

	return disasters, nil
}
