package ingestion

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shambhavi-kumar59/safenet/internal/models"
)

type gdacsRSS struct {
	Channel gdacsChannel `xml:"channel"`
}
type gdacsChannel struct {
	Items []gdacsItem `xml:"item"`
}
type gdacsItem struct {
	Title      string      `xml:"title"`
	PubDate    string      `xml:"pubDate"`
	Point      *gdacsPoint `xml:"http://www.georss.org/georss point"`
	EventType  string      `xml:"http://www.gdacs.org eventtype"`
	AlertLevel string      `xml:"http://www.gdacs.org alertlevel"`
	EventID    string      `xml:"http://www.gdacs.org eventid"`
	Severity   float64     `xml:"http://www.gdacs.org severity"`
}

type gdacsPoint struct {
	Lat *float64 `xml:"http://www.georss.org/georss lat"`
	Lon *float64 `xml:"http://www.georss.org/georss lon"`
}

func (i gdacsItem) epicenter() (models.Coordinate, bool) {
	if i.Point == nil || i.Point.Lat == nil || i.Point.Lon == nil {
		return models.Coordinate{}, false
	}
	c := models.Coordinate{Longitude: *i.Point.Lon, Latitude: *i.Point.Lat}
	return c, c.Validate() == nil
}

func (m *Manager) pollGDACS(ctx context.Context, url string) ([]*models.Disaster, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	return parseGDACS(resp.Body, time.Now())
}

// parseGDACS keeps only the event types an evacuation route can be filed under.
func parseGDACS(r io.Reader, now time.Time) ([]*models.Disaster, error) {
	var data gdacsRSS
	if err := xml.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("error decoding resp.Body: %w", err)
	}

	disasters := make([]*models.Disaster, 0, len(data.Channel.Items))
	for _, item := range data.Channel.Items {
		disasterType, ok := mapGDACSEventType(item.EventType)
		if !ok {
			continue
		}
		epicenter, ok := item.epicenter()
		if !ok {
			slog.Debug("skipping GDACS item without a usable point", "id", item.EventID)
			continue
		}

		timestamp, err := time.Parse(time.RFC1123, item.PubDate)
		if err != nil {
			slog.Warn("GDACS timestamp parsing failed", "id", item.EventID, "error", err.Error())
			timestamp = now
		}

		disasters = append(disasters, &models.Disaster{
			ID:        "gdacs_" + strings.ToLower(item.EventType) + "_" + item.EventID,
			Source:    "gdacs",
			Type:      disasterType,
			Status:    models.DisasterStatusActive,
			Title:     item.Title,
			Magnitude: item.Severity,
			Epicenter: epicenter,
			Timestamp: timestamp.UTC(),
			CreatedAt: now,
		})
	}

	return disasters, nil
}

func mapGDACSEventType(eventType string) (models.DisasterType, bool) {
	switch strings.ToUpper(eventType) {
	case "EQ":
		return models.DisasterTypeEarthquake, true
	case "TC":
		return models.DisasterTypeHurricane, true
	case "FL":
		return models.DisasterTypeFlood, true
	case "WF":
		return models.DisasterTypeWildfire, true
	default:
		return models.DisasterTypeUnknown, false
	}
}
