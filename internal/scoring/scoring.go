// Package scoring ranks candidate evacuation routes for a person at a given
// location.
//
// Each route is scored from four factors: how close its start is, how long
// it is, how much spare capacity it has and how recently its status was
// reported. Scores lie in (0, 1]; higher is better.
package scoring

import (
	"math"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shambhavi-kumar59/safenet/internal/geo"
	"github.com/shambhavi-kumar59/safenet/internal/models"
	"github.com/shambhavi-kumar59/safenet/internal/safety"
)

const (
	// MinutesPerKm is the conservative walking pace used for time estimates.
	MinutesPerKm = 15.0

	// FreshnessWindow is how long a status report keeps any freshness value.
	FreshnessWindow = 24 * time.Hour

	proximityWeight  = 0.3
	lengthWeight     = 0.2
	congestionWeight = 0.3
	freshnessWeight  = 0.2
)

type Engine struct {
	concurrency int
}

// NewEngine returns an Engine that scores at most concurrency routes at once.
// Values below 1 default to GOMAXPROCS.
func NewEngine(concurrency int) *Engine {
	if concurrency < 1 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	return &Engine{concurrency: concurrency}
}

// Rank scores every route relative to user at time now and returns them
// ordered by descending OverallScore. Routes with equal scores keep their
// input order. An empty input yields nil.
func (e *Engine) Rank(user models.Coordinate, routes []models.Route, now time.Time) []models.ScoredRoute {
	if len(routes) == 0 {
		return nil
	}

	scored := make([]models.ScoredRoute, len(routes))

	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i := range routes {
		i := i
		g.Go(func() error {
			scored[i] = Score(user, routes[i], now)
			return nil
		})
	}
	_ = g.Wait() // workers never fail

	slices.SortStableFunc(scored, func(a, b models.ScoredRoute) int {
		switch {
		case a.OverallScore > b.OverallScore:
			return -1
		case a.OverallScore < b.OverallScore:
			return 1
		default:
			return 0
		}
	})
	return scored
}

// Score derives the ranking metrics for a single route.
func Score(user models.Coordinate, route models.Route, now time.Time) models.ScoredRoute {
	distanceToStart := geo.Distance(user, route.Start.Coordinate)
	length := geo.PolylineLength(route.Path())
	congestion := CongestionScore(route.Capacity, route.CurrentUsers)
	freshness := FreshnessScore(route.LastUpdated, now)

	return models.ScoredRoute{
		Route:                route.Clone(),
		DistanceToStartKm:    distanceToStart,
		RouteLengthKm:        length,
		EstimatedTimeMinutes: EstimatedMinutes(length),
		CongestionScore:      congestion,
		FreshnessScore:       freshness,
		OverallScore:         OverallScore(distanceToStart, length, congestion, freshness),
		SafetyInstructions:   safety.InstructionsFor(route.DisasterType),
	}
}

func EstimatedMinutes(lengthKm float64) int {
	return int(math.Round(lengthKm * MinutesPerKm))
}

// CongestionScore is capacity per current user, clamped to [0, 1].
// A missing user count (zero) is treated as a single user.
func CongestionScore(capacity, currentUsers int) float64 {
	users := max(currentUsers, 1)
	return clamp01(float64(capacity) / float64(users))
}

// FreshnessScore decays linearly from 1 at lastUpdated to 0 after
// FreshnessWindow. A zero lastUpdated means the route was never reported and
// scores 0. Reports from the future score 1.
func FreshnessScore(lastUpdated, now time.Time) float64 {
	if lastUpdated.IsZero() {
		return 0
	}
	hours := now.Sub(lastUpdated).Hours()
	return clamp01(1 - hours/FreshnessWindow.Hours())
}

// OverallScore combines the four factors with fixed weights summing to 1.
func OverallScore(distanceToStartKm, routeLengthKm, congestion, freshness float64) float64 {
	return proximityWeight*(1/(1+distanceToStartKm)) +
		lengthWeight*(1/(1+routeLengthKm)) +
		congestionWeight*congestion +
		freshnessWeight*freshness
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
