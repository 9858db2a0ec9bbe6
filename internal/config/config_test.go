package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Search.RouteRadiusKm != 5 || cfg.Search.DisasterRadiusKm != 10 {
		t.Errorf("unexpected search radii: %+v", cfg.Search)
	}
	if cfg.Sources.USGSPollInterval != 5*time.Minute {
		t.Errorf("expected 5m USGS interval, got %v", cfg.Sources.USGSPollInterval)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ROUTE_SEARCH_RADIUS_KM", "2.5")
	t.Setenv("USGS_ENABLED", "false")
	t.Setenv("GDACS_POLL_INTERVAL", "15m")
	t.Setenv("SCORING_CONCURRENCY", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Search.RouteRadiusKm != 2.5 {
		t.Errorf("expected route radius 2.5, got %v", cfg.Search.RouteRadiusKm)
	}
	if cfg.Sources.USGSEnabled {
		t.Error("expected USGS disabled")
	}
	if cfg.Sources.GDACSPollInterval != 15*time.Minute {
		t.Errorf("expected 15m GDACS interval, got %v", cfg.Sources.GDACSPollInterval)
	}
	if cfg.Scoring.Concurrency != 3 {
		t.Errorf("expected concurrency 3, got %d", cfg.Scoring.Concurrency)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"port out of range", "SERVER_PORT", "70000"},
		{"unknown log level", "LOG_LEVEL", "verbose"},
		{"poll too frequent", "USGS_POLL_INTERVAL", "30s"},
		{"negative radius", "DEFAULT_ZONE_RADIUS_KM", "-1"},
		{"zero rate limit", "RATE_LIMIT_RPS", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
