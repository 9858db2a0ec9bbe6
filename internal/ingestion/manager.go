// Package ingestion polls public disaster feeds and records active disasters
// so that route lookups and hazard zones have epicenters to work from.
package ingestion

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/shambhavi-kumar59/safenet/internal/config"
	"github.com/shambhavi-kumar59/safenet/internal/models"
	"github.com/shambhavi-kumar59/safenet/internal/repository"
	"github.com/shambhavi-kumar59/safenet/internal/worker"
)

type Manager struct {
	cfg    *config.Config
	repo   repository.DisasterRepository
	client *http.Client
	pool   *worker.Pool[*models.Disaster]
	wg     sync.WaitGroup
}

func NewManager(cfg *config.Config, repo repository.DisasterRepository) *Manager {
	return &Manager{
		cfg:  cfg,
		repo: repo,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (m *Manager) Start(ctx context.Context) {
	m.pool = worker.New("ingestion", m.cfg.Worker.Count, m.cfg.Worker.BufferSize, m.store)
	m.pool.Start(ctx)

	if m.cfg.Sources.USGSEnabled {
		m.wg.Add(1)
		go m.runPoller(ctx, "usgs", m.cfg.Sources.USGSURL, m.cfg.Sources.USGSPollInterval)
	}

	if m.cfg.Sources.GDACSEnabled {
		m.wg.Add(1)
		go m.runPoller(ctx, "gdacs", m.cfg.Sources.GDACSURL, m.cfg.Sources.GDACSPollInterval)
	}
}

// store records a disaster unless it was already ingested.
func (m *Manager) store(ctx context.Context, disaster *models.Disaster) error {
	exists, err := m.repo.DisasterExists(ctx, disaster.ID)
	if err != nil {
		slog.Error("error checking existence", "id", disaster.ID, "error", err)
		return err
	}
	if exists {
		return nil
	}

	if err := m.repo.AddDisaster(ctx, disaster); err != nil {
		slog.Error("error adding disaster", "id", disaster.ID, "error", err)
		return err
	}

	slog.Info("added disaster", "id", disaster.ID, "type", disaster.Type, "source", disaster.Source)
	return nil
}

func (m *Manager) runPoller(ctx context.Context, source, url string, interval time.Duration) {
	defer m.wg.Done()
	slog.Info("starting poller", "source", source, "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.poll(ctx, source, url)

	for {
		select {
		case <-ctx.Done():
			slog.Info("poller shutting down", "source", source)
			return
		case <-ticker.C:
			m.poll(ctx, source, url)
		}
	}
}

func (m *Manager) poll(ctx context.Context, source, url string) {
	slog.Debug("polling", "source", source)

	var (
		disasters []*models.Disaster
		err       error
	)

	switch source {
	case "usgs":
		disasters, err = m.pollUSGS(ctx, url)
	case "gdacs":
		disasters, err = m.pollGDACS(ctx, url)
	}
	if err != nil {
		slog.Error("poll failed", "source", source, "error", err)
		return
	}

	for _, d := range disasters {
		if !m.pool.Submit(ctx, d) {
			return
		}
	}

	slog.Debug("poll complete", "source", source, "count", len(disasters))
}

// Stop waits for pollers to exit, then drains the worker pool.
func (m *Manager) Stop() {
	m.wg.Wait()
	m.pool.Stop()
	m.client.CloseIdleConnections()

	stats := m.pool.Stats()
	slog.Info("ingestion manager stopped", "processed", stats.Processed, "failed", stats.Failed)
}
