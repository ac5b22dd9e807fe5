package workers

import (
	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/metrics"
	"github.com/MKhiriev/go-notes-keeper/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the background workers enabled by cfg. An empty purge
// schedule disables the blacklist purge.
func NewWorkers(storages *store.Storages, m *metrics.Metrics, cfg config.Workers, logger *logger.Logger) (*Workers, error) {
	logger.Info().Msg("creating new workers...")

	ws := &Workers{}

	if cfg.BlacklistPurgeSchedule != "" {
		purger, err := NewBlacklistPurgeWorker(storages.TokenBlacklist, m, cfg.BlacklistPurgeSchedule, logger)
		if err != nil {
			return nil, err
		}
		ws.workers = append(ws.workers, purger)
	}

	return ws, nil
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// Stop stops workers in reverse start order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
