package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/metrics"
	"github.com/MKhiriev/go-notes-keeper/internal/store"
	"github.com/robfig/cron/v3"
)

// purgeTimeout bounds a single purge run.
const purgeTimeout = 30 * time.Second

// BlacklistPurgeWorker periodically deletes blacklisted refresh tokens that
// have expired anyway. Overlapping runs are skipped.
type BlacklistPurgeWorker struct {
	cron      *cron.Cron
	blacklist store.TokenBlacklist
	metrics   *metrics.Metrics

	now func() time.Time

	logger *logger.Logger
}

// NewBlacklistPurgeWorker schedules the purge with a standard five field
// cron spec or a descriptor such as "@hourly". m may be nil.
func NewBlacklistPurgeWorker(blacklist store.TokenBlacklist, m *metrics.Metrics, schedule string, logger *logger.Logger) (*BlacklistPurgeWorker, error) {
	w := &BlacklistPurgeWorker{
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		blacklist: blacklist,
		metrics:   m,
		now:       time.Now,
		logger:    logger,
	}

	if _, err := w.cron.AddFunc(schedule, func() { w.purge(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid blacklist purge schedule %q: %w", schedule, err)
	}

	return w, nil
}

func (w *BlacklistPurgeWorker) Run() {
	w.logger.Info().Msg("blacklist purge worker started")
	w.cron.Start()
}

// Stop waits for a purge in progress to finish.
func (w *BlacklistPurgeWorker) Stop() {
	<-w.cron.Stop().Done()
	w.logger.Info().Msg("blacklist purge worker stopped")
}

func (w *BlacklistPurgeWorker) purge(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, purgeTimeout)
	defer cancel()

	removed, err := w.blacklist.PurgeExpired(ctx, w.now())
	if w.metrics != nil {
		w.metrics.RecordBlacklistPurge(removed, err)
	}
	if err != nil {
		w.logger.Err(err).Msg("blacklist purge failed")
		return
	}

	w.logger.Debug().Int64("removed", removed).Msg("blacklist purged")
}
