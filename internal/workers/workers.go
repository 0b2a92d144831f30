package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/store"
)

type Workers struct {
	workers []Worker
	wg      sync.WaitGroup
}

// NewWorkers builds the workers enabled in cfg. A zero interval disables the
// session garbage collector.
func NewWorkers(storages *store.Storages, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{}
	if cfg.SessionGCInterval > 0 && storages != nil && storages.SessionStore != nil {
		w.workers = append(w.workers, NewSessionGC(storages.SessionStore, cfg.SessionGCInterval, logger))
	}
	logger.Info().Int("workers", len(w.workers)).Msg("workers created")
	return w
}

// Run starts every worker in its own goroutine and returns immediately.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			worker.Run(ctx)
		}()
	}
}

// Wait blocks until every started worker has returned.
func (w *Workers) Wait() {
	w.wg.Wait()
}
