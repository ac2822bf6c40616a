package service

import (
	"context"
	"time"
)

// Start runs the background expiry sweep. Expiry is always derived at read
// time from the validity window; the sweep only persists EXPIRED on stale
// WAITING rows so the stored history stays truthful.
func (s *service) Start() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.isRunning {
		return
	}
	s.isRunning = true

	ticker := time.NewTicker(s.sweepInterval)
	go func(t *time.Ticker) {
		sweepCtx, sweepCtxCancel := context.WithCancel(context.Background())
		defer sweepCtxCancel()

		// initial run
		s.sweepExpired(sweepCtx)

		for {
			select {
			case <-t.C:
				s.sweepExpired(sweepCtx)
			case <-s.stopChan:
				t.Stop()
				return
			}
		}
	}(ticker)
}

// Stop pauses the expiry sweep.
func (s *service) Stop() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if !s.isRunning {
		return
	}

	s.stopChan <- struct{}{}
	s.isRunning = false
}

func (s *service) sweepExpired(ctx context.Context) {
	swept, err := s.orders.MarkExpired(time.Now().UTC())
	if err != nil {
		s.logger.Error("expiry sweep failed", "error", err.Error())
		return
	}
	if swept > 0 {
		s.logger.Info("marked stale orders as expired", "count", swept)
	}
}
