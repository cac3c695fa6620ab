package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/metrics"
	"github.com/aussiebroadwan/roster/internal/roster/store"
)

// HousekeepingService periodically purges denylisted tokens that have
// expired on their own.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Now      func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService returns a stopped service. A non-positive
// interval means one hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the worker in the background. It cleans up once immediately.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop signals the worker and waits for an in-progress cleanup to finish.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())
	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup removes expired revoked tokens and returns how many went.
func (s *HousekeepingService) Cleanup(ctx context.Context) int64 {
	n, err := s.Store.RevokedTokens().DeleteExpired(ctx, nowUTC(s.Now))
	if err != nil {
		s.Logger.Error("failed to delete expired revoked tokens", "error", err)
		return 0
	}
	metrics.ObservePurge(n)
	s.Logger.Debug("housekeeping cleanup completed", "revoked_tokens_deleted", n)
	return n
}
