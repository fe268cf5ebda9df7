package user

import (
	"context"
	"fmt"
	"time"

	db "github.com/fintrackpro/FinTrack-Backend/db/sqlc"
	"github.com/fintrackpro/FinTrack-Backend/services/monitoring/logging"
)

// TokenCleanupService periodically purges expired and revoked refresh
// tokens. It runs outside the ledger core and never touches balances.
type TokenCleanupService struct {
	store    *db.Store
	logger   *logging.Logger
	interval time.Duration
}

func NewTokenCleanupService(store *db.Store, logger *logging.Logger, interval time.Duration) *TokenCleanupService {
	return &TokenCleanupService{
		store:    store,
		logger:   logger,
		interval: interval,
	}
}

func (s *TokenCleanupService) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.cleanup(ctx)
			}
		}
	}()
}

func (s *TokenCleanupService) cleanup(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	purged, err := s.store.DeleteExpiredRefreshTokens(ctx)
	if err != nil {
		s.logger.Error(fmt.Sprintf("refresh token cleanup failed: %v", err))
		return
	}
	if purged > 0 {
		s.logger.Info(fmt.Sprintf("purged %d expired refresh tokens", purged))
	}
}
