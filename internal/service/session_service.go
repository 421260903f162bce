package service

import (
	"context"

	"go.uber.org/zap"
)

type summaryInvalidator interface {
	Invalidate(ctx context.Context) error
}

type detailInvalidator interface {
	InvalidateAll(ctx context.Context) error
}

type rosterResetter interface {
	Reset()
}

// SessionService is the one place that knows everything session-scoped:
// the cached roster, the daily overviews, and the detail cache. Logout and
// "refresh all data" both funnel through ResetSession so no field can be
// forgotten by one of the two paths.
type SessionService struct {
	roster    rosterResetter
	summaries summaryInvalidator
	details   detailInvalidator
	logger    *zap.Logger
}

// NewSessionService constructs a SessionService.
func NewSessionService(roster rosterResetter, summaries summaryInvalidator, details detailInvalidator, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{roster: roster, summaries: summaries, details: details, logger: logger}
}

// ResetSession clears, in order: the detail cache, every cached daily
// overview, and the in-memory roster. Subsequent requests reload from the
// backend.
func (s *SessionService) ResetSession(ctx context.Context) error {
	if err := s.details.InvalidateAll(ctx); err != nil {
		return err
	}
	if err := s.summaries.Invalidate(ctx); err != nil {
		return err
	}
	s.roster.Reset()
	s.logger.Info("session state reset")
	return nil
}
