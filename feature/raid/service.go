package raid

import (
	"context"

	"go.uber.org/zap"
)

// Detail is a stored raid with its signups.
type Detail struct {
	Raid    *Record       `json:"raid"`
	Signups []SignupEntry `json:"signups"`
}

// Service exposes raid lookups and manual refreshes.
type Service struct {
	store      Store
	reconciler *Reconciler
	logger     *zap.Logger
}

// NewService creates a new raid service.
func NewService(store Store, reconciler *Reconciler, logger *zap.Logger) *Service {
	return &Service{store: store, reconciler: reconciler, logger: logger}
}

// Get returns a raid and its signups.
func (s *Service) Get(ctx context.Context, raidID string) (*Detail, error) {
	rec, err := s.store.GetRaid(ctx, raidID)
	if err != nil {
		return nil, err
	}
	signups, err := s.store.ListSignups(ctx, raidID)
	if err != nil {
		return nil, err
	}
	return &Detail{Raid: rec, Signups: signups}, nil
}

// Refresh re-renders a raid's announcement immediately.
func (s *Service) Refresh(ctx context.Context, raidID string) (*Outcome, error) {
	return s.reconciler.Refresh(ctx, "", raidID)
}
