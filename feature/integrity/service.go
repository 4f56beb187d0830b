package integrity

import (
	"context"
	"errors"
	"time"

	"raidtrack/core/storage"
	"raidtrack/feature/ingest"
	"raidtrack/feature/integrity/checks"
	"raidtrack/feature/raid"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrCheckDisabled is returned for a check whose dependency is not configured.
var ErrCheckDisabled = errors.New("integrity: check disabled")

// StatusSource reports the poller state.
type StatusSource interface {
	Status() ingest.Status
}

// Service handles integrity checks. Any dependency may be nil, which
// disables its check.
type Service struct {
	db     *gorm.DB
	client storage.Client
	bucket string
	region string
	poller StatusSource
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new integrity service.
func NewService(db *gorm.DB, client storage.Client, storageCfg storage.Config, poller StatusSource, logger *zap.Logger) *Service {
	return &Service{
		db:     db,
		client: client,
		bucket: storageCfg.Bucket,
		region: storageCfg.Region,
		poller: poller,
		logger: logger,
		now:    time.Now,
	}
}

// CheckSchema compares the raid models with the live tables.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	if s.db == nil {
		return nil, ErrCheckDisabled
	}
	return checks.CheckSchema(s.db, raid.Models()...)
}

// CheckStorage inspects the snapshot bucket.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StorageReport, error) {
	if s.client == nil {
		return nil, ErrCheckDisabled
	}
	return checks.CheckStorage(ctx, s.client, s.bucket)
}

// FixStorage creates the snapshot bucket.
func (s *Service) FixStorage(ctx context.Context) error {
	if s.client == nil {
		return ErrCheckDisabled
	}
	return checks.FixStorage(ctx, s.client, s.bucket, s.region)
}

// CheckPoller grades the poller status.
func (s *Service) CheckPoller() (*checks.PollerReport, error) {
	if s.poller == nil {
		return nil, ErrCheckDisabled
	}
	report := checks.CheckPoller(s.poller.Status(), s.now())
	return &report, nil
}
