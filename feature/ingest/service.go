package ingest

import (
	"context"
	"errors"

	"raidtrack/feature/raid"

	"go.uber.org/zap"
)

// ErrArchiveDisabled is returned when snapshots are requested without an
// archive.
var ErrArchiveDisabled = errors.New("ingest: archive disabled")

// Service exposes the poller and direct API ingestion.
type Service struct {
	poller    *Poller
	decoder   *Decoder
	processor Processor
	archive   *Archive
	logger    *zap.Logger
}

// NewService creates a new ingest service. archive may be nil.
func NewService(poller *Poller, decoder *Decoder, processor Processor, archive *Archive, logger *zap.Logger) *Service {
	return &Service{poller: poller, decoder: decoder, processor: processor, archive: archive, logger: logger}
}

// Status returns the poller status.
func (s *Service) Status() Status {
	return s.poller.Status()
}

// Rescan forces a cycle.
func (s *Service) Rescan(ctx context.Context) (*CycleReport, error) {
	return s.poller.Rescan(ctx)
}

// Ingest reconciles one posted envelope.
func (s *Service) Ingest(ctx context.Context, body []byte) (*raid.Outcome, error) {
	env, err := s.decoder.DecodeEnvelope(body)
	if err != nil {
		return nil, err
	}
	return s.processor.Reconcile(ctx, env.Scope, env.Raid)
}

// Snapshots lists archived exports.
func (s *Service) Snapshots(ctx context.Context) ([]Snapshot, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	return s.archive.List(ctx)
}
