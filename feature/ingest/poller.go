package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"raidtrack/core/reconcile"
	"raidtrack/feature/raid"

	"github.com/fsnotify/fsnotify"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Processor reconciles one decoded raid.
type Processor interface {
	Reconcile(ctx context.Context, scope string, p raid.Payload) (*raid.Outcome, error)
}

// Status is a snapshot of the poller's progress.
type Status struct {
	File               string     `json:"file"`
	IntervalSeconds    int        `json:"intervalSeconds"`
	Watching           bool       `json:"watching"`
	LastCheck          *time.Time `json:"lastCheck,omitempty"`
	LastChange         *time.Time `json:"lastChange,omitempty"`
	LastError          string     `json:"lastError,omitempty"`
	LastProcessedCount int        `json:"lastProcessedCount"`
	LastCycleID        string     `json:"lastCycleId,omitempty"`
	Mode               Mode       `json:"mode,omitempty"`
}

// CycleReport describes one poll cycle.
type CycleReport struct {
	CycleID   string            `json:"cycleId"`
	Changed   bool              `json:"changed"`
	Mode      Mode              `json:"mode,omitempty"`
	Processed int               `json:"processed"`
	Failed    int               `json:"failed"`
	Skipped   []MappingError    `json:"skipped,omitempty"`
	Summary   reconcile.Summary `json:"summary"`
	Archived  string            `json:"archived,omitempty"`
}

// Poller runs decode cycles on a timer, on file notifications and on demand.
// Cycles never overlap.
type Poller struct {
	cfg       Config
	detector  *ChangeDetector
	decoder   *Decoder
	processor Processor
	archive   *Archive
	logger    *zap.Logger

	group singleflight.Group
	mu    sync.RWMutex
	state Status
	now   func() time.Time
}

// NewPoller creates a poller. archive may be nil.
func NewPoller(cfg Config, decoder *Decoder, processor Processor, archive *Archive, logger *zap.Logger) *Poller {
	return &Poller{
		cfg:       cfg,
		detector:  NewChangeDetector(cfg.File),
		decoder:   decoder,
		processor: processor,
		archive:   archive,
		logger:    logger.With(zap.String("file", cfg.File)),
		state: Status{
			File:            cfg.File,
			IntervalSeconds: int(cfg.PollInterval() / time.Second),
		},
		now: time.Now,
	}
}

// Status returns a copy of the current status.
func (p *Poller) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Run polls until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	var (
		events <-chan fsnotify.Event
		errs   <-chan error
	)
	if p.cfg.Watch {
		watcher, err := p.watch()
		if err != nil {
			p.logger.Warn("File notifications unavailable, polling only", zap.Error(err))
		} else {
			defer watcher.Close()
			events, errs = watcher.Events, watcher.Errors
		}
	}

	p.runCycle(ctx, "startup")

	ticker := time.NewTicker(p.cfg.PollInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.runCycle(ctx, "tick")
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if p.relevant(ev) {
				p.runCycle(ctx, "notify")
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			p.logger.Warn("File watcher error", zap.Error(err))
		}
	}
}

// watch subscribes to the file's directory; games replace the file on save.
func (p *Poller) watch() (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(p.cfg.File)); err != nil {
		watcher.Close()
		return nil, err
	}
	p.mu.Lock()
	p.state.Watching = true
	p.mu.Unlock()
	return watcher, nil
}

func (p *Poller) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != filepath.Clean(p.cfg.File) {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

func (p *Poller) runCycle(ctx context.Context, trigger string) {
	report, err := p.Cycle(ctx)
	if err != nil {
		p.logger.Error("Ingest cycle failed", zap.String("trigger", trigger), zap.Error(err))
		return
	}
	if report.Changed {
		p.logger.Info("Ingest cycle finished",
			zap.String("trigger", trigger),
			zap.String("cycle_id", report.CycleID),
			zap.String("mode", string(report.Mode)),
			zap.Int("processed", report.Processed),
			zap.Int("failed", report.Failed),
			zap.Int("skipped", len(report.Skipped)),
		)
	}
}

// Rescan forgets the file signature and runs a cycle.
func (p *Poller) Rescan(ctx context.Context) (*CycleReport, error) {
	p.detector.Forget()
	return p.Cycle(ctx)
}

// Cycle checks the file and processes it when it changed. Concurrent calls
// share one cycle.
func (p *Poller) Cycle(ctx context.Context) (*CycleReport, error) {
	v, err, _ := p.group.Do(p.cfg.File, func() (any, error) {
		return p.cycle(ctx)
	})
	report, _ := v.(*CycleReport)
	return report, err
}

func (p *Poller) cycle(ctx context.Context) (*CycleReport, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate cycle id: %w", err)
	}
	report := &CycleReport{CycleID: id}
	log := p.logger.With(zap.String("cycle_id", id))

	now := p.now()
	p.update(func(s *Status) {
		s.LastCheck = &now
		s.LastCycleID = id
	})

	changed, err := p.detector.Check()
	if err != nil {
		p.fail(err)
		return report, err
	}
	if !changed {
		return report, nil
	}
	report.Changed = true
	p.update(func(s *Status) { s.LastChange = &now })

	data, err := os.ReadFile(p.cfg.File)
	if err != nil {
		p.detector.Forget()
		err = fmt.Errorf("%w: read %s: %w", ErrTransientIO, p.cfg.File, err)
		p.fail(err)
		return report, err
	}

	if p.archive != nil {
		key, err := p.archive.Store(ctx, p.cfg.File, data)
		if err != nil {
			log.Warn("Failed to archive export", zap.Error(err))
		}
		report.Archived = key
	}

	res, err := p.decoder.Decode(string(data))
	if err != nil {
		err = fmt.Errorf("parse failed: %w", err)
		p.fail(err)
		return report, err
	}
	report.Mode = res.Mode
	report.Skipped = res.Skipped
	for _, skipped := range res.Skipped {
		log.Warn("Skipped raid record", zap.Int("index", skipped.Index), zap.String("raid_id", skipped.RaidID), zap.String("reason", skipped.Reason))
	}

	for _, env := range res.Envelopes {
		out, err := p.processor.Reconcile(ctx, env.Scope, env.Raid)
		if err != nil {
			report.Failed++
			log.Error("Failed to reconcile raid",
				zap.String("scope", env.Scope),
				zap.String("raid_id", env.Raid.RaidID),
				zap.Error(err),
			)
			continue
		}
		report.Processed++
		report.Summary.Merge(out.Summary())
	}

	p.update(func(s *Status) {
		s.Mode = res.Mode
		s.LastProcessedCount = report.Processed
		s.LastError = ""
		if report.Failed > 0 {
			s.LastError = fmt.Sprintf("publish failed for %d of %d raids", report.Failed, len(res.Envelopes))
		}
	})
	return report, nil
}

func (p *Poller) fail(err error) {
	p.update(func(s *Status) { s.LastError = err.Error() })
}

func (p *Poller) update(fn func(*Status)) {
	p.mu.Lock()
	fn(&p.state)
	p.mu.Unlock()
}
