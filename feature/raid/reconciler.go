package raid

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"raidtrack/core/logger"
	"raidtrack/core/reconcile"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	artifactAnnouncement   = "announcement"
	artifactScheduledEntry = "scheduled_entry"
)

// Outcome reports what one reconciliation did.
type Outcome struct {
	RaidID         string           `json:"raidId"`
	Scope          string           `json:"scope"`
	ChannelID      string           `json:"channelId"`
	StartAt        int64            `json:"startAt"`
	EndAt          int64            `json:"endAt"`
	Announcement   reconcile.Result `json:"announcement"`
	ScheduledEntry reconcile.Result `json:"scheduledEntry"`
}

// Summary counts the artifact results of the outcome.
func (o *Outcome) Summary() reconcile.Summary {
	return reconcile.Summarize(o.Announcement, o.ScheduledEntry)
}

// Deps are the collaborators of a Reconciler. Members may be nil.
type Deps struct {
	Store         Store
	Destinations  Destinations
	Announcements Announcements
	Entries       ScheduledEntries
	Members       Members
	Renderer      Renderer
}

// Reconciler keeps each raid's record, announcement and scheduled event
// consistent.
type Reconciler struct {
	deps   Deps
	router *Router
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
	// locks serializes Reconcile and Refresh per raid id.
	locks reconcile.Locks
}

// NewReconciler creates a reconciler.
func NewReconciler(deps Deps, cfg Config, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		deps:   deps,
		router: NewRouter(cfg),
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Reconcile persists a payload and brings its artifacts up to date.
// Only an invalid payload, an unresolved destination or a store failure is
// returned as an error; artifact failures are reported in the Outcome.
func (r *Reconciler) Reconcile(ctx context.Context, scope string, p Payload) (*Outcome, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	defer r.locks.Lock(p.RaidID)()
	log := logger.WithRaid(r.logger, scope, p.RaidID)

	channelID, ok := r.router.Route(p.Difficulty)
	if !ok {
		return nil, fmt.Errorf("%w: no channel for difficulty %q", ErrDestinationUnresolved, p.Difficulty)
	}
	dest, err := r.deps.Destinations.Open(ctx, scope, channelID)
	if err != nil {
		return nil, fmt.Errorf("%w: channel %s: %w", ErrDestinationUnresolved, channelID, err)
	}

	start, end := r.normalizeTimes(p.StartAt, p.EndAt)
	title := strings.TrimSpace(p.RaidTitle)
	if title == "" {
		title = p.RaidID
	}

	stored, err := r.deps.Store.UpsertRaid(ctx, &Record{
		RaidID:     p.RaidID,
		Scope:      scope,
		RaidTitle:  title,
		Difficulty: p.Difficulty,
		StartAt:    start,
		EndAt:      end,
		Notes:      p.Notes,
		Caps:       p.Caps,
		ChannelID:  channelID,
	})
	if err != nil {
		return nil, err
	}

	out := &Outcome{
		RaidID:    stored.RaidID,
		Scope:     scope,
		ChannelID: channelID,
		StartAt:   start,
		EndAt:     end,
	}
	out.Announcement = r.syncAnnouncement(ctx, dest, stored, false)
	out.ScheduledEntry = r.syncScheduledEntry(ctx, scope, stored)

	if err := r.persist(ctx, stored, out.Announcement, out.ScheduledEntry); err != nil {
		return out, err
	}

	log.Info("Raid reconciled",
		zap.String("announcement", string(out.Announcement.Action)),
		zap.String("scheduled_entry", string(out.ScheduledEntry.Action)),
	)
	return out, nil
}

// Refresh re-renders the announcement of a stored raid, recreating it if it
// was deleted. A raid that was never announced is left alone.
func (r *Reconciler) Refresh(ctx context.Context, scope, raidID string) (*Outcome, error) {
	defer r.locks.Lock(raidID)()
	stored, err := r.deps.Store.GetRaid(ctx, raidID)
	if err != nil {
		return nil, err
	}
	if stored.Scope != "" {
		scope = stored.Scope
	}

	out := &Outcome{
		RaidID:         stored.RaidID,
		Scope:          scope,
		ChannelID:      stored.ChannelID,
		StartAt:        stored.StartAt,
		EndAt:          stored.EndAt,
		ScheduledEntry: reconcile.Skip(artifactScheduledEntry, deref(stored.ScheduledEntryID), "refresh"),
	}
	if deref(stored.AnnouncementID) == "" {
		out.Announcement = reconcile.Skip(artifactAnnouncement, "", "not announced yet")
		return out, nil
	}

	dest, err := r.deps.Destinations.Open(ctx, scope, stored.ChannelID)
	if err != nil {
		return nil, fmt.Errorf("%w: channel %s: %w", ErrDestinationUnresolved, stored.ChannelID, err)
	}

	out.Announcement = r.syncAnnouncement(ctx, dest, stored, true)
	if err := r.persist(ctx, stored, out.Announcement, out.ScheduledEntry); err != nil {
		return out, err
	}
	return out, nil
}

func (r *Reconciler) normalizeTimes(start, end int64) (int64, int64) {
	if start <= 0 {
		start = r.now().Add(r.cfg.Leeway()).Unix()
	}
	if end <= start {
		end = start + r.cfg.DefaultDurationSeconds
	}
	return start, end
}

func (r *Reconciler) syncAnnouncement(ctx context.Context, dest Destination, rec *Record, clearAttachments bool) reconcile.Result {
	log := logger.WithRaid(r.logger, rec.Scope, rec.RaidID)
	currentID := deref(rec.AnnouncementID)

	roster, err := r.loadRoster(ctx, rec.Scope, rec.RaidID)
	if err != nil {
		// Rendering without the roster would wipe the visible signups.
		log.Error("Failed to load roster", zap.Error(err))
		return reconcile.Result{Name: artifactAnnouncement, Action: reconcile.ActionFailed, ID: currentID, PreviousID: currentID, Error: err.Error()}
	}

	ann := r.deps.Renderer.Render(rec.Meta(), rec.Caps, roster)
	ann.ClearAttachments = clearAttachments

	result := reconcile.Sync(ctx, reconcile.NewArtifact(artifactAnnouncement,
		func(ctx context.Context) (string, error) {
			return r.deps.Announcements.Create(ctx, dest, ann)
		},
		func(ctx context.Context, id string) error {
			return r.deps.Announcements.Edit(ctx, dest, id, ann)
		},
	), currentID)
	logResult(log, result)
	return result
}

func (r *Reconciler) syncScheduledEntry(ctx context.Context, scope string, rec *Record) reconcile.Result {
	currentID := deref(rec.ScheduledEntryID)
	if !r.cfg.CreateEvents {
		return reconcile.Skip(artifactScheduledEntry, currentID, "scheduled events disabled")
	}
	if rec.StartAt < r.now().Add(r.cfg.Leeway()).Unix() {
		return reconcile.Skip(artifactScheduledEntry, currentID, "raid starts within leeway")
	}

	entry := ScheduledEntry{
		Name:        Clamp(rec.RaidTitle, maxEventName),
		Description: Clamp(rec.Notes, maxEventDesc),
		Location:    r.cfg.EventLocation,
		StartAt:     time.Unix(rec.StartAt, 0),
		EndAt:       time.Unix(rec.EndAt, 0),
	}
	result := reconcile.Sync(ctx, reconcile.NewArtifact(artifactScheduledEntry,
		func(ctx context.Context) (string, error) {
			return r.deps.Entries.Create(ctx, scope, entry)
		},
		func(ctx context.Context, id string) error {
			return r.deps.Entries.Edit(ctx, scope, id, entry)
		},
	), currentID)
	logResult(logger.WithRaid(r.logger, scope, rec.RaidID), result)
	return result
}

// loadRoster returns the signups of a raid in signup order, with profiles
// and display names merged in.
func (r *Reconciler) loadRoster(ctx context.Context, scope, raidID string) ([]RosterEntry, error) {
	signups, err := r.deps.Store.ListSignups(ctx, raidID)
	if err != nil {
		return nil, err
	}
	if len(signups) == 0 {
		return nil, nil
	}

	userIDs := lo.Uniq(lo.Map(signups, func(s SignupEntry, _ int) string { return s.UserID }))

	profiles := map[string]PlayerProfile{}
	if list, err := r.deps.Store.ListProfiles(ctx, scope, userIDs); err != nil {
		logger.WithRaid(r.logger, scope, raidID).Warn("Failed to load profiles", zap.Error(err))
	} else {
		profiles = lo.KeyBy(list, func(p PlayerProfile) string { return p.UserID })
	}

	var names map[string]string
	if r.deps.Members != nil {
		names = r.deps.Members.DisplayNames(ctx, scope, userIDs)
	}

	roster := make([]RosterEntry, 0, len(signups))
	for _, s := range signups {
		name := names[s.UserID]
		if name == "" {
			name = s.Username
		}
		if name == "" {
			name = s.UserID
		}
		p := profiles[s.UserID]
		roster = append(roster, RosterEntry{
			UserID:      s.UserID,
			DisplayName: name,
			Role:        s.Role,
			ClassKey:    p.ClassKey,
			SpecKey:     p.SpecKey,
		})
	}
	return roster, nil
}

func (r *Reconciler) persist(ctx context.Context, rec *Record, ann, entry reconcile.Result) error {
	if !ann.Changed() && !entry.Changed() {
		return nil
	}
	if err := r.deps.Store.UpdateArtifacts(ctx, rec.RaidID, ann.ID, entry.ID); err != nil {
		return err
	}
	rec.AnnouncementID = ref(ann.ID)
	rec.ScheduledEntryID = ref(entry.ID)
	return nil
}

func logResult(log *zap.Logger, result reconcile.Result) {
	fields := []zap.Field{
		zap.String("artifact", result.Name),
		zap.String("action", string(result.Action)),
		zap.String("id", result.ID),
	}
	switch result.Action {
	case reconcile.ActionFailed:
		log.Error("Artifact sync failed", append(fields, zap.Error(result.Err()))...)
	case reconcile.ActionRecreated:
		log.Warn("Artifact was gone and has been recreated", append(fields, zap.String("previous_id", result.PreviousID))...)
	default:
		log.Debug("Artifact synced", fields...)
	}
}

// IsValidationError reports errors caused by the payload itself.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidPayload) || errors.Is(err, ErrDestinationUnresolved)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ref(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
