package raid

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound reports a missing raid, signup or profile.
	ErrNotFound = errors.New("raid: not found")
	// ErrDestinationUnresolved reports that no usable announcement channel
	// exists for a raid. Nothing is written when it occurs.
	ErrDestinationUnresolved = errors.New("raid: destination unresolved")
)

// Meta holds the display fields of a raid.
type Meta struct {
	RaidID     string
	RaidTitle  string
	Difficulty string
	StartAt    int64
	EndAt      int64
	Notes      string
}

// RosterEntry is one signup enriched for display.
type RosterEntry struct {
	UserID      string
	DisplayName string
	Role        Role
	ClassKey    string
	SpecKey     string
}

// EmbedField is one titled block of an announcement.
type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// Announcement is the rendered, transport independent message for a raid.
type Announcement struct {
	RaidID      string
	Title       string
	Description string
	Color       int
	Fields      []EmbedField
	Footer      string
	// ClearAttachments drops files previously attached to the message.
	ClearAttachments bool
}

// ScheduledEntry is the calendar event for a raid.
type ScheduledEntry struct {
	Name        string
	Description string
	Location    string
	StartAt     time.Time
	EndAt       time.Time
}

// Destination is an opened announcement channel.
type Destination struct {
	Scope     string
	ChannelID string
	Name      string
}

// Renderer turns a raid and its roster into an announcement.
type Renderer interface {
	Render(meta Meta, caps *Caps, roster []RosterEntry) Announcement
}

// Destinations opens announcement channels.
type Destinations interface {
	Open(ctx context.Context, scope, channelID string) (Destination, error)
}

// Announcements publishes and edits announcement messages. Edit returns an
// error wrapping reconcile.ErrNotFound when the message is gone.
type Announcements interface {
	Create(ctx context.Context, dest Destination, a Announcement) (string, error)
	Edit(ctx context.Context, dest Destination, id string, a Announcement) error
}

// ScheduledEntries publishes and edits calendar events. Edit returns an
// error wrapping reconcile.ErrNotFound when the event is gone or over.
type ScheduledEntries interface {
	Create(ctx context.Context, scope string, e ScheduledEntry) (string, error)
	Edit(ctx context.Context, scope, id string, e ScheduledEntry) error
}

// Members resolves display names. Users that cannot be resolved are left
// out of the result.
type Members interface {
	DisplayNames(ctx context.Context, scope string, userIDs []string) map[string]string
}

// Store persists raids, signups and profiles.
type Store interface {
	// UpsertRaid writes the display fields of rec, keeping stored artifact
	// ids, and returns the stored record.
	UpsertRaid(ctx context.Context, rec *Record) (*Record, error)
	GetRaid(ctx context.Context, raidID string) (*Record, error)
	// UpdateArtifacts stores artifact ids; an empty id is stored as NULL.
	UpdateArtifacts(ctx context.Context, raidID, announcementID, scheduledEntryID string) error

	ListSignups(ctx context.Context, raidID string) ([]SignupEntry, error)
	GetSignup(ctx context.Context, raidID, userID string) (*SignupEntry, error)
	UpsertSignup(ctx context.Context, entry *SignupEntry) error

	GetProfile(ctx context.Context, scope, userID string) (*PlayerProfile, error)
	ListProfiles(ctx context.Context, scope string, userIDs []string) ([]PlayerProfile, error)
	UpsertProfile(ctx context.Context, profile *PlayerProfile) error
}
