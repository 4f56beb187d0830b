package discord

import (
	"context"
	"fmt"

	"raidtrack/core/reconcile"
	"raidtrack/feature/raid"

	"github.com/bwmarrin/discordgo"
)

// ScheduledEvents publishes raids as external guild scheduled events.
type ScheduledEvents struct {
	session Session
}

// NewScheduledEvents creates the scheduled event adapter.
func NewScheduledEvents(session Session) *ScheduledEvents {
	return &ScheduledEvents{session: session}
}

func (s *ScheduledEvents) Create(ctx context.Context, scope string, e raid.ScheduledEntry) (string, error) {
	params := eventParams(e)
	params.Status = discordgo.GuildScheduledEventStatusScheduled
	evt, err := s.session.GuildScheduledEventCreate(scope, params, discordgo.WithContext(ctx))
	if err != nil {
		return "", translate(err, "create scheduled event")
	}
	return evt.ID, nil
}

// Edit updates an event. Completed and cancelled events cannot be edited
// and are reported as gone.
func (s *ScheduledEvents) Edit(ctx context.Context, scope, id string, e raid.ScheduledEntry) error {
	current, err := s.session.GuildScheduledEvent(scope, id, false, discordgo.WithContext(ctx))
	if err != nil {
		return translate(err, "scheduled event "+id)
	}
	switch current.Status {
	case discordgo.GuildScheduledEventStatusCompleted, discordgo.GuildScheduledEventStatusCanceled:
		return fmt.Errorf("scheduled event %s is over: %w", id, reconcile.ErrNotFound)
	}

	_, err = s.session.GuildScheduledEventEdit(scope, id, eventParams(e), discordgo.WithContext(ctx))
	return translate(err, "edit scheduled event "+id)
}

func eventParams(e raid.ScheduledEntry) *discordgo.GuildScheduledEventParams {
	start, end := e.StartAt, e.EndAt
	return &discordgo.GuildScheduledEventParams{
		Name:               e.Name,
		Description:        e.Description,
		ScheduledStartTime: &start,
		ScheduledEndTime:   &end,
		PrivacyLevel:       discordgo.GuildScheduledEventPrivacyLevelGuildOnly,
		EntityType:         discordgo.GuildScheduledEventEntityTypeExternal,
		EntityMetadata:     &discordgo.GuildScheduledEventEntityMetadata{Location: e.Location},
	}
}
