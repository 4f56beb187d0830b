package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"raidtrack/core/reconcile"
	"raidtrack/feature/raid"

	"github.com/bwmarrin/discordgo"
)

var errNotTextChannel = errors.New("not a text channel")

// Destinations opens announcement channels, caching successful lookups.
type Destinations struct {
	session Session
	cache   *reconcile.Cache[raid.Destination]
}

// NewDestinations creates a channel resolver. ttl 0 disables caching.
func NewDestinations(session Session, ttl time.Duration) *Destinations {
	return &Destinations{session: session, cache: reconcile.NewCache[raid.Destination](ttl)}
}

// Open resolves channelID and checks it is a text channel of scope.
func (d *Destinations) Open(ctx context.Context, scope, channelID string) (raid.Destination, error) {
	return d.cache.GetOrLoad(ctx, scope+"/"+channelID, func(ctx context.Context) (raid.Destination, error) {
		ch, err := d.session.Channel(channelID, discordgo.WithContext(ctx))
		if err != nil {
			return raid.Destination{}, translate(err, "channel "+channelID)
		}
		if ch.Type != discordgo.ChannelTypeGuildText && ch.Type != discordgo.ChannelTypeGuildNews {
			return raid.Destination{}, fmt.Errorf("channel %s: %w", channelID, errNotTextChannel)
		}
		if scope != "" && ch.GuildID != scope {
			return raid.Destination{}, fmt.Errorf("channel %s belongs to guild %s, not %s", channelID, ch.GuildID, scope)
		}
		return raid.Destination{Scope: ch.GuildID, ChannelID: ch.ID, Name: ch.Name}, nil
	})
}

// Invalidate drops a cached channel.
func (d *Destinations) Invalidate(scope, channelID string) {
	d.cache.Invalidate(scope + "/" + channelID)
}
