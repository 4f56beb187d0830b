package discord

import (
	"context"
	"sync"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Members resolves guild display names.
type Members struct {
	session Session
	limit   int
	logger  *zap.Logger
}

// NewMembers creates a member resolver running at most limit lookups at once.
func NewMembers(session Session, limit int, logger *zap.Logger) *Members {
	if limit <= 0 {
		limit = 4
	}
	return &Members{session: session, limit: limit, logger: logger}
}

// DisplayNames returns nick, global name or username per user. Users that
// cannot be fetched are left out.
func (m *Members) DisplayNames(ctx context.Context, scope string, userIDs []string) map[string]string {
	var (
		mu    sync.Mutex
		names = make(map[string]string, len(userIDs))
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.limit)
	for _, id := range userIDs {
		g.Go(func() error {
			member, err := m.session.GuildMember(scope, id, discordgo.WithContext(ctx))
			if err != nil {
				m.logger.Debug("Member lookup failed", zap.String("scope", scope), zap.String("user_id", id), zap.Error(err))
				return nil
			}
			if name := DisplayName(member); name != "" {
				mu.Lock()
				names[id] = name
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return names
}

// DisplayName picks the name a guild shows for a member.
func DisplayName(member *discordgo.Member) string {
	if member == nil {
		return ""
	}
	if member.Nick != "" {
		return member.Nick
	}
	if member.User == nil {
		return ""
	}
	if member.User.GlobalName != "" {
		return member.User.GlobalName
	}
	return member.User.Username
}
