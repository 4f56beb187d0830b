package discord

import (
	"context"
	"fmt"

	"raidtrack/feature/raid"
	"raidtrack/feature/signup"

	"github.com/bwmarrin/discordgo"
)

// Announcements publishes raid announcements as embed messages with the
// signup buttons attached.
type Announcements struct {
	session  Session
	channels *Destinations
}

// NewAnnouncements creates the announcement adapter. When channels is set,
// a channel Discord reports as deleted is dropped from its cache.
func NewAnnouncements(session Session, channels *Destinations) *Announcements {
	return &Announcements{session: session, channels: channels}
}

func (a *Announcements) Create(ctx context.Context, dest raid.Destination, ann raid.Announcement) (string, error) {
	components, err := ButtonRows(signup.AnnouncementRows(ann.RaidID))
	if err != nil {
		return "", fmt.Errorf("announcement components: %w", err)
	}
	msg, err := a.session.ChannelMessageSendComplex(dest.ChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{Embed(ann)},
		Components: components,
	}, discordgo.WithContext(ctx))
	if err != nil {
		a.forgetChannel(dest, err)
		return "", translate(err, "send announcement")
	}
	return msg.ID, nil
}

func (a *Announcements) Edit(ctx context.Context, dest raid.Destination, id string, ann raid.Announcement) error {
	embeds := []*discordgo.MessageEmbed{Embed(ann)}
	components, err := ButtonRows(signup.AnnouncementRows(ann.RaidID))
	if err != nil {
		return fmt.Errorf("announcement components: %w", err)
	}
	edit := &discordgo.MessageEdit{
		ID:         id,
		Channel:    dest.ChannelID,
		Embeds:     &embeds,
		Components: &components,
	}
	if ann.ClearAttachments {
		edit.Attachments = &[]*discordgo.MessageAttachment{}
	}
	if _, err := a.session.ChannelMessageEditComplex(edit, discordgo.WithContext(ctx)); err != nil {
		a.forgetChannel(dest, err)
		return translate(err, "edit announcement "+id)
	}
	return nil
}

func (a *Announcements) forgetChannel(dest raid.Destination, err error) {
	if a.channels != nil && isUnknownChannel(err) {
		a.channels.Invalidate(dest.Scope, dest.ChannelID)
	}
}

// Embed converts a rendered announcement.
func Embed(ann raid.Announcement) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(ann.Fields))
	for _, f := range ann.Fields {
		fields = append(fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}
	return &discordgo.MessageEmbed{
		Title:       ann.Title,
		Description: ann.Description,
		Color:       ann.Color,
		Fields:      fields,
		Footer:      &discordgo.MessageEmbedFooter{Text: ann.Footer},
	}
}
