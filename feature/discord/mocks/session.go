package mocks

import (
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"
)

// Session is a mock implementation of discord.Session. Request options
// are not recorded.
type Session struct {
	mock.Mock
}

func (m *Session) Channel(channelID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	args := m.Called(channelID)
	ch, _ := args.Get(0).(*discordgo.Channel)
	return ch, args.Error(1)
}

func (m *Session) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(channelID, data)
	msg, _ := args.Get(0).(*discordgo.Message)
	return msg, args.Error(1)
}

func (m *Session) ChannelMessageEditComplex(edit *discordgo.MessageEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(edit)
	msg, _ := args.Get(0).(*discordgo.Message)
	return msg, args.Error(1)
}

func (m *Session) GuildScheduledEvent(guildID, eventID string, userCount bool, _ ...discordgo.RequestOption) (*discordgo.GuildScheduledEvent, error) {
	args := m.Called(guildID, eventID, userCount)
	evt, _ := args.Get(0).(*discordgo.GuildScheduledEvent)
	return evt, args.Error(1)
}

func (m *Session) GuildScheduledEventCreate(guildID string, event *discordgo.GuildScheduledEventParams, _ ...discordgo.RequestOption) (*discordgo.GuildScheduledEvent, error) {
	args := m.Called(guildID, event)
	evt, _ := args.Get(0).(*discordgo.GuildScheduledEvent)
	return evt, args.Error(1)
}

func (m *Session) GuildScheduledEventEdit(guildID, eventID string, event *discordgo.GuildScheduledEventParams, _ ...discordgo.RequestOption) (*discordgo.GuildScheduledEvent, error) {
	args := m.Called(guildID, eventID, event)
	evt, _ := args.Get(0).(*discordgo.GuildScheduledEvent)
	return evt, args.Error(1)
}

func (m *Session) GuildMember(guildID, userID string, _ ...discordgo.RequestOption) (*discordgo.Member, error) {
	args := m.Called(guildID, userID)
	member, _ := args.Get(0).(*discordgo.Member)
	return member, args.Error(1)
}

func (m *Session) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	return m.Called(interaction, resp).Error(0)
}
