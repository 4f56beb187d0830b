package discord

import (
	"context"
	"errors"
	"testing"

	"raidtrack/feature/discord/mocks"
	"raidtrack/feature/raid"
	"raidtrack/feature/signup"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMachine struct {
	reply *signup.Reply
	err   error
	seen  []signup.Interaction
}

func (m *fakeMachine) Handle(_ context.Context, in signup.Interaction) (*signup.Reply, error) {
	m.seen = append(m.seen, in)
	return m.reply, m.err
}

func componentInteraction(customID string, values ...string) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:      "i-1",
		Type:    discordgo.InteractionMessageComponent,
		GuildID: "g",
		Member:  &discordgo.Member{Nick: "Thrall", User: &discordgo.User{ID: "u1", Username: "thrall"}},
		Data:    discordgo.MessageComponentInteractionData{CustomID: customID, Values: values},
	}
}

func encode(t *testing.T, tok signup.Token) string {
	t.Helper()
	id, err := tok.Encode()
	require.NoError(t, err)
	return id
}

func TestInteractionHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("IgnoresForeignComponents", func(t *testing.T) {
		session := new(mocks.Session)
		machine := &fakeMachine{}
		h := NewInteractionHandler(session, machine, zap.NewNop())

		require.NoError(t, h.Handle(ctx, componentInteraction("someone-elses-button")))
		require.NoError(t, h.Handle(ctx, &discordgo.Interaction{Type: discordgo.InteractionApplicationCommand}))
		assert.Empty(t, machine.seen)
		session.AssertNotCalled(t, "InteractionRespond", mock.Anything, mock.Anything)
	})

	t.Run("RoleButtonOpensEphemeralClassSelect", func(t *testing.T) {
		next := signup.ClassToken("r-1", raid.RoleTank)
		machine := &fakeMachine{reply: &signup.Reply{
			State:   signup.StateClassSelect,
			Prompt:  "Pick your class",
			Next:    next,
			Options: []signup.Option{{Label: "Warrior", Value: "warrior"}},
		}}
		session := new(mocks.Session)
		var got *discordgo.InteractionResponse
		session.On("InteractionRespond", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { got = args.Get(1).(*discordgo.InteractionResponse) }).
			Return(nil)

		h := NewInteractionHandler(session, machine, zap.NewNop())
		require.NoError(t, h.Handle(ctx, componentInteraction(encode(t, signup.RoleToken("r-1", raid.RoleTank)))))

		require.Len(t, machine.seen, 1)
		assert.Equal(t, signup.Interaction{
			Scope:    "g",
			UserID:   "u1",
			Username: "Thrall",
			Token:    signup.RoleToken("r-1", raid.RoleTank),
		}, machine.seen[0])

		require.NotNil(t, got)
		assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, got.Type)
		assert.Equal(t, discordgo.MessageFlagsEphemeral, got.Data.Flags)
		require.Len(t, got.Data.Components, 1)
		menu := got.Data.Components[0].(discordgo.ActionsRow).Components[0].(discordgo.SelectMenu)
		assert.Equal(t, encode(t, next), menu.CustomID)
		require.Len(t, menu.Options, 1)
		assert.Equal(t, "warrior", menu.Options[0].Value)
	})

	t.Run("SelectUpdatesMessage", func(t *testing.T) {
		machine := &fakeMachine{reply: &signup.Reply{State: signup.StateCommitted, Prompt: "Saved"}}
		session := new(mocks.Session)
		var got *discordgo.InteractionResponse
		session.On("InteractionRespond", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { got = args.Get(1).(*discordgo.InteractionResponse) }).
			Return(nil)

		h := NewInteractionHandler(session, machine, zap.NewNop())
		tok := signup.SpecToken("r-1", raid.RoleTank, "warrior")
		require.NoError(t, h.Handle(ctx, componentInteraction(encode(t, tok), "protection")))

		assert.Equal(t, "protection", machine.seen[0].Value)
		assert.Equal(t, discordgo.InteractionResponseUpdateMessage, got.Type)
		assert.Equal(t, "Saved", got.Data.Content)
		assert.Empty(t, got.Data.Components)
	})

	t.Run("ErrorsBecomeEphemeralMessages", func(t *testing.T) {
		machine := &fakeMachine{err: errors.Join(signup.ErrUnknownRaid, errors.New("r-1"))}
		session := new(mocks.Session)
		var got *discordgo.InteractionResponse
		session.On("InteractionRespond", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { got = args.Get(1).(*discordgo.InteractionResponse) }).
			Return(nil)

		h := NewInteractionHandler(session, machine, zap.NewNop())
		require.NoError(t, h.Handle(ctx, componentInteraction(encode(t, signup.RoleToken("r-1", raid.RoleMelee)))))

		assert.Equal(t, "This raid is no longer tracked.", got.Data.Content)
		assert.Equal(t, discordgo.MessageFlagsEphemeral, got.Data.Flags)
	})

	t.Run("UserFromDirectMessage", func(t *testing.T) {
		machine := &fakeMachine{reply: &signup.Reply{State: signup.StateCommitted}}
		session := new(mocks.Session)
		session.On("InteractionRespond", mock.Anything, mock.Anything).Return(nil)

		i := componentInteraction(encode(t, signup.ChangeRoleToken("r-1")))
		i.Member = nil
		i.User = &discordgo.User{ID: "u9", Username: "solo", GlobalName: "Solo"}

		h := NewInteractionHandler(session, machine, zap.NewNop())
		require.NoError(t, h.Handle(ctx, i))
		assert.Equal(t, "u9", machine.seen[0].UserID)
		assert.Equal(t, "Solo", machine.seen[0].Username)
	})
}

func TestButtonRows(t *testing.T) {
	rows, err := ButtonRows(signup.AnnouncementRows("r-1"))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0].(discordgo.ActionsRow).Components
	require.Len(t, first, 5)
	tank := first[0].(discordgo.Button)
	assert.Equal(t, discordgo.PrimaryButton, tank.Style)
	tok, err := signup.ParseToken(tank.CustomID)
	require.NoError(t, err)
	assert.Equal(t, raid.RoleTank, tok.Role)

	leave := rows[1].(discordgo.ActionsRow).Components[2].(discordgo.Button)
	assert.Equal(t, discordgo.DangerButton, leave.Style)
	for _, row := range rows {
		for _, c := range row.(discordgo.ActionsRow).Components {
			assert.LessOrEqual(t, len(c.(discordgo.Button).CustomID), signup.MaxTokenLength)
		}
	}
}

func TestResponseTruncatesOptions(t *testing.T) {
	options := make([]signup.Option, 30)
	for i := range options {
		options[i] = signup.Option{Label: "x", Value: "x"}
	}
	resp, err := Response(signup.RoleToken("r-1", raid.RoleTank), &signup.Reply{
		State:   signup.StateClassSelect,
		Next:    signup.ClassToken("r-1", raid.RoleTank),
		Options: options,
	})
	require.NoError(t, err)
	menu := resp.Data.Components[0].(discordgo.ActionsRow).Components[0].(discordgo.SelectMenu)
	assert.Len(t, menu.Options, maxSelectOptions)
}
