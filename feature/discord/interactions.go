package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"raidtrack/feature/signup"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Discord allows 25 options per select menu.
const maxSelectOptions = 25

// Machine advances a signup conversation.
type Machine interface {
	Handle(ctx context.Context, in signup.Interaction) (*signup.Reply, error)
}

// InteractionHandler answers signup component interactions.
type InteractionHandler struct {
	session Session
	machine Machine
	timeout time.Duration
	logger  *zap.Logger
}

// NewInteractionHandler creates a handler answering through session.
func NewInteractionHandler(session Session, machine Machine, logger *zap.Logger) *InteractionHandler {
	return &InteractionHandler{session: session, machine: machine, timeout: 10 * time.Second, logger: logger}
}

// OnInteraction is registered with discordgo's AddHandler.
func (h *InteractionHandler) OnInteraction(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()
	if err := h.Handle(ctx, i.Interaction); err != nil {
		h.logger.Error("Failed to answer interaction", zap.String("interaction_id", i.ID), zap.Error(err))
	}
}

// Handle answers one interaction. Components whose custom id is not a
// signup token are ignored.
func (h *InteractionHandler) Handle(ctx context.Context, i *discordgo.Interaction) error {
	if i.Type != discordgo.InteractionMessageComponent {
		return nil
	}
	data := i.MessageComponentData()
	tok, err := signup.ParseToken(data.CustomID)
	if err != nil {
		return nil
	}

	user := interactionUser(i)
	if user == nil {
		return h.respond(ctx, i, ephemeral("Could not identify you."))
	}
	in := signup.Interaction{
		Scope:    i.GuildID,
		UserID:   user.ID,
		Username: displayNameOf(i.Member, user),
		Token:    tok,
	}
	if len(data.Values) > 0 {
		in.Value = data.Values[0]
	}

	reply, err := h.machine.Handle(ctx, in)
	if err != nil {
		h.logger.Warn("Signup interaction rejected",
			zap.String("raid_id", tok.RaidID),
			zap.String("user_id", user.ID),
			zap.String("step", string(tok.Step)),
			zap.Error(err),
		)
		return h.respond(ctx, i, ephemeral(errorMessage(err)))
	}

	resp, err := Response(tok, reply)
	if err != nil {
		return err
	}
	return h.respond(ctx, i, resp)
}

func (h *InteractionHandler) respond(ctx context.Context, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
	return h.session.InteractionRespond(i, resp, discordgo.WithContext(ctx))
}

// Response builds the answer to a reply. Selections made inside the
// ephemeral conversation update that message; buttons on the announcement
// open a new ephemeral one.
func Response(tok signup.Token, reply *signup.Reply) (*discordgo.InteractionResponse, error) {
	data := &discordgo.InteractionResponseData{
		Content: reply.Prompt,
		Flags:   discordgo.MessageFlagsEphemeral,
	}

	switch reply.State {
	case signup.StateClassSelect, signup.StateSpecSelect:
		id, err := reply.Next.Encode()
		if err != nil {
			return nil, err
		}
		data.Components = []discordgo.MessageComponent{selectRow(id, reply.Options)}
	case signup.StateRoleSelect:
		rows, err := ButtonRows([][]signup.Button{reply.Buttons})
		if err != nil {
			return nil, err
		}
		data.Components = rows
	default:
		data.Components = []discordgo.MessageComponent{}
	}

	typ := discordgo.InteractionResponseChannelMessageWithSource
	if tok.Step == signup.StepClass || tok.Step == signup.StepSpec {
		typ = discordgo.InteractionResponseUpdateMessage
	}
	return &discordgo.InteractionResponse{Type: typ, Data: data}, nil
}

// ButtonRows converts signup buttons to action rows. It fails when a
// token cannot be encoded as a custom id.
func ButtonRows(rows [][]signup.Button) ([]discordgo.MessageComponent, error) {
	out := make([]discordgo.MessageComponent, 0, len(rows))
	for _, row := range rows {
		buttons := make([]discordgo.MessageComponent, 0, len(row))
		for _, b := range row {
			id, err := b.Token.Encode()
			if err != nil {
				return nil, fmt.Errorf("button %q: %w", b.Label, err)
			}
			buttons = append(buttons, discordgo.Button{
				Label:    b.Label,
				Style:    buttonStyle(b.Style),
				CustomID: id,
			})
		}
		out = append(out, discordgo.ActionsRow{Components: buttons})
	}
	return out, nil
}

func selectRow(customID string, options []signup.Option) discordgo.ActionsRow {
	if len(options) > maxSelectOptions {
		options = options[:maxSelectOptions]
	}
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.SelectMenu{
			MenuType:    discordgo.StringSelectMenu,
			CustomID:    customID,
			Placeholder: "Choose…",
			Options: lo.Map(options, func(o signup.Option, _ int) discordgo.SelectMenuOption {
				return discordgo.SelectMenuOption{Label: o.Label, Value: o.Value}
			}),
		},
	}}
}

func buttonStyle(s signup.ButtonStyle) discordgo.ButtonStyle {
	switch s {
	case signup.StylePrimary:
		return discordgo.PrimaryButton
	case signup.StyleSuccess:
		return discordgo.SuccessButton
	case signup.StyleDanger:
		return discordgo.DangerButton
	default:
		return discordgo.SecondaryButton
	}
}

func ephemeral(content string) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content, Flags: discordgo.MessageFlagsEphemeral},
	}
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, signup.ErrUnknownRaid):
		return "This raid is no longer tracked."
	case errors.Is(err, signup.ErrInvalidSelection):
		return "That selection is not valid, please try again."
	case errors.Is(err, signup.ErrInvalidToken):
		return "This button is outdated."
	default:
		return "Something went wrong, please try again later."
	}
}

func interactionUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func displayNameOf(member *discordgo.Member, user *discordgo.User) string {
	if name := DisplayName(member); name != "" {
		return name
	}
	return DisplayName(&discordgo.Member{User: user})
}
