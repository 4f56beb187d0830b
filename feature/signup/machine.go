package signup

import (
	"context"
	"errors"
	"fmt"

	"raidtrack/core/logger"
	"raidtrack/feature/raid"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

var (
	// ErrInvalidSelection reports a class or spec outside the catalog.
	ErrInvalidSelection = errors.New("signup: invalid selection")
	// ErrUnknownRaid reports a token pointing at a raid that is not stored.
	ErrUnknownRaid = errors.New("signup: unknown raid")
)

// State is where the conversation stands after an interaction.
type State string

const (
	StateRoleSelect  State = "role_select"
	StateClassSelect State = "class_select"
	StateSpecSelect  State = "spec_select"
	StateCommitted   State = "committed"
)

// Interaction is one component use.
type Interaction struct {
	Scope    string
	UserID   string
	Username string
	Token    Token
	// Value is the selected option of a select menu.
	Value string
}

// Option is one entry of a select menu.
type Option struct {
	Label string
	Value string
}

// Reply tells the transport what to show next.
type Reply struct {
	State  State
	Prompt string
	// Next is the token of the select menu to show, for the select states.
	Next    Token
	Options []Option
	// Buttons are shown for StateRoleSelect.
	Buttons []Button
	// Entry is the saved signup, for StateCommitted.
	Entry *raid.SignupEntry
}

// Refresher queues an announcement refresh.
type Refresher interface {
	Queue(scope, raidID string) bool
}

// Machine runs the signup conversation.
type Machine struct {
	store     raid.Store
	refresher Refresher
	icons     raid.Icons
	logger    *zap.Logger
}

// NewMachine creates a signup machine.
func NewMachine(store raid.Store, refresher Refresher, icons raid.Icons, logger *zap.Logger) *Machine {
	return &Machine{store: store, refresher: refresher, icons: icons, logger: logger}
}

// Handle advances the conversation. Validation failures are returned as
// errors and leave the store untouched.
func (m *Machine) Handle(ctx context.Context, in Interaction) (*Reply, error) {
	tok := in.Token
	if err := tok.validate(); err != nil {
		return nil, err
	}
	if _, err := m.store.GetRaid(ctx, tok.RaidID); err != nil {
		if errors.Is(err, raid.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRaid, tok.RaidID)
		}
		return nil, err
	}

	switch tok.Step {
	case StepRole:
		return m.pickRole(ctx, in)
	case StepClass:
		return m.pickClass(in)
	case StepSpec:
		return m.pickSpec(ctx, in)
	case StepProfile:
		return m.changeProfile(ctx, in)
	case StepChangeRole:
		return &Reply{
			State:   StateRoleSelect,
			Prompt:  "Pick your new role:",
			Buttons: RoleButtons(tok.RaidID),
		}, nil
	}
	return nil, fmt.Errorf("%w: unknown step %q", ErrInvalidToken, tok.Step)
}

func (m *Machine) pickRole(ctx context.Context, in Interaction) (*Reply, error) {
	profile, err := m.store.GetProfile(ctx, in.Scope, in.UserID)
	if errors.Is(err, raid.ErrNotFound) {
		return classPrompt(in.Token.RaidID, in.Token.Role, "First time here! Pick your **class**:"), nil
	}
	if err != nil {
		return nil, err
	}
	return m.commit(ctx, in, in.Token.Role, profile)
}

func (m *Machine) pickClass(in Interaction) (*Reply, error) {
	if !raid.IsClass(in.Value) {
		return nil, fmt.Errorf("%w: class %q", ErrInvalidSelection, in.Value)
	}
	class := raid.NormalizeClass(in.Value)
	options := lo.Map(raid.Specs(class), func(spec string, _ int) Option {
		return Option{Label: raid.SpecLabel(spec), Value: spec}
	})
	return &Reply{
		State:   StateSpecSelect,
		Prompt:  fmt.Sprintf("Class: **%s** selected. Now choose **spec**:", raid.ClassLabel(class)),
		Next:    SpecToken(in.Token.RaidID, in.Token.Role, class),
		Options: options,
	}, nil
}

func (m *Machine) pickSpec(ctx context.Context, in Interaction) (*Reply, error) {
	class, spec, ok := raid.ValidateProfile(in.Token.Class, in.Value)
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrInvalidSelection, in.Token.Class, in.Value)
	}
	profile := &raid.PlayerProfile{Scope: in.Scope, UserID: in.UserID, ClassKey: class, SpecKey: spec}
	if err := m.store.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}
	return m.commit(ctx, in, in.Token.Role, profile)
}

func (m *Machine) changeProfile(ctx context.Context, in Interaction) (*Reply, error) {
	role := raid.RoleMaybe
	current, err := m.store.GetSignup(ctx, in.Token.RaidID, in.UserID)
	switch {
	case err == nil:
		role = current.Role
	case !errors.Is(err, raid.ErrNotFound):
		return nil, err
	}
	return classPrompt(in.Token.RaidID, role, "Pick your **class**:"), nil
}

func (m *Machine) commit(ctx context.Context, in Interaction, role raid.Role, profile *raid.PlayerProfile) (*Reply, error) {
	entry := &raid.SignupEntry{
		RaidID:   in.Token.RaidID,
		UserID:   in.UserID,
		Role:     role,
		Username: in.Username,
	}
	if err := m.store.UpsertSignup(ctx, entry); err != nil {
		return nil, err
	}

	log := logger.WithRaid(m.logger, in.Scope, in.Token.RaidID)
	if !m.refresher.Queue(in.Scope, in.Token.RaidID) {
		log.Warn("Refresh queue closed, announcement not refreshed")
	}
	log.Info("Signup saved",
		zap.String("user_id", in.UserID),
		zap.String("role", string(role)),
	)

	icon := m.icons.For(profile.ClassKey, profile.SpecKey, role)
	return &Reply{
		State: StateCommitted,
		Prompt: fmt.Sprintf("%s Saved: **%s** for **%s** (%s/%s).",
			icon, role, in.Username, raid.ClassLabel(profile.ClassKey), raid.SpecLabel(profile.SpecKey)),
		Entry: entry,
	}, nil
}

func classPrompt(raidID string, role raid.Role, prompt string) *Reply {
	options := lo.Map(raid.Classes(), func(class string, _ int) Option {
		return Option{Label: raid.ClassLabel(class), Value: class}
	})
	return &Reply{
		State:   StateClassSelect,
		Prompt:  prompt,
		Next:    ClassToken(raidID, role),
		Options: options,
	}
}
