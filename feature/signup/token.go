package signup

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"raidtrack/feature/raid"
)

// ErrInvalidToken reports a custom id that is not a signup token.
var ErrInvalidToken = errors.New("signup: invalid token")

// MaxTokenLength is the longest custom id Discord accepts.
const MaxTokenLength = 100

const tokenPrefix = "rt"

// Step identifies what a component does when used.
type Step string

const (
	StepRole       Step = "role"
	StepClass      Step = "class"
	StepSpec       Step = "spec"
	StepProfile    Step = "profile"
	StepChangeRole Step = "changerole"
)

// Token is the conversation state carried by one component.
type Token struct {
	Step   Step
	RaidID string
	Role   raid.Role
	Class  string
}

// RoleToken is carried by the role buttons of an announcement.
func RoleToken(raidID string, role raid.Role) Token {
	return Token{Step: StepRole, RaidID: raidID, Role: role}
}

// ClassToken is carried by the class select shown after a role is picked.
func ClassToken(raidID string, role raid.Role) Token {
	return Token{Step: StepClass, RaidID: raidID, Role: role}
}

// SpecToken is carried by the spec select of class.
func SpecToken(raidID string, role raid.Role, class string) Token {
	return Token{Step: StepSpec, RaidID: raidID, Role: role, Class: class}
}

// ProfileToken opens the profile editor.
func ProfileToken(raidID string) Token {
	return Token{Step: StepProfile, RaidID: raidID}
}

// ChangeRoleToken offers the role buttons again to a signed up player.
func ChangeRoleToken(raidID string) Token {
	return Token{Step: StepChangeRole, RaidID: raidID}
}

// Encode renders the token as rt:<step>:<raid>[:<role>[:<class>]].
func (t Token) Encode() (string, error) {
	if err := t.validate(); err != nil {
		return "", err
	}
	parts := []string{tokenPrefix, string(t.Step), url.QueryEscape(t.RaidID)}
	switch t.Step {
	case StepRole, StepClass:
		parts = append(parts, string(t.Role))
	case StepSpec:
		parts = append(parts, string(t.Role), t.Class)
	}
	s := strings.Join(parts, ":")
	if len(s) > MaxTokenLength {
		return "", fmt.Errorf("%w: %d bytes exceeds %d", ErrInvalidToken, len(s), MaxTokenLength)
	}
	return s, nil
}

// ParseToken decodes a custom id.
func ParseToken(s string) (Token, error) {
	if len(s) > MaxTokenLength {
		return Token{}, fmt.Errorf("%w: too long", ErrInvalidToken)
	}
	parts := strings.Split(s, ":")
	if len(parts) < 3 || parts[0] != tokenPrefix {
		return Token{}, fmt.Errorf("%w: %q", ErrInvalidToken, s)
	}
	raidID, err := url.QueryUnescape(parts[2])
	if err != nil {
		return Token{}, fmt.Errorf("%w: raid id: %w", ErrInvalidToken, err)
	}

	t := Token{Step: Step(parts[1]), RaidID: raidID}
	want := 3
	switch t.Step {
	case StepRole, StepClass:
		want = 4
	case StepSpec:
		want = 5
	case StepProfile, StepChangeRole:
	default:
		return Token{}, fmt.Errorf("%w: unknown step %q", ErrInvalidToken, parts[1])
	}
	if len(parts) != want {
		return Token{}, fmt.Errorf("%w: %q", ErrInvalidToken, s)
	}
	if want >= 4 {
		role, ok := raid.ParseRole(parts[3])
		if !ok {
			return Token{}, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, parts[3])
		}
		t.Role = role
	}
	if want == 5 {
		t.Class = raid.NormalizeClass(parts[4])
	}
	if err := t.validate(); err != nil {
		return Token{}, err
	}
	return t, nil
}

func (t Token) validate() error {
	if t.RaidID == "" {
		return fmt.Errorf("%w: missing raid id", ErrInvalidToken)
	}
	switch t.Step {
	case StepRole, StepClass, StepSpec:
		if _, ok := raid.ParseRole(string(t.Role)); !ok {
			return fmt.Errorf("%w: unknown role %q", ErrInvalidToken, t.Role)
		}
	case StepProfile, StepChangeRole:
	default:
		return fmt.Errorf("%w: unknown step %q", ErrInvalidToken, t.Step)
	}
	if t.Step == StepSpec && !raid.IsClass(t.Class) {
		return fmt.Errorf("%w: unknown class %q", ErrInvalidToken, t.Class)
	}
	return nil
}
