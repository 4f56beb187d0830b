package raid

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidPayload reports a payload without a usable raid id.
var ErrInvalidPayload = errors.New("raid: invalid payload")

// MaxRaidIDLength bounds the query-escaped raid id. Signup component ids
// embed it and Discord rejects custom ids over 100 bytes.
const MaxRaidIDLength = 64

// Caps holds optional per-role capacities. Zero means uncapped.
type Caps struct {
	Tank   int `json:"tank"`
	Healer int `json:"healer"`
	Melee  int `json:"melee"`
	Ranged int `json:"ranged"`
}

// For returns the cap for role, or 0 for roles that are never capped.
func (c *Caps) For(role Role) int {
	if c == nil {
		return 0
	}
	switch role {
	case RoleTank:
		return c.Tank
	case RoleHealer:
		return c.Healer
	case RoleMelee:
		return c.Melee
	case RoleRanged:
		return c.Ranged
	}
	return 0
}

// Empty reports whether no cap is set.
func (c *Caps) Empty() bool {
	return c == nil || (c.Tank == 0 && c.Healer == 0 && c.Melee == 0 && c.Ranged == 0)
}

// Payload is one raid as decoded from an export. The JSON form matches
// the addon export.
type Payload struct {
	RaidID     string `json:"raidId"`
	RaidTitle  string `json:"raidTitle"`
	Difficulty string `json:"difficulty"`
	StartAt    int64  `json:"startAt"`
	EndAt      int64  `json:"endAt,omitempty"`
	Notes      string `json:"notes,omitempty"`
	Caps       *Caps  `json:"caps,omitempty"`
}

// Validate checks the fields the reconciler cannot default.
func (p Payload) Validate() error {
	return ValidateRaidID(p.RaidID)
}

// ValidateRaidID rejects empty ids and ids too long to carry in a signup
// component.
func ValidateRaidID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: missing raid id", ErrInvalidPayload)
	}
	if n := len(url.QueryEscape(id)); n > MaxRaidIDLength {
		return fmt.Errorf("%w: raid id is %d bytes escaped, limit %d", ErrInvalidPayload, n, MaxRaidIDLength)
	}
	return nil
}

// Role is a signup role.
type Role string

const (
	RoleTank   Role = "TANK"
	RoleHealer Role = "HEALER"
	RoleMelee  Role = "MELEE"
	RoleRanged Role = "RANGED"
	RoleMaybe  Role = "MAYBE"
	RoleAbsent Role = "ABSENT"
)

// Roles lists every role in display order.
var Roles = []Role{RoleTank, RoleHealer, RoleMelee, RoleRanged, RoleMaybe, RoleAbsent}

// ParseRole parses a role name case-insensitively.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Roles {
		if r == known {
			return r, true
		}
	}
	return "", false
}

// Label returns the display label of the role.
func (r Role) Label() string {
	if r == "" {
		return ""
	}
	s := string(r)
	return s[:1] + strings.ToLower(s[1:])
}
