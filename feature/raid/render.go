package raid

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
)

const (
	maxTitle       = 256
	maxDescription = 4096
	maxFieldValue  = 1024
	maxEventName   = 100
	maxEventDesc   = 1000
)

var difficultyColors = map[string]int{
	string(TierLFR):    0x1abc9c,
	string(TierNormal): 0x2ecc71,
	string(TierHeroic): 0xe67e22,
	string(TierMythic): 0xe74c3c,
}

const defaultColor = 0x5865f2

// DifficultyColor returns the embed color of a difficulty.
func DifficultyColor(difficulty string) int {
	if c, ok := difficultyColors[strings.ToUpper(strings.TrimSpace(difficulty))]; ok {
		return c
	}
	return defaultColor
}

// Clamp truncates s to max runes, marking the cut with an ellipsis.
func Clamp(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-1]) + "…"
}

// EmbedRenderer renders the signup embed.
type EmbedRenderer struct {
	Icons Icons
}

// Render builds the announcement: metadata fields followed by one field per
// role with counts and caps.
func (r EmbedRenderer) Render(meta Meta, caps *Caps, roster []RosterEntry) Announcement {
	groups := lo.GroupBy(roster, func(e RosterEntry) Role { return e.Role })

	difficulty := meta.Difficulty
	if difficulty == "" {
		difficulty = "—"
	}
	title := meta.RaidTitle
	if title == "" {
		title = meta.RaidID
	}

	fields := []EmbedField{
		{Name: "Difficulty", Value: difficulty, Inline: true},
		{Name: "Start", Value: fmt.Sprintf("<t:%d:F> (<t:%d:R>)", meta.StartAt, meta.StartAt), Inline: true},
		{Name: "End", Value: fmt.Sprintf("<t:%d:t>", meta.EndAt), Inline: true},
	}
	for _, role := range Roles {
		members := groups[role]
		count := fmt.Sprintf("%d", len(members))
		if limit := caps.For(role); limit > 0 {
			count = fmt.Sprintf("%d/%d", len(members), limit)
		}
		fields = append(fields, EmbedField{
			Name:   fmt.Sprintf("%s %s (%s)", RoleIcon(role), role.Label(), count),
			Value:  Clamp(r.players(members), maxFieldValue),
			Inline: true,
		})
	}

	return Announcement{
		RaidID:      meta.RaidID,
		Title:       Clamp(title, maxTitle),
		Description: Clamp(meta.Notes, maxDescription),
		Color:       DifficultyColor(meta.Difficulty),
		Fields:      fields,
		Footer:      "RaidID: " + meta.RaidID,
	}
}

func (r EmbedRenderer) players(entries []RosterEntry) string {
	if len(entries) == 0 {
		return "—"
	}
	lines := lo.Map(entries, func(e RosterEntry, _ int) string {
		icon := "•"
		if e.ClassKey != "" && e.SpecKey != "" {
			icon = r.Icons.For(e.ClassKey, e.SpecKey, e.Role)
		}
		return icon + " " + e.DisplayName
	})
	return strings.Join(lines, "\n")
}
