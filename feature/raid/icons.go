package raid

import "strings"

var roleIcons = map[Role]string{
	RoleTank:   "🛡️",
	RoleHealer: "✨",
	RoleMelee:  "⚔️",
	RoleRanged: "🏹",
	RoleMaybe:  "❔",
	RoleAbsent: "🚫",
}

// RoleIcon returns the unicode icon of a role.
func RoleIcon(role Role) string {
	if icon, ok := roleIcons[role]; ok {
		return icon
	}
	return "•"
}

// Icons resolves the emoji shown next to a player.
type Icons struct {
	// Custom maps "class_spec" keys (e.g. "death_knight_blood") to emoji ids.
	Custom map[string]string
	// AllowCustom enables Custom; without it only role icons are used.
	AllowCustom bool
}

// ParseEmojiMap parses "name:id" pairs separated by commas or whitespace.
// Names are normalized like IconKey.
func ParseEmojiMap(s string) map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\n'
	}) {
		name, id, ok := strings.Cut(pair, ":")
		if !ok {
			name, id, ok = strings.Cut(pair, "=")
		}
		name, id = normalizeIconToken(name), strings.TrimSpace(id)
		if ok && name != "" && id != "" {
			out[name] = id
		}
	}
	return out
}

// IconKey builds the custom emoji key for a class/spec pair.
func IconKey(classKey, specKey string) string {
	c := normalizeIconToken(classKey)
	switch c {
	case "deathknight":
		c = "death_knight"
	case "demonhunter":
		c = "demon_hunter"
	}
	s := normalizeIconToken(specKey)
	if c == "" || s == "" {
		return ""
	}
	return c + "_" + s
}

// For returns the custom class/spec emoji when configured, else the role icon.
func (i Icons) For(classKey, specKey string, role Role) string {
	if i.AllowCustom {
		if key := IconKey(classKey, specKey); key != "" {
			if id, ok := i.Custom[key]; ok {
				return "<:" + key + ":" + id + ">"
			}
		}
	}
	return RoleIcon(role)
}

func normalizeIconToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}
