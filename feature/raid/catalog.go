package raid

import "strings"

var classSpecs = map[string][]string{
	"WARRIOR":     {"ARMS", "FURY", "PROTECTION"},
	"PALADIN":     {"HOLY", "PROTECTION", "RETRIBUTION"},
	"HUNTER":      {"BEAST_MASTERY", "MARKSMANSHIP", "SURVIVAL"},
	"ROGUE":       {"ASSASSINATION", "OUTLAW", "SUBTLETY"},
	"PRIEST":      {"DISCIPLINE", "HOLY", "SHADOW"},
	"DEATHKNIGHT": {"BLOOD", "FROST", "UNHOLY"},
	"SHAMAN":      {"ELEMENTAL", "ENHANCEMENT", "RESTORATION"},
	"MAGE":        {"ARCANE", "FIRE", "FROST"},
	"WARLOCK":     {"AFFLICTION", "DEMONOLOGY", "DESTRUCTION"},
	"MONK":        {"BREWMASTER", "MISTWEAVER", "WINDWALKER"},
	"DRUID":       {"BALANCE", "FERAL", "GUARDIAN", "RESTORATION"},
	"DEMONHUNTER": {"HAVOC", "VENGEANCE"},
	"EVOKER":      {"DEVASTATION", "PRESERVATION", "AUGMENTATION"},
}

var classOrder = []string{
	"WARRIOR", "PALADIN", "HUNTER", "ROGUE", "PRIEST", "DEATHKNIGHT", "SHAMAN",
	"MAGE", "WARLOCK", "MONK", "DRUID", "DEMONHUNTER", "EVOKER",
}

var classLabels = map[string]string{
	"DEATHKNIGHT": "Death Knight",
	"DEMONHUNTER": "Demon Hunter",
}

// NormalizeClass turns "Death Knight" or "death-knight" into "DEATHKNIGHT".
func NormalizeClass(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToUpper(strings.TrimSpace(s)))
}

// NormalizeSpec turns "Beast Mastery" into "BEAST_MASTERY".
func NormalizeSpec(s string) string {
	return strings.NewReplacer(" ", "_", "-", "_").Replace(strings.ToUpper(strings.TrimSpace(s)))
}

// Classes returns the catalog classes in display order.
func Classes() []string {
	return append([]string(nil), classOrder...)
}

// Specs returns the specs of a class, or nil for an unknown class.
func Specs(class string) []string {
	specs, ok := classSpecs[NormalizeClass(class)]
	if !ok {
		return nil
	}
	return append([]string(nil), specs...)
}

// IsClass reports whether class is in the catalog.
func IsClass(class string) bool {
	_, ok := classSpecs[NormalizeClass(class)]
	return ok
}

// ValidateProfile normalizes a class/spec pair and checks it against the
// catalog.
func ValidateProfile(class, spec string) (classKey, specKey string, ok bool) {
	classKey, specKey = NormalizeClass(class), NormalizeSpec(spec)
	for _, s := range classSpecs[classKey] {
		if s == specKey {
			return classKey, specKey, true
		}
	}
	return "", "", false
}

// ClassLabel returns the display name of a class key.
func ClassLabel(classKey string) string {
	if label, ok := classLabels[classKey]; ok {
		return label
	}
	return titleWords(classKey)
}

// SpecLabel returns the display name of a spec key.
func SpecLabel(specKey string) string {
	return titleWords(specKey)
}

func titleWords(key string) string {
	words := strings.Split(strings.ToLower(key), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
