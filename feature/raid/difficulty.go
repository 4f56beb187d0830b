package raid

import "strings"

// Tier is a normalized difficulty.
type Tier string

const (
	TierLFR    Tier = "LFR"
	TierNormal Tier = "NORMAL"
	TierHeroic Tier = "HEROIC"
	TierMythic Tier = "MYTHIC"
)

// PresetConfig is one raid preset from the addon's saved variables.
type PresetConfig struct {
	// Name is the lower-cased preset name.
	Name string
	// SelectedDifficulty is the explicit difficulty choice, if any.
	SelectedDifficulty string
	// Bosses maps boss -> tier label -> contribution.
	Bosses map[string]map[string]int64
}

// ClassifyTier folds a free-form difficulty label into one of the three
// main tiers by prefix: "myth..." is MYTHIC, "hero..." or "hc..." is HEROIC,
// everything else is NORMAL.
func ClassifyTier(label string) Tier {
	s := strings.ToLower(strings.TrimSpace(label))
	switch {
	case strings.HasPrefix(s, "myth"):
		return TierMythic
	case strings.HasPrefix(s, "hero"), strings.HasPrefix(s, "hc"):
		return TierHeroic
	default:
		return TierNormal
	}
}

// ResolveDifficulty derives the tier of a preset. An explicit selection
// wins. Otherwise boss contributions are summed per tier and the largest
// strictly positive sum wins, ties going to the higher tier. Anything else
// is NORMAL.
func ResolveDifficulty(preset *PresetConfig) Tier {
	if preset == nil {
		return TierNormal
	}
	if strings.TrimSpace(preset.SelectedDifficulty) != "" {
		return ClassifyTier(preset.SelectedDifficulty)
	}

	sums := make(map[Tier]int64, 3)
	for _, tiers := range preset.Bosses {
		for label, n := range tiers {
			sums[ClassifyTier(label)] += n
		}
	}

	best, bestSum := TierNormal, int64(0)
	for _, tier := range []Tier{TierMythic, TierHeroic, TierNormal} {
		if sums[tier] > bestSum {
			best, bestSum = tier, sums[tier]
		}
	}
	return best
}

// NormalizeDifficulty upper-cases a difficulty label from a JSON export and
// expands the single letter aliases. Unknown labels pass through.
func NormalizeDifficulty(label string) string {
	s := strings.ToUpper(strings.TrimSpace(label))
	switch s {
	case "N", "NORMAL":
		return string(TierNormal)
	case "H", "HC", "HEROIC":
		return string(TierHeroic)
	case "M", "MYTHIC":
		return string(TierMythic)
	case "LFR":
		return string(TierLFR)
	}
	return s
}
