package raid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTier(t *testing.T) {
	tests := []struct {
		label string
		want  Tier
	}{
		{"Heroic Mode", TierHeroic},
		{"hc", TierHeroic},
		{"MYTHIC+", TierMythic},
		{"mythic", TierMythic},
		{"normal", TierNormal},
		{"", TierNormal},
		{"lfr", TierNormal},
		{"  Hero  ", TierHeroic},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyTier(tt.label), tt.label)
	}
}

func TestResolveDifficulty(t *testing.T) {
	t.Run("ExplicitSelectionWins", func(t *testing.T) {
		preset := &PresetConfig{
			SelectedDifficulty: "Mythic",
			Bosses:             map[string]map[string]int64{"Vexie": {"heroic": 10}},
		}
		assert.Equal(t, TierMythic, ResolveDifficulty(preset))
	})

	t.Run("LargestBossSum", func(t *testing.T) {
		preset := &PresetConfig{Bosses: map[string]map[string]int64{
			"Vexie":   {"heroic": 10, "normal": 0},
			"Stix":    {"heroic": 5, "mythic": 3},
			"Lockenz": {"normal": 4},
		}}
		assert.Equal(t, TierHeroic, ResolveDifficulty(preset))
	})

	t.Run("TieGoesToHigherTier", func(t *testing.T) {
		preset := &PresetConfig{Bosses: map[string]map[string]int64{
			"Vexie": {"heroic": 4, "mythic": 4},
		}}
		assert.Equal(t, TierMythic, ResolveDifficulty(preset))
	})

	t.Run("NoPositiveSumIsNormal", func(t *testing.T) {
		preset := &PresetConfig{Bosses: map[string]map[string]int64{
			"Vexie": {"heroic": 0, "mythic": -2},
		}}
		assert.Equal(t, TierNormal, ResolveDifficulty(preset))
	})

	t.Run("EmptyOrMissing", func(t *testing.T) {
		assert.Equal(t, TierNormal, ResolveDifficulty(&PresetConfig{}))
		assert.Equal(t, TierNormal, ResolveDifficulty(nil))
	})
}

func TestNormalizeDifficulty(t *testing.T) {
	assert.Equal(t, "HEROIC", NormalizeDifficulty("h"))
	assert.Equal(t, "MYTHIC", NormalizeDifficulty(" mythic "))
	assert.Equal(t, "NORMAL", NormalizeDifficulty("N"))
	assert.Equal(t, "LFR", NormalizeDifficulty("lfr"))
	assert.Equal(t, "TIMEWALKING", NormalizeDifficulty("Timewalking"))
}
