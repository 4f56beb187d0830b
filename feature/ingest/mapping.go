package ingest

import (
	"strings"

	"raidtrack/core/luatable"
	"raidtrack/core/utils"
	"raidtrack/feature/raid"
)

func (d *Decoder) decodeLua(text string) (*Result, error) {
	records, err := luatable.Records(text, d.instancesKey)
	if err != nil {
		return nil, err
	}
	presets := BuildPresets(text, d.presetsKey)

	res := &Result{Mode: ModeLua}
	for i, rec := range records {
		env, merr := d.mapRecord(i, rec, presets)
		if merr != nil {
			res.Skipped = append(res.Skipped, *merr)
			continue
		}
		res.Envelopes = append(res.Envelopes, *env)
	}
	return res, nil
}

// BuildPresets reads the preset table keyed by lower-cased preset name.
// A missing table yields an empty map.
func BuildPresets(text, key string) map[string]*raid.PresetConfig {
	presets := make(map[string]*raid.PresetConfig)
	root, err := luatable.Decode(text, key)
	if err != nil {
		return presets
	}

	for name, tbl := range root.Tables {
		preset := &raid.PresetConfig{
			Name:               strings.ToLower(strings.TrimSpace(name)),
			SelectedDifficulty: utils.FirstString(tbl.Map(), "selectedDifficulty", "difficulty"),
		}
		if bosses, ok := tbl.Tables["bosses"]; ok {
			preset.Bosses = make(map[string]map[string]int64, len(bosses.Tables))
			for boss, tiers := range bosses.Tables {
				counts := make(map[string]int64, len(tiers.Fields))
				for _, f := range tiers.Fields {
					if n, ok := utils.ToInt64(f.Value); ok {
						counts[f.Key] += n
					}
				}
				preset.Bosses[boss] = counts
			}
		}
		presets[preset.Name] = preset
	}
	return presets
}

func (d *Decoder) mapRecord(index int, rec map[string]any, presets map[string]*raid.PresetConfig) (*Envelope, *MappingError) {
	id := utils.FirstString(rec, "raidId", "id")
	if err := raid.ValidateRaidID(id); err != nil {
		return nil, &MappingError{Index: index, RaidID: id, Reason: idReason(err, id)}
	}
	start, ok := utils.FirstInt64(rec, "startAt", "start", "date", "time")
	if !ok || start <= 0 {
		return nil, &MappingError{Index: index, RaidID: id, Reason: "missing start time"}
	}

	scope := utils.FirstString(rec, "scope", "guildId")
	if scope == "" {
		scope = d.defaultScope
	}
	if scope == "" {
		return nil, &MappingError{Index: index, RaidID: id, Reason: "missing scope"}
	}

	title := utils.FirstString(rec, "raidTitle", "title", "name")
	if title == "" {
		title = id
	}
	end, _ := utils.FirstInt64(rec, "endAt", "end")

	difficulty := utils.FirstString(rec, "difficulty")
	if difficulty != "" {
		difficulty = raid.NormalizeDifficulty(difficulty)
	} else {
		preset := presets[strings.ToLower(utils.FirstString(rec, "preset", "presetName"))]
		difficulty = string(raid.ResolveDifficulty(preset))
	}

	return &Envelope{
		Scope: scope,
		Raid: raid.Payload{
			RaidID:     id,
			RaidTitle:  title,
			Difficulty: difficulty,
			StartAt:    start,
			EndAt:      max(end, 0),
			Notes:      utils.FirstString(rec, "notes", "note"),
			Caps:       recordCaps(rec),
		},
	}, nil
}

func recordCaps(rec map[string]any) *raid.Caps {
	capOf := func(role string) int {
		n, _ := utils.FirstInt64(rec, role+"Cap", "cap"+strings.ToUpper(role[:1])+role[1:])
		return int(max(n, 0))
	}
	caps := &raid.Caps{
		Tank:   capOf("tank"),
		Healer: capOf("healer"),
		Melee:  capOf("melee"),
		Ranged: capOf("ranged"),
	}
	if caps.Empty() {
		return nil
	}
	return caps
}

func idReason(err error, id string) string {
	if strings.TrimSpace(id) == "" {
		return "missing raid id"
	}
	return err.Error()
}
