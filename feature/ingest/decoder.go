package ingest

import (
	"errors"
	"fmt"
	"strings"

	"raidtrack/core/luatable"
	"raidtrack/feature/raid"

	"github.com/tidwall/gjson"
)

var (
	// ErrNoExport reports a file with neither a JSON export nor a raid table.
	ErrNoExport = errors.New("ingest: no export found")
	// ErrUnsupportedShape reports JSON that is neither an envelope nor a list
	// of envelopes.
	ErrUnsupportedShape = errors.New("ingest: unsupported export shape")
)

// Mode is the decoding path that produced a result.
type Mode string

const (
	ModeJSON Mode = "json"
	ModeLua  Mode = "lua"
)

// Envelope is one raid and the guild it belongs to.
type Envelope struct {
	Scope string       `json:"scope"`
	Raid  raid.Payload `json:"raid"`
}

// MappingError describes one record that could not be turned into a payload.
type MappingError struct {
	Index  int    `json:"index"`
	RaidID string `json:"raidId,omitempty"`
	Reason string `json:"reason"`
}

func (e *MappingError) Error() string {
	if e.RaidID != "" {
		return fmt.Sprintf("record %d (%s): %s", e.Index, e.RaidID, e.Reason)
	}
	return fmt.Sprintf("record %d: %s", e.Index, e.Reason)
}

// Result is the outcome of decoding one file.
type Result struct {
	Mode      Mode           `json:"mode"`
	Envelopes []Envelope     `json:"envelopes"`
	Skipped   []MappingError `json:"skipped,omitempty"`
}

// Decoder extracts raid payloads from saved variables text.
type Decoder struct {
	exportKey    string
	instancesKey string
	presetsKey   string
	defaultScope string
}

// NewDecoder creates a decoder. defaultScope is used for records that do not
// name their guild.
func NewDecoder(cfg Config, defaultScope string) *Decoder {
	return &Decoder{
		exportKey:    cfg.ExportKey,
		instancesKey: cfg.InstancesKey,
		presetsKey:   cfg.PresetsKey,
		defaultScope: strings.TrimSpace(defaultScope),
	}
}

// Decode prefers the JSON export and falls back to the raid table.
func (d *Decoder) Decode(text string) (*Result, error) {
	var jsonErr error
	if raw, err := luatable.LocateString(text, d.exportKey); err == nil && strings.TrimSpace(raw) != "" {
		res, err := d.DecodeJSON(raw)
		if err == nil {
			return res, nil
		}
		jsonErr = err
	}

	res, err := d.decodeLua(text)
	switch {
	case err == nil:
		return res, nil
	case jsonErr != nil:
		return nil, jsonErr
	case errors.Is(err, luatable.ErrRootNotFound):
		return nil, fmt.Errorf("%w: neither %s nor %s is set", ErrNoExport, d.exportKey, d.instancesKey)
	default:
		return nil, err
	}
}

// DecodeJSON decodes an export: one envelope or an array of envelopes.
func (d *Decoder) DecodeJSON(raw string) (*Result, error) {
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("%w: export is not valid JSON", ErrUnsupportedShape)
	}
	doc := gjson.Parse(raw)
	res := &Result{Mode: ModeJSON}

	switch {
	case doc.IsArray():
		for i, item := range doc.Array() {
			d.appendEnvelope(res, i, item)
		}
	case doc.IsObject() && doc.Get("raid").Exists():
		d.appendEnvelope(res, 0, doc)
	default:
		return nil, fmt.Errorf("%w: expected {scope, raid} or an array", ErrUnsupportedShape)
	}
	return res, nil
}

// DecodeEnvelope decodes a single envelope, as posted to the API.
func (d *Decoder) DecodeEnvelope(raw []byte) (*Envelope, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrUnsupportedShape)
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: expected {scope, raid}", ErrUnsupportedShape)
	}
	env, merr := d.envelope(0, doc)
	if merr != nil {
		return nil, merr
	}
	return env, nil
}

func (d *Decoder) appendEnvelope(res *Result, index int, item gjson.Result) {
	env, merr := d.envelope(index, item)
	if merr != nil {
		res.Skipped = append(res.Skipped, *merr)
		return
	}
	res.Envelopes = append(res.Envelopes, *env)
}

func (d *Decoder) envelope(index int, item gjson.Result) (*Envelope, *MappingError) {
	body := item.Get("raid")
	if !body.IsObject() {
		return nil, &MappingError{Index: index, Reason: "missing raid"}
	}
	p := payloadFromJSON(body)
	if err := p.Validate(); err != nil {
		return nil, &MappingError{Index: index, RaidID: p.RaidID, Reason: idReason(err, p.RaidID)}
	}

	scope := strings.TrimSpace(item.Get("scope").String())
	if scope == "" {
		scope = strings.TrimSpace(item.Get("guildId").String())
	}
	if scope == "" {
		scope = d.defaultScope
	}
	if scope == "" {
		return nil, &MappingError{Index: index, RaidID: p.RaidID, Reason: "missing scope"}
	}
	return &Envelope{Scope: scope, Raid: p}, nil
}

func payloadFromJSON(r gjson.Result) raid.Payload {
	p := raid.Payload{
		RaidID:     strings.TrimSpace(r.Get("raidId").String()),
		RaidTitle:  r.Get("raidTitle").String(),
		Difficulty: raid.NormalizeDifficulty(r.Get("difficulty").String()),
		StartAt:    unixSeconds(r.Get("startAt")),
		EndAt:      unixSeconds(r.Get("endAt")),
		Notes:      r.Get("notes").String(),
	}
	if caps := r.Get("caps"); caps.IsObject() {
		p.Caps = &raid.Caps{
			Tank:   int(caps.Get("tank").Int()),
			Healer: int(caps.Get("healer").Int()),
			Melee:  int(caps.Get("melee").Int()),
			Ranged: int(caps.Get("ranged").Int()),
		}
	}
	return p
}

func unixSeconds(r gjson.Result) int64 {
	n := r.Int()
	if n < 0 {
		return 0
	}
	return n
}
