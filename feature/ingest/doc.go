// Package ingest watches the addon's saved variables file and turns every
// change into raid payloads for the reconciler.
//
// A file is decoded in one of two modes. JSON mode reads an export string
// the addon stores under a single key. Lua mode, used when no export string
// is present, reads the addon's raid table directly and derives difficulty
// from its presets.
package ingest
