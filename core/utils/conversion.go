package utils

import (
	"strings"

	"github.com/spf13/cast"
)

// ToInt64 converts numbers, numeric strings and byte slices to int64.
// Floats are truncated. Unconvertible values yield 0 and false.
func ToInt64(val any) (int64, bool) {
	switch v := val.(type) {
	case nil:
		return 0, false
	case []byte:
		val = string(v)
	case float64:
		return int64(v), true
	case float32:
		return int64(v), true
	}
	if s, ok := val.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false
		}
		if n, err := cast.ToInt64E(s); err == nil {
			return n, true
		}
		f, err := cast.ToFloat64E(s)
		if err != nil {
			return 0, false
		}
		return int64(f), true
	}
	n, err := cast.ToInt64E(val)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ToInt is ToInt64 narrowed to int, ignoring failures.
func ToInt(val any) int {
	n, _ := ToInt64(val)
	return int(n)
}

// ToString converts scalars to their string form. Nil yields "".
func ToString(val any) string {
	if b, ok := val.([]byte); ok {
		return string(b)
	}
	return cast.ToString(val)
}

// ToBool converts bools, numbers (1 is true) and strings ("1", "true").
func ToBool(val any) bool {
	switch v := val.(type) {
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s == "1" || s == "true" || s == "yes"
	case []byte:
		return ToBool(string(v))
	case bool:
		return v
	}
	n, ok := ToInt64(val)
	return ok && n == 1
}

// FirstString returns the first non-empty string value among keys.
func FirstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s := strings.TrimSpace(ToString(v)); s != "" {
				return s
			}
		}
	}
	return ""
}

// FirstInt64 returns the first value among keys that converts to an int64.
func FirstInt64(m map[string]any, keys ...string) (int64, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if n, ok := ToInt64(v); ok {
				return n, true
			}
		}
	}
	return 0, false
}
