package stations

import "strings"

// The upstream tooling that produces placemark exports writes a handful of
// placeholder values where it has no data: the literal strings "nan"/"NaN"
// (a float sentinel leaking through string conversion), "null", and "-"
// (the remote datastore's own placeholder). All of them mean "no value".
// Normalization happens once here, at the canonical-station boundary,
// instead of scattered per-field comparisons.

// CleanText normalizes free text: placeholder sentinels and whitespace-only
// values collapse to the empty string. Canonical notes are always a plain
// string, never null or a sentinel.
func CleanText(s string) string {
	trimmed := strings.TrimSpace(s)
	switch trimmed {
	case "", "nan", "NaN", "null", "-":
		return ""
	}
	return s
}

// IsBlank reports whether a remote field value counts as empty for the
// fill-if-empty policy: absent, null, empty, whitespace-only, or the "-"
// placeholder.
func IsBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	return CleanText(s) == ""
}

// TextEqual compares two free-text values treating nil and the empty string
// as equal. Remote fields arrive as any (possibly nil); source fields are
// already cleaned strings.
func TextEqual(a, b any) bool {
	return asText(a) == asText(b)
}

func asText(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
