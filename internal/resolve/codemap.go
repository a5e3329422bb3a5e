package resolve

import (
	"sort"
	"strings"
	"unicode"
)

// BuildCodeMap inspects a column's distinct raw tokens for an irregular
// letter-coding scheme: every token is a single alphabetic character, but the
// set is not the standard a, b, c, ... run for the option count. When such a
// scheme is detected, the returned map assigns the codes to option positions
// in alphabetical order.
//
// The detector is gated off by default: the shipped behavior is to report no
// mapping and let the cascade fall through to text matching, which is what
// historical reports were built on. Pass enabled=true (config
// ENABLE_CODE_MAPPING) to reinstate it.
func BuildCodeMap(values []string, optionCount int, enabled bool) map[int]string {
	if !enabled {
		return nil
	}
	if len(values) == 0 || len(values) != optionCount {
		return nil
	}
	codes := make([]string, 0, len(values))
	seen := map[string]bool{}
	for _, v := range values {
		t := strings.ToLower(strings.TrimSpace(v))
		r := []rune(t)
		if len(r) != 1 || !unicode.IsLetter(r[0]) {
			return nil
		}
		if seen[t] {
			return nil
		}
		seen[t] = true
		codes = append(codes, t)
	}
	sort.Strings(codes)
	if isStandardRun(codes) {
		return nil
	}
	out := make(map[int]string, len(codes))
	for i, c := range codes {
		out[i] = c
	}
	return out
}

// isStandardRun reports whether codes is exactly a, b, c, ... for its length.
func isStandardRun(codes []string) bool {
	for i, c := range codes {
		if c != string(rune('a'+i)) {
			return false
		}
	}
	return true
}
