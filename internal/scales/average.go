package scales

import (
	"sort"
	"strconv"
	"strings"

	"github.com/surveyforge/tabulator/internal/textnorm"
)

// Average computes the count-weighted mean of a column under cfg. values is
// the column's distinct raw tokens with per-token respondent counts.
// Tokens matching an exclusion substring are dropped from numerator and
// denominator; tokens that resolve to no value are skipped the same way,
// never treated as zero. ok is false when no resolvable, non-excluded
// respondent exists.
func Average(values []string, counts map[string]int, cfg *Config) (avg float64, ok bool) {
	if cfg == nil {
		return 0, false
	}
	keys := keysLongestFirst(cfg.Values)

	var sum float64
	var n int
	for _, v := range values {
		c := counts[v]
		if c <= 0 {
			continue
		}
		folded := textnorm.Fold(v)
		if folded == "" || excluded(folded, cfg.Exclude) {
			continue
		}
		val, found := resolveValue(v, folded, keys, cfg)
		if !found {
			continue
		}
		sum += val * float64(c)
		n += c
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func excluded(folded string, exclude []string) bool {
	for _, e := range exclude {
		if e != "" && strings.Contains(folded, strings.ToLower(e)) {
			return true
		}
	}
	return false
}

// resolveValue tries, in order: exact key match, partial (containment either
// direction) against keys longest-first, code-map lookup, and — for likert
// scales only — a direct integer parse in [1,5].
func resolveValue(raw, folded string, keys []string, cfg *Config) (float64, bool) {
	if v, hit := cfg.Values[folded]; hit {
		return v, true
	}
	// Tokens shorter than three characters are letter/number codes, not
	// phrases; containment against them is meaningless and would shadow the
	// code map below.
	if len(folded) >= 3 {
		for _, k := range keys {
			if strings.Contains(folded, k) || strings.Contains(k, folded) {
				return cfg.Values[k], true
			}
		}
	}
	if cfg.Codes != nil {
		if v, hit := cfg.Codes[folded]; hit {
			return v, true
		}
		if v, hit := cfg.Codes[strings.TrimSpace(raw)]; hit {
			return v, true
		}
	}
	if cfg.Kind == KindLikert {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n >= 1 && n <= 5 {
			return float64(n), true
		}
	}
	return 0, false
}

// keysLongestFirst orders the mapping's keys so "neither agree nor disagree"
// is tried before "disagree" and "agree". Equal lengths fall back to
// lexicographic order to keep the result deterministic.
func keysLongestFirst(values map[string]float64) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		if len(keys[a]) != len(keys[b]) {
			return len(keys[a]) > len(keys[b])
		}
		return keys[a] < keys[b]
	})
	return keys
}
