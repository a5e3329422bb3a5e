// Package textnorm holds the string transformations shared by the option
// resolver and the average calculator. Every function is total and
// idempotent: normalizing already-normalized text is a no-op.
package textnorm

import "strings"

// Fold lower-cases and trims. Callers that need case-insensitive comparison
// apply Fold themselves; the normalizers below do not change case.
func Fold(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// StripParens removes literal parentheses, then collapses whitespace runs and
// trims. "5 (Strongly Agree)" -> "5 Strongly Agree".
func StripParens(s string) string {
	s = strings.ReplaceAll(s, "(", "")
	s = strings.ReplaceAll(s, ")", "")
	return collapseSpaces(s)
}

var quoteDashReplacer = strings.NewReplacer(
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"–", "-", // en dash
	"—", "-", // em dash
)

// NormalizeQuotesAndDashes maps curly quotes to straight quotes and en/em
// dashes to hyphens. Lower-casing and trimming are the caller's job.
func NormalizeQuotesAndDashes(s string) string {
	return quoteDashReplacer.Replace(s)
}

// Corrupted byte sequences produced when an upstream export tool re-encodes
// UTF-8 punctuation as Windows-1252. Seen in the wild for en dash and right
// single quote.
var mojibakeReplacer = strings.NewReplacer(
	"â€“", "-", // "â€œ"-style triple for en dash
	"â€™", "'", // same for right single quote
)

var contractionReplacer = strings.NewReplacer(
	"don't", "do not",
	"won't", "will not",
	"can't", "cannot",
	"i'll", "i will",
	"you'll", "you will",
	"we'll", "we will",
	"they'll", "they will",
)

// NormalizePunctuation is the late-stage, most permissive normalization.
// It repairs known mojibake, drops commas, maps clause punctuation to
// periods, flattens hyphens to spaces ("last-minute" == "last minute"),
// expands a fixed contraction list, and squeezes period and space runs.
// Input is expected to be lower-cased by the caller when used for
// comparison, but the function itself is case-preserving except for the
// contraction expansion, which only fires on lower-case text.
func NormalizePunctuation(s string) string {
	s = mojibakeReplacer.Replace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, ";", ".")
	s = strings.ReplaceAll(s, ":", ".")
	s = strings.ReplaceAll(s, "–", "-")
	s = strings.ReplaceAll(s, "—", "-")
	s = strings.ReplaceAll(s, "-", " ")
	s = contractionReplacer.Replace(s)
	for strings.Contains(s, "..") {
		s = strings.ReplaceAll(s, "..", ".")
	}
	s = collapseSpaces(s)
	s = strings.TrimSuffix(s, ".")
	return strings.TrimSpace(s)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
