// Package resolve maps canonical answer options to the raw tokens found in a
// tabulated export column. Matching is a fixed, priority-ordered cascade of
// strategies: the first strategy that claims at least one raw token wins and
// later strategies are never consulted for that option. The order is encoded
// as an explicit slice so it can be audited and tested per strategy.
package resolve

import (
	"strings"
	"unicode"

	"github.com/surveyforge/tabulator/internal/textnorm"
)

// request carries one option-vs-column resolution through the cascade.
type request struct {
	optionText string
	position   int
	values     []string // distinct raw tokens, first-seen order
	codes      map[int]string
}

type strategy func(req request) []string

// cascade is evaluated left to right with early exit. A broad
// substring/word-overlap fuzzy fallback used to sit at the end of this list;
// it produced false positives and was removed. Do not reintroduce it.
var cascade = []strategy{
	matchExplicitCode,
	matchExact,
	matchCaseInsensitive,
	matchParenStripped,
	matchQuotesDashes,
	matchPunctuation,
	matchLeadingNumber,
	matchTrailingText,
	matchLikertKeyword,
	matchLikertPositional,
	matchNumericPositional,
	matchRatingWord,
	matchLetterCode,
}

// Resolve returns the raw tokens that mean the given option. values must be
// the column's distinct raw tokens in first-seen order; codes is the optional
// irregular letter-code mapping (see BuildCodeMap) and is nil in the
// reference configuration. An empty result is not an error: it means no
// respondent row will be counted for this option.
func Resolve(optionText string, position int, values []string, codes map[int]string) []string {
	req := request{optionText: optionText, position: position, values: values, codes: codes}
	for _, s := range cascade {
		if matched := s(req); len(matched) > 0 {
			return matched
		}
	}
	return nil
}

func matchExplicitCode(req request) []string {
	if req.codes == nil {
		return nil
	}
	code, ok := req.codes[req.position]
	if !ok {
		return nil
	}
	var out []string
	for _, v := range req.values {
		if strings.EqualFold(strings.TrimSpace(v), code) {
			out = append(out, v)
		}
	}
	return out
}

func matchExact(req request) []string {
	var out []string
	for _, v := range req.values {
		if v == req.optionText {
			out = append(out, v)
		}
	}
	return out
}

func matchCaseInsensitive(req request) []string {
	want := textnorm.Fold(req.optionText)
	var out []string
	for _, v := range req.values {
		if textnorm.Fold(v) == want {
			out = append(out, v)
		}
	}
	return out
}

func matchParenStripped(req request) []string {
	want := textnorm.Fold(textnorm.StripParens(req.optionText))
	if want == "" {
		return nil
	}
	var out []string
	for _, v := range req.values {
		if textnorm.Fold(v) == want {
			out = append(out, v)
		}
	}
	return out
}

func matchQuotesDashes(req request) []string {
	want := textnorm.Fold(textnorm.NormalizeQuotesAndDashes(req.optionText))
	var out []string
	for _, v := range req.values {
		if textnorm.Fold(textnorm.NormalizeQuotesAndDashes(v)) == want {
			out = append(out, v)
		}
	}
	return out
}

func matchPunctuation(req request) []string {
	want := textnorm.NormalizePunctuation(textnorm.Fold(textnorm.StripParens(req.optionText)))
	if want == "" {
		return nil
	}
	var out []string
	for _, v := range req.values {
		if textnorm.NormalizePunctuation(textnorm.Fold(v)) == want {
			out = append(out, v)
		}
	}
	return out
}

// Time-of-day and duration phrases must never be matched on their leading
// digits: "6:30 a.m." is not "6:00 a.m.", and "6 months to 1 year" is not
// "6 to 10 years".
var timeMarkers = []string{"a.m.", "p.m.", ":"}
var timeWords = []string{"am", "pm"}
var durationWords = []string{"minutes", "hours", "years", "days", "weeks", "months"}

func hasTimeOrDuration(folded string) bool {
	for _, m := range timeMarkers {
		if strings.Contains(folded, m) {
			return true
		}
	}
	for _, f := range strings.Fields(folded) {
		for _, w := range timeWords {
			if f == w {
				return true
			}
		}
	}
	for _, w := range durationWords {
		if strings.Contains(folded, w) {
			return true
		}
	}
	return false
}

func leadingDigits(s string) string {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}

// matchLeadingNumber claims the first raw token whose leading digit run
// equals the option's, e.g. option "5 (Strongly Agree)" vs raw "5".
func matchLeadingNumber(req request) []string {
	stripped := textnorm.StripParens(req.optionText)
	want := leadingDigits(stripped)
	if want == "" || hasTimeOrDuration(textnorm.Fold(req.optionText)) {
		return nil
	}
	for _, v := range req.values {
		got := leadingDigits(v)
		if got != "" && got == want {
			return []string{v}
		}
	}
	return nil
}

// matchTrailingText handles raw tokens like "5 strongly agree" against the
// canonical option "Strongly Agree": the text after the leading digits must
// equal the paren-stripped option text, not merely contain it.
func matchTrailingText(req request) []string {
	want := textnorm.Fold(textnorm.StripParens(req.optionText))
	if want == "" {
		return nil
	}
	var out []string
	for _, v := range req.values {
		tv := strings.TrimSpace(v)
		digits := leadingDigits(tv)
		if digits == "" {
			continue
		}
		rest := strings.TrimSpace(tv[len(digits):])
		if rest == "" {
			continue
		}
		if textnorm.Fold(rest) == want {
			out = append(out, v)
		}
	}
	return out
}

// likertTerms is ordered longest/most specific first so "strongly disagree"
// is never shadowed by "disagree".
var likertTerms = []string{
	"strongly disagree",
	"strongly agree",
	"neither agree nor disagree",
	"neither agree or disagree",
	"disagree",
	"agree",
}

func likertTermIn(folded string) string {
	for _, t := range likertTerms {
		if strings.Contains(folded, t) {
			return t
		}
	}
	return ""
}

// matchLikertKeyword tries only the first likert term found in the option
// text; if no raw token equals it, the cascade moves on.
func matchLikertKeyword(req request) []string {
	term := likertTermIn(textnorm.Fold(req.optionText))
	if term == "" {
		return nil
	}
	var out []string
	for _, v := range req.values {
		if textnorm.Fold(v) == term {
			out = append(out, v)
		}
	}
	return out
}

var likertAnchors = []string{"strongly agree", "agree", "disagree", "strongly disagree"}

func columnLooksLikert(values []string) bool {
	for _, v := range values {
		f := textnorm.Fold(v)
		for _, a := range likertAnchors {
			if f == a {
				return true
			}
		}
	}
	return false
}

// matchLikertPositional maps option positions onto a likert column when the
// option texts themselves carry no agree/disagree vocabulary (e.g. numeric
// labels were replaced by a description elsewhere).
func matchLikertPositional(req request) []string {
	if likertTermIn(textnorm.Fold(req.optionText)) != "" {
		return nil
	}
	// Purely-digit labels are the numeric-scale rule's territory, which maps
	// positions in the opposite direction.
	if allDigits(strings.TrimSpace(req.optionText)) {
		return nil
	}
	if !columnLooksLikert(req.values) {
		return nil
	}
	return likertValuesAt(req.values, req.position, false)
}

// matchNumericPositional applies when the option text is purely digits.
// Position runs the opposite direction from the positional fallback above:
// position 0 is the negative pole.
func matchNumericPositional(req request) []string {
	text := strings.TrimSpace(req.optionText)
	if text == "" || !allDigits(text) {
		return nil
	}
	return likertValuesAt(req.values, req.position, true)
}

// likertValuesAt selects raw tokens for a five-point agreement position.
// reversed=false: 0 is "strongly agree"; reversed=true: 0 is "strongly
// disagree". Position 2 takes any token containing "neither".
func likertValuesAt(values []string, position int, reversed bool) []string {
	if reversed {
		position = 4 - position
	}
	var want string
	switch position {
	case 0:
		want = "strongly agree"
	case 1:
		want = "agree"
	case 2:
		var out []string
		for _, v := range values {
			if strings.Contains(textnorm.Fold(v), "neither") {
				out = append(out, v)
			}
		}
		return out
	case 3:
		want = "disagree"
	case 4:
		want = "strongly disagree"
	default:
		return nil
	}
	var out []string
	for _, v := range values {
		if textnorm.Fold(v) == want {
			out = append(out, v)
		}
	}
	return out
}

// ratingWords is ordered so "very good" is found before "good".
var ratingWords = []string{"excellent", "very good", "good", "fair", "poor"}

func matchRatingWord(req request) []string {
	folded := textnorm.Fold(req.optionText)
	for _, w := range ratingWords {
		if !strings.Contains(folded, w) {
			continue
		}
		var out []string
		for _, v := range req.values {
			if textnorm.Fold(v) == w {
				out = append(out, v)
			}
		}
		return out
	}
	// Option text carries no rating word; fall back to position if the
	// column speaks the rating vocabulary.
	if !columnHasRatingWord(req.values) {
		return nil
	}
	if req.position < 0 || req.position >= len(ratingWords) {
		return nil
	}
	want := ratingWords[req.position]
	var out []string
	for _, v := range req.values {
		if textnorm.Fold(v) == want {
			out = append(out, v)
		}
	}
	return out
}

func columnHasRatingWord(values []string) bool {
	for _, v := range values {
		f := textnorm.Fold(v)
		for _, w := range ratingWords {
			if f == w {
				return true
			}
		}
	}
	return false
}

func matchLetterCode(req request) []string {
	if req.position < 0 || req.position > 25 {
		return nil
	}
	want := string(rune('a' + req.position))
	var out []string
	for _, v := range req.values {
		if textnorm.Fold(v) == want {
			out = append(out, v)
		}
	}
	return out
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}
