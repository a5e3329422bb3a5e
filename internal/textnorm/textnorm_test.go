package textnorm

import "testing"

func TestStripParens(t *testing.T) {
	cases := []struct{ in, want string }{
		{"5 (Strongly Agree)", "5 Strongly Agree"},
		{"(a) Yes", "a Yes"},
		{"no parens", "no parens"},
		{"  spaced   ( out )  ", "spaced out"},
		{"", ""},
	}
	for _, c := range cases {
		if got := StripParens(c.in); got != c.want {
			t.Errorf("StripParens(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeQuotesAndDashes(t *testing.T) {
	in := "‘don’t’ “quote” 9–5 — ok"
	want := `'don't' "quote" 9-5 - ok`
	if got := NormalizeQuotesAndDashes(in); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalizePunctuation(t *testing.T) {
	cases := []struct{ in, want string }{
		{"last-minute", "last minute"},
		{"Friday-Saturday", "Friday Saturday"},
		{"don't know", "do not know"},
		{"won't say; maybe", "will not say. maybe"},
		{"i'll try, you'll see", "i will try you will see"},
		{"can't complain...", "cannot complain"},
		{"one, two, three.", "one two three"},
		{"a: b", "a. b"},
		{"9–5 shift", "9 5 shift"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizePunctuation(c.in); got != c.want {
			t.Errorf("NormalizePunctuation(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizePunctuationIdempotent(t *testing.T) {
	inputs := []string{"last-minute", "don't know; really", "a, b: c...", "plain"}
	for _, in := range inputs {
		once := NormalizePunctuation(in)
		if twice := NormalizePunctuation(once); twice != once {
			t.Errorf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestFold(t *testing.T) {
	if got := Fold("  Strongly Agree "); got != "strongly agree" {
		t.Errorf("Fold = %q", got)
	}
}
