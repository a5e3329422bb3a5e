// Package scales decides which survey questions carry a numeric reading
// (rating, tenure, age, commute, sleep, communication time, likert,
// overtime) and computes count-weighted averages for those that do.
package scales

import (
	"strings"

	"github.com/surveyforge/tabulator/internal/textnorm"
)

// Kind identifies one of the supported numeric question types.
type Kind string

const (
	KindRating        Kind = "rating"
	KindTenure        Kind = "tenure"
	KindAge           Kind = "age"
	KindCommute       Kind = "commute"
	KindSleep         Kind = "sleep"
	KindCommunication Kind = "communication"
	KindLikert        Kind = "likert"
	KindOvertime      Kind = "overtime"
)

// Config describes how a question's categorical answers convert to numbers.
// Values keys are normalized (lower-case) option texts; range-valued options
// are represented by their bucket midpoint. Codes maps letter or digit codes
// to the same values. Exclude lists raw-value substrings whose respondents
// drop out of the average entirely (never counted as zero).
type Config struct {
	Kind    Kind
	Label   string
	Values  map[string]float64
	Codes   map[string]float64
	Exclude []string
}

// Classify inspects a question and decides whether it qualifies for a
// weighted-average computation. Rules are evaluated in a fixed order and the
// first hit wins; nil means the question has no numeric reading.
// optionTexts may be nil when the caller has no option list; only the likert
// rule looks at it. isLastQuestion marks the designated final question,
// which by convention asks about overtime.
func Classify(questionText string, optionTexts []string, isLastQuestion bool) *Config {
	q := textnorm.Fold(questionText)

	switch {
	case strings.Contains(q, "rate concept") || strings.Contains(q, "rate schedule"):
		return ratingConfig()
	case (strings.Contains(q, "years") || strings.Contains(q, "how long")) &&
		(strings.Contains(q, "company") || strings.Contains(q, "employed") || strings.Contains(q, "worked")):
		return tenureConfig()
	case strings.Contains(q, "age") &&
		(strings.Contains(q, "group") || strings.Contains(q, "old") || strings.Contains(q, "your age")):
		return ageConfig()
	case strings.Contains(q, "commute") || strings.Contains(q, "how far") || strings.Contains(q, "distance to work"):
		return commuteConfig()
	case strings.Contains(q, "hours of sleep") ||
		(strings.Contains(q, "how many hours") && strings.Contains(q, "sleep")):
		return sleepConfig()
	case strings.Contains(q, "communicat") &&
		(strings.Contains(q, "plant") || strings.Contains(q, "conditions") || strings.Contains(q, "daily")):
		return communicationConfig()
	case hasLikertPoles(optionTexts):
		return likertConfig()
	case isLastQuestion || strings.Contains(q, "how much overtime") ||
		(strings.Contains(q, "overtime") && (strings.Contains(q, "every week") || strings.Contains(q, "per week"))):
		return overtimeConfig()
	}
	return nil
}

// hasLikertPoles is a structural test on the option list, not the question
// text: both agreement extremes must be present.
func hasLikertPoles(optionTexts []string) bool {
	var sa, sd bool
	for _, o := range optionTexts {
		f := textnorm.Fold(o)
		if strings.Contains(f, "strongly agree") {
			sa = true
		}
		if strings.Contains(f, "strongly disagree") {
			sd = true
		}
	}
	return sa && sd
}

func ratingConfig() *Config {
	return &Config{
		Kind:  KindRating,
		Label: "Average Rating",
		Values: map[string]float64{
			"perfect":                  5,
			"great":                    4,
			"acceptable":               3,
			"needs work":               2,
			"never show me this again": 1,
			// Secondary vocabulary used by older exports.
			"excellent": 5,
			"very good": 4,
			"good":      3,
			"fair":      2,
			"poor":      1,
		},
		Codes: map[string]float64{"a": 5, "b": 4, "c": 3, "d": 2, "e": 1},
	}
}

func tenureConfig() *Config {
	return &Config{
		Kind:  KindTenure,
		Label: "Average Years",
		Values: map[string]float64{
			"less than 6 months": 0.25,
			"6 months to 1 year": 0.75,
			"1 to 5 years":       3,
			"5 to 10 years":      7.5,
			"10 to 20 years":     15,
			"over 20 years":      25,
			"more than 20 years": 25,
		},
	}
}

func ageConfig() *Config {
	return &Config{
		Kind:  KindAge,
		Label: "Average Age",
		Values: map[string]float64{
			"25 and under": 22,
			"26 to 35":     30.5,
			"36 to 45":     40.5,
			"46 to 55":     50.5,
			"over 55":      60,
		},
	}
}

func commuteConfig() *Config {
	return &Config{
		Kind:  KindCommute,
		Label: "Average Miles",
		Values: map[string]float64{
			"less than 5 miles": 2.5,
			"5 to 10 miles":     7.5,
			"10 to 20 miles":    15,
			"20 to 30 miles":    25,
			"over 30 miles":     35,
		},
	}
}

func sleepConfig() *Config {
	return &Config{
		Kind:  KindSleep,
		Label: "Average Hours",
		Values: map[string]float64{
			"less than 5 hours": 4,
			"5 to 6 hours":      5.5,
			"6 to 7 hours":      6.5,
			"7 to 8 hours":      7.5,
			"more than 8 hours": 9,
		},
		Exclude: []string{"i don't work that shift", "i do not work that shift", "n/a"},
	}
}

func communicationConfig() *Config {
	return &Config{
		Kind:  KindCommunication,
		Label: "Average Minutes",
		Values: map[string]float64{
			"less than 5 minutes": 2.5,
			"5 to 10 minutes":     7.5,
			"10 to 15 minutes":    12.5,
			"15 to 30 minutes":    22.5,
			"over 30 minutes":     40,
		},
	}
}

func likertConfig() *Config {
	return &Config{
		Kind:  KindLikert,
		Label: "Average Score",
		Values: map[string]float64{
			"strongly disagree":          1,
			"disagree":                   2,
			"neither agree nor disagree": 3,
			"neither agree or disagree":  3,
			"neither":                    3,
			"agree":                      4,
			"strongly agree":             5,
		},
		Codes: map[string]float64{
			"1": 1, "2": 2, "3": 3, "4": 4, "5": 5,
			"a": 1, "b": 2, "c": 3, "d": 4, "e": 5,
		},
	}
}

func overtimeConfig() *Config {
	return &Config{
		Kind:  KindOvertime,
		Label: "Average Hours",
		Values: map[string]float64{
			"none":           0,
			"1 to 5 hours":   3,
			"5 to 10 hours":  7.5,
			"10 to 15 hours": 12.5,
			"all i can get":  15,
		},
	}
}
