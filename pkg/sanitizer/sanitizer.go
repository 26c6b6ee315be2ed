package sanitizer

import (
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reKeepLettersDigits = regexp.MustCompile(`[^0-9\p{L}]+`)
	reKeepLettersOnly   = regexp.MustCompile(`[^\p{L}]+`)
	reMultiUnderscore   = regexp.MustCompile(`_+`)
	reMultiSpace        = regexp.MustCompile(`\s+`)
)

func trimAndLower(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return s
}

func collapseUnderscores(s string) string {
	s = reMultiUnderscore.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// SanitizeName keeps letters and digits, collapsing everything else into
// single underscores. Used for product names so lookups are accent and
// punctuation tolerant.
func SanitizeName(input string) string {
	p := Pipeline{
		trimAndLower,
		func(s string) string { return reKeepLettersDigits.ReplaceAllString(s, "_") },
		collapseUnderscores,
	}
	return p.Apply(input)
}

// SanitizeCityOrCategory keeps letters only.
func SanitizeCityOrCategory(input string) string {
	p := Pipeline{
		trimAndLower,
		func(s string) string { return reKeepLettersOnly.ReplaceAllString(s, "_") },
		collapseUnderscores,
	}
	return p.Apply(input)
}

// SanitizeText trims and collapses whitespace without touching the
// characters themselves. Used for free-form descriptions.
func SanitizeText(input string) string {
	return reMultiSpace.ReplaceAllString(strings.TrimSpace(input), " ")
}

func SanitizeSlice(values []string, strategy Strategy) []string {
	seen := make(map[string]struct{})
	out := []string{}

	for _, v := range values {
		s := strategy(v)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}
