package formmodel

import (
	"regexp"
	"strings"
)

var wordSeparators = regexp.MustCompile(`[_\-\s]+`)

// DefaultLabeler converts a field name into a human-friendly label, splitting
// on underscores, dashes, and camelCase boundaries: "maxTurns" becomes
// "Max turns", "llm_config" becomes "Llm Config".
func DefaultLabeler(name string) string {
	if name == "" {
		return ""
	}

	var segments []string
	for _, word := range wordSeparators.Split(name, -1) {
		if word == "" {
			continue
		}
		spaced := insertCamelBoundaries(word)
		lower := strings.ToLower(spaced)
		segments = append(segments, strings.ToUpper(lower[:1])+lower[1:])
	}
	return strings.TrimSpace(strings.Join(segments, " "))
}

func insertCamelBoundaries(input string) string {
	var out strings.Builder
	runes := []rune(input)
	for i, r := range runes {
		if i > 0 && camelBoundary(runes[i-1], r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func camelBoundary(prev, current rune) bool {
	lower := func(r rune) bool { return r >= 'a' && r <= 'z' }
	upper := func(r rune) bool { return r >= 'A' && r <= 'Z' }
	digit := func(r rune) bool { return r >= '0' && r <= '9' }
	letter := func(r rune) bool { return lower(r) || upper(r) }

	return (lower(prev) && upper(current)) ||
		(letter(prev) && digit(current)) ||
		(digit(prev) && letter(current))
}
