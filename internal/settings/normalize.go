package settings

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// NormalizeKeyword trims, lowercases and NFC-normalizes a keyword.
func NormalizeKeyword(raw string) string {
	// A Caser is stateful, so one is created per call.
	lowered := cases.Lower(language.Und).String(strings.TrimSpace(raw))
	return norm.NFC.String(lowered)
}

// ParseKeywords splits comma-separated input into normalized keywords,
// dropping empty entries and duplicates.
func ParseKeywords(input string) []string {
	return NormalizeKeywords(strings.Split(input, ","))
}

// NormalizeKeywords normalizes each keyword, keeping the first occurrence of
// each and dropping empty ones.
func NormalizeKeywords(keywords []string) []string {
	result := make([]string, 0, len(keywords))
	seen := make(map[string]bool, len(keywords))

	for _, raw := range keywords {
		kw := NormalizeKeyword(raw)
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		result = append(result, kw)
	}

	return result
}
