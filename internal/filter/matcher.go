// Package filter decides whether a feed post should be hidden.
//
// Everything in this package is pure: a verdict depends only on the post
// attributes and the settings snapshot passed in.
package filter

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Word boundaries are Unicode-aware: regexp's \b only knows ASCII, so
// "café" would otherwise match inside "cafés".
const (
	wordStart = `(?:^|[^\p{L}\p{M}\p{N}_])`
	wordEnd   = `(?:[^\p{L}\p{M}\p{N}_]|$)`
)

// Keyword is a compiled whole-word keyword pattern.
type Keyword struct {
	text string
	re   *regexp.Regexp
}

// CompileKeyword compiles keyword into a case-insensitive whole-word matcher.
// It returns nil for a blank keyword so that it can never match all text.
//
// Every regexp metacharacter in keyword is escaped. A word boundary is
// required on each side of the keyword whose edge is a word character, so
// "cat" does not match "category" while "c++" still matches "c++ code".
func CompileKeyword(keyword string) *Keyword {
	if strings.TrimSpace(keyword) == "" {
		return nil
	}

	first, _ := utf8.DecodeRuneInString(keyword)
	last, _ := utf8.DecodeLastRuneInString(keyword)

	var pattern strings.Builder
	pattern.WriteString("(?i)")
	if isWordRune(first) {
		pattern.WriteString(wordStart)
	}
	pattern.WriteString(regexp.QuoteMeta(keyword))
	if isWordRune(last) {
		pattern.WriteString(wordEnd)
	}

	return &Keyword{
		text: keyword,
		re:   regexp.MustCompile(pattern.String()),
	}
}

// String returns the keyword as configured.
func (k *Keyword) String() string {
	if k == nil {
		return ""
	}
	return k.text
}

// Match reports whether the keyword occurs as a whole word in text.
func (k *Keyword) Match(text string) bool {
	if k == nil || text == "" {
		return false
	}
	return k.re.MatchString(text)
}

// Matches reports whether keyword occurs in text as a whole word,
// ignoring case. A blank keyword never matches.
func Matches(text, keyword string) bool {
	return CompileKeyword(keyword).Match(text)
}

// isWordRune reports whether r belongs to a word: any letter, mark or
// number, or underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsNumber(r)
}
