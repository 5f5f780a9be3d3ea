package filter

import (
	"strings"
)

// subredditPrefix is stripped before tokenizing.
const subredditPrefix = "r/"

// Tokenize splits a subreddit name into lowercase words at ASCII capital
// letters, so "r/AskHistorians" yields ["ask", "historians"]. Digits and
// non-ASCII capitals never start a new word. Empty or prefix-only names
// yield an empty slice.
func Tokenize(subreddit string) []string {
	name := strings.TrimPrefix(subreddit, subredditPrefix)

	words := make([]string, 0, 4)
	start := 0
	for i, r := range name {
		if i > 0 && isASCIIUpper(r) {
			words = appendWord(words, name[start:i])
			start = i
		}
	}

	return appendWord(words, name[start:])
}

func appendWord(words []string, word string) []string {
	if word == "" {
		return words
	}
	return append(words, strings.ToLower(word))
}

func isASCIIUpper(r rune) bool {
	return 'A' <= r && r <= 'Z'
}
