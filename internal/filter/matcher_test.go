package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		keyword string
		want    bool
	}{
		{"whole word", "i love art today", "art", true},
		{"inside larger word", "smart people", "art", false},
		{"prefix of larger word", "category theory", "cat", false},
		{"ai inside said", "he said it", "ai", false},
		{"ai inside main", "the main thing", "ai", false},
		{"ai standalone", "AI is everywhere", "ai", true},
		{"start of text", "soccer tonight", "soccer", true},
		{"end of text", "watching soccer", "soccer", true},
		{"punctuation delimited", "(soccer), anyone?", "soccer", true},
		{"case insensitive text", "SOCCER news", "soccer", true},
		{"case insensitive keyword", "soccer news", "SOCCER", true},
		{"plus signs are literal", "i write c++ daily", "c++", true},
		{"plus signs at start", "c++ is fast", "c++", true},
		{"plus signs need left boundary", "abc++ compiler", "c++", false},
		{"dot is literal", "node.js rocks", "node.js", true},
		{"dot is not a wildcard", "nodexjs rocks", "node.js", false},
		{"star and question mark", "what is a.*b? nobody knows", "a.*b?", true},
		{"brackets", "see [meta] thread", "[meta]", true},
		{"pipe", "a|b testing", "a|b", true},
		{"pipe is not alternation", "a testing", "a|b", false},
		{"caret and dollar", "price is $5^2", "$5^2", true},
		{"backslash", `path c:\temp here`, `c:\temp`, true},
		{"phrase", "the premier league is back", "premier league", true},
		{"phrase needs exact spacing", "premier  league", "premier league", false},
		{"phrase needs outer boundary", "thepremier league", "premier league", false},
		{"underscore joins words", "my_soccer_team", "soccer", false},
		{"digits join words", "soccer2024", "soccer", false},
		{"accented keyword inside word", "leckere cafés hier", "café", false},
		{"accented keyword whole word", "ein café hier", "café", true},
		{"accented keyword before punctuation", "café!", "café", true},
		{"non-ascii letter before keyword", "schönes fußball spiel", "ball", false},
		{"accented letter before keyword", "el décor nuevo", "cor", false},
		{"non-ascii text around keyword", "größtes soccer-spiel", "soccer", true},
		{"cyrillic inside word", "футболист", "футбол", false},
		{"cyrillic whole word", "смотрим футбол вечером", "футбол", true},
		{"empty keyword", "anything at all", "", false},
		{"blank keyword", "anything at all", "   ", false},
		{"empty text", "", "soccer", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.text, tt.keyword))
		})
	}
}

func TestMatches_SurroundedByWhitespace(t *testing.T) {
	keywords := []string{"soccer", "c++", "node.js", "premier league", "f1", "r/nba", "?"}

	for _, k := range keywords {
		t.Run(k, func(t *testing.T) {
			assert.True(t, Matches(k, k))
			assert.True(t, Matches("before "+k+" after", k))
			assert.True(t, Matches("BEFORE "+k+" AFTER", k))
		})
	}
}

func TestCompileKeyword(t *testing.T) {
	t.Run("blank returns nil", func(t *testing.T) {
		assert.Nil(t, CompileKeyword(""))
		assert.Nil(t, CompileKeyword(" \t"))
	})

	t.Run("nil keyword never matches", func(t *testing.T) {
		var k *Keyword
		assert.False(t, k.Match("anything"))
		assert.Equal(t, "", k.String())
	})

	t.Run("keeps configured text", func(t *testing.T) {
		k := CompileKeyword("Soccer")
		assert.Equal(t, "Soccer", k.String())
		assert.True(t, k.Match("soccer"))
	})

	t.Run("reusable", func(t *testing.T) {
		k := CompileKeyword("goal")
		assert.True(t, k.Match("what a goal"))
		assert.False(t, k.Match("goalkeeper"))
		assert.True(t, k.Match("what a goal"))
	})
}
