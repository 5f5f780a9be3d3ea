package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKeyword(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Soccer", "soccer"},
		{"  Premier League  ", "premier league"},
		{"C++", "c++"},
		{"", ""},
		{"   ", ""},
		{"ÉCOLE", "école"},
		{"café", "café"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeKeyword(tt.input))
		})
	}
}

func TestParseKeywords(t *testing.T) {
	t.Run("single keyword", func(t *testing.T) {
		assert.Equal(t, []string{"soccer"}, ParseKeywords("Soccer"))
	})

	t.Run("comma separated", func(t *testing.T) {
		assert.Equal(t, []string{"soccer", "tennis", "premier league"},
			ParseKeywords("soccer, Tennis ,premier league"))
	})

	t.Run("drops empty parts and duplicates", func(t *testing.T) {
		assert.Equal(t, []string{"soccer", "tennis"},
			ParseKeywords(",soccer,,SOCCER, ,tennis,"))
	})

	t.Run("blank input", func(t *testing.T) {
		assert.Empty(t, ParseKeywords("  "))
		assert.Empty(t, ParseKeywords(",,"))
	})
}

func TestNormalizeKeywords(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, NormalizeKeywords([]string{"A", "", "b", " a "}))
	assert.NotNil(t, NormalizeKeywords(nil))
}
