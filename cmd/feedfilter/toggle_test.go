package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOnOff(t *testing.T) {
	for _, s := range []string{"on", "true", "yes", "1"} {
		got, err := parseOnOff(s)
		require.NoError(t, err, s)
		assert.True(t, got, s)
	}
	for _, s := range []string{"off", "false", "no", "0"} {
		got, err := parseOnOff(s)
		require.NoError(t, err, s)
		assert.False(t, got, s)
	}

	_, err := parseOnOff("maybe")
	assert.Error(t, err)
}
