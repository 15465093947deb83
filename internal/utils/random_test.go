package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateDisputeNumber(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		number := GenerateDisputeNumber()

		assert.True(t, strings.HasPrefix(number, "DSP-"), number)
		assert.Len(t, number, 4+DisputeNumberLength)
		assert.False(t, strings.ContainsAny(number[4:], "0OIL"), number)

		seen[number] = true
	}
	assert.Greater(t, len(seen), 90)
}
