package commands

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTrackingCode(t *testing.T) {
	t.Run("should embed the creation date and a readable suffix", func(t *testing.T) {
		at := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

		code, err := generateTrackingCode(at)
		require.NoError(t, err)

		parts := strings.Split(code, "-")
		require.Len(t, parts, 3)
		assert.Equal(t, "DSP", parts[0])
		assert.Equal(t, "20260828", parts[1])
		assert.Len(t, parts[2], 6)
		for _, r := range parts[2] {
			assert.Contains(t, trackingCodeAlphabet, string(r))
		}
	})

	t.Run("should not repeat across calls", func(t *testing.T) {
		at := time.Now()

		seen := make(map[string]bool)
		for range 20 {
			code, err := generateTrackingCode(at)
			require.NoError(t, err)
			assert.False(t, seen[code], "tracking code %s repeated", code)
			seen[code] = true
		}
	})
}

func TestGenerateVerificationCode(t *testing.T) {
	t.Run("should produce six digits", func(t *testing.T) {
		code, err := generateVerificationCode()
		require.NoError(t, err)

		require.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9')
		}
	})
}
