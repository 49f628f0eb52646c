package services_test

import (
	"testing"
	"time"

	"speedit/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func riyadh(t *testing.T) *time.Location {
	t.Helper()
	zone, err := time.LoadLocation("Asia/Riyadh")
	require.NoError(t, err)
	return zone
}

func TestNextWorkingInstant(t *testing.T) {
	zone := riyadh(t)

	// 2026-08-27 is a Thursday, 2026-08-28 a Friday.
	testCases := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "inside working window stays unchanged",
			input:    time.Date(2026, 8, 27, 10, 30, 0, 0, zone),
			expected: time.Date(2026, 8, 27, 10, 30, 0, 0, zone),
		},
		{
			name:     "before opening shifts to same day start",
			input:    time.Date(2026, 8, 27, 6, 15, 0, 0, zone),
			expected: time.Date(2026, 8, 27, 8, 0, 0, 0, zone),
		},
		{
			name:     "after closing shifts to next day start",
			input:    time.Date(2026, 8, 26, 18, 40, 0, 0, zone),
			expected: time.Date(2026, 8, 27, 8, 0, 0, 0, zone),
		},
		{
			name:     "exactly at closing shifts to next day",
			input:    time.Date(2026, 8, 26, 17, 0, 0, 0, zone),
			expected: time.Date(2026, 8, 27, 8, 0, 0, 0, zone),
		},
		{
			name:     "friday shifts to saturday start",
			input:    time.Date(2026, 8, 28, 11, 0, 0, 0, zone),
			expected: time.Date(2026, 8, 29, 8, 0, 0, 0, zone),
		},
		{
			name:     "thursday evening skips friday entirely",
			input:    time.Date(2026, 8, 27, 19, 0, 0, 0, zone),
			expected: time.Date(2026, 8, 29, 8, 0, 0, 0, zone),
		},
		{
			name:     "utc input resolves to local window",
			input:    time.Date(2026, 8, 27, 4, 0, 0, 0, time.UTC), // 07:00 local
			expected: time.Date(2026, 8, 27, 8, 0, 0, 0, zone),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := services.NextWorkingInstant(tc.input)
			assert.True(t, tc.expected.Equal(got), "expected %s, got %s", tc.expected, got)
		})
	}
}
