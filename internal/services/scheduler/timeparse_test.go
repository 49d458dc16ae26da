package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateTime(t *testing.T) {
	utc8 := time.FixedZone("UTC+8", 8*3600)

	t.Run("Should convert wall-clock time in a fixed-offset zone", func(t *testing.T) {
		got, ok := ParseDateTime("2024-06-15", "02:00 PM", utc8)
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 6, 15, 6, 0, 0, 0, time.UTC), got.UTC())
	})

	t.Run("Should treat UTC input as identity", func(t *testing.T) {
		got, ok := ParseDateTime("2024-01-15", "10:30 PM", time.UTC)
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 1, 15, 22, 30, 0, 0, time.UTC), got.UTC())
	})

	t.Run("Should handle 12-hour edge conversions", func(t *testing.T) {
		tests := []struct {
			name string
			time string
			hour int
		}{
			{"Midnight", "12:00 AM", 0},
			{"Noon", "12:00 PM", 12},
			{"One AM", "1:00 AM", 1},
			{"Eleven PM", "11:00 PM", 23},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, ok := ParseDateTime("2024-06-15", tt.time, time.UTC)
				require.True(t, ok)
				assert.Equal(t, tt.hour, got.UTC().Hour())
			})
		}
	})

	t.Run("Should accept lowercase period and loose spacing", func(t *testing.T) {
		got, ok := ParseDateTime("2024-06-15", "9:05pm", time.UTC)
		require.True(t, ok)
		assert.Equal(t, 21, got.UTC().Hour())
		assert.Equal(t, 5, got.UTC().Minute())

		_, ok = ParseDateTime("2024-06-15", "9:05   PM", time.UTC)
		assert.True(t, ok)
	})

	t.Run("Should reject malformed input", func(t *testing.T) {
		tests := []struct {
			name string
			date string
			time string
		}{
			{"Garbage period", "2024-06-15", "25:99 XM"},
			{"Hour out of range", "2024-06-15", "13:00 PM"},
			{"Minute out of range", "2024-06-15", "11:75 PM"},
			{"Month out of range", "2024-13-40", "10:00 AM"},
			{"Day out of range", "2024-02-30", "10:00 AM"},
			{"Wrong date shape", "15/06/2024", "10:00 AM"},
			{"24-hour time", "2024-06-15", "22:30"},
			{"Empty time", "2024-06-15", ""},
			{"Empty date", "", "10:00 AM"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, ok := ParseDateTime(tt.date, tt.time, time.UTC)
				assert.False(t, ok)
			})
		}
	})

	t.Run("Should resolve DST-dependent offsets", func(t *testing.T) {
		ny, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)

		// EDT, UTC-4
		summer, ok := ParseDateTime("2024-07-01", "08:00 AM", ny)
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC), summer.UTC())

		// EST, UTC-5
		winter, ok := ParseDateTime("2024-01-15", "08:00 AM", ny)
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 1, 15, 13, 0, 0, 0, time.UTC), winter.UTC())
	})
}
