package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBusinessCalendar(t *testing.T) {
	t.Run("Empty path uses defaults", func(t *testing.T) {
		calendar, err := LoadBusinessCalendar("")
		require.NoError(t, err)
		assert.Equal(t, DefaultBusinessCalendar(), calendar)
	})

	t.Run("Missing file uses defaults", func(t *testing.T) {
		calendar, err := LoadBusinessCalendar(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		assert.Equal(t, 30, calendar.StepMinutes)
		assert.Len(t, calendar.Blocks, 2)
	})

	t.Run("Partial file is normalized", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "calendar.yaml")
		content := []byte("step_minutes: 15\nholidays:\n  - \"2025-12-25\"\nclosed_weekdays: []\n")
		require.NoError(t, os.WriteFile(path, content, 0o600))

		calendar, err := LoadBusinessCalendar(path)
		require.NoError(t, err)
		assert.Equal(t, 15, calendar.StepMinutes)
		assert.Equal(t, []string{"2025-12-25"}, calendar.Holidays)
		assert.Empty(t, calendar.ClosedWeekdays, "explicit empty list must not fall back to weekends")
		assert.Equal(t, 60, calendar.Services["complete"])
		assert.Equal(t, 6, calendar.MaxParticipants)
	})

	t.Run("Broken YAML is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "calendar.yaml")
		require.NoError(t, os.WriteFile(path, []byte("blocks: [oops"), 0o600))

		_, err := LoadBusinessCalendar(path)
		assert.Error(t, err)
	})
}
