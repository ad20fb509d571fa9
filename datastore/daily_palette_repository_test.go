package datastore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/color-game/palette-api/models"
)

func TestDailyPaletteDatabase(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			dailyDB, err := NewDailyPaletteDatabase(store)
			require.NoError(t, err)

			day := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
			dailyDB.now = func() time.Time { return day }

			_, err = dailyDB.GetToday()
			assert.True(t, IsNotFound(err))

			entry := models.DailyPalette{
				Date:         DailyPaletteDate(day),
				BaseColor:    "#e11d48",
				RelationType: models.Triadic,
				Count:        3,
				Palette:      []string{"#e11d48", "#48e11d", "#1d48e1"},
			}
			_, err = dailyDB.Create(entry)
			require.NoError(t, err)

			got, err := dailyDB.GetToday()
			require.NoError(t, err)
			assert.Equal(t, "2026-03-14", got.Date)
			assert.Equal(t, entry.Palette, got.Palette)

			got, err = dailyDB.GetByDate(time.Date(2026, 3, 14, 0, 0, 1, 0, time.UTC))
			require.NoError(t, err)
			assert.Equal(t, models.Triadic, got.RelationType)

			require.NoError(t, dailyDB.Delete(day))
			_, err = dailyDB.GetByDate(day)
			assert.True(t, IsNotFound(err))
		})
	}
}

func TestDailyPaletteCreateRejectsBadDate(t *testing.T) {
	dailyDB, err := NewDailyPaletteDatabase(NewMemoryStore())
	require.NoError(t, err)

	_, err = dailyDB.Create(models.DailyPalette{Date: "14/03/2026"})
	assert.Error(t, err)
}
