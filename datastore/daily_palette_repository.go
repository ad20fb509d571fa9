package datastore

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/color-game/palette-api/models"
)

const dailyPaletteDateLayout = "2006-01-02"

type DailyPaletteRepository interface {
	Create(dailyPalette models.DailyPalette) (models.DailyPalette, error)
	GetByDate(date time.Time) (models.DailyPalette, error)
	GetToday() (models.DailyPalette, error)
	Delete(date time.Time) error
}

// DailyPaletteDatabase stores one featured palette per calendar day under
// "daily-palette:<yyyy-mm-dd>".
type DailyPaletteDatabase struct {
	store KeyValueRepository
	now   func() time.Time
}

func NewDailyPaletteDatabase(store KeyValueRepository) (DailyPaletteDatabase, error) {
	var dailyPaletteDB DailyPaletteDatabase
	dailyPaletteDB.store = store
	dailyPaletteDB.now = time.Now
	return dailyPaletteDB, nil
}

// DailyPaletteDate formats the calendar day of t the way entries are keyed.
func DailyPaletteDate(t time.Time) string {
	return t.Format(dailyPaletteDateLayout)
}

func dailyPaletteKey(date time.Time) string {
	return "daily-palette:" + DailyPaletteDate(date)
}

// Create stores dailyPalette under its Date, replacing any earlier entry for
// that day.
func (dpdb DailyPaletteDatabase) Create(dailyPalette models.DailyPalette) (models.DailyPalette, error) {
	date, err := time.Parse(dailyPaletteDateLayout, dailyPalette.Date)
	if err != nil {
		return models.DailyPalette{}, fmt.Errorf("failed to create daily palette: bad date %q: %v", dailyPalette.Date, err)
	}

	data, err := json.Marshal(dailyPalette)
	if err != nil {
		return models.DailyPalette{}, fmt.Errorf("failed to create daily palette: %v", err)
	}

	if err := dpdb.store.Set(dailyPaletteKey(date), string(data)); err != nil {
		return models.DailyPalette{}, fmt.Errorf("failed to create daily palette: %w", err)
	}
	return dailyPalette, nil
}

// GetByDate retrieves the featured palette for the calendar day of date
func (dpdb DailyPaletteDatabase) GetByDate(date time.Time) (models.DailyPalette, error) {
	raw, err := dpdb.store.Get(dailyPaletteKey(date))
	if err != nil {
		return models.DailyPalette{}, err
	}

	var dailyPalette models.DailyPalette
	if err := json.Unmarshal([]byte(raw), &dailyPalette); err != nil {
		return models.DailyPalette{}, fmt.Errorf("error decoding daily palette %s: %v", DailyPaletteDate(date), err)
	}
	return dailyPalette, nil
}

// GetToday retrieves today's featured palette
func (dpdb DailyPaletteDatabase) GetToday() (models.DailyPalette, error) {
	now := time.Now
	if dpdb.now != nil {
		now = dpdb.now
	}
	return dpdb.GetByDate(now())
}

func (dpdb DailyPaletteDatabase) Delete(date time.Time) error {
	return dpdb.store.Delete(dailyPaletteKey(date))
}
