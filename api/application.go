package api

import (
	"github.com/color-game/palette-api/config"
	"github.com/color-game/palette-api/datastore"
	"github.com/color-game/palette-api/models"
	"github.com/color-game/palette-api/palette"
	"github.com/color-game/palette-api/studio"
)

// DailyPaletteSource returns today's featured palette, creating it when needed.
type DailyPaletteSource interface {
	EnsureToday() (models.DailyPalette, error)
}

type Application struct {
	Config        config.Config
	WorkspaceRepo datastore.WorkspaceRepository
	DailyPalettes DailyPaletteSource
	Studios       *studio.Registry
	Generator     *palette.Generator
}
