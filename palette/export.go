package palette

import (
	"strings"

	"github.com/color-game/palette-api/models"
)

// GradientCSS renders a linear-gradient() over colors.
func GradientCSS(direction string, colors []string) string {
	if direction == "" {
		direction = models.DefaultGradientDirection
	}
	return "linear-gradient(" + direction + ", " + strings.Join(colors, ", ") + ")"
}

// BuildExport converts a saved record into the export document.
func BuildExport(record models.SavedPalette) models.ExportDocument {
	colors := make([]string, len(record.Ingredients))
	for i, ingredient := range record.Ingredients {
		colors[i] = ingredient.Color
	}

	direction := record.GradientDirection
	if direction == "" {
		direction = models.DefaultGradientDirection
	}

	return models.ExportDocument{
		Name:              record.Name,
		IngredientColors:  colors,
		BaseColor:         record.BaseColor,
		RelationType:      record.RelationType,
		Count:             record.Count,
		Palette:           append([]string{}, record.Palette...),
		GradientDirection: direction,
		GradientCSS:       GradientCSS(direction, record.Palette),
	}
}
