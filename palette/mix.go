package palette

import (
	"github.com/color-game/palette-api/colormath"
	"github.com/color-game/palette-api/models"
)

// Mix averages the valid ingredients in L*a*b*. The boolean is false when no
// ingredient is valid or when averaging fails.
func Mix(ingredients []models.Ingredient) (string, bool) {
	colors := make([]string, 0, len(ingredients))
	for _, ingredient := range ingredients {
		if ingredient.Valid {
			colors = append(colors, ingredient.Color)
		}
	}

	switch len(colors) {
	case 0:
		return "", false
	case 1:
		hex, err := colormath.Hex(colors[0])
		if err != nil {
			return "", false
		}
		return hex, true
	}

	mixed, err := colormath.Average(colors, colormath.SpaceLab)
	if err != nil {
		return "", false
	}
	return mixed, true
}

// MixColors wraps bare color strings as ingredients, validating each, and
// mixes them.
func MixColors(colors []string) (string, bool) {
	ingredients := make([]models.Ingredient, len(colors))
	for i, color := range colors {
		ingredients[i] = models.Ingredient{
			ID:    int64(i + 1),
			Color: color,
			Valid: colormath.IsValid(color),
		}
	}
	return Mix(ingredients)
}
