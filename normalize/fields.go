package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/color-game/palette-api/colormath"
	"github.com/color-game/palette-api/models"
)

// fieldRule coerces one field of a saved palette. keys lists the accepted
// spellings, newest first; apply receives the first one present.
type fieldRule struct {
	keys  []string
	apply func(n *Normalizer, value any, present bool, record *models.SavedPalette)
}

// savedPaletteRules is the default policy for every saved palette field. The
// id rule runs first because the placeholder name refers to it.
var savedPaletteRules = []fieldRule{
	{
		keys: []string{"id"},
		apply: func(n *Normalizer, value any, present bool, record *models.SavedPalette) {
			if id, ok := positiveInt(value); present && ok {
				record.ID = id
				return
			}
			record.ID = n.nextRecordID()
		},
	},
	{
		keys: []string{"name"},
		apply: func(n *Normalizer, value any, present bool, record *models.SavedPalette) {
			if name, ok := value.(string); present && ok && name != "" {
				record.Name = name
				return
			}
			record.Name = fmt.Sprintf("Palette %d", record.ID)
		},
	},
	{
		keys: []string{"ingredients", "mixColors", "ingredientColors"},
		apply: func(n *Normalizer, value any, present bool, record *models.SavedPalette) {
			items, ok := value.([]any)
			if !present || !ok {
				record.Ingredients = []models.Ingredient{n.placeholderIngredient()}
				return
			}
			record.Ingredients = make([]models.Ingredient, len(items))
			for i, item := range items {
				record.Ingredients[i] = n.ingredient(item)
			}
		},
	},
	{
		keys: []string{"baseColor"},
		apply: func(n *Normalizer, value any, present bool, record *models.SavedPalette) {
			if base, ok := value.(string); present && ok {
				record.BaseColor = base
			}
		},
	},
	{
		keys: []string{"palette"},
		apply: func(n *Normalizer, value any, present bool, record *models.SavedPalette) {
			record.Palette = []string{}
			items, ok := value.([]any)
			if !present || !ok {
				return
			}
			for _, item := range items {
				if color, ok := item.(string); ok {
					record.Palette = append(record.Palette, color)
				}
			}
		},
	},
	{
		keys: []string{"relationType", "type"},
		apply: func(n *Normalizer, value any, present bool, record *models.SavedPalette) {
			if s, ok := value.(string); present && ok && models.RelationType(s).Valid() {
				record.RelationType = models.RelationType(s)
				return
			}
			record.RelationType = models.Monochromatic
		},
	},
	{
		keys: []string{"count"},
		apply: func(n *Normalizer, value any, present bool, record *models.SavedPalette) {
			if count, ok := positiveInt(value); present && ok && count <= math.MaxInt32 {
				record.Count = int(count)
				return
			}
			record.Count = models.DefaultCount
		},
	},
	{
		keys: []string{"gradientDirection"},
		apply: func(n *Normalizer, value any, present bool, record *models.SavedPalette) {
			if direction, ok := value.(string); present && ok && direction != "" {
				record.GradientDirection = direction
				return
			}
			record.GradientDirection = models.DefaultGradientDirection
		},
	},
}

func (n *Normalizer) record(fields map[string]any) models.SavedPalette {
	var record models.SavedPalette
	for _, rule := range savedPaletteRules {
		value, present := lookup(fields, rule.keys...)
		rule.apply(n, value, present, &record)
	}
	return record
}

// ingredient coerces one ingredient entry. Bare strings are the legacy
// shorthand for a color; anything that is neither a string nor an object is
// treated as an object with every field missing.
func (n *Normalizer) ingredient(item any) models.Ingredient {
	if color, ok := item.(string); ok {
		return models.Ingredient{
			ID:    n.nextID(),
			Color: color,
			Valid: colormath.IsValid(color),
		}
	}

	fields, _ := item.(map[string]any)

	var ingredient models.Ingredient
	if id, ok := positiveInt(fields["id"]); ok {
		ingredient.ID = id
	} else {
		ingredient.ID = n.nextID()
	}

	if color, ok := fields["color"].(string); ok && color != "" {
		ingredient.Color = color
	} else {
		ingredient.Color = models.PlaceholderColor
	}

	if valid, ok := fields["valid"].(bool); ok {
		ingredient.Valid = valid
	} else {
		ingredient.Valid = colormath.IsValid(ingredient.Color)
	}

	ingredient.Locked, _ = fields["locked"].(bool)
	return ingredient
}

func (n *Normalizer) placeholderIngredient() models.Ingredient {
	return models.Ingredient{ID: n.nextID(), Color: models.PlaceholderColor, Valid: true}
}

func lookup(fields map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if value, ok := fields[key]; ok {
			return value, true
		}
	}
	return nil, false
}

// positiveInt accepts integral JSON numbers above zero, and strings holding
// one, which is how some older clients stored ids.
func positiveInt(value any) (int64, bool) {
	switch v := value.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, i > 0
		}
		f, err := v.Float64()
		if err != nil || f != math.Trunc(f) || f <= 0 || f > math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	case float64:
		if v != math.Trunc(v) || v <= 0 || v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case string:
		i, err := strconv.ParseInt(v, 10, 64)
		return i, err == nil && i > 0
	default:
		return 0, false
	}
}
