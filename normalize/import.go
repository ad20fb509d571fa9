package normalize

import (
	"errors"
	"fmt"

	"github.com/color-game/palette-api/models"
)

// ErrInvalidImport is returned when an import document is unreadable or lacks
// a required field. Imports are rejected as a whole; nothing is defaulted.
var ErrInvalidImport = errors.New("invalid palette import")

// Import validates an exported palette document and coerces it into a record.
// The returned record has no id; callers decide whether it becomes a saved
// palette or replaces the working set.
func (n *Normalizer) Import(data []byte) (models.SavedPalette, error) {
	value, err := decode(string(data))
	if err != nil {
		return models.SavedPalette{}, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}

	fields, ok := value.(map[string]any)
	if !ok {
		return models.SavedPalette{}, fmt.Errorf("%w: expected an object, got %T", ErrInvalidImport, value)
	}

	if _, ok := fields["palette"].([]any); !ok {
		return models.SavedPalette{}, missing("palette")
	}
	relation, present := lookup(fields, "relationType", "type")
	if _, ok := relation.(string); !present || !ok {
		return models.SavedPalette{}, missing("relationType")
	}
	if count, ok := positiveInt(fields["count"]); !ok || count > models.MaxCount {
		return models.SavedPalette{}, fmt.Errorf("%w: count must be between 1 and %d", ErrInvalidImport, models.MaxCount)
	}
	ingredients, present := lookup(fields, "ingredients", "mixColors", "ingredientColors")
	if _, ok := ingredients.([]any); !present || !ok {
		return models.SavedPalette{}, missing("ingredients")
	}

	record := n.record(fields)
	record.ID = 0
	if name, ok := fields["name"].(string); !ok || name == "" {
		record.Name = ""
	}
	return record, nil
}

func missing(field string) error {
	return fmt.Errorf("%w: missing %s", ErrInvalidImport, field)
}
