package studio

import (
	"errors"
	"fmt"
	"strings"

	"github.com/color-game/palette-api/colormath"
	"github.com/color-game/palette-api/models"
	"github.com/color-game/palette-api/palette"
)

var (
	ErrNoBaseColor     = errors.New("no valid ingredient to build a palette from")
	ErrPaletteNotFound = errors.New("saved palette not found")
	ErrEmptyName       = errors.New("palette name is required")
)

// SavedPalettes returns the collection, newest first.
func (s *Studio) SavedPalettes() []models.SavedPalette {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRecords(s.saved)
}

// Save snapshots the working set under name and puts it first in the
// collection, evicting the oldest record at capacity. Ids are creation times
// in milliseconds, bumped past the newest existing id so ordering by id stays
// newest first. A *StorageNotice is returned alongside the record when it could
// not be persisted.
func (s *Studio) Save(name string) (models.SavedPalette, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.snapshot()
	if snapshot.BaseColor == "" || len(snapshot.Palette) != snapshot.Count {
		return models.SavedPalette{}, ErrNoBaseColor
	}

	id := s.now().UnixMilli()
	if len(s.saved) > 0 && id <= s.saved[0].ID {
		id = s.saved[0].ID + 1
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Palette %d", id)
	}

	record := models.SavedPalette{
		ID:                id,
		Name:              name,
		Ingredients:       snapshot.Ingredients,
		BaseColor:         snapshot.BaseColor,
		Palette:           snapshot.Palette,
		RelationType:      snapshot.RelationType,
		Count:             snapshot.Count,
		GradientDirection: snapshot.GradientDirection,
	}

	s.saved = append([]models.SavedPalette{record}, s.saved...)
	if len(s.saved) > models.MaxSavedPalettes {
		s.saved = s.saved[:models.MaxSavedPalettes]
	}

	return cloneRecord(record), s.persistSaved()
}

// Rename changes the name of saved palette id, the only mutable field.
func (s *Studio) Rename(id int64, name string) (models.SavedPalette, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.SavedPalette{}, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.savedIndex(id)
	if i < 0 {
		return models.SavedPalette{}, ErrPaletteNotFound
	}
	s.saved[i].Name = name
	return cloneRecord(s.saved[i]), s.persistSaved()
}

func (s *Studio) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.savedIndex(id)
	if i < 0 {
		return ErrPaletteNotFound
	}
	s.saved = append(s.saved[:i], s.saved[i+1:]...)
	return s.persistSaved()
}

// Load replaces the working set with saved palette id.
func (s *Studio) Load(id int64) (models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.savedIndex(id)
	if i < 0 {
		return models.Snapshot{}, ErrPaletteNotFound
	}
	s.apply(s.saved[i])
	return s.snapshot(), nil
}

// Export renders saved palette id as an export document.
func (s *Studio) Export(id int64) (models.ExportDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.savedIndex(id)
	if i < 0 {
		return models.ExportDocument{}, ErrPaletteNotFound
	}
	return palette.BuildExport(s.saved[i]), nil
}

// ExportCurrent renders the working set as an export document named name.
func (s *Studio) ExportCurrent(name string) models.ExportDocument {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.snapshot()
	return palette.BuildExport(models.SavedPalette{
		Name:              strings.TrimSpace(name),
		Ingredients:       snapshot.Ingredients,
		BaseColor:         snapshot.BaseColor,
		Palette:           snapshot.Palette,
		RelationType:      snapshot.RelationType,
		Count:             snapshot.Count,
		GradientDirection: snapshot.GradientDirection,
	})
}

// Import validates an exported document and applies it to the working set.
// Invalid documents leave the studio untouched.
func (s *Studio) Import(data []byte) (models.Snapshot, error) {
	record, err := s.normalizer.Import(data)
	if err != nil {
		return models.Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.apply(record)
	return s.snapshot(), nil
}

// apply loads record into the working set. Ingredients are revalidated,
// re-keyed when ids repeat, and padded with white up to MinIngredients; count
// is clamped into the live range.
func (s *Studio) apply(record models.SavedPalette) {
	ingredients := make([]models.Ingredient, 0, max(len(record.Ingredients), models.MinIngredients))
	seen := make(map[int64]bool, len(record.Ingredients))
	for _, ingredient := range record.Ingredients {
		if ingredient.ID <= 0 || seen[ingredient.ID] {
			ingredient.ID = s.ids.Next()
		}
		seen[ingredient.ID] = true
		ingredient.Valid = colormath.IsValid(ingredient.Color)
		ingredients = append(ingredients, ingredient)
	}
	for len(ingredients) < models.MinIngredients {
		ingredients = append(ingredients, s.newIngredient(models.PlaceholderColor))
	}
	s.ingredients = ingredients

	s.relation = record.RelationType
	if !s.relation.Valid() {
		s.relation = models.Monochromatic
	}
	s.count = min(max(record.Count, models.MinCount), models.MaxCount)
	s.gradientDirection = record.GradientDirection
	if s.gradientDirection == "" {
		s.gradientDirection = models.DefaultGradientDirection
	}
}

func (s *Studio) savedIndex(id int64) int {
	for i, record := range s.saved {
		if record.ID == id {
			return i
		}
	}
	return -1
}

func cloneRecord(record models.SavedPalette) models.SavedPalette {
	record.Ingredients = append([]models.Ingredient{}, record.Ingredients...)
	record.Palette = append([]string{}, record.Palette...)
	return record
}

func cloneRecords(records []models.SavedPalette) []models.SavedPalette {
	out := make([]models.SavedPalette, len(records))
	for i, record := range records {
		out[i] = cloneRecord(record)
	}
	return out
}
