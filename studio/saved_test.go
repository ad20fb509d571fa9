package studio

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/color-game/palette-api/datastore"
	"github.com/color-game/palette-api/models"
	"github.com/color-game/palette-api/normalize"
)

var errDiskFull = errors.New("disk full")

// failingStore reads like a MemoryStore but refuses every write.
type failingStore struct {
	*datastore.MemoryStore
}

func (failingStore) Set(string, string) error {
	return errDiskFull
}

func TestSaveOrdersNewestFirst(t *testing.T) {
	s := newTestStudio(t, datastore.NewMemoryStore())

	first, err := s.Save("  first ")
	require.NoError(t, err)
	assert.Equal(t, fixedNow.UnixMilli(), first.ID)
	assert.Equal(t, "first", first.Name)
	assert.Equal(t, "#b04a97", first.BaseColor)
	assert.Len(t, first.Palette, first.Count)

	second, err := s.Save("")
	require.NoError(t, err)
	assert.Equal(t, first.ID+1, second.ID)
	assert.Equal(t, fmt.Sprintf("Palette %d", second.ID), second.Name)

	saved := s.SavedPalettes()
	require.Len(t, saved, 2)
	assert.Equal(t, second.ID, saved[0].ID)
	assert.Equal(t, first.ID, saved[1].ID)
}

func TestSaveEvictsOldestAtCapacity(t *testing.T) {
	s := newTestStudio(t, nil)

	var firstID int64
	for i := 0; i <= models.MaxSavedPalettes; i++ {
		record, err := s.Save(fmt.Sprintf("p%d", i))
		require.NoError(t, err)
		if i == 0 {
			firstID = record.ID
		}
	}

	saved := s.SavedPalettes()
	require.Len(t, saved, models.MaxSavedPalettes)
	assert.Equal(t, "p20", saved[0].Name)
	for i := 1; i < len(saved); i++ {
		assert.Greater(t, saved[i-1].ID, saved[i].ID)
	}
	for _, record := range saved {
		assert.NotEqual(t, firstID, record.ID)
	}
}

func TestSavedPalettesAreCopies(t *testing.T) {
	s := newTestStudio(t, nil)
	_, err := s.Save("a")
	require.NoError(t, err)

	saved := s.SavedPalettes()
	saved[0].Palette[0] = "#000000"
	saved[0].Name = "changed"

	assert.NotEqual(t, "#000000", s.SavedPalettes()[0].Palette[0])
	assert.Equal(t, "a", s.SavedPalettes()[0].Name)
}

func TestSavePersistsAndHydrates(t *testing.T) {
	store := datastore.NewMemoryStore()
	s := newTestStudio(t, store)

	record, err := s.Save("kept")
	require.NoError(t, err)

	raw, err := store.Get("ws:saved-palettes")
	require.NoError(t, err)
	assert.Contains(t, raw, `"name":"kept"`)

	restored := newTestStudio(t, store)
	restored.Hydrate()

	saved := restored.SavedPalettes()
	require.Len(t, saved, 1)
	assert.Equal(t, record, saved[0])
}

func TestHydrateOrdersRecordsWithoutIDs(t *testing.T) {
	store := datastore.NewMemoryStore()
	require.NoError(t, store.Set("ws:saved-palettes",
		`[{"id": 1700000000000, "name": "old"}, {"name": "legacy"}]`))

	s := newTestStudio(t, store)
	s.Hydrate()

	hydrated := s.SavedPalettes()
	require.Len(t, hydrated, 2)
	assert.Equal(t, "legacy", hydrated[0].Name)
	assert.Equal(t, fixedNow.UnixMilli()+1, hydrated[0].ID)
	assert.Equal(t, "old", hydrated[1].Name)

	record, err := s.Save("new")
	require.NoError(t, err)
	assert.Equal(t, fixedNow.UnixMilli()+2, record.ID)

	saved := s.SavedPalettes()
	require.Len(t, saved, 3)
	assert.Equal(t, []string{"new", "legacy", "old"}, []string{saved[0].Name, saved[1].Name, saved[2].Name})
	for i := 1; i < len(saved); i++ {
		assert.Greater(t, saved[i-1].ID, saved[i].ID)
	}
}

func TestHydrateSortsNewestFirst(t *testing.T) {
	store := datastore.NewMemoryStore()
	require.NoError(t, store.Set("ws:saved-palettes",
		`[{"id": 10, "name": "a"}, {"id": 30, "name": "b"}, {"id": 20, "name": "c"}]`))

	s := newTestStudio(t, store)
	s.Hydrate()

	saved := s.SavedPalettes()
	require.Len(t, saved, 3)
	assert.Equal(t, []int64{30, 20, 10}, []int64{saved[0].ID, saved[1].ID, saved[2].ID})
}

func TestHydrateRekeysRepeatedIDs(t *testing.T) {
	store := datastore.NewMemoryStore()
	require.NoError(t, store.Set("ws:saved-palettes",
		`[{"id": 7, "name": "first"}, {"id": 7, "name": "twin"}, {"id": 3, "name": "older"}]`))

	s := newTestStudio(t, store)
	s.Hydrate()

	saved := s.SavedPalettes()
	require.Len(t, saved, 3)
	ids := map[int64]string{}
	for i, record := range saved {
		ids[record.ID] = record.Name
		if i > 0 {
			assert.Greater(t, saved[i-1].ID, record.ID)
		}
	}
	require.Len(t, ids, 3)
	assert.Equal(t, "first", ids[7])
	assert.Equal(t, "older", ids[3])

	var twinID int64
	for id, name := range ids {
		if name == "twin" {
			twinID = id
		}
	}
	require.NotZero(t, twinID)

	renamed, err := s.Rename(twinID, "second")
	require.NoError(t, err)
	assert.Equal(t, twinID, renamed.ID)

	require.NoError(t, s.Delete(twinID))
	remaining := s.SavedPalettes()
	require.Len(t, remaining, 2)
	assert.Equal(t, "first", remaining[0].Name)
}

func TestSaveStorageFailureKeepsState(t *testing.T) {
	s := newTestStudio(t, failingStore{datastore.NewMemoryStore()})

	record, err := s.Save("volatile")
	require.Error(t, err)

	notice, ok := AsStorageNotice(err)
	require.True(t, ok)
	assert.Equal(t, "saved-palettes", notice.Key)
	assert.ErrorIs(t, err, errDiskFull)
	assert.NotEmpty(t, notice.Message())

	assert.Equal(t, "volatile", record.Name)
	assert.Len(t, s.SavedPalettes(), 1)
}

func TestRenameAndDelete(t *testing.T) {
	store := datastore.NewMemoryStore()
	s := newTestStudio(t, store)

	record, err := s.Save("old")
	require.NoError(t, err)

	_, err = s.Rename(record.ID, " ")
	assert.ErrorIs(t, err, ErrEmptyName)

	renamed, err := s.Rename(record.ID, "new")
	require.NoError(t, err)
	assert.Equal(t, "new", renamed.Name)
	assert.Equal(t, record.Palette, renamed.Palette)

	raw, err := store.Get("ws:saved-palettes")
	require.NoError(t, err)
	assert.Contains(t, raw, `"name":"new"`)

	_, err = s.Rename(1, "x")
	assert.ErrorIs(t, err, ErrPaletteNotFound)

	require.NoError(t, s.Delete(record.ID))
	assert.Empty(t, s.SavedPalettes())
	assert.ErrorIs(t, s.Delete(record.ID), ErrPaletteNotFound)

	raw, err = store.Get("ws:saved-palettes")
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestLoadRestoresWorkingSet(t *testing.T) {
	store := datastore.NewMemoryStore()
	require.NoError(t, store.Set("ws:saved-palettes",
		`[{"id": 5, "name": "legacy", "ingredients": ["#2563eb"], "relationType": "triadic", "count": 2, "gradientDirection": "to top"}]`))

	s := newTestStudio(t, store)
	s.Hydrate()

	snapshot, err := s.Load(5)
	require.NoError(t, err)

	require.Len(t, snapshot.Ingredients, 2)
	assert.Equal(t, "#2563eb", snapshot.Ingredients[0].Color)
	assert.Equal(t, models.PlaceholderColor, snapshot.Ingredients[1].Color)
	assert.True(t, snapshot.Ingredients[1].Valid)
	assert.NotEqual(t, snapshot.Ingredients[0].ID, snapshot.Ingredients[1].ID)
	assert.Equal(t, models.Triadic, snapshot.RelationType)
	assert.Equal(t, models.MinCount, snapshot.Count)
	assert.Equal(t, "to top", snapshot.GradientDirection)
	assert.Len(t, snapshot.Palette, models.MinCount)

	_, err = s.Load(6)
	assert.ErrorIs(t, err, ErrPaletteNotFound)
}

func TestExport(t *testing.T) {
	s := newTestStudio(t, nil)
	require.NoError(t, s.SetCount(3))

	record, err := s.Save("Sunset")
	require.NoError(t, err)

	doc, err := s.Export(record.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sunset", doc.Name)
	assert.Equal(t, []string{"#e11d48", "#2563eb"}, doc.IngredientColors)
	assert.Equal(t, "#b04a97", doc.BaseColor)
	assert.Equal(t, 3, doc.Count)
	assert.Equal(t, fmt.Sprintf("linear-gradient(to right, %s, %s, %s)", doc.Palette[0], doc.Palette[1], doc.Palette[2]), doc.GradientCSS)

	_, err = s.Export(1)
	assert.ErrorIs(t, err, ErrPaletteNotFound)

	current := s.ExportCurrent(" draft ")
	assert.Equal(t, "draft", current.Name)
	assert.Equal(t, doc.Palette, current.Palette)
}

func TestImport(t *testing.T) {
	s := newTestStudio(t, nil)
	before := s.Snapshot()

	_, err := s.Import([]byte(`{"palette": [], "count": 3}`))
	assert.ErrorIs(t, err, normalize.ErrInvalidImport)
	assert.Equal(t, before, s.Snapshot())

	snapshot, err := s.Import([]byte(`{
		"name": "Imported",
		"ingredientColors": ["#000000", "#ffffff", "red"],
		"relationType": "complementary",
		"count": 4,
		"palette": ["#000000"],
		"gradientDirection": "to bottom"
	}`))
	require.NoError(t, err)

	require.Len(t, snapshot.Ingredients, 3)
	assert.Equal(t, "red", snapshot.Ingredients[2].Color)
	assert.Equal(t, models.Complementary, snapshot.RelationType)
	assert.Equal(t, 4, snapshot.Count)
	assert.Len(t, snapshot.Palette, 4)
	assert.Equal(t, "to bottom", snapshot.GradientDirection)
}

func TestExportImportRoundTrip(t *testing.T) {
	s := newTestStudio(t, nil)
	require.NoError(t, s.SetRelation(models.Analogous))
	require.NoError(t, s.SetCount(6))

	doc := s.ExportCurrent("trip")
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	other := newTestStudio(t, nil)
	snapshot, err := other.Import(data)
	require.NoError(t, err)

	assert.Equal(t, doc.Palette, snapshot.Palette)
	assert.Equal(t, doc.BaseColor, snapshot.BaseColor)
}
