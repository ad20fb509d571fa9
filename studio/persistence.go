package studio

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/color-game/palette-api/datastore"
	"github.com/color-game/palette-api/models"
	"github.com/color-game/palette-api/normalize"
)

const (
	keySavedPalettes = "saved-palettes"
	keyDarkMode      = "dark-mode"
	keyDisplayFormat = "display-format"
)

// StorageNotice reports that a change was applied in memory but could not be
// written to the store. The studio stays usable; callers show Message to the
// user.
type StorageNotice struct {
	Key string
	Err error
}

func (n *StorageNotice) Error() string {
	return fmt.Sprintf("could not save %s: %v", n.Key, n.Err)
}

func (n *StorageNotice) Unwrap() error {
	return n.Err
}

// Message is the user facing text of the notice.
func (n *StorageNotice) Message() string {
	return "Your changes could not be saved and will be lost when this session ends."
}

// AsStorageNotice extracts a *StorageNotice from err.
func AsStorageNotice(err error) (*StorageNotice, bool) {
	var notice *StorageNotice
	if errors.As(err, &notice) {
		return notice, true
	}
	return nil, false
}

func (s *Studio) key(name string) string {
	if s.workspaceID == "" {
		return name
	}
	return s.workspaceID + ":" + name
}

// Hydrate replaces saved palettes and preferences with the stored values.
// Missing or malformed entries fall back to the current values; hydration
// never fails. Saved palettes come back with unique ids, newest first.
func (s *Studio) Hydrate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if raw, ok := s.read(keySavedPalettes); ok {
		s.saved = s.orderSaved(s.normalizer.SavedPalettes(raw, s.saved))
	}
	if raw, ok := s.read(keyDarkMode); ok {
		s.preferences.DarkMode = normalize.BooleanFlag(raw, s.preferences.DarkMode)
	}
	if raw, ok := s.read(keyDisplayFormat); ok {
		format := normalize.EnumeratedString(raw, formatNames(), string(s.preferences.DisplayFormat))
		s.preferences.DisplayFormat = models.DisplayFormat(format)
	}
}

// orderSaved gives every repeated id after its first occurrence a fresh one,
// then sorts newest first. Records with equal ids keep their stored order.
func (s *Studio) orderSaved(records []models.SavedPalette) []models.SavedPalette {
	seen := make(map[int64]bool, len(records))
	for i := range records {
		for seen[records[i].ID] {
			id := s.normalizer.RecordIDs.Next()
			s.logger.Printf("studio %s: saved palette id %d repeats, using %d", s.workspaceID, records[i].ID, id)
			records[i].ID = id
		}
		seen[records[i].ID] = true
	}
	slices.SortStableFunc(records, func(a, b models.SavedPalette) int {
		return cmp.Compare(b.ID, a.ID)
	})
	return records
}

func (s *Studio) read(name string) (string, bool) {
	if s.store == nil {
		return "", false
	}
	raw, err := s.store.Get(s.key(name))
	if err != nil {
		if !datastore.IsNotFound(err) {
			s.logger.Printf("studio %s: reading %s: %v", s.workspaceID, name, err)
		}
		return "", false
	}
	return raw, true
}

func (s *Studio) persistSaved() error {
	return s.persist(keySavedPalettes, s.saved)
}

func (s *Studio) persist(name string, value any) error {
	if s.store == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Printf("studio %s: encoding %s: %v", s.workspaceID, name, err)
		return &StorageNotice{Key: name, Err: err}
	}
	if err := s.store.Set(s.key(name), string(data)); err != nil {
		s.logger.Printf("studio %s: writing %s: %v", s.workspaceID, name, err)
		return &StorageNotice{Key: name, Err: err}
	}
	return nil
}
