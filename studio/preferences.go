package studio

import (
	"errors"

	"github.com/color-game/palette-api/models"
)

var ErrInvalidFormat = errors.New("unknown display format")

func (s *Studio) Preferences() models.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preferences
}

// SetDarkMode updates and persists the dark mode flag. The in-memory value
// changes even when a *StorageNotice is returned.
func (s *Studio) SetDarkMode(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.preferences.DarkMode = enabled
	return s.persist(keyDarkMode, enabled)
}

// SetDisplayFormat updates and persists the display format.
func (s *Studio) SetDisplayFormat(format models.DisplayFormat) error {
	if !validFormat(format) {
		return ErrInvalidFormat
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.preferences.DisplayFormat = format
	return s.persist(keyDisplayFormat, format)
}

func validFormat(format models.DisplayFormat) bool {
	for _, known := range models.DisplayFormats {
		if format == known {
			return true
		}
	}
	return false
}

func formatNames() []string {
	names := make([]string, len(models.DisplayFormats))
	for i, format := range models.DisplayFormats {
		names[i] = string(format)
	}
	return names
}
