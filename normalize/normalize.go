// Package normalize rebuilds typed state from untrusted persisted data. The
// persistence path never fails: malformed input degrades to caller supplied
// fallbacks, field by field where possible.
package normalize

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"strings"

	"github.com/color-game/palette-api/idalloc"
	"github.com/color-game/palette-api/models"
)

var errTrailingData = errors.New("trailing data after JSON value")

// Normalizer coerces stored and imported palette data. Missing ingredient ids
// are drawn from IDs. Missing saved palette ids are drawn from RecordIDs, which
// must count in milliseconds like the ids of freshly saved palettes.
type Normalizer struct {
	IDs       *idalloc.Allocator
	RecordIDs *idalloc.Allocator
	Logger    *log.Logger
}

// New returns a normalizer allocating from ids. A nil logger discards output.
func New(ids *idalloc.Allocator, logger *log.Logger) *Normalizer {
	if ids == nil {
		ids = idalloc.New()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Normalizer{IDs: ids, RecordIDs: idalloc.NewMilli(), Logger: logger}
}

// SavedPalettes decodes raw and coerces it into at most MaxSavedPalettes
// records, keeping their order. Elements that are not objects become fully
// defaulted records. Anything that is not a JSON array yields fallback.
func (n *Normalizer) SavedPalettes(raw string, fallback []models.SavedPalette) []models.SavedPalette {
	value, err := decode(raw)
	if err != nil {
		n.logf("saved palettes unreadable, using fallback: %v", err)
		return fallback
	}
	return n.SavedPalettesValue(value, fallback)
}

// SavedPalettesValue is SavedPalettes for an already decoded JSON value.
func (n *Normalizer) SavedPalettesValue(value any, fallback []models.SavedPalette) []models.SavedPalette {
	items, ok := value.([]any)
	if !ok {
		return fallback
	}

	records := make([]models.SavedPalette, 0, min(len(items), models.MaxSavedPalettes))
	for i, item := range items {
		if len(records) == models.MaxSavedPalettes {
			break
		}
		fields, ok := item.(map[string]any)
		if !ok {
			n.logf("saved palette %d: expected an object, got %T; using defaults", i, item)
			fields = map[string]any{}
		}
		records = append(records, n.record(fields))
	}
	return records
}

// BooleanFlag returns the boolean stored in raw, or fallback when raw does not
// hold exactly a JSON boolean.
func BooleanFlag(raw string, fallback bool) bool {
	value, err := decode(raw)
	if err != nil {
		return fallback
	}
	if b, ok := value.(bool); ok {
		return b
	}
	return fallback
}

// EnumeratedString returns the JSON string stored in raw when it is one of
// allowed, or fallback otherwise.
func EnumeratedString(raw string, allowed []string, fallback string) string {
	value, err := decode(raw)
	if err != nil {
		return fallback
	}
	s, ok := value.(string)
	if !ok {
		return fallback
	}
	for _, candidate := range allowed {
		if s == candidate {
			return s
		}
	}
	return fallback
}

// decode parses a single JSON value, keeping numbers as json.Number so large
// ids survive intact.
func decode(raw string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errTrailingData
	}
	return value, nil
}

func (n *Normalizer) logf(format string, args ...any) {
	if n.Logger != nil {
		n.Logger.Printf(format, args...)
	}
}

func (n *Normalizer) nextID() int64 {
	if n.IDs == nil {
		n.IDs = idalloc.New()
	}
	return n.IDs.Next()
}

func (n *Normalizer) nextRecordID() int64 {
	if n.RecordIDs == nil {
		n.RecordIDs = idalloc.NewMilli()
	}
	return n.RecordIDs.Next()
}
