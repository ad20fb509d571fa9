package palette

import (
	"fmt"
	"math"

	"github.com/color-game/palette-api/colormath"
	"github.com/color-game/palette-api/models"
)

const (
	// NotAvailable is returned for absent or invalid input.
	NotAvailable = "N/A"
	// FormatError is returned when a valid color cannot be rendered.
	FormatError = "Error"
	// NoNameMarker prefixes the hex form when a color has no name.
	NoNameMarker = "~"
)

// Format renders color in mode. It never fails: invalid input yields
// NotAvailable and anything else that goes wrong yields FormatError.
func Format(color string, mode models.DisplayFormat) string {
	if !colormath.IsValid(color) {
		return NotAvailable
	}

	hex, err := colormath.Hex(color)
	if err != nil {
		return FormatError
	}

	switch mode {
	case models.FormatHex:
		return hex
	case models.FormatRGB:
		r, g, b, err := colormath.RGB(color)
		if err != nil {
			return FormatError
		}
		return fmt.Sprintf("rgb(%d, %d, %d)", round(r), round(g), round(b))
	case models.FormatHSL:
		h, s, l, err := colormath.HSL(color)
		if err != nil {
			return FormatError
		}
		if math.IsNaN(h) {
			h = 0
		}
		return fmt.Sprintf("hsl(%d, %d%%, %d%%)", round(h)%360, round(s*100), round(l*100))
	case models.FormatName:
		name, err := colormath.Name(color)
		if err != nil {
			return NoNameMarker + hex
		}
		return name
	default:
		return FormatError
	}
}

// FormatAll renders every color of a palette in mode.
func FormatAll(colors []string, mode models.DisplayFormat) []string {
	out := make([]string, len(colors))
	for i, color := range colors {
		out[i] = Format(color, mode)
	}
	return out
}

// HasName reports whether a name-mode rendering found a real color name.
func HasName(formatted string) bool {
	return formatted != NotAvailable && formatted != FormatError && len(formatted) > 0 &&
		formatted[:1] != NoNameMarker
}

func round(v float64) int {
	return int(math.Round(v))
}
