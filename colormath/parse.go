package colormath

import (
	"errors"
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ErrInvalidColor is returned for tokens that do not describe an sRGB color.
var ErrInvalidColor = errors.New("invalid color")

var (
	hexPattern     = regexp.MustCompile(`^#?([0-9a-f]{3}|[0-9a-f]{4}|[0-9a-f]{6}|[0-9a-f]{8})$`)
	rgbFuncPattern = regexp.MustCompile(`^rgba?\(\s*([^,\s]+)\s*,\s*([^,\s]+)\s*,\s*([^,\s)]+)\s*(?:,\s*([^,\s)]+)\s*)?\)$`)
	hslFuncPattern = regexp.MustCompile(`^hsla?\(\s*([^,\s]+)\s*,\s*([^,\s]+)\s*,\s*([^,\s)]+)\s*(?:,\s*([^,\s)]+)\s*)?\)$`)
)

// extraNames holds CSS color names added after SVG 1.1.
var extraNames = map[string]color.RGBA{
	"rebeccapurple": {0x66, 0x33, 0x99, 0xff},
}

func namedColor(name string) (color.RGBA, bool) {
	if c, ok := colornames.Map[name]; ok {
		return c, true
	}
	c, ok := extraNames[name]
	return c, ok
}

// Parse reads a color token. Accepted forms are hex (#rgb, #rgba, #rrggbb,
// #rrggbbaa, with or without the leading #), CSS color names and the
// rgb()/rgba()/hsl()/hsla() functional notations. Alpha is accepted but
// discarded.
func Parse(token string) (colorful.Color, error) {
	s := strings.ToLower(strings.TrimSpace(token))
	if s == "" {
		return colorful.Color{}, fmt.Errorf("%w: empty token", ErrInvalidColor)
	}

	if named, ok := namedColor(s); ok {
		return colorful.Color{
			R: float64(named.R) / 255.0,
			G: float64(named.G) / 255.0,
			B: float64(named.B) / 255.0,
		}, nil
	}

	switch {
	case strings.HasPrefix(s, "rgb"):
		return parseRGBFunc(s)
	case strings.HasPrefix(s, "hsl"):
		return parseHSLFunc(s)
	}

	return parseHex(s)
}

func parseHex(s string) (colorful.Color, error) {
	m := hexPattern.FindStringSubmatch(s)
	if m == nil {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	digits := m[1]
	switch len(digits) {
	case 3, 4:
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	case 8:
		digits = digits[:6]
	}

	c, err := colorful.Hex("#" + digits)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %v", ErrInvalidColor, err)
	}
	return c, nil
}

func parseRGBFunc(s string) (colorful.Color, error) {
	m := rgbFuncPattern.FindStringSubmatch(s)
	if m == nil {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	var channels [3]float64
	for i := 0; i < 3; i++ {
		v, err := parseChannel(m[i+1], 255)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
		}
		channels[i] = v / 255.0
	}
	if m[4] != "" {
		if _, err := parseChannel(m[4], 1); err != nil {
			return colorful.Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
		}
	}

	return colorful.Color{R: channels[0], G: channels[1], B: channels[2]}, nil
}

func parseHSLFunc(s string) (colorful.Color, error) {
	m := hslFuncPattern.FindStringSubmatch(s)
	if m == nil {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	hue, err := strconv.ParseFloat(strings.TrimSuffix(m[1], "deg"), 64)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q: bad hue", ErrInvalidColor, s)
	}
	if !strings.HasSuffix(m[2], "%") || !strings.HasSuffix(m[3], "%") {
		return colorful.Color{}, fmt.Errorf("%w: %q: saturation and lightness need %%", ErrInvalidColor, s)
	}
	sat, err := parseChannel(m[2], 1)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
	}
	light, err := parseChannel(m[3], 1)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
	}
	if m[4] != "" {
		if _, err := parseChannel(m[4], 1); err != nil {
			return colorful.Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
		}
	}

	return colorful.Hsl(normalizeHue(hue), sat, light), nil
}

// parseChannel reads a plain number in [0, max] or a percentage in [0%, 100%]
// scaled onto [0, max].
func parseChannel(raw string, max float64) (float64, error) {
	scale := 1.0
	if strings.HasSuffix(raw, "%") {
		raw = strings.TrimSuffix(raw, "%")
		scale = max / 100.0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("bad channel %q", raw)
	}
	v *= scale
	if v < 0 || v > max {
		return 0, fmt.Errorf("channel %q out of range", raw)
	}
	return v, nil
}
