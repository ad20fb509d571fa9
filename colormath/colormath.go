// Package colormath adapts go-colorful to the token based color operations the
// palette engine needs: validation, notation conversion, perceptual scales and
// averaging, hue rotation and L*a*b* lightness steps.
package colormath

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Space selects the color space used for interpolation and averaging.
type Space string

const (
	SpaceLCH Space = "lch"
	SpaceLab Space = "lab"
	SpaceRGB Space = "rgb"
)

// LabStep is the L* change applied per Brighten/Darken step. go-colorful keeps
// L* in [0, 1], so this is 18 on the usual 0-100 scale.
const LabStep = 0.18

// achromaticChroma is the chroma below which an LCH hue is meaningless.
const achromaticChroma = 1e-3

var ErrUnknownSpace = errors.New("unknown color space")

// IsValid reports whether token parses to a color.
func IsValid(token string) bool {
	_, err := Parse(token)
	return err == nil
}

// Hex returns the canonical lowercase #rrggbb form of token.
func Hex(token string) (string, error) {
	c, err := Parse(token)
	if err != nil {
		return "", err
	}
	return c.Clamped().Hex(), nil
}

// RGB returns the channels of token on a 0-255 scale.
func RGB(token string) (r, g, b float64, err error) {
	c, err := Parse(token)
	if err != nil {
		return 0, 0, 0, err
	}
	c = c.Clamped()
	return c.R * 255, c.G * 255, c.B * 255, nil
}

// HSL returns hue in degrees, saturation and lightness in [0, 1]. The hue of an
// achromatic color is NaN.
func HSL(token string) (h, s, l float64, err error) {
	c, err := Parse(token)
	if err != nil {
		return 0, 0, 0, err
	}
	h, s, l = c.Clamped().Hsl()
	if s == 0 {
		h = math.NaN()
	}
	return h, s, l, nil
}

// Luminance returns the WCAG relative luminance of token in [0, 1].
func Luminance(token string) (float64, error) {
	c, err := Parse(token)
	if err != nil {
		return 0, err
	}
	r, g, b := c.Clamped().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b, nil
}

// Brighten raises L* by steps*LabStep.
func Brighten(token string, steps float64) (string, error) {
	c, err := Parse(token)
	if err != nil {
		return "", err
	}
	l, a, b := c.Lab()
	return toHex(colorful.Lab(l+steps*LabStep, a, b))
}

// Darken lowers L* by steps*LabStep.
func Darken(token string, steps float64) (string, error) {
	return Brighten(token, -steps)
}

// WithHueOffset rotates the HSL hue of token by degrees.
func WithHueOffset(token string, degrees float64) (string, error) {
	c, err := Parse(token)
	if err != nil {
		return "", err
	}
	h, s, l := c.Clamped().Hsl()
	return toHex(colorful.Hsl(normalizeHue(h+degrees), s, l))
}

// Average returns the mean of tokens computed in space.
func Average(tokens []string, space Space) (string, error) {
	if len(tokens) == 0 {
		return "", fmt.Errorf("%w: nothing to average", ErrInvalidColor)
	}

	colors := make([]colorful.Color, len(tokens))
	for i, token := range tokens {
		c, err := Parse(token)
		if err != nil {
			return "", err
		}
		colors[i] = c
	}

	n := float64(len(colors))
	switch space {
	case SpaceLab:
		var sl, sa, sb float64
		for _, c := range colors {
			l, a, b := c.Lab()
			sl, sa, sb = sl+l, sa+a, sb+b
		}
		return toHex(colorful.Lab(sl/n, sa/n, sb/n))
	case SpaceLCH:
		var sl, sc, sx, sy float64
		for _, c := range colors {
			h, ch, l := c.Hcl()
			sl, sc = sl+l, sc+ch
			if ch > achromaticChroma {
				rad := h * math.Pi / 180
				sx, sy = sx+math.Cos(rad), sy+math.Sin(rad)
			}
		}
		hue := normalizeHue(math.Atan2(sy, sx) * 180 / math.Pi)
		return toHex(colorful.Hcl(hue, sc/n, sl/n))
	case SpaceRGB:
		var r, g, b float64
		for _, c := range colors {
			r, g, b = r+c.R, g+c.G, b+c.B
		}
		return toHex(colorful.Color{R: r / n, G: g / n, B: b / n})
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSpace, space)
	}
}

// toHex clamps c into gamut and renders it. NaN channels survive clamping and
// are reported as invalid.
func toHex(c colorful.Color) (string, error) {
	c = c.Clamped()
	if !c.IsValid() {
		return "", fmt.Errorf("%w: out of gamut result", ErrInvalidColor)
	}
	return c.Hex(), nil
}

func normalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}
