package colormath

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Scale is a multi-stop color ramp over the domain [0, 1]. Stops are placed at
// equal distances and neighbouring stops are blended in the scale's space.
type Scale struct {
	stops []colorful.Color
	space Space
}

// NewScale parses stops and returns a scale interpolating in space.
func NewScale(stops []string, space Space) (*Scale, error) {
	if len(stops) == 0 {
		return nil, fmt.Errorf("%w: scale needs at least one stop", ErrInvalidColor)
	}
	switch space {
	case SpaceLCH, SpaceLab, SpaceRGB:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpace, space)
	}

	parsed := make([]colorful.Color, len(stops))
	for i, stop := range stops {
		c, err := Parse(stop)
		if err != nil {
			return nil, fmt.Errorf("scale stop %d: %w", i, err)
		}
		parsed[i] = c
	}
	return &Scale{stops: parsed, space: space}, nil
}

// At returns the color at position t, clamped to [0, 1]. The result may be
// invalid (NaN channels); callers check IsValid.
func (s *Scale) At(t float64) colorful.Color {
	if len(s.stops) == 1 {
		return s.stops[0]
	}
	if t <= 0 {
		return s.stops[0]
	}
	if t >= 1 {
		return s.stops[len(s.stops)-1]
	}

	segments := float64(len(s.stops) - 1)
	pos := t * segments
	i := int(math.Floor(pos))
	if i >= len(s.stops)-1 {
		i = len(s.stops) - 2
	}
	return s.blend(s.stops[i], s.stops[i+1], pos-float64(i))
}

// Colors samples n evenly spaced points from the scale, endpoints included. A
// single sample is taken from the middle. Samples that fall outside sRGB are
// returned as empty tokens.
func (s *Scale) Colors(n int) []string {
	if n <= 0 {
		return []string{}
	}
	out := make([]string, n)
	if n == 1 {
		out[0] = sampleToken(s.At(0.5))
		return out
	}
	for i := 0; i < n; i++ {
		out[i] = sampleToken(s.At(float64(i) / float64(n-1)))
	}
	return out
}

func (s *Scale) blend(from, to colorful.Color, t float64) colorful.Color {
	switch s.space {
	case SpaceLab:
		return from.BlendLab(to, t).Clamped()
	case SpaceRGB:
		return from.BlendRgb(to, t).Clamped()
	default:
		return blendLCH(from, to, t)
	}
}

// blendLCH interpolates lightness and chroma linearly and hue along the
// shorter arc. An achromatic end borrows the hue of the other end so that
// ramps through black, white or gray do not swing through unrelated hues.
func blendLCH(from, to colorful.Color, t float64) colorful.Color {
	h1, c1, l1 := from.Hcl()
	h2, c2, l2 := to.Hcl()

	switch {
	case c1 < achromaticChroma && c2 < achromaticChroma:
		h1, h2 = 0, 0
	case c1 < achromaticChroma:
		h1 = h2
	case c2 < achromaticChroma:
		h2 = h1
	}

	return colorful.Hcl(interpolateHue(h1, h2, t), c1+t*(c2-c1), l1+t*(l2-l1)).Clamped()
}

func interpolateHue(from, to, t float64) float64 {
	delta := math.Mod(math.Mod(to-from, 360)+540, 360) - 180
	return normalizeHue(from + t*delta)
}

func sampleToken(c colorful.Color) string {
	c = c.Clamped()
	if !c.IsValid() {
		return ""
	}
	return c.Hex()
}
