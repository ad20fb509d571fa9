// Package palette derives color palettes from a base color and a relation
// type, mixes ingredient colors into a base color and renders colors in the
// supported display notations.
package palette

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/color-game/palette-api/colormath"
	"github.com/color-game/palette-api/models"
)

const (
	// FallbackColor replaces any sample that fails validation.
	FallbackColor = "#ff0000"
	MidGray       = "#808080"
	Black         = "#000000"
	White         = "#ffffff"

	// luminanceEpsilon absorbs float error when testing for pure black or white.
	luminanceEpsilon = 1e-9
	lightnessSteps   = 2
)

var ErrInvalidBase = errors.New("invalid base color")
var ErrInvalidCount = errors.New("count must be at least 1")

// Generator produces palettes. Failures are logged and yield an empty palette.
// The zero value discards log output.
type Generator struct {
	Logger *log.Logger
}

// NewGenerator returns a generator logging to logger, or to the standard
// logger when logger is nil.
func NewGenerator(logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.Default()
	}
	return &Generator{Logger: logger}
}

// Generate returns count colors derived from base following relation. An
// invalid base, a count below one or any color math failure produce an empty,
// non-nil slice.
func (g *Generator) Generate(base string, relation models.RelationType, count int) []string {
	colors, err := g.TryGenerate(base, relation, count)
	if err != nil {
		if !errors.Is(err, ErrInvalidBase) && !errors.Is(err, ErrInvalidCount) {
			g.logger().Printf("palette generation failed for %q (%s, %d): %v", base, relation, count, err)
		}
		return []string{}
	}
	return colors
}

// TryGenerate is Generate with the failure reason exposed.
func (g *Generator) TryGenerate(base string, relation models.RelationType, count int) ([]string, error) {
	if count < 1 {
		return nil, ErrInvalidCount
	}
	if !colormath.IsValid(base) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBase, base)
	}

	luminance, err := colormath.Luminance(base)
	if err != nil {
		return nil, err
	}

	switch {
	case luminance <= luminanceEpsilon:
		brightened, err := colormath.Brighten(base, lightnessSteps)
		if err != nil {
			return nil, err
		}
		return sample([]string{Black, brightened, MidGray}, count)
	case luminance >= 1-luminanceEpsilon:
		darkened, err := colormath.Darken(base, lightnessSteps)
		if err != nil {
			return nil, err
		}
		colors, err := sample([]string{MidGray, darkened, White}, count)
		if err != nil {
			return nil, err
		}
		reverse(colors)
		return colors, nil
	}

	switch relation {
	case models.Analogous:
		plus, minus, err := hueOffsets(base, 30)
		if err != nil {
			return nil, err
		}
		return sample([]string{plus, base, minus}, count)
	case models.Complementary:
		complement, err := colormath.WithHueOffset(base, 180)
		if err != nil {
			return nil, err
		}
		if count <= 2 {
			return validated([]string{base, complement}[:count]), nil
		}
		return sample([]string{base, complement}, count)
	case models.Triadic:
		plus, minus, err := hueOffsets(base, 120)
		if err != nil {
			return nil, err
		}
		return sample([]string{base, plus, minus, base}, count)
	case models.SplitComplementary:
		plus, minus, err := hueOffsets(base, 150)
		if err != nil {
			return nil, err
		}
		return sample([]string{base, plus, minus, base}, count)
	default:
		darker, err := colormath.Darken(base, lightnessSteps)
		if err != nil {
			return nil, err
		}
		brighter, err := colormath.Brighten(base, lightnessSteps)
		if err != nil {
			return nil, err
		}
		return sample([]string{darker, base, brighter}, count)
	}
}

func (g *Generator) logger() *log.Logger {
	if g == nil || g.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return g.Logger
}

func hueOffsets(base string, degrees float64) (plus, minus string, err error) {
	plus, err = colormath.WithHueOffset(base, degrees)
	if err != nil {
		return "", "", err
	}
	minus, err = colormath.WithHueOffset(base, -degrees)
	if err != nil {
		return "", "", err
	}
	return plus, minus, nil
}

// sample builds an LCH scale through stops and takes count evenly spaced colors.
func sample(stops []string, count int) ([]string, error) {
	scale, err := colormath.NewScale(stops, colormath.SpaceLCH)
	if err != nil {
		return nil, err
	}
	return validated(scale.Colors(count)), nil
}

// validated canonicalizes every token, swapping invalid ones for FallbackColor.
func validated(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, token := range tokens {
		hex, err := colormath.Hex(token)
		if err != nil {
			hex = FallbackColor
		}
		out[i] = hex
	}
	return out
}

func reverse(colors []string) {
	for i, j := 0, len(colors)-1; i < j; i, j = i+1, j-1 {
		colors[i], colors[j] = colors[j], colors[i]
	}
}
