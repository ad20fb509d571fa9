package palette

import (
	"bytes"
	"log"
	"testing"

	"github.com/color-game/palette-api/colormath"
	"github.com/color-game/palette-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(buf *bytes.Buffer) *Generator {
	return NewGenerator(log.New(buf, "", 0))
}

func TestGenerateReturnsCountValidColors(t *testing.T) {
	g := newTestGenerator(&bytes.Buffer{})
	bases := []string{"#e11d48", "#2563eb", "#16a34a", "#facc15", "#7c3aed", "#808080"}

	for _, relation := range append(models.RelationTypes, models.RelationType("unknown")) {
		for _, base := range bases {
			for count := 1; count <= 12; count++ {
				got := g.Generate(base, relation, count)
				require.Len(t, got, count, "%s %s %d", base, relation, count)
				for _, color := range got {
					assert.True(t, colormath.IsValid(color) || color == FallbackColor, color)
				}
			}
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	g := newTestGenerator(&bytes.Buffer{})
	for _, relation := range models.RelationTypes {
		t.Run(string(relation), func(t *testing.T) {
			first := g.Generate("#e11d48", relation, 7)
			second := g.Generate("#e11d48", relation, 7)
			assert.Equal(t, first, second)
		})
	}
}

func TestGenerateComplementary(t *testing.T) {
	g := newTestGenerator(&bytes.Buffer{})

	assert.Equal(t, []string{"#e11d48", "#1de1b6"}, g.Generate("#e11d48", models.Complementary, 2))
	assert.Equal(t, []string{"#e11d48"}, g.Generate("#e11d48", models.Complementary, 1))

	five := g.Generate("#e11d48", models.Complementary, 5)
	require.Len(t, five, 5)
	assert.Equal(t, "#e11d48", five[0])
	assert.Equal(t, "#1de1b6", five[4])
}

func TestGenerateMonochromatic(t *testing.T) {
	g := newTestGenerator(&bytes.Buffer{})

	got := g.Generate("#e11d48", models.Monochromatic, 3)
	assert.Equal(t, []string{"#700000", "#e11d48", "#ff93a2"}, got)

	assert.Equal(t, got, g.Generate("#e11d48", models.RelationType("sepia"), 3),
		"unknown relations fall back to monochromatic")
}

func TestGenerateClosedLoopRelations(t *testing.T) {
	g := newTestGenerator(&bytes.Buffer{})

	for _, relation := range []models.RelationType{models.Triadic, models.SplitComplementary} {
		t.Run(string(relation), func(t *testing.T) {
			got := g.Generate("#2563eb", relation, 6)
			require.Len(t, got, 6)
			assert.Equal(t, "#2563eb", got[0])
			assert.Equal(t, "#2563eb", got[5])
		})
	}

	analogous := g.Generate("#2563eb", models.Analogous, 3)
	require.Len(t, analogous, 3)
	assert.Equal(t, "#2563eb", analogous[1])
}

func TestGenerateDegenerateLuminance(t *testing.T) {
	g := newTestGenerator(&bytes.Buffer{})

	for _, relation := range models.RelationTypes {
		t.Run("black "+string(relation), func(t *testing.T) {
			assert.Equal(t, []string{"#000000", "#555555", "#808080"}, g.Generate("#000000", relation, 3))
		})
		// The white ramp is built gray to white and then reversed, so white
		// comes first. Pinned as observed behavior.
		t.Run("white "+string(relation), func(t *testing.T) {
			assert.Equal(t, []string{"#ffffff", "#9b9b9b", "#808080"}, g.Generate("white", relation, 3))
		})
	}
}

func TestGenerateInvalidInput(t *testing.T) {
	var buf bytes.Buffer
	g := newTestGenerator(&buf)

	tests := []struct {
		name  string
		base  string
		count int
	}{
		{name: "invalid base", base: "not-a-color", count: 5},
		{name: "empty base", base: "", count: 5},
		{name: "zero count", base: "#e11d48", count: 0},
		{name: "negative count", base: "#e11d48", count: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Generate(tt.base, models.Analogous, tt.count)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
	assert.Empty(t, buf.String(), "invalid input is not an adapter failure")

	_, err := g.TryGenerate("nope", models.Analogous, 3)
	assert.ErrorIs(t, err, ErrInvalidBase)
	_, err = g.TryGenerate("#fff", models.Analogous, 0)
	assert.ErrorIs(t, err, ErrInvalidCount)
}

func TestZeroValueGenerator(t *testing.T) {
	var g Generator
	assert.Len(t, g.Generate("#e11d48", models.Triadic, 4), 4)
	assert.Empty(t, g.Generate("nope", models.Triadic, 4))
}

func TestValidatedReplacesInvalidSamples(t *testing.T) {
	got := validated([]string{"#abc", "", "#E11D48"})
	assert.Equal(t, []string{"#aabbcc", FallbackColor, "#e11d48"}, got)
}
