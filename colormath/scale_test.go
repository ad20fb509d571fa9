package colormath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleColors(t *testing.T) {
	scale, err := NewScale([]string{"#000000", "#ffffff"}, SpaceLab)
	require.NoError(t, err)

	got := scale.Colors(3)
	assert.Equal(t, []string{"#000000", "#777777", "#ffffff"}, got)

	assert.Equal(t, []string{"#777777"}, scale.Colors(1))
	assert.Empty(t, scale.Colors(0))
}

func TestScaleEndpointsAreExact(t *testing.T) {
	for _, space := range []Space{SpaceLCH, SpaceLab, SpaceRGB} {
		t.Run(string(space), func(t *testing.T) {
			scale, err := NewScale([]string{"#e11d48", "#2563eb", "#16a34a"}, space)
			require.NoError(t, err)

			got := scale.Colors(5)
			require.Len(t, got, 5)
			assert.Equal(t, "#e11d48", got[0])
			assert.Equal(t, "#2563eb", got[2])
			assert.Equal(t, "#16a34a", got[4])
			for _, token := range got {
				assert.True(t, IsValid(token), token)
			}
		})
	}
}

func TestScaleLCHKeepsHueThroughGray(t *testing.T) {
	scale, err := NewScale([]string{"#808080", "#e11d48"}, SpaceLCH)
	require.NoError(t, err)

	h1, _, _ := scale.At(0.25).Hcl()
	h2, _, _ := scale.At(1).Hcl()
	assert.InDelta(t, h2, h1, 0.5)
}

func TestScaleIsDeterministic(t *testing.T) {
	scale, err := NewScale([]string{"#e11d48", "#1de1b6"}, SpaceLCH)
	require.NoError(t, err)
	assert.Equal(t, scale.Colors(7), scale.Colors(7))
}

func TestNewScaleErrors(t *testing.T) {
	_, err := NewScale(nil, SpaceLCH)
	assert.ErrorIs(t, err, ErrInvalidColor)

	_, err = NewScale([]string{"#fff", "nope"}, SpaceLCH)
	assert.ErrorIs(t, err, ErrInvalidColor)

	_, err = NewScale([]string{"#fff"}, Space("hsv"))
	assert.ErrorIs(t, err, ErrUnknownSpace)
}

func TestInterpolateHueTakesShortArc(t *testing.T) {
	assert.InDelta(t, 0, interpolateHue(350, 10, 0.5), 1e-9)
	assert.InDelta(t, 180, interpolateHue(90, 270, 0.5), 1e-9)
	assert.InDelta(t, 20, interpolateHue(10, 30, 0.5), 1e-9)
}
