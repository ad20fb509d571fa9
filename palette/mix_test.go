package palette

import (
	"testing"

	"github.com/color-game/palette-api/models"
	"github.com/stretchr/testify/assert"
)

func TestMix(t *testing.T) {
	tests := []struct {
		name        string
		ingredients []models.Ingredient
		want        string
		wantOK      bool
	}{
		{name: "empty", ingredients: nil},
		{
			name: "no valid ingredients",
			ingredients: []models.Ingredient{
				{ID: 1, Color: "bogus", Valid: false},
				{ID: 2, Color: "also bogus", Valid: false},
			},
		},
		{
			name:        "single valid",
			ingredients: []models.Ingredient{{ID: 1, Color: "#E11D48", Valid: true}},
			want:        "#e11d48",
			wantOK:      true,
		},
		{
			name: "invalid ones are ignored",
			ingredients: []models.Ingredient{
				{ID: 1, Color: "#e11d48", Valid: true},
				{ID: 2, Color: "zzz", Valid: false},
			},
			want:   "#e11d48",
			wantOK: true,
		},
		{
			name: "two valid average in lab",
			ingredients: []models.Ingredient{
				{ID: 1, Color: "#e11d48", Valid: true},
				{ID: 2, Color: "#2563eb", Valid: true, Locked: true},
			},
			want:   "#b04a97",
			wantOK: true,
		},
		{
			name: "valid flag set on a malformed token",
			ingredients: []models.Ingredient{
				{ID: 1, Color: "#e11d48", Valid: true},
				{ID: 2, Color: "broken", Valid: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Mix(tt.ingredients)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMixIsNotRGBAverage(t *testing.T) {
	got, ok := MixColors([]string{"#e11d48", "#2563eb"})
	assert.True(t, ok)
	assert.Equal(t, "#b04a97", got)
	assert.NotEqual(t, "#83409a", got)
}

func TestMixDoesNotMutateInput(t *testing.T) {
	ingredients := []models.Ingredient{
		{ID: 1, Color: "#E11D48", Valid: true},
		{ID: 2, Color: "#2563eb", Valid: true},
	}
	before := append([]models.Ingredient{}, ingredients...)

	Mix(ingredients)
	assert.Equal(t, before, ingredients)
}

func TestMixColorsValidates(t *testing.T) {
	got, ok := MixColors([]string{"nope", "#2563eb"})
	assert.True(t, ok)
	assert.Equal(t, "#2563eb", got)

	_, ok = MixColors([]string{"nope"})
	assert.False(t, ok)
}
