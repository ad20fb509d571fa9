// Package studio holds the live working set of a workspace: its ingredients,
// generation settings, saved palettes and display preferences.
package studio

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/color-game/palette-api/colormath"
	"github.com/color-game/palette-api/datastore"
	"github.com/color-game/palette-api/idalloc"
	"github.com/color-game/palette-api/models"
	"github.com/color-game/palette-api/normalize"
	"github.com/color-game/palette-api/palette"
)

var (
	ErrMinIngredients     = errors.New("a mix needs at least two ingredients")
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrInvalidRelation    = errors.New("unknown relation type")
	ErrInvalidCount       = errors.New("count out of range")
	ErrInvalidDirection   = errors.New("gradient direction is required")
)

// DefaultIngredients seed a new working set.
var DefaultIngredients = []string{"#e11d48", "#2563eb"}

// Options configures a Studio. Zero fields get working defaults.
type Options struct {
	IDs       *idalloc.Allocator
	Generator *palette.Generator
	Logger    *log.Logger
	Now       func() time.Time
}

func (o Options) withDefaults() Options {
	if o.IDs == nil {
		o.IDs = idalloc.New()
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard, "", 0)
	}
	if o.Generator == nil {
		o.Generator = palette.NewGenerator(o.Logger)
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Studio is safe for concurrent use.
type Studio struct {
	mu sync.Mutex

	workspaceID string
	store       datastore.KeyValueRepository
	ids         *idalloc.Allocator
	generator   *palette.Generator
	normalizer  *normalize.Normalizer
	logger      *log.Logger
	now         func() time.Time

	ingredients       []models.Ingredient
	relation          models.RelationType
	count             int
	gradientDirection string
	saved             []models.SavedPalette
	preferences       models.Preferences
}

// New returns a studio with the default working set. Call Hydrate to load
// persisted saved palettes and preferences.
func New(workspaceID string, store datastore.KeyValueRepository, opts Options) *Studio {
	opts = opts.withDefaults()

	normalizer := normalize.New(opts.IDs, opts.Logger)
	normalizer.RecordIDs = idalloc.NewSeeded(opts.Now().UnixMilli())

	s := &Studio{
		workspaceID:       workspaceID,
		store:             store,
		ids:               opts.IDs,
		generator:         opts.Generator,
		normalizer:        normalizer,
		logger:            opts.Logger,
		now:               opts.Now,
		relation:          models.Monochromatic,
		count:             models.DefaultCount,
		gradientDirection: models.DefaultGradientDirection,
		saved:             []models.SavedPalette{},
		preferences:       models.Preferences{DisplayFormat: models.FormatHex},
	}
	for _, color := range DefaultIngredients {
		s.ingredients = append(s.ingredients, s.newIngredient(color))
	}
	return s
}

func (s *Studio) WorkspaceID() string {
	return s.workspaceID
}

func (s *Studio) newIngredient(color string) models.Ingredient {
	return models.Ingredient{
		ID:    s.ids.Next(),
		Color: color,
		Valid: colormath.IsValid(color),
	}
}

// Ingredients returns a copy of the working set.
func (s *Studio) Ingredients() []models.Ingredient {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Ingredient{}, s.ingredients...)
}

// AddIngredient appends color to the working set. Invalid colors are kept and
// flagged so the user can fix them.
func (s *Studio) AddIngredient(color string) models.Ingredient {
	s.mu.Lock()
	defer s.mu.Unlock()

	ingredient := s.newIngredient(strings.TrimSpace(color))
	s.ingredients = append(s.ingredients, ingredient)
	return ingredient
}

// UpdateIngredient replaces the color of ingredient id and revalidates it.
func (s *Studio) UpdateIngredient(id int64, color string) (models.Ingredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Ingredient{}, ErrIngredientNotFound
	}
	color = strings.TrimSpace(color)
	s.ingredients[i].Color = color
	s.ingredients[i].Valid = colormath.IsValid(color)
	return s.ingredients[i], nil
}

// RemoveIngredient drops ingredient id unless that would leave fewer than
// MinIngredients.
func (s *Studio) RemoveIngredient(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrIngredientNotFound
	}
	if len(s.ingredients) <= models.MinIngredients {
		return ErrMinIngredients
	}
	s.ingredients = append(s.ingredients[:i], s.ingredients[i+1:]...)
	return nil
}

// ToggleLock flips the lock of ingredient id.
func (s *Studio) ToggleLock(id int64) (models.Ingredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Ingredient{}, ErrIngredientNotFound
	}
	s.ingredients[i].Locked = !s.ingredients[i].Locked
	return s.ingredients[i], nil
}

// Randomize gives every unlocked ingredient a random color. A nil rng uses the
// global source.
func (s *Studio) Randomize(rng *rand.Rand) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.ingredients {
		if s.ingredients[i].Locked {
			continue
		}
		s.ingredients[i].Color = randomHex(rng)
		s.ingredients[i].Valid = true
	}
}

func randomHex(rng *rand.Rand) string {
	const channels = 1 << 24
	var v int
	if rng != nil {
		v = rng.IntN(channels)
	} else {
		v = rand.IntN(channels)
	}
	return fmt.Sprintf("#%06x", v)
}

func (s *Studio) indexOf(id int64) int {
	for i, ingredient := range s.ingredients {
		if ingredient.ID == id {
			return i
		}
	}
	return -1
}

func (s *Studio) SetRelation(relation models.RelationType) error {
	if !relation.Valid() {
		return ErrInvalidRelation
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.relation = relation
	return nil
}

// SetCount accepts counts between MinCount and MaxCount.
func (s *Studio) SetCount(count int) error {
	if count < models.MinCount || count > models.MaxCount {
		return ErrInvalidCount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count = count
	return nil
}

func (s *Studio) SetGradientDirection(direction string) error {
	direction = strings.TrimSpace(direction)
	if direction == "" {
		return ErrInvalidDirection
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gradientDirection = direction
	return nil
}

// BaseColor mixes the working set.
func (s *Studio) BaseColor() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return palette.Mix(s.ingredients)
}

// Palette generates from the current base color; it is empty when no
// ingredient is valid.
func (s *Studio) Palette() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentPalette()
}

func (s *Studio) currentPalette() []string {
	base, ok := palette.Mix(s.ingredients)
	if !ok {
		return []string{}
	}
	return s.generator.Generate(base, s.relation, s.count)
}

// Snapshot captures the generation state.
func (s *Studio) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Studio) snapshot() models.Snapshot {
	base, _ := palette.Mix(s.ingredients)
	return models.Snapshot{
		Ingredients:       append([]models.Ingredient{}, s.ingredients...),
		BaseColor:         base,
		Palette:           s.currentPalette(),
		RelationType:      s.relation,
		Count:             s.count,
		GradientDirection: s.gradientDirection,
	}
}

// State is the full view of the studio rendered in the preferred format.
func (s *Studio) State() models.StudioState {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.snapshot()
	return models.StudioState{
		Snapshot:    snapshot,
		Formatted:   palette.FormatAll(snapshot.Palette, s.preferences.DisplayFormat),
		GradientCSS: palette.GradientCSS(snapshot.GradientDirection, snapshot.Palette),
		Preferences: s.preferences,
		Saved:       cloneRecords(s.saved),
	}
}
