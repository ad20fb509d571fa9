package models

// RelationType is the color-theory rule used to derive a palette from a base color.
type RelationType string

const (
	Monochromatic      RelationType = "monochromatic"
	Analogous          RelationType = "analogous"
	Complementary      RelationType = "complementary"
	SplitComplementary RelationType = "split-complementary"
	Triadic            RelationType = "triadic"
)

// RelationTypes lists every supported relation in display order.
var RelationTypes = []RelationType{
	Monochromatic,
	Analogous,
	Complementary,
	SplitComplementary,
	Triadic,
}

// Valid reports whether r is one of RelationTypes.
func (r RelationType) Valid() bool {
	for _, known := range RelationTypes {
		if r == known {
			return true
		}
	}
	return false
}

// DisplayFormat is the textual notation used to render colors.
type DisplayFormat string

const (
	FormatHex  DisplayFormat = "hex"
	FormatRGB  DisplayFormat = "rgb"
	FormatHSL  DisplayFormat = "hsl"
	FormatName DisplayFormat = "name"
)

var DisplayFormats = []DisplayFormat{FormatHex, FormatRGB, FormatHSL, FormatName}

const (
	DefaultCount             = 5
	MinCount                 = 3
	MaxCount                 = 12
	MinIngredients           = 2
	MaxSavedPalettes         = 20
	DefaultGradientDirection = "to right"
	PlaceholderColor         = "#ffffff"
)

// Ingredient is one user supplied color taking part in the mix.
type Ingredient struct {
	ID     int64  `json:"id"`
	Color  string `json:"color"`
	Valid  bool   `json:"valid"`
	Locked bool   `json:"locked"`
}

// SavedPalette is a snapshot of a generation result. Only Name changes after
// creation.
type SavedPalette struct {
	ID                int64        `json:"id"`
	Name              string       `json:"name"`
	Ingredients       []Ingredient `json:"ingredients"`
	BaseColor         string       `json:"baseColor"`
	Palette           []string     `json:"palette"`
	RelationType      RelationType `json:"relationType"`
	Count             int          `json:"count"`
	GradientDirection string       `json:"gradientDirection"`
}

// Snapshot is the generation state shared by the live studio, saved records
// and imported documents.
type Snapshot struct {
	Ingredients       []Ingredient `json:"ingredients"`
	BaseColor         string       `json:"baseColor,omitempty"`
	Palette           []string     `json:"palette"`
	RelationType      RelationType `json:"relationType"`
	Count             int          `json:"count"`
	GradientDirection string       `json:"gradientDirection"`
}

// ExportDocument is the file format handed to the download collaborator.
type ExportDocument struct {
	Name              string       `json:"name"`
	IngredientColors  []string     `json:"ingredientColors"`
	BaseColor         string       `json:"baseColor"`
	RelationType      RelationType `json:"relationType"`
	Count             int          `json:"count"`
	Palette           []string     `json:"palette"`
	GradientDirection string       `json:"gradientDirection"`
	GradientCSS       string       `json:"gradientCSS"`
}

// Preferences are the per-workspace display settings.
type Preferences struct {
	DarkMode      bool          `json:"darkMode"`
	DisplayFormat DisplayFormat `json:"displayFormat"`
}
