package models

// GenerateRequest asks for a palette without touching any workspace state.
type GenerateRequest struct {
	BaseColor    string        `json:"baseColor"`
	RelationType RelationType  `json:"relationType"`
	Count        int           `json:"count"`
	Format       DisplayFormat `json:"format,omitempty"`
}

// GenerateResponse carries the raw palette plus its rendering in Format.
type GenerateResponse struct {
	BaseColor    string        `json:"baseColor"`
	RelationType RelationType  `json:"relationType"`
	Count        int           `json:"count"`
	Palette      []string      `json:"palette"`
	Format       DisplayFormat `json:"format"`
	Formatted    []string      `json:"formatted"`
}

// MixRequest accepts either full ingredients or bare color strings.
type MixRequest struct {
	Ingredients []Ingredient `json:"ingredients"`
	Colors      []string     `json:"colors"`
}

type MixResponse struct {
	BaseColor string `json:"baseColor,omitempty"`
	HasBase   bool   `json:"hasBase"`
}

type FormatResponse struct {
	Color     string        `json:"color"`
	Format    DisplayFormat `json:"format"`
	Formatted string        `json:"formatted"`
}

type IngredientRequest struct {
	ID    int64  `json:"id"`
	Color string `json:"color"`
}

type SettingsRequest struct {
	RelationType      *RelationType `json:"relationType,omitempty"`
	Count             *int          `json:"count,omitempty"`
	GradientDirection *string       `json:"gradientDirection,omitempty"`
}

type SavePaletteRequest struct {
	Name string `json:"name"`
}

type RenamePaletteRequest struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type PaletteIDRequest struct {
	ID int64 `json:"id"`
}

type PreferencesRequest struct {
	DarkMode      *bool          `json:"darkMode,omitempty"`
	DisplayFormat *DisplayFormat `json:"displayFormat,omitempty"`
}

// StudioState is the full view of a workspace returned by the studio endpoints.
type StudioState struct {
	Snapshot
	Formatted   []string       `json:"formatted"`
	GradientCSS string         `json:"gradientCSS"`
	Preferences Preferences    `json:"preferences"`
	Saved       []SavedPalette `json:"saved"`
	Notice      string         `json:"notice,omitempty"`
}
