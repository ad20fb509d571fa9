package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/color-game/palette-api/models"
	"github.com/color-game/palette-api/normalize"
	"github.com/color-game/palette-api/studio"
)

// studioError maps studio failures onto HTTP errors. Storage notices are not
// errors here; see respondWithState.
func (app *Application) studioError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, studio.ErrIngredientNotFound), errors.Is(err, studio.ErrPaletteNotFound):
		app.notFound(w, r, err)
	case errors.Is(err, studio.ErrMinIngredients),
		errors.Is(err, studio.ErrInvalidRelation),
		errors.Is(err, studio.ErrInvalidCount),
		errors.Is(err, studio.ErrInvalidDirection),
		errors.Is(err, studio.ErrInvalidFormat),
		errors.Is(err, studio.ErrEmptyName),
		errors.Is(err, studio.ErrNoBaseColor),
		errors.Is(err, normalize.ErrInvalidImport):
		app.badRequest(w, r, err)
	default:
		app.internalServerError(w, r, err)
	}
}

// respondWithState writes the studio state. A *studio.StorageNotice in err is
// reported as a notice on a successful response; any other error is an HTTP
// error.
func (app *Application) respondWithState(w http.ResponseWriter, r *http.Request, s *studio.Studio, status int, err error) {
	notice, isNotice := studio.AsStorageNotice(err)
	if err != nil && !isNotice {
		app.studioError(w, r, err)
		return
	}

	state := s.State()
	if isNotice {
		state.Notice = notice.Message()
	}
	writeJSON(w, status, state)
}

// GET /v1/studio
func (app *Application) getStudio(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	s, err := app.studioFor(r)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.respondWithState(w, r, s, http.StatusOK, nil)
}

// POST /v1/studio/ingredients
func (app *Application) addIngredient(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	request := &models.IngredientRequest{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	s, err := app.studioFor(r)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	s.AddIngredient(request.Color)
	app.respondWithState(w, r, s, http.StatusCreated, nil)
}

// PUT /v1/studio/ingredients/update
func (app *Application) updateIngredient(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		app.requirePutMethod(w, r, ErrPUT)
		return
	}

	request := &models.IngredientRequest{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	s, err := app.studioFor(r)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	_, err = s.UpdateIngredient(request.ID, request.Color)
	app.respondWithState(w, r, s, http.StatusOK, err)
}

// POST /v1/studio/ingredients/remove
func (app *Application) removeIngredient(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	request := &models.IngredientRequest{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	s, err := app.studioFor(r)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.respondWithState(w, r, s, http.StatusOK, s.RemoveIngredient(request.ID))
}

// POST /v1/studio/ingredients/lock
func (app *Application) toggleIngredientLock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	request := &models.IngredientRequest{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	s, err := app.studioFor(r)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	_, err = s.ToggleLock(request.ID)
	app.respondWithState(w, r, s, http.StatusOK, err)
}

// POST /v1/studio/randomize
func (app *Application) randomizeIngredients(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	s, err := app.studioFor(r)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	s.Randomize(nil)
	app.respondWithState(w, r, s, http.StatusOK, nil)
}

// PUT /v1/studio/settings
func (app *Application) updateSettings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		app.requirePutMethod(w, r, ErrPUT)
		return
	}

	request := &models.SettingsRequest{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	s, err := app.studioFor(r)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	// validate everything before applying anything
	if request.RelationType != nil && !request.RelationType.Valid() {
		app.studioError(w, r, studio.ErrInvalidRelation)
		return
	}
	if request.Count != nil && (*request.Count < models.MinCount || *request.Count > models.MaxCount) {
		app.studioError(w, r, studio.ErrInvalidCount)
		return
	}
	if request.GradientDirection != nil && strings.TrimSpace(*request.GradientDirection) == "" {
		app.studioError(w, r, studio.ErrInvalidDirection)
		return
	}

	if request.RelationType != nil {
		if err := s.SetRelation(*request.RelationType); err != nil {
			app.studioError(w, r, err)
			return
		}
	}
	if request.Count != nil {
		if err := s.SetCount(*request.Count); err != nil {
			app.studioError(w, r, err)
			return
		}
	}
	if request.GradientDirection != nil {
		if err := s.SetGradientDirection(*request.GradientDirection); err != nil {
			app.studioError(w, r, err)
			return
		}
	}

	app.respondWithState(w, r, s, http.StatusOK, nil)
}

func isStorageNotice(err error) bool {
	_, ok := studio.AsStorageNotice(err)
	return ok
}
