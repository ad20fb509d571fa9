package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"

	"github.com/color-game/palette-api/models"
)

// maxImportBytes bounds import documents; a full export is well under 8 KiB.
const maxImportBytes = 64 << 10

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// GET, POST /v1/saved
func (app *Application) savedPalettes(w http.ResponseWriter, r *http.Request) {
	s, err := app.studioFor(r)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.SavedPalettes())
	case http.MethodPost:
		request := &models.SavePaletteRequest{}
		if err := json.NewDecoder(r.Body).Decode(request); err != nil && err != io.EOF {
			app.badJSONRequest(w, r, err)
			return
		}
		_, err := s.Save(request.Name)
		app.respondWithState(w, r, s, http.StatusCreated, err)
	default:
		app.requirePostMethod(w, r, ErrPOST)
	}
}

// PUT /v1/saved/rename
func (app *Application) renamePalette(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		app.requirePutMethod(w, r, ErrPUT)
		return
	}

	request := &models.RenamePaletteRequest{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	s, err := app.studioFor(r)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	_, err = s.Rename(request.ID, request.Name)
	app.respondWithState(w, r, s, http.StatusOK, err)
}

// POST /v1/saved/delete
func (app *Application) deletePalette(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	request := &models.PaletteIDRequest{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	s, err := app.studioFor(r)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.respondWithState(w, r, s, http.StatusOK, s.Delete(request.ID))
}

// POST /v1/saved/load
func (app *Application) loadPalette(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	request := &models.PaletteIDRequest{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	s, err := app.studioFor(r)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	_, err = s.Load(request.ID)
	app.respondWithState(w, r, s, http.StatusOK, err)
}

// GET /v1/saved/export?id=... exports a saved palette; without an id it
// exports the working set under ?name=.
func (app *Application) exportPalette(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	s, err := app.studioFor(r)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	var doc models.ExportDocument
	if rawID := r.URL.Query().Get("id"); rawID != "" {
		id, parseErr := strconv.ParseInt(rawID, 10, 64)
		if parseErr != nil {
			app.badRequest(w, r, fmt.Errorf("invalid id %q", rawID))
			return
		}
		if doc, err = s.Export(id); err != nil {
			app.studioError(w, r, err)
			return
		}
	} else {
		doc = s.ExportCurrent(r.URL.Query().Get("name"))
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.json"`, exportFilename(doc.Name)))
	writeJSON(w, http.StatusOK, doc)
}

func exportFilename(name string) string {
	cleaned := unsafeFilenameChars.ReplaceAllString(name, "-")
	if cleaned == "" || cleaned == "-" {
		return "palette"
	}
	return cleaned
}

// POST /v1/import
func (app *Application) importPalette(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	s, err := app.studioFor(r)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	_, err = s.Import(data)
	app.respondWithState(w, r, s, http.StatusOK, err)
}

// GET, PUT /v1/preferences
func (app *Application) preferences(w http.ResponseWriter, r *http.Request) {
	s, err := app.studioFor(r)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.Preferences())
	case http.MethodPut:
		request := &models.PreferencesRequest{}
		if err := json.NewDecoder(r.Body).Decode(request); err != nil {
			app.badJSONRequest(w, r, err)
			return
		}

		var notice error
		if request.DisplayFormat != nil {
			if err := s.SetDisplayFormat(*request.DisplayFormat); err != nil {
				if !isStorageNotice(err) {
					app.studioError(w, r, err)
					return
				}
				notice = err
			}
		}
		if request.DarkMode != nil {
			if err := s.SetDarkMode(*request.DarkMode); err != nil {
				notice = err
			}
		}
		app.respondWithState(w, r, s, http.StatusOK, notice)
	default:
		app.requirePutMethod(w, r, ErrPUT)
	}
}
