package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/color-game/palette-api/datastore"
	"github.com/color-game/palette-api/models"
	"github.com/color-game/palette-api/palette"
)

// GET /
func (app *Application) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "Palette API")
}

// POST /v1/palettes/generate
func (app *Application) generatePalette(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	request := &models.GenerateRequest{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	if request.Count == 0 {
		request.Count = models.DefaultCount
	}
	if request.Count < 1 || request.Count > models.MaxCount {
		app.badRequest(w, r, fmt.Errorf("count must be between 1 and %d", models.MaxCount))
		return
	}
	if request.Format == "" {
		request.Format = models.FormatHex
	}

	colors := app.Generator.Generate(request.BaseColor, request.RelationType, request.Count)

	writeJSON(w, http.StatusOK, models.GenerateResponse{
		BaseColor:    request.BaseColor,
		RelationType: request.RelationType,
		Count:        request.Count,
		Palette:      colors,
		Format:       request.Format,
		Formatted:    palette.FormatAll(colors, request.Format),
	})
}

// POST /v1/colors/mix
func (app *Application) mixColors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	request := &models.MixRequest{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	var base string
	var ok bool
	if len(request.Ingredients) > 0 {
		base, ok = palette.Mix(request.Ingredients)
	} else {
		base, ok = palette.MixColors(request.Colors)
	}

	writeJSON(w, http.StatusOK, models.MixResponse{BaseColor: base, HasBase: ok})
}

// GET /v1/colors/format?color=...&mode=...
func (app *Application) formatColor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	color := r.URL.Query().Get("color")
	mode := models.DisplayFormat(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = models.FormatHex
	}

	writeJSON(w, http.StatusOK, models.FormatResponse{
		Color:     color,
		Format:    mode,
		Formatted: palette.Format(color, mode),
	})
}

// GET /v1/palettes/daily
func (app *Application) getDailyPalette(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	dailyPalette, err := app.DailyPalettes.EnsureToday()
	if err != nil {
		log.Printf("Error loading daily palette: %v", err)
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dailyPalette)
}

// POST /v1/workspaces
func (app *Application) createWorkspace(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	signup := &models.WorkspaceSignupRequest{}
	if err := json.NewDecoder(r.Body).Decode(signup); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	workspace, err := models.NewWorkspace(*signup)
	if errors.Is(err, models.ErrWorkspaceName) || errors.Is(err, models.ErrPassphraseLength) {
		app.badRequest(w, r, err)
		return
	}
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	stored, err := app.WorkspaceRepo.Create(workspace)
	if errors.Is(err, datastore.ErrWorkspaceExists) {
		app.workspaceAlreadyExists(w, r, err)
		return
	}
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.issueAccessToken(w, r, stored, http.StatusCreated)
}

// POST /v1/workspaces/login
func (app *Application) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	creds := &models.WorkspaceCredentials{}
	if err := json.NewDecoder(r.Body).Decode(creds); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	workspace, err := app.WorkspaceRepo.ValidateAndGet(*creds)
	if errors.Is(err, datastore.ErrInvalidCredentials) {
		app.invalidCredentials(w, r, err)
		return
	}
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.issueAccessToken(w, r, workspace, http.StatusOK)
}

// issueAccessToken signs a token for workspace, sets it as the access cookie
// and returns it in the body for clients that cannot use cookies.
func (app *Application) issueAccessToken(w http.ResponseWriter, r *http.Request, workspace models.Workspace, status int) {
	accessExpiry := time.Now().Add(time.Second * time.Duration(app.Config.JwtAccessDuration))

	token, err := models.NewAccessToken(workspace.WorkspaceID, app.Config.JwtSecret, accessExpiry)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	sameSite := http.SameSiteStrictMode
	if app.Config.JwtDomain == "" {
		sameSite = http.SameSiteNoneMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     models.JWT.ACCESS_COOKIE_NAME,
		Value:    token,
		HttpOnly: true,
		Secure:   true,
		SameSite: sameSite,
		Path:     "/",
		Domain:   app.Config.JwtDomain,
		Expires:  accessExpiry,
	})

	writeJSON(w, status, models.WorkspaceTokenResponse{
		Workspace: workspace,
		Token:     token,
		Expiry:    accessExpiry,
	})
}
