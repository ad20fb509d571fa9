package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/color-game/palette-api/datastore"
	"github.com/color-game/palette-api/models"
	"github.com/color-game/palette-api/studio"
)

type contextKey string

const workspaceContextKey contextKey = "workspace"

func handleCors(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Headers", "Access-Control-Allow-Credentials, Access-Control-Allow-Origin, Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if r.Method == http.MethodOptions {
			return
		}
		h.ServeHTTP(w, r)
	}
}

// tokenFromRequest reads the access token from the cookie, falling back to an
// Authorization: Bearer header for non-browser clients.
func tokenFromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(models.JWT.ACCESS_COOKIE_NAME); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
		return token, nil
	}
	return "", errors.New("no access token found")
}

// getWorkspaceFromJWT validates the access token and loads its workspace
func (app *Application) getWorkspaceFromJWT(r *http.Request) (models.Workspace, error) {
	tokenString, err := tokenFromRequest(r)
	if err != nil {
		return models.Workspace{}, err
	}

	claims, err := models.ValidateJWTToken(tokenString, app.Config.JwtSecret)
	if err != nil {
		return models.Workspace{}, err
	}

	workspace, err := app.WorkspaceRepo.Get(claims.WorkspaceID)
	if datastore.IsNotFound(err) {
		return models.Workspace{}, errors.New("workspace not found")
	}
	if err != nil {
		return models.Workspace{}, err
	}
	return workspace, nil
}

// authenticate that the workspace exists and store it in the request context
func (app *Application) authenticate(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspace, err := app.getWorkspaceFromJWT(r)
		if err != nil {
			app.invalidAuthorization(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), workspaceContextKey, workspace)
		h.ServeHTTP(w, r.WithContext(ctx))
	}
}

func workspaceFromContext(ctx context.Context) (models.Workspace, bool) {
	workspace, ok := ctx.Value(workspaceContextKey).(models.Workspace)
	return workspace, ok
}

// studioFor returns the studio of the authenticated workspace
func (app *Application) studioFor(r *http.Request) (*studio.Studio, error) {
	workspace, ok := workspaceFromContext(r.Context())
	if !ok {
		return nil, ErrNoWorkspace
	}
	return app.Studios.Get(workspace.WorkspaceID), nil
}
