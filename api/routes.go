package api

import (
	"net/http"
	"regexp"
	"strings"
)

var localhostPattern = regexp.MustCompile(`^localhost:\d+$`)

func cleanOrigin(origin string) string {
	cleanedOrigin := strings.TrimPrefix(origin, "https://")
	cleanedOrigin = strings.TrimPrefix(cleanedOrigin, "http://")
	cleanedOrigin = strings.TrimPrefix(cleanedOrigin, "wss://")
	if idx := strings.Index(cleanedOrigin, "/"); idx != -1 {
		cleanedOrigin = cleanedOrigin[:idx]
	}
	return cleanedOrigin
}

func isAllowedOrigin(origin string, allowedOrigins []string, devMode bool) bool {
	cleanedRequest := cleanOrigin(origin)

	// Allow localhost for development
	if devMode && localhostPattern.MatchString(cleanedRequest) {
		return true
	}

	for _, allowed := range allowedOrigins {
		if cleanOrigin(allowed) == cleanedRequest {
			return true
		}
	}

	return false
}

func wrapMuxWithCorsAndOrigins(mux *http.ServeMux, app *Application) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = r.Header.Get("Referer")
		}

		if origin == "" || isAllowedOrigin(origin, app.Config.AllowedOrigins, app.Config.DevMode) {
			handleCors(mux.ServeHTTP)(w, r)
			return
		}

		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("origin not allowed: " + cleanOrigin(origin)))
	})
}

func (app *Application) BuildRoutes(mux *http.ServeMux) *http.ServeMux {
	finalMux := http.NewServeMux()

	// Public endpoints
	mux.HandleFunc("/", app.home)
	mux.HandleFunc("/v1/palettes/generate", app.generatePalette)
	mux.HandleFunc("/v1/palettes/daily", app.getDailyPalette)
	mux.HandleFunc("/v1/colors/mix", app.mixColors)
	mux.HandleFunc("/v1/colors/format", app.formatColor)
	mux.HandleFunc("/v1/workspaces", app.createWorkspace)
	mux.HandleFunc("/v1/workspaces/login", app.login)

	// Authenticated endpoints
	mux.HandleFunc("/v1/studio", app.authenticate(app.getStudio))
	mux.HandleFunc("/v1/studio/ingredients", app.authenticate(app.addIngredient))
	mux.HandleFunc("/v1/studio/ingredients/update", app.authenticate(app.updateIngredient))
	mux.HandleFunc("/v1/studio/ingredients/remove", app.authenticate(app.removeIngredient))
	mux.HandleFunc("/v1/studio/ingredients/lock", app.authenticate(app.toggleIngredientLock))
	mux.HandleFunc("/v1/studio/randomize", app.authenticate(app.randomizeIngredients))
	mux.HandleFunc("/v1/studio/settings", app.authenticate(app.updateSettings))
	mux.HandleFunc("/v1/saved", app.authenticate(app.savedPalettes))
	mux.HandleFunc("/v1/saved/rename", app.authenticate(app.renamePalette))
	mux.HandleFunc("/v1/saved/delete", app.authenticate(app.deletePalette))
	mux.HandleFunc("/v1/saved/load", app.authenticate(app.loadPalette))
	mux.HandleFunc("/v1/saved/export", app.authenticate(app.exportPalette))
	mux.HandleFunc("/v1/import", app.authenticate(app.importPalette))
	mux.HandleFunc("/v1/preferences", app.authenticate(app.preferences))

	// Wrap entire mux with CORS and origins check
	finalMux.Handle("/", wrapMuxWithCorsAndOrigins(mux, app))

	return finalMux
}
