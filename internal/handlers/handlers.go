package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"dconn.dev/folio/internal/config"
	"dconn.dev/folio/internal/middleware"
	"dconn.dev/folio/internal/services"
	"dconn.dev/folio/internal/web"
)

// SetupRoutes configures all routes and returns the router
func SetupRoutes(cfg *config.Config, projectService *services.ProjectService) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)

	// Initialize handlers
	pageHandler := NewPageHandler(PageFetcher(cfg), projectService)
	projectHandler := NewProjectHandler(projectService)
	themeHandler := NewThemeHandler()

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if cfg.AllowAllOrigins {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	withCORS := cors.Handler(corsOpts)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Use(withCORS)

		// Project endpoints
		r.Get("/projects", projectHandler.ListProjects)
		r.Get("/projects/{slug}", projectHandler.GetProject)

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	// Raw project data, fetched by the list pages
	r.With(withCORS).Get("/"+cfg.ProjectsFile, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, cfg.ProjectsPath())
	})

	// Pages
	r.Get("/", pageHandler.ListPage(web.PageIndex))
	r.Get("/"+web.PageIndex, pageHandler.ListPage(web.PageIndex))
	r.Get("/"+web.PageProjects, pageHandler.ListPage(web.PageProjects))
	r.Get("/"+web.PageDetail, pageHandler.DetailPage)
	r.Post("/theme", themeHandler.Toggle)

	// Stylesheet
	r.Get("/static/style.css", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		if err := web.WriteStylesheet(w, cfg.Theme); err != nil {
			slog.Error("failed to write stylesheet", "error", err)
		}
	})

	return r
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON", "error", err)
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
