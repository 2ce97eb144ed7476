package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tasklight/tasklight-go/internal/middleware"
	"github.com/tasklight/tasklight-go/internal/repository"
)

// RouterConfig carries the dependencies the HTTP surface needs.
type RouterConfig struct {
	Auth      *AuthHandler
	Todos     *TodoHandler
	Users     repository.UserStore
	JWTSecret string

	// StaticDir, when set, serves the SPA build alongside the API.
	StaticDir string

	// AuthRateLimit disables the per-IP limiter on auth routes when false,
	// which keeps tests deterministic.
	AuthRateLimit bool
}

// NewRouter assembles the full route table.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "server is running"})
	})

	r.Group(func(r chi.Router) {
		if cfg.AuthRateLimit {
			r.Use(middleware.RateLimit(5, 10))
		}
		r.Post("/api/auth/register", cfg.Auth.HandleRegister)
		r.Post("/api/auth/login", cfg.Auth.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret, cfg.Users))

		r.Get("/api/auth/me", cfg.Auth.HandleMe)

		r.Get("/api/todos", cfg.Todos.HandleList)
		r.Post("/api/todos", cfg.Todos.HandleCreate)
		r.Put("/api/todos/{id}", cfg.Todos.HandleUpdate)
		r.Patch("/api/todos/{id}/toggle", cfg.Todos.HandleToggle)
		r.Delete("/api/todos/{id}", cfg.Todos.HandleDelete)
	})

	if cfg.StaticDir != "" {
		serveStatic(r, cfg.StaticDir)
	}

	return r
}

// serveStatic serves the client build from dir, falling back to index.html
// for unknown non-API paths so client-side routing works on refresh.
func serveStatic(r chi.Router, dir string) {
	fileServer := http.FileServer(http.Dir(dir))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet || strings.HasPrefix(req.URL.Path, "/api/") {
			http.NotFound(w, req)
			return
		}

		path := filepath.Join(dir, filepath.Clean("/"+req.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, req)
			return
		}

		http.ServeFile(w, req, filepath.Join(dir, "index.html"))
	})
}
