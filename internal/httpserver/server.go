// internal/httpserver/server.go
//
// HTTP server wiring for the HATETRIS piece service.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", POST /auth/token.
//   - Enemy endpoints under /v1 (bearer JWT when auth is configured).
//
// Notes:
//   - Wells travel as arrays of row bitmasks, top row first, bit c = column c.
//   - Auth is enabled only when both JWT_SECRET and API_KEY_HASH are set.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/hatetris/go-server/internal/enemy"
	"github.com/hatetris/go-server/internal/game"
	"github.com/hatetris/go-server/internal/store"
)

// Config holds the settings the server reads from the environment.
type Config struct {
	ClientOrigin   string
	RequestTimeout time.Duration
	DefaultEnemy   string
	MaxSearchDepth int
	JWTSecret      string
	APIKeyHash     string
	TokenTTL       time.Duration
}

func (c Config) authEnabled() bool { return c.JWTSecret != "" && c.APIKeyHash != "" }

// Server bundles router, engine, enemy registry and choice cache.
type Server struct {
	r       *chi.Mux
	cfg     Config
	engine  *game.Engine
	enemies *enemy.Registry
	store   store.Store
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg Config, engine *game.Engine, enemies *enemy.Registry, st store.Store) *Server {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.MaxSearchDepth < 0 || cfg.MaxSearchDepth > enemy.MaxSearchDepth {
		cfg.MaxSearchDepth = enemy.MaxSearchDepth
	}
	s := &Server{r: chi.NewRouter(), cfg: cfg, engine: engine, enemies: enemies, store: st}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(cfg.RequestTimeout))
	s.r.Use(jsonContentType)
	s.r.Use(cors(cfg.ClientOrigin))

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"service": "hatetris-go",
			"endpoints": []string{
				"/health", "POST /auth/token", "GET /v1/rotation-system", "GET /v1/enemies",
				"POST /v1/next-piece", "POST /v1/ratings", "POST /v1/landings",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Post("/auth/token", s.handleToken)
	s.r.Route("/v1", func(r chi.Router) {
		if cfg.authEnabled() {
			r.Use(s.requireAuth)
		}
		s.mountV1(r)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors allows a single origin; defaults to http://localhost:5173.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
