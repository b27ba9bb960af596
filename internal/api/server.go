// Package api provides the HTTP API server and handlers for the Chakras music server.
package api

import (
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/chakrasapp/chakras-server/internal/auth"
	"github.com/chakrasapp/chakras-server/internal/catalog"
	"github.com/chakrasapp/chakras-server/internal/media/covers"
	"github.com/chakrasapp/chakras-server/internal/ratelimit"
	"github.com/chakrasapp/chakras-server/internal/service"
	"github.com/chakrasapp/chakras-server/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	library   *service.LibraryService
	catalog   *catalog.Service
	auth      *service.AuthService
	playlists *service.PlaylistService
	tokens    *auth.TokenService
	validator *validation.Validator

	// authLimiter throttles login and register attempts per client IP.
	authLimiter *ratelimit.KeyedRateLimiter

	coversDir string
	router    *chi.Mux
	logger    *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	library *service.LibraryService,
	catalogService *catalog.Service,
	authService *service.AuthService,
	playlists *service.PlaylistService,
	tokens *auth.TokenService,
	validator *validation.Validator,
	coversDir string,
	logger *slog.Logger,
) *Server {
	s := &Server{
		library:     library,
		catalog:     catalogService,
		auth:        authService,
		playlists:   playlists,
		tokens:      tokens,
		validator:   validator,
		authLimiter: ratelimit.New(1, 5),
		coversDir:   coversDir,
		router:      chi.NewRouter(),
		logger:      logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Range"},
		ExposedHeaders: []string{"Content-Range", "Accept-Ranges", "Content-Length"},
		MaxAge:         300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// Stored cover art, served statically.
	s.router.Handle(covers.URLPrefix+"/*",
		http.StripPrefix(covers.URLPrefix+"/", http.FileServer(http.Dir(s.coversDir))))

	s.router.Route("/api", func(r chi.Router) {
		// Auth endpoints (public, login rate limited).
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.Post("/refresh", s.handleRefresh)
			r.Post("/logout", s.handleLogout)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Get("/me", s.handleMe)
			})
		})

		// Library and catalog endpoints.
		r.Route("/music", func(r chi.Router) {
			r.Post("/scan", s.handleScan)
			r.Get("/scan/status", s.handleScanStatus)
			r.Get("/songs", s.handleListSongs)
			r.Get("/artists", s.handleListArtists)
			r.Get("/artists/{name}/songs", s.handleArtistSongs)
			r.Get("/albums", s.handleListAlbums)
			r.Get("/albums/{title}/songs", s.handleAlbumSongs)
			r.Get("/genres", s.handleListGenres)
			r.Get("/search", s.handleSearch)
			r.Get("/stream/{id}", s.handleStream)
		})

		// Playlists (require auth).
		r.Route("/playlists", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/", s.handleCreatePlaylist)
			r.Get("/", s.handleListPlaylists)
			r.Get("/{id}", s.handleGetPlaylist)
			r.Patch("/{id}", s.handleUpdatePlaylist)
			r.Delete("/{id}", s.handleDeletePlaylist)
			r.Post("/{id}/songs", s.handleAddPlaylistSong)
			r.Delete("/{id}/songs/{songID}", s.handleRemovePlaylistSong)
		})

		// Likes (require auth).
		r.Route("/likes", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleLikedSongs)
			r.Post("/{songID}", s.handleToggleLike)
		})
	})
}
