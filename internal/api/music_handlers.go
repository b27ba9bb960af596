package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chakrasapp/chakras-server/internal/catalog"
	"github.com/chakrasapp/chakras-server/internal/http/response"
)

// handleHealthCheck reports liveness.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{"status": "ok"}, s.logger)
}

// handleScan triggers a library scan. Returns 409 when one is already running.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	summary, err := s.library.Scan(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, summary, s.logger)
}

// handleScanStatus reports scan and catalog state.
func (s *Server) handleScanStatus(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, s.library.Status(), s.logger)
}

// handleListSongs returns one page of the song catalog.
func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", catalog.DefaultPage)
	limit := queryInt(r, "limit", catalog.DefaultPageSize)

	songs, err := s.catalog.PaginateSongs(page, limit)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, songs, s.logger)
}

// handleListArtists returns every artist with counts.
func (s *Server) handleListArtists(w http.ResponseWriter, _ *http.Request) {
	artists, err := s.catalog.ListArtists()
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, artists, s.logger)
}

// handleArtistSongs returns all songs by one artist, matched case-insensitively.
func (s *Server) handleArtistSongs(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	songs, err := s.catalog.SongsByArtist(name)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, songs, s.logger)
}

// handleListAlbums returns every album with counts and formatted duration.
func (s *Server) handleListAlbums(w http.ResponseWriter, _ *http.Request) {
	albums, err := s.catalog.ListAlbums()
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, albums, s.logger)
}

// handleAlbumSongs returns the songs of one album. Albums are scoped per
// artist, so the artist query parameter disambiguates same-titled albums.
func (s *Server) handleAlbumSongs(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")
	artist := r.URL.Query().Get("artist")
	if artist == "" {
		response.BadRequest(w, "artist query parameter is required", s.logger)
		return
	}

	songs, err := s.catalog.SongsByAlbum(title, artist)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, songs, s.logger)
}

// handleListGenres returns every genre with counts.
func (s *Server) handleListGenres(w http.ResponseWriter, _ *http.Request) {
	genres, err := s.catalog.ListGenres()
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, genres, s.logger)
}

// handleSearch returns songs matching the query across title, artist,
// album, and genre. A missing or empty q is a client error.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		response.BadRequest(w, "search query is required", s.logger)
		return
	}

	results, err := s.catalog.Search(query)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, map[string]any{
		"query":   query,
		"results": results,
		"count":   len(results),
	}, s.logger)
}
