package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chakrasapp/chakras-server/internal/http/response"
)

type createPlaylistRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=500"`
	IsPublic    bool   `json:"isPublic"`
}

// handleCreatePlaylist creates an empty playlist for the caller.
func (s *Server) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var req createPlaylistRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	playlist, err := s.playlists.Create(r.Context(), userIDFrom(r.Context()), req.Name, req.Description, req.IsPublic)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, playlist, s.logger)
}

// handleListPlaylists lists the caller's playlists.
func (s *Server) handleListPlaylists(w http.ResponseWriter, r *http.Request) {
	playlists, err := s.playlists.List(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, playlists, s.logger)
}

// handleGetPlaylist returns one of the caller's playlists.
func (s *Server) handleGetPlaylist(w http.ResponseWriter, r *http.Request) {
	playlist, err := s.playlists.Get(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, playlist, s.logger)
}

type updatePlaylistRequest struct {
	Name        string `json:"name" validate:"max=100"`
	Description string `json:"description" validate:"max=500"`
	IsPublic    *bool  `json:"isPublic"`
}

// handleUpdatePlaylist renames or re-describes a playlist.
func (s *Server) handleUpdatePlaylist(w http.ResponseWriter, r *http.Request) {
	var req updatePlaylistRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	playlist, err := s.playlists.Update(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "id"), req.Name, req.Description, req.IsPublic)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, playlist, s.logger)
}

// handleDeletePlaylist removes one of the caller's playlists.
func (s *Server) handleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	if err := s.playlists.Delete(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

type addSongRequest struct {
	SongID string `json:"songId" validate:"required"`
}

// handleAddPlaylistSong snapshots a catalog song into the playlist.
func (s *Server) handleAddPlaylistSong(w http.ResponseWriter, r *http.Request) {
	var req addSongRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	playlist, err := s.playlists.AddSong(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "id"), req.SongID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, playlist, s.logger)
}

// handleRemovePlaylistSong drops a song from the playlist.
func (s *Server) handleRemovePlaylistSong(w http.ResponseWriter, r *http.Request) {
	playlist, err := s.playlists.RemoveSong(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "id"), chi.URLParam(r, "songID"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, playlist, s.logger)
}

// handleLikedSongs returns the caller's liked songs resolved against the
// current catalog.
func (s *Server) handleLikedSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := s.playlists.LikedSongs(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, songs, s.logger)
}

// handleToggleLike flips the like state of a song for the caller.
func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	result, err := s.playlists.ToggleLike(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "songID"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, result, s.logger)
}
