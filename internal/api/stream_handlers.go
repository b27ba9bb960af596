package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/chakrasapp/chakras-server/internal/errors"
	"github.com/chakrasapp/chakras-server/internal/http/response"
)

// handleStream serves a song's audio file. A known ID whose file has
// drifted off disk is reported distinctly from an unknown ID.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	songID := chi.URLParam(r, "id")

	song, err := s.catalog.ResolveForStream(songID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if _, err := os.Stat(song.FilePath); os.IsNotExist(err) {
		s.logger.Error("Audio file missing from disk",
			"song_id", songID,
			"path", song.FilePath,
		)
		response.HandleError(w, errors.FileMissing("Audio file not found on disk"), s.logger)
		return
	}

	w.Header().Set("Content-Type", getAudioContentType(song.FileName))

	// Audio files don't change between scans.
	w.Header().Set("Cache-Control", "private, max-age=86400")

	// http.ServeFile handles:
	// - Range requests (partial content, 206 responses)
	// - Content-Length and Content-Range headers
	// - Accept-Ranges: bytes header
	// - If-Range conditional requests
	// - Last-Modified based caching
	http.ServeFile(w, r, song.FilePath)
}

// getAudioContentType returns the MIME type for an audio file name.
func getAudioContentType(fileName string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), ".")) {
	case "mp3":
		return "audio/mpeg"
	case "m4a", "mp4":
		return "audio/mp4"
	case "ogg", "oga", "opus":
		return "audio/ogg"
	case "flac":
		return "audio/flac"
	case "wav":
		return "audio/wav"
	case "aac":
		return "audio/aac"
	case "wma":
		return "audio/x-ms-wma"
	default:
		return "application/octet-stream"
	}
}
