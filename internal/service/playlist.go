package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/chakrasapp/chakras-server/internal/catalog"
	"github.com/chakrasapp/chakras-server/internal/domain"
	"github.com/chakrasapp/chakras-server/internal/errors"
	"github.com/chakrasapp/chakras-server/internal/id"
	"github.com/chakrasapp/chakras-server/internal/store"
)

// PlaylistService manages user playlists and liked songs.
//
// Playlists store song snapshots rather than bare IDs: catalog song IDs are
// reassigned on every scan, and a playlist must stay renderable afterwards.
type PlaylistService struct {
	store   *store.Store
	catalog *catalog.Service
	logger  *slog.Logger
}

// NewPlaylistService creates the playlist service.
func NewPlaylistService(s *store.Store, c *catalog.Service, logger *slog.Logger) *PlaylistService {
	return &PlaylistService{store: s, catalog: c, logger: logger}
}

// Create makes an empty playlist owned by the user.
func (s *PlaylistService) Create(ctx context.Context, userID, name, description string, isPublic bool) (*domain.Playlist, error) {
	playlistID, err := id.Generate("pl")
	if err != nil {
		return nil, errors.Wrap(err, "generate playlist id")
	}

	now := time.Now().UTC()
	playlist := &domain.Playlist{
		ID:          playlistID,
		Name:        name,
		Description: description,
		OwnerID:     userID,
		Songs:       []domain.PlaylistSong{},
		IsPublic:    isPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreatePlaylist(ctx, playlist); err != nil {
		return nil, errors.Wrap(err, "create playlist")
	}
	return playlist, nil
}

// List returns the user's playlists, newest first.
func (s *PlaylistService) List(ctx context.Context, userID string) ([]*domain.Playlist, error) {
	playlists, err := s.store.ListPlaylists(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list playlists")
	}
	return playlists, nil
}

// Get returns one of the user's playlists.
func (s *PlaylistService) Get(ctx context.Context, userID, playlistID string) (*domain.Playlist, error) {
	playlist, err := s.store.GetPlaylist(ctx, userID, playlistID)
	if err != nil {
		if errors.Is(err, store.ErrPlaylistNotFound) {
			return nil, errors.NotFound("playlist not found")
		}
		return nil, errors.Wrap(err, "get playlist")
	}
	return playlist, nil
}

// Update renames or re-describes a playlist.
func (s *PlaylistService) Update(ctx context.Context, userID, playlistID, name, description string, isPublic *bool) (*domain.Playlist, error) {
	playlist, err := s.Get(ctx, userID, playlistID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		playlist.Name = name
	}
	if description != "" {
		playlist.Description = description
	}
	if isPublic != nil {
		playlist.IsPublic = *isPublic
	}
	playlist.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdatePlaylist(ctx, playlist); err != nil {
		return nil, errors.Wrap(err, "update playlist")
	}
	return playlist, nil
}

// Delete removes one of the user's playlists.
func (s *PlaylistService) Delete(ctx context.Context, userID, playlistID string) error {
	if err := s.store.DeletePlaylist(ctx, userID, playlistID); err != nil {
		if errors.Is(err, store.ErrPlaylistNotFound) {
			return errors.NotFound("playlist not found")
		}
		return errors.Wrap(err, "delete playlist")
	}
	return nil
}

// AddSong snapshots a catalog song into the playlist.
func (s *PlaylistService) AddSong(ctx context.Context, userID, playlistID, songID string) (*domain.Playlist, error) {
	playlist, err := s.Get(ctx, userID, playlistID)
	if err != nil {
		return nil, err
	}

	song, err := s.catalog.ResolveForStream(songID)
	if err != nil {
		return nil, err
	}

	if playlist.ContainsSong(songID) {
		return nil, errors.Conflict("song already in playlist")
	}

	playlist.Songs = append(playlist.Songs, domain.PlaylistSong{
		SongID:     song.ID,
		Title:      song.Title,
		Artist:     song.Artist,
		Album:      song.Album,
		Duration:   song.Duration,
		CoverImage: song.CoverImage,
		AddedAt:    time.Now().UTC(),
	})
	playlist.RecalculateDuration()
	playlist.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdatePlaylist(ctx, playlist); err != nil {
		return nil, errors.Wrap(err, "update playlist")
	}
	return playlist, nil
}

// RemoveSong drops a song snapshot from the playlist.
func (s *PlaylistService) RemoveSong(ctx context.Context, userID, playlistID, songID string) (*domain.Playlist, error) {
	playlist, err := s.Get(ctx, userID, playlistID)
	if err != nil {
		return nil, err
	}

	songs := playlist.Songs[:0]
	removed := false
	for _, snap := range playlist.Songs {
		if snap.SongID == songID {
			removed = true
			continue
		}
		songs = append(songs, snap)
	}
	if !removed {
		return nil, errors.NotFound("song not in playlist")
	}

	playlist.Songs = songs
	playlist.RecalculateDuration()
	playlist.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdatePlaylist(ctx, playlist); err != nil {
		return nil, errors.Wrap(err, "update playlist")
	}
	return playlist, nil
}

// LikeResult reports the new like state after a toggle.
type LikeResult struct {
	SongID string `json:"songId"`
	Liked  bool   `json:"liked"`
}

// ToggleLike flips the like state of a catalog song for the user.
func (s *PlaylistService) ToggleLike(ctx context.Context, userID, songID string) (*LikeResult, error) {
	if _, err := s.catalog.ResolveForStream(songID); err != nil {
		return nil, err
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "get user")
	}

	if user.HasLiked(songID) {
		liked := user.LikedSongs[:0]
		for _, idStr := range user.LikedSongs {
			if idStr != songID {
				liked = append(liked, idStr)
			}
		}
		user.LikedSongs = liked
	} else {
		user.LikedSongs = append(user.LikedSongs, songID)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, errors.Wrap(err, "update user")
	}

	return &LikeResult{SongID: songID, Liked: user.HasLiked(songID)}, nil
}

// LikedSongs resolves the user's liked song IDs against the current
// catalog. IDs that no longer resolve (the library was rescanned) are
// silently skipped.
func (s *PlaylistService) LikedSongs(ctx context.Context, userID string) ([]*domain.Song, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "get user")
	}

	songs := make([]*domain.Song, 0, len(user.LikedSongs))
	for _, songID := range user.LikedSongs {
		song, err := s.catalog.ResolveForStream(songID)
		if err != nil {
			continue
		}
		songs = append(songs, song)
	}
	return songs, nil
}
