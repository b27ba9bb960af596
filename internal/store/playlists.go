package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"github.com/chakrasapp/chakras-server/internal/domain"
)

const playlistPrefix = "playlist:"

// playlistKey scopes playlists under their owner so a user's playlists can
// be listed with a single prefix iteration.
func playlistKey(userID, playlistID string) []byte {
	return []byte(playlistPrefix + userID + ":" + playlistID)
}

// CreatePlaylist stores a new playlist.
func (s *Store) CreatePlaylist(_ context.Context, playlist *domain.Playlist) error {
	return s.set(playlistKey(playlist.OwnerID, playlist.ID), playlist)
}

// GetPlaylist retrieves one of the user's playlists by ID.
func (s *Store) GetPlaylist(_ context.Context, userID, playlistID string) (*domain.Playlist, error) {
	var playlist domain.Playlist
	if err := s.get(playlistKey(userID, playlistID), &playlist); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("get playlist: %w", err)
	}
	return &playlist, nil
}

// ListPlaylists returns every playlist owned by the user, newest first.
func (s *Store) ListPlaylists(_ context.Context, userID string) ([]*domain.Playlist, error) {
	prefix := []byte(playlistPrefix + userID + ":")

	playlists := make([]*domain.Playlist, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		return listPrefixValues(txn, prefix, func(val []byte) error {
			var playlist domain.Playlist
			if err := json.Unmarshal(val, &playlist); err != nil {
				return err
			}
			playlists = append(playlists, &playlist)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}

	sort.Slice(playlists, func(i, j int) bool {
		return playlists[i].CreatedAt.After(playlists[j].CreatedAt)
	})
	return playlists, nil
}

// UpdatePlaylist persists changes to an existing playlist.
func (s *Store) UpdatePlaylist(_ context.Context, playlist *domain.Playlist) error {
	key := playlistKey(playlist.OwnerID, playlist.ID)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check playlist exists: %w", err)
	}
	if !exists {
		return ErrPlaylistNotFound
	}

	return s.set(key, playlist)
}

// DeletePlaylist removes one of the user's playlists.
func (s *Store) DeletePlaylist(_ context.Context, userID, playlistID string) error {
	key := playlistKey(userID, playlistID)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check playlist exists: %w", err)
	}
	if !exists {
		return ErrPlaylistNotFound
	}

	return s.delete(key)
}
