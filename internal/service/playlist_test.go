package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chakrasapp/chakras-server/internal/catalog"
	"github.com/chakrasapp/chakras-server/internal/domain"
	"github.com/chakrasapp/chakras-server/internal/errors"
	"github.com/chakrasapp/chakras-server/internal/store"
)

func testPlaylistService(t *testing.T) (*PlaylistService, *store.Store) {
	t.Helper()

	st, err := store.New(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	holder := catalog.NewHolder()
	holder.Replace(catalog.New(libraryFixtureSongs()))

	return NewPlaylistService(st, catalog.NewService(holder), testLogger()), st
}

func seedUser(t *testing.T, st *store.Store, id string) {
	t.Helper()
	require.NoError(t, st.CreateUser(context.Background(), &domain.User{
		ID:        id,
		Username:  id,
		Email:     id + "@example.com",
		CreatedAt: time.Now().UTC(),
	}))
}

func TestPlaylist_CreateAndAddSongs(t *testing.T) {
	svc, _ := testPlaylistService(t)
	ctx := context.Background()

	playlist, err := svc.Create(ctx, "user-1", "Morning", "wake up slow", false)
	require.NoError(t, err)
	assert.NotEmpty(t, playlist.ID)
	assert.Empty(t, playlist.Songs)

	playlist, err = svc.AddSong(ctx, "user-1", playlist.ID, "song-1")
	require.NoError(t, err)
	require.Len(t, playlist.Songs, 1)

	// The snapshot carries display fields, not just the ID.
	snap := playlist.Songs[0]
	assert.Equal(t, "One", snap.Title)
	assert.Equal(t, "A", snap.Artist)
	assert.Equal(t, 100, playlist.TotalDuration)

	// Duplicates are rejected.
	_, err = svc.AddSong(ctx, "user-1", playlist.ID, "song-1")
	assert.ErrorIs(t, err, errors.ErrConflict)

	// Unknown catalog songs are rejected.
	_, err = svc.AddSong(ctx, "user-1", playlist.ID, "song-999")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestPlaylist_RemoveSong(t *testing.T) {
	svc, _ := testPlaylistService(t)
	ctx := context.Background()

	playlist, err := svc.Create(ctx, "user-1", "Mix", "", false)
	require.NoError(t, err)
	_, err = svc.AddSong(ctx, "user-1", playlist.ID, "song-1")
	require.NoError(t, err)
	_, err = svc.AddSong(ctx, "user-1", playlist.ID, "song-2")
	require.NoError(t, err)

	playlist, err = svc.RemoveSong(ctx, "user-1", playlist.ID, "song-1")
	require.NoError(t, err)
	require.Len(t, playlist.Songs, 1)
	assert.Equal(t, "song-2", playlist.Songs[0].SongID)
	assert.Equal(t, 200, playlist.TotalDuration)

	_, err = svc.RemoveSong(ctx, "user-1", playlist.ID, "song-1")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestPlaylist_OwnerScoping(t *testing.T) {
	svc, _ := testPlaylistService(t)
	ctx := context.Background()

	playlist, err := svc.Create(ctx, "user-1", "Private", "", false)
	require.NoError(t, err)

	_, err = svc.Get(ctx, "user-2", playlist.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)

	err = svc.Delete(ctx, "user-2", playlist.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestPlaylist_UpdateAndDelete(t *testing.T) {
	svc, _ := testPlaylistService(t)
	ctx := context.Background()

	playlist, err := svc.Create(ctx, "user-1", "Old Name", "", false)
	require.NoError(t, err)

	public := true
	playlist, err = svc.Update(ctx, "user-1", playlist.ID, "New Name", "fresh", &public)
	require.NoError(t, err)
	assert.Equal(t, "New Name", playlist.Name)
	assert.Equal(t, "fresh", playlist.Description)
	assert.True(t, playlist.IsPublic)

	require.NoError(t, svc.Delete(ctx, "user-1", playlist.ID))
	_, err = svc.Get(ctx, "user-1", playlist.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestToggleLike(t *testing.T) {
	svc, st := testPlaylistService(t)
	ctx := context.Background()
	seedUser(t, st, "user-1")

	result, err := svc.ToggleLike(ctx, "user-1", "song-1")
	require.NoError(t, err)
	assert.True(t, result.Liked)

	liked, err := svc.LikedSongs(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.Equal(t, "One", liked[0].Title)

	result, err = svc.ToggleLike(ctx, "user-1", "song-1")
	require.NoError(t, err)
	assert.False(t, result.Liked)

	liked, err = svc.LikedSongs(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, liked)

	// Liking an unknown song is rejected.
	_, err = svc.ToggleLike(ctx, "user-1", "song-999")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestLikedSongs_SkipsStaleIDs(t *testing.T) {
	st, err := store.New(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	holder := catalog.NewHolder()
	holder.Replace(catalog.New(libraryFixtureSongs()))
	svc := NewPlaylistService(st, catalog.NewService(holder), testLogger())

	ctx := context.Background()
	seedUser(t, st, "user-1")
	_, err = svc.ToggleLike(ctx, "user-1", "song-1")
	require.NoError(t, err)

	// A rescan reassigns IDs; the stale like no longer resolves.
	holder.Replace(catalog.New([]domain.Song{
		{ID: "song-7", Title: "One", Artist: "A", Album: "X", Genre: "Rock", Duration: 100},
	}))

	liked, err := svc.LikedSongs(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, liked)
}
