package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chakrasapp/chakras-server/internal/errors"
)

// stubExtractor serves canned tags keyed by file base name. Unknown files
// yield empty tags; names listed in fail yield an extraction error.
type stubExtractor struct {
	tags map[string]*Tags
	fail map[string]bool
}

func (s *stubExtractor) Extract(_ context.Context, path string) (*Tags, []byte, error) {
	name := filepath.Base(path)
	if s.fail[name] {
		return nil, nil, fmt.Errorf("corrupt file %s", name)
	}
	if t, ok := s.tags[name]; ok {
		return t, nil, nil
	}
	return &Tags{}, nil, nil
}

// stubCovers records saved art and can be told to fail.
type stubCovers struct {
	saved int
	err   error
}

func (s *stubCovers) Save(_ []byte) (string, string, error) {
	if s.err != nil {
		return "", "", s.err
	}
	s.saved++
	return "/covers/deadbeef.jpg", "LEHV6nWB2yk8", nil
}

// coverExtractor returns cover bytes alongside empty tags.
type coverExtractor struct{}

func (coverExtractor) Extract(_ context.Context, _ string) (*Tags, []byte, error) {
	return &Tags{}, []byte{0xff, 0xd8, 0xff}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// touch creates an empty file, making any needed parent directories.
func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestScan_MissingRoot(t *testing.T) {
	s := New(&stubExtractor{}, nil, testLogger())

	_, err := s.Scan(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestScan_FolderFallbacks(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "root.mp3"))
	touch(t, filepath.Join(root, "Real Artist", "loose.flac"))
	touch(t, filepath.Join(root, "Real Artist", "Album1", "track.ogg"))

	s := New(&stubExtractor{}, nil, testLogger())
	songs, err := s.Scan(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, songs, 3)

	byName := make(map[string]int)
	for i, song := range songs {
		byName[song.FileName] = i
	}

	rootSong := songs[byName["root.mp3"]]
	assert.Equal(t, "root", rootSong.Title)
	assert.Equal(t, UnknownArtist, rootSong.Artist)
	assert.Equal(t, UnknownAlbum, rootSong.Album)
	assert.Equal(t, UnknownGenre, rootSong.Genre)

	loose := songs[byName["loose.flac"]]
	assert.Equal(t, "Real Artist", loose.Artist)
	assert.Equal(t, UnknownAlbum, loose.Album)

	track := songs[byName["track.ogg"]]
	assert.Equal(t, "Real Artist", track.Artist)
	assert.Equal(t, "Album1", track.Album)
}

func TestScan_TagsWinOverFolders(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "Folder Artist", "Folder Album", "song.mp3"))

	year := 1997
	s := New(&stubExtractor{tags: map[string]*Tags{
		"song.mp3": {
			Title:           "Tagged Title",
			Artist:          "Tagged Artist",
			Album:           "Tagged Album",
			Genres:          []string{"Rock", "Pop"},
			Year:            &year,
			DurationSeconds: 200,
			BitrateKbps:     320,
		},
	}}, nil, testLogger())

	songs, err := s.Scan(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, songs, 1)

	song := songs[0]
	assert.Equal(t, "Tagged Title", song.Title)
	assert.Equal(t, "Tagged Artist", song.Artist)
	assert.Equal(t, "Tagged Album", song.Album)
	assert.Equal(t, "Rock, Pop", song.Genre)
	assert.Equal(t, 1997, *song.Year)
	assert.Equal(t, 200, song.Duration)
	assert.Equal(t, 320, song.Bitrate)
	assert.Equal(t, int64(1), song.FileSize)
	assert.NotEmpty(t, song.ID)
	assert.False(t, song.DateAdded.IsZero())
}

func TestScan_SkipsUnsupportedAndHidden(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "keep.mp3"))
	touch(t, filepath.Join(root, "cover.jpg"))
	touch(t, filepath.Join(root, "notes.txt"))
	touch(t, filepath.Join(root, ".hidden.mp3"))
	touch(t, filepath.Join(root, ".git", "config.mp3"))

	s := New(&stubExtractor{}, nil, testLogger())
	songs, err := s.Scan(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, songs, 1)
	assert.Equal(t, "keep.mp3", songs[0].FileName)
}

func TestScan_DepthLimit(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "Artist", "Album", "in.mp3"))
	touch(t, filepath.Join(root, "Artist", "Album", "Disc 1", "too-deep.mp3"))

	s := New(&stubExtractor{}, nil, testLogger())
	songs, err := s.Scan(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, songs, 1)
	assert.Equal(t, "in.mp3", songs[0].FileName)
}

func TestScan_CorruptFileSkipped(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "good1.mp3"))
	touch(t, filepath.Join(root, "bad.mp3"))
	touch(t, filepath.Join(root, "good2.mp3"))

	s := New(&stubExtractor{fail: map[string]bool{"bad.mp3": true}}, nil, testLogger())
	songs, err := s.Scan(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, songs, 2)
	for _, song := range songs {
		assert.NotEqual(t, "bad.mp3", song.FileName)
	}
}

func TestScan_CaseInsensitiveExtensions(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "upper.MP3"))
	touch(t, filepath.Join(root, "mixed.FlAc"))

	s := New(&stubExtractor{}, nil, testLogger())
	songs, err := s.Scan(context.Background(), root)
	require.NoError(t, err)
	assert.Len(t, songs, 2)
}

func TestScan_StoresEmbeddedCover(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "art.mp3"))

	covers := &stubCovers{}
	s := New(coverExtractor{}, covers, testLogger())
	songs, err := s.Scan(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, songs, 1)
	assert.Equal(t, 1, covers.saved)
	assert.Equal(t, "/covers/deadbeef.jpg", songs[0].CoverImage)
	assert.Equal(t, "LEHV6nWB2yk8", songs[0].CoverBlurHash)
}

func TestScan_CoverFailureDoesNotDropSong(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "art.mp3"))

	covers := &stubCovers{err: fmt.Errorf("disk full")}
	s := New(coverExtractor{}, covers, testLogger())
	songs, err := s.Scan(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, songs, 1)
	assert.Empty(t, songs[0].CoverImage)
}

func TestScan_CancelledContextStopsEarly(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 10; i++ {
		touch(t, filepath.Join(root, fmt.Sprintf("s%d.mp3", i)))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(&stubExtractor{}, nil, testLogger())
	songs, err := s.Scan(ctx, root)
	require.NoError(t, err)
	assert.Empty(t, songs)
}

func TestIsSupportedAudioFile(t *testing.T) {
	assert.True(t, IsSupportedAudioFile("a.mp3"))
	assert.True(t, IsSupportedAudioFile("a.WMA"))
	assert.True(t, IsSupportedAudioFile("/x/y/b.m4a"))
	assert.False(t, IsSupportedAudioFile("a.jpg"))
	assert.False(t, IsSupportedAudioFile("mp3"))
}
