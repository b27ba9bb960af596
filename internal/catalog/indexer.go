package catalog

import (
	"strings"

	"github.com/chakrasapp/chakras-server/internal/domain"
)

// BuildIndexes derives the three secondary indices from a flat song list.
// It is a pure function of its input: the same songs in the same order
// always produce identical groupings.
//
// Group display names keep the casing of the first song encountered for a
// key; later songs with different casing join the group without altering
// it. Duration totals are running sums over exactly the group's songs.
func BuildIndexes(songs []domain.Song) (
	artists map[string]*domain.ArtistGroup,
	albums map[string]*domain.AlbumGroup,
	genres map[string]*domain.GenreGroup,
) {
	artists = make(map[string]*domain.ArtistGroup)
	albums = make(map[string]*domain.AlbumGroup)
	genres = make(map[string]*domain.GenreGroup)

	for i := range songs {
		song := &songs[i]

		indexArtist(artists, song)
		indexAlbum(albums, song)
		indexGenres(genres, song)
	}

	return artists, albums, genres
}

func indexArtist(artists map[string]*domain.ArtistGroup, song *domain.Song) {
	key := ArtistKey(song.Artist)

	group, ok := artists[key]
	if !ok {
		group = &domain.ArtistGroup{
			Name:   song.Artist,
			Albums: domain.NewStringSet(),
		}
		artists[key] = group
	}

	group.Songs = append(group.Songs, song)
	group.Albums.Add(song.Album)
	group.TotalDuration += song.Duration

	// First non-empty cover represents the artist; never replaced.
	if group.CoverImage == "" && song.CoverImage != "" {
		group.CoverImage = song.CoverImage
	}
}

func indexAlbum(albums map[string]*domain.AlbumGroup, song *domain.Song) {
	key := AlbumKey(song.Artist, song.Album)

	group, ok := albums[key]
	if !ok {
		// Year and cover are seeded from the first song of the group.
		group = &domain.AlbumGroup{
			Title:      song.Album,
			Artist:     song.Artist,
			Year:       song.Year,
			CoverImage: song.CoverImage,
		}
		albums[key] = group
	}

	group.Songs = append(group.Songs, song)
	group.TotalDuration += song.Duration
}

func indexGenres(genres map[string]*domain.GenreGroup, song *domain.Song) {
	for _, token := range SplitGenres(song.Genre) {
		key := GenreKey(token)

		group, ok := genres[key]
		if !ok {
			group = &domain.GenreGroup{
				Name:    token,
				Artists: domain.NewStringSet(),
			}
			genres[key] = group
		}

		group.Songs = append(group.Songs, song)
		group.Artists.Add(song.Artist)
	}
}

// SplitGenres splits a comma-joined genre field into trimmed tokens,
// dropping empties. A plain single genre comes back as one token.
func SplitGenres(genre string) []string {
	parts := strings.Split(genre, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}
