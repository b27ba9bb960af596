package domain

import "time"

// PlaylistSong is a snapshot of a catalog song at the moment it was added.
// Snapshots carry display fields because catalog song IDs are reassigned on
// every scan; a playlist must stay renderable after the IDs churn.
type PlaylistSong struct {
	SongID     string    `json:"songId"`
	Title      string    `json:"title"`
	Artist     string    `json:"artist"`
	Album      string    `json:"album"`
	Duration   int       `json:"duration"`
	CoverImage string    `json:"coverImage,omitempty"`
	AddedAt    time.Time `json:"addedAt"`
}

// Playlist is a user-owned ordered list of song snapshots.
type Playlist struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	OwnerID       string         `json:"ownerId"`
	Songs         []PlaylistSong `json:"songs"`
	IsPublic      bool           `json:"isPublic"`
	TotalDuration int            `json:"totalDuration"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// ContainsSong reports whether the playlist already holds the song ID.
func (p *Playlist) ContainsSong(songID string) bool {
	for _, s := range p.Songs {
		if s.SongID == songID {
			return true
		}
	}
	return false
}

// RecalculateDuration recomputes TotalDuration from the song snapshots.
func (p *Playlist) RecalculateDuration() {
	total := 0
	for _, s := range p.Songs {
		total += s.Duration
	}
	p.TotalDuration = total
}
