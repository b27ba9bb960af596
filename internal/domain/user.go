package domain

import "time"

// User is a registered listener.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash,omitempty"` // Stored hashed, filter from API responses
	LikedSongs   []string  `json:"likedSongs"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicUser is the API-safe view of a user.
type PublicUser struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	LikedSongs []string  `json:"likedSongs"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Public returns the user stripped of credential material.
func (u *User) Public() PublicUser {
	liked := u.LikedSongs
	if liked == nil {
		liked = []string{}
	}
	return PublicUser{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		LikedSongs: liked,
		CreatedAt:  u.CreatedAt,
	}
}

// HasLiked reports whether the user has liked the given song ID.
func (u *User) HasLiked(songID string) bool {
	for _, id := range u.LikedSongs {
		if id == songID {
			return true
		}
	}
	return false
}

// Session is a refresh-token session. Only the hash of the opaque refresh
// token is stored, so a database leak does not expose valid tokens.
type Session struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	RefreshTokenHash string    `json:"refreshTokenHash"`
	ExpiresAt        time.Time `json:"expiresAt"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
