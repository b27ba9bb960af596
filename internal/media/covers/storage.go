// Package covers stores embedded cover art extracted during library scans
// and computes blurhash placeholders for it.
package covers

import (
	"crypto/sha256"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
)

// URLPrefix is the public path prefix covers are served under.
const URLPrefix = "/covers"

// Storage writes cover art to disk, one file per distinct image.
// Filenames are content-addressed (sha256 of the bytes), so the same
// artwork embedded in every track of an album is stored once and the
// same bytes always map to the same URL across scans.
// Safe for concurrent use.
type Storage struct {
	basePath string
	mu       sync.Mutex
	// hashes caches blurhashes by content hash so repeated saves of the
	// same artwork skip decoding.
	hashes map[string]string
}

// NewStorage creates cover storage under {basePath}/covers, creating the
// directory if needed.
func NewStorage(basePath string) (*Storage, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}

	dir := filepath.Join(basePath, "covers")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create covers directory: %w", err)
	}

	return &Storage{
		basePath: dir,
		hashes:   make(map[string]string),
	}, nil
}

// Dir returns the directory covers are stored in, for static serving.
func (s *Storage) Dir() string {
	return s.basePath
}

// Save stores the image bytes and returns the public URL plus a blurhash
// placeholder. Saving bytes that are already stored is a cheap no-op that
// returns the existing URL.
func (s *Storage) Save(data []byte) (string, string, error) {
	if len(data) == 0 {
		return "", "", fmt.Errorf("image data cannot be empty")
	}

	sum := fmt.Sprintf("%x", sha256.Sum256(data))
	name := sum + extensionFor(data)
	path := filepath.Join(s.basePath, name)
	url := URLPrefix + "/" + name

	s.mu.Lock()
	defer s.mu.Unlock()

	if hash, ok := s.hashes[sum]; ok {
		return url, hash, nil
	}

	if _, err := os.Stat(path); err != nil {
		if err := os.WriteFile(path, data, 0644); err != nil {
			return "", "", fmt.Errorf("failed to write cover file: %w", err)
		}
	}

	hash, err := ComputeBlurHash(data)
	if err != nil {
		// The stored image is still usable without a placeholder.
		hash = ""
	}
	s.hashes[sum] = hash

	return url, hash, nil
}

// extensionFor picks a file extension from the sniffed content type.
// Unrecognized data falls back to .jpg, by far the most common embedded
// art format.
func extensionFor(data []byte) string {
	switch http.DetectContentType(data) {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
