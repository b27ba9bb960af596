// Package scanner discovers audio files under the library root and turns
// them into catalog songs: filesystem traversal, tag extraction, fallback
// normalization, and cover-art capture.
package scanner

import (
	"context"
	"fmt"
	"strings"

	"go.senan.xyz/taglib"
)

// Tags holds the normalized metadata read from one audio file.
// Fields that the file does not carry are left at their zero value;
// the fallback chain fills them in afterwards.
type Tags struct {
	Title  string
	Artist string
	Album  string
	// Genres keeps one entry per genre tag value; joined later.
	Genres []string
	Year   *int
	Track  *int
	// DurationSeconds is the floor of the parsed duration. 0 if unknown.
	DurationSeconds int
	// BitrateKbps is 0 if unknown.
	BitrateKbps int
}

// Extractor reads tags and embedded cover art from an audio file.
// Implementations must not have side effects beyond reading the file.
type Extractor interface {
	// Extract returns the file's tags and raw embedded cover bytes
	// (nil when the file carries no art). A file that cannot be parsed
	// yields a descriptive error; the walker treats that as per-file
	// and skips it.
	Extract(ctx context.Context, path string) (*Tags, []byte, error)
}

// TagLibExtractor reads metadata through the taglib bindings, which cover
// every format in the supported extension set.
type TagLibExtractor struct{}

// NewTagLibExtractor creates a taglib-backed extractor.
func NewTagLibExtractor() *TagLibExtractor {
	return &TagLibExtractor{}
}

// Extract implements Extractor.
func (e *TagLibExtractor) Extract(ctx context.Context, path string) (*Tags, []byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	rawTags, err := taglib.ReadTags(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read tags from %s: %w", path, err)
	}

	tags := &Tags{
		Title:  firstTagValue(rawTags, taglib.Title),
		Artist: firstTagValue(rawTags, taglib.Artist),
		Album:  firstTagValue(rawTags, taglib.Album),
		Genres: allTagValues(rawTags, taglib.Genre),
		Year:   parseYear(firstTagValue(rawTags, taglib.Date, "YEAR", "ORIGINALDATE")),
		Track:  parseLeadingInt(firstTagValue(rawTags, taglib.TrackNumber, "TRCK")),
	}

	// Audio properties are best effort: a file whose tags parse but whose
	// stream properties don't still becomes a song with zero duration.
	if props, err := taglib.ReadProperties(path); err == nil {
		if props.Length > 0 {
			tags.DurationSeconds = int(props.Length.Seconds())
		}
		if props.Bitrate > 0 {
			tags.BitrateKbps = int(props.Bitrate)
		}
	}

	// Embedded art is also best effort.
	cover, err := taglib.ReadImage(path)
	if err != nil || len(cover) == 0 {
		cover = nil
	}

	return tags, cover, nil
}

// firstTagValue returns the first non-empty value for any of the keys.
func firstTagValue(tags map[string][]string, keys ...string) string {
	for _, key := range keys {
		for _, v := range tags[key] {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// allTagValues returns every non-empty trimmed value for the key.
func allTagValues(tags map[string][]string, key string) []string {
	var out []string
	for _, v := range tags[key] {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// parseLeadingInt parses the leading digits of a value like "3" or "3/12".
// Returns nil when there is no usable number.
func parseLeadingInt(value string) *int {
	value = strings.TrimSpace(value)
	n := 0
	digits := 0
	for _, ch := range value {
		if ch < '0' || ch > '9' {
			break
		}
		n = n*10 + int(ch-'0')
		digits++
	}
	if digits == 0 || n == 0 {
		return nil
	}
	return &n
}

// parseYear extracts a year from a date-ish tag value such as "2004",
// "2004-03-01", or "2004/03/01".
func parseYear(value string) *int {
	return parseLeadingInt(value)
}
