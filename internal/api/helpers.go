package api

import (
	"encoding/json/v2"
	"net"
	"net/http"
	"strconv"

	"github.com/chakrasapp/chakras-server/internal/errors"
)

// decodeJSON reads and unmarshals the request body into dest.
func decodeJSON(r *http.Request, dest any) error {
	if err := json.UnmarshalRead(r.Body, dest); err != nil {
		return errors.Validation("invalid JSON body").WithCause(err)
	}
	return nil
}

// clientIP returns the client IP for rate limit keying. RealIP middleware
// has already resolved proxy headers into RemoteAddr; direct connections
// still carry an ephemeral port, which must be stripped so reconnecting
// clients share one bucket.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// queryInt parses an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
