package logging

import (
	"errors"
	"net/http"
	"strings"

	"github.com/veritylab/dfscan/src/detector/core"
)

// IsRateLimit reports whether err means the service is throttling us. Typed
// service errors carry the status code; anything else falls back to message
// sniffing.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	var se *core.ServiceError
	if errors.As(err, &se) {
		return se.StatusCode == http.StatusTooManyRequests
	}
	msg := err.Error()
	return strings.Contains(msg, "rate_limit") || strings.Contains(msg, "429")
}
