package middleware

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// BodyLimit returns middleware that limits the maximum request body size.
// The panel only accepts small HTML form submissions, so a single limit
// applies everywhere.
//
// The limit is a human-readable string: "64K", "1M", "1G", or a bare number
// of bytes. When the limit is exceeded the middleware returns HTTP 413.
func BodyLimit(limit string) echo.MiddlewareFunc {
	maxBytes := parseLimit(limit)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Body == nil || req.Body == http.NoBody {
				return next(c)
			}

			// Reject early when the declared length already exceeds the limit.
			if req.ContentLength > maxBytes {
				return echo.NewHTTPError(http.StatusRequestEntityTooLarge,
					fmt.Sprintf("request body exceeds limit of %s", limit))
			}

			req.Body = http.MaxBytesReader(c.Response(), req.Body, maxBytes)
			err := next(c)
			if err != nil && isBodyTooLarge(err) {
				return echo.NewHTTPError(http.StatusRequestEntityTooLarge,
					fmt.Sprintf("request body exceeds limit of %s", limit))
			}
			return err
		}
	}
}

func isBodyTooLarge(err error) bool {
	if err == nil {
		return false
	}
	if strings.Contains(err.Error(), "http: request body too large") {
		return true
	}
	return err == io.ErrUnexpectedEOF
}

// parseLimit converts "64K", "1M", "1G", or a bare byte count to bytes.
// Invalid input falls back to 1 MiB.
func parseLimit(limit string) int64 {
	const fallback = 1 << 20

	s := strings.TrimSpace(strings.ToUpper(limit))
	if s == "" {
		return fallback
	}

	mult := int64(1)
	switch s[len(s)-1] {
	case 'K':
		mult = 1 << 10
		s = s[:len(s)-1]
	case 'M':
		mult = 1 << 20
		s = s[:len(s)-1]
	case 'G':
		mult = 1 << 30
		s = s[:len(s)-1]
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n * mult
}
