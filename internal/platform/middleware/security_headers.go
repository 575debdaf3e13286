package middleware

import (
	"github.com/labstack/echo/v4"
)

// SecurityHeaders returns middleware that sets security response headers on
// every request. The panel renders patient data, so responses must not be
// cached and must not be embeddable in frames.
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()

			// Prevent MIME type sniffing
			h.Set("X-Content-Type-Options", "nosniff")

			// Prevent clickjacking
			h.Set("X-Frame-Options", "DENY")

			// Server-rendered pages: allow same-origin styles only, no
			// scripts or remote content.
			h.Set("Content-Security-Policy", "default-src 'none'; style-src 'self'; img-src 'self'; form-action 'self'; frame-ancestors 'none'")

			// Do not send Referer header to other origins.
			h.Set("Referrer-Policy", "same-origin")

			// Disable browser features the panel does not need.
			h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")

			// Pages may contain patient data.
			h.Set("Cache-Control", "no-store")

			return next(c)
		}
	}
}
