package middleware

import (
	"fmt"
	"net/http"
	"runtime"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// panicPage is what the browser sees when a handler panics. The panel serves
// HTML, so the failure page does too; the details stay in the log.
const panicPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Something went wrong</title></head>
<body>
<h1>Something went wrong</h1>
<p>The page could not be rendered. Please try again.</p>
</body>
</html>
`

// Recovery returns middleware that converts handler panics into an HTML
// error page instead of tearing down the connection. The panic value and
// stack are logged with the request identifier.
func Recovery(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					var stack [4096]byte
					n := runtime.Stack(stack[:], false)

					rid, _ := c.Get("request_id").(string)
					logger.Error().
						Str("request_id", rid).
						Str("panic", fmt.Sprintf("%v", r)).
						Str("stack", string(stack[:n])).
						Msg("panic recovered")

					if c.Response().Committed {
						return
					}
					err = c.HTML(http.StatusInternalServerError, panicPage)
				}
			}()
			return next(c)
		}
	}
}
