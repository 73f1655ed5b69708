package middleware

import (
	"crypto/subtle"

	"dental_care_app_go/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// AdminAuth guards the lead inbox with HTTP basic auth against a bcrypt hash.
// Failed logins are reported to monitor, which may be nil.
func AdminAuth(user, passwordHash string, monitor *services.LoginMonitor) echo.MiddlewareFunc {
	return echomw.BasicAuthWithConfig(echomw.BasicAuthConfig{
		Realm: "Lead inbox",
		Validator: func(u, p string, c echo.Context) (bool, error) {
			if passwordHash == "" {
				return false, nil
			}
			userOK := subtle.ConstantTimeCompare([]byte(u), []byte(user)) == 1
			// bcrypt runs regardless of the user match
			passOK := services.VerifyPassword(passwordHash, p)
			if !userOK || !passOK {
				c.Logger().Warnf("Failed lead inbox login from %s", c.RealIP())
				monitor.TrackFailure(c.RealIP())
				return false, nil
			}
			return true, nil
		},
	})
}
