package middleware

import (
	"dental_care_app_go/services/leadform"

	"github.com/labstack/echo/v4"
)

// LeadRequestMeta stores the caller's IP, user agent and visitor ID in the
// request context so lead submissions can record them.
func LeadRequestMeta() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			meta := leadform.RequestMeta{
				SessionID: GetVisitorID(c),
				IPAddress: c.RealIP(),
				UserAgent: c.Request().UserAgent(),
			}
			ctx := leadform.WithRequestMeta(c.Request().Context(), meta)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
