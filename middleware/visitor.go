package middleware

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"
)

const (
	// VisitorCookieName holds the fallback visitor session ID for tabs without sessionStorage
	VisitorCookieName = "dental_visitor"
	// ContextKeyVisitorID is the context key for the cookie-backed visitor ID
	ContextKeyVisitorID = "visitor_id"
)

// VisitorSession makes sure every visitor carries a browser-session cookie.
// The cookie has no MaxAge, so it ends with the browser session. Its value is
// signed with secret so a visitor cannot adopt another visitor's session.
func VisitorSession(secret string, secure bool) echo.MiddlewareFunc {
	codec := securecookie.New([]byte(secret), nil)
	codec.MaxAge(0)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if cookie, err := c.Cookie(VisitorCookieName); err == nil {
				var decoded string
				if codec.Decode(VisitorCookieName, cookie.Value, &decoded) == nil && isSessionID(decoded) {
					id = decoded
				}
			}

			if id == "" {
				id = uuid.New().String()
				signed, err := codec.Encode(VisitorCookieName, id)
				if err != nil {
					return fmt.Errorf("failed to sign visitor cookie: %w", err)
				}
				c.SetCookie(&http.Cookie{
					Name:     VisitorCookieName,
					Value:    signed,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(ContextKeyVisitorID, id)
			return next(c)
		}
	}
}

// GetVisitorID returns the cookie-backed visitor ID, or "" outside VisitorSession
func GetVisitorID(c echo.Context) string {
	if id, ok := c.Get(ContextKeyVisitorID).(string); ok {
		return id
	}
	return ""
}

// ResolveSessionID prefers the tab's own session ID and falls back to the visitor cookie
func ResolveSessionID(c echo.Context, tabSessionID string) string {
	if isSessionID(tabSessionID) {
		return tabSessionID
	}
	return GetVisitorID(c)
}

func isSessionID(v string) bool {
	if v == "" {
		return false
	}
	_, err := uuid.Parse(v)
	return err == nil
}
