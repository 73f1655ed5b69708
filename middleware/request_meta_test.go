package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"dental_care_app_go/services/leadform"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadRequestMeta(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("User-Agent", "TestAgent")
	req.Header.Set(echo.HeaderXRealIP, "203.0.113.7")
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set(ContextKeyVisitorID, "visitor-1")

	var got leadform.RequestMeta
	handler := LeadRequestMeta()(func(c echo.Context) error {
		got = leadform.RequestMetaFrom(c.Request().Context())
		return nil
	})
	require.NoError(t, handler(c))

	assert.Equal(t, "visitor-1", got.SessionID)
	assert.Equal(t, "203.0.113.7", got.IPAddress)
	assert.Equal(t, "TestAgent", got.UserAgent)
}
