package handlers

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func modalRequest(app *App, path, pageID string) (echo.Context, func() (string, int)) {
	c, rec := setupEcho(app, http.MethodPost, path, nil)
	htmxRequest(c)
	c.SetParamNames("page")
	c.SetParamValues(pageID)
	return c, func() (string, int) { return rec.Body.String(), rec.Code }
}

func TestOpenAndCloseModal(t *testing.T) {
	app, _ := newTestApp(t)
	page := app.Pages.Create()

	c, result := modalRequest(app, "/pages/"+page.ID+"/modal/open?trigger=hero", page.ID)
	require.NoError(t, OpenModalHandler(c))
	body, code := result()
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `data-open="true"`)
	assert.Contains(t, body, `id="lead-form-modal"`)
	assert.True(t, page.ModalOpen())
	assert.False(t, page.HasAutoOpened())

	// Opening again keeps the modal open
	c, _ = modalRequest(app, "/pages/"+page.ID+"/modal/open?trigger=cta", page.ID)
	require.NoError(t, OpenModalHandler(c))
	assert.True(t, page.ModalOpen())

	c, result = modalRequest(app, "/pages/"+page.ID+"/modal/close", page.ID)
	require.NoError(t, CloseModalHandler(c))
	body, code = result()
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `data-open="false"`)
	assert.NotContains(t, body, "lead-form-modal")
	assert.False(t, page.ModalOpen())

	// Closing a closed modal is harmless
	c, _ = modalRequest(app, "/pages/"+page.ID+"/modal/close", page.ID)
	require.NoError(t, CloseModalHandler(c))
	assert.False(t, page.ModalOpen())
}

func TestOpenModal_UnknownPage(t *testing.T) {
	app, _ := newTestApp(t)

	c, result := modalRequest(app, "/pages/missing/modal/open", "missing")
	require.NoError(t, OpenModalHandler(c))
	_, code := result()
	assert.Equal(t, http.StatusGone, code)
	assert.Equal(t, "true", c.Response().Header().Get("HX-Refresh"))
}

func TestModalTrigger(t *testing.T) {
	assert.Equal(t, "hero", modalTrigger("hero"))
	assert.Equal(t, "mobile_cta", modalTrigger("mobile_cta"))
	assert.Equal(t, "other", modalTrigger("<script>"))
	assert.Equal(t, "other", modalTrigger(""))
}
