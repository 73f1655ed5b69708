package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSitemapHandler(t *testing.T) {
	app, _ := newTestApp(t)
	c, rec := setupEcho(app, http.MethodGet, "/sitemap.xml", nil)

	require.NoError(t, GetSitemapHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, body, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, body, "<loc>https://delhidentalcare.com/</loc>")
}

func TestGetRobotsHandler(t *testing.T) {
	app, _ := newTestApp(t)
	app.Config.AppURL = "https://delhidentalcare.com/"
	c, rec := setupEcho(app, http.MethodGet, "/robots.txt", nil)

	require.NoError(t, GetRobotsHandler(c))
	body := rec.Body.String()
	assert.Contains(t, body, "Disallow: /admin/")
	assert.Contains(t, body, "Sitemap: https://delhidentalcare.com/sitemap.xml")
}

func TestHealthHandler(t *testing.T) {
	app, _ := newTestApp(t)
	app.Pages.Create()
	c, rec := setupEcho(app, http.MethodGet, "/health", nil)

	require.NoError(t, HealthHandler(c))
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(1), body["active_pages"])
}
