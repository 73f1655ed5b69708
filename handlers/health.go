package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

var startedAt = time.Now()

// HealthHandler reports liveness and the number of live pages
func HealthHandler(c echo.Context) error {
	app := getApp(c)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":       "ok",
		"active_pages": app.Pages.Len(),
		"uptime":       time.Since(startedAt).Round(time.Second).String(),
	})
}
