package handlers

import (
	"dental_care_app_go/config"
	"dental_care_app_go/models"
	"dental_care_app_go/services"
	"dental_care_app_go/services/metrics"
	"dental_care_app_go/services/pagesession"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// ContextKeyApp is the echo context key holding *App
const ContextKeyApp = "app"

// App holds the shared dependencies handlers need
type App struct {
	Config  *config.Config
	Clinic  *models.ClinicProfile
	Pages   *pagesession.Registry
	Leads   *services.LeadService
	Storage services.StorageProvider
	Metrics *metrics.LeadMetrics
}

// WithApp makes the app available to handlers, alongside the config
func WithApp(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextKeyApp, app)
			c.Set("config", app.Config)
			return next(c)
		}
	}
}

func getApp(c echo.Context) *App {
	return c.Get(ContextKeyApp).(*App)
}

// render writes a templ component to the response
func render(c echo.Context, component templ.Component) error {
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// renderStatus writes a component with an explicit status code
func renderStatus(c echo.Context, status int, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return render(c, component)
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}
