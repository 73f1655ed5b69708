package handlers

import (
	"strings"

	"dental_care_app_go/middleware"
	"dental_care_app_go/services"
	"dental_care_app_go/services/leadform"
	"dental_care_app_go/services/pagesession"
	"dental_care_app_go/templates/pages"
	"dental_care_app_go/templates/partials"

	"github.com/labstack/echo/v4"
)

// LandingHandler registers a new page and renders the landing page for it
func LandingHandler(c echo.Context) error {
	app := getApp(c)
	page := app.Pages.Create()

	c.Response().Header().Set("Cache-Control", "no-store")
	return render(c, pages.LandingPage(landingViewModel(c, app, page)))
}

func landingViewModel(c echo.Context, app *App, page *pagesession.Page) pages.LandingViewModel {
	return pages.LandingViewModel{
		Clinic:           app.Clinic,
		PageID:           page.ID,
		CanonicalURL:     strings.TrimRight(app.Config.AppURL, "/") + "/",
		Nonce:            middleware.GetNonce(c.Request().Context()),
		CSRFToken:        middleware.GetCSRFToken(c),
		TurnstileSiteKey: turnstileSiteKey(app),
		InlineForm:       formView(app, page.ID, page.InlineForm()),
		Modal:            modalView(app, page.ID, page.Modal()),
		Testimonials: partials.TestimonialsView{
			Items:    app.Clinic.Testimonials,
			Carousel: services.NewCarousel(len(app.Clinic.Testimonials)),
		},
	}
}

// turnstileSiteKey is empty unless verification is configured server side
func turnstileSiteKey(app *App) string {
	if app.Config.TurnstileSecretKey == "" {
		return ""
	}
	return app.Config.TurnstileSiteKey
}

func formView(app *App, pageID string, snap leadform.Snapshot) partials.LeadFormView {
	return partials.LeadFormView{PageID: pageID, Form: snap, TurnstileSiteKey: turnstileSiteKey(app)}
}

func modalView(app *App, pageID string, m pagesession.ModalView) partials.BookingModalView {
	return partials.BookingModalView{
		PageID: pageID,
		Open:   m.Open,
		Form:   formView(app, pageID, m.Form),
	}
}
