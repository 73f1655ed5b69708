package handlers

import (
	"net/http"

	"dental_care_app_go/templates/components"
	"dental_care_app_go/templates/pages"
	"dental_care_app_go/templates/partials"

	"github.com/labstack/echo/v4"
)

var knownTriggers = map[string]bool{
	pages.TriggerHeader:     true,
	pages.TriggerMobileMenu: true,
	pages.TriggerHero:       true,
	pages.TriggerService:    true,
	pages.TriggerCTA:        true,
	pages.TriggerMobileCTA:  true,
}

// modalTrigger keeps the metric label set bounded
func modalTrigger(raw string) string {
	if knownTriggers[raw] {
		return raw
	}
	return "other"
}

// OpenModalHandler opens the booking modal and returns it
func OpenModalHandler(c echo.Context) error {
	app := getApp(c)
	page, err := app.Pages.Get(c.Param("page"))
	if err != nil {
		return pageGone(c)
	}

	view := page.OpenModal(modalTrigger(c.QueryParam("trigger")))
	return renderStatus(c, http.StatusOK, components.Component(partials.BookingModal(modalView(app, page.ID, view))))
}

// CloseModalHandler closes the booking modal and returns the empty slot
func CloseModalHandler(c echo.Context) error {
	app := getApp(c)
	page, err := app.Pages.Get(c.Param("page"))
	if err != nil {
		return pageGone(c)
	}

	page.CloseModal()
	return renderStatus(c, http.StatusOK, components.Component(partials.BookingModal(modalView(app, page.ID, page.Modal()))))
}
