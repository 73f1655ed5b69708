package handlers

import (
	"errors"
	"net/http"

	"dental_care_app_go/services"
	"dental_care_app_go/services/leadform"
	"dental_care_app_go/services/pagesession"
	"dental_care_app_go/templates/components"
	"dental_care_app_go/templates/partials"

	"github.com/labstack/echo/v4"
	g "maragu.dev/gomponents"
)

// SubmitLeadFormHandler handles a lead form post from either variant. The
// response is the form in its new state plus an out-of-band toast.
func SubmitLeadFormHandler(c echo.Context) error {
	app := getApp(c)

	page, err := app.Pages.Get(c.Param("page"))
	if err != nil {
		return pageGone(c)
	}

	variant := leadform.Variant(c.Param("variant"))
	if variant != leadform.Inline && variant != leadform.Modal {
		return echo.NewHTTPError(http.StatusNotFound, "Unknown form")
	}

	fields := leadform.Fields{
		Name:    c.FormValue("name"),
		Phone:   c.FormValue("phone"),
		Email:   c.FormValue("email"),
		Message: c.FormValue("message"),
	}

	ctx := c.Request().Context()
	verifier := services.NewTurnstileVerifier(app.Config.TurnstileSecretKey, app.Config.AppURL)
	if err := verifier.Verify(ctx, c.FormValue("cf-turnstile-response"), c.RealIP()); err != nil {
		c.Logger().Warnf("Turnstile rejected lead form from %s: %v", c.RealIP(), err)
		app.Metrics.ObserveValidationFailure(string(variant), services.LeadErrorKind(services.ErrTurnstileFailed))
		snap := leadform.Snapshot{Variant: variant, Fields: fields}
		return renderForm(c, app, page.ID, http.StatusUnprocessableEntity, snap, errorToast(services.ErrTurnstileFailed))
	}

	// Leads are attributed to the tab session once the page has attached
	if sid := page.SessionID(); sid != "" {
		meta := leadform.RequestMetaFrom(ctx)
		meta.SessionID = sid
		ctx = leadform.WithRequestMeta(ctx, meta)
	}

	result, err := page.Submit(ctx, variant, fields)
	switch {
	case err == nil:
		return renderForm(c, app, page.ID, http.StatusOK, result.Snapshot, result.Notification)
	case errors.Is(err, pagesession.ErrModalClosed):
		c.Response().Header().Set("HX-Retarget", "#"+partials.BookingModalID)
		return renderStatus(c, http.StatusOK, components.Component(partials.BookingModal(modalView(app, page.ID, page.Modal()))))
	case errors.Is(err, leadform.ErrBusy):
		return renderForm(c, app, page.ID, http.StatusOK, result.Snapshot, nil)
	case errors.Is(err, leadform.ErrUnmounted):
		return pageGone(c)
	default:
		// Validation failure: fields stay as typed
		return renderForm(c, app, page.ID, http.StatusUnprocessableEntity, result.Snapshot, result.Notification)
	}
}

func renderForm(c echo.Context, app *App, pageID string, status int, snap leadform.Snapshot, toast *leadform.Notification) error {
	nodes := []g.Node{partials.LeadForm(formView(app, pageID, snap))}
	if toast != nil {
		nodes = append(nodes, partials.ToastOOB(*toast))
	}
	return renderStatus(c, status, components.Fragments(nodes...))
}

func errorToast(err error) *leadform.Notification {
	msg := services.LeadErrorMessage(err)
	return &leadform.Notification{Tone: leadform.ToneDestructive, Title: msg.Title, Description: msg.Description}
}

// pageGone asks HTMX callers to reload, since the page's server state is gone
func pageGone(c echo.Context) error {
	if isHTMX(c) {
		c.Response().Header().Set("HX-Refresh", "true")
		return c.NoContent(http.StatusGone)
	}
	return echo.NewHTTPError(http.StatusGone, "This page has expired. Please reload.")
}
