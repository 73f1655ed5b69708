package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dental_care_app_go/middleware"
	"dental_care_app_go/services/pagesession"
	"dental_care_app_go/templates/partials"

	"github.com/labstack/echo/v4"
	g "maragu.dev/gomponents"
)

// HeartbeatInterval keeps idle event streams open through proxies
const HeartbeatInterval = 25 * time.Second

// eventGone tells the client its page was torn down and must be reloaded
const eventGone = "gone"

// PageEventsHandler mounts the page and streams its timer-driven changes as
// server-sent events carrying HTML fragments. The page is torn down when the
// stream ends.
func PageEventsHandler(c echo.Context) error {
	app := getApp(c)
	pageID := c.Param("page")
	sessionID := middleware.ResolveSessionID(c, c.QueryParam("session"))

	events, err := app.Pages.Attach(c.Request().Context(), pageID, sessionID)
	switch {
	case errors.Is(err, pagesession.ErrPageNotFound):
		return echo.NewHTTPError(http.StatusGone, "Page expired")
	case errors.Is(err, pagesession.ErrAlreadyAttached):
		return echo.NewHTTPError(http.StatusConflict, "Page already has an event stream")
	case err != nil:
		return err
	}

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	heartbeat := time.NewTicker(HeartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				if err := writeEvent(w, eventGone, ""); err == nil {
					w.Flush()
				}
				return nil
			}
			node := eventFragment(app, pageID, ev)
			if node == nil {
				continue
			}
			var buf bytes.Buffer
			if err := node.Render(&buf); err != nil {
				c.Logger().Errorf("Failed to render %s event: %v", ev.Kind, err)
				continue
			}
			if err := writeEvent(w, string(ev.Kind), buf.String()); err != nil {
				return nil
			}
			w.Flush()
		case <-heartbeat.C:
			if _, err := io.WriteString(w, ": ping\n\n"); err != nil {
				return nil
			}
			w.Flush()
		case <-c.Request().Context().Done():
			return nil
		}
	}
}

func eventFragment(app *App, pageID string, ev pagesession.Event) g.Node {
	switch ev.Kind {
	case pagesession.EventModal:
		if ev.Modal == nil {
			return nil
		}
		return partials.BookingModal(modalView(app, pageID, *ev.Modal))
	case pagesession.EventFormInline, pagesession.EventFormModal:
		if ev.Form == nil {
			return nil
		}
		return partials.LeadForm(formView(app, pageID, *ev.Form))
	case pagesession.EventToast:
		if ev.Toast == nil {
			return nil
		}
		return partials.Toast(*ev.Toast)
	}
	return nil
}

// writeEvent writes one named event. Every line of data gets its own data field.
func writeEvent(w io.Writer, name, data string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "event: %s\n", name)
	for _, line := range strings.Split(data, "\n") {
		fmt.Fprintf(&b, "data: %s\n", line)
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}
