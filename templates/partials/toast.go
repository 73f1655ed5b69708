package partials

import (
	"dental_care_app_go/services/leadform"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// ToastRegionID is the container toasts are appended to
const ToastRegionID = "toasts"

func ToastRegion() g.Node {
	return Div(ID(ToastRegionID), Class("toast-region"), Aria("live", "polite"))
}

// Toast renders a single notification. app.js removes it after a few seconds.
func Toast(n leadform.Notification) g.Node {
	return Div(
		Class("toast toast--"+string(n.Tone)),
		Role("status"),
		P(Class("toast__title"), g.Text(n.Title)),
		g.If(n.Description != "", P(Class("toast__description"), g.Text(n.Description))),
	)
}

// ToastOOB appends a toast to the region through an HTMX out-of-band swap
func ToastOOB(n leadform.Notification) g.Node {
	return Div(ID(ToastRegionID), g.Attr("hx-swap-oob", "beforeend"), Toast(n))
}
