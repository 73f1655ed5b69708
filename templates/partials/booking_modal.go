package partials

import (
	"fmt"

	"dental_care_app_go/templates/components"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// BookingModalID is the DOM id of the modal container
const BookingModalID = "booking-modal"

type BookingModalView struct {
	PageID string
	Open   bool
	Form   LeadFormView
}

// BookingModal renders the modal container. A closed modal is an empty
// placeholder so open/close can swap it in place.
func BookingModal(v BookingModalView) g.Node {
	if !v.Open {
		return Div(ID(BookingModalID), Class("modal-slot"), Data("open", "false"))
	}

	closeAttrs := g.Group([]g.Node{
		g.Attr("hx-post", fmt.Sprintf("/pages/%s/modal/close", v.PageID)),
		g.Attr("hx-target", "#"+BookingModalID),
		g.Attr("hx-swap", "outerHTML"),
	})

	return Div(
		ID(BookingModalID),
		Class("modal-slot"),
		Data("open", "true"),
		Div(Class("modal__backdrop"), closeAttrs),
		Div(
			Class("modal"),
			Role("dialog"),
			Aria("modal", "true"),
			Aria("labelledby", "booking-modal-title"),
			Div(
				Class("modal__header"),
				Button(Type("button"), Class("modal__close"), Aria("label", "Close"), closeAttrs,
					components.Icon("x", "icon"),
				),
				Div(Class("modal__badge"), components.Icon("calendar", "icon icon--lg")),
				H2(ID("booking-modal-title"), g.Text("Book Your Appointment")),
				P(g.Text("Get a free consultation with our expert dentist")),
			),
			Div(Class("modal__body"), LeadForm(v.Form)),
		),
	)
}

// OpenModalButton is any "Book" button on the page. trigger names the
// placement for metrics.
func OpenModalButton(pageID, trigger, class string, children ...g.Node) g.Node {
	return Button(
		Type("button"),
		Class(class),
		Data("trigger", trigger),
		g.Attr("hx-post", fmt.Sprintf("/pages/%s/modal/open?trigger=%s", pageID, trigger)),
		g.Attr("hx-target", "#"+BookingModalID),
		g.Attr("hx-swap", "outerHTML"),
		g.Group(children),
	)
}
