package partials

import (
	"fmt"

	"dental_care_app_go/services/leadform"
	"dental_care_app_go/templates/components"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// LeadFormView is everything needed to render one lead form
type LeadFormView struct {
	PageID           string
	Form             leadform.Snapshot
	TurnstileSiteKey string
}

type leadFormCopy struct {
	Submit     string
	Submitting string
	Done       string
	DoneDetail string
	Footnote   string
	Message    string
}

func copyFor(v leadform.Variant) leadFormCopy {
	if v == leadform.Modal {
		return leadFormCopy{
			Submit:     "Book Free Consultation",
			Submitting: "Booking...",
			Done:       "Booking Confirmed!",
			DoneDetail: "We'll call you within 30 minutes",
			Footnote:   "By booking, you agree to our privacy policy. We'll never spam you.",
			Message:    "Your concern or preferred time (Optional)",
		}
	}
	return leadFormCopy{
		Submit:     "Get Free Consultation",
		Submitting: "Submitting...",
		Done:       "Thank You!",
		DoneDetail: "We'll call you within 30 minutes",
		Footnote:   "Your information is 100% secure and confidential",
		Message:    "Anything we should know? (Optional)",
	}
}

// LeadFormID is the DOM id of a variant's form, shared by HTTP and SSE swaps
func LeadFormID(v leadform.Variant) string {
	return "lead-form-" + string(v)
}

// LeadForm renders the form in its current state. Submitting and success
// states render without a <form> so nothing can be posted.
func LeadForm(v LeadFormView) g.Node {
	variant := v.Form.Variant
	if variant == "" {
		variant = leadform.Inline
	}
	text := copyFor(variant)

	if v.Form.State == leadform.Success {
		return Div(
			ID(LeadFormID(variant)),
			Class("lead-form lead-form--success"),
			Data("state", v.Form.State.String()),
			Div(Class("lead-form__success-icon"), components.Icon("check-circle", "icon icon--xl")),
			H3(Class("lead-form__success-title"), g.Text(text.Done)),
			P(Class("muted"), g.Text(text.DoneDetail)),
		)
	}

	busy := v.Form.State == leadform.Submitting
	fields := v.Form.Fields

	inputs := []g.Node{
		field("user", Input(Type("text"), Name("name"), Placeholder("Your Name *"), Value(fields.Name), AutoComplete("name"), Required(), g.If(busy, Disabled()))),
		field("phone", Input(Type("tel"), Name("phone"), Placeholder("Mobile Number *"), Value(fields.Phone), AutoComplete("tel"), g.Attr("inputmode", "tel"), Required(), g.If(busy, Disabled()))),
		field("mail", Input(Type("email"), Name("email"), Placeholder("Email (Optional)"), Value(fields.Email), AutoComplete("email"), g.If(busy, Disabled()))),
		field("message", Textarea(Name("message"), Placeholder(text.Message), g.Attr("rows", "3"), g.If(busy, Disabled()), g.Text(fields.Message))),
		g.If(v.TurnstileSiteKey != "" && !busy, Div(Class("cf-turnstile"), Data("sitekey", v.TurnstileSiteKey))),
		submitButton(text, busy),
		P(Class("lead-form__footnote"), g.Text(text.Footnote)),
	}

	if busy {
		return Div(
			ID(LeadFormID(variant)),
			Class("lead-form lead-form--busy"),
			Data("state", v.Form.State.String()),
			Aria("busy", "true"),
			g.Group(inputs),
		)
	}

	return Form(
		ID(LeadFormID(variant)),
		Class("lead-form"),
		Data("state", v.Form.State.String()),
		g.Attr("hx-post", fmt.Sprintf("/pages/%s/forms/%s", v.PageID, variant)),
		g.Attr("hx-target", "this"),
		g.Attr("hx-swap", "outerHTML"),
		g.Attr("novalidate"),
		g.Group(inputs),
	)
}

func field(icon string, control g.Node) g.Node {
	return Div(Class("lead-form__field"), components.Icon(icon, "icon lead-form__icon"), control)
}

func submitButton(text leadFormCopy, busy bool) g.Node {
	if busy {
		return Button(Type("button"), Class("btn btn--primary btn--xl btn--block"), Disabled(),
			Span(Class("spinner"), Aria("hidden", "true")),
			g.Text(text.Submitting),
		)
	}
	return Button(Type("submit"), Class("btn btn--primary btn--xl btn--block"),
		g.Text(text.Submit),
		components.Icon("arrow-right", "icon"),
	)
}
