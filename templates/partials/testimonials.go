package partials

import (
	"fmt"

	"dental_care_app_go/models"
	"dental_care_app_go/services"
	"dental_care_app_go/templates/components"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// TestimonialsID is the DOM id of the carousel fragment
const TestimonialsID = "testimonials-carousel"

type TestimonialsView struct {
	Items    []models.Testimonial
	Carousel services.Carousel
}

func carouselURL(c services.Carousel, dir string) string {
	auto := 0
	if c.AutoPlay {
		auto = 1
	}
	return fmt.Sprintf("/sections/testimonials?index=%d&dir=%s&auto=%d", c.Index, dir, auto)
}

func carouselSwap(c services.Carousel, dir string) g.Node {
	return g.Group([]g.Node{
		g.Attr("hx-get", carouselURL(c, dir)),
		g.Attr("hx-target", "#"+TestimonialsID),
		g.Attr("hx-swap", "outerHTML"),
	})
}

// Testimonials renders the current slide with navigation. While auto-play is
// on the fragment polls for the next slide every CarouselInterval.
func Testimonials(v TestimonialsView) g.Node {
	if len(v.Items) == 0 {
		return Div(ID(TestimonialsID))
	}
	c := v.Carousel
	current := v.Items[services.WrapIndex(c.Index, len(v.Items))]

	var poll g.Node
	if c.AutoPlay {
		poll = g.Group([]g.Node{
			carouselSwap(c, "tick"),
			g.Attr("hx-trigger", fmt.Sprintf("every %ds", int(services.CarouselInterval.Seconds()))),
		})
	}

	return Div(
		ID(TestimonialsID),
		Class("carousel"),
		Data("index", fmt.Sprint(c.Index)),
		Data("autoplay", fmt.Sprint(c.AutoPlay)),
		poll,
		Div(
			Class("testimonial card"),
			Div(Class("testimonial__quote"), g.Text("“")),
			Stars(current.Rating),
			P(Class("testimonial__text"), g.Text(current.Text)),
			Div(
				Class("testimonial__author"),
				Div(Class("avatar"), g.Text(services.Initials(current.Name))),
				Div(
					P(Class("testimonial__name"), g.Text(current.Name)),
					P(Class("muted"), g.Text(current.Location)),
				),
				g.If(current.Treatment != "", Span(Class("pill"), g.Text(current.Treatment))),
			),
		),
		Div(
			Class("carousel__nav"),
			Button(Type("button"), Class("carousel__btn"), Aria("label", "Previous testimonial"), carouselSwap(c, "prev"),
				components.Icon("chevron-left", "icon"),
			),
			Div(Class("carousel__dots"),
				g.Group(dots(len(v.Items), c.Index)),
			),
			Button(Type("button"), Class("carousel__btn"), Aria("label", "Next testimonial"), carouselSwap(c, "next"),
				components.Icon("chevron-right", "icon"),
			),
		),
	)
}

func dots(n, active int) []g.Node {
	nodes := make([]g.Node, 0, n)
	for i := 0; i < n; i++ {
		class := "carousel__dot"
		if i == active {
			class += " carousel__dot--active"
		}
		nodes = append(nodes, Span(Class(class)))
	}
	return nodes
}
