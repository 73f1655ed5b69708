package partials

import (
	"dental_care_app_go/templates/components"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Stars renders a 0-5 rating as filled and empty stars
func Stars(rating int) g.Node {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	nodes := make([]g.Node, 0, 5)
	for i := 0; i < 5; i++ {
		class := "icon star"
		if i < rating {
			class += " star--filled"
		}
		nodes = append(nodes, components.Icon("star", class))
	}
	return Span(Class("stars"), Aria("label", starsLabel(rating)), g.Group(nodes))
}

func starsLabel(rating int) string {
	if rating == 1 {
		return "1 star"
	}
	return string(rune('0'+rating)) + " stars"
}
