package handlers

import (
	"net/http"
	"strconv"

	"dental_care_app_go/services"
	"dental_care_app_go/templates/components"
	"dental_care_app_go/templates/partials"

	"github.com/labstack/echo/v4"
)

// TestimonialsHandler moves the testimonial carousel and returns the new slide.
// dir is prev, next or tick; auto=0 once the visitor has navigated manually.
func TestimonialsHandler(c echo.Context) error {
	app := getApp(c)
	items := app.Clinic.Testimonials

	index, _ := strconv.Atoi(c.QueryParam("index"))
	carousel := services.NewCarousel(len(items)).At(index)
	if c.QueryParam("auto") == "0" {
		carousel.AutoPlay = false
	}

	switch c.QueryParam("dir") {
	case "prev":
		carousel = carousel.Prev()
	case "next":
		carousel = carousel.Next()
	case "tick":
		carousel = carousel.Tick()
	}

	return renderStatus(c, http.StatusOK, components.Component(partials.Testimonials(partials.TestimonialsView{
		Items:    items,
		Carousel: carousel,
	})))
}
