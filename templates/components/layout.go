package components

import (
	"dental_care_app_go/middleware"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// PageMeta is the per-page head content
type PageMeta struct {
	Title       string
	Description string
	Keywords    string
	Canonical   string
	OGImage     string
	SiteName    string
	// Schema.org object rendered as JSON-LD, nil to skip
	StructuredData interface{}
	Nonce          string
	CSRFToken      string
	// Loads the Turnstile widget script when true
	Turnstile bool
}

func Layout(meta PageMeta, content ...g.Node) g.Node {
	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(meta.Title)),
				Meta(Name("description"), Content(meta.Description)),
				g.If(meta.Keywords != "", Meta(Name("keywords"), Content(meta.Keywords))),
				g.If(meta.Canonical != "", Link(Rel("canonical"), Href(meta.Canonical))),

				Meta(g.Attr("property", "og:title"), Content(meta.Title)),
				Meta(g.Attr("property", "og:description"), Content(meta.Description)),
				Meta(g.Attr("property", "og:type"), Content("website")),
				g.If(meta.SiteName != "", Meta(g.Attr("property", "og:site_name"), Content(meta.SiteName))),
				g.If(meta.Canonical != "", Meta(g.Attr("property", "og:url"), Content(meta.Canonical))),
				g.If(meta.OGImage != "", Meta(g.Attr("property", "og:image"), Content(meta.OGImage))),
				Meta(Name("twitter:card"), Content("summary_large_image")),

				Link(Rel("preconnect"), Href("https://fonts.googleapis.com")),
				Link(Rel("stylesheet"), Href("https://fonts.googleapis.com/css2?family=Plus+Jakarta+Sans:wght@400;500;600;700;800&display=swap")),
				Link(Rel("stylesheet"), Href(middleware.AssetURL("css/style.css"))),

				g.If(meta.StructuredData != nil, JSONLD(meta.StructuredData)),
			),
			Body(
				g.Attr("hx-headers", JSON(map[string]string{middleware.CSRFHeader: meta.CSRFToken})),
				g.Group(content),

				Script(Src(htmxSrc), g.Attr("nonce", meta.Nonce)),
				g.If(meta.Turnstile, Script(Src("https://challenges.cloudflare.com/turnstile/v0/api.js"), Async(), Defer(), g.Attr("nonce", meta.Nonce))),
				Script(Src(middleware.AssetURL("js/app.js")), Defer(), g.Attr("nonce", meta.Nonce)),
			),
		),
	})
}
