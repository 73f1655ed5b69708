package handlers

import (
	"encoding/xml"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

type SitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float32 `xml:"priority,omitempty"`
}

type SitemapURLSet struct {
	XMLName string       `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// contentUpdated is reported as lastmod for the landing page
var contentUpdated = time.Now().UTC()

// GetSitemapHandler serves the XML sitemap. The site is a single page.
func GetSitemapHandler(c echo.Context) error {
	baseURL := strings.TrimRight(getApp(c).Config.AppURL, "/")

	urlSet := SitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []SitemapURL{
			{Loc: baseURL + "/", LastMod: contentUpdated.Format("2006-01-02"), ChangeFreq: "weekly", Priority: 1.0},
		},
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationXML)
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}

	encoder := xml.NewEncoder(c.Response().Writer)
	encoder.Indent("", "  ")
	return encoder.Encode(urlSet)
}

// GetRobotsHandler serves robots.txt. Page fragments, event streams and the
// lead inbox are kept out of the index.
func GetRobotsHandler(c echo.Context) error {
	baseURL := strings.TrimRight(getApp(c).Config.AppURL, "/")

	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /pages/\n")
	b.WriteString("Disallow: /sections/\n")
	b.WriteString("Disallow: /admin/\n")
	b.WriteString("\nSitemap: " + baseURL + "/sitemap.xml\n")

	return c.String(http.StatusOK, b.String())
}
