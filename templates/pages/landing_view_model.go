package pages

import (
	"strings"

	"dental_care_app_go/models"
	"dental_care_app_go/templates/partials"
)

// LandingViewModel holds the data for the landing page
type LandingViewModel struct {
	Clinic           *models.ClinicProfile
	PageID           string
	CanonicalURL     string
	Nonce            string
	CSRFToken        string
	TurnstileSiteKey string
	InlineForm       partials.LeadFormView
	Modal            partials.BookingModalView
	Testimonials     partials.TestimonialsView
}

// DentistSchema builds the schema.org Dentist object for the clinic
func DentistSchema(c *models.ClinicProfile, canonical string) map[string]interface{} {
	url := canonical
	if url == "" {
		url = c.URL
	}
	schema := map[string]interface{}{
		"@context":  "https://schema.org",
		"@type":     "Dentist",
		"name":      c.Name,
		"url":       url,
		"telephone": strings.TrimPrefix(c.Contact.PhoneHref, "tel:"),
		"address": map[string]string{
			"@type":           "PostalAddress",
			"streetAddress":   c.Contact.AddressLine1,
			"addressLocality": c.Contact.Locality,
			"postalCode":      c.Contact.PostalCode,
			"addressCountry":  c.Contact.Country,
		},
	}
	if c.Contact.Email != "" {
		schema["email"] = c.Contact.Email
	}
	if c.SEO.OGImage != "" {
		schema["image"] = c.SEO.OGImage
	}
	if c.SEO.PriceRange != "" {
		schema["priceRange"] = c.SEO.PriceRange
	}
	if c.Contact.OpeningHoursSchema != "" {
		schema["openingHours"] = c.Contact.OpeningHoursSchema
	}
	if c.SEO.RatingValue != "" && c.SEO.ReviewCount != "" {
		schema["aggregateRating"] = map[string]string{
			"@type":       "AggregateRating",
			"ratingValue": c.SEO.RatingValue,
			"reviewCount": c.SEO.ReviewCount,
		}
	}
	return schema
}
