package models

// ClinicProfile is the marketing content rendered on the landing page
type ClinicProfile struct {
	Name            string          `yaml:"name"`
	Tagline         string          `yaml:"tagline"`
	URL             string          `yaml:"url"`
	Contact         ClinicContact   `yaml:"contact"`
	SEO             ClinicSEO       `yaml:"seo"`
	Hero            HeroContent     `yaml:"hero"`
	TrustBadges     []TrustBadge    `yaml:"trust_badges"`
	LeadCapture     LeadCapture     `yaml:"lead_capture"`
	Doctor          Doctor          `yaml:"doctor"`
	Services        []DentalService `yaml:"services"`
	WhyUs           WhyUs           `yaml:"why_us"`
	Transformations []Image         `yaml:"transformations"`
	Testimonials    []Testimonial   `yaml:"testimonials"`
	Gallery         []Image         `yaml:"gallery"`
	CTA             CTAContent      `yaml:"cta"`
}

type ClinicContact struct {
	PhoneDisplay       string   `yaml:"phone_display"`
	PhoneAltDisplay    string   `yaml:"phone_alt_display"`
	PhoneHref          string   `yaml:"phone_href"`
	WhatsAppURL        string   `yaml:"whatsapp_url"`
	Email              string   `yaml:"email"`
	AppointmentsEmail  string   `yaml:"appointments_email"`
	AddressLine1       string   `yaml:"address_line1"`
	AddressLine2       string   `yaml:"address_line2"`
	Locality           string   `yaml:"locality"`
	PostalCode         string   `yaml:"postal_code"`
	Country            string   `yaml:"country"`
	MapEmbedURL        string   `yaml:"map_embed_url"`
	Hours              []string `yaml:"hours"`
	OpeningHoursSchema string   `yaml:"opening_hours_schema"`
}

type ClinicSEO struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Keywords    string `yaml:"keywords"`
	OGImage     string `yaml:"og_image"`
	RatingValue string `yaml:"rating_value"`
	ReviewCount string `yaml:"review_count"`
	PriceRange  string `yaml:"price_range"`
}

type HeroContent struct {
	Badge             string `yaml:"badge"`
	HeadlinePrefix    string `yaml:"headline_prefix"`
	HeadlineHighlight string `yaml:"headline_highlight"`
	HeadlineSuffix    string `yaml:"headline_suffix"`
	Subtext           string `yaml:"subtext"`
	Image             string `yaml:"image"`
}

// TrustBadge is an animated counter
type TrustBadge struct {
	Value    float64 `yaml:"value"`
	Decimals int     `yaml:"decimals"`
	Suffix   string  `yaml:"suffix"`
	Label    string  `yaml:"label"`
}

type LeadCapture struct {
	Badge    string   `yaml:"badge"`
	Benefits []string `yaml:"benefits"`
}

type Doctor struct {
	Name       string      `yaml:"name"`
	Title      string      `yaml:"title"`
	Image      string      `yaml:"image"`
	Bio        string      `yaml:"bio"`
	Highlights []Highlight `yaml:"highlights"`
}

type Highlight struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type DentalService struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type WhyUs struct {
	Features []Highlight `yaml:"features"`
	Stats    []Stat      `yaml:"stats"`
}

type Stat struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

type Image struct {
	Src   string `yaml:"src"`
	Alt   string `yaml:"alt"`
	Title string `yaml:"title"`
}

type Testimonial struct {
	Name      string `yaml:"name"`
	Location  string `yaml:"location"`
	Rating    int    `yaml:"rating"`
	Treatment string `yaml:"treatment"`
	Text      string `yaml:"text"`
}

type CTAContent struct {
	Headline string `yaml:"headline"`
	Subtext  string `yaml:"subtext"`
}
