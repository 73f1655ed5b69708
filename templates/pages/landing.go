package pages

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"dental_care_app_go/models"
	"dental_care_app_go/templates/components"
	"dental_care_app_go/templates/partials"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Modal trigger names, also used as metric labels
const (
	TriggerHeader     = "header"
	TriggerMobileMenu = "mobile_menu"
	TriggerHero       = "hero"
	TriggerService    = "service"
	TriggerCTA        = "cta"
	TriggerMobileCTA  = "mobile_cta"
)

var navLinks = []struct{ Href, Label string }{
	{"#about", "About"},
	{"#services", "Services"},
	{"#why-us", "Why Us"},
	{"#testimonials", "Reviews"},
	{"#gallery", "Gallery"},
	{"#contact", "Contact"},
}

var serviceIcons = []string{"tooth", "shield", "sparkles", "check", "star", "calendar"}

// LandingPage renders the full clinic landing page
func LandingPage(vm LandingViewModel) templ.Component {
	return components.Component(landing(vm))
}

func landing(vm LandingViewModel) g.Node {
	c := vm.Clinic
	meta := components.PageMeta{
		Title:          c.SEO.Title,
		Description:    c.SEO.Description,
		Keywords:       c.SEO.Keywords,
		Canonical:      vm.CanonicalURL,
		OGImage:        c.SEO.OGImage,
		SiteName:       c.Name,
		StructuredData: DentistSchema(c, vm.CanonicalURL),
		Nonce:          vm.Nonce,
		CSRFToken:      vm.CSRFToken,
		Turnstile:      vm.TurnstileSiteKey != "",
	}

	return components.Layout(meta,
		Div(
			ID("page"),
			Data("page-id", vm.PageID),
			siteHeader(vm),
			Main(
				heroSection(vm),
				trustBadges(c),
				leadCapture(vm),
				aboutDoctor(c),
				servicesSection(vm),
				whyChooseUs(c),
				smileTransformations(c),
				testimonialsSection(vm),
				gallerySection(c),
				ctaSection(vm),
				contactSection(c),
			),
			siteFooter(c),
			mobileCTA(vm),
			partials.BookingModal(vm.Modal),
			partials.ToastRegion(),
		),
	)
}

func sectionHeading(eyebrow, title, subtitle string) g.Node {
	return Div(
		Class("section-heading"),
		Span(Class("eyebrow"), g.Text(eyebrow)),
		H2(g.Text(title)),
		g.If(subtitle != "", P(Class("muted"), g.Text(subtitle))),
	)
}

func logo(c *models.ClinicProfile) g.Node {
	return A(Href("#"), Class("logo"),
		Span(Class("logo__mark"), components.Icon("tooth", "icon")),
		Span(Class("logo__text"),
			Strong(g.Text(c.Name)),
			Span(Class("logo__tagline"), g.Text(c.Tagline)),
		),
	)
}

func siteHeader(vm LandingViewModel) g.Node {
	c := vm.Clinic
	links := g.Group(g.Map(navLinks, func(l struct{ Href, Label string }) g.Node {
		return A(Href(l.Href), Class("nav__link"), g.Text(l.Label))
	}))

	return Header(
		ID("site-header"),
		Class("site-header"),
		Div(
			Class("container site-header__inner"),
			logo(c),
			Nav(Class("nav"), Aria("label", "Main"), links),
			Div(
				Class("site-header__actions"),
				A(Href(c.Contact.PhoneHref), Class("site-header__phone"),
					components.Icon("phone", "icon"), g.Text(c.Contact.PhoneDisplay),
				),
				Button(Type("button"), Class("theme-toggle"), Data("theme-toggle", ""), Aria("label", "Toggle theme"),
					components.Icon("sun", "icon theme-toggle__light"),
					components.Icon("moon", "icon theme-toggle__dark"),
				),
				partials.OpenModalButton(vm.PageID, TriggerHeader, "btn btn--primary", g.Text("Book Now")),
				Button(Type("button"), Class("menu-toggle"), Data("menu-toggle", ""), Aria("label", "Open menu"), Aria("expanded", "false"),
					components.Icon("menu", "icon"),
				),
			),
		),
		Div(
			ID("mobile-menu"),
			Class("mobile-menu"),
			g.Attr("hidden"),
			Nav(Aria("label", "Mobile"), links),
			A(Href(c.Contact.PhoneHref), Class("btn btn--outline btn--block"), components.Icon("phone", "icon"), g.Text(c.Contact.PhoneDisplay)),
			partials.OpenModalButton(vm.PageID, TriggerMobileMenu, "btn btn--primary btn--block", g.Text("Book Appointment")),
		),
	)
}

func heroSection(vm LandingViewModel) g.Node {
	c := vm.Clinic
	h := c.Hero
	return Section(
		ID("home"),
		Class("hero"),
		Div(
			Class("container hero__grid"),
			Div(
				Class("hero__copy"),
				Span(Class("badge"), components.Icon("sparkles", "icon"), g.Text(h.Badge)),
				H1(
					g.Text(h.HeadlinePrefix+" "),
					Span(Class("text-gradient"), g.Text(h.HeadlineHighlight)),
					Br(),
					g.Text(h.HeadlineSuffix),
				),
				P(Class("hero__subtext"), g.Text(h.Subtext)),
				Div(
					Class("hero__actions"),
					partials.OpenModalButton(vm.PageID, TriggerHero, "btn btn--primary btn--xl",
						components.Icon("calendar", "icon"), g.Text("Book Appointment"),
					),
					A(Href(c.Contact.WhatsAppURL), Target("_blank"), Rel("noopener"), Class("btn btn--whatsapp btn--xl"),
						components.Icon("message", "icon"), g.Text("WhatsApp Now"),
					),
				),
			),
			Div(
				Class("hero__media"),
				Img(Src(h.Image), Alt(c.Name+" treatment room"), Class("hero__image"), g.Attr("fetchpriority", "high")),
				Div(Class("hero__card"),
					components.Icon("gift", "icon"),
					Div(Strong(g.Text("Free Consultation")), P(Class("muted"), g.Text("Worth ₹500"))),
				),
			),
		),
	)
}

// FormatBadgeValue renders a trust badge's final counter value
func FormatBadgeValue(b models.TrustBadge) string {
	return strconv.FormatFloat(b.Value, 'f', b.Decimals, 64) + b.Suffix
}

func trustBadges(c *models.ClinicProfile) g.Node {
	return Section(
		Class("trust"),
		Div(
			Class("container trust__grid"),
			g.Group(g.Map(c.TrustBadges, func(b models.TrustBadge) g.Node {
				return Div(
					Class("trust__item"),
					Span(
						Class("trust__value"),
						Data("count-to", strconv.FormatFloat(b.Value, 'f', -1, 64)),
						Data("decimals", strconv.Itoa(b.Decimals)),
						Data("suffix", b.Suffix),
						g.Text(FormatBadgeValue(b)),
					),
					Span(Class("trust__label"), g.Text(b.Label)),
				)
			})),
		),
	)
}

func leadCapture(vm LandingViewModel) g.Node {
	lc := vm.Clinic.LeadCapture
	icons := []string{"gift", "clock", "shield"}
	benefits := make([]g.Node, 0, len(lc.Benefits))
	for i, b := range lc.Benefits {
		benefits = append(benefits, Div(Class("benefit"),
			Span(Class("benefit__icon"), components.Icon(icons[i%len(icons)], "icon")),
			Span(g.Text(b)),
		))
	}

	return Section(
		ID("consultation"),
		Class("section lead-capture"),
		Div(
			Class("container lead-capture__grid"),
			Div(
				Class("lead-capture__copy"),
				Span(Class("badge badge--accent"), components.Icon("gift", "icon"), g.Text(lc.Badge)),
				H2(g.Text("Get Your "), Span(Class("text-gradient"), g.Text("Free Consultation")), g.Text(" Today")),
				P(Class("muted"), g.Text("Take the first step towards a healthier smile. Fill in your details and our dental experts will get back to you within 30 minutes.")),
				Div(Class("benefits"), g.Group(benefits)),
			),
			Div(
				Class("card lead-capture__card"),
				Div(Class("lead-capture__card-head"),
					H3(g.Text("Request a Callback")),
					P(Class("muted"), g.Text("Fill in your details for a free consultation")),
				),
				partials.LeadForm(vm.InlineForm),
			),
		),
	)
}

func aboutDoctor(c *models.ClinicProfile) g.Node {
	d := c.Doctor
	return Section(
		ID("about"),
		Class("section about"),
		Div(
			Class("container about__grid"),
			Div(Class("about__media"), Img(Src(d.Image), Alt(d.Name), Loading("lazy"))),
			Div(
				Class("about__copy"),
				Span(Class("eyebrow"), g.Text("Meet Your Doctor")),
				H2(g.Text(d.Name)),
				P(Class("about__title"), g.Text(d.Title)),
				P(Class("muted"), g.Text(d.Bio)),
				Div(Class("highlights"),
					g.Group(g.Map(d.Highlights, func(h models.Highlight) g.Node {
						return Div(Class("highlight card"), Strong(g.Text(h.Title)), Span(Class("muted"), g.Text(h.Description)))
					})),
				),
			),
		),
	)
}

func servicesSection(vm LandingViewModel) g.Node {
	cards := make([]g.Node, 0, len(vm.Clinic.Services))
	for i, s := range vm.Clinic.Services {
		cards = append(cards, Div(
			Class("service card"),
			Span(Class("service__icon"), components.Icon(serviceIcons[i%len(serviceIcons)], "icon icon--lg")),
			H3(g.Text(s.Title)),
			P(Class("muted"), g.Text(s.Description)),
			partials.OpenModalButton(vm.PageID, TriggerService, "btn btn--link",
				g.Text("Book Now"), components.Icon("arrow-right", "icon"),
			),
		))
	}

	return Section(
		ID("services"),
		Class("section services"),
		Div(
			Class("container"),
			sectionHeading("Our Services", "Complete Dental Care Solutions",
				"From routine checkups to advanced procedures, we offer comprehensive dental services under one roof."),
			Div(Class("services__grid"), g.Group(cards)),
		),
	)
}

func whyChooseUs(c *models.ClinicProfile) g.Node {
	return Section(
		ID("why-us"),
		Class("section why-us"),
		Div(
			Class("container why-us__grid"),
			Div(
				Span(Class("eyebrow"), g.Text("Why Choose Us")),
				H2(g.Text("Your Comfort & Safety is Our "), Span(Class("text-gradient"), g.Text("Priority"))),
				P(Class("muted"), g.Text("We understand that visiting the dentist can be stressful. That's why we've created an environment focused on your comfort, safety, and peace of mind.")),
				Div(Class("stats"),
					g.Group(g.Map(c.WhyUs.Stats, func(s models.Stat) g.Node {
						return Div(Class("stat"), Strong(g.Text(s.Value)), Span(Class("muted"), g.Text(s.Label)))
					})),
				),
			),
			Div(Class("features"),
				g.Group(g.Map(c.WhyUs.Features, func(f models.Highlight) g.Node {
					return Div(Class("feature card"),
						Span(Class("feature__icon"), components.Icon("check-circle", "icon")),
						H3(g.Text(f.Title)),
						P(Class("muted"), g.Text(f.Description)),
					)
				})),
			),
		),
	)
}

func smileTransformations(c *models.ClinicProfile) g.Node {
	if len(c.Transformations) == 0 {
		return nil
	}
	slide := func(img models.Image) g.Node {
		return Div(Class("marquee__item"), Img(Src(img.Src), Alt(img.Alt), Loading("lazy")))
	}
	return Section(
		ID("transformations"),
		Class("section transformations"),
		Div(Class("container"),
			sectionHeading("Smile Gallery", "Smile Transformations",
				"See the real-life results of our advanced dental treatments and how we've helped our patients regain their confidence."),
		),
		Div(
			Class("marquee"),
			// The list is rendered twice so the CSS loop has no gap
			Div(Class("marquee__track"),
				g.Group(g.Map(c.Transformations, slide)),
				g.Group(g.Map(c.Transformations, slide)),
			),
		),
	)
}

func testimonialsSection(vm LandingViewModel) g.Node {
	return Section(
		ID("testimonials"),
		Class("section testimonials"),
		Div(
			Class("container"),
			sectionHeading("Patient Stories", "What Our Patients Say", "Real experiences from real patients. Their smiles speak for our care."),
			partials.Testimonials(vm.Testimonials),
		),
	)
}

func gallerySection(c *models.ClinicProfile) g.Node {
	return Section(
		ID("gallery"),
		Class("section gallery"),
		Div(
			Class("container"),
			sectionHeading("Our Clinic", "Experience Our Facility", "Step inside our modern, hygienic clinic designed for your comfort and safety."),
			Div(Class("gallery__grid"),
				g.Group(g.Map(c.Gallery, func(img models.Image) g.Node {
					return Figure(Class("gallery__item"),
						Img(Src(img.Src), Alt(img.Alt), Loading("lazy")),
						FigCaption(g.Text(img.Title)),
					)
				})),
			),
		),
	)
}

func ctaSection(vm LandingViewModel) g.Node {
	c := vm.Clinic
	return Section(
		ID("book"),
		Class("section cta"),
		Div(
			Class("container cta__inner"),
			Span(Class("badge badge--light"), g.Text("Limited Time: Free Consultation")),
			H2(g.Text(c.CTA.Headline)),
			P(g.Text(c.CTA.Subtext)),
			Div(
				Class("cta__actions"),
				partials.OpenModalButton(vm.PageID, TriggerCTA, "btn btn--light btn--xl",
					components.Icon("calendar", "icon"), g.Text("Book Appointment"),
				),
				A(Href(c.Contact.WhatsAppURL), Target("_blank"), Rel("noopener"), Class("btn btn--whatsapp btn--xl"),
					components.Icon("message", "icon"), g.Text("WhatsApp Now"),
				),
				A(Href(c.Contact.PhoneHref), Class("btn btn--ghost-light btn--xl"),
					components.Icon("phone", "icon"), g.Text("Call: "+c.Contact.PhoneDisplay),
				),
			),
			P(Class("cta__note"), g.Text("No hidden charges • Flexible payment options • Same-day appointments available")),
		),
	)
}

func contactSection(c *models.ClinicProfile) g.Node {
	ct := c.Contact
	return Section(
		ID("contact"),
		Class("section contact"),
		Div(
			Class("container contact__grid"),
			Div(
				sectionHeading("Get In Touch", "Visit Our Clinic",
					"We're conveniently located in the heart of South Delhi. Drop by for a consultation or contact us to schedule an appointment."),
				contactItem("map-pin", "Address", ct.AddressLine1, ct.AddressLine2),
				contactItem("phone", "Phone", ct.PhoneDisplay, ct.PhoneAltDisplay),
				contactItem("mail", "Email", ct.Email, ct.AppointmentsEmail),
				contactItem("clock", "Working Hours", ct.Hours...),
				Div(
					Class("contact__actions"),
					A(Href(ct.WhatsAppURL), Target("_blank"), Rel("noopener"), Class("btn btn--whatsapp"), components.Icon("message", "icon"), g.Text("WhatsApp Us")),
					A(Href(ct.PhoneHref), Class("btn btn--primary"), components.Icon("phone", "icon"), g.Text("Call Now")),
				),
			),
			g.If(ct.MapEmbedURL != "", Div(Class("contact__map card"),
				g.El("iframe",
					Src(ct.MapEmbedURL),
					Title(c.Name+" location"),
					Loading("lazy"),
					g.Attr("referrerpolicy", "no-referrer-when-downgrade"),
					g.Attr("allowfullscreen"),
				),
			)),
		),
	)
}

func contactItem(icon, label string, lines ...string) g.Node {
	nonEmpty := make([]g.Node, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			nonEmpty = append(nonEmpty, P(Class("muted"), g.Text(l)))
		}
	}
	return Div(Class("contact__item"),
		Span(Class("contact__icon"), components.Icon(icon, "icon")),
		Div(Strong(g.Text(label)), g.Group(nonEmpty)),
	)
}

func siteFooter(c *models.ClinicProfile) g.Node {
	return Footer(
		Class("site-footer"),
		Div(
			Class("container site-footer__grid"),
			Div(
				logo(c),
				P(Class("muted"), g.Text("Providing gentle, trusted and affordable dental care to families across New Delhi.")),
			),
			Div(
				H3(g.Text("Quick Links")),
				Ul(g.Group(g.Map(navLinks, func(l struct{ Href, Label string }) g.Node {
					return Li(A(Href(l.Href), g.Text(l.Label)))
				}))),
			),
			Div(
				H3(g.Text("Our Services")),
				Ul(g.Group(g.Map(c.Services, func(s models.DentalService) g.Node {
					return Li(A(Href("#services"), g.Text(s.Title)))
				}))),
			),
			Div(
				H3(g.Text("Contact Us")),
				P(Class("muted"), g.Text(c.Contact.AddressLine1)),
				P(A(Href(c.Contact.PhoneHref), g.Text(c.Contact.PhoneDisplay))),
				P(A(Href("mailto:"+c.Contact.Email), g.Text(c.Contact.Email))),
			),
		),
		Div(
			Class("container site-footer__bottom"),
			P(Class("muted"), g.Text(fmt.Sprintf("© %d %s. All rights reserved.", time.Now().Year(), c.Name))),
		),
	)
}

func mobileCTA(vm LandingViewModel) g.Node {
	c := vm.Clinic
	return Div(
		Class("mobile-cta"),
		A(Href(c.Contact.PhoneHref), Class("btn btn--outline"), components.Icon("phone", "icon"), g.Text("Call")),
		partials.OpenModalButton(vm.PageID, TriggerMobileCTA, "btn btn--primary", g.Text("Book")),
		A(Href(c.Contact.WhatsAppURL), Target("_blank"), Rel("noopener"), Class("btn btn--whatsapp"), components.Icon("message", "icon"), g.Text("WhatsApp")),
	)
}
