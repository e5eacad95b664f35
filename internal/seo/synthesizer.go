// Package seo implements the content synthesizer: a pure function from one
// service, one city and the current date to the full SEO bundle of a landing
// page. It performs no I/O and does not depend on prior runs, so repeated
// calls over the same inputs yield the same bundle.
package seo

import (
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jonesrussell/pagegen/internal/config"
	"github.com/jonesrussell/pagegen/internal/models"
)

const (
	// MaxMetaTitleLen is the hard cap on meta titles, enforced by truncation
	MaxMetaTitleLen = 60

	// MaxMetaDescriptionLen is the hard cap on meta descriptions
	MaxMetaDescriptionLen = 160

	ellipsis = "..."

	// minTitleRunes is the smallest title portion worth keeping in the
	// truncation ladder: one rune plus the ellipsis
	minTitleRunes = 4
)

// Bundle is the synthesized SEO payload for one (service, city) pair.
type Bundle struct {
	Title           string
	MetaTitle       string
	MetaDescription string
	Keywords        []string
	Content         string
	Slug            string
	CanonicalURL    string
	Breadcrumbs     models.Breadcrumbs
	StructuredData  models.JSONDoc
	FAQSchema       models.JSONDoc
}

// Synthesizer derives SEO bundles from catalog entities and the fixed site
// identity. It holds no mutable state and is safe for concurrent use.
type Synthesizer struct {
	site    config.SiteConfig
	printer *message.Printer
}

// NewSynthesizer creates a synthesizer for the given site identity
func NewSynthesizer(site config.SiteConfig) *Synthesizer {
	return &Synthesizer{
		site:    site,
		printer: message.NewPrinter(language.English),
	}
}

// Synthesize produces the full bundle for one service and city. The current
// time feeds only the freshness tokens (the year in titles and keywords).
// Inputs are assumed well-formed; the catalog boundary validates them.
func (s *Synthesizer) Synthesize(service *models.Service, city *models.City, now time.Time) Bundle {
	year := now.Year()
	slug := models.PageSlug(city.Slug, service.Slug)
	canonicalURL := s.site.Origin + "/" + slug

	structured := ServiceSchema{
		Context:     schemaContext,
		Type:        "Service",
		Name:        fmt.Sprintf("%s in %s", service.Title, city.Name),
		Description: service.Description,
		Provider: Organization{
			Type: "Organization",
			Name: s.site.Brand,
			URL:  s.site.Origin,
			ContactPoint: ContactPoint{
				Type:        "ContactPoint",
				Telephone:   s.site.Phone,
				Email:       s.site.Email,
				ContactType: "customer service",
			},
		},
		AreaServed: AreaServed{
			Type: "City",
			Name: city.Name,
			ContainedInPlace: &Place{
				Type: "State",
				Name: city.State,
			},
		},
		Offers: Offer{
			Type:          "Offer",
			Price:         service.Price,
			PriceCurrency: s.site.Currency,
			URL:           canonicalURL,
		},
	}

	return Bundle{
		Title:           fmt.Sprintf("Best %s Services in %s (%d)", service.Title, city.Name, year),
		MetaTitle:       s.metaTitle(service.Title, city.Name, year),
		MetaDescription: s.metaDescription(service.Title, city.Name, city.State),
		Keywords:        s.keywords(service, city, year),
		Content:         s.content(service, city, year),
		Slug:            slug,
		CanonicalURL:    canonicalURL,
		Breadcrumbs: models.Breadcrumbs{
			{Label: "Home", Path: "/"},
			{Label: city.Name, Path: "/" + city.Slug},
			{Label: service.Title, Path: "/" + slug},
		},
		StructuredData: mustJSON(structured),
		FAQSchema:      mustJSON(s.faqSchema(service, city)),
	}
}

// metaTitle applies the truncation ladder: the full promotional form, then
// "{title} in {city}", then a truncated title preserving the " in {city}"
// suffix verbatim. When the suffix leaves fewer than minTitleRunes for the
// title, the whole fallback string is truncated instead, which guarantees
// the cap holds for any city name.
func (s *Synthesizer) metaTitle(serviceTitle, cityName string, year int) string {
	full := fmt.Sprintf("%s %s | #1 %d", serviceTitle, cityName, year)
	if runeLen(full) <= MaxMetaTitleLen {
		return full
	}

	fallback := fmt.Sprintf("%s in %s", serviceTitle, cityName)
	if runeLen(fallback) <= MaxMetaTitleLen {
		return fallback
	}

	suffix := " in " + cityName
	avail := MaxMetaTitleLen - runeLen(suffix)
	if avail >= minTitleRunes {
		return truncateRunes(serviceTitle, avail) + suffix
	}

	return truncateRunes(fallback, MaxMetaTitleLen)
}

// metaDescription fills the fixed promotional template and hard-truncates to
// the 160-rune cap.
func (s *Synthesizer) metaDescription(serviceTitle, cityName, state string) string {
	desc := fmt.Sprintf(
		"Looking for %s in %s? %s delivers professional %s services across %s, %s. Affordable pricing, expert team, on-time delivery. Get a free quote today!",
		serviceTitle, cityName, s.site.Brand, serviceTitle, cityName, state,
	)
	return truncateRunes(desc, MaxMetaDescriptionLen)
}

// faqSchema builds the three-question FAQPage document covering turnaround
// time, price and post-completion support.
func (s *Synthesizer) faqSchema(service *models.Service, city *models.City) FAQPageSchema {
	price := s.formatPrice(service.Price)

	return FAQPageSchema{
		Context: schemaContext,
		Type:    "FAQPage",
		MainEntity: []Question{
			{
				Type: "Question",
				Name: fmt.Sprintf("How long does %s take in %s?", service.Title, city.Name),
				AcceptedAnswer: Answer{
					Type: "Answer",
					Text: fmt.Sprintf(
						"Most %s projects in %s are delivered within 2 to 4 weeks, depending on scope. We share a detailed timeline before work begins.",
						service.Title, city.Name,
					),
				},
			},
			{
				Type: "Question",
				Name: fmt.Sprintf("How much does %s cost in %s?", service.Title, city.Name),
				AcceptedAnswer: Answer{
					Type: "Answer",
					Text: fmt.Sprintf(
						"%s packages in %s start at %s %s. The final quote depends on your requirements and there are no hidden charges.",
						service.Title, city.Name, s.site.Currency, price,
					),
				},
			},
			{
				Type: "Question",
				Name: fmt.Sprintf("Do you provide support after the %s project is completed?", service.Title),
				AcceptedAnswer: Answer{
					Type: "Answer",
					Text: fmt.Sprintf(
						"Yes. Every %s project in %s includes 30 days of free post-launch support, with ongoing maintenance plans available after that.",
						service.Title, city.Name,
					),
				},
			},
		},
	}
}

// formatPrice renders the price with the locale's thousands separator.
func (s *Synthesizer) formatPrice(price int64) string {
	return s.printer.Sprintf("%d", price)
}

// runeLen counts runes, not bytes, so multi-byte names truncate correctly.
func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// truncateRunes caps s at max runes, replacing the tail with an ellipsis
// when truncation occurs.
func truncateRunes(s string, max int) string {
	if runeLen(s) <= max {
		return s
	}

	runes := []rune(s)
	keep := max - runeLen(ellipsis)
	if keep < 0 {
		keep = 0
	}
	return string(runes[:keep]) + ellipsis
}

// mustJSON marshals a document that cannot fail to encode (fixed struct
// shapes over strings and integers).
func mustJSON(v any) models.JSONDoc {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("seo: marshal structured data: %v", err))
	}
	return models.JSONDoc(data)
}
