package seo

import (
	"fmt"
	"strings"

	"github.com/jonesrussell/pagegen/internal/models"
)

// defaultFeatures backs the feature bullet list when a service defines none.
var defaultFeatures = []string{
	"Dedicated project manager from kickoff to delivery",
	"Transparent pricing with no hidden charges",
	"30 days of free post-launch support",
}

// content assembles the long-form body for a page. The wording is
// template-owned; what matters is that the service, city, feature list,
// pricing line and FAQ block are all interpolated.
func (s *Synthesizer) content(service *models.Service, city *models.City, year int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Best %s Services in %s (%d)\n\n", service.Title, city.Name, year)

	fmt.Fprintf(&b,
		"Looking for reliable %s in %s? %s is the trusted partner for businesses across %s, %s. %s\n\n",
		service.Title, city.Name, s.site.Brand, city.Name, city.State, service.Description,
	)

	if city.Description != "" {
		b.WriteString(city.Description)
		b.WriteString("\n\n")
	}

	if len(city.Landmarks) > 0 {
		fmt.Fprintf(&b,
			"From %s, we work with clients in every corner of %s.\n\n",
			joinWithAnd(city.Landmarks), city.Name,
		)
	}

	fmt.Fprintf(&b, "### What you get with our %s\n\n", service.Title)
	features := service.Features
	if len(features) == 0 {
		features = defaultFeatures
	}
	for _, feature := range features {
		fmt.Fprintf(&b, "- %s\n", feature)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "### %s pricing in %s\n\n", service.Title, city.Name)
	fmt.Fprintf(&b,
		"%s packages in %s start at %s %s. Every engagement begins with a free consultation and a fixed, itemized quote.\n\n",
		service.Title, city.Name, s.site.Currency, s.formatPrice(service.Price),
	)

	b.WriteString("### Frequently asked questions\n\n")
	for _, q := range s.faqSchema(service, city).MainEntity {
		fmt.Fprintf(&b, "**%s**\n\n%s\n\n", q.Name, q.AcceptedAnswer.Text)
	}

	fmt.Fprintf(&b,
		"Ready to get started? Contact %s today for the best %s in %s.\n",
		s.site.Brand, service.Title, city.Name,
	)

	return b.String()
}

// joinWithAnd renders a landmark list as "A, B and C".
func joinWithAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}
