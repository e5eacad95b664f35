package seo

// schema.org document shapes emitted as application/ld+json payloads.

const schemaContext = "https://schema.org"

// ServiceSchema is the primary structured-data document for a generated page.
type ServiceSchema struct {
	Context     string       `json:"@context"`
	Type        string       `json:"@type"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Provider    Organization `json:"provider"`
	AreaServed  AreaServed   `json:"areaServed"`
	Offers      Offer        `json:"offers"`
}

// Organization is the fixed provider identity.
type Organization struct {
	Type         string       `json:"@type"`
	Name         string       `json:"name"`
	URL          string       `json:"url"`
	ContactPoint ContactPoint `json:"contactPoint"`
}

// ContactPoint carries the provider's contact details.
type ContactPoint struct {
	Type        string `json:"@type"`
	Telephone   string `json:"telephone"`
	Email       string `json:"email"`
	ContactType string `json:"contactType"`
}

// AreaServed names the city a page targets.
type AreaServed struct {
	Type             string `json:"@type"`
	Name             string `json:"name"`
	ContainedInPlace *Place `json:"containedInPlace,omitempty"`
}

// Place names a containing region or state.
type Place struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// Offer carries the service's price, currency and canonical URL.
type Offer struct {
	Type          string `json:"@type"`
	Price         int64  `json:"price"`
	PriceCurrency string `json:"priceCurrency"`
	URL           string `json:"url"`
}

// FAQPageSchema is the optional secondary structured-data document.
type FAQPageSchema struct {
	Context    string     `json:"@context"`
	Type       string     `json:"@type"`
	MainEntity []Question `json:"mainEntity"`
}

// Question is one FAQ entry.
type Question struct {
	Type           string `json:"@type"`
	Name           string `json:"name"`
	AcceptedAnswer Answer `json:"acceptedAnswer"`
}

// Answer is the accepted answer for a Question.
type Answer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}
