package seo

import (
	"fmt"
	"strings"

	"github.com/jonesrussell/pagegen/internal/models"
)

// longTailModifiers qualify the primary "{service} {city}" phrase.
var longTailModifiers = []string{"affordable", "professional", "expert"}

// keywords builds the deterministic, ordered keyword list for a pair. Each
// template instance appears at most once; duplicates across unrelated pages
// are fine.
func (s *Synthesizer) keywords(service *models.Service, city *models.City, year int) []string {
	svc := strings.ToLower(service.Title)
	cty := strings.ToLower(city.Name)
	state := strings.ToLower(city.State)

	kws := make([]string, 0, 24)

	// Primary variants
	kws = append(kws,
		svc+" "+cty,
		svc+" in "+cty,
		svc+" services "+cty,
	)

	// Category-qualified variants
	if service.Category != "" {
		cat := strings.ReplaceAll(service.Category, "-", " ")
		kws = append(kws,
			cat+" "+cty,
			"best "+cat+" "+cty,
		)
	}

	// Long-tail modifiers
	for _, mod := range longTailModifiers {
		kws = append(kws, mod+" "+svc+" "+cty)
	}
	kws = append(kws,
		svc+" company "+cty,
		svc+" agency "+cty,
		svc+" near me",
	)

	// Location variants
	kws = append(kws,
		svc+" "+cty+" "+state,
		cty+" "+svc,
	)
	for _, local := range city.LocalKeywords {
		kws = append(kws, strings.ToLower(local))
	}

	// Action-intent variants
	kws = append(kws,
		"hire "+svc+" "+cty,
		"get "+svc+" "+cty,
		svc+" consultation "+cty,
	)

	// Brand and raw slugs
	kws = append(kws,
		strings.ToLower(s.site.Brand),
		city.Slug,
		service.Slug,
	)

	// Year-qualified variants
	kws = append(kws,
		fmt.Sprintf("%s %s %d", svc, cty, year),
		fmt.Sprintf("best %s %d", svc, year),
	)

	return dedupeKeywords(kws)
}

// dedupeKeywords removes repeated entries while preserving first-seen order.
func dedupeKeywords(kws []string) []string {
	seen := make(map[string]struct{}, len(kws))
	out := make([]string, 0, len(kws))

	for _, kw := range kws {
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}

	return out
}
