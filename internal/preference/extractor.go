package preference

import (
	"strings"

	"github.com/vijay-prabhu/housematch/internal/textnorm"
)

// Extractor converts a free text query into a Record. It holds no mutable
// state and is safe for concurrent use.
type Extractor struct {
	normalizer     *textnorm.Normalizer
	campusKeywords []string
}

// NewExtractor returns an Extractor that normalizes keywords with n and flags
// proximity on any of campusKeywords. A nil keyword list uses
// DefaultCampusKeywords.
func NewExtractor(n *textnorm.Normalizer, campusKeywords []string) *Extractor {
	if campusKeywords == nil {
		campusKeywords = DefaultCampusKeywords
	}
	kws := make([]string, 0, len(campusKeywords))
	for _, kw := range campusKeywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			kws = append(kws, kw)
		}
	}
	return &Extractor{normalizer: n, campusKeywords: kws}
}

// Extract parses query. It never fails; anything it does not recognize is
// left unset.
func (e *Extractor) Extract(query string) Record {
	q := strings.ToLower(query)
	r := Record{
		Amenities: []string{},
	}

	for _, rules := range [][]rule{bedroomRules, bathroomRules, priceRules} {
		firstMatch(rules, q, &r)
	}

	for _, t := range propertyTypeRules {
		if t.pattern.MatchString(q) {
			r.PropertyType = t.tag
			break
		}
	}

	for _, t := range amenityRules {
		if t.pattern.MatchString(q) {
			r.addAmenity(t.tag)
		}
	}

	for _, kw := range e.campusKeywords {
		if strings.Contains(q, kw) {
			r.NearCampus = true
			break
		}
	}

	r.Keywords = e.normalizer.Normalize(q)
	return r
}

// firstMatch applies the first accepted match of the first rule that has
// one.
func firstMatch(rules []rule, q string, r *Record) {
	for _, rl := range rules {
		for _, m := range rl.pattern.FindAllStringSubmatchIndex(q, -1) {
			if rl.apply(q, m, r) {
				return
			}
		}
	}
}
