package match

import (
	"fmt"
	"math"
	"strings"

	"github.com/vijay-prabhu/housematch/internal/listing"
	"github.com/vijay-prabhu/housematch/internal/preference"
	"github.com/vijay-prabhu/housematch/internal/textnorm"
)

// Campus is the reference point for proximity scoring
type Campus struct {
	Name           string
	Latitude       float64
	Longitude      float64
	MilesPerDegree float64
}

// DefaultCampus is the University of California, Riverside
var DefaultCampus = Campus{
	Name:           "UCR",
	Latitude:       33.9737,
	Longitude:      -117.3281,
	MilesPerDegree: 69,
}

// Result is the score of one listing against one preference record
type Result struct {
	Score       int
	Explanation []string
}

// Scorer rates listings against a preference record. It is stateless and
// safe for concurrent use.
type Scorer struct {
	normalizer *textnorm.Normalizer
	campus     Campus
}

// NewScorer creates a Scorer that tokenizes listing text with n
func NewScorer(n *textnorm.Normalizer, campus Campus) *Scorer {
	if campus.MilesPerDegree <= 0 {
		campus.MilesPerDegree = DefaultCampus.MilesPerDegree
	}
	return &Scorer{normalizer: n, campus: campus}
}

// Score rates l against p. Explanation lines follow the order bedrooms,
// bathrooms, price, property type, amenities, proximity, keywords.
func (s *Scorer) Score(l *listing.Listing, p *preference.Record) Result {
	var res Result
	add := func(points int, why string) {
		res.Score += points
		if why != "" {
			res.Explanation = append(res.Explanation, why)
		}
	}

	scoreBedrooms(l, p.Bedrooms, add)
	scoreBathrooms(l, p.Bathrooms, add)
	scorePrice(l.Price, p.MinPrice, p.MaxPrice, add)

	if p.PropertyType != "" && strings.EqualFold(l.PropertyType, p.PropertyType) {
		add(8, fmt.Sprintf("Matches your preferred %s property type", p.PropertyType))
	}

	scoreAmenities(l.Amenities, p.Amenities, add)

	if p.NearCampus && l.HasCoordinates() {
		s.scoreProximity(*l.Latitude, *l.Longitude, add)
	}

	if len(p.Keywords) > 0 {
		s.scoreKeywords(l, p.Keywords, add)
	}

	if res.Explanation == nil {
		res.Explanation = []string{}
	}
	return res
}

type adder func(points int, why string)

func scoreBedrooms(l *listing.Listing, want preference.Count[int], add adder) {
	lo, hi := l.BedroomSpan()

	if d, ok := want.Exact(); ok {
		switch {
		case l.IsMultiUnit && lo <= d && d <= hi:
			add(10, fmt.Sprintf("Has the desired %d bedrooms", d))
		case !l.IsMultiUnit && l.Bedrooms == d:
			add(10, fmt.Sprintf("Exactly %d bedrooms as requested", d))
		default:
			dist := min(absInt(lo-d), absInt(hi-d))
			if dist <= 1 {
				add(5, "Close to desired bedroom count (within 1)")
			} else {
				add(-2*dist, "")
			}
		}
		return
	}

	if wlo, whi, ok := want.Range(); ok {
		switch {
		case l.IsMultiUnit && hi >= wlo && lo <= whi:
			add(8, "Bedroom options within desired range")
		case !l.IsMultiUnit && wlo <= l.Bedrooms && l.Bedrooms <= whi:
			add(8, "Bedrooms within desired range")
		default:
			add(-5, "")
		}
	}
}

func scoreBathrooms(l *listing.Listing, want preference.Count[float64], add adder) {
	lo, hi := l.BathroomSpan()

	if b, ok := want.Exact(); ok {
		switch {
		case l.IsMultiUnit && lo <= b && b <= hi:
			add(8, fmt.Sprintf("Has the desired %s bathrooms", formatCount(b)))
		case !l.IsMultiUnit && l.Bathrooms == b:
			add(8, fmt.Sprintf("Exactly %s bathrooms as requested", formatCount(b)))
		default:
			dist := math.Min(math.Abs(lo-b), math.Abs(hi-b))
			if dist <= 0.5 {
				add(4, "Close to desired bathroom count")
			} else {
				add(-int(dist*2), "")
			}
		}
		return
	}

	if wlo, whi, ok := want.Range(); ok {
		switch {
		case l.IsMultiUnit && hi >= wlo && lo <= whi:
			add(6, "Bathroom options within desired range")
		case !l.IsMultiUnit && wlo <= l.Bathrooms && l.Bathrooms <= whi:
			add(6, "Bathrooms within desired range")
		default:
			add(-4, "")
		}
	}
}

// scorePrice applies the budget rules. A non-positive maximum never yields
// an over-budget penalty.
func scorePrice(price float64, minPrice, maxPrice *float64, add adder) {
	switch {
	case minPrice != nil && maxPrice != nil:
		lo, hi := *minPrice, *maxPrice
		switch {
		case lo <= price && price <= hi:
			add(15, "Price within your budget range")
		case price < lo:
			add(5, "Price below your minimum budget (good value)")
		case price <= hi*1.1:
			add(3, "Price slightly over your maximum budget")
		case hi > 0:
			add(-int((price-hi)/hi*20), "")
		}

	case maxPrice != nil:
		hi := *maxPrice
		switch {
		case price <= hi && price <= hi*0.8:
			add(15, "Significantly under your maximum budget")
		case price <= hi:
			add(15, "Within your maximum budget")
		case price <= hi*1.1:
			add(2, "Slightly over your maximum budget")
		case hi > 0:
			add(-int((price-hi)/hi*25), "")
		}

	case minPrice != nil:
		if price >= *minPrice {
			add(5, "Meets your minimum price requirement")
		}
	}
}

func scoreAmenities(have, want []string, add adder) {
	if len(want) == 0 || len(have) == 0 {
		return
	}

	lowered := make([]string, len(have))
	for i, a := range have {
		lowered[i] = strings.ToLower(a)
	}

	var matched []string
	for _, tag := range want {
		if amenityPresent(lowered, tag) {
			matched = append(matched, tag)
		}
	}

	switch len(matched) {
	case 0:
	case 1:
		add(5, fmt.Sprintf("Has your desired %s amenity", matched[0]))
	default:
		add(5*len(matched), fmt.Sprintf("Includes your desired %s amenities", joinAnd(matched)))
	}
}

// amenityPresent matches a tag against listing amenities by substring, on
// the whole tag or any of its hyphen-separated parts.
func amenityPresent(amenities []string, tag string) bool {
	parts := strings.Split(tag, "-")
	for _, a := range amenities {
		if strings.Contains(a, tag) {
			return true
		}
		for _, part := range parts {
			if part != "" && strings.Contains(a, part) {
				return true
			}
		}
	}
	return false
}

// scoreProximity uses a flat-earth distance on raw degrees scaled by a fixed
// miles-per-degree factor. Longitude degrees are shorter than latitude
// degrees at the campus latitude, so east-west distances are overstated.
func (s *Scorer) scoreProximity(lat, lng float64, add adder) {
	miles := math.Hypot(lat-s.campus.Latitude, lng-s.campus.Longitude) * s.campus.MilesPerDegree

	switch {
	case miles < 1:
		add(15, fmt.Sprintf("Very close to %s (less than 1 mile)", s.campus.Name))
	case miles < 2:
		add(10, fmt.Sprintf("Close to %s (less than 2 miles)", s.campus.Name))
	case miles < 5:
		add(5, fmt.Sprintf("Within 5 miles of %s", s.campus.Name))
	}
}

func (s *Scorer) scoreKeywords(l *listing.Listing, keywords []string, add adder) {
	tokens := make(map[string]struct{})
	for _, tok := range s.normalizer.Normalize(l.Description + " " + l.Title) {
		tokens[tok] = struct{}{}
	}

	seen := make(map[string]struct{})
	for _, kw := range keywords {
		if _, ok := tokens[kw]; ok {
			seen[kw] = struct{}{}
		}
	}

	n := len(seen)
	switch {
	case n >= 3:
		add(2*n, "Many of your keywords match the description")
	case n > 0:
		add(2*n, "Some of your keywords match the description")
	}
}

func formatCount(v float64) string {
	return fmt.Sprint(v)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
