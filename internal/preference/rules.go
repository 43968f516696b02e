package preference

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vijay-prabhu/housematch/internal/listing"
)

// rule pairs a pattern with the setter applied to one of its matches. The
// setter returns false to reject the match, in which case the next match
// and then the next rule of the category is tried.
type rule struct {
	pattern *regexp.Regexp
	apply   func(query string, m []int, r *Record) bool
}

// tagRule maps a set of whole-word keywords to a canonical tag
type tagRule struct {
	tag      string
	keywords []string
	pattern  *regexp.Regexp
}

const (
	bedroomUnit  = `(?:bedrooms?|bed\s+rooms?|beds?|brs?)`
	bathroomUnit = `(?:bathrooms?|bath\s+rooms?|baths?|ba)`
	money        = `(\d+(?:,\d{3})*(?:\.\d+)?)`
	decimal      = `(\d+(?:\.\d+)?)`
)

// roomUnitAhead matches a room unit right after a number, which marks the
// number as a room count rather than a price.
var roomUnitAhead = regexp.MustCompile(`^\s*-?\s*(?:` + bedroomUnit + `|` + bathroomUnit + `)\b`)

var bedroomRules = []rule{
	{
		pattern: regexp.MustCompile(`(\d+)\s*-?\s*` + bedroomUnit + `\b`),
		apply: func(q string, m []int, r *Record) bool {
			if continuesNumber(q, m[2]) {
				return false
			}
			n, err := strconv.Atoi(group(q, m, 1))
			if err != nil {
				return false
			}
			r.Bedrooms = Exact(n)
			return true
		},
	},
	{
		pattern: regexp.MustCompile(`(\d+)\s*-\s*(\d+)\s*-?\s*` + bedroomUnit + `\b`),
		apply: func(q string, m []int, r *Record) bool {
			lo, err1 := strconv.Atoi(group(q, m, 1))
			hi, err2 := strconv.Atoi(group(q, m, 2))
			if err1 != nil || err2 != nil {
				return false
			}
			r.Bedrooms = Between(lo, hi)
			return true
		},
	},
	{
		pattern: regexp.MustCompile(`\bstudio(?:\s+apartment|\s+apt)?\b`),
		apply: func(q string, m []int, r *Record) bool {
			r.Bedrooms = Exact(0)
			return true
		},
	},
}

var bathroomRules = []rule{
	{
		pattern: regexp.MustCompile(decimal + `\s*-?\s*` + bathroomUnit + `\b`),
		apply: func(q string, m []int, r *Record) bool {
			if continuesNumber(q, m[2]) {
				return false
			}
			v, ok := parseNumber(group(q, m, 1))
			if !ok {
				return false
			}
			r.Bathrooms = Exact(v)
			return true
		},
	},
	{
		pattern: regexp.MustCompile(decimal + `\s*-\s*` + decimal + `\s*-?\s*` + bathroomUnit + `\b`),
		apply: func(q string, m []int, r *Record) bool {
			lo, ok1 := parseNumber(group(q, m, 1))
			hi, ok2 := parseNumber(group(q, m, 2))
			if !ok1 || !ok2 {
				return false
			}
			r.Bathrooms = Between(lo, hi)
			return true
		},
	},
}

var priceRules = []rule{
	{
		pattern: regexp.MustCompile(`\b(?:under|less\s+than|below|maximum|max)\s*\$?\s*` + money),
		apply: priceSetter(func(r *Record, v []float64) {
			r.MaxPrice = &v[0]
		}),
	},
	{
		pattern: regexp.MustCompile(`\b(?:over|more\s+than|above|minimum|min)\s*\$?\s*` + money),
		apply: priceSetter(func(r *Record, v []float64) {
			r.MinPrice = &v[0]
		}),
	},
	{
		pattern: regexp.MustCompile(`\$?\s*` + money + `\s*(?:to|-)\s*\$?\s*` + money),
		apply: priceSetter(func(r *Record, v []float64) {
			lo, hi := v[0], v[1]
			if lo > hi {
				lo, hi = hi, lo
			}
			r.MinPrice, r.MaxPrice = &lo, &hi
		}),
	},
	{
		pattern: regexp.MustCompile(`\$\s*` + money),
		apply: priceSetter(func(r *Record, v []float64) {
			band := v[0] / 10
			lo, hi := v[0]-band, v[0]+band
			r.MinPrice, r.MaxPrice = &lo, &hi
		}),
	},
}

// priceSetter parses every captured amount and rejects matches that are
// really room counts, like the "2-4" in "2-4 bedroom".
func priceSetter(set func(r *Record, v []float64)) func(string, []int, *Record) bool {
	return func(q string, m []int, r *Record) bool {
		if roomUnitAhead.MatchString(q[m[1]:]) || continuesNumber(q, m[0]) {
			return false
		}
		var values []float64
		for i := 1; 2*i < len(m); i++ {
			v, ok := parseNumber(group(q, m, i))
			if !ok {
				return false
			}
			values = append(values, v)
		}
		set(r, values)
		return true
	}
}

var propertyTypeRules = compileTags([]tagRule{
	{tag: listing.TypeApartment, keywords: []string{"apartment", "apt", "flat", "condo", "condominium"}},
	{tag: listing.TypeHouse, keywords: []string{"house", "home", "townhouse", "town house", "bungalow", "cottage"}},
	{tag: listing.TypeRoom, keywords: []string{"room", "bedroom", "shared", "dorm"}},
})

var amenityRules = compileTags([]tagRule{
	{tag: "parking", keywords: []string{"parking", "garage", "covered parking", "parking spot", "car", "vehicle"}},
	{tag: "pet-friendly", keywords: []string{"pet", "dog", "cat", "animal", "pet-friendly", "pet friendly"}},
	{tag: "laundry", keywords: []string{"laundry", "washer", "dryer", "w/d", "washer/dryer", "washer and dryer", "washing machine"}},
	{tag: "furnished", keywords: []string{"furnished", "furniture", "equipped"}},
	{tag: "air-conditioning", keywords: []string{"ac", "a/c", "air conditioning", "air-conditioning", "cooling"}},
	{tag: "heating", keywords: []string{"heating", "heater", "heated", "central heat"}},
	{tag: "pool", keywords: []string{"pool", "swimming pool", "swim"}},
	{tag: "gym", keywords: []string{"gym", "fitness", "workout", "exercise"}},
	{tag: "balcony", keywords: []string{"balcony", "patio", "terrace", "outdoor space", "deck"}},
	{tag: "security", keywords: []string{"security", "gated", "doorman", "secure", "surveillance", "cameras"}},
	{tag: "utilities-included", keywords: []string{"utilities included", "utilities", "bills included", "water included", "electricity included"}},
	{tag: "internet", keywords: []string{"internet", "wifi", "broadband", "high-speed internet"}},
})

// AmenityTags returns the canonical amenity tags in evaluation order
func AmenityTags() []string {
	tags := make([]string, len(amenityRules))
	for i, t := range amenityRules {
		tags[i] = t.tag
	}
	return tags
}

// DefaultCampusKeywords are the substrings that flag a query as wanting to
// be near the campus.
var DefaultCampusKeywords = []string{
	"ucr", "campus", "university", "riverside", "college", "school",
	"near ucr", "close to ucr", "walking distance",
}

func compileTags(rules []tagRule) []tagRule {
	for i := range rules {
		alts := make([]string, len(rules[i].keywords))
		for j, kw := range rules[i].keywords {
			alts[j] = strings.Join(strings.Fields(regexp.QuoteMeta(kw)), `\s+`)
		}
		rules[i].pattern = regexp.MustCompile(`\b(?:` + strings.Join(alts, "|") + `)\b`)
	}
	return rules
}

// continuesNumber reports whether the number starting at pos is really the
// tail of a preceding number or range, e.g. the "4" in "2-4" or the "5"
// in "1.5".
func continuesNumber(q string, pos int) bool {
	if pos <= 0 {
		return false
	}
	if c := q[pos-1]; isDigit(c) || c == '.' || c == ',' {
		return true
	}
	before := strings.TrimRight(q[:pos], " \t")
	if !strings.HasSuffix(before, "-") {
		return false
	}
	before = strings.TrimRight(strings.TrimSuffix(before, "-"), " \t")
	return before != "" && isDigit(before[len(before)-1])
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func group(q string, m []int, i int) string {
	if m[2*i] < 0 {
		return ""
	}
	return q[m[2*i]:m[2*i+1]]
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
