package match

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/vijay-prabhu/housematch/internal/listing"
	"github.com/vijay-prabhu/housematch/internal/preference"
)

// NoMatchesResponse is returned by GenerateResponse when there is nothing
// to present.
const NoMatchesResponse = "I couldn't find any listings matching your criteria. " +
	"Please try a different search or adjust your requirements."

const responseFooter = "Click on any listing to view more details or adjust your search criteria for different results."

// GenerateResponse writes a readable summary of matches for query
func (m *Matcher) GenerateResponse(query string, matches []ScoredMatch) string {
	if len(matches) == 0 {
		return NoMatchesResponse
	}

	prefs := m.extractor.Extract(query)

	var b strings.Builder
	b.WriteString("Based on your search")
	b.WriteString(m.searchContext(&prefs))
	b.WriteString(", here are the best matches I found:\n\n")

	for i := range matches {
		writeMatch(&b, i+1, &matches[i])
	}

	b.WriteString(responseFooter)
	return b.String()
}

func (m *Matcher) searchContext(p *preference.Record) string {
	var parts []string
	if d, ok := p.Bedrooms.Exact(); ok {
		if d == 0 {
			parts = append(parts, "studio")
		} else {
			parts = append(parts, fmt.Sprintf("%d-bedroom", d))
		}
	} else if lo, hi, ok := p.Bedrooms.Range(); ok {
		parts = append(parts, fmt.Sprintf("%d-%d bedroom", lo, hi))
	}
	if p.PropertyType != "" {
		parts = append(parts, p.PropertyType)
	}

	var s strings.Builder
	if len(parts) > 0 {
		s.WriteString(" for a " + strings.Join(parts, " "))
	}
	if p.MaxPrice != nil && *p.MaxPrice > 0 {
		s.WriteString(" with a budget of $" + formatMoney(*p.MaxPrice))
	}
	if len(p.Amenities) > 0 {
		s.WriteString(" with " + joinAnd(p.Amenities))
	}
	if p.NearCampus {
		s.WriteString(" near " + m.campus.Name)
	}
	return s.String()
}

func writeMatch(b *strings.Builder, n int, sm *ScoredMatch) {
	l := &sm.Listing

	fmt.Fprintf(b, "**%d. %s** - $%s per month\n", n, l.Title, formatMoney(l.Price))
	fmt.Fprintf(b, "   %s bed, %s bath %s\n", bedroomLabel(l), bathroomLabel(l), l.PropertyType)

	if len(l.Amenities) > 0 {
		b.WriteString("   Amenities: " + strings.Join(l.Amenities[:min(3, len(l.Amenities))], ", "))
		if extra := len(l.Amenities) - 3; extra > 0 {
			fmt.Fprintf(b, " and %d more", extra)
		}
		b.WriteString("\n")
	}

	if len(sm.Explanation) > 0 {
		b.WriteString("   Why this matches: " + strings.Join(sm.Explanation[:min(3, len(sm.Explanation))], ", "))
		if extra := len(sm.Explanation) - 3; extra > 0 {
			fmt.Fprintf(b, " and %d other factors", extra)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
}

func bedroomLabel(l *listing.Listing) string {
	lo, hi := l.BedroomSpan()
	if lo != hi {
		return fmt.Sprintf("%d-%d", lo, hi)
	}
	return fmt.Sprint(lo)
}

func bathroomLabel(l *listing.Listing) string {
	lo, hi := l.BathroomSpan()
	if lo != hi {
		return formatCount(lo) + "-" + formatCount(hi)
	}
	return formatCount(lo)
}

func formatMoney(v float64) string {
	return humanize.Commaf(v)
}

// joinAnd renders "a", "a and b" or "a, b and c"
func joinAnd(items []string) string {
	if len(items) == 1 {
		return items[0]
	}
	last := len(items) - 1
	return strings.Join(items[:last], ", ") + " and " + items[last]
}
