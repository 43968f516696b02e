package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vijay-prabhu/housematch/internal/database"
	"github.com/vijay-prabhu/housematch/internal/listing"
	"github.com/vijay-prabhu/housematch/internal/match"
	"github.com/vijay-prabhu/housematch/internal/preference"
)

var titleCase = cases.Title(language.English)

// Table writes data as a formatted table to stdout
func Table(data interface{}) error {
	return TableTo(os.Stdout, data)
}

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case []match.ScoredMatch:
		return matchesTable(w, v)
	case []listing.Listing:
		return listingsTable(w, v)
	case *listing.Listing:
		return listingDetail(w, v)
	case *database.Stats:
		return statsTable(w, v)
	case preference.Record:
		return preferenceTable(w, &v)
	case *preference.Record:
		return preferenceTable(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func matchesTable(w io.Writer, matches []match.ScoredMatch) error {
	if len(matches) == 0 {
		fmt.Fprintln(w, "No matches found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("#", "Score", "Title", "Price", "Beds", "Type", "Top Reason")

	for i, m := range matches {
		reason := ""
		if len(m.Explanation) > 0 {
			reason = m.Explanation[0]
		}
		err := table.Append([]string{
			strconv.Itoa(i + 1),
			strconv.Itoa(m.Score),
			truncate(m.Listing.Title, 30),
			FormatPrice(m.Listing.Price),
			FormatBedrooms(&m.Listing),
			FormatType(m.Listing.PropertyType),
			truncate(reason, 40),
		})
		if err != nil {
			return err
		}
	}

	return table.Render()
}

func listingsTable(w io.Writer, listings []listing.Listing) error {
	if len(listings) == 0 {
		fmt.Fprintln(w, "No listings found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Title", "Address", "Price", "Beds", "Baths", "Type")

	for _, l := range listings {
		err := table.Append([]string{
			shortID(l.ID),
			truncate(l.Title, 30),
			truncate(l.Address, 35),
			FormatPrice(l.Price),
			FormatBedrooms(&l),
			formatBathrooms(&l),
			FormatType(l.PropertyType),
		})
		if err != nil {
			return err
		}
	}

	return table.Render()
}

func listingDetail(w io.Writer, l *listing.Listing) error {
	fmt.Fprintf(w, "Title:       %s\n", l.Title)
	if l.ID != "" {
		fmt.Fprintf(w, "ID:          %s\n", l.ID)
	}
	fmt.Fprintf(w, "Address:     %s\n", l.Address)
	fmt.Fprintf(w, "Price:       %s/month\n", FormatPrice(l.Price))
	fmt.Fprintf(w, "Bedrooms:    %s\n", FormatBedrooms(l))
	fmt.Fprintf(w, "Bathrooms:   %s\n", formatBathrooms(l))
	if l.PropertyType != "" {
		fmt.Fprintf(w, "Type:        %s\n", FormatType(l.PropertyType))
	}
	if l.SquareFeet != nil {
		fmt.Fprintf(w, "Size:        %s sq ft\n", humanize.Comma(int64(*l.SquareFeet)))
	}
	if len(l.Amenities) > 0 {
		fmt.Fprintf(w, "Amenities:   %s\n", strings.Join(l.Amenities, ", "))
	}
	if l.HasCoordinates() {
		fmt.Fprintf(w, "Location:    %.5f, %.5f\n", *l.Latitude, *l.Longitude)
	}
	if l.ContactEmail != "" || l.ContactPhone != "" {
		contact := strings.TrimSpace(l.ContactEmail + " " + l.ContactPhone)
		fmt.Fprintf(w, "Contact:     %s\n", contact)
	}
	if l.AvailableAt != nil {
		fmt.Fprintf(w, "Available:   %s\n", l.AvailableAt.Format("Jan 02, 2006"))
	}
	if !l.CreatedAt.IsZero() {
		fmt.Fprintf(w, "Added:       %s\n", l.CreatedAt.Format("Jan 02, 2006"))
	}

	if l.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, wordWrap(l.Description, 78))
	}

	return nil
}

func statsTable(w io.Writer, s *database.Stats) error {
	fmt.Fprintln(w, "Listing Statistics")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Total listings:         %d\n", s.TotalListings)
	if s.TotalListings == 0 {
		return nil
	}
	fmt.Fprintf(w, "Multi-unit:             %d\n", s.MultiUnit)
	fmt.Fprintf(w, "With coordinates:       %d\n", s.WithCoordinates)
	fmt.Fprintf(w, "Average price:          %s\n", FormatPrice(s.AvgPrice))
	fmt.Fprintf(w, "Price range:            %s - %s\n", FormatPrice(s.MinPrice), FormatPrice(s.MaxPrice))
	fmt.Fprintf(w, "Average bedrooms:       %.1f\n", s.AvgBedrooms)

	if len(s.ByPropertyType) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "By property type:")

		types := make([]string, 0, len(s.ByPropertyType))
		for t := range s.ByPropertyType {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			fmt.Fprintf(w, "  %-20s  %d\n", FormatType(t), s.ByPropertyType[t])
		}
	}

	return nil
}

func preferenceTable(w io.Writer, p *preference.Record) error {
	if p.IsEmpty() {
		fmt.Fprintln(w, "No preferences found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Preference", "Value")

	rows := [][]string{}
	if p.Bedrooms.IsSet() {
		rows = append(rows, []string{"bedrooms", p.Bedrooms.String()})
	}
	if p.Bathrooms.IsSet() {
		rows = append(rows, []string{"bathrooms", p.Bathrooms.String()})
	}
	if p.MinPrice != nil {
		rows = append(rows, []string{"min price", FormatPrice(*p.MinPrice)})
	}
	if p.MaxPrice != nil {
		rows = append(rows, []string{"max price", FormatPrice(*p.MaxPrice)})
	}
	if p.PropertyType != "" {
		rows = append(rows, []string{"property type", p.PropertyType})
	}
	if len(p.Amenities) > 0 {
		rows = append(rows, []string{"amenities", strings.Join(p.Amenities, ", ")})
	}
	if p.NearCampus {
		rows = append(rows, []string{"near campus", "yes"})
	}
	if len(p.Keywords) > 0 {
		rows = append(rows, []string{"keywords", strings.Join(p.Keywords, ", ")})
	}

	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

// FormatPrice formats a monthly rent like "$1,250"
func FormatPrice(v float64) string {
	return "$" + humanize.Commaf(v)
}

// FormatType title-cases a property type for display
func FormatType(t string) string {
	if t == "" {
		return "-"
	}
	return titleCase.String(t)
}

// FormatBedrooms renders the bedroom count or span of a listing
func FormatBedrooms(l *listing.Listing) string {
	lo, hi := l.BedroomSpan()
	if lo == hi {
		if lo == 0 {
			return "studio"
		}
		return strconv.Itoa(lo)
	}
	return fmt.Sprintf("%d-%d", lo, hi)
}

func formatBathrooms(l *listing.Listing) string {
	lo, hi := l.BathroomSpan()
	if lo == hi {
		return strconv.FormatFloat(lo, 'f', -1, 64)
	}
	return strconv.FormatFloat(lo, 'f', -1, 64) + "-" + strconv.FormatFloat(hi, 'f', -1, 64)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// wordWrap wraps text at the specified width
func wordWrap(text string, width int) string {
	var result strings.Builder
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		if len(line) <= width {
			result.WriteString(line)
			result.WriteString("\n")
			continue
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}

		currentLine := words[0]
		for _, word := range words[1:] {
			if len(currentLine)+1+len(word) <= width {
				currentLine += " " + word
			} else {
				result.WriteString(currentLine)
				result.WriteString("\n")
				currentLine = word
			}
		}
		result.WriteString(currentLine)
		result.WriteString("\n")
	}

	return strings.TrimSuffix(result.String(), "\n")
}
