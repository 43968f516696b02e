// Package filter screens incoming listings for spam before they reach the
// store. A listing is checked against the contact domain allowlist, then the
// domain blocklist, then the phrase blocklist.
package filter

import (
	"github.com/vijay-prabhu/housematch/internal/config"
	"github.com/vijay-prabhu/housematch/internal/listing"
)

// Layer identifies which filtering layer made the decision
type Layer string

const (
	LayerAllowlist Layer = "allowlist"
	LayerBlocklist Layer = "blocklist"
	LayerPhrase    Layer = "phrase"
	LayerPassed    Layer = "passed"
)

// Result represents the outcome of filtering a listing
type Result struct {
	Include bool   // Whether to import this listing
	Layer   Layer  // Which layer made the decision
	Reason  string // Human-readable reason
}

// Filter applies layered spam checks to listings
type Filter struct {
	config config.FilterConfig
}

// New creates a new Filter with the given configuration
func New(cfg config.FilterConfig) *Filter {
	return &Filter{config: cfg}
}

// Apply runs the listing through the filtering pipeline
func (f *Filter) Apply(l *listing.Listing) Result {
	// Layer 1: contact domain allowlist (auto-include)
	if result := f.checkDomainAllowlist(l); result != nil {
		return *result
	}

	// Layer 2: contact domain blocklist (auto-exclude)
	if result := f.checkDomainBlocklist(l); result != nil {
		return *result
	}

	// Layer 3: scam phrases in the title or description
	if result := f.checkPhrases(l); result != nil {
		return *result
	}

	return Result{Include: true, Layer: LayerPassed}
}

// Stats counts filter decisions
type Stats struct {
	Total       int
	Allowlisted int
	Blocklisted int
	ByPhrase    int
	Passed      int
}

// GetStats returns statistics about a batch of filter results
func GetStats(results []Result) Stats {
	stats := Stats{Total: len(results)}

	for _, r := range results {
		switch r.Layer {
		case LayerAllowlist:
			stats.Allowlisted++
		case LayerBlocklist:
			stats.Blocklisted++
		case LayerPhrase:
			stats.ByPhrase++
		case LayerPassed:
			stats.Passed++
		}
	}

	return stats
}
