package filter

import (
	"strings"

	"github.com/vijay-prabhu/housematch/internal/listing"
)

// contactAddress returns the lowercased contact email of a listing and its
// domain. Both are empty when the listing has no usable email.
func contactAddress(l *listing.Listing) (domain, fullEmail string) {
	fullEmail = strings.ToLower(strings.TrimSpace(l.ContactEmail))
	at := strings.LastIndex(fullEmail, "@")
	if at < 0 || at == len(fullEmail)-1 {
		return "", ""
	}
	return fullEmail[at+1:], fullEmail
}

// checkDomainAllowlist checks if the listing contact is on an allowed domain
func (f *Filter) checkDomainAllowlist(l *listing.Listing) *Result {
	domain, fullEmail := contactAddress(l)
	if domain == "" {
		return nil
	}

	for _, pattern := range f.config.DomainAllowlist {
		pattern = strings.ToLower(pattern)
		if matchesDomainPattern(domain, fullEmail, pattern) {
			return &Result{
				Include: true,
				Layer:   LayerAllowlist,
				Reason:  "Allowed contact: " + pattern,
			}
		}
	}

	return nil
}

// checkDomainBlocklist checks if the listing contact is on a blocked domain
func (f *Filter) checkDomainBlocklist(l *listing.Listing) *Result {
	domain, fullEmail := contactAddress(l)
	if domain == "" {
		return nil
	}

	for _, pattern := range f.config.DomainBlocklist {
		pattern = strings.ToLower(pattern)
		if matchesDomainPattern(domain, fullEmail, pattern) {
			return &Result{
				Include: false,
				Layer:   LayerBlocklist,
				Reason:  "Blocked contact: " + pattern,
			}
		}
	}

	return nil
}

// matchesDomainPattern checks if a pattern matches the domain or email
func matchesDomainPattern(domain, fullEmail, pattern string) bool {
	if pattern == "" {
		return false
	}

	// Exact domain match
	if domain == pattern {
		return true
	}

	// Subdomain (e.g., "mail.example.com" matches "example.com")
	if strings.HasSuffix(domain, "."+pattern) {
		return true
	}

	// Pattern contains @ - it's a specific email pattern
	if strings.Contains(pattern, "@") {
		if fullEmail == pattern {
			return true
		}
		// Prefix match (e.g., "landlord@" matches any "landlord@*")
		if strings.HasSuffix(pattern, "@") && strings.HasPrefix(fullEmail, pattern) {
			return true
		}
	}

	return false
}
