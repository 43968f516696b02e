package filter

import (
	"fmt"
	"strings"

	"github.com/vijay-prabhu/housematch/internal/listing"
)

// checkPhrases checks the title and description for blocked phrases
func (f *Filter) checkPhrases(l *listing.Listing) *Result {
	text := strings.ToLower(l.Title + "\n" + l.Description)

	for _, phrase := range f.config.PhraseBlocklist {
		phrase = strings.ToLower(strings.TrimSpace(phrase))
		if phrase == "" {
			continue
		}
		if containsWord(text, phrase) {
			return &Result{
				Include: false,
				Layer:   LayerPhrase,
				Reason:  fmt.Sprintf("Matches blocked phrase: %q", phrase),
			}
		}
	}

	return nil
}

// containsWord checks if text contains the word (with word boundary awareness)
func containsWord(text, word string) bool {
	// Simple contains for multi-word phrases
	if strings.Contains(word, " ") {
		return strings.Contains(text, word)
	}

	// For single words, check for word boundaries
	// This prevents "gram" from matching "program"
	idx := strings.Index(text, word)
	if idx == -1 {
		return false
	}

	if idx > 0 && isWordChar(text[idx-1]) {
		return containsWord(text[idx+len(word):], word)
	}

	endIdx := idx + len(word)
	if endIdx < len(text) && isWordChar(text[endIdx]) {
		return containsWord(text[endIdx:], word)
	}

	return true
}

// isWordChar returns true for alphanumeric characters
func isWordChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
