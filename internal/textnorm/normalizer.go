// Package textnorm turns free text into normalized keyword stems.
//
// Normalization lowercases the text, splits it into tokens, drops stop words
// and tokens that are not purely alphabetic, and stems what is left with the
// Snowball English stemmer. Two backends share that contract: the full
// backend folds accents, splits punctuation off words and uses the complete
// English stop-word list; the basic backend splits on whitespace and uses a
// small built-in stop-word set. When the full backend cannot load its
// resources the normalizer falls back to the basic backend and logs a single
// warning.
package textnorm

import (
	"bufio"
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"unicode"

	snowballeng "github.com/kljensen/snowball/english"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Backend selects the tokenizer and stop-word resources
type Backend string

const (
	BackendFull  Backend = "full"
	BackendBasic Backend = "basic"
)

// ParseBackend validates a backend name
func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case BackendFull, "":
		return BackendFull, nil
	case BackendBasic:
		return BackendBasic, nil
	default:
		return "", fmt.Errorf("unknown normalizer backend %q (use full or basic)", s)
	}
}

// wordPattern matches runs of letters and digits with internal hyphens or
// apostrophes, or a single punctuation character.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’\-][\p{L}\p{N}]+)*|[^\s\p{L}\p{N}]`)

// Normalizer converts text into stems. It is immutable after construction
// and safe for concurrent use.
type Normalizer struct {
	backend   Backend
	stopwords map[string]struct{}
	tokenize  func(string) []string
}

type options struct {
	backend       Backend
	stopwordsPath string
	logger        *slog.Logger
}

// Option configures a Normalizer
type Option func(*options)

// WithBackend selects the requested backend
func WithBackend(b Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithStopwordsFile loads the full backend's stop words from a file with one
// word per line. Blank lines and lines starting with '#' are ignored.
func WithStopwordsFile(path string) Option {
	return func(o *options) {
		o.stopwordsPath = path
	}
}

// WithLogger sets the logger used for the fallback warning
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New builds a Normalizer. It never fails: if the full backend's resources
// are unavailable the basic backend is used instead.
func New(opts ...Option) *Normalizer {
	o := options{backend: BackendFull}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	if o.backend == BackendBasic {
		return newBasic()
	}

	words, err := fullStopwords(o.stopwordsPath)
	if err != nil {
		o.logger.Warn("full text normalizer unavailable, falling back to basic",
			"stopwords_path", o.stopwordsPath, "error", err)
		return newBasic()
	}

	return &Normalizer{
		backend:   BackendFull,
		stopwords: words,
		tokenize:  fullTokenize,
	}
}

func newBasic() *Normalizer {
	return &Normalizer{
		backend:   BackendBasic,
		stopwords: basicStopwords,
		tokenize:  strings.Fields,
	}
}

// Backend reports the backend actually in use
func (n *Normalizer) Backend() Backend {
	return n.backend
}

// Normalize returns the stems of the content words in text, in order
func (n *Normalizer) Normalize(text string) []string {
	tokens := n.tokenize(strings.ToLower(text))

	stems := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, stop := n.stopwords[tok]; stop {
			continue
		}
		if !isAlpha(tok) {
			continue
		}
		stems = append(stems, snowballeng.Stem(tok, false))
	}
	return stems
}

// IsStopword reports whether word is in the active stop-word list
func (n *Normalizer) IsStopword(word string) bool {
	_, ok := n.stopwords[strings.ToLower(word)]
	return ok
}

var nonSpacingMarks = runes.In(unicode.Mn)

// foldAccents strips combining marks. Transformer chains carry buffers, so
// each call builds its own.
func foldAccents(text string) (string, error) {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(nonSpacingMarks), norm.NFC), text)
	return folded, err
}

func fullTokenize(text string) []string {
	if folded, err := foldAccents(text); err == nil {
		text = folded
	}
	return wordPattern.FindAllString(text, -1)
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func fullStopwords(path string) (map[string]struct{}, error) {
	data := englishStopwords
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read stop words: %w", err)
		}
		data = b
	}

	words := make(map[string]struct{})
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.ToLower(strings.TrimSpace(sc.Text()))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words[line] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse stop words: %w", err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("stop word list %s is empty", path)
	}
	return words, nil
}
