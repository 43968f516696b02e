// Package match ranks housing listings against a free text query and
// summarizes the result.
//
// A Matcher extracts a preference record from the query once, scores every
// listing with a Scorer, and returns the best matches in descending score
// order. Listings with equal scores keep their input order. Large batches
// can be scored on a worker pool; the ranking is the same either way.
package match

import (
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/vijay-prabhu/housematch/internal/listing"
	"github.com/vijay-prabhu/housematch/internal/preference"
	"github.com/vijay-prabhu/housematch/internal/textnorm"
)

// DefaultTopN is the number of matches returned when the caller has no
// preference.
const DefaultTopN = 5

// defaultParallelThreshold is the smallest batch scored on the pool
const defaultParallelThreshold = 64

// ScoredMatch is a listing with its score and the reasons behind it
type ScoredMatch struct {
	Listing     listing.Listing `json:"listing"`
	Score       int             `json:"score"`
	Explanation []string        `json:"explanation"`
}

// Matcher ranks listings for a query. It is safe for concurrent use.
type Matcher struct {
	extractor *preference.Extractor
	scorer    *Scorer
	campus    Campus
	keywords  []string

	pool      *ants.Pool
	poolSize  int
	threshold int
	logger    *slog.Logger
}

// Option configures a Matcher
type Option func(*Matcher) error

// WithCampus sets the proximity reference point and the query substrings
// that ask for it. A nil keyword list keeps the defaults.
func WithCampus(c Campus, keywords []string) Option {
	return func(m *Matcher) error {
		m.campus = c
		if keywords != nil {
			m.keywords = keywords
		}
		return nil
	}
}

// WithPoolSize enables parallel scoring on a pool of n workers. Zero picks a
// size from the number of CPUs.
func WithPoolSize(n int) Option {
	return func(m *Matcher) error {
		if n < 0 {
			return fmt.Errorf("%w: pool size must be non-negative, got %d", ErrInvalidArgument, n)
		}
		if n == 0 {
			n = max(runtime.NumCPU()/2, 1)
		}
		m.poolSize = n
		return nil
	}
}

// WithParallelThreshold sets the smallest batch that is scored on the pool
func WithParallelThreshold(n int) Option {
	return func(m *Matcher) error {
		if n < 1 {
			return fmt.Errorf("%w: parallel threshold must be positive, got %d", ErrInvalidArgument, n)
		}
		m.threshold = n
		return nil
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(m *Matcher) error {
		m.logger = l
		return nil
	}
}

// New creates a Matcher that normalizes text with n
func New(n *textnorm.Normalizer, opts ...Option) (*Matcher, error) {
	m := &Matcher{
		campus:    DefaultCampus,
		threshold: defaultParallelThreshold,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	m.extractor = preference.NewExtractor(n, m.keywords)
	m.scorer = NewScorer(n, m.campus)

	if m.poolSize > 0 {
		pool, err := ants.NewPool(m.poolSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create scoring pool: %w", err)
		}
		m.pool = pool
	}

	return m, nil
}

// Release stops the worker pool, if any. Scoring keeps working afterwards,
// sequentially.
func (m *Matcher) Release() {
	if m.pool != nil {
		m.pool.Release()
	}
}

// Campus returns the proximity reference point
func (m *Matcher) Campus() Campus {
	return m.campus
}

// Extract returns the preference record for query
func (m *Matcher) Extract(query string) preference.Record {
	return m.extractor.Extract(query)
}

// FindMatches returns the topN best listings for query, best first. Ties
// keep input order. A negative topN is an error; no listings is not.
func (m *Matcher) FindMatches(query string, listings []listing.Listing, topN int) ([]ScoredMatch, error) {
	if topN < 0 {
		return nil, fmt.Errorf("%w: top_n must be non-negative, got %d", ErrInvalidArgument, topN)
	}

	prefs := m.extractor.Extract(query)
	scored, err := m.scoreAll(listings, func(l *listing.Listing) Result {
		return m.scorer.Score(l, &prefs)
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > topN {
		scored = scored[:topN]
	}

	m.logger.Debug("ranked listings",
		"listings", len(listings),
		"returned", len(scored),
		"bedrooms", prefs.Bedrooms.String(),
		"property_type", prefs.PropertyType,
		"amenities", prefs.Amenities,
		"near_campus", prefs.NearCampus,
	)

	return scored, nil
}

// scoreAll scores every listing into its own slot, so the result order is
// the input order regardless of scheduling. A panic while scoring one
// listing fails the whole batch instead of leaving an empty slot.
func (m *Matcher) scoreAll(listings []listing.Listing, score func(*listing.Listing) Result) ([]ScoredMatch, error) {
	results := make([]ScoredMatch, len(listings))
	filled := make([]bool, len(listings))

	var (
		mu       sync.Mutex
		firstErr error
	)
	task := func(i int) {
		defer func() {
			if r := recover(); r != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("%w: listing %d (%q): %v", ErrScoring, i, listings[i].ID, r)
				}
				mu.Unlock()
			}
		}()

		r := score(&listings[i])
		results[i] = ScoredMatch{
			Listing:     listings[i],
			Score:       r.Score,
			Explanation: r.Explanation,
		}
		filled[i] = true
	}

	if m.pool == nil || len(listings) < m.threshold {
		for i := range listings {
			task(i)
		}
	} else {
		var wg sync.WaitGroup
		for i := range listings {
			wg.Add(1)
			err := m.pool.Submit(func() {
				defer wg.Done()
				task(i)
			})
			if err != nil {
				wg.Done()
				m.logger.Debug("scoring inline", "error", err)
				task(i)
			}
		}
		wg.Wait()
	}

	if firstErr != nil {
		return nil, firstErr
	}
	for i, ok := range filled {
		if !ok {
			return nil, fmt.Errorf("%w: listing %d (%q) was not scored", ErrScoring, i, listings[i].ID)
		}
	}
	return results, nil
}
