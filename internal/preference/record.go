// Package preference extracts structured housing preferences from a free
// text query.
package preference

import (
	"encoding/json"
	"strconv"
)

// Number is the value type of a Count
type Number interface {
	~int | ~float64
}

// Kind tells whether a Count is unset, an exact value or a range
type Kind uint8

const (
	KindUnset Kind = iota
	KindExact
	KindRange
)

// Count is a room count preference: unset, exactly one value, or an
// inclusive range. Exact and range are mutually exclusive.
type Count[T Number] struct {
	kind   Kind
	lo, hi T
}

// Exact returns a Count holding exactly v
func Exact[T Number](v T) Count[T] {
	return Count[T]{kind: KindExact, lo: v, hi: v}
}

// Between returns a Count holding the inclusive range between a and b.
// The bounds are ordered, so Between(4, 2) equals Between(2, 4).
func Between[T Number](a, b T) Count[T] {
	if a > b {
		a, b = b, a
	}
	return Count[T]{kind: KindRange, lo: a, hi: b}
}

// Kind reports which variant c holds
func (c Count[T]) Kind() Kind { return c.kind }

// IsSet reports whether c holds a value
func (c Count[T]) IsSet() bool { return c.kind != KindUnset }

// Exact returns the exact value if c holds one
func (c Count[T]) Exact() (T, bool) {
	return c.lo, c.kind == KindExact
}

// Range returns the bounds if c holds a range
func (c Count[T]) Range() (T, T, bool) {
	return c.lo, c.hi, c.kind == KindRange
}

// String renders "" for unset, "2" for exact and "2-4" for a range
func (c Count[T]) String() string {
	switch c.kind {
	case KindExact:
		return formatNumber(c.lo)
	case KindRange:
		return formatNumber(c.lo) + "-" + formatNumber(c.hi)
	default:
		return ""
	}
}

// MarshalJSON renders null, {"exact":v} or {"min":a,"max":b}
func (c Count[T]) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case KindExact:
		return json.Marshal(map[string]T{"exact": c.lo})
	case KindRange:
		return json.Marshal(struct {
			Min T `json:"min"`
			Max T `json:"max"`
		}{c.lo, c.hi})
	default:
		return []byte("null"), nil
	}
}

func formatNumber[T Number](v T) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 64)
}

// Record is the structured form of a housing query. It is never mutated
// after extraction.
type Record struct {
	Bedrooms     Count[int]     `json:"bedrooms"`
	Bathrooms    Count[float64] `json:"bathrooms"`
	MinPrice     *float64       `json:"min_price"`
	MaxPrice     *float64       `json:"max_price"`
	PropertyType string         `json:"property_type,omitempty"`
	Amenities    []string       `json:"amenities"`
	NearCampus   bool           `json:"near_campus"`
	Keywords     []string       `json:"keywords"`
}

// IsEmpty reports whether no structured preference was found. Keywords
// are not considered.
func (r Record) IsEmpty() bool {
	return !r.Bedrooms.IsSet() && !r.Bathrooms.IsSet() &&
		r.MinPrice == nil && r.MaxPrice == nil &&
		r.PropertyType == "" && len(r.Amenities) == 0 && !r.NearCampus
}

func (r *Record) addAmenity(tag string) {
	for _, a := range r.Amenities {
		if a == tag {
			return
		}
	}
	r.Amenities = append(r.Amenities, tag)
}
