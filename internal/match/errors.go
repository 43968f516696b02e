package match

import "errors"

var (
	// ErrInvalidArgument is returned for out-of-range arguments such as a
	// negative result count or pool size.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrScoring is returned when a listing could not be scored
	ErrScoring = errors.New("scoring failed")
)
