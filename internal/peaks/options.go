package peaks

import (
	"errors"
	"fmt"
	"math"
)

// DefaultMaxIterations is the candidate budget used when Options.MaxIterations
// is zero.
const DefaultMaxIterations = 50

// ErrInvalidOptions is returned by Options.Validate and NewExtractor.
var ErrInvalidOptions = errors.New("invalid peak options")

// AcceptRule decides whether a candidate is far enough from the peaks already
// accepted.
type AcceptRule int

const (
	// RequireAll accepts a candidate only when it is farther than
	// MinSeparation from every accepted peak.
	RequireAll AcceptRule = iota

	// ReferenceAny accepts a candidate as soon as it is farther than
	// MinSeparation from any one accepted peak. This reproduces the
	// historical picker and lets a candidate sit right next to a peak as
	// long as some other peak is far away.
	ReferenceAny
)

func (r AcceptRule) String() string {
	switch r {
	case RequireAll:
		return "require-all"
	case ReferenceAny:
		return "reference-any"
	default:
		return fmt.Sprintf("AcceptRule(%d)", int(r))
	}
}

// Options controls peak extraction.
type Options struct {
	// MaxCount is the most peaks a single Extract call returns. Must be ≥ 1.
	MaxCount int

	// MinSeparation is the Euclidean distance, in surface cells, a candidate
	// must exceed to count as separate from an accepted peak.
	MinSeparation float64

	// MaxIterations caps the candidates examined per Extract call.
	// Zero selects DefaultMaxIterations.
	MaxIterations int

	Rule AcceptRule

	// MinScore stops extraction when the next candidate scores below it.
	// Nil disables the check.
	MinScore *float64
}

// Validate checks the options for values extraction cannot work with.
func (o Options) Validate() error {
	if o.MaxCount < 1 {
		return fmt.Errorf("%w: max count %d must be at least 1", ErrInvalidOptions, o.MaxCount)
	}
	if math.IsNaN(o.MinSeparation) || math.IsInf(o.MinSeparation, 0) || o.MinSeparation < 0 {
		return fmt.Errorf("%w: min separation %v must be finite and non-negative",
			ErrInvalidOptions, o.MinSeparation)
	}
	if o.MaxIterations < 0 {
		return fmt.Errorf("%w: max iterations %d is negative", ErrInvalidOptions, o.MaxIterations)
	}
	if o.Rule != RequireAll && o.Rule != ReferenceAny {
		return fmt.Errorf("%w: unknown rule %s", ErrInvalidOptions, o.Rule)
	}
	if o.MinScore != nil && math.IsNaN(*o.MinScore) {
		return fmt.Errorf("%w: min score is NaN", ErrInvalidOptions)
	}
	return nil
}

func (o Options) iterations() int {
	if o.MaxIterations == 0 {
		return DefaultMaxIterations
	}
	return o.MaxIterations
}
