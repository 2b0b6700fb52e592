package match

import (
	"fmt"
	"strings"
)

// Method selects the scoring function used by Match.
//
// The zero value is not a valid method, so a selector that was never set is
// rejected rather than silently defaulted.
type Method int

const (
	// NormCorr is normalized cross-correlation (Pearson correlation between
	// patch and template).
	NormCorr Method = iota + 1
)

// Valid reports whether m is one of the known methods.
func (m Method) Valid() bool {
	return m == NormCorr
}

func (m Method) String() string {
	switch m {
	case NormCorr:
		return "norm-corr"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod converts a method name into a Method. An empty name selects
// NormCorr.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "norm-corr", "normcorr", "normalized-correlation":
		return NormCorr, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedMethod, name)
	}
}
