package match

import (
	"fmt"
	"math"

	"github.com/anthonynsimon/bild/parallel"
)

// varianceTolerance is the relative size below which a variance counts as
// zero: var ≤ varianceTolerance · Σx².
const varianceTolerance = 1e-12

// fallbackFactor scales the summed-area rounding bound into the threshold
// under which a patch is re-measured exactly.
const fallbackFactor = 1e6

// Option configures Match.
type Option func(*config)

type config struct {
	sequential bool
}

// WithSequential computes the surface on the calling goroutine only.
func WithSequential() Option {
	return func(c *config) {
		c.sequential = true
	}
}

// Match computes the response surface of template over image.
//
// Parameters:
//   - image: H×W intensities. Not modified.
//   - template: h×w intensities with h ≤ H and w ≤ W. Not modified.
//   - method: scoring function; NormCorr is the only one.
//
// Returns a new (H-h+1)×(W-w+1) grid owned by the caller. Value (r, c) is the
// score of the template with its top-left corner on image pixel (r, c).
//
// # Errors
//
//   - ErrEmptyInput if either grid has no elements
//   - ErrUnsupportedMethod if method is not valid
//   - ErrInvalidDimensions (as *DimensionError) if the template does not fit
//   - ErrNonFinite if either grid holds NaN or ±Inf
func Match(image, template *Grid, method Method, opts ...Option) (*Grid, error) {
	if image.Empty() {
		return nil, fmt.Errorf("image: %w", ErrEmptyInput)
	}
	if template.Empty() {
		return nil, fmt.Errorf("template: %w", ErrEmptyInput)
	}
	if !method.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}
	if template.rows > image.rows || template.cols > image.cols {
		return nil, &DimensionError{
			ImageRows:    image.rows,
			ImageCols:    image.cols,
			TemplateRows: template.rows,
			TemplateCols: template.cols,
		}
	}
	if !image.finite() {
		return nil, fmt.Errorf("image: %w", ErrNonFinite)
	}
	if !template.finite() {
		return nil, fmt.Errorf("template: %w", ErrNonFinite)
	}

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	return newMatcher(image, template).run(cfg), nil
}

// matcher holds the per-call state shared by all surface rows. It is read-only
// once built.
type matcher struct {
	img   *Grid
	h, w  int
	n     float64
	shift float64
	sat   *summedArea

	tz   []float64 // template minus its mean
	tVar float64   // Σ tz², zero when the template is constant

	fallback float64
}

func newMatcher(image, template *Grid) *matcher {
	m := &matcher{
		img: image,
		h:   template.rows,
		w:   template.cols,
		n:   float64(template.Len()),
	}
	m.tz, m.tVar = centered(template.data)
	if m.tVar == 0 {
		return m
	}
	m.shift = mean(image.data)
	m.sat = newSummedArea(image, m.shift)
	m.fallback = fallbackFactor * m.sat.bound
	return m
}

func (m *matcher) run(cfg config) *Grid {
	out := NewGrid(m.img.rows-m.h+1, m.img.cols-m.w+1)
	if m.tVar == 0 {
		return out
	}

	scoreRows := func(start, end int) {
		for r := start; r < end; r++ {
			row := out.Row(r)
			for c := range row {
				row[c] = m.score(r, c)
			}
		}
	}

	if cfg.sequential {
		scoreRows(0, out.rows)
	} else {
		parallel.Line(out.rows, scoreRows)
	}
	return out
}

// score returns the normalized correlation of the placement at (row, col).
func (m *matcher) score(row, col int) float64 {
	s := m.sat.rectSum(row, col, m.h, m.w)
	sq := m.sat.rectSq(row, col, m.h, m.w)
	pMean := s / m.n
	pVar := sq - s*pMean

	// Σx² of the unshifted patch.
	rawSq := sq + m.shift*(2*s+m.n*m.shift)
	if pVar <= m.fallback+varianceTolerance*rawSq {
		return m.exactScore(row, col)
	}

	off := m.shift + pMean
	var dot float64
	k := 0
	for i := 0; i < m.h; i++ {
		base := (row+i)*m.img.cols + col
		for _, p := range m.img.data[base : base+m.w] {
			dot += (p - off) * m.tz[k]
			k++
		}
	}
	return clampScore(dot / math.Sqrt(pVar*m.tVar))
}

// exactScore measures the patch with a two-pass mean and variance. It is used
// for patches whose variance is too small to trust the summed-area tables.
func (m *matcher) exactScore(row, col int) float64 {
	var sum, rawSq float64
	for i := 0; i < m.h; i++ {
		base := (row+i)*m.img.cols + col
		for _, p := range m.img.data[base : base+m.w] {
			sum += p
			rawSq += p * p
		}
	}
	pMean := sum / m.n

	var pVar, dot float64
	k := 0
	for i := 0; i < m.h; i++ {
		base := (row+i)*m.img.cols + col
		for _, p := range m.img.data[base : base+m.w] {
			d := p - pMean
			pVar += d * d
			dot += d * m.tz[k]
			k++
		}
	}
	if pVar <= varianceTolerance*rawSq {
		return 0
	}
	return clampScore(dot / math.Sqrt(pVar*m.tVar))
}

// centered returns values minus their mean and the sum of squared deviations.
// The sum is reported as zero when the values are constant.
func centered(values []float64) ([]float64, float64) {
	mu := mean(values)
	out := make([]float64, len(values))
	var ss, rawSq float64
	for i, v := range values {
		d := v - mu
		out[i] = d
		ss += d * d
		rawSq += v * v
	}
	if ss <= varianceTolerance*rawSq {
		return out, 0
	}
	return out, ss
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func clampScore(s float64) float64 {
	switch {
	case s > 1:
		return 1
	case s < -1:
		return -1
	default:
		return s
	}
}
