package peaks

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/ironsheep/template-match-mcp/internal/match"
)

// Peak is an accepted match location in surface coordinates: X is the column
// and Y the row of the template's top-left corner.
type Peak struct {
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Score float64 `json:"score"`
}

// Extract runs a single extraction pass over surface. The surface is not
// modified.
func Extract(surface *match.Grid, opts Options) ([]Peak, error) {
	e, err := NewExtractor(surface, opts)
	if err != nil {
		return nil, err
	}
	return e.Extract(), nil
}

// Extractor holds the suppression state of an extraction in progress.
// Successive Extract calls continue where the previous one stopped, so a
// location is never reported twice. An Extractor is not safe for concurrent
// use.
type Extractor struct {
	opts       Options
	rows, cols int
	scores     []float64

	queue      candidates
	suppressed []bool
	accepted   []Peak
	examined   int
}

// NewExtractor validates opts and prepares extraction over a private copy of
// surface. NaN cells are never candidates.
func NewExtractor(surface *match.Grid, opts Options) (*Extractor, error) {
	if surface.Empty() {
		return nil, fmt.Errorf("surface: %w", match.ErrEmptyInput)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	scores := surface.Clone().Data()
	e := &Extractor{
		opts:       opts,
		rows:       surface.Rows(),
		cols:       surface.Cols(),
		scores:     scores,
		suppressed: make([]bool, len(scores)),
	}
	e.queue.scores = scores
	e.queue.idx = make([]int, 0, len(scores))
	for i, v := range scores {
		if !math.IsNaN(v) {
			e.queue.idx = append(e.queue.idx, i)
		}
	}
	heap.Init(&e.queue)
	return e, nil
}

// Extract returns up to MaxCount newly accepted peaks in discovery order,
// examining at most MaxIterations candidates. It returns an empty slice once
// the surface is exhausted.
func (e *Extractor) Extract() []Peak {
	found := []Peak{}
	for budget := e.opts.iterations(); budget > 0 && len(found) < e.opts.MaxCount; budget-- {
		if e.queue.Len() == 0 {
			break
		}
		idx := e.queue.idx[0]
		score := e.scores[idx]
		if e.opts.MinScore != nil && score < *e.opts.MinScore {
			break
		}

		heap.Pop(&e.queue)
		e.suppressed[idx] = true
		e.examined++

		p := Peak{X: idx % e.cols, Y: idx / e.cols, Score: score}
		if e.accepts(p) {
			e.accepted = append(e.accepted, p)
			found = append(found, p)
		}
	}
	return found
}

func (e *Extractor) accepts(p Peak) bool {
	if len(e.accepted) == 0 {
		return true
	}
	for _, q := range e.accepted {
		far := math.Hypot(float64(p.X-q.X), float64(p.Y-q.Y)) > e.opts.MinSeparation
		switch {
		case far && e.opts.Rule == ReferenceAny:
			return true
		case !far && e.opts.Rule == RequireAll:
			return false
		}
	}
	return e.opts.Rule == RequireAll
}

// Accepted returns every peak accepted so far, across all Extract calls.
func (e *Extractor) Accepted() []Peak {
	out := make([]Peak, len(e.accepted))
	copy(out, e.accepted)
	return out
}

// Suppressed reports whether the cell at row y, column x has been examined.
// Out-of-range coordinates report false.
func (e *Extractor) Suppressed(y, x int) bool {
	if y < 0 || y >= e.rows || x < 0 || x >= e.cols {
		return false
	}
	return e.suppressed[y*e.cols+x]
}

// Examined returns the number of candidates consumed so far.
func (e *Extractor) Examined() int {
	return e.examined
}

// Apply writes 0 into dst at every suppressed cell. dst must have the same
// dimensions as the surface the Extractor was built from.
func (e *Extractor) Apply(dst *match.Grid) error {
	if dst.Rows() != e.rows || dst.Cols() != e.cols {
		return fmt.Errorf("%w: destination %dx%d, surface %dx%d",
			match.ErrInvalidDimensions, dst.Rows(), dst.Cols(), e.rows, e.cols)
	}
	data := dst.Data()
	for i, s := range e.suppressed {
		if s {
			data[i] = 0
		}
	}
	return nil
}

// candidates is a max-heap of surface indices ordered by score, lower index
// first on ties.
type candidates struct {
	scores []float64
	idx    []int
}

func (c candidates) Len() int { return len(c.idx) }

func (c candidates) Less(i, j int) bool {
	a, b := c.idx[i], c.idx[j]
	if c.scores[a] != c.scores[b] {
		return c.scores[a] > c.scores[b]
	}
	return a < b
}

func (c candidates) Swap(i, j int) { c.idx[i], c.idx[j] = c.idx[j], c.idx[i] }

func (c *candidates) Push(x any) { c.idx = append(c.idx, x.(int)) }

func (c *candidates) Pop() any {
	n := len(c.idx)
	v := c.idx[n-1]
	c.idx = c.idx[:n-1]
	return v
}
