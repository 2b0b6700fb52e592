package match

// summedArea holds summed-area tables of an image after a constant shift.
// Both tables have a zero first row and column, so the table is
// (rows+1)×(cols+1) and any rectangle sum takes four lookups.
type summedArea struct {
	stride int
	sum    []float64
	sq     []float64

	// bound is an upper estimate of the absolute rounding error of a
	// rectangle taken from the squared table.
	bound float64
}

// epsilon is the float64 unit roundoff.
const epsilon = 1.0 / (1 << 52)

func newSummedArea(g *Grid, shift float64) *summedArea {
	stride := g.cols + 1
	t := &summedArea{
		stride: stride,
		sum:    make([]float64, (g.rows+1)*stride),
		sq:     make([]float64, (g.rows+1)*stride),
	}
	for r := 1; r <= g.rows; r++ {
		var rowSum, rowSq float64
		src := g.data[(r-1)*g.cols : r*g.cols]
		for c := 1; c <= g.cols; c++ {
			v := src[c-1] - shift
			rowSum += v
			rowSq += v * v
			t.sum[r*stride+c] = t.sum[(r-1)*stride+c] + rowSum
			t.sq[r*stride+c] = t.sq[(r-1)*stride+c] + rowSq
		}
	}
	total := t.sq[len(t.sq)-1]
	t.bound = float64(g.rows+g.cols+4) * epsilon * total
	return t
}

func rect(table []float64, stride, row, col, h, w int) float64 {
	top := row * stride
	bottom := (row + h) * stride
	return table[bottom+col+w] - table[top+col+w] - table[bottom+col] + table[top+col]
}

// rectSum returns the shifted sum over the h×w block at (row, col).
func (t *summedArea) rectSum(row, col, h, w int) float64 {
	return rect(t.sum, t.stride, row, col, h, w)
}

// rectSq returns the shifted sum of squares over the h×w block at (row, col).
func (t *summedArea) rectSq(row, col, h, w int) float64 {
	return rect(t.sq, t.stride, row, col, h, w)
}
