package match

import (
	"fmt"
	"math"
)

// Grid is a row-major 2D array of float64 values backed by a single slice.
//
// Grids carry images, templates and response surfaces. Row r occupies
// Data()[r*Cols() : (r+1)*Cols()].
type Grid struct {
	rows int
	cols int
	data []float64
}

// NewGrid returns a zero-filled grid. Non-positive dimensions yield an empty
// grid.
func NewGrid(rows, cols int) *Grid {
	if rows <= 0 || cols <= 0 {
		return &Grid{}
	}
	return &Grid{
		rows: rows,
		cols: cols,
		data: make([]float64, rows*cols),
	}
}

// GridFromRows copies a slice of equal-length rows into a new grid.
func GridFromRows(rows [][]float64) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return &Grid{}, nil
	}
	cols := len(rows[0])
	g := NewGrid(len(rows), cols)
	for r, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d values, want %d", r, len(row), cols)
		}
		copy(g.data[r*cols:], row)
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	if g == nil {
		return 0
	}
	return g.rows
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	if g == nil {
		return 0
	}
	return g.cols
}

// Len returns the number of elements.
func (g *Grid) Len() int {
	return g.Rows() * g.Cols()
}

// Empty reports whether the grid has no elements. A nil grid is empty.
func (g *Grid) Empty() bool {
	return g.Len() == 0
}

// Data returns the backing slice. Writes through it modify the grid.
func (g *Grid) Data() []float64 {
	if g == nil {
		return nil
	}
	return g.data
}

// At returns the value at (row, col).
func (g *Grid) At(row, col int) float64 {
	return g.data[row*g.cols+col]
}

// Set stores v at (row, col).
func (g *Grid) Set(row, col int, v float64) {
	g.data[row*g.cols+col] = v
}

// Row returns row r as a slice view into the grid.
func (g *Grid) Row(r int) []float64 {
	return g.data[r*g.cols : (r+1)*g.cols]
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	if g == nil {
		return &Grid{}
	}
	c := &Grid{rows: g.rows, cols: g.cols}
	if g.data != nil {
		c.data = make([]float64, len(g.data))
		copy(c.data, g.data)
	}
	return c
}

// Sub copies the h×w block whose top-left corner is (row, col).
func (g *Grid) Sub(row, col, h, w int) (*Grid, error) {
	if h <= 0 || w <= 0 {
		return nil, fmt.Errorf("invalid block size %dx%d", h, w)
	}
	if row < 0 || col < 0 || row+h > g.Rows() || col+w > g.Cols() {
		return nil, fmt.Errorf("block (%d,%d) %dx%d outside grid %dx%d",
			row, col, h, w, g.Rows(), g.Cols())
	}
	s := NewGrid(h, w)
	for r := 0; r < h; r++ {
		copy(s.Row(r), g.data[(row+r)*g.cols+col:(row+r)*g.cols+col+w])
	}
	return s, nil
}

// finite reports whether every value is a finite number.
func (g *Grid) finite() bool {
	for _, v := range g.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Summary describes the value range of a grid.
type Summary struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

// Summarize returns the minimum, maximum and mean of g. An empty grid yields
// the zero Summary.
func Summarize(g *Grid) Summary {
	if g.Empty() {
		return Summary{}
	}
	s := Summary{Min: math.Inf(1), Max: math.Inf(-1)}
	var sum float64
	for _, v := range g.data {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
		sum += v
	}
	s.Mean = sum / float64(len(g.data))
	return s
}

// Best returns the position and value of the largest element. Ties go to the
// first element in row-major order. An empty grid returns (-1, -1, NaN).
func Best(g *Grid) (row, col int, value float64) {
	if g.Empty() {
		return -1, -1, math.NaN()
	}
	best := -1
	for i, v := range g.data {
		if math.IsNaN(v) {
			continue
		}
		if best < 0 || v > g.data[best] {
			best = i
		}
	}
	if best < 0 {
		return -1, -1, math.NaN()
	}
	return best / g.cols, best % g.cols, g.data[best]
}
