package imaging

import (
	"fmt"
	"image"
	"strings"

	"github.com/anthonynsimon/bild/effect"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/template-match-mcp/internal/match"
)

// Grayscale selects how a color image is reduced to one intensity channel.
type Grayscale int

const (
	// Luma is ITU-R BT.601 luma (0.299R + 0.587G + 0.114B) scaled to [0, 1].
	Luma Grayscale = iota + 1

	// Lightness is CIE L* (D65) in [0, 100], a perceptually uniform scale.
	Lightness
)

// BT.601 luma weights.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

func (g Grayscale) String() string {
	switch g {
	case Luma:
		return "luma"
	case Lightness:
		return "lightness"
	default:
		return fmt.Sprintf("Grayscale(%d)", int(g))
	}
}

// ParseGrayscale converts a mode name into a Grayscale. An empty name selects
// Luma.
func ParseGrayscale(name string) (Grayscale, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "luma":
		return Luma, nil
	case "lightness", "l*":
		return Lightness, nil
	default:
		return 0, fmt.Errorf("unknown grayscale mode: %q", name)
	}
}

// ToGrid converts img into a grid of intensities, one cell per pixel.
// Row 0 is the top of img.Bounds() and column 0 its left edge, whatever
// Bounds().Min is.
func ToGrid(img image.Image, mode Grayscale) (*match.Grid, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("image: %w", match.ErrEmptyInput)
	}
	switch mode {
	case Luma:
		return lumaGrid(img), nil
	case Lightness:
		return lightnessGrid(img), nil
	default:
		return nil, fmt.Errorf("unsupported grayscale mode %s", mode)
	}
}

func lumaGrid(img image.Image) *match.Grid {
	gray := effect.GrayscaleWithWeights(img, lumaR, lumaG, lumaB)
	b := gray.Bounds()
	g := match.NewGrid(b.Dy(), b.Dx())
	for y := 0; y < b.Dy(); y++ {
		pix := gray.Pix[y*gray.Stride:]
		row := g.Row(y)
		for x := range row {
			row[x] = float64(pix[x*4]) / 255
		}
	}
	return g
}

func lightnessGrid(img image.Image) *match.Grid {
	b := img.Bounds()
	g := match.NewGrid(b.Dy(), b.Dx())
	for y := 0; y < b.Dy(); y++ {
		row := g.Row(y)
		for x := range row {
			// Fully transparent pixels come back black.
			c, _ := colorful.MakeColor(img.At(b.Min.X+x, b.Min.Y+y))
			l, _, _ := c.Lab()
			row[x] = l * 100
		}
	}
	return g
}
