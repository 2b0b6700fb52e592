package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/template-match-mcp/internal/match"
)

// Region is a rectangle in image pixel coordinates. (X1, Y1) is inclusive and
// (X2, Y2) exclusive.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func (r Region) rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// Validate checks that r is non-empty and lies inside bounds.
func (r Region) Validate(bounds image.Rectangle) error {
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return fmt.Errorf("invalid region: x1 must be < x2, y1 must be < y2")
	}
	if r.X1 < bounds.Min.X || r.Y1 < bounds.Min.Y || r.X2 > bounds.Max.X || r.Y2 > bounds.Max.Y {
		return fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			r.X1, r.Y1, r.X2, r.Y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	return nil
}

// CropGrid cuts region out of img and converts it with mode. It is how a
// template is taken from the image it will be matched against.
func CropGrid(img image.Image, region Region, mode Grayscale) (*match.Grid, error) {
	if img == nil {
		return nil, fmt.Errorf("image: %w", match.ErrEmptyInput)
	}
	if err := region.Validate(img.Bounds()); err != nil {
		return nil, err
	}
	return ToGrid(imaging.Crop(img, region.rect()), mode)
}
