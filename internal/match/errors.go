package match

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions is returned when the template does not fit inside
	// the image along some axis.
	ErrInvalidDimensions = errors.New("template does not fit inside image")

	// ErrEmptyInput is returned when an image, template or surface has no
	// elements.
	ErrEmptyInput = errors.New("empty input")

	// ErrUnsupportedMethod is returned for a method selector outside the
	// known set.
	ErrUnsupportedMethod = errors.New("unsupported match method")

	// ErrNonFinite is returned when an input holds NaN or an infinity.
	ErrNonFinite = errors.New("input contains non-finite value")
)

// DimensionError reports a template that is larger than the image.
// It matches ErrInvalidDimensions with errors.Is.
type DimensionError struct {
	ImageRows, ImageCols       int
	TemplateRows, TemplateCols int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("template %dx%d does not fit inside image %dx%d",
		e.TemplateRows, e.TemplateCols, e.ImageRows, e.ImageCols)
}

func (e *DimensionError) Unwrap() error {
	return ErrInvalidDimensions
}
