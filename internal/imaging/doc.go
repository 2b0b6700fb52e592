// Package imaging turns image files into the intensity grids that package
// match works on.
//
// Images are decoded once and kept in an ImageCache. ToGrid reduces a decoded
// image to a single channel, and CropGrid does the same for a rectangular
// region, which is how a template is cut out of a reference image.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner, X growing
// rightward and Y downward. In a grid, row r is image row Y=r and column c is
// image column X=c, both counted from img.Bounds().Min. A Region is inclusive
// at (X1,Y1) and exclusive at (X2,Y2).
//
// # Grayscale Modes
//
//   - Luma: BT.601 weighted sum of the 8-bit channels, scaled to [0, 1]
//   - Lightness: CIE L* under D65, in [0, 100]
//
// Normalized correlation ignores brightness offset and contrast scale, so the
// choice of range does not affect scores, but the two modes weigh hues
// differently.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Conversions do not modify their input.
package imaging
