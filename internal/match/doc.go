// Package match computes normalized cross-correlation response surfaces for
// single-channel template matching.
//
// Given an image of H×W intensities and a template of h×w intensities
// (h ≤ H, w ≤ W), Match scores every placement of the template inside the
// image and returns a (H-h+1)×(W-w+1) Grid of scores. The score at (row, col)
// belongs to the placement whose top-left corner sits on image pixel
// (row, col).
//
// # Score
//
// The only method is NormCorr, the Pearson correlation coefficient between the
// image patch and the template, each treated as a flat vector:
//
//	Σ (P - mean P)(T - mean T) / sqrt( Σ(P - mean P)² · Σ(T - mean T)² )
//
// Scores lie in [-1, 1]. A patch that is an affine copy a·T + b of the template
// scores 1 for a > 0 and -1 for a < 0, whatever its brightness and contrast.
//
// # Zero Variance
//
// When the template or a patch is constant the formula divides zero by zero.
// Such placements score exactly 0. A variance is treated as zero when it is at
// most 1e-12 times the sum of squares of the values it was computed from, which
// absorbs the rounding left behind by a constant region.
//
// # Algorithm
//
// The image is shifted by its global mean and summarized in two summed-area
// tables (values and squared values), so each patch mean and variance costs
// four lookups. The numerator is a direct dot product with the zero-mean
// template, O(h·w) per placement. Patches whose table variance falls inside
// the tables' rounding bound are measured again with an exact two-pass loop
// before the zero-variance decision is made.
//
// Surface rows are independent and are split across goroutines; every worker
// owns a disjoint row range of the output, so no locking is involved and the
// result does not depend on scheduling.
//
// # Errors
//
// Inputs are validated before any work starts:
//   - ErrEmptyInput: the image or the template has no elements
//   - ErrUnsupportedMethod: the method selector is not a known Method
//   - ErrInvalidDimensions: the template is taller or wider than the image
//   - ErrNonFinite: an input value is NaN or ±Inf
//
// No partial surface is returned on failure.
package match
