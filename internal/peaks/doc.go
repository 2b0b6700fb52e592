// Package peaks picks discrete, well-separated match locations out of a
// response surface produced by package match.
//
// Extraction is greedy. Surface cells are visited from the highest score down
// (ties in row-major order) and each visited cell is marked suppressed so it
// is never visited again. A visited cell becomes a Peak when it is far enough
// from the peaks accepted so far:
//
//   - RequireAll: farther than MinSeparation from every accepted peak
//   - ReferenceAny: farther than MinSeparation from at least one accepted peak
//
// The first visited cell is always accepted. Extraction stops once MaxCount
// peaks are found, the per-call candidate budget (MaxIterations) runs out, or
// the next candidate scores below MinScore.
//
// The surface passed in is never written. Suppression is tracked by the
// Extractor; Apply reproduces the classic "zero every visited cell" array for
// callers that want it.
package peaks
