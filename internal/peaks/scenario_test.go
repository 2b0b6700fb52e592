package peaks

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/template-match-mcp/internal/match"
)

// triangleTarget builds an n×n pattern that is a lower triangle of ones plus
// its vertical mirror, so values are 0, 1 or 2.
func triangleTarget(n int) *match.Grid {
	g := match.NewGrid(n, n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			var v float64
			if c <= r {
				v++
			}
			if c <= n-1-r {
				v++
			}
			g.Set(r, c, v)
		}
	}
	return g
}

// scene places target at each origin inside a size×size zero image and adds
// Gaussian noise with the given standard deviation.
func scene(size int, target *match.Grid, origins [][2]int, sigma float64, seed int64) *match.Grid {
	img := match.NewGrid(size, size)
	for _, o := range origins {
		for r := 0; r < target.Rows(); r++ {
			copy(img.Row(o[0] + r)[o[1]:], target.Row(r))
		}
	}
	rng := rand.New(rand.NewSource(seed))
	for i := range img.Data() {
		img.Data()[i] += rng.NormFloat64() * sigma
	}
	return img
}

func sortPeaks(ps []Peak) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Y != ps[j].Y {
			return ps[i].Y < ps[j].Y
		}
		return ps[i].X < ps[j].X
	})
}

func runScene(t *testing.T, size, targetSize int, origins [][2]int) {
	t.Helper()
	target := triangleTarget(targetSize)
	img := scene(size, target, origins, 0.1, 42)

	surface, err := match.Match(img, target, match.NormCorr)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}

	for _, rule := range []AcceptRule{RequireAll, ReferenceAny} {
		got, err := Extract(surface, Options{MaxCount: len(origins), MinSeparation: 5, Rule: rule})
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}

		var want []Peak
		for _, o := range origins {
			want = append(want, Peak{X: o[1], Y: o[0]})
		}
		sortPeaks(got)
		if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b Peak) bool {
			return a.X == b.X && a.Y == b.Y
		})); diff != "" {
			t.Errorf("%s: peak locations mismatch (-want +got):\n%s", rule, diff)
		}
		for _, p := range got {
			if p.Score < 0.9 {
				t.Errorf("%s: peak %+v scores lower than expected", rule, p)
			}
		}
	}
}

func TestScene_TwoTargets(t *testing.T) {
	if testing.Short() {
		t.Skip("full-size scene is slow")
	}
	runScene(t, 400, 100, [][2]int{{50, 50}, {200, 200}})
}

func TestScene_TwoTargetsSmall(t *testing.T) {
	runScene(t, 120, 30, [][2]int{{15, 15}, {60, 60}})
}
