package pairwise_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clonalstack/clonaltrace/pairwise"
	"github.com/clonalstack/clonaltrace/timeseries"
)

func series(vals ...float64) timeseries.Series {
	tps := make([]float64, len(vals))
	for i := range tps {
		tps[i] = float64(i)
	}

	return timeseries.Series{Timepoints: tps, Values: vals}
}

// TestCache_SymmetricKeys verifies Get(a,b) and Get(b,a) address one entry.
func TestCache_SymmetricKeys(t *testing.T) {
	cache := pairwise.NewCache()
	cache.GetOrCompute(pairwise.NewKey("B", "A"), func() pairwise.Calculation {
		return pairwise.Calculation{Left: "A", Right: "B", Pvalue: 0.5}
	})

	ab, ok := cache.Get("A", "B")
	require.True(t, ok)
	ba, ok := cache.Get("B", "A")
	require.True(t, ok)
	assert.Equal(t, ab, ba)
	assert.Equal(t, 1, cache.Len())
}

// TestCache_WriteOnce verifies a present entry is never recomputed.
func TestCache_WriteOnce(t *testing.T) {
	cache := pairwise.NewCache()
	key := pairwise.NewKey("x", "y")

	calls := 0
	fn := func() pairwise.Calculation {
		calls++

		return pairwise.Calculation{Pvalue: 0.25}
	}
	first := cache.GetOrCompute(key, fn)
	second := cache.GetOrCompute(key, fn)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

// TestSimilarity_IdenticalSeries verifies identical trajectories score p = 1.
func TestSimilarity_IdenticalSeries(t *testing.T) {
	a := series(0, 0.1, 0.3, 0.5)
	b := series(0, 0.1, 0.3, 0.5)

	calc := pairwise.Similarity(a, b, "a", "b", 0.03, 0.97)
	assert.Equal(t, 1.0, calc.Pvalue)
	assert.Zero(t, calc.MeanDifference)
}

// TestSimilarity_Symmetric verifies metric(a,b) == metric(b,a) up to labels.
func TestSimilarity_Symmetric(t *testing.T) {
	a := series(0, 0.2, 0.6, 0.4)
	b := series(0, 0.1, 0.3, 0.8)

	ab := pairwise.Similarity(a, b, "a", "b", 0.03, 0.97)
	ba := pairwise.Similarity(b, a, "b", "a", 0.03, 0.97)
	assert.Equal(t, ab.Pvalue, ba.Pvalue)
	assert.Equal(t, ab.Sigma, ba.Sigma)
	assert.Equal(t, ab.MeanDifference, ba.MeanDifference)
}

// TestSimilarity_DivergentPair checks the binomial model against a
// hand-computed value: one shared point with values 0.1 vs 0.9 gives
// sigma 0.5, meanDiff 0.8 and p = erfc(0.8 / (sqrt2 * 0.5)).
func TestSimilarity_DivergentPair(t *testing.T) {
	a := series(0, 0.1)
	b := series(0, 0.9)

	calc := pairwise.Similarity(a, b, "a", "b", 0.03, 0.97)
	assert.InDelta(t, 0.5, calc.Sigma, 1e-12)
	assert.InDelta(t, 0.8, calc.MeanDifference, 1e-12)
	assert.InDelta(t, 0.1097, calc.Pvalue, 1e-3)
}

// TestSimilarity_NoSharedWindow verifies the neutral value for pairs with no
// detected timepoints.
func TestSimilarity_NoSharedWindow(t *testing.T) {
	a := series(0, 0.01, 0)
	b := series(0.02, 0, 0.01)

	calc := pairwise.Similarity(a, b, "a", "b", 0.03, 0.97)
	assert.Zero(t, calc.Pvalue)
	assert.Zero(t, calc.Sigma)
}

// TestFixedOverlap replicates the reference truth table for the strict
// fixed-region comparison at flimit 0.97 (NaN folds to 1).
func TestFixedOverlap(t *testing.T) {
	cases := []struct {
		name        string
		left, right []float64
		want        float64
	}{
		{"identical fixed region", []float64{0, 0, 0, 1, 1, 1, 1, 0}, []float64{0, 0, 0, 1, 1, 1, 1, 0}, 0},
		{"identical short region", []float64{0, 0, 0, 1, 1, 0, 0, 0}, []float64{0, 0, 0, 1, 1, 0, 0, 0}, 0},
		{"one extra fixed point", []float64{0, 0, 0, 1, 1, 1, 1, 0}, []float64{0, 0, 0, 1, 1, 1, 1, 1}, 1},
		{"strict subset", []float64{0, 0, 0, 1, 1, 0, 0, 0}, []float64{1, 1, 1, 1, 1, 1, 1, 1}, 1},
		{"disjoint regions", []float64{0, 0, 0, 1, 1, 0, 0, 0}, []float64{0, 0, 0, 0, 0, 1, 1, 1}, 1},
		{"single point subset", []float64{0, 0, 0, 0, 0, 1, 0, 0}, []float64{0, 0, 0, 0, 0, 1, 1, 1}, 1},
		{"identical no trailing zero", []float64{0, 0, 0, 1, 1, 1, 1}, []float64{0, 0, 0, 1, 1, 1, 1}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := pairwise.FixedOverlap(series(tc.left...), series(tc.right...), 0.97)
			if math.IsNaN(got) {
				got = 1
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

// TestFixedOverlap_NeverFixed verifies NaN when either series never sweeps.
func TestFixedOverlap_NeverFixed(t *testing.T) {
	got := pairwise.FixedOverlap(series(0, 0.5, 0.6), series(0, 1, 1), 0.97)
	assert.True(t, math.IsNaN(got))
}

// TestBulkPopulate verifies all n*(n-1)/2 pairs land in the cache once.
func TestBulkPopulate(t *testing.T) {
	table, err := timeseries.NewTable([]float64{0, 1, 2})
	require.NoError(t, err)
	require.NoError(t, table.AddRow("A", []float64{0, 0.5, 0.9}))
	require.NoError(t, table.AddRow("B", []float64{0, 0.5, 0.9}))
	require.NoError(t, table.AddRow("C", []float64{0.9, 0.5, 0}))

	cache := pairwise.NewCache()
	pairwise.BulkPopulate(cache, table, 0.03, 0.97)

	assert.Equal(t, 3, cache.Len())
	ab, ok := cache.Get("A", "B")
	require.True(t, ok)
	assert.Equal(t, 1.0, ab.Pvalue)

	keys := cache.Keys()
	assert.Equal(t, pairwise.NewKey("A", "B"), keys[0])
	assert.Equal(t, pairwise.NewKey("A", "C"), keys[1])
	assert.Equal(t, pairwise.NewKey("B", "C"), keys[2])
}
