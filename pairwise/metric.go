package pairwise

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/clonalstack/clonaltrace/timeseries"
)

// Similarity compares two trajectories over the contiguous window where at
// least one exceeds dlimit.
//
// When both trajectories sweep past flimit the comparison short-circuits
// through FixedOverlap: two series fixed over the same timepoints are the
// same lineage (p = 1), anything else is maximally dissimilar (p = 0).
//
// Otherwise the pair is modelled as binomial sampling noise around the pair
// mean m(t): each point contributes variance m(1-m), sigma is the standard
// error of the mean difference, sqrt(meanVariance / n), and the p-value is
// erfc(X) for X = meanDiff / (sqrt2 * sigma). Identical series therefore
// score exactly 1.
//
// An empty window yields the neutral Calculation{Pvalue: 0}: no shared
// signal, never an error.
func Similarity(left, right timeseries.Series, leftID, rightID string, dlimit, flimit float64) Calculation {
	calc := Calculation{Left: leftID, Right: rightID}

	if left.Fixed(flimit) && right.Fixed(flimit) {
		switch ov := FixedOverlap(left, right, flimit); {
		case ov == 0:
			calc.Pvalue = 1
		default: // disjoint or partial fixed regions, including the NaN case
			calc.Pvalue = 0
		}
		_, calc.Sigma, calc.MeanDifference = windowStats(left, right, dlimit, flimit)

		return calc
	}

	var n int
	n, calc.Sigma, calc.MeanDifference = windowStats(left, right, dlimit, 0)
	if n == 0 {
		return calc
	}
	if calc.Sigma == 0 {
		if calc.MeanDifference == 0 {
			calc.Pvalue = 1
		}

		return calc
	}
	x := calc.MeanDifference / (math.Sqrt2 * calc.Sigma)
	calc.Pvalue = math.Erfc(x)

	return calc
}

// FixedOverlap is the strict comparison for two swept trajectories: 0 when
// both series exceed flimit over exactly the same timepoints, 1 when the
// fixed regions differ, NaN when either series never fixes (no signal).
func FixedOverlap(left, right timeseries.Series, flimit float64) float64 {
	var leftFixed, rightFixed, shared int
	for i := range left.Values {
		l := left.Values[i] > flimit
		r := right.Values[i] > flimit
		if l {
			leftFixed++
		}
		if r {
			rightFixed++
		}
		if l && r {
			shared++
		}
	}
	if leftFixed == 0 || rightFixed == 0 {
		return math.NaN()
	}
	if shared == leftFixed && shared == rightFixed {
		return 0
	}

	return 1
}

// BulkPopulate computes and stores the metric for every unordered pair of
// table rows not yet present in the cache.
func BulkPopulate(cache *Cache, table *timeseries.Table, dlimit, flimit float64) {
	ids := table.IDs()
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := ids[i], ids[j]
			key := NewKey(a, b)
			cache.GetOrCompute(key, func() Calculation {
				left, _ := table.Row(a)
				right, _ := table.Row(b)

				return Similarity(left, right, a, b, dlimit, flimit)
			})
		}
	}
}

func windowStats(left, right timeseries.Series, dlimit, flimit float64) (n int, sigma, meanDiff float64) {
	l, r := timeseries.Window(left, right, dlimit, flimit)
	n = l.Len()
	if n == 0 {
		return 0, 0, 0
	}

	variances := make([]float64, n)
	diffs := make([]float64, n)
	for i := range l.Values {
		m := (l.Values[i] + r.Values[i]) / 2
		variances[i] = m * (1 - m)
		diffs[i] = math.Abs(l.Values[i] - r.Values[i])
	}
	meanVar := floats.Sum(variances) / float64(n)
	sigma = math.Sqrt(meanVar / float64(n))
	meanDiff = floats.Sum(diffs) / float64(n)

	return n, sigma, meanDiff
}
