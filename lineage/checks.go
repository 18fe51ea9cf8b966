package lineage

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/clonalstack/clonaltrace/timeseries"
)

// CheckAdditive reports whether left and right could plausibly be nested
// lineages rather than two disjoint ones. It one-sample-tests the
// elementwise sum of the pair, over timepoints where at least one genotype
// exceeds dlimit, against a mean of 1.0; the two-tailed p-value is halved to
// a one-tailed test. The check fails (returns false) only when the sum is
// significantly over 1 at the 0.05 level.
//
// doubleCutoff and singleCutoff are accepted for interface compatibility
// with CheckAdditiveLegacy; the statistical test does not consume them.
func CheckAdditive(left, right timeseries.Series, dlimit, doubleCutoff, singleCutoff float64) bool {
	_, _ = doubleCutoff, singleCutoff
	l, r := timeseries.DetectedPoints(left, right, dlimit)
	sums := make([]float64, l.Len())
	for i := range sums {
		sums[i] = l.Values[i] + r.Values[i]
	}
	_, pvalue := oneSampleTest(sums, 1.0)
	pvalue /= 2

	return !(pvalue <= 0.05)
}

// CheckSubtractive reports whether the two genotypes track each other
// closely enough to plausibly share a background: a one-sample test of the
// elementwise absolute difference against 0, true when the difference is not
// significant (p > 0.05).
//
// doubleCutoff and singleCutoff are accepted for interface compatibility
// with CheckSubtractiveLegacy; the statistical test does not consume them.
func CheckSubtractive(left, right timeseries.Series, dlimit, doubleCutoff, singleCutoff float64) bool {
	_, _ = doubleCutoff, singleCutoff
	l, r := timeseries.DetectedPoints(left, right, dlimit)
	diffs := make([]float64, l.Len())
	for i := range diffs {
		diffs[i] = math.Abs(l.Values[i] - r.Values[i])
	}
	_, pvalue := oneSampleTest(diffs, 0)

	return pvalue > 0.05
}

// CheckDerivative returns the covariance of the two series over the region
// where at least one exceeds dlimit. A positive value is evidence the pair
// rises together on one background; a strongly negative value marks one
// lineage replacing the other.
func CheckDerivative(left, right timeseries.Series, dlimit float64) float64 {
	l, r := timeseries.DetectedPoints(left, right, dlimit)
	if l.Len() < 2 {
		return 0
	}

	return stat.Covariance(l.Values, r.Values, nil)
}

// ApplyChecks evaluates the three statistics for one ordered pair, skipping
// the derivative when the subtractive evidence already settles the pair.
// hasDelta reports whether delta was computed.
func ApplyChecks(left, right timeseries.Series, opts Options) (additive, subtractive bool, delta float64, hasDelta bool) {
	additive = CheckAdditive(left, right, opts.DetectionCutoff, opts.AdditiveDoubleCutoff, opts.AdditiveSingleCutoff)
	subtractive = CheckSubtractive(left, right, opts.DetectionCutoff, opts.SubtractiveDoubleCutoff, opts.SubtractiveSingleCutoff)
	if !subtractive {
		delta = CheckDerivative(left, right, opts.DerivativeDetectionCutoff)
		hasDelta = true
	}

	return additive, subtractive, delta, hasDelta
}

// oneSampleTest runs a one-sample location test of values against mu and
// returns the statistic with its two-tailed p-value. The statistic is the
// usual t ratio; the p-value uses the normal approximation. Degenerate
// inputs (fewer than two points) yield the neutral (0, 0), which downstream
// checks read as "not significant" - the comparison stays total.
func oneSampleTest(values []float64, mu float64) (statistic, pvalue float64) {
	n := len(values)
	if n < 2 {
		return 0, 0
	}
	mean := stat.Mean(values, nil)
	sd := stat.StdDev(values, nil)
	if sd == 0 {
		if mean == mu {
			return 0, 1
		}

		return math.Inf(sign(mean - mu)), 0
	}
	statistic = (mean - mu) / (sd / math.Sqrt(float64(n)))
	pvalue = 2 * distuv.UnitNormal.Survival(math.Abs(statistic))

	return statistic, pvalue
}

func sign(x float64) int {
	if x < 0 {
		return -1
	}

	return 1
}
