package lineage

import "github.com/clonalstack/clonaltrace/timeseries"

// Legacy threshold variants of the background checks. These predate the
// statistical tests and are the only consumers of the double/single cutoff
// parameters; they are retained for comparison runs against historical
// results.

// CheckAdditiveLegacy reports whether the pair sum exceeds doubleCutoff or
// singleCutoff at any timepoint where the sum itself clears dlimit.
func CheckAdditiveLegacy(left, right timeseries.Series, dlimit, doubleCutoff, singleCutoff float64) bool {
	for i := range left.Values {
		sum := left.Values[i] + right.Values[i]
		if sum <= dlimit {
			continue
		}
		if sum > doubleCutoff || sum > singleCutoff {
			return true
		}
	}

	return false
}

// CheckSubtractiveLegacy reports whether one genotype runs sufficiently
// below the other: the negated absolute difference falls under doubleCutoff
// at two or more timepoints, or under singleCutoff at least once.
func CheckSubtractiveLegacy(left, right timeseries.Series, doubleCutoff, singleCutoff float64) bool {
	var double, single int
	for i := range left.Values {
		diff := right.Values[i] - left.Values[i]
		if diff < 0 {
			diff = -diff
		}
		diff = -diff
		if diff < doubleCutoff {
			double++
		}
		if diff < singleCutoff {
			single++
		}
	}

	return double > 1 || single > 0
}

// CheckDerivativeLegacy is the windowed derivative correlation: the dot
// product of the forward differences of both series over the region where
// both are detected. Positive values mean the derivatives correlate (same
// background), negative values anti-correlate.
func CheckDerivativeLegacy(left, right timeseries.Series, dlimit float64) float64 {
	start, stop := -1, -1
	for i := range left.Values {
		if left.Values[i] > dlimit && right.Values[i] > dlimit {
			if start < 0 {
				start = i
			}
			stop = i
		}
	}
	if start < 0 || stop-start < 1 {
		return 0
	}

	var delta float64
	for i := start; i < stop; i++ {
		dl := left.Values[i+1] - left.Values[i]
		dr := right.Values[i+1] - right.Values[i]
		delta += dl * dr
	}

	return delta
}
