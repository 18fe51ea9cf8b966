package timeseries

// Detection helpers shared by the pairwise metric and the lineage checks.
// Both operate on pairs of series drawn from the same table, so the
// timepoint axes are assumed to be identical.

// Window returns the contiguous slice of both series spanning the first
// through the last timepoint where at least one value exceeds dlimit.
// When flimit is positive, values above flimit are treated as undetected
// while locating the window boundaries (the "fixed" region of a swept
// trajectory carries no comparison signal).
//
// If no timepoint qualifies, both returned series are empty. Never errors.
func Window(left, right Series, dlimit, flimit float64) (Series, Series) {
	first, last := -1, -1
	for i := range left.Values {
		l, r := left.Values[i], right.Values[i]
		if flimit > 0 {
			if l > flimit {
				l = -1
			}
			if r > flimit {
				r = -1
			}
		}
		if l > dlimit || r > dlimit {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return Series{}, Series{}
	}

	return slice(left, first, last+1), slice(right, first, last+1)
}

// DetectedPoints drops every timepoint where both values fall below dlimit
// and returns the surviving (possibly non-contiguous) point sets.
func DetectedPoints(left, right Series, dlimit float64) (Series, Series) {
	var lt, lv, rv []float64
	for i := range left.Values {
		if left.Values[i] < dlimit && right.Values[i] < dlimit {
			continue
		}
		lt = append(lt, left.Timepoints[i])
		lv = append(lv, left.Values[i])
		rv = append(rv, right.Values[i])
	}

	return Series{Timepoints: lt, Values: lv}, Series{Timepoints: lt, Values: rv}
}

// Overlap counts the timepoints where both series exceed dlimit.
func Overlap(left, right Series, dlimit float64) int {
	var n int
	for i := range left.Values {
		if left.Values[i] > dlimit && right.Values[i] > dlimit {
			n++
		}
	}

	return n
}

func slice(s Series, lo, hi int) Series {
	return Series{Timepoints: s.Timepoints[lo:hi], Values: s.Values[lo:hi]}
}
