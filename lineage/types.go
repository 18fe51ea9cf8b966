// Package lineage reconstructs the background forest: which genotype arose
// inside the genetic background of which other genotype.
//
// Three pairwise statistics drive the inference:
//
//   - additive    — could the two genotypes coexist, or do their frequencies
//     sum significantly over 1 (two disjoint, additive lineages)?
//   - subtractive — do the two series track each other closely enough to
//     plausibly be the same background?
//   - derivative  — when the subtractive evidence is inconclusive, does the
//     covariance of the two series show them rising together?
//
// Every non-root genotype receives exactly one parent; genotypes with no
// plausible parent fall back to the synthetic root genotype-0. The produced
// edge set is validated to be an acyclic forest rooted at genotype-0.
package lineage

import "errors"

// Sentinel errors.
var (
	// ErrCyclicLineage indicates the inferred parent pointers contain a cycle
	// or a chain that never reaches genotype-0. This is an internal
	// invariant violation, not an expected data condition.
	ErrCyclicLineage = errors.New("lineage: parent chain does not terminate at genotype-0")
	// ErrUnknownGenotype indicates a lookup for a genotype absent from the forest.
	ErrUnknownGenotype = errors.New("lineage: unknown genotype")
)

// Options carries the background-check cutoffs.
//
// The double/single cutoffs are consumed only by the legacy threshold
// variants of the checks; the statistical variants test at the fixed 0.05
// level. They are kept here so callers configuring the legacy behavior and
// the statistical behavior share one record.
type Options struct {
	// DetectionCutoff is the frequency above which a genotype counts as
	// observed at a timepoint.
	DetectionCutoff float64

	AdditiveDoubleCutoff    float64
	AdditiveSingleCutoff    float64
	SubtractiveDoubleCutoff float64
	SubtractiveSingleCutoff float64

	// DerivativeDetectionCutoff bounds the window used by the legacy
	// derivative check; DerivativeCheckCutoff is the minimum covariance
	// accepted as evidence that two genotypes rise on the same background.
	DerivativeDetectionCutoff float64
	DerivativeCheckCutoff     float64
}

// DefaultOptions returns the reference cutoffs: detection 0.03, additive
// 1.03/1.15, subtractive -0.03/-0.15, derivative 0.01/0.01.
func DefaultOptions() Options {
	return Options{
		DetectionCutoff:           0.03,
		AdditiveDoubleCutoff:      1.03,
		AdditiveSingleCutoff:      1.15,
		SubtractiveDoubleCutoff:   -0.03,
		SubtractiveSingleCutoff:   -0.15,
		DerivativeDetectionCutoff: 0.01,
		DerivativeCheckCutoff:     0.01,
	}
}
