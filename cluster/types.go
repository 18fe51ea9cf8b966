// Package cluster partitions frequency trajectories into genotypes: groups
// of mutations whose trajectories move together closely enough to have been
// inherited on the same background.
//
// Two interchangeable methods are provided, selected by Options.Method:
//
//   - MethodMatlab    — threshold-greedy assignment in table order, seeded
//     optionally by caller-supplied starting genotypes. Deterministic given
//     identical input order and thresholds.
//   - MethodHierarchy — full pairwise distance matrix (1 − similarity),
//     average-linkage agglomerative clustering, dendrogram cut at
//     1 − SimilarityBreakpoint. Also returns the linkage matrix for
//     diagnostics.
//
// The method-dependent extra output is modelled as a tagged Result variant
// (AssignmentOnly vs AssignmentWithLinkage), not a nullable everywhere.
package cluster

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Method selects the clustering algorithm.
type Method string

const (
	// MethodMatlab is the threshold-greedy algorithm.
	MethodMatlab Method = "matlab"
	// MethodHierarchy is agglomerative hierarchical clustering.
	MethodHierarchy Method = "hierarchy"
)

// Sentinel errors.
var (
	// ErrUnknownMethod indicates an unrecognized Options.Method value.
	// This is a fatal configuration error: no partial result is produced.
	ErrUnknownMethod = errors.New("cluster: unknown clustering method")
	// ErrEmptyTable indicates a trajectory table with no rows.
	ErrEmptyTable = errors.New("cluster: trajectory table has no rows")
	// ErrUnknownSeed indicates a starting-genotype member missing from the table.
	ErrUnknownSeed = errors.New("cluster: starting genotype references unknown trajectory")
	// ErrDuplicateSeed indicates a trajectory listed in two starting genotypes.
	ErrDuplicateSeed = errors.New("cluster: trajectory listed in more than one starting genotype")
)

// Options configures both clustering methods. Immutable once passed in.
//
//   - Method               — matlab or hierarchy; anything else fails fatally.
//   - DetectionBreakpoint  — frequency above which a trajectory counts as observed.
//   - FixedBreakpoint      — frequency above which a trajectory counts as swept.
//   - SimilarityBreakpoint — minimum pair p-value for two trajectories to share
//     a genotype (matlab), and the dendrogram cut expressed as a p-value
//     (hierarchy cuts at distance 1 − SimilarityBreakpoint).
//   - DifferenceBreakpoint — maximum mean absolute frequency difference for
//     the greedy method to link a trajectory to a genotype.
//   - StartingGenotypes    — optional seed clusters for the greedy method;
//     each inner slice becomes one initial genotype.
type Options struct {
	Method               Method
	DetectionBreakpoint  float64
	FixedBreakpoint      float64
	SimilarityBreakpoint float64
	DifferenceBreakpoint float64
	StartingGenotypes    [][]string
}

// DefaultOptions returns the matlab-preset configuration used by the
// reference workflow: detection 0.03, fixed 0.97, similarity 0.05,
// difference 0.10, greedy method, no seeds.
func DefaultOptions() Options {
	return Options{
		Method:               MethodMatlab,
		DetectionBreakpoint:  0.03,
		FixedBreakpoint:      0.97,
		SimilarityBreakpoint: 0.05,
		DifferenceBreakpoint: 0.10,
	}
}

// ResultKind tags which variant a Result carries.
type ResultKind int

const (
	// AssignmentOnly is produced by the greedy method: no linkage matrix.
	AssignmentOnly ResultKind = iota
	// AssignmentWithLinkage is produced by the hierarchical method.
	AssignmentWithLinkage
)

// Result is the clustering output: genotype member lists in creation order,
// plus the linkage matrix when Kind == AssignmentWithLinkage. Linkage holds
// one row per merge, so it is nil for a single-trajectory table (a one-leaf
// dendrogram has no merges); it is always nil when Kind == AssignmentOnly.
//
// The assignment is total: every input trajectory appears in exactly one
// genotype and no genotype is empty.
type Result struct {
	Kind      ResultKind
	Genotypes [][]string
	Linkage   *mat.Dense
}
