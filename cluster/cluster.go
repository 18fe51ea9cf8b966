package cluster

import (
	"github.com/clonalstack/clonaltrace/pairwise"
	"github.com/clonalstack/clonaltrace/timeseries"
)

// Cluster partitions the table's trajectories into genotypes using the
// method named in opts. The cache is populated with any missing pair
// metrics first, so the caller can reuse it for diagnostic output; pass a
// fresh cache when no reuse is wanted.
func Cluster(table *timeseries.Table, cache *pairwise.Cache, opts Options) (Result, error) {
	if table.Len() == 0 {
		return Result{}, ErrEmptyTable
	}
	pairwise.BulkPopulate(cache, table, opts.DetectionBreakpoint, opts.FixedBreakpoint)

	switch opts.Method {
	case MethodMatlab:
		genotypes, err := greedy(table, cache, opts)
		if err != nil {
			return Result{}, err
		}

		return Result{Kind: AssignmentOnly, Genotypes: genotypes}, nil
	case MethodHierarchy:
		genotypes, linkage := hierarchical(table, cache, opts)

		return Result{Kind: AssignmentWithLinkage, Genotypes: genotypes, Linkage: linkage}, nil
	default:
		return Result{}, ErrUnknownMethod
	}
}
