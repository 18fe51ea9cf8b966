package cluster

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/clonalstack/clonaltrace/pairwise"
	"github.com/clonalstack/clonaltrace/timeseries"
)

// hierarchical builds the full pairwise distance matrix (1 − p-value), runs
// average-linkage agglomerative clustering to completion, and cuts the
// dendrogram at distance 1 − SimilarityBreakpoint to produce flat clusters.
//
// The returned linkage matrix has one row per merge in the conventional
// [left cluster, right cluster, merge distance, leaf count] layout, with
// merged clusters numbered n, n+1, … after the n leaves. A single-row table
// has no merges, so its linkage is nil.
func hierarchical(table *timeseries.Table, cache *pairwise.Cache, opts Options) ([][]string, *mat.Dense) {
	ids := table.IDs()
	n := len(ids)
	if n == 1 {
		// Nothing to merge; the dendrogram is a single leaf.
		return [][]string{{ids[0]}}, nil
	}

	dist := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			calc, _ := cache.Get(ids[i], ids[j])
			d := 1 - calc.Pvalue
			dist.Set(i, j, d)
			dist.Set(j, i, d)
		}
	}

	type node struct {
		id     int
		leaves []int
	}
	active := make([]node, n)
	for i := range active {
		active[i] = node{id: i, leaves: []int{i}}
	}

	// Average linkage over the original leaf distances.
	avg := func(a, b node) float64 {
		var sum float64
		for _, i := range a.leaves {
			for _, j := range b.leaves {
				sum += dist.At(i, j)
			}
		}

		return sum / float64(len(a.leaves)*len(b.leaves))
	}

	linkage := mat.NewDense(n-1, 4, nil)
	cut := 1 - opts.SimilarityBreakpoint
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}

		return parent[x]
	}

	next := n
	for merge := 0; len(active) > 1; merge++ {
		bi, bj := 0, 1
		best := avg(active[0], active[1])
		for i := 0; i < len(active); i++ {
			for j := i + 1; j < len(active); j++ {
				if d := avg(active[i], active[j]); d < best {
					best, bi, bj = d, i, j
				}
			}
		}

		a, b := active[bi], active[bj]
		linkage.Set(merge, 0, float64(a.id))
		linkage.Set(merge, 1, float64(b.id))
		linkage.Set(merge, 2, best)
		linkage.Set(merge, 3, float64(len(a.leaves)+len(b.leaves)))

		if best <= cut {
			parent[find(a.leaves[0])] = find(b.leaves[0])
		}

		merged := node{id: next, leaves: append(append([]int(nil), a.leaves...), b.leaves...)}
		next++
		active = append(active[:bj], active[bj+1:]...)
		active[bi] = merged
	}

	// Flat clusters: union-find components, ordered by smallest leaf index so
	// the genotype numbering stays anchored to the table order.
	groups := map[int][]int{}
	for i := 0; i < n; i++ {
		root := find(i)
		groups[root] = append(groups[root], i)
	}
	roots := make([]int, 0, len(groups))
	for root := range groups {
		roots = append(roots, root)
	}
	sort.Slice(roots, func(a, b int) bool { return groups[roots[a]][0] < groups[roots[b]][0] })

	genotypes := make([][]string, 0, len(roots))
	for _, root := range roots {
		members := make([]string, 0, len(groups[root]))
		for _, leaf := range groups[root] {
			members = append(members, ids[leaf])
		}
		genotypes = append(genotypes, members)
	}

	return genotypes, linkage
}
