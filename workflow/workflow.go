// Package workflow wires the full genotype reconstruction pipeline: pairwise
// metrics, clustering, mean genotype aggregation, background inference,
// display ordering and the ggmuller table export, driven by one Options
// record.
package workflow

import (
	"errors"

	"github.com/clonalstack/clonaltrace/cluster"
	"github.com/clonalstack/clonaltrace/genotype"
	"github.com/clonalstack/clonaltrace/ggmuller"
	"github.com/clonalstack/clonaltrace/lineage"
	"github.com/clonalstack/clonaltrace/ordering"
	"github.com/clonalstack/clonaltrace/pairwise"
	"github.com/clonalstack/clonaltrace/timeseries"
)

// ErrNilTable indicates Run was handed a nil trajectory table.
var ErrNilTable = errors.New("workflow: nil trajectory table")

// Options bundles the per-stage configuration. Zero value is not usable;
// start from DefaultOptions or MatlabOptions.
type Options struct {
	Cluster cluster.Options
	Lineage lineage.Options
	Sort    ordering.Options
}

// DefaultOptions is the standard preset: greedy clustering at the reference
// cutoffs plus the ten-step sorter ladder.
func DefaultOptions() Options {
	return Options{
		Cluster: cluster.DefaultOptions(),
		Lineage: lineage.DefaultOptions(),
		Sort:    ordering.DefaultOptions(),
	}
}

// MatlabOptions is the historical preset: identical clustering and lineage
// cutoffs but the seven-step sorter ladder with the 0.85 fixed tier.
func MatlabOptions() Options {
	opts := DefaultOptions()
	opts.Sort = ordering.MatlabOptions()

	return opts
}

// Result carries every artifact the pipeline produces. Genotypes is sorted
// into display order; Clusters preserves the raw clustering output including
// the hierarchy linkage when that method ran.
type Result struct {
	Clusters    cluster.Result
	Genotypes   *genotype.Table
	Cache       *pairwise.Cache
	Forest      *lineage.Forest
	Edges       []ggmuller.Edge
	Populations ggmuller.PopulationTable
	PValues     []ggmuller.PValueRow
	Palette     map[string]string
}

// Run executes the pipeline over a trajectory table.
func Run(table *timeseries.Table, opts Options) (*Result, error) {
	if table == nil {
		return nil, ErrNilTable
	}

	cache := pairwise.NewCache()
	clusters, err := cluster.Cluster(table, cache, opts.Cluster)
	if err != nil {
		return nil, err
	}

	genotypes, err := genotype.Mean(table, clusters.Genotypes)
	if err != nil {
		return nil, err
	}

	forest, err := lineage.Infer(genotypes, opts.Lineage)
	if err != nil {
		return nil, err
	}

	sorted, err := ordering.SortTable(genotypes, opts.Sort)
	if err != nil {
		return nil, err
	}

	edges := ggmuller.Edges(forest)
	res := &Result{
		Clusters:    clusters,
		Genotypes:   sorted,
		Cache:       cache,
		Forest:      forest,
		Edges:       edges,
		Populations: ggmuller.Populations(sorted, edges, opts.Lineage.DetectionCutoff),
		PValues:     ggmuller.PValues(cache),
		Palette:     ggmuller.Palette(forest.IDs()),
	}

	return res, nil
}
