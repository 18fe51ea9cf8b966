package cluster

import (
	"fmt"

	"github.com/clonalstack/clonaltrace/pairwise"
	"github.com/clonalstack/clonaltrace/timeseries"
)

// greedy is the threshold-greedy ("matlab") method. Trajectories are
// processed in table order. Each unassigned trajectory is compared against
// the representative (founding member) of every existing genotype; it joins
// the best-scoring genotype when the pair p-value reaches
// SimilarityBreakpoint and the mean frequency difference stays below
// DifferenceBreakpoint, with ties broken toward the earliest-created
// genotype. Otherwise it founds a new genotype.
func greedy(table *timeseries.Table, cache *pairwise.Cache, opts Options) ([][]string, error) {
	genotypes, assigned, err := seedGenotypes(table, opts.StartingGenotypes)
	if err != nil {
		return nil, err
	}

	for _, id := range table.IDs() {
		if assigned[id] {
			continue
		}

		best := -1
		bestPvalue := -1.0
		for gi, members := range genotypes {
			rep := members[0]
			calc, ok := cache.Get(id, rep)
			if !ok {
				continue
			}
			if calc.Pvalue < opts.SimilarityBreakpoint || calc.MeanDifference >= opts.DifferenceBreakpoint {
				continue
			}
			// Strictly-better keeps ties on the earliest-created genotype.
			if calc.Pvalue > bestPvalue {
				best = gi
				bestPvalue = calc.Pvalue
			}
		}

		if best >= 0 {
			genotypes[best] = append(genotypes[best], id)
		} else {
			genotypes = append(genotypes, []string{id})
		}
		assigned[id] = true
	}

	return genotypes, nil
}

// seedGenotypes turns the caller-supplied starting genotypes into initial
// clusters, validating that every seed trajectory exists and appears once.
func seedGenotypes(table *timeseries.Table, seeds [][]string) ([][]string, map[string]bool, error) {
	assigned := map[string]bool{}
	var genotypes [][]string
	for _, seed := range seeds {
		if len(seed) == 0 {
			continue
		}
		members := make([]string, 0, len(seed))
		for _, id := range seed {
			if _, err := table.Row(id); err != nil {
				return nil, nil, fmt.Errorf("%w: %q", ErrUnknownSeed, id)
			}
			if assigned[id] {
				return nil, nil, fmt.Errorf("%w: %q", ErrDuplicateSeed, id)
			}
			assigned[id] = true
			members = append(members, id)
		}
		genotypes = append(genotypes, members)
	}

	return genotypes, assigned, nil
}
