package lineage

import (
	"math"
	"sort"

	"github.com/clonalstack/clonaltrace/genotype"
	"github.com/clonalstack/clonaltrace/timeseries"
)

// Infer assigns every genotype in the table exactly one background parent
// and returns the validated forest.
//
// A candidate parent must have been detected no later than the child, must
// dominate the child's frequency (within one detection unit of slack) at
// every timepoint where the child is detected, and must survive the
// statistical evidence: the additive check passes, and either the
// subtractive check passes or the pair's covariance clears
// DerivativeCheckCutoff. Among surviving candidates the engine prefers the
// tightest dominator - the one with the smallest cumulative mean frequency -
// breaking remaining ties by earliest detection time, then lexical id.
// A genotype with no surviving candidate descends from genotype-0.
func Infer(table *genotype.Table, opts Options) (*Forest, error) {
	ids := table.IDs()

	firstDetected := map[string]float64{}
	for _, g := range table.Genotypes {
		if tp, ok := g.Mean.FirstAbove(opts.DetectionCutoff); ok {
			firstDetected[g.Name] = tp
		} else {
			firstDetected[g.Name] = math.Inf(1)
		}
	}

	parents := map[string]string{}
	for _, childID := range ids {
		child, err := table.Row(childID)
		if err != nil {
			return nil, err
		}
		if math.IsInf(firstDetected[childID], 1) {
			continue // never detected, defaults to the root
		}

		candidates := rankedCandidates(table, childID, firstDetected)
		for _, candID := range candidates {
			cand, rowErr := table.Row(candID)
			if rowErr != nil {
				return nil, rowErr
			}
			if !dominates(cand.Mean, child.Mean, opts.DetectionCutoff) {
				continue
			}
			additive, subtractive, delta, hasDelta := ApplyChecks(child.Mean, cand.Mean, opts)
			if !additive {
				continue // significantly over 1: disjoint additive lineages
			}
			if !subtractive && hasDelta && delta <= opts.DerivativeCheckCutoff {
				continue // neither tracking nor co-rising
			}
			if introducesCycle(parents, childID, candID) {
				continue
			}
			parents[childID] = candID

			break
		}
	}

	return NewForest(ids, parents)
}

// rankedCandidates lists the genotypes detected no later than the child,
// ordered tightest-dominator first: ascending cumulative mean frequency,
// then earliest detection, then lexical id.
func rankedCandidates(table *genotype.Table, childID string, firstDetected map[string]float64) []string {
	childDetected := firstDetected[childID]
	var out []string
	mass := map[string]float64{}
	for _, g := range table.Genotypes {
		if g.Name == childID {
			continue
		}
		if firstDetected[g.Name] > childDetected {
			continue
		}
		out = append(out, g.Name)
		mass[g.Name] = g.Mean.Sum()
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if mass[a] != mass[b] {
			return mass[a] < mass[b]
		}
		if firstDetected[a] != firstDetected[b] {
			return firstDetected[a] < firstDetected[b]
		}

		return a < b
	})

	return out
}

// dominates reports whether parent's frequency covers child's at every
// timepoint where the child is detected, allowing one detection unit of
// measurement slack.
func dominates(parent, child timeseries.Series, dlimit float64) bool {
	for i, cv := range child.Values {
		if math.IsNaN(cv) || cv <= dlimit {
			continue
		}
		pv := parent.Values[i]
		if math.IsNaN(pv) || pv < cv-dlimit {
			return false
		}
	}

	return true
}

// introducesCycle reports whether making candidate the parent of child would
// close a loop through the parents assigned so far.
func introducesCycle(parents map[string]string, child, candidate string) bool {
	for cur := candidate; ; {
		if cur == child {
			return true
		}
		next, ok := parents[cur]
		if !ok || next == genotype.Root {
			return false
		}
		cur = next
	}
}
