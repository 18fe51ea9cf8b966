// Package ordering produces the deterministic display order of genotypes:
// a cascading-tier sort placing each genotype at the strictest frequency
// tier it ever reaches, ordered within a tier by when it was first detected
// and first became significant.
//
// The order is a permutation of the input genotype set used only for display
// determinism; clustering and lineage correctness never depend on it.
package ordering

import (
	"math"
	"sort"

	"github.com/clonalstack/clonaltrace/genotype"
)

// Options holds the sorter thresholds.
//
//   - DetectionBreakpoint   — "first detected" frequency.
//   - SignificantBreakpoint — "first above threshold" frequency.
//   - FixedBreakpoint       — the strictest tier, processed first.
//   - FrequencyBreakpoints  — the remaining tiers, descending.
type Options struct {
	DetectionBreakpoint   float64
	SignificantBreakpoint float64
	FixedBreakpoint       float64
	FrequencyBreakpoints  []float64
}

// DefaultOptions mirrors the reference sorter configuration.
func DefaultOptions() Options {
	return Options{
		DetectionBreakpoint:   0.03,
		SignificantBreakpoint: 0.15,
		FixedBreakpoint:       0.97,
		FrequencyBreakpoints:  []float64{0.9, 0.8, 0.7, 0.6, 0.5, 0.4, 0.3, 0.2, 0.1, 0.0},
	}
}

// MatlabOptions returns the historical preset: fixed 0.85 and the
// seven-step tier ladder.
func MatlabOptions() Options {
	return Options{
		DetectionBreakpoint:   0.03,
		SignificantBreakpoint: 0.15,
		FixedBreakpoint:       0.85,
		FrequencyBreakpoints:  []float64{0.90, 0.75, 0.60, 0.45, 0.30, 0.15, 0.00},
	}
}

// Sort returns the genotype identities in display order. Tiers run from the
// fixed breakpoint down through FrequencyBreakpoints; at each tier the
// still-unplaced genotypes whose mean frequency ever exceeds the tier value
// are placed, sorted ascending by (first detected, first above threshold)
// with ties kept in table order. Genotypes that clear no tier at all are
// appended last in table order, so the result is always a permutation of the
// input.
func Sort(table *genotype.Table, opts Options) []string {
	type key struct {
		firstDetected float64
		firstAbove    float64
	}
	keys := map[string]key{}
	for _, g := range table.Genotypes {
		k := key{firstDetected: math.Inf(1), firstAbove: math.Inf(1)}
		if tp, ok := g.Mean.FirstAbove(opts.DetectionBreakpoint); ok {
			k.firstDetected = tp
		}
		if tp, ok := g.Mean.FirstAbove(opts.SignificantBreakpoint); ok {
			k.firstAbove = tp
		}
		keys[g.Name] = k
	}

	remaining := table.Genotypes
	var order []string
	for _, tier := range append([]float64{opts.FixedBreakpoint}, opts.FrequencyBreakpoints...) {
		var placed []genotype.Genotype
		var rest []genotype.Genotype
		for _, g := range remaining {
			if _, ok := g.Mean.FirstAbove(tier); ok {
				placed = append(placed, g)
			} else {
				rest = append(rest, g)
			}
		}
		sort.SliceStable(placed, func(i, j int) bool {
			a, b := keys[placed[i].Name], keys[placed[j].Name]
			if a.firstDetected != b.firstDetected {
				return a.firstDetected < b.firstDetected
			}

			return a.firstAbove < b.firstAbove
		})
		for _, g := range placed {
			order = append(order, g.Name)
		}
		remaining = rest
	}

	// Genotypes that never clear any tier (all-zero series) keep table order.
	for _, g := range remaining {
		order = append(order, g.Name)
	}

	return order
}

// SortTable returns a new genotype table reordered by Sort.
func SortTable(table *genotype.Table, opts Options) (*genotype.Table, error) {
	return table.Reorder(Sort(table, opts))
}
