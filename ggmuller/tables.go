package ggmuller

import (
	"math"
	"sort"

	"github.com/clonalstack/clonaltrace/genotype"
	"github.com/clonalstack/clonaltrace/lineage"
	"github.com/clonalstack/clonaltrace/pairwise"
)

// populationFloor replaces a child-dominated parent frequency that dipped
// under the detection cutoff, keeping the lineage band visible in the plot.
const populationFloor = 0.01

// Edges builds the edge table: one row per non-root genotype in forest
// order. Parents that would self-reference resolve to genotype-0 (the forest
// already guarantees this, the formatter re-checks its own contract).
func Edges(forest *lineage.Forest) []Edge {
	var edges []Edge
	for _, id := range forest.IDs() {
		parent, err := forest.Parent(id)
		if err != nil || parent == id {
			parent = genotype.Root
		}
		edges = append(edges, Edge{Parent: parent, Identity: id})
	}

	return edges
}

// Populations converts mean genotype frequencies into the per-generation
// abundance table.
//
// A genotype with children emits only its detected timepoints, each reduced
// by the maximum child frequency there; values pushed under the detection
// cutoff by that subtraction are floored at 0.01 so the band survives. Leaf
// genotypes emit every timepoint as-is. All frequencies scale to percent.
// One synthetic genotype-0 row per generation absorbs the remainder up to
// 100; generations already over 100 are reported in Oversubscribed and get
// a zero root row.
func Populations(table *genotype.Table, edges []Edge, detectionCutoff float64) PopulationTable {
	inEdges := map[string]bool{}
	children := map[string][]string{}
	for _, e := range edges {
		inEdges[e.Identity] = true
		children[e.Parent] = append(children[e.Parent], e.Identity)
	}

	var rows []PopulationRow
	for _, g := range table.Genotypes {
		if !inEdges[g.Name] {
			continue
		}
		kids := children[g.Name]
		for i, tp := range g.Mean.Timepoints {
			freq := g.Mean.Values[i]
			if math.IsNaN(freq) {
				continue
			}
			if len(kids) > 0 {
				if freq <= detectionCutoff {
					continue
				}
				freq -= maxChildFrequency(table, kids, i)
				if freq < detectionCutoff {
					freq = populationFloor
				}
			}
			rows = append(rows, PopulationRow{Generation: tp, Identity: g.Name, Population: freq * 100})
		}
	}

	// Synthetic root rows, one per distinct generation.
	totals := map[float64]float64{}
	for _, r := range rows {
		totals[r.Generation] += r.Population
	}
	generations := make([]float64, 0, len(totals))
	for gen := range totals {
		generations = append(generations, gen)
	}
	sort.Float64s(generations)

	out := PopulationTable{Rows: rows}
	for _, gen := range generations {
		remainder := 100 - totals[gen]
		if remainder < 0 {
			out.Oversubscribed = append(out.Oversubscribed, gen)
			remainder = 0
		}
		out.Rows = append(out.Rows, PopulationRow{Generation: gen, Identity: genotype.Root, Population: remainder})
	}

	return out
}

// PValues flattens the pairwise cache into the diagnostic table, in lexical
// pair order.
func PValues(cache *pairwise.Cache) []PValueRow {
	keys := cache.Keys()
	rows := make([]PValueRow, 0, len(keys))
	for _, k := range keys {
		calc, _ := cache.Get(k.A, k.B)
		rows = append(rows, PValueRow{
			Left:           k.A,
			Right:          k.B,
			Pvalue:         calc.Pvalue,
			Sigma:          calc.Sigma,
			MeanDifference: calc.MeanDifference,
		})
	}

	return rows
}

func maxChildFrequency(table *genotype.Table, kids []string, col int) float64 {
	best := 0.0
	for _, kid := range kids {
		g, err := table.Row(kid)
		if err != nil {
			continue
		}
		if v := g.Mean.Values[col]; !math.IsNaN(v) && v > best {
			best = v
		}
	}

	return best
}
