// Package ggmuller converts genotypes plus the inferred lineage forest into
// the two tables consumed by downstream Muller-plot tooling: the edge table
// (Parent, Identity) and the population table (Generation, Identity,
// Population). It also renders the pairwise diagnostic table and a mermaid
// flowchart of the lineage, and assigns the display palette.
package ggmuller

// Edge is one parent/child relationship in the lineage forest.
type Edge struct {
	Parent   string
	Identity string
}

// PopulationRow is one (generation, genotype) abundance entry, scaled to
// percent of the population.
type PopulationRow struct {
	Generation float64
	Identity   string
	Population float64
}

// PopulationTable is the full abundance table plus the generations whose
// observed genotypes already summed over 100% before the synthetic root row
// was added. Oversubscription is surfaced, never silently rescaled; the root
// row for such generations is clamped to zero.
type PopulationTable struct {
	Rows           []PopulationRow
	Oversubscribed []float64
}

// PValueRow is one pairwise diagnostic entry.
type PValueRow struct {
	Left           string
	Right          string
	Pvalue         float64
	Sigma          float64
	MeanDifference float64
}
