// Package clonaltrace reconstructs clonal structure from time-series allele
// frequencies: which mutations travelled together, which genotype arose in
// whose background, and how the population should be drawn.
//
// 🚀 What is clonaltrace?
//
//	A library plus CLI that takes a table of mutation frequencies over time
//	and produces:
//		• Pairwise similarity: cached binomial-model p-values per trajectory pair
//		• Genotypes: greedy (matlab) or hierarchical clustering of trajectories
//		• Mean genotypes: NaN-aware elementwise averages of member trajectories
//		• Lineage: additive / subtractive / derivative checks resolving each
//		  genotype's parent, rooted at the synthetic genotype-0
//		• Display order: cascading frequency-tier sort
//		• ggmuller export: edge + population tables, p-value diagnostics,
//		  a mermaid lineage diagram and the display palette
//
// Everything is organized under flat subpackages:
//
//	timeseries/ — frequency series, tables, detection windows, TSV I/O
//	pairwise/   — the similarity metric and its memoization cache
//	cluster/    — greedy and hierarchical genotype clustering
//	genotype/   — mean genotype aggregation and the genotype table
//	lineage/    — background checks and parent inference
//	ordering/   — the cascading-tier display sort
//	ggmuller/   — edge, population and diagnostic table export
//	workflow/   — one-call pipeline wiring all of the above
//	cmd/        — the clonaltrace command line tool
//
//	go get github.com/clonalstack/clonaltrace
package clonaltrace
