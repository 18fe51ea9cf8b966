// Command clonaltrace reconstructs clonal structure from a table of
// time-series allele frequencies and writes the genotype, lineage and
// ggmuller output tables.
//
// Usage:
//
//	clonaltrace run trajectories.tsv
//	clonaltrace run trajectories.tsv --output results --method hierarchy
//	clonaltrace run trajectories.tsv --detection 0.02 --fixed 0.93
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/clonalstack/clonaltrace/cluster"
	"github.com/clonalstack/clonaltrace/timeseries"
	"github.com/clonalstack/clonaltrace/workflow"
)

var (
	rootCmd = &cobra.Command{
		Use:   "clonaltrace",
		Short: "Reconstruct clonal structure from time-series allele frequencies",
		Long: `clonaltrace groups mutational trajectories into genotypes, infers which
genotype arose in which background, and emits the edge and population
tables consumed by ggmuller-style plotting tools.`,
		SilenceUsage: true,
	}

	runCmd = &cobra.Command{
		Use:   "run [trajectory table]",
		Short: "Run the full reconstruction pipeline over one trajectory table",
		Long: `Reads a delimited table whose first column holds trajectory identifiers
and whose numeric columns hold per-timepoint frequencies, then writes
the genotype table, annotated trajectories, lineage edges, population
table, pairwise p-values, a mermaid lineage diagram and the run
parameters into the output directory.`,
		Args: cobra.ExactArgs(1),
		RunE: runPipeline,
	}

	outputDir  string
	method     string
	delimiter  string
	matlabSort bool
	verbose    bool

	detectionCutoff  float64
	fixedCutoff      float64
	similarityCutoff float64
	differenceCutoff float64
)

func init() {
	runCmd.Flags().StringVarP(&outputDir, "output", "o", ".", "directory for the output tables")
	runCmd.Flags().StringVarP(&method, "method", "m", string(cluster.MethodMatlab), "clustering method: matlab or hierarchy")
	runCmd.Flags().StringVar(&delimiter, "delimiter", "\t", "column delimiter of the input table")
	runCmd.Flags().BoolVar(&matlabSort, "matlab-sort", false, "use the historical seven-tier display sort")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	runCmd.Flags().Float64Var(&detectionCutoff, "detection", 0.03, "frequency above which a trajectory counts as detected")
	runCmd.Flags().Float64Var(&fixedCutoff, "fixed", 0.97, "frequency above which a trajectory counts as fixed")
	runCmd.Flags().Float64Var(&similarityCutoff, "similarity", 0.05, "minimum pair p-value to share a genotype")
	runCmd.Flags().Float64Var(&differenceCutoff, "difference", 0.10, "maximum mean frequency difference to share a genotype")

	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	opts := workflow.DefaultOptions()
	if matlabSort {
		opts = workflow.MatlabOptions()
	}
	opts.Cluster.Method = cluster.Method(method)
	opts.Cluster.DetectionBreakpoint = detectionCutoff
	opts.Cluster.FixedBreakpoint = fixedCutoff
	opts.Cluster.SimilarityBreakpoint = similarityCutoff
	opts.Cluster.DifferenceBreakpoint = differenceCutoff
	opts.Lineage.DetectionCutoff = detectionCutoff
	opts.Sort.DetectionBreakpoint = detectionCutoff

	inputPath := args[0]
	logger.Info("reading trajectory table", "path", inputPath)
	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening trajectory table: %w", err)
	}
	defer f.Close()

	comma, err := delimiterRune(delimiter)
	if err != nil {
		return err
	}
	table, metadata, err := timeseries.ReadTable(f, comma)
	if err != nil {
		return fmt.Errorf("parsing trajectory table: %w", err)
	}
	logger.Info("parsed trajectories", "count", table.Len(), "timepoints", len(table.Timepoints()))

	res, err := workflow.Run(table, opts)
	if err != nil {
		return fmt.Errorf("running pipeline: %w", err)
	}
	logger.Info("pipeline complete",
		"genotypes", len(res.Genotypes.Genotypes),
		"edges", len(res.Edges),
		"oversubscribed_generations", len(res.Populations.Oversubscribed))
	for _, gen := range res.Populations.Oversubscribed {
		logger.Warn("genotype frequencies sum over 100% at a generation", "generation", gen)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	if err := writeArtifacts(outputDir, name, table, metadata, res, opts); err != nil {
		return err
	}
	logger.Info("wrote output tables", "dir", outputDir, "prefix", name)

	return nil
}

// delimiterRune decodes the delimiter flag into a single rune, rejecting
// empty, malformed, and multi-rune values.
func delimiterRune(s string) (rune, error) {
	if s == "" {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return 0, fmt.Errorf("delimiter is not valid UTF-8: %q", s)
	}
	if size != len(s) {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}

	return r, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
