package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/clonalstack/clonaltrace/ggmuller"
	"github.com/clonalstack/clonaltrace/timeseries"
	"github.com/clonalstack/clonaltrace/workflow"
)

// writeArtifacts writes every output table next to each other under dir,
// prefixed with the input file's base name.
func writeArtifacts(dir, name string, table *timeseries.Table, metadata map[string]map[string]string, res *workflow.Result, opts workflow.Options) error {
	writers := []struct {
		suffix string
		fn     func(*csv.Writer) error
	}{
		{".genotypes.tsv", func(w *csv.Writer) error { return writeGenotypes(w, res) }},
		{".trajectories.tsv", func(w *csv.Writer) error { return writeTrajectories(w, table, metadata, res) }},
		{".ggmuller.edges.tsv", func(w *csv.Writer) error { return writeEdges(w, res.Edges) }},
		{".ggmuller.populations.tsv", func(w *csv.Writer) error { return writePopulations(w, res.Populations) }},
		{".pvalues.tsv", func(w *csv.Writer) error { return writePValues(w, res.PValues) }},
	}
	for _, item := range writers {
		if err := writeTSV(filepath.Join(dir, name+item.suffix), item.fn); err != nil {
			return err
		}
	}

	mermaid := ggmuller.Mermaid(res.Edges, res.Palette)
	if err := os.WriteFile(filepath.Join(dir, name+".mermaid.md"), []byte(mermaid+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing mermaid diagram: %w", err)
	}

	params, err := yaml.Marshal(workflow.ParametersFrom(opts))
	if err != nil {
		return fmt.Errorf("encoding run parameters: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".parameters.yaml"), params, 0o644); err != nil {
		return fmt.Errorf("writing run parameters: %w", err)
	}

	return nil
}

func writeTSV(path string, fn func(*csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = '\t'
	if err := fn(w); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	w.Flush()

	return w.Error()
}

func writeGenotypes(w *csv.Writer, res *workflow.Result) error {
	header := []string{"Genotype"}
	for _, tp := range res.Genotypes.Timepoints {
		header = append(header, formatFloat(tp))
	}
	header = append(header, "members")
	if err := w.Write(header); err != nil {
		return err
	}

	for _, g := range res.Genotypes.Genotypes {
		row := []string{g.Name}
		for _, v := range g.Mean.Values {
			row = append(row, formatCell(v))
		}
		row = append(row, strings.Join(g.Members, "|"))
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// writeTrajectories echoes the input table with the assigned genotype and
// any non-numeric input columns re-attached.
func writeTrajectories(w *csv.Writer, table *timeseries.Table, metadata map[string]map[string]string, res *workflow.Result) error {
	memberIndex := res.Genotypes.MemberIndex()

	var extraCols []string
	seen := map[string]bool{}
	for _, cols := range metadata {
		for col := range cols {
			if !seen[col] {
				seen[col] = true
				extraCols = append(extraCols, col)
			}
		}
	}
	sort.Strings(extraCols)

	header := []string{"Trajectory", "Genotype"}
	for _, tp := range table.Timepoints() {
		header = append(header, formatFloat(tp))
	}
	header = append(header, extraCols...)
	if err := w.Write(header); err != nil {
		return err
	}

	for _, id := range table.IDs() {
		series, err := table.Row(id)
		if err != nil {
			return err
		}
		row := []string{id, memberIndex[id]}
		for _, v := range series.Values {
			row = append(row, formatCell(v))
		}
		for _, col := range extraCols {
			row = append(row, metadata[id][col])
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func writeEdges(w *csv.Writer, edges []ggmuller.Edge) error {
	if err := w.Write([]string{"Parent", "Identity"}); err != nil {
		return err
	}
	for _, e := range edges {
		if err := w.Write([]string{e.Parent, e.Identity}); err != nil {
			return err
		}
	}

	return nil
}

func writePopulations(w *csv.Writer, pop ggmuller.PopulationTable) error {
	if err := w.Write([]string{"Generation", "Identity", "Population"}); err != nil {
		return err
	}
	for _, r := range pop.Rows {
		row := []string{formatFloat(r.Generation), r.Identity, formatFloat(r.Population)}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func writePValues(w *csv.Writer, rows []ggmuller.PValueRow) error {
	if err := w.Write([]string{"Left", "Right", "Pvalue", "Sigma", "MeanDifference"}); err != nil {
		return err
	}
	for _, r := range rows {
		row := []string{r.Left, r.Right, formatFloat(r.Pvalue), formatFloat(r.Sigma), formatFloat(r.MeanDifference)}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}

	return formatFloat(v)
}
