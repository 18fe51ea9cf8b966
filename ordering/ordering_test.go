package ordering_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clonalstack/clonaltrace/genotype"
	"github.com/clonalstack/clonaltrace/ordering"
	"github.com/clonalstack/clonaltrace/timeseries"
)

func buildTable(t *testing.T, rows map[string][]float64, order []string) *genotype.Table {
	t.Helper()
	table, err := timeseries.NewTable([]float64{0, 17, 25, 44, 66, 75, 90})
	require.NoError(t, err)
	clusters := make([][]string, 0, len(order))
	for _, id := range order {
		require.NoError(t, table.AddRow(id, rows[id]))
		clusters = append(clusters, []string{id})
	}
	gt, err := genotype.Mean(table, clusters)
	require.NoError(t, err)

	return gt
}

// TestSort_FixedTierFirst verifies a swept genotype is placed before a
// never-fixed one regardless of table order.
func TestSort_FixedTierFirst(t *testing.T) {
	gt := buildTable(t, map[string][]float64{
		"low":   {0, 0.38, 0.43, 0, 0, 0, 0},
		"swept": {0, 0, 0.26, 1, 1, 1, 1},
	}, []string{"low", "swept"})

	order := ordering.Sort(gt, ordering.MatlabOptions())
	// "low" was named genotype-1, "swept" genotype-2.
	assert.Equal(t, []string{"genotype-2", "genotype-1"}, order)
}

// TestSort_WithinTierByDetection verifies ascending (firstDetected,
// firstAboveThreshold) within a tier.
func TestSort_WithinTierByDetection(t *testing.T) {
	gt := buildTable(t, map[string][]float64{
		"late":  {0, 0, 0, 0.3, 0.5, 0.6, 0.6},
		"early": {0, 0.2, 0.4, 0.5, 0.6, 0.6, 0.6},
	}, []string{"late", "early"})

	order := ordering.Sort(gt, ordering.MatlabOptions())
	// Both peak in the 0.60 tier; "early" (genotype-2) is detected first.
	assert.Equal(t, []string{"genotype-2", "genotype-1"}, order)
}

// TestSort_StableTies verifies genotypes with identical sort tuples keep
// their table order.
func TestSort_StableTies(t *testing.T) {
	vals := []float64{0, 0.2, 0.4, 0.5, 0.5, 0.5, 0.5}
	gt := buildTable(t, map[string][]float64{
		"first":  vals,
		"second": vals,
	}, []string{"first", "second"})

	order := ordering.Sort(gt, ordering.MatlabOptions())
	assert.Equal(t, []string{"genotype-1", "genotype-2"}, order)
}

// TestSort_Permutation verifies the output is count-preserving even when a
// genotype clears no tier at all.
func TestSort_Permutation(t *testing.T) {
	gt := buildTable(t, map[string][]float64{
		"a":    {0, 0.5, 0.9, 1, 1, 1, 1},
		"zero": {0, 0, 0, 0, 0, 0, 0},
		"mid":  {0, 0, 0.2, 0.3, 0.3, 0.2, 0.1},
	}, []string{"a", "zero", "mid"})

	order := ordering.Sort(gt, ordering.MatlabOptions())
	assert.ElementsMatch(t, gt.IDs(), order)
	assert.Equal(t, "genotype-2", order[len(order)-1]) // the all-zero genotype
}

// TestSortTable_ReturnsNewValue verifies the original table order is kept
// intact and a reordered copy is returned.
func TestSortTable_ReturnsNewValue(t *testing.T) {
	gt := buildTable(t, map[string][]float64{
		"low":   {0, 0.38, 0.43, 0, 0, 0, 0},
		"swept": {0, 0, 0.26, 1, 1, 1, 1},
	}, []string{"low", "swept"})

	sorted, err := ordering.SortTable(gt, ordering.MatlabOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"genotype-2", "genotype-1"}, sorted.IDs())
	assert.Equal(t, []string{"genotype-1", "genotype-2"}, gt.IDs())
}
