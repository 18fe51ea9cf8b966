package cluster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clonalstack/clonaltrace/cluster"
	"github.com/clonalstack/clonaltrace/pairwise"
	"github.com/clonalstack/clonaltrace/timeseries"
)

// testTable holds two identical trajectories and one that moves in the
// opposite direction.
func testTable(t *testing.T) *timeseries.Table {
	t.Helper()
	table, err := timeseries.NewTable([]float64{0, 1, 2, 3})
	require.NoError(t, err)
	require.NoError(t, table.AddRow("A", []float64{0, 0.2, 0.5, 0.5}))
	require.NoError(t, table.AddRow("B", []float64{0, 0.2, 0.5, 0.5}))
	require.NoError(t, table.AddRow("C", []float64{0.9, 0.6, 0.1, 0}))

	return table
}

// assertPartition checks the totality property: every trajectory appears in
// exactly one genotype.
func assertPartition(t *testing.T, table *timeseries.Table, genotypes [][]string) {
	t.Helper()
	seen := map[string]int{}
	for _, members := range genotypes {
		require.NotEmpty(t, members)
		for _, id := range members {
			seen[id]++
		}
	}
	for _, id := range table.IDs() {
		assert.Equal(t, 1, seen[id], "trajectory %q must appear exactly once", id)
	}
	assert.Len(t, seen, table.Len())
}

// TestCluster_UnknownMethod verifies the fatal configuration error.
func TestCluster_UnknownMethod(t *testing.T) {
	opts := cluster.DefaultOptions()
	opts.Method = "kmeans"

	_, err := cluster.Cluster(testTable(t), pairwise.NewCache(), opts)
	assert.ErrorIs(t, err, cluster.ErrUnknownMethod)
}

// TestCluster_EmptyTable verifies the empty-input sentinel.
func TestCluster_EmptyTable(t *testing.T) {
	table, err := timeseries.NewTable([]float64{0, 1})
	require.NoError(t, err)

	_, err = cluster.Cluster(table, pairwise.NewCache(), cluster.DefaultOptions())
	assert.ErrorIs(t, err, cluster.ErrEmptyTable)
}

// TestGreedy_IdenticalTrajectoriesCollapse verifies identical series share a
// genotype while the divergent one founds its own.
func TestGreedy_IdenticalTrajectoriesCollapse(t *testing.T) {
	table := testTable(t)
	res, err := cluster.Cluster(table, pairwise.NewCache(), cluster.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, cluster.AssignmentOnly, res.Kind)
	assert.Nil(t, res.Linkage)
	require.Len(t, res.Genotypes, 2)
	assert.Equal(t, []string{"A", "B"}, res.Genotypes[0])
	assert.Equal(t, []string{"C"}, res.Genotypes[1])
	assertPartition(t, table, res.Genotypes)
}

// TestGreedy_StartingGenotypes verifies seeds found the first genotypes and
// invalid seeds fail.
func TestGreedy_StartingGenotypes(t *testing.T) {
	table := testTable(t)

	opts := cluster.DefaultOptions()
	opts.StartingGenotypes = [][]string{{"C"}}
	res, err := cluster.Cluster(table, pairwise.NewCache(), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, res.Genotypes[0])
	assertPartition(t, table, res.Genotypes)

	opts.StartingGenotypes = [][]string{{"nope"}}
	_, err = cluster.Cluster(table, pairwise.NewCache(), opts)
	assert.ErrorIs(t, err, cluster.ErrUnknownSeed)

	opts.StartingGenotypes = [][]string{{"A"}, {"A"}}
	_, err = cluster.Cluster(table, pairwise.NewCache(), opts)
	assert.ErrorIs(t, err, cluster.ErrDuplicateSeed)
}

// TestGreedy_Deterministic verifies two runs over the same input agree.
func TestGreedy_Deterministic(t *testing.T) {
	table := testTable(t)
	first, err := cluster.Cluster(table, pairwise.NewCache(), cluster.DefaultOptions())
	require.NoError(t, err)
	second, err := cluster.Cluster(table, pairwise.NewCache(), cluster.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, first.Genotypes, second.Genotypes)
}

// TestHierarchy_Clusters verifies the hierarchical method separates the
// divergent trajectory and returns a linkage matrix.
func TestHierarchy_Clusters(t *testing.T) {
	table := testTable(t)
	opts := cluster.DefaultOptions()
	opts.Method = cluster.MethodHierarchy

	res, err := cluster.Cluster(table, pairwise.NewCache(), opts)
	require.NoError(t, err)

	assert.Equal(t, cluster.AssignmentWithLinkage, res.Kind)
	require.NotNil(t, res.Linkage)
	rows, cols := res.Linkage.Dims()
	assert.Equal(t, 2, rows) // n-1 merges for n=3 leaves
	assert.Equal(t, 4, cols)

	require.Len(t, res.Genotypes, 2)
	assert.Equal(t, []string{"A", "B"}, res.Genotypes[0])
	assert.Equal(t, []string{"C"}, res.Genotypes[1])
	assertPartition(t, table, res.Genotypes)

	// The first merge joins the identical leaves 0 and 1 at distance 0.
	assert.Equal(t, 0.0, res.Linkage.At(0, 2))
	assert.Equal(t, 2.0, res.Linkage.At(0, 3))
}

// TestHierarchy_SingleTrajectory verifies the one-leaf dendrogram: one
// genotype, hierarchy kind, and no linkage rows because nothing merged.
func TestHierarchy_SingleTrajectory(t *testing.T) {
	table, err := timeseries.NewTable([]float64{0, 1})
	require.NoError(t, err)
	require.NoError(t, table.AddRow("A", []float64{0.1, 0.5}))

	opts := cluster.DefaultOptions()
	opts.Method = cluster.MethodHierarchy

	res, err := cluster.Cluster(table, pairwise.NewCache(), opts)
	require.NoError(t, err)
	assert.Equal(t, cluster.AssignmentWithLinkage, res.Kind)
	assert.Equal(t, [][]string{{"A"}}, res.Genotypes)
	assert.Nil(t, res.Linkage)
}
