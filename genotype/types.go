// Package genotype defines the genotype value types produced by clustering:
// a genotype is an ordered set of member trajectories reduced to one mean
// frequency series. The reserved identity "genotype-0" names the unsampled
// ancestral background; it never has members of its own.
package genotype

import (
	"errors"
	"fmt"
	"math"

	"github.com/clonalstack/clonaltrace/timeseries"
)

// Root is the reserved synthetic ancestor every lineage terminates at.
const Root = "genotype-0"

// Sentinel errors.
var (
	// ErrNoMembers indicates a cluster with an empty member list.
	ErrNoMembers = errors.New("genotype: every genotype must have at least one member")
	// ErrUnknownMember indicates a member trajectory missing from the source table.
	ErrUnknownMember = errors.New("genotype: member trajectory not present in table")
	// ErrNotFound indicates a lookup for a genotype the table does not contain.
	ErrNotFound = errors.New("genotype: genotype not found")
)

// Name returns the canonical identity for the i-th genotype (1-based).
func Name(i int) string { return fmt.Sprintf("genotype-%d", i) }

// Genotype is one inferred cluster: its identity, its member trajectories in
// assignment order, and the member-mean frequency series.
type Genotype struct {
	Name    string
	Members []string
	Mean    timeseries.Series
}

// Table is the ordered genotype collection over one timepoint axis.
// Immutable after construction; reorderings produce new tables.
type Table struct {
	Timepoints []float64
	Genotypes  []Genotype
	index      map[string]int
}

// Row returns the genotype named id, or ErrNotFound.
func (t *Table) Row(id string) (Genotype, error) {
	i, ok := t.index[id]
	if !ok {
		return Genotype{}, ErrNotFound
	}

	return t.Genotypes[i], nil
}

// IDs returns the genotype identities in table order.
func (t *Table) IDs() []string {
	out := make([]string, len(t.Genotypes))
	for i, g := range t.Genotypes {
		out[i] = g.Name
	}

	return out
}

// Reorder returns a new table holding the same genotypes in the given order.
// ids must be a permutation of the table's identities.
func (t *Table) Reorder(ids []string) (*Table, error) {
	if len(ids) != len(t.Genotypes) {
		return nil, ErrNotFound
	}
	out := &Table{Timepoints: t.Timepoints, index: map[string]int{}}
	for _, id := range ids {
		g, err := t.Row(id)
		if err != nil {
			return nil, err
		}
		out.index[id] = len(out.Genotypes)
		out.Genotypes = append(out.Genotypes, g)
	}

	return out, nil
}

// MemberIndex maps every member trajectory back to its genotype identity.
func (t *Table) MemberIndex() map[string]string {
	index := map[string]string{}
	for _, g := range t.Genotypes {
		for _, m := range g.Members {
			index[m] = g.Name
		}
	}

	return index
}

// Mean reduces each cluster of member trajectories to a genotype with the
// elementwise mean frequency series. Genotypes are named genotype-1..N in
// cluster order. A NaN member value is treated as absent rather than zero:
// the mean at a timepoint is taken over the present values only, and stays
// NaN when every member is absent there. The timepoint axis of the source
// table is already ascending, so columns come out sorted.
func Mean(table *timeseries.Table, clusters [][]string) (*Table, error) {
	tps := table.Timepoints()
	out := &Table{Timepoints: tps, index: map[string]int{}}

	for ci, members := range clusters {
		if len(members) == 0 {
			return nil, ErrNoMembers
		}
		mean := make([]float64, len(tps))
		count := make([]int, len(tps))
		for _, id := range members {
			row, err := table.Row(id)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrUnknownMember, id)
			}
			for i, v := range row.Values {
				if math.IsNaN(v) {
					continue
				}
				mean[i] += v
				count[i]++
			}
		}
		for i := range mean {
			if count[i] == 0 {
				mean[i] = math.NaN()
			} else {
				mean[i] /= float64(count[i])
			}
		}

		name := Name(ci + 1)
		out.index[name] = len(out.Genotypes)
		out.Genotypes = append(out.Genotypes, Genotype{
			Name:    name,
			Members: append([]string(nil), members...),
			Mean:    timeseries.Series{Timepoints: tps, Values: mean},
		})
	}

	return out, nil
}
