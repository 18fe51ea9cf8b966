// Package timeseries defines the frequency time-series value types shared by
// the whole pipeline: a Series is one trajectory (timepoint → frequency in
// [0,1]) and a Table is an ordered collection of Series over one common
// timepoint axis.
//
// Tables are built once and treated as read-only afterwards; every transform
// elsewhere in the module returns a new value instead of mutating a shared
// table. Missing measurements are represented as NaN, never as zero.
package timeseries

import (
	"errors"
	"math"
	"sort"
)

// Sentinel errors for table construction and lookup.
var (
	// ErrNoTimepoints indicates a table was constructed with an empty timepoint axis.
	ErrNoTimepoints = errors.New("timeseries: table must have at least one timepoint")
	// ErrRowLength indicates a row whose value count does not match the timepoint axis.
	ErrRowLength = errors.New("timeseries: row length does not match timepoint count")
	// ErrDuplicateRow indicates two rows sharing the same identifier.
	ErrDuplicateRow = errors.New("timeseries: duplicate row identifier")
	// ErrRowNotFound indicates a lookup for an identifier the table does not contain.
	ErrRowNotFound = errors.New("timeseries: row not found")
)

// Series is one frequency trajectory: parallel slices of timepoints and
// observed frequencies. Timepoints ascend; a NaN value means the measurement
// is absent at that timepoint.
type Series struct {
	Timepoints []float64
	Values     []float64
}

// Len returns the number of timepoints in the series.
func (s Series) Len() int { return len(s.Timepoints) }

// FirstAbove returns the earliest timepoint whose value strictly exceeds
// threshold, and whether such a timepoint exists.
func (s Series) FirstAbove(threshold float64) (float64, bool) {
	for i, v := range s.Values {
		if v > threshold {
			return s.Timepoints[i], true
		}
	}

	return 0, false
}

// Fixed reports whether the series exceeds flimit at any timepoint.
func (s Series) Fixed(flimit float64) bool {
	_, ok := s.FirstAbove(flimit)

	return ok
}

// Sum returns the total of all present (non-NaN) values.
func (s Series) Sum() float64 {
	var total float64
	for _, v := range s.Values {
		if !math.IsNaN(v) {
			total += v
		}
	}

	return total
}

// Table is an immutable row-major frequency table: one row per trajectory or
// genotype, one column per timepoint. Row order is the insertion order and is
// significant (the clustering and sorting stages are defined relative to it).
type Table struct {
	timepoints []float64
	perm       []int // original axis position of each sorted column
	ids        []string
	values     map[string][]float64
}

// NewTable creates an empty table over the given timepoint axis. The axis is
// copied and sorted ascending; rows added later must be aligned to the
// caller's original axis order and are permuted to match.
func NewTable(timepoints []float64) (*Table, error) {
	if len(timepoints) == 0 {
		return nil, ErrNoTimepoints
	}
	perm := make([]int, len(timepoints))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool { return timepoints[perm[a]] < timepoints[perm[b]] })

	sorted := make([]float64, len(timepoints))
	for i, p := range perm {
		sorted[i] = timepoints[p]
	}

	return &Table{
		timepoints: sorted,
		perm:       perm,
		ids:        nil,
		values:     map[string][]float64{},
	}, nil
}

// AddRow appends a row aligned to the axis passed to NewTable. Values are
// copied; the caller keeps ownership of its slice.
func (t *Table) AddRow(id string, vals []float64) error {
	if len(vals) != len(t.timepoints) {
		return ErrRowLength
	}
	if _, ok := t.values[id]; ok {
		return ErrDuplicateRow
	}
	row := make([]float64, len(vals))
	for i, p := range t.perm {
		row[i] = vals[p]
	}
	t.ids = append(t.ids, id)
	t.values[id] = row

	return nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.ids) }

// IDs returns the row identifiers in table order. The slice is a copy.
func (t *Table) IDs() []string {
	out := make([]string, len(t.ids))
	copy(out, t.ids)

	return out
}

// Timepoints returns the ascending timepoint axis. The slice is a copy.
func (t *Table) Timepoints() []float64 {
	out := make([]float64, len(t.timepoints))
	copy(out, t.timepoints)

	return out
}

// Row returns the series for id, or ErrRowNotFound.
func (t *Table) Row(id string) (Series, error) {
	vals, ok := t.values[id]
	if !ok {
		return Series{}, ErrRowNotFound
	}

	return Series{Timepoints: t.timepoints, Values: vals}, nil
}

// Reorder returns a new table containing exactly the rows named in ids, in
// that order. Every id must exist in the receiver.
func (t *Table) Reorder(ids []string) (*Table, error) {
	out, err := NewTable(t.timepoints)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		vals, ok := t.values[id]
		if !ok {
			return nil, ErrRowNotFound
		}
		if err = out.AddRow(id, vals); err != nil {
			return nil, err
		}
	}

	return out, nil
}
