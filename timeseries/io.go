package timeseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
)

// ErrEmptyInput indicates a table file with no data rows.
var ErrEmptyInput = errors.New("timeseries: input table has no data rows")

// numericColumn matches column headers that carry a timepoint behind a
// single non-digit prefix such as "t25" or "X44". Plain numeric headers are
// parsed whole, before this pattern is consulted.
var numericColumn = regexp.MustCompile(`^\D(?P<number>\d+)$`)

// headerTimepoint extracts the timepoint a column header encodes, if any.
func headerTimepoint(col string) (float64, bool) {
	if tp, err := strconv.ParseFloat(col, 64); err == nil && !math.IsNaN(tp) && !math.IsInf(tp, 0) {
		return tp, true
	}
	if m := numericColumn.FindStringSubmatch(col); m != nil {
		if tp, err := strconv.ParseFloat(m[1], 64); err == nil {
			return tp, true
		}
	}

	return 0, false
}

// ReadTable parses a delimited trajectory table. The first column holds the
// trajectory identifier; every header matching a numeric timepoint becomes a
// column of the table, in ascending timepoint order. All remaining columns
// are returned untouched as per-row metadata (display-only, never consumed
// by the pipeline). Empty cells become NaN.
func ReadTable(r io.Reader, comma rune) (*Table, map[string]map[string]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("timeseries: %w", err)
	}
	if len(records) < 2 {
		return nil, nil, ErrEmptyInput
	}

	header := records[0]
	var timepoints []float64
	var numericIdx []int
	var metaIdx []int
	for i, col := range header[1:] {
		idx := i + 1
		if tp, ok := headerTimepoint(col); ok {
			timepoints = append(timepoints, tp)
			numericIdx = append(numericIdx, idx)

			continue
		}
		metaIdx = append(metaIdx, idx)
	}

	table, err := NewTable(timepoints)
	if err != nil {
		return nil, nil, err
	}

	meta := map[string]map[string]string{}
	for _, rec := range records[1:] {
		id := rec[0]
		vals := make([]float64, len(numericIdx))
		for j, idx := range numericIdx {
			vals[j] = parseCell(rec[idx])
		}
		if err = table.AddRow(id, vals); err != nil {
			return nil, nil, err
		}
		if len(metaIdx) > 0 {
			row := map[string]string{}
			for _, idx := range metaIdx {
				row[header[idx]] = rec[idx]
			}
			meta[id] = row
		}
	}

	return table, meta, nil
}

// WriteTable emits the table in the same delimited layout ReadTable accepts,
// with idHeader naming the first column. NaN cells are written empty.
func WriteTable(w io.Writer, t *Table, idHeader string, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma

	header := []string{idHeader}
	for _, tp := range t.timepoints {
		header = append(header, formatTimepoint(tp))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("timeseries: %w", err)
	}

	for _, id := range t.ids {
		rec := []string{id}
		for _, v := range t.values[id] {
			if math.IsNaN(v) {
				rec = append(rec, "")
			} else {
				rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
			}
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("timeseries: %w", err)
		}
	}
	cw.Flush()

	return cw.Error()
}

func formatTimepoint(tp float64) string {
	if tp == math.Trunc(tp) {
		return strconv.FormatInt(int64(tp), 10)
	}

	return strconv.FormatFloat(tp, 'g', -1, 64)
}

func parseCell(cell string) float64 {
	if cell == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return math.NaN()
	}

	return v
}
