// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package agg

import (
	"fmt"
	"reflect"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-tidy/table"
)

// Describe summarizes the named numeric columns of t, one row per
// column, reporting the count of present and missing cells and the
// mean, standard deviation, minimum, median, and maximum of the
// present cells. If no columns are named, it summarizes every
// numeric column of t. The five statistics are missing for a column
// with no present cells.
func Describe(t *table.Table, cols ...string) (*table.Table, error) {
	if len(cols) == 0 {
		for _, col := range t.Columns() {
			if isNumeric(reflect.TypeOf(t.Column(col)).Elem().Kind()) {
				cols = append(cols, col)
			}
		}
	}

	n := make([]int, len(cols))
	missing := make([]int, len(cols))
	axes := [...]struct {
		name string
		f    func([]float64) float64
	}{
		{"mean", stats.Mean},
		{"stddev", stdDev},
		{"min", func(xs []float64) float64 { min, _ := stats.Bounds(xs); return min }},
		{"median", func(xs []float64) float64 { return quantile(xs, 0.5) }},
		{"max", func(xs []float64) float64 { _, max := stats.Bounds(xs); return max }},
	}
	vals := make([][]float64, len(axes))
	for i := range vals {
		vals[i] = make([]float64, len(cols))
	}
	var mask []bool

	for i, col := range cols {
		data := t.Column(col)
		if data == nil {
			return nil, fmt.Errorf("unknown column %q", col)
		}
		if !isNumeric(reflect.TypeOf(data).Elem().Kind()) {
			return nil, fmt.Errorf("column %q is not numeric (got %T)", col, data)
		}
		var xs []float64
		slice.Convert(&xs, data)
		na := t.NA(col)

		var cells []float64
		for r, x := range xs {
			if na == nil || !na[r] {
				cells = append(cells, x)
			}
		}
		n[i] = len(cells)
		missing[i] = len(xs) - len(cells)
		if len(cells) == 0 {
			if mask == nil {
				mask = make([]bool, len(cols))
			}
			mask[i] = true
			continue
		}
		for a, axis := range axes {
			vals[a][i] = axis.f(cells)
		}
	}

	var b table.Builder
	b.Add("column", cols).Add("n", n).Add("missing", missing)
	for a, axis := range axes {
		b.AddNA(axis.name, vals[a], mask)
	}
	return b.Done(), nil
}
