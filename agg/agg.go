// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package agg summarizes tables by group.
//
// An aggregation names the columns that identify groups and the
// summaries to compute over each group:
//
//	out, err := agg.Agg("country")(agg.AggMean("cases"), agg.AggMax("cases")).Apply(t)
//
// The result has one row per distinct combination of the grouping
// columns, in order of first appearance, holding the grouping
// columns and one column per summary, named after the operation and
// the summarized column ("mean cases", "max cases"). With no
// grouping columns the whole table forms one group.
//
// Summaries reduce []float64 to float64. Missing cells are dropped
// before reducing; a group whose cells are all missing gets a
// missing summary cell. Two rows group together when they agree in
// every grouping column, where missing cells agree with each other.
package agg

import (
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"github.com/aclements/go-tidy/internal/rowkey"
	"github.com/aclements/go-tidy/table"
)

// An Agger adds summary columns over groups of rows to a table
// under construction.
type Agger func(t *table.Table, groups [][]int, out *table.Builder) error

// An Aggregate is a configured aggregation, ready to apply to a
// table.
type Aggregate struct {
	by   []string
	aggs []Agger
}

// Agg groups rows by the given columns and returns a function that
// completes the aggregation from a set of summaries.
func Agg(by ...string) func(aggs ...Agger) Aggregate {
	return func(aggs ...Agger) Aggregate {
		return Aggregate{by, aggs}
	}
}

// Apply computes a's summaries over the groups of t.
func (a Aggregate) Apply(t *table.Table) (*table.Table, error) {
	for _, col := range a.by {
		if t.Column(col) == nil {
			return nil, fmt.Errorf("unknown column %q", col)
		}
	}
	groups := rowkey.Groups(t, a.by)
	first := make([]int, len(groups))
	for g, rows := range groups {
		first[g] = rows[0]
	}

	var b table.Builder
	for _, col := range a.by {
		b.AddNA(col, slice.Select(t.Column(col), first), gatherNA(t.NA(col), first))
	}
	for _, agg := range a.aggs {
		if err := agg(t, groups, &b); err != nil {
			return nil, err
		}
	}
	return b.Done(), nil
}

// Count returns one row per distinct combination of the given
// columns of t, with an "n" column holding each combination's row
// count.
func Count(t *table.Table, cols ...string) (*table.Table, error) {
	return Agg(cols...)(AggCount()).Apply(t)
}

// AggCount counts the rows of each group into a column named "n".
func AggCount() Agger {
	return func(t *table.Table, groups [][]int, out *table.Builder) error {
		ns := make([]int, len(groups))
		for g, rows := range groups {
			ns[g] = len(rows)
		}
		out.Add("n", ns)
		return nil
	}
}

// AggFn summarizes each of cols with f, adding one column per
// summarized column, named "op col".
func AggFn(f func([]float64) float64, op string, cols ...string) Agger {
	return func(t *table.Table, groups [][]int, out *table.Builder) error {
		for _, col := range cols {
			data := t.Column(col)
			if data == nil {
				return fmt.Errorf("unknown column %q", col)
			}
			if !isNumeric(reflect.TypeOf(data).Elem().Kind()) {
				return fmt.Errorf("column %q is not numeric (got %T)", col, data)
			}
			var xs []float64
			slice.Convert(&xs, data)
			na := t.NA(col)

			vals := make([]float64, len(groups))
			var mask []bool
			var cells []float64
			for g, rows := range groups {
				cells = cells[:0]
				for _, r := range rows {
					if na == nil || !na[r] {
						cells = append(cells, xs[r])
					}
				}
				if len(cells) == 0 {
					if mask == nil {
						mask = make([]bool, len(groups))
					}
					mask[g] = true
					continue
				}
				vals[g] = f(cells)
			}
			out.AddNA(op+" "+col, vals, mask)
		}
		return nil
	}
}

// AggMean summarizes each of cols with its arithmetic mean.
func AggMean(cols ...string) Agger {
	return AggFn(stats.Mean, "mean", cols...)
}

// AggGeoMean summarizes each of cols with its geometric mean.
func AggGeoMean(cols ...string) Agger {
	return AggFn(stats.GeoMean, "geomean", cols...)
}

// AggSum summarizes each of cols with its sum.
func AggSum(cols ...string) Agger {
	return AggFn(vec.Sum, "sum", cols...)
}

// AggMin summarizes each of cols with its smallest value.
func AggMin(cols ...string) Agger {
	return AggFn(func(xs []float64) float64 {
		min, _ := stats.Bounds(xs)
		return min
	}, "min", cols...)
}

// AggMax summarizes each of cols with its largest value.
func AggMax(cols ...string) Agger {
	return AggFn(func(xs []float64) float64 {
		_, max := stats.Bounds(xs)
		return max
	}, "max", cols...)
}

// AggMedian summarizes each of cols with its median.
func AggMedian(cols ...string) Agger {
	return AggFn(func(xs []float64) float64 {
		return quantile(xs, 0.5)
	}, "median", cols...)
}

// AggQuantile summarizes each of cols with its qth quantile, naming
// the columns "p50 col", "p90 col", and so on.
func AggQuantile(q float64, cols ...string) Agger {
	return AggFn(func(xs []float64) float64 {
		return quantile(xs, q)
	}, fmt.Sprintf("p%g", q*100), cols...)
}

// AggStdDev summarizes each of cols with its sample standard
// deviation. The standard deviation of a single value is 0.
func AggStdDev(cols ...string) Agger {
	return AggFn(stdDev, "stddev", cols...)
}

// quantile returns the qth quantile of xs by nearest rank. It
// reorders xs.
func quantile(xs []float64, q float64) float64 {
	sort.Float64s(xs)
	i := int(q * float64(len(xs)))
	if i < 0 {
		i = 0
	} else if i >= len(xs) {
		i = len(xs) - 1
	}
	return xs[i]
}

func stdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	mean := stats.Mean(xs)
	var ss float64
	for _, x := range xs {
		ss += (x - mean) * (x - mean)
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func gatherNA(na []bool, idx []int) []bool {
	if na == nil {
		return nil
	}
	out := make([]bool, len(idx))
	for i, r := range idx {
		out[i] = na[r]
	}
	return out
}
