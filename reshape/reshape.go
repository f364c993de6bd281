// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reshape converts tables between wide and long layouts.
//
// A table is in long form when every variable is a column and every
// observation is a row. Data often arrives in wide form instead,
// with one variable's values spread across many column names:
//
//	country  1999  2000
//	Brazil     37    80
//	China     212   213
//
// Longer collapses such columns into name/value pairs:
//
//	out, err := reshape.Longer{
//		Columns: []string{"1999", "2000"},
//		NamesTo: []string{"year"},
//		ValuesTo: "cases",
//	}.Apply(tab)
//
//	country  year  cases
//	Brazil   1999     37
//	Brazil   2000     80
//	China    1999    212
//	China    2000    213
//
// Wider spreads name/value pairs back out into columns. The two
// operations are inverses: applying Wider to the output of Longer
// with a matching configuration reproduces the original table.
//
// Reshaping configurations are declarative option structs in the
// manner of ggstat. Unlike table construction, reshaping is driven
// by data and configuration together, so mistakes are reported as
// errors rather than panics.
package reshape

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-tidy/table"
	"golang.org/x/exp/maps"
)

var float64Type = reflect.TypeOf(float64(0))

// Matching returns the names of t's columns that match the regular
// expression pattern, in table order. It is a convenience for
// building Longer.Columns when the columns to collapse share a
// syntactic form, such as "^wk".
func Matching(t *table.Table, pattern string) ([]string, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	var cols []string
	for _, col := range t.Columns() {
		if re.MatchString(col) {
			cols = append(cols, col)
		}
	}
	return cols, nil
}

// gatherNA returns the mask with gathered[i] = na[idx[i]], or nil if
// na is nil.
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

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// unify returns the common element type of the given columns of t.
// Columns of one type unify to that type and numeric columns of
// mixed types unify to float64. Anything else is an error.
func unify(t *table.Table, cols []string) (reflect.Type, error) {
	var et reflect.Type
	numeric := true
	seen := make(map[string]bool)
	for _, col := range cols {
		ct := reflect.TypeOf(t.MustColumn(col)).Elem()
		seen[ct.String()] = true
		if et == nil {
			et = ct
		}
		if !isNumeric(ct.Kind()) {
			numeric = false
		}
	}
	if len(seen) <= 1 {
		return et, nil
	}
	if numeric {
		return float64Type, nil
	}
	types := maps.Keys(seen)
	sort.Strings(types)
	return nil, fmt.Errorf("cannot collapse columns of types %s", strings.Join(types, ", "))
}

// columnValues returns the data of column col along with its
// missing-value mask. If the column's element type is not et, the
// data is converted; unify only crosses types to reach float64.
func columnValues(t *table.Table, col string, et reflect.Type) (reflect.Value, []bool) {
	data := t.MustColumn(col)
	if reflect.TypeOf(data).Elem() != et {
		var fs []float64
		slice.Convert(&fs, data)
		data = fs
	}
	return reflect.ValueOf(data), t.NA(col)
}
