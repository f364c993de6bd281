// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reshape

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-tidy/internal/rowkey"
	"github.com/aclements/go-tidy/table"
)

// Wider reshapes a table from long form to wide form. It spreads
// name/value pairs out into new columns: each distinct name becomes
// a column, filled with the values paired with it. The remaining
// columns identify rows: input rows agreeing on all of them collapse
// into one output row.
type Wider struct {
	// NamesFrom lists the columns whose cells name the new
	// columns. If it is empty, it defaults to {"name"}. With
	// several NamesFrom columns, a new column's name joins one
	// cell of each, separated by NamesSep.
	NamesFrom []string

	// ValuesFrom lists the columns whose cells fill the new
	// columns. If it is empty, it defaults to {"value"}. With
	// several ValuesFrom columns, each distinct name makes one
	// new column per ValuesFrom column, named value_name.
	ValuesFrom []string

	// Fill, if non-nil, fills the cells of the new columns that
	// have no corresponding input row, and those whose input cell
	// is missing. If Fill is nil, such cells are missing. Fill
	// must have each ValuesFrom column's element type, or be
	// convertible to it if both are numeric.
	Fill interface{}

	// NamesPrefix is prepended to the name of each new column.
	NamesPrefix string

	// NamesSep separates the parts of a new column's name. If it
	// is empty, it defaults to "_".
	NamesSep string

	// VarySlowest orders the new columns so that names vary
	// slowest: the columns of all ValuesFrom for the first name,
	// then for the second name, and so on. By default names vary
	// fastest: the columns of all names for the first ValuesFrom
	// column, then for the second.
	VarySlowest bool

	// SortNames orders the new columns by name rather than by
	// first appearance.
	SortNames bool
}

// Apply reshapes t to wide form and returns the result. Two input
// rows that agree on the identifier columns and on NamesFrom would
// fill the same cell; Apply reports this as an error rather than
// guessing at an aggregation.
func (p Wider) Apply(t *table.Table) (*table.Table, error) {
	namesFrom := p.NamesFrom
	if len(namesFrom) == 0 {
		namesFrom = []string{"name"}
	}
	valuesFrom := p.ValuesFrom
	if len(valuesFrom) == 0 {
		valuesFrom = []string{"value"}
	}
	sep := p.NamesSep
	if sep == "" {
		sep = "_"
	}

	used := make(map[string]bool)
	for _, col := range append(append([]string(nil), namesFrom...), valuesFrom...) {
		if t.Column(col) == nil {
			return nil, fmt.Errorf("unknown column %q", col)
		}
		if used[col] {
			return nil, fmt.Errorf("column %q used twice", col)
		}
		used[col] = true
	}

	// The identifier columns define the output rows.
	var idCols []string
	for _, col := range t.Columns() {
		if !used[col] {
			idCols = append(idCols, col)
		}
	}

	// A missing name does not name a column.
	for _, col := range namesFrom {
		if na := t.NA(col); na != nil {
			for r, miss := range na {
				if miss {
					return nil, fmt.Errorf("missing value in NamesFrom column %q (row %d)", col, r)
				}
			}
		}
	}

	// Name each input row and collect the distinct names in
	// first-appearance order.
	nameOf := make([]int, t.Len())
	nameIdx := make(map[string]int)
	var names []string
	{
		data := make([]reflect.Value, len(namesFrom))
		for j, col := range namesFrom {
			data[j] = reflect.ValueOf(t.MustColumn(col))
		}
		parts := make([]string, len(namesFrom))
		for r := 0; r < t.Len(); r++ {
			for j := range data {
				parts[j] = fmt.Sprint(data[j].Index(r).Interface())
			}
			name := strings.Join(parts, sep)
			ni, ok := nameIdx[name]
			if !ok {
				ni = len(names)
				nameIdx[name] = ni
				names = append(names, name)
			}
			nameOf[r] = ni
		}
	}
	if p.SortNames {
		sorted := append([]string(nil), names...)
		sort.Strings(sorted)
		perm := make([]int, len(names))
		for i, name := range sorted {
			perm[nameIdx[name]] = i
		}
		for r := range nameOf {
			nameOf[r] = perm[nameOf[r]]
		}
		names = sorted
	}

	// Group the input rows by the identifier columns.
	groups := rowkey.Groups(t, idCols)
	groupOf := make([]int, t.Len())
	firstRow := make([]int, len(groups))
	for g, rows := range groups {
		firstRow[g] = rows[0]
		for _, r := range rows {
			groupOf[r] = g
		}
	}

	// colName returns the output column name for a ValuesFrom
	// column and a name index.
	colName := func(v, ni int) string {
		if len(valuesFrom) == 1 {
			return p.NamesPrefix + names[ni]
		}
		return p.NamesPrefix + valuesFrom[v] + sep + names[ni]
	}

	var b table.Builder
	outSet := make(map[string]bool)
	for _, col := range idCols {
		b.AddNA(col, slice.Select(t.Column(col), firstRow), gatherNA(t.NA(col), firstRow))
		outSet[col] = true
	}

	nG, nN := len(groups), len(names)
	type vcol struct {
		data reflect.Value
		na   []bool
		et   reflect.Type
		fill reflect.Value // zero Value if Fill is nil
		src  []int         // input row of each cell + 1, 0 if none
	}
	vcols := make([]vcol, len(valuesFrom))
	for v, col := range valuesFrom {
		data := t.MustColumn(col)
		et := reflect.TypeOf(data).Elem()
		vc := vcol{
			data: reflect.ValueOf(data),
			na:   t.NA(col),
			et:   et,
			src:  make([]int, nG*nN),
		}
		if p.Fill != nil {
			fv := reflect.ValueOf(p.Fill)
			switch {
			case fv.Type().AssignableTo(et):
			case isNumeric(fv.Kind()) && isNumeric(et.Kind()):
				fv = fv.Convert(et)
			default:
				return nil, fmt.Errorf("fill value %v (%T) does not match column %q (%s)", p.Fill, p.Fill, col, et)
			}
			vc.fill = fv
		}
		vcols[v] = vc
	}

	for r := 0; r < t.Len(); r++ {
		cell := groupOf[r]*nN + nameOf[r]
		for v := range vcols {
			vc := &vcols[v]
			if prev := vc.src[cell]; prev != 0 {
				return nil, fmt.Errorf("rows %d and %d both fill output column %q; cannot pivot duplicates", prev-1, r, colName(v, nameOf[r]))
			}
			vc.src[cell] = r + 1
		}
	}

	// Fill the output columns. Cells with no input row, or whose
	// input cell is missing, get Fill or stay missing.
	add := func(v, ni int) error {
		vc := &vcols[v]
		name := colName(v, ni)
		if err := claimColumn(outSet, name); err != nil {
			return err
		}
		out := reflect.MakeSlice(reflect.SliceOf(vc.et), nG, nG)
		var na []bool
		for g := 0; g < nG; g++ {
			r := vc.src[g*nN+ni] - 1
			if r >= 0 && (vc.na == nil || !vc.na[r]) {
				out.Index(g).Set(vc.data.Index(r))
				continue
			}
			if vc.fill.IsValid() {
				out.Index(g).Set(vc.fill)
				continue
			}
			if na == nil {
				na = make([]bool, nG)
			}
			na[g] = true
		}
		b.AddNA(name, out.Interface(), na)
		return nil
	}
	if p.VarySlowest {
		for ni := 0; ni < nN; ni++ {
			for v := range valuesFrom {
				if err := add(v, ni); err != nil {
					return nil, err
				}
			}
		}
	} else {
		for v := range valuesFrom {
			for ni := 0; ni < nN; ni++ {
				if err := add(v, ni); err != nil {
					return nil, err
				}
			}
		}
	}
	return b.Done(), nil
}
