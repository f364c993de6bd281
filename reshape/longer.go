// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reshape

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-tidy/table"
)

// Value is the reserved element for Longer.NamesTo. The part of a
// decomposed column name aligned with Value does not fill a name
// column; it names the output value column that receives the
// collapsed column's cells.
const Value = ".value"

// Longer reshapes a table from wide form to long form. It collapses
// a set of columns into pairs: the column's name and the column's
// cell. The remaining columns repeat alongside the pairs, so every
// cell of the input appears exactly once in the output.
type Longer struct {
	// Columns lists the columns to collapse.
	Columns []string

	// NamesTo names the new column or columns that receive the
	// collapsed column names. If it is empty, it defaults to
	// {"name"}.
	//
	// If NamesTo has more than one element, each collapsed column
	// name is decomposed into parts using NamesSep or
	// NamesPattern, and part i fills column NamesTo[i]. One
	// element may be the reserved Value marker; see Value.
	NamesTo []string

	// NamesSep, if set, splits each collapsed column name into
	// len(NamesTo) parts on a separator.
	NamesSep string

	// NamesPattern, if set, decomposes each collapsed column name
	// with a regular expression whose capture group i+1 yields
	// part i. At most one of NamesSep and NamesPattern may be
	// set.
	NamesPattern string

	// NamesPrefix is stripped from the start of each collapsed
	// column name before decomposition.
	NamesPrefix string

	// CoerceNames converts a name column to a structured type
	// (int, float64, ...) when every one of its parts parses as
	// that type, as by table.Coerce. Otherwise name columns are
	// strings.
	CoerceNames bool

	// ValuesTo names the new column that receives the collapsed
	// cells. If it is empty, it defaults to "value". It must be
	// left empty when NamesTo contains Value.
	ValuesTo string

	// DropMissing drops output rows whose value cells are all
	// missing. Wider can restore such rows only as missing cells,
	// so DropMissing trades the round-trip property for a denser
	// table.
	DropMissing bool
}

// Apply reshapes t to long form and returns the result. Collapsed
// columns of different element types unify to float64 when all are
// numeric; otherwise Apply reports an error.
func (p Longer) Apply(t *table.Table) (*table.Table, error) {
	if len(p.Columns) == 0 {
		return nil, errors.New("no columns to collapse")
	}
	colSet := make(map[string]bool, len(p.Columns))
	for _, col := range p.Columns {
		if t.Column(col) == nil {
			return nil, fmt.Errorf("unknown column %q", col)
		}
		if colSet[col] {
			return nil, fmt.Errorf("duplicate column %q", col)
		}
		colSet[col] = true
	}

	namesTo := p.NamesTo
	if len(namesTo) == 0 {
		namesTo = []string{"name"}
	}
	valuePos := -1
	nameSet := make(map[string]bool, len(namesTo))
	for i, name := range namesTo {
		if name == Value {
			if valuePos >= 0 {
				return nil, fmt.Errorf("NamesTo contains %q twice", Value)
			}
			valuePos = i
			continue
		}
		if nameSet[name] {
			return nil, fmt.Errorf("duplicate name %q in NamesTo", name)
		}
		nameSet[name] = true
	}
	if valuePos >= 0 && p.ValuesTo != "" {
		return nil, fmt.Errorf("ValuesTo must be left empty when NamesTo contains %q", Value)
	}

	sp, err := newSplitter(p.NamesPrefix, p.NamesSep, p.NamesPattern, len(namesTo))
	if err != nil {
		return nil, err
	}
	parts := make([][]string, len(p.Columns))
	for i, col := range p.Columns {
		if parts[i], err = sp.split(col); err != nil {
			return nil, err
		}
	}

	// The identifier columns repeat alongside the pairs.
	var idCols []string
	outSet := make(map[string]bool)
	for _, col := range t.Columns() {
		if !colSet[col] {
			idCols = append(idCols, col)
			outSet[col] = true
		}
	}

	if valuePos < 0 {
		return p.longSimple(t, idCols, namesTo, parts, outSet)
	}
	return p.longMulti(t, idCols, namesTo, valuePos, parts, outSet)
}

func claimColumn(set map[string]bool, name string) error {
	if set[name] {
		return fmt.Errorf("output column %q already exists", name)
	}
	set[name] = true
	return nil
}

// longSimple collapses into name columns and a single value column.
func (p Longer) longSimple(t *table.Table, idCols, namesTo []string, parts [][]string, outSet map[string]bool) (*table.Table, error) {
	valuesTo := p.ValuesTo
	if valuesTo == "" {
		valuesTo = "value"
	}
	for _, name := range namesTo {
		if err := claimColumn(outSet, name); err != nil {
			return nil, err
		}
	}
	if err := claimColumn(outSet, valuesTo); err != nil {
		return nil, err
	}

	et, err := unify(t, p.Columns)
	if err != nil {
		return nil, err
	}

	// Output rows follow the input row-major: all pairs of input
	// row 0, then of input row 1, and so on.
	n, k := t.Len(), len(p.Columns)
	idx := make([]int, n*k)
	for i := range idx {
		idx[i] = i / k
	}

	var b table.Builder
	for _, col := range idCols {
		b.AddNA(col, slice.Select(t.Column(col), idx), gatherNA(t.NA(col), idx))
	}
	for j, name := range namesTo {
		vals := make([]string, n*k)
		for r := 0; r < n; r++ {
			for c := 0; c < k; c++ {
				vals[r*k+c] = parts[c][j]
			}
		}
		b.Add(name, p.nameData(vals))
	}

	cells := make([]reflect.Value, k)
	nas := make([][]bool, k)
	var na []bool
	for c, col := range p.Columns {
		cells[c], nas[c] = columnValues(t, col, et)
		if nas[c] != nil && na == nil {
			na = make([]bool, n*k)
		}
	}
	out := reflect.MakeSlice(reflect.SliceOf(et), n*k, n*k)
	for r := 0; r < n; r++ {
		for c := 0; c < k; c++ {
			out.Index(r*k + c).Set(cells[c].Index(r))
			if na != nil && nas[c] != nil {
				na[r*k+c] = nas[c][r]
			}
		}
	}
	b.AddNA(valuesTo, out.Interface(), na)

	res := b.Done()
	if p.DropMissing {
		res = dropAllMissing(res, []string{valuesTo})
	}
	return res, nil
}

// longMulti collapses into key columns and one value column per
// distinct Value part. Each collapsed column supplies the cells of
// one value column at one key.
func (p Longer) longMulti(t *table.Table, idCols, namesTo []string, valuePos int, parts [][]string, outSet map[string]bool) (*table.Table, error) {
	keyOf := func(part []string) []string {
		key := make([]string, 0, len(part)-1)
		for i, s := range part {
			if i != valuePos {
				key = append(key, s)
			}
		}
		return key
	}
	var keyNames []string
	for i, name := range namesTo {
		if i != valuePos {
			keyNames = append(keyNames, name)
		}
	}
	for _, name := range keyNames {
		if err := claimColumn(outSet, name); err != nil {
			return nil, err
		}
	}

	// Collect the distinct key tuples and value column names in
	// order of first appearance.
	keyIdx := make(map[string]int)
	var keys [][]string
	vIdx := make(map[string]int)
	var vNames []string
	for _, part := range parts {
		key := keyOf(part)
		enc := quoteJoin(key)
		if _, ok := keyIdx[enc]; !ok {
			keyIdx[enc] = len(keys)
			keys = append(keys, key)
		}
		if _, ok := vIdx[part[valuePos]]; !ok {
			vIdx[part[valuePos]] = len(vNames)
			vNames = append(vNames, part[valuePos])
		}
	}

	// src[v][k] is the collapsed column filling value column v at
	// key k, or -1 if no column does.
	src := make([][]int, len(vNames))
	for v := range src {
		src[v] = make([]int, len(keys))
		for k := range src[v] {
			src[v][k] = -1
		}
	}
	for c, part := range parts {
		v := vIdx[part[valuePos]]
		k := keyIdx[quoteJoin(keyOf(part))]
		if prev := src[v][k]; prev >= 0 {
			return nil, fmt.Errorf("columns %q and %q decompose to the same parts", p.Columns[prev], p.Columns[c])
		}
		src[v][k] = c
	}
	for _, name := range vNames {
		if err := claimColumn(outSet, name); err != nil {
			return nil, err
		}
	}

	n, nk := t.Len(), len(keys)
	idx := make([]int, n*nk)
	for i := range idx {
		idx[i] = i / nk
	}

	var b table.Builder
	for _, col := range idCols {
		b.AddNA(col, slice.Select(t.Column(col), idx), gatherNA(t.NA(col), idx))
	}
	for j, name := range keyNames {
		vals := make([]string, n*nk)
		for r := 0; r < n; r++ {
			for k := 0; k < nk; k++ {
				vals[r*nk+k] = keys[k][j]
			}
		}
		b.Add(name, p.nameData(vals))
	}

	for v, vName := range vNames {
		var contrib []string
		for k := range keys {
			if c := src[v][k]; c >= 0 {
				contrib = append(contrib, p.Columns[c])
			}
		}
		et, err := unify(t, contrib)
		if err != nil {
			return nil, err
		}

		cells := make([]reflect.Value, nk)
		nas := make([][]bool, nk)
		needNA := false
		for k := range keys {
			c := src[v][k]
			if c < 0 {
				needNA = true
				continue
			}
			cells[k], nas[k] = columnValues(t, p.Columns[c], et)
			needNA = needNA || nas[k] != nil
		}
		out := reflect.MakeSlice(reflect.SliceOf(et), n*nk, n*nk)
		var na []bool
		if needNA {
			na = make([]bool, n*nk)
		}
		for r := 0; r < n; r++ {
			for k := 0; k < nk; k++ {
				if src[v][k] < 0 {
					na[r*nk+k] = true // no column for this cell
					continue
				}
				out.Index(r*nk + k).Set(cells[k].Index(r))
				if nas[k] != nil {
					na[r*nk+k] = nas[k][r]
				}
			}
		}
		b.AddNA(vName, out.Interface(), na)
	}

	res := b.Done()
	if p.DropMissing {
		res = dropAllMissing(res, vNames)
	}
	return res, nil
}

// nameData coerces decomposed name parts if CoerceNames is set.
func (p Longer) nameData(vals []string) table.Slice {
	if p.CoerceNames {
		if typed, ok := table.Coerce(vals, nil, nil); ok {
			return typed
		}
	}
	return vals
}

// dropAllMissing returns t without the rows where every one of cols
// is missing.
func dropAllMissing(t *table.Table, cols []string) *table.Table {
	nas := make([][]bool, len(cols))
	for i, col := range cols {
		nas[i] = t.NA(col)
	}
	keep := make([]int, 0, t.Len())
	for r := 0; r < t.Len(); r++ {
		drop := true
		for _, na := range nas {
			if na == nil || !na[r] {
				drop = false
				break
			}
		}
		if !drop {
			keep = append(keep, r)
		}
	}
	if len(keep) == t.Len() {
		return t
	}
	return table.SelectRows(t, keep)
}

// quoteJoin encodes a tuple of strings so that distinct tuples have
// distinct encodings.
func quoteJoin(parts []string) string {
	q := make([]string, len(parts))
	for i, p := range parts {
		q[i] = strconv.Quote(p)
	}
	return strings.Join(q, "\x1f")
}
