// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"
	"reflect"

	"github.com/aclements/go-gg/generic/slice"
)

// SelectRows returns a Table with the rows of t given by rows, in
// order. A row index may appear any number of times.
func SelectRows(t *Table, rows []int) *Table {
	var b Builder
	for _, c := range t.cols {
		data := slice.Select(c.data, rows)
		var na []bool
		if c.na != nil {
			na = make([]bool, len(rows))
			for i, r := range rows {
				na[i] = c.na[r]
			}
		}
		b.AddNA(c.name, data, na)
	}
	return b.Done()
}

// Rename returns a Table with column old renamed to new. Rename
// panics if old is not a column of t or if t already has a column
// named new.
func Rename(t *Table, old, new string) *Table {
	t.mustFind(old)
	if old == new {
		return t
	}
	if t.find(new) != nil {
		panic(fmt.Sprintf("column %q already exists", new))
	}
	nt := &Table{cols: append([]column(nil), t.cols...), len: t.len}
	nt.mustFind(old).name = new
	return nt
}

// Remove returns a Table without column name. Removing the only
// column yields the empty Table. Remove panics if name is not a
// column of t.
func Remove(t *Table, name string) *Table {
	t.mustFind(name)
	if len(t.cols) == 1 {
		return new(Table)
	}
	nt := &Table{cols: make([]column, 0, len(t.cols)-1), len: t.len}
	for _, c := range t.cols {
		if c.name != name {
			nt.cols = append(nt.cols, c)
		}
	}
	return nt
}

// Concat returns a Table with the rows of each of ts in order.
// Tables with no columns are ignored; the rest must have the same
// columns in the same order, with the same element types. Concat of
// nothing is the empty Table.
func Concat(ts ...*Table) *Table {
	nonEmpty := ts[:0:0]
	for _, t := range ts {
		if len(t.cols) > 0 {
			nonEmpty = append(nonEmpty, t)
		}
	}
	if len(nonEmpty) == 0 {
		return new(Table)
	}
	cols := nonEmpty[0].Columns()
	for _, t := range nonEmpty[1:] {
		if !reflect.DeepEqual(cols, t.Columns()) {
			panic(fmt.Sprintf("tables have different columns: %v and %v", cols, t.Columns()))
		}
	}

	var b Builder
	for _, col := range cols {
		datas := make([]slice.T, len(nonEmpty))
		n, anyNA := 0, false
		for i, t := range nonEmpty {
			datas[i] = t.Column(col)
			n += t.Len()
			anyNA = anyNA || t.HasNA(col)
		}
		var na []bool
		if anyNA {
			na = make([]bool, 0, n)
			for _, t := range nonEmpty {
				tna := t.NA(col)
				if tna == nil {
					na = append(na, make([]bool, t.Len())...)
				} else {
					na = append(na, tna...)
				}
			}
		}
		b.AddNA(col, slice.Concat(datas...), na)
	}
	return b.Done()
}

// Levels returns the distinct non-missing values of column name in
// order of first appearance. Levels panics if name is not a column
// of t.
func Levels(t *Table, name string) Slice {
	c := t.mustFind(name)
	if c.na == nil {
		return slice.Nub(c.data)
	}
	keep := make([]int, 0, t.len)
	for i := 0; i < t.len; i++ {
		if !c.na[i] {
			keep = append(keep, i)
		}
	}
	return slice.Nub(slice.Select(c.data, keep))
}
