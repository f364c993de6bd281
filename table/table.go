// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package table implements ordered, immutable data tables.
//
// A Table is a collection of named columns, where each column is a
// Go slice and all columns have the same length. Columns are
// ordered, so a Table is also a sequence of records. A cell may be
// marked missing ("NA") without disturbing the element type of its
// column: missing cells keep the zero value in the column slice and
// are flagged in a separate boolean mask.
//
// Tables are immutable. Operations that change a table, such as
// Rename or SelectRows, return a new Table that shares column data
// with the original where possible. Tables are constructed with a
// Builder:
//
//	tab := new(table.Builder).
//		Add("name", []string{"Washington", "Adams"}).
//		Add("terms", []int{2, 1}).
//		Done()
//
// Because Tables share slices rather than copying them, callers must
// not modify a slice after handing it to a Builder or after
// retrieving it from a Table.
package table

import "fmt"

// A Slice is a Go slice of any element type, held as an interface.
type Slice interface{}

type column struct {
	name string
	data Slice
	na   []bool // nil if no cell in this column is missing
}

// A Table is an immutable, ordered collection of equal-length named
// columns. The zero value of Table is an empty table with no columns
// and no rows.
type Table struct {
	cols []column
	len  int
}

// Len returns the number of rows in Table t.
func (t *Table) Len() int {
	return t.len
}

// Columns returns the names of t's columns in order, or nil if t has
// no columns. The caller must not modify the returned slice.
func (t *Table) Columns() []string {
	if len(t.cols) == 0 {
		return nil
	}
	cols := make([]string, len(t.cols))
	for i := range t.cols {
		cols[i] = t.cols[i].name
	}
	return cols
}

// Column returns the data of column name as a Go slice, or nil if
// there is no such column. The caller must not modify the returned
// slice.
func (t *Table) Column(name string) Slice {
	c := t.find(name)
	if c == nil {
		return nil
	}
	return c.data
}

// MustColumn is like Column, but panics if there is no column with
// the given name.
func (t *Table) MustColumn(name string) Slice {
	return t.mustFind(name).data
}

// NA returns the missing-value mask of column name, or nil if no
// cell in the column is missing. NA panics if there is no such
// column. The caller must not modify the returned slice.
func (t *Table) NA(name string) []bool {
	return t.mustFind(name).na
}

// HasNA reports whether any cell in column name is missing. HasNA
// panics if there is no such column.
func (t *Table) HasNA(name string) bool {
	return t.mustFind(name).na != nil
}

// IsNA reports whether the cell at row i of column name is missing.
// IsNA panics if there is no such column or i is out of range.
func (t *Table) IsNA(name string, i int) bool {
	c := t.mustFind(name)
	if i < 0 || i >= t.len {
		panic(fmt.Sprintf("row %d out of range [0, %d)", i, t.len))
	}
	return c.na != nil && c.na[i]
}

func (t *Table) find(name string) *column {
	for i := range t.cols {
		if t.cols[i].name == name {
			return &t.cols[i]
		}
	}
	return nil
}

func (t *Table) mustFind(name string) *column {
	c := t.find(name)
	if c == nil {
		panic(fmt.Sprintf("unknown column %q", name))
	}
	return c
}

// normNA returns na, or nil if no element of na is true. A mask that
// marks nothing is canonically represented as a nil mask.
func normNA(na []bool) []bool {
	for _, x := range na {
		if x {
			return na
		}
	}
	return nil
}
