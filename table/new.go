// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"
	"reflect"
)

// A Builder constructs a Table one column at a time. The zero value
// of Builder is an empty builder, ready to use:
//
//	tab := new(table.Builder).Add("x", xs).Add("y", ys).Done()
//
// Builder methods panic on misuse, such as adding columns of unequal
// length. These are programmer errors, not data errors.
type Builder struct {
	cols []bcol
}

type bcol struct {
	name    string
	data    Slice
	n       int
	na      []bool
	cval    interface{}
	isConst bool
}

// NewBuilder returns a Builder with the same columns as Table t. If
// t is nil, it returns an empty Builder. The new Builder shares t's
// column data; it does not modify t.
func NewBuilder(t *Table) *Builder {
	b := new(Builder)
	if t == nil {
		return b
	}
	for _, c := range t.cols {
		b.cols = append(b.cols, bcol{name: c.name, data: c.data, n: t.len, na: c.na})
	}
	return b
}

// Add adds a column named name to the table being built and returns
// b. data must be a Go slice whose length matches the builder's
// other columns. If the builder already has a column with this name,
// Add replaces it, keeping its position; replacing the only
// non-constant column may change the table's length. If data is nil,
// Add instead removes the named column, if present.
func (b *Builder) Add(name string, data Slice) *Builder {
	return b.AddNA(name, data, nil)
}

// AddNA is like Add, but marks cell i missing for each i where na[i]
// is true. The data slice must hold a value at missing cells too;
// conventionally it holds the zero value. A nil na marks nothing
// missing.
func (b *Builder) AddNA(name string, data Slice, na []bool) *Builder {
	if data == nil {
		b.remove(name)
		return b
	}
	rv := reflect.ValueOf(data)
	if rv.Kind() != reflect.Slice {
		panic(fmt.Sprintf("column %q is not a slice (got %T)", name, data))
	}
	n := rv.Len()
	for _, c := range b.cols {
		if c.isConst || c.name == name {
			continue
		}
		if c.n != n {
			panic(fmt.Sprintf("column %q with %d rows does not match table with %d rows", name, n, c.n))
		}
	}
	if na != nil && len(na) != n {
		panic(fmt.Sprintf("na mask with %d values does not match column %q with %d rows", len(na), name, n))
	}
	b.set(bcol{name: name, data: data, n: n, na: normNA(na)})
	return b
}

// AddConst adds a column named name whose value is val in every row.
// The column is materialized as a slice when Done is called, using
// the length established by the table's other columns. If every
// column is constant, the table has one row.
func (b *Builder) AddConst(name string, val interface{}) *Builder {
	if val == nil {
		panic(fmt.Sprintf("constant for column %q is nil", name))
	}
	b.set(bcol{name: name, cval: val, isConst: true})
	return b
}

// Has reports whether the table being built has a column named name.
func (b *Builder) Has(name string) bool {
	for i := range b.cols {
		if b.cols[i].name == name {
			return true
		}
	}
	return false
}

func (b *Builder) set(c bcol) {
	for i := range b.cols {
		if b.cols[i].name == c.name {
			b.cols[i] = c
			return
		}
	}
	b.cols = append(b.cols, c)
}

func (b *Builder) remove(name string) {
	for i := range b.cols {
		if b.cols[i].name == name {
			copy(b.cols[i:], b.cols[i+1:])
			b.cols = b.cols[:len(b.cols)-1]
			return
		}
	}
}

// Done returns the constructed Table. The Builder remains valid and
// may be extended to build further tables.
func (b *Builder) Done() *Table {
	if len(b.cols) == 0 {
		return new(Table)
	}
	n, anyData := 0, false
	for _, c := range b.cols {
		if !c.isConst {
			n, anyData = c.n, true
			break
		}
	}
	if !anyData {
		n = 1
	}
	t := &Table{cols: make([]column, len(b.cols)), len: n}
	for i, c := range b.cols {
		if c.isConst {
			cv := reflect.ValueOf(c.cval)
			data := reflect.MakeSlice(reflect.SliceOf(cv.Type()), n, n)
			for j := 0; j < n; j++ {
				data.Index(j).Set(cv)
			}
			t.cols[i] = column{name: c.name, data: data.Interface()}
			continue
		}
		t.cols[i] = column{name: c.name, data: c.data, na: c.na}
	}
	return t
}

// TableFromStructs converts a slice of structs into a Table with one
// column per exported field, in field declaration order. Fields of
// embedded structs are promoted to columns of the outer table.
// TableFromStructs panics if data is not a slice of structs.
func TableFromStructs(data interface{}) *Table {
	rv := reflect.ValueOf(data)
	if rv.Kind() != reflect.Slice {
		panic(fmt.Sprintf("TableFromStructs: %T is not a slice", data))
	}
	et := rv.Type().Elem()
	if et.Kind() != reflect.Struct {
		panic(fmt.Sprintf("TableFromStructs: %T is not a slice of struct", data))
	}

	n := rv.Len()
	var b Builder
	var walk func(index []int, st reflect.Type)
	walk = func(index []int, st reflect.Type) {
		for i := 0; i < st.NumField(); i++ {
			f := st.Field(i)
			fidx := append(append([]int(nil), index...), i)
			if f.Anonymous && f.Type.Kind() == reflect.Struct {
				walk(fidx, f.Type)
				continue
			}
			if f.PkgPath != "" {
				continue
			}
			col := reflect.MakeSlice(reflect.SliceOf(f.Type), n, n)
			for j := 0; j < n; j++ {
				col.Index(j).Set(rv.Index(j).FieldByIndex(fidx))
			}
			b.Add(f.Name, col.Interface())
		}
	}
	walk(nil, et)
	return b.Done()
}

// TableFromStrings converts a matrix of strings, such as that
// returned by csv.Reader.ReadAll, into a Table. cols gives the
// column names and rows gives the rows, where rows[i][j] is the cell
// in row i of column j. If coerce is true, TableFromStrings converts
// each column whose cells can all be parsed by one of the
// DefaultValueParsers to that parser's type. For missing-value
// handling, use ReadCSV instead.
func TableFromStrings(cols []string, rows [][]string, coerce bool) *Table {
	var b Builder
	for i, col := range cols {
		data := make([]string, len(rows))
		for j, row := range rows {
			data[j] = row[i]
		}
		if coerce {
			if typed, ok := Coerce(data, nil, nil); ok {
				b.Add(col, typed)
				continue
			}
		}
		b.Add(col, data)
	}
	return b.Done()
}
