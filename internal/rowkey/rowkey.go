// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rowkey builds canonical string keys for table rows.
package rowkey

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/aclements/go-tidy/table"
)

// missing is the encoding of a missing cell. It cannot collide with
// an encoded value: strings are quoted and other values never
// contain a NUL byte.
const missing = "\x00NA\x00"

// sep separates the encoded cells of a key.
const sep = "\x1f"

// A Keyer encodes a fixed set of columns of a table's rows as
// strings. Two rows have equal keys if and only if they agree in
// every keyed column, where two cells agree when both are missing or
// both hold equal values.
type Keyer struct {
	data []reflect.Value
	na   [][]bool
}

// New returns a Keyer over the given columns of t. The columns must
// exist.
func New(t *table.Table, cols []string) *Keyer {
	k := &Keyer{
		data: make([]reflect.Value, len(cols)),
		na:   make([][]bool, len(cols)),
	}
	for i, col := range cols {
		k.data[i] = reflect.ValueOf(t.MustColumn(col))
		k.na[i] = t.NA(col)
	}
	return k
}

// Key returns the key of row i.
func (k *Keyer) Key(i int) string {
	var b strings.Builder
	for j, data := range k.data {
		if j > 0 {
			b.WriteString(sep)
		}
		if k.na[j] != nil && k.na[j][i] {
			b.WriteString(missing)
			continue
		}
		v := data.Index(i)
		if v.Kind() == reflect.String {
			b.WriteString(strconv.Quote(v.String()))
		} else {
			fmt.Fprint(&b, v.Interface())
		}
	}
	return b.String()
}

// Groups partitions the rows of t by the values of cols and returns
// the row indices of each group. Groups appear in order of first
// appearance and rows stay in order within each group. Rows agreeing
// in every column of cols, including missing cells, share a group.
func Groups(t *table.Table, cols []string) [][]int {
	if t.Len() == 0 {
		return nil
	}
	if len(cols) == 0 {
		// All rows form one group.
		rows := make([]int, t.Len())
		for i := range rows {
			rows[i] = i
		}
		return [][]int{rows}
	}
	k := New(t, cols)
	index := make(map[string]int)
	var groups [][]int
	for i := 0; i < t.Len(); i++ {
		key := k.Key(i)
		gi, ok := index[key]
		if !ok {
			gi = len(groups)
			index[key] = gi
			groups = append(groups, nil)
		}
		groups[gi] = append(groups[gi], i)
	}
	return groups
}
