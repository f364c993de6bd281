// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vector provides typed vectors with missing elements.
//
// A Vec couples a data slice with a mask of missing elements.
// Operations propagate missingness: a result computed from a missing
// element is itself missing, comparisons involving a missing element
// are missing rather than false, and reductions either refuse to
// produce a value or ignore missing elements, under the caller's
// control.
//
// Vectors share their slices rather than copying them, like table
// columns, and treat them as immutable. Operations that combine two
// vectors recycle a one-element vector to the other's length, so a
// scalar can stand in for a vector on either side.
//
// Vec is the element-wise complement to the table package: columns
// move between the two representations with FromColumn and AddTo.
package vector

import (
	"fmt"

	"github.com/aclements/go-tidy/table"
)

// A Vec is a vector of T whose elements may be missing. Element i is
// missing if NA is non-nil and NA[i] is true; the corresponding Data
// element is meaningless (typically T's zero value). If NA is nil,
// no element is missing.
type Vec[T any] struct {
	Data []T
	NA   []bool
}

// New returns a Vec over data with no missing elements.
func New[T any](data []T) Vec[T] {
	return Vec[T]{Data: data}
}

// WithNA returns a Vec over data with the given missing mask. The
// mask may be nil; otherwise it must have an element per data
// element.
func WithNA[T any](data []T, na []bool) Vec[T] {
	if na != nil && len(na) != len(data) {
		panic(fmt.Sprintf("na mask with %d values does not match data with %d values", len(na), len(data)))
	}
	return Vec[T]{Data: data, NA: normNA(na)}
}

// Const returns a Vec of n copies of val.
func Const[T any](val T, n int) Vec[T] {
	data := make([]T, n)
	for i := range data {
		data[i] = val
	}
	return Vec[T]{Data: data}
}

// Scalar returns a one-element Vec holding val. Combined with
// recycling, it lets a single value participate in element-wise
// operations.
func Scalar[T any](val T) Vec[T] {
	return Vec[T]{Data: []T{val}}
}

// NAs returns a Vec of n missing elements.
func NAs[T any](n int) Vec[T] {
	na := make([]bool, n)
	for i := range na {
		na[i] = true
	}
	return Vec[T]{Data: make([]T, n), NA: na}
}

// FromColumn returns column col of t as a Vec. It panics if the
// column does not exist or does not hold T.
func FromColumn[T any](t *table.Table, col string) Vec[T] {
	data, ok := t.MustColumn(col).([]T)
	if !ok {
		panic(fmt.Sprintf("column %q is %T, not %T", col, t.Column(col), []T(nil)))
	}
	return Vec[T]{Data: data, NA: t.NA(col)}
}

// AddTo adds v to b as column name and returns b.
func (v Vec[T]) AddTo(b *table.Builder, name string) *table.Builder {
	return b.AddNA(name, v.Data, v.NA)
}

// Len returns the number of elements in v, missing or not.
func (v Vec[T]) Len() int {
	return len(v.Data)
}

func (v Vec[T]) isNA(i int) bool {
	return v.NA != nil && v.NA[i]
}

// HasNA reports whether any element of v is missing.
func (v Vec[T]) HasNA() bool {
	for _, m := range v.NA {
		if m {
			return true
		}
	}
	return false
}

// IsNA returns a bool vector that is true where v is missing.
func (v Vec[T]) IsNA() Vec[bool] {
	out := make([]bool, len(v.Data))
	for i := range out {
		out[i] = v.isNA(i)
	}
	return Vec[bool]{Data: out}
}

// ReplaceNA returns v with every missing element replaced by repl.
func (v Vec[T]) ReplaceNA(repl T) Vec[T] {
	if !v.HasNA() {
		return v
	}
	out := append([]T(nil), v.Data...)
	for i, m := range v.NA {
		if m {
			out[i] = repl
		}
	}
	return Vec[T]{Data: out}
}

// Map applies f to each element of v. Missing elements stay missing
// and f is not called on them.
func Map[T, U any](v Vec[T], f func(T) U) Vec[U] {
	out := make([]U, len(v.Data))
	for i, x := range v.Data {
		if v.isNA(i) {
			continue
		}
		out[i] = f(x)
	}
	return Vec[U]{Data: out, NA: v.NA}
}

// Map2 applies f to each pair of elements of a and b, recycling a
// one-element vector to the other's length. An element is missing if
// either input element is.
func Map2[A, B, C any](a Vec[A], b Vec[B], f func(A, B) C) Vec[C] {
	n := recycle(a.Len(), b.Len())
	out := make([]C, n)
	var na []bool
	for i := 0; i < n; i++ {
		ia, ib := pos(i, a.Len()), pos(i, b.Len())
		if a.isNA(ia) || b.isNA(ib) {
			if na == nil {
				na = make([]bool, n)
			}
			na[i] = true
			continue
		}
		out[i] = f(a.Data[ia], b.Data[ib])
	}
	return Vec[C]{Data: out, NA: na}
}

// Coalesce returns the first non-missing element at each position.
// Vectors recycle as in Map2. Positions where every vector is
// missing stay missing.
func Coalesce[T any](vs ...Vec[T]) Vec[T] {
	if len(vs) == 0 {
		panic("no vectors to coalesce")
	}
	n := vs[0].Len()
	for _, v := range vs[1:] {
		n = recycle(n, v.Len())
	}
	out := make([]T, n)
	var na []bool
	for i := 0; i < n; i++ {
		found := false
		for _, v := range vs {
			if j := pos(i, v.Len()); !v.isNA(j) {
				out[i] = v.Data[j]
				found = true
				break
			}
		}
		if !found {
			if na == nil {
				na = make([]bool, n)
			}
			na[i] = true
		}
	}
	return Vec[T]{Data: out, NA: na}
}

// IfElse returns yes where cond is true and no where it is false.
// Vectors recycle as in Map2. A missing condition gives a missing
// element.
func IfElse[T any](cond Vec[bool], yes, no Vec[T]) Vec[T] {
	n := recycle(recycle(cond.Len(), yes.Len()), no.Len())
	out := make([]T, n)
	var na []bool
	setNA := func(i int) {
		if na == nil {
			na = make([]bool, n)
		}
		na[i] = true
	}
	for i := 0; i < n; i++ {
		ic := pos(i, cond.Len())
		if cond.isNA(ic) {
			setNA(i)
			continue
		}
		src, j := &yes, pos(i, yes.Len())
		if !cond.Data[ic] {
			src, j = &no, pos(i, no.Len())
		}
		if src.isNA(j) {
			setNA(i)
			continue
		}
		out[i] = src.Data[j]
	}
	return Vec[T]{Data: out, NA: na}
}

// recycle returns the common length of two vectors, extending a
// one-element vector to the other's length.
func recycle(a, b int) int {
	switch {
	case a == b:
		return a
	case a == 1:
		return b
	case b == 1:
		return a
	}
	panic(fmt.Sprintf("vectors have %d and %d values", a, b))
}

// pos maps result position i to a source position, recycling a
// one-element vector.
func pos(i, n int) int {
	if n == 1 {
		return 0
	}
	return i
}

func normNA(na []bool) []bool {
	for _, m := range na {
		if m {
			return na
		}
	}
	return nil
}
