// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vector

import "cmp"

// Logical operations follow three-valued logic: a missing operand
// means "unknown", so the result is missing exactly when the known
// operands do not decide it. False and anything is false, and true
// or anything is true, even when the other operand is missing.

// And returns the element-wise conjunction of a and b, recycling as
// in Map2.
func And(a, b Vec[bool]) Vec[bool] {
	n := recycle(a.Len(), b.Len())
	out := make([]bool, n)
	var na []bool
	for i := 0; i < n; i++ {
		ia, ib := pos(i, a.Len()), pos(i, b.Len())
		aFalse := !a.isNA(ia) && !a.Data[ia]
		bFalse := !b.isNA(ib) && !b.Data[ib]
		switch {
		case aFalse || bFalse:
			// false
		case a.isNA(ia) || b.isNA(ib):
			if na == nil {
				na = make([]bool, n)
			}
			na[i] = true
		default:
			out[i] = true
		}
	}
	return Vec[bool]{Data: out, NA: na}
}

// Or returns the element-wise disjunction of a and b, recycling as
// in Map2.
func Or(a, b Vec[bool]) Vec[bool] {
	n := recycle(a.Len(), b.Len())
	out := make([]bool, n)
	var na []bool
	for i := 0; i < n; i++ {
		ia, ib := pos(i, a.Len()), pos(i, b.Len())
		aTrue := !a.isNA(ia) && a.Data[ia]
		bTrue := !b.isNA(ib) && b.Data[ib]
		switch {
		case aTrue || bTrue:
			out[i] = true
		case a.isNA(ia) || b.isNA(ib):
			if na == nil {
				na = make([]bool, n)
			}
			na[i] = true
		}
	}
	return Vec[bool]{Data: out, NA: na}
}

// Not returns the element-wise negation of v.
func Not(v Vec[bool]) Vec[bool] {
	return Map(v, func(x bool) bool { return !x })
}

// Any reports whether any element of v is true. If naRM is set,
// missing elements are ignored. Otherwise, when no true element
// decides the answer and some element is missing, the answer is
// unknown and ok is false.
func Any(v Vec[bool], naRM bool) (value, ok bool) {
	sawNA := false
	for i, x := range v.Data {
		if v.isNA(i) {
			sawNA = true
			continue
		}
		if x {
			return true, true
		}
	}
	if sawNA && !naRM {
		return false, false
	}
	return false, true
}

// All reports whether every element of v is true. If naRM is set,
// missing elements are ignored. Otherwise, when no false element
// decides the answer and some element is missing, the answer is
// unknown and ok is false.
func All(v Vec[bool], naRM bool) (value, ok bool) {
	sawNA := false
	for i, x := range v.Data {
		if v.isNA(i) {
			sawNA = true
			continue
		}
		if !x {
			return false, true
		}
	}
	if sawNA && !naRM {
		return false, false
	}
	return true, true
}

// CountTrue returns the number of true elements of v. If naRM is
// set, missing elements are ignored; otherwise any missing element
// makes the count unknown and ok is false.
func CountTrue(v Vec[bool], naRM bool) (count int, ok bool) {
	sawNA := false
	for i, x := range v.Data {
		if v.isNA(i) {
			sawNA = true
			continue
		}
		if x {
			count++
		}
	}
	if sawNA && !naRM {
		return 0, false
	}
	return count, true
}

// PropTrue returns the proportion of true elements among the
// non-missing elements of v, with naRM as in CountTrue. The
// proportion of an all-missing or empty vector is unknown.
func PropTrue(v Vec[bool], naRM bool) (prop float64, ok bool) {
	count, ok := CountTrue(v, naRM)
	if !ok {
		return 0, false
	}
	n := 0
	for i := range v.Data {
		if !v.isNA(i) {
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(count) / float64(n), true
}

// Eq compares a and b element-wise, recycling as in Map2. A
// comparison with a missing element is missing, not false.
func Eq[T comparable](a, b Vec[T]) Vec[bool] {
	return Map2(a, b, func(x, y T) bool { return x == y })
}

// Ne is the negation of Eq.
func Ne[T comparable](a, b Vec[T]) Vec[bool] {
	return Map2(a, b, func(x, y T) bool { return x != y })
}

// Lt compares a and b element-wise, recycling as in Map2.
func Lt[T cmp.Ordered](a, b Vec[T]) Vec[bool] {
	return Map2(a, b, func(x, y T) bool { return x < y })
}

// Le compares a and b element-wise, recycling as in Map2.
func Le[T cmp.Ordered](a, b Vec[T]) Vec[bool] {
	return Map2(a, b, func(x, y T) bool { return x <= y })
}

// Gt compares a and b element-wise, recycling as in Map2.
func Gt[T cmp.Ordered](a, b Vec[T]) Vec[bool] {
	return Map2(a, b, func(x, y T) bool { return x > y })
}

// Ge compares a and b element-wise, recycling as in Map2.
func Ge[T cmp.Ordered](a, b Vec[T]) Vec[bool] {
	return Map2(a, b, func(x, y T) bool { return x >= y })
}
