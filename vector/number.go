// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vector

import (
	"cmp"
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
)

// A Real is any integer or floating-point type.
type Real interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// floats returns the non-missing elements of v as float64s and
// reports whether any element was missing.
func floats[T Real](v Vec[T]) (xs []float64, hasNA bool) {
	xs = make([]float64, 0, len(v.Data))
	for i, x := range v.Data {
		if v.isNA(i) {
			hasNA = true
			continue
		}
		xs = append(xs, float64(x))
	}
	return
}

// Sum returns the sum of v's elements. If naRM is set, missing
// elements are ignored; otherwise any missing element makes the sum
// unknown and ok is false. The sum of no elements is 0.
func Sum[T Real](v Vec[T], naRM bool) (sum float64, ok bool) {
	xs, hasNA := floats(v)
	if hasNA && !naRM {
		return 0, false
	}
	return vec.Sum(xs), true
}

// Mean returns the mean of v's elements, with naRM as in Sum. The
// mean of no elements is unknown.
func Mean[T Real](v Vec[T], naRM bool) (mean float64, ok bool) {
	xs, hasNA := floats(v)
	if hasNA && !naRM || len(xs) == 0 {
		return math.NaN(), false
	}
	return stats.Mean(xs), true
}

// Min returns the smallest element of v, with naRM as in Sum. The
// minimum of no elements is unknown.
func Min[T Real](v Vec[T], naRM bool) (min float64, ok bool) {
	xs, hasNA := floats(v)
	if hasNA && !naRM || len(xs) == 0 {
		return 0, false
	}
	lo, _ := stats.Bounds(xs)
	return lo, true
}

// Max returns the largest element of v, with naRM as in Sum. The
// maximum of no elements is unknown.
func Max[T Real](v Vec[T], naRM bool) (max float64, ok bool) {
	xs, hasNA := floats(v)
	if hasNA && !naRM || len(xs) == 0 {
		return 0, false
	}
	_, hi := stats.Bounds(xs)
	return hi, true
}

// CumSum returns the running sum of v. A missing element makes every
// later sum missing.
func CumSum[T Real](v Vec[T]) Vec[float64] {
	out := make([]float64, len(v.Data))
	var na []bool
	sum := 0.0
	for i, x := range v.Data {
		if na != nil || v.isNA(i) {
			if na == nil {
				na = make([]bool, len(v.Data))
			}
			na[i] = true
			continue
		}
		sum += float64(x)
		out[i] = sum
	}
	return Vec[float64]{Data: out, NA: na}
}

// PMin returns the element-wise minimum of a and b, recycling as in
// Map2.
func PMin[T cmp.Ordered](a, b Vec[T]) Vec[T] {
	return Map2(a, b, func(x, y T) T {
		if y < x {
			return y
		}
		return x
	})
}

// PMax returns the element-wise maximum of a and b, recycling as in
// Map2.
func PMax[T cmp.Ordered](a, b Vec[T]) Vec[T] {
	return Map2(a, b, func(x, y T) T {
		if y > x {
			return y
		}
		return x
	})
}

// RoundTo rounds each element of v to digits decimal digits,
// rounding halfway values to even. Negative digits round to tens,
// hundreds, and so on.
func RoundTo(v Vec[float64], digits int) Vec[float64] {
	p := math.Pow(10, float64(digits))
	return Map(v, func(x float64) float64 {
		return math.RoundToEven(x*p) / p
	})
}

// Lag shifts v's elements n positions later. The first n elements of
// the result are missing. Lag panics if n is negative.
func Lag[T any](v Vec[T], n int) Vec[T] {
	if n < 0 {
		panic(fmt.Sprintf("lag %d is negative", n))
	}
	return shift(v, n)
}

// Lead shifts v's elements n positions earlier. The last n elements
// of the result are missing. Lead panics if n is negative.
func Lead[T any](v Vec[T], n int) Vec[T] {
	if n < 0 {
		panic(fmt.Sprintf("lead %d is negative", n))
	}
	return shift(v, -n)
}

func shift[T any](v Vec[T], n int) Vec[T] {
	out := make([]T, len(v.Data))
	na := make([]bool, len(v.Data))
	for i := range out {
		j := i - n
		if j < 0 || j >= len(v.Data) {
			na[i] = true
			continue
		}
		out[i] = v.Data[j]
		na[i] = v.isNA(j)
	}
	return Vec[T]{Data: out, NA: normNA(na)}
}

// RankMin returns the rank of each element counting from 1, with
// tied elements sharing the smallest rank of their block, so the
// largest rank equals the number of ranked elements. Missing
// elements have missing ranks and take up no rank.
func RankMin[T cmp.Ordered](v Vec[T]) Vec[int] {
	return rank(v, false)
}

// RankDense returns the rank of each element counting from 1, with
// consecutive ranks for consecutive distinct values, so the largest
// rank equals the number of distinct ranked values. Missing elements
// have missing ranks.
func RankDense[T cmp.Ordered](v Vec[T]) Vec[int] {
	return rank(v, true)
}

func rank[T cmp.Ordered](v Vec[T], dense bool) Vec[int] {
	ord := make([]int, 0, len(v.Data))
	var na []bool
	for i := range v.Data {
		if v.isNA(i) {
			if na == nil {
				na = make([]bool, len(v.Data))
			}
			na[i] = true
			continue
		}
		ord = append(ord, i)
	}
	sort.SliceStable(ord, func(a, b int) bool {
		return v.Data[ord[a]] < v.Data[ord[b]]
	})

	out := make([]int, len(v.Data))
	for i, r := 0, 0; i < len(ord); {
		j := i
		for j+1 < len(ord) && v.Data[ord[j+1]] == v.Data[ord[i]] {
			j++
		}
		if dense {
			r++
		} else {
			r = i + 1
		}
		for k := i; k <= j; k++ {
			out[ord[k]] = r
		}
		i = j + 1
	}
	return Vec[int]{Data: out, NA: na}
}

// Cut assigns each element of v to one of the intervals between
// consecutive breaks. Intervals are open on the left and closed on
// the right, so the label of interval i covers (breaks[i],
// breaks[i+1]]. Elements outside every interval are missing, as are
// missing inputs. If labels is nil, interval notation is used; it
// must otherwise hold one label per interval. Cut panics if breaks
// do not strictly increase or the label count is wrong.
func Cut[T Real](v Vec[T], breaks []float64, labels []string) Vec[string] {
	if len(breaks) < 2 {
		panic("need at least two breaks")
	}
	for i := 1; i < len(breaks); i++ {
		if !(breaks[i-1] < breaks[i]) {
			panic("breaks must strictly increase")
		}
	}
	if labels == nil {
		labels = make([]string, len(breaks)-1)
		for i := range labels {
			labels[i] = fmt.Sprintf("(%v,%v]", breaks[i], breaks[i+1])
		}
	} else if len(labels) != len(breaks)-1 {
		panic(fmt.Sprintf("have %d labels for %d intervals", len(labels), len(breaks)-1))
	}

	out := make([]string, len(v.Data))
	var na []bool
	setNA := func(i int) {
		if na == nil {
			na = make([]bool, len(v.Data))
		}
		na[i] = true
	}
	for i, x := range v.Data {
		if v.isNA(i) {
			setNA(i)
			continue
		}
		k := sort.SearchFloat64s(breaks, float64(x))
		if k == 0 || k == len(breaks) {
			setNA(i)
			continue
		}
		out[i] = labels[k-1]
	}
	return Vec[string]{Data: out, NA: na}
}
