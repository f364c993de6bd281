// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model evaluates fitted models over tables.
//
// A model is anything that can predict a response from a predictor
// value. This package connects such models to table columns: it fits
// the regressions from go-moremath/fit to column pairs, attaches
// predictions and residuals as new columns, and builds evenly spaced
// evaluation grids for sampling a model over a column's range.
package model

import (
	"fmt"
	"reflect"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-moremath/fit"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"github.com/aclements/go-tidy/table"
)

// A Predictor predicts a response value from a predictor value.
type Predictor interface {
	Predict(x float64) float64
}

// Func adapts a function to the Predictor interface.
type Func func(x float64) float64

// Predict evaluates f at x.
func (f Func) Predict(x float64) float64 { return f(x) }

// Polynomial fits a least squares polynomial of the given degree to
// the points (x, y) of t and returns it as a Predictor. If degree is
// <= 0, it is treated as 1. Rows where either cell is missing are
// ignored.
func Polynomial(t *table.Table, x, y string, degree int) (Predictor, error) {
	if degree <= 0 {
		degree = 1
	}
	xs, ys, err := pairs(t, x, y)
	if err != nil {
		return nil, err
	}
	if len(xs) <= degree {
		return nil, fmt.Errorf("need more than %d points to fit a degree %d polynomial; have %d", degree, degree, len(xs))
	}
	r := fit.PolynomialRegression(xs, ys, nil, degree)
	return Func(r.F), nil
}

// Loess fits a locally-weighted polynomial regression of the given
// degree to the points (x, y) of t and returns it as a Predictor.
// Span controls the smoothness of the fit and must be between 0 and
// 1, where smaller values fit the data more tightly. If degree is <=
// 0, it is treated as 2; if span is <= 0, it is treated as 0.5. Rows
// where either cell is missing are ignored.
func Loess(t *table.Table, x, y string, degree int, span float64) (Predictor, error) {
	if degree <= 0 {
		degree = 2
	}
	if span <= 0 {
		span = 0.5
	}
	xs, ys, err := pairs(t, x, y)
	if err != nil {
		return nil, err
	}
	if len(xs) <= degree {
		return nil, fmt.Errorf("need more than %d points to fit a degree %d regression; have %d", degree, degree, len(xs))
	}
	return Func(fit.LOESS(xs, ys, degree, span)), nil
}

// AddPredictions returns t with a column named out holding m's
// prediction at each row's x cell, replacing any existing column
// named out. A row with a missing x cell gets a missing prediction.
func AddPredictions(t *table.Table, m Predictor, x, out string) (*table.Table, error) {
	xs, na, err := numericColumn(t, x)
	if err != nil {
		return nil, err
	}
	preds := make([]float64, len(xs))
	for i, xv := range xs {
		if na == nil || !na[i] {
			preds[i] = m.Predict(xv)
		}
	}
	return table.NewBuilder(t).AddNA(out, preds, na).Done(), nil
}

// AddResiduals returns t with a column named out holding each row's
// y cell minus m's prediction at its x cell, replacing any existing
// column named out. A row missing either cell gets a missing
// residual.
func AddResiduals(t *table.Table, m Predictor, x, y, out string) (*table.Table, error) {
	xs, xna, err := numericColumn(t, x)
	if err != nil {
		return nil, err
	}
	ys, yna, err := numericColumn(t, y)
	if err != nil {
		return nil, err
	}
	resids := make([]float64, len(xs))
	var mask []bool
	for i := range xs {
		if xna != nil && xna[i] || yna != nil && yna[i] {
			if mask == nil {
				mask = make([]bool, len(xs))
			}
			mask[i] = true
			continue
		}
		resids[i] = ys[i] - m.Predict(xs[i])
	}
	return table.NewBuilder(t).AddNA(out, resids, mask).Done(), nil
}

// Grid returns a table with a single column named like x holding n
// evenly spaced values spanning the range of t's x column, for
// sampling a model at regular points. If n is <= 0, it is treated as
// 200. Missing cells do not contribute to the range; if no cells are
// present, the grid is empty.
func Grid(t *table.Table, x string, n int) (*table.Table, error) {
	if n <= 0 {
		n = 200
	}
	xs, na, err := numericColumn(t, x)
	if err != nil {
		return nil, err
	}
	var cells []float64
	for i, xv := range xs {
		if na == nil || !na[i] {
			cells = append(cells, xv)
		}
	}
	eval := []float64{}
	if len(cells) > 0 {
		min, max := stats.Bounds(cells)
		eval = vec.Linspace(min, max, n)
	}
	return new(table.Builder).Add(x, eval).Done(), nil
}

func numericColumn(t *table.Table, col string) ([]float64, []bool, error) {
	data := t.Column(col)
	if data == nil {
		return nil, nil, fmt.Errorf("unknown column %q", col)
	}
	if !isNumeric(reflect.TypeOf(data).Elem().Kind()) {
		return nil, nil, fmt.Errorf("column %q is not numeric (got %T)", col, data)
	}
	var xs []float64
	slice.Convert(&xs, data)
	return xs, t.NA(col), nil
}

// pairs returns the rows of the x and y columns where both cells are
// present.
func pairs(t *table.Table, x, y string) (xs, ys []float64, err error) {
	xall, xna, err := numericColumn(t, x)
	if err != nil {
		return nil, nil, err
	}
	yall, yna, err := numericColumn(t, y)
	if err != nil {
		return nil, nil, err
	}
	for i := range xall {
		if xna != nil && xna[i] || yna != nil && yna[i] {
			continue
		}
		xs = append(xs, xall[i])
		ys = append(ys, yall[i])
	}
	return xs, ys, nil
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
