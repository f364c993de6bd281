// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reshape

import (
	"testing"

	"github.com/aclements/go-tidy/table"
)

func casesLong() *table.Table {
	return new(table.Builder).
		Add("country", []string{"Brazil", "Brazil", "China", "China"}).
		Add("year", []string{"1999", "2000", "1999", "2000"}).
		Add("cases", []int{37, 80, 212, 213}).
		Done()
}

func TestWider(t *testing.T) {
	got, err := Wider{
		NamesFrom:  []string{"year"},
		ValuesFrom: []string{"cases"},
	}.Apply(casesLong())
	if err != nil {
		t.Fatal(err)
	}
	checkTable(t, got, casesWide())
}

func TestWiderDefaults(t *testing.T) {
	// NamesFrom defaults to {"name"} and ValuesFrom to {"value"},
	// and a table need not have identifier columns.
	tab := new(table.Builder).
		Add("name", []string{"a", "b"}).
		Add("value", []int{1, 2}).
		Done()
	got, err := Wider{}.Apply(tab)
	if err != nil {
		t.Fatal(err)
	}
	want := new(table.Builder).
		Add("a", []int{1}).
		Add("b", []int{2}).
		Done()
	checkTable(t, got, want)
}

func TestWiderFill(t *testing.T) {
	// Fish that were never seen at a station get missing cells,
	// or Fill when set.
	tab := new(table.Builder).
		Add("fish", []int{4842, 4842, 4843}).
		Add("station", []string{"Release", "I80_1", "Release"}).
		Add("seen", []int{1, 1, 1}).
		Done()
	p := Wider{NamesFrom: []string{"station"}, ValuesFrom: []string{"seen"}}
	got, err := p.Apply(tab)
	if err != nil {
		t.Fatal(err)
	}
	want := new(table.Builder).
		Add("fish", []int{4842, 4843}).
		Add("Release", []int{1, 1}).
		AddNA("I80_1", []int{1, 0}, []bool{false, true}).
		Done()
	checkTable(t, got, want)

	p.Fill = 0
	got, err = p.Apply(tab)
	if err != nil {
		t.Fatal(err)
	}
	want = new(table.Builder).
		Add("fish", []int{4842, 4843}).
		Add("Release", []int{1, 1}).
		Add("I80_1", []int{1, 0}).
		Done()
	checkTable(t, got, want)
}

func TestWiderFillExplicit(t *testing.T) {
	// Fill also replaces cells that are present but missing.
	tab := new(table.Builder).
		Add("name", []string{"a", "b"}).
		AddNA("value", []float64{1.5, 0}, []bool{false, true}).
		Done()
	got, err := Wider{Fill: 9}.Apply(tab)
	if err != nil {
		t.Fatal(err)
	}
	want := new(table.Builder).
		Add("a", []float64{1.5}).
		Add("b", []float64{9}).
		Done()
	checkTable(t, got, want)

	// A non-numeric fill must have the column's type exactly.
	_, err = Wider{Fill: "gone"}.Apply(tab)
	checkError(t, err, `does not match column "value"`)
}

func TestWiderMultiValues(t *testing.T) {
	tab := new(table.Builder).
		Add("GEOID", []int{1, 1}).
		Add("variable", []string{"income", "rent"}).
		Add("estimate", []float64{24476, 747}).
		Add("moe", []float64{136, 3}).
		Done()
	p := Wider{
		NamesFrom:  []string{"variable"},
		ValuesFrom: []string{"estimate", "moe"},
	}

	// By default names vary fastest.
	got, err := p.Apply(tab)
	if err != nil {
		t.Fatal(err)
	}
	want := new(table.Builder).
		Add("GEOID", []int{1}).
		Add("estimate_income", []float64{24476}).
		Add("estimate_rent", []float64{747}).
		Add("moe_income", []float64{136}).
		Add("moe_rent", []float64{3}).
		Done()
	checkTable(t, got, want)

	p.VarySlowest = true
	got, err = p.Apply(tab)
	if err != nil {
		t.Fatal(err)
	}
	want = new(table.Builder).
		Add("GEOID", []int{1}).
		Add("estimate_income", []float64{24476}).
		Add("moe_income", []float64{136}).
		Add("estimate_rent", []float64{747}).
		Add("moe_rent", []float64{3}).
		Done()
	checkTable(t, got, want)
}

func TestWiderNameOrder(t *testing.T) {
	tab := new(table.Builder).
		Add("name", []string{"b", "c", "a"}).
		Add("value", []int{2, 3, 1}).
		Done()

	// New columns appear in order of first appearance...
	got, err := Wider{}.Apply(tab)
	if err != nil {
		t.Fatal(err)
	}
	want := new(table.Builder).
		Add("b", []int{2}).
		Add("c", []int{3}).
		Add("a", []int{1}).
		Done()
	checkTable(t, got, want)

	// ...unless SortNames orders them by name.
	got, err = Wider{SortNames: true}.Apply(tab)
	if err != nil {
		t.Fatal(err)
	}
	want = new(table.Builder).
		Add("a", []int{1}).
		Add("b", []int{2}).
		Add("c", []int{3}).
		Done()
	checkTable(t, got, want)
}

func TestWiderNamesPrefix(t *testing.T) {
	tab := new(table.Builder).
		Add("id", []string{"x"}).
		Add("name", []int{1}).
		Add("value", []int{10}).
		Done()
	got, err := Wider{NamesPrefix: "wk"}.Apply(tab)
	if err != nil {
		t.Fatal(err)
	}
	want := new(table.Builder).
		Add("id", []string{"x"}).
		Add("wk1", []int{10}).
		Done()
	checkTable(t, got, want)
}

func TestWiderCompositeNames(t *testing.T) {
	// Several NamesFrom columns join with NamesSep.
	tab := new(table.Builder).
		Add("diagnosis", []string{"sp", "sp"}).
		Add("gender", []string{"m", "f"}).
		Add("value", []int{2, 3}).
		Done()
	got, err := Wider{NamesFrom: []string{"diagnosis", "gender"}}.Apply(tab)
	if err != nil {
		t.Fatal(err)
	}
	want := new(table.Builder).
		Add("sp_m", []int{2}).
		Add("sp_f", []int{3}).
		Done()
	checkTable(t, got, want)
}

func TestWiderDuplicates(t *testing.T) {
	tab := new(table.Builder).
		Add("id", []string{"x", "x"}).
		Add("name", []string{"a", "a"}).
		Add("value", []int{1, 2}).
		Done()
	_, err := Wider{}.Apply(tab)
	checkError(t, err, `rows 0 and 1 both fill output column "a"; cannot pivot duplicates`)
}

func TestWiderEmpty(t *testing.T) {
	tab := new(table.Builder).
		Add("country", []string{}).
		Add("year", []string{}).
		Add("cases", []int{}).
		Done()
	got, err := Wider{
		NamesFrom:  []string{"year"},
		ValuesFrom: []string{"cases"},
	}.Apply(tab)
	if err != nil {
		t.Fatal(err)
	}
	want := new(table.Builder).Add("country", []string{}).Done()
	checkTable(t, got, want)
}

func TestWiderErrors(t *testing.T) {
	_, err := Wider{NamesFrom: []string{"nope"}}.Apply(casesLong())
	checkError(t, err, `unknown column "nope"`)

	_, err = Wider{
		NamesFrom:  []string{"year"},
		ValuesFrom: []string{"year"},
	}.Apply(casesLong())
	checkError(t, err, `column "year" used twice`)

	tab := new(table.Builder).
		Add("id", []string{"x"}).
		AddNA("name", []string{""}, []bool{true}).
		Add("value", []int{1}).
		Done()
	_, err = Wider{}.Apply(tab)
	checkError(t, err, `missing value in NamesFrom column "name" (row 0)`)

	// A new column may not collide with an identifier column.
	tab = new(table.Builder).
		Add("id", []string{"x"}).
		Add("name", []string{"id"}).
		Add("value", []int{1}).
		Done()
	_, err = Wider{}.Apply(tab)
	checkError(t, err, `output column "id" already exists`)
}
