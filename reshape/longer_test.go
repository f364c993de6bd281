// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reshape

import (
	"reflect"
	"strings"
	"testing"

	"github.com/aclements/go-tidy/table"
)

func tableString(t *table.Table) string {
	var buf strings.Builder
	table.Fprint(&buf, t)
	return buf.String()
}

func eqTables(a, b *table.Table) bool {
	if !reflect.DeepEqual(a.Columns(), b.Columns()) || a.Len() != b.Len() {
		return false
	}
	for _, col := range a.Columns() {
		if !reflect.DeepEqual(a.Column(col), b.Column(col)) {
			return false
		}
		if !reflect.DeepEqual(a.NA(col), b.NA(col)) {
			return false
		}
	}
	return true
}

func checkTable(t *testing.T, got, want *table.Table) {
	t.Helper()
	if !eqTables(got, want) {
		t.Errorf("table should be\n%sgot\n%s", tableString(want), tableString(got))
	}
}

func checkError(t *testing.T, err error, want string) {
	t.Helper()
	if err == nil || !strings.Contains(err.Error(), want) {
		t.Errorf("should fail with %q; got %v", want, err)
	}
}

// casesWide is the running example from the package doc.
func casesWide() *table.Table {
	return new(table.Builder).
		Add("country", []string{"Brazil", "China"}).
		Add("1999", []int{37, 212}).
		Add("2000", []int{80, 213}).
		Done()
}

func TestLonger(t *testing.T) {
	got, err := Longer{
		Columns:  []string{"1999", "2000"},
		NamesTo:  []string{"year"},
		ValuesTo: "cases",
	}.Apply(casesWide())
	if err != nil {
		t.Fatal(err)
	}
	want := new(table.Builder).
		Add("country", []string{"Brazil", "Brazil", "China", "China"}).
		Add("year", []string{"1999", "2000", "1999", "2000"}).
		Add("cases", []int{37, 80, 212, 213}).
		Done()
	checkTable(t, got, want)

	// CoerceNames parses the year names into ints.
	got, err = Longer{
		Columns:     []string{"1999", "2000"},
		NamesTo:     []string{"year"},
		ValuesTo:    "cases",
		CoerceNames: true,
	}.Apply(casesWide())
	if err != nil {
		t.Fatal(err)
	}
	if years, ok := got.Column("year").([]int); !ok {
		t.Errorf("year column should be []int; got %T", got.Column("year"))
	} else if want := []int{1999, 2000, 1999, 2000}; !reflect.DeepEqual(years, want) {
		t.Errorf("year column should be %v; got %v", want, years)
	}
}

func TestLongerDefaultNames(t *testing.T) {
	// NamesTo defaults to {"name"} and ValuesTo to "value", and a
	// table may collapse entirely.
	tab := new(table.Builder).
		Add("a", []int{1, 2}).
		Add("b", []int{3, 4}).
		Done()
	got, err := Longer{Columns: []string{"a", "b"}}.Apply(tab)
	if err != nil {
		t.Fatal(err)
	}
	want := new(table.Builder).
		Add("name", []string{"a", "b", "a", "b"}).
		Add("value", []int{1, 3, 2, 4}).
		Done()
	checkTable(t, got, want)
}

func TestLongerIncome(t *testing.T) {
	tab := new(table.Builder).
		Add("religion", []string{"Agnostic", "Atheist"}).
		Add("<$10k", []int{27, 12}).
		Add("$10-20k", []int{34, 27}).
		Add("$20-30k", []int{60, 37}).
		Done()
	got, err := Longer{
		Columns:  []string{"<$10k", "$10-20k", "$20-30k"},
		NamesTo:  []string{"income"},
		ValuesTo: "count",
	}.Apply(tab)
	if err != nil {
		t.Fatal(err)
	}
	want := new(table.Builder).
		Add("religion", []string{"Agnostic", "Agnostic", "Agnostic", "Atheist", "Atheist", "Atheist"}).
		Add("income", []string{"<$10k", "$10-20k", "$20-30k", "<$10k", "$10-20k", "$20-30k"}).
		Add("count", []int{27, 34, 60, 12, 27, 37}).
		Done()
	checkTable(t, got, want)
}

func TestLongerUnify(t *testing.T) {
	// Mixed numeric columns unify to float64.
	tab := new(table.Builder).
		Add("id", []string{"x"}).
		Add("a", []int{1}).
		Add("b", []float64{2.5}).
		Done()
	got, err := Longer{Columns: []string{"a", "b"}}.Apply(tab)
	if err != nil {
		t.Fatal(err)
	}
	want := new(table.Builder).
		Add("id", []string{"x", "x"}).
		Add("name", []string{"a", "b"}).
		Add("value", []float64{1, 2.5}).
		Done()
	checkTable(t, got, want)

	// Mixed non-numeric columns do not unify.
	tab = new(table.Builder).
		Add("a", []int{1}).
		Add("b", []string{"two"}).
		Done()
	_, err = Longer{Columns: []string{"a", "b"}}.Apply(tab)
	checkError(t, err, "cannot collapse columns of types int, string")
}

func TestLongerPrefix(t *testing.T) {
	// Week columns share a "wk" prefix and missing ranks are
	// dropped, billboard style.
	tab := new(table.Builder).
		AddNA("artist", []string{"2 Pac", "Aaliyah"}, nil).
		Add("wk1", []int{87, 91}).
		Add("wk2", []int{82, 87}).
		AddNA("wk3", []int{72, 0}, []bool{false, true}).
		Done()
	weeks, err := Matching(tab, `^wk`)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"wk1", "wk2", "wk3"}; !reflect.DeepEqual(weeks, want) {
		t.Fatalf("Matching should be %v; got %v", want, weeks)
	}
	got, err := Longer{
		Columns:     weeks,
		NamesTo:     []string{"week"},
		NamesPrefix: "wk",
		CoerceNames: true,
		ValuesTo:    "rank",
		DropMissing: true,
	}.Apply(tab)
	if err != nil {
		t.Fatal(err)
	}
	want := new(table.Builder).
		Add("artist", []string{"2 Pac", "2 Pac", "2 Pac", "Aaliyah", "Aaliyah"}).
		Add("week", []int{1, 2, 3, 1, 2}).
		Add("rank", []int{87, 82, 72, 91, 87}).
		Done()
	checkTable(t, got, want)
}

func TestLongerPattern(t *testing.T) {
	// WHO-style names decompose with a pattern into several name
	// columns.
	tab := new(table.Builder).
		Add("country", []string{"Brazil"}).
		Add("sp_m_014", []int{2}).
		Add("sp_f_014", []int{3}).
		Add("ep_m_1524", []int{5}).
		Done()
	got, err := Longer{
		Columns:      []string{"sp_m_014", "sp_f_014", "ep_m_1524"},
		NamesTo:      []string{"diagnosis", "gender", "age"},
		NamesPattern: `(sp|ep)_(m|f)_(\d+)`,
		ValuesTo:     "count",
	}.Apply(tab)
	if err != nil {
		t.Fatal(err)
	}
	want := new(table.Builder).
		Add("country", []string{"Brazil", "Brazil", "Brazil"}).
		Add("diagnosis", []string{"sp", "sp", "ep"}).
		Add("gender", []string{"m", "f", "m"}).
		Add("age", []string{"014", "014", "1524"}).
		Add("count", []int{2, 3, 5}).
		Done()
	checkTable(t, got, want)
}

func TestLongerValue(t *testing.T) {
	// The Value marker routes each column's cells to an output
	// column named by one part of its name.
	tab := new(table.Builder).
		Add("family", []int{1, 2}).
		Add("dob_child1", []string{"1998-11-26", "1996-06-22"}).
		AddNA("dob_child2", []string{"2000-01-29", ""}, []bool{false, true}).
		Add("name_child1", []string{"Susan", "Mark"}).
		AddNA("name_child2", []string{"Jose", ""}, []bool{false, true}).
		Done()
	p := Longer{
		Columns:  []string{"dob_child1", "dob_child2", "name_child1", "name_child2"},
		NamesTo:  []string{Value, "child"},
		NamesSep: "_",
	}
	got, err := p.Apply(tab)
	if err != nil {
		t.Fatal(err)
	}
	want := new(table.Builder).
		Add("family", []int{1, 1, 2, 2}).
		Add("child", []string{"child1", "child2", "child1", "child2"}).
		AddNA("dob", []string{"1998-11-26", "2000-01-29", "1996-06-22", ""}, []bool{false, false, false, true}).
		AddNA("name", []string{"Susan", "Jose", "Mark", ""}, []bool{false, false, false, true}).
		Done()
	checkTable(t, got, want)

	// DropMissing drops the rows where every value column is
	// missing, but keeps partial rows.
	p.DropMissing = true
	got, err = p.Apply(tab)
	if err != nil {
		t.Fatal(err)
	}
	want = new(table.Builder).
		Add("family", []int{1, 1, 2}).
		Add("child", []string{"child1", "child2", "child1"}).
		Add("dob", []string{"1998-11-26", "2000-01-29", "1996-06-22"}).
		Add("name", []string{"Susan", "Jose", "Mark"}).
		Done()
	checkTable(t, got, want)
}

func TestLongerValueHoles(t *testing.T) {
	// A key with no column for some value column leaves missing
	// cells.
	tab := new(table.Builder).
		Add("id", []int{1}).
		Add("x_a", []int{10}).
		Add("x_b", []int{20}).
		Add("y_a", []int{30}).
		Done()
	got, err := Longer{
		Columns:  []string{"x_a", "x_b", "y_a"},
		NamesTo:  []string{Value, "k"},
		NamesSep: "_",
	}.Apply(tab)
	if err != nil {
		t.Fatal(err)
	}
	want := new(table.Builder).
		Add("id", []int{1, 1}).
		Add("k", []string{"a", "b"}).
		Add("x", []int{10, 20}).
		AddNA("y", []int{30, 0}, []bool{false, true}).
		Done()
	checkTable(t, got, want)
}

func TestLongerErrors(t *testing.T) {
	tab := casesWide()

	_, err := Longer{}.Apply(tab)
	checkError(t, err, "no columns to collapse")

	_, err = Longer{Columns: []string{"1998"}}.Apply(tab)
	checkError(t, err, `unknown column "1998"`)

	_, err = Longer{Columns: []string{"1999", "1999"}}.Apply(tab)
	checkError(t, err, `duplicate column "1999"`)

	_, err = Longer{
		Columns: []string{"1999", "2000"},
		NamesTo: []string{Value, Value},
	}.Apply(tab)
	checkError(t, err, `NamesTo contains ".value" twice`)

	_, err = Longer{
		Columns:  []string{"1999", "2000"},
		NamesTo:  []string{"year", "year"},
		NamesSep: "_",
	}.Apply(tab)
	checkError(t, err, `duplicate name "year" in NamesTo`)

	_, err = Longer{
		Columns:  []string{"1999", "2000"},
		NamesTo:  []string{Value},
		ValuesTo: "cases",
	}.Apply(tab)
	checkError(t, err, `ValuesTo must be left empty`)

	_, err = Longer{
		Columns: []string{"1999", "2000"},
		NamesTo: []string{"country"},
	}.Apply(tab)
	checkError(t, err, `output column "country" already exists`)

	_, err = Longer{
		Columns: []string{"1999", "2000"},
		NamesTo: []string{"year", "half"},
	}.Apply(tab)
	checkError(t, err, "need a separator or a pattern")

	_, err = Longer{
		Columns:  []string{"1999", "2000"},
		NamesTo:  []string{"year", "half"},
		NamesSep: "_",
	}.Apply(tab)
	checkError(t, err, `"1999" splits into 1 parts on "_"; want 2`)

	// Distinct columns must decompose to distinct parts.
	tab2 := new(table.Builder).
		Add("xu_a", []int{1}).
		Add("xv_a", []int{2}).
		Done()
	_, err = Longer{
		Columns:      []string{"xu_a", "xv_a"},
		NamesTo:      []string{Value, "k"},
		NamesPattern: `(.)._(.)`,
	}.Apply(tab2)
	checkError(t, err, `columns "xu_a" and "xv_a" decompose to the same parts`)
}
