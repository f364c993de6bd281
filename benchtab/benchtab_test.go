// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"os"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/aclements/go-tidy/reshape"
	"github.com/aclements/go-tidy/table"
)

func tableString(t *table.Table) string {
	var sb strings.Builder
	table.Fprint(&sb, t)
	return sb.String()
}

func eqTables(a, b *table.Table) bool {
	if a.Len() != b.Len() || !reflect.DeepEqual(a.Columns(), b.Columns()) {
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

func TestReadBenchmarks(t *testing.T) {
	for _, test := range []struct {
		input string
		want  *table.Table
	}{
		// Basic line with two units.
		{`
BenchmarkX	1	2 ns/op 3 MB/s`,
			new(table.Builder).
				Add("name", []string{"X"}).
				Add("gomaxprocs", []int{1}).
				Add("iterations", []int{1}).
				Add("MB/s", []float64{3}).
				Add("ns/op", []float64{2}).
				Done(),
		},

		// Bad names and short lines are not result lines.
		{`
Benchmarkx	1	2 ns/op
benchmarkX	1	2 ns/op
BenchmarkY
BenchmarkY	1
BenchmarkY	1	2`,
			new(table.Builder).
				Add("name", []string{}).
				Add("iterations", []int{}).
				Done(),
		},

		// The -N suffix becomes the gomaxprocs key; "key:value"
		// name elements become configuration; other sub-names
		// stay in the name. Keys missing from some rows get
		// missing cells.
		{`
BenchmarkX-4	1	2 ns/op
BenchmarkX/cap:100/frag	2	3 ns/op`,
			new(table.Builder).
				Add("name", []string{"X", "X/frag"}).
				AddNA("cap", []int{0, 100}, []bool{true, false}).
				Add("gomaxprocs", []int{4, 1}).
				Add("iterations", []int{1, 2}).
				Add("ns/op", []float64{2, 3}).
				Done(),
		},

		// Block configuration applies to following results; name
		// configuration overrides it.
		{`
goos: linux
commit: 123456
BenchmarkX	1	2 ns/op
commit: abcdef
BenchmarkY/commit:ffffff	2	3 ns/op`,
			new(table.Builder).
				Add("name", []string{"X", "Y"}).
				Add("commit", []string{"123456", "ffffff"}).
				Add("gomaxprocs", []int{1, 1}).
				Add("goos", []string{"linux", "linux"}).
				Add("iterations", []int{1, 2}).
				Add("ns/op", []float64{2, 3}).
				Done(),
		},

		// Rows reporting different units still form one table.
		{`
BenchmarkX	1	2 ns/op
BenchmarkY	1	5 B/op`,
			new(table.Builder).
				Add("name", []string{"X", "Y"}).
				Add("gomaxprocs", []int{1, 1}).
				Add("iterations", []int{1, 1}).
				AddNA("B/op", []float64{0, 5}, []bool{true, false}).
				AddNA("ns/op", []float64{2, 0}, []bool{false, true}).
				Done(),
		},

		// Valueless configuration keys, the "no tests to run"
		// warning, and non-numeric result fields.
		{`
testing: warning: no tests to run
blank:
BenchmarkX	1	2 ns/op xxx yyy`,
			new(table.Builder).
				Add("name", []string{"X"}).
				Add("blank", []string{""}).
				Add("gomaxprocs", []int{1}).
				Add("iterations", []int{1}).
				Add("ns/op", []float64{2}).
				Done(),
		},

		// Configuration values coerce to structured types.
		{`
BenchmarkX/timeout:30s	1	2 ns/op`,
			new(table.Builder).
				Add("name", []string{"X"}).
				Add("gomaxprocs", []int{1}).
				Add("timeout", []time.Duration{30 * time.Second}).
				Add("iterations", []int{1}).
				Add("ns/op", []float64{2}).
				Done(),
		},
	} {
		got, err := ReadBenchmarks(strings.NewReader(test.input))
		if err != nil {
			t.Error("unexpected ReadBenchmarks error", err)
			continue
		}
		checkTable(t, got, test.want)
	}
}

func TestReadBenchmarksCollision(t *testing.T) {
	_, err := ReadBenchmarks(strings.NewReader("BenchmarkX/name:foo\t1\t2 ns/op"))
	if err == nil || !strings.Contains(err.Error(), `duplicate column "name"`) {
		t.Errorf(`should fail with duplicate column "name"; got %v`, err)
	}
}

func TestReadBenchmarksLonger(t *testing.T) {
	// Collapsing the unit columns gives the long form benchstat-style
	// tools want.
	input := `
BenchmarkX	1	2 ns/op
BenchmarkY	1	5 B/op`
	tab, err := ReadBenchmarks(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	got, err := reshape.Longer{
		Columns:     []string{"B/op", "ns/op"},
		NamesTo:     []string{"unit"},
		ValuesTo:    "value",
		DropMissing: true,
	}.Apply(tab)
	if err != nil {
		t.Fatal(err)
	}
	want := new(table.Builder).
		Add("name", []string{"X", "Y"}).
		Add("gomaxprocs", []int{1, 1}).
		Add("iterations", []int{1, 1}).
		Add("unit", []string{"ns/op", "B/op"}).
		Add("value", []float64{2, 5}).
		Done()
	checkTable(t, got, want)
}

func ExampleReadBenchmarks() {
	input := `goos: linux

BenchmarkDecode-8	1000	13553 ns/op
BenchmarkEncode-8	500	26011 ns/op`
	tab, _ := ReadBenchmarks(strings.NewReader(input))
	table.Fprint(os.Stdout, tab)
	// Output:
	// name    gomaxprocs  goos   iterations  ns/op
	// Decode           8  linux        1000  13553
	// Encode           8  linux         500  26011
}
