// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchtab reads Go benchmark results files as tables.
//
// The format is specified at
// https://github.com/golang/proposal/blob/master/design/14313-benchmark-format.md
// A results file interleaves configuration lines ("goos: linux") with
// benchmark result lines ("BenchmarkDecode/size=1K-8 100 13553 ns/op").
//
// ReadBenchmarks returns one row per result line: a "name" column,
// one column per configuration key, an "iterations" column, and one
// float64 column per reported unit. Configuration comes from both
// configuration lines, which apply to every following result, and
// "key:value" elements of the benchmark name itself. Rows missing a
// configuration key or a unit have missing cells there, so a file
// mixing benchmarks of different shapes still forms one table.
package benchtab

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aclements/go-tidy/table"
	"golang.org/x/exp/maps"
)

type benchmark struct {
	name   string
	iters  int
	config map[string]string
	result map[string]float64
}

var configRe = regexp.MustCompile(`^(\p{Ll}[^\p{Lu}\s\x85\xa0\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}]*):(?:[ \t]+(.*))?$`)

// ReadBenchmarks parses a standard Go benchmark results file from r
// into a table with one row per benchmark result line. There may be
// many rows with the same name and configuration, indicating that the
// benchmark was run multiple times.
//
// Configuration columns are coerced to structured types with
// table.Coerce: if every present cell of a key parses as an int, a
// float64, a time.Duration, or a time.Time, the column has that
// element type, and otherwise it remains a []string. The trailing
// "-N" GOMAXPROCS count of a benchmark name becomes the "gomaxprocs"
// configuration key, defaulting to 1.
func ReadBenchmarks(r io.Reader) (*table.Table, error) {
	var bs []benchmark
	block := make(map[string]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		if line == "testing: warning: no tests to run" {
			continue
		}
		if m := configRe.FindStringSubmatch(line); m != nil {
			block[m[1]] = m[2]
			continue
		}
		if strings.HasPrefix(line, "Benchmark") {
			if b, ok := parseLine(line, block); ok {
				bs = append(bs, b)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tabulate(bs)
}

// parseLine parses a single benchmark result line against the
// configuration block in effect. It reports false for lines that do
// not follow the benchmark line syntax, which the format says to
// ignore.
func parseLine(line string, block map[string]string) (benchmark, bool) {
	f := strings.Fields(line)
	if len(f) < 4 {
		return benchmark{}, false
	}
	if f[0] != "Benchmark" {
		next, _ := utf8.DecodeRuneInString(f[0][len("Benchmark"):])
		if !unicode.IsUpper(next) {
			return benchmark{}, false
		}
	}

	b := benchmark{config: make(map[string]string), result: make(map[string]float64)}
	for k, v := range block {
		b.config[k] = v
	}

	// Split the name into the name proper, the trailing GOMAXPROCS
	// count, and "key:value" sub-benchmark configuration.
	name := strings.TrimPrefix(f[0], "Benchmark")
	if i := strings.LastIndex(name, "-"); i >= 0 {
		if _, err := strconv.Atoi(name[i+1:]); err == nil {
			b.config["gomaxprocs"] = name[i+1:]
			name = name[:i]
		}
	}
	if _, ok := b.config["gomaxprocs"]; !ok {
		b.config["gomaxprocs"] = "1"
	}
	var parts []string
	for i, part := range strings.Split(name, "/") {
		if j := strings.Index(part, ":"); i > 0 && j >= 0 {
			b.config[part[:j]] = part[j+1:]
			continue
		}
		parts = append(parts, part)
	}
	b.name = strings.Join(parts, "/")

	n, err := strconv.Atoi(f[1])
	if err != nil || n <= 0 {
		return benchmark{}, false
	}
	b.iters = n

	for i := 2; i+2 <= len(f); i += 2 {
		val, err := strconv.ParseFloat(f[i], 64)
		if err != nil {
			continue
		}
		b.result[f[i+1]] = val
	}
	return b, true
}

func tabulate(bs []benchmark) (*table.Table, error) {
	names := make([]string, len(bs))
	iters := make([]int, len(bs))
	ckeys := make(map[string]bool)
	units := make(map[string]bool)
	for i, b := range bs {
		names[i] = b.name
		iters[i] = b.iters
		for k := range b.config {
			ckeys[k] = true
		}
		for u := range b.result {
			units[u] = true
		}
	}

	used := map[string]bool{"name": true, "iterations": true}
	claim := func(col string) error {
		if used[col] {
			return fmt.Errorf("duplicate column %q", col)
		}
		used[col] = true
		return nil
	}

	tab := new(table.Builder).Add("name", names)
	keys := maps.Keys(ckeys)
	sort.Strings(keys)
	for _, key := range keys {
		if err := claim(key); err != nil {
			return nil, err
		}
		ss := make([]string, len(bs))
		var na []bool
		for i, b := range bs {
			v, ok := b.config[key]
			if !ok {
				if na == nil {
					na = make([]bool, len(bs))
				}
				na[i] = true
				continue
			}
			ss[i] = v
		}
		if typed, ok := table.Coerce(ss, na, nil); ok {
			tab.AddNA(key, typed, na)
		} else {
			tab.AddNA(key, ss, na)
		}
	}
	tab.Add("iterations", iters)

	keys = maps.Keys(units)
	sort.Strings(keys)
	for _, unit := range keys {
		if err := claim(unit); err != nil {
			return nil, err
		}
		vals := make([]float64, len(bs))
		var na []bool
		for i, b := range bs {
			v, ok := b.result[unit]
			if !ok {
				if na == nil {
					na = make([]bool, len(bs))
				}
				na[i] = true
				continue
			}
			vals[i] = v
		}
		tab.AddNA(unit, vals, na)
	}
	return tab.Done(), nil
}
