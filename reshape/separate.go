// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reshape

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/aclements/go-tidy/table"
)

// Separate splits one string column into several columns. It is the
// same decomposition Longer applies to column names, applied to cell
// values instead.
type Separate struct {
	// Column is the column to split. It must hold strings.
	Column string

	// Into names the new columns, one per part. An empty name
	// discards that part.
	Into []string

	// Sep and Pattern control how cells split into parts, just
	// like the corresponding Longer options. Exactly one must be
	// set unless Into names a single column.
	Sep     string
	Pattern string

	// Keep retains Column alongside the new columns. By default
	// Column is removed.
	Keep bool

	// Coerce parses the new columns into more specific types
	// where every cell agrees, like ReadCSV does.
	Coerce bool
}

// Apply splits the cells of p.Column in t and returns the result.
// The new columns take Column's place in the column order. Missing
// cells split into all-missing parts.
func (p Separate) Apply(t *table.Table) (*table.Table, error) {
	if len(p.Into) == 0 {
		return nil, fmt.Errorf("no columns to separate %q into", p.Column)
	}
	data := t.Column(p.Column)
	if data == nil {
		return nil, fmt.Errorf("unknown column %q", p.Column)
	}
	ss, ok := data.([]string)
	if !ok {
		return nil, fmt.Errorf("column %q is not a []string (got %T)", p.Column, data)
	}
	sp, err := newSplitter("", p.Sep, p.Pattern, len(p.Into))
	if err != nil {
		return nil, err
	}

	outSet := make(map[string]bool)
	for _, col := range t.Columns() {
		if col == p.Column && !p.Keep {
			continue
		}
		outSet[col] = true
	}
	keep := make([]bool, len(p.Into))
	for i, col := range p.Into {
		if col == "" {
			continue
		}
		keep[i] = true
		if err := claimColumn(outSet, col); err != nil {
			return nil, err
		}
	}

	na := t.NA(p.Column)
	parts := make([][]string, len(p.Into))
	for i := range parts {
		if keep[i] {
			parts[i] = make([]string, len(ss))
		}
	}
	var pna []bool
	for r, s := range ss {
		if na != nil && na[r] {
			if pna == nil {
				pna = make([]bool, len(ss))
			}
			pna[r] = true
			continue
		}
		ps, err := sp.split(s)
		if err != nil {
			return nil, fmt.Errorf("row %d: %s", r, err)
		}
		for i := range parts {
			if keep[i] {
				parts[i][r] = ps[i]
			}
		}
	}

	var b table.Builder
	for _, col := range t.Columns() {
		if col != p.Column {
			b.AddNA(col, t.Column(col), t.NA(col))
			continue
		}
		if p.Keep {
			b.AddNA(col, data, na)
		}
		for i, out := range p.Into {
			if !keep[i] {
				continue
			}
			data := table.Slice(parts[i])
			if p.Coerce {
				if typed, ok := table.Coerce(parts[i], pna, nil); ok {
					data = typed
				}
			}
			b.AddNA(out, data, pna)
		}
	}
	return b.Done(), nil
}

// Unite joins several columns into one string column. It is the
// inverse of Separate.
type Unite struct {
	// Columns are the columns to join, in order.
	Columns []string

	// Into names the new column.
	Into string

	// Sep separates the parts of each joined cell. If it is
	// empty, it defaults to "_".
	Sep string

	// Keep retains the source columns alongside the new column.
	// By default they are removed.
	Keep bool

	// DropMissing omits missing parts, and their separators, from
	// the joined cell. By default a missing part makes the whole
	// cell missing.
	DropMissing bool
}

// Apply joins the cells of p.Columns in t and returns the result.
// The new column takes the place of the first source column.
func (p Unite) Apply(t *table.Table) (*table.Table, error) {
	if len(p.Columns) == 0 {
		return nil, fmt.Errorf("no columns to unite into %q", p.Into)
	}
	if p.Into == "" {
		return nil, fmt.Errorf("no name for the united column")
	}
	sep := p.Sep
	if sep == "" {
		sep = "_"
	}
	used := make(map[string]bool)
	data := make([]reflect.Value, len(p.Columns))
	nas := make([][]bool, len(p.Columns))
	for i, col := range p.Columns {
		if t.Column(col) == nil {
			return nil, fmt.Errorf("unknown column %q", col)
		}
		if used[col] {
			return nil, fmt.Errorf("column %q used twice", col)
		}
		used[col] = true
		data[i] = reflect.ValueOf(t.MustColumn(col))
		nas[i] = t.NA(col)
	}
	outSet := make(map[string]bool)
	for _, col := range t.Columns() {
		if used[col] && !p.Keep {
			continue
		}
		outSet[col] = true
	}
	if err := claimColumn(outSet, p.Into); err != nil {
		return nil, err
	}

	out := make([]string, t.Len())
	var na []bool
	var parts []string
	for r := 0; r < t.Len(); r++ {
		parts = parts[:0]
		miss := false
		for i := range data {
			if nas[i] != nil && nas[i][r] {
				miss = true
				continue
			}
			parts = append(parts, fmt.Sprint(data[i].Index(r).Interface()))
		}
		if miss && !p.DropMissing {
			if na == nil {
				na = make([]bool, t.Len())
			}
			na[r] = true
			continue
		}
		out[r] = strings.Join(parts, sep)
	}

	var b table.Builder
	for _, col := range t.Columns() {
		if col == p.Columns[0] {
			if p.Keep {
				b.AddNA(col, t.Column(col), t.NA(col))
			}
			b.AddNA(p.Into, out, na)
			continue
		}
		if used[col] && !p.Keep {
			continue
		}
		b.AddNA(col, t.Column(col), t.NA(col))
	}
	return b.Done(), nil
}
