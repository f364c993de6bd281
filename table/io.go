// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"time"
)

// A ValueParser is a function that parses a string cell into a
// structured type or returns an error if the string cannot be
// parsed.
type ValueParser func(string) (interface{}, error)

// DefaultValueParsers is the default sequence of value parsers used
// by Coerce and ReadCSV if no parsers are specified.
var DefaultValueParsers = []ValueParser{
	func(s string) (interface{}, error) { return strconv.Atoi(s) },
	func(s string) (interface{}, error) { return strconv.ParseFloat(s, 64) },
	func(s string) (interface{}, error) { return time.ParseDuration(s) },
	func(s string) (interface{}, error) {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, nil
		}
		return time.Parse("2006-01-02", s)
	},
}

// Coerce converts a slice of strings into a slice of some structured
// type using best-effort pattern-based parsing. It tries each parser
// in turn and converts ss using the first parser that can parse
// every cell, skipping cells where na is true. Skipped cells hold
// the zero value in the result. If no parser can parse every cell,
// or every cell is skipped, Coerce returns nil, false.
//
// If parsers is nil, Coerce uses DefaultValueParsers.
func Coerce(ss []string, na []bool, parsers []ValueParser) (Slice, bool) {
	if parsers == nil {
		parsers = DefaultValueParsers
	}
	vals := make([]interface{}, len(ss))
	for _, vp := range parsers {
		good, any := true, false
		for i, s := range ss {
			vals[i] = nil
			if na != nil && na[i] {
				continue
			}
			v, err := vp(s)
			if err != nil {
				good = false
				break
			}
			vals[i] = v
			any = true
		}
		if !any {
			return nil, false
		}
		if !good {
			continue
		}
		var et reflect.Type
		for _, v := range vals {
			if v != nil {
				et = reflect.TypeOf(v)
				break
			}
		}
		out := reflect.MakeSlice(reflect.SliceOf(et), len(ss), len(ss))
		for i, v := range vals {
			if v != nil {
				out.Index(i).Set(reflect.ValueOf(v))
			}
		}
		return out.Interface(), true
	}
	return nil, false
}

// CSVOptions control ReadCSV and WriteCSV. The zero value is a
// useful default.
type CSVOptions struct {
	// Comma is the field delimiter. If it is 0, it defaults to ','.
	Comma rune

	// NA lists the cell strings that mark a missing value. If it
	// is nil, it defaults to {"", "NA"}. WriteCSV writes missing
	// cells as NA[0], or as "NA" if NA is nil.
	NA []string

	// Raw disables type coercion in ReadCSV. Every column of a
	// raw table is a []string.
	Raw bool

	// Parsers is the sequence of value parsers ReadCSV uses to
	// coerce column types. If it is nil, it defaults to
	// DefaultValueParsers.
	Parsers []ValueParser
}

func (o *CSVOptions) naSet() map[string]bool {
	na := o.NA
	if na == nil {
		na = []string{"", "NA"}
	}
	set := make(map[string]bool, len(na))
	for _, s := range na {
		set[s] = true
	}
	return set
}

// ReadCSV reads a CSV document from r and returns it as a Table. The
// first record gives the column names. Cells matching one of the
// opts.NA strings are marked missing. Each column whose remaining
// cells can all be parsed by one of the opts.Parsers is converted to
// that parser's type; other columns are left as strings. If opts is
// nil, ReadCSV uses the zero CSVOptions.
func ReadCSV(r io.Reader, opts *CSVOptions) (*Table, error) {
	var o CSVOptions
	if opts != nil {
		o = *opts
	}
	cr := csv.NewReader(r)
	if o.Comma != 0 {
		cr.Comma = o.Comma
	}
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("CSV input has no header record")
	}
	header, body := rows[0], rows[1:]
	seen := make(map[string]bool, len(header))
	for _, name := range header {
		if seen[name] {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		seen[name] = true
	}

	naSet := o.naSet()
	var b Builder
	for j, name := range header {
		ss := make([]string, len(body))
		var na []bool
		for i, row := range body {
			if naSet[row[j]] {
				if na == nil {
					na = make([]bool, len(body))
				}
				na[i] = true
				continue
			}
			ss[i] = row[j]
		}
		if !o.Raw {
			if typed, ok := Coerce(ss, na, o.Parsers); ok {
				b.AddNA(name, typed, na)
				continue
			}
		}
		b.AddNA(name, ss, na)
	}
	return b.Done(), nil
}

// WriteCSV writes Table t to w as a CSV document with a header
// record. Missing cells are written as opts.NA[0], or as "NA" if
// opts or opts.NA is nil. time.Time cells are written in RFC 3339
// form; all other cells are formatted as by fmt.Sprint.
func WriteCSV(w io.Writer, t *Table, opts *CSVOptions) error {
	var o CSVOptions
	if opts != nil {
		o = *opts
	}
	naStr := "NA"
	if len(o.NA) > 0 {
		naStr = o.NA[0]
	}
	cols := t.Columns()
	if cols == nil {
		return nil
	}

	cw := csv.NewWriter(w)
	if o.Comma != 0 {
		cw.Comma = o.Comma
	}
	if err := cw.Write(cols); err != nil {
		return err
	}
	data := make([]reflect.Value, len(cols))
	nas := make([][]bool, len(cols))
	for j, col := range cols {
		data[j] = reflect.ValueOf(t.Column(col))
		nas[j] = t.NA(col)
	}
	record := make([]string, len(cols))
	for i := 0; i < t.Len(); i++ {
		for j := range cols {
			if nas[j] != nil && nas[j][i] {
				record[j] = naStr
				continue
			}
			record[j] = csvString(data[j].Index(i).Interface())
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvString(v interface{}) string {
	if t, ok := v.(time.Time); ok {
		return t.Format(time.RFC3339)
	}
	return fmt.Sprint(v)
}
