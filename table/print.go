// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
)

// Fprint writes Table t to w in aligned columns. Numeric columns are
// right-aligned and all other columns are left-aligned. Missing
// cells print as "NA".
//
// formats, if given, provides a fmt-style format string for the
// cells of each successive column. Columns beyond len(formats) are
// formatted with %v.
func Fprint(w io.Writer, t *Table, formats ...string) error {
	cols := t.Columns()
	if cols == nil {
		return nil
	}

	grid := make([][]string, len(cols))
	right := make([]bool, len(cols))
	widths := make([]int, len(cols))
	for j, col := range cols {
		format := "%v"
		if j < len(formats) {
			format = formats[j]
		}
		data := reflect.ValueOf(t.Column(col))
		na := t.NA(col)
		switch data.Type().Elem().Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			right[j] = true
		}

		cells := make([]string, t.Len())
		widths[j] = len(col)
		for i := range cells {
			if na != nil && na[i] {
				cells[i] = "NA"
			} else {
				cells[i] = fmt.Sprintf(format, data.Index(i).Interface())
			}
			if len(cells[i]) > widths[j] {
				widths[j] = len(cells[i])
			}
		}
		grid[j] = cells
	}

	line := make([]string, len(cols))
	put := func(row int) error {
		for j := range cols {
			cell := cols[j]
			if row >= 0 {
				cell = grid[j][row]
			}
			if right[j] {
				cell = strings.Repeat(" ", widths[j]-len(cell)) + cell
			} else if j < len(cols)-1 {
				cell += strings.Repeat(" ", widths[j]-len(cell))
			}
			line[j] = cell
		}
		_, err := fmt.Fprintf(w, "%s\n", strings.Join(line, "  "))
		return err
	}
	if err := put(-1); err != nil {
		return err
	}
	for i := 0; i < t.Len(); i++ {
		if err := put(i); err != nil {
			return err
		}
	}
	return nil
}

// Print writes Table t to standard output in aligned columns. See
// Fprint.
func Print(t *Table, formats ...string) error {
	return Fprint(os.Stdout, t, formats...)
}
