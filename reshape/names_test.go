// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reshape

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitter(t *testing.T) {
	check := func(prefix, sep, pattern string, n int, str string, want ...string) {
		t.Helper()
		sp, err := newSplitter(prefix, sep, pattern, n)
		if err != nil {
			t.Errorf("newSplitter(%q, %q, %q, %d) failed: %s", prefix, sep, pattern, n, err)
			return
		}
		got, err := sp.split(str)
		if err != nil {
			t.Errorf("split(%q) failed: %s", str, err)
			return
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("split(%q) should be %v; got %v", str, want, got)
		}
	}

	check("", "", "", 1, "wk10", "wk10")
	check("wk", "", "", 1, "wk10", "10")
	check("", "_", "", 2, "sp_m", "sp", "m")
	check("", "_", "", 3, "sp_m_014", "sp", "m", "014")
	check("new_", "_", "", 3, "new_sp_m_014", "sp", "m", "014")
	check("", "", `(sp|ep)_(m|f)(\d+)`, 3, "sp_m014", "sp", "m", "014")
	// A prefix is stripped before the pattern applies.
	check("new", "", `_?(.*)_(.)_(.*)`, 3, "newrel_m_014", "rel", "m", "014")
}

func TestSplitterErrors(t *testing.T) {
	checkNew := func(sep, pattern string, n int, want string) {
		t.Helper()
		_, err := newSplitter("", sep, pattern, n)
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Errorf("newSplitter(%q, %q, %d) should fail with %q; got %v", sep, pattern, n, want, err)
		}
	}
	checkNew("_", `(a)(b)`, 2, "cannot set both")
	checkNew("", `(a`, 1, "bad pattern")
	checkNew("", `(a)(b)`, 3, "capture groups; want 3")
	checkNew("", "", 2, "need a separator or a pattern")

	checkSplit := func(sep, pattern string, n int, str, want string) {
		t.Helper()
		sp, err := newSplitter("", sep, pattern, n)
		if err != nil {
			t.Fatalf("newSplitter failed: %s", err)
		}
		_, err = sp.split(str)
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Errorf("split(%q) should fail with %q; got %v", str, want, err)
		}
	}
	checkSplit("_", "", 2, "abc", `splits into 1 parts on "_"; want 2`)
	checkSplit("_", "", 2, "a_b_c", `splits into 3 parts on "_"; want 2`)
	checkSplit("", `(sp|ep)_(\d+)`, 2, "xx_014", "does not match pattern")
}
