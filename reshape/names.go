// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reshape

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// A splitter decomposes a string into a fixed number of parts. It
// strips an optional prefix and then either splits on a separator or
// extracts the capture groups of a regular expression. Longer uses a
// splitter on column names and Separate uses one on cell values.
type splitter struct {
	prefix string
	sep    string
	re     *regexp.Regexp
	n      int
}

// newSplitter returns a splitter producing n parts. At most one of
// sep and pattern may be set. If neither is set, n must be 1 and
// strings are not decomposed beyond stripping prefix.
func newSplitter(prefix, sep, pattern string, n int) (*splitter, error) {
	s := &splitter{prefix: prefix, sep: sep, n: n}
	switch {
	case sep != "" && pattern != "":
		return nil, errors.New("cannot set both a separator and a pattern")
	case pattern != "":
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern: %v", err)
		}
		if g := re.NumSubexp(); g != n {
			return nil, fmt.Errorf("pattern %q has %d capture groups; want %d", pattern, g, n)
		}
		s.re = re
	case sep == "" && n != 1:
		return nil, fmt.Errorf("need a separator or a pattern to decompose names into %d parts", n)
	}
	return s, nil
}

// split decomposes s into n parts.
func (s *splitter) split(str string) ([]string, error) {
	str = strings.TrimPrefix(str, s.prefix)
	switch {
	case s.re != nil:
		m := s.re.FindStringSubmatch(str)
		if m == nil {
			return nil, fmt.Errorf("%q does not match pattern %q", str, s.re)
		}
		return m[1:], nil
	case s.sep != "":
		parts := strings.Split(str, s.sep)
		if len(parts) != s.n {
			return nil, fmt.Errorf("%q splits into %d parts on %q; want %d", str, len(parts), s.sep, s.n)
		}
		return parts, nil
	}
	return []string{str}, nil
}
