// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pattern

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter is a compiled pattern. Anchor is the literal directory a traversal
// starts from and Match tests candidate paths against the whole pattern.
type Filter struct {
	// Pattern is the normalized pattern without its negation marker.
	Pattern string
	// Anchor is the literal prefix of Pattern.
	Anchor string
	// Negated records a leading "!" on the source pattern. Match does not
	// invert its result; callers decide what negation means for them.
	Negated bool
	// DirOnly is set for glob patterns ending in a separator, which name
	// directories only.
	DirOnly bool

	glob  bool
	match func(string) bool
}

// Compile prepares p for matching. A pattern without glob syntax matches
// every path, and its anchor is the pattern itself.
func Compile(p string) (*Filter, error) {
	p, negative := SplitNegation(p)
	p = Unixlike(p)

	f := &Filter{
		Pattern: p,
		Anchor:  Parent(p),
		Negated: negative,
	}
	if !IsGlob(p) {
		f.match = func(string) bool { return true }
		return f, nil
	}

	// A trailing separator only says the pattern names a directory; the
	// candidate paths handed to Match never carry one.
	expr := strings.TrimSuffix(p, "/")
	f.glob = true
	f.DirOnly = expr != p
	if needsExtended(expr) {
		m, err := compileExtended(expr)
		if err != nil {
			return nil, fmt.Errorf("%w: pattern %q: %v", ErrInvalidArgument, p, err)
		}
		f.match = m.match
		return f, nil
	}

	if !doublestar.ValidatePattern(expr) {
		return nil, fmt.Errorf("%w: pattern %q: %v", ErrInvalidArgument, p, doublestar.ErrBadPattern)
	}
	f.match = func(candidate string) bool {
		ok, err := doublestar.Match(expr, candidate)
		return err == nil && ok
	}
	return f, nil
}

// IsGlob reports whether the filter carries glob syntax.
func (f *Filter) IsGlob() bool {
	return f.glob
}

// Match reports whether candidate matches the pattern. The candidate is
// converted to the canonical separator before testing.
func (f *Filter) Match(candidate string) bool {
	if !f.glob {
		return true
	}
	return f.match(canonical(candidate))
}

// Match is a shorthand for compiling p and testing candidate against it.
func Match(p, candidate string) (bool, error) {
	f, err := Compile(p)
	if err != nil {
		return false, err
	}
	return f.Match(candidate), nil
}

func canonical(p string) string {
	p = strings.ReplaceAll(filepath.ToSlash(p), string(backslash), string(slash))
	p = normalize(p)
	if len(p) > 1 && p[len(p)-1] == slash && !isLoneDrive(p[:len(p)-1]) {
		p = p[:len(p)-1]
	}
	return p
}

// needsExtended reports whether p uses syntax doublestar does not
// understand: regex groups, extglob groups or numeric/letter brace ranges.
func needsExtended(p string) bool {
	return regexGroupRE.MatchString(p) || extGlobRE.MatchString(p) || braceRangeRE.MatchString(p)
}
