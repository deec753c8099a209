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

// Package ignore matches paths against gitignore-like exclude patterns.
package ignore

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// IgnoreList matches paths against a list of patterns, similar to .gitignore.
type IgnoreList struct {
	rules []rule
}

type rule struct {
	pattern string
	g       glob.Glob
	// dirOnly is set for patterns ending in "/".
	dirOnly bool
	// anyDepth is set for patterns starting with "**/".
	anyDepth bool
	// anchored patterns contain a "/" and match the whole relative path;
	// the others match the base name.
	anchored bool
}

// NewIgnoreList compiles patterns. Blank patterns and "#" comments are skipped.
func NewIgnoreList(patterns []string) (*IgnoreList, error) {
	l := &IgnoreList{}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" || strings.HasPrefix(p, "#") {
			continue
		}

		r := rule{pattern: p}
		expr := p
		if strings.HasSuffix(expr, "/") {
			r.dirOnly = true
			expr = strings.TrimSuffix(expr, "/")
		}
		if strings.HasPrefix(expr, "**/") {
			r.anyDepth = true
			expr = strings.TrimPrefix(expr, "**/")
		} else {
			r.anchored = strings.Contains(p, "/")
			expr = strings.TrimPrefix(expr, "/")
		}

		g, err := glob.Compile(expr, '/')
		if err != nil {
			return nil, fmt.Errorf("compiling exclude pattern %q: %w", p, err)
		}
		r.g = g
		l.rules = append(l.rules, r)
	}
	return l, nil
}

// Len returns the number of patterns in use.
func (l *IgnoreList) Len() int {
	return len(l.rules)
}

// ShouldIgnore returns true if the path should be ignored.
// path should be relative to the root of the walk.
func (l *IgnoreList) ShouldIgnore(p string, isDir bool) bool {
	p = strings.TrimPrefix(filepath.ToSlash(p), "./")
	for _, r := range l.rules {
		if r.match(p, isDir) {
			return true
		}
	}
	return false
}

// ShouldIgnoreTree is ShouldIgnore applied to p and to each of its parent
// directories, so everything below an ignored directory is ignored as well.
func (l *IgnoreList) ShouldIgnoreTree(p string, isDir bool) bool {
	p = strings.TrimPrefix(filepath.ToSlash(p), "./")
	for i := 1; i < len(p); i++ {
		if p[i] == '/' && l.ShouldIgnore(p[:i], true) {
			return true
		}
	}
	return l.ShouldIgnore(p, isDir)
}

func (r rule) match(p string, isDir bool) bool {
	if r.dirOnly && !isDir {
		return false
	}

	switch {
	case r.anyDepth:
		// "**/testdata" matches "testdata" and "pkg/testdata".
		if r.g.Match(p) {
			return true
		}
		for i := 0; i < len(p); i++ {
			if p[i] == '/' && r.g.Match(p[i+1:]) {
				return true
			}
		}
		return false
	case r.anchored:
		return r.g.Match(p)
	default:
		return r.g.Match(path.Base(p))
	}
}
