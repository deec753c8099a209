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
	"errors"
	"testing"
)

func TestCompileAnchor(t *testing.T) {
	grid := []struct {
		pattern string
		anchor  string
		glob    bool
		negated bool
	}{
		{"src/**/*.js", "src", true, false},
		{"/root/**/*.js", "/root", true, false},
		{"src/a", "src/a", false, false},
		{`src\a\`, "src/a", false, false},
		{"!*.js", ".", true, true},
		{"(foo bar)/subdir/foo.*", "(foo bar)/subdir", true, false},
	}
	for _, g := range grid {
		f, err := Compile(g.pattern)
		if err != nil {
			t.Errorf("Compile(%q) returned error: %v", g.pattern, err)
			continue
		}
		if f.Anchor != g.anchor {
			t.Errorf("Compile(%q).Anchor = %q, want %q", g.pattern, f.Anchor, g.anchor)
		}
		if f.IsGlob() != g.glob {
			t.Errorf("Compile(%q).IsGlob() = %v, want %v", g.pattern, f.IsGlob(), g.glob)
		}
		if f.Negated != g.negated {
			t.Errorf("Compile(%q).Negated = %v, want %v", g.pattern, f.Negated, g.negated)
		}
	}
}

func TestMatch(t *testing.T) {
	grid := []struct {
		pattern   string
		candidate string
		want      bool
	}{
		// Literal patterns accept everything below them.
		{"src/a", "src/a/b/c", true},
		{"src/a", "elsewhere", true},

		{"src/**/*.js", "src/b.js", true},
		{"src/**/*.js", "src/a/b/c.js", true},
		{"src/**/*.js", `src\a\c.js`, true},
		{"src/**/*.js", "src/a/c.ts", false},
		{"src/**/*.js", "lib/b.js", false},
		{"src/*.js", "src/a/b.js", false},
		{"src/*/", "src/a", true},
		{"*.{js,ts}", "x.ts", true},
		{"*.{js,ts}", "x.go", false},
		{"[a-c].txt", "b.txt", true},
		{"[a-c].txt", "d.txt", false},
		{"!*.js", "a.js", true},

		{"a/(b|c).js", "a/b.js", true},
		{"a/(b|c).js", "a/d.js", false},
		{"a/@(x|y)", "a/y", true},
		{"a/@(x|y)", "a/xy", false},
		{"!(foo).js", "bar.js", true},
		{"!(foo).js", "foo.js", false},
		{"+(a|b)c", "abac", true},
		{"+(a|b)c", "c", false},
		{"*(a|b)c", "c", true},
		{"*(a|b)c", "abc", true},
		{"?(a)c", "c", true},
		{"?(a)c", "ac", true},
		{"?(a)c", "aac", false},
		{"file{1..3}.txt", "file2.txt", true},
		{"file{1..3}.txt", "file4.txt", false},
		{"{c..a}", "b", true},
		{"src/**/(a|b).go", "src/a.go", true},
		{"src/**/(a|b).go", "src/x/y/b.go", true},
		{"src/**/(a|b).go", "src/x/c.go", false},
		{"src/*(x|y)/*.go", "src/xyx/m.go", true},
		{"src/*(x|y)/*.go", "src/xyz/m.go", false},
	}
	for _, g := range grid {
		got, err := Match(g.pattern, g.candidate)
		if err != nil {
			t.Errorf("Match(%q, %q) returned error: %v", g.pattern, g.candidate, err)
			continue
		}
		if got != g.want {
			t.Errorf("Match(%q, %q) = %v, want %v", g.pattern, g.candidate, got, g.want)
		}
	}
}

func TestCompileInvalid(t *testing.T) {
	for _, p := range []string{
		"(a|b)[z-a]",
	} {
		if _, err := Compile(p); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Compile(%q) error = %v, want ErrInvalidArgument", p, err)
		}
	}
}

func TestCompileDirOnly(t *testing.T) {
	grid := []struct {
		pattern string
		want    bool
	}{
		{"src/*/", true},
		{`src\*\`, true},
		{"src/*", false},
		{"src/", false},
		{"/", false},
	}
	for _, g := range grid {
		f, err := Compile(g.pattern)
		if err != nil {
			t.Errorf("Compile(%q) returned error: %v", g.pattern, err)
			continue
		}
		if f.DirOnly != g.want {
			t.Errorf("Compile(%q).DirOnly = %v, want %v", g.pattern, f.DirOnly, g.want)
		}
	}
}
