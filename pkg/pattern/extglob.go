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
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// The extended matcher covers the pattern syntax doublestar does not:
// "(a|b)" groups, the extglob operators "?()", "*()", "+()", "@()", "!()"
// and "{1..3}" style ranges. It also understands everything else a glob may
// contain so a pattern is always matched by a single engine.

var (
	braceRangeRE  = regexp.MustCompile(`\{(?:-?\d+\.\.-?\d+|[a-zA-Z]\.\.[a-zA-Z])\}`)
	numberRangeRE = regexp.MustCompile(`^(-?\d+)\.\.(-?\d+)$`)
	letterRangeRE = regexp.MustCompile(`^([a-zA-Z])\.\.([a-zA-Z])$`)
)

// maxRangeItems bounds the expansion of a "{n..m}" range.
const maxRangeItems = 4096

type node interface{}

type (
	literal   string
	star      struct{}
	anyChar   struct{}
	charClass struct{ re *regexp.Regexp }
	globstar  struct{ slash bool }
	group     struct {
		op   byte
		alts [][]node
	}
)

type extendedMatcher struct {
	nodes []node
}

func compileExtended(p string) (*extendedMatcher, error) {
	nodes, err := parse(p)
	if err != nil {
		return nil, err
	}
	return &extendedMatcher{nodes: nodes}, nil
}

func (m *extendedMatcher) match(s string) bool {
	return matchNodes(m.nodes, s, func(rest string) bool { return rest == "" })
}

func isExtOp(c byte) bool {
	return strings.IndexByte("!*+?@", c) >= 0
}

func parse(p string) ([]node, error) {
	var nodes []node
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			nodes = append(nodes, literal(lit.String()))
			lit.Reset()
		}
	}
	push := func(n node) {
		flush()
		nodes = append(nodes, n)
	}

	for i := 0; i < len(p); {
		c := p[i]
		switch {
		case c == backslash && i+1 < len(p):
			lit.WriteByte(p[i+1])
			i += 2

		case isExtOp(c) && i+1 < len(p) && p[i+1] == '(':
			end := closing(p, i+1, '(', ')')
			if end < 0 {
				lit.WriteByte(c)
				i++
				continue
			}
			alts, err := parseAlternatives(p[i+2:end], '|')
			if err != nil {
				return nil, err
			}
			push(&group{op: c, alts: alts})
			i = end + 1

		case c == '(':
			end := closing(p, i, '(', ')')
			if end < 0 || !hasTopLevel(p[i+1:end], '|') {
				lit.WriteByte(c)
				i++
				continue
			}
			alts, err := parseAlternatives(p[i+1:end], '|')
			if err != nil {
				return nil, err
			}
			push(&group{op: '@', alts: alts})
			i = end + 1

		case c == '{':
			end := closing(p, i, '{', '}')
			if end < 0 {
				lit.WriteByte(c)
				i++
				continue
			}
			body := p[i+1 : end]
			if items, ok := expandRange(body); ok {
				alts := make([][]node, 0, len(items))
				for _, item := range items {
					alts = append(alts, []node{literal(item)})
				}
				push(&group{op: '@', alts: alts})
			} else if hasTopLevel(body, ',') {
				alts, err := parseAlternatives(body, ',')
				if err != nil {
					return nil, err
				}
				push(&group{op: '@', alts: alts})
			} else {
				lit.WriteByte(c)
				i++
				continue
			}
			i = end + 1

		case c == '[':
			end := classEnd(p, i)
			if end < 0 {
				lit.WriteByte(c)
				i++
				continue
			}
			re, err := compileClass(p[i+1 : end])
			if err != nil {
				return nil, err
			}
			push(charClass{re: re})
			i = end + 1

		case c == '*':
			if i+1 < len(p) && p[i+1] == '*' && (i == 0 || p[i-1] == slash) {
				j := i + 2
				if j == len(p) {
					push(globstar{})
					i = j
					continue
				}
				if p[j] == slash {
					push(globstar{slash: true})
					i = j + 1
					continue
				}
			}
			push(star{})
			i++
			for i < len(p) && p[i] == '*' && !(i+1 < len(p) && p[i+1] == '(') {
				i++
			}

		case c == '?':
			push(anyChar{})
			i++

		default:
			lit.WriteByte(c)
			i++
		}
	}
	flush()
	return nodes, nil
}

func parseAlternatives(body string, sep byte) ([][]node, error) {
	var alts [][]node
	for _, piece := range splitTopLevel(body, sep) {
		nodes, err := parse(piece)
		if err != nil {
			return nil, err
		}
		alts = append(alts, nodes)
	}
	return alts, nil
}

// closing returns the index of the bracket closing the one at p[i], or -1.
func closing(p string, i int, open, close byte) int {
	depth := 0
	for j := i; j < len(p); j++ {
		switch p[j] {
		case backslash:
			j++
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth, start := 0, 0
	for j := 0; j < len(s); j++ {
		switch s[j] {
		case backslash:
			j++
		case '(', '{':
			depth++
		case ')', '}':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:j])
				start = j + 1
			}
		}
	}
	return append(parts, s[start:])
}

func hasTopLevel(s string, sep byte) bool {
	return len(splitTopLevel(s, sep)) > 1
}

// classEnd returns the index of the "]" closing the class opened at p[i].
func classEnd(p string, i int) int {
	j := i + 1
	if j < len(p) && (p[j] == '!' || p[j] == '^') {
		j++
	}
	if j < len(p) && p[j] == ']' {
		j++
	}
	for j < len(p) {
		switch {
		case p[j] == '[' && j+1 < len(p) && p[j+1] == ':':
			k := strings.Index(p[j+2:], ":]")
			if k < 0 {
				return -1
			}
			j += k + 4
		case p[j] == ']':
			return j
		case p[j] == backslash:
			j += 2
		default:
			j++
		}
	}
	return -1
}

func compileClass(body string) (*regexp.Regexp, error) {
	if strings.HasPrefix(body, "!") {
		body = "^" + body[1:]
	}
	re, err := regexp.Compile("^[" + body + "]$")
	if err != nil {
		return nil, fmt.Errorf("character class [%s]: %w", body, err)
	}
	return re, nil
}

func expandRange(body string) ([]string, bool) {
	if m := numberRangeRE.FindStringSubmatch(body); m != nil {
		from, err1 := strconv.Atoi(m[1])
		to, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil {
			return nil, false
		}
		step := 1
		if to < from {
			step = -1
		}
		if (to-from)*step+1 > maxRangeItems {
			return nil, false
		}
		var items []string
		for n := from; ; n += step {
			items = append(items, strconv.Itoa(n))
			if n == to {
				break
			}
		}
		return items, true
	}
	if m := letterRangeRE.FindStringSubmatch(body); m != nil {
		from, to := m[1][0], m[2][0]
		var items []string
		if from <= to {
			for c := from; c <= to; c++ {
				items = append(items, string(c))
			}
		} else {
			for c := from; c >= to; c-- {
				items = append(items, string(c))
			}
		}
		return items, true
	}
	return nil, false
}

// matchNodes matches s against nodes and hands whatever is left of s to k.
// Backtracking happens through k returning false.
func matchNodes(nodes []node, s string, k func(string) bool) bool {
	if len(nodes) == 0 {
		return k(s)
	}
	rest := nodes[1:]
	next := func(r string) bool { return matchNodes(rest, r, k) }

	switch n := nodes[0].(type) {
	case literal:
		return strings.HasPrefix(s, string(n)) && next(s[len(n):])

	case anyChar:
		if s == "" || s[0] == slash {
			return false
		}
		_, size := utf8.DecodeRuneInString(s)
		return next(s[size:])

	case charClass:
		if s == "" || s[0] == slash {
			return false
		}
		r, size := utf8.DecodeRuneInString(s)
		return n.re.MatchString(string(r)) && next(s[size:])

	case star:
		for i := 0; ; {
			if next(s[i:]) {
				return true
			}
			if i >= len(s) || s[i] == slash {
				return false
			}
			_, size := utf8.DecodeRuneInString(s[i:])
			i += size
		}

	case globstar:
		if next(s) {
			return true
		}
		for i := 0; i < len(s); {
			_, size := utf8.DecodeRuneInString(s[i:])
			if n.slash {
				if s[i] == slash && next(s[i+1:]) {
					return true
				}
			} else if next(s[i+size:]) {
				return true
			}
			i += size
		}
		return false

	case *group:
		return matchGroup(n, s, next)
	}
	return false
}

func matchGroup(g *group, s string, next func(string) bool) bool {
	switch g.op {
	case '?':
		return next(s) || matchAlts(g.alts, s, next)
	case '*':
		return next(s) || matchRepeat(g.alts, s, next)
	case '+':
		return matchRepeat(g.alts, s, next)
	case '!':
		end := strings.IndexByte(s, slash)
		if end < 0 {
			end = len(s)
		}
		for i := 0; i <= end; i++ {
			if i < end && !utf8.RuneStart(s[i]) {
				continue
			}
			if !matchAlts(g.alts, s[:i], isEmpty) && next(s[i:]) {
				return true
			}
		}
		return false
	default:
		return matchAlts(g.alts, s, next)
	}
}

func matchAlts(alts [][]node, s string, next func(string) bool) bool {
	for _, alt := range alts {
		if matchNodes(alt, s, next) {
			return true
		}
	}
	return false
}

// matchRepeat matches one or more occurrences of the alternatives. Each
// repetition has to consume input so empty alternatives cannot loop.
func matchRepeat(alts [][]node, s string, next func(string) bool) bool {
	return matchAlts(alts, s, func(r string) bool {
		return next(r) || (len(r) < len(s) && matchRepeat(alts, r, next))
	})
}

func isEmpty(s string) bool {
	return s == ""
}
