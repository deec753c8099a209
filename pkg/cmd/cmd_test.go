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

package cmd

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// tree creates files (and their parent directories) under a fresh temporary
// directory and returns it in slash form.
func tree(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range files {
		p := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(f), 0o644))
	}
	return filepath.ToSlash(dir)
}

func sampleTree(t *testing.T) string {
	return tree(t, "a.js", "b.txt", "node_modules/x.js", "sub/c.js", "sub/deep/d.js")
}

func execute(t *testing.T, baseDir string, args ...string) (string, string, error) {
	t.Helper()
	cmd := buildRootCommand(&RootOptions{BaseDir: baseDir})
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func lines(prefix string, paths ...string) string {
	var b strings.Builder
	for _, p := range paths {
		b.WriteString(prefix + "/" + p + "\n")
	}
	return b.String()
}

func TestWalkCommand(t *testing.T) {
	dir := sampleTree(t)

	out, errOut, err := execute(t, dir, "walk", "--strategy", "bulk", "--color", "never", dir)
	require.NoError(t, err)
	assert.Equal(t, lines(dir,
		"a.js",
		"b.txt",
		"node_modules/",
		"node_modules/x.js",
		"sub/",
		"sub/c.js",
		"sub/deep/",
		"sub/deep/d.js",
	), out)
	assert.Equal(t, "5 files, 3 directories\n", errOut)
}

func TestWalkCommandFilters(t *testing.T) {
	dir := sampleTree(t)

	grid := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "glob",
			args: []string{dir + "/**/*.js"},
			want: []string{"a.js", "node_modules/x.js", "sub/c.js", "sub/deep/d.js"},
		},
		{
			name: "exclude",
			args: []string{"--exclude", "node_modules/", "--exclude", "*.txt", dir},
			want: []string{"a.js", "sub/", "sub/c.js", "sub/deep/", "sub/deep/d.js"},
		},
		{
			name: "exclude relative to walk start",
			args: []string{"--exclude", "sub/deep", dir + "/sub"},
			want: []string{"sub/c.js", "sub/deep/", "sub/deep/d.js"},
		},
		{
			name: "exclude with glob root",
			args: []string{"--exclude", "node_modules/", dir + "/**/*.js"},
			want: []string{"a.js", "sub/c.js", "sub/deep/d.js"},
		},
		{
			name: "exclude nested directory with glob root",
			args: []string{"--exclude", "deep", dir + "/**/*.js"},
			want: []string{"a.js", "node_modules/x.js", "sub/c.js"},
		},
		{
			name: "exclude file root",
			args: []string{"--exclude", "*.txt", dir + "/b.txt", dir + "/a.js"},
			want: []string{"a.js"},
		},
		{
			name: "directories only",
			args: []string{"--type", "d", dir},
			want: []string{"node_modules/", "sub/", "sub/deep/"},
		},
		{
			name: "files only",
			args: []string{"--type", "f", dir + "/sub"},
			want: []string{"sub/c.js", "sub/deep/d.js"},
		},
		{
			name: "max results",
			args: []string{"--max-results", "2", dir},
			want: []string{"a.js", "b.txt"},
		},
		{
			name: "relative root",
			args: []string{"sub/deep"},
			want: []string{"sub/deep/d.js"},
		},
	}

	for _, g := range grid {
		t.Run(g.name, func(t *testing.T) {
			args := append([]string{"walk", "--strategy", "bulk", "--color", "never"}, g.args...)
			out, _, err := execute(t, dir, args...)
			require.NoError(t, err)
			assert.Equal(t, lines(dir, g.want...), out)
		})
	}
}

func TestWalkCommandRootsInArgumentOrder(t *testing.T) {
	dir := sampleTree(t)

	out, _, err := execute(t, dir, "walk", "--strategy", "bulk", "--color", "never", "-j", "2", "sub", "node_modules", "a.js")
	require.NoError(t, err)
	assert.Equal(t, lines(dir, "sub/c.js", "sub/deep/", "sub/deep/d.js", "node_modules/x.js", "a.js"), out)
}

func TestWalkCommandYAML(t *testing.T) {
	dir := sampleTree(t)

	out, _, err := execute(t, dir, "walk", "--strategy", "bulk", "-o", "yaml", "sub")
	require.NoError(t, err)

	var results []Result
	require.NoError(t, yaml.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "sub", results[0].Root)
	assert.Equal(t, []Entry{
		{Path: dir + "/sub/c.js", Kind: kindFile},
		{Path: dir + "/sub/deep", Kind: kindDir},
		{Path: dir + "/sub/deep/d.js", Kind: kindFile},
	}, results[0].Entries)
}

func TestWalkCommandColor(t *testing.T) {
	dir := sampleTree(t)

	out, _, err := execute(t, dir, "walk", "--color", "always", "--type", "d", "sub")
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, dir+"/sub/deep/")

	out, _, err = execute(t, dir, "walk", "--color", "never", "--type", "d", "sub")
	require.NoError(t, err)
	assert.NotContains(t, out, "\x1b[")
}

func TestWalkCommandConfigFile(t *testing.T) {
	dir := sampleTree(t)
	config := `
walk:
  strategy: bulk
exclude:
- sub/
- .globwalk.yaml
output:
  color: never
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".globwalk.yaml"), []byte(config), 0o644))

	out, _, err := execute(t, dir, "walk", ".")
	require.NoError(t, err)
	assert.Equal(t, lines(dir, "a.js", "b.txt", "node_modules/", "node_modules/x.js"), out)
}

func TestWalkCommandErrors(t *testing.T) {
	dir := sampleTree(t)

	grid := []struct {
		name string
		args []string
		want string
	}{
		{name: "strategy", args: []string{"walk", "--strategy", "sideways", dir}, want: "sideways"},
		{name: "type", args: []string{"walk", "--type", "x", dir}, want: "unknown type"},
		{name: "output", args: []string{"walk", "-o", "json", dir}, want: "unknown output format"},
		{name: "color", args: []string{"walk", "--color", "rainbow", dir}, want: "unknown color mode"},
		{name: "config", args: []string{"--config", dir + "/missing.yaml", "walk", dir}, want: "missing.yaml"},
	}

	for _, g := range grid {
		t.Run(g.name, func(t *testing.T) {
			_, _, err := execute(t, dir, g.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), g.want)
		})
	}

	_, _, err := execute(t, dir, "walk", "missing")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestClassifyCommand(t *testing.T) {
	dir := sampleTree(t)

	out, errOut, err := execute(t, dir, "classify", "--color", "never", "a.js", "sub", dir+"/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "a.js\nsub/\n"+dir+"/b.txt\n", out)
	assert.Equal(t, "2 files, 1 directories\n", errOut)

	_, _, err = execute(t, dir, "classify", "a.js", "missing")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestPatternCommand(t *testing.T) {
	grid := []struct {
		args []string
		want string
	}{
		{args: []string{"pattern", "parent", "src/**/*.js", "/a/b/c"}, want: "src\n/a/b/c\n"},
		{args: []string{"pattern", "part", "src/**/*.js", "/a/b/c"}, want: "**/*.js\n\n"},
		{args: []string{"pattern", "is-glob", "a/*", "a/b", "!a"}, want: "true\nfalse\ntrue\n"},
		{args: []string{"pattern", "resolve", "--base", "/base", "a/*.js", "/x/../y", "!b"}, want: "/base/a/*.js\n/y\n!/base/b\n"},
		{args: []string{"pattern", "match", "**/*.js", "a/b.js", "a/b.ts"}, want: "a/b.js\ttrue\na/b.ts\tfalse\n"},
		{args: []string{"pattern", "match", "*.@(js|ts)", "x.ts", "x.go"}, want: "x.ts\ttrue\nx.go\tfalse\n"},
	}

	dir := t.TempDir()
	for _, g := range grid {
		out, _, err := execute(t, dir, g.args...)
		require.NoError(t, err, "args %v", g.args)
		assert.Equal(t, g.want, out, "args %v", g.args)
	}

	_, _, err := execute(t, dir, "pattern", "resolve", "--base", "relative", "a")
	assert.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestPatternCommandWriteErrors(t *testing.T) {
	grid := [][]string{
		{"pattern", "parent", "a/*"},
		{"pattern", "resolve", "--base", "/base", "a"},
		{"pattern", "match", "*.js", "a.js"},
	}
	for _, args := range grid {
		cmd := buildRootCommand(&RootOptions{BaseDir: t.TempDir()})
		cmd.SetOut(failingWriter{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(args)
		err := cmd.ExecuteContext(context.Background())
		assert.ErrorContains(t, err, "disk full", "args %v", args)
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Git SHA:")
}
