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

package walk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeparateFilesDirs(t *testing.T) {
	mem := memFS(t, "/root/a/a.js", "/root/b.js", "/root/sub/")

	for _, async := range []bool{false, true} {
		rec := &recorder{}
		paths := []string{"/root/a", "/root/b.js", "/root/sub"}
		var err error
		if async {
			err = <-SeparateFilesDirs(context.Background(), paths, rec.onFile, rec.onDir, &Options{FS: mem})
		} else {
			err = SeparateFilesDirsSync(paths, rec.onFile, rec.onDir, &Options{FS: mem})
		}
		require.NoError(t, err)
		assert.Equal(t, []string{"d /root/a", "f /root/b.js", "d /root/sub"}, rec.order, "async=%v", async)
	}
}

func TestSeparateFilesDirsAfterWalk(t *testing.T) {
	mem := memFS(t, "/fixtures/a.js", "/fixtures/sub/b.js")

	var all []string
	collect := func(p string) Action {
		all = append(all, p)
		return Continue
	}
	require.NoError(t, WalkSync("/fixtures", collect, collect, &Options{FS: mem}))
	require.Len(t, all, 3)

	rec := &recorder{}
	require.NoError(t, SeparateFilesDirsSync(all, rec.onFile, rec.onDir, &Options{FS: mem}))
	assert.Len(t, rec.files, 2)
	assert.Len(t, rec.dirs, 1)
}

func TestSeparateFilesDirsRelative(t *testing.T) {
	mem := memFS(t, "/base/a/", "/base/b.txt")
	rec := &recorder{}
	require.NoError(t, SeparateFilesDirsSync([]string{"a", "b.txt"}, rec.onFile, rec.onDir, &Options{FS: mem, BaseDir: "/base"}))
	assert.Equal(t, []string{"d a", "f b.txt"}, rec.order)
}

func TestSeparateFilesDirsDone(t *testing.T) {
	mem := memFS(t, "/root/a/", "/root/b.js", "/root/c/")
	rec := &recorder{fileAction: func(string) Action { return Done }}
	require.NoError(t, SeparateFilesDirsSync([]string{"/root/a", "/root/b.js", "/root/c"}, rec.onFile, rec.onDir, &Options{FS: mem}))
	assert.Equal(t, []string{"d /root/a", "f /root/b.js"}, rec.order)
}

func TestSeparateFilesDirsMissing(t *testing.T) {
	mem := memFS(t, "/root/a/", "/root/c/")
	for _, async := range []bool{false, true} {
		rec := &recorder{}
		paths := []string{"/root/a", "/root/missing", "/root/c"}
		var err error
		if async {
			err = <-SeparateFilesDirs(context.Background(), paths, rec.onFile, rec.onDir, &Options{FS: mem})
		} else {
			err = SeparateFilesDirsSync(paths, rec.onFile, rec.onDir, &Options{FS: mem})
		}
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, []string{"d /root/a"}, rec.order, "async=%v", async)
	}
}

func TestSeparateFilesDirsInvalidBase(t *testing.T) {
	mem := memFS(t, "/base/x")
	grid := []struct {
		name string
		base string
	}{
		{"glob base", "/ba*"},
		{"relative glob base", "rel*"},
		{"relative base", "base"},
	}
	for _, g := range grid {
		called := false
		cb := func(string) Action {
			called = true
			return Continue
		}
		opts := &Options{FS: mem, BaseDir: g.base}
		err := SeparateFilesDirsSync([]string{"x", "/base/x"}, cb, cb, opts)
		assert.ErrorIs(t, err, ErrInvalidArgument, g.name)

		err = <-SeparateFilesDirs(context.Background(), []string{"x", "/base/x"}, cb, cb, opts)
		assert.ErrorIs(t, err, ErrInvalidArgument, g.name)
		assert.False(t, called, g.name)
	}
}
