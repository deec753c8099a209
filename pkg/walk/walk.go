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

// Package walk traverses a directory tree rooted at a path or a glob pattern
// and reports every matching file and directory to caller callbacks.
//
// The root's literal prefix (its anchor) is the directory the traversal
// starts from; the anchor itself is not reported, its descendants are. When
// the root carries glob syntax only entries matching the whole pattern are
// reported, but every directory below the anchor is still descended so the
// pattern can match at any depth.
//
// Symbolic links are followed by default. A followed link is reported at its
// own path and its children below the link path. A link is reported but not
// descended when its target is the anchor or lies inside it, or when the
// target is (or contains) a directory already being listed on the way to the
// link. Cyclic trees terminate even when the cycle lies outside the anchor.
//
// Reported paths are absolute and use forward slashes.
package walk

import (
	"context"
	"io/fs"
	"runtime"
	"strings"

	"github.com/gke-labs/globwalk/pkg/fsys"
	"github.com/gke-labs/globwalk/pkg/pattern"
)

var (
	// ErrInvalidArgument reports an unusable root, base directory or filesystem.
	ErrInvalidArgument = pattern.ErrInvalidArgument
	// ErrNotFound is matched by errors for roots that do not exist.
	ErrNotFound = fs.ErrNotExist
	// ErrUnsupported reports a capability the filesystem does not have.
	ErrUnsupported = fsys.ErrUnsupported
)

// Action tells the traversal how to continue after a callback.
type Action int

const (
	// Continue visits the next entry.
	Continue Action = iota
	// Done stops the whole traversal.
	Done
	// Skip does not descend into the directory just reported. Returned from
	// a file callback it means Continue.
	Skip
)

func (a Action) String() string {
	switch a {
	case Continue:
		return "continue"
	case Done:
		return "done"
	case Skip:
		return "skip"
	default:
		return "unknown"
	}
}

// Func is called with the path of a reported entry.
type Func func(path string) Action

// Options configures a traversal. The zero value, like a nil *Options,
// streams directories 32 entries at a time from the OS filesystem and
// follows symbolic links.
type Options struct {
	// Strategy selects streaming or bulk directory reads.
	Strategy fsys.Strategy
	// BufferSize is the number of entries a streaming read fetches at a
	// time. Zero means 32.
	BufferSize int
	// FollowSymlinks defaults to true when nil.
	FollowSymlinks *bool
	// FS defaults to the OS filesystem.
	FS fsys.FS
	// BaseDir is the absolute directory relative roots are resolved
	// against. Empty means the working directory.
	BaseDir string
}

// Ptr returns a pointer to v, for the pointer fields of Options.
func Ptr[T any](v T) *T {
	return &v
}

func (o *Options) withDefaults() Options {
	var out Options
	if o != nil {
		out = *o
	}
	if out.BufferSize <= 0 {
		out.BufferSize = fsys.DefaultBufferSize
	}
	if out.FS == nil {
		out.FS = fsys.OS()
	}
	return out
}

func (o Options) followSymlinks() bool {
	return o.FollowSymlinks == nil || *o.FollowSymlinks
}

// WalkSync traverses root and blocks until it is done. onFile and onDir may
// be nil.
func WalkSync(root string, onFile, onDir Func, opts *Options) error {
	w, err := newWalker(root, onFile, onDir, opts)
	if err != nil {
		return err
	}
	return w.run()
}

// Walk starts a traversal of root on its own goroutine and returns a channel
// that receives its result once. The traversal yields the processor before
// every directory open, entry and link resolution, and stops with ctx.Err()
// at those points once ctx is done. Callbacks are called one at a time from
// the traversal goroutine; argument errors are reported before any I/O.
func Walk(ctx context.Context, root string, onFile, onDir Func, opts *Options) <-chan error {
	errc := make(chan error, 1)
	w, err := newWalker(root, onFile, onDir, opts)
	if err != nil {
		errc <- err
		close(errc)
		return errc
	}
	w.yield = func() error {
		runtime.Gosched()
		return ctx.Err()
	}

	go func() {
		defer close(errc)
		errc <- w.run()
	}()
	return errc
}

// WalkContext runs Walk and waits for its result.
func WalkContext(ctx context.Context, root string, onFile, onDir Func, opts *Options) error {
	return <-Walk(ctx, root, onFile, onDir, opts)
}

func joinPath(dir, name string) string {
	if strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + "/" + name
}

// isSubPath reports whether child lies strictly below parent. Both must be
// clean absolute slash paths.
func isSubPath(child, parent string) bool {
	rel, ok := strings.CutPrefix(child, strings.TrimSuffix(parent, "/")+"/")
	return ok && rel != ""
}
