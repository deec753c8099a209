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
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"syscall"

	"github.com/gke-labs/globwalk/pkg/fsys"
	"github.com/gke-labs/globwalk/pkg/pattern"
	"k8s.io/klog/v2"
)

// walker holds the state of one traversal. It is not safe for concurrent use.
type walker struct {
	fs     fsys.FS
	reader *fsys.Reader
	follow bool
	filter *pattern.Filter

	onFile Func
	onDir  Func

	// anchor is where the traversal starts. anchorReal is its path with
	// symbolic links resolved, computed on first use.
	anchor     string
	anchorReal string

	// stopped is set once a callback returns Done.
	stopped bool
	// yield, when set, runs at every suspension point.
	yield func() error

	files int
	dirs  int
}

// frame is a directory being listed.
type frame struct {
	// dir is the path entries are reported under.
	dir string
	// real is dir with links resolved, when it is known without I/O.
	real string
	// viaLink is set below a followed symbolic link.
	viaLink bool
	// up is the directory being listed when this one was reached.
	up *frame
}

func newWalker(root string, onFile, onDir Func, opts *Options) (*walker, error) {
	if strings.ContainsRune(root, 0) {
		return nil, fmt.Errorf("%w: root %q contains a NUL byte", ErrInvalidArgument, root)
	}
	if root == "" {
		root = "."
	}
	o := opts.withDefaults()

	abs, err := pattern.Resolve(root, o.BaseDir)
	if err != nil {
		return nil, err
	}
	// Resolve drops the trailing separator of a glob, which marks a
	// directory-only pattern.
	if pattern.IsGlob(root) && strings.HasSuffix(pattern.Unixlike(root), "/") && !strings.HasSuffix(abs, "/") {
		abs += "/"
	}
	filter, err := pattern.Compile(abs)
	if err != nil {
		return nil, err
	}
	reader, err := fsys.NewReader(o.FS, o.Strategy, o.BufferSize)
	if err != nil {
		return nil, err
	}

	return &walker{
		fs:     o.FS,
		reader: reader,
		follow: o.followSymlinks(),
		filter: filter,
		onFile: onFile,
		onDir:  onDir,
		anchor: filter.Anchor,
	}, nil
}

func (w *walker) run() error {
	klog.V(2).Infof("walking %q from %q (strategy=%v, follow=%v)", w.filter.Pattern, w.anchor, w.reader.Strategy(), w.follow)

	info, err := w.fs.Lstat(w.anchor)
	if err != nil {
		return fmt.Errorf("walking %q: %w", w.anchor, err)
	}

	switch fsys.KindOf(info.Mode()) {
	case fsys.KindDir:
		err = w.walkDir(frame{dir: w.anchor})
	case fsys.KindFile:
		w.file(w.anchor)
	case fsys.KindSymlink:
		err = w.runLink()
	default:
		klog.V(2).Infof("%q is neither a file nor a directory, nothing to walk", w.anchor)
	}
	if err != nil {
		return err
	}

	klog.V(2).Infof("walked %q: reported %d files and %d directories", w.filter.Pattern, w.files, w.dirs)
	return nil
}

// runLink handles an anchor that is itself a symbolic link.
func (w *walker) runLink() error {
	if err := w.checkpoint(); err != nil {
		return err
	}
	info, err := w.fs.Stat(w.anchor)
	if err != nil {
		return fmt.Errorf("walking %q: %w", w.anchor, err)
	}
	switch fsys.KindOf(info.Mode()) {
	case fsys.KindFile:
		w.file(w.anchor)
		return nil
	case fsys.KindDir:
	default:
		return nil
	}

	if !w.follow {
		w.dir(w.anchor)
		return nil
	}
	// The link's target is the directory being walked, so plain directories
	// below it need no cycle check.
	resolved, err := w.anchorRealPath()
	if err != nil {
		return err
	}
	return w.walkDir(frame{dir: w.anchor, real: resolved})
}

func (w *walker) checkpoint() error {
	if w.yield == nil {
		return nil
	}
	return w.yield()
}

func (w *walker) walkDir(f frame) error {
	if w.stopped {
		return nil
	}
	if err := w.checkpoint(); err != nil {
		return err
	}
	klog.V(4).Infof("listing %q", f.dir)

	// Errors from entries are kept apart so only listing failures get
	// this directory's context.
	var visitErr error
	err := w.reader.Each(f.dir, func(e fsys.Entry) (bool, error) {
		if visitErr = w.checkpoint(); visitErr != nil {
			return false, nil
		}
		if w.stopped {
			return false, nil
		}
		if visitErr = w.visit(f, e); visitErr != nil {
			return false, nil
		}
		return !w.stopped, nil
	})
	if visitErr != nil {
		return visitErr
	}
	if err != nil {
		return fmt.Errorf("listing %q: %w", f.dir, err)
	}
	return nil
}

func (w *walker) visit(parent frame, e fsys.Entry) error {
	p := joinPath(parent.dir, e.Name)
	klog.V(4).Infof("visiting %s %q", e.Kind, p)

	switch e.Kind {
	case fsys.KindFile:
		w.file(p)
		return nil

	case fsys.KindDir:
		child := frame{dir: p, viaLink: parent.viaLink, up: &parent}
		if parent.real != "" {
			child.real = joinPath(parent.real, e.Name)
		}
		switch w.dir(p) {
		case Done, Skip:
			return nil
		}
		if child.viaLink {
			inside, err := w.insideAnchor(child.real)
			if err != nil {
				return err
			}
			if inside {
				klog.V(2).Infof("not descending into %q: %q is already part of the walk", p, child.real)
				return nil
			}
		}
		return w.walkDir(child)

	case fsys.KindSymlink:
		return w.visitLink(parent, p)

	default:
		klog.V(4).Infof("skipping %q: not a file or directory", p)
		return nil
	}
}

func (w *walker) visitLink(parent frame, p string) error {
	if err := w.checkpoint(); err != nil {
		return err
	}
	info, err := w.fs.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ELOOP) {
			klog.V(2).Infof("skipping broken symlink %q: %v", p, err)
			return nil
		}
		return fmt.Errorf("resolving symlink %q: %w", p, err)
	}

	switch fsys.KindOf(info.Mode()) {
	case fsys.KindFile:
		w.file(p)
		return nil
	case fsys.KindDir:
	default:
		klog.V(4).Infof("skipping %q: link target is not a file or directory", p)
		return nil
	}

	switch w.dir(p) {
	case Done, Skip:
		return nil
	}
	if !w.follow {
		return nil
	}

	if err := w.checkpoint(); err != nil {
		return err
	}
	resolved, err := fsys.EvalSymlinks(w.fs, p)
	if err != nil {
		return fmt.Errorf("resolving symlink %q: %w", p, err)
	}

	cyclic, err := w.insideAnchor(resolved)
	if err != nil {
		return err
	}
	if !cyclic {
		cyclic, err = w.onChain(&parent, resolved)
		if err != nil {
			return err
		}
	}
	if cyclic {
		klog.V(2).Infof("not descending into symlink %q: target %q is already part of the walk", p, resolved)
		return nil
	}
	return w.walkDir(frame{dir: p, real: resolved, viaLink: true, up: &parent})
}

// onChain reports whether resolved is, or is an ancestor of, a directory
// on the chain of listings that led to f.
func (w *walker) onChain(f *frame, resolved string) (bool, error) {
	for ; f != nil; f = f.up {
		r, err := w.realPath(*f)
		if err != nil {
			return false, err
		}
		if resolved == r || isSubPath(r, resolved) {
			return true, nil
		}
	}
	return false, nil
}

// insideAnchor reports whether the resolved path p is the anchor or lies
// below it.
func (w *walker) insideAnchor(p string) (bool, error) {
	anchorReal, err := w.anchorRealPath()
	if err != nil {
		return false, err
	}
	return p == anchorReal || isSubPath(p, anchorReal), nil
}

func (w *walker) anchorRealPath() (string, error) {
	if w.anchorReal != "" {
		return w.anchorReal, nil
	}
	resolved, err := fsys.EvalSymlinks(w.fs, w.anchor)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", w.anchor, err)
	}
	w.anchorReal = resolved
	return resolved, nil
}

// realPath returns f.dir with links resolved. Outside followed links f.dir
// is the anchor or a plain descendant of it, so no I/O beyond the anchor's
// own resolution is needed.
func (w *walker) realPath(f frame) (string, error) {
	if f.real != "" {
		return f.real, nil
	}
	anchorReal, err := w.anchorRealPath()
	if err != nil {
		return "", err
	}
	rel := strings.TrimPrefix(strings.TrimPrefix(f.dir, w.anchor), "/")
	if rel == "" {
		return anchorReal, nil
	}
	return joinPath(anchorReal, rel), nil
}

func (w *walker) file(p string) {
	if w.onFile == nil || w.filter.DirOnly || !w.filter.Match(p) {
		return
	}
	w.files++
	if w.onFile(p) == Done {
		w.stopped = true
	}
}

func (w *walker) dir(p string) Action {
	if w.onDir == nil || !w.filter.Match(p) {
		return Continue
	}
	w.dirs++
	a := w.onDir(p)
	if a == Done {
		w.stopped = true
	}
	return a
}
