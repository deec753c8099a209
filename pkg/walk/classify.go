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
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/gke-labs/globwalk/pkg/fsys"
	"github.com/gke-labs/globwalk/pkg/pattern"
	"k8s.io/klog/v2"
)

// SeparateFilesDirsSync stats every path, following links, and reports
// directories to onDir and files to onFile, in input order and with the path
// exactly as given. Anything else is ignored. Done from either callback ends
// the batch. The first path that cannot be stat'ed aborts it with that error.
// A glob or relative BaseDir fails with ErrInvalidArgument before any stat.
func SeparateFilesDirsSync(paths []string, onFile, onDir Func, opts *Options) error {
	return separate(paths, onFile, onDir, opts, nil)
}

// SeparateFilesDirs runs SeparateFilesDirsSync on its own goroutine, yielding
// before every stat and stopping with ctx.Err() once ctx is done. The
// returned channel receives the result once.
func SeparateFilesDirs(ctx context.Context, paths []string, onFile, onDir Func, opts *Options) <-chan error {
	errc := make(chan error, 1)
	yield := func() error {
		runtime.Gosched()
		return ctx.Err()
	}
	go func() {
		defer close(errc)
		errc <- separate(paths, onFile, onDir, opts, yield)
	}()
	return errc
}

func separate(paths []string, onFile, onDir Func, opts *Options, yield func() error) error {
	o := opts.withDefaults()
	base, err := pattern.ResolveBase(o.BaseDir)
	if err != nil {
		return err
	}

	for _, p := range paths {
		if yield != nil {
			if err := yield(); err != nil {
				return err
			}
		}

		abs := filepath.FromSlash(p)
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(filepath.FromSlash(base), abs)
		}
		info, err := o.FS.Stat(filepath.ToSlash(abs))
		if err != nil {
			return fmt.Errorf("classifying %q: %w", p, err)
		}

		var cb Func
		switch fsys.KindOf(info.Mode()) {
		case fsys.KindDir:
			cb = onDir
		case fsys.KindFile:
			cb = onFile
		default:
			klog.V(4).Infof("ignoring %q: not a file or directory", p)
		}
		if cb != nil && cb(p) == Done {
			return nil
		}
	}
	return nil
}
