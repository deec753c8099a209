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

package fsys

import (
	"errors"
	"io/fs"
	"path"
	"strings"
)

// maxLinks bounds the number of links EvalSymlinks follows, like the
// kernel's ELOOP limit.
const maxLinks = 255

var errTooManyLinks = errors.New("too many levels of symbolic links")

// EvalSymlinks returns name with every symbolic link resolved, using only
// the Lstat and Readlink capabilities of fsys. name must be absolute and use
// forward slashes; the result does too.
func EvalSymlinks(fsys FS, name string) (string, error) {
	vol, rest := splitVolume(name)
	if !strings.HasPrefix(rest, "/") {
		return "", &fs.PathError{Op: "evalsymlinks", Path: name, Err: fs.ErrInvalid}
	}

	resolved := "/"
	pending := strings.Split(rest, "/")
	links := 0
	for len(pending) > 0 {
		c := pending[0]
		pending = pending[1:]
		switch c {
		case "", ".":
			continue
		case "..":
			resolved = path.Dir(resolved)
			continue
		}

		next := path.Join(resolved, c)
		info, err := fsys.Lstat(vol + next)
		if err != nil {
			return "", err
		}
		if KindOf(info.Mode()) != KindSymlink {
			resolved = next
			continue
		}

		links++
		if links > maxLinks {
			return "", &fs.PathError{Op: "evalsymlinks", Path: name, Err: errTooManyLinks}
		}
		target, err := fsys.Readlink(vol + next)
		if err != nil {
			return "", err
		}
		tvol, trest := splitVolume(strings.ReplaceAll(target, `\`, "/"))
		if tvol != "" {
			vol = tvol
			resolved = "/"
		} else if strings.HasPrefix(trest, "/") {
			resolved = "/"
		}
		pending = append(strings.Split(trest, "/"), pending...)
	}
	return vol + resolved, nil
}

// splitVolume separates a leading drive ("c:") from the rest of p.
func splitVolume(p string) (string, string) {
	if len(p) >= 2 && p[1] == ':' && ((p[0] >= 'a' && p[0] <= 'z') || (p[0] >= 'A' && p[0] <= 'Z')) {
		return p[:2], p[2:]
	}
	return "", p
}
