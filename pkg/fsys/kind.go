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

// Package fsys is the filesystem collaborator of the traversal engine: the
// minimal capability set a filesystem has to provide, the real OS
// implementation, an adapter for afero filesystems and the directory entry
// reader that picks between streaming and bulk listing.
package fsys

import (
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"strings"
)

// ErrUnsupported is returned when a filesystem lacks an optional capability.
var ErrUnsupported = errors.ErrUnsupported

// Kind classifies a directory entry.
type Kind int

const (
	KindUnknown Kind = iota
	KindFile
	KindDir
	KindSymlink
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	case KindSymlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// KindOf classifies a file mode. Windows junctions are reported by the os
// package as irregular files; they behave like directory links and are
// classified as KindSymlink.
func KindOf(mode fs.FileMode) Kind {
	switch {
	case mode&fs.ModeSymlink != 0:
		return KindSymlink
	case mode&fs.ModeIrregular != 0 && runtime.GOOS == "windows":
		return KindSymlink
	case mode.IsDir():
		return KindDir
	case mode.IsRegular():
		return KindFile
	}
	return KindUnknown
}

// Strategy selects how directories are listed.
type Strategy int

const (
	// Streaming reads a directory through an open handle, a bounded number
	// of entries at a time.
	Streaming Strategy = iota
	// Bulk reads a whole directory in one call.
	Bulk
)

func (s Strategy) String() string {
	switch s {
	case Streaming:
		return "streaming"
	case Bulk:
		return "bulk"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy parses "streaming" or "bulk". The empty string means Streaming.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "streaming", "stream":
		return Streaming, nil
	case "bulk":
		return Bulk, nil
	}
	return Streaming, fmt.Errorf("unknown directory read strategy %q (want streaming or bulk)", s)
}
