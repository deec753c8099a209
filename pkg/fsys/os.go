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
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FS is the capability set every filesystem has to provide. Listing is
// provided by BulkReader and/or StreamReader.
type FS interface {
	// Stat follows symbolic links.
	Stat(name string) (fs.FileInfo, error)
	// Lstat does not follow symbolic links.
	Lstat(name string) (fs.FileInfo, error)
	Readlink(name string) (string, error)
}

// BulkReader lists a whole directory in one call.
type BulkReader interface {
	ReadDir(name string) ([]fs.DirEntry, error)
}

// StreamReader opens a directory for incremental reading. bufferSize is the
// number of entries fetched from the underlying handle at a time.
type StreamReader interface {
	OpenDir(name string, bufferSize int) (DirStream, error)
}

// DirStream yields directory entries one at a time. Next returns io.EOF once
// the directory is exhausted.
type DirStream interface {
	Next() (fs.DirEntry, error)
	Close() error
}

// OSFS is the real filesystem. Names use forward slashes; they are converted
// to the platform separator before reaching the os package.
type OSFS struct{}

// OS returns the real filesystem.
func OS() OSFS {
	return OSFS{}
}

var (
	_ FS           = OSFS{}
	_ BulkReader   = OSFS{}
	_ StreamReader = OSFS{}
)

func (OSFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(filepath.FromSlash(name))
}

func (OSFS) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(filepath.FromSlash(name))
}

func (OSFS) Readlink(name string) (string, error) {
	target, err := os.Readlink(filepath.FromSlash(name))
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(target), nil
}

func (OSFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(filepath.FromSlash(name))
}

func (OSFS) OpenDir(name string, bufferSize int) (DirStream, error) {
	f, err := os.Open(filepath.FromSlash(name))
	if err != nil {
		return nil, err
	}
	return &osDirStream{f: f, n: normalizeBufferSize(bufferSize)}, nil
}

type osDirStream struct {
	f   *os.File
	n   int
	buf []fs.DirEntry
	eof bool
}

func (s *osDirStream) Next() (fs.DirEntry, error) {
	for len(s.buf) == 0 {
		if s.eof {
			return nil, io.EOF
		}
		entries, err := s.f.ReadDir(s.n)
		s.buf = entries
		if err == io.EOF {
			s.eof = true
			continue
		}
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			s.eof = true
		}
	}
	e := s.buf[0]
	s.buf = s.buf[1:]
	return e, nil
}

func (s *osDirStream) Close() error {
	return s.f.Close()
}
