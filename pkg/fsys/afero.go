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

	"github.com/spf13/afero"
)

// AferoFS adapts an afero.Fs. Lstat and Readlink use the optional
// afero.Lstater and afero.LinkReader interfaces when the backend has them;
// otherwise Lstat falls back to Stat and Readlink fails with ErrUnsupported.
type AferoFS struct {
	fs afero.Fs
}

// FromAfero wraps base.
func FromAfero(base afero.Fs) *AferoFS {
	return &AferoFS{fs: base}
}

var (
	_ FS           = (*AferoFS)(nil)
	_ BulkReader   = (*AferoFS)(nil)
	_ StreamReader = (*AferoFS)(nil)
)

func (a *AferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

func (a *AferoFS) Lstat(name string) (fs.FileInfo, error) {
	if l, ok := a.fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(name)
		return info, err
	}
	return a.fs.Stat(name)
}

func (a *AferoFS) Readlink(name string) (string, error) {
	if r, ok := a.fs.(afero.LinkReader); ok {
		return r.ReadlinkIfPossible(name)
	}
	return "", &fs.PathError{Op: "readlink", Path: name, Err: ErrUnsupported}
}

func (a *AferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := afero.ReadDir(a.fs, name)
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, fs.FileInfoToDirEntry(info))
	}
	return entries, nil
}

func (a *AferoFS) OpenDir(name string, bufferSize int) (DirStream, error) {
	f, err := a.fs.Open(name)
	if err != nil {
		return nil, err
	}
	return &aferoDirStream{f: f, n: normalizeBufferSize(bufferSize)}, nil
}

type aferoDirStream struct {
	f   afero.File
	n   int
	buf []fs.FileInfo
	eof bool
}

func (s *aferoDirStream) Next() (fs.DirEntry, error) {
	for len(s.buf) == 0 {
		if s.eof {
			return nil, io.EOF
		}
		infos, err := s.f.Readdir(s.n)
		s.buf = infos
		if err == io.EOF {
			s.eof = true
			continue
		}
		if err != nil {
			return nil, err
		}
		if len(infos) == 0 {
			s.eof = true
		}
	}
	info := s.buf[0]
	s.buf = s.buf[1:]
	return fs.FileInfoToDirEntry(info), nil
}

func (s *aferoDirStream) Close() error {
	return s.f.Close()
}
