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
	"fmt"
	"io"

	"github.com/gke-labs/globwalk/pkg/pattern"
	"k8s.io/klog/v2"
)

// DefaultBufferSize is the number of entries a streaming read fetches at a time.
const DefaultBufferSize = 32

func normalizeBufferSize(n int) int {
	if n <= 0 {
		return DefaultBufferSize
	}
	return n
}

// Entry is one directory entry.
type Entry struct {
	Name string
	Kind Kind
}

// Reader lists directories with a strategy fixed at construction.
type Reader struct {
	strategy   Strategy
	bufferSize int
	bulk       BulkReader
	stream     StreamReader
}

// NewReader returns a Reader for fsys. If fsys does not implement the
// requested strategy the other one is used instead. A filesystem that can
// not list directories at all is rejected with pattern.ErrInvalidArgument.
func NewReader(fsys FS, strategy Strategy, bufferSize int) (*Reader, error) {
	bulk, _ := fsys.(BulkReader)
	stream, _ := fsys.(StreamReader)

	switch {
	case bulk == nil && stream == nil:
		return nil, fmt.Errorf("%w: filesystem %T cannot list directories", pattern.ErrInvalidArgument, fsys)
	case strategy == Streaming && stream == nil:
		klog.V(2).Infof("filesystem %T cannot stream directories, using bulk reads", fsys)
		strategy = Bulk
	case strategy == Bulk && bulk == nil:
		klog.V(2).Infof("filesystem %T cannot bulk read directories, using streaming reads", fsys)
		strategy = Streaming
	case strategy != Streaming && strategy != Bulk:
		return nil, fmt.Errorf("%w: unknown strategy %v", pattern.ErrInvalidArgument, strategy)
	}

	return &Reader{
		strategy:   strategy,
		bufferSize: normalizeBufferSize(bufferSize),
		bulk:       bulk,
		stream:     stream,
	}, nil
}

// Strategy reports the strategy in use.
func (r *Reader) Strategy() Strategy {
	return r.strategy
}

// Each calls fn for every entry of dir in listing order. It stops early when
// fn returns false or an error. A streaming handle is closed on every path
// out of Each.
func (r *Reader) Each(dir string, fn func(Entry) (bool, error)) error {
	if r.strategy == Bulk {
		entries, err := r.bulk.ReadDir(dir)
		if err != nil {
			return err
		}
		for _, d := range entries {
			more, err := fn(Entry{Name: d.Name(), Kind: KindOf(d.Type())})
			if err != nil || !more {
				return err
			}
		}
		return nil
	}

	s, err := r.stream.OpenDir(dir, r.bufferSize)
	if err != nil {
		return err
	}
	defer s.Close()

	for {
		d, err := s.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		more, err := fn(Entry{Name: d.Name(), Kind: KindOf(d.Type())})
		if err != nil || !more {
			return err
		}
	}
}
