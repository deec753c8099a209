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
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gke-labs/globwalk/pkg/pattern"
)

// IsSubDirectory reports whether child lies strictly below parent. Both are
// made absolute against the working directory and cleaned first; no
// filesystem access takes place.
func IsSubDirectory(child, parent string) bool {
	rel, ok := relative(parent, child)
	if !ok {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, "../") && !pattern.IsAbsolute(rel)
}

// IsSameDirectory reports whether a and b name the same directory once made
// absolute and cleaned.
func IsSameDirectory(a, b string) bool {
	rel, ok := relative(a, b)
	return ok && rel == "."
}

func relative(base, target string) (string, bool) {
	b, err := absolute(base)
	if err != nil {
		return "", false
	}
	t, err := absolute(target)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(b, t)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func absolute(p string) (string, error) {
	p = filepath.FromSlash(p)
	if runtime.GOOS != "windows" {
		p = strings.ReplaceAll(p, `\`, "/")
	}
	return filepath.Abs(p)
}
