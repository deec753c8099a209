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

// Package pattern normalizes path-like strings and splits glob patterns into
// a literal anchor directory and a glob remainder.
//
// All functions accept both `/` and `\` as separators and return paths using
// `/`. A leading `!` marks a negated pattern; it is stripped before any path
// manipulation and restored where a function returns a full pattern.
package pattern

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

// ErrInvalidArgument is returned when a pattern or base directory cannot be used.
var ErrInvalidArgument = errors.New("invalid argument")

const (
	negation  = '!'
	slash     = '/'
	backslash = '\\'
	dot       = "."
)

var isWindows = runtime.GOOS == "windows"

func isDeviceRoot(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isSeparator(c byte) bool {
	return c == slash || c == backslash
}

// hasDrive reports whether p starts with a drive letter and a colon, e.g. "c:".
func hasDrive(p string) bool {
	return len(p) >= 2 && isDeviceRoot(p[0]) && p[1] == ':'
}

// isLoneDrive reports whether p is exactly a drive letter and a colon.
func isLoneDrive(p string) bool {
	return len(p) == 2 && hasDrive(p)
}

// SplitNegation strips a single leading "!" and reports whether it was present.
func SplitNegation(p string) (string, bool) {
	if len(p) > 0 && p[0] == negation {
		return p[1:], true
	}
	return p, false
}

// Unixlike converts p to forward slashes and normalizes it the way a POSIX
// path normalizer does: duplicate separators, "." and ".." segments are
// resolved lexically and a trailing separator is preserved. The empty string
// becomes ".". A leading "!" is kept outside the transformation.
func Unixlike(p string) string {
	p, negative := SplitNegation(p)
	p = normalize(strings.ReplaceAll(p, string(backslash), string(slash)))
	if negative {
		p = string(negation) + p
	}
	return p
}

// normalize cleans a slash separated path, keeping a trailing slash.
func normalize(p string) string {
	if p == "" {
		return dot
	}
	trailing := p[len(p)-1] == slash
	cleaned := path.Clean(p)
	if trailing && cleaned != "/" {
		cleaned += "/"
	}
	return cleaned
}

var (
	commonGlobRE     = regexp.MustCompile(`[*]|^!`)
	characterClassRE = regexp.MustCompile(`\[.*\]`)
	regexGroupRE     = regexp.MustCompile(`(?:^|[^!*+?@])\(.*\|.*\)`)
	extGlobRE        = regexp.MustCompile(`[!*+?@]\(.*\)`)
	braceExpansionRE = regexp.MustCompile(`\{.*(?:,|\.\.).*\}`)
)

// IsGlob reports whether p contains glob syntax: a star, a leading "!", a
// character class, a regex group such as "(a|b)", an extglob group such as
// "@(a)", or a brace expansion such as "{a,b}" or "{1..3}".
//
// A lone "?" is not considered glob syntax.
func IsGlob(p string) bool {
	if p == "" {
		return false
	}
	return commonGlobRE.MatchString(p) ||
		characterClassRE.MatchString(p) ||
		regexGroupRE.MatchString(p) ||
		extGlobRE.MatchString(p) ||
		braceExpansionRE.MatchString(p)
}

// IsAbsolute reports whether p is absolute. A drive root such as "c:/" is
// absolute on every platform; a leading separator is absolute only on
// non-Windows platforms.
func IsAbsolute(p string) bool {
	p, _ = SplitNegation(p)
	if len(p) > 2 && hasDrive(p) && isSeparator(p[2]) {
		return true
	}
	return len(p) > 0 && p[0] == slash && !isWindows
}

// IsWin32Pattern reports whether p should be handled with Windows path rules:
// either it starts with a drive root or the current platform is Windows.
func IsWin32Pattern(p string) bool {
	p, _ = SplitNegation(p)
	if len(p) > 2 && hasDrive(p) && isSeparator(p[2]) {
		return true
	}
	return isWindows
}

// dirname returns the parent of a slash separated path. A leading drive
// ("c:") is kept, so the parent of "c:/a" is "c:/".
func dirname(p string) string {
	var drive string
	if hasDrive(p) {
		drive, p = p[:2], p[2:]
		if p == "" {
			return drive
		}
	}
	end := len(p)
	for end > 1 && p[end-1] == slash {
		end--
	}
	i := strings.LastIndexByte(p[:end], slash)
	switch {
	case i < 0:
		if drive != "" {
			return drive
		}
		return dot
	case i == 0:
		return drive + "/"
	}
	for i > 1 && p[i-1] == slash {
		i--
	}
	return drive + p[:i]
}

// Parent returns the literal directory that prefixes p: for a glob pattern
// the parent directory is taken repeatedly until no glob syntax is left. The
// result has no trailing separator, except for a lone drive root which keeps
// exactly one ("c:/"). The empty pattern yields ".".
func Parent(p string) string {
	p, _ = SplitNegation(p)
	if p == "" {
		return dot
	}

	p = Unixlike(p)
	if IsGlob(p) {
		for {
			parent := dirname(p)
			if parent == p {
				break
			}
			p = parent
			if !IsGlob(p) {
				break
			}
		}
	}

	if len(p) > 1 && isSeparator(p[len(p)-1]) {
		p = p[:len(p)-1]
	}
	if isLoneDrive(p) {
		p += "/"
	}
	return p
}

// GlobPart returns the glob portion of p that follows Parent(p), without
// leading or trailing separators. It is empty when p is not a glob pattern.
func GlobPart(p string) string {
	p, _ = SplitNegation(p)
	if p == "" || p == dot || !IsGlob(p) {
		return ""
	}
	p = Unixlike(p)
	_, glob := split(p)
	return glob
}

// split divides a normalized glob pattern into its directory and glob parts.
// A directory of "." means the pattern is a pure glob and is returned empty.
func split(p string) (string, string) {
	dir := Parent(p)
	if dir == dot {
		dir = ""
	}
	glob := strings.TrimPrefix(p, strings.TrimSuffix(dir, "/"))
	if glob != "" && isSeparator(glob[0]) {
		glob = glob[1:]
	}
	if len(glob) > 1 && isSeparator(glob[len(glob)-1]) {
		glob = glob[:len(glob)-1]
	}
	return dir, glob
}

// RemoveLeadingDot strips a leading "./" (or ".\") from p.
func RemoveLeadingDot(p string) string {
	if len(p) >= 2 && p[0] == '.' && isSeparator(p[1]) {
		return p[2:]
	}
	return p
}

// Resolve returns p as an absolute pattern. Absolute patterns are only
// normalized. Relative patterns are joined under base, which must be an
// absolute non-glob directory; an empty base means the working directory.
// Any glob part is kept verbatim after the join and a leading "!" is restored.
func Resolve(p, base string) (string, error) {
	p, negative := SplitNegation(p)
	p = Unixlike(p)

	var glob string
	if IsGlob(p) {
		p, glob = split(p)
	}

	if !IsAbsolute(p) {
		dir, err := ResolveBase(base)
		if err != nil {
			return "", err
		}
		p = dir + "/" + p
	}
	if glob != "" {
		p = p + "/" + glob
	}
	p = Unixlike(p)

	if isLoneDrive(p) {
		p += "/"
	}
	if negative {
		p = string(negation) + p
	}
	return p, nil
}

// ResolveBase validates base as a directory to resolve relative paths against.
// The empty string means the working directory. A glob or relative base fails
// with ErrInvalidArgument. The result uses forward slashes.
func ResolveBase(base string) (string, error) {
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting working directory: %w", err)
		}
		base = filepath.ToSlash(wd)
	}
	base = Unixlike(base)
	if IsGlob(base) {
		return "", fmt.Errorf("%w: base directory %q must be non glob", ErrInvalidArgument, base)
	}
	if !IsAbsolute(base) {
		return "", fmt.Errorf("%w: base directory %q must be absolute", ErrInvalidArgument, base)
	}
	return base, nil
}
