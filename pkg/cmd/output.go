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

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

const (
	kindFile = "file"
	kindDir  = "dir"
)

// Entry is one reported path.
type Entry struct {
	Path string `yaml:"path"`
	Kind string `yaml:"kind"`
}

// Result holds the entries reported for one root, in report order.
type Result struct {
	Root    string  `yaml:"root"`
	Entries []Entry `yaml:"entries"`
}

func (r *Result) add(p, kind string) {
	r.Entries = append(r.Entries, Entry{Path: p, Kind: kind})
}

func (r *Result) count(kind string) int {
	n := 0
	for _, e := range r.Entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

type printer struct {
	out      io.Writer
	format   string
	dirColor *color.Color
}

func newPrinter(out io.Writer, format, colorMode string) (*printer, error) {
	switch format {
	case "text", "yaml":
	default:
		return nil, fmt.Errorf("unknown output format %q (want text or yaml)", format)
	}

	enabled, err := useColor(out, colorMode)
	if err != nil {
		return nil, err
	}
	dirColor := color.New(color.FgBlue, color.Bold)
	if enabled {
		dirColor.EnableColor()
	} else {
		dirColor.DisableColor()
	}

	return &printer{out: out, format: format, dirColor: dirColor}, nil
}

// useColor decides whether out gets colored output. In auto mode color is
// used for terminals unless NO_COLOR is set.
func useColor(out io.Writer, mode string) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		if color.NoColor {
			return false, nil
		}
		f, ok := out.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	default:
		return false, fmt.Errorf("unknown color mode %q (want auto, always or never)", mode)
	}
}

// print writes results in order. Text output is one path per line, with
// directories marked by a trailing "/".
func (p *printer) print(results []*Result) error {
	if p.format == "yaml" {
		enc := yaml.NewEncoder(p.out)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("encoding results: %w", err)
		}
		return enc.Close()
	}

	for _, r := range results {
		for _, e := range r.Entries {
			var err error
			if e.Kind == kindDir {
				_, err = fmt.Fprintln(p.out, p.dirColor.Sprint(dirPath(e.Path)))
			} else {
				_, err = fmt.Fprintln(p.out, e.Path)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func dirPath(p string) string {
	if len(p) > 0 && p[len(p)-1] == '/' {
		return p
	}
	return p + "/"
}

// summarize writes the file and directory totals of results to w.
func summarize(w io.Writer, results []*Result) {
	var files, dirs int
	for _, r := range results {
		files += r.count(kindFile)
		dirs += r.count(kindDir)
	}
	fmt.Fprintf(w, "%s files, %s directories\n", humanize.Comma(int64(files)), humanize.Comma(int64(dirs)))
}
