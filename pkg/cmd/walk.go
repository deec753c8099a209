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
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/gke-labs/globwalk/pkg/fsys"
	"github.com/gke-labs/globwalk/pkg/ignore"
	"github.com/gke-labs/globwalk/pkg/pattern"
	"github.com/gke-labs/globwalk/pkg/walk"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// WalkOptions holds the configuration for the "walk" command.
type WalkOptions struct {
	*RootOptions

	Strategy   string
	BufferSize int
	NoFollow   bool
	Type       string
	Exclude    []string
	MaxResults int
	Output     string
	Color      string
	// Jobs bounds how many roots are walked at once.
	Jobs int
}

// BuildWalkCommand constructs the cobra command for "walk".
func BuildWalkCommand(rootOpt *RootOptions) *cobra.Command {
	opt := WalkOptions{
		RootOptions: rootOpt,
		Jobs:        4,
	}

	cmd := &cobra.Command{
		Use:   "walk [root...]",
		Short: "Walk directories or glob patterns and print what they match",
		Long: `Walk every root and print the files and directories below it.

A root is a file, a directory or a glob pattern such as "src/**/*.go". For a
pattern, the walk starts at its literal prefix and prints the entries that
match the whole pattern. Without roots the working directory is walked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunWalk(cmd.Context(), opt, args)
		},
	}

	cmd.Flags().StringVar(&opt.Strategy, "strategy", opt.Strategy, "Directory read strategy: streaming or bulk (default from config, else streaming)")
	cmd.Flags().IntVar(&opt.BufferSize, "buffer-size", opt.BufferSize, "Entries fetched per streaming read (default from config, else 32)")
	cmd.Flags().BoolVar(&opt.NoFollow, "no-follow", opt.NoFollow, "Do not follow symbolic links")
	cmd.Flags().StringVar(&opt.Type, "type", opt.Type, "Only print files (f) or directories (d)")
	cmd.Flags().StringSliceVar(&opt.Exclude, "exclude", opt.Exclude, "Gitignore-style patterns to leave out, relative to the walk start")
	cmd.Flags().IntVar(&opt.MaxResults, "max-results", opt.MaxResults, "Stop each root after this many printed entries (0 means no limit)")
	cmd.Flags().StringVarP(&opt.Output, "output", "o", opt.Output, "Output format: text or yaml (default from config, else text)")
	cmd.Flags().StringVar(&opt.Color, "color", opt.Color, "Color directories: auto, always or never (default from config, else auto)")
	cmd.Flags().IntVarP(&opt.Jobs, "jobs", "j", opt.Jobs, "Number of roots walked concurrently")

	return cmd
}

// RunWalk executes the business logic for the "walk" command.
func RunWalk(ctx context.Context, opt WalkOptions, roots []string) error {
	if len(roots) == 0 {
		roots = []string{"."}
	}

	wopts, err := walkOptions(opt)
	if err != nil {
		return err
	}
	showFiles, showDirs, err := parseType(opt.Type)
	if err != nil {
		return err
	}
	excludes, err := ignore.NewIgnoreList(append(append([]string{}, opt.Config.Exclude...), opt.Exclude...))
	if err != nil {
		return err
	}
	pr, err := newPrinter(opt.Out, firstNonEmpty(opt.Output, opt.Config.OutputFormat()), firstNonEmpty(opt.Color, opt.Config.ColorMode()))
	if err != nil {
		return err
	}

	results := make([]*Result, len(roots))
	g, ctx := errgroup.WithContext(ctx)
	if opt.Jobs > 0 {
		g.SetLimit(opt.Jobs)
	}
	for i, root := range roots {
		r := &Result{Root: root}
		results[i] = r

		g.Go(func() error {
			anchor, err := walkAnchor(root, wopts.BaseDir)
			if err != nil {
				return err
			}

			reported := 0
			report := func(p, kind string, show bool) walk.Action {
				if !show {
					return walk.Continue
				}
				r.add(p, kind)
				reported++
				if opt.MaxResults > 0 && reported >= opt.MaxResults {
					return walk.Done
				}
				return walk.Continue
			}
			// Glob roots only report matching directories, so files are
			// checked against excluded parent directories as well.
			onFile := func(p string) walk.Action {
				if excludes.ShouldIgnoreTree(relativeTo(anchor, p), false) {
					return walk.Continue
				}
				return report(p, kindFile, showFiles)
			}
			onDir := func(p string) walk.Action {
				if excludes.ShouldIgnoreTree(relativeTo(anchor, p), true) {
					klog.V(4).Infof("excluding %q", p)
					return walk.Skip
				}
				return report(p, kindDir, showDirs)
			}

			if err := walk.WalkContext(ctx, root, onFile, onDir, wopts); err != nil {
				return fmt.Errorf("walking %q: %w", root, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := pr.print(results); err != nil {
		return err
	}
	summarize(opt.ErrOut, results)
	return nil
}

// walkOptions merges flags over the config file.
func walkOptions(opt WalkOptions) (*walk.Options, error) {
	cfg := opt.Config

	strategy, err := cfg.Strategy()
	if err != nil {
		return nil, err
	}
	if opt.Strategy != "" {
		strategy, err = fsys.ParseStrategy(opt.Strategy)
		if err != nil {
			return nil, err
		}
	}

	bufferSize := cfg.BufferSize()
	if opt.BufferSize > 0 {
		bufferSize = opt.BufferSize
	}

	follow := cfg.IsFollowSymlinksEnabled() && !opt.NoFollow

	return &walk.Options{
		Strategy:       strategy,
		BufferSize:     bufferSize,
		FollowSymlinks: walk.Ptr(follow),
		FS:             opt.FS,
		BaseDir:        opt.BaseDir,
	}, nil
}

func parseType(t string) (files, dirs bool, err error) {
	switch t {
	case "":
		return true, true, nil
	case "f", "file":
		return true, false, nil
	case "d", "dir":
		return false, true, nil
	default:
		return false, false, fmt.Errorf("unknown type %q (want f or d)", t)
	}
}

// walkAnchor returns the directory a walk of root starts from, which is what
// exclude patterns are relative to.
func walkAnchor(root, base string) (string, error) {
	if root == "" {
		root = "."
	}
	abs, err := pattern.Resolve(root, base)
	if err != nil {
		return "", err
	}
	p, _ := pattern.SplitNegation(abs)
	return pattern.Parent(p), nil
}

// relativeTo returns p relative to anchor. A root that is a file is its own
// anchor and is matched by its base name.
func relativeTo(anchor, p string) string {
	if p == anchor {
		return path.Base(p)
	}
	rel, ok := strings.CutPrefix(p, strings.TrimSuffix(anchor, "/")+"/")
	if !ok {
		return p
	}
	return rel
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
