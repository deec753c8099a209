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

	"github.com/gke-labs/globwalk/pkg/walk"
	"github.com/spf13/cobra"
)

// ClassifyOptions holds the configuration for the "classify" command.
type ClassifyOptions struct {
	*RootOptions

	Output string
	Color  string
}

// BuildClassifyCommand constructs the cobra command for "classify".
func BuildClassifyCommand(rootOpt *RootOptions) *cobra.Command {
	opt := ClassifyOptions{
		RootOptions: rootOpt,
	}

	cmd := &cobra.Command{
		Use:   "classify path...",
		Short: "Sort paths into files and directories",
		Long: `Stat every path, following symbolic links, and print it as a file or a
directory. Paths are printed as given, in input order; anything that is
neither a file nor a directory is left out. A missing path is an error.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunClassify(cmd.Context(), opt, args)
		},
	}

	cmd.Flags().StringVarP(&opt.Output, "output", "o", opt.Output, "Output format: text or yaml (default from config, else text)")
	cmd.Flags().StringVar(&opt.Color, "color", opt.Color, "Color directories: auto, always or never (default from config, else auto)")

	return cmd
}

// RunClassify executes the business logic for the "classify" command.
func RunClassify(ctx context.Context, opt ClassifyOptions, paths []string) error {
	pr, err := newPrinter(opt.Out, firstNonEmpty(opt.Output, opt.Config.OutputFormat()), firstNonEmpty(opt.Color, opt.Config.ColorMode()))
	if err != nil {
		return err
	}

	r := &Result{}
	onFile := func(p string) walk.Action {
		r.add(p, kindFile)
		return walk.Continue
	}
	onDir := func(p string) walk.Action {
		r.add(p, kindDir)
		return walk.Continue
	}
	wopts := &walk.Options{FS: opt.FS, BaseDir: opt.BaseDir}
	if err := <-walk.SeparateFilesDirs(ctx, paths, onFile, onDir, wopts); err != nil {
		return err
	}

	results := []*Result{r}
	if err := pr.print(results); err != nil {
		return err
	}
	summarize(opt.ErrOut, results)
	return nil
}
