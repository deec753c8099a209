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

	"github.com/gke-labs/globwalk/pkg/pattern"
	"github.com/spf13/cobra"
)

// PatternOptions holds the configuration for the "pattern" commands.
type PatternOptions struct {
	*RootOptions

	// Base is the directory "pattern resolve" resolves against.
	Base string
}

// BuildPatternCommand constructs the cobra command group for "pattern".
func BuildPatternCommand(rootOpt *RootOptions) *cobra.Command {
	opt := PatternOptions{
		RootOptions: rootOpt,
	}

	cmd := &cobra.Command{
		Use:   "pattern",
		Short: "Inspect path and glob patterns",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "parent pattern...",
		Short: "Print the literal directory each pattern starts from",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunPatternEach(cmd.Context(), opt, args, pattern.Parent)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "part pattern...",
		Short: "Print the glob part of each pattern",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunPatternEach(cmd.Context(), opt, args, pattern.GlobPart)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "is-glob pattern...",
		Short: "Print whether each pattern contains glob syntax",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunPatternEach(cmd.Context(), opt, args, func(p string) string {
				return fmt.Sprint(pattern.IsGlob(p))
			})
		},
	})

	resolveCmd := &cobra.Command{
		Use:   "resolve pattern...",
		Short: "Print each pattern as an absolute pattern",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunPatternResolve(cmd.Context(), opt, args)
		},
	}
	resolveCmd.Flags().StringVar(&opt.Base, "base", opt.Base, "Absolute directory relative patterns are resolved against (default working directory)")
	cmd.AddCommand(resolveCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "match pattern path...",
		Short: "Print whether each path matches the pattern",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunPatternMatch(cmd.Context(), opt, args[0], args[1:])
		},
	})

	return cmd
}

// RunPatternEach prints fn(p) for every pattern, one per line.
func RunPatternEach(ctx context.Context, opt PatternOptions, patterns []string, fn func(string) string) error {
	for _, p := range patterns {
		if _, err := fmt.Fprintln(opt.Out, fn(p)); err != nil {
			return err
		}
	}
	return nil
}

// RunPatternResolve executes the business logic for "pattern resolve".
func RunPatternResolve(ctx context.Context, opt PatternOptions, patterns []string) error {
	base := firstNonEmpty(opt.Base, opt.BaseDir)
	for _, p := range patterns {
		abs, err := pattern.Resolve(p, base)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(opt.Out, abs); err != nil {
			return err
		}
	}
	return nil
}

// RunPatternMatch executes the business logic for "pattern match".
func RunPatternMatch(ctx context.Context, opt PatternOptions, p string, candidates []string) error {
	f, err := pattern.Compile(p)
	if err != nil {
		return err
	}
	for _, c := range candidates {
		if _, err := fmt.Fprintf(opt.Out, "%s\t%t\n", c, f.Match(c)); err != nil {
			return err
		}
	}
	return nil
}
