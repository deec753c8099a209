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
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gke-labs/globwalk/pkg/config"
	"github.com/gke-labs/globwalk/pkg/fsys"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

// RootOptions holds the configuration for the root command.
type RootOptions struct {
	// ConfigPath is an explicit config file; empty means .globwalk.yaml in
	// the base directory, if present.
	ConfigPath string
	Config     *config.Config

	// BaseDir is the directory relative paths are resolved against. Empty
	// means the working directory.
	BaseDir string
	// FS overrides the OS filesystem.
	FS fsys.FS

	Out    io.Writer
	ErrOut io.Writer
}

// BuildRootCommand constructs the root cobra command.
func BuildRootCommand() *cobra.Command {
	return buildRootCommand(&RootOptions{})
}

func buildRootCommand(opt *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "globwalk",
		Short:         "globwalk walks directory trees and matches glob patterns",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opt.Out = cmd.OutOrStdout()
			opt.ErrOut = cmd.ErrOrStderr()
			return loadConfig(opt)
		},
	}

	fs := cmd.PersistentFlags()
	fs.StringVar(&opt.ConfigPath, "config", opt.ConfigPath, "Path to the config file (default ./"+config.FileName+")")
	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	fs.AddGoFlagSet(klogFlags)

	cmd.AddCommand(BuildWalkCommand(opt))
	cmd.AddCommand(BuildClassifyCommand(opt))
	cmd.AddCommand(BuildPatternCommand(opt))
	cmd.AddCommand(BuildVersionCommand(opt))

	return cmd
}

func loadConfig(opt *RootOptions) error {
	if opt.ConfigPath != "" {
		cfg, err := config.LoadFile(opt.ConfigPath)
		if err != nil {
			return err
		}
		opt.Config = cfg
		return nil
	}

	dir := opt.BaseDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		dir = wd
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	opt.Config = cfg
	return nil
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	rootCmd := BuildRootCommand()
	return rootCmd.ExecuteContext(ctx)
}
