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

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gke-labs/globwalk/pkg/fsys"
	"sigs.k8s.io/yaml"
)

// FileName is the config file looked up in the working directory.
const FileName = ".globwalk.yaml"

type Config struct {
	Walk    *WalkConfig   `json:"walk"`
	Exclude []string      `json:"exclude"`
	Output  *OutputConfig `json:"output"`
}

type WalkConfig struct {
	Strategy       string `json:"strategy"`
	BufferSize     *int   `json:"bufferSize"`
	FollowSymlinks *bool  `json:"followSymlinks"`
}

type OutputConfig struct {
	Format string `json:"format"`
	Color  string `json:"color"`
}

// Load loads the configuration from .globwalk.yaml in dir. A missing file
// yields an empty configuration.
func Load(dir string) (*Config, error) {
	configFile := filepath.Join(dir, FileName)

	if _, err := os.Stat(configFile); err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("error checking %s: %w", configFile, err)
	}
	return LoadFile(configFile)
}

// LoadFile loads the configuration from configFile, which must exist.
func LoadFile(configFile string) (*Config, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", configFile, err)
	}

	var config Config
	if err := yaml.UnmarshalStrict(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", configFile, err)
	}
	if _, err := config.Strategy(); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", configFile, err)
	}
	return &config, nil
}

// Strategy returns the directory read strategy (defaulting to streaming).
func (c *Config) Strategy() (fsys.Strategy, error) {
	if c.Walk != nil {
		return fsys.ParseStrategy(c.Walk.Strategy)
	}
	return fsys.Streaming, nil
}

// BufferSize returns the streaming read-ahead size (defaulting to 32).
func (c *Config) BufferSize() int {
	if c.Walk != nil && c.Walk.BufferSize != nil && *c.Walk.BufferSize > 0 {
		return *c.Walk.BufferSize
	}
	return fsys.DefaultBufferSize
}

// IsFollowSymlinksEnabled returns true if symbolic links are followed (defaulting to true).
func (c *Config) IsFollowSymlinksEnabled() bool {
	if c.Walk != nil && c.Walk.FollowSymlinks != nil {
		return *c.Walk.FollowSymlinks
	}
	return true
}

// OutputFormat returns "text" or "yaml" (defaulting to text).
func (c *Config) OutputFormat() string {
	if c.Output != nil && c.Output.Format != "" {
		return c.Output.Format
	}
	return "text"
}

// ColorMode returns "auto", "always" or "never" (defaulting to auto).
func (c *Config) ColorMode() string {
	if c.Output != nil && c.Output.Color != "" {
		return c.Output.Color
	}
	return "auto"
}
