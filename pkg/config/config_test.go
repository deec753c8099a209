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
	"os"
	"path/filepath"
	"testing"

	"github.com/gke-labs/globwalk/pkg/fsys"
)

func TestLoad(t *testing.T) {
	tempDir := t.TempDir()

	yamlContent := `
walk:
  strategy: bulk
  bufferSize: 8
  followSymlinks: false
exclude:
  - vendor/
  - "**/testdata/"
output:
  format: yaml
`
	if err := os.WriteFile(filepath.Join(tempDir, FileName), []byte(yamlContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tempDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	strategy, err := cfg.Strategy()
	if err != nil {
		t.Fatalf("Strategy failed: %v", err)
	}
	if strategy != fsys.Bulk {
		t.Errorf("expected strategy to be bulk, got %v", strategy)
	}
	if cfg.BufferSize() != 8 {
		t.Errorf("expected buffer size to be 8, got %d", cfg.BufferSize())
	}
	if cfg.IsFollowSymlinksEnabled() != false {
		t.Errorf("expected follow symlinks to be false")
	}
	if len(cfg.Exclude) != 2 || cfg.Exclude[0] != "vendor/" {
		t.Errorf("expected exclude to be [vendor/ **/testdata/], got %v", cfg.Exclude)
	}
	if cfg.OutputFormat() != "yaml" {
		t.Errorf("expected output format to be yaml, got %q", cfg.OutputFormat())
	}
	if cfg.ColorMode() != "auto" {
		t.Errorf("expected color mode to default to auto, got %q", cfg.ColorMode())
	}
}

func TestLoadMissing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	strategy, err := cfg.Strategy()
	if err != nil {
		t.Fatalf("Strategy failed: %v", err)
	}
	if strategy != fsys.Streaming {
		t.Errorf("expected strategy to default to streaming, got %v", strategy)
	}
	if cfg.BufferSize() != fsys.DefaultBufferSize {
		t.Errorf("expected buffer size to default to %d, got %d", fsys.DefaultBufferSize, cfg.BufferSize())
	}
	if cfg.IsFollowSymlinksEnabled() != true {
		t.Errorf("expected follow symlinks to default to true")
	}
	if cfg.OutputFormat() != "text" {
		t.Errorf("expected output format to default to text, got %q", cfg.OutputFormat())
	}
}

func TestLoadFileErrors(t *testing.T) {
	tempDir := t.TempDir()

	if _, err := LoadFile(filepath.Join(tempDir, "missing.yaml")); err == nil {
		t.Errorf("expected an error for a missing file")
	}

	grid := []struct {
		name    string
		content string
	}{
		{"unknown field", "walk:\n  speed: fast\n"},
		{"bad strategy", "walk:\n  strategy: parallel\n"},
		{"bad yaml", "walk: [\n"},
	}
	for _, g := range grid {
		p := filepath.Join(tempDir, g.name+".yaml")
		if err := os.WriteFile(p, []byte(g.content), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFile(p); err == nil {
			t.Errorf("%s: expected an error", g.name)
		}
	}
}
