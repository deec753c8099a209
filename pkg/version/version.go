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

package version

import (
	"fmt"
	"io"
	"runtime/debug"
)

// Run prints the version information of the running binary to w.
func Run(w io.Writer) error {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return fmt.Errorf("failed to read build info")
	}
	Write(w, info)
	return nil
}

// Write prints the module, version and VCS revision recorded in info.
func Write(w io.Writer, info *debug.BuildInfo) {
	fmt.Fprintf(w, "Module: %s\n", info.Main.Path)
	if info.Main.Version != "" {
		fmt.Fprintf(w, "Version: %s\n", info.Main.Version)
	}
	fmt.Fprintf(w, "Go: %s\n", info.GoVersion)

	var revision string
	var modified bool

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}

	if revision != "" {
		fmt.Fprintf(w, "Git SHA: %s", revision)
		if modified {
			fmt.Fprintf(w, " (modified)")
		}
		fmt.Fprintln(w)
	} else {
		fmt.Fprintln(w, "Git SHA: unknown")
	}
}
