// SPDX-License-Identifier: MPL-2.0

// Package project reads the optional per-project jarpack.toml file, which
// carries build settings that would otherwise be repeated on every
// invocation. Command-line flags always win over project-file values.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the project file looked up in the working directory.
const FileName = "jarpack.toml"

// Project holds the settings loaded from jarpack.toml.
type Project struct {
	Build BuildSettings `toml:"build"`
}

// BuildSettings configures a jar build.
type BuildSettings struct {
	// Output is the jar path, relative to the project root.
	Output string `toml:"output"`
	// MainNamespace is the namespace whose -main the jar should launch.
	MainNamespace string `toml:"main_namespace"`
	// Thin skips library archives on the classpath.
	Thin bool `toml:"thin"`
	// AOT compiles the main namespace before assembling.
	AOT bool `toml:"aot"`
	// CompilePath is where AOT class files go (default "classes").
	CompilePath string `toml:"compile_path"`
	// Pom is the path to the Maven descriptor to embed.
	Pom string `toml:"pom"`
	// Excludes are extra regular expressions for paths to keep out of the jar.
	Excludes []string `toml:"excludes"`
}

// Load reads jarpack.toml from dir. A missing file is not an error; the
// zero-value Project is returned so flag defaults apply.
func Load(dir string) (*Project, error) {
	path := filepath.Join(dir, FileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Project{}, nil
		}
		return nil, fmt.Errorf("reading project file: %w", err)
	}

	var p Project
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", FileName, err)
	}

	return &p, nil
}

func (p *Project) validate() error {
	if p.Build.Thin && p.Build.MainNamespace != "" {
		return fmt.Errorf("thin builds cannot set main_namespace: a thin jar has no bundled runtime to launch")
	}
	if p.Build.AOT && p.Build.MainNamespace == "" {
		return fmt.Errorf("aot requires main_namespace")
	}
	for _, pattern := range p.Build.Excludes {
		if strings.TrimSpace(pattern) == "" {
			return fmt.Errorf("excludes entries must be non-empty")
		}
	}
	return nil
}
