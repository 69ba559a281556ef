// SPDX-License-Identifier: MPL-2.0

package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProjectFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadMissingFileGivesZeroValue(t *testing.T) {
	p, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if p.Build.Output != "" || p.Build.Thin {
		t.Errorf("missing file should give zero value, got %+v", p)
	}
}

func TestLoadParsesBuildSettings(t *testing.T) {
	dir := writeProjectFile(t, `
[build]
output = "target/app.jar"
main_namespace = "my-app.core"
aot = true
compile_path = "classes"
pom = "pom.xml"
excludes = ["^dev/", "\\.dev\\.edn$"]
`)

	p, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if p.Build.Output != "target/app.jar" {
		t.Errorf("output = %q", p.Build.Output)
	}
	if p.Build.MainNamespace != "my-app.core" {
		t.Errorf("main_namespace = %q", p.Build.MainNamespace)
	}
	if !p.Build.AOT {
		t.Error("aot not parsed")
	}
	if p.Build.CompilePath != "classes" {
		t.Errorf("compile_path = %q", p.Build.CompilePath)
	}
	if len(p.Build.Excludes) != 2 || p.Build.Excludes[0] != "^dev/" {
		t.Errorf("excludes = %v", p.Build.Excludes)
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	dir := writeProjectFile(t, `[build`)
	if _, err := Load(dir); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadRejectsThinWithMainNamespace(t *testing.T) {
	dir := writeProjectFile(t, `
[build]
thin = true
main_namespace = "my-app.core"
`)
	if _, err := Load(dir); err == nil {
		t.Error("thin + main_namespace should be rejected")
	}
}

func TestLoadRejectsAOTWithoutMainNamespace(t *testing.T) {
	dir := writeProjectFile(t, `
[build]
aot = true
`)
	if _, err := Load(dir); err == nil {
		t.Error("aot without main_namespace should be rejected")
	}
}

func TestLoadRejectsBlankExclude(t *testing.T) {
	dir := writeProjectFile(t, `
[build]
excludes = ["  "]
`)
	if _, err := Load(dir); err == nil {
		t.Error("blank exclude pattern should be rejected")
	}
}
