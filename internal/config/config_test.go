// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)
	return dir
}

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	setupConfigDir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputDir != "target" {
		t.Errorf("output_dir = %q", cfg.OutputDir)
	}
	if cfg.Mode != BuildModeFull {
		t.Errorf("mode = %q", cfg.Mode)
	}
	if cfg.SuppressClashWarnings {
		t.Error("suppress_clash_warnings should default to false")
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("ui.color_scheme = %q", cfg.UI.ColorScheme)
	}
}

func TestLoadReadsCUEFile(t *testing.T) {
	dir := setupConfigDir(t)
	writeConfigFile(t, dir, `
output_dir: "dist"
mode: "thin"
suppress_clash_warnings: true

ui: {
	verbose: true
}
`)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputDir != "dist" {
		t.Errorf("output_dir = %q", cfg.OutputDir)
	}
	if cfg.Mode != BuildModeThin {
		t.Errorf("mode = %q", cfg.Mode)
	}
	if !cfg.SuppressClashWarnings {
		t.Error("suppress_clash_warnings not applied")
	}
	if !cfg.UI.Verbose {
		t.Error("ui.verbose not applied")
	}
	// Unset fields keep defaults.
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("ui.color_scheme = %q, want default", cfg.UI.ColorScheme)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	setupConfigDir(t)
	t.Setenv("JARPACK_MODE", "thin")
	t.Setenv("JARPACK_OUTPUT_DIR", "dist")
	t.Setenv("JARPACK_SUPPRESS_CLASH_WARNINGS", "true")
	t.Setenv("JARPACK_UI_VERBOSE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != BuildModeThin {
		t.Errorf("mode = %q, want env override", cfg.Mode)
	}
	if cfg.OutputDir != "dist" {
		t.Errorf("output_dir = %q, want env override", cfg.OutputDir)
	}
	if !cfg.SuppressClashWarnings {
		t.Error("suppress_clash_warnings env override not applied")
	}
	if !cfg.UI.Verbose {
		t.Error("ui.verbose env override not applied")
	}
}

func TestLoadEnvWinsOverFile(t *testing.T) {
	dir := setupConfigDir(t)
	writeConfigFile(t, dir, `mode: "full"`)
	t.Setenv("JARPACK_MODE", "thin")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != BuildModeThin {
		t.Errorf("mode = %q, env should win over the config file", cfg.Mode)
	}
}

func TestLoadRejectsInvalidSchema(t *testing.T) {
	dir := setupConfigDir(t)
	writeConfigFile(t, dir, `mode: "fat"`)

	if _, err := Load(); err == nil {
		t.Error("expected schema validation failure for unknown mode")
	}
}

func TestLoadRejectsBadSyntax(t *testing.T) {
	dir := setupConfigDir(t)
	writeConfigFile(t, dir, `output_dir: {{{`)

	if _, err := Load(); err == nil {
		t.Error("expected parse failure for malformed CUE")
	}
}

func TestLoadConfigFileOverride(t *testing.T) {
	setupConfigDir(t)
	custom := filepath.Join(t.TempDir(), "custom.cue")
	if err := os.WriteFile(custom, []byte(`output_dir: "elsewhere"`), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigFilePathOverride(custom)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputDir != "elsewhere" {
		t.Errorf("output_dir = %q, want override file to win", cfg.OutputDir)
	}
}

func TestLoadMissingOverrideFails(t *testing.T) {
	setupConfigDir(t)
	SetConfigFilePathOverride(filepath.Join(t.TempDir(), "absent.cue"))

	if _, err := Load(); err == nil {
		t.Error("expected error for missing --config file")
	}
}

func TestCreateDefaultConfigRoundTrips(t *testing.T) {
	dir := setupConfigDir(t)

	if err := CreateDefaultConfig(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.cue")); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("round-tripped config = %+v, want defaults", cfg)
	}
}

func TestSaveWritesCurrentValues(t *testing.T) {
	setupConfigDir(t)

	cfg := DefaultConfig()
	cfg.OutputDir = "build"
	cfg.Mode = BuildModeThin
	if err := Save(cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.OutputDir != "build" || loaded.Mode != BuildModeThin {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestGenerateCUEContainsAllFields(t *testing.T) {
	out := GenerateCUE(DefaultConfig())
	for _, field := range []string{"output_dir", "mode", "suppress_clash_warnings", "color_scheme", "verbose"} {
		if !strings.Contains(out, field) {
			t.Errorf("generated CUE missing %s:\n%s", field, out)
		}
	}
}

func TestBuildModeIsValid(t *testing.T) {
	for _, m := range []BuildMode{BuildModeFull, BuildModeThin} {
		if valid, _ := m.IsValid(); !valid {
			t.Errorf("%q should be valid", m)
		}
	}
	valid, errs := BuildMode("fat").IsValid()
	if valid {
		t.Fatal("'fat' should be invalid")
	}
	if !errors.Is(errs[0], ErrInvalidBuildMode) {
		t.Error("error should wrap ErrInvalidBuildMode")
	}
}

func TestConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if valid, _ := cfg.IsValid(); !valid {
		t.Error("default config should be valid")
	}

	cfg.UI.ColorScheme = "sepia"
	valid, errs := cfg.IsValid()
	if valid {
		t.Fatal("config with bad color scheme should be invalid")
	}
	if !errors.Is(errs[0], ErrInvalidConfig) {
		t.Error("error should wrap ErrInvalidConfig")
	}
	if !errors.Is(errs[0].(*InvalidConfigError).FieldErrors[0], ErrInvalidColorScheme) {
		t.Error("field error should wrap ErrInvalidColorScheme")
	}
}
