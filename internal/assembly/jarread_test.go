// SPDX-License-Identifier: MPL-2.0

package assembly

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

type fixtureEntry struct {
	name    string
	content string // ignored for directory markers (trailing slash)
	modTime time.Time
}

func writeFixtureJar(t *testing.T, entries []fixtureEntry) string {
	t.Helper()
	jarPath := filepath.Join(t.TempDir(), "fixture.jar")
	f, err := os.Create(jarPath)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for _, e := range entries {
		header := &zip.FileHeader{Name: e.name, Method: zip.Deflate}
		if !e.modTime.IsZero() {
			header.Modified = e.modTime
		}
		w, err := zw.CreateHeader(header)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(e.content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return jarPath
}

func newTestAssembler(t *testing.T) *assembler {
	t.Helper()
	c := newTestCopier(t)
	return &assembler{copier: c, state: c.state, log: c.log}
}

func TestCopyArchiveCopiesEntries(t *testing.T) {
	ts := time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)
	jar := writeFixtureJar(t, []fixtureEntry{
		{name: "com/", modTime: ts},
		{name: "com/example/Lib.class", content: "bytecode", modTime: ts},
		{name: "config.edn", content: "{:a 1}", modTime: ts},
	})

	a := newTestAssembler(t)
	a.copyArchive(jar)

	if got := readStaged(t, a.copier, "com/example/Lib.class"); got != "bytecode" {
		t.Errorf("Lib.class = %q", got)
	}
	if got := readStaged(t, a.copier, "config.edn"); got != "{:a 1}" {
		t.Errorf("config.edn = %q", got)
	}
	info, err := os.Stat(stagedPath(a.copier, "com"))
	if err != nil || !info.IsDir() {
		t.Errorf("directory marker not materialized: %v", err)
	}
	if a.state.ErrorCount != 0 {
		t.Errorf("error count = %d, want 0", a.state.ErrorCount)
	}
	if a.state.MultiRelease {
		t.Error("multi-release should not be detected")
	}
}

func TestCopyArchiveDetectsMultiRelease(t *testing.T) {
	jar := writeFixtureJar(t, []fixtureEntry{
		{name: "META-INF/versions/9/com/example/Lib.class", content: "java9"},
	})

	a := newTestAssembler(t)
	a.copyArchive(jar)

	if !a.state.MultiRelease {
		t.Error("multi-release marker not detected")
	}
}

func TestCopyArchiveStripsSignatureFiles(t *testing.T) {
	jar := writeFixtureJar(t, []fixtureEntry{
		{name: "META-INF/MANIFEST.MF", content: "Manifest-Version: 1.0"},
		{name: "META-INF/CERT.SF", content: "sig"},
		{name: "com/example/Lib.class", content: "bytecode"},
	})

	a := newTestAssembler(t)
	a.copyArchive(jar)

	for _, p := range []string{"META-INF/MANIFEST.MF", "META-INF/CERT.SF"} {
		if _, err := os.Stat(stagedPath(a.copier, p)); !os.IsNotExist(err) {
			t.Errorf("signature path %q should be excluded", p)
		}
	}
	if got := readStaged(t, a.copier, "com/example/Lib.class"); got != "bytecode" {
		t.Errorf("Lib.class = %q", got)
	}
}

func TestCopyArchiveRejectsEscapingEntries(t *testing.T) {
	jar := writeFixtureJar(t, []fixtureEntry{
		{name: "../outside.txt", content: "escape"},
		{name: "safe.txt", content: "ok"},
	})

	a := newTestAssembler(t)
	a.copyArchive(jar)

	if a.state.ErrorCount != 1 {
		t.Errorf("error count = %d, want 1 for escaping entry", a.state.ErrorCount)
	}
	if got := readStaged(t, a.copier, "safe.txt"); got != "ok" {
		t.Errorf("safe.txt = %q", got)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(a.copier.root), "outside.txt")); !os.IsNotExist(err) {
		t.Error("escaping entry was written outside the staging tree")
	}
}

func TestCopyArchiveUnreadableIsContained(t *testing.T) {
	notAJar := filepath.Join(t.TempDir(), "broken.jar")
	if err := os.WriteFile(notAJar, []byte("this is not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := newTestCopier(t)
	a := &assembler{copier: c, state: c.state, log: log.New(io.Discard)}
	a.copyArchive(notAJar)

	if a.state.ErrorCount != 1 {
		t.Errorf("error count = %d, want 1", a.state.ErrorCount)
	}
}
