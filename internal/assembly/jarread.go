// SPDX-License-Identifier: MPL-2.0

package assembly

import (
	"archive/zip"
	"path"
	"strings"
)

// MultiReleasePrefix marks version-specific overrides bundled inside a
// single archive. Seeing it anywhere in a nested jar makes the whole
// output multi-release.
const MultiReleasePrefix = "META-INF/versions/"

// copyArchive streams the entries of one nested jar into the copier, in
// physical archive order. All failures here are entry-level: an unreadable
// archive or entry is logged, counted, and skipped, never aborting the run.
func (a *assembler) copyArchive(jarPath string) {
	zr, err := zip.OpenReader(jarPath)
	if err != nil {
		a.state.ErrorCount++
		a.log.Warn("failed to open archive", "path", jarPath, "error", err)
		return
	}
	defer zr.Close()

	for _, f := range zr.File {
		name := f.Name

		if strings.HasPrefix(name, MultiReleasePrefix) {
			a.state.MultiRelease = true
		}

		// Reject entries that would escape the staging tree.
		cleaned := path.Clean(name)
		if strings.HasPrefix(cleaned, "..") || path.IsAbs(cleaned) {
			a.state.ErrorCount++
			a.log.Warn("failed to write jar entry", "path", name, "kind", "copy",
				"error", "entry path escapes the output root")
			continue
		}

		if f.FileInfo().IsDir() || strings.HasSuffix(name, "/") {
			if err := a.copier.MkDir(cleaned); err != nil {
				a.state.ErrorCount++
				a.log.Warn("failed to write jar entry", "path", name, "kind", "copy", "error", err)
			}
			continue
		}

		rc, err := f.Open()
		if err != nil {
			a.state.ErrorCount++
			a.log.Warn("failed to write jar entry", "path", name, "kind", "copy", "error", err)
			continue
		}
		a.copier.Copy(cleaned, rc, f.Modified)
		rc.Close()
	}
}
