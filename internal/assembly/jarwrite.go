// SPDX-License-Identifier: MPL-2.0

package assembly

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// writeJar packs the staging tree into a zip written beside dest and moves
// it into place with a single rename. A crash or abort mid-run never leaves
// a partial file at dest.
func writeJar(root, dest string) error {
	destDir := filepath.Dir(dest)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// Stage in the destination directory so the final rename stays on one
	// filesystem and remains atomic.
	tmp, err := os.CreateTemp(destDir, ".jarpack-*.jar")
	if err != nil {
		return fmt.Errorf("create staging jar: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	zw := zip.NewWriter(tmp)
	if err := addTree(zw, root); err != nil {
		zw.Close()
		cleanup()
		return fmt.Errorf("write jar contents: %w", err)
	}
	if err := zw.Close(); err != nil {
		cleanup()
		return fmt.Errorf("finalize jar: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close staging jar: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("move jar into place: %w", err)
	}
	return nil
}

// addTree writes every path under root into the zip, preserving relative
// paths (forward slashes) and file modification times.
func addTree(zw *zip.Writer, root string) error {
	return filepath.WalkDir(root, func(p string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		zipPath := filepath.ToSlash(rel)

		if d.IsDir() {
			_, err := zw.Create(zipPath + "/")
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		header.Name = zipPath
		header.Method = zip.Deflate

		w, err := zw.CreateHeader(header)
		if err != nil {
			return err
		}
		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(w, f)
		return err
	})
}
