// SPDX-License-Identifier: MPL-2.0

package assembly

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"
)

// walkDirectory streams every file under src into the copier, with paths
// relative to src. Symbolic links are followed. A directory is created in
// the staging tree before any of its descendants are processed.
//
// Unlike single-entry copy failures, a failure while visiting any path in
// the subtree aborts the walk entirely and propagates: a broken traversal
// cannot be safely treated as partial.
func walkDirectory(src string, c *copier) error {
	return walkSubtree(src, "", c)
}

func walkSubtree(dir, rel string, c *copier) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		childRel := path.Join(rel, entry.Name())

		// Stat, not the DirEntry type, so symlinks resolve to their targets.
		info, err := os.Stat(full)
		if err != nil {
			return fmt.Errorf("stat %s: %w", full, err)
		}

		if info.IsDir() {
			if err := c.MkDir(childRel); err != nil {
				return fmt.Errorf("create directory %s: %w", childRel, err)
			}
			if err := walkSubtree(full, childRel, c); err != nil {
				return err
			}
			continue
		}

		if err := copyFileEntry(full, childRel, info.ModTime(), c); err != nil {
			return err
		}
	}
	return nil
}

// copyFileEntry opens one source file and hands it to the copier. Opening
// the read stream is part of the traversal, so an open failure is fatal;
// failures past this point are contained inside Copy.
func copyFileEntry(full, rel string, modTime time.Time, c *copier) error {
	f, err := os.Open(full)
	if err != nil {
		return fmt.Errorf("open %s: %w", full, err)
	}
	defer f.Close()
	c.Copy(rel, f, modTime)
	return nil
}
