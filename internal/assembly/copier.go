// SPDX-License-Identifier: MPL-2.0

package assembly

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"jarpack-cli/internal/clash"
	"jarpack-cli/internal/exclude"
)

// copier writes individual (path, content, timestamp) triples into the
// staging tree, consulting the exclusion filter and the clash resolver.
// It is the containment boundary for entry-level I/O failures: a single
// bad file is logged and counted, never aborting the run.
type copier struct {
	root   string
	filter *exclude.Filter
	state  *State
	log    *log.Logger
	quiet  bool // suppress clash warnings
}

// Copy writes one entry. Excluded paths are a no-op. If the target already
// exists, the clash resolver decides the outcome. Any I/O failure during
// the copy or merge is contained here: logged with path and failure kind,
// counted on the run state, and skipped.
func (c *copier) Copy(relPath string, r io.Reader, modTime time.Time) {
	if c.filter.Excluded(relPath) {
		return
	}
	c.copyUnfiltered(relPath, r, modTime)
}

// CopyExtra writes a generated metadata entry. It shares the clash and
// containment behavior of Copy but bypasses the exclusion filter: the
// filter strips stale metadata arriving from classpath entries, not the
// freshly generated replacement.
func (c *copier) CopyExtra(relPath string, r io.Reader, modTime time.Time) {
	c.copyUnfiltered(relPath, r, modTime)
}

func (c *copier) copyUnfiltered(relPath string, r io.Reader, modTime time.Time) {
	kind, err := c.write(relPath, r, modTime)
	if err != nil {
		c.state.ErrorCount++
		c.log.Warn("failed to write jar entry", "path", relPath, "kind", kind, "error", err)
	}
}

// MkDir creates the directory for relPath inside the staging tree,
// including parents.
func (c *copier) MkDir(relPath string) error {
	return os.MkdirAll(filepath.Join(c.root, filepath.FromSlash(relPath)), 0o755)
}

// write performs the actual copy or clash resolution, returning the failure
// kind ("copy" or "merge") alongside any error for the containment log.
func (c *copier) write(relPath string, r io.Reader, modTime time.Time) (string, error) {
	dest := filepath.Join(c.root, filepath.FromSlash(relPath))

	if info, err := os.Stat(dest); err == nil && !info.IsDir() {
		return "merge", c.resolveClash(relPath, dest, r, modTime)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "copy", fmt.Errorf("create parent directory: %w", err)
	}
	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "copy", fmt.Errorf("create target: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "copy", fmt.Errorf("stream content: %w", err)
	}
	if err := f.Close(); err != nil {
		return "copy", fmt.Errorf("close target: %w", err)
	}
	if !modTime.IsZero() {
		if err := os.Chtimes(dest, modTime, modTime); err != nil {
			return "copy", fmt.Errorf("set modification time: %w", err)
		}
	}
	return "", nil
}

// resolveClash executes the strategy for a path that already exists in the
// staging tree. The warning fires for every clash, including first-wins,
// unless suppressed.
func (c *copier) resolveClash(relPath, dest string, incoming io.Reader, modTime time.Time) error {
	strategy := clash.Classify(relPath)
	if !c.quiet {
		c.log.Warn("clashing jar item", "path", relPath, "strategy", strategy)
	}

	var (
		merged []byte
		err    error
	)
	switch strategy {
	case clash.FirstWins:
		return nil
	case clash.MergeStructured:
		existing, openErr := os.Open(dest)
		if openErr != nil {
			return fmt.Errorf("open existing target: %w", openErr)
		}
		merged, err = clash.MergeEDNMaps(incoming, existing)
	case clash.ConcatenateLines:
		existing, openErr := os.Open(dest)
		if openErr != nil {
			return fmt.Errorf("open existing target: %w", openErr)
		}
		merged, err = clash.ConcatenateServiceLines(incoming, existing)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(dest, merged, 0o644); err != nil {
		return fmt.Errorf("replace target with merged content: %w", err)
	}
	if !modTime.IsZero() {
		if err := os.Chtimes(dest, modTime, modTime); err != nil {
			return fmt.Errorf("set modification time: %w", err)
		}
	}
	return nil
}
