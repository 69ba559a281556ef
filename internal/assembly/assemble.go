// SPDX-License-Identifier: MPL-2.0

package assembly

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"jarpack-cli/internal/classpath"
	"jarpack-cli/internal/exclude"
)

// Mode selects how much of the classpath reaches the output.
type Mode string

const (
	// ModeFull assembles project files and all nested library archives.
	ModeFull Mode = "full"
	// ModeThin assembles only the project's own files; contents of nested
	// library archives are skipped entirely.
	ModeThin Mode = "thin"
)

// ParseMode validates a mode string from flags or config.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeFull, ModeThin:
		return Mode(s), nil
	case "":
		return ModeFull, nil
	default:
		return "", fmt.Errorf("unknown assembly mode %q (expected full or thin)", s)
	}
}

// Options configures one assembly run.
type Options struct {
	// Dest is the output jar path. Required. The jar is staged next to it
	// and moved into place atomically on success.
	Dest string
	// Mode is full or thin. Empty means full.
	Mode Mode
	// SuppressClashWarnings silences the per-clash warning log.
	SuppressClashWarnings bool
	// ExcludePatterns are extra user-supplied exclusion regexes, checked
	// after the fixed exclusion set.
	ExcludePatterns []string
	// Logger receives run warnings. Defaults to log.Default().
	Logger *log.Logger
}

// Extra is one metadata entry injected after all classpath entries are
// processed. It travels through the same copier path as ordinary entries.
type Extra struct {
	Path    string
	Data    []byte
	ModTime time.Time
}

// MetadataFunc supplies metadata entries once the run state is known.
// An error from it aborts the run before finalize: an archive without
// trusted identity metadata must not be produced.
type MetadataFunc func(st State) ([]Extra, error)

// Result reports the outcome of a completed run.
type Result struct {
	Dest         string
	ErrorCount   int
	MultiRelease bool
}

// assembler carries the per-run collaborators.
type assembler struct {
	copier *copier
	state  *State
	log    *log.Logger
}

// Assemble runs the full pipeline: classify each classpath entry in order,
// dispatch directories to the walker and archives to the reader, inject
// metadata, and finalize the output jar atomically. Entry-level failures
// are contained and counted; traversal and metadata failures abort the run
// with no file produced at Dest.
func Assemble(entries []string, opts Options, meta MetadataFunc) (*Result, error) {
	if opts.Dest == "" {
		return nil, errors.New("destination path is required")
	}
	mode := opts.Mode
	if mode == "" {
		mode = ModeFull
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	filter, err := exclude.New(opts.ExcludePatterns...)
	if err != nil {
		return nil, err
	}

	staging, err := os.MkdirTemp("", "jarpack-staging-*")
	if err != nil {
		return nil, fmt.Errorf("create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	state := &State{}
	a := &assembler{
		copier: &copier{
			root:   staging,
			filter: filter,
			state:  state,
			log:    logger,
			quiet:  opts.SuppressClashWarnings,
		},
		state: state,
		log:   logger,
	}

	for _, entryPath := range entries {
		switch classpath.Classify(entryPath) {
		case classpath.KindDirectory:
			if err := walkDirectory(entryPath, a.copier); err != nil {
				return nil, fmt.Errorf("traverse classpath directory %s: %w", entryPath, err)
			}
		case classpath.KindArchive:
			if mode == ModeThin {
				logger.Debug("thin mode, skipping library archive", "path", entryPath)
				continue
			}
			a.copyArchive(entryPath)
		case classpath.KindMissing:
			logger.Warn("classpath entry does not exist", "path", entryPath)
		case classpath.KindUnknown:
			slashed := filepath.ToSlash(entryPath)
			if !filter.Excluded(slashed) && !filter.Excluded(path.Base(slashed)) {
				logger.Warn("ignoring unrecognized classpath entry", "path", entryPath)
			}
		}
	}

	if meta != nil {
		extras, err := meta(*state)
		if err != nil {
			return nil, fmt.Errorf("generate archive metadata: %w", err)
		}
		for _, e := range extras {
			a.copier.CopyExtra(e.Path, bytes.NewReader(e.Data), e.ModTime)
		}
	}

	if err := writeJar(staging, opts.Dest); err != nil {
		return nil, err
	}

	return &Result{
		Dest:         opts.Dest,
		ErrorCount:   state.ErrorCount,
		MultiRelease: state.MultiRelease,
	}, nil
}
