// SPDX-License-Identifier: MPL-2.0

// Package classpath classifies and splits classpath entries.
//
// A classpath entry is one directory or JAR contributing files to the
// assembled output. Classification is a pure function of the filesystem
// state at call time; callers decide how to react to Missing/Unknown
// entries.
package classpath

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ArchiveSuffix is the filename suffix recognized as a nested library archive.
const ArchiveSuffix = ".jar"

// Kind describes what a classpath entry path points at.
type Kind int

const (
	// KindDirectory is an existing directory (symlinks followed).
	KindDirectory Kind = iota
	// KindArchive is an existing regular file ending in .jar.
	KindArchive
	// KindMissing is a path that does not exist.
	KindMissing
	// KindUnknown is a path that exists but is neither a directory nor a JAR.
	KindUnknown
)

// String returns a human-readable kind name for logging.
func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindArchive:
		return "archive"
	case KindMissing:
		return "missing"
	case KindUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// selfJarPattern matches the jarpack tool's own jar so that it can be
// removed from classpaths that include the running tool.
var selfJarPattern = regexp.MustCompile(`^jarpack(-[^/\\]*)?\.jar$`)

// Classify maps a classpath entry path to its Kind. Symlinks are followed,
// so a link to a directory classifies as a directory. Paths that cannot be
// stat'ed for reasons other than non-existence classify as Unknown.
func Classify(path string) Kind {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return KindMissing
		}
		return KindUnknown
	}
	if info.IsDir() {
		return KindDirectory
	}
	if info.Mode().IsRegular() && strings.HasSuffix(strings.ToLower(path), ArchiveSuffix) {
		return KindArchive
	}
	return KindUnknown
}

// Split breaks a platform classpath string into its entries, dropping empty
// segments and references to the jarpack tool jar itself.
func Split(cp string) []string {
	var entries []string
	for _, seg := range strings.Split(cp, string(os.PathListSeparator)) {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		if selfJarPattern.MatchString(filepath.Base(seg)) {
			continue
		}
		entries = append(entries, seg)
	}
	return entries
}
