// SPDX-License-Identifier: MPL-2.0

// Package exclude decides which output paths are never written to the
// assembled archive.
//
// The fixed pattern set mixes two matching forms on purpose: most patterns
// are exact full-path or suffix matches, while the META-INF signature and
// notice families match case-insensitively under the META-INF/ prefix.
// The two forms are kept separate rather than unified so the set of
// excluded files stays exactly as documented.
package exclude

import (
	"fmt"
	"regexp"
	"strings"
)

// exactPaths are excluded by full-path equality.
var exactPaths = []string{
	"project.clj",
	"LICENSE",
	"COPYRIGHT",
	".keep",
}

// suffixes are excluded when the path ends with one of them, at any depth.
var suffixes = []string{
	".pom",
	"module-info.class",
}

// metaInfFamilies matches the META-INF signature and notice files
// case-insensitively: signing material anywhere under META-INF/, and the
// well-known notice files directly under it, with an optional .txt suffix.
var metaInfFamilies = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^META-INF/.*\.(?:MF|SF|RSA|DSA)$`),
	regexp.MustCompile(`(?i)^META-INF/(?:INDEX\.LIST|DEPENDENCIES|NOTICE|LICENSE)(?:\.txt)?$`),
}

// Filter is the exclusion predicate consulted before any write. The zero
// value is not usable; construct with New.
type Filter struct {
	extra []*regexp.Regexp
}

// New builds a Filter from the fixed pattern set plus optional user-supplied
// regular expressions. Each extra pattern must match the full relative path
// to exclude it.
func New(extra ...string) (*Filter, error) {
	f := &Filter{}
	for _, pat := range extra {
		re, err := regexp.Compile("^(?:" + pat + ")$")
		if err != nil {
			return nil, fmt.Errorf("invalid exclusion pattern %q: %w", pat, err)
		}
		f.extra = append(f.extra, re)
	}
	return f, nil
}

// Excluded reports whether relPath must never appear in the output.
// relPath uses forward slashes and no leading slash.
func (f *Filter) Excluded(relPath string) bool {
	for _, p := range exactPaths {
		if relPath == p {
			return true
		}
	}
	for _, s := range suffixes {
		if strings.HasSuffix(relPath, s) {
			return true
		}
	}
	for _, re := range metaInfFamilies {
		if re.MatchString(relPath) {
			return true
		}
	}
	for _, re := range f.extra {
		if re.MatchString(relPath) {
			return true
		}
	}
	return false
}
