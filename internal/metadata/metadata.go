// SPDX-License-Identifier: MPL-2.0

// Package metadata generates the descriptor entries injected into the
// assembled jar after all classpath entries are processed: the manifest,
// the Maven pom.properties, and a copy of the original pom.xml.
//
// The assembly engine never parses descriptors itself; this package hands
// it pre-built (path, bytes, timestamp) triples through the same copier
// contract used for ordinary entries.
package metadata

import (
	"fmt"
	"os"
	"os/user"
	"strings"
	"time"

	"jarpack-cli/internal/assembly"
)

// ManifestPath is where the jar manifest lives inside the archive.
const ManifestPath = "META-INF/MANIFEST.MF"

// MainClassName converts a Clojure main namespace into the class name the
// JVM expects: hyphens munge to underscores, dots stay.
func MainClassName(ns string) string {
	return strings.ReplaceAll(ns, "-", "_")
}

// Manifest renders the jar manifest text. mainClass is the already-munged
// class name, empty for no Main-Class attribute.
func Manifest(mainClass string, multiRelease bool, toolVersion string) []byte {
	var b strings.Builder
	b.WriteString("Manifest-Version: 1.0\n")
	fmt.Fprintf(&b, "Created-By: jarpack %s\n", toolVersion)
	fmt.Fprintf(&b, "Built-By: %s\n", currentUser())
	if mainClass != "" {
		fmt.Fprintf(&b, "Main-Class: %s\n", mainClass)
	}
	if multiRelease {
		b.WriteString("Multi-Release: true\n")
	}
	return []byte(b.String())
}

// PomProperties renders the Maven pom.properties for an identity.
func PomProperties(id Identity, now time.Time) []byte {
	var b strings.Builder
	b.WriteString("#Generated by jarpack\n")
	fmt.Fprintf(&b, "#%s\n", now.UTC().Format(time.RFC1123))
	fmt.Fprintf(&b, "groupId=%s\n", id.GroupID)
	fmt.Fprintf(&b, "artifactId=%s\n", id.ArtifactID)
	fmt.Fprintf(&b, "version=%s\n", id.Version)
	return []byte(b.String())
}

// Source builds the metadata collaborator for one assembly run. pomPath may
// be empty, in which case only the manifest is injected. mainNS may be
// empty for no Main-Class. The returned function reads the run state for
// the multi-release flag, so it must run after all classpath entries.
func Source(pomPath, mainNS, toolVersion string) assembly.MetadataFunc {
	return func(st assembly.State) ([]assembly.Extra, error) {
		mainClass := ""
		if mainNS != "" {
			mainClass = MainClassName(mainNS)
		}
		extras := []assembly.Extra{{
			Path: ManifestPath,
			Data: Manifest(mainClass, st.MultiRelease, toolVersion),
		}}

		if pomPath == "" {
			return extras, nil
		}

		id, err := ParsePOM(pomPath)
		if err != nil {
			return nil, err
		}
		pomData, err := os.ReadFile(pomPath)
		if err != nil {
			return nil, fmt.Errorf("read project descriptor: %w", err)
		}
		var pomTime time.Time
		if info, err := os.Stat(pomPath); err == nil {
			pomTime = info.ModTime()
		}

		mavenDir := fmt.Sprintf("META-INF/maven/%s/%s", id.GroupID, id.ArtifactID)
		extras = append(extras,
			assembly.Extra{
				Path: mavenDir + "/pom.properties",
				Data: PomProperties(*id, time.Now()),
			},
			assembly.Extra{
				Path:    mavenDir + "/pom.xml",
				Data:    pomData,
				ModTime: pomTime,
			},
		)
		return extras, nil
	}
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "unknown"
}
