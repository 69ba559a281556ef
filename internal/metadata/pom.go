// SPDX-License-Identifier: MPL-2.0

package metadata

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
)

// Identity is the project identity extracted from a Maven descriptor.
type Identity struct {
	GroupID    string
	ArtifactID string
	Version    string
}

// pomProject mirrors the subset of a pom.xml needed for identity fields.
type pomProject struct {
	XMLName    xml.Name `xml:"project"`
	GroupID    string   `xml:"groupId"`
	ArtifactID string   `xml:"artifactId"`
	Version    string   `xml:"version"`
	Parent     struct {
		GroupID string `xml:"groupId"`
		Version string `xml:"version"`
	} `xml:"parent"`
}

// ParsePOM extracts the project identity from a pom.xml, falling back to
// the parent declaration for group and version as Maven does. All three
// identity fields are required; the produced archive cannot be trusted
// without them.
func ParsePOM(path string) (*Identity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project descriptor: %w", err)
	}

	var proj pomProject
	if err := xml.Unmarshal(data, &proj); err != nil {
		return nil, fmt.Errorf("parse project descriptor %s: %w", path, err)
	}

	id := &Identity{
		GroupID:    strings.TrimSpace(proj.GroupID),
		ArtifactID: strings.TrimSpace(proj.ArtifactID),
		Version:    strings.TrimSpace(proj.Version),
	}
	if id.GroupID == "" {
		id.GroupID = strings.TrimSpace(proj.Parent.GroupID)
	}
	if id.Version == "" {
		id.Version = strings.TrimSpace(proj.Parent.Version)
	}

	var missing []string
	if id.GroupID == "" {
		missing = append(missing, "groupId")
	}
	if id.ArtifactID == "" {
		missing = append(missing, "artifactId")
	}
	if id.Version == "" {
		missing = append(missing, "version")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("project descriptor %s is missing required identity fields: %s",
			path, strings.Join(missing, ", "))
	}
	return id, nil
}
