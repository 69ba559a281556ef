// SPDX-License-Identifier: MPL-2.0

// Package clash classifies colliding output paths into merge strategies and
// executes the content-aware merges.
//
// A clash occurs when two classpath entries produce content for the same
// output path. Classification is a pure function of the relative path;
// execution is handled by one function per strategy so the dispatch table
// in the copier stays exhaustive.
package clash

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"olympos.io/encoding/edn"
)

// ServicesPrefix marks the service-registration directory whose files are
// merged by line concatenation.
const ServicesPrefix = "META-INF/services/"

// dataReadersPattern matches Clojure data-reader registration files, which
// are merged as EDN maps. Anchored to the whole relative path: the runtime
// only loads data_readers files from the classpath root, so a nested copy
// is ordinary content and falls through to first-wins.
var dataReadersPattern = regexp.MustCompile(`^data_readers\.clj[cs]?$`)

// Strategy selects how a colliding path is resolved.
type Strategy int

const (
	// FirstWins keeps the existing content and discards the incoming entry.
	FirstWins Strategy = iota
	// MergeStructured merges incoming and existing as EDN key/value maps,
	// with existing keys winning on conflict.
	MergeStructured
	// ConcatenateLines appends existing lines after the incoming ones,
	// separated by a newline.
	ConcatenateLines
)

// String returns the strategy name used in clash warnings.
func (s Strategy) String() string {
	switch s {
	case FirstWins:
		return "first-wins"
	case MergeStructured:
		return "merge-edn"
	case ConcatenateLines:
		return "concat-lines"
	default:
		return "invalid"
	}
}

// Classify selects the merge strategy for a relative output path.
func Classify(relPath string) Strategy {
	if dataReadersPattern.MatchString(relPath) {
		return MergeStructured
	}
	if strings.HasPrefix(relPath, ServicesPrefix) {
		return ConcatenateLines
	}
	return FirstWins
}

// MergeEDNMaps parses incoming and existing as single EDN maps and merges
// them, existing keys taking precedence on conflict. The existing reader is
// closed once read since its target is about to be replaced; the incoming
// reader stays open because its lifecycle belongs to the caller.
func MergeEDNMaps(incoming io.Reader, existing io.ReadCloser) ([]byte, error) {
	in, err := decodeMap(incoming, "incoming")
	if err != nil {
		existing.Close()
		return nil, err
	}
	old, err := decodeMap(existing, "existing")
	if closeErr := existing.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		return nil, err
	}

	merged := make(map[interface{}]interface{}, len(in)+len(old))
	for k, v := range in {
		merged[k] = v
	}
	for k, v := range old {
		merged[k] = v
	}

	out, err := edn.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("serialize merged map: %w", err)
	}
	return out, nil
}

// ConcatenateServiceLines produces incoming content, a separating newline,
// then the existing content. The order is deliberate and must not be
// reversed. The existing reader is closed once read; the incoming reader
// stays open for the caller.
func ConcatenateServiceLines(incoming io.Reader, existing io.ReadCloser) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, incoming); err != nil {
		existing.Close()
		return nil, fmt.Errorf("read incoming service file: %w", err)
	}
	buf.WriteByte('\n')
	_, err := io.Copy(&buf, existing)
	if closeErr := existing.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("read existing service file: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeMap(r io.Reader, which string) (map[interface{}]interface{}, error) {
	var m map[interface{}]interface{}
	if err := edn.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("parse %s EDN map: %w", which, err)
	}
	return m, nil
}
