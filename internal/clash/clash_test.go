// SPDX-License-Identifier: MPL-2.0

package clash

import (
	"io"
	"strings"
	"testing"

	"olympos.io/encoding/edn"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path     string
		expected Strategy
	}{
		{"data_readers.clj", MergeStructured},
		{"data_readers.cljc", MergeStructured},
		{"data_readers.cljs", MergeStructured},
		// Only root-level data_readers files are loaded by the runtime;
		// nested copies are ordinary content.
		{"sub/dir/data_readers.clj", FirstWins},
		{"data_readers.clje", FirstWins},
		{"my_data_readers.clj", FirstWins},
		{"META-INF/services/java.sql.Driver", ConcatenateLines},
		{"META-INF/services/sub/whatever", ConcatenateLines},
		{"META-INF/servicesx/nope", FirstWins},
		{"com/example/Core.class", FirstWins},
		{"LICENSE", FirstWins},
	}

	for _, tt := range tests {
		if got := Classify(tt.path); got != tt.expected {
			t.Errorf("Classify(%q) = %v, want %v", tt.path, got, tt.expected)
		}
	}
}

func TestMergeEDNMapsExistingWins(t *testing.T) {
	incoming := strings.NewReader(`{k 2 j 3}`)
	existing := io.NopCloser(strings.NewReader(`{k 1}`))

	out, err := MergeEDNMaps(incoming, existing)
	if err != nil {
		t.Fatal(err)
	}

	var merged map[interface{}]interface{}
	if err := edn.Unmarshal(out, &merged); err != nil {
		t.Fatalf("result is not a valid EDN map: %v\n%s", err, out)
	}

	if len(merged) != 2 {
		t.Fatalf("merged map has %d keys, want 2: %v", len(merged), merged)
	}
	k := edn.Symbol("k")
	j := edn.Symbol("j")
	if got := merged[k]; got != int64(1) {
		t.Errorf("merged[k] = %v (%T), want 1 (existing wins)", got, got)
	}
	if got := merged[j]; got != int64(3) {
		t.Errorf("merged[j] = %v (%T), want 3", got, got)
	}
}

func TestMergeEDNMapsSymbolValues(t *testing.T) {
	// data_readers.clj maps reader tags to var symbols.
	incoming := strings.NewReader(`{foo/bar my.ns/read-bar}`)
	existing := io.NopCloser(strings.NewReader(`{baz/qux other.ns/read-qux}`))

	out, err := MergeEDNMaps(incoming, existing)
	if err != nil {
		t.Fatal(err)
	}

	var merged map[edn.Symbol]edn.Symbol
	if err := edn.Unmarshal(out, &merged); err != nil {
		t.Fatalf("result is not a symbol map: %v\n%s", err, out)
	}
	if merged["foo/bar"] != "my.ns/read-bar" || merged["baz/qux"] != "other.ns/read-qux" {
		t.Errorf("unexpected merge result: %v", merged)
	}
}

func TestMergeEDNMapsBadInput(t *testing.T) {
	incoming := strings.NewReader(`[not a map]`)
	existing := io.NopCloser(strings.NewReader(`{k 1}`))
	if _, err := MergeEDNMaps(incoming, existing); err == nil {
		t.Error("expected error for non-map incoming document")
	}
}

func TestConcatenateServiceLinesOrder(t *testing.T) {
	// Incoming first, separator, then existing. The order is the contract.
	incoming := strings.NewReader("com.example.DriverB")
	existing := io.NopCloser(strings.NewReader("com.example.DriverA"))

	out, err := ConcatenateServiceLines(incoming, existing)
	if err != nil {
		t.Fatal(err)
	}

	want := "com.example.DriverB\ncom.example.DriverA"
	if string(out) != want {
		t.Errorf("concatenation = %q, want %q", out, want)
	}
}

func TestConcatenateServiceLinesMultiline(t *testing.T) {
	incoming := strings.NewReader("b1\nb2\n")
	existing := io.NopCloser(strings.NewReader("a1\na2\n"))

	out, err := ConcatenateServiceLines(incoming, existing)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "b1\nb2\n\na1\na2\n" {
		t.Errorf("concatenation = %q", out)
	}
}
