// SPDX-License-Identifier: MPL-2.0

package assembly

// State accumulates the outcomes of exactly one assembly run. It is owned
// by the orchestrator for the duration of the run, reset at run start, and
// surfaced to the metadata collaborator and the caller afterwards. It is
// never shared across runs.
type State struct {
	// ErrorCount is the number of entry-level copy/merge failures that were
	// contained and skipped. A run with ErrorCount > 0 still produces a
	// best-effort archive.
	ErrorCount int

	// MultiRelease becomes true permanently once any nested-archive entry
	// path carries the multi-release marker prefix. It never reverts within
	// a run.
	MultiRelease bool
}
