// SPDX-License-Identifier: MPL-2.0

// Package assembly implements the archive-assembly engine.
//
// It consumes an ordered list of classpath entries, streams their contents
// into a staging tree while resolving path collisions through the clash
// strategies, injects collaborator-supplied metadata entries, and finalizes
// the output jar with a single atomic rename. Processing is strictly
// sequential: which entry wins a collision is a load-bearing contract, so
// there is no parallelism across entries or within a copy.
package assembly
