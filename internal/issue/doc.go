// SPDX-License-Identifier: MPL-2.0

// Package issue holds the catalog of known failure modes with rendered
// markdown help, plus the ActionableError type used to attach operation,
// resource, and suggestion context to errors on their way to the user.
package issue
