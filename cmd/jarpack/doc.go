// SPDX-License-Identifier: MPL-2.0

// Package cmd wires the jarpack CLI: the build command that assembles jars
// from a classpath, and the config command tree for the user configuration
// file. Commands are Cobra-based and executed through fang for consistent
// styling, version output, and signal handling.
package cmd
