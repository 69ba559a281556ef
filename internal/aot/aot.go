// SPDX-License-Identifier: MPL-2.0

// Package aot shells out to a JVM to ahead-of-time compile the main
// Clojure namespace before the jar is assembled. The produced class files
// land in a directory the caller prepends to the classpath.
package aot

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// javaBinary is overridable in tests.
var javaBinary = "java"

// compileExpr builds the Clojure form that compiles mainNS with
// *compile-path* bound to classesDir.
func compileExpr(mainNS, classesDir string) string {
	return fmt.Sprintf(
		"(binding [*compile-path* %q] (compile (symbol %q)))",
		classesDir, mainNS)
}

// Args returns the argument vector passed to the JVM for one compile run.
func Args(classpath []string, mainNS, classesDir string) []string {
	return []string{
		"-cp", strings.Join(classpath, string(os.PathListSeparator)),
		"clojure.main",
		"-e", compileExpr(mainNS, classesDir),
	}
}

// Compile AOT-compiles mainNS into classesDir using the given classpath.
// The classpath must already contain Clojure itself; jarpack does not
// bundle a runtime.
func Compile(ctx context.Context, logger *log.Logger, classpath []string, mainNS, classesDir string) error {
	if mainNS == "" {
		return fmt.Errorf("aot compilation requires a main namespace")
	}
	if err := os.MkdirAll(classesDir, 0o755); err != nil {
		return fmt.Errorf("create compile output directory: %w", err)
	}

	args := Args(classpath, mainNS, classesDir)
	logger.Debug("compiling main namespace", "namespace", mainNS, "classes", classesDir)

	cmd := exec.CommandContext(ctx, javaBinary, args...)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("aot compilation of %s failed: %w", mainNS, err)
	}
	return nil
}
