// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for jarpack.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"jarpack-cli/internal/config"
	"jarpack-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// loadedConfig is the configuration resolved during initialization.
	// Falls back to defaults when loading fails.
	loadedConfig *config.Config

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "jarpack",
		Short: "Assemble deployable jars from a JVM classpath",
		Long: TitleStyle.Render("jarpack") + SubtitleStyle.Render(" - Assemble deployable jars from a JVM classpath") + `

jarpack walks an ordered classpath - source directories and library
jars - and assembles a single deployable jar. Colliding paths are
resolved content-aware: first entry wins by default, data reader
maps are merged, and service registrations are concatenated.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Produce a classpath with your build tool
  2. Run: jarpack build --cp "$(clojure -Spath)" -o target/app.jar
  3. Deploy the jar

` + SubtitleStyle.Render("Examples:") + `
  jarpack build -o app.jar                Build using the CLASSPATH env var
  jarpack build --thin -o app-thin.jar    Skip library jars
  jarpack build --main my-app.core ...    Set the Main-Class attribute
  jarpack config show                     Show current configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/jarpack/config.cue)")

	// Add subcommands
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	cfg, err := config.Load()
	if err != nil {
		// Always surface config loading errors to the user
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		cfg = config.DefaultConfig()
	}
	loadedConfig = cfg

	// Apply verbose from config if not set via flag
	if !verbose {
		verbose = cfg.UI.Verbose
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
