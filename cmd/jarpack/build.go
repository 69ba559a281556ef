// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jarpack-cli/internal/aot"
	"jarpack-cli/internal/assembly"
	"jarpack-cli/internal/classpath"
	"jarpack-cli/internal/config"
	"jarpack-cli/internal/issue"
	"jarpack-cli/internal/metadata"
	"jarpack-cli/internal/project"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	buildOutput       string
	buildClasspath    string
	buildThin         bool
	buildMainNS       string
	buildAOT          bool
	buildCompilePath  string
	buildPom          string
	buildExcludes     []string
	buildNoClashWarns bool

	buildCmd = &cobra.Command{
		Use:   "build",
		Short: "Assemble a jar from the classpath",
		Long: `Assemble a jar from the classpath.

The classpath comes from --cp, or from the CLASSPATH environment variable
when the flag is not given. Entries are processed in order: directories are
walked, library jars are unpacked (unless --thin), and colliding paths are
resolved content-aware.

Settings may also come from a jarpack.toml in the working directory;
flags win over the project file, which wins over the user config.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd)
		},
	}
)

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output jar path (required unless set in jarpack.toml)")
	buildCmd.Flags().StringVar(&buildClasspath, "cp", "", "classpath (defaults to the CLASSPATH environment variable)")
	buildCmd.Flags().BoolVar(&buildThin, "thin", false, "skip library archives on the classpath")
	buildCmd.Flags().StringVar(&buildMainNS, "main", "", "main namespace for the Main-Class manifest attribute")
	buildCmd.Flags().BoolVar(&buildAOT, "aot", false, "ahead-of-time compile the main namespace before assembling")
	buildCmd.Flags().StringVar(&buildCompilePath, "compile-path", "classes", "directory for AOT class files")
	buildCmd.Flags().StringVar(&buildPom, "pom", "", "Maven descriptor to embed under META-INF/maven/")
	buildCmd.Flags().StringArrayVar(&buildExcludes, "exclude", nil, "extra exclusion regex (repeatable)")
	buildCmd.Flags().BoolVar(&buildNoClashWarns, "no-clash-warnings", false, "silence per-path collision warnings")
}

// buildPlan is the fully merged set of build inputs: flags over project
// file over user config.
type buildPlan struct {
	output      string
	entries     []string
	mode        assembly.Mode
	mainNS      string
	aot         bool
	compilePath string
	pom         string
	excludes    []string
	quietClash  bool
}

func runBuild(cmd *cobra.Command) error {
	cfg := loadedConfig
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	proj, err := project.Load(".")
	if err != nil {
		return issue.WrapWithOperation(err, "load project file")
	}

	plan, err := resolveBuildPlan(cmd, cfg, proj)
	if err != nil {
		return err
	}

	logger := newBuildLogger()

	if plan.aot {
		if err := aot.Compile(cmd.Context(), logger, plan.entries, plan.mainNS, plan.compilePath); err != nil {
			rendered, rerr := issue.Get(issue.AotCompileFailedId).Render(issueStyle(cfg))
			if rerr == nil {
				fmt.Fprint(os.Stderr, rendered)
			}
			return err
		}
		plan.entries = append([]string{plan.compilePath}, plan.entries...)
	}

	opts := assembly.Options{
		Dest:                  plan.output,
		Mode:                  plan.mode,
		SuppressClashWarnings: plan.quietClash,
		ExcludePatterns:       plan.excludes,
		Logger:                logger,
	}

	res, err := assembly.Assemble(plan.entries, opts, metadata.Source(plan.pom, plan.mainNS, Version))
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("assemble jar").
			WithResource(plan.output).
			WithSuggestion("Check the classpath entries exist and are readable").
			WithSuggestion("Run with --verbose for per-entry detail").
			Wrap(err).
			BuildError()
	}

	printBuildSummary(res)
	return nil
}

// resolveBuildPlan merges flags, jarpack.toml, and the user config into one
// plan. Flags that were not set on the command line fall back to the
// project file, then to the config.
func resolveBuildPlan(cmd *cobra.Command, cfg *config.Config, proj *project.Project) (*buildPlan, error) {
	plan := &buildPlan{
		output:      buildOutput,
		mainNS:      buildMainNS,
		aot:         buildAOT,
		compilePath: buildCompilePath,
		pom:         buildPom,
	}

	if plan.output == "" {
		plan.output = proj.Build.Output
	}
	if plan.output == "" {
		return nil, issue.NewErrorContext().
			WithOperation("resolve output path").
			WithSuggestion("Pass -o <path> or set build.output in jarpack.toml").
			Wrap(fmt.Errorf("no output jar path")).
			BuildError()
	}
	// Bare file names land in the configured output directory.
	if filepath.Dir(plan.output) == "." && cfg.OutputDir != "" {
		plan.output = filepath.Join(cfg.OutputDir, plan.output)
	}

	if plan.mainNS == "" {
		plan.mainNS = proj.Build.MainNamespace
	}
	if !cmd.Flags().Changed("aot") {
		plan.aot = proj.Build.AOT
	}
	if !cmd.Flags().Changed("compile-path") && proj.Build.CompilePath != "" {
		plan.compilePath = proj.Build.CompilePath
	}
	if plan.pom == "" {
		plan.pom = proj.Build.Pom
	}

	thin := buildThin
	if !cmd.Flags().Changed("thin") {
		thin = proj.Build.Thin || cfg.Mode == config.BuildModeThin
	}
	if thin {
		plan.mode = assembly.ModeThin
	} else {
		plan.mode = assembly.ModeFull
	}
	if thin && plan.mainNS != "" {
		return nil, issue.NewErrorContext().
			WithOperation("resolve build mode").
			WithSuggestion("Drop --main, or build a full jar").
			Wrap(fmt.Errorf("a thin jar has no bundled runtime to launch a main namespace")).
			BuildError()
	}
	if plan.aot && plan.mainNS == "" {
		return nil, issue.NewErrorContext().
			WithOperation("resolve build mode").
			WithSuggestion("Pass --main <namespace> alongside --aot").
			Wrap(fmt.Errorf("aot compilation requires a main namespace")).
			BuildError()
	}

	cp := buildClasspath
	if cp == "" {
		cp = os.Getenv("CLASSPATH")
	}
	plan.entries = classpath.Split(cp)
	if len(plan.entries) == 0 {
		rendered, rerr := issue.Get(issue.ClasspathEmptyId).Render(issueStyle(cfg))
		if rerr == nil {
			fmt.Fprint(os.Stderr, rendered)
		}
		return nil, fmt.Errorf("empty classpath: pass --cp or set the CLASSPATH environment variable")
	}

	plan.excludes = append(append([]string{}, proj.Build.Excludes...), buildExcludes...)
	plan.quietClash = buildNoClashWarns || cfg.SuppressClashWarnings

	return plan, nil
}

// issueStyle maps the configured color scheme to a glamour style name.
// Glamour has no "auto" style, so auto falls back to dark.
func issueStyle(cfg *config.Config) string {
	if cfg.UI.ColorScheme == config.ColorSchemeLight {
		return "light"
	}
	return "dark"
}

func newBuildLogger() *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: false,
	})
}

func printBuildSummary(res *assembly.Result) {
	var b strings.Builder
	b.WriteString(SuccessStyle.Render("✓"))
	b.WriteString(" Built ")
	b.WriteString(PathStyle.Render(res.Dest))
	if res.MultiRelease {
		b.WriteString(SubtitleStyle.Render(" (multi-release)"))
	}
	fmt.Println(b.String())

	if res.ErrorCount > 0 {
		fmt.Println(WarningStyle.Render(fmt.Sprintf("  completed with %d entry error(s); see warnings above", res.ErrorCount)))
	}
}
