// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	ClasspathEmptyId
	PomParseFailedId
	AotCompileFailedId
	JvmNotFoundId
	OutputWriteFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // project documentation links
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the jarpack configuration file.

## Configuration file locations:
- Linux: ~/.config/jarpack/config.cue
- macOS: ~/Library/Application Support/jarpack/config.cue
- Windows: %APPDATA%\jarpack\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ jarpack config init
~~~

- Check the configuration syntax
- Remove the config file to use defaults

## Example configuration:
~~~cue
output_dir: "target"
mode: "full"

ui: {
  color_scheme: "auto"
  verbose: false
}
~~~`,
	}

	classpathEmptyIssue = &Issue{
		id: ClasspathEmptyId,
		mdMsg: `
# No classpath!

jarpack needs a classpath to know what to put into the jar, and neither
the --cp flag nor the CLASSPATH environment variable produced any entries.

## Things you can try:
- Pass the classpath explicitly:
~~~
$ jarpack build --cp "src:resources:lib/clojure.jar" -o app.jar
~~~

- Or generate it from your build tool and export it:
~~~
$ CLASSPATH=$(clojure -Spath) jarpack build -o app.jar
~~~`,
	}

	pomParseFailedIssue = &Issue{
		id: PomParseFailedId,
		mdMsg: `
# Failed to read the project descriptor!

The pom.xml could not be parsed, or it does not declare a full project
identity.

## Required identity fields:
- **groupId** (may come from the parent declaration)
- **artifactId**
- **version** (may come from the parent declaration)

## Things you can try:
- Check the pom.xml is well-formed XML
- Declare the missing fields, or add a parent declaration that carries them
- Omit --pom to build a jar without Maven metadata`,
	}

	aotCompileFailedIssue = &Issue{
		id: AotCompileFailedId,
		mdMsg: `
# Ahead-of-time compilation failed!

The JVM was started but compiling the main namespace did not succeed.

## Common causes:
- The main namespace is not on the classpath
- A compile-time error in the namespace or its dependencies
- Clojure itself is missing from the classpath

## Things you can try:
- Check the compiler output above for the failing form
- Verify the namespace name matches its file path
- Run the compile form manually:
~~~
$ java -cp <classpath> clojure.main -e "(compile 'my-app.core)"
~~~`,
	}

	jvmNotFoundIssue = &Issue{
		id: JvmNotFoundId,
		mdMsg: `
# No JVM found!

Ahead-of-time compilation needs a java executable on your PATH.

## Things you can try:
- Install a JDK (Temurin, Zulu, or your distribution's openjdk package)
- Check that java is on your PATH:
~~~
$ java -version
~~~

- Or skip AOT compilation and build a source-only jar:
~~~
$ jarpack build -o app.jar
~~~`,
	}

	outputWriteFailedIssue = &Issue{
		id: OutputWriteFailedId,
		mdMsg: `
# Could not write the output jar!

The archive was assembled but could not be placed at the destination.

## Common causes:
- The destination directory is not writable
- The destination is on a different filesystem than expected
- Disk full

## Things you can try:
- Check permissions on the destination directory
- Choose a different output path with -o
- Free up disk space`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():  configLoadFailedIssue,
		classpathEmptyIssue.Id():    classpathEmptyIssue,
		pomParseFailedIssue.Id():    pomParseFailedIssue,
		aotCompileFailedIssue.Id():  aotCompileFailedIssue,
		jvmNotFoundIssue.Id():       jvmNotFoundIssue,
		outputWriteFailedIssue.Id(): outputWriteFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
