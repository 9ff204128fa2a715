// Package main is the entry point for the templive templating tool.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/dshills/templive/internal/config"
	"github.com/dshills/templive/internal/document"
	"github.com/dshills/templive/internal/editor/lineedit"
	"github.com/dshills/templive/internal/frontend/terminal"
	"github.com/dshills/templive/internal/provider/luacomplete"
	"github.com/dshills/templive/internal/template/session"
)

// Version information (set via ldflags during build).
var version = "dev"

// Exit codes.
const (
	exitOK      = 0
	exitError   = 1
	exitAborted = 2
)

func main() {
	os.Exit(run())
}

// warnBuffer collects session warnings for printing once the terminal
// UI has shut down.
type warnBuffer struct {
	warnings []string
}

func (w *warnBuffer) Warn(msg string) { w.warnings = append(w.warnings, msg) }

func run() int {
	opts := parseFlags()
	path := flag.Arg(0)

	lines, trailingNewline, err := readLines(path)
	if err != nil {
		fail("reading %s: %v", path, err)
		return exitError
	}

	def, err := config.Load(opts.templatePath)
	if err != nil {
		fail("%v", err)
		return exitError
	}

	vars, closeProviders, err := buildVars(def)
	defer closeProviders()
	if err != nil {
		fail("%v", err)
		return exitError
	}

	doc := document.NewMemory(lines)
	region := session.Region{StartLine: 1, EndLine: doc.LineCount()}
	if opts.startLine > 0 {
		region.StartLine = opts.startLine
	}
	if opts.endLine > 0 {
		region.EndLine = opts.endLine
	}

	ui, err := terminal.New()
	if err != nil {
		fail("initializing terminal: %v", err)
		return exitError
	}
	ui.ShowDocument(lines, region.StartLine)

	warns := &warnBuffer{}
	outcome, err := session.RunTemplate(doc, ui, region, vars,
		session.WithPreview(ui), session.WithNotifier(warns))

	ui.Close()

	for _, w := range warns.warnings {
		color.Yellow("warning: %s", w)
	}

	if err != nil {
		fail("%v", err)
		return exitError
	}
	if outcome != session.Committed {
		color.Yellow("template aborted, %s unchanged", path)
		return exitAborted
	}

	if err := writeLines(opts.output(path), doc.All(), trailingNewline); err != nil {
		fail("writing result: %v", err)
		return exitError
	}
	return exitOK
}

// buildVars translates a template definition into session variables,
// creating Lua completion providers as needed. The returned closer
// releases every provider and is safe to call on the error path.
func buildVars(def *config.Definition) ([]session.Var, func(), error) {
	var providers []*luacomplete.Provider
	closeAll := func() {
		for _, p := range providers {
			p.Close()
		}
	}

	vars := make([]session.Var, 0, len(def.Variables))
	for i, v := range def.Variables {
		sv := session.Var{Name: v.Name, Default: v.Default}

		switch {
		case v.CompleteLua != "":
			p, err := luacomplete.New(v.CompleteLua)
			if err != nil {
				return nil, closeAll, fmt.Errorf("variable #%d (%s): %w", i+1, v.Name, err)
			}
			providers = append(providers, p)
			sv.Complete = p.Func()
		case len(v.Complete) > 0:
			sv.Complete = staticComplete(v.Complete)
		}

		vars = append(vars, sv)
	}
	return vars, closeAll, nil
}

// staticComplete serves a fixed option list, narrowed to entries with
// the typed stub as prefix.
func staticComplete(options []string) lineedit.CompleteFunc {
	return func(stub, line string, col int) ([]string, error) {
		var out []string
		for _, opt := range options {
			if strings.HasPrefix(opt, stub) {
				out = append(out, opt)
			}
		}
		return out, nil
	}
}

func readLines(path string) ([]string, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	text := string(data)
	trailing := strings.HasSuffix(text, "\n")
	if trailing {
		text = text[:len(text)-1]
	}
	return strings.Split(text, "\n"), trailing, nil
}

func writeLines(path string, lines []string, trailingNewline bool) error {
	text := strings.Join(lines, "\n")
	if trailingNewline {
		text += "\n"
	}
	return os.WriteFile(path, []byte(text), 0o644)
}

func fail(format string, args ...any) {
	color.New(color.FgRed).Fprintf(os.Stderr, "error: "+format+"\n", args...)
}

type options struct {
	templatePath string
	startLine    int
	endLine      int
	outputPath   string
}

// output returns the path results are written to: -o if given,
// otherwise the input file.
func (o options) output(input string) string {
	if o.outputPath != "" {
		return o.outputPath
	}
	return input
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.templatePath, "template", "", "Path to template definition (TOML)")
	flag.StringVar(&opts.templatePath, "t", "", "Path to template definition (shorthand)")
	flag.IntVar(&opts.startLine, "start", 0, "First line of the template region (default: whole file)")
	flag.IntVar(&opts.endLine, "end", 0, "Last line of the template region (default: whole file)")
	flag.StringVar(&opts.outputPath, "o", "", "Write the result here instead of back to the input file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "templive - live multi-point text templating\n\n")
		fmt.Fprintf(os.Stderr, "Usage: templive -t template.toml [options] file\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  templive -t func.toml main.go          Fill in a whole file\n")
		fmt.Fprintf(os.Stderr, "  templive -t func.toml -start 10 -end 20 main.go\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("templive %s\n", version)
		os.Exit(exitOK)
	}

	if opts.templatePath == "" || flag.NArg() != 1 {
		flag.Usage()
		os.Exit(exitError)
	}

	return opts
}
