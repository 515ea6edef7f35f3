// Command mf is the Mellifera interpreter's command-line driver:
// file-mode execution and an interactive REPL, in the two-mode shape of
// akashmaji946-go-mix's main package (minus its TCP "server" mode,
// which has no place in a language runtime with no networking
// surface). Grounded on that package's --help/--version dispatch,
// os.ReadFile file loading, and colored stderr/stdout reporting via
// fatih/color.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ashn-dot-dev/mellifera/bootstrap"
	"github.com/ashn-dot-dev/mellifera/eval"
	"github.com/ashn-dot-dev/mellifera/parser"
	"github.com/ashn-dot-dev/mellifera/value"
	"github.com/fatih/color"
)

const (
	version = "v0.1.0"
	license = "MIT"
)

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

func main() {
	if len(os.Args) > 1 {
		switch arg := os.Args[1]; arg {
		case "--help", "-h":
			showHelp()
			os.Exit(0)
		case "--version", "-v":
			showVersion()
			os.Exit(0)
		default:
			runFile(arg, os.Args[2:])
		}
		return
	}
	runRepl()
}

func showHelp() {
	cyanColor.Println("mf - the Mellifera interpreter")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  mf                     Start an interactive REPL")
	yellowColor.Println("  mf FILE [ARGV...]      Evaluate FILE, binding argv to [FILE, ARGV...]")
	yellowColor.Println("  mf --help              Display this help message")
	yellowColor.Println("  mf --version           Display version information")
	cyanColor.Println("")
	cyanColor.Println("ENVIRONMENT:")
	yellowColor.Println("  MELLIFERA_SEARCH_PATH  Colon-separated additional import search roots")
	yellowColor.Println("  MELLIFERA_HOME         Directory for .mellifera-history and .mellifera.yaml")
}

func showVersion() {
	cyanColor.Println("mf - the Mellifera interpreter")
	cyanColor.Printf("Version: %s\n", version)
	cyanColor.Printf("License: %s\n", license)
}

// newEvaluator assembles a ready-to-run Evaluator: bootstrap's type
// metamaps and source-defined builtins, plus the driver-level `import`
// builtin and module-info map that only make sense with a filesystem
// and a set of search roots in hand (spec §6 "Import resolution").
func newEvaluator(searchPath []string) *eval.Evaluator {
	e, err := bootstrap.Setup()
	if err != nil {
		redColor.Fprintf(os.Stderr, "[BOOTSTRAP ERROR] %v\n", err)
		os.Exit(1)
	}
	installImport(e, searchPath)
	return e
}

// setModule populates the module-info map (spec §6: "path", "file",
// "directory") for path, and binds argv to a Vector starting with path
// itself followed by extraArgs.
func setModule(e *eval.Evaluator, path string, extraArgs []string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	m := value.NewMap()
	m.Set(value.String{Value: "path"}, value.String{Value: abs})
	m.Set(value.String{Value: "file"}, value.String{Value: filepath.Base(abs)})
	m.Set(value.String{Value: "directory"}, value.String{Value: filepath.Dir(abs)})
	e.Base.Let("module", m)

	argv := make([]value.Value, 0, len(extraArgs)+1)
	argv = append(argv, value.String{Value: path})
	for _, a := range extraArgs {
		argv = append(argv, value.String{Value: a})
	}
	e.Base.Let("argv", value.NewVector(argv))
}

func runFile(path string, extraArgs []string) {
	source, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read %q: %v\n", path, err)
		os.Exit(1)
	}

	e := newEvaluator(searchPathFromEnv())
	setModule(e, path, extraArgs)

	p := parser.New(path, string(source))
	stmts, err := p.ParseProgram()
	if err != nil {
		for _, perr := range p.Errors {
			redColor.Fprintf(os.Stderr, "[PARSE ERROR] %v\n", perr)
		}
		os.Exit(1)
	}

	result := e.Program(stmts)
	if result == nil {
		return
	}
	if errv, ok := result.(value.Error); ok {
		printError(os.Stderr, errv)
		os.Exit(1)
	}
}

func printError(w *os.File, errv value.Error) {
	loc := errv.Location
	if loc == "" {
		loc = "<unknown>"
	}
	redColor.Fprintf(w, "%s: %s\n", loc, value.Display(errv.Payload))
	for i := len(errv.Trace) - 1; i >= 0; i-- {
		t := errv.Trace[i]
		fmt.Fprintf(w, "  ...within %s called from %s\n", t.Callee, t.CallSite)
	}
}

func searchPathFromEnv() []string {
	return splitSearchPath(os.Getenv("MELLIFERA_SEARCH_PATH"))
}

func splitSearchPath(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

func melliferaHome() string {
	if home := os.Getenv("MELLIFERA_HOME"); home != "" {
		return home
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
