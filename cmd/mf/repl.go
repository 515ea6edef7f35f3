package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ashn-dot-dev/mellifera/ast"
	"github.com/ashn-dot-dev/mellifera/eval"
	"github.com/ashn-dot-dev/mellifera/parser"
	"github.com/ashn-dot-dev/mellifera/value"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

var promptColors = map[string]*color.Color{
	"red":     color.New(color.FgRed),
	"green":   color.New(color.FgGreen),
	"yellow":  color.New(color.FgYellow),
	"blue":    color.New(color.FgBlue),
	"magenta": color.New(color.FgMagenta),
	"cyan":    color.New(color.FgCyan),
	"white":   color.New(color.FgWhite),
}

// runRepl starts an interactive session, in the structural style of
// akashmaji946-go-mix/repl.Repl.Start: a banner, a chzyer/readline
// loop with persistent history, and per-line parse-then-evaluate with
// colored result/error reporting. Unlike file mode, a caught top-level
// Error is printed and the loop continues rather than exiting.
func runRepl() {
	home := melliferaHome()
	cfg := loadConfig(home)

	prompt := promptColors[cfg.PromptColor]
	if prompt == nil {
		prompt = promptColors["cyan"]
	}

	e := newEvaluator(append(searchPathFromEnv(), cfg.SearchPath...))
	e.Base.Let("module", emptyModule())
	e.Base.Let("argv", value.NewVector(nil))

	cyanColor.Println("Mellifera " + version)
	cyanColor.Println("Type .exit or press Ctrl+D to quit.")

	historyFile := filepath.Join(home, ".mellifera-history")
	rl, err := readline.NewEx(&readline.Config{
		Prompt:       prompt.Sprint("mf> "),
		HistoryFile:  historyFile,
		HistoryLimit: cfg.HistorySize,
	})
	if err != nil {
		redColor.Fprintf(os.Stderr, "[REPL ERROR] %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			cyanColor.Println("Good bye!")
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			cyanColor.Println("Good bye!")
			return
		}
		evalLine(e, line)
	}
}

// evalLine parses one line of input and runs it against e.Base, which
// persists bindings across lines the way a REPL must. A lone
// expression statement echoes its result in yellow, matching the
// teacher's REPL convention of showing what was typed evaluates to; a
// top-level Error is reported in red and does not end the session.
func evalLine(e *eval.Evaluator, line string) {
	p := parser.New("<repl>", line)
	stmts, err := p.ParseProgram()
	if err != nil {
		for _, perr := range p.Errors {
			redColor.Fprintf(os.Stderr, "%v\n", perr)
		}
		return
	}

	if len(stmts) == 1 {
		if exprStmt, ok := stmts[0].(*ast.ExprStmt); ok {
			result := e.Eval(exprStmt.X, e.Base)
			if errv, ok := result.(value.Error); ok {
				printError(os.Stderr, errv)
				return
			}
			yellowColor.Println(value.Inspect(result))
			return
		}
	}

	if sig := e.Program(stmts); sig != nil {
		if errv, ok := sig.(value.Error); ok {
			printError(os.Stderr, errv)
		}
	}
}

func emptyModule() value.Value {
	m := value.NewMap()
	m.Set(value.String{Value: "path"}, value.String{Value: ""})
	m.Set(value.String{Value: "file"}, value.String{Value: ""})
	m.Set(value.String{Value: "directory"}, value.String{Value: "."})
	return m
}
