package main

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/ashn-dot-dev/mellifera/env"
	"github.com/ashn-dot-dev/mellifera/eval"
	"github.com/ashn-dot-dev/mellifera/parser"
	"github.com/ashn-dot-dev/mellifera/value"
)

// installImport binds the `import` builtin (spec §6 "Import
// resolution"), grounded on original_source/mf.py's builtin_import:
// search the importing module's own directory first, then each root in
// searchPath, trying `target` as a file and, if it names a directory,
// that directory's `lib.mf` by convention. The module-info map is
// swapped to the resolved path for the evaluation and restored
// afterward regardless of outcome.
func installImport(e *eval.Evaluator, searchPath []string) {
	e.Base.Let("import", value.Builtin{Name: "import", Fn: func(args []value.Value) value.Value {
		if len(args) != 1 {
			return value.Error{Payload: value.String{Value: "import expects 1 argument(s), got " + strconv.Itoa(len(args))}}
		}
		target, ok := args[0].(value.String)
		if !ok {
			return value.Error{Payload: value.String{Value: "import expects a string, found " + string(args[0].Kind())}}
		}

		savedModule, _ := e.Base.Get("module")
		defer func() {
			if savedModule != nil {
				e.Base.Let("module", savedModule)
			}
		}()

		var currentDir string
		if m, ok := savedModule.(value.Map); ok {
			if d, ok := m.Get(value.String{Value: "directory"}); ok {
				if s, ok := d.(value.String); ok {
					currentDir = s.Value
				}
			}
		}

		roots := append([]string{currentDir}, searchPath...)
		for _, root := range roots {
			candidate := filepath.Join(root, target.Value)
			if info, err := os.Stat(candidate); err == nil && info.IsDir() {
				candidate = filepath.Join(candidate, "lib.mf")
			}
			source, err := os.ReadFile(candidate)
			if err != nil {
				continue
			}
			abs, err := filepath.Abs(candidate)
			if err != nil {
				abs = candidate
			}
			m := value.NewMap()
			m.Set(value.String{Value: "path"}, value.String{Value: abs})
			m.Set(value.String{Value: "file"}, value.String{Value: filepath.Base(abs)})
			m.Set(value.String{Value: "directory"}, value.String{Value: filepath.Dir(abs)})
			e.Base.Let("module", m)
			return evalModule(e, candidate, string(source))
		}
		return value.Error{Payload: value.String{Value: "module " + target.Value + " not found"}}
	}})
}

// evalModule parses and evaluates src as a fresh module, in a child
// environment of e.Base so it sees every bootstrap name but gets its
// own top-level bindings (spec EXPANSION 5a). A module that never hits
// a top-level `return` yields Null, matching a script run as a program
// rather than a bootstrap snippet that must produce one.
func evalModule(e *eval.Evaluator, path, src string) value.Value {
	p := parser.New(path, src)
	stmts, err := p.ParseProgram()
	if err != nil {
		return value.Error{Payload: value.String{Value: "parse error in " + path + ": " + err.Error()}}
	}
	scope := env.NewChild(e.Base, "import:"+path)
	for _, stmt := range stmts {
		sig := e.EvalStmt(stmt, scope)
		if sig == nil {
			continue
		}
		switch v := sig.(type) {
		case value.ReturnValue:
			return v.Value
		case value.Error:
			return v
		default:
			return value.Error{Payload: value.String{Value: v.String() + " outside of loop in " + path}}
		}
	}
	return value.Null{}
}
