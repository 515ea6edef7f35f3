package bootstrap

import (
	"embed"
	"fmt"

	"github.com/ashn-dot-dev/mellifera/env"
	"github.com/ashn-dot-dev/mellifera/eval"
	"github.com/ashn-dot-dev/mellifera/parser"
	"github.com/ashn-dot-dev/mellifera/value"
)

//go:embed source/*.mf
var sourceFS embed.FS

// uninitialized is the sentinel a not-yet-compiled source-defined
// metamap slot holds during phase 1 of bootstrap (spec §4.7 "two-phase
// initialization"). Calling it is always a bootstrap bug, never a
// script-reachable error.
func uninitialized(name string) value.Builtin {
	return value.Builtin{Name: name, Fn: func(args []value.Value) value.Value {
		return errf("called explicitly-uninitialized builtin %q", name)
	}}
}

// Setup assembles the base environment: host-implemented metamap
// methods installed directly in the fixed order spec §4.7 specifies
// (Function, Boolean, Number, String, Regexp, Vector, Map, Set,
// Reference), followed by the source-defined builtins evaluated in
// dependency order against the resulting environment. Returns a ready
// Evaluator whose Base a script can run against.
func Setup() (*eval.Evaluator, error) {
	base := env.New("base")
	e := eval.New(base)

	value.SetTypeMetamap(value.FunctionKind, value.NewMetamap("function", functionMethods()))
	value.SetTypeMetamap(value.BooleanKind, value.NewMetamap("boolean", booleanMethods()))
	value.SetTypeMetamap(value.NumberKind, value.NewMetamap("number", numberMethods()))
	value.SetTypeMetamap(value.StringKind, value.NewMetamap("string", stringMethods()))
	value.SetTypeMetamap(value.RegexpKind, value.NewMetamap("regexp", regexpMethods()))

	vectorEntries := vectorMethods()
	vectorEntries["sorted"] = uninitialized("vector::sorted")
	vectorEntries["iterator"] = uninitialized("vector::iterator")
	value.SetTypeMetamap(value.VectorKind, value.NewMetamap("vector", vectorEntries))

	value.SetTypeMetamap(value.MapKind, value.NewMetamap("map", mapMethods()))
	value.SetTypeMetamap(value.SetKind, value.NewMetamap("set", setMethods()))
	value.SetTypeMetamap(value.ReferenceKind, value.NewMetamap("reference", referenceMethods()))

	for name, v := range hostBuiltins() {
		base.Let(name, v)
	}
	base.Let("ty", tyNamespace())
	base.Let("re", regexpNamespace(e))

	base.Let("boolean", value.NewMetamap("boolean", booleanMethods()))
	base.Let("number", value.NewMetamap("number", numberMethods()))
	base.Let("string", value.NewMetamap("string", stringMethods()))
	base.Let("regexp", value.NewMetamap("regexp", regexpMethods()))
	base.Let("vector", value.NewMetamap("vector", vectorEntries))
	base.Let("reference", value.NewMetamap("reference", referenceMethods()))

	iteratorVal, err := runSnippet(e, "source/iterator.mf")
	if err != nil {
		return nil, err
	}
	base.Let("iterator", iteratorVal)

	extendsVal, err := runSnippet(e, "source/extends.mf")
	if err != nil {
		return nil, err
	}
	base.Let("extends", extendsVal)

	rangeVal, err := runSnippet(e, "source/range.mf")
	if err != nil {
		return nil, err
	}
	base.Let("range", rangeVal)

	sortedVal, err := runSnippet(e, "source/sorted.mf")
	if err != nil {
		return nil, err
	}
	vectorEntries["sorted"] = sortedVal

	iterFactory, err := runSnippet(e, "source/vector_iterator.mf")
	if err != nil {
		return nil, err
	}
	vectorEntries["iterator"] = iterFactory
	vectorMeta := value.NewMetamap("vector", vectorEntries)
	value.SetTypeMetamap(value.VectorKind, vectorMeta)
	base.Let("vector", vectorMeta)

	algebraVal, err := runSnippet(e, "source/algebra.mf")
	if err != nil {
		return nil, err
	}
	algebra, ok := algebraVal.(value.Map)
	if !ok {
		return nil, fmt.Errorf("bootstrap/source/algebra.mf: expected a map result, found %s", algebraVal.Kind())
	}
	mapNS, _ := algebra.Get(value.String{Value: "map"})
	setNS, _ := algebra.Get(value.String{Value: "set"})
	base.Let("map", mapNS)
	base.Let("set", setNS)

	miscVal, err := runSnippet(e, "source/misc.mf")
	if err != nil {
		return nil, err
	}
	misc, ok := miscVal.(value.Map)
	if !ok {
		return nil, fmt.Errorf("bootstrap/source/misc.mf: expected a map result, found %s", miscVal.Kind())
	}
	for _, name := range []string{"assert", "min", "max", "math"} {
		v, ok := misc.Get(value.String{Value: name})
		if !ok {
			return nil, fmt.Errorf("bootstrap/source/misc.mf: missing %q", name)
		}
		base.Let(name, v)
	}

	base.Let("NaN", value.Number{Value: nan()})
	base.Let("Inf", value.Number{Value: inf()})

	return e, nil
}

// runSnippet parses and evaluates one embedded bootstrap source file
// in a scope chained from e.Base, returning the value its trailing
// `return` statement produces. Run in a child scope (not e.Base
// itself) so each snippet's private helper lets don't leak into the
// base environment — only the names Setup explicitly re-binds survive.
func runSnippet(e *eval.Evaluator, path string) (value.Value, error) {
	src, err := sourceFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: reading %s: %w", path, err)
	}
	p := parser.New(path, string(src))
	stmts, err := p.ParseProgram()
	if err != nil {
		return nil, fmt.Errorf("bootstrap: parsing %s: %v", path, p.Errors)
	}
	scope := env.NewChild(e.Base, "bootstrap:"+path)
	for _, stmt := range stmts {
		sig := e.EvalStmt(stmt, scope)
		if sig == nil {
			continue
		}
		if rv, ok := sig.(value.ReturnValue); ok {
			return rv.Value, nil
		}
		if errv, ok := sig.(value.Error); ok {
			return nil, fmt.Errorf("bootstrap: evaluating %s: %s", path, errv.String())
		}
		return nil, fmt.Errorf("bootstrap: %s produced unexpected control-flow signal %s", path, sig.String())
	}
	return nil, fmt.Errorf("bootstrap: %s did not end with a return statement", path)
}

func nan() float64 { var z float64; return z / z }
func inf() float64 { var z float64; return 1 / z }
