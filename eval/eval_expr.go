package eval

import (
	"math"
	"strconv"

	"github.com/ashn-dot-dev/mellifera/ast"
	"github.com/ashn-dot-dev/mellifera/env"
	"github.com/ashn-dot-dev/mellifera/value"
)

func (e *Evaluator) evalVectorLit(node *ast.VectorLit, scope *env.Environment) value.Value {
	items := make([]value.Value, 0, len(node.Elements))
	for _, el := range node.Elements {
		v := e.Eval(el, scope)
		if IsError(v) {
			return v
		}
		items = append(items, value.Bind(v))
	}
	return value.NewVector(items)
}

func (e *Evaluator) evalMapLit(node *ast.MapLit, scope *env.Environment) value.Value {
	m := value.NewMap()
	for _, entry := range node.Entries {
		k := e.Eval(entry.Key, scope)
		if IsError(k) {
			return k
		}
		v := e.Eval(entry.Value, scope)
		if IsError(v) {
			return v
		}
		m.Set(value.Bind(k), value.Bind(v))
	}
	return m
}

func (e *Evaluator) evalSetLit(node *ast.SetLit, scope *env.Environment) value.Value {
	s := value.NewSet(nil)
	for _, el := range node.Elements {
		v := e.Eval(el, scope)
		if IsError(v) {
			return v
		}
		s.Add(value.Bind(v))
	}
	return s
}

// evalTemplate evaluates a `$"…"` literal's interpolations (spec §4.5
// "Templates"): each sub-expression runs in its own child scope, and a
// result carrying a callable `into_string` metamap entry is rendered
// through it rather than the universal stringifier.
func (e *Evaluator) evalTemplate(node *ast.TemplateLit, scope *env.Environment) value.Value {
	var sb []byte
	for _, chunk := range node.Chunks {
		if !chunk.IsExpr {
			sb = append(sb, chunk.Text...)
			continue
		}
		child := env.NewChild(scope, "template")
		v := e.Eval(chunk.Expr, child)
		if IsError(v) {
			return v
		}
		errv, text := e.stringifyForTemplate(node.Pos(), v)
		if IsError(errv) {
			return errv
		}
		sb = append(sb, text...)
	}
	return value.String{Value: string(sb)}
}

func (e *Evaluator) stringifyForTemplate(pos ast.Pos, v value.Value) (value.Value, string) {
	if hook, ok := value.LookupMeta(v, value.MetaIntoString); ok && value.IsCallable(hook) {
		result := e.invoke(pos, hook, []value.Value{value.NewReference(value.NewBoxCell(v))}, "into_string")
		if IsError(result) {
			return result, ""
		}
		s, ok := result.(value.String)
		if !ok {
			return newErrorAt(pos, "into_string must return a string"), ""
		}
		return nil, s.Value
	}
	if s, ok := v.(value.String); ok {
		return nil, s.Value
	}
	return nil, value.Display(v)
}

func (e *Evaluator) evalUnary(node *ast.UnaryExpr, scope *env.Environment) value.Value {
	v := e.Eval(node.Operand, scope)
	if IsError(v) {
		return v
	}
	switch node.Op {
	case "-":
		n, ok := v.(value.Number)
		if !ok {
			return newErrorAt(node.Pos(), "unary - requires a number, found %s", v.Kind())
		}
		return value.Number{Value: -n.Value}
	case "+":
		n, ok := v.(value.Number)
		if !ok {
			return newErrorAt(node.Pos(), "unary + requires a number, found %s", v.Kind())
		}
		return value.Number{Value: n.Value}
	case "not":
		b, ok := v.(value.Boolean)
		if !ok {
			return newErrorAt(node.Pos(), "not requires a boolean, found %s", v.Kind())
		}
		return value.Boolean{Value: !b.Value}
	default:
		return newErrorAt(node.Pos(), "unknown unary operator %q", node.Op)
	}
}

func (e *Evaluator) evalBinary(node *ast.BinaryExpr, scope *env.Environment) value.Value {
	left := e.Eval(node.Left, scope)
	if IsError(left) {
		return left
	}
	right := e.Eval(node.Right, scope)
	if IsError(right) {
		return right
	}
	switch node.Op {
	case "+":
		return evalAdd(node.Pos(), left, right)
	case "-", "*", "/", "%":
		return evalArith(node.Pos(), node.Op, left, right)
	case "<", "<=", ">", ">=":
		return evalCompare(node.Pos(), node.Op, left, right)
	case "==":
		return value.Boolean{Value: value.Equal(left, right)}
	case "!=":
		return value.Boolean{Value: !value.Equal(left, right)}
	default:
		return newErrorAt(node.Pos(), "unknown binary operator %q", node.Op)
	}
}

// evalAdd implements `+`'s polymorphism (spec §4.5 "Arithmetic"):
// numeric add, string byte-concatenation, or vector concatenation.
func evalAdd(pos ast.Pos, left, right value.Value) value.Value {
	switch l := left.(type) {
	case value.Number:
		r, ok := right.(value.Number)
		if !ok {
			return newErrorAt(pos, "+ requires matching operand types, found number and %s", right.Kind())
		}
		return value.Number{Value: l.Value + r.Value}
	case value.String:
		r, ok := right.(value.String)
		if !ok {
			return newErrorAt(pos, "+ requires matching operand types, found string and %s", right.Kind())
		}
		return value.String{Value: l.Value + r.Value}
	case value.Vector:
		r, ok := right.(value.Vector)
		if !ok {
			return newErrorAt(pos, "+ requires matching operand types, found vector and %s", right.Kind())
		}
		return l.Concat(r)
	default:
		return newErrorAt(pos, "+ does not support %s operands", left.Kind())
	}
}

func evalArith(pos ast.Pos, op string, left, right value.Value) value.Value {
	l, ok := left.(value.Number)
	if !ok {
		return newErrorAt(pos, "%s requires numbers, found %s", op, left.Kind())
	}
	r, ok := right.(value.Number)
	if !ok {
		return newErrorAt(pos, "%s requires numbers, found %s", op, right.Kind())
	}
	switch op {
	case "-":
		return value.Number{Value: l.Value - r.Value}
	case "*":
		return value.Number{Value: l.Value * r.Value}
	case "/":
		if r.Value == 0 {
			return newErrorAt(pos, "division by zero")
		}
		return value.Number{Value: l.Value / r.Value}
	case "%":
		if r.Value == 0 {
			return newErrorAt(pos, "remainder by zero")
		}
		// math.Mod already follows the dividend's sign, matching C fmod
		// (spec §4.5: "% follows C's fmod sign convention").
		return value.Number{Value: math.Mod(l.Value, r.Value)}
	default:
		return newErrorAt(pos, "unknown arithmetic operator %q", op)
	}
}

func evalCompare(pos ast.Pos, op string, left, right value.Value) value.Value {
	switch l := left.(type) {
	case value.Number:
		r, ok := right.(value.Number)
		if !ok {
			return newErrorAt(pos, "%s requires matching operand types, found number and %s", op, right.Kind())
		}
		return value.Boolean{Value: compareFloat(op, l.Value, r.Value)}
	case value.String:
		r, ok := right.(value.String)
		if !ok {
			return newErrorAt(pos, "%s requires matching operand types, found string and %s", op, right.Kind())
		}
		return value.Boolean{Value: compareString(op, l.Value, r.Value)}
	default:
		return newErrorAt(pos, "%s requires numbers or strings, found %s", op, left.Kind())
	}
}

func compareFloat(op string, a, b float64) bool {
	switch op {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case ">=":
		return a >= b
	}
	return false
}

func compareString(op string, a, b string) bool {
	switch op {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case ">=":
		return a >= b
	}
	return false
}

func (e *Evaluator) evalLogical(node *ast.LogicalExpr, scope *env.Environment) value.Value {
	left := e.Eval(node.Left, scope)
	if IsError(left) {
		return left
	}
	lb, ok := left.(value.Boolean)
	if !ok {
		return newErrorAt(node.Pos(), "%s requires booleans, found %s", node.Op, left.Kind())
	}
	if node.Op == "and" && !lb.Value {
		return lb
	}
	if node.Op == "or" && lb.Value {
		return lb
	}
	right := e.Eval(node.Right, scope)
	if IsError(right) {
		return right
	}
	if _, ok := right.(value.Boolean); !ok {
		return newErrorAt(node.Pos(), "%s requires booleans, found %s", node.Op, right.Kind())
	}
	return right
}

// evalMatch implements `=~`/`!~` (spec §4.5 "Regex"), updating the
// evaluator's last-match slot (e.LastMatch) on every evaluation, matched or
// not (the teacher's evaluator serializes execution, so no locking is
// needed — see spec §5).
func (e *Evaluator) evalMatch(node *ast.MatchExpr, scope *env.Environment) value.Value {
	left := e.Eval(node.Left, scope)
	if IsError(left) {
		return left
	}
	right := e.Eval(node.Right, scope)
	if IsError(right) {
		return right
	}
	s, ok := left.(value.String)
	if !ok {
		return newErrorAt(node.Pos(), "=~ requires a string left-hand side, found %s", left.Kind())
	}
	re, ok := right.(value.Regexp)
	if !ok {
		return newErrorAt(node.Pos(), "=~ requires a regexp right-hand side, found %s", right.Kind())
	}
	groups := re.Compiled.FindStringSubmatch(s.Value)
	e.LastMatch = groups
	matched := groups != nil
	if node.Negate {
		matched = !matched
	}
	return value.Boolean{Value: matched}
}

func (e *Evaluator) evalIndex(node *ast.IndexExpr, scope *env.Environment) value.Value {
	recv := e.Eval(node.Receiver, scope)
	if IsError(recv) {
		return recv
	}
	idx := e.Eval(node.Index, scope)
	if IsError(idx) {
		return idx
	}
	return indexValue(node.Pos(), recv, idx)
}

func indexValue(pos ast.Pos, recv, idx value.Value) value.Value {
	switch r := recv.(type) {
	case value.String:
		i, err := vectorIndex(pos, idx, len(r.Value))
		if IsError(err) {
			return err
		}
		return value.String{Value: r.Value[i : i+1]}
	case value.Vector:
		i, err := vectorIndex(pos, idx, r.Len())
		if IsError(err) {
			return err
		}
		v, _ := r.Get(i)
		return v
	case value.Map:
		v, ok := r.Get(idx)
		if !ok {
			return newErrorAt(pos, "key %s not found in map", value.Inspect(idx))
		}
		return v
	default:
		return newErrorAt(pos, "%s is not indexable", recv.Kind())
	}
}

// vectorIndex validates idx as a non-negative integral Number in range
// [0, length), per spec §4.5 "Access": "Vector requires integer
// non-negative Number index."
func vectorIndex(pos ast.Pos, idx value.Value, length int) (int, value.Value) {
	n, ok := idx.(value.Number)
	if !ok {
		return 0, newErrorAt(pos, "vector index must be a number, found %s", idx.Kind())
	}
	if n.Value != math.Trunc(n.Value) || n.Value < 0 {
		return 0, newErrorAt(pos, "vector index must be a non-negative integer, found %s", strconv.FormatFloat(n.Value, 'g', -1, 64))
	}
	i := int(n.Value)
	if i >= length {
		return 0, newErrorAt(pos, "vector index %d out of range (length %d)", i, length)
	}
	return i, nil
}

// evalDot implements `x.f`'s fallback chain (spec §4.5 "Access"):
// container access, then x's metamap, then (if x is a Reference) the
// referent's storage, then the referent's metamap.
func (e *Evaluator) evalDot(node *ast.DotExpr, scope *env.Environment) value.Value {
	recv := e.Eval(node.Receiver, scope)
	if IsError(recv) {
		return recv
	}
	if v, ok := dotAccess(recv, node.Field); ok {
		return v
	}
	return newErrorAt(node.Pos(), "no field %q on %s", node.Field, recv.Kind())
}

// dotAccess performs the field-resolution chain without raising an
// error, so evalCall can reuse it to resolve a method before deciding
// whether to report "no field" or "not callable".
func dotAccess(recv value.Value, field string) (value.Value, bool) {
	if m, ok := recv.(value.Map); ok {
		if v, ok := m.Get(value.String{Value: field}); ok {
			return v, true
		}
	}
	if v, ok := value.LookupMeta(recv, field); ok {
		return v, true
	}
	if ref, ok := recv.(value.Reference); ok {
		referent := ref.Cell.Get()
		if m, ok := referent.(value.Map); ok {
			if v, ok := m.Get(value.String{Value: field}); ok {
				return v, true
			}
		}
		if v, ok := value.LookupMeta(referent, field); ok {
			return v, true
		}
	}
	return nil, false
}

// evalScope implements `x::f`: map lookup only, no metamap fallback
// (spec §4.5 "Access").
func (e *Evaluator) evalScope(node *ast.ScopeExpr, scope *env.Environment) value.Value {
	recv := e.Eval(node.Receiver, scope)
	if IsError(recv) {
		return recv
	}
	m, ok := recv.(value.Map)
	if !ok {
		return newErrorAt(node.Pos(), ":: requires a map, found %s", recv.Kind())
	}
	v, ok := m.Get(value.String{Value: node.Field})
	if !ok {
		return newErrorAt(node.Pos(), "no field %q in map", node.Field)
	}
	return v
}

// evalRef implements `e.&` (spec §4.3/§4.5): a Reference aliasing the
// storage slot e denotes, if e is an lvalue-shaped expression, else a
// fresh box holding e's computed value.
func (e *Evaluator) evalRef(node *ast.RefExpr, scope *env.Environment) value.Value {
	cell, errv := e.cellFor(node.Operand, scope)
	if errv != nil {
		return errv
	}
	return value.NewReference(cell)
}

// derefForCell unwraps a Reference receiver one level so field/index
// access chained off a self-parameter (itself always a Reference per
// the method-call convention) resolves against the referent, mirroring
// dotAccess's own Reference fallback.
func derefForCell(v value.Value) value.Value {
	if r, ok := v.(value.Reference); ok {
		return r.Cell.Get()
	}
	return v
}

// cellFor resolves the storage cell an lvalue-shaped expression
// denotes, evaluating receivers along the way. Falls back to boxing a
// freshly computed value for anything else (spec: "e.& constructs a
// Reference aliasing the value produced by e").
func (e *Evaluator) cellFor(x ast.Expr, scope *env.Environment) (value.Cell, value.Value) {
	switch node := x.(type) {
	case *ast.Ident:
		c := scope.Cell(node.Name)
		if c == nil {
			return nil, newErrorAt(node.Pos(), "undefined name %q", node.Name)
		}
		return c, nil
	case *ast.IndexExpr:
		recv := e.Eval(node.Receiver, scope)
		if IsError(recv) {
			return nil, recv
		}
		recv = derefForCell(recv)
		idx := e.Eval(node.Index, scope)
		if IsError(idx) {
			return nil, idx
		}
		switch r := recv.(type) {
		case value.Vector:
			i, errv := vectorIndex(node.Pos(), idx, r.Len())
			if IsError(errv) {
				return nil, errv
			}
			return value.NewVectorCell(r, i), nil
		case value.Map:
			return value.NewMapCell(r, idx), nil
		default:
			return nil, newErrorAt(node.Pos(), "cannot take a reference into %s", recv.Kind())
		}
	case *ast.DotExpr:
		recv := e.Eval(node.Receiver, scope)
		if IsError(recv) {
			return nil, recv
		}
		recv = derefForCell(recv)
		m, ok := recv.(value.Map)
		if !ok {
			return nil, newErrorAt(node.Pos(), "cannot take a reference into %s", recv.Kind())
		}
		return value.NewMapCell(m, value.String{Value: node.Field}), nil
	case *ast.ScopeExpr:
		recv := e.Eval(node.Receiver, scope)
		if IsError(recv) {
			return nil, recv
		}
		recv = derefForCell(recv)
		m, ok := recv.(value.Map)
		if !ok {
			return nil, newErrorAt(node.Pos(), "cannot take a reference into %s", recv.Kind())
		}
		return value.NewMapCell(m, value.String{Value: node.Field}), nil
	default:
		v := e.Eval(x, scope)
		if IsError(v) {
			return nil, v
		}
		return value.NewBoxCell(v), nil
	}
}

func (e *Evaluator) evalDeref(node *ast.DerefExpr, scope *env.Environment) value.Value {
	v := e.Eval(node.Operand, scope)
	if IsError(v) {
		return v
	}
	ref, ok := v.(value.Reference)
	if !ok {
		return newErrorAt(node.Pos(), ".* requires a reference, found %s", v.Kind())
	}
	return ref.Cell.Get()
}

func (e *Evaluator) evalTypeOf(node *ast.TypeOfExpr, scope *env.Environment) value.Value {
	v := e.Eval(node.Operand, scope)
	if IsError(v) {
		return v
	}
	m, ok := v.(value.Map)
	if !ok {
		return newErrorAt(node.Pos(), "type requires a map, found %s", v.Kind())
	}
	return value.NewMetamap("", mapEntries(m))
}

func mapEntries(m value.Map) map[string]value.Value {
	out := make(map[string]value.Value)
	for _, item := range m.Entries() {
		if s, ok := item.Key.(value.String); ok {
			out[s.Value] = item.Val
		}
	}
	return out
}

// evalNew implements `new META EXPR`: evaluate EXPR, attach META as
// its metamap. META must itself be a metamap (spec §4.5 "Type
// construction": "Passing a plain non-metamap Map to new is an error").
func (e *Evaluator) evalNew(node *ast.NewExpr, scope *env.Environment) value.Value {
	metaV := e.Eval(node.Meta, scope)
	if IsError(metaV) {
		return metaV
	}
	meta, ok := metaV.(value.Map)
	if !ok || !meta.IsMetamap() {
		return newErrorAt(node.Pos(), "new requires a metamap, found %s", metaV.Kind())
	}
	v := e.Eval(node.Value, scope)
	if IsError(v) {
		return v
	}
	return v.WithMeta(&meta)
}
