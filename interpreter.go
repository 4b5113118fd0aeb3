// interpreter.go — public surface of the crisp evaluator.
//
// OVERVIEW
// ========
// crisp evaluates a pre-parsed, JSON-encoded AST for a minimal Lisp subset:
// number literals, symbol references, and lists. A list is either the `if`
// special form or an ordinary application of a builtin function. There are
// no user-defined functions, no binding forms, and no mutation; the global
// environment is built once (see builtin_core.go) and is read-only during
// evaluation.
//
// This file holds the runtime value model, the environment, and the
// evaluator itself:
//
//   • Value — tagged union: number, boolean, builtin function, or the unit
//     "no value" result of a false `if` with no alternative.
//   • Env   — immutable name→Value table. No parent chain: this subset has
//     a single global scope and nothing that could shadow it.
//   • Eval  — plain depth-first recursive tree walk. No memoization, no
//     iteration limit; the input is a finite tree and the language has no
//     looping construct, so every evaluation terminates.
//
// All failures are *Error values (errors.go); the evaluator never panics on
// malformed programs. In particular a non-function in operator position is
// a typed error, not a crash. Because Env is immutable after construction,
// concurrent evaluations may share one environment freely.
//
// The AST node model and the wire decoder live in json.go; the printable
// form of a Value lives in printer.go.

package crisp

import (
	"fmt"
	"strconv"
)

// ---- value model ---------------------------------------------------------

// ValueTag enumerates the runtime kinds a Value may hold.
type ValueTag int

const (
	VTNone    ValueTag = iota // unit result of a false `if` with no alternative
	VTNum                     // float64
	VTBool                    // bool
	VTBuiltin                 // *Builtin
)

// Value is the universal runtime carrier. Tag determines which Go type Data
// holds (see ValueTag). Values are immutable and copied freely; no Value
// embeds another by reference.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// None is the singleton unit value (no payload).
var None = Value{Tag: VTNone}

// Primitive constructors.
func Num(f float64) Value { return Value{Tag: VTNum, Data: f} }
func Bool(b bool) Value   { return Value{Tag: VTBool, Data: b} }
func Fn(b *Builtin) Value { return Value{Tag: VTBuiltin, Data: b} }

// BuiltinImpl is the implementation signature of a native function. It
// receives already-evaluated operands and must not retain or mutate them.
type BuiltinImpl func(args []Value) (Value, error)

// Builtin names a native operation. Builtins are the only callable values
// in this subset; they enter programs solely via environment lookup.
type Builtin struct {
	Name string
	Fn   BuiltinImpl
}

// String renders a debug representation. This is not the printable form
// (see FormatValue); builtins in particular have no user-facing print form.
func (v Value) String() string {
	switch v.Tag {
	case VTNone:
		return "<no value>"
	case VTNum:
		return strconv.FormatFloat(v.Data.(float64), 'g', -1, 64)
	case VTBool:
		return fmt.Sprintf("%v", v.Data.(bool))
	case VTBuiltin:
		return fmt.Sprintf("#<builtin %s>", v.Data.(*Builtin).Name)
	default:
		return "<unknown>"
	}
}

// ---- environment ---------------------------------------------------------

// Env is an immutable mapping from symbol name to Value. Lookup is exact
// and case-sensitive. There is no Define/Set: the table is fixed at
// construction, which is what makes sharing an Env across concurrent
// evaluations safe.
type Env struct {
	table map[string]Value
}

// NewEnv builds an environment from bindings. The map is copied, so the
// caller keeps no handle that could mutate the environment afterwards.
func NewEnv(bindings map[string]Value) *Env {
	t := make(map[string]Value, len(bindings))
	for k, v := range bindings {
		t[k] = v
	}
	return &Env{table: t}
}

// Lookup retrieves the binding for name, reporting whether one exists.
func (e *Env) Lookup(name string) (Value, bool) {
	v, ok := e.table[name]
	return v, ok
}

// ---- evaluator -----------------------------------------------------------

// Eval evaluates one AST node against env and returns its value. On failure
// the returned error is a *Error carrying the failure kind; the first error
// in a subtree propagates immediately, nothing is caught or retried.
func Eval(node Node, env *Env) (Value, error) {
	switch node.Kind {
	case NodeNumber:
		return Num(node.Num), nil
	case NodeSymbol:
		v, ok := env.Lookup(node.Sym)
		if !ok {
			return Value{}, errSymbolNotFound(node.Sym)
		}
		return v, nil
	case NodeList:
		return evalList(node.List, env)
	default:
		return Value{}, errBadNode(node)
	}
}

func evalList(items []Node, env *Env) (Value, error) {
	if len(items) == 0 {
		return Value{}, errArity("can't evaluate zero-length list")
	}

	// The one special form. Checked before any element is evaluated.
	if items[0].Kind == NodeSymbol && items[0].Sym == "if" {
		return evalIf(items, env)
	}

	// Ordinary application: evaluate every element in order, then apply the
	// head value to the rest.
	vals := make([]Value, len(items))
	for i, it := range items {
		v, err := Eval(it, env)
		if err != nil {
			return Value{}, err
		}
		vals[i] = v
	}
	oper := vals[0]
	if oper.Tag != VTBuiltin {
		return Value{}, errNotAFunction(oper)
	}
	return oper.Data.(*Builtin).Fn(vals[1:])
}

// evalIf handles (if predicate consequent alternative?). Elements past the
// fourth are never evaluated or inspected.
func evalIf(items []Node, env *Env) (Value, error) {
	if len(items) < 2 {
		return Value{}, errArity("missing predicate for 'if'")
	}
	pred, err := Eval(items[1], env)
	if err != nil {
		return Value{}, err
	}
	if isTruthy(pred) {
		if len(items) < 3 {
			return Value{}, errArity("missing consequent for 'if'")
		}
		return Eval(items[2], env)
	}
	if len(items) >= 4 {
		return Eval(items[3], env)
	}
	// A false predicate with no alternative is not an error.
	return None, nil
}

// isTruthy: only boolean false is falsy. Numbers — including 0 — builtins,
// and the unit value all count as true. Lisp semantics, not C.
func isTruthy(v Value) bool {
	return !(v.Tag == VTBool && !v.Data.(bool))
}
