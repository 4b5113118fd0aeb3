// errors.go — the crisp failure taxonomy.
//
// Every failure the decoder or the evaluator can produce is a *Error with a
// Kind discriminant. There are no other error types: hosts switch on Kind
// (or use errors.As) instead of matching message strings. Errors carry no
// source positions — the wire format has none to give — so the message is
// the whole story.
//
// Propagation policy: nothing in this package catches, retries, or
// substitutes defaults. The first error raised while evaluating one
// top-level node aborts that node, and RunProgram (runtime.go) aborts the
// whole remaining batch.

package crisp

import "fmt"

// ErrorKind discriminates the failure cases of decoding and evaluation.
type ErrorKind int

const (
	// BadInput: the input bytes are not a valid JSON encoding of a node
	// array, raised before any evaluation starts.
	BadInput ErrorKind = iota

	// BadNode: a node matches none of the recognized shapes. Only reachable
	// for a zero-valued Node; the decoder rejects such input as BadInput.
	BadNode

	// SymbolNotFound: a symbol has no binding in the environment.
	SymbolNotFound

	// WrongArgType: a builtin received an argument of the wrong value kind.
	WrongArgType

	// WrongArgCount: a builtin or the `if` form received fewer
	// arguments/elements than it requires.
	WrongArgCount

	// NotAFunction: the operator position of an application evaluated to
	// something that is not callable.
	NotAFunction
)

func (k ErrorKind) String() string {
	switch k {
	case BadInput:
		return "bad input"
	case BadNode:
		return "unevaluable node"
	case SymbolNotFound:
		return "symbol not found"
	case WrongArgType:
		return "unexpected argument type"
	case WrongArgCount:
		return "incorrect number of arguments"
	case NotAFunction:
		return "not a function"
	default:
		return "unknown"
	}
}

// Error is the single error type of this package.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// ---- constructors used by the decoder and evaluator ----------------------

func errBadInput(format string, args ...interface{}) *Error {
	return &Error{Kind: BadInput, Msg: fmt.Sprintf(format, args...)}
}

func errBadNode(n Node) *Error {
	return &Error{Kind: BadNode, Msg: fmt.Sprintf("don't know how to evaluate node kind %d", int(n.Kind))}
}

func errSymbolNotFound(name string) *Error {
	return &Error{Kind: SymbolNotFound, Msg: fmt.Sprintf("symbol %q not found", name)}
}

func errWrongArgType(v Value) *Error {
	return &Error{Kind: WrongArgType, Msg: fmt.Sprintf("unexpected argument type: %s", v)}
}

func errArity(msg string) *Error {
	return &Error{Kind: WrongArgCount, Msg: msg}
}

func errNotAFunction(v Value) *Error {
	return &Error{Kind: NotAFunction, Msg: fmt.Sprintf("operator is not a function: %s", v)}
}
