package crisp

import (
	"errors"
	"testing"
)

// --- helpers ---------------------------------------------------------------

func mustEval(t *testing.T, n Node, env *Env) Value {
	t.Helper()
	v, err := Eval(n, env)
	if err != nil {
		t.Fatalf("Eval error: %v\nnode: %#v", err, n)
	}
	return v
}

func wantNum(t *testing.T, v Value, f float64) {
	t.Helper()
	if v.Tag != VTNum {
		t.Fatalf("want num %g, got %#v", f, v)
	}
	if got := v.Data.(float64); got != f {
		t.Fatalf("want num %g, got %g", f, got)
	}
}

func wantBool(t *testing.T, v Value, b bool) {
	t.Helper()
	if v.Tag != VTBool || v.Data.(bool) != b {
		t.Fatalf("want bool %v, got %#v", b, v)
	}
}

func wantNone(t *testing.T, v Value) {
	t.Helper()
	if v.Tag != VTNone {
		t.Fatalf("want the unit value, got %#v", v)
	}
}

func wantErrKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("want %v error, got nil", kind)
	}
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("want *Error, got %T: %v", err, err)
	}
	if e.Kind != kind {
		t.Fatalf("want error kind %v, got %v (%v)", kind, e.Kind, err)
	}
}

// --- atoms -------------------------------------------------------------------

func Test_Eval_NumberLiteral(t *testing.T) {
	env := GlobalEnv()
	for _, f := range []float64{0, 1, -1, 3.14159, 1e9, -0.5} {
		wantNum(t, mustEval(t, NumberNode(f), env), f)
	}
}

func Test_Eval_Symbol_Bound(t *testing.T) {
	env := GlobalEnv()
	wantNum(t, mustEval(t, SymbolNode("pi"), env), 3.14159)
	wantBool(t, mustEval(t, SymbolNode("#t"), env), true)
	wantBool(t, mustEval(t, SymbolNode("#f"), env), false)

	v := mustEval(t, SymbolNode("+"), env)
	if v.Tag != VTBuiltin || v.Data.(*Builtin).Name != "+" {
		t.Fatalf("want builtin +, got %#v", v)
	}
}

func Test_Eval_Symbol_Unbound(t *testing.T) {
	_, err := Eval(SymbolNode("nope"), GlobalEnv())
	wantErrKind(t, err, SymbolNotFound)

	// Lookup is case-sensitive: "PI" is not "pi".
	_, err = Eval(SymbolNode("PI"), GlobalEnv())
	wantErrKind(t, err, SymbolNotFound)
}

func Test_Eval_InvalidNodeKind(t *testing.T) {
	_, err := Eval(Node{}, GlobalEnv())
	wantErrKind(t, err, BadNode)
}

// --- the if special form -------------------------------------------------------

func Test_Eval_If_Branches(t *testing.T) {
	env := GlobalEnv()
	ifSym := SymbolNode("if")

	// (if #t 1 2) → 1, (if #f 1 2) → 2
	wantNum(t, mustEval(t, ListNode(ifSym, SymbolNode("#t"), NumberNode(1), NumberNode(2)), env), 1)
	wantNum(t, mustEval(t, ListNode(ifSym, SymbolNode("#f"), NumberNode(1), NumberNode(2)), env), 2)

	// (if #f 1) → no value, not an error
	wantNone(t, mustEval(t, ListNode(ifSym, SymbolNode("#f"), NumberNode(1)), env))
}

func Test_Eval_If_ZeroIsTruthy(t *testing.T) {
	// (if 0 1 2) → 1. Only #f is false; a zero number is not.
	v := mustEval(t, ListNode(SymbolNode("if"), NumberNode(0), NumberNode(1), NumberNode(2)), GlobalEnv())
	wantNum(t, v, 1)
}

func Test_Eval_If_NonBooleanPredicates(t *testing.T) {
	env := GlobalEnv()
	// A builtin value and the unit value are both truthy.
	wantNum(t, mustEval(t, ListNode(SymbolNode("if"), SymbolNode("+"), NumberNode(7)), env), 7)

	inner := ListNode(SymbolNode("if"), SymbolNode("#f"), NumberNode(1)) // evaluates to the unit value
	wantNum(t, mustEval(t, ListNode(SymbolNode("if"), inner, NumberNode(9)), env), 9)
}

func Test_Eval_If_Arity(t *testing.T) {
	env := GlobalEnv()

	_, err := Eval(ListNode(SymbolNode("if")), env)
	wantErrKind(t, err, WrongArgCount)

	_, err = Eval(ListNode(SymbolNode("if"), SymbolNode("#t")), env)
	wantErrKind(t, err, WrongArgCount)
}

func Test_Eval_If_UntakenBranchNotEvaluated(t *testing.T) {
	env := GlobalEnv()
	boom := SymbolNode("boom") // unbound; evaluating it would fail

	// Consequent taken: the alternative is never touched.
	wantNum(t, mustEval(t, ListNode(SymbolNode("if"), SymbolNode("#t"), NumberNode(1), boom), env), 1)

	// Alternative taken: the consequent is never touched.
	wantNum(t, mustEval(t, ListNode(SymbolNode("if"), SymbolNode("#f"), boom, NumberNode(2)), env), 2)

	// Elements past the fourth are never evaluated or inspected.
	v := mustEval(t, ListNode(SymbolNode("if"), SymbolNode("#t"), NumberNode(1), NumberNode(2), boom, boom), env)
	wantNum(t, v, 1)
}

func Test_Eval_If_PredicateErrorPropagates(t *testing.T) {
	_, err := Eval(ListNode(SymbolNode("if"), SymbolNode("boom"), NumberNode(1)), GlobalEnv())
	wantErrKind(t, err, SymbolNotFound)
}

// --- application ---------------------------------------------------------------

func Test_Eval_Application(t *testing.T) {
	env := GlobalEnv()

	// (+ 1 2) → 3
	wantNum(t, mustEval(t, ListNode(SymbolNode("+"), NumberNode(1), NumberNode(2)), env), 3)

	// Nested: (+ 1 (- 10 4)) → 7
	inner := ListNode(SymbolNode("-"), NumberNode(10), NumberNode(4))
	wantNum(t, mustEval(t, ListNode(SymbolNode("+"), NumberNode(1), inner), env), 7)

	// Zero operands: (+) → 0
	wantNum(t, mustEval(t, ListNode(SymbolNode("+")), env), 0)

	// Symbols as operands resolve before application.
	wantNum(t, mustEval(t, ListNode(SymbolNode("+"), SymbolNode("pi"), SymbolNode("pi")), env), 2*3.14159)
}

func Test_Eval_EmptyList(t *testing.T) {
	_, err := Eval(ListNode(), GlobalEnv())
	wantErrKind(t, err, WrongArgCount)
}

func Test_Eval_OperatorNotAFunction(t *testing.T) {
	env := GlobalEnv()

	// (1 2 3): a number in operator position is a typed error, not a crash.
	_, err := Eval(ListNode(NumberNode(1), NumberNode(2), NumberNode(3)), env)
	wantErrKind(t, err, NotAFunction)

	// (pi 1): constants aren't callable either.
	_, err = Eval(ListNode(SymbolNode("pi"), NumberNode(1)), env)
	wantErrKind(t, err, NotAFunction)

	// ((if #f 1) 2): the unit value in operator position.
	oper := ListNode(SymbolNode("if"), SymbolNode("#f"), NumberNode(1))
	_, err = Eval(ListNode(oper, NumberNode(2)), env)
	wantErrKind(t, err, NotAFunction)
}

func Test_Eval_OperandErrorPropagates(t *testing.T) {
	// (+ 1 boom): the operand failure surfaces before application.
	_, err := Eval(ListNode(SymbolNode("+"), NumberNode(1), SymbolNode("boom")), GlobalEnv())
	wantErrKind(t, err, SymbolNotFound)
}

func Test_Eval_DeepNesting(t *testing.T) {
	// (- (- ... (- 0) ...)) a few hundred levels deep: plain recursion is
	// enough, the input is a finite tree.
	n := NumberNode(0)
	for i := 0; i < 500; i++ {
		n = ListNode(SymbolNode("-"), n)
	}
	wantNum(t, mustEval(t, n, GlobalEnv()), 0)
}

// --- batch driving ----------------------------------------------------------

func Test_EvalProgram_Order(t *testing.T) {
	nodes := []Node{
		NumberNode(1),
		ListNode(SymbolNode("+"), NumberNode(2), NumberNode(3)),
		SymbolNode("#t"),
	}
	vals, err := EvalProgram(nodes, GlobalEnv())
	if err != nil {
		t.Fatalf("EvalProgram error: %v", err)
	}
	if len(vals) != 3 {
		t.Fatalf("want 3 values, got %d", len(vals))
	}
	wantNum(t, vals[0], 1)
	wantNum(t, vals[1], 5)
	wantBool(t, vals[2], true)
}

func Test_EvalProgram_AbortsOnFirstError(t *testing.T) {
	nodes := []Node{
		NumberNode(1),
		SymbolNode("boom"),
		NumberNode(2),
	}
	vals, err := EvalProgram(nodes, GlobalEnv())
	wantErrKind(t, err, SymbolNotFound)
	if vals != nil {
		t.Fatalf("want no partial results, got %#v", vals)
	}
}

func Test_Env_SharedAcrossEvaluations(t *testing.T) {
	// One immutable environment serves many evaluations.
	env := GlobalEnv()
	for i := 0; i < 10; i++ {
		wantNum(t, mustEval(t, ListNode(SymbolNode("+"), NumberNode(float64(i)), NumberNode(1)), env), float64(i)+1)
	}
}
