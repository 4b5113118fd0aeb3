package crisp

// ---- core builtins --------------------------------------------------------
//
// The builtin library is a closed set of pure native functions. Each one
// validates its operands before computing and has no effect beyond its
// return value. They are reachable only through application (interpreter.go)
// after lookup in the global environment below.

// builtinAdd: (+ n...) — sum of zero or more numbers. (+) is 0.
func builtinAdd(args []Value) (Value, error) {
	sum := 0.0
	for _, a := range args {
		if a.Tag != VTNum {
			return Value{}, errWrongArgType(a)
		}
		sum += a.Data.(float64)
	}
	return Num(sum), nil
}

// builtinSub: (- n) negates; (- n m...) is n minus the sum of the rest,
// folded left to right. At least one operand is required.
func builtinSub(args []Value) (Value, error) {
	if len(args) == 0 {
		return Value{}, errArity("'-' needs at least one argument")
	}
	if args[0].Tag != VTNum {
		return Value{}, errWrongArgType(args[0])
	}
	first := args[0].Data.(float64)
	if len(args) == 1 {
		return Num(-first), nil
	}
	acc := first
	for _, a := range args[1:] {
		if a.Tag != VTNum {
			return Value{}, errWrongArgType(a)
		}
		acc -= a.Data.(float64)
	}
	return Num(acc), nil
}

// builtinLess: (< n...) — true iff the operands are strictly increasing.
// Zero or one operand is trivially true.
func builtinLess(args []Value) (Value, error) {
	return chainCompare(args, func(a, b float64) bool { return a < b })
}

// builtinGreater: (> n...) — true iff the operands are strictly decreasing.
func builtinGreater(args []Value) (Value, error) {
	return chainCompare(args, func(a, b float64) bool { return a > b })
}

// chainCompare type-checks every operand up front — a violating pair never
// skips the type check of later operands — then tests each adjacent pair.
func chainCompare(args []Value, ok func(a, b float64) bool) (Value, error) {
	nums := make([]float64, len(args))
	for i, a := range args {
		if a.Tag != VTNum {
			return Value{}, errWrongArgType(a)
		}
		nums[i] = a.Data.(float64)
	}
	for i := 1; i < len(nums); i++ {
		if !ok(nums[i-1], nums[i]) {
			return Bool(false), nil
		}
	}
	return Bool(true), nil
}

// ---- global environment ---------------------------------------------------

// GlobalEnv builds the fixed global environment: the constants pi, #t, #f
// and the four builtin functions. Constructed once per run and never
// mutated; callers may share one instance across evaluations.
func GlobalEnv() *Env {
	return NewEnv(map[string]Value{
		"pi": Num(3.14159),
		"#t": Bool(true),
		"#f": Bool(false),
		"+":  Fn(&Builtin{Name: "+", Fn: builtinAdd}),
		"-":  Fn(&Builtin{Name: "-", Fn: builtinSub}),
		"<":  Fn(&Builtin{Name: "<", Fn: builtinLess}),
		">":  Fn(&Builtin{Name: ">", Fn: builtinGreater}),
	})
}
