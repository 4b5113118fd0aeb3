// runtime.go — the host-facing batch driver.
//
// The evaluator (interpreter.go) works on one node at a time; this file
// supplies the driving loop a CLI or embedding host actually wants: decode
// a whole program, evaluate the nodes in input order against one global
// environment, and render one line per value. The first error — decode or
// eval — aborts the remaining batch; there is no partial-continue mode.

package crisp

import (
	"fmt"
	"io"
)

// Version of the crisp runtime, reported by `crisp version`.
const Version = "1.2.0"

// EvalProgram evaluates nodes in order against env and returns the values,
// in input order. Evaluation stops at the first failing node; nodes after
// it are never evaluated and no partial results are returned.
func EvalProgram(nodes []Node, env *Env) ([]Value, error) {
	vals := make([]Value, 0, len(nodes))
	for _, n := range nodes {
		v, err := Eval(n, env)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// RunProgram decodes src, evaluates each top-level node against a fresh
// global environment, and writes each value's printable form to out, one
// per line, as it is produced. Lines already written before a failure stay
// written (output is a stream, not a transaction). Empty input is a
// successful no-op.
func RunProgram(src []byte, out io.Writer) error {
	nodes, err := DecodeProgram(src)
	if err != nil {
		return err
	}
	env := GlobalEnv()
	for _, n := range nodes {
		v, err := Eval(n, env)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, FormatValue(v)); err != nil {
			return err
		}
	}
	return nil
}
