package analyzer

import (
	"github.com/cockroachdb/errors"

	"github.com/funvibe/beacontau/internal/evaluator"
)

// Get evaluates expr once per entry and returns the results in entry order.
//
// Every field the expression names must have the same number of entries.
// An expression that names no field is evaluated once and repeated for
// every header entry.
func (a *Analyzer) Get(expr string) ([]evaluator.Object, error) {
	prog, err := a.Compile(expr)
	if err != nil {
		return nil, err
	}
	return a.Eval(prog)
}

// Eval evaluates a compiled program over the run.
func (a *Analyzer) Eval(prog *Program) ([]evaluator.Object, error) {
	if len(prog.bindings) == 0 {
		return a.evalConstant(prog)
	}

	seqs := make([][]evaluator.Object, len(prog.bindings))
	for i, b := range prog.bindings {
		vals, err := a.attribute(b.Field)
		if err != nil {
			return nil, err
		}
		seqs[i] = vals
	}
	n := len(seqs[0])
	for i := 1; i < len(seqs); i++ {
		if len(seqs[i]) != n {
			return nil, errors.Wrapf(ErrLengthMismatch, "run %d: %s has %d entries but %s has %d",
				a.run, prog.bindings[0].Key(), n, prog.bindings[i].Key(), len(seqs[i]))
		}
	}

	out := make([]evaluator.Object, n)
	slots := make([]evaluator.Object, len(seqs))
	for entry := 0; entry < n; entry++ {
		for i, seq := range seqs {
			slots[i] = seq[entry]
		}
		res, err := a.eval.Run(prog.root, slots)
		if err != nil {
			return nil, errors.Wrapf(err, "evaluating %q at entry %d", prog.source, entry)
		}
		out[entry] = res
	}
	return out, nil
}

func (a *Analyzer) evalConstant(prog *Program) ([]evaluator.Object, error) {
	headers, err := a.loadHeaders()
	if err != nil {
		return nil, err
	}
	res, err := a.eval.Run(prog.root, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "evaluating %q", prog.source)
	}
	out := make([]evaluator.Object, len(headers))
	for i := range out {
		out[i] = res
	}
	return out, nil
}
