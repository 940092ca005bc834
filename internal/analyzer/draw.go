package analyzer

import (
	"fmt"
	"math"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/guptarohit/asciigraph"

	"github.com/funvibe/beacontau/internal/ast"
	"github.com/funvibe/beacontau/internal/evaluator"
)

// Draw plots the values of expr against entry number. A numeric result is
// one series; a list result gives one series per element, labelled
// expr[0], expr[1] and so on below the plot. Labels use the normalized
// form of expr.
func (a *Analyzer) Draw(expr string) (string, error) {
	prog, err := a.Compile(expr)
	if err != nil {
		return "", err
	}
	vals, err := a.Eval(prog)
	if err != nil {
		return "", err
	}
	label := prog.String()
	series, err := toSeries(vals)
	if err != nil {
		return "", errors.Wrapf(err, "drawing %q", expr)
	}
	if len(series) == 0 || len(series[0]) == 0 {
		return "", errors.Newf("run %d: nothing to draw for %q", a.run, expr)
	}

	opts := []asciigraph.Option{
		asciigraph.Height(a.plotHeight),
		asciigraph.Width(a.plotWidth),
		asciigraph.Caption(fmt.Sprintf("Run %d: %s vs entry", a.run, label)),
	}
	if len(series) == 1 {
		return asciigraph.Plot(series[0], opts...), nil
	}

	var sb strings.Builder
	sb.WriteString(asciigraph.PlotMany(series, opts...))
	sb.WriteString("\n")
	for i := range series {
		fmt.Fprintf(&sb, "  series %d: %s[%d]\n", i+1, seriesLabel(prog), i)
	}
	return sb.String(), nil
}

// toSeries turns per-entry values into plot series. Scalars give a single
// series; lists of equal length give one series per position.
func toSeries(vals []evaluator.Object) ([][]float64, error) {
	if len(vals) == 0 {
		return nil, nil
	}
	if first, ok := vals[0].(*evaluator.List); ok {
		width := first.Len()
		series := make([][]float64, width)
		for c := range series {
			series[c] = make([]float64, len(vals))
		}
		for entry, v := range vals {
			l, ok := v.(*evaluator.List)
			if !ok || l.Len() != width {
				return nil, errors.Newf("entry %d: expected a list of %d values, got %s", entry, width, v.Inspect())
			}
			for c, el := range l.Elements {
				f, err := plotValue(entry, el)
				if err != nil {
					return nil, err
				}
				series[c][entry] = f
			}
		}
		return series, nil
	}

	series := make([]float64, len(vals))
	for entry, v := range vals {
		f, err := plotValue(entry, v)
		if err != nil {
			return nil, err
		}
		series[entry] = f
	}
	return [][]float64{series}, nil
}

func plotValue(entry int, v evaluator.Object) (float64, error) {
	f, ok := evaluator.ToFloat64(v)
	if !ok {
		return 0, errors.Newf("entry %d: cannot plot %s value %s", entry, v.Type(), v.Inspect())
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, nil
	}
	return f, nil
}

// seriesLabel parenthesizes compound expressions so the element index reads
// as applying to the whole expression.
func seriesLabel(prog *Program) string {
	switch prog.Root().(type) {
	case *ast.Placeholder, *ast.Identifier, *ast.IndexExpression, *ast.CallExpression, *ast.ListLiteral:
		return prog.String()
	}
	return "(" + prog.String() + ")"
}
