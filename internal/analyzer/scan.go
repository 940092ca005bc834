package analyzer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/mattn/go-isatty"

	"github.com/funvibe/beacontau/internal/evaluator"
)

// Row is one entry of a scan.
type Row struct {
	Entry  int
	Values []evaluator.Object
}

// Rows is a finite sequence of scan rows. It is consumed by Next and cannot
// be restarted.
type Rows struct {
	columns []string
	seqs    [][]evaluator.Object
	n       int
	next    int
}

// Columns returns the sub-expression of each column as printed by
// Program.String.
func (r *Rows) Columns() []string { return r.columns }

// Len is the total number of rows, consumed or not.
func (r *Rows) Len() int { return r.n }

// Next returns the next row, or false once every row has been returned.
func (r *Rows) Next() (Row, bool) {
	if r.next >= r.n {
		return Row{}, false
	}
	row := Row{Entry: r.next, Values: make([]evaluator.Object, len(r.seqs))}
	for i, seq := range r.seqs {
		row.Values[i] = seq[r.next]
	}
	r.next++
	return row, true
}

// SplitScan splits a scan expression into its colon-separated columns.
func SplitScan(expr string) []string {
	parts := strings.Split(expr, ":")
	cols := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			cols = append(cols, p)
		}
	}
	return cols
}

// Rows compiles and evaluates each colon-separated sub-expression of expr.
func (a *Analyzer) Rows(expr string) (*Rows, error) {
	cols := SplitScan(expr)
	if len(cols) == 0 {
		return nil, errors.Newf("empty scan expression %q", expr)
	}
	rows := &Rows{columns: make([]string, len(cols)), seqs: make([][]evaluator.Object, len(cols))}
	for i, col := range cols {
		prog, err := a.Compile(col)
		if err != nil {
			return nil, err
		}
		vals, err := a.Eval(prog)
		if err != nil {
			return nil, err
		}
		rows.columns[i] = prog.String()
		if i > 0 && len(vals) != rows.n {
			return nil, errors.Wrapf(ErrLengthMismatch, "run %d: scan column %q has %d entries but %q has %d",
				a.run, rows.columns[0], rows.n, rows.columns[i], len(vals))
		}
		rows.seqs[i], rows.n = vals, len(vals)
	}
	return rows, nil
}

// widths returns the printed width of the entry column and of each value
// column: the widest cell, and never less than cellWidth.
func (r *Rows) widths() []int {
	w := make([]int, len(r.columns)+1)
	w[0] = max(cellWidth, utf8.RuneCountInString("entry"), len(strconv.Itoa(r.n)))
	for i, col := range r.columns {
		w[i+1] = max(cellWidth, utf8.RuneCountInString(col))
		for _, v := range r.seqs[i] {
			w[i+1] = max(w[i+1], utf8.RuneCountInString(v.Inspect()))
		}
	}
	return w
}

// Scan prints the rows of expr through a pager and returns how many rows
// were printed. When input is a terminal the pager stops every page to ask
// whether to continue.
func (a *Analyzer) Scan(expr string) (int, error) {
	rows, err := a.Rows(expr)
	if err != nil {
		return 0, err
	}
	p := &pager{
		out:         a.out,
		in:          bufio.NewReader(a.in),
		pageSize:    a.pageSize,
		interactive: a.isTerminal != nil && a.isTerminal(),
	}
	return p.run(rows)
}

const (
	cellWidth   = 14
	quitPrompt  = "Press q to quit: "
	finishedFmt = "Finished scanning %d entries\n"
)

type pager struct {
	out         io.Writer
	in          *bufio.Reader
	pageSize    int
	interactive bool
}

func (p *pager) run(rows *Rows) (int, error) {
	w := bufio.NewWriter(p.out)
	widths := rows.widths()
	header := make([]string, 0, len(rows.columns)+1)
	header = append(header, "entry")
	header = append(header, rows.columns...)
	writeLine(w, widths, header)

	printed := 0
	for {
		row, ok := rows.Next()
		if !ok {
			break
		}
		cells := make([]string, 0, len(row.Values)+1)
		cells = append(cells, fmt.Sprint(row.Entry))
		for _, v := range row.Values {
			cells = append(cells, v.Inspect())
		}
		writeLine(w, widths, cells)
		printed++

		if p.interactive && printed%p.pageSize == 0 && printed < rows.Len() {
			fmt.Fprint(w, quitPrompt)
			if err := w.Flush(); err != nil {
				return printed, err
			}
			answer, err := p.in.ReadString('\n')
			if err != nil && err != io.EOF {
				return printed, errors.Wrap(err, "reading pager answer")
			}
			if strings.HasPrefix(strings.TrimSpace(answer), "q") {
				break
			}
		}
	}
	fmt.Fprintf(w, finishedFmt, printed)
	return printed, w.Flush()
}

// writeLine right-aligns each cell in its column. fmt pads by rune, so
// multi-byte text lines up.
func writeLine(w io.Writer, widths []int, cells []string) {
	var sb strings.Builder
	sb.WriteString("*")
	for i, c := range cells {
		fmt.Fprintf(&sb, " %*s *", widths[i], c)
	}
	sb.WriteString("\n")
	io.WriteString(w, sb.String())
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
