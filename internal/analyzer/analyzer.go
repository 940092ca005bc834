// Package analyzer evaluates expressions over the records of one run.
//
// An expression is written in terms of field names of the Status, Header
// and Event records. Compile replaces those names with positional
// placeholders and parses the result once; Get then evaluates the tree
// once per entry with the entry's field values bound to the placeholders.
package analyzer

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/funvibe/beacontau/internal/evaluator"
	"github.com/funvibe/beacontau/internal/provider"
	"github.com/funvibe/beacontau/internal/record"
)

const (
	DefaultPageSize   = 25
	DefaultPlotWidth  = 72
	DefaultPlotHeight = 12
)

// Analyzer answers queries about a single run. Attribute sequences are
// materialized on first use and cached until Close.
//
// An Analyzer is not safe for concurrent use.
type Analyzer struct {
	run      int
	reader   provider.Reader
	registry *record.Registry
	logger   log.Logger

	pageSize   int
	plotWidth  int
	plotHeight int
	in         io.Reader
	out        io.Writer
	isTerminal func() bool

	eval *evaluator.Evaluator

	statuses []record.Status
	headers  []record.Header
	events   []record.Event
	loaded   [3]bool

	cache        map[string][]evaluator.Object
	materialized int

	warned map[string]bool
}

type Option func(*Analyzer)

func WithLogger(logger log.Logger) Option {
	return func(a *Analyzer) { a.logger = logger }
}

// WithPageSize sets how many Scan rows are printed between prompts.
func WithPageSize(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.pageSize = n
		}
	}
}

func WithPlotSize(width, height int) Option {
	return func(a *Analyzer) {
		if width > 0 {
			a.plotWidth = width
		}
		if height > 0 {
			a.plotHeight = height
		}
	}
}

// WithRegistry replaces the default BEACON field registry.
func WithRegistry(r *record.Registry) Option {
	return func(a *Analyzer) { a.registry = r }
}

// WithIO sets where Scan writes rows and reads pager answers. The pager
// only prompts when isTerminal reports true; nil means never.
func WithIO(in io.Reader, out io.Writer, isTerminal func() bool) Option {
	return func(a *Analyzer) {
		a.in, a.out, a.isTerminal = in, out, isTerminal
	}
}

func New(run int, reader provider.Reader, opts ...Option) *Analyzer {
	a := &Analyzer{
		run:        run,
		reader:     reader,
		registry:   record.Default(),
		logger:     log.NewNopLogger(),
		pageSize:   DefaultPageSize,
		plotWidth:  DefaultPlotWidth,
		plotHeight: DefaultPlotHeight,
		in:         os.Stdin,
		out:        os.Stdout,
		isTerminal: stdinIsTerminal,
		eval:       evaluator.New(),
		cache:      make(map[string][]evaluator.Object),
		warned:     make(map[string]bool),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = log.With(a.logger, "run", run)
	return a
}

// Run returns the run number.
func (a *Analyzer) Run() int { return a.run }

func (a *Analyzer) Registry() *record.Registry { return a.registry }

// Close drops every cached sequence and closes the record provider.
func (a *Analyzer) Close() error {
	a.cache = make(map[string][]evaluator.Object)
	a.statuses, a.headers, a.events = nil, nil, nil
	a.loaded = [3]bool{}
	return a.reader.Close()
}

// Materialized counts attribute sequences built from records so far.
func (a *Analyzer) Materialized() int { return a.materialized }

// Entries returns the number of header entries in the run.
func (a *Analyzer) Entries() (int, error) {
	headers, err := a.loadHeaders()
	return len(headers), err
}

// GetAttribute returns the values of one field, one per entry. A bare name
// resolves against Status, then Header, then Event; status.x, header.x and
// event.x pick the kind explicitly.
func (a *Analyzer) GetAttribute(name string) ([]evaluator.Object, error) {
	f, err := a.resolve(name)
	if err != nil {
		return nil, err
	}
	return a.attribute(f)
}

func (a *Analyzer) resolve(name string) (record.Field, error) {
	if prefix, rest, ok := strings.Cut(name, "."); ok {
		if kind, err := record.ParseKind(prefix); err == nil {
			if f, ok := a.registry.Lookup(kind, rest); ok {
				return f, nil
			}
		}
		return record.Field{}, errors.Wrapf(ErrUnknownAttribute, "%q", name)
	}
	f, kinds, ok := a.registry.Resolve(name)
	if !ok {
		return record.Field{}, errors.Wrapf(ErrUnknownAttribute, "%q", name)
	}
	if len(kinds) > 1 {
		a.warnCollision(name, kinds)
	}
	return f, nil
}

func (a *Analyzer) warnCollision(name string, kinds []record.Kind) {
	if a.warned[name] {
		return
	}
	a.warned[name] = true
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	level.Warn(a.logger).Log(
		"msg", "attribute declared by several record kinds",
		"attribute", name,
		"kinds", strings.Join(names, ","),
		"using", kinds[0].String(),
		"hint", kinds[1].Prefix()+"."+name,
	)
}

func (a *Analyzer) attribute(f record.Field) ([]evaluator.Object, error) {
	key := attributeKey(f)
	if vals, ok := a.cache[key]; ok {
		return vals, nil
	}
	vals, err := a.materialize(f)
	if err != nil {
		return nil, errors.Wrapf(err, "run %d: attribute %s", a.run, key)
	}
	a.cache[key] = vals
	a.materialized++
	level.Debug(a.logger).Log("msg", "materialized attribute", "attribute", key, "entries", len(vals))
	return vals, nil
}

func (a *Analyzer) materialize(f record.Field) ([]evaluator.Object, error) {
	switch f.Kind {
	case record.KindStatus:
		recs, err := a.loadStatuses()
		if err != nil {
			return nil, err
		}
		return values(f, recs)
	case record.KindHeader:
		recs, err := a.loadHeaders()
		if err != nil {
			return nil, err
		}
		return values(f, recs)
	case record.KindEvent:
		recs, err := a.loadEvents()
		if err != nil {
			return nil, err
		}
		return values(f, recs)
	}
	return nil, errors.Newf("unknown record kind %s", f.Kind)
}

func values[T any](f record.Field, recs []T) ([]evaluator.Object, error) {
	out := make([]evaluator.Object, len(recs))
	for i := range recs {
		obj, err := evaluator.FromGo(f.Get(&recs[i]))
		if err != nil {
			return nil, errors.Wrapf(err, "entry %d", i)
		}
		out[i] = obj
	}
	return out, nil
}

func (a *Analyzer) loadStatuses() ([]record.Status, error) {
	return load(a, record.KindStatus, &a.statuses, a.reader.Statuses)
}

func (a *Analyzer) loadHeaders() ([]record.Header, error) {
	return load(a, record.KindHeader, &a.headers, a.reader.Headers)
}

func (a *Analyzer) loadEvents() ([]record.Event, error) {
	return load(a, record.KindEvent, &a.events, a.reader.Events)
}

func load[T any](a *Analyzer, kind record.Kind, dst *[]T, read func() ([]T, error)) ([]T, error) {
	if a.loaded[kind] {
		return *dst, nil
	}
	recs, err := read()
	if err != nil {
		return nil, errors.Wrapf(err, "run %d: loading %s records", a.run, kind)
	}
	*dst, a.loaded[kind] = recs, true
	return recs, nil
}
