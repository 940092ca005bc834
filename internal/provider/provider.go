// Package provider loads the three record streams of one run.
package provider

import (
	"os"
	"path"
	"strings"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/afero"

	"github.com/funvibe/beacontau/internal/provider/jsonl"
	"github.com/funvibe/beacontau/internal/provider/sqlitestore"
	"github.com/funvibe/beacontau/internal/record"
)

// Reader yields the index-aligned record streams of a run. Each call may
// hit storage; callers cache what they need.
type Reader interface {
	Statuses() ([]record.Status, error)
	Headers() ([]record.Header, error)
	Events() ([]record.Event, error)
	Close() error
}

// Writer persists record streams of a run.
type Writer interface {
	WriteStatuses([]record.Status) error
	WriteHeaders([]record.Header) error
	WriteEvents([]record.Event) error
	Close() error
}

type Format string

const (
	FormatAuto   Format = ""
	FormatJSONL  Format = "jsonl"
	FormatSQLite Format = "sqlite"
)

// ParseFormat accepts jsonl, sqlite and auto (or empty).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSONL, FormatSQLite:
		return f, nil
	case "auto", FormatAuto:
		return FormatAuto, nil
	}
	return "", errors.Newf("unknown run format %q (want jsonl, sqlite or auto)", s)
}

// Detect reports the format of the run stored in dir. A run.db file marks
// a SQLite run; anything else is read as JSONL.
func Detect(fs afero.Fs, dir string) Format {
	if ok, _ := afero.Exists(fs, path.Join(dir, sqlitestore.FileName)); ok {
		return FormatSQLite
	}
	return FormatJSONL
}

// Open opens the run stored in dir. SQLite runs are always read from the
// operating system filesystem, whatever fs is.
func Open(fs afero.Fs, format Format, dir string, logger log.Logger) (Reader, error) {
	if format == FormatAuto {
		format = Detect(fs, dir)
	}
	level.Debug(logger).Log("msg", "opening run", "dir", dir, "format", format)
	switch format {
	case FormatJSONL:
		return jsonl.Open(fs, dir)
	case FormatSQLite:
		return sqlitestore.Open(dir)
	}
	return nil, errors.Newf("unknown run format %q", format)
}

// Create creates an empty run of the given format in dir.
func Create(fs afero.Fs, format Format, dir string) (Writer, error) {
	switch format {
	case FormatJSONL:
		return jsonl.Create(fs, dir)
	case FormatSQLite:
		return sqlitestore.Create(dir)
	}
	return nil, errors.Newf("cannot create run of format %q", format)
}

// Copy writes every stream of r to w. It does not close either side.
func Copy(w Writer, r Reader) error {
	statuses, err := r.Statuses()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := w.WriteStatuses(statuses); err != nil {
		return errors.Wrap(err, "writing statuses")
	}
	headers, err := r.Headers()
	if err != nil {
		return err
	}
	if err := w.WriteHeaders(headers); err != nil {
		return errors.Wrap(err, "writing headers")
	}
	events, err := r.Events()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := w.WriteEvents(events); err != nil {
		return errors.Wrap(err, "writing events")
	}
	return nil
}

// Memory is a Reader over in-memory records.
type Memory struct {
	Status []record.Status
	Header []record.Header
	Event  []record.Event

	loads atomic.Int64
}

func (m *Memory) Statuses() ([]record.Status, error) {
	m.loads.Add(1)
	return m.Status, nil
}

func (m *Memory) Headers() ([]record.Header, error) {
	m.loads.Add(1)
	return m.Header, nil
}

func (m *Memory) Events() ([]record.Event, error) {
	m.loads.Add(1)
	return m.Event, nil
}

func (m *Memory) Close() error { return nil }

// Loads counts stream reads since creation.
func (m *Memory) Loads() int64 {
	return m.loads.Load()
}

func (m *Memory) WriteStatuses(s []record.Status) error {
	m.Status = append(m.Status, s...)
	return nil
}

func (m *Memory) WriteHeaders(h []record.Header) error {
	m.Header = append(m.Header, h...)
	return nil
}

func (m *Memory) WriteEvents(e []record.Event) error {
	m.Event = append(m.Event, e...)
	return nil
}
