// Package jsonl stores a run as zstd-compressed JSON lines, one file per
// record stream.
package jsonl

import (
	"bufio"
	"path"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
	"github.com/valyala/fastjson"

	"github.com/funvibe/beacontau/internal/record"
)

const (
	StatusFile = "status.jsonl.zst"
	HeaderFile = "header.jsonl.zst"
	EventFile  = "event.jsonl.zst"
)

// maxLineSize bounds one encoded record. Events carry every waveform of a
// readout, so lines get long.
const maxLineSize = 64 << 20

type Reader struct {
	fs  afero.Fs
	dir string
}

// Open returns a reader for the run in dir. Stream files are opened on
// demand; a missing file surfaces from the corresponding read.
func Open(fs afero.Fs, dir string) (*Reader, error) {
	fi, err := fs.Stat(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "opening run %s", dir)
	}
	if !fi.IsDir() {
		return nil, errors.Newf("run %s is not a directory", dir)
	}
	return &Reader{fs: fs, dir: dir}, nil
}

func (r *Reader) Statuses() ([]record.Status, error) {
	return readAll(r, StatusFile, record.DecodeStatus)
}

func (r *Reader) Headers() ([]record.Header, error) {
	return readAll(r, HeaderFile, record.DecodeHeader)
}

func (r *Reader) Events() ([]record.Event, error) {
	return readAll(r, EventFile, record.DecodeEvent)
}

func (r *Reader) Close() error { return nil }

func readAll[T any](r *Reader, name string, decode func(*fastjson.Parser, []byte) (T, error)) ([]T, error) {
	filename := path.Join(r.dir, name)
	f, err := r.fs.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", name)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", filename)
	}
	defer dec.Close()

	var (
		p   fastjson.Parser
		out []T
	)
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64<<10), maxLineSize)
	for line := 1; sc.Scan(); line++ {
		if len(sc.Bytes()) == 0 {
			continue
		}
		rec, err := decode(&p, sc.Bytes())
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", filename, line)
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", filename)
	}
	return out, nil
}

type Writer struct {
	fs  afero.Fs
	dir string
}

// Create prepares dir for writing a run, creating it if needed.
func Create(fs afero.Fs, dir string) (*Writer, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating run %s", dir)
	}
	return &Writer{fs: fs, dir: dir}, nil
}

func (w *Writer) WriteStatuses(recs []record.Status) error {
	return writeAll(w, StatusFile, recs, record.EncodeStatus)
}

func (w *Writer) WriteHeaders(recs []record.Header) error {
	return writeAll(w, HeaderFile, recs, record.EncodeHeader)
}

func (w *Writer) WriteEvents(recs []record.Event) error {
	return writeAll(w, EventFile, recs, record.EncodeEvent)
}

func (w *Writer) Close() error { return nil }

func writeAll[T any](w *Writer, name string, recs []T, encode func([]byte, *fastjson.Arena, *T) []byte) (err error) {
	filename := path.Join(w.dir, name)
	f, err := w.fs.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "creating %s", filename)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "closing %s", filename)
		}
	}()

	enc, err := zstd.NewWriter(f)
	if err != nil {
		return err
	}
	var (
		a   fastjson.Arena
		buf []byte
	)
	for i := range recs {
		a.Reset()
		buf = encode(buf[:0], &a, &recs[i])
		buf = append(buf, '\n')
		if _, err := enc.Write(buf); err != nil {
			enc.Close()
			return errors.Wrapf(err, "writing %s", filename)
		}
	}
	return errors.Wrapf(enc.Close(), "writing %s", filename)
}
