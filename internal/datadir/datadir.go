// Package datadir finds the runs stored under a data directory.
package datadir

import (
	"fmt"
	"io"
	"iter"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/afero"

	"github.com/funvibe/beacontau/internal/analyzer"
	"github.com/funvibe/beacontau/internal/provider"
)

// EnvDataDir names the environment variable consulted when no directory is
// given explicitly.
const EnvDataDir = "BEACON_DATA_DIR"

var (
	// ErrNoRuns is returned when a data directory holds no run directories.
	ErrNoRuns = errors.New("no runs found")
	// ErrRunNotFound is returned for a run number the directory lacks.
	ErrRunNotFound = errors.New("run not found")
)

// Resolve picks the data directory. An explicit directory wins; then
// BEACON_DATA_DIR; then fallback (typically from beacon.yaml); then the
// working directory.
func Resolve(explicit, fallback string, logger log.Logger) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if dir, ok := os.LookupEnv(EnvDataDir); ok && dir != "" {
		level.Info(logger).Log("msg", "using data directory from environment", "var", EnvDataDir, "dir", dir)
		return dir, nil
	}
	if fallback != "" {
		return fallback, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "resolving data directory")
	}
	level.Info(logger).Log("msg", "no "+EnvDataDir+" set, using working directory", "dir", cwd)
	return cwd, nil
}

// DataDir is the set of runs under one directory, in ascending run order.
type DataDir struct {
	fs     afero.Fs
	root   string
	format provider.Format
	logger log.Logger
	opts   []analyzer.Option

	runs  []int
	names map[int]string
	next  int
}

type Option func(*DataDir)

func WithFormat(f provider.Format) Option {
	return func(d *DataDir) { d.format = f }
}

func WithLogger(logger log.Logger) Option {
	return func(d *DataDir) { d.logger = logger }
}

// WithAnalyzerOptions sets options applied to every analyzer the
// directory opens.
func WithAnalyzerOptions(opts ...analyzer.Option) Option {
	return func(d *DataDir) { d.opts = append(d.opts, opts...) }
}

// Open scans root for run directories. A run directory is a subdirectory
// whose name contains "run" and is a number once the surrounding r, u and n
// characters are stripped, so run42 is run 42.
func Open(fs afero.Fs, root string, opts ...Option) (*DataDir, error) {
	d := &DataDir{
		fs:     fs,
		root:   root,
		logger: log.NewNopLogger(),
		names:  make(map[int]string),
	}
	for _, opt := range opts {
		opt(d)
	}

	entries, err := afero.ReadDir(fs, root)
	if err != nil {
		return nil, errors.Wrapf(err, "reading data directory %s", root)
	}
	for _, fi := range entries {
		if !fi.IsDir() {
			continue
		}
		n, ok := RunNumber(fi.Name())
		if !ok {
			continue
		}
		if prev, dup := d.names[n]; dup {
			level.Warn(d.logger).Log("msg", "duplicate run number", "run", n, "dir", fi.Name(), "kept", prev)
			continue
		}
		d.names[n] = fi.Name()
		d.runs = append(d.runs, n)
	}
	if len(d.runs) == 0 {
		return nil, errors.Wrapf(ErrNoRuns, "under %s", root)
	}
	sort.Ints(d.runs)
	level.Debug(d.logger).Log("msg", "found runs", "dir", root, "count", len(d.runs))
	return d, nil
}

// RunNumber extracts the run number from a directory name.
func RunNumber(name string) (int, bool) {
	if !strings.Contains(name, "run") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.Trim(name, "run"))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func (d *DataDir) Root() string { return d.root }

// Runs returns the run numbers in ascending order.
func (d *DataDir) Runs() []int { return d.runs }

func (d *DataDir) String() string {
	return fmt.Sprintf("data directory %s with runs %v", d.root, d.runs)
}

// RunDir returns the directory holding run n.
func (d *DataDir) RunDir(n int) (string, error) {
	name, ok := d.names[n]
	if !ok {
		return "", errors.Wrapf(ErrRunNotFound, "no run %d in %s, available runs are %v", n, d.root, d.runs)
	}
	return path.Join(d.root, name), nil
}

// Reader opens the records of run n.
func (d *DataDir) Reader(n int) (provider.Reader, error) {
	dir, err := d.RunDir(n)
	if err != nil {
		return nil, err
	}
	return provider.Open(d.fs, d.format, dir, d.logger)
}

// Run opens an analyzer for run n.
func (d *DataDir) Run(n int) (*analyzer.Analyzer, error) {
	r, err := d.Reader(n)
	if err != nil {
		return nil, err
	}
	opts := append([]analyzer.Option{analyzer.WithLogger(d.logger)}, d.opts...)
	return analyzer.New(n, r, opts...), nil
}

// Next opens the analyzer of the next run, or returns io.EOF after the
// last one.
func (d *DataDir) Next() (*analyzer.Analyzer, error) {
	if d.next >= len(d.runs) {
		return nil, io.EOF
	}
	n := d.runs[d.next]
	d.next++
	return d.Run(n)
}

// All iterates over every run in ascending order. Iteration stops after the
// first error is yielded.
func (d *DataDir) All() iter.Seq2[*analyzer.Analyzer, error] {
	return func(yield func(*analyzer.Analyzer, error) bool) {
		for _, n := range d.runs {
			a, err := d.Run(n)
			if !yield(a, err) || err != nil {
				return
			}
		}
	}
}
