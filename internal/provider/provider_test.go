package provider

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-kit/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/beacontau/internal/record"
)

func sampleRun() *Memory {
	return &Memory{
		Status: []record.Status{
			{ReadoutTime: 0.1, TriggerThresholds: []uint32{10, 20}},
			{ReadoutTime: 0.2, TriggerThresholds: []uint32{11, 21}},
		},
		Header: []record.Header{
			{EventNumber: 10, BufferLength: 2},
			{EventNumber: 11, BufferLength: 3},
		},
		Event: []record.Event{
			{EventNumber: 10, BufferLength: 2, Data: [][][]int16{{{1, 2, 3}}}},
			{EventNumber: 11, BufferLength: 3, Data: [][][]int16{{{4, 5, 6}}}},
		},
	}
}

func requireSameRun(t *testing.T, want *Memory, got Reader) {
	t.Helper()
	s, err := got.Statuses()
	require.NoError(t, err)
	require.Equal(t, want.Status, s)
	h, err := got.Headers()
	require.NoError(t, err)
	require.Equal(t, want.Header, h)
	e, err := got.Events()
	require.NoError(t, err)
	require.Equal(t, want.Event, e)
}

func TestJSONLRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := sampleRun()

	w, err := Create(fs, FormatJSONL, "/data/run1")
	require.NoError(t, err)
	require.NoError(t, Copy(w, src))
	require.NoError(t, w.Close())

	require.Equal(t, FormatJSONL, Detect(fs, "/data/run1"))
	r, err := Open(fs, FormatAuto, "/data/run1", log.NewNopLogger())
	require.NoError(t, err)
	defer r.Close()
	requireSameRun(t, src, r)
}

func TestSQLiteRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run7")
	src := sampleRun()

	w, err := Create(afero.NewOsFs(), FormatSQLite, dir)
	require.NoError(t, err)
	require.NoError(t, Copy(w, src))
	require.NoError(t, w.Close())

	fs := afero.NewOsFs()
	require.Equal(t, FormatSQLite, Detect(fs, dir))
	r, err := Open(fs, FormatAuto, dir, log.NewNopLogger())
	require.NoError(t, err)
	defer r.Close()
	requireSameRun(t, src, r)
}

func TestConvertBetweenFormats(t *testing.T) {
	fs := afero.NewOsFs()
	root := t.TempDir()
	src := sampleRun()

	w, err := Create(fs, FormatSQLite, filepath.Join(root, "run1"))
	require.NoError(t, err)
	require.NoError(t, Copy(w, src))
	require.NoError(t, w.Close())

	r, err := Open(fs, FormatSQLite, filepath.Join(root, "run1"), log.NewNopLogger())
	require.NoError(t, err)
	defer r.Close()
	w2, err := Create(fs, FormatJSONL, filepath.Join(root, "run2"))
	require.NoError(t, err)
	require.NoError(t, Copy(w2, r))

	r2, err := Open(fs, FormatJSONL, filepath.Join(root, "run2"), log.NewNopLogger())
	require.NoError(t, err)
	requireSameRun(t, src, r2)
}

func TestMissingStreams(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/data/run3", 0o755))

	r, err := Open(fs, FormatJSONL, "/data/run3", log.NewNopLogger())
	require.NoError(t, err)
	_, err = r.Headers()
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = Open(fs, FormatJSONL, "/data/run4", log.NewNopLogger())
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = Open(afero.NewOsFs(), FormatSQLite, t.TempDir(), log.NewNopLogger())
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"jsonl": FormatJSONL, "SQLite": FormatSQLite, "auto": FormatAuto, "": FormatAuto} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseFormat("root")
	require.Error(t, err)
}

func TestMemoryCountsLoads(t *testing.T) {
	m := sampleRun()
	_, _ = m.Headers()
	_, _ = m.Events()
	require.EqualValues(t, 2, m.Loads())
}
