package analyzer

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/funvibe/beacontau/internal/provider"
	"github.com/funvibe/beacontau/internal/record"
)

func longRun(n int) *provider.Memory {
	m := &provider.Memory{}
	for i := 0; i < n; i++ {
		m.Status = append(m.Status, record.Status{ReadoutTime: float64(i)})
		m.Header = append(m.Header, record.Header{EventNumber: uint64(100 + i)})
		m.Event = append(m.Event, record.Event{EventNumber: uint64(100 + i)})
	}
	return m
}

func TestSplitScan(t *testing.T) {
	require.Equal(t, []string{"event_number", "readout_time * 2"}, SplitScan(" event_number : readout_time * 2 :"))
	require.Empty(t, SplitScan(" : "))
}

func TestRowsAreFiniteAndNotRestartable(t *testing.T) {
	a := New(1, testRun())
	rows, err := a.Rows("event_number:readout_time")
	require.NoError(t, err)
	require.Equal(t, []string{"event_number", "readout_time"}, rows.Columns())
	require.Equal(t, 3, rows.Len())

	var got []string
	for {
		row, ok := rows.Next()
		if !ok {
			break
		}
		got = append(got, fmt.Sprint(row.Entry, " ", row.Values[0].Inspect(), " ", row.Values[1].Inspect()))
	}
	require.Equal(t, []string{"0 10 0.1", "1 11 0.2", "2 12 0.3"}, got)

	_, ok := rows.Next()
	require.False(t, ok)
}

func TestScanWithoutTerminalPrintsEverything(t *testing.T) {
	var out bytes.Buffer
	a := New(1, longRun(60), WithIO(strings.NewReader("q\n"), &out, nil))

	n, err := a.Scan("event_number")
	require.NoError(t, err)
	require.Equal(t, 60, n)
	require.NotContains(t, out.String(), quitPrompt)
	require.True(t, strings.HasSuffix(out.String(), "Finished scanning 60 entries\n"))
	// header, 60 rows, footer
	require.Equal(t, 62, strings.Count(out.String(), "\n"))
}

func TestScanPagerQuits(t *testing.T) {
	var out bytes.Buffer
	tty := func() bool { return true }
	a := New(1, longRun(60), WithIO(strings.NewReader("\nquit\n"), &out, tty))

	n, err := a.Scan("event_number : readout_time")
	require.NoError(t, err)
	require.Equal(t, 50, n)
	require.Equal(t, 2, strings.Count(out.String(), quitPrompt))
	require.Contains(t, out.String(), "Finished scanning 50 entries")
	require.Contains(t, out.String(), "event_number *")
}

func TestScanPagerDoesNotPromptAfterLastRow(t *testing.T) {
	var out bytes.Buffer
	tty := func() bool { return true }
	a := New(1, longRun(10), WithIO(strings.NewReader(""), &out, tty), WithPageSize(5))

	n, err := a.Scan("event_number")
	require.NoError(t, err)
	require.Equal(t, 10, n)
	require.Equal(t, 1, strings.Count(out.String(), quitPrompt))
}

func TestScanLengthMismatch(t *testing.T) {
	run := testRun()
	run.Status = run.Status[:1]
	a := New(1, run, WithIO(strings.NewReader(""), &bytes.Buffer{}, nil))
	_, err := a.Scan("event_number : readout_time")
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestScanPrintsWholeValues(t *testing.T) {
	run := &provider.Memory{
		Status: []record.Status{
			{ReadoutTime: 1538000000.123456, TriggerThresholds: []uint32{5000, 6000, 7000, 8000}},
			{ReadoutTime: 2, TriggerThresholds: []uint32{1}},
		},
		Header: []record.Header{{EventNumber: 1}, {EventNumber: 2}},
	}
	var out bytes.Buffer
	a := New(1, run, WithIO(strings.NewReader(""), &out, nil))

	_, err := a.Scan("readout_time : trigger_thresholds : 'é' * 20")
	require.NoError(t, err)
	lines := strings.Split(out.String(), "\n")
	require.Contains(t, lines[1], "1538000000.123456")
	require.Contains(t, lines[1], "[5000, 6000, 7000, 8000]")
	require.Contains(t, lines[1], strings.Repeat("é", 20))
	require.NotContains(t, out.String(), "~")

	// Every row has the same rune width, so columns line up.
	width := utf8.RuneCountInString(lines[0])
	for _, line := range lines[1:3] {
		require.Equal(t, width, utf8.RuneCountInString(line), line)
	}
}

func TestScanColumnsAreNormalized(t *testing.T) {
	a := New(1, testRun())
	rows, err := a.Rows("readout_time*2 : (event_number) && header.buffer_length")
	require.NoError(t, err)
	require.Equal(t, []string{"readout_time * 2", "event_number and header.buffer_length"}, rows.Columns())
}
