package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funvibe/beacontau/internal/record"
)

func TestNewEventPairMismatch(t *testing.T) {
	_, err := NewEventPair(0, &record.Header{EventNumber: 5}, &record.Event{EventNumber: 6})
	require.ErrorIs(t, err, ErrMismatchedPair)
	require.ErrorContains(t, err, "header event_number 5, event event_number 6")

	p, err := NewEventPair(3, &record.Header{EventNumber: 5}, &record.Event{EventNumber: 5})
	require.NoError(t, err)
	require.Equal(t, uint64(5), p.EventNumber())
	require.Equal(t, 3, p.Entry)
}

func TestWaveformTruncatedToBufferLength(t *testing.T) {
	a := New(1, testRun())
	p, err := a.GetEntry(0)
	require.NoError(t, err)
	require.Equal(t, []int16{4, 5}, p.Waveform(0, 1))
	require.Nil(t, p.Waveform(1, 0))
	require.Nil(t, p.Waveform(0, 5))

	plot := a.Plot(p)
	require.True(t, strings.HasPrefix(plot, "Event 10\n"))
	require.Contains(t, plot, "board 0 channel 0")
	require.Contains(t, plot, "board 0 channel 1")
}

func TestGetEvent(t *testing.T) {
	a := New(7, testRun())
	p, err := a.GetEvent(11)
	require.NoError(t, err)
	require.Equal(t, 1, p.Entry)
	require.Equal(t, uint64(11), p.Header.EventNumber)

	_, err = a.GetEvent(99)
	require.ErrorIs(t, err, ErrEventNotFound)
	require.ErrorContains(t, err, "event 99 in run 7")
}

func TestEventsIterates(t *testing.T) {
	a := New(1, testRun())
	seq, err := a.Events()
	require.NoError(t, err)

	var numbers []uint64
	for i, p := range seq {
		require.Equal(t, i, p.Entry)
		numbers = append(numbers, p.EventNumber())
		if i == 1 {
			break
		}
	}
	require.Equal(t, []uint64{10, 11}, numbers)

	run := testRun()
	run.Event[2].EventNumber = 99
	_, err = New(1, run).Events()
	require.ErrorIs(t, err, ErrMismatchedPair)

	run = testRun()
	run.Event = run.Event[:2]
	_, err = New(1, run).GetEntry(0)
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestGetEntryOutOfRange(t *testing.T) {
	a := New(1, testRun())
	_, err := a.GetEntry(3)
	require.ErrorContains(t, err, "entry 3 out of range")
}
