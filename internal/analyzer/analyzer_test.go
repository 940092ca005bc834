package analyzer

import (
	"bytes"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/beacontau/internal/evaluator"
	"github.com/funvibe/beacontau/internal/provider"
	"github.com/funvibe/beacontau/internal/record"
)

func testRun() *provider.Memory {
	return &provider.Memory{
		Status: []record.Status{
			{ReadoutTime: 0.1, ReadoutTimeNs: 100, TriggerThresholds: []uint32{5, 6}},
			{ReadoutTime: 0.2, ReadoutTimeNs: 200, TriggerThresholds: []uint32{7, 8}},
			{ReadoutTime: 0.3, ReadoutTimeNs: 300, TriggerThresholds: []uint32{9, 10}},
		},
		Header: []record.Header{
			{EventNumber: 10, ReadoutTime: 1.5, BufferLength: 2},
			{EventNumber: 11, ReadoutTime: 2.5, BufferLength: 3},
			{EventNumber: 12, ReadoutTime: 3.5, BufferLength: 1},
		},
		Event: []record.Event{
			{EventNumber: 10, BufferLength: 2, Data: [][][]int16{{{1, 2, 3}, {4, 5, 6}}}},
			{EventNumber: 11, BufferLength: 3, Data: [][][]int16{{{7, 8, 9}}}},
			{EventNumber: 12, BufferLength: 1, Data: [][][]int16{{{0}}}},
		},
	}
}

func inspect(vals []evaluator.Object) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = v.Inspect()
	}
	return out
}

func requireGet(t *testing.T, a *Analyzer, expr string, want ...string) {
	t.Helper()
	vals, err := a.Get(expr)
	require.NoError(t, err, expr)
	require.Equal(t, want, inspect(vals), expr)
}

func TestGetExamples(t *testing.T) {
	a := New(1, testRun())
	requireGet(t, a, "event_number", "10", "11", "12")
	requireGet(t, a, "readout_time > 0.15", "false", "true", "true")
}

func TestGetExpressions(t *testing.T) {
	a := New(1, testRun())
	tests := []struct {
		expr string
		want []string
	}{
		{"event_number * 2 + 1", []string{"21", "23", "25"}},
		{"event_number / 2", []string{"5", "5.5", "6"}},
		{"event_number // 4", []string{"2", "2", "3"}},
		{"trigger_thresholds[0]", []string{"5", "7", "9"}},
		{"trigger_thresholds[-1] - trigger_thresholds[0]", []string{"1", "1", "1"}},
		{"sum(trigger_thresholds)", []string{"11", "15", "19"}},
		{"10 < event_number <= 11", []string{"false", "true", "false"}},
		{"readout_time_ns", []string{"100", "200", "300"}},
		{"header.readout_time", []string{"1.5", "2.5", "3.5"}},
		{"header.readout_time * 2", []string{"3", "5", "7"}},
		{"header.readout_time > readout_time", []string{"true", "true", "true"}},
		{"event.buffer_length == header.buffer_length", []string{"true", "true", "true"}},
		{"event_number == 11 or readout_time", []string{"0.1", "true", "0.3"}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			requireGet(t, a, tt.expr, tt.want...)
		})
	}
}

func TestConstantExpressionRepeatsPerHeader(t *testing.T) {
	run := testRun()
	run.Status = run.Status[:1]
	a := New(1, run)
	requireGet(t, a, "1 + 2", "3", "3", "3")
	requireGet(t, a, "max(4, 9, 2)", "9", "9", "9")
}

func TestLongestNameBindsFirst(t *testing.T) {
	get := func(s *record.Status) any { return s.TriggerThresholds }
	reg := record.MustRegistry(
		record.StatusField("trigger_threshold", func(s *record.Status) any { return -1 }),
		record.StatusField("trigger_thresholds", get),
	)
	a := New(1, testRun(), WithRegistry(reg))

	prog, err := a.Compile("trigger_thresholds[1] + trigger_threshold")
	require.NoError(t, err)
	require.Equal(t, []string{"trigger_thresholds", "trigger_threshold"}, prog.Bound())
	require.Equal(t, "{0}[1] + {1}", prog.Text())
	require.Equal(t, "trigger_thresholds[1] + trigger_threshold", prog.String())

	requireGet(t, a, "trigger_thresholds[1] + trigger_threshold", "5", "7", "9")
}

func TestRepeatedNamesAreBoundPerOccurrence(t *testing.T) {
	a := New(1, testRun())
	prog, err := a.Compile("event_number + event_number * event_number")
	require.NoError(t, err)
	require.Equal(t, []string{"event_number", "event_number", "event_number"}, prog.Bound())
	require.Equal(t, "{0} + {1} * {2}", prog.Text())
	requireGet(t, a, "event_number + event_number * event_number", "110", "132", "156")
	require.Equal(t, 1, a.Materialized())
}

func TestGetAttributeIsCached(t *testing.T) {
	run := testRun()
	a := New(1, run)

	first, err := a.GetAttribute("event_number")
	require.NoError(t, err)
	loads := run.Loads()

	second, err := a.GetAttribute("event_number")
	require.NoError(t, err)
	require.Same(t, &first[0], &second[0])
	require.Equal(t, loads, run.Loads())
	require.Equal(t, 1, a.Materialized())

	// Qualified and bare spellings share the entry.
	_, err = a.GetAttribute("header.event_number")
	require.NoError(t, err)
	require.Equal(t, 1, a.Materialized())

	require.NoError(t, a.Close())
	_, err = a.GetAttribute("event_number")
	require.NoError(t, err)
	require.Equal(t, 2, a.Materialized())
	require.Greater(t, run.Loads(), loads)
}

func TestNamespacePriority(t *testing.T) {
	var logs bytes.Buffer
	a := New(1, testRun(), WithLogger(log.NewLogfmtLogger(&logs)))

	for i := 0; i < 3; i++ {
		vals, err := a.GetAttribute("readout_time")
		require.NoError(t, err)
		require.Equal(t, []string{"0.1", "0.2", "0.3"}, inspect(vals))
	}
	requireGet(t, a, "readout_time", "0.1", "0.2", "0.3")
	require.Equal(t, 1, bytes.Count(logs.Bytes(), []byte("attribute=readout_time")), logs.String())
	require.Contains(t, logs.String(), "using=Status")

	vals, err := a.GetAttribute("header.readout_time")
	require.NoError(t, err)
	require.Equal(t, []string{"1.5", "2.5", "3.5"}, inspect(vals))
}

func TestUnknownAttribute(t *testing.T) {
	a := New(1, testRun())
	for _, name := range []string{"no_such_field", "header.deadtime", "footer.event_number"} {
		_, err := a.GetAttribute(name)
		require.ErrorIs(t, err, ErrUnknownAttribute)
		require.ErrorContains(t, err, name)
	}
}

func TestUnknownIdentifierFailsAtEvaluation(t *testing.T) {
	a := New(1, testRun())
	_, err := a.Get("event_number + bogus")
	require.ErrorContains(t, err, "unknown identifier: bogus")

	var evalErr *evaluator.Error
	require.ErrorAs(t, err, &evalErr)
}

func TestCompileErrors(t *testing.T) {
	a := New(1, testRun())
	for _, expr := range []string{"event_number +", "(readout_time", "event_number = 3", ""} {
		_, err := a.Get(expr)
		require.Error(t, err, expr)
	}
}

func TestLengthMismatch(t *testing.T) {
	run := testRun()
	run.Status = run.Status[:2]
	a := New(4, run)

	_, err := a.Get("event_number + readout_time")
	require.ErrorIs(t, err, ErrLengthMismatch)
	require.ErrorContains(t, err, "header.event_number has 3 entries but status.readout_time has 2")
}

func TestEvaluationErrorNamesEntry(t *testing.T) {
	a := New(1, testRun())
	_, err := a.Get("1 / (event_number - 11)")
	require.ErrorContains(t, err, "entry 1")
	require.ErrorContains(t, err, "division by zero")
}
