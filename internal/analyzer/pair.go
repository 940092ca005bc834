package analyzer

import (
	"fmt"
	"iter"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/guptarohit/asciigraph"

	"github.com/funvibe/beacontau/internal/evaluator"
	"github.com/funvibe/beacontau/internal/record"
)

// EventPair is the header and event record of one entry.
type EventPair struct {
	Entry  int
	Header *record.Header
	Event  *record.Event
}

// NewEventPair pairs h with e. Both must carry the same event number.
func NewEventPair(entry int, h *record.Header, e *record.Event) (*EventPair, error) {
	if h.EventNumber != e.EventNumber {
		return nil, errors.Wrapf(ErrMismatchedPair, "entry %d: header event_number %d, event event_number %d",
			entry, h.EventNumber, e.EventNumber)
	}
	return &EventPair{Entry: entry, Header: h, Event: e}, nil
}

func (p *EventPair) EventNumber() uint64 { return p.Event.EventNumber }

// Waveform returns the samples of one channel, cut to the buffer length
// when the readout is shorter than the stored array.
func (p *EventPair) Waveform(board, channel int) []int16 {
	if board < 0 || board >= len(p.Event.Data) {
		return nil
	}
	chans := p.Event.Data[board]
	if channel < 0 || channel >= len(chans) {
		return nil
	}
	samples := chans[channel]
	if n := int(p.Event.BufferLength); n > 0 && n < len(samples) {
		samples = samples[:n]
	}
	return samples
}

// Plot draws every channel waveform, board by board.
func (p *EventPair) Plot(width, height int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Event %d\n", p.EventNumber())
	for b, chans := range p.Event.Data {
		for c := range chans {
			samples := p.Waveform(b, c)
			if len(samples) == 0 {
				continue
			}
			data := make([]float64, len(samples))
			for i, s := range samples {
				data[i] = float64(s)
			}
			sb.WriteString(asciigraph.Plot(data,
				asciigraph.Height(height),
				asciigraph.Width(width),
				asciigraph.Caption(fmt.Sprintf("board %d channel %d", b, c)),
			))
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// Plot draws the waveforms of p with the analyzer's plot size.
func (a *Analyzer) Plot(p *EventPair) string {
	return p.Plot(a.plotWidth, a.plotHeight)
}

// pairs loads headers and events and checks they line up entry by entry.
func (a *Analyzer) pairs() ([]record.Header, []record.Event, error) {
	headers, err := a.loadHeaders()
	if err != nil {
		return nil, nil, err
	}
	events, err := a.loadEvents()
	if err != nil {
		return nil, nil, err
	}
	if len(headers) != len(events) {
		return nil, nil, errors.Wrapf(ErrLengthMismatch, "run %d: %d headers but %d events",
			a.run, len(headers), len(events))
	}
	return headers, events, nil
}

// GetEntry returns the header and event at entry i.
func (a *Analyzer) GetEntry(i int) (*EventPair, error) {
	headers, events, err := a.pairs()
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(headers) {
		return nil, errors.Newf("run %d: entry %d out of range [0, %d)", a.run, i, len(headers))
	}
	return NewEventPair(i, &headers[i], &events[i])
}

// Events iterates over every entry of the run. Pairing is checked up front,
// so the iterator itself cannot fail.
func (a *Analyzer) Events() (iter.Seq2[int, *EventPair], error) {
	headers, events, err := a.pairs()
	if err != nil {
		return nil, err
	}
	pairs := make([]*EventPair, len(headers))
	for i := range headers {
		if pairs[i], err = NewEventPair(i, &headers[i], &events[i]); err != nil {
			return nil, errors.Wrapf(err, "run %d", a.run)
		}
	}
	return func(yield func(int, *EventPair) bool) {
		for i, p := range pairs {
			if !yield(i, p) {
				return
			}
		}
	}, nil
}

// GetEvent finds the entry whose header carries eventNumber.
func (a *Analyzer) GetEvent(eventNumber uint64) (*EventPair, error) {
	numbers, err := a.GetAttribute("header.event_number")
	if err != nil {
		return nil, err
	}
	for i, n := range numbers {
		if matchesEventNumber(n, eventNumber) {
			return a.GetEntry(i)
		}
	}
	return nil, errors.Wrapf(ErrEventNotFound, "event %d in run %d", eventNumber, a.run)
}

func matchesEventNumber(obj evaluator.Object, want uint64) bool {
	switch v := obj.(type) {
	case *evaluator.Integer:
		return v.Value >= 0 && uint64(v.Value) == want
	case *evaluator.Float:
		return v.Value == float64(want)
	}
	return false
}
