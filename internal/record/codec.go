package record

import (
	"math"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/valyala/fastjson"
)

// Records are stored as one JSON object per entry, keyed by field name.
// Event numbers and trigger times are 64-bit and may exceed the float64
// integer range, so they are encoded as JSON numbers from their decimal
// text rather than through float64.

// EncodeStatus appends the JSON form of s to dst.
func EncodeStatus(dst []byte, a *fastjson.Arena, s *Status) []byte {
	o := a.NewObject()
	o.Set("readout_time", a.NewNumberFloat64(s.ReadoutTime))
	o.Set("readout_time_ns", uintValue(a, uint64(s.ReadoutTimeNs)))
	o.Set("trigger_thresholds", uintArray(a, s.TriggerThresholds))
	o.Set("global_scalers", uintArray(a, s.GlobalScalers))
	o.Set("beam_scalers", uintArray(a, s.BeamScalers))
	o.Set("deadtime", uintValue(a, uint64(s.Deadtime)))
	o.Set("latched_pps_time", a.NewNumberFloat64(s.LatchedPPSTime))
	o.Set("dynamic_beam_mask", uintValue(a, uint64(s.DynamicBeamMask)))
	return o.MarshalTo(dst)
}

// EncodeHeader appends the JSON form of h to dst.
func EncodeHeader(dst []byte, a *fastjson.Arena, h *Header) []byte {
	o := a.NewObject()
	o.Set("event_number", uintValue(a, h.EventNumber))
	o.Set("trigger_number", uintValue(a, uint64(h.TriggerNumber)))
	o.Set("buffer_length", uintValue(a, uint64(h.BufferLength)))
	o.Set("pretrigger_samples", uintValue(a, uint64(h.PretriggerSamples)))
	o.Set("readout_time", a.NewNumberFloat64(h.ReadoutTime))
	o.Set("readout_time_ns", uintValue(a, uint64(h.ReadoutTimeNs)))
	o.Set("trigger_time", uintValue(a, h.TriggerTime))
	o.Set("trigger_type", uintValue(a, uint64(h.TriggerType)))
	o.Set("triggered_beams", uintValue(a, uint64(h.TriggeredBeams)))
	o.Set("channel_mask", uintValue(a, uint64(h.ChannelMask)))
	o.Set("calpulser", boolValue(a, h.Calpulser))
	o.Set("sync_problem", boolValue(a, h.SyncProblem))
	return o.MarshalTo(dst)
}

// EncodeEvent appends the JSON form of e to dst.
func EncodeEvent(dst []byte, a *fastjson.Arena, e *Event) []byte {
	o := a.NewObject()
	o.Set("event_number", uintValue(a, e.EventNumber))
	o.Set("buffer_length", uintValue(a, uint64(e.BufferLength)))
	boards := a.NewArray()
	for b, board := range e.Data {
		channels := a.NewArray()
		for c, samples := range board {
			arr := a.NewArray()
			for i, s := range samples {
				arr.SetArrayItem(i, a.NewNumberInt(int(s)))
			}
			channels.SetArrayItem(c, arr)
		}
		boards.SetArrayItem(b, channels)
	}
	o.Set("data", boards)
	return o.MarshalTo(dst)
}

func uintValue(a *fastjson.Arena, n uint64) *fastjson.Value {
	return a.NewNumberString(strconv.FormatUint(n, 10))
}

func boolValue(a *fastjson.Arena, b bool) *fastjson.Value {
	if b {
		return a.NewTrue()
	}
	return a.NewFalse()
}

func uintArray[T uint16 | uint32](a *fastjson.Arena, xs []T) *fastjson.Value {
	arr := a.NewArray()
	for i, x := range xs {
		arr.SetArrayItem(i, uintValue(a, uint64(x)))
	}
	return arr
}

// decoder reads typed fields out of a parsed object, keeping the first error.
// Missing fields decode as zero values.
type decoder struct {
	v   *fastjson.Value
	err error
}

func (d *decoder) field(key string) *fastjson.Value {
	if d.err != nil {
		return nil
	}
	return d.v.Get(key)
}

func (d *decoder) fail(key string, err error) {
	if d.err == nil {
		d.err = errors.Wrapf(err, "field %s", key)
	}
}

func (d *decoder) float(key string) float64 {
	f := d.field(key)
	if f == nil {
		return 0
	}
	x, err := f.Float64()
	if err != nil {
		d.fail(key, err)
	}
	return x
}

func (d *decoder) uint(key string, max uint64) uint64 {
	f := d.field(key)
	if f == nil {
		return 0
	}
	return d.uintOf(key, f, max)
}

func (d *decoder) uintOf(key string, f *fastjson.Value, max uint64) uint64 {
	x, err := f.Uint64()
	if err != nil {
		d.fail(key, err)
		return 0
	}
	if x > max {
		d.fail(key, errors.Newf("value %d out of range", x))
		return 0
	}
	return x
}

func (d *decoder) bool(key string) bool {
	f := d.field(key)
	if f == nil {
		return false
	}
	b, err := f.Bool()
	if err != nil {
		d.fail(key, err)
	}
	return b
}

func (d *decoder) array(key string, f *fastjson.Value) []*fastjson.Value {
	if f == nil {
		return nil
	}
	items, err := f.Array()
	if err != nil {
		d.fail(key, err)
	}
	return items
}

func decodeUints[T uint16 | uint32](d *decoder, key string, max uint64) []T {
	items := d.array(key, d.field(key))
	if len(items) == 0 {
		return nil
	}
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = T(d.uintOf(key, item, max))
	}
	return out
}

func parseObject(p *fastjson.Parser, data []byte) (*decoder, error) {
	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	if v.Type() != fastjson.TypeObject {
		return nil, errors.Newf("expected JSON object, got %s", v.Type())
	}
	return &decoder{v: v}, nil
}

// DecodeStatus parses one Status record.
func DecodeStatus(p *fastjson.Parser, data []byte) (Status, error) {
	d, err := parseObject(p, data)
	if err != nil {
		return Status{}, err
	}
	s := Status{
		ReadoutTime:       d.float("readout_time"),
		ReadoutTimeNs:     uint32(d.uint("readout_time_ns", math.MaxUint32)),
		TriggerThresholds: decodeUints[uint32](d, "trigger_thresholds", math.MaxUint32),
		GlobalScalers:     decodeUints[uint16](d, "global_scalers", math.MaxUint16),
		BeamScalers:       decodeUints[uint16](d, "beam_scalers", math.MaxUint16),
		Deadtime:          uint32(d.uint("deadtime", math.MaxUint32)),
		LatchedPPSTime:    d.float("latched_pps_time"),
		DynamicBeamMask:   uint32(d.uint("dynamic_beam_mask", math.MaxUint32)),
	}
	return s, d.err
}

// DecodeHeader parses one Header record.
func DecodeHeader(p *fastjson.Parser, data []byte) (Header, error) {
	d, err := parseObject(p, data)
	if err != nil {
		return Header{}, err
	}
	h := Header{
		EventNumber:       d.uint("event_number", math.MaxUint64),
		TriggerNumber:     uint32(d.uint("trigger_number", math.MaxUint32)),
		BufferLength:      uint16(d.uint("buffer_length", math.MaxUint16)),
		PretriggerSamples: uint16(d.uint("pretrigger_samples", math.MaxUint16)),
		ReadoutTime:       d.float("readout_time"),
		ReadoutTimeNs:     uint32(d.uint("readout_time_ns", math.MaxUint32)),
		TriggerTime:       d.uint("trigger_time", math.MaxUint64),
		TriggerType:       uint8(d.uint("trigger_type", math.MaxUint8)),
		TriggeredBeams:    uint32(d.uint("triggered_beams", math.MaxUint32)),
		ChannelMask:       uint32(d.uint("channel_mask", math.MaxUint32)),
		Calpulser:         d.bool("calpulser"),
		SyncProblem:       d.bool("sync_problem"),
	}
	return h, d.err
}

// DecodeEvent parses one Event record.
func DecodeEvent(p *fastjson.Parser, data []byte) (Event, error) {
	d, err := parseObject(p, data)
	if err != nil {
		return Event{}, err
	}
	e := Event{
		EventNumber:  d.uint("event_number", math.MaxUint64),
		BufferLength: uint16(d.uint("buffer_length", math.MaxUint16)),
	}
	boards := d.array("data", d.field("data"))
	if boards != nil {
		e.Data = make([][][]int16, len(boards))
	}
	for b, board := range boards {
		channels := d.array("data", board)
		e.Data[b] = make([][]int16, len(channels))
		for c, channel := range channels {
			samples := d.array("data", channel)
			out := make([]int16, len(samples))
			for i, s := range samples {
				n, err := s.Int()
				if err == nil && (n < math.MinInt16 || n > math.MaxInt16) {
					err = errors.Newf("sample %d out of range", n)
				}
				if err != nil {
					d.fail("data", err)
					break
				}
				out[i] = int16(n)
			}
			e.Data[b][c] = out
		}
	}
	return e, d.err
}
