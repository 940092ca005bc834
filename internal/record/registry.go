package record

import (
	"sort"

	"github.com/cockroachdb/errors"
)

// Field is a named attribute of one record kind.
type Field struct {
	Name string
	Kind Kind
	get  func(rec any) any
}

// Get reads the field from rec, which must be a pointer to the struct of
// the field's kind.
func (f Field) Get(rec any) any {
	return f.get(rec)
}

func fieldOf[T any](kind Kind, name string, get func(*T) any) Field {
	return Field{Name: name, Kind: kind, get: func(rec any) any { return get(rec.(*T)) }}
}

// StatusField declares a Status attribute.
func StatusField(name string, get func(*Status) any) Field { return fieldOf(KindStatus, name, get) }

// HeaderField declares a Header attribute.
func HeaderField(name string, get func(*Header) any) Field { return fieldOf(KindHeader, name, get) }

// EventField declares an Event attribute.
func EventField(name string, get func(*Event) any) Field { return fieldOf(KindEvent, name, get) }

// Registry is the set of field names known for each record kind. Within a
// kind names are unique and kept sorted longest-first, so a scan over the
// list finds trigger_thresholds before trigger_threshold.
type Registry struct {
	fields [3][]Field
	index  [3]map[string]Field
}

// NewRegistry builds a registry from field declarations. Duplicate names
// within one kind are rejected.
func NewRegistry(fields ...Field) (*Registry, error) {
	r := &Registry{}
	for i := range r.index {
		r.index[i] = make(map[string]Field)
	}
	for _, f := range fields {
		if f.Name == "" {
			return nil, errors.Newf("%s field with empty name", f.Kind)
		}
		if _, dup := r.index[f.Kind][f.Name]; dup {
			return nil, errors.Newf("duplicate %s field %q", f.Kind, f.Name)
		}
		r.index[f.Kind][f.Name] = f
		r.fields[f.Kind] = append(r.fields[f.Kind], f)
	}
	for k := range r.fields {
		sortLongestFirst(r.fields[k])
	}
	return r, nil
}

// MustRegistry is NewRegistry for static declarations.
func MustRegistry(fields ...Field) *Registry {
	r, err := NewRegistry(fields...)
	if err != nil {
		panic(err)
	}
	return r
}

func sortLongestFirst(fields []Field) {
	sort.SliceStable(fields, func(i, j int) bool {
		if len(fields[i].Name) != len(fields[j].Name) {
			return len(fields[i].Name) > len(fields[j].Name)
		}
		return fields[i].Name < fields[j].Name
	})
}

// Fields returns the fields of kind, longest name first. The slice must not
// be modified.
func (r *Registry) Fields(kind Kind) []Field {
	return r.fields[kind]
}

// Names returns the field names of kind, longest first.
func (r *Registry) Names(kind Kind) []string {
	names := make([]string, len(r.fields[kind]))
	for i, f := range r.fields[kind] {
		names[i] = f.Name
	}
	return names
}

// Lookup finds name in one kind.
func (r *Registry) Lookup(kind Kind, name string) (Field, bool) {
	f, ok := r.index[kind][name]
	return f, ok
}

// Resolve finds name in priority order (Status, Header, Event). The second
// result lists every kind that declares the name.
func (r *Registry) Resolve(name string) (Field, []Kind, bool) {
	var (
		found  Field
		kinds  []Kind
		exists bool
	)
	for _, k := range Kinds {
		if f, ok := r.index[k][name]; ok {
			if !exists {
				found, exists = f, true
			}
			kinds = append(kinds, k)
		}
	}
	return found, kinds, exists
}

var defaultRegistry = MustRegistry(
	StatusField("readout_time", func(s *Status) any { return s.ReadoutTime }),
	StatusField("readout_time_ns", func(s *Status) any { return s.ReadoutTimeNs }),
	StatusField("trigger_thresholds", func(s *Status) any { return s.TriggerThresholds }),
	StatusField("global_scalers", func(s *Status) any { return s.GlobalScalers }),
	StatusField("beam_scalers", func(s *Status) any { return s.BeamScalers }),
	StatusField("deadtime", func(s *Status) any { return s.Deadtime }),
	StatusField("latched_pps_time", func(s *Status) any { return s.LatchedPPSTime }),
	StatusField("dynamic_beam_mask", func(s *Status) any { return s.DynamicBeamMask }),

	HeaderField("event_number", func(h *Header) any { return h.EventNumber }),
	HeaderField("trigger_number", func(h *Header) any { return h.TriggerNumber }),
	HeaderField("buffer_length", func(h *Header) any { return h.BufferLength }),
	HeaderField("pretrigger_samples", func(h *Header) any { return h.PretriggerSamples }),
	HeaderField("readout_time", func(h *Header) any { return h.ReadoutTime }),
	HeaderField("readout_time_ns", func(h *Header) any { return h.ReadoutTimeNs }),
	HeaderField("trigger_time", func(h *Header) any { return h.TriggerTime }),
	HeaderField("trigger_type", func(h *Header) any { return h.TriggerType }),
	HeaderField("triggered_beams", func(h *Header) any { return h.TriggeredBeams }),
	HeaderField("channel_mask", func(h *Header) any { return h.ChannelMask }),
	HeaderField("calpulser", func(h *Header) any { return h.Calpulser }),
	HeaderField("sync_problem", func(h *Header) any { return h.SyncProblem }),

	EventField("event_number", func(e *Event) any { return e.EventNumber }),
	EventField("buffer_length", func(e *Event) any { return e.BufferLength }),
	EventField("data", func(e *Event) any { return e.Data }),
)

// Default returns the registry of BEACON Status, Header and Event fields.
func Default() *Registry {
	return defaultRegistry
}

// Fields returns the default fields of kind, longest name first.
func Fields(kind Kind) []Field {
	return defaultRegistry.Fields(kind)
}

// Lookup finds name among the default fields of kind.
func Lookup(kind Kind, name string) (Field, bool) {
	return defaultRegistry.Lookup(kind, name)
}
