package analyzer

import (
	"strconv"
	"strings"

	"github.com/funvibe/beacontau/internal/pipeline"
	"github.com/funvibe/beacontau/internal/record"
)

// Binding ties one placeholder of a compiled expression to a field.
type Binding struct {
	// Name is the field as written, e.g. readout_time or header.readout_time.
	Name  string
	Field record.Field
}

// Key identifies the attribute a binding reads, independent of how it was
// written.
func (b Binding) Key() string {
	return attributeKey(b.Field)
}

func attributeKey(f record.Field) string {
	return f.Kind.Prefix() + "." + f.Name
}

// binder replaces known field names in the source text with {k}
// placeholders. Qualified names (header.readout_time) are replaced first.
// Then bare names are tried kind by kind in priority order and, within a
// kind, longest name first; the first name found anywhere in the remaining
// text is replaced at its first occurrence and the scan restarts. Matching
// is on raw substrings, so a field name inside a longer identifier is still
// replaced.
type binder struct {
	registry *record.Registry
	// collided is called for a bare name declared by more than one kind.
	collided func(name string, kinds []record.Kind)

	bindings []Binding
}

func (b *binder) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	text := ctx.SourceCode
	b.bindings = b.bindings[:0]
	for {
		name, field, at, ok := b.find(text)
		if !ok {
			break
		}
		ph := "{" + strconv.Itoa(len(b.bindings)) + "}"
		text = text[:at] + ph + text[at+len(name):]
		b.bindings = append(b.bindings, Binding{Name: name, Field: field})
	}

	ctx.BoundCode = text
	ctx.Bound = make([]string, len(b.bindings))
	for i, bd := range b.bindings {
		ctx.Bound[i] = bd.Name
	}
	return ctx
}

// find returns the next name to substitute and where it occurs.
func (b *binder) find(text string) (string, record.Field, int, bool) {
	for _, kind := range record.Kinds {
		prefix := kind.Prefix() + "."
		if !strings.Contains(text, prefix) {
			continue
		}
		for _, f := range b.registry.Fields(kind) {
			if at := strings.Index(text, prefix+f.Name); at >= 0 {
				return prefix + f.Name, f, at, true
			}
		}
	}
	for _, kind := range record.Kinds {
		for _, f := range b.registry.Fields(kind) {
			at := strings.Index(text, f.Name)
			if at < 0 {
				continue
			}
			if b.collided != nil {
				if _, kinds, _ := b.registry.Resolve(f.Name); len(kinds) > 1 {
					b.collided(f.Name, kinds)
				}
			}
			return f.Name, f, at, true
		}
	}
	return "", record.Field{}, 0, false
}
