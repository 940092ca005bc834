package evaluator

// Environment holds the values visible to one evaluation: builtins by name
// and the per-entry values of the bound placeholders.
type Environment struct {
	store map[string]Object
	slots []Object
	outer *Environment
}

func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Object)}
}

// NewSlotEnvironment returns an environment over outer with the given
// placeholder values. slots is used in place and must not be mutated while
// the environment is in use.
func NewSlotEnvironment(outer *Environment, slots []Object) *Environment {
	return &Environment{slots: slots, outer: outer}
}

func (e *Environment) Get(name string) (Object, bool) {
	obj, ok := e.store[name]
	if !ok && e.outer != nil {
		obj, ok = e.outer.Get(name)
	}
	return obj, ok
}

func (e *Environment) Set(name string, val Object) Object {
	if e.store == nil {
		e.store = make(map[string]Object)
	}
	e.store[name] = val
	return val
}

// Slot returns the value bound to placeholder idx.
func (e *Environment) Slot(idx int) (Object, bool) {
	if idx >= 0 && idx < len(e.slots) {
		return e.slots[idx], true
	}
	if e.outer != nil {
		return e.outer.Slot(idx)
	}
	return nil, false
}
