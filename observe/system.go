// Package observe is the dependency tracking core of mvvm.
//
// Data handed to a System is turned into Objects whose keys are each backed
// by exactly one Dep. A Watcher evaluates a dotted path against an Object
// while it is the system's active subscriber, so every key read along the
// path attaches the watcher to that key's Dep. Writing a different value to
// a key notifies every attached watcher, which re-evaluates and calls its
// callback when the result changed.
//
// A System is single threaded: everything created from it must be used from
// one goroutine at a time. Notification is synchronous and may re-enter, a
// callback writing to another key simply nests another Notify.
package observe

import (
	"reflect"
	"unsafe"
)

// System owns the active-subscriber slot, the id counters and the identity
// table of observed maps. It replaces the process wide "current target" of
// classic MVVM runtimes so two systems never attribute reads to each other.
type System struct {
	// active is the subscriber currently evaluating, nil outside evaluation.
	active Subscriber

	depSeq   uint64
	watchSeq uint64

	// observed maps the identity of a source map to the Object built for it.
	observed map[unsafe.Pointer]*Object
}

func NewSystem() *System {
	return &System{
		observed: map[unsafe.Pointer]*Object{},
	}
}

// Active returns the subscriber reads are currently attributed to.
func (s *System) Active() Subscriber {
	return s.active
}

// Track runs fn with sub as the active subscriber and restores the previous
// one afterwards, even if fn panics.
func (s *System) Track(sub Subscriber, fn func()) {
	prev := s.active
	defer func() {
		s.active = prev
	}()
	s.active = sub
	fn()
}

// Untracked runs fn with no active subscriber.
func (s *System) Untracked(fn func()) {
	s.Track(nil, fn)
}

// Counts reports how many Deps and Watchers the system has created.
func (s *System) Counts() (deps, watchers uint64) {
	return s.depSeq, s.watchSeq
}

func (s *System) newDep() *Dep {
	s.depSeq++
	return &Dep{id: s.depSeq, sys: s}
}

// Observe makes v reactive if it is composite. A map[string]any is wrapped
// once; observing the same map again returns the same *Object. An *Object of
// s is returned unchanged, one from another System is rebuilt in s over the
// same source map. Every other value is returned as is.
func (s *System) Observe(v any) any {
	switch v := v.(type) {
	case *Object:
		if v.sys == s {
			return v
		}
		return s.ObserveMap(v.src)
	case map[string]any:
		return s.ObserveMap(v)
	default:
		return v
	}
}

// ObserveMap returns the Object backing m, building it on first use. Nested
// composites are observed before the key that holds them gets its Dep.
func (s *System) ObserveMap(m map[string]any) *Object {
	if m == nil {
		return s.NewObject()
	}

	id := reflect.ValueOf(m).UnsafePointer()
	if o, ok := s.observed[id]; ok {
		return o
	}

	o := newObject(s, m)
	// registered before recursing so self referencing data terminates
	s.observed[id] = o

	for _, key := range sortedKeys(m) {
		value := s.Observe(m[key])
		o.define(key, value, s.newDep())
	}
	return o
}

// NewObject returns an empty reactive object.
func (s *System) NewObject() *Object {
	return newObject(s, map[string]any{})
}
