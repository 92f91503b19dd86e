package observe

import (
	"encoding/json"
	"fmt"
	"slices"
)

type property struct {
	dep   *Dep
	value any
}

// Object is an observed composite. Reads through Get attribute a dependency
// to the active subscriber, writes through Set notify the key's subscribers.
//
// The source map an Object was built from is kept in sync with every Set, so
// callers holding the original map[string]any see current values.
type Object struct {
	sys   *System
	src   map[string]any
	keys  []string
	props map[string]*property

	// pending holds Deps for keys that were read while tracking but did not
	// exist yet. The first Set of such a key adopts the Dep.
	pending map[string]*Dep
}

func newObject(sys *System, src map[string]any) *Object {
	return &Object{
		sys:   sys,
		src:   src,
		props: make(map[string]*property, len(src)),
	}
}

func (o *Object) define(key string, value any, dep *Dep) {
	o.props[key] = &property{dep: dep, value: value}
	o.keys = append(o.keys, key)
}

// System returns the system the object belongs to.
func (o *Object) System() *System {
	return o.sys
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	p, ok := o.props[key]
	if !ok {
		if o.sys.active != nil {
			o.pendingDep(key).Depend()
		}
		return nil, false
	}
	if o.sys.active != nil {
		p.dep.Depend()
	}
	return p.value, true
}

// Set stores v under key. Composite values are observed first; assigning a
// value identical to the current one does nothing.
func (o *Object) Set(key string, v any) {
	raw := rawOf(v)
	v = o.sys.Observe(v)

	p, ok := o.props[key]
	if !ok {
		dep, wasPending := o.pending[key]
		if wasPending {
			delete(o.pending, key)
		} else {
			dep = o.sys.newDep()
		}
		o.define(key, v, dep)
		o.src[key] = raw
		dep.Notify()
		return
	}

	if same(p.value, v) {
		return
	}
	p.value = v
	o.src[key] = raw
	p.dep.Notify()
}

func (o *Object) pendingDep(key string) *Dep {
	if o.pending == nil {
		o.pending = map[string]*Dep{}
	}
	dep, ok := o.pending[key]
	if !ok {
		dep = o.sys.newDep()
		o.pending[key] = dep
	}
	return dep
}

// Dep returns the Dep backing key, nil if the key does not exist.
func (o *Object) Dep(key string) *Dep {
	if p, ok := o.props[key]; ok {
		return p.dep
	}
	return nil
}

// Keys returns the own keys in definition order.
func (o *Object) Keys() []string {
	return slices.Clone(o.keys)
}

func (o *Object) Len() int {
	return len(o.keys)
}

// Raw returns an untracked deep copy of the object as plain data.
func (o *Object) Raw() map[string]any {
	return o.raw(map[*Object]map[string]any{})
}

func (o *Object) raw(seen map[*Object]map[string]any) map[string]any {
	if m, ok := seen[o]; ok {
		return m
	}
	m := make(map[string]any, len(o.keys))
	seen[o] = m
	for _, key := range o.keys {
		v := o.props[key].value
		if child, ok := v.(*Object); ok {
			m[key] = child.raw(seen)
			continue
		}
		m[key] = v
	}
	return m
}

// String renders the object as JSON.
func (o *Object) String() string {
	b, err := json.Marshal(o.Raw())
	if err != nil {
		return fmt.Sprintf("Object(%d keys)", len(o.keys))
	}
	return string(b)
}

func rawOf(v any) any {
	if o, ok := v.(*Object); ok {
		return o.src
	}
	return v
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
