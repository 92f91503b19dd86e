package observe

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Callback receives the new and previous value of a watched expression.
type Callback func(newValue, oldValue any)

// Watcher keeps a callback in sync with a dotted path evaluated against a
// root Object.
type Watcher struct {
	sys   *System
	id    uint64
	root  *Object
	path  Path
	cb    Callback
	value any

	// ids of the Deps this watcher is registered with
	depIDs mapset.Set[uint64]
}

// Watch evaluates expr against root once and returns a Watcher that calls cb
// whenever a later write changes the result. cb is not called for the
// initial value.
func (s *System) Watch(root *Object, expr string, cb Callback) *Watcher {
	s.watchSeq++
	w := &Watcher{
		sys:    s,
		id:     s.watchSeq,
		root:   root,
		path:   ParsePath(expr),
		cb:     cb,
		depIDs: mapset.NewThreadUnsafeSet[uint64](),
	}
	w.value = w.evaluate()
	return w
}

func (w *Watcher) ID() uint64 {
	return w.id
}

func (w *Watcher) Expr() string {
	return w.path.String()
}

// Value returns the last evaluated value.
func (w *Watcher) Value() any {
	return w.value
}

// Deps returns the number of Deps the watcher is attached to.
func (w *Watcher) Deps() int {
	return w.depIDs.Cardinality()
}

func (w *Watcher) evaluate() (v any) {
	w.sys.Track(w, func() {
		v = resolve(w.root, w.path)
	})
	return v
}

// Attach registers the watcher with d unless it already is.
func (w *Watcher) Attach(d *Dep) {
	if w.depIDs.Contains(d.ID()) {
		return
	}
	w.depIDs.Add(d.ID())
	d.AddSubscriber(w)
}

// Update re-evaluates the expression, tracking again so subtrees attached
// since the last evaluation are picked up, and calls the callback if the
// value changed.
func (w *Watcher) Update() {
	value := w.evaluate()
	old := w.value
	if same(value, old) {
		return
	}
	w.value = value
	if w.cb != nil {
		w.cb(value, old)
	}
}
