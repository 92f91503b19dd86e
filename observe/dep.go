package observe

import "slices"

// Subscriber is anything a Dep can notify.
type Subscriber interface {
	ID() uint64
	// Attach registers the subscriber with d. Implementations are expected to
	// do this at most once per Dep, the Dep itself does not deduplicate.
	Attach(d *Dep)
	Update()
}

// Dep records the subscribers of one observed key.
type Dep struct {
	id   uint64
	sys  *System
	subs []Subscriber
}

func (d *Dep) ID() uint64 {
	return d.id
}

// Len returns the number of registered subscribers.
func (d *Dep) Len() int {
	return len(d.subs)
}

func (d *Dep) AddSubscriber(sub Subscriber) {
	d.subs = append(d.subs, sub)
}

// RemoveSubscriber removes the first registration of sub.
func (d *Dep) RemoveSubscriber(sub Subscriber) {
	for i, existing := range d.subs {
		if existing == sub {
			d.subs = slices.Delete(d.subs, i, i+1)
			return
		}
	}
}

// Depend attaches the active subscriber, if there is one.
func (d *Dep) Depend() {
	if active := d.sys.active; active != nil {
		active.Attach(d)
	}
}

// Notify updates every subscriber registered when Notify was called, in
// registration order. Subscribers added or removed by an update take effect on
// the next notification.
func (d *Dep) Notify() {
	subs := slices.Clone(d.subs)
	for _, sub := range subs {
		sub.Update()
	}
}
