package store

import (
	"errors"
	"fmt"
	"sync"
)

var ErrInvalidStatus = errors.New("invalid task status")

// Persister stores a whole store state under a key. *db.DB satisfies it.
type Persister interface {
	SaveSnapshot(key string, value any) error
	LoadSnapshot(key string, dst any) (bool, error)
}

// Change is published to listeners after a store mutation has been persisted.
type Change struct {
	Store string `json:"store"`
	Kind  string `json:"kind"`
}

type Listener func(Change)

type listeners struct {
	mu   sync.Mutex
	next int
	fns  map[int]Listener
}

func (l *listeners) subscribe(fn Listener) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fns == nil {
		l.fns = make(map[int]Listener)
	}
	id := l.next
	l.next++
	l.fns[id] = fn

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.fns, id)
	}
}

func (l *listeners) notify(change Change) {
	l.mu.Lock()
	fns := make([]Listener, 0, len(l.fns))
	for _, fn := range l.fns {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(change)
	}
}

// container owns one store state. Writers mutate a clone and only swap it in
// once the snapshot has been saved, so a failed save leaves memory untouched.
type container[S any] struct {
	mu        sync.RWMutex
	state     S
	name      string
	key       string
	persister Persister
	clone     func(S) S
	listeners listeners
}

func newContainer[S any](name, key string, p Persister, initial S, clone func(S) S) (*container[S], error) {
	c := &container[S]{
		state:     initial,
		name:      name,
		key:       key,
		persister: p,
		clone:     clone,
	}

	if p == nil {
		return c, nil
	}

	loaded := initial
	found, err := p.LoadSnapshot(key, &loaded)
	if err != nil {
		return nil, fmt.Errorf("load %s store: %w", name, err)
	}
	if found {
		c.state = loaded
	}

	return c, nil
}

func (c *container[S]) read(fn func(state S)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn(c.state)
}

// write applies fn to a copy of the state. fn reports whether anything
// changed; unchanged writes are neither persisted nor published.
func (c *container[S]) write(kind string, fn func(state *S) (bool, error)) error {
	c.mu.Lock()

	next := c.clone(c.state)
	changed, err := fn(&next)
	if err != nil || !changed {
		c.mu.Unlock()
		return err
	}

	if c.persister != nil {
		if err := c.persister.SaveSnapshot(c.key, next); err != nil {
			c.mu.Unlock()
			return fmt.Errorf("persist %s store: %w", c.name, err)
		}
	}
	c.state = next
	c.mu.Unlock()

	c.listeners.notify(Change{Store: c.name, Kind: kind})
	return nil
}

func (c *container[S]) subscribe(fn Listener) func() {
	return c.listeners.subscribe(fn)
}
