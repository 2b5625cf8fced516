package sets

import "slices"

// Set is a simple generic hash set for comparable keys.
// Usage: s := sets.New[string]("a","b"); s.Add("c"); if s.Has("b") {...}
type Set[T comparable] map[T]struct{}

// New creates a set pre-populated with the provided values.
func New[T comparable](vals ...T) Set[T] {
	s := make(Set[T], len(vals))
	for _, v := range vals {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts value into the set.
func (s Set[T]) Add(v T) { s[v] = struct{}{} }

// Has returns true if v is present.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Ordered is a set that remembers insertion order. The zero value is ready to use.
//
// Output generation iterates it, so the order of first insertion decides the
// order of emitted artifacts.
type Ordered[T comparable] struct {
	index Set[T]
	items []T
}

// Add inserts v and reports whether it was not present before.
func (o *Ordered[T]) Add(v T) bool {
	if o.index == nil {
		o.index = make(Set[T])
	}
	if o.index.Has(v) {
		return false
	}
	o.index.Add(v)
	o.items = append(o.items, v)
	return true
}

// Has returns true if v is present.
func (o *Ordered[T]) Has(v T) bool { return o.index.Has(v) }

// Len returns the number of distinct values.
func (o *Ordered[T]) Len() int { return len(o.items) }

// Items returns the values in insertion order.
func (o *Ordered[T]) Items() []T { return slices.Clone(o.items) }
