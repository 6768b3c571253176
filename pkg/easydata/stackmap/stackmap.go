// Package stackmap provides a map whose values are kept in per-key stacks.
//
// Several values can be pushed for the same key, each one shadowing the
// previous. Popping a key makes the previous value visible again. Keys are
// independent of each other, so pushes and pops of different keys may be
// interleaved freely as long as every key sees as many pops as pushes.
package stackmap

import (
	"sort"

	"github.com/edwingeng/deque"
)

// Map is a string keyed map of value stacks. The zero value is not usable, use New.
type Map[V any] struct {
	stacks map[string]deque.Deque
}

// New creates an empty map.
func New[V any]() *Map[V] {
	return &Map[V]{stacks: make(map[string]deque.Deque)}
}

// Push shadows the current value of key and returns the value it shadowed.
func (m *Map[V]) Push(key string, value V) (previous V, shadowed bool) {
	stack, ok := m.stacks[key]
	if !ok {
		stack = deque.NewDeque()
		m.stacks[key] = stack
	} else if stack.Len() > 0 {
		// A nil element fails the assertion and yields the zero value.
		previous, _ = stack.Back().(V)
		shadowed = true
	}
	stack.PushBack(value)
	return previous, shadowed
}

// Pop removes the current value of key and returns it. The key disappears once
// its last value is popped.
func (m *Map[V]) Pop(key string) (value V, ok bool) {
	stack, exists := m.stacks[key]
	if !exists || stack.Len() == 0 {
		return value, false
	}
	value, _ = stack.PopBack().(V)
	if stack.Len() == 0 {
		delete(m.stacks, key)
	}
	return value, true
}

// Get returns the current value of key.
func (m *Map[V]) Get(key string) (value V, ok bool) {
	stack, exists := m.stacks[key]
	if !exists || stack.Len() == 0 {
		return value, false
	}
	value, _ = stack.Back().(V)
	return value, true
}

// Contains reports whether key currently has a value.
func (m *Map[V]) Contains(key string) bool {
	_, ok := m.stacks[key]
	return ok
}

// Depth returns the number of values stacked for key.
func (m *Map[V]) Depth(key string) int {
	if stack, ok := m.stacks[key]; ok {
		return stack.Len()
	}
	return 0
}

// Len returns the number of keys with a value.
func (m *Map[V]) Len() int {
	return len(m.stacks)
}

// Keys returns the keys with a value, sorted.
func (m *Map[V]) Keys() []string {
	keys := make([]string, 0, len(m.stacks))
	for k := range m.stacks {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
