package collection

import (
	"iter"
	"maps"
	"slices"

	"state-generator/reactive"
)

// HashMap is an observable key→value store. Every value is its own cell, and
// every entry can delete itself from the map without knowing its key.
type HashMap[K comparable, V any] struct {
	entries *reactive.Signal[map[K]*Item[V]]
	tokens  uint64
}

// Item is a value cell stored in a HashMap together with its removal
// capability.
type Item[V any] struct {
	*reactive.Signal[V]
	token uint64
	owner entryOwner
}

// entryOwner is the shared handle an item uses to reach its map. Items hold a
// key and a token instead of a closure over the live map.
type entryOwner interface {
	removeEntry(token uint64) bool
	holds(token uint64) bool
}

type entryRef[K comparable, V any] struct {
	m   *HashMap[K, V]
	key K
}

func (r entryRef[K, V]) removeEntry(token uint64) bool {
	return r.m.removeIf(r.key, token)
}

func (r entryRef[K, V]) holds(token uint64) bool {
	cur, ok := r.m.entries.GetUntracked()[r.key]
	return ok && cur.token == token
}

// NewHashMap builds a map with one cell and removal capability per pair.
func NewHashMap[K comparable, V any](initial map[K]V) *HashMap[K, V] {
	m := &HashMap[K, V]{
		entries: reactive.New(make(map[K]*Item[V], len(initial))),
	}

	entries := m.entries.GetUntracked()
	for k, v := range initial {
		entries[k] = m.newItem(k, v)
	}

	return m
}

func (m *HashMap[K, V]) newItem(key K, value V) *Item[V] {
	m.tokens++

	return &Item[V]{
		Signal: reactive.New(value),
		token:  m.tokens,
		owner:  entryRef[K, V]{m: m, key: key},
	}
}

// Insert stores value under key and returns the new entry. An existing entry
// under key is replaced; its removal capability turns into a no-op.
func (m *HashMap[K, V]) Insert(key K, value V) *Item[V] {
	item := m.newItem(key, value)

	m.entries.Modify(func(entries *map[K]*Item[V]) {
		(*entries)[key] = item
	})

	return item
}

// removeIf deletes key only while it still maps to the entry holding token.
func (m *HashMap[K, V]) removeIf(key K, token uint64) bool {
	cur, ok := m.entries.GetUntracked()[key]
	if !ok || cur.token != token {
		return false
	}

	m.entries.Modify(func(entries *map[K]*Item[V]) {
		delete(*entries, key)
	})

	return true
}

// Get returns the entry stored under key.
func (m *HashMap[K, V]) Get(key K) (*Item[V], bool) {
	item, ok := m.entries.Get()[key]
	return item, ok
}

// Len returns the number of entries.
func (m *HashMap[K, V]) Len() int {
	return len(m.entries.Get())
}

// Keys returns the current keys in no particular order.
func (m *HashMap[K, V]) Keys() []K {
	return slices.Collect(maps.Keys(m.entries.Get()))
}

// Entries iterates over a snapshot of the map, so entries may remove
// themselves while iterating.
func (m *HashMap[K, V]) Entries() iter.Seq2[K, *Item[V]] {
	return maps.All(maps.Clone(m.entries.Get()))
}

// Remove deletes this entry from its map. It reports false, and changes
// nothing, when the entry was already removed or replaced.
func (it *Item[V]) Remove() bool {
	return it.owner.removeEntry(it.token)
}

// Live reports whether the map still holds this exact entry.
func (it *Item[V]) Live() bool {
	return it.owner.holds(it.token)
}
