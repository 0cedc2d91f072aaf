// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package avl

// Iterator is a forward cursor over a tree in ascending key order.
// Inserting or erasing while iterating invalidates it; this is not detected.
type Iterator[K, V any] struct {
	tree  *Tree[K, V]
	index int32
}

// Begin returns an iterator at the smallest key, or End for an empty tree.
func (t *Tree[K, V]) Begin() Iterator[K, V] {
	if t.root == nilIndex {
		return t.End()
	}
	return Iterator[K, V]{tree: t, index: t.minimum(t.root)}
}

// End returns the past-the-last sentinel.
func (t *Tree[K, V]) End() Iterator[K, V] {
	return Iterator[K, V]{tree: t, index: nilIndex}
}

// Ceiling returns an iterator at the first key >= key, or End.
func (t *Tree[K, V]) Ceiling(key K) Iterator[K, V] {
	best := nilIndex
	cur := t.root
	for cur != nilIndex {
		c := t.compare(key, t.slots[cur].key)
		switch {
		case c < 0:
			best = cur
			cur = t.slots[cur].left
		case c > 0:
			cur = t.slots[cur].right
		default:
			return Iterator[K, V]{tree: t, index: cur}
		}
	}
	return Iterator[K, V]{tree: t, index: best}
}

// Valid reports whether the iterator points at an entry.
func (it Iterator[K, V]) Valid() bool {
	return it.tree != nil && it.index != nilIndex
}

// Equal reports whether both iterators point at the same position.
func (it Iterator[K, V]) Equal(other Iterator[K, V]) bool {
	return it.tree == other.tree && it.index == other.index
}

// Next advances to the successor. It is a no-op at End.
func (it *Iterator[K, V]) Next() {
	if !it.Valid() {
		return
	}
	it.index = it.tree.successor(it.index)
}

func (it Iterator[K, V]) slot() *slot[K, V] {
	if !it.Valid() {
		panic("avl: iterator is at end")
	}
	return &it.tree.slots[it.index]
}

func (it Iterator[K, V]) Key() K {
	return it.slot().key
}

func (it Iterator[K, V]) Value() V {
	return it.slot().value
}

// SetValue replaces the value at the current position.
func (it Iterator[K, V]) SetValue(v V) {
	it.slot().value = v
}

// Node returns a handle to the current entry.
func (it Iterator[K, V]) Node() Node[K, V] {
	it.slot()
	return it.tree.handle(it.index)
}

// successor returns the slot holding the next larger key, or nilIndex when
// i holds the largest.
func (t *Tree[K, V]) successor(i int32) int32 {
	if r := t.slots[i].right; r != nilIndex {
		return t.minimum(r)
	}

	// climb while we are a right child; the first parent reached from its
	// left side is the successor
	for p := t.slots[i].parent; p != nilIndex; p = t.slots[p].parent {
		if t.slots[p].left == i {
			return p
		}
		i = p
	}
	return nilIndex
}
