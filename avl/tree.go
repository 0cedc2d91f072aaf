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

import "cmp"

// Tree is an ordered map from K to V.
type Tree[K, V any] struct {
	slots    []slot[K, V]
	free     []int32
	root     int32
	count    int
	compare  func(a, b K) int
	observer Observer[K]
}

// New returns an empty tree ordered by cmp.Compare.
func New[K cmp.Ordered, V any]() *Tree[K, V] {
	return NewFunc[K, V](cmp.Compare[K])
}

// NewFunc returns an empty tree ordered by compare, which must return a
// negative number when a < b, zero when they are equal and a positive
// number when a > b.
func NewFunc[K, V any](compare func(a, b K) int) *Tree[K, V] {
	if compare == nil {
		panic("avl: nil compare function")
	}
	return &Tree[K, V]{
		root:    nilIndex,
		compare: compare,
	}
}

// SetObserver attaches o to receive mutation events. A nil o detaches.
func (t *Tree[K, V]) SetObserver(o Observer[K]) {
	t.observer = o
}

// Len is the number of entries in the tree.
func (t *Tree[K, V]) Len() int {
	return t.count
}

// IsEmpty reports whether the tree has no entries.
func (t *Tree[K, V]) IsEmpty() bool {
	return t.root == nilIndex
}

// Insert adds key with value and returns its node. When key is already
// present the existing node is returned and its value is left unchanged.
func (t *Tree[K, V]) Insert(key K, value V) Node[K, V] {
	parent := nilIndex
	cur := t.root
	c := 0
	for cur != nilIndex {
		parent = cur
		c = t.compare(key, t.slots[cur].key)
		switch {
		case c < 0:
			cur = t.slots[cur].left
		case c > 0:
			cur = t.slots[cur].right
		default:
			return t.handle(cur)
		}
	}

	n := t.alloc(key, value, parent)
	switch {
	case parent == nilIndex:
		t.root = n
	case c < 0:
		t.slots[parent].left = n
	default:
		t.slots[parent].right = n
	}
	t.count++

	if t.observer != nil {
		t.observer.Inserted(key)
	}
	t.rebalance(parent)
	return t.handle(n)
}

// Find looks up key. ok is false when the key is not in the tree.
func (t *Tree[K, V]) Find(key K) (n Node[K, V], ok bool) {
	cur := t.root
	for cur != nilIndex {
		c := t.compare(key, t.slots[cur].key)
		switch {
		case c < 0:
			cur = t.slots[cur].left
		case c > 0:
			cur = t.slots[cur].right
		default:
			return t.handle(cur), true
		}
	}
	return Node[K, V]{}, false
}

// Height returns the height of the root, 0 for a single entry.
func (t *Tree[K, V]) Height() (int, error) {
	if t.root == nilIndex {
		return 0, ErrEmptyTree
	}
	return t.slots[t.root].height, nil
}

// Min returns the node with the smallest key.
func (t *Tree[K, V]) Min() (Node[K, V], error) {
	if t.root == nilIndex {
		return Node[K, V]{}, ErrEmptyTree
	}
	return t.handle(t.minimum(t.root)), nil
}

// Max returns the node with the largest key.
func (t *Tree[K, V]) Max() (Node[K, V], error) {
	if t.root == nilIndex {
		return Node[K, V]{}, ErrEmptyTree
	}
	return t.handle(t.maximum(t.root)), nil
}

// Clear removes every entry. Handles taken before Clear become invalid.
func (t *Tree[K, V]) Clear() {
	for i := range t.slots {
		if t.slots[i].live {
			t.release(int32(i))
		}
	}
	t.root = nilIndex
	t.count = 0
}
