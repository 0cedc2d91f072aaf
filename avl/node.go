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

// nilIndex marks a missing child or parent
const nilIndex int32 = -1

// slot is one arena cell. parent is a back-reference only; the tree owns
// every live slot reachable from root.
type slot[K, V any] struct {
	key    K
	value  V
	height int // leaf is 0
	left   int32
	right  int32
	parent int32
	gen    uint32 // bumped whenever the slot is freed or its payload replaced
	live   bool
}

// Node is a handle to an entry in a Tree. It stays usable until the entry
// is erased or its slot receives another entry's payload during an erase.
type Node[K, V any] struct {
	tree  *Tree[K, V]
	index int32
	gen   uint32
}

func (t *Tree[K, V]) handle(i int32) Node[K, V] {
	return Node[K, V]{tree: t, index: i, gen: t.slots[i].gen}
}

func (t *Tree[K, V]) isLive(i int32, gen uint32) bool {
	return i >= 0 && int(i) < len(t.slots) && t.slots[i].live && t.slots[i].gen == gen
}

// Valid reports whether the handle still refers to a live entry.
func (n Node[K, V]) Valid() bool {
	return n.tree != nil && n.tree.isLive(n.index, n.gen)
}

func (n Node[K, V]) slot() *slot[K, V] {
	if !n.Valid() {
		panic(ErrInvalidNode)
	}
	return &n.tree.slots[n.index]
}

// Key returns the entry's key.
func (n Node[K, V]) Key() K {
	return n.slot().key
}

// Value returns the entry's value.
func (n Node[K, V]) Value() V {
	return n.slot().value
}

// SetValue replaces the entry's value in place.
func (n Node[K, V]) SetValue(v V) {
	n.slot().value = v
}

// Height is the cached height of the subtree rooted at this node.
func (n Node[K, V]) Height() int {
	return n.slot().height
}

// BalanceFactor is height(left) - height(right), counting a missing child as -1.
func (n Node[K, V]) BalanceFactor() int {
	n.slot()
	return n.tree.balanceOf(n.index)
}

func (t *Tree[K, V]) heightOf(i int32) int {
	if i == nilIndex {
		return -1
	}
	return t.slots[i].height
}

func (t *Tree[K, V]) updateHeight(i int32) {
	s := &t.slots[i]
	s.height = 1 + max(t.heightOf(s.left), t.heightOf(s.right))
}

func (t *Tree[K, V]) balanceOf(i int32) int {
	s := &t.slots[i]
	return t.heightOf(s.left) - t.heightOf(s.right)
}

// alloc takes a slot from the free list, or grows the arena when it is empty.
func (t *Tree[K, V]) alloc(key K, value V, parent int32) int32 {
	var i int32
	if n := len(t.free); n > 0 {
		i = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		t.slots = append(t.slots, slot[K, V]{})
		i = int32(len(t.slots) - 1)
	}

	s := &t.slots[i]
	s.key = key
	s.value = value
	s.height = 0
	s.left = nilIndex
	s.right = nilIndex
	s.parent = parent
	s.live = true
	return i
}

// release clears a slot and puts it on the free list
func (t *Tree[K, V]) release(i int32) {
	var (
		zk K
		zv V
	)
	s := &t.slots[i]
	s.key = zk
	s.value = zv
	s.height = 0
	s.left = nilIndex
	s.right = nilIndex
	s.parent = nilIndex
	s.live = false
	s.gen++
	t.free = append(t.free, i)
}

func (t *Tree[K, V]) minimum(i int32) int32 {
	for t.slots[i].left != nilIndex {
		i = t.slots[i].left
	}
	return i
}

func (t *Tree[K, V]) maximum(i int32) int32 {
	for t.slots[i].right != nilIndex {
		i = t.slots[i].right
	}
	return i
}
