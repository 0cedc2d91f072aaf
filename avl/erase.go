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

// Erase removes the entry n refers to. It returns ErrInvalidNode when n is
// the zero Node, came from another tree, or was already erased.
//
// A node with two children takes over the key and value of its in-order
// successor, and the successor's slot is removed instead. Handles to either
// entry are invalid afterwards.
func (t *Tree[K, V]) Erase(n Node[K, V]) error {
	if n.tree != t || !t.isLive(n.index, n.gen) {
		return ErrInvalidNode
	}

	i := n.index
	key := t.slots[i].key

	if s := &t.slots[i]; s.left != nilIndex && s.right != nilIndex {
		succ := t.minimum(s.right)
		t.swapPayload(i, succ)
		t.slots[i].gen++
		i = succ
	}
	t.unlink(i)

	if t.observer != nil {
		t.observer.Erased(key)
	}
	return nil
}

// Delete removes key and returns the value it held.
func (t *Tree[K, V]) Delete(key K) (V, bool) {
	n, ok := t.Find(key)
	if !ok {
		var zero V
		return zero, false
	}
	v := n.Value()
	if err := t.Erase(n); err != nil {
		panic(err) // a handle fresh from Find is always live
	}
	return v, true
}

func (t *Tree[K, V]) swapPayload(a, b int32) {
	sa, sb := &t.slots[a], &t.slots[b]
	sa.key, sb.key = sb.key, sa.key
	sa.value, sb.value = sb.value, sa.value
}

// unlink removes slot i, which has at most one child, by moving that child
// (or nothing) into i's place. Rebalancing starts at i's old parent.
func (t *Tree[K, V]) unlink(i int32) {
	parent := t.slots[i].parent
	child := t.slots[i].left
	if child == nilIndex {
		child = t.slots[i].right
	}

	t.replaceChild(parent, i, child)
	if child != nilIndex {
		t.slots[child].parent = parent
	}

	t.release(i)
	t.count--
	t.rebalance(parent)
}
