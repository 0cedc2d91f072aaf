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

// rotateLeft promotes the right child of pivot and returns it as the new
// subtree root. Only pivot and the promoted node change height.
func (t *Tree[K, V]) rotateLeft(pivot int32) int32 {
	up := t.slots[pivot].right
	parent := t.slots[pivot].parent

	inner := t.slots[up].left
	t.slots[pivot].right = inner
	if inner != nilIndex {
		t.slots[inner].parent = pivot
	}

	t.slots[up].left = pivot
	t.slots[pivot].parent = up

	t.slots[up].parent = parent
	t.replaceChild(parent, pivot, up)

	t.updateHeight(pivot)
	t.updateHeight(up)
	return up
}

// rotateRight is the mirror of rotateLeft.
func (t *Tree[K, V]) rotateRight(pivot int32) int32 {
	up := t.slots[pivot].left
	parent := t.slots[pivot].parent

	inner := t.slots[up].right
	t.slots[pivot].left = inner
	if inner != nilIndex {
		t.slots[inner].parent = pivot
	}

	t.slots[up].right = pivot
	t.slots[pivot].parent = up

	t.slots[up].parent = parent
	t.replaceChild(parent, pivot, up)

	t.updateHeight(pivot)
	t.updateHeight(up)
	return up
}

// replaceChild points whichever link of parent held old at repl, or the
// root when parent is nilIndex. It does not touch repl's parent link.
func (t *Tree[K, V]) replaceChild(parent, old, repl int32) {
	switch {
	case parent == nilIndex:
		t.root = repl
	case t.slots[parent].left == old:
		t.slots[parent].left = repl
	default:
		t.slots[parent].right = repl
	}
}

// rebalance walks from i up to the root, refreshing heights and rotating
// wherever the balance factor has left [-1, 1].
func (t *Tree[K, V]) rebalance(i int32) {
	for i != nilIndex {
		t.updateHeight(i)

		switch bf := t.balanceOf(i); {
		case bf > 1:
			left := t.slots[i].left
			if t.balanceOf(left) >= 0 {
				t.notifyRebalance(LL, i)
			} else {
				t.notifyRebalance(LR, i)
				t.rotateLeft(left)
			}
			i = t.rotateRight(i)
		case bf < -1:
			right := t.slots[i].right
			if t.balanceOf(right) <= 0 {
				t.notifyRebalance(RR, i)
			} else {
				t.notifyRebalance(RL, i)
				t.rotateRight(right)
			}
			i = t.rotateLeft(i)
		}

		i = t.slots[i].parent
	}
}

func (t *Tree[K, V]) notifyRebalance(c Imbalance, i int32) {
	if t.observer != nil {
		t.observer.Rebalanced(c, t.slots[i].key)
	}
}
