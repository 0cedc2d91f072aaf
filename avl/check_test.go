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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *Tree[int, string] {
	tree := New[int, string]()
	for _, k := range []int{40, 20, 60, 10, 30, 50, 70} {
		tree.Insert(k, "data")
	}
	return tree
}

func TestValidateDetectsCorruption(t *testing.T) {
	testCases := []struct {
		Name    string
		Corrupt func(tree *Tree[int, string])
	}{
		{
			Name: "stale height",
			Corrupt: func(tree *Tree[int, string]) {
				tree.slots[tree.root].height = 42
			},
		},
		{
			Name: "broken parent link",
			Corrupt: func(tree *Tree[int, string]) {
				left := tree.slots[tree.root].left
				tree.slots[left].parent = nilIndex
			},
		},
		{
			Name: "keys out of order",
			Corrupt: func(tree *Tree[int, string]) {
				tree.slots[tree.minimum(tree.root)].key = 99
			},
		},
		{
			Name: "count drift",
			Corrupt: func(tree *Tree[int, string]) {
				tree.count++
			},
		},
		{
			Name: "unbalanced",
			Corrupt: func(tree *Tree[int, string]) {
				// hang a two-node chain under the maximum without rebalancing
				hi := tree.maximum(tree.root)
				a := tree.alloc(80, "", hi)
				tree.slots[hi].right = a
				b := tree.alloc(90, "", a)
				tree.slots[a].right = b
				tree.count += 2
				for i := b; i != nilIndex; i = tree.slots[i].parent {
					tree.updateHeight(i)
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			tree := sampleTree()
			require.NoError(t, tree.Validate())

			tc.Corrupt(tree)
			assert.ErrorIs(t, tree.Validate(), ErrCorrupt)
		})
	}
}

func TestRotationsRelinkParents(t *testing.T) {
	tree := sampleTree()
	root := tree.root
	left := tree.slots[root].left

	newRoot := tree.rotateRight(root)
	assert.Equal(t, left, newRoot)
	assert.Equal(t, newRoot, tree.root)
	assert.Equal(t, nilIndex, tree.slots[newRoot].parent)
	assert.Equal(t, newRoot, tree.slots[root].parent)

	back := tree.rotateLeft(newRoot)
	assert.Equal(t, root, back)
	assert.Equal(t, root, tree.root)
	require.NoError(t, tree.Validate())
}

func TestFreeListReusesSlots(t *testing.T) {
	tree := sampleTree()
	size := len(tree.slots)

	_, ok := tree.Delete(10)
	require.True(t, ok)
	_, ok = tree.Delete(70)
	require.True(t, ok)
	assert.Len(t, tree.free, 2)

	tree.Insert(5, "a")
	tree.Insert(75, "b")
	assert.Empty(t, tree.free)
	assert.Equal(t, size, len(tree.slots))
	require.NoError(t, tree.Validate())
}
