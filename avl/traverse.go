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

import "iter"

// Entry is a key-value pair copied out of the tree.
type Entry[K, V any] struct {
	Key   K
	Value V
}

// All yields every entry in ascending key order.
func (t *Tree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for it := t.Begin(); it.Valid(); it.Next() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}

// Keys yields every key in ascending order.
func (t *Tree[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range t.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Levels returns the entries breadth first, one slice per depth, root first.
func (t *Tree[K, V]) Levels() [][]Entry[K, V] {
	if t.root == nilIndex {
		return nil
	}

	var levels [][]Entry[K, V]
	queue := []int32{t.root}
	for len(queue) > 0 {
		level := make([]Entry[K, V], 0, len(queue))
		var next []int32
		for _, i := range queue {
			s := &t.slots[i]
			level = append(level, Entry[K, V]{Key: s.key, Value: s.value})
			if s.left != nilIndex {
				next = append(next, s.left)
			}
			if s.right != nilIndex {
				next = append(next, s.right)
			}
		}
		levels = append(levels, level)
		queue = next
	}
	return levels
}
