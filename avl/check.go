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

import "fmt"

// Validate walks the whole tree and checks parent links, cached heights,
// balance factors, key order and the entry count. It is O(n) and meant for
// tests and diagnostics.
func (t *Tree[K, V]) Validate() error {
	n, _, err := t.check(t.root, nilIndex)
	if err != nil {
		return err
	}
	if n != t.count {
		return fmt.Errorf("%w: reached %d nodes but count is %d", ErrCorrupt, n, t.count)
	}

	// links are sound, so the successor walk terminates
	first := true
	var prev K
	for k := range t.Keys() {
		if !first && t.compare(prev, k) >= 0 {
			return fmt.Errorf("%w: key %v does not sort after %v", ErrCorrupt, k, prev)
		}
		prev = k
		first = false
	}
	return nil
}

// check returns the node count and height of the subtree at i
func (t *Tree[K, V]) check(i, parent int32) (int, int, error) {
	if i == nilIndex {
		return 0, -1, nil
	}
	if i < 0 || int(i) >= len(t.slots) {
		return 0, 0, fmt.Errorf("%w: link to slot %d outside arena", ErrCorrupt, i)
	}

	s := &t.slots[i]
	if !s.live {
		return 0, 0, fmt.Errorf("%w: freed slot %d is still linked", ErrCorrupt, i)
	}
	if s.parent != parent {
		return 0, 0, fmt.Errorf("%w: node %v has parent %d, expected %d", ErrCorrupt, s.key, s.parent, parent)
	}

	ln, lh, err := t.check(s.left, i)
	if err != nil {
		return 0, 0, err
	}
	rn, rh, err := t.check(s.right, i)
	if err != nil {
		return 0, 0, err
	}

	h := 1 + max(lh, rh)
	if s.height != h {
		return 0, 0, fmt.Errorf("%w: node %v caches height %d, computed %d", ErrCorrupt, s.key, s.height, h)
	}
	if bf := lh - rh; bf < -1 || bf > 1 {
		return 0, 0, fmt.Errorf("%w: node %v has balance factor %d", ErrCorrupt, s.key, bf)
	}
	return ln + rn + 1, h, nil
}
