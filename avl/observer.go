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

// Imbalance names the shape that triggered a rebalance.
type Imbalance int

const (
	LL Imbalance = iota // left child is left-heavy or even: rotate right
	LR                  // left child is right-heavy: rotate left, then right
	RR                  // right child is right-heavy or even: rotate left
	RL                  // right child is left-heavy: rotate right, then left
)

func (c Imbalance) String() string {
	switch c {
	case LL:
		return "LL"
	case LR:
		return "LR"
	case RR:
		return "RR"
	case RL:
		return "RL"
	}
	return "unknown"
}

// Observer receives mutation events from a Tree. Callbacks run
// synchronously inside Insert and Erase and must not modify the tree.
type Observer[K any] interface {
	Inserted(key K)
	Erased(key K)
	// Rebalanced reports the key at the node that was out of balance,
	// before it is rotated.
	Rebalanced(c Imbalance, at K)
}
