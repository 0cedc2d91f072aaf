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

// Package avl is an ordered key-value map kept as an AVL tree.
//
// Nodes live in a slice-backed arena and refer to each other by index,
// including a parent link that lets an Iterator walk the tree in key
// order without recursion. Freed slots are kept on a free list and reused.
//
// Keys are unique. Inserting a key that is already present returns the
// existing node and leaves its value alone.
//
// A Tree is not safe for concurrent use. Serialize access from multiple
// goroutines with a mutex. Any Insert or Erase invalidates outstanding
// iterators; Node handles are checked on Erase and report ErrInvalidNode
// once their slot has been freed or its payload moved.
package avl
