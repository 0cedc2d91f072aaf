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

package main

import (
	"fmt"
	"io"
	"log"

	"github.com/cybrota/avlmap/avl"
)

var demoKeys = []int{10, 5, 25, 15}

// runDemo builds a four-node tree, erases a leaf that forces a double
// rotation, and prints the tree before and after.
func runDemo(w io.Writer, trace *log.Logger) error {
	styles := NewStyles()
	tree := avl.New[int, int]()
	if trace != nil {
		tree.SetObserver(newLogObserver[int](trace))
	}

	for _, k := range demoKeys {
		tree.Insert(k, k)
	}

	fmt.Fprintln(w, styles.Heading.Render("traverse order:"))
	for _, v := range tree.All() {
		fmt.Fprintln(w, v)
	}

	printLevels(w, tree, styles)
	printHeight(w, tree, styles)

	if node, ok := tree.Find(5); ok {
		fmt.Fprintf(w, "to delete: %d\n", node.Value())
		if err := tree.Erase(node); err != nil {
			return err
		}
	}

	printLevels(w, tree, styles)
	printHeight(w, tree, styles)

	fmt.Fprintln(w, styles.Heading.Render("iterate through the tree:"))
	fmt.Fprintln(w, "KEY VALUE")
	for it := tree.Begin(); !it.Equal(tree.End()); it.Next() {
		fmt.Fprintf(w, "%d %d\n", it.Key(), it.Value())
	}

	return tree.Validate()
}
