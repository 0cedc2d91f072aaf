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
	"runtime"

	markdown "github.com/MichaelMure/go-term-markdown"
)

func getHelpMessage() string {
	message := fmt.Sprintf(`
 **avlmap %s**

An ordered map built on a self-balancing AVL tree, with a shell history browser on top.

Built with Go %s

# 1. Commands
* **run** (default): browse your shell history, ranked by frequency and recency
* **history --match PREFIX**: print ranked matches for a query
* **load [FILE]**: read "key value" lines into a tree and print it in key order
* **demo**: insert 10, 5, 25, 15, erase 5 and show the rebalanced tree
* **bench --size N --seed S**: time inserts, finds and erases of random keys
* **settings**: show or create ~/.avlmap.yaml

# 2. Browser keys
* <enter>: copy the selected command to the clipboard and quit
* <ctrl+e>: run the selected command in a terminal
* <ctrl+d>: drop the selected command from the in-memory index
* <esc> or <ctrl+c>: quit

# 3. Tree guarantees
* Keys are unique; inserting an existing key keeps the first value
* Height stays within 1.44 log2(n+2) of the node count
* Iteration is in ascending key order

# Please be aware
* Copy to clipboard on Linux requires 'xclip' or 'xsel'

# License
Licensed under the Apache License, Version 2.0
`, version, runtime.Version())
	result := markdown.Render(message, 80, 3)
	return string(result)
}
