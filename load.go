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
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/cybrota/avlmap/avl"
	"github.com/mattn/go-shellwords"
)

type loadOptions struct {
	Erase  []string
	Levels bool
	Trace  *log.Logger
}

// splitEntryLine tokenizes `key value...` with shell quoting, so keys may
// contain spaces when quoted. ok is false for blank lines and # comments.
func splitEntryLine(line string) (key, value string, ok bool, err error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false, nil
	}

	args, err := shellwords.Parse(trimmed)
	if err != nil {
		return "", "", false, fmt.Errorf("failed to parse line %q: %v", line, err)
	}
	if len(args) == 0 {
		return "", "", false, nil
	}
	return args[0], strings.Join(args[1:], " "), true, nil
}

// readEntries fills tree from r. It returns the number of lines whose key
// was already present and therefore ignored.
func readEntries(r io.Reader, tree *avl.Tree[string, string]) (int, error) {
	duplicates := 0
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		key, value, ok, err := splitEntryLine(scanner.Text())
		if err != nil {
			return duplicates, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if !ok {
			continue
		}

		before := tree.Len()
		tree.Insert(key, value)
		if tree.Len() == before {
			duplicates++
		}
	}
	return duplicates, scanner.Err()
}

func runLoad(w io.Writer, r io.Reader, opts loadOptions) error {
	styles := NewStyles()
	tree := avl.New[string, string]()
	if opts.Trace != nil {
		tree.SetObserver(newLogObserver[string](opts.Trace))
	}

	duplicates, err := readEntries(r, tree)
	if err != nil {
		return err
	}

	for _, key := range opts.Erase {
		node, ok := tree.Find(key)
		if !ok {
			fmt.Fprintln(w, styles.ErrorMessage.Render(fmt.Sprintf("not found: %s", key)))
			continue
		}
		if err := tree.Erase(node); err != nil {
			return err
		}
	}

	if opts.Levels {
		printLevels(w, tree, styles)
	} else {
		printInOrder(w, tree)
	}

	fmt.Fprintf(w, "%s %d", styles.HelpKey.Render("entries:"), tree.Len())
	if duplicates > 0 {
		fmt.Fprintf(w, " (%d duplicate keys kept their first value)", duplicates)
	}
	fmt.Fprintln(w)
	printHeight(w, tree, styles)

	if err := tree.Validate(); err != nil {
		return err
	}
	fmt.Fprintln(w, styles.SuccessMessage.Render("tree invariants hold"))
	return nil
}
