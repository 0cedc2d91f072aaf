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
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cybrota/avlmap/avl"
)

// Styles holds all the styling for terminal output
type Styles struct {
	BorderFocused  lipgloss.Style
	BorderBlurred  lipgloss.Style
	Title          lipgloss.Style
	Heading        lipgloss.Style
	InputPrompt    lipgloss.Style
	HelpKey        lipgloss.Style
	HelpDesc       lipgloss.Style
	Entry          lipgloss.Style
	SuccessMessage lipgloss.Style
	ErrorMessage   lipgloss.Style
}

// NewStyles creates the default styles
func NewStyles() *Styles {
	return &Styles{
		BorderFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Bold(true),
		BorderBlurred: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true),
		Heading: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true),
		InputPrompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true),
		HelpKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
		Entry: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		SuccessMessage: lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true),
		ErrorMessage: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
	}
}

// printLevels writes the tree breadth first, one line per depth.
func printLevels[K, V any](w io.Writer, tree *avl.Tree[K, V], styles *Styles) {
	levels := tree.Levels()
	if len(levels) == 0 {
		fmt.Fprintln(w, styles.HelpDesc.Render("(empty)"))
		return
	}
	for depth, level := range levels {
		cells := make([]string, 0, len(level))
		for _, e := range level {
			cells = append(cells, styles.Entry.Render(fmt.Sprintf("(%v,%v)", e.Key, e.Value)))
		}
		fmt.Fprintf(w, "%s %s\n", styles.HelpKey.Render(fmt.Sprintf("%2d", depth)), strings.Join(cells, " "))
	}
}

// printInOrder writes one "key value" line per entry in key order.
func printInOrder[K, V any](w io.Writer, tree *avl.Tree[K, V]) {
	for k, v := range tree.All() {
		fmt.Fprintf(w, "%v %v\n", k, v)
	}
}

// printHeight writes the root height, or notes that the tree is empty.
func printHeight[K, V any](w io.Writer, tree *avl.Tree[K, V], styles *Styles) {
	h, err := tree.Height()
	if err != nil {
		fmt.Fprintf(w, "%s %v\n", styles.HelpKey.Render("height:"), err)
		return
	}
	fmt.Fprintf(w, "%s %d\n", styles.HelpKey.Render("height:"), h)
}
