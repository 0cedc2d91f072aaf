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
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

// browserAction is what the caller should do with the selection once the
// program exits.
type browserAction int

const (
	actionNone browserAction = iota
	actionCopy
	actionExecute
)

const (
	focusInput = iota
	focusList
)

// commandItem represents an item in the results list
type commandItem struct {
	ranked RankedCommand
}

func (i commandItem) FilterValue() string { return i.ranked.Command }
func (i commandItem) Title() string       { return i.ranked.Command }
func (i commandItem) Description() string {
	base := baseCommand(i.ranked.Command)
	if base == "" {
		base = "?"
	}
	return fmt.Sprintf("%s · used %d×", base, i.ranked.Metadata.Frequency)
}

// browserModel is the Bubble Tea state of the history browser.
type browserModel struct {
	index  *HistoryIndex
	config *Config

	input    textinput.Model
	results  list.Model
	detail   viewport.Model
	renderer *glamour.TermRenderer
	styles   *Styles

	matches    []RankedCommand
	lastQuery  string
	focusIndex int
	status     string

	// Set when the user picks a command
	selected string
	action   browserAction

	ready  bool
	width  int
	height int
}

// newBrowserModel builds the browser over index. glamourStyle is a glamour
// standard style name such as "auto" or "notty".
func newBrowserModel(index *HistoryIndex, config *Config, glamourStyle string) browserModel {
	ti := textinput.New()
	ti.Placeholder = "Type command to search..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	results := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	results.SetShowTitle(false)
	results.SetShowHelp(false)
	results.SetShowStatusBar(false)
	results.SetFilteringEnabled(false)

	detail := viewport.New(0, 0)
	detail.SetContent("Select a command to see its entry...")

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle(glamourStyle),
		glamour.WithWordWrap(60),
	)

	m := browserModel{
		index:    index,
		config:   config,
		input:    ti,
		results:  results,
		detail:   detail,
		renderer: renderer,
		styles:   NewStyles(),
	}
	m.refresh()
	return m
}

func (m browserModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			if m.focusIndex == focusInput {
				m.focusIndex = focusList
				m.input.Blur()
			} else {
				m.focusIndex = focusInput
				m.input.Focus()
			}
			return m, nil
		case "enter":
			if cmd, ok := m.current(); ok {
				m.selected, m.action = cmd, actionCopy
				return m, tea.Quit
			}
			return m, nil
		case "ctrl+e":
			if cmd, ok := m.current(); ok {
				m.selected, m.action = cmd, actionExecute
				return m, tea.Quit
			}
			return m, nil
		case "ctrl+d":
			if cmd, ok := m.current(); ok && m.index.Remove(cmd) {
				m.status = fmt.Sprintf("dropped %q", cmd)
				m.refresh()
			}
			return m, nil
		case "up", "down":
			if msg.String() == "up" {
				m.results.CursorUp()
			} else {
				m.results.CursorDown()
			}
			m.updateDetail()
			return m, nil
		}

		if m.focusIndex == focusInput {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			if m.input.Value() != m.lastQuery {
				m.refresh()
			}
			return m, cmd
		}
	}
	return m, nil
}

// current is the highlighted command, if any.
func (m browserModel) current() (string, bool) {
	i := m.results.Index()
	if i < 0 || i >= len(m.matches) {
		return "", false
	}
	return m.matches[i].Command, true
}

// refresh reruns the query against the index.
func (m *browserModel) refresh() {
	query := m.input.Value()
	m.lastQuery = query
	m.matches = m.index.Ranked(query, m.config.History.EnableFuzzing, m.config.History.Limit)

	items := make([]list.Item, len(m.matches))
	for i, match := range m.matches {
		items[i] = commandItem{ranked: match}
	}
	m.results.SetItems(items)
	if m.results.Index() >= len(items) {
		m.results.Select(0)
	}
	m.updateDetail()
}

func (m *browserModel) updateDetail() {
	i := m.results.Index()
	if i < 0 || i >= len(m.matches) {
		m.detail.SetContent("No matching commands.")
		return
	}

	doc := describeCommand(m.matches[i], m.index)
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(doc); err == nil {
			m.detail.SetContent(rendered)
			return
		}
	}
	m.detail.SetContent(doc)
}

// describeCommand is the markdown shown in the detail pane.
func describeCommand(ranked RankedCommand, index *HistoryIndex) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Command\n\n```sh\n%s\n```\n\n", ranked.Command)

	base := baseCommand(ranked.Command)
	if base == "" {
		base = "unparsed"
	}
	lastUsed := "unknown"
	if ts := ranked.Metadata.Timestamp; ts != nil {
		lastUsed = ts.Format("2006-01-02 15:04")
	}

	fmt.Fprintf(&b, "* **program**: `%s`\n", base)
	fmt.Fprintf(&b, "* **used**: %d times\n", ranked.Metadata.Frequency)
	fmt.Fprintf(&b, "* **last used**: %s\n", lastUsed)
	fmt.Fprintf(&b, "* **score**: %.3f\n", ranked.Score)

	height, _ := index.Tree().Height()
	fmt.Fprintf(&b, "\n## Index\n\n%d commands, tree height %d\n", index.Len(), height)
	return b.String()
}

func (m *browserModel) updateLayout() {
	inputHeight := 3
	listHeight := max(m.height-inputHeight-6, 3)
	leftWidth := max((m.width/2)-1, 5)
	rightWidth := max(m.width-leftWidth-3, 3)

	m.input.Width = leftWidth - 4
	m.results.SetSize(leftWidth-2, listHeight-2)
	m.detail.Width = rightWidth - 2
	m.detail.Height = inputHeight + listHeight
}

func (m browserModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.width < 20 || m.height < 10 {
		return "Terminal too small. Please resize your terminal."
	}

	inputHeight := 3
	listHeight := m.height - inputHeight - 6
	leftWidth := (m.width / 2) - 1
	rightWidth := m.width - leftWidth - 3

	inputStyle, listStyle := m.styles.BorderBlurred, m.styles.BorderBlurred
	if m.focusIndex == focusInput {
		inputStyle = m.styles.BorderFocused
	} else {
		listStyle = m.styles.BorderFocused
	}

	inputBox := inputStyle.
		Width(leftWidth).
		Height(inputHeight).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Width(leftWidth-4).Render(" 🔍 Search Commands"),
			m.input.View(),
		))

	listBox := listStyle.
		Width(leftWidth).
		Height(listHeight).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Width(leftWidth-4).Render(fmt.Sprintf(" 📋 Matches (%d)", len(m.matches))),
			m.results.View(),
		))

	detailBox := m.styles.BorderBlurred.
		Width(rightWidth).
		Height(listHeight + inputHeight + 2).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Width(rightWidth-4).Render(" 🌳 Entry"),
			m.detail.View(),
		))

	main := lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, inputBox, listBox),
		detailBox,
	)
	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderFooter())
}

func (m browserModel) renderFooter() string {
	keys := []string{"enter", "ctrl+e", "ctrl+d", "tab", "esc"}
	descs := []string{"copy command", "run in terminal", "drop from index", "switch focus", "quit"}

	parts := make([]string, len(keys))
	for i := range keys {
		parts[i] = m.styles.HelpKey.Render(keys[i]) + " " + m.styles.HelpDesc.Render(descs[i])
	}
	footer := strings.Join(parts, "  •  ")
	if m.status != "" {
		footer = m.styles.SuccessMessage.Render(m.status) + "  " + footer
	}
	return footer
}

func copyToClipboard(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "📋 Copied %s to clipboard.\n", NewStyles().SuccessMessage.Render(text))
	return nil
}

// runBrowser runs the browser until the user quits, then acts on the
// selection outside the alt screen.
func runBrowser(index *HistoryIndex, config *Config) error {
	program := tea.NewProgram(
		newBrowserModel(index, config, glamourstyles.AutoStyle),
		tea.WithAltScreen(),
	)

	final, err := program.Run()
	if err != nil {
		return err
	}

	m, ok := final.(browserModel)
	if !ok {
		return nil
	}
	switch m.action {
	case actionCopy:
		return copyToClipboard(m.selected)
	case actionExecute:
		return runInPTY(m.selected, os.Stdout)
	}
	return nil
}
