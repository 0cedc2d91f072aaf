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
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cybrota/avlmap/avl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDemo(t *testing.T) {
	var out, trace bytes.Buffer
	require.NoError(t, runDemo(&out, log.New(&trace, "", 0)))

	text := out.String()
	assert.Contains(t, text, "to delete: 5")
	assert.Contains(t, text, "KEY VALUE")

	tail := text[strings.Index(text, "KEY VALUE"):]
	assert.Equal(t, "KEY VALUE\n10 10\n15 15\n25 25\n", tail)

	// erasing 5 leaves 10 right-heavy with a left-leaning child
	assert.Contains(t, trace.String(), "rebalance RL at node: 10")
	assert.Contains(t, trace.String(), "erased: 5")
}

func TestSplitEntryLine(t *testing.T) {
	testCases := []struct {
		Line  string
		Key   string
		Value string
		OK    bool
		Err   bool
	}{
		{Line: "apple red", Key: "apple", Value: "red", OK: true},
		{Line: `"green apple" sour and crisp`, Key: "green apple", Value: "sour and crisp", OK: true},
		{Line: "lonely", Key: "lonely", Value: "", OK: true},
		{Line: "   ", OK: false},
		{Line: "# comment", OK: false},
		{Line: `"open quote`, Err: true},
	}

	for _, tc := range testCases {
		t.Run(tc.Line, func(t *testing.T) {
			key, value, ok, err := splitEntryLine(tc.Line)
			if tc.Err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.OK, ok)
			assert.Equal(t, tc.Key, key)
			assert.Equal(t, tc.Value, value)
		})
	}
}

func TestReadEntriesCountsDuplicates(t *testing.T) {
	tree := avl.New[string, string]()
	input := "b 2\na 1\n# skip\nb 3\nc 4\n"

	duplicates, err := readEntries(strings.NewReader(input), tree)
	require.NoError(t, err)
	assert.Equal(t, 1, duplicates)
	assert.Equal(t, 3, tree.Len())

	node, ok := tree.Find("b")
	require.True(t, ok)
	assert.Equal(t, "2", node.Value(), "first value wins")
}

func TestReadEntriesReportsLine(t *testing.T) {
	tree := avl.New[string, string]()
	_, err := readEntries(strings.NewReader("a 1\n\"bad\n"), tree)
	assert.ErrorContains(t, err, "line 2")
}

func TestRunLoad(t *testing.T) {
	input := "pear 3\napple 1\nfig 2\nkiwi 4\n"

	t.Run("in order with erase", func(t *testing.T) {
		var out bytes.Buffer
		err := runLoad(&out, strings.NewReader(input), loadOptions{Erase: []string{"fig", "plum"}})
		require.NoError(t, err)

		text := out.String()
		assert.Contains(t, text, "apple 1\nkiwi 4\npear 3\n")
		assert.NotContains(t, text, "fig 2")
		assert.Contains(t, text, "not found: plum")
		assert.Contains(t, text, "entries: 3")
		assert.Contains(t, text, "tree invariants hold")
	})

	t.Run("levels", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, runLoad(&out, strings.NewReader(input), loadOptions{Levels: true}))
		assert.Contains(t, out.String(), "(kiwi,4)")
		assert.Contains(t, out.String(), "height: 2")
	})

	t.Run("empty input", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, runLoad(&out, strings.NewReader(""), loadOptions{}))
		assert.Contains(t, out.String(), "entries: 0")
		assert.Contains(t, out.String(), avl.ErrEmptyTree.Error())
	})
}

func TestRunBench(t *testing.T) {
	var progress bytes.Buffer
	report, err := runBench(&progress, 2000, 42, false)
	require.NoError(t, err)

	assert.Equal(t, 2000, report.Nodes)
	assert.LessOrEqual(t, float64(report.Height), report.Bound)
	require.Len(t, report.Phases, 3)
	assert.Equal(t, "insert", report.Phases[0].Name)
	assert.Equal(t, 1000, report.Phases[2].Ops)
	assert.Empty(t, progress.String(), "hidden progress bars write nothing")

	var out bytes.Buffer
	printBenchReport(&out, report, NewStyles())
	assert.Contains(t, out.String(), "nodes: 2000")

	_, err = runBench(&progress, 0, 1, false)
	assert.Error(t, err)
}

func TestAVLHeightBound(t *testing.T) {
	assert.InDelta(t, 1.112, avlHeightBound(0), 0.001)
	assert.Greater(t, avlHeightBound(4096), 12.0)
}

func TestRootCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	run := func(args ...string) string {
		t.Helper()
		var out bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(args)
		require.NoError(t, cmd.Execute())
		return out.String()
	}

	assert.Equal(t, version+"\n", run("version"))
	assert.Contains(t, run("demo"), "KEY VALUE")
	assert.Contains(t, run("bench", "--size", "500", "--quiet"), "nodes: 500")

	file := filepath.Join(t.TempDir(), "entries.txt")
	require.NoError(t, os.WriteFile(file, []byte("b 2\na 1\n"), 0600))
	assert.Contains(t, run("load", file, "--erase", "b"), "a 1\n")
}

func TestHistoryCommand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SHELL", "/bin/bash")
	require.NoError(t, os.WriteFile(filepath.Join(home, ".bash_history"),
		[]byte("git status\ngit push\ngit status\nls\n"), 0600))
	writeConfig(t, home, "history:\n  enable_fuzzing: false\n")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"history", "--match", "git", "--limit", "1"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "git status\n", out.String())
}
