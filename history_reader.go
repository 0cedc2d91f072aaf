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
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// HistoryEntry holds the optional timestamp and the command
type HistoryEntry struct {
	Command   string
	Timestamp *time.Time
}

func newHistoryScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for better performance with large history files
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)
	return scanner
}

// parseZshHistory reads zsh extended history, where each line looks like
// ": 1673291850:0;ls -la". Lines without that prefix are kept as plain
// commands with no timestamp.
func parseZshHistory(r io.Reader) ([]HistoryEntry, error) {
	var history []HistoryEntry

	scanner := newHistoryScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, ": ") {
			history = append(history, HistoryEntry{Command: line})
			continue
		}

		// "", " 1673291850", "0;ls -la"
		parts := strings.SplitN(line, ":", 3)
		if len(parts) < 3 {
			continue
		}

		epoch, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil {
			history = append(history, HistoryEntry{Command: line})
			continue
		}
		t := time.Unix(epoch, 0)

		// "0;ls -la": elapsed seconds, then the command
		subParts := strings.SplitN(parts[2], ";", 2)
		if len(subParts) < 2 {
			continue
		}
		history = append(history, HistoryEntry{Timestamp: &t, Command: subParts[1]})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return history, nil
}

// parseBashHistory reads bash history. With HISTTIMEFORMAT set, bash writes
// a "#<epoch>" line before each command.
func parseBashHistory(r io.Reader) ([]HistoryEntry, error) {
	var history []HistoryEntry
	var lastTimestamp *time.Time

	scanner := newHistoryScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "#") {
			epoch, err := strconv.ParseInt(strings.TrimSpace(strings.TrimPrefix(line, "#")), 10, 64)
			if err == nil {
				t := time.Unix(epoch, 0)
				lastTimestamp = &t
			} else {
				lastTimestamp = nil
			}
			continue
		}

		history = append(history, HistoryEntry{Timestamp: lastTimestamp, Command: line})
		// the timestamp belongs to this command only
		lastTimestamp = nil
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return history, nil
}

// detectCurrentShell detects the type of Unix shell: Bash, Zshell etc.
func detectCurrentShell() string {
	currentShellPath, ok := os.LookupEnv("SHELL")
	if !ok {
		// Default to bash when SHELL is not set
		return "bash"
	}
	return filepath.Base(currentShellPath)
}

// readHistoryFile parses the history file of the current shell.
func readHistoryFile() ([]HistoryEntry, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	var (
		path  string
		parse func(io.Reader) ([]HistoryEntry, error)
		hint  string
	)
	switch shell := detectCurrentShell(); shell {
	case "zsh":
		path = filepath.Join(homeDir, ".zsh_history")
		parse = parseZshHistory
		hint = "Run some commands in zsh to create it"
	case "bash":
		path = filepath.Join(homeDir, ".bash_history")
		parse = parseBashHistory
		hint = "Run 'history -w' to create it"
	default:
		return nil, fmt.Errorf("unsupported shell %q", shell)
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("history file %s not found. %s, then try again", path, hint)
		}
		return nil, err
	}
	defer file.Close()

	return parse(file)
}

// populateIndex adds every entry to the index and returns how many distinct
// commands were new.
func populateIndex(index *HistoryIndex, history []HistoryEntry) int {
	added := 0
	for _, entry := range history {
		if index.Add(entry) {
			added++
		}
	}
	return added
}

func loadHistoryIndex(cfg *Config) (*HistoryIndex, error) {
	history, err := readHistoryFile()
	if err != nil {
		return nil, err
	}
	index := NewHistoryIndex(cfg.Index)
	populateIndex(index, history)
	return index, nil
}
