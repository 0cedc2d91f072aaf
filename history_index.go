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
	"sort"
	"strings"
	"time"

	"github.com/cybrota/avlmap/avl"
	"github.com/mattn/go-shellwords"
	"github.com/patrickmn/go-cache"
	"github.com/willf/bloom"
)

type CommandMetadata struct {
	Command   string
	Timestamp *time.Time // most recent use, nil when the history has no epochs
	Frequency int
}

type RankedCommand struct {
	Command  string
	Score    float64
	Metadata CommandMetadata
}

// HistoryIndex keeps shell commands in an AVL tree keyed by command text.
// A bloom filter short-circuits lookups for commands never seen, and ranked
// query results are cached until the next mutation.
type HistoryIndex struct {
	tree    *avl.Tree[string, CommandMetadata]
	filter  *bloom.BloomFilter
	results *cache.Cache
}

func NewHistoryIndex(cfg IndexConfig) *HistoryIndex {
	return &HistoryIndex{
		tree:    avl.New[string, CommandMetadata](),
		filter:  bloom.New(cfg.BloomSize, cfg.BloomHashes),
		results: newQueryCache(cfg.CacheTTL()),
	}
}

// Len is the number of distinct commands.
func (hi *HistoryIndex) Len() int {
	return hi.tree.Len()
}

// Tree exposes the underlying tree for diagnostics.
func (hi *HistoryIndex) Tree() *avl.Tree[string, CommandMetadata] {
	return hi.tree
}

// Add records one use of a command. The first use creates the entry; later
// uses bump its frequency and keep the newest timestamp.
func (hi *HistoryIndex) Add(entry HistoryEntry) bool {
	command := strings.TrimSpace(entry.Command)
	if command == "" {
		return false
	}

	before := hi.tree.Len()
	node := hi.tree.Insert(command, CommandMetadata{
		Command:   command,
		Timestamp: entry.Timestamp,
		Frequency: 1,
	})
	hi.results.Flush()

	if hi.tree.Len() > before {
		hi.filter.AddString(command)
		return true
	}

	metadata := node.Value()
	metadata.Frequency++
	if entry.Timestamp != nil && (metadata.Timestamp == nil || entry.Timestamp.After(*metadata.Timestamp)) {
		metadata.Timestamp = entry.Timestamp
	}
	node.SetValue(metadata)
	return false
}

// Lookup returns the metadata for an exact command.
func (hi *HistoryIndex) Lookup(command string) (CommandMetadata, bool) {
	command = strings.TrimSpace(command)
	if !hi.filter.TestString(command) {
		return CommandMetadata{}, false
	}
	node, ok := hi.tree.Find(command)
	if !ok {
		return CommandMetadata{}, false
	}
	return node.Value(), true
}

// Remove drops a command from the index. The bloom filter keeps answering
// "maybe" for it, which Lookup resolves against the tree.
func (hi *HistoryIndex) Remove(command string) bool {
	_, ok := hi.tree.Delete(strings.TrimSpace(command))
	if ok {
		hi.results.Flush()
	}
	return ok
}

// SearchPrefix returns, in key order, every command that starts with prefix.
func (hi *HistoryIndex) SearchPrefix(prefix string) []CommandMetadata {
	var results []CommandMetadata
	for it := hi.tree.Ceiling(prefix); it.Valid() && strings.HasPrefix(it.Key(), prefix); it.Next() {
		results = append(results, it.Value())
	}
	return results
}

// SearchFuzzy returns, in key order, every command containing query.
func (hi *HistoryIndex) SearchFuzzy(query string) []CommandMetadata {
	var results []CommandMetadata
	for command, metadata := range hi.tree.All() {
		if strings.Contains(command, query) {
			results = append(results, metadata)
		}
	}
	return results
}

// Ranked returns at most limit matches for query, best first. A limit of
// zero or less means no limit.
func (hi *HistoryIndex) Ranked(query string, fuzzy bool, limit int) []RankedCommand {
	key := queryCacheKey(query, fuzzy)

	ranked, ok := cachedQuery(hi.results, key)
	if !ok {
		var matches []CommandMetadata
		if fuzzy {
			matches = hi.SearchFuzzy(query)
		} else {
			matches = hi.SearchPrefix(query)
		}
		ranked = rankCommands(matches, time.Now())
		cacheQuery(hi.results, key, ranked)
	}

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// calculateScore weighs frequency against recency. Commands without a
// timestamp are ranked on frequency alone.
func calculateScore(metadata CommandMetadata, now time.Time) float64 {
	// Score components:
	// - Frequency: Linear, to encourage repeated commands
	// - Recency (Time): Inverse, to heavily favor recent commands
	frequencyScore := float64(metadata.Frequency)
	if metadata.Timestamp == nil {
		return 0.6 * frequencyScore
	}

	timeDelta := now.Sub(*metadata.Timestamp).Hours()
	if timeDelta < 0 {
		timeDelta = 0
	}
	recencyScore := 1 / (timeDelta + 1) // Add 1 to avoid division by zero

	return (0.6 * frequencyScore) + (0.4 * recencyScore)
}

func rankCommands(matches []CommandMetadata, now time.Time) []RankedCommand {
	ranked := make([]RankedCommand, 0, len(matches))
	for _, metadata := range matches {
		ranked = append(ranked, RankedCommand{
			Command:  metadata.Command,
			Score:    calculateScore(metadata, now),
			Metadata: metadata,
		})
	}

	// Stable keeps key order among equal scores
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// baseCommand is the program name of a command line, "" if it cannot be
// tokenized.
func baseCommand(command string) string {
	args, err := shellwords.Parse(command)
	if err != nil || len(args) == 0 {
		return ""
	}
	return args[0]
}
