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
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const configFileName = ".avlmap.yaml"

type HistoryConfig struct {
	EnableFuzzing bool `yaml:"enable_fuzzing"`
	Limit         int  `yaml:"limit"`
}

type IndexConfig struct {
	BloomSize    uint `yaml:"bloom_size"`
	BloomHashes  uint `yaml:"bloom_hashes"`
	CacheMinutes int  `yaml:"cache_minutes"`
}

// CacheTTL is how long ranked query results stay cached.
func (c IndexConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheMinutes) * time.Minute
}

type BenchConfig struct {
	Size int    `yaml:"size"`
	Seed uint64 `yaml:"seed"`
}

type Config struct {
	History HistoryConfig `yaml:"history"`
	Index   IndexConfig   `yaml:"index"`
	Bench   BenchConfig   `yaml:"bench"`
}

var defaultConfig = Config{
	History: HistoryConfig{
		EnableFuzzing: true,
		Limit:         50,
	},
	Index: IndexConfig{
		BloomSize:    100000,
		BloomHashes:  5,
		CacheMinutes: 30,
	},
	Bench: BenchConfig{
		Size: 100000,
		Seed: 1,
	},
}

// LoadConfig reads ~/.avlmap.yaml. Any problem reading or parsing the file
// falls back to the defaults.
func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaults(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return defaults(), nil
	}

	config := defaults()
	if err := yaml.Unmarshal(data, config); err != nil {
		return defaults(), nil
	}
	config.fillZeroes()
	return config, nil
}

func defaults() *Config {
	c := defaultConfig
	return &c
}

// fillZeroes restores defaults for numeric settings a user file left at
// zero or negative, which would otherwise disable the index.
func (c *Config) fillZeroes() {
	if c.History.Limit <= 0 {
		c.History.Limit = defaultConfig.History.Limit
	}
	if c.Index.BloomSize == 0 {
		c.Index.BloomSize = defaultConfig.Index.BloomSize
	}
	if c.Index.BloomHashes == 0 {
		c.Index.BloomHashes = defaultConfig.Index.BloomHashes
	}
	if c.Index.CacheMinutes <= 0 {
		c.Index.CacheMinutes = defaultConfig.Index.CacheMinutes
	}
	if c.Bench.Size <= 0 {
		c.Bench.Size = defaultConfig.Bench.Size
	}
}

func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, configFileName), nil
}

func createDefaultConfigFile() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %v", err)
	}

	data, err := yaml.Marshal(&defaultConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %v", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %v", err)
	}
	return nil
}

func displaySettings(w io.Writer) error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %v", err)
	}

	created := false
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := createDefaultConfigFile(); err != nil {
			return err
		}
		created = true
	}

	config, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %v", err)
	}

	styles := NewStyles()
	fmt.Fprintln(w, styles.Title.Render("avlmap configuration"))
	if created {
		fmt.Fprintf(w, "Config file: %s (newly created)\n\n", configPath)
	} else {
		fmt.Fprintf(w, "Config file: %s\n\n", configPath)
	}

	mode := "prefix range scan"
	if config.History.EnableFuzzing {
		mode = "substring match over every command"
	}

	fmt.Fprintln(w, styles.Heading.Render("history"))
	fmt.Fprintf(w, "  enable_fuzzing: %t  (%s)\n", config.History.EnableFuzzing, mode)
	fmt.Fprintf(w, "  limit: %d\n\n", config.History.Limit)

	fmt.Fprintln(w, styles.Heading.Render("index"))
	fmt.Fprintf(w, "  bloom_size: %d bits, bloom_hashes: %d\n", config.Index.BloomSize, config.Index.BloomHashes)
	fmt.Fprintf(w, "  cache_minutes: %d\n\n", config.Index.CacheMinutes)

	fmt.Fprintln(w, styles.Heading.Render("bench"))
	fmt.Fprintf(w, "  size: %d, seed: %d\n", config.Bench.Size, config.Bench.Seed)
	return nil
}
