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
	"time"

	"github.com/patrickmn/go-cache"
)

// Clean up expired entries every 5 minutes
const queryCacheCleanup = 5 * time.Minute

// newQueryCache creates a cache for ranked history query results
func newQueryCache(ttl time.Duration) *cache.Cache {
	return cache.New(ttl, queryCacheCleanup)
}

func queryCacheKey(query string, fuzzy bool) string {
	if fuzzy {
		return "fuzzy:" + query
	}
	return "prefix:" + query
}

func cacheQuery(c *cache.Cache, key string, ranked []RankedCommand) {
	// Set rather than Add so a re-run query refreshes its expiry
	c.Set(key, ranked, cache.DefaultExpiration)
}

func cachedQuery(c *cache.Cache, key string) ([]RankedCommand, bool) {
	val, ok := c.Get(key)
	if !ok {
		return nil, false
	}
	return val.([]RankedCommand), true
}
