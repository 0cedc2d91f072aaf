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
	"log"

	"github.com/cybrota/avlmap/avl"
)

// logObserver prints tree mutations through a logger. It backs --trace.
type logObserver[K any] struct {
	logger *log.Logger
}

func newLogObserver[K any](logger *log.Logger) *logObserver[K] {
	return &logObserver[K]{logger: logger}
}

func (o *logObserver[K]) Inserted(key K) {
	o.logger.Printf("inserted: %v", key)
}

func (o *logObserver[K]) Erased(key K) {
	o.logger.Printf("erased: %v", key)
}

func (o *logObserver[K]) Rebalanced(c avl.Imbalance, at K) {
	o.logger.Printf("rebalance %s at node: %v", c, at)
}
