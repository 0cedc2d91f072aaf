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

import "time"

// Stopwatch measures one interval on the monotonic clock.
type Stopwatch struct {
	now     func() time.Time
	start   time.Time
	elapsed time.Duration
	running bool
}

// StartStopwatch returns a running stopwatch.
func StartStopwatch() *Stopwatch {
	return startStopwatchWith(time.Now)
}

func startStopwatchWith(now func() time.Time) *Stopwatch {
	return &Stopwatch{now: now, start: now(), running: true}
}

// Stop freezes the elapsed time and returns it. Stopping twice keeps the
// first reading.
func (s *Stopwatch) Stop() time.Duration {
	if s.running {
		s.elapsed = s.now().Sub(s.start)
		s.running = false
	}
	return s.elapsed
}

// Elapsed is the time since start while running, or the frozen reading.
func (s *Stopwatch) Elapsed() time.Duration {
	if s.running {
		return s.now().Sub(s.start)
	}
	return s.elapsed
}
