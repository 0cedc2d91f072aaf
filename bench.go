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
	"math"
	"math/rand/v2"
	"time"

	"github.com/cybrota/avlmap/avl"
	"github.com/schollz/progressbar/v3"
)

type benchPhase struct {
	Name    string
	Ops     int
	Elapsed time.Duration
}

func (p benchPhase) perOp() time.Duration {
	if p.Ops == 0 {
		return 0
	}
	return p.Elapsed / time.Duration(p.Ops)
}

type benchReport struct {
	Phases []benchPhase
	Nodes  int // after the insert phase
	Height int // after the insert phase
	Bound  float64
}

// avlHeightBound is the worst-case AVL height for n nodes.
func avlHeightBound(n int) float64 {
	return 1.44*math.Log2(float64(n+2)) - 0.328
}

func newBenchBar(w io.Writer, size int, description string, show bool) *progressbar.ProgressBar {
	if !show {
		return progressbar.DefaultSilent(int64(size), description)
	}
	return progressbar.NewOptions(size,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

// runBench inserts size random keys, finds each of them, then erases every
// other one, timing each phase. It fails if the tree breaks an invariant
// or grows past the AVL height bound.
func runBench(w io.Writer, size int, seed uint64, showProgress bool) (*benchReport, error) {
	if size <= 0 {
		return nil, fmt.Errorf("bench size must be positive, got %d", size)
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	keys := make([]uint64, size)
	for i := range keys {
		keys[i] = rng.Uint64()
	}

	tree := avl.New[uint64, int]()
	report := &benchReport{}

	phase := func(name string, ops int, step func(i int)) {
		bar := newBenchBar(w, ops, name, showProgress)
		sw := StartStopwatch()
		for i := 0; i < ops; i++ {
			step(i)
			_ = bar.Add(1)
		}
		elapsed := sw.Stop()
		_ = bar.Finish()
		report.Phases = append(report.Phases, benchPhase{Name: name, Ops: ops, Elapsed: elapsed})
	}

	phase("insert", size, func(i int) {
		tree.Insert(keys[i], i)
	})

	report.Nodes = tree.Len()
	report.Height, _ = tree.Height()
	report.Bound = avlHeightBound(report.Nodes)
	if float64(report.Height) > report.Bound {
		return report, fmt.Errorf("height %d exceeds AVL bound %.2f for %d nodes", report.Height, report.Bound, report.Nodes)
	}

	missing := 0
	phase("find", size, func(i int) {
		if _, ok := tree.Find(keys[i]); !ok {
			missing++
		}
	})
	if missing > 0 {
		return report, fmt.Errorf("%d inserted keys not found", missing)
	}

	phase("erase", size/2, func(i int) {
		if n, ok := tree.Find(keys[2*i]); ok {
			_ = tree.Erase(n)
		}
	})

	if err := tree.Validate(); err != nil {
		return report, err
	}
	return report, nil
}

func printBenchReport(w io.Writer, report *benchReport, styles *Styles) {
	fmt.Fprintln(w, styles.Title.Render("avl benchmark"))
	fmt.Fprintf(w, "nodes: %d  height: %d  bound: %.2f\n\n", report.Nodes, report.Height, report.Bound)
	for _, p := range report.Phases {
		fmt.Fprintf(w, "%s %8d ops  %12s  %8s/op\n",
			styles.HelpKey.Render(fmt.Sprintf("%-6s", p.Name)), p.Ops, p.Elapsed.Round(time.Microsecond), p.perOp())
	}
}
