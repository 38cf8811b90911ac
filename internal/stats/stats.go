//
// OthelloReach - backward reachability search for Othello positions
//
// MIT License
//
// Copyright (c) 2020-2026 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package stats tracks per-search node/table counters, per-disc-count
// diagnostics, and per-stone predecessor-expansion counters.
package stats

import (
	"sync/atomic"
	"time"

	"github.com/frankkopp/othello-reach/internal/logging"
)

// Stats accumulates counters for one retrospective-search invocation.
// All counter fields are safe for concurrent use by the parallel
// strategies via the atomic accessor methods below.
type Stats struct {
	nodesVisited uint64
	tableEntries uint64

	// PerLevel[d] counts nodes visited at disc count d (0..64), the
	// per-stone diagnostic from original_source/par_search.rs.
	PerLevel [65]uint64

	StartTime time.Time
}

// New returns a zeroed Stats with StartTime set to now.
func New() *Stats {
	return &Stats{StartTime: time.Now()}
}

// AddNode records one newly-visited node at the given disc count.
func (s *Stats) AddNode(discs int) uint64 {
	if discs >= 0 && discs < len(s.PerLevel) {
		atomic.AddUint64(&s.PerLevel[discs], 1)
	}
	return atomic.AddUint64(&s.nodesVisited, 1)
}

// NodesVisited returns the total node count so far.
func (s *Stats) NodesVisited() uint64 { return atomic.LoadUint64(&s.nodesVisited) }

// SetTableEntries records the current visited-set size (a gauge, not a
// counter).
func (s *Stats) SetTableEntries(n uint64) { atomic.StoreUint64(&s.tableEntries, n) }

// TableEntries returns the last recorded visited-set size.
func (s *Stats) TableEntries() uint64 { return atomic.LoadUint64(&s.tableEntries) }

// NPS computes nodes-per-second throughput, tolerating zero elapsed time.
func (s *Stats) NPS() uint64 {
	elapsed := time.Since(s.StartTime)
	return uint64(int64(s.NodesVisited()) * time.Second.Nanoseconds() / (elapsed.Nanoseconds() + 1))
}

// Summary renders a locale-formatted one-line diagnostic, matching the
// teacher's util.Nps/util.MemStat Sprintf idiom.
func (s *Stats) Summary() string {
	return logging.Out.Sprintf("nodes=%d table=%d nps=%d elapsed=%s",
		s.NodesVisited(), s.TableEntries(), s.NPS(), time.Since(s.StartTime))
}
