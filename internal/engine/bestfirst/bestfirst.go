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

// Package bestfirst implements Strategy 4: parallel best-first
// retrospective search. Unlike the DFS strategies in
// internal/engine, expansion order across the whole frontier is driven
// by a shared priority queue ordered by engine.HFunction, so multiple
// workers always work the currently-most-promising open boards rather
// than following a single depth-first branch each.
package bestfirst

import (
	"container/heap"
	"sync"
	"sync/atomic"

	"github.com/frankkopp/othello-reach/internal/board"
	"github.com/frankkopp/othello-reach/internal/engine"
	"github.com/frankkopp/othello-reach/internal/logging"
	"github.com/frankkopp/othello-reach/internal/pruning"
	"github.com/frankkopp/othello-reach/internal/retroflip"
	"github.com/frankkopp/othello-reach/internal/stats"
	"github.com/frankkopp/othello-reach/internal/visited"
)

const (
	verdictRunning int32 = iota
	verdictFound
	verdictUnknown
)

type node struct {
	pos      board.Position
	fromPass bool
	score    float64
}

// openQueue is a container/heap priority queue ordered by ascending
// score (engine.HFunction), tie-broken by engine.CanonicalLess, the
// same ordering Strategy 2 uses for a single branch.
type openQueue []node

func (q openQueue) Len() int { return len(q) }
func (q openQueue) Less(i, j int) bool {
	if q[i].score != q[j].score {
		return q[i].score < q[j].score
	}
	return engine.CanonicalLess(q[i].pos, q[j].pos)
}
func (q openQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *openQueue) Push(x interface{}) { *q = append(*q, x.(node)) }
func (q *openQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// BestFirst is Strategy 4: a pool of workers draining one shared
// priority queue, gated by a condition variable so idle workers block
// until new work arrives rather than busy-spin, mirroring the
// teacher's semaphore-gated coordinator idiom generalized to N workers.
type BestFirst struct {
	params engine.Params

	mu      sync.Mutex
	cond    *sync.Cond
	queue   openQueue
	visited *visited.Btable
	active  int // workers currently processing a node (not idle, not exited)
	stopped bool

	stats   *stats.Stats
	verdict int32
}

// New constructs Strategy 4 over the given parameters.
func New(p engine.Params) *BestFirst {
	bf := &BestFirst{
		params:  p,
		visited: visited.New(p.CacheSize, int(p.TableMax)),
		stats:   stats.New(),
	}
	bf.cond = sync.NewCond(&bf.mu)
	return bf
}

// Stats exposes the accumulated search statistics.
func (bf *BestFirst) Stats() *stats.Stats { return bf.stats }

// Search decides whether target is reachable from the opening.
func (bf *BestFirst) Search(target board.Position) engine.Verdict {
	atomic.StoreInt32(&bf.verdict, verdictRunning)
	bf.stopped = false
	bf.queue = openQueue{{pos: target, score: engine.HFunction(target, bf.params.Geometry)}}
	heap.Init(&bf.queue)

	workers := bf.params.Workers
	if workers < 1 {
		workers = 1
	}
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			bf.worker()
		}()
	}
	wg.Wait()

	switch atomic.LoadInt32(&bf.verdict) {
	case verdictFound:
		return engine.Found
	case verdictUnknown:
		return engine.Unknown
	default:
		return engine.NotFound
	}
}

func (bf *BestFirst) markVerdict(v engine.Verdict) {
	target := int32(verdictUnknown)
	if v == engine.Found {
		target = verdictFound
	}
	for {
		cur := atomic.LoadInt32(&bf.verdict)
		if cur == verdictFound || cur == target {
			break
		}
		if atomic.CompareAndSwapInt32(&bf.verdict, cur, target) {
			break
		}
	}
	bf.mu.Lock()
	bf.stopped = true
	bf.cond.Broadcast()
	bf.mu.Unlock()
}

// worker repeatedly pops the best-scored open node, expands it, and
// pushes its predecessor candidates back. It exits when the search has
// been stopped, or when the queue is empty and every other worker is
// also idle (global exhaustion: NotFound).
func (bf *BestFirst) worker() {
	buf := retroflip.NewBuffer()
	for {
		bf.mu.Lock()
		for len(bf.queue) == 0 && !bf.stopped && bf.active > 0 {
			bf.cond.Wait()
		}
		if bf.stopped || (len(bf.queue) == 0 && bf.active == 0) {
			bf.stopped = true
			bf.cond.Broadcast()
			bf.mu.Unlock()
			return
		}
		n := heap.Pop(&bf.queue).(node)
		bf.active++
		bf.mu.Unlock()

		children := bf.expand(n, buf)

		bf.mu.Lock()
		bf.active--
		for _, c := range children {
			heap.Push(&bf.queue, c)
		}
		bf.cond.Broadcast()
		bf.mu.Unlock()
	}
}

// expand applies the same termination order as the DFS strategies
// (frontier check, visited insert, node cap, pruning filter, optional
// LP/IP filter) and returns the scored predecessor candidates to add
// back to the queue.
func (bf *BestFirst) expand(n node, buf *retroflip.Buffer) []node {
	if atomic.LoadInt32(&bf.verdict) != verdictRunning {
		return nil
	}
	s := n.pos
	discs := s.DiscCount()

	if discs <= bf.params.Frontier.Threshold {
		if bf.params.Frontier.Contains(board.Canonical(s)) {
			bf.markVerdict(engine.Found)
		}
		return nil
	}

	canon := board.Canonical(s)
	bf.mu.Lock()
	inserted := bf.visited.Insert(canon)
	tableLen := bf.visited.Len()
	bf.mu.Unlock()
	if !inserted {
		return nil
	}
	bf.stats.SetTableEntries(uint64(tableLen))

	count := bf.stats.AddNode(discs)
	if int64(count) > bf.params.NodeMax {
		bf.markVerdict(engine.Unknown)
		return nil
	}

	if !pruning.Passes(s.Occupied(), bf.params.Geometry, bf.params.SegFloor) {
		return nil
	}

	switch bf.params.LPMode {
	case "lp":
		if !pruning.LPFeasible(s, bf.params.Geometry, nil) {
			return nil
		}
	case "ip":
		if !pruning.SATFeasible(s, bf.params.Geometry, nil) {
			return nil
		}
	}

	var out []node
	if !n.fromPass {
		p := board.Position{Player: s.Opponent, Opponent: s.Player}
		if board.GetMoves(p, bf.params.Geometry) == 0 && board.GetMoves(s, bf.params.Geometry) != 0 {
			out = append(out, node{pos: p, fromPass: true, score: engine.HFunction(p, bf.params.Geometry)})
		}
	}

	candidates := s.Opponent &^ bf.params.Geometry.Center
	for q := uint8(0); q < 64; q++ {
		bit := board.Bitboard(1) << q
		if candidates&bit == 0 {
			continue
		}
		result, overflow := buf.Enumerate(q, s.Opponent, bf.params.Geometry)
		if overflow.Truncated {
			logging.ReverseLog(logging.LevelWarn).Warningf("retroflip buffer overflow at square %d, disc count %d", q, discs)
		}
		for _, f := range result[1:] {
			pred := retroflip.Predecessor(s, q, f)
			out = append(out, node{pos: pred, score: engine.HFunction(pred, bf.params.Geometry)})
		}
	}
	return out
}
