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

package engine

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/frankkopp/workerpool"
	"golang.org/x/sync/semaphore"

	"github.com/frankkopp/othello-reach/internal/board"
	"github.com/frankkopp/othello-reach/internal/logging"
	"github.com/frankkopp/othello-reach/internal/pruning"
	"github.com/frankkopp/othello-reach/internal/retroflip"
	"github.com/frankkopp/othello-reach/internal/stats"
	"github.com/frankkopp/othello-reach/internal/visited"
)

// verdict states for Parallel's atomic stop flag. Zero value is "still
// running"; a worker that observes a non-zero value abandons its branch
// without further expansion.
const (
	verdictRunning int32 = iota
	verdictFound
	verdictUnknown
)

// Parallel is Strategy 3: work-stealing parallel DFS. Every expansion
// with depth <= DPar and at least KPar candidate predecessors forks one
// pool task per candidate; everything else continues depth-first on the
// calling goroutine with a thread-local retroflip buffer. The init gate
// is a single-weight golang.org/x/sync/semaphore, generalized here to
// guard a pool of workers rather than one background search goroutine.
type Parallel struct {
	params Params

	mu      sync.Mutex // guards visited
	visited *visited.Btable
	stats   *stats.Stats

	verdict int32 // atomic: verdictRunning/verdictFound/verdictUnknown

	wg   sync.WaitGroup
	pool *workerpool.WorkerPool

	// initGate: Search acquires the single weight before a run and
	// releases it once the pool has drained, so a caller can never start
	// two overlapping searches on the same Parallel instance.
	initGate *semaphore.Weighted
}

// NewParallel constructs Strategy 3 over the given parameters. Workers
// defaults to 1 (effectively sequential) if unset.
func NewParallel(p Params) *Parallel {
	workers := p.Workers
	if workers < 1 {
		workers = 1
	}
	return &Parallel{
		params:   p,
		visited:  visited.New(p.CacheSize, int(p.TableMax)),
		stats:    stats.New(),
		pool:     workerpool.New(workers),
		initGate: semaphore.NewWeighted(1),
	}
}

// Stats exposes the accumulated search statistics.
func (e *Parallel) Stats() *stats.Stats { return e.stats }

// Search decides whether target is reachable from the opening, fanning
// expansion out across e.params.Workers goroutines.
func (e *Parallel) Search(target board.Position) Verdict {
	_ = e.initGate.Acquire(context.TODO(), 1)
	defer e.initGate.Release(1)

	atomic.StoreInt32(&e.verdict, verdictRunning)
	e.wg.Add(1)
	e.dispatch(target, false, 0, retroflip.NewBuffer())
	e.wg.Wait()
	e.pool.StopWait()

	switch atomic.LoadInt32(&e.verdict) {
	case verdictFound:
		return Found
	case verdictUnknown:
		return Unknown
	default:
		return NotFound
	}
}

// dispatch submits one root/forked task to the pool. Callers must have
// already called e.wg.Add(1).
func (e *Parallel) dispatch(s board.Position, fromPass bool, depth int, buf *retroflip.Buffer) {
	e.pool.Submit(func() {
		defer e.wg.Done()
		e.search(s, fromPass, depth, buf)
	})
}

func (e *Parallel) stopped() bool {
	return atomic.LoadInt32(&e.verdict) != verdictRunning
}

// markVerdict records v unless a result has already been recorded;
// Found is never overwritten once set.
func (e *Parallel) markVerdict(v Verdict) {
	target := int32(verdictUnknown)
	if v == Found {
		target = verdictFound
	}
	for {
		cur := atomic.LoadInt32(&e.verdict)
		if cur == verdictFound || cur == target {
			return
		}
		if atomic.CompareAndSwapInt32(&e.verdict, cur, target) {
			return
		}
	}
}

type parallelCandidate struct {
	pos      board.Position
	fromPass bool
}

func (e *Parallel) search(s board.Position, fromPass bool, depth int, buf *retroflip.Buffer) {
	if e.stopped() {
		return
	}

	discs := s.DiscCount()
	if discs <= e.params.Frontier.Threshold {
		if e.params.Frontier.Contains(board.Canonical(s)) {
			e.markVerdict(Found)
		}
		return
	}

	canon := board.Canonical(s)
	e.mu.Lock()
	inserted := e.visited.Insert(canon)
	tableLen := e.visited.Len()
	e.mu.Unlock()
	if !inserted {
		return
	}
	e.stats.SetTableEntries(uint64(tableLen))

	n := e.stats.AddNode(discs)
	if int64(n) > e.params.NodeMax {
		e.markVerdict(Unknown)
		return
	}

	if !pruning.Passes(s.Occupied(), e.params.Geometry, e.params.SegFloor) {
		return
	}

	var children []parallelCandidate
	if !fromPass {
		p := swapSides(s)
		if board.GetMoves(p, e.params.Geometry) == 0 && board.GetMoves(s, e.params.Geometry) != 0 {
			children = append(children, parallelCandidate{pos: p, fromPass: true})
		}
	}

	candidates := nonCenterOpponentSquares(s, e.params.Geometry)
	for q := uint8(0); q < 64; q++ {
		bit := board.Bitboard(1) << q
		if candidates&bit == 0 {
			continue
		}
		result, overflow := buf.Enumerate(q, s.Opponent, e.params.Geometry)
		if overflow.Truncated {
			logging.ReverseLog(logging.LevelWarn).Warningf("retroflip buffer overflow at square %d, disc count %d", q, discs)
		}
		for _, f := range result[1:] {
			pred := retroflip.Predecessor(s, q, f)
			children = append(children, parallelCandidate{pos: pred})
		}
	}

	if depth <= e.params.DPar && len(children) >= e.params.KPar {
		for _, c := range children {
			if e.stopped() {
				break
			}
			e.wg.Add(1)
			e.dispatch(c.pos, c.fromPass, depth+1, retroflip.NewBuffer())
		}
		return
	}

	for _, c := range children {
		if e.stopped() {
			return
		}
		e.search(c.pos, c.fromPass, depth+1, buf)
	}
}
