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
	"github.com/frankkopp/othello-reach/internal/board"
	"github.com/frankkopp/othello-reach/internal/logging"
	"github.com/frankkopp/othello-reach/internal/pruning"
	"github.com/frankkopp/othello-reach/internal/retroflip"
	"github.com/frankkopp/othello-reach/internal/stats"
	"github.com/frankkopp/othello-reach/internal/visited"
)

// Sequential is Strategy 1: single-threaded retrospective DFS with a
// Btable visited set.
type Sequential struct {
	params  Params
	visited *visited.Btable
	stats   *stats.Stats
	buf     *retroflip.Buffer
	log     bool
}

// NewSequential constructs Strategy 1 over the given parameters.
func NewSequential(p Params) *Sequential {
	return &Sequential{
		params:  p,
		visited: visited.New(p.CacheSize, int(p.TableMax)),
		stats:   stats.New(),
		buf:     retroflip.NewBuffer(),
	}
}

// Stats exposes the accumulated search statistics.
func (e *Sequential) Stats() *stats.Stats { return e.stats }

// Search decides whether target is reachable from the opening.
func (e *Sequential) Search(target board.Position) Verdict {
	return e.search(target, false)
}

func (e *Sequential) search(s board.Position, fromPass bool) Verdict {
	discs := s.DiscCount()

	if discs <= e.params.Frontier.Threshold {
		if e.params.Frontier.Contains(board.Canonical(s)) {
			return Found
		}
		return NotFound
	}

	canon := board.Canonical(s)
	if !e.visited.Insert(canon) {
		return NotFound
	}
	n := e.stats.AddNode(discs)
	if int64(n) > e.params.NodeMax {
		return Unknown
	}
	e.stats.SetTableEntries(uint64(e.visited.Len()))

	if !pruning.Passes(s.Occupied(), e.params.Geometry, e.params.SegFloor) {
		return NotFound
	}

	if !fromPass {
		if v := e.tryPass(s); v != NotFound {
			return v
		}
	}

	candidates := nonCenterOpponentSquares(s, e.params.Geometry)
	for q := uint8(0); q < 64; q++ {
		bit := board.Bitboard(1) << q
		if candidates&bit == 0 {
			continue
		}
		result, overflow := e.buf.Enumerate(q, s.Opponent, e.params.Geometry)
		if overflow.Truncated {
			logging.ReverseLog(logging.LevelWarn).Warningf("retroflip buffer overflow at square %d, disc count %d", q, discs)
		}
		// result aliases e.buf, which the recursive calls below refill.
		flips := append([]board.Bitboard(nil), result[1:]...)
		for _, f := range flips {
			pred := retroflip.Predecessor(s, q, f)
			if v := e.search(pred, false); v == Found || v == Unknown {
				return v
			}
		}
	}
	return NotFound
}

// tryPass attempts the pass-predecessor: s reached by a forced pass iff
// swapSides(s) has no legal move while s itself does.
func (e *Sequential) tryPass(s board.Position) Verdict {
	p := swapSides(s)
	if board.GetMoves(p, e.params.Geometry) != 0 {
		return NotFound
	}
	if board.GetMoves(s, e.params.Geometry) == 0 {
		return NotFound
	}
	return e.search(p, true)
}
