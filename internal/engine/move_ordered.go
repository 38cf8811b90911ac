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
	"sort"

	"github.com/frankkopp/othello-reach/internal/board"
	"github.com/frankkopp/othello-reach/internal/logging"
	"github.com/frankkopp/othello-reach/internal/pruning"
	"github.com/frankkopp/othello-reach/internal/retroflip"
	"github.com/frankkopp/othello-reach/internal/stats"
	"github.com/frankkopp/othello-reach/internal/visited"
)

// MoveOrdered is Strategy 2: identical to Sequential except every
// expansion collects its full candidate predecessor set (including a
// possible pass predecessor) and sorts it ascending by HFunction before
// recursing, tie-broken by canonical order.
type MoveOrdered struct {
	params  Params
	visited *visited.Btable
	stats   *stats.Stats
	buf     *retroflip.Buffer
}

// NewMoveOrdered constructs Strategy 2.
func NewMoveOrdered(p Params) *MoveOrdered {
	return &MoveOrdered{
		params:  p,
		visited: visited.New(p.CacheSize, int(p.TableMax)),
		stats:   stats.New(),
		buf:     retroflip.NewBuffer(),
	}
}

// Stats exposes the accumulated search statistics.
func (e *MoveOrdered) Stats() *stats.Stats { return e.stats }

// Search decides whether target is reachable from the opening.
func (e *MoveOrdered) Search(target board.Position) Verdict {
	return e.search(target, false)
}

type candidate struct {
	pos      board.Position
	fromPass bool
	score    float64
}

func (e *MoveOrdered) search(s board.Position, fromPass bool) Verdict {
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

	var cands []candidate
	if !fromPass {
		p := swapSides(s)
		if board.GetMoves(p, e.params.Geometry) == 0 && board.GetMoves(s, e.params.Geometry) != 0 {
			cands = append(cands, candidate{pos: p, fromPass: true, score: HFunction(p, e.params.Geometry)})
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
		for _, f := range result[1:] {
			pred := retroflip.Predecessor(s, q, f)
			cands = append(cands, candidate{pos: pred, score: HFunction(pred, e.params.Geometry)})
		}
	}

	sort.Slice(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score < cands[j].score
		}
		return CanonicalLess(cands[i].pos, cands[j].pos)
	})

	for _, c := range cands {
		if v := e.search(c.pos, c.fromPass); v == Found || v == Unknown {
			return v
		}
	}
	return NotFound
}
