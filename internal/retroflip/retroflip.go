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

// Package retroflip enumerates, for a hypothesized last-move square q in a
// position s, every nonempty union of per-direction reversible-line
// prefixes consistent with q having just been played. This is the
// retrospective counterpart to board.Flip.
package retroflip

import "github.com/frankkopp/othello-reach/internal/board"

// BufferCap bounds the dense accumulator array. Empirically sufficient
// for 8x8 Othello (original_source uses the same constant).
const BufferCap = 10000

// Buffer is a reusable, non-thread-safe scratch array for Enumerate.
// Strategy 3 gives each forked pool task its own Buffer, which the
// task's depth-first recursion then reuses.
type Buffer struct {
	masks [BufferCap]board.Bitboard
}

// NewBuffer allocates a retroflip scratch buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Overflowed is set by the most recent Enumerate call if the accumulator
// had to be truncated at BufferCap entries (see DESIGN.md Open Question
// #3: truncate and report, never panic).
type Overflowed struct {
	Truncated bool
}

// Enumerate fills b's scratch array with every candidate flip-set for a
// hypothesized last move at square q, given the occupied-by-mover mask
// sOpponent (the s.Opponent bitmask: q and every candidate flip lie in
// this mask, since after the move both the played square and the
// flipped stones share the mover's color, which is labeled "opponent"
// from s's to-move perspective).
//
// The returned slice aliases b's internal array; it is invalidated by
// the next Enumerate call. Index 0 is always the zero sentinel; callers
// wanting only real (nonempty) flip-sets should range over result[1:].
func (b *Buffer) Enumerate(q uint8, sOpponent board.Bitboard, g board.Geometry) (result []board.Bitboard, overflow Overflowed) {
	b.masks[0] = 0
	n := 1
	qBit := board.Bitboard(1) << q
direction:
	for _, d := range board.AllDirections {
		prefixes := runPrefixes(qBit, d, sOpponent, g.Region)
		if len(prefixes) == 0 {
			continue
		}
		old := n
		for i := 0; i < old; i++ {
			base := b.masks[i]
			for _, pfx := range prefixes {
				if n >= BufferCap {
					overflow.Truncated = true
					break direction
				}
				b.masks[n] = base | pfx
				n++
			}
		}
	}
	return b.masks[:n], overflow
}

// runPrefixes walks from qBit in direction d across consecutive squares
// of sOpponent and returns the cumulative-OR prefixes of length
// 1..length-1 (the final square in the run is the flip anchor and is
// never itself part of a flip mask). A run shorter than 2 squares
// contributes nothing: there is no anchor beyond a single flipped stone.
func runPrefixes(qBit board.Bitboard, d board.Direction, sOpponent, region board.Bitboard) []board.Bitboard {
	var chain []board.Bitboard
	var cum board.Bitboard
	sq := board.Shift(qBit, d, region)
	for sq&sOpponent != 0 {
		cum |= sq
		chain = append(chain, cum)
		sq = board.Shift(sq, d, region)
	}
	if len(chain) < 2 {
		return nil
	}
	return chain[:len(chain)-1]
}

// Predecessor builds the predecessor position p implied by s, a
// hypothesized last-move square q (q must be a bit of s.Opponent, not a
// center square) and a chosen flip mask F from Enumerate's result.
//
//	p.occupancy  = s.occupancy \ {q}
//	p.Player     = s.Opponent \ {q} \ F
//	p.Opponent   = s.Player | F
func Predecessor(s board.Position, q uint8, f board.Bitboard) board.Position {
	qBit := board.Bitboard(1) << q
	return board.Position{
		Player:   s.Opponent &^ qBit &^ f,
		Opponent: s.Player | f,
	}
}
