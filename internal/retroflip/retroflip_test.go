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

package retroflip

import (
	"math/bits"
	"testing"

	"github.com/frankkopp/othello-reach/internal/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// forwardApply plays at sq for p.Player and returns the resulting
// position with sides swapped, mirroring the game rule.
func forwardApply(p board.Position, sq uint8, g board.Geometry) board.Position {
	f := board.Flip(sq, p, g)
	return board.Position{
		Player:   p.Opponent &^ f,
		Opponent: p.Player | f | (board.Bitboard(1) << sq),
	}
}

// someReachablePosition advances a few plies from the initial position to
// get a structurally realistic (non-trivial) test fixture.
func someReachablePosition(g board.Geometry) board.Position {
	p := board.Initial(g)
	for i := 0; i < 3; i++ {
		moves := board.GetMoves(p, g)
		if moves == 0 {
			break
		}
		sq := uint8(bits.TrailingZeros64(moves))
		p = forwardApply(p, sq, g)
	}
	return p
}

func TestRetroflipSoundness(t *testing.T) {
	// P5: for each enumerated predecessor, replaying the hypothesized
	// move q with flip mask F in the predecessor reproduces s exactly.
	g := board.Standard8x8
	s := someReachablePosition(g)

	buf := NewBuffer()
	candidates := s.Opponent &^ g.Center
	tested := 0
	for q := uint8(0); q < 64; q++ {
		bit := board.Bitboard(1) << q
		if candidates&bit == 0 {
			continue
		}
		result, overflow := buf.Enumerate(q, s.Opponent, g)
		assert.False(t, overflow.Truncated)
		require.Equal(t, board.Bitboard(0), result[0], "index 0 must be the zero sentinel")
		for _, f := range result[1:] {
			tested++
			pred := Predecessor(s, q, f)
			// occupancy invariant
			assert.Equal(t, s.Occupied()&^bit, pred.Occupied())
			assert.Equal(t, board.Bitboard(0), pred.Player&pred.Opponent)
			// replaying the move in pred must reproduce s exactly
			got := forwardApply(pred, q, g)
			assert.Equal(t, s, got)
			// the forward flip computed independently must equal f
			assert.Equal(t, f, board.Flip(q, pred, g))
		}
	}
	assert.Greater(t, tested, 0, "fixture should have at least one candidate predecessor")
}

func TestRetroflipNoContributionBelowRunTwo(t *testing.T) {
	g := board.Standard8x8
	p := board.Initial(g)
	buf := NewBuffer()
	// In the initial position no opponent stone starts a run of two or
	// more opponent stones in any direction, so every direction
	// contributes nothing and only the zero sentinel at index 0 remains.
	for q := uint8(0); q < 64; q++ {
		bit := board.Bitboard(1) << q
		if p.Opponent&bit == 0 {
			continue
		}
		result, _ := buf.Enumerate(q, p.Opponent, g)
		assert.Equal(t, board.Bitboard(0), result[0])
		assert.Len(t, result, 1)
	}
}
