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

package board

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialPosition(t *testing.T) {
	p := Initial(Standard8x8)
	assert.Equal(t, Valid, Validate(p, Standard8x8))
	assert.Equal(t, 4, p.DiscCount())
	moves := GetMoves(p, Standard8x8)
	assert.Equal(t, 4, bits.OnesCount64(moves))
}

func TestCanonicalIdempotent(t *testing.T) {
	// P1: canonical(canonical(s)) == canonical(s)
	r := rand.New(rand.NewSource(1))
	p := Initial(Standard8x8)
	for i := 0; i < 200; i++ {
		moves := GetMoves(p, Standard8x8)
		if moves == 0 {
			break
		}
		sq := pickSquare(r, moves)
		p = applyMove(p, sq)
		c1 := Canonical(p)
		c2 := Canonical(c1)
		assert.Equal(t, c1, c2)
	}
}

func TestSymmetryClosure(t *testing.T) {
	// P2: canonical(sigma(s)) == canonical(s) for each of the 8 symmetries.
	p := Initial(Standard8x8)
	moves := GetMoves(p, Standard8x8)
	sq := pickSquare(rand.New(rand.NewSource(2)), moves)
	p = applyMove(p, sq)
	want := Canonical(p)
	for s := 0; s < 8; s++ {
		cp, co := applySymmetry(s, p.Player, p.Opponent)
		got := Canonical(Position{Player: cp, Opponent: co})
		assert.Equal(t, want, got)
	}
}

func TestFlipCorrectness(t *testing.T) {
	// P3/P4: flip consists only of opponent stones on a ray bounded by a
	// player stone; get_moves agrees with flip != 0.
	p := Initial(Standard8x8)
	for sq := uint8(0); sq < 64; sq++ {
		bit := Bitboard(1) << sq
		f := Flip(sq, p, Standard8x8)
		if p.Occupied()&bit != 0 {
			assert.Equal(t, Bitboard(0), f)
			continue
		}
		assert.Equal(t, f&p.Opponent, f, "flip mask must be opponent-only bits")
		inMoves := GetMoves(p, Standard8x8)&bit != 0
		assert.Equal(t, f != 0, inMoves)
	}
}

func TestValidateOverlap(t *testing.T) {
	p := Position{Player: 1, Opponent: 1}
	assert.Equal(t, Overlap, Validate(p, Standard8x8))
}

func TestValidateMissingCenter(t *testing.T) {
	p := Position{Player: 1, Opponent: 0}
	assert.Equal(t, MissingCenter, Validate(p, Standard8x8))
}

func TestParseBoard64(t *testing.T) {
	line := "---------------------------OX------XO---------------------------"
	p, ok := ParseBoard(line, Standard8x8)
	require.True(t, ok)
	assert.Equal(t, Initial(Standard8x8), p)
	assert.Equal(t, line, p.String())
}

func TestParseBoard6x6(t *testing.T) {
	p := Initial(Standard6x6)
	line := p.String()
	p2, ok := ParseBoard(line, Standard6x6)
	require.True(t, ok)
	assert.Equal(t, p, p2)
}

// pickSquare returns a uniformly chosen set bit in mask, consuming r so
// fixtures built from it vary across seeds.
func pickSquare(r *rand.Rand, mask Bitboard) uint8 {
	n := bits.OnesCount64(uint64(mask))
	skip := r.Intn(n)
	for {
		sq := uint8(bits.TrailingZeros64(uint64(mask)))
		if skip == 0 {
			return sq
		}
		skip--
		mask &^= Bitboard(1) << sq
	}
}

// applyMove plays at sq for the current player, flips accordingly and
// swaps sides, mirroring the forward game rule (used only to build
// reachable test fixtures, not part of the production API).
func applyMove(p Position, sq uint8) Position {
	f := Flip(sq, p, Standard8x8)
	newPlayer := p.Opponent ^ f
	newOpponent := p.Player | f | (Bitboard(1) << sq)
	return Position{Player: newPlayer, Opponent: newOpponent}
}
