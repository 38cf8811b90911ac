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
	"testing"

	"github.com/frankkopp/othello-reach/internal/board"
	"github.com/frankkopp/othello-reach/internal/frontier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oneMoveFromInitial(g board.Geometry) board.Position {
	p := board.Initial(g)
	moves := board.GetMoves(p, g)
	var sq uint8
	for s := uint8(0); s < 64; s++ {
		if moves&(board.Bitboard(1)<<s) != 0 {
			sq = s
			break
		}
	}
	f := board.Flip(sq, p, g)
	return board.Position{Player: p.Opponent &^ f, Opponent: p.Player | f | (board.Bitboard(1) << sq)}
}

func testParams(f *frontier.Cache) Params {
	p := DefaultParams(f)
	p.Workers = 2
	return p
}

// TestScenario1InitialBoard: the initial board at D=4 is Found by every
// strategy in O(1), since discs == D.
func TestScenario1InitialBoard(t *testing.T) {
	g := board.Standard8x8
	leaf := frontier.Build(4, g)
	target := board.Initial(g)

	assert.Equal(t, Found, NewSequential(testParams(leaf)).Search(target))
	assert.Equal(t, Found, NewMoveOrdered(testParams(leaf)).Search(target))
	assert.Equal(t, Found, NewParallel(testParams(leaf)).Search(target))
}

// TestScenario2OnePlyBoard: a 5-disc position one legal move past the
// opening, with D=4, is Found after a single predecessor expansion.
func TestScenario2OnePlyBoard(t *testing.T) {
	g := board.Standard8x8
	leaf := frontier.Build(4, g)
	target := oneMoveFromInitial(g)
	require.Equal(t, 5, target.DiscCount())

	assert.Equal(t, Found, NewSequential(testParams(leaf)).Search(target))
	assert.Equal(t, Found, NewMoveOrdered(testParams(leaf)).Search(target))
	assert.Equal(t, Found, NewParallel(testParams(leaf)).Search(target))
}

// TestScenario3ConnectivityUnreachable: the initial board XOR a
// disconnected stone at A1 is NotFound, rejected by the connectivity/
// occupancy floor before any predecessor recursion.
func TestScenario3ConnectivityUnreachable(t *testing.T) {
	g := board.Standard8x8
	leaf := frontier.Build(4, g)
	init := board.Initial(g)
	target := board.Position{Player: init.Player, Opponent: init.Opponent | 1}

	assert.Equal(t, NotFound, NewSequential(testParams(leaf)).Search(target))
	assert.Equal(t, NotFound, NewMoveOrdered(testParams(leaf)).Search(target))
	assert.Equal(t, NotFound, NewParallel(testParams(leaf)).Search(target))
}

func TestResourceCapYieldsUnknown(t *testing.T) {
	// A tiny NodeMax forces Unknown rather than NotFound on a position
	// requiring more than one expansion.
	g := board.Standard8x8
	leaf := frontier.Build(4, g)
	target := oneMoveFromInitial(g)

	p := testParams(leaf)
	p.NodeMax = 0
	assert.Equal(t, Unknown, NewSequential(p).Search(target))
}
