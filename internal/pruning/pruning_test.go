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

package pruning

import (
	"testing"

	"github.com/frankkopp/othello-reach/internal/board"
	"github.com/stretchr/testify/assert"
)

func TestInitialPositionPassesAllFilters(t *testing.T) {
	g := board.Standard8x8
	p := board.Initial(g)
	occ := p.Occupied()
	assert.True(t, Connected(occ, g))
	assert.True(t, CheckOccupancy(occ, g))
	assert.True(t, CheckSeg3(occ, g))
	assert.True(t, CheckSeg3More(occ, g))
	assert.True(t, Passes(occ, g, FloorOccupancySeg3More))
	assert.True(t, Passes(occ, g, FloorStrictSeg3))
}

func TestConnectivityRejectsDisconnectedStone(t *testing.T) {
	// The initial board XOR a single stone at A1, disconnected from the
	// center cluster, must fail connectivity.
	g := board.Standard8x8
	p := board.Initial(g)
	occ := p.Occupied() | 1 // A1 = bit 0
	assert.False(t, Connected(occ, g))
	assert.False(t, CheckOccupancy(occ, g))
	assert.False(t, Passes(occ, g, FloorOccupancySeg3More))
}

func TestMissingCenterAlsoFailsOccupancy(t *testing.T) {
	// Scenario 4: A1 alone is a validation failure (routed to NG before
	// any pruning filter runs); the occupancy filter rejects it as well.
	occ := board.Bitboard(1)
	g := board.Standard8x8
	assert.False(t, CheckOccupancy(occ, g))
}

func TestOneMoveFromInitialPasses(t *testing.T) {
	g := board.Standard8x8
	p := board.Initial(g)
	moves := board.GetMoves(p, g)
	sq := uint8(0)
	for s := uint8(0); s < 64; s++ {
		if moves&(board.Bitboard(1)<<s) != 0 {
			sq = s
			break
		}
	}
	f := board.Flip(sq, p, g)
	next := board.Position{Player: p.Opponent &^ f, Opponent: p.Player | f | (board.Bitboard(1) << sq)}
	occ := next.Occupied()
	assert.True(t, Connected(occ, g))
	assert.True(t, CheckOccupancy(occ, g))
	assert.True(t, Passes(occ, g, FloorOccupancySeg3More))
}

func TestLPAndSATStubsAreNonCommittal(t *testing.T) {
	g := board.Standard8x8
	p := board.Initial(g)
	assert.True(t, LPFeasible(p, g, nil))
	assert.True(t, SATFeasible(p, g, nil))
}

// countingLPSolver records how many variables and rows the encoder built
// before always reporting LPUnknown, so the filter it backs stays
// non-committal regardless of what was constructed.
type countingLPSolver struct {
	vars, rows int
}

func (s *countingLPSolver) AddRealVar(_, _ float64) int {
	s.vars++
	return s.vars - 1
}
func (s *countingLPSolver) AddRow(_ Sense, _ float64, _ map[int]float64) { s.rows++ }
func (s *countingLPSolver) Solve() LPResult                              { return LPUnknown }

type countingSATSolver struct{ clauses int }

func (s *countingSATSolver) AddClause(_ []int) { s.clauses++ }
func (s *countingSATSolver) Solve() SATResult  { return SATUnknown }

func TestLPAndSATEncodersBuildRealConstraints(t *testing.T) {
	// A position with at least one non-center occupied square exercises
	// the flip-chain encoding, not just the center-pairing seed.
	g := board.Standard8x8
	p := board.Initial(g)
	moves := board.GetMoves(p, g)
	sq := uint8(0)
	for s := uint8(0); s < 64; s++ {
		if moves&(board.Bitboard(1)<<s) != 0 {
			sq = s
			break
		}
	}
	f := board.Flip(sq, p, g)
	next := board.Position{Player: p.Opponent &^ f, Opponent: p.Player | f | (board.Bitboard(1) << sq)}

	lp := &countingLPSolver{}
	assert.True(t, LPFeasible(next, g, lp))
	assert.Greater(t, lp.vars, 0)
	assert.Greater(t, lp.rows, 0)

	sat := &countingSATSolver{}
	assert.True(t, SATFeasible(next, g, sat))
	assert.Greater(t, sat.clauses, 0)
}
