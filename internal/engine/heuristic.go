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
)

// interiorMask excludes every square on the outer ring (file A/H, rank
// 1/8): "interior" in the sense the move-ordering heuristic uses.
func interiorMask(g board.Geometry) board.Bitboard {
	return g.Region &^ board.FileA &^ board.FileH &^ board.Rank1 &^ board.Rank8
}

// Features computes the four structural counts Strategy 2's move-order
// heuristic aggregates into h: the number of interior squares whose all
// 8 neighbors are occupied (interior-only 8-connected squares), the
// number of interior-interior occupied adjacent pairs, the total number
// of same-color occupied adjacent pairs, and the smaller of the two
// per-color same-color adjacency counts.
//
// DESIGN.md records this as an actual count rather than the reference
// implementation's apparent no-op for the first feature.
func Features(p board.Position, g board.Geometry) (inSq, inEdge, smEdgeAll, smEdgeMin int) {
	occ := p.Occupied()
	interior := interiorMask(g)

	for sq := uint8(0); sq < 64; sq++ {
		bit := board.Bitboard(1) << sq
		if occ&bit == 0 || interior&bit == 0 {
			continue
		}
		allNeighborsOccupied := true
		for _, d := range board.AllDirections {
			n := board.Shift(bit, d, g.Region)
			if n == 0 || occ&n == 0 {
				allNeighborsOccupied = false
				break
			}
		}
		if allNeighborsOccupied {
			inSq++
		}
	}

	var playerEdges, opponentEdges int
	// Count each adjacent pair once by only looking "forward" along
	// East, North, NorthEast, NorthWest.
	forward := []board.Direction{board.East, board.North, board.NorthEast, board.NorthWest}
	for sq := uint8(0); sq < 64; sq++ {
		bit := board.Bitboard(1) << sq
		if occ&bit == 0 {
			continue
		}
		for _, d := range forward {
			n := board.Shift(bit, d, g.Region)
			if n == 0 || occ&n == 0 {
				continue
			}
			if interior&bit != 0 && interior&n != 0 {
				inEdge++
			}
			switch {
			case p.Player&bit != 0 && p.Player&n != 0:
				playerEdges++
				smEdgeAll++
			case p.Opponent&bit != 0 && p.Opponent&n != 0:
				opponentEdges++
				smEdgeAll++
			}
		}
	}
	smEdgeMin = playerEdges
	if opponentEdges < playerEdges {
		smEdgeMin = opponentEdges
	}
	return
}

// HFunction scores a candidate predecessor board for move ordering:
// smaller scores are explored first (Strategy 2 sorts candidates
// ascending by score). The four features are inversely weighted (a
// more constrained-looking board sorts earlier) and the whole score is
// scaled by 2^discs so that deeper boards are distinguished more
// coarsely than shallow ones, matching the reference's exponential
// scaling.
func HFunction(p board.Position, g board.Geometry) float64 {
	inSq, inEdge, smEdgeAll, smEdgeMin := Features(p, g)
	scale := float64(uint64(1) << uint(p.DiscCount()&63))
	score := 1/float64(1+inSq) + 1/float64(1+inEdge) + 1/float64(1+smEdgeAll) + 1/float64(1+smEdgeMin)
	return scale * score
}

// CanonicalLess tie-breaks equal-scored candidates by canonical order,
// matching Strategy 2's documented tie-break. Exported so Strategy 4
// (internal/engine/bestfirst) can share the same tie-break rule.
func CanonicalLess(a, b board.Position) bool {
	ca, cb := board.Canonical(a), board.Canonical(b)
	if ca.Player != cb.Player {
		return ca.Player < cb.Player
	}
	return ca.Opponent < cb.Opponent
}
