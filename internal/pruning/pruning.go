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

// Package pruning implements the filter family that rejects positions
// provably unreachable from the opening. Every filter here is sound for
// unreachability only: false proves unreachable, true is non-committal.
package pruning

import (
	"math/bits"

	"github.com/frankkopp/othello-reach/internal/board"
)

// Connected reports whether occupied is 8-connected starting from the
// geometry's center squares: a bitwise BFS seeded at the center,
// expanding through all 8 directional shifts until a fixed point.
func Connected(occupied board.Bitboard, g board.Geometry) bool {
	mark := g.Center & occupied
	for {
		next := mark
		for _, d := range board.AllDirections {
			next |= board.Shift(mark, d, g.Region) & occupied
		}
		if next == mark {
			break
		}
		mark = next
	}
	return mark == occupied
}

// ReachableOccupancy computes the fixed point of "explained" squares: a
// square is explained once it is the center, or once it lies at the far
// end of a chain of occupied squares whose near end is a pair of
// adjacent, already-explained squares (the near pair proves an anchor
// disc existed to sandwich the later chain at some point in the game).
func ReachableOccupancy(occupied board.Bitboard, g board.Geometry) board.Bitboard {
	explained := g.Center & occupied
	for iter := 0; iter < 64; iter++ {
		next := explained
		for _, d := range board.AllDirections {
			frontier := explained & board.Shift(explained, d, g.Region)
			chainStart := board.Shift(frontier, d, g.Region) &^ explained & occupied
			next |= extendChain(chainStart, d, occupied, g.Region)
		}
		if next == explained || next == occupied {
			explained = next
			break
		}
		explained = next
	}
	return explained
}

func extendChain(start board.Bitboard, d board.Direction, occupied, region board.Bitboard) board.Bitboard {
	var acc board.Bitboard
	cur := start
	for cur != 0 {
		acc |= cur
		cur = board.Shift(cur, d, region) & occupied &^ acc
	}
	return acc
}

// CheckOccupancy reports whether every occupied square can be explained
// as reachable from the center via ReachableOccupancy.
func CheckOccupancy(occupied board.Bitboard, g board.Geometry) bool {
	if occupied&g.Center != g.Center {
		return false
	}
	return ReachableOccupancy(occupied, g) == occupied
}

// OccupancyOrder computes, for every occupied square i, the set of
// squares explainable without needing i itself (plus i). Used by
// Seg3More to approximate "which squares must have existed before i".
func OccupancyOrder(occupied board.Bitboard, g board.Geometry) [64]board.Bitboard {
	var order [64]board.Bitboard
	for i := uint8(0); i < 64; i++ {
		bit := board.Bitboard(1) << i
		if occupied&bit == 0 {
			continue
		}
		order[i] = ReachableOccupancy(occupied&^bit, g) | bit
	}
	return order
}

// seg3Graph holds, per square, the two anchor squares it depends on when
// exactly one direction offers a qualifying 3-in-a-row.
type seg3Graph struct {
	anchors map[uint8][2]uint8
}

// CheckSeg3 requires every occupied non-center square to have at least
// one direction with >= 3 consecutive occupied squares (itself plus two
// further stones, which must have existed as flip anchors when the
// square was played). When exactly one direction qualifies, a dependency
// edge is recorded from the square to its two anchors; the resulting
// graph must be acyclic.
func CheckSeg3(occupied board.Bitboard, g board.Geometry) bool {
	graph := seg3Graph{anchors: make(map[uint8][2]uint8)}
	for i := uint8(0); i < 64; i++ {
		bit := board.Bitboard(1) << i
		if occupied&bit == 0 || g.Center&bit != 0 {
			continue
		}
		var qualifying [][2]uint8
		for _, d := range board.AllDirections {
			a1 := board.Shift(bit, d, g.Region)
			if a1&occupied == 0 {
				continue
			}
			a2 := board.Shift(a1, d, g.Region)
			if a2&occupied == 0 {
				continue
			}
			qualifying = append(qualifying, [2]uint8{square(a1), square(a2)})
		}
		if len(qualifying) == 0 {
			return false
		}
		if len(qualifying) == 1 {
			graph.anchors[i] = qualifying[0]
		}
	}
	return noCycle(graph)
}

const (
	white = iota
	gray
	black
)

func noCycle(g seg3Graph) bool {
	color := make(map[uint8]uint8, len(g.anchors))
	var visit func(u uint8) bool
	visit = func(u uint8) bool {
		color[u] = gray
		if anchors, ok := g.anchors[u]; ok {
			for _, v := range anchors {
				switch color[v] {
				case gray:
					return false
				case white:
					if !visit(v) {
						return false
					}
				}
			}
		}
		color[u] = black
		return true
	}
	for u := range g.anchors {
		if color[u] == white {
			if !visit(u) {
				return false
			}
		}
	}
	return true
}

// CanPutFlip computes, per occupied square, an 8-bit canPut mask
// (directions with a qualifying >=2-stone run that the occupancy order
// confirms could predate the square) and an 8-bit canFlip mask
// (directions with a third stone further out, meaning the chain could
// still be extended or re-flipped later in the game).
func CanPutFlip(occupied board.Bitboard, order [64]board.Bitboard, g board.Geometry) (canPut, canFlip [64]uint8) {
	for i := uint8(0); i < 64; i++ {
		bit := board.Bitboard(1) << i
		if occupied&bit == 0 {
			continue
		}
		for di, d := range board.AllDirections {
			a1 := board.Shift(bit, d, g.Region)
			if a1&occupied == 0 {
				continue
			}
			a2 := board.Shift(a1, d, g.Region)
			if a2&occupied == 0 {
				continue
			}
			if order[i]&a1 != 0 && order[i]&a2 != 0 {
				canPut[i] |= 1 << uint(di)
			}
			if a3 := board.Shift(a2, d, g.Region); a3&occupied != 0 {
				canFlip[i] |= 1 << uint(di)
			}
		}
	}
	return
}

// CheckSeg3More strengthens CheckSeg3: for each own-color disc whose
// can-place directions are all singletons offering no later flip
// escape, and whose forward anchors also lack any cross-direction flip
// possibility, the position is declared unreachable.
func CheckSeg3More(occupied board.Bitboard, g board.Geometry) bool {
	order := OccupancyOrder(occupied, g)
	canPut, canFlip := CanPutFlip(occupied, order, g)
	for i := uint8(0); i < 64; i++ {
		bit := board.Bitboard(1) << i
		if occupied&bit == 0 || g.Center&bit != 0 {
			continue
		}
		if canPut[i] == 0 || canFlip[i] != 0 {
			continue
		}
		escape := false
		for di, d := range board.AllDirections {
			if canPut[i]&(1<<uint(di)) == 0 {
				continue
			}
			a1 := board.Shift(bit, d, g.Region)
			a2 := board.Shift(a1, d, g.Region)
			if canFlip[square(a1)] != 0 || canFlip[square(a2)] != 0 {
				escape = true
				break
			}
		}
		if !escape {
			return false
		}
	}
	return true
}

func square(bit board.Bitboard) uint8 {
	return uint8(bits.TrailingZeros64(bit))
}

// Floor selects which filter combination a search strategy applies as
// its pruning floor (DESIGN.md Open Question #2: parameterized rather
// than hardcoded per strategy).
type Floor int

const (
	// FloorOccupancySeg3More is occupancy reachability + seg3-more, the
	// common floor shared by the DFS-family strategies.
	FloorOccupancySeg3More Floor = iota
	// FloorStrictSeg3 is occupancy reachability + strict seg3, used by
	// the BFS strategy in the reference implementation.
	FloorStrictSeg3
	// FloorConnectedSeg3All mirrors bfs_search.rs's process_board, which
	// applies connectivity, strict seg3, and seg3-more together rather
	// than picking one seg3 variant.
	FloorConnectedSeg3All
)

// Passes runs the configured filter floor over a candidate predecessor's
// occupied mask, in increasing order of cost. FloorConnectedSeg3All runs
// connectivity, strict seg3 and seg3-more, without the occupancy filter.
// The other floors fold connectivity into occupancy reachability's own
// fixed point, so occupancy runs first, then the seg3 variant selected
// by floor.
func Passes(occupied board.Bitboard, g board.Geometry, floor Floor) bool {
	if floor == FloorConnectedSeg3All {
		return Connected(occupied, g) && CheckSeg3(occupied, g) && CheckSeg3More(occupied, g)
	}
	if !CheckOccupancy(occupied, g) {
		return false
	}
	switch floor {
	case FloorStrictSeg3:
		return CheckSeg3(occupied, g)
	default:
		return CheckSeg3More(occupied, g)
	}
}
