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

// Package board implements bitboard representation, move/flip generation
// and dihedral-symmetry canonicalization for Othello positions.
package board

import (
	"math/bits"
	"strings"
)

// Bitboard is a 64-bit packed set of squares, LSB = A1, row-major.
type Bitboard = uint64

// Edge masks, used to stop ray shifts from wrapping around the board.
const (
	FileA = Bitboard(0x0101010101010101)
	FileH = Bitboard(0x8080808080808080)
	Rank1 = Bitboard(0x00000000000000FF)
	Rank8 = Bitboard(0xFF00000000000000)

	notFileA = ^FileA
	notFileH = ^FileH
)

// CenterMask8x8 is the 4 center squares (D4,E4,D5,E5) of the 8x8 board.
const CenterMask8x8 = Bitboard(0x0000001818000000)

// Region8x8 is the full board; no embedding.
const Region8x8 = Bitboard(0xFFFFFFFFFFFFFFFF)

// Region6x6 is the inner 6x6 rectangle (rows 1-6, cols 1-6, 0-indexed)
// embedded in the 64-bit word, matching the original_source Standard6x6
// geometry's REGION_MASK.
const Region6x6 = Bitboard(0x007E7E7E7E7E7E00)

// CenterMask6x6 reuses the same 4 physical squares as the 8x8 board; the
// 6x6 variant's playing area is simply narrower around the same center.
const CenterMask6x6 = CenterMask8x8

// Direction enumerates the 8 ray directions used by move/flip generation
// and by the retrospective flip enumerator.
type Direction int

const (
	East Direction = iota
	West
	North
	South
	NorthEast
	NorthWest
	SouthEast
	SouthWest
)

// AllDirections lists the 8 directions in a fixed, stable order shared by
// the flip enumerator and the pruning filters.
var AllDirections = [8]Direction{East, West, North, South, NorthEast, NorthWest, SouthEast, SouthWest}

// Shift moves every set bit in b one step in direction d, masking off
// wraparound at the board edge and confining the result to region (the
// active playing area; Region8x8 for the full board, Region6x6 for the
// embedded 6x6 variant).
func Shift(b Bitboard, d Direction, region Bitboard) Bitboard {
	switch d {
	case East:
		return ((b &^ FileH) << 1) & region
	case West:
		return ((b &^ FileA) >> 1) & region
	case North:
		return (b << 8) & region
	case South:
		return (b >> 8) & region
	case NorthEast:
		return ((b &^ FileH) << 9) & region
	case NorthWest:
		return ((b &^ FileA) << 7) & region
	case SouthEast:
		return ((b &^ FileH) >> 7) & region
	case SouthWest:
		return ((b &^ FileA) >> 9) & region
	}
	return 0
}

// Geometry describes the active playing area a Position is interpreted
// over. Othello is always played on a power-of-two-friendly 64-bit word;
// the 6x6 variant simply narrows the active region within it.
type Geometry struct {
	Name       string
	Region     Bitboard
	Center     Bitboard
	InitPlayer Bitboard
	InitOppo   Bitboard
}

// Standard8x8 is the regular 8x8 Othello board.
var Standard8x8 = Geometry{
	Name:       "8x8",
	Region:     Region8x8,
	Center:     CenterMask8x8,
	InitPlayer: 0x0000000810000000,
	InitOppo:   0x0000001008000000,
}

// Standard6x6 embeds a 6x6 board inside the same 64-bit word, offset by
// one row/column so ray-walk code requires no separate code path.
var Standard6x6 = Geometry{
	Name:       "6x6",
	Region:     Region6x6,
	Center:     CenterMask6x6,
	InitPlayer: 0x0000000810000000 & Region6x6,
	InitOppo:   0x0000001008000000 & Region6x6,
}

// Position is an immutable Othello board: two disjoint bitmasks for the
// side to move (Player) and the other side (Opponent).
type Position struct {
	Player   Bitboard
	Opponent Bitboard
}

// Initial returns the standard starting position for the given geometry.
func Initial(g Geometry) Position {
	return Position{Player: g.InitPlayer, Opponent: g.InitOppo}
}

// DiscCount returns the total number of occupied squares.
func (p Position) DiscCount() int {
	return bits.OnesCount64(p.Player) + bits.OnesCount64(p.Opponent)
}

// Occupied returns the union of both colors.
func (p Position) Occupied() Bitboard {
	return p.Player | p.Opponent
}

// Flip returns the mask of opponent stones that would be reversed by
// playing at the empty square pos. For each of the 8 ray directions, it
// walks across contiguous opponent stones until it meets either a player
// stone (the run is included) or an empty square/the region edge (the
// run contributes nothing).
func Flip(pos uint8, p Position, g Geometry) Bitboard {
	posBit := Bitboard(1) << pos
	if p.Occupied()&posBit != 0 {
		return 0
	}
	var flips Bitboard
	for _, d := range AllDirections {
		var line Bitboard
		sq := Shift(posBit, d, g.Region)
		for sq&p.Opponent != 0 {
			line |= sq
			sq = Shift(sq, d, g.Region)
		}
		if sq&p.Player != 0 {
			flips |= line
		}
	}
	return flips
}

// GetMoves returns the bitmask of empty squares where Player has a legal
// move, i.e. where Flip is nonzero.
func GetMoves(p Position, g Geometry) Bitboard {
	var moves Bitboard
	empty := g.Region &^ p.Occupied()
	for sq := uint8(0); sq < 64; sq++ {
		bit := Bitboard(1) << sq
		if empty&bit == 0 {
			continue
		}
		if Flip(sq, p, g) != 0 {
			moves |= bit
		}
	}
	return moves
}

// transpose swaps b across the A1-H8 diagonal using the standard
// delta-swap masks.
func transpose(b Bitboard) Bitboard {
	const (
		k1 = Bitboard(0x00aa00aa00aa00aa)
		k2 = Bitboard(0x0000cccc0000cccc)
		k4 = Bitboard(0x00000000f0f0f0f0)
	)
	t := k4 & (b ^ (b << 28))
	b ^= t ^ (t >> 28)
	t = k2 & (b ^ (b << 14))
	b ^= t ^ (t >> 14)
	t = k1 & (b ^ (b << 7))
	b ^= t ^ (t >> 7)
	return b
}

// verticalMirror flips b top-to-bottom (rank 1 <-> rank 8).
func verticalMirror(b Bitboard) Bitboard {
	b = ((b >> 8) & 0x00FF00FF00FF00FF) | ((b & 0x00FF00FF00FF00FF) << 8)
	b = ((b >> 16) & 0x0000FFFF0000FFFF) | ((b & 0x0000FFFF0000FFFF) << 16)
	b = (b >> 32) | (b << 32)
	return b
}

// horizontalMirror flips b left-to-right (file A <-> file H) using the
// bit-reversal-style masks.
func horizontalMirror(b Bitboard) Bitboard {
	b = ((b >> 1) & 0x5555555555555555) | ((b & 0x5555555555555555) << 1)
	b = ((b >> 2) & 0x3333333333333333) | ((b & 0x3333333333333333) << 2)
	b = ((b >> 4) & 0x0F0F0F0F0F0F0F0F) | ((b & 0x0F0F0F0F0F0F0F0F) << 4)
	return b
}

// applySymmetry applies the symmetry indexed s (0..7) to both masks of a
// position. Bit 0 of s selects horizontal mirror, bit 1 vertical mirror,
// bit 2 transpose; composing these three involutions over 3 bits yields
// the full 8-element dihedral group.
func applySymmetry(s int, player, opponent Bitboard) (Bitboard, Bitboard) {
	if s&1 != 0 {
		player, opponent = horizontalMirror(player), horizontalMirror(opponent)
	}
	if s&2 != 0 {
		player, opponent = verticalMirror(player), verticalMirror(opponent)
	}
	if s&4 != 0 {
		player, opponent = transpose(player), transpose(opponent)
	}
	return player, opponent
}

// less reports whether (p1,o1) is lexicographically smaller than (p2,o2).
func less(p1, o1, p2, o2 Bitboard) bool {
	if p1 != p2 {
		return p1 < p2
	}
	return o1 < o2
}

// Canonical returns the lexicographically smallest (player, opponent)
// image of p over the 8 dihedral symmetries of the square. It is the key
// used by every visited-state set in this module.
func Canonical(p Position) Position {
	bestP, bestO := p.Player, p.Opponent
	for s := 1; s < 8; s++ {
		cp, co := applySymmetry(s, p.Player, p.Opponent)
		if less(cp, co, bestP, bestO) {
			bestP, bestO = cp, co
		}
	}
	return Position{Player: bestP, Opponent: bestO}
}

// ValidationOutcome classifies why a position is or isn't well-formed.
type ValidationOutcome int

const (
	Valid ValidationOutcome = iota
	Overlap
	MissingCenter
)

// Validate checks the structural invariants of a position: the two color
// masks must be disjoint and the geometry's center squares must all be
// occupied.
func Validate(p Position, g Geometry) ValidationOutcome {
	if p.Player&p.Opponent != 0 {
		return Overlap
	}
	if (p.Player|p.Opponent)&g.Center != g.Center {
		return MissingCenter
	}
	return Valid
}

// String renders p as a 64-character row-major X/O/- string (A1 first),
// matching the external board text format. X is Player, O is Opponent.
func (p Position) String() string {
	var sb strings.Builder
	sb.Grow(64)
	for sq := uint8(0); sq < 64; sq++ {
		bit := Bitboard(1) << sq
		switch {
		case p.Player&bit != 0:
			sb.WriteByte('X')
		case p.Opponent&bit != 0:
			sb.WriteByte('O')
		default:
			sb.WriteByte('-')
		}
	}
	return sb.String()
}

// DebugString renders p as 8 lines of 8 X/O/- characters, rank 8 first,
// for diagnosing rejected boards during development. It prints no
// rank or file markers.
func (p Position) DebugString() string {
	var sb strings.Builder
	s := p.String()
	for row := 7; row >= 0; row-- {
		sb.WriteString(s[row*8 : row*8+8])
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseBoard parses a board text line against geometry g. For Standard8x8
// it expects exactly 64 X/O/- characters. For Standard6x6 it accepts
// either a 36-character line (the inner region only, row-major) or a
// 64-character line where everything outside Region6x6 must be '-'.
func ParseBoard(line string, g Geometry) (Position, bool) {
	switch {
	case g.Region == Region8x8 && len(line) == 64:
		return parse64(line, g)
	case g.Region == Region6x6 && len(line) == 36:
		return parse36(line)
	case g.Region == Region6x6 && len(line) == 64:
		return parse64(line, g)
	default:
		return Position{}, false
	}
}

func parse64(line string, g Geometry) (Position, bool) {
	var pos Position
	for sq := 0; sq < 64; sq++ {
		bit := Bitboard(1) << uint(sq)
		switch line[sq] {
		case 'X':
			if g.Region&bit == 0 {
				return Position{}, false
			}
			pos.Player |= bit
		case 'O':
			if g.Region&bit == 0 {
				return Position{}, false
			}
			pos.Opponent |= bit
		case '-':
			// allowed anywhere
		default:
			return Position{}, false
		}
	}
	return pos, true
}

func parse36(line string) (Position, bool) {
	var pos Position
	i := 0
	for row := 0; row < 6; row++ {
		for col := 0; col < 6; col++ {
			sq := (row+1)*8 + (col + 1)
			bit := Bitboard(1) << uint(sq)
			switch line[i] {
			case 'X':
				pos.Player |= bit
			case 'O':
				pos.Opponent |= bit
			case '-':
			default:
				return Position{}, false
			}
			i++
		}
	}
	return pos, true
}
