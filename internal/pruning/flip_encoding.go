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

import "github.com/frankkopp/othello-reach/internal/board"

// flipChain is one candidate explanation for how sq came to hold color
// col: a line of >= 3 consecutive occupied squares, sq itself included,
// running from sq in direction dir, restricted to order[sq] (the squares
// that could have existed before sq per the occupancy-order fixed
// point). Its length (including sq) is length.
type flipChain struct {
	sq, col, dir, length int
}

// flipEncoding is the chain data shared by the LP and SAT feasibility
// encoders: every admissible chain, the squares it would flip (the run's
// near squares, closer to sq), and the anchor square it relies on already
// holding col (the run's far square).
type flipEncoding struct {
	squares []uint8 // occupied, non-center squares ("sqo")
	chains  []flipChain
	flipsOf map[flipChain][]uint8 // chain -> squares it flips to chain.col
	baseOf  map[flipChain]uint8   // chain -> its anchor square
	sameDir map[[3]int][]flipChain
}

// colorOf reports sq's observed color: 0 if p's player bit is set, 1 if
// the opponent's is.
func colorOf(sq uint8, p board.Position) int {
	bit := board.Bitboard(1) << sq
	if p.Player&bit != 0 {
		return 0
	}
	return 1
}

func buildFlipEncoding(p board.Position, g board.Geometry) flipEncoding {
	occupied := p.Occupied()
	order := OccupancyOrder(occupied, g)
	enc := flipEncoding{
		flipsOf: make(map[flipChain][]uint8),
		baseOf:  make(map[flipChain]uint8),
		sameDir: make(map[[3]int][]flipChain),
	}

	for i := uint8(0); i < 64; i++ {
		bit := board.Bitboard(1) << i
		if occupied&bit == 0 || g.Center&bit != 0 {
			continue
		}
		enc.squares = append(enc.squares, i)
	}

	for _, sq := range enc.squares {
		bit := board.Bitboard(1) << sq
		o := order[sq]
		for col := 0; col < 2; col++ {
			for di, d := range board.AllDirections {
				var run []uint8
				cur := bit
				length := 1
				for {
					next := board.Shift(cur, d, g.Region)
					if next == 0 || o&next == 0 {
						break
					}
					length++
					sq1 := square(next)
					if length >= 3 {
						ch := flipChain{sq: int(sq), col: col, dir: di, length: length}
						enc.chains = append(enc.chains, ch)
						enc.flipsOf[ch] = append(enc.flipsOf[ch], run...)
						enc.baseOf[ch] = sq1
						key := [3]int{int(sq), col, di}
						enc.sameDir[key] = append(enc.sameDir[key], ch)
					}
					run = append(run, sq1)
					cur = next
				}
			}
		}
	}
	return enc
}

// centerPairing splits a geometry's 4 center squares into an anchor, the
// square on the anchor's diagonal (same starting color as the anchor)
// and the two squares of the other diagonal (opposite starting color).
// It describes the colors the center squares start the game with, not
// their colors after later flips.
func centerPairing(center board.Bitboard) (anchor uint8, sameColor, oppColor []uint8) {
	var squares []uint8
	for i := uint8(0); i < 64; i++ {
		if center&(board.Bitboard(1)<<i) != 0 {
			squares = append(squares, i)
		}
	}
	if len(squares) == 0 {
		return 0, nil, nil
	}
	anchor = squares[0]
	ar, ac := int(anchor/8), int(anchor%8)
	for _, s := range squares[1:] {
		r, c := int(s/8), int(s%8)
		if r-ar == c-ac {
			sameColor = append(sameColor, s)
		} else {
			oppColor = append(oppColor, s)
		}
	}
	return anchor, sameColor, oppColor
}
