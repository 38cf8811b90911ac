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

// Package frontier builds the forward leaf frontier L_D: every canonical
// position reachable from the initial board at disc count D with legal
// moves available for the side to move.
package frontier

import "github.com/frankkopp/othello-reach/internal/board"

// Cache is the read-only, once-built forward frontier shared across all
// target-board searches in a run, constructed once per run and shared
// read-only (grounded on original_source/reverse_common.rs's LeafCache).
type Cache struct {
	Threshold int
	Geometry  board.Geometry
	Leaf      map[board.Position]struct{}
	searched  map[board.Position]struct{}
}

// Contains reports whether canon (already canonicalized) is a member of
// L_D.
func (c *Cache) Contains(canon board.Position) bool {
	_, ok := c.Leaf[canon]
	return ok
}

// SearchedCount returns the number of distinct internal canonical
// positions visited while building the frontier (a diagnostic, not part
// of the search contract).
func (c *Cache) SearchedCount() int { return len(c.searched) }

// Build runs the forward DFS from the initial position of geometry g up
// to disc threshold, producing L_D. Pass rule: if the side to move has
// no legal move but the opponent does, swap colors (an effective pass)
// and continue without consuming a disc.
func Build(threshold int, g board.Geometry) *Cache {
	c := &Cache{
		Threshold: threshold,
		Geometry:  g,
		Leaf:      make(map[board.Position]struct{}),
		searched:  make(map[board.Position]struct{}),
	}
	start := board.Initial(g)
	c.dfs(start, start.DiscCount())
	return c
}

func swapSides(p board.Position) board.Position {
	return board.Position{Player: p.Opponent, Opponent: p.Player}
}

func (c *Cache) dfs(p board.Position, discs int) {
	canon := board.Canonical(p)
	if discs >= c.Threshold {
		if board.GetMoves(p, c.Geometry) != 0 {
			c.Leaf[canon] = struct{}{}
			return
		}
		swapped := swapSides(p)
		if board.GetMoves(swapped, c.Geometry) != 0 {
			c.dfs(swapped, discs)
		}
		return
	}
	if _, ok := c.searched[canon]; ok {
		return
	}
	c.searched[canon] = struct{}{}
	moves := board.GetMoves(p, c.Geometry)
	if moves == 0 {
		swapped := swapSides(p)
		if board.GetMoves(swapped, c.Geometry) != 0 {
			c.dfs(swapped, discs)
		}
		return
	}
	for sq := uint8(0); sq < 64; sq++ {
		bit := board.Bitboard(1) << sq
		if moves&bit == 0 {
			continue
		}
		f := board.Flip(sq, p, c.Geometry)
		next := board.Position{
			Player:   p.Opponent &^ f,
			Opponent: p.Player | f | bit,
		}
		c.dfs(next, discs+1)
	}
}
