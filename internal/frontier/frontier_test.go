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

package frontier

import (
	"testing"

	"github.com/frankkopp/othello-reach/internal/board"
	"github.com/stretchr/testify/assert"
)

func TestInitialPositionIsInFrontierAtItsOwnDiscCount(t *testing.T) {
	g := board.Standard8x8
	c := Build(4, g)
	assert.True(t, c.Contains(board.Canonical(board.Initial(g))))
}

func TestFrontierGrowsWithThreshold(t *testing.T) {
	g := board.Standard8x8
	c4 := Build(4, g)
	c6 := Build(6, g)
	assert.NotEmpty(t, c4.Leaf)
	assert.NotEmpty(t, c6.Leaf)
	assert.Greater(t, len(c6.Leaf), len(c4.Leaf))
	// every leaf member actually has the mover holding >=1 legal move.
	for canon := range c6.Leaf {
		assert.NotZero(t, board.GetMoves(canon, g))
	}
}
