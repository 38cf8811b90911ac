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

package bestfirst

import (
	"testing"

	"github.com/frankkopp/othello-reach/internal/board"
	"github.com/frankkopp/othello-reach/internal/engine"
	"github.com/frankkopp/othello-reach/internal/frontier"
	"github.com/stretchr/testify/assert"
)

func TestInitialBoardIsFound(t *testing.T) {
	g := board.Standard8x8
	leaf := frontier.Build(4, g)
	params := engine.DefaultParams(leaf)
	params.Workers = 2

	bf := New(params)
	assert.Equal(t, engine.Found, bf.Search(board.Initial(g)))
}

func TestLPModeStaysNonCommittalWithoutASolver(t *testing.T) {
	g := board.Standard8x8
	leaf := frontier.Build(4, g)
	params := engine.DefaultParams(leaf)
	params.Workers = 2
	params.LPMode = "lp"

	bf := New(params)
	assert.Equal(t, engine.Found, bf.Search(board.Initial(g)))
}

func TestConnectivityUnreachableIsNotFound(t *testing.T) {
	g := board.Standard8x8
	leaf := frontier.Build(4, g)
	params := engine.DefaultParams(leaf)
	params.Workers = 2

	init := board.Initial(g)
	target := board.Position{Player: init.Player, Opponent: init.Opponent | 1}

	bf := New(params)
	assert.Equal(t, engine.NotFound, bf.Search(target))
}
