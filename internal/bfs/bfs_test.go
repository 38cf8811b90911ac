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

package bfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/frankkopp/othello-reach/internal/board"
	"github.com/frankkopp/othello-reach/internal/engine"
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

func TestInitialBoardIsFoundWithoutDiskWork(t *testing.T) {
	g := board.Standard8x8
	leaf := frontier.Build(4, g)
	p := DefaultParams(leaf)
	p.TmpDir = t.TempDir()
	p.Workers = 2

	v, err := New(p).Run(board.Initial(g))
	require.NoError(t, err)
	assert.Equal(t, engine.Found, v)
}

func TestOnePlyBoardIsFoundAfterOneLevel(t *testing.T) {
	g := board.Standard8x8
	leaf := frontier.Build(4, g)
	p := DefaultParams(leaf)
	p.TmpDir = t.TempDir()
	p.Workers = 2

	target := oneMoveFromInitial(g)
	v, err := New(p).Run(target)
	require.NoError(t, err)
	assert.Equal(t, engine.Found, v)

	// the level-4 result file should exist and contain the initial
	// position's canonical form among its predecessors.
	recs, err := readAll(filepath.Join(p.TmpDir, resultFileName(4)))
	require.NoError(t, err)
	assert.Contains(t, recs, board.Canonical(board.Initial(g)))
}

func TestResumeSkipsExistingLevel(t *testing.T) {
	g := board.Standard8x8
	leaf := frontier.Build(4, g)
	tmp := t.TempDir()

	target := oneMoveFromInitial(g)

	// pre-populate the level-4 result as if a prior run had already
	// computed it.
	require.NoError(t, os.MkdirAll(tmp, 0o755))
	require.NoError(t, writeRecords(filepath.Join(tmp, resultFileName(4)), []board.Position{board.Canonical(board.Initial(g))}))

	p := DefaultParams(leaf)
	p.TmpDir = tmp
	p.Resume = true
	v, err := New(p).Run(target)
	require.NoError(t, err)
	assert.Equal(t, engine.Found, v)
}
