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

package visited

import (
	"testing"

	"github.com/frankkopp/othello-reach/internal/board"
	"github.com/stretchr/testify/assert"
)

func pos(p, o board.Bitboard) board.Position { return board.Position{Player: p, Opponent: o} }

func TestInsertDedup(t *testing.T) {
	b := New(4, 1024)
	assert.True(t, b.Insert(pos(1, 2)))
	assert.False(t, b.Insert(pos(1, 2)))
	assert.True(t, b.Insert(pos(3, 4)))
}

func TestCacheFlushIntoTable(t *testing.T) {
	b := New(2, 1024)
	assert.True(t, b.Insert(pos(5, 0)))
	assert.True(t, b.Insert(pos(1, 0))) // triggers flush at cacheCap=2
	assert.Equal(t, 2, b.Len())
	// both should now be found via the table path
	assert.False(t, b.Insert(pos(5, 0)))
	assert.False(t, b.Insert(pos(1, 0)))
}

func TestForgetPolicyOnTableOverflow(t *testing.T) {
	b := New(1, 1) // table can hold only 1 entry total
	assert.True(t, b.Insert(pos(1, 0))) // flushes immediately, table=[{1,0}]
	assert.True(t, b.Insert(pos(2, 0))) // would overflow table cap -> forget
	assert.Equal(t, 1, b.Forgotten)
	// forgotten entries are not remembered: re-inserting looks new again
	assert.True(t, b.Insert(pos(2, 0)))
}

func TestClear(t *testing.T) {
	b := New(4, 1024)
	b.Insert(pos(1, 0))
	b.Insert(pos(2, 0))
	b.Insert(pos(3, 0))
	b.Insert(pos(4, 0))
	b.Insert(pos(5, 0))
	require := assert.New(t)
	require.Greater(b.Len(), 0)
	b.Clear()
	require.Equal(0, b.Len())
	require.True(b.Insert(pos(1, 0)))
}
