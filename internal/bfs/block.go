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
	"github.com/frankkopp/othello-reach/internal/board"
	"github.com/frankkopp/othello-reach/internal/logging"
	"github.com/frankkopp/othello-reach/internal/pruning"
	"github.com/frankkopp/othello-reach/internal/retroflip"
)

// processBoard expands one level-(numDisc+1) record into its level-
// numDisc predecessors: every retroflip-enumerated flip-predecessor that
// survives the filter floor, canonicalized, plus (when the predecessor's
// opponent would have no move) the pass-swapped form at the same disc
// count — mirroring bfs_search.rs's process_board, including its
// "insert both the predecessor and, if applicable, its forced-pass
// sibling" duplication of insertion logic.
func processBoard(s board.Position, g board.Geometry, floor pruning.Floor, buf *retroflip.Buffer, out map[board.Position]struct{}) {
	candidates := s.Opponent &^ g.Center
	if candidates == 0 {
		return
	}
	for q := uint8(0); q < 64; q++ {
		bit := board.Bitboard(1) << q
		if candidates&bit == 0 {
			continue
		}
		result, overflow := buf.Enumerate(q, s.Opponent, g)
		if overflow.Truncated {
			logging.BFSLog(logging.LevelWarn).Warningf("retroflip buffer overflow at square %d", q)
		}
		for _, f := range result[1:] {
			pred := retroflip.Predecessor(s, q, f)
			occupied := pred.Occupied()
			if !pruning.Passes(occupied, g, floor) {
				continue
			}
			out[board.Canonical(pred)] = struct{}{}
			swapped := board.Position{Player: pred.Opponent, Opponent: pred.Player}
			if board.GetMoves(swapped, g) == 0 {
				out[board.Canonical(swapped)] = struct{}{}
			}
		}
	}
}

// processBFSBlock reads one block of level numDisc+1's result file,
// expands every record, and writes the sorted, block-local predecessor
// set to its block file. Returns false if the block produced no
// predecessors at all; its block file is then written empty.
func processBFSBlock(tmpDir string, g board.Geometry, floor pruning.Floor, numDisc, blockSize, blockNumber int) (bool, error) {
	input := tmpPath(tmpDir, resultFileName(numDisc+1))
	recs, err := readBlock(input, blockSize, blockNumber)
	if err != nil {
		return false, err
	}

	buf := retroflip.NewBuffer()
	found := make(map[board.Position]struct{})
	for _, s := range recs {
		processBoard(s, g, floor, buf, found)
	}
	if len(found) == 0 {
		return false, writeRecords(tmpPath(tmpDir, blockFileName(numDisc, blockNumber)), nil)
	}

	out := make([]board.Position, 0, len(found))
	for p := range found {
		out = append(out, p)
	}
	sortPositions(out)
	return true, writeRecords(tmpPath(tmpDir, blockFileName(numDisc, blockNumber)), out)
}
