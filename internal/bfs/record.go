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

// Package bfs implements Strategy 5: disk-backed, level-synchronous
// backward BFS. Each disc count gets its own sorted
// binary file of canonical (player, opponent) records; a level is
// produced by fanning predecessor generation out across fixed-size
// blocks of the previous level's file and merging the per-block output
// back into one sorted, deduplicated file.
package bfs

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/frankkopp/othello-reach/internal/board"
)

// recordSize is the on-disk width of one (player, opponent) pair.
const recordSize = 16

// byteOrder is little-endian rather than the reference implementation's
// native-endian encoding: this format is private to this module's own
// tmp-dir files (never interchanged with the Rust original), so a fixed
// byte order buys portability across build hosts at no cost.
var byteOrder = binary.LittleEndian

// resultFileName is the level-N sorted/deduplicated record file.
func resultFileName(numDisc int) string {
	return fmt.Sprintf("r_%d.bin", numDisc)
}

// blockFileName is one worker's unsorted-across-blocks, sorted-within-
// block contribution to level numDisc before merging.
func blockFileName(numDisc, blockNumber int) string {
	return fmt.Sprintf("b_%d_%d.bin", numDisc, blockNumber)
}

// writeRecords writes recs (assumed already sorted) as a sequence of
// recordSize-byte pairs.
func writeRecords(path string, recs []board.Position) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	buf := make([]byte, recordSize)
	for _, r := range recs {
		byteOrder.PutUint64(buf[0:8], r.Player)
		byteOrder.PutUint64(buf[8:16], r.Opponent)
		if _, err := w.Write(buf); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// recordCount returns the number of records stored at path.
func recordCount(path string) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if info.Size()%recordSize != 0 {
		return 0, fmt.Errorf("bfs: %s size %d is not a multiple of %d bytes", path, info.Size(), recordSize)
	}
	return int(info.Size() / recordSize), nil
}

// readBlock reads up to blockSize records from path starting at
// blockSize*blockNumber records in.
func readBlock(path string, blockSize, blockNumber int) ([]board.Position, error) {
	total, err := recordCount(path)
	if err != nil {
		return nil, err
	}
	offset := blockSize * blockNumber
	if offset >= total {
		return nil, fmt.Errorf("bfs: block %d (offset %d) is beyond %s's %d records", blockNumber, offset, path, total)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if _, err := f.Seek(int64(offset)*recordSize, io.SeekStart); err != nil {
		return nil, err
	}
	n := blockSize
	if remaining := total - offset; remaining < n {
		n = remaining
	}
	r := bufio.NewReader(f)
	buf := make([]byte, recordSize)
	out := make([]board.Position, 0, n)
	for i := 0; i < n; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		out = append(out, board.Position{
			Player:   byteOrder.Uint64(buf[0:8]),
			Opponent: byteOrder.Uint64(buf[8:16]),
		})
	}
	return out, nil
}

// readAll reads every record from path.
func readAll(path string) ([]board.Position, error) {
	total, err := recordCount(path)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, nil
	}
	return readBlock(path, total, 0)
}

func sortPositions(recs []board.Position) {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Player != recs[j].Player {
			return recs[i].Player < recs[j].Player
		}
		return recs[i].Opponent < recs[j].Opponent
	})
}

func tmpPath(tmpDir string, name string) string {
	return filepath.Join(tmpDir, name)
}
