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
	"bufio"
	"container/heap"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/frankkopp/othello-reach/internal/board"
)

type mergeEntry struct {
	rec     board.Position
	srcIdx  int
	hasMore bool
}

// mergeHeap is a min-heap over mergeEntry.rec, tie-broken by source
// index so pop order is deterministic across equal keys.
type mergeHeap []mergeEntry

func (h mergeHeap) Len() int { return len(h) }
func (h mergeHeap) Less(i, j int) bool {
	a, b := h[i].rec, h[j].rec
	if a.Player != b.Player {
		return a.Player < b.Player
	}
	if a.Opponent != b.Opponent {
		return a.Opponent < b.Opponent
	}
	return h[i].srcIdx < h[j].srcIdx
}
func (h mergeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *mergeHeap) Push(x interface{}) { *h = append(*h, x.(mergeEntry)) }
func (h *mergeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

type binReader struct {
	r *bufio.Reader
	f *os.File
}

func openBinReader(path string) (*binReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &binReader{r: bufio.NewReader(f), f: f}, nil
}

func (b *binReader) next() (board.Position, bool, error) {
	buf := make([]byte, recordSize)
	if _, err := io.ReadFull(b.r, buf); err != nil {
		if err == io.EOF {
			return board.Position{}, false, nil
		}
		return board.Position{}, false, err
	}
	return board.Position{
		Player:   binary.LittleEndian.Uint64(buf[0:8]),
		Opponent: binary.LittleEndian.Uint64(buf[8:16]),
	}, true, nil
}

func (b *binReader) Close() error { return b.f.Close() }

// mergeSortedBins k-way merges inputs (each already sorted ascending)
// into output, deduplicating consecutive-equal records, and returns the
// number of unique records written. Mirrors bfs_search.rs's
// merge_sorted_bins, generalized from a Reverse(BinaryHeap) min-heap
// trick to container/heap directly.
func mergeSortedBins(inputs []string, output string) (int, error) {
	if len(inputs) == 0 {
		return 0, fmt.Errorf("bfs: no input files to merge")
	}

	readers := make([]*binReader, len(inputs))
	for i, p := range inputs {
		r, err := openBinReader(p)
		if err != nil {
			return 0, err
		}
		readers[i] = r
	}
	defer func() {
		for _, r := range readers {
			r.Close()
		}
	}()

	h := make(mergeHeap, 0, len(inputs))
	for i, r := range readers {
		rec, ok, err := r.next()
		if err != nil {
			return 0, err
		}
		if ok {
			heap.Push(&h, mergeEntry{rec: rec, srcIdx: i})
		}
	}

	out, err := os.Create(output)
	if err != nil {
		return 0, err
	}
	w := bufio.NewWriter(out)
	buf := make([]byte, recordSize)

	written := 0
	var last board.Position
	haveLast := false
	for h.Len() > 0 {
		e := heap.Pop(&h).(mergeEntry)
		if !haveLast || last != e.rec {
			binary.LittleEndian.PutUint64(buf[0:8], e.rec.Player)
			binary.LittleEndian.PutUint64(buf[8:16], e.rec.Opponent)
			if _, err := w.Write(buf); err != nil {
				out.Close()
				return 0, err
			}
			last = e.rec
			haveLast = true
			written++
		}
		next, ok, err := readers[e.srcIdx].next()
		if err != nil {
			out.Close()
			return 0, err
		}
		if ok {
			heap.Push(&h, mergeEntry{rec: next, srcIdx: e.srcIdx})
		}
	}
	if err := w.Flush(); err != nil {
		out.Close()
		return 0, err
	}
	return written, out.Close()
}

// mergeFiles merges level numDisc's blockCount block files into its
// result file and removes the block files, mirroring merge_files.
func mergeFiles(tmpDir string, numDisc, blockCount int) (int, error) {
	inputs := make([]string, blockCount)
	for i := 0; i < blockCount; i++ {
		inputs[i] = tmpPath(tmpDir, blockFileName(numDisc, i))
	}
	output := tmpPath(tmpDir, resultFileName(numDisc))
	count, err := mergeSortedBins(inputs, output)
	if err != nil {
		return 0, err
	}
	for _, p := range inputs {
		if err := os.Remove(p); err != nil {
			return 0, err
		}
	}
	return count, nil
}
