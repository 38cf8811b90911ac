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
	"fmt"
	"os"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/frankkopp/othello-reach/internal/board"
	"github.com/frankkopp/othello-reach/internal/engine"
	"github.com/frankkopp/othello-reach/internal/frontier"
	"github.com/frankkopp/othello-reach/internal/logging"
	"github.com/frankkopp/othello-reach/internal/pruning"
)

// Params configures Strategy 5.
type Params struct {
	Geometry board.Geometry
	Frontier *frontier.Cache
	TmpDir   string
	Workers  int
	Floor    pruning.Floor
	// Resume skips re-processing a level whose result file already
	// exists in TmpDir.
	Resume bool
	// BlockSizeMin/BlockSizeMax bound the per-worker block size formula:
	// min(BlockSizeMax, max(BlockSizeMin, allCount/workers/10)).
	BlockSizeMin int
	BlockSizeMax int
}

// DefaultParams returns the documented Strategy 5 defaults for the
// given frontier.
func DefaultParams(f *frontier.Cache) Params {
	return Params{
		Geometry:     f.Geometry,
		Frontier:     f,
		TmpDir:       "tmp",
		Workers:      runtime.GOMAXPROCS(0),
		Floor:        pruning.FloorConnectedSeg3All,
		BlockSizeMin: 1024,
		BlockSizeMax: 5_000_000,
	}
}

// BFS is Strategy 5: disk-backed level-synchronous backward BFS.
type BFS struct {
	params Params
}

// New constructs Strategy 5 over the given parameters.
func New(p Params) *BFS {
	return &BFS{params: p}
}

// processLevel fans level numDisc's block work out across p.Workers
// goroutines pulling from a shared atomic cursor (dynamic scheduling,
// mirroring process_bfs_par's AtomicUsize-fetch_add work queue), then
// merges the per-block output into the level's result file. Returns
// false if the level produced no predecessors (search exhausted).
func (e *BFS) processLevel(numDisc int) (bool, error) {
	inputPath := tmpPath(e.params.TmpDir, resultFileName(numDisc+1))
	allCount, err := recordCount(inputPath)
	if err != nil {
		return false, err
	}

	workers := e.params.Workers
	if workers < 1 {
		workers = 1
	}
	blockSize := allCount / workers / 10
	if blockSize < e.params.BlockSizeMin {
		blockSize = e.params.BlockSizeMin
	}
	if blockSize > e.params.BlockSizeMax {
		blockSize = e.params.BlockSizeMax
	}
	blockCount := (allCount + blockSize - 1) / blockSize

	var next int64
	grp := &errgroup.Group{}
	for w := 0; w < workers; w++ {
		grp.Go(func() error {
			for {
				i := int(atomic.AddInt64(&next, 1)) - 1
				if i >= blockCount {
					return nil
				}
				if _, err := processBFSBlock(e.params.TmpDir, e.params.Geometry, e.params.Floor, numDisc, blockSize, i); err != nil {
					return err
				}
			}
		})
	}
	if err := grp.Wait(); err != nil {
		return false, err
	}

	count, err := mergeFiles(e.params.TmpDir, numDisc, blockCount)
	if err != nil {
		return false, err
	}
	logging.BFSLog(logging.LevelInfo).Infof("level %d: %d records", numDisc, count)
	return count > 0, nil
}

func (e *BFS) levelDone(numDisc int) bool {
	if !e.params.Resume {
		return false
	}
	_, err := os.Stat(tmpPath(e.params.TmpDir, resultFileName(numDisc)))
	return err == nil
}

// Run decides whether target is reachable from the opening, writing its
// seed level to disk and expanding backward one disc count at a time
// until it reaches the frontier threshold.
func (e *BFS) Run(target board.Position) (engine.Verdict, error) {
	discs := target.DiscCount()
	threshold := e.params.Frontier.Threshold
	if discs <= threshold {
		if e.params.Frontier.Contains(board.Canonical(target)) {
			return engine.Found, nil
		}
		return engine.NotFound, nil
	}

	if err := os.MkdirAll(e.params.TmpDir, 0o755); err != nil {
		return engine.Unknown, err
	}

	seed := []board.Position{board.Canonical(target)}
	swapped := board.Position{Player: target.Opponent, Opponent: target.Player}
	if board.GetMoves(swapped, e.params.Geometry) == 0 {
		seed = append(seed, board.Canonical(swapped))
	}
	sortPositions(seed)
	if err := writeRecords(tmpPath(e.params.TmpDir, resultFileName(discs)), seed); err != nil {
		return engine.Unknown, err
	}

	for s := discs - 1; s >= threshold; s-- {
		if e.levelDone(s) {
			continue
		}
		ok, err := e.processLevel(s)
		if err != nil {
			return engine.Unknown, fmt.Errorf("bfs: level %d: %w", s, err)
		}
		if !ok {
			return engine.NotFound, nil
		}
	}

	recs, err := readAll(tmpPath(e.params.TmpDir, resultFileName(threshold)))
	if err != nil {
		return engine.Unknown, err
	}
	for _, r := range recs {
		if e.params.Frontier.Contains(r) {
			return engine.Found, nil
		}
	}
	return engine.NotFound, nil
}
