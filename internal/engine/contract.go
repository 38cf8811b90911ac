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

// Package engine implements the retrospective (backward) search
// strategies: sequential DFS, move-ordered DFS, and parallel
// work-stealing DFS. All three share one contract (this file);
// strategy 4 (parallel best-first) lives in the engine/bestfirst
// subpackage and strategy 5 (disk-backed BFS) in internal/bfs.
package engine

import (
	"github.com/frankkopp/othello-reach/internal/board"
	"github.com/frankkopp/othello-reach/internal/frontier"
	"github.com/frankkopp/othello-reach/internal/pruning"
)

// Verdict is the outcome of a retrospective search.
type Verdict int

const (
	Found Verdict = iota
	NotFound
	Unknown
)

func (v Verdict) String() string {
	switch v {
	case Found:
		return "Found"
	case NotFound:
		return "NotFound"
	default:
		return "Unknown"
	}
}

// Params bundles the resource caps and shared read-only state every
// strategy needs.
type Params struct {
	Geometry  board.Geometry
	Frontier  *frontier.Cache
	NodeMax   int64
	TableMax  int64
	CacheSize int
	SegFloor  pruning.Floor

	// DPar and KPar are Strategy 3 only; Workers is used by strategies 3
	// and 4.
	DPar    int
	KPar    int
	Workers int

	// LPMode is strategy 4's optional per-node flip-ordering filter:
	// "off" (default), "lp" (continuous LP relaxation) or "ip" (exact
	// 0/1 feasibility, checked via the SAT encoding).
	LPMode string
}

// DefaultParams returns the documented resource-cap defaults for the
// given frontier.
func DefaultParams(f *frontier.Cache) Params {
	return Params{
		Geometry:  f.Geometry,
		Frontier:  f,
		NodeMax:   1_000_000,
		TableMax:  1 << 32,
		CacheSize: 65536,
		SegFloor:  pruning.FloorOccupancySeg3More,
		DPar:      12,
		KPar:      4,
		Workers:   1,
		LPMode:    "off",
	}
}

func swapSides(p board.Position) board.Position {
	return board.Position{Player: p.Opponent, Opponent: p.Player}
}

// nonCenterOpponentSquares returns the non-center squares currently
// holding s.Opponent's color: every candidate "last move" square.
func nonCenterOpponentSquares(s board.Position, g board.Geometry) board.Bitboard {
	return s.Opponent &^ g.Center
}
