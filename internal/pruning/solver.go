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

package pruning

import "github.com/frankkopp/othello-reach/internal/board"

// Sense is the comparison direction of an LP row.
type Sense int

const (
	LE Sense = iota
	GE
	EQ
)

// LPResult is the outcome of an LP/IP feasibility query.
type LPResult int

const (
	Feasible LPResult = iota
	Infeasible
	LPUnknown
)

// LPSolver is the narrow interface the flip-ordering LP/IP feasibility
// filter needs: add [0,1]-bounded variables, add rows, and ask for
// feasibility. The concrete solver is an external collaborator and is
// out of scope for this module; any production LP/IP solver that
// implements this interface plugs in without changing the filter,
// because the filter only ever consumes the Infeasible verdict.
type LPSolver interface {
	AddRealVar(lower, upper float64) int
	AddRow(sense Sense, rhs float64, coeffs map[int]float64)
	Solve() LPResult
}

// SATResult is the outcome of a SAT query.
type SATResult int

const (
	Sat SATResult = iota
	Unsat
	SATUnknown
)

// SATSolver is the narrow interface for the CNF encoding: add clauses
// (each a slice of signed literals, variable index+1 or its negation),
// then solve. Also out of scope; Unsat proves unreachability.
type SATSolver interface {
	AddClause(literals []int)
	Solve() SATResult
}

// stubLPSolver and stubSATSolver are the default adapters. Since the
// real solvers are out of scope, these are permanently non-committal:
// solver failure (or absence) downgrades to "filter says pass", never
// fatal.
type stubLPSolver struct{ nextVar int }

func (s *stubLPSolver) AddRealVar(_, _ float64) int {
	v := s.nextVar
	s.nextVar++
	return v
}
func (s *stubLPSolver) AddRow(_ Sense, _ float64, _ map[int]float64) {}
func (s *stubLPSolver) Solve() LPResult                              { return LPUnknown }

type stubSATSolver struct{}

func (stubSATSolver) AddClause(_ []int)  {}
func (stubSATSolver) Solve() SATResult   { return SATUnknown }

// NewStubLPSolver returns the default non-committal LP adapter.
func NewStubLPSolver() LPSolver { return &stubLPSolver{} }

// NewStubSATSolver returns the default non-committal SAT adapter.
func NewStubSATSolver() SATSolver { return stubSATSolver{} }

// LPFeasible builds the flip-ordering LP relaxation for p's occupied
// squares and asks solver whether it is feasible. A square's color is a
// free variable First[sq][col] tied by equality to the center-cluster
// anchor (the standing diagonal/anti-diagonal color invariant), and by a
// disjunction-as-inequality to whichever directional flip chains (length
// >= 3, restricted to OccupancyOrder) could have produced it. A parity
// row per occupied square ties that hypothesized origin color, plus the
// net flip count the chains imply, to the square's actually observed
// color. The stub adapter always reports LPUnknown, so this filter stays
// non-committal (returns true) unless a genuine solver is plugged in.
func LPFeasible(p board.Position, g board.Geometry, solver LPSolver) bool {
	if solver == nil {
		solver = NewStubLPSolver()
	}
	enc := buildFlipEncoding(p, g)
	occupied := p.Occupied()

	first := make(map[[2]int]int, 2*(len(enc.squares)+4))
	anchor, sameColor, oppColor := centerPairing(g.Center)
	a0, a1 := solver.AddRealVar(0, 1), solver.AddRealVar(0, 1)
	solver.AddRow(EQ, 1, map[int]float64{a0: 1, a1: 1})
	first[[2]int{int(anchor), 0}], first[[2]int{int(anchor), 1}] = a0, a1
	for _, s := range sameColor {
		first[[2]int{int(s), 0}], first[[2]int{int(s), 1}] = a0, a1
	}
	for _, s := range oppColor {
		first[[2]int{int(s), 0}], first[[2]int{int(s), 1}] = a1, a0
	}
	for _, sq := range enc.squares {
		v0, v1 := solver.AddRealVar(0, 1), solver.AddRealVar(0, 1)
		solver.AddRow(EQ, 1, map[int]float64{v0: 1, v1: 1})
		first[[2]int{int(sq), 0}], first[[2]int{int(sq), 1}] = v0, v1
	}

	chainVar := make(map[flipChain]int, len(enc.chains))
	for _, ch := range enc.chains {
		chainVar[ch] = solver.AddRealVar(0, 1)
	}

	// Fdir[sq][col][dir] aggregates the (mutually exclusive, by
	// run-length) chains in one direction into a single 0/1 signal.
	fdirVar := make(map[[3]int]int, len(enc.sameDir))
	for key, chains := range enc.sameDir {
		fd := solver.AddRealVar(0, 1)
		fdirVar[key] = fd
		eq := map[int]float64{fd: -1}
		for _, ch := range chains {
			eq[chainVar[ch]] += 1
		}
		solver.AddRow(EQ, 0, eq)
		for _, ch := range chains {
			solver.AddRow(LE, 0, map[int]float64{chainVar[ch]: 1, fd: -1})
		}
	}

	// First[sq][col] >= OR(Fdir[sq][col][*]): a non-center square can only
	// have been placed col if some direction's chain explains the flip.
	for _, sq := range enc.squares {
		for col := 0; col < 2; col++ {
			var fds []int
			for di := range board.AllDirections {
				if fd, ok := fdirVar[[3]int{int(sq), col, di}]; ok {
					fds = append(fds, fd)
				}
			}
			fv := first[[2]int{int(sq), col}]
			ge := map[int]float64{fv: -1}
			for _, fd := range fds {
				ge[fd] += 1
			}
			solver.AddRow(GE, 0, ge)
			for _, fd := range fds {
				solver.AddRow(LE, 0, map[int]float64{fd: 1, fv: -1})
			}
		}
	}

	// flipListOf[sq][col]: chains that flip sq to col.
	flipListOf := make(map[[2]int][]int)
	for _, ch := range enc.chains {
		for _, e := range enc.flipsOf[ch] {
			key := [2]int{int(e), ch.col}
			flipListOf[key] = append(flipListOf[key], chainVar[ch])
		}
	}

	// Parity row per occupied square, tying origin color and net flip
	// count to the square's actually observed color.
	for i := uint8(0); i < 64; i++ {
		bit := board.Bitboard(1) << i
		if occupied&bit == 0 {
			continue
		}
		col := colorOf(i, p)
		other := 1 - col
		row := map[int]float64{
			first[[2]int{int(i), col}]:   1,
			first[[2]int{int(i), other}]: -1,
		}
		for _, v := range flipListOf[[2]int{int(i), col}] {
			row[v] += 2
		}
		for _, v := range flipListOf[[2]int{int(i), other}] {
			row[v] -= 2
		}
		solver.AddRow(EQ, 1, row)
	}

	// Base rows: a chain's anchor square must already hold the chain's
	// color, either as its own origin or via one of its own chains.
	for _, ch := range enc.chains {
		sq1 := enc.baseOf[ch]
		row := map[int]float64{chainVar[ch]: -1, first[[2]int{int(sq1), ch.col}]: 1}
		for _, v := range flipListOf[[2]int{int(sq1), ch.col}] {
			row[v] += 1
		}
		solver.AddRow(GE, 0, row)
	}

	return solver.Solve() != Infeasible
}

// SATFeasible is the SAT-encoding analog of LPFeasible: the same
// First/Flip/Base structure, plus Cmp[i][j] ordering variables over
// non-center occupied squares (antisymmetric and transitive) tying each
// chain's anchor to having existed before the square it explains. Unlike
// the LP relaxation this is exact rather than continuous, at the cost of
// omitting the reference encoding's Last/Before witness-order variables
// (needed only to extract an actual move order, not to decide
// feasibility) -- see DESIGN.md. The stub adapter always reports
// SATUnknown, so this filter stays non-committal unless a genuine solver
// is plugged in.
func SATFeasible(p board.Position, g board.Geometry, solver SATSolver) bool {
	if solver == nil {
		solver = NewStubSATSolver()
	}
	enc := buildFlipEncoding(p, g)

	nextVar := 0
	fresh := func() int {
		v := nextVar
		nextVar++
		return v
	}
	lit := func(v int, positive bool) int {
		if positive {
			return v + 1
		}
		return -(v + 1)
	}

	type colorVar struct {
		v       int
		swapped bool
	}
	anchor, sameColor, oppColor := centerPairing(g.Center)
	anchorVar := fresh()
	firstOf := make(map[uint8]colorVar, len(enc.squares)+4)
	firstOf[anchor] = colorVar{v: anchorVar}
	for _, s := range sameColor {
		firstOf[s] = colorVar{v: anchorVar}
	}
	for _, s := range oppColor {
		firstOf[s] = colorVar{v: anchorVar, swapped: true}
	}
	for _, sq := range enc.squares {
		firstOf[sq] = colorVar{v: fresh()}
	}
	firstLit := func(sq uint8, col int) int {
		cv := firstOf[sq]
		c := col
		if cv.swapped {
			c = 1 - c
		}
		return lit(cv.v, c == 0)
	}

	chainVar := make(map[flipChain]int, len(enc.chains))
	for _, ch := range enc.chains {
		chainVar[ch] = fresh()
	}
	chainLit := func(ch flipChain) int { return lit(chainVar[ch], true) }

	// Mutual exclusion: at most one run length is "the" explanation per
	// (sq, col, dir).
	for _, chains := range enc.sameDir {
		for i := 1; i < len(chains); i++ {
			for j := 0; j < i; j++ {
				solver.AddClause([]int{-chainLit(chains[i]), -chainLit(chains[j])})
			}
		}
	}

	byCol := make(map[[2]int][]flipChain, len(enc.chains))
	for _, ch := range enc.chains {
		key := [2]int{ch.sq, ch.col}
		byCol[key] = append(byCol[key], ch)
	}

	// First[sq][col] <-> OR(chains explaining (sq,col)); First[sq][col]
	// rules out any chain explaining (sq,1-col).
	for _, sq := range enc.squares {
		for col := 0; col < 2; col++ {
			chains := byCol[[2]int{int(sq), col}]
			line := []int{-firstLit(sq, col)}
			for _, ch := range chains {
				solver.AddClause([]int{-firstLit(sq, 1-col), -chainLit(ch)})
				line = append(line, chainLit(ch))
			}
			solver.AddClause(line)
		}
	}

	// Base: a chain's anchor must already hold the chain's color.
	for _, ch := range enc.chains {
		sq1 := enc.baseOf[ch]
		clause := []int{-chainLit(ch), firstLit(sq1, ch.col)}
		for _, v := range byCol[[2]int{int(sq1), ch.col}] {
			clause = append(clause, chainLit(v))
		}
		solver.AddClause(clause)
	}

	// Cmp[i][j]: i was placed strictly before j, for distinct non-center
	// occupied squares.
	squareSet := make(map[uint8]bool, len(enc.squares))
	cmp := make(map[[2]uint8]int, len(enc.squares)*len(enc.squares))
	for _, i := range enc.squares {
		squareSet[i] = true
		for _, j := range enc.squares {
			if i != j {
				cmp[[2]uint8{i, j}] = fresh()
			}
		}
	}
	cmpLit := func(i, j uint8) int { return lit(cmp[[2]uint8{i, j}], true) }
	for _, i := range enc.squares {
		for _, j := range enc.squares {
			if i < j {
				solver.AddClause([]int{-cmpLit(i, j), -cmpLit(j, i)})
			}
		}
	}
	for _, i := range enc.squares {
		for _, j := range enc.squares {
			if i == j {
				continue
			}
			for _, k := range enc.squares {
				if k == i || k == j {
					continue
				}
				solver.AddClause([]int{-cmpLit(i, j), -cmpLit(j, k), cmpLit(i, k)})
			}
		}
	}
	for _, ch := range enc.chains {
		sq1 := enc.baseOf[ch]
		if squareSet[sq1] && squareSet[uint8(ch.sq)] {
			solver.AddClause([]int{-chainLit(ch), cmpLit(sq1, uint8(ch.sq))})
		}
	}

	return solver.Solve() != Unsat
}
