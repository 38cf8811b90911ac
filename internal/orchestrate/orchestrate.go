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

// Package orchestrate drives one run over a list of candidate boards:
// parse, validate, dispatch to whichever search strategy the caller
// selected, and triage the verdict into the OK/NG/UNKNOWN output files.
package orchestrate

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/frankkopp/othello-reach/internal/board"
	"github.com/frankkopp/othello-reach/internal/engine"
)

// Outputs holds the three triage files a run writes into: reachable
// boards, proven-unreachable boards (including syntactically invalid
// input lines), and boards the resource caps left undecided.
type Outputs struct {
	okFile, ngFile, unknownFile *os.File
	ok, ng, unknown             *bufio.Writer
}

// CreateOutputs creates outDir if needed and opens its three triage
// files for writing, truncating any that already exist.
func CreateOutputs(outDir string) (*Outputs, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}
	okFile, err := os.Create(filepath.Join(outDir, "reverse_OK.txt"))
	if err != nil {
		return nil, err
	}
	ngFile, err := os.Create(filepath.Join(outDir, "reverse_NG.txt"))
	if err != nil {
		okFile.Close()
		return nil, err
	}
	unknownFile, err := os.Create(filepath.Join(outDir, "reverse_UNKNOWN.txt"))
	if err != nil {
		okFile.Close()
		ngFile.Close()
		return nil, err
	}
	return &Outputs{
		okFile: okFile, ngFile: ngFile, unknownFile: unknownFile,
		ok:      bufio.NewWriter(okFile),
		ng:      bufio.NewWriter(ngFile),
		unknown: bufio.NewWriter(unknownFile),
	}, nil
}

// WriteResult triages line by verdict.
func (o *Outputs) WriteResult(v engine.Verdict, line string) error {
	switch v {
	case engine.Found:
		_, err := fmt.Fprintln(o.ok, line)
		return err
	case engine.Unknown:
		_, err := fmt.Fprintln(o.unknown, line)
		return err
	default:
		_, err := fmt.Fprintln(o.ng, line)
		return err
	}
}

// WriteInvalid records a syntactically invalid or validation-failed
// input line as NG: an unreachable board is exactly what an invalid
// board is, for triage purposes.
func (o *Outputs) WriteInvalid(line string) error {
	_, err := fmt.Fprintln(o.ng, line)
	return err
}

// Flush flushes all three buffered writers.
func (o *Outputs) Flush() error {
	if err := o.ok.Flush(); err != nil {
		return err
	}
	if err := o.ng.Flush(); err != nil {
		return err
	}
	return o.unknown.Flush()
}

// Close flushes and closes all three underlying files.
func (o *Outputs) Close() error {
	if err := o.Flush(); err != nil {
		return err
	}
	if err := o.okFile.Close(); err != nil {
		return err
	}
	if err := o.ngFile.Close(); err != nil {
		return err
	}
	return o.unknownFile.Close()
}

// SearchFunc decides one target board's verdict; it is the seam between
// orchestration and whichever of the five engine strategies the caller
// selected (every strategy's Search method is adapted to this shape by
// Adapt or, for Strategy 5, used directly since bfs.BFS.Run already
// matches it).
type SearchFunc func(board.Position) (engine.Verdict, error)

// searcher is satisfied by engine.Sequential, engine.MoveOrdered,
// engine.Parallel, and bestfirst.BestFirst.
type searcher interface {
	Search(board.Position) engine.Verdict
}

// Adapt wraps a strategy whose Search never fails into a SearchFunc.
func Adapt(s searcher) SearchFunc {
	return func(p board.Position) (engine.Verdict, error) {
		return s.Search(p), nil
	}
}

// Orchestrator runs one board-list validation/dispatch/triage pass.
type Orchestrator struct {
	Geometry board.Geometry
	Outputs  *Outputs
	Search   SearchFunc
}

// New constructs an Orchestrator.
func New(g board.Geometry, outputs *Outputs, search SearchFunc) *Orchestrator {
	return &Orchestrator{Geometry: g, Outputs: outputs, Search: search}
}

// ProcessLine parses, validates, searches, and triages one input line.
func (r *Orchestrator) ProcessLine(line string) error {
	pos, ok := board.ParseBoard(line, r.Geometry)
	if !ok {
		return r.Outputs.WriteInvalid(line)
	}
	if board.Validate(pos, r.Geometry) != board.Valid {
		return r.Outputs.WriteInvalid(line)
	}
	verdict, err := r.Search(pos)
	if err != nil {
		return err
	}
	return r.Outputs.WriteResult(verdict, line)
}

// ProcessFile runs ProcessLine over every non-blank line of path, then
// flushes the outputs.
func (r *Orchestrator) ProcessFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := r.ProcessLine(line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return r.Outputs.Flush()
}
