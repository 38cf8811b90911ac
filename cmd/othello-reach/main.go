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

package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/frankkopp/othello-reach/internal/bfs"
	"github.com/frankkopp/othello-reach/internal/board"
	"github.com/frankkopp/othello-reach/internal/config"
	"github.com/frankkopp/othello-reach/internal/engine"
	"github.com/frankkopp/othello-reach/internal/engine/bestfirst"
	"github.com/frankkopp/othello-reach/internal/frontier"
	"github.com/frankkopp/othello-reach/internal/logging"
	"github.com/frankkopp/othello-reach/internal/orchestrate"
	"github.com/frankkopp/othello-reach/internal/pruning"
)

var out = message.NewPrinter(language.English)

func main() {
	configFile := flag.String("config", "", "path to configuration settings file (TOML)")
	input := flag.String("input", "boards.txt", "path to file of candidate boards, one per line")
	outDir := flag.String("out-dir", "result", "directory to write reverse_OK/NG/UNKNOWN.txt to")
	strategyName := flag.String("strategy", "sequential", "search strategy\n(sequential|ordered|parallel|bestfirst|bfs)")
	logLvl := flag.String("loglvl", logging.LevelInfo, "log level\n(DEBUG|INFO|WARNING|ERROR)")
	cpuProfile := flag.Bool("profile", false, "write a CPU profile (cpu.pprof) to the working directory while running")
	flag.Parse()

	config.ConfFile = *configFile
	if err := config.Setup(); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	logging.ReverseLog(*logLvl)
	logging.BFSLog(*logLvl)

	g := board.Standard8x8
	if config.Settings.Search.SixBySix {
		g = board.Standard6x6
	}

	start := time.Now()
	leaf := frontier.Build(config.Settings.Search.Discs, g)
	out.Printf("frontier built: threshold=%d leaf=%d searched=%d elapsed=%s\n",
		config.Settings.Search.Discs, len(leaf.Leaf), leaf.SearchedCount(), time.Since(start))

	search, err := buildSearchFunc(*strategyName, leaf, g)
	if err != nil {
		fmt.Fprintln(os.Stderr, *strategyName, err)
		os.Exit(1)
	}

	outputs, err := orchestrate.CreateOutputs(*outDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "out-dir:", err)
		os.Exit(1)
	}
	defer outputs.Close()

	run := orchestrate.New(g, outputs, search)
	if err := run.ProcessFile(*input); err != nil {
		fmt.Fprintln(os.Stderr, "search:", err)
		os.Exit(1)
	}
}

func segFloor() pruning.Floor {
	if config.Settings.Search.SegMode == "seg3" {
		return pruning.FloorStrictSeg3
	}
	return pruning.FloorOccupancySeg3More
}

func buildSearchFunc(name string, leaf *frontier.Cache, g board.Geometry) (orchestrate.SearchFunc, error) {
	sc := config.Settings.Search
	params := engine.Params{
		Geometry:  g,
		Frontier:  leaf,
		NodeMax:   sc.NodeMax,
		TableMax:  sc.TableMax,
		CacheSize: sc.CacheSize,
		SegFloor:  segFloor(),
		DPar:      sc.DPar,
		KPar:      sc.KPar,
		Workers:   sc.Workers,
		LPMode:    sc.LPMode,
	}

	switch name {
	case "sequential":
		return orchestrate.Adapt(engine.NewSequential(params)), nil
	case "ordered":
		return orchestrate.Adapt(engine.NewMoveOrdered(params)), nil
	case "parallel":
		if params.Workers < 1 {
			params.Workers = runtime.GOMAXPROCS(0)
		}
		return orchestrate.Adapt(engine.NewParallel(params)), nil
	case "bestfirst":
		if params.Workers < 1 {
			params.Workers = runtime.GOMAXPROCS(0)
		}
		return orchestrate.Adapt(bestfirst.New(params)), nil
	case "bfs":
		bp := bfs.DefaultParams(leaf)
		bp.TmpDir = config.Settings.BFS.TempDir
		bp.Resume = config.Settings.BFS.Resume
		bp.BlockSizeMin = config.Settings.BFS.BlockSizeMin
		bp.BlockSizeMax = config.Settings.BFS.BlockSizeMax
		if config.Settings.Search.Workers > 0 {
			bp.Workers = config.Settings.Search.Workers
		}
		if config.Settings.BFS.SegMode == "seg3more" {
			bp.Floor = pruning.FloorOccupancySeg3More
		}
		b := bfs.New(bp)
		return b.Run, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}
