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

// Package config holds globally available configuration variables,
// either left at their defaults or overridden from a TOML file.
package config

import (
	"runtime"

	"github.com/BurntSushi/toml"
)

// conf is the top-level settings struct, decoded from TOML into the
// package-level Settings variable.
type conf struct {
	Search searchConfig
	BFS    bfsConfig
}

type searchConfig struct {
	Discs     int    // D: forward/backward meeting disc count
	NodeMax   int64  // N_max: unique-node budget per target board
	TableMax  int64  // T_max: Btable sorted capacity
	CacheSize int     // Btable hash-cache size
	Workers   int    // thread-pool size for parallel strategies
	DPar      int    // strategy 3 split depth
	KPar      int    // strategy 3 split child-count threshold
	SixBySix  bool   // switch geometry to the 6x6 embedded region
	LPMode    string // "off" | "lp" | "ip": optional LP/IP filter in strategy 4
	SegMode   string // "seg3more" | "seg3": pruning floor for DFS strategies
}

type bfsConfig struct {
	BlockSizeMin int
	BlockSizeMax int
	TempDir      string
	Resume       bool
	SegMode      string // pruning floor for BFS expansion, default strict seg3
}

// Settings is the process-wide configuration, populated with defaults by
// init() and optionally overridden by Setup.
var Settings conf

func init() {
	Settings = conf{
		Search: searchConfig{
			Discs:     10,
			NodeMax:   1_000_000,
			TableMax:  1 << 32,
			CacheSize: 65536,
			Workers:   runtime.GOMAXPROCS(0),
			DPar:      12,
			KPar:      4,
			SixBySix:  false,
			LPMode:    "off",
			SegMode:   "seg3more",
		},
		BFS: bfsConfig{
			BlockSizeMin: 1024,
			BlockSizeMax: 5_000_000,
			TempDir:      "tmp",
			Resume:       false,
			SegMode:      "seg3",
		},
	}
}

// ConfFile, when non-empty, names a TOML file Setup reads to override
// the defaults above.
var ConfFile string

var initialized bool

// Setup decodes ConfFile (if set) into Settings. It is idempotent.
func Setup() error {
	if initialized {
		return nil
	}
	initialized = true
	if ConfFile == "" {
		return nil
	}
	_, err := toml.DecodeFile(ConfFile, &Settings)
	return err
}
