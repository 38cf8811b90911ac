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

// Package visited implements Btable, the bounded-memory two-tier visited
// set used by the sequential, move-ordered, parallel and best-first
// retrospective search strategies.
package visited

import (
	"sort"

	"github.com/frankkopp/othello-reach/internal/board"
)

// Key is the 16-byte canonical position pair used as the membership key.
type Key [2]board.Bitboard

func less(a, b Key) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}

// Btable is a bounded two-tier visited set that is not safe for
// concurrent use (the parallel and best-first strategies guard theirs
// with a mutex): a small hash cache absorbing recent inserts, and
// a sorted slice ("table") of previously flushed entries queried by
// binary search.
type Btable struct {
	cacheCap int
	tableCap int
	cache    map[Key]struct{}
	table    []Key

	// Forgotten counts how many times the cache was dropped on overflow
	// (DESIGN.md Open Question #1: this purposeful data loss still
	// counts as a "new" insertion towards the caller's node budget).
	Forgotten int
}

// DefaultCacheSize is the documented default cache capacity (65,536).
const DefaultCacheSize = 65536

// DefaultTableCap is the documented default table capacity (up to 2^32).
const DefaultTableCap = 1 << 32

// New creates a Btable with the given cache and table capacities.
func New(cacheCap, tableCap int) *Btable {
	if cacheCap <= 0 {
		cacheCap = DefaultCacheSize
	}
	if tableCap <= 0 {
		tableCap = DefaultTableCap
	}
	return &Btable{
		cacheCap: cacheCap,
		tableCap: tableCap,
		cache:    make(map[Key]struct{}, cacheCap),
	}
}

// Len returns the total number of distinct entries currently held
// (cache plus table).
func (b *Btable) Len() int {
	return len(b.cache) + len(b.table)
}

// Clear wipes both tiers.
func (b *Btable) Clear() {
	b.cache = make(map[Key]struct{}, b.cacheCap)
	b.table = nil
	b.Forgotten = 0
}

// containsTable checks table membership via binary search.
func (b *Btable) containsTable(k Key) bool {
	i := sort.Search(len(b.table), func(i int) bool { return !less(b.table[i], k) })
	return i < len(b.table) && b.table[i] == k
}

// Insert reports true if key is newly inserted (including the case
// where the table overflowed and the cache was dropped -- the "forget"
// policy, which deliberately degrades to best-effort deduplication: the
// search remains correct because re-exploring a forgotten state merely
// wastes work). It reports false only when key is already known-present
// in either tier.
func (b *Btable) Insert(p board.Position) bool {
	k := Key{p.Player, p.Opponent}
	if _, ok := b.cache[k]; ok {
		return false
	}
	if b.containsTable(k) {
		return false
	}
	b.cache[k] = struct{}{}
	if len(b.cache) >= b.cacheCap {
		b.flush()
	}
	return true
}

// flush merges the cache into the table, or drops the cache entirely if
// doing so would exceed tableCap (the forget policy).
func (b *Btable) flush() {
	if len(b.table)+len(b.cache) > b.tableCap {
		b.Forgotten++
		b.cache = make(map[Key]struct{}, b.cacheCap)
		return
	}
	extra := make([]Key, 0, len(b.cache))
	for k := range b.cache {
		extra = append(extra, k)
	}
	sort.Slice(extra, func(i, j int) bool { return less(extra[i], extra[j]) })
	b.table = mergeSorted(b.table, extra)
	b.cache = make(map[Key]struct{}, b.cacheCap)
}

// mergeSorted merges two already-sorted slices via the backward
// two-pointer in-place style merge from original_source's Btable
// implementation: fill the result from the back, always taking the
// larger of the two fronts-from-the-back first.
func mergeSorted(table, extra []Key) []Key {
	merged := make([]Key, len(table)+len(extra))
	i, j, k := len(table)-1, len(extra)-1, len(merged)-1
	for k >= 0 {
		switch {
		case j < 0:
			merged[k] = table[i]
			i--
		case i < 0:
			merged[k] = extra[j]
			j--
		case !less(table[i], extra[j]):
			merged[k] = table[i]
			i--
		default:
			merged[k] = extra[j]
			j--
		}
		k--
	}
	return merged
}
