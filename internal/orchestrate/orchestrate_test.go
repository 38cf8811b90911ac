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

package orchestrate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/frankkopp/othello-reach/internal/board"
	"github.com/frankkopp/othello-reach/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestProcessFileTriagesByVerdict(t *testing.T) {
	g := board.Standard8x8
	initialLine := board.Initial(g).String()
	malformed := "not-a-board-line"
	missingCenter := (func() string {
		p := board.Position{Player: 1}
		return p.String()
	})()

	inputDir := t.TempDir()
	inputPath := filepath.Join(inputDir, "boards.txt")
	content := initialLine + "\n" + malformed + "\n" + missingCenter + "\n"
	require.NoError(t, os.WriteFile(inputPath, []byte(content), 0o644))

	outDir := t.TempDir()
	outputs, err := CreateOutputs(outDir)
	require.NoError(t, err)

	search := func(p board.Position) (engine.Verdict, error) { return engine.Found, nil }
	run := New(g, outputs, search)
	require.NoError(t, run.ProcessFile(inputPath))
	require.NoError(t, outputs.Close())

	ok := readFile(t, filepath.Join(outDir, "reverse_OK.txt"))
	ng := readFile(t, filepath.Join(outDir, "reverse_NG.txt"))
	unknown := readFile(t, filepath.Join(outDir, "reverse_UNKNOWN.txt"))

	assert.Contains(t, ok, initialLine)
	assert.Contains(t, ng, malformed)
	assert.Contains(t, ng, missingCenter)
	assert.Empty(t, unknown)
}

func TestWriteResultTriage(t *testing.T) {
	outDir := t.TempDir()
	outputs, err := CreateOutputs(outDir)
	require.NoError(t, err)

	require.NoError(t, outputs.WriteResult(engine.Found, "a"))
	require.NoError(t, outputs.WriteResult(engine.NotFound, "b"))
	require.NoError(t, outputs.WriteResult(engine.Unknown, "c"))
	require.NoError(t, outputs.Close())

	assert.Contains(t, readFile(t, filepath.Join(outDir, "reverse_OK.txt")), "a")
	assert.Contains(t, readFile(t, filepath.Join(outDir, "reverse_NG.txt")), "b")
	assert.Contains(t, readFile(t, filepath.Join(outDir, "reverse_UNKNOWN.txt")), "c")
}
