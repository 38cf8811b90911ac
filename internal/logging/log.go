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

// Package logging sets up the named, independently-leveled loggers used
// throughout the module, backed by op/go-logging with locale-aware
// numeric formatting via golang.org/x/text.
package logging

import (
	"os"

	logging "github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Out is the locale-aware printer used for formatting node counts and
// throughput figures in log messages and CLI summaries.
var Out = message.NewPrinter(language.English)

var format = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{shortpkg:-8.8s}:%{shortfile:-14.14s} %{level:-7.7s}:  %{message}`,
)

// Level names accepted by the CLI's -loglvl flag and by the logger
// accessors below; kept as strings so callers stay dependency-free of
// op/go-logging's type.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARNING"
	LevelError = "ERROR"
)

var (
	reverseLogger = logging.MustGetLogger("reverse")
	bfsLogger     = logging.MustGetLogger("bfs")
	testLogger    = logging.MustGetLogger("test")
)

func configure(l *logging.Logger, level string) *logging.Logger {
	backend := logging.NewLogBackend(os.Stdout, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatted)
	lvl, err := logging.LogLevel(level)
	if err != nil {
		lvl = logging.INFO
	}
	leveled.SetLevel(lvl, "")
	l.SetBackend(leveled)
	return l
}

// ReverseLog returns the logger for the orchestration/search layer.
func ReverseLog(level string) *logging.Logger { return configure(reverseLogger, level) }

// BFSLog returns the logger for the disk-backed BFS pipeline.
func BFSLog(level string) *logging.Logger { return configure(bfsLogger, level) }

// TestLog returns the logger used by test fixtures.
func TestLog(level string) *logging.Logger { return configure(testLogger, level) }
