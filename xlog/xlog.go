// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package xlog provides a Logger interface and supporting functions
to support control over debug output.

Library code in this module accepts a Logger that may be nil. The functions
Print, Printf and Println don't do anything for a nil Logger, so debug
output can be enabled by setting a *log.Logger in a configuration and
disabled by leaving it nil. Formatting is only done if a logger is present.

Programs use the package-level leveled logger. Debug, informational and
warning messages can be suppressed separately using the flags Lnodebug,
Lnoinfo and Lnowarn. Fatal messages are always printed.
*/
package xlog

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Logger is the interface library code logs to. The log.Logger type
// supports this interface.
type Logger interface {
	Output(calldepth int, s string) error
}

// Print outputs the arguments using the logger. If the logger is nil nothing
// will be printed.
func Print(l Logger, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprint(v...))
	}
}

// Printf prints the arguments using the format string. If the logger argument
// is nil nothing will be printed.
func Printf(l Logger, format string, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprintf(format, v...))
	}
}

// Println prints the arguments and adds a newline. If the logger argument is
// nil nothing will be printed.
func Println(l Logger, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprintln(v...))
	}
}

// Flags for the package-level logger. The lower bits are the flags of the
// log package.
const (
	Ldate         = log.Ldate
	Ltime         = log.Ltime
	Lmicroseconds = log.Lmicroseconds
	Llongfile     = log.Llongfile
	Lshortfile    = log.Lshortfile
	LUTC          = log.LUTC
	Lstdflags     = log.LstdFlags

	// Lnoinfo suppresses Info messages.
	Lnoinfo = 1 << (iota + 7)
	// Lnowarn suppresses Warn messages.
	Lnowarn
	// Lnodebug suppresses Debug messages.
	Lnodebug

	logFlags = Ldate | Ltime | Lmicroseconds | Llongfile | Lshortfile | LUTC
)

var (
	mu    sync.Mutex
	std   = log.New(os.Stderr, "", log.LstdFlags)
	flags = Lstdflags | Lnodebug
)

// SetOutput sets the writer for the package-level logger.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// SetPrefix sets the prefix of the package-level logger.
func SetPrefix(prefix string) {
	std.SetPrefix(prefix)
}

// SetFlags sets the flags of the package-level logger.
func SetFlags(f int) {
	mu.Lock()
	flags = f
	mu.Unlock()
	std.SetFlags(f & logFlags)
}

// Flags returns the flags of the package-level logger.
func Flags() int {
	mu.Lock()
	defer mu.Unlock()
	return flags
}

func enabled(suppress int) bool {
	return Flags()&suppress == 0
}

// Debug prints a debug message unless Lnodebug is set.
func Debug(v ...interface{}) {
	if enabled(Lnodebug) {
		std.Output(2, fmt.Sprint(v...))
	}
}

// Debugf prints a formatted debug message unless Lnodebug is set.
func Debugf(format string, v ...interface{}) {
	if enabled(Lnodebug) {
		std.Output(2, fmt.Sprintf(format, v...))
	}
}

// Info prints a message unless Lnoinfo is set.
func Info(v ...interface{}) {
	if enabled(Lnoinfo) {
		std.Output(2, fmt.Sprint(v...))
	}
}

// Infof prints a formatted message unless Lnoinfo is set.
func Infof(format string, v ...interface{}) {
	if enabled(Lnoinfo) {
		std.Output(2, fmt.Sprintf(format, v...))
	}
}

// Warn prints a warning unless Lnowarn is set.
func Warn(v ...interface{}) {
	if enabled(Lnowarn) {
		std.Output(2, fmt.Sprint(v...))
	}
}

// Warnf prints a formatted warning unless Lnowarn is set.
func Warnf(format string, v ...interface{}) {
	if enabled(Lnowarn) {
		std.Output(2, fmt.Sprintf(format, v...))
	}
}

// Fatal prints the message and terminates the program with exit code 1.
func Fatal(v ...interface{}) {
	std.Output(2, fmt.Sprint(v...))
	os.Exit(1)
}

// Fatalf prints the formatted message and terminates the program with exit
// code 1.
func Fatalf(format string, v ...interface{}) {
	std.Output(2, fmt.Sprintf(format, v...))
	os.Exit(1)
}

type debugLogger struct{}

func (debugLogger) Output(calldepth int, s string) error {
	if !enabled(Lnodebug) {
		return nil
	}
	return std.Output(calldepth+1, s)
}

// Debugger returns a Logger for library code that forwards to the
// package-level logger as long as Lnodebug is not set.
func Debugger() Logger { return debugLogger{} }
