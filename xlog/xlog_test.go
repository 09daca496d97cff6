// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xlog

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
)

func TestNilLogger(t *testing.T) {
	Print(nil, "nothing")
	Printf(nil, "nothing %d", 1)
	Println(nil, "nothing")

	buf := new(bytes.Buffer)
	l := log.New(buf, "", 0)
	Printf(l, "size %d", 42)
	if s := buf.String(); s != "size 42\n" {
		t.Fatalf("Printf wrote %q; want %q", s, "size 42\n")
	}
}

func TestLevels(t *testing.T) {
	buf := new(bytes.Buffer)
	SetOutput(buf)
	defer SetOutput(os.Stderr)
	oldFlags := Flags()
	defer SetFlags(oldFlags)
	SetPrefix("test: ")
	defer SetPrefix("")

	SetFlags(Lnodebug)
	Debug("debug message")
	Info("info message")
	Warnf("warning %d", 1)
	s := buf.String()
	if strings.Contains(s, "debug") {
		t.Errorf("debug message printed with Lnodebug: %q", s)
	}
	if !strings.Contains(s, "test: info message\n") {
		t.Errorf("info message missing: %q", s)
	}
	if !strings.Contains(s, "test: warning 1\n") {
		t.Errorf("warning missing: %q", s)
	}

	buf.Reset()
	SetFlags(Lnoinfo | Lnowarn)
	Debugf("debug %s", "on")
	Infof("info %s", "off")
	Warn("warn off")
	if s = buf.String(); s != "test: debug on\n" {
		t.Errorf("got %q; want %q", s, "test: debug on\n")
	}
}

func TestDebugger(t *testing.T) {
	buf := new(bytes.Buffer)
	SetOutput(buf)
	defer SetOutput(os.Stderr)
	oldFlags := Flags()
	defer SetFlags(oldFlags)

	l := Debugger()
	SetFlags(Lnodebug)
	Printf(l, "hidden %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("Debugger wrote %q with Lnodebug", buf.String())
	}
	SetFlags(0)
	Printf(l, "shown %d", 2)
	if s := buf.String(); s != "shown 2\n" {
		t.Fatalf("got %q; want %q", s, "shown 2\n")
	}
}
