// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xio provides tools to handle I/O operations. The
// [WriteCloserStack] type combines a compressor and the file it writes into
// as a single [io.WriteCloser].
package xio

import (
	"io"

	"github.com/hashicorp/go-multierror"
)

// WriteCloserStack allows to support multiple WriteClosers to be handled as
// single WriteCloser. Data is written to the top of the stack, Close closes
// the stack from the top to the bottom.
type WriteCloserStack struct {
	Stack []io.WriteCloser
}

// NewWriteCloserStack creates a new WriteCloserStack. It will have an an empty
// stack.
func NewWriteCloserStack() *WriteCloserStack {
	return &WriteCloserStack{}
}

// Write writes data to the top WriteCloser in the stack. If the stack is empty
// Write will always succeed.
func (w *WriteCloserStack) Write(p []byte) (n int, err error) {
	k := len(w.Stack)
	if k == 0 {
		return len(p), nil
	}
	return w.Stack[k-1].Write(p)
}

// Close closes all writers on the stack and combines the errors into a
// *multierror.Error. It will clear the stack. All writers are closed even if
// one of them fails.
func (w *WriteCloserStack) Close() error {
	var result *multierror.Error
	for k := len(w.Stack) - 1; k >= 0; k-- {
		if err := w.Stack[k].Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	w.Stack = nil
	return result.ErrorOrNil()
}

// Push adds a new WriteCloser to the top of the stack. It panics if the
// WriteCloser is nil.
func (w *WriteCloserStack) Push(wc io.WriteCloser) {
	if wc == nil {
		panic("cannot push nil WriteCloser onto stack")
	}
	w.Stack = append(w.Stack, wc)
}

// Pop removes the top WriteCloser without closing it. It returns nil if the
// stack is empty.
func (w *WriteCloserStack) Pop() io.WriteCloser {
	k := len(w.Stack)
	if k == 0 {
		return nil
	}
	wc := w.Stack[k-1]
	w.Stack[k-1] = nil
	w.Stack = w.Stack[:k-1]
	return wc
}

// Len returns the number of WriteClosers on the stack.
func (w *WriteCloserStack) Len() int { return len(w.Stack) }

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// NopCloser returns a WriteCloser whose Close method does nothing. It allows
// to push writers like os.Stdout that must not be closed.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}
