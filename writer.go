// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bwsz

import (
	"bytes"
	"errors"
	"io"
)

// errClosed indicates that the writer or reader has been closed.
var errClosed = errors.New("bwsz: already closed")

// Writer compresses all data written to it. The data is buffered until Close
// is called, which writes a single container to the underlying writer.
type Writer struct {
	cfg WriterConfig
	w   io.Writer
	buf bytes.Buffer
	err error
}

// NewWriter creates a writer using the default configuration.
func NewWriter(w io.Writer) (*Writer, error) {
	return NewWriterConfig(w, WriterConfig{})
}

// NewWriterConfig creates a writer with the given configuration.
func NewWriterConfig(w io.Writer, cfg WriterConfig) (*Writer, error) {
	if w == nil {
		panic("writer w is nil")
	}
	cfg.SetDefaults()
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	return &Writer{cfg: cfg, w: w}, nil
}

// Write buffers p for compression.
func (z *Writer) Write(p []byte) (n int, err error) {
	if z.err != nil {
		return 0, z.err
	}
	if int64(z.buf.Len())+int64(len(p)) > z.cfg.MaxSize {
		z.err = ErrTooLarge
		return 0, z.err
	}
	return z.buf.Write(p)
}

// Close compresses the buffered data and writes the container to the
// underlying writer. It doesn't close the underlying writer.
func (z *Writer) Close() error {
	if z.err != nil {
		return z.err
	}
	z.err = errClosed
	data, err := z.cfg.Compress(z.buf.Bytes())
	if err != nil {
		z.err = err
		return err
	}
	z.buf = bytes.Buffer{}
	if _, err = z.w.Write(data); err != nil {
		z.err = err
		return err
	}
	return nil
}
