// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bwsz

import (
	"bytes"
	"io"
)

// Reader provides the decompressed data of a single container. The complete
// container is read and decompressed by NewReaderConfig, so errors in the
// compressed data are reported before any data is returned.
type Reader struct {
	r *bytes.Reader
}

// NewReader creates a reader using the default configuration.
func NewReader(r io.Reader) (*Reader, error) {
	return NewReaderConfig(r, ReaderConfig{})
}

// NewReaderConfig reads the container from r and decompresses it using the
// given configuration.
func NewReaderConfig(r io.Reader, cfg ReaderConfig) (*Reader, error) {
	if r == nil {
		panic("reader r is nil")
	}
	cfg.SetDefaults()
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	p, err := cfg.Decompress(data)
	if err != nil {
		return nil, err
	}
	return &Reader{r: bytes.NewReader(p)}, nil
}

// Read reads decompressed data.
func (z *Reader) Read(p []byte) (n int, err error) {
	return z.r.Read(p)
}

// WriteTo writes the remaining decompressed data to w.
func (z *Reader) WriteTo(w io.Writer) (n int64, err error) {
	return z.r.WriteTo(w)
}

// Len returns the number of unread decompressed bytes.
func (z *Reader) Len() int { return z.r.Len() }
