// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bwsz

import (
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/ulikunitz/bwsz/bws"
	"github.com/ulikunitz/bwsz/huffman"
	"github.com/ulikunitz/bwsz/rle"
	"github.com/ulikunitz/bwsz/xlog"
)

// DefaultMaxSize is the default limit for the size of the uncompressed data.
const DefaultMaxSize = 1 << 28

// Errors returned by the compression and decompression functions.
var (
	// ErrCorrupt indicates compressed data that is inconsistent with
	// its container header.
	ErrCorrupt = errors.New("bwsz: corrupt data")
	// ErrChecksum indicates a checksum mismatch.
	ErrChecksum = errors.New("bwsz: checksum mismatch")
	// ErrInternal indicates an inconsistency detected during
	// compression. It signals a defect, not bad input.
	ErrInternal = errors.New("bwsz: internal error")
	// ErrTooLarge indicates data exceeding the configured maximum size.
	ErrTooLarge = errors.New("bwsz: data exceeds maximum size")
)

// WriterConfig provides the configuration for compression.
type WriterConfig struct {
	// NoChecksum disables the CRC32 of the uncompressed data.
	NoChecksum bool

	// MaxSize limits the size of the uncompressed data.
	MaxSize int64

	// Logger receives debug output about the pipeline stages. It may be
	// nil.
	Logger xlog.Logger
}

// SetDefaults replaces zero values with default values.
func (cfg *WriterConfig) SetDefaults() {
	if cfg.MaxSize == 0 {
		cfg.MaxSize = DefaultMaxSize
	}
}

// Verify checks the configuration for errors. Zero values will be replaced
// by default values.
func (cfg *WriterConfig) Verify() error {
	if cfg == nil {
		return errors.New("bwsz: WriterConfig pointer must not be nil")
	}
	if cfg.MaxSize < 0 {
		return errors.New("bwsz: MaxSize must not be negative")
	}
	return nil
}

// Compress compresses p using the configuration.
func (cfg WriterConfig) Compress(p []byte) ([]byte, error) {
	cfg.SetDefaults()
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	if int64(len(p)) > cfg.MaxSize {
		return nil, ErrTooLarge
	}

	h := header{size: len(p)}
	if !cfg.NoChecksum {
		h.flags |= fCRC32
	}
	if len(p) == 0 {
		return marshalContainer(&h, nil, p)
	}

	t, primary := bws.Transform(p)
	r := rle.Encode(t)
	h.primary = primary
	h.freqs = huffman.Count(r)
	tree, err := huffman.NewTree(&h.freqs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	b, err := huffman.Encode(r, tree.Table())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	h.bits = b.N
	xlog.Printf(cfg.Logger,
		"bwsz: compress %d bytes; primary %d; rle %d bytes;"+
			" huffman %d symbols, %d bits",
		len(p), primary, len(r), tree.Leaves(), b.N)
	return marshalContainer(&h, b.Bytes(), p)
}

// ReaderConfig provides the configuration for decompression.
type ReaderConfig struct {
	// IgnoreChecksum disables the verification of the checksum.
	IgnoreChecksum bool

	// MaxSize limits the size of the uncompressed data. Containers
	// announcing a larger size are rejected before decoding.
	MaxSize int64

	// Logger receives debug output about the pipeline stages. It may be
	// nil.
	Logger xlog.Logger
}

// SetDefaults replaces zero values with default values.
func (cfg *ReaderConfig) SetDefaults() {
	if cfg.MaxSize == 0 {
		cfg.MaxSize = DefaultMaxSize
	}
}

// Verify checks the reader configuration for errors.
func (cfg *ReaderConfig) Verify() error {
	if cfg == nil {
		return errors.New("bwsz: ReaderConfig pointer must not be nil")
	}
	if cfg.MaxSize < 0 {
		return errors.New("bwsz: MaxSize must not be negative")
	}
	return nil
}

// Decompress decompresses the container p. The container must not be
// followed by other data.
func (cfg ReaderConfig) Decompress(p []byte) ([]byte, error) {
	cfg.SetDefaults()
	if err := cfg.Verify(); err != nil {
		return nil, err
	}

	var h header
	n, err := h.parse(p)
	if err != nil {
		return nil, err
	}
	if int64(h.size) > cfg.MaxSize {
		return nil, ErrTooLarge
	}
	k := h.payloadLen()
	if h.flags&fCRC32 != 0 {
		k += crcLen
	}
	switch rest := len(p) - n; {
	case rest < k:
		return nil, formatError("truncated payload")
	case rest > k:
		return nil, formatError("trailing data")
	}
	payload := p[n : n+h.payloadLen()]

	var q []byte
	if h.size == 0 {
		q = []byte{}
	} else {
		if q, err = decode(&h, payload, cfg.Logger); err != nil {
			return nil, err
		}
	}

	if h.flags&fCRC32 != 0 && !cfg.IgnoreChecksum {
		c := p[len(p)-crcLen:]
		if uint32LE(c) != crc32.ChecksumIEEE(q) {
			return nil, ErrChecksum
		}
	}
	return q, nil
}

// decode runs the inverse pipeline for a non-empty container.
func decode(h *header, payload []byte, l xlog.Logger) ([]byte, error) {
	b, err := huffman.BitsFromBytes(payload, h.bits)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	tree, err := huffman.NewTree(&h.freqs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	r, err := tree.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	t, err := rle.DecodeLimit(r, h.size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if len(t) != h.size {
		return nil, fmt.Errorf("%w: decoded %d bytes; want %d",
			ErrCorrupt, len(t), h.size)
	}
	q, err := bws.Inverse(t, h.primary)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	xlog.Printf(l, "bwsz: decompress %d bits; rle %d bytes; %d bytes",
		h.bits, len(r), len(q))
	return q, nil
}

// Compress compresses p using the default configuration.
func Compress(p []byte) ([]byte, error) {
	return WriterConfig{}.Compress(p)
}

// Decompress decompresses the container p using the default configuration.
func Decompress(p []byte) ([]byte, error) {
	return ReaderConfig{}.Decompress(p)
}
