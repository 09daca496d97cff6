// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/klauspost/compress/zlib"
	"github.com/ulikunitz/bwsz"
	"github.com/ulikunitz/bwsz/xlog"
)

// format defines the newCompressor and newDecompressor functions for a
// compression format.
type format struct {
	ext             string
	newCompressor   func(w io.Writer, opts *options) (io.WriteCloser, error)
	newDecompressor func(r io.Reader, opts *options) (io.Reader, error)
}

// formats contains the formats supported by bwsz.
var formats = map[string]*format{
	"bwsz": {
		ext: ".bwsz",
		newCompressor: func(w io.Writer, opts *options,
		) (io.WriteCloser, error) {
			cfg := bwsz.WriterConfig{
				NoChecksum: opts.noChecksum,
				Logger:     xlog.Debugger(),
			}
			return bwsz.NewWriterConfig(w, cfg)
		},
		newDecompressor: func(r io.Reader, opts *options,
		) (io.Reader, error) {
			cfg := bwsz.ReaderConfig{Logger: xlog.Debugger()}
			return bwsz.NewReaderConfig(r, cfg)
		},
	},
	"zlib": {
		ext: ".zlib",
		newCompressor: func(w io.Writer, opts *options,
		) (io.WriteCloser, error) {
			return zlib.NewWriterLevel(w, opts.level)
		},
		newDecompressor: func(r io.Reader, opts *options,
		) (io.Reader, error) {
			return zlib.NewReader(r)
		},
	},
}

// formatNames returns the sorted names of the supported formats.
func formatNames() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// lookupFormat returns the format for the name.
func lookupFormat(name string) (f *format, err error) {
	var ok bool
	if f, ok = formats[name]; !ok {
		return nil, fmt.Errorf("compression format %q not supported",
			name)
	}
	return f, nil
}

// isZlibHeader checks the two header bytes of RFC 1950.
func isZlibHeader(p []byte) bool {
	if len(p) < 2 {
		return false
	}
	cmf, flg := p[0], p[1]
	return cmf&0x0f == 8 && cmf>>4 <= 7 &&
		(uint16(cmf)<<8|uint16(flg))%31 == 0
}

var errUnknownFormat = errors.New("unknown compression format")

// detectFormat determines the format of compressed data by looking at its
// first bytes. The format field in options is updated.
func detectFormat(br *bufio.Reader, opts *options) (f *format, err error) {
	if opts.format != "auto" {
		return lookupFormat(opts.format)
	}
	p, err := br.Peek(bwsz.HeaderLen)
	if err != nil && err != io.EOF {
		return nil, err
	}
	switch {
	case bwsz.ValidHeader(p):
		opts.format = "bwsz"
	case isZlibHeader(p):
		opts.format = "zlib"
	default:
		return nil, errUnknownFormat
	}
	xlog.Debugf("detected format %s", opts.format)
	return formats[opts.format], nil
}

// compressorFormat returns the format used for compression. Auto selects
// bwsz.
func compressorFormat(opts *options) (f *format, err error) {
	if opts.format == "auto" {
		opts.format = "bwsz"
	}
	return lookupFormat(opts.format)
}
