// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/bwsz"
)

const text = "The quick brown fox jumps over the lazy dog. 0123456789\n"

func defaultOptions() options {
	return options{format: "auto", level: zlib.BestCompression}
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestTargetName(t *testing.T) {
	tests := []struct {
		path       string
		format     string
		decompress bool
		force      bool
		target     string
		fail       bool
	}{
		{"a.txt", "bwsz", false, false, "a.txt.bwsz", false},
		{"a.txt", "zlib", false, false, "a.txt.zlib", false},
		{"a.txt.bwsz", "bwsz", true, false, "a.txt", false},
		{"a.txt.zlib", "zlib", true, false, "a.txt", false},
		{"a.txt.bwsz", "bwsz", false, false, "", true},
		{"a.txt.bwsz", "bwsz", false, true, "a.txt.bwsz.bwsz", false},
		{"a.txt", "bwsz", true, false, "", true},
		{".bwsz", "bwsz", true, false, "", true},
		{"", "bwsz", false, false, "", true},
		{"a.txt", "gzip", false, false, "", true},
	}
	for _, c := range tests {
		opts := options{format: c.format, decompress: c.decompress,
			force: c.force}
		target, err := targetName(c.path, &opts)
		if c.fail {
			require.Error(t, err, "path %q", c.path)
			continue
		}
		require.NoError(t, err, "path %q", c.path)
		require.Equal(t, c.target, target)
	}
}

func TestTmpName(t *testing.T) {
	require.Equal(t, "a.compress", tmpName("a", false))
	require.Equal(t, "a.decompress", tmpName("a", true))
}

func TestCompressDecompress(t *testing.T) {
	data := []byte(strings.Repeat(text, 100))
	for _, format := range []string{"bwsz", "zlib"} {
		t.Run(format, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, "a.txt", data)

			opts := defaultOptions()
			opts.format = format
			require.NoError(t, processFile(path, opts))
			require.NoFileExists(t, path)
			require.NoFileExists(t, tmpName(path, false))
			cpath := path + "." + format
			require.FileExists(t, cpath)

			c, err := os.ReadFile(cpath)
			require.NoError(t, err)
			require.Equal(t, format == "bwsz", bwsz.ValidHeader(c))

			opts = defaultOptions()
			opts.decompress = true
			opts.keep = true
			require.NoError(t, processFile(cpath, opts))
			require.FileExists(t, cpath)
			q, err := os.ReadFile(path)
			require.NoError(t, err)
			require.Equal(t, data, q)
		})
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "b.txt", []byte(text))
	writeFile(t, dir, "b.txt.bwsz", []byte("old"))

	err := processFile(path, defaultOptions())
	require.Error(t, err)
	require.Contains(t, err.Error(), "file exists")
	require.FileExists(t, path)

	opts := defaultOptions()
	opts.force = true
	require.NoError(t, processFile(path, opts))
	c, err := os.ReadFile(path + ".bwsz")
	require.NoError(t, err)
	require.True(t, bwsz.ValidHeader(c))
}

func TestCorruptFile(t *testing.T) {
	dir := t.TempDir()
	c, err := bwsz.Compress([]byte(text))
	require.NoError(t, err)
	c[len(c)-1] ^= 0x55
	path := writeFile(t, dir, "c.txt.bwsz", c)

	opts := defaultOptions()
	opts.test = true
	opts.decompress = true
	require.ErrorIs(t, processFile(path, opts), bwsz.ErrChecksum)

	opts = defaultOptions()
	opts.decompress = true
	require.ErrorIs(t, processFile(path, opts), bwsz.ErrChecksum)
	require.FileExists(t, path)
	require.NoFileExists(t, filepath.Join(dir, "c.txt"))
	require.NoFileExists(t, tmpName(path, true))
}

func TestTestMode(t *testing.T) {
	dir := t.TempDir()
	c, err := bwsz.Compress([]byte(text))
	require.NoError(t, err)
	path := writeFile(t, dir, "d.txt.bwsz", c)

	opts := defaultOptions()
	opts.test = true
	opts.decompress = true
	require.NoError(t, processFile(path, opts))
	require.FileExists(t, path)
	require.NoFileExists(t, filepath.Join(dir, "d.txt"))
}

func TestUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "e.txt.bwsz", []byte("no compressed data"))
	opts := defaultOptions()
	opts.decompress = true
	require.ErrorIs(t, processFile(path, opts), errUnknownFormat)
}

func TestRoundTripMode(t *testing.T) {
	var buf bytes.Buffer
	stdout = &buf
	defer func() { stdout = os.Stdout }()

	dir := t.TempDir()
	path := writeFile(t, dir, "f.txt", []byte(strings.Repeat(text, 10)))
	opts := defaultOptions()
	opts.roundtrip = true
	require.NoError(t, processFile(path, opts))
	opts.format = "zlib"
	require.NoError(t, processFile(path, opts))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], path+": bwsz 560 -> "))
	require.True(t, strings.HasPrefix(lines[1], path+": zlib 560 -> "))
	for _, l := range lines {
		require.True(t, strings.HasSuffix(l, " ok"), "line %q", l)
	}
	require.FileExists(t, path)
	require.NoFileExists(t, path+".bwsz")
}

func TestDetectFormat(t *testing.T) {
	c, err := bwsz.Compress([]byte(text))
	require.NoError(t, err)
	var zbuf bytes.Buffer
	zw := zlib.NewWriter(&zbuf)
	_, err = zw.Write([]byte(text))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	tests := []struct {
		data   []byte
		format string
	}{
		{c, "bwsz"},
		{zbuf.Bytes(), "zlib"},
		{[]byte("x"), ""},
		{nil, ""},
	}
	for _, tc := range tests {
		opts := defaultOptions()
		br := bufio.NewReader(bytes.NewReader(tc.data))
		f, err := detectFormat(br, &opts)
		if tc.format == "" {
			require.ErrorIs(t, err, errUnknownFormat)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, tc.format, opts.format)
		require.Same(t, formats[tc.format], f)
	}
}

func TestApp(t *testing.T) {
	dir := t.TempDir()
	data := []byte(strings.Repeat(text, 3))
	path := writeFile(t, dir, "g.txt", data)

	err := newApp().Run([]string{"bwsz", "-q", "-k", "-F", "zlib", path})
	require.NoError(t, err)
	require.FileExists(t, path)
	require.FileExists(t, path+".zlib")

	err = newApp().Run([]string{"bwsz", "-qdf", path + ".zlib"})
	require.NoError(t, err)
	require.NoFileExists(t, path+".zlib")
	q, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, data, q)

	err = newApp().Run([]string{"bwsz", "-q", "-k", "-f", "--no-checksum",
		path})
	require.NoError(t, err)
	c, err := os.ReadFile(path + ".bwsz")
	require.NoError(t, err)
	require.True(t, bwsz.ValidHeader(c))
	require.Zero(t, c[bwsz.HeaderLen-2]&1, "checksum flag set")
	err = newApp().Run([]string{"bwsz", "-qdf", path + ".bwsz"})
	require.NoError(t, err)
	require.NoFileExists(t, path+".bwsz")
	q, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, data, q)

	err = newApp().Run([]string{"bwsz", "-q", "-l", "12", path})
	require.Error(t, err)
	err = newApp().Run([]string{"bwsz", "-q", "-F", "lzma", path})
	require.Error(t, err)
	err = newApp().Run([]string{"bwsz", "-q", "-r", "-d", path})
	require.Error(t, err)
}
