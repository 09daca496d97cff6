// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tuning supports the measurement of compression ratios over a
// corpus of files.
package tuning

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"sync"

	"github.com/klauspost/compress/zlib"
	"github.com/ulikunitz/bwsz"
	"github.com/ulikunitz/zdata"
)

type File struct {
	Name string
	Data []byte
}

func Files(corpus fs.FS) (files []File, err error) {
	err = fs.WalkDir(corpus, ".",
		func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				return nil
			}
			data, err := fs.ReadFile(corpus, path)
			if err != nil {
				return err
			}
			files = append(files, File{Name: path, Data: data})
			return nil
		})
	return files, err
}

var (
	silesiaFiles []File
	silesiaErr   error
	silesiaOnce  sync.Once
)

// Silesia returns the files of the Silesia corpus. The files are loaded
// only once.
func Silesia() ([]File, error) {
	silesiaOnce.Do(func() {
		silesiaFiles, silesiaErr = Files(zdata.Silesia)
		if silesiaErr != nil {
			silesiaErr = fmt.Errorf("tuning: Silesia error %w",
				silesiaErr)
		}
	})
	return silesiaFiles, silesiaErr
}

func Size(files []File) int64 {
	n := int64(0)
	for _, f := range files {
		n += int64(len(f.Data))
	}
	return n
}

// Truncate returns the files with their data limited to n bytes. The data
// is not copied. A negative n returns the files unchanged.
func Truncate(files []File, n int) []File {
	if n < 0 {
		return files
	}
	t := make([]File, len(files))
	for i, f := range files {
		t[i] = f
		if len(f.Data) > n {
			t[i].Data = f.Data[:n]
		}
	}
	return t
}

type countWriter struct {
	n int64
}

func (w *countWriter) Write(p []byte) (n int, err error) {
	n = len(p)
	w.n += int64(n)
	return n, nil
}

// Compressor creates a compressing writer.
type Compressor func(w io.Writer) (io.WriteCloser, error)

// BWSZ returns a compressor for the bwsz format.
func BWSZ(cfg bwsz.WriterConfig) Compressor {
	return func(w io.Writer) (io.WriteCloser, error) {
		return bwsz.NewWriterConfig(w, cfg)
	}
}

// Zlib returns a compressor for the zlib format.
func Zlib(level int) Compressor {
	return func(w io.Writer) (io.WriteCloser, error) {
		return zlib.NewWriterLevel(w, level)
	}
}

// Result describes the compression of a single file.
type Result struct {
	Format         string  `csv:"format"`
	Name           string  `csv:"file"`
	Size           int64   `csv:"size"`
	CompressedSize int64   `csv:"compressed"`
	Ratio          float64 `csv:"ratio"`
}

func compressFile(f File, c Compressor) (n int64, err error) {
	cw := &countWriter{}
	w, err := c(cw)
	if err != nil {
		return 0, err
	}
	if _, err = io.Copy(w, bytes.NewReader(f.Data)); err != nil {
		return 0, err
	}
	if err = w.Close(); err != nil {
		return 0, err
	}
	return cw.n, nil
}

// Compress compresses all files and returns the sum of the compressed sizes.
func Compress(files []File, c Compressor) (compressedSize int64, err error) {
	for _, f := range files {
		n, err := compressFile(f, c)
		if err != nil {
			return compressedSize, fmt.Errorf("%s: %w", f.Name, err)
		}
		compressedSize += n
	}
	return compressedSize, nil
}

// Results compresses every file and reports the sizes per file.
func Results(format string, files []File, c Compressor) ([]Result, error) {
	results := make([]Result, 0, len(files))
	for _, f := range files {
		n, err := compressFile(f, c)
		if err != nil {
			return results, fmt.Errorf("%s: %w", f.Name, err)
		}
		r := Result{
			Format:         format,
			Name:           f.Name,
			Size:           int64(len(f.Data)),
			CompressedSize: n,
		}
		if r.Size > 0 {
			r.Ratio = float64(n) / float64(r.Size)
		}
		results = append(results, r)
	}
	return results, nil
}
