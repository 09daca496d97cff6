// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/bwsz/xio"
	"github.com/ulikunitz/bwsz/xlog"
)

// options contains the command line options.
type options struct {
	stdout     bool
	decompress bool
	force      bool
	keep       bool
	test       bool
	roundtrip  bool
	noChecksum bool
	format     string
	level      int
}

// targetName finds the correct target name taking the options into
// account. The format in opts must not be auto.
func targetName(path string, opts *options) (target string, err error) {
	if path == "-" {
		panic("path name - not supported")
	}
	if len(path) == 0 {
		return "", errors.New("empty file name not supported")
	}
	f, err := lookupFormat(opts.format)
	if err != nil {
		return "", err
	}
	if !opts.decompress {
		if strings.HasSuffix(path, f.ext) && !opts.force {
			return "", &userPathError{Path: path,
				Err: fmt.Errorf("already has %s suffix", f.ext)}
		}
		return path + f.ext, nil
	}
	if !strings.HasSuffix(path, f.ext) {
		return "", &userPathError{Path: path,
			Err: fmt.Errorf("unknown suffix; want %s", f.ext)}
	}
	target = path[:len(path)-len(f.ext)]
	if len(target) == 0 {
		return "", fmt.Errorf("file name %s has no base part", path)
	}
	return target, nil
}

// tmpName converts the path string into a temporary name by appending
// .decompress or .compress to the file path.
func tmpName(path string, decompress bool) string {
	var ext string
	if decompress {
		ext = ".decompress"
	} else {
		ext = ".compress"
	}
	return path + ext
}

// flushCloser flushes the buffered writer on Close.
type flushCloser struct {
	*bufio.Writer
}

func (fc flushCloser) Close() error { return fc.Flush() }

// writer is used as file writer for decompression and file compressor
// for compression. All data goes through the stack: compressor, buffer and
// file.
type writer struct {
	f       *os.File
	name    string
	stack   *xio.WriteCloserStack
	success bool
}

// newWriter creates a new file writer. Note that options must contain
// the actual compression format and not just auto.
func newWriter(path string, perm os.FileMode, opts *options,
) (w *writer, err error) {
	w = &writer{name: path, stack: xio.NewWriteCloserStack()}
	if opts.stdout {
		w.f = os.Stdout
		w.name = "-"
		w.stack.Push(xio.NopCloser(os.Stdout))
	} else {
		name, err := targetName(path, opts)
		if err != nil {
			return nil, err
		}
		if _, err = os.Stat(name); !os.IsNotExist(err) {
			if !opts.force {
				return nil, &userPathError{
					Path: name,
					Err:  errors.New("file exists")}
			}
			if err = os.Remove(name); err != nil {
				return nil, err
			}
		}
		tmp := tmpName(path, opts.decompress)
		if w.f, err = os.OpenFile(tmp,
			os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm); err != nil {
			return nil, err
		}
		w.name = name
		w.stack.Push(w.f)
	}
	bw := bufio.NewWriter(w.f)
	w.stack.Push(flushCloser{bw})
	if opts.decompress {
		return w, nil
	}
	f, err := compressorFormat(opts)
	if err != nil {
		w.Close()
		return nil, err
	}
	cmp, err := f.newCompressor(bw, opts)
	if err != nil {
		w.Close()
		return nil, err
	}
	w.stack.Push(cmp)
	return w, nil
}

func (w *writer) Write(p []byte) (n int, err error) {
	return w.stack.Write(p)
}

var errInval = errors.New("invalid value")

// Close closes the writer. Note that the behaviour depends whether
// success has been set for the writer. Without success the temporary file
// is removed and nothing is written.
func (w *writer) Close() error {
	if w.f == nil {
		return errInval
	}
	defer func() { w.f = nil }()

	if !w.success {
		if w.f == os.Stdout {
			return nil
		}
		w.f.Close()
		return os.Remove(w.f.Name())
	}
	if err := w.stack.Close(); err != nil {
		if w.f != os.Stdout {
			os.Remove(w.f.Name())
		}
		return err
	}
	if w.f == os.Stdout {
		return nil
	}
	return os.Rename(w.f.Name(), w.name)
}

// removeTmpFile removes the temporary file for the writer. It is used
// by the signal handler goroutine.
func (w *writer) removeTmpFile() {
	if f := w.f; f != nil && f != os.Stdout {
		os.Remove(f.Name())
	}
}

// SetSuccess sets the success variable to true.
func (w *writer) SetSuccess() { w.success = true }

// reader is used as a file reader.
type reader struct {
	f *os.File
	io.Reader
	success bool
	keep    bool
}

// errNoRegular indicates that a file is not regular.
var errNoRegular = errors.New("no regular file")

// specialBits contain the special bits, which are not supported by bwsz.
const specialBits = os.ModeSetuid | os.ModeSetgid | os.ModeSticky

// openFile opens the given path with the given options.
func openFile(path string, opts *options) (f *os.File, err error) {
	if path == "-" {
		return os.Stdin, nil
	}
	fi, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}
	fm := fi.Mode()
	if !fm.IsRegular() {
		if !opts.force || fm&os.ModeSymlink == 0 {
			return nil, &userPathError{Path: path,
				Err: errNoRegular}
		}
	}
	if f, err = os.Open(path); err != nil {
		return nil, err
	}
	if fi, err = f.Stat(); err != nil {
		f.Close()
		return nil, err
	}
	fm = fi.Mode()
	if !fm.IsRegular() {
		f.Close()
		return nil, &userPathError{Path: path, Err: errNoRegular}
	}
	if fm&specialBits != 0 && !opts.force {
		f.Close()
		return nil, &userPathError{Path: path,
			Err: errors.New("setuid, setgid and/or sticky bit set")}
	}
	return f, nil
}

// newReader creates a new reader for files. For decompression the format is
// detected and opts.format is updated.
func newReader(path string, opts *options) (r *reader, err error) {
	f, err := openFile(path, opts)
	if err != nil {
		return nil, err
	}
	keep := opts.keep || opts.stdout || opts.test
	br := bufio.NewReader(f)
	if !opts.decompress {
		return &reader{f: f, Reader: br, keep: keep}, nil
	}
	cf, err := detectFormat(br, opts)
	if err != nil {
		f.Close()
		return nil, &userPathError{Path: path, Err: err}
	}
	dec, err := cf.newDecompressor(br, opts)
	if err != nil {
		f.Close()
		return nil, &userPathError{Path: path, Err: err}
	}
	return &reader{f: f, Reader: dec, keep: keep}, nil
}

// Close closes the reader. The input file is removed only after success
// and if it should not be kept.
func (r *reader) Close() error {
	if r.f == nil {
		return errInval
	}
	defer func() { r.f = nil }()
	if c, ok := r.Reader.(io.Closer); ok {
		c.Close()
	}
	if r.f == os.Stdin {
		return nil
	}
	if err := r.f.Close(); err != nil {
		return err
	}
	if r.keep || !r.success {
		return nil
	}
	return os.Remove(r.f.Name())
}

func (r *reader) SetSuccess() { r.success = true }

func (r *reader) Perm() os.FileMode {
	const defaultPerm os.FileMode = 0666

	fi, err := r.f.Stat()
	if err != nil {
		return defaultPerm
	}

	return fi.Mode() & defaultPerm
}

// userPathError represents a path error presentable to a user. In
// difference to os.PathError it removes the information of the
// operation returning the error.
type userPathError struct {
	Path string
	Err  error
}

// Error provides the error string for the path error.
func (e *userPathError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *userPathError) Unwrap() error { return e.Err }

// userError converts path error to an error message that is
// acceptable for bwsz users. PathError provides information about the
// command that has created an error. For instance Lstat informs that
// lstat detected that a file didn't exist. This information is not
// relevant for users of the program.
func userError(err error) error {
	var pe *os.PathError
	if !errors.As(err, &pe) {
		return err
	}
	return &userPathError{Path: pe.Path, Err: pe.Err}
}

func printErr(err error) {
	if err != nil {
		xlog.Warn(userError(err))
	}
}

// stdout receives the reports of the round-trip mode.
var stdout io.Writer = os.Stdout

// errMismatch indicates that decompression didn't restore the original data.
var errMismatch = errors.New("round trip mismatch")

// roundTrip compresses and decompresses the file in memory and reports the
// result. No file is written.
func roundTrip(path string, opts *options) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return err
	}
	f, err := compressorFormat(opts)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	cmp, err := f.newCompressor(&buf, opts)
	if err != nil {
		return err
	}
	if _, err = cmp.Write(data); err != nil {
		return err
	}
	if err = cmp.Close(); err != nil {
		return err
	}
	n := buf.Len()
	dec, err := f.newDecompressor(&buf, opts)
	if err != nil {
		return &userPathError{Path: path, Err: err}
	}
	q, err := io.ReadAll(dec)
	if err != nil {
		return &userPathError{Path: path, Err: err}
	}
	status := "ok"
	if !bytes.Equal(data, q) {
		status = "FAILED"
		err = &userPathError{Path: path, Err: errMismatch}
	}
	var bpb float64
	if len(data) > 0 {
		bpb = 8 * float64(n) / float64(len(data))
	}
	fmt.Fprintf(stdout, "%s: %s %d -> %d bytes (%.3f bits/byte) %s\n",
		path, opts.format, len(data), n, bpb, status)
	return err
}

// processFile process the file with the given path applying the
// provided options.
func processFile(path string, opts options) (err error) {
	if path == "-" {
		opts.stdout = true
	}
	if opts.roundtrip {
		return roundTrip(path, &opts)
	}
	r, err := newReader(path, &opts)
	if err != nil {
		return err
	}
	defer r.Close()
	if opts.test {
		if _, err = io.Copy(io.Discard, r); err != nil {
			return &userPathError{Path: path, Err: err}
		}
		xlog.Infof("%s: ok", path)
		return nil
	}
	if !opts.decompress {
		if _, err = compressorFormat(&opts); err != nil {
			return err
		}
	}
	w, err := newWriter(path, r.Perm(), &opts)
	if err != nil {
		return err
	}
	defer w.Close()
	quitSignalHandler := signalHandler(w)
	if _, err = io.Copy(w, r); err != nil {
		close(quitSignalHandler)
		return &userPathError{Path: path, Err: err}
	}
	close(quitSignalHandler)
	w.SetSuccess()
	if err = w.Close(); err != nil {
		return err
	}
	r.SetSuccess()
	if err = r.Close(); err != nil {
		return err
	}
	xlog.Debugf("%s: %s written", path, w.name)
	return nil
}
