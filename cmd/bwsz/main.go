// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command bwsz compresses and decompresses files using the bwsz pipeline or
// zlib.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/klauspost/compress/zlib"
	"github.com/urfave/cli/v2"
	"github.com/ulikunitz/bwsz/xlog"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "bwsz",
		Usage: "compress or uncompress files (by default, compress in place)",
		UsageText: "bwsz [OPTION]... [FILE]...\n\n" +
			"With no file, or when FILE is -, read standard input.",
		HideHelpCommand:        true,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "stdout", Aliases: []string{"c"},
				Usage: "write to standard output and don't delete input files"},
			&cli.BoolFlag{Name: "decompress", Aliases: []string{"d"},
				Usage: "decompress"},
			&cli.BoolFlag{Name: "force", Aliases: []string{"f"},
				Usage: "force overwrite of output file and compress links"},
			&cli.BoolFlag{Name: "keep", Aliases: []string{"k"},
				Usage: "keep (don't delete) input files"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"},
				Usage: "suppress all warnings"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"},
				Usage: "verbose mode"},
			&cli.BoolFlag{Name: "test", Aliases: []string{"t"},
				Usage: "test compressed file integrity"},
			&cli.BoolFlag{Name: "roundtrip", Aliases: []string{"r"},
				Usage: "compress and decompress in memory and compare"},
			&cli.BoolFlag{Name: "no-checksum",
				Usage: "don't store a CRC32 in bwsz files"},
			&cli.StringFlag{Name: "format", Aliases: []string{"F"},
				Value: "auto",
				Usage: "use format " +
					strings.Join(formatNames(), ", ") + " or auto"},
			&cli.IntFlag{Name: "level", Aliases: []string{"l"},
				Value: zlib.BestCompression,
				Usage: "zlib compression level"},
		},
		Action: run,
	}
}

// setLogFlags configures the package-level logger for the quiet and verbose
// options.
func setLogFlags(quiet, verbose bool) {
	switch {
	case quiet:
		xlog.SetFlags(xlog.Lnoinfo | xlog.Lnowarn | xlog.Lnodebug)
	case verbose:
		xlog.SetFlags(0)
	default:
		xlog.SetFlags(xlog.Lnoinfo | xlog.Lnodebug)
	}
}

// parseOptions reads and checks the options of the command line.
func parseOptions(c *cli.Context) (opts options, err error) {
	opts = options{
		stdout:     c.Bool("stdout"),
		decompress: c.Bool("decompress"),
		force:      c.Bool("force"),
		keep:       c.Bool("keep"),
		test:       c.Bool("test"),
		roundtrip:  c.Bool("roundtrip"),
		noChecksum: c.Bool("no-checksum"),
		format:     c.String("format"),
		level:      c.Int("level"),
	}
	if opts.test {
		opts.decompress = true
	}
	if opts.format != "auto" {
		if _, err = lookupFormat(opts.format); err != nil {
			return opts, err
		}
	}
	if opts.level < zlib.HuffmanOnly || opts.level > zlib.BestCompression {
		return opts, fmt.Errorf("level %d out of range [%d,%d]",
			opts.level, zlib.HuffmanOnly, zlib.BestCompression)
	}
	if opts.roundtrip && opts.decompress {
		return opts, errors.New(
			"roundtrip cannot be combined with decompress or test")
	}
	return opts, nil
}

// isTerminal checks whether the file is a character device.
func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func run(c *cli.Context) error {
	setLogFlags(c.Bool("quiet"), c.Bool("verbose"))
	opts, err := parseOptions(c)
	if err != nil {
		return err
	}
	args := c.Args().Slice()
	if len(args) == 0 {
		args = []string{"-"}
	}
	toStdout := opts.stdout
	for _, a := range args {
		toStdout = toStdout || a == "-"
	}
	if toStdout && !opts.decompress && !opts.roundtrip && !opts.force &&
		isTerminal(os.Stdout) {
		return errors.New(
			"compressed data not written to a terminal; use -f to force")
	}

	var result *multierror.Error
	for _, path := range args {
		if err := processFile(path, opts); err != nil {
			err = userError(err)
			printErr(err)
			result = multierror.Append(result, err)
		}
	}
	if result != nil {
		xlog.Debugf("%d of %d files failed", len(result.Errors),
			len(args))
		return cli.Exit("", 1)
	}
	return nil
}

func main() {
	cmdName := filepath.Base(os.Args[0])
	xlog.SetPrefix(fmt.Sprintf("%s: ", cmdName))
	xlog.SetFlags(xlog.Lnoinfo | xlog.Lnodebug)

	if err := newApp().Run(os.Args); err != nil {
		xlog.Fatal(err)
	}
}
