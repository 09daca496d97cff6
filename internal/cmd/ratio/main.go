// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command ratio measures compression ratio and speed of bwsz and zlib over
// the Silesia corpus.
package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/klauspost/compress/zlib"
	"github.com/kr/pretty"
	"github.com/ulikunitz/bwsz"
	"github.com/ulikunitz/bwsz/internal/tuning"
	"github.com/urfave/cli/v2"
)

// mbPerSec returns the Megabytes (1 000 000 bytes) per seconds that are
// processed.
func mbPerSec(r testing.BenchmarkResult) float64 {
	if v, ok := r.Extra["MB/s"]; ok {
		return v
	}
	if r.Bytes <= 0 || r.T <= 0 || r.N <= 0 {
		return 0
	}
	return (float64(r.Bytes) * float64(r.N) / 1e6) / r.T.Seconds()
}

func ratio(r testing.BenchmarkResult) float64 {
	if x, ok := r.Extra["c/u"]; ok {
		return x
	}
	return math.NaN()
}

func writerBenchmark(files []tuning.File, c tuning.Compressor,
) func(b *testing.B) {
	return func(b *testing.B) {
		size := tuning.Size(files)
		b.SetBytes(size)
		var (
			err            error
			compressedSize int64
		)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			compressedSize, err = tuning.Compress(files, c)
			if err != nil {
				b.Fatalf("Compress error %s", err)
			}
		}
		b.StopTimer()
		r := float64(compressedSize) / float64(size)
		b.ReportMetric(r, "c/u")
	}
}

type compressor struct {
	Name  string
	c     tuning.Compressor
	Ratio float64
	MBs   float64
}

func compressors(level int) []compressor {
	return []compressor{
		{Name: "bwsz", c: tuning.BWSZ(bwsz.WriterConfig{})},
		{Name: "bwsz-nocrc",
			c: tuning.BWSZ(bwsz.WriterConfig{NoChecksum: true})},
		{Name: fmt.Sprintf("zlib-%d", level), c: tuning.Zlib(level)},
	}
}

func writeCSV(path string, results []tuning.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = gocsv.MarshalFile(&results, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func run(c *cli.Context) error {
	testing.Init()
	files, err := tuning.Silesia()
	if err != nil {
		return err
	}
	files = tuning.Truncate(files, c.Int("truncate"))
	fmt.Printf("%d files, %d bytes\n", len(files), tuning.Size(files))

	var results []tuning.Result
	cs := compressors(c.Int("level"))
	for i := range cs {
		p := &cs[i]
		r := testing.Benchmark(writerBenchmark(files, p.c))
		p.Ratio, p.MBs = ratio(r), mbPerSec(r)
		fmt.Printf("%s\t%s\t%.3f c/u\t%.2f MB/s\n",
			p.Name, r, p.Ratio, p.MBs)
		if c.String("csv") == "" {
			continue
		}
		rs, err := tuning.Results(p.Name, files, p.c)
		if err != nil {
			return err
		}
		results = append(results, rs...)
	}
	pretty.Println(cs)

	if path := c.String("csv"); path != "" {
		if err = writeCSV(path, results); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	app := &cli.App{
		Name:  "ratio",
		Usage: "measure compression ratios over the Silesia corpus",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "truncate", Value: 1 << 20,
				Usage: "limit the size of each file (-1 for no limit)"},
			&cli.IntFlag{Name: "level", Value: zlib.BestCompression,
				Usage: "zlib compression level"},
			&cli.StringFlag{Name: "csv",
				Usage: "write per-file results to CSV `FILE`"},
		},
		Action: run,
	}
	log.SetPrefix("ratio: ")
	log.SetFlags(0)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
