// fastxcat streams a FASTA/FASTQ file (plain, gzip, or BGZF) and re-emits it
// in canonical form.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/vertti/fastx/bytesource"
	"github.com/vertti/fastx/fastx"
)

const (
	exitSuccess = 0
	exitError   = 1
)

type config struct {
	inputPath string
}

func main() {
	os.Exit(run())
}

func run() int {
	cfg, done := parseFlags()
	if done {
		return exitSuccess
	}

	input, cleanup, err := openInput(cfg.inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitError
	}
	defer cleanup()

	out := bufio.NewWriterSize(os.Stdout, 1<<20)
	defer out.Flush() //nolint:errcheck // best effort on exit path

	if err := execute(input, out); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitError
	}
	if err := out.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitError
	}

	return exitSuccess
}

func parseFlags() (config, bool) {
	var cfg config
	var showHelp bool

	flag.BoolVar(&showHelp, "h", false, "show help")
	flag.Usage = usage
	flag.Parse()

	if showHelp {
		flag.Usage()
		return cfg, true
	}

	args := flag.Args()
	if len(args) > 0 {
		cfg.inputPath = args[0]
	}
	return cfg, false
}

func usage() {
	fmt.Fprintf(os.Stderr, `fastxcat - stream and re-emit FASTA/FASTQ records

Usage:
  fastxcat [path]   Read path (plain, gzip, or BGZF); "-" or omitted reads stdin

Options:
`)
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  fastxcat sample.fasta
  fastxcat sample.fastq.gz
  cat sample.fasta | fastxcat
`)
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}

	src, err := bytesource.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open input: %w", err)
	}
	return src, func() { _ = src.Close() }, nil
}

func execute(r io.Reader, w io.Writer) error {
	return fastx.ForEach(r, func(rec *fastx.Record) error {
		return writeFasta(w, rec)
	}, func(rec *fastx.Record) error {
		return writeFastq(w, rec)
	})
}

func writeFasta(w io.Writer, rec *fastx.Record) error {
	if _, err := fmt.Fprintf(w, ">%s\n%s\n", rec.Name(), rec.Sequence()); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	return nil
}

func writeFastq(w io.Writer, rec *fastx.Record) error {
	if _, err := fmt.Fprintf(w, "@%s\n%s\n+\n%s\n", rec.Name(), rec.Sequence(), rec.Quality()); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	return nil
}
