// fastxfetch prints a sequence, or a subrange of one, from a BGZF FASTA
// file using its colocated ".fai" and ".gzi" indexes.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/vertti/fastx/fastx"
	"github.com/vertti/fastx/indexed"
)

const (
	exitSuccess = 0
	exitError   = 1
)

type config struct {
	fastaPath string
	region    string
}

func main() {
	os.Exit(run())
}

func run() int {
	cfg, done := parseFlags()
	if done {
		return exitSuccess
	}

	r, err := indexed.Open(cfg.fastaPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitError
	}
	defer r.Close() //nolint:errcheck // read-only, nothing to flush

	if err := execute(r, cfg.region, os.Stdout); err != nil {
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
	if len(args) != 2 {
		flag.Usage()
		return cfg, true
	}
	cfg.fastaPath = args[0]
	cfg.region = args[1]
	return cfg, false
}

func usage() {
	fmt.Fprintf(os.Stderr, `fastxfetch - fetch a sequence or subrange from a BGZF-indexed FASTA file

Usage:
  fastxfetch <fasta> <name>[:<start>-<end>]

The fasta file must have colocated <fasta>.fai and <fasta>.gzi indexes.
start/end are 0-based, half-open base coordinates; omitting them fetches
the entire named sequence.

Options:
`)
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  fastxfetch genome.fa.gz chr1
  fastxfetch genome.fa.gz chr1:1000-2000
`)
}

func execute(r *indexed.Reader, region string, out io.Writer) error {
	name, start, end, hasRange, err := parseRegion(region)
	if err != nil {
		return err
	}

	var rec *fastx.Record
	if hasRange {
		rec, err = r.FetchRange(name, start, end)
	} else {
		rec, err = r.Fetch(name)
	}
	if err != nil {
		return fmt.Errorf("fetching %s: %w", region, err)
	}

	if _, err := fmt.Fprintf(out, ">%s\n%s\n", rec.Name(), rec.Sequence()); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func parseRegion(region string) (name string, start, end uint64, hasRange bool, err error) {
	colon := strings.LastIndexByte(region, ':')
	if colon < 0 {
		return region, 0, 0, false, nil
	}

	name = region[:colon]
	rangePart := region[colon+1:]
	dash := strings.IndexByte(rangePart, '-')
	if dash < 0 {
		return "", 0, 0, false, fmt.Errorf("invalid region %q: expected start-end after ':'", region)
	}

	start, err = strconv.ParseUint(rangePart[:dash], 10, 64)
	if err != nil {
		return "", 0, 0, false, fmt.Errorf("invalid region %q: bad start: %w", region, err)
	}
	end, err = strconv.ParseUint(rangePart[dash+1:], 10, 64)
	if err != nil {
		return "", 0, 0, false, fmt.Errorf("invalid region %q: bad end: %w", region, err)
	}
	return name, start, end, true, nil
}
