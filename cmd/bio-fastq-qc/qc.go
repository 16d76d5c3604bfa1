package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/fqstat/encoding/fastq"
	"github.com/grailbio/fqstat/qc"
	"v.io/x/lib/cmdline"
)

// exitOpenFailure is the exit status when an input cannot be opened.
// Status 2 is taken by cmdline for usage errors.
const exitOpenFailure = cmdline.ErrExitCode(3)

// Collection of options set via cmdline flags
type qcFlags struct {
	r1, r2         string
	format         string
	output         string
	stats          string
	duplicateLimit int
}

func (f qcFlags) opts() qc.Opts {
	opts := qc.DefaultOpts
	if f.stats != "" {
		for _, name := range strings.Split(f.stats, ",") {
			if name = strings.TrimSpace(name); name != "" {
				opts.Statistics = append(opts.Statistics, name)
			}
		}
	}
	if f.duplicateLimit > 0 {
		opts.DuplicateLimit = f.duplicateLimit
	}
	return opts
}

// run computes the statistics of flags.r1 and, if set, flags.r2, and writes
// the report to flags.output. Open failures are printed to stderr and
// reported as exitOpenFailure before any read is processed.
func run(ctx context.Context, flags qcFlags, stdout, stderr io.Writer) (err error) {
	var write func(io.Writer, qc.Summary) error
	switch flags.format {
	case "json":
		write = qc.WriteJSON
	case "tsv":
		write = qc.WriteTSV
	default:
		return fmt.Errorf("unknown output format %q, want json or tsv", flags.format)
	}
	stats, err := qc.NewStatistics(flags.opts())
	if err != nil {
		return err
	}
	runner, err := qc.NewRunner(stats...)
	if err != nil {
		return err
	}

	paths := []string{flags.r1}
	if flags.r2 != "" {
		paths = append(paths, flags.r2)
	}
	inputs := make([]*input, 0, len(paths))
	defer func() {
		for _, in := range inputs {
			if e := in.Close(ctx); e != nil && err == nil {
				err = e
			}
		}
	}()
	for _, path := range paths {
		in, e := openInput(ctx, path)
		if e != nil {
			fmt.Fprintf(stderr, "bio-fastq-qc: %v\n", e)
			return exitOpenFailure
		}
		inputs = append(inputs, in)
	}

	var sums []qc.StreamSummary
	for _, in := range inputs {
		sum, err := runner.Process(in.path, in.r)
		if err != nil {
			return err
		}
		if sum.Warning != nil {
			log.Error.Printf("warning: %v", sum.Warning)
		}
		sums = append(sums, sum)
	}
	if len(sums) == 2 && sums[0].Reads != sums[1].Reads {
		log.Error.Printf("warning: %v: %s has %d reads, %s has %d", fastq.ErrDiscordant,
			sums[0].Name, sums[0].Reads, sums[1].Name, sums[1].Reads)
	}

	final, err := runner.Finalize()
	if err != nil {
		return err
	}
	summary, err := qc.Assemble(final)
	if err != nil {
		return err
	}
	out, closeOut, err := createOutput(ctx, flags.output, stdout)
	if err != nil {
		return err
	}
	if err := write(out, summary); err != nil {
		closeOut()
		return errors.E(err, "write", flags.output)
	}
	return closeOut()
}
