package main

// bio-fastq-qc computes quality-control statistics over one FASTQ file, or
// over the two files of a paired-end sample, and prints them as JSON.
//
// Usage: bio-fastq-qc -r1 sample_R1.fastq.gz [-r2 sample_R2.fastq.gz]
//
// The two files of a pair are pooled into one set of statistics.

import (
	"strings"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/fqstat/qc"
	"v.io/x/lib/cmdline"
)

func newCmdQC() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "bio-fastq-qc",
		Short: "Compute per-sample quality statistics of FASTQ files",
		Long: `
bio-fastq-qc reads one FASTQ file, or the R1 and R2 files of a paired-end
sample, in a single pass and prints per-read and per-position quality
statistics. Files ending in .gz, .bz2, .zst or .sz are decompressed.

Reads of both files are pooled into one set of statistics. An input that ends
in the middle of a record, or that holds a read whose sequence and quality
lengths differ, is reported as a warning; the reads before it are counted.

The command exits with status 3 if an input cannot be opened.`,
		LookPath: false,
	}
	flags := qcFlags{}
	cmd.Flags.StringVar(&flags.r1, "r1", "", "FASTQ file of a single-end sample, or R1 of a pair. Required.")
	cmd.Flags.StringVar(&flags.r1, "1", "", "Alias of -r1.")
	cmd.Flags.StringVar(&flags.r2, "r2", "", "R2 FASTQ file of a pair.")
	cmd.Flags.StringVar(&flags.r2, "2", "", "Alias of -r2.")
	cmd.Flags.StringVar(&flags.format, "format", "json", "Output format, either 'json' or 'tsv'.")
	cmd.Flags.StringVar(&flags.output, "output", "-", "Output path. '-' writes to stdout.")
	cmd.Flags.StringVar(&flags.stats, "stats", "",
		"Comma-separated list of statistics to compute. By default all of "+strings.Join(qc.StatisticNames(), ","))
	cmd.Flags.IntVar(&flags.duplicateLimit, "duplicate-limit", qc.DefaultOpts.DuplicateLimit,
		"Number of distinct sequences tracked when estimating duplication.")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 0 {
			return env.UsageErrorf("bio-fastq-qc takes no arguments, but got %v", argv)
		}
		if flags.r1 == "" {
			return env.UsageErrorf("-r1 is required")
		}
		return run(vcontext.Background(), flags, env.Stdout, env.Stderr)
	})
	return cmd
}

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(newCmdQC())
}
