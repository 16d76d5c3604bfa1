package qc

import (
	"io"

	"github.com/grailbio/base/log"
	"github.com/grailbio/fqstat/encoding/fastq"
	"github.com/pkg/errors"
)

var (
	// ErrFinalized is returned when a Runner is used after Finalize.
	ErrFinalized = errors.New("runner already finalized")
	// ErrDuplicateKey is returned when two statistics share a name.
	ErrDuplicateKey = errors.New("duplicate statistic name")
	// ErrStarted is returned by Register once a stream has been processed.
	ErrStarted = errors.New("runner already processing")
)

const progressInterval = 1 << 20

// StreamSummary describes one stream consumed by Runner.Process.
type StreamSummary struct {
	// Name identifies the stream in logs and warnings, typically its path.
	Name string
	// Reads is the number of reads dispatched from this stream.
	Reads int64
	// Warning is set when the stream ended inside a record or held a read
	// whose sequence and quality lengths differ. The reads before it were
	// processed and the statistics remain usable, but the input may be
	// incomplete.
	Warning error
}

// Runner feeds FASTQ reads to a set of statistics. It is not threadsafe.
//
// A Runner starts idle. Each call to Process consumes one stream; all
// streams contribute to the same statistics. Finalize ends the runner's
// life and hands the statistics to the caller.
type Runner struct {
	stats     []Statistic
	names     map[string]bool
	read      fastq.Read
	reads     int64
	started   bool
	finalized bool
}

// NewRunner creates a runner for the given statistics. Statistics are run in
// the given order. It returns an error if two statistics share a name.
func NewRunner(stats ...Statistic) (*Runner, error) {
	r := &Runner{names: make(map[string]bool)}
	for _, s := range stats {
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register appends a statistic. It must be called before the first Process.
func (r *Runner) Register(s Statistic) error {
	switch {
	case r.finalized:
		return ErrFinalized
	case r.started:
		return ErrStarted
	case r.names[s.Name()]:
		return errors.Wrap(ErrDuplicateKey, s.Name())
	}
	r.names[s.Name()] = true
	r.stats = append(r.stats, s)
	return nil
}

// Process scans FASTQ reads from in until it is exhausted, handing each read
// to every statistic before scanning the next one. Name labels the stream in
// the returned summary and in logs.
//
// A truncated record or a sequence/quality length mismatch stops the stream
// and is reported in StreamSummary.Warning; it is not an error. The error
// return is reserved for failures to read in, and for a finalized runner.
func (r *Runner) Process(name string, in io.Reader) (StreamSummary, error) {
	sum := StreamSummary{Name: name}
	if r.finalized {
		return sum, ErrFinalized
	}
	r.started = true
	sc := fastq.NewScanner(in, fastq.Seq|fastq.Qual)
	for sc.Scan(&r.read) {
		for _, s := range r.stats {
			s.Process(&r.read)
		}
		sum.Reads++
		r.reads++
		if sum.Reads%progressInterval == 0 {
			log.Printf("%s: %dMi reads", name, sum.Reads/progressInterval)
		}
	}
	log.Printf("Processed %d reads in %s", sum.Reads, name)
	if err := sc.Err(); err != nil {
		if fastq.IsMalformed(err) {
			sum.Warning = errors.Wrapf(err, "%s: input may be incomplete", name)
			return sum, nil
		}
		return sum, errors.Wrapf(err, "read %s", name)
	}
	return sum, nil
}

// Reads returns the total number of reads dispatched across all streams.
func (r *Runner) Reads() int64 { return r.reads }

// Finalize returns the statistics, in registration order, and retires the
// runner: every later call to Process, Register or Finalize fails with
// ErrFinalized.
func (r *Runner) Finalize() ([]Statistic, error) {
	if r.finalized {
		return nil, ErrFinalized
	}
	stats := r.stats
	r.stats, r.names = nil, nil
	r.read = fastq.Read{}
	r.finalized = true
	return stats, nil
}
