package qc

import (
	"sort"

	"github.com/grailbio/fqstat/encoding/fastq"
	"github.com/pkg/errors"
)

// Statistic accumulates one running aggregation over FASTQ reads.
type Statistic interface {
	// Name is the key under which the statistic's report appears in a
	// Summary. It must be unique within a Runner.
	Name() string
	// Process adds the read to the running state. The read's buffers are
	// reused by the caller, so Process must not retain them.
	Process(r *fastq.Read)
	// Report describes the state accumulated so far. It does not modify the
	// state, and may be called any number of times.
	Report() Report
}

// Report is one statistic's contribution to a Summary.
type Report struct {
	Name  string
	Value interface{}
}

// Opts configures the built-in statistics.
type Opts struct {
	// Statistics lists the statistics to run, by name, in registration
	// order. Empty means all of StatisticNames().
	Statistics []string
	// DuplicateLimit is the number of distinct sequences Duplication tracks.
	DuplicateLimit int
}

// DefaultOpts are the options used by the bio-fastq-qc command when no flags
// are given.
var DefaultOpts = Opts{
	DuplicateLimit: 100000,
}

// Names of the built-in statistics.
const (
	ReadQualityName     = "average_read_quality"
	PositionQualityName = "average_base_quality_per_position"
	CompositionName     = "base_composition_per_position"
	ReadLengthName      = "read_length"
	DuplicationName     = "duplicate_reads"
)

var factories = map[string]func(Opts) Statistic{
	ReadQualityName:     func(Opts) Statistic { return &ReadQuality{} },
	PositionQualityName: func(Opts) Statistic { return &PositionQuality{} },
	CompositionName:     func(Opts) Statistic { return &BaseComposition{} },
	ReadLengthName:      func(Opts) Statistic { return &ReadLength{} },
	DuplicationName:     func(o Opts) Statistic { return NewDuplication(o.DuplicateLimit) },
}

var canonicalOrder = []string{
	ReadQualityName,
	PositionQualityName,
	CompositionName,
	ReadLengthName,
	DuplicationName,
}

// StatisticNames lists the built-in statistics in their default order.
func StatisticNames() []string {
	return append([]string(nil), canonicalOrder...)
}

// NewStatistic creates the built-in statistic with the given name.
func NewStatistic(name string, opts Opts) (Statistic, error) {
	f, ok := factories[name]
	if !ok {
		known := StatisticNames()
		sort.Strings(known)
		return nil, errors.Errorf("unknown statistic %q, want one of %v", name, known)
	}
	return f(opts), nil
}

// NewStatistics creates the statistics listed in opts.Statistics, or all
// built-ins if the list is empty.
func NewStatistics(opts Opts) ([]Statistic, error) {
	names := opts.Statistics
	if len(names) == 0 {
		names = canonicalOrder
	}
	stats := make([]Statistic, 0, len(names))
	for _, name := range names {
		s, err := NewStatistic(name, opts)
		if err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, nil
}
