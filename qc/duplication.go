package qc

import (
	farm "github.com/dgryski/go-farm"
	"github.com/grailbio/fqstat/encoding/fastq"
)

// DuplicationSummary estimates how much of the library is duplicated.
type DuplicationSummary struct {
	// Tracked is the number of reads whose sequence is in the table.
	Tracked int64 `json:"tracked"`
	// Distinct is the number of distinct sequences in the table.
	Distinct int64 `json:"distinct"`
	// DuplicateFraction is 1 - Distinct/Tracked.
	DuplicateFraction float64 `json:"duplicate_fraction"`
}

// Duplication estimates the fraction of duplicated reads from the first
// limit distinct sequences. Once the table is full, reads with a new sequence
// are ignored and reads matching a tracked sequence are still counted, so
// memory stays bounded by the limit.
//
// Sequences are identified by their 64-bit fingerprint; collisions are
// ignored.
type Duplication struct {
	limit   int
	seen    map[uint64]struct{}
	tracked int64
}

// NewDuplication creates a Duplication that tracks at most limit distinct
// sequences. A limit <= 0 uses DefaultOpts.DuplicateLimit.
func NewDuplication(limit int) *Duplication {
	if limit <= 0 {
		limit = DefaultOpts.DuplicateLimit
	}
	return &Duplication{limit: limit, seen: make(map[uint64]struct{})}
}

// Name implements Statistic.
func (s *Duplication) Name() string { return DuplicationName }

// Process implements Statistic.
func (s *Duplication) Process(r *fastq.Read) {
	fp := farm.Fingerprint64(r.Seq)
	if _, ok := s.seen[fp]; !ok {
		if len(s.seen) >= s.limit {
			return
		}
		s.seen[fp] = struct{}{}
	}
	s.tracked++
}

// Report implements Statistic. The value is a DuplicationSummary.
func (s *Duplication) Report() Report {
	sum := DuplicationSummary{Tracked: s.tracked, Distinct: int64(len(s.seen))}
	if sum.Tracked > 0 {
		sum.DuplicateFraction = 1 - float64(sum.Distinct)/float64(sum.Tracked)
	}
	return Report{Name: s.Name(), Value: sum}
}
