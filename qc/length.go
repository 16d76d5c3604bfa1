package qc

import "github.com/grailbio/fqstat/encoding/fastq"

// LengthSummary describes the distribution of read lengths.
type LengthSummary struct {
	Reads int64   `json:"reads"`
	Bases int64   `json:"bases"`
	Min   int64   `json:"min"`
	Max   int64   `json:"max"`
	Mean  float64 `json:"mean"`
}

// ReadLength tracks the number and length of reads. Lengths are measured on
// the sequence line.
type ReadLength struct {
	s LengthSummary
}

// Name implements Statistic.
func (s *ReadLength) Name() string { return ReadLengthName }

// Process implements Statistic.
func (s *ReadLength) Process(r *fastq.Read) {
	n := int64(len(r.Seq))
	if s.s.Reads == 0 || n < s.s.Min {
		s.s.Min = n
	}
	if n > s.s.Max {
		s.s.Max = n
	}
	s.s.Reads++
	s.s.Bases += n
}

// Report implements Statistic. The value is a LengthSummary.
func (s *ReadLength) Report() Report {
	sum := s.s
	if sum.Reads > 0 {
		sum.Mean = float64(sum.Bases) / float64(sum.Reads)
	}
	return Report{Name: s.Name(), Value: sum}
}
