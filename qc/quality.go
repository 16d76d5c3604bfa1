package qc

import "github.com/grailbio/fqstat/encoding/fastq"

// ReadQuality computes the mean, over reads, of each read's mean base
// quality. This is not the mean over all bases: a short read weighs as much
// as a long one.
//
// Reads with an empty quality line have no mean and are not counted.
type ReadQuality struct {
	sum   float64
	reads int64
}

// Name implements Statistic.
func (s *ReadQuality) Name() string { return ReadQualityName }

// Process implements Statistic.
func (s *ReadQuality) Process(r *fastq.Read) {
	if len(r.Qual) == 0 {
		return
	}
	var total int64
	for _, q := range r.Qual {
		total += int64(q) - fastq.PhredOffset
	}
	s.sum += float64(total) / float64(len(r.Qual))
	s.reads++
}

// Reads returns the number of reads that contributed to the mean.
func (s *ReadQuality) Reads() int64 { return s.reads }

// Mean returns the mean read quality, or 0 if no read was processed.
func (s *ReadQuality) Mean() float64 {
	if s.reads == 0 {
		return 0
	}
	return s.sum / float64(s.reads)
}

// Report implements Statistic. The value is a float64.
func (s *ReadQuality) Report() Report {
	return Report{Name: s.Name(), Value: s.Mean()}
}

// PositionQuality computes the mean base quality at each read position.
// Position i is averaged over the reads that are longer than i.
type PositionQuality struct {
	sum   []float64
	count []int64
}

// Name implements Statistic.
func (s *PositionQuality) Name() string { return PositionQualityName }

// Process implements Statistic.
func (s *PositionQuality) Process(r *fastq.Read) {
	s.grow(len(r.Qual))
	for i, q := range r.Qual {
		s.sum[i] += float64(int(q) - fastq.PhredOffset)
		s.count[i]++
	}
}

// grow extends the per-position arrays to at least n entries. Existing
// entries are kept.
func (s *PositionQuality) grow(n int) {
	for len(s.sum) < n {
		s.sum = append(s.sum, 0)
		s.count = append(s.count, 0)
	}
}

// Len returns the length of the longest read seen so far.
func (s *PositionQuality) Len() int { return len(s.sum) }

// Report implements Statistic. The value is a []float64 with one mean per
// position.
func (s *PositionQuality) Report() Report {
	means := make([]float64, len(s.sum))
	for i := range s.sum {
		if s.count[i] > 0 {
			means[i] = s.sum[i] / float64(s.count[i])
		}
	}
	return Report{Name: s.Name(), Value: means}
}
