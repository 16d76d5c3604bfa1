package qc

import "github.com/grailbio/fqstat/encoding/fastq"

// Base classes counted by BaseComposition.
const (
	BaseA = iota
	BaseC
	BaseG
	BaseT
	// BaseOther covers everything else, including N and lower-case bases.
	BaseOther
	NumBaseClasses
)

var baseClass [256]uint8

func init() {
	for i := range baseClass {
		baseClass[i] = BaseOther
	}
	baseClass['A'] = BaseA
	baseClass['C'] = BaseC
	baseClass['G'] = BaseG
	baseClass['T'] = BaseT
}

// Composition is the fraction of each base class at one read position. The
// fractions sum to 1, or are all 0 if no read covered the position.
type Composition struct {
	A     float64 `json:"A"`
	C     float64 `json:"C"`
	G     float64 `json:"G"`
	T     float64 `json:"T"`
	Other float64 `json:"other"`
}

// BaseComposition counts the base classes at each read position.
type BaseComposition struct {
	counts [][NumBaseClasses]int64
}

// Name implements Statistic.
func (s *BaseComposition) Name() string { return CompositionName }

// Process implements Statistic.
func (s *BaseComposition) Process(r *fastq.Read) {
	for len(s.counts) < len(r.Seq) {
		s.counts = append(s.counts, [NumBaseClasses]int64{})
	}
	for i, b := range r.Seq {
		s.counts[i][baseClass[b]]++
	}
}

// Counts returns the raw counts at position i, indexed by BaseA..BaseOther.
func (s *BaseComposition) Counts(i int) [NumBaseClasses]int64 { return s.counts[i] }

// Len returns the length of the longest read seen so far.
func (s *BaseComposition) Len() int { return len(s.counts) }

// Report implements Statistic. The value is a []Composition with one entry
// per position.
func (s *BaseComposition) Report() Report {
	comps := make([]Composition, len(s.counts))
	for i, c := range s.counts {
		var total int64
		for _, n := range c {
			total += n
		}
		if total == 0 {
			continue
		}
		t := float64(total)
		comps[i] = Composition{
			A:     float64(c[BaseA]) / t,
			C:     float64(c[BaseC]) / t,
			G:     float64(c[BaseG]) / t,
			T:     float64(c[BaseT]) / t,
			Other: float64(c[BaseOther]) / t,
		}
	}
	return Report{Name: s.Name(), Value: comps}
}
