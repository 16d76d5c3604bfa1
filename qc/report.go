package qc

import "github.com/pkg/errors"

// Summary is the merged report of a set of statistics, keyed by statistic
// name.
type Summary map[string]interface{}

// Assemble collects the report of every statistic into one Summary. Two
// reports with the same name are an error; no report is ever overwritten.
func Assemble(stats []Statistic) (Summary, error) {
	s := make(Summary, len(stats))
	for _, stat := range stats {
		rep := stat.Report()
		if _, ok := s[rep.Name]; ok {
			return nil, errors.Wrap(ErrDuplicateKey, rep.Name)
		}
		s[rep.Name] = rep.Value
	}
	return s, nil
}
