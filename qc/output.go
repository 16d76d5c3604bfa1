package qc

import (
	"encoding/json"
	"io"
	"sort"
	"strconv"

	"github.com/grailbio/base/tsv"
	"github.com/pkg/errors"
)

// WriteJSON writes the summary as one indented JSON object, keys sorted.
func WriteJSON(w io.Writer, s Summary) error {
	js, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	js = append(js, '\n')
	_, err = w.Write(js)
	return err
}

// WriteTSV writes the summary as a long-form table with columns KEY, INDEX,
// FIELD and VALUE. INDEX is the 0-based read position for per-position
// statistics, and FIELD names the member of a composite value; both are "."
// when they do not apply. Keys are written in sorted order.
func WriteTSV(w io.Writer, s Summary) (err error) {
	out := tsv.NewWriter(w)
	out.WriteString("KEY\tINDEX\tFIELD\tVALUE")
	if err = out.EndLine(); err != nil {
		return
	}
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	row := func(key, index, field, value string) error {
		out.WriteString(key)
		out.WriteString(index)
		out.WriteString(field)
		out.WriteString(value)
		return out.EndLine()
	}
	for _, key := range keys {
		switch v := s[key].(type) {
		case float64:
			err = row(key, ".", ".", formatFloat(v))
		case []float64:
			for i, x := range v {
				if err = row(key, strconv.Itoa(i), ".", formatFloat(x)); err != nil {
					break
				}
			}
		case []Composition:
			for i, c := range v {
				idx := strconv.Itoa(i)
				for _, f := range []struct {
					name string
					val  float64
				}{{"A", c.A}, {"C", c.C}, {"G", c.G}, {"T", c.T}, {"other", c.Other}} {
					if err = row(key, idx, f.name, formatFloat(f.val)); err != nil {
						return
					}
				}
			}
		case LengthSummary:
			for _, f := range []struct{ name, val string }{
				{"reads", strconv.FormatInt(v.Reads, 10)},
				{"bases", strconv.FormatInt(v.Bases, 10)},
				{"min", strconv.FormatInt(v.Min, 10)},
				{"max", strconv.FormatInt(v.Max, 10)},
				{"mean", formatFloat(v.Mean)},
			} {
				if err = row(key, ".", f.name, f.val); err != nil {
					return
				}
			}
		case DuplicationSummary:
			for _, f := range []struct{ name, val string }{
				{"tracked", strconv.FormatInt(v.Tracked, 10)},
				{"distinct", strconv.FormatInt(v.Distinct, 10)},
				{"duplicate_fraction", formatFloat(v.DuplicateFraction)},
			} {
				if err = row(key, ".", f.name, f.val); err != nil {
					return
				}
			}
		default:
			return errors.Errorf("%s: no TSV form for %T", key, v)
		}
		if err != nil {
			return
		}
	}
	return out.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
