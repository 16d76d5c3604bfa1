package qc

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func testSummary(t *testing.T) Summary {
	r := newTestRunner(t)
	_, err := r.Process("x", strings.NewReader("@1\nACGT\n+\nIIII\n@2\nNC\n+\n++\n"))
	assert.NoError(t, err)
	return finalSummary(t, r)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, WriteJSON(&buf, testSummary(t)))

	var got struct {
		ReadQuality     float64              `json:"average_read_quality"`
		PositionQuality []float64            `json:"average_base_quality_per_position"`
		Composition     []map[string]float64 `json:"base_composition_per_position"`
		ReadLength      LengthSummary        `json:"read_length"`
		Duplication     DuplicationSummary   `json:"duplicate_reads"`
	}
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	expect.EQ(t, got.ReadQuality, 25.0)
	expect.EQ(t, got.PositionQuality, []float64{25, 25, 40, 40})
	expect.EQ(t, got.Composition[0], map[string]float64{"A": 0.5, "C": 0, "G": 0, "T": 0, "other": 0.5})
	expect.EQ(t, got.Composition[3], map[string]float64{"A": 0, "C": 0, "G": 0, "T": 1, "other": 0})
	expect.EQ(t, got.ReadLength, LengthSummary{Reads: 2, Bases: 6, Min: 2, Max: 4, Mean: 3})
	expect.EQ(t, got.Duplication, DuplicationSummary{Tracked: 2, Distinct: 2})
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, WriteJSON(&buf, Summary{}))
	expect.EQ(t, buf.String(), "{}\n")
}

func TestWriteTSV(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, WriteTSV(&buf, Summary{
		ReadQualityName:     12.5,
		PositionQualityName: []float64{40, 2.5},
		CompositionName:     []Composition{{A: 0.25, Other: 0.75}},
		ReadLengthName:      LengthSummary{Reads: 1, Bases: 2, Min: 2, Max: 2, Mean: 2},
		DuplicationName:     DuplicationSummary{Tracked: 4, Distinct: 3, DuplicateFraction: 0.25},
	}))
	expect.EQ(t, buf.String(), `KEY	INDEX	FIELD	VALUE
average_base_quality_per_position	0	.	40
average_base_quality_per_position	1	.	2.5
average_read_quality	.	.	12.5
base_composition_per_position	0	A	0.25
base_composition_per_position	0	C	0
base_composition_per_position	0	G	0
base_composition_per_position	0	T	0
base_composition_per_position	0	other	0.75
duplicate_reads	.	tracked	4
duplicate_reads	.	distinct	3
duplicate_reads	.	duplicate_fraction	0.25
read_length	.	reads	1
read_length	.	bases	2
read_length	.	min	2
read_length	.	max	2
read_length	.	mean	2
`)
}

func TestWriteTSVUnknownValue(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTSV(&buf, Summary{"custom": "text"})
	expect.True(t, err != nil && strings.Contains(err.Error(), "custom: no TSV form for string"))
}
