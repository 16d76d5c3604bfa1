package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/snappy"
	"github.com/grailbio/fqstat/qc"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/klauspost/compress/gzip"
)

const (
	r1FASTQ = "@r1/1\nAGTC\n+\nIIII\n@r2/1\nACGTAC\n+\n++++++\n"
	r2FASTQ = "@r1/2\nGACT\n+\n5555\n@r2/2\nNNNNNN\n+\n!!!!!!\n"
)

func writeFile(t *testing.T, path, data string) {
	assert.NoError(t, ioutil.WriteFile(path, []byte(data), 0600))
}

func writeGzipFile(t *testing.T, path, data string) {
	buf := bytes.Buffer{}
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(data))
	assert.NoError(t, err)
	assert.NoError(t, gz.Close())
	assert.NoError(t, ioutil.WriteFile(path, buf.Bytes(), 0600))
}

func writeSnappyFile(t *testing.T, path, data string) {
	buf := bytes.Buffer{}
	sz := snappy.NewBufferedWriter(&buf)
	_, err := sz.Write([]byte(data))
	assert.NoError(t, err)
	assert.NoError(t, sz.Close())
	assert.NoError(t, ioutil.WriteFile(path, buf.Bytes(), 0600))
}

func runQC(t *testing.T, flags qcFlags) (string, string, error) {
	if flags.format == "" {
		flags.format = "json"
	}
	if flags.output == "" {
		flags.output = "-"
	}
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), flags, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func decode(t *testing.T, out string) map[string]interface{} {
	var m map[string]interface{}
	assert.NoError(t, json.Unmarshal([]byte(out), &m))
	return m
}

func TestSingleEnd(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := filepath.Join(tempDir, "r1.fastq")
	writeFile(t, path, r1FASTQ)
	out, _, err := runQC(t, qcFlags{r1: path})
	assert.NoError(t, err)
	m := decode(t, out)
	expect.EQ(t, m["average_read_quality"], 25.0)
	expect.EQ(t, m["average_base_quality_per_position"],
		[]interface{}{25.0, 25.0, 25.0, 25.0, 10.0, 10.0})
	comp := m["base_composition_per_position"].([]interface{})
	expect.EQ(t, len(comp), 6)
	expect.EQ(t, comp[0], map[string]interface{}{"A": 1.0, "C": 0.0, "G": 0.0, "T": 0.0, "other": 0.0})
}

func TestPairedEndPools(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	r1 := filepath.Join(tempDir, "r1.fastq")
	r2 := filepath.Join(tempDir, "r2.fastq")
	both := filepath.Join(tempDir, "both.fastq")
	writeFile(t, r1, r1FASTQ)
	writeFile(t, r2, r2FASTQ)
	writeFile(t, both, r1FASTQ+r2FASTQ)

	paired, _, err := runQC(t, qcFlags{r1: r1, r2: r2})
	assert.NoError(t, err)
	single, _, err := runQC(t, qcFlags{r1: both})
	assert.NoError(t, err)
	expect.EQ(t, paired, single)
	expect.EQ(t, decode(t, paired)["read_length"].(map[string]interface{})["reads"], 4.0)
}

func TestCompressedInput(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	plain := filepath.Join(tempDir, "r1.fastq")
	gz := filepath.Join(tempDir, "r1.fastq.gz")
	sz := filepath.Join(tempDir, "r1.fastq.sz")
	writeFile(t, plain, r1FASTQ)
	writeGzipFile(t, gz, r1FASTQ)
	writeSnappyFile(t, sz, r1FASTQ)

	want, _, err := runQC(t, qcFlags{r1: plain})
	assert.NoError(t, err)
	for _, path := range []string{gz, sz} {
		got, _, err := runQC(t, qcFlags{r1: path})
		assert.NoError(t, err)
		expect.EQ(t, got, want)
	}
}

func TestOpenFailure(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	r1 := filepath.Join(tempDir, "r1.fastq")
	missing := filepath.Join(tempDir, "missing.fastq")
	writeFile(t, r1, r1FASTQ)

	for _, flags := range []qcFlags{{r1: missing}, {r1: r1, r2: missing}} {
		out, stderr, err := runQC(t, flags)
		expect.EQ(t, err, exitOpenFailure)
		expect.EQ(t, out, "")
		expect.True(t, strings.Contains(stderr, missing))
	}
}

func TestTruncatedInputWarns(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := filepath.Join(tempDir, "trunc.fastq")
	writeFile(t, path, r1FASTQ+"@r3/1\nACGT\n")
	out, _, err := runQC(t, qcFlags{r1: path})
	assert.NoError(t, err)
	expect.EQ(t, decode(t, out)["read_length"].(map[string]interface{})["reads"], 2.0)
}

func TestTSVOutputFile(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	in := filepath.Join(tempDir, "r1.fastq")
	outPath := filepath.Join(tempDir, "report.tsv")
	writeFile(t, in, r1FASTQ)
	stdout, _, err := runQC(t, qcFlags{
		r1:     in,
		format: "tsv",
		output: outPath,
		stats:  qc.ReadQualityName + ", " + qc.ReadLengthName,
	})
	assert.NoError(t, err)
	expect.EQ(t, stdout, "")
	data, err := ioutil.ReadFile(outPath)
	assert.NoError(t, err)
	expect.EQ(t, string(data), `KEY	INDEX	FIELD	VALUE
average_read_quality	.	.	25
read_length	.	reads	2
read_length	.	bases	10
read_length	.	min	4
read_length	.	max	6
read_length	.	mean	5
`)
}

func TestBadFlags(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := filepath.Join(tempDir, "r1.fastq")
	writeFile(t, path, r1FASTQ)

	_, _, err := runQC(t, qcFlags{r1: path, format: "xml"})
	expect.True(t, err != nil && strings.Contains(err.Error(), `unknown output format "xml"`))
	_, _, err = runQC(t, qcFlags{r1: path, stats: "gc_content"})
	expect.True(t, err != nil && strings.Contains(err.Error(), `unknown statistic "gc_content"`))
}

func TestFlagOpts(t *testing.T) {
	opts := qcFlags{stats: " read_length,,average_read_quality ", duplicateLimit: 7}.opts()
	expect.EQ(t, opts.Statistics, []string{"read_length", "average_read_quality"})
	expect.EQ(t, opts.DuplicateLimit, 7)
	expect.EQ(t, qcFlags{}.opts(), qc.DefaultOpts)
}
