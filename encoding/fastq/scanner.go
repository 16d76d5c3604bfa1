package fastq

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

const (
	linesPerRead = 4

	// PhredOffset is subtracted from a quality code to get its numeric
	// quality score.
	PhredOffset = 33

	// MaxLineLength is the longest FASTQ line a Scanner accepts.
	MaxLineLength = 256 << 20
)

var (
	// ErrShort is returned when a truncated FASTQ file is encountered.
	ErrShort = errors.New("short FASTQ file")
	// ErrLength is returned when a read's sequence and quality lines differ
	// in length.
	ErrLength = errors.New("sequence and quality lengths differ")
	// ErrDiscordant is returned when two underlying FASTQ files are discordant.
	ErrDiscordant = errors.New("discordant FASTQ pairs")
)

// A Read is a FASTQ read, comprising an ID, sequence, line 3
// ("unknown"), and a quality string.
//
// The slices are owned by the Scanner that filled them and are overwritten by
// the next call to Scan.
type Read struct {
	ID, Seq, Unk, Qual []byte
}

// Trim cuts the read and quality lengths to at most n.
func (r *Read) Trim(n int) {
	if len(r.Seq) > n {
		r.Seq = r.Seq[:n]
	}
	if len(r.Qual) > n {
		r.Qual = r.Qual[:n]
	}
}

var errEOF = errors.New("eof")

// Scanner provides a convenient interface for reading FASTQ read
// data. The Scan method returns the next read, returning a boolean
// indicating whether the read succeeded. Scanners are not
// threadsafe.
//
// Scanner does not validate the ID and line-3 contents. When both Seq and
// Qual are requested, it rejects a read whose sequence and quality lengths
// differ.
type Scanner struct {
	b      *bufio.Scanner
	err    error
	fields Field
	n      int64
}

// Field enumerates FASTQ fields. It is used to specify fields to read in
// NewScanner.
type Field uint

const (
	// ID causes the Read.ID field to be filled
	ID Field = 1 << iota
	// Seq causes the Read.Seq field to be filled
	Seq
	// Unk causes the Read.Unk field to be filled
	Unk
	// Qual causes the Read.Qual field to be filled
	Qual
	// All equals ID|Seq|Unk|Qual.
	All = ID | Seq | Unk | Qual
)

// NewScanner constructs a new Scanner that reads raw FASTQ data from the
// provided reader. Fields is a bitset of the fields to read. A typical value
// would be All or Seq|Qual.
func NewScanner(r io.Reader, fields Field) *Scanner {
	b := bufio.NewScanner(r)
	b.Buffer(make([]byte, 0, 64<<10), MaxLineLength)
	return &Scanner{b: b, fields: fields}
}

// Scan the next read into the provided read. Scan returns a boolean
// indicating whether the scan succeeded. Once Scan returns false, it
// never returns true again. Upon completion, the user should check
// the Err method to determine whether scanning stopped because of an
// error or because the end of the stream was reached.
func (f *Scanner) Scan(read *Read) bool {
	if f.err != nil {
		return false
	}
	if !f.b.Scan() {
		if f.err = f.b.Err(); f.err == nil {
			f.err = errEOF
		}
		return false
	}
	if f.fields&ID != 0 {
		read.ID = append(read.ID[:0], f.b.Bytes()...)
	}
	if !f.scan(1) {
		return false
	}
	if f.fields&Seq != 0 {
		read.Seq = append(read.Seq[:0], f.b.Bytes()...)
	}
	if !f.scan(2) {
		return false
	}
	if f.fields&Unk != 0 {
		read.Unk = append(read.Unk[:0], f.b.Bytes()...)
	}
	if !f.scan(3) {
		return false
	}
	if f.fields&Qual != 0 {
		read.Qual = append(read.Qual[:0], f.b.Bytes()...)
	}
	if f.fields&(Seq|Qual) == Seq|Qual && len(read.Seq) != len(read.Qual) {
		f.err = errors.Wrapf(ErrLength, "read %d: %d bases, %d quality codes",
			f.n+1, len(read.Seq), len(read.Qual))
		return false
	}
	f.n++
	return true
}

// scan reads line got+1 of the current record.
func (f *Scanner) scan(got int) bool {
	ok := f.b.Scan()
	if !ok {
		if f.err = f.b.Err(); f.err == nil {
			f.err = errors.Wrapf(ErrShort, "read %d: want %d lines, got %d",
				f.n+1, linesPerRead, got)
		}
	}
	return ok
}

// N returns the number of reads scanned so far.
func (f *Scanner) N() int64 { return f.n }

// Err returns the scanning error, if any.
func (f *Scanner) Err() error {
	if f.err == errEOF {
		return nil
	}
	return f.err
}

// IsMalformed reports whether err, as returned by Scanner.Err, describes a
// truncated or inconsistent record rather than an I/O failure.
func IsMalformed(err error) bool {
	switch errors.Cause(err) {
	case ErrShort, ErrLength:
		return true
	}
	return false
}
