package fastq

import "io"

var newline = []byte{'\n'}

// Writer is a FASTQ file writer.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter constructs a new FASTQ writer
// that writes reads to the underlying writer w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes the read r in FASTQ format. An empty line 3 is written as
// "+". An error is returned if the write failed.
func (w *Writer) Write(r *Read) error {
	w.writeln(r.ID)
	w.writeln(r.Seq)
	if len(r.Unk) == 0 {
		w.writeln(plus)
	} else {
		w.writeln(r.Unk)
	}
	w.writeln(r.Qual)
	return w.err
}

var plus = []byte{'+'}

func (w *Writer) writeln(line []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(line)
	if w.err == nil {
		_, w.err = w.w.Write(newline)
	}
}
