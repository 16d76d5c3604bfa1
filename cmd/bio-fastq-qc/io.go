package main

// This file opens FASTQ inputs and the report output. Compression is chosen
// by the file extension only; the contents are never sniffed.

import (
	"context"
	"io"
	"strings"

	"github.com/golang/snappy"
	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
)

// input is an open FASTQ file.
type input struct {
	path string
	f    file.File
	r    io.Reader
	// dec is the decompressor stacked on f, if it needs closing.
	dec io.Closer
}

// openInput opens path for reading. Files ending in .sz are read as framed
// snappy streams; .gz, .bz2 and .zst files are handled by compress.
func openInput(ctx context.Context, path string) (*input, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "open", path)
	}
	in := &input{path: path, f: f, r: f.Reader(ctx)}
	if strings.HasSuffix(path, ".sz") {
		in.r = snappy.NewReader(in.r)
		return in, nil
	}
	if u := compress.NewReaderPath(in.r, f.Name()); u != nil {
		in.r = u
		if c, ok := u.(io.Closer); ok {
			in.dec = c
		}
	}
	return in, nil
}

// Close closes the decompressor, if any, and the file.
func (in *input) Close(ctx context.Context) error {
	once := errors.Once{}
	if in.dec != nil {
		once.Set(in.dec.Close())
	}
	once.Set(in.f.Close(ctx))
	if err := once.Err(); err != nil {
		return errors.E(err, "close", in.path)
	}
	return nil
}

// createOutput returns a writer for the report. Path "-" means w itself; the
// returned close function is then a no-op.
func createOutput(ctx context.Context, path string, w io.Writer) (io.Writer, func() error, error) {
	if path == "-" {
		return w, func() error { return nil }, nil
	}
	out, err := file.Create(ctx, path)
	if err != nil {
		return nil, nil, errors.E(err, "create", path)
	}
	return out.Writer(ctx), func() error { return out.Close(ctx) }, nil
}
