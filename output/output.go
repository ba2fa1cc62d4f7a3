// Package output opens the destination stream for converted messages
package output

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/DataDog/zstd"
	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
)

var ErrUnknownCompression = errors.New("unknown compression")

const (
	CompressNone   = "none"
	CompressLZ4    = "lz4"
	CompressSnappy = "snappy"
	CompressZstd   = "zstd"
)

// Compressions lists the accepted compression names
func Compressions() []string {
	return []string{CompressNone, CompressLZ4, CompressSnappy, CompressZstd}
}

// ValidCompression reports whether name is accepted by Open
func ValidCompression(name string) bool {
	if name == "" {
		return true
	}
	for _, c := range Compressions() {
		if c == name {
			return true
		}
	}
	return false
}

// Sink is a writable output stream. Close flushes any compressor and closes
// the underlying file; standard output is flushed but left open.
type Sink struct {
	w      io.Writer
	closer []io.Closer
}

func (s *Sink) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

// Close flushes and releases the stream, returning the first error
func (s *Sink) Close() error {
	var first error
	for _, c := range s.closer {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	s.closer = nil
	return first
}

// Open creates path (or uses stdout when path is empty) and wraps it with
// the named compression
func Open(path, compression string, stdout io.Writer) (*Sink, error) {
	if !ValidCompression(compression) {
		return nil, fmt.Errorf("%w %q", ErrUnknownCompression, compression)
	}

	sink := &Sink{w: stdout}
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("creating output: %w", err)
		}
		sink.w = f
		sink.closer = append(sink.closer, f)
	}

	if cw := compress(sink.w, compression); cw != nil {
		sink.w = cw
		// the compressor has to flush before the file is closed
		sink.closer = append([]io.Closer{cw}, sink.closer...)
	}

	return sink, nil
}

func compress(w io.Writer, compression string) io.WriteCloser {
	switch compression {
	case CompressLZ4:
		return lz4.NewWriter(w)
	case CompressSnappy:
		return snappy.NewBufferedWriter(w)
	case CompressZstd:
		return zstd.NewWriter(w)
	}
	return nil
}
